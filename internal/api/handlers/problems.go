package handlers

import (
	"net/http"
	"pdp-route-service/internal/api/dto"
	"pdp-route-service/internal/ports"
)

// ProblemHandler exposes read-only problem listing.
type ProblemHandler struct {
	Repo ports.ProblemRepository
}

func (h *ProblemHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	names, err := h.Repo.ListProblems(r.Context())
	if err != nil {
		writeServiceError(w, r, "list problems", err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, r, http.StatusOK, dto.ListProblemsResponse{Problems: names})
}
