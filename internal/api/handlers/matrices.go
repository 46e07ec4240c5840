package handlers

import (
	"net/http"
	"pdp-route-service/internal/api/dto"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
)

// SerializeMatrix builds the travel time matrix of a posted distance-matrix
// response and returns it along with its brace-text form.
func SerializeMatrix(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var resp domain.DistanceMatrixResponse
	if !decodeJSON(w, r, &resp) {
		return
	}

	m, err := matrix.BuildTravelTimeMatrix(&resp)
	if err != nil {
		writeServiceError(w, r, "serialize matrix", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SerializeMatrixResponse{
		Matrix: m,
		Text:   matrix.Serialize(m),
	})
}
