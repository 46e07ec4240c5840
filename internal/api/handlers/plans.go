package handlers

import (
	"net/http"
	"pdp-route-service/internal/api/dto"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/report"
	"pdp-route-service/internal/services"
	"strings"
)

type PlanHandler struct {
	Planner *services.Planner
}

// Plan solves a stored or inline pickup-and-delivery problem and returns
// each vehicle's route with its travel time.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq := services.PlanRequest{ProblemName: strings.TrimSpace(req.Problem)}
	if req.Definition != nil {
		svcReq.Problem = toDomainProblem(req.Definition)
	}
	if svcReq.Problem == nil && svcReq.ProblemName == "" {
		writeError(w, r, http.StatusBadRequest, "problem or definition is required")
		return
	}

	res, err := h.Planner.Plan(r.Context(), svcReq)
	if err != nil {
		writeServiceError(w, r, "plan routes", err)
		return
	}

	manager := res.Assignment.Manager()
	out := dto.PlanResponse{
		PlanID:    res.Plan.PlanID,
		Problem:   res.Plan.Problem,
		Objective: res.Plan.Objective,
		Total:     res.Plan.Total,
		Routes:    make([]dto.RouteResponse, 0, len(res.Plan.Traces)),
	}
	for _, t := range res.Plan.Traces {
		out.Routes = append(out.Routes, dto.RouteResponse{
			VehicleID: t.VehicleID,
			Nodes:     report.Nodes(t, manager),
			Indices:   t.Indices,
			Cost:      t.Cost,
		})
	}

	var text strings.Builder
	if err := report.WriteText(&text, res.Plan.Objective, res.Plan.Traces, res.Plan.Total, manager); err != nil {
		writeServiceError(w, r, "plan routes", err)
		return
	}
	out.Text = text.String()

	writeJSON(w, r, http.StatusOK, out)
}

func toDomainProblem(d *dto.ProblemDefinition) *domain.Problem {
	p := &domain.Problem{
		Name:         d.Name,
		Vehicles:     d.Vehicles,
		Depot:        d.Depot,
		Horizon:      d.Horizon,
		Matrix:       d.TimeMatrix,
		MatrixSource: d.MatrixSource,
	}
	for _, pd := range d.PickupsDeliveries {
		p.PickupsDeliveries = append(p.PickupsDeliveries, domain.PickupDelivery{Pickup: pd.Pickup, Delivery: pd.Delivery})
	}
	if len(d.TimeWindows) > 0 {
		p.TimeWindows = make(map[int]domain.TimeWindow, len(d.TimeWindows))
		for _, tw := range d.TimeWindows {
			p.TimeWindows[tw.Node] = domain.TimeWindow{Open: tw.Open, Close: tw.Close}
		}
	}
	return p
}
