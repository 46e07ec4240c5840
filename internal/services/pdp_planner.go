package services

import (
	"context"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/matrix"
	"pdp-route-service/internal/platform/obs"
	"pdp-route-service/internal/routing"
)

// ErrNoSolutionFound is returned when the planner cannot produce a feasible
// assignment. Routes must not be traced in that case.
var ErrNoSolutionFound = errors.New("no solution found")

// ErrInvalidProblem marks problems that do not fit their travel time matrix.
var ErrInvalidProblem = errors.New("invalid problem")

// PlanPickupDelivery solves a pickup-and-delivery problem over a travel time
// matrix and returns the solved assignment.
//
// It is a greedy stand-in for a full routing engine:
//   - nodes linked by pickup-delivery pairs ride the same vehicle,
//     pickups before deliveries;
//   - every non-depot node is visited once;
//   - time windows are honoured (early arrivals wait);
//   - each route returns to the depot within the problem horizon.
//
// The result is deterministic for a given input. It does not attempt global
// optimality.
func PlanPickupDelivery(
	ctx context.Context,
	p *domain.Problem,
	m domain.TravelTimeMatrix,
) (_ *routing.Assignment, err error) {
	defer obs.Time(ctx, "planner.PlanPickupDelivery")(&err)

	if p == nil {
		return nil, errors.New("plan pickup delivery: problem must be non-nil")
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("plan pickup delivery: %w: %w", matrix.ErrMalformedMatrix, err)
	}
	if err := p.Validate(m.Size()); err != nil {
		return nil, fmt.Errorf("plan pickup delivery: %w: %w", ErrInvalidProblem, err)
	}

	md, err := newPDPModel(p, m)
	if err != nil {
		return nil, fmt.Errorf("plan pickup delivery: %w", err)
	}

	vehicles := make([]*domain.Vehicle, 0, p.Vehicles)
	for i := 0; i < p.Vehicles; i++ {
		vehicles = append(vehicles, domain.NewVehicle(i, p.RouteHorizon()))
	}

	if err := assignGroups(ctx, md, vehicles); err != nil {
		return nil, fmt.Errorf("plan pickup delivery: %w", err)
	}

	routes := make([][]int, 0, len(vehicles))
	for _, v := range vehicles {
		if err := resequence(md, v); err != nil {
			return nil, fmt.Errorf("plan pickup delivery: %w", err)
		}
		routes = append(routes, v.Nodes)
	}

	manager, err := routing.NewIndexManager(m.Size(), p.Vehicles, p.Depot)
	if err != nil {
		return nil, fmt.Errorf("plan pickup delivery: %w", err)
	}

	a, err := routing.NewAssignment(manager, m, routes)
	if err != nil {
		return nil, fmt.Errorf("plan pickup delivery: %w", err)
	}

	return a, nil
}
