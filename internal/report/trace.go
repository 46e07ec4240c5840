// Package report walks a solved routing assignment vehicle by vehicle and
// collects the visited indices and arc costs of each route.
package report

import (
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
	"pdp-route-service/internal/ports"
)

// ErrInvalidRouteQuery is returned when a route never reaches an end index
// within the number of indices the query reports. It signals a broken
// query, not a recoverable runtime condition.
var ErrInvalidRouteQuery = errors.New("report: route query does not terminate")

// TraceRoute follows the route of vehicle from its start index until IsEnd
// reports true, accumulating ArcCost(previous, current) at every step. The
// end index is the last element of the trace.
//
// Queries implementing ports.SizedRouteQuery are bounded by their Size; other
// queries are trusted to terminate.
func TraceRoute(vehicle int, q ports.RouteQuery) (domain.RouteTrace, error) {
	limit := -1
	if sq, ok := q.(ports.SizedRouteQuery); ok {
		limit = sq.Size()
	}

	trace := domain.RouteTrace{VehicleID: vehicle}
	index := q.Start(vehicle)
	for !q.IsEnd(index) {
		trace.Indices = append(trace.Indices, index)
		if limit >= 0 && len(trace.Indices) > limit {
			return domain.RouteTrace{}, fmt.Errorf("%w: vehicle %d exceeded %d steps", ErrInvalidRouteQuery, vehicle, limit)
		}

		prev := index
		index = q.Next(index)
		trace.Cost += q.ArcCost(prev, index)
	}
	trace.Indices = append(trace.Indices, index)

	return trace, nil
}

// TraceAllRoutes traces vehicles 0..vehicleCount-1 in order and returns the
// traces with the sum of their costs.
func TraceAllRoutes(vehicleCount int, q ports.RouteQuery) ([]domain.RouteTrace, int64, error) {
	if vehicleCount < 0 {
		return nil, 0, fmt.Errorf("trace all routes: vehicleCount must be >= 0, got %d", vehicleCount)
	}

	traces := make([]domain.RouteTrace, 0, vehicleCount)
	var total int64
	for v := 0; v < vehicleCount; v++ {
		t, err := TraceRoute(v, q)
		if err != nil {
			return nil, 0, fmt.Errorf("trace all routes: %w", err)
		}
		traces = append(traces, t)
		total += t.Cost
	}

	return traces, total, nil
}
