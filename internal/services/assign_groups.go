package services

import (
	"context"
	"errors"
	"fmt"
	"pdp-route-service/internal/domain"
)

// assignGroups places each group of linked nodes on one vehicle.
//
// Groups are taken in order of their smallest node. For every vehicle the
// group is first sequenced after the vehicle's current last stop; when that
// breaks a time window or the horizon, the group is inserted into the route
// at its cheapest feasible positions instead. The group goes to the vehicle
// that would return to the depot earliest, which keeps the longest route
// short and spreads the work across the fleet. Assignment fails fast when no
// vehicle can take a group.
func assignGroups(ctx context.Context, md *pdpModel, vehicles []*domain.Vehicle) error {
	if len(vehicles) == 0 {
		return errors.New("assign groups: vehicle list must not be empty")
	}

	for _, group := range md.groups {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("assign groups: %w", err)
		}

		var (
			best     *domain.Vehicle
			bestLegs []leg
			bestEnd  int64
		)
		for _, v := range vehicles {
			legs, end, ok := placeGroup(md, v, group)
			if !ok {
				continue
			}
			if best == nil || end < bestEnd {
				best, bestLegs, bestEnd = v, legs, end
			}
		}

		if best == nil {
			return fmt.Errorf("%w: no vehicle can serve nodes %v", ErrNoSolutionFound, group)
		}

		best.Clear()
		for _, l := range bestLegs {
			if err := best.Visit(l.node, l.at); err != nil {
				return fmt.Errorf("assign groups: vehicle %d: %w", best.VehicleID, err)
			}
		}
	}

	return nil
}

// placeGroup returns the full route of v with group added, and the time v
// is back at the depot.
func placeGroup(md *pdpModel, v *domain.Vehicle, group []int) ([]leg, int64, bool) {
	depot := md.problem.Depot
	from := v.Last(depot)

	if tail, ok := cheapestArcOrder(md, group, nil, from, v.Time); ok {
		if end := routeEnd(md, tail, from, v.Time); end <= v.Horizon {
			head, _, ok := simulate(md, v.Nodes, v.Horizon)
			if ok {
				return append(head, tail...), end, true
			}
		}
	}

	return insertGroup(md, v.Nodes, group, v.Horizon)
}
