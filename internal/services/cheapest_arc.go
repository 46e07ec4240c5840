package services

import (
	"math"
	"pdp-route-service/internal/domain"
)

// leg is a planned visit: the node and the time service starts there.
type leg struct {
	node int
	at   int64
}

// cheapestArcOrder sequences nodes starting from node `from` at time `at`.
//
// At each step it moves to the eligible node with the cheapest arc from the
// current position. A node is eligible when its pickups are already placed
// and its time window is still open. Ties go to the lowest node id, so the
// order is deterministic. It reports false when some nodes cannot be placed.
func cheapestArcOrder(md *pdpModel, nodes []int, placed map[int]bool, from int, at int64) ([]leg, bool) {
	remaining := make(map[int]struct{}, len(nodes))
	for _, n := range nodes {
		remaining[n] = struct{}{}
	}

	local := make(map[int]bool, len(placed)+len(nodes))
	for k, v := range placed {
		local[k] = v
	}

	legs := make([]leg, 0, len(nodes))
	current, now := from, at

	for len(remaining) > 0 {
		best := -1
		var bestCost int64 = math.MaxInt64
		var bestAt int64

		// Select next stop by minimum arc cost (greedy step).
		for n := range remaining {
			if !md.ready(n, local) {
				continue
			}
			cost := md.matrix.At(current, n)
			start, ok := md.arrive(n, now+cost)
			if !ok {
				continue
			}
			// Tie-breaker ensures deterministic ordering when costs are equal.
			if cost < bestCost || (cost == bestCost && n < best) {
				best, bestCost, bestAt = n, cost, start
			}
		}

		if best < 0 {
			return nil, false
		}

		legs = append(legs, leg{node: best, at: bestAt})
		local[best] = true
		delete(remaining, best)
		current, now = best, bestAt
	}

	return legs, true
}

// routeEnd returns the time a vehicle is back at the depot after legs.
func routeEnd(md *pdpModel, legs []leg, from int, at int64) int64 {
	if len(legs) == 0 {
		return at + md.matrix.At(from, md.problem.Depot)
	}
	last := legs[len(legs)-1]
	return last.at + md.matrix.At(last.node, md.problem.Depot)
}

// routeCost sums the arc costs of a depot-to-depot route over nodes.
func routeCost(m domain.TravelTimeMatrix, depot int, nodes []int) int64 {
	var total int64
	prev := depot
	for _, n := range nodes {
		total += m.At(prev, n)
		prev = n
	}
	return total + m.At(prev, depot)
}

// resequence reorders the stops of a loaded vehicle by cheapest arc from the
// depot, keeping the new order only when it is feasible and not costlier.
func resequence(md *pdpModel, v *domain.Vehicle) error {
	if len(v.Nodes) < 2 {
		return nil
	}

	depot := md.problem.Depot
	legs, ok := cheapestArcOrder(md, v.Nodes, nil, depot, 0)
	if !ok || routeEnd(md, legs, depot, 0) > v.Horizon {
		return nil
	}

	order := make([]int, len(legs))
	for i, l := range legs {
		order[i] = l.node
	}
	if routeCost(md.matrix, depot, order) > routeCost(md.matrix, depot, v.Nodes) {
		return nil
	}

	v.Clear()
	for _, l := range legs {
		if err := v.Visit(l.node, l.at); err != nil {
			return err
		}
	}
	return nil
}
