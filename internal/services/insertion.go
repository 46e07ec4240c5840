package services

// simulate drives a fixed stop order from the depot at time zero. It reports
// false when a window closes before arrival or the return to the depot
// passes horizon.
func simulate(md *pdpModel, nodes []int, horizon int64) ([]leg, int64, bool) {
	depot := md.problem.Depot
	legs := make([]leg, 0, len(nodes))
	current, now := depot, int64(0)

	for _, n := range nodes {
		start, ok := md.arrive(n, now+md.matrix.At(current, n))
		if !ok {
			return nil, 0, false
		}
		legs = append(legs, leg{node: n, at: start})
		current, now = n, start
	}

	end := now + md.matrix.At(current, depot)
	if end > horizon {
		return nil, 0, false
	}
	return legs, end, true
}

// insertGroup places the nodes of group into route one at a time, each at
// the feasible position that adds the least travel cost. Pickups go first,
// and a node is never placed ahead of its pickups. Ties go to the earliest
// position.
func insertGroup(md *pdpModel, route []int, group []int, horizon int64) ([]leg, int64, bool) {
	depot := md.problem.Depot
	current := append([]int(nil), route...)

	for _, node := range md.topoOrder(group) {
		bestPos := -1
		var bestCost int64

		for pos := md.earliestPosition(current, node); pos <= len(current); pos++ {
			candidate := insertAt(current, pos, node)
			if _, _, ok := simulate(md, candidate, horizon); !ok {
				continue
			}
			cost := routeCost(md.matrix, depot, candidate)
			if bestPos < 0 || cost < bestCost {
				bestPos, bestCost = pos, cost
			}
		}

		if bestPos < 0 {
			return nil, 0, false
		}
		current = insertAt(current, bestPos, node)
	}

	return simulate(md, current, horizon)
}

// topoOrder lists group so that every pickup precedes its deliveries,
// taking the lowest ready node first. Groups are acyclic by construction.
func (md *pdpModel) topoOrder(group []int) []int {
	placed := make(map[int]bool, len(group))
	order := make([]int, 0, len(group))

	for len(order) < len(group) {
		for _, n := range group {
			if !placed[n] && md.ready(n, placed) {
				placed[n] = true
				order = append(order, n)
				break
			}
		}
	}
	return order
}

// earliestPosition returns the first index of route at which node may be
// inserted: right after the last of its pickups.
func (md *pdpModel) earliestPosition(route []int, node int) int {
	pos := 0
	for i, n := range route {
		for _, p := range md.preds[node] {
			if n == p {
				pos = i + 1
			}
		}
	}
	return pos
}

func insertAt(route []int, pos, node int) []int {
	out := make([]int, 0, len(route)+1)
	out = append(out, route[:pos]...)
	out = append(out, node)
	return append(out, route[pos:]...)
}
