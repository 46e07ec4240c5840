package services

import (
	"fmt"
	"pdp-route-service/internal/domain"
	"sort"
)

// pdpModel is the precomputed view of a problem the planner works on.
type pdpModel struct {
	problem *domain.Problem
	matrix  domain.TravelTimeMatrix
	// preds[d] lists the pickups that must precede node d.
	preds map[int][]int
	// groups are sets of nodes tied together by pickup-delivery pairs; each
	// group is served by a single vehicle. Nodes and groups are sorted.
	groups [][]int
}

func newPDPModel(p *domain.Problem, m domain.TravelTimeMatrix) (*pdpModel, error) {
	n := m.Size()
	md := &pdpModel{
		problem: p,
		matrix:  m,
		preds:   make(map[int][]int),
	}

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}

	for _, pd := range p.PickupsDeliveries {
		md.preds[pd.Delivery] = append(md.preds[pd.Delivery], pd.Pickup)
		a, b := find(pd.Pickup), find(pd.Delivery)
		if a != b {
			parent[a] = b
		}
	}

	byRoot := make(map[int][]int)
	for node := 0; node < n; node++ {
		if node == p.Depot {
			continue
		}
		r := find(node)
		byRoot[r] = append(byRoot[r], node)
	}
	for _, g := range byRoot {
		md.groups = append(md.groups, g)
	}
	// nodes are appended in increasing order, so g[0] is the smallest node
	sort.Slice(md.groups, func(i, j int) bool { return md.groups[i][0] < md.groups[j][0] })

	for _, g := range md.groups {
		if err := md.checkAcyclic(g); err != nil {
			return nil, err
		}
	}

	return md, nil
}

// checkAcyclic rejects groups whose pickup-before-delivery chain loops.
func (md *pdpModel) checkAcyclic(group []int) error {
	indeg := make(map[int]int, len(group))
	succ := make(map[int][]int, len(group))
	for _, node := range group {
		for _, p := range md.preds[node] {
			indeg[node]++
			succ[p] = append(succ[p], node)
		}
	}

	queue := make([]int, 0, len(group))
	for _, node := range group {
		if indeg[node] == 0 {
			queue = append(queue, node)
		}
	}

	seen := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		seen++
		for _, s := range succ[node] {
			indeg[s]--
			if indeg[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if seen != len(group) {
		return fmt.Errorf("%w: pickup-delivery pairs among nodes %v form a cycle", ErrNoSolutionFound, group)
	}
	return nil
}

// ready reports whether every pickup required before node has been placed.
func (md *pdpModel) ready(node int, placed map[int]bool) bool {
	for _, p := range md.preds[node] {
		if !placed[p] {
			return false
		}
	}
	return true
}

// arrive applies the time window of node to an arrival time. Early arrivals
// wait for the window to open; late arrivals are rejected.
func (md *pdpModel) arrive(node int, at int64) (int64, bool) {
	tw, ok := md.problem.TimeWindows[node]
	if !ok {
		return at, true
	}
	if at > tw.Close {
		return 0, false
	}
	if at < tw.Open {
		return tw.Open, true
	}
	return at, true
}
