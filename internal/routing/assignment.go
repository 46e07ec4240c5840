package routing

import (
	"fmt"
	"pdp-route-service/internal/domain"
)

// Assignment is a solved plan: for every index, the index visited next.
// It implements ports.SizedRouteQuery. Nodes that no vehicle visits are
// inactive and point to themselves.
type Assignment struct {
	manager   *IndexManager
	matrix    domain.TravelTimeMatrix
	next      []int64
	vehicle   []int
	objective int64
}

// NewAssignment builds an assignment from the node sequence of each vehicle.
// Sequences exclude the depot; each node may appear at most once overall.
func NewAssignment(manager *IndexManager, m domain.TravelTimeMatrix, routes [][]int) (*Assignment, error) {
	if manager == nil {
		return nil, fmt.Errorf("new assignment: manager must be non-nil")
	}
	if m.Size() != manager.NumNodes() {
		return nil, fmt.Errorf("new assignment: matrix covers %d nodes, manager %d", m.Size(), manager.NumNodes())
	}
	if len(routes) != manager.NumVehicles() {
		return nil, fmt.Errorf("new assignment: got %d routes for %d vehicles", len(routes), manager.NumVehicles())
	}

	a := &Assignment{
		manager: manager,
		matrix:  m,
		next:    make([]int64, manager.Size()),
		vehicle: make([]int, manager.Size()),
	}
	for i := range a.next {
		a.next[i] = int64(i)
		a.vehicle[i] = -1
	}

	for v, nodes := range routes {
		prev := manager.StartIndex(v)
		a.vehicle[prev] = v

		for _, node := range nodes {
			if node < 0 || node >= manager.NumNodes() || node == manager.Depot() {
				return nil, fmt.Errorf("new assignment: vehicle %d visits invalid node %d", v, node)
			}
			idx := manager.NodeToIndex(node)
			if a.vehicle[idx] != -1 {
				return nil, fmt.Errorf("new assignment: node %d visited more than once", node)
			}
			a.vehicle[idx] = v
			a.next[prev] = idx
			a.objective += a.ArcCost(prev, idx)
			prev = idx
		}

		end := manager.EndIndex(v)
		a.vehicle[end] = v
		a.next[prev] = end
		a.objective += a.ArcCost(prev, end)
	}

	return a, nil
}

func (a *Assignment) Start(vehicle int) int64 { return a.manager.StartIndex(vehicle) }

func (a *Assignment) IsEnd(index int64) bool { return a.manager.IsEnd(index) }

func (a *Assignment) Next(index int64) int64 { return a.next[index] }

// ArcCost looks the arc up in the travel time matrix through the node mapping.
func (a *Assignment) ArcCost(from, to int64) int64 {
	return a.matrix.At(a.manager.IndexToNode(from), a.manager.IndexToNode(to))
}

func (a *Assignment) Size() int { return a.manager.Size() }

// Objective returns the total arc cost of all routes.
func (a *Assignment) Objective() int64 { return a.objective }

// VehicleOf returns the vehicle serving index, or -1 when it is inactive.
func (a *Assignment) VehicleOf(index int64) int { return a.vehicle[index] }

// Manager returns the index manager the assignment was built with.
func (a *Assignment) Manager() *IndexManager { return a.manager }
