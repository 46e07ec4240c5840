// Package routing holds the engine-side view of a solved plan: the mapping
// between location nodes and routing indices, and the Assignment that the
// route reporter walks.
package routing

import (
	"fmt"
	"pdp-route-service/internal/domain"
)

// IndexManager maps location nodes to routing indices.
//
// Every non-depot node owns one index, in increasing node order. Each vehicle
// then gets a start index and an end index, both standing for the depot:
//
//	[0, n-1)          non-depot nodes
//	[n-1, n-1+v)      vehicle starts
//	[n-1+v, n-1+2v)   vehicle ends
type IndexManager struct {
	numNodes    int
	numVehicles int
	depot       int
	indexToNode []int
	nodeToIndex []int64
}

func NewIndexManager(numNodes, numVehicles, depot int) (*IndexManager, error) {
	if numNodes < 1 {
		return nil, fmt.Errorf("index manager: numNodes must be >= 1, got %d", numNodes)
	}
	if numVehicles < 1 || numVehicles > domain.MaxVehicles {
		return nil, fmt.Errorf("index manager: numVehicles must be in [1,%d], got %d", domain.MaxVehicles, numVehicles)
	}
	if depot < 0 || depot >= numNodes {
		return nil, fmt.Errorf("index manager: depot %d out of range [0,%d)", depot, numNodes)
	}

	m := &IndexManager{
		numNodes:    numNodes,
		numVehicles: numVehicles,
		depot:       depot,
		indexToNode: make([]int, 0, numNodes-1+2*numVehicles),
		nodeToIndex: make([]int64, numNodes),
	}

	for node := 0; node < numNodes; node++ {
		if node == depot {
			m.nodeToIndex[node] = -1
			continue
		}
		m.nodeToIndex[node] = int64(len(m.indexToNode))
		m.indexToNode = append(m.indexToNode, node)
	}
	// starts, then ends
	for i := 0; i < 2*numVehicles; i++ {
		m.indexToNode = append(m.indexToNode, depot)
	}

	return m, nil
}

// Size returns the number of routing indices.
func (m *IndexManager) Size() int { return len(m.indexToNode) }

func (m *IndexManager) NumNodes() int { return m.numNodes }
func (m *IndexManager) NumVehicles() int { return m.numVehicles }
func (m *IndexManager) Depot() int { return m.depot }

// IndexToNode returns the location node behind a routing index.
func (m *IndexManager) IndexToNode(index int64) int {
	return m.indexToNode[index]
}

// NodeToIndex returns the routing index of a non-depot node, or -1 for the
// depot, which is reached only through vehicle start and end indices.
func (m *IndexManager) NodeToIndex(node int) int64 {
	return m.nodeToIndex[node]
}

func (m *IndexManager) StartIndex(vehicle int) int64 {
	return int64(m.numNodes - 1 + vehicle)
}

func (m *IndexManager) EndIndex(vehicle int) int64 {
	return int64(m.numNodes - 1 + m.numVehicles + vehicle)
}

// IsEnd reports whether index is one of the vehicle end indices.
func (m *IndexManager) IsEnd(index int64) bool {
	return index >= int64(m.numNodes-1+m.numVehicles)
}
