package domain

import "fmt"

// Vehicle accumulates the stops of one route while it is being planned.
// Time is the arrival time at the last visited node.
type Vehicle struct {
	VehicleID int
	Horizon   int64
	Nodes     []int
	Time      int64
}

func NewVehicle(id int, horizon int64) *Vehicle {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Vehicle{
		VehicleID: id,
		Horizon:   horizon,
	}
}

// Visit appends a node reached at the given time.
func (v *Vehicle) Visit(node int, arriveAt int64) error {
	if arriveAt > v.Horizon {
		return fmt.Errorf("visit node %d: vehicle %d exceeds horizon (arrive=%d horizon=%d)", node, v.VehicleID, arriveAt, v.Horizon)
	}
	if arriveAt < v.Time {
		return fmt.Errorf("visit node %d: vehicle %d cannot arrive at %d before %d", node, v.VehicleID, arriveAt, v.Time)
	}
	v.Nodes = append(v.Nodes, node)
	v.Time = arriveAt
	return nil
}

// Last returns the most recently visited node, or fallback when the
// route is still empty.
func (v *Vehicle) Last(fallback int) int {
	if len(v.Nodes) == 0 {
		return fallback
	}
	return v.Nodes[len(v.Nodes)-1]
}

// Clear drops all planned stops.
func (v *Vehicle) Clear() {
	v.Nodes = nil
	v.Time = 0
}
