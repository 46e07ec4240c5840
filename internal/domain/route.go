package domain

// RouteTrace is the path a single vehicle follows in a solved plan, from its
// start index to its end index, with the accumulated arc cost along it.
// Indices are routing-engine indices, not node numbers.
type RouteTrace struct {
	VehicleID int
	Indices   []int64
	Cost      int64
}

// Stops returns the number of visited indices, start and end included.
func (t RouteTrace) Stops() int { return len(t.Indices) }

// Represents the reported plan for a whole fleet.
// A RoutePlan is read-only output built after a solve completes.
type RoutePlan struct {
	PlanID    string
	Problem   string
	Traces    []RouteTrace
	Total     int64
	Objective int64
}
