package ports

// Read-only view over a solved routing assignment.
// Indices are routing-engine indices; each vehicle has its own start and end index.
type RouteQuery interface {
	// Return the start index of the given vehicle.
	Start(vehicle int) int64
	// Report whether index is a vehicle end (terminal) index.
	IsEnd(index int64) bool
	// Return the index visited right after index.
	Next(index int64) int64
	// Return the cost of travelling the arc from -> to.
	ArcCost(from, to int64) int64
}

// Optional extension of RouteQuery that knows how many indices it holds.
// Callers use it to bound route walks.
type SizedRouteQuery interface {
	RouteQuery
	// Return the number of indices in the assignment.
	Size() int
}
