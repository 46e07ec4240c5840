package report_test

import (
	"testing"

	"pdp-route-service/internal/report"

	"github.com/stretchr/testify/require"
)

type arc struct{ from, to int64 }

// fakeQuery is a hand-built solved assignment.
type fakeQuery struct {
	starts map[int]int64
	ends   map[int64]bool
	next   map[int64]int64
	costs  map[arc]int64
}

func (q *fakeQuery) Start(vehicle int) int64 { return q.starts[vehicle] }
func (q *fakeQuery) IsEnd(index int64) bool { return q.ends[index] }
func (q *fakeQuery) Next(index int64) int64 { return q.next[index] }
func (q *fakeQuery) ArcCost(from, to int64) int64 { return q.costs[arc{from, to}] }

type sizedQuery struct {
	*fakeQuery
	size int
}

func (q *sizedQuery) Size() int { return q.size }

func TestTraceRoute_TwoLocations(t *testing.T) {
	q := &fakeQuery{
		starts: map[int]int64{0: 0},
		ends:   map[int64]bool{1: true},
		next:   map[int64]int64{0: 1},
		costs:  map[arc]int64{{0, 1}: 5},
	}

	tr, err := report.TraceRoute(0, q)
	require.NoError(t, err)
	require.Equal(t, 0, tr.VehicleID)
	require.Equal(t, []int64{0, 1}, tr.Indices)
	require.Equal(t, int64(5), tr.Cost)
}

func TestTraceRoute_StartIsEnd(t *testing.T) {
	q := &fakeQuery{
		starts: map[int]int64{0: 4},
		ends:   map[int64]bool{4: true},
	}

	tr, err := report.TraceRoute(0, q)
	require.NoError(t, err)
	require.Equal(t, []int64{4}, tr.Indices)
	require.Zero(t, tr.Cost)
}

func TestTraceAllRoutes_OrderAndTotal(t *testing.T) {
	// vehicle v: start 10+v -> stops -> end 20+v
	q := &fakeQuery{
		starts: map[int]int64{0: 10, 1: 11, 2: 12},
		ends:   map[int64]bool{20: true, 21: true, 22: true},
		next: map[int64]int64{
			10: 1, 1: 2, 2: 20,
			11: 21,
			12: 3, 3: 22,
		},
		costs: map[arc]int64{
			{10, 1}: 4, {1, 2}: 6, {2, 20}: 9,
			{11, 21}: 0,
			{12, 3}: 7, {3, 22}: 8,
		},
	}

	traces, total, err := report.TraceAllRoutes(3, q)
	require.NoError(t, err)
	require.Len(t, traces, 3)

	var sum int64
	for i, tr := range traces {
		require.Equal(t, i, tr.VehicleID)
		sum += tr.Cost
	}
	require.Equal(t, sum, total)
	require.Equal(t, int64(34), total)

	require.Equal(t, []int64{10, 1, 2, 20}, traces[0].Indices)
	require.Equal(t, []int64{11, 21}, traces[1].Indices)
	require.Equal(t, []int64{12, 3, 22}, traces[2].Indices)
	require.Equal(t, int64(19), traces[0].Cost)
	require.Equal(t, int64(0), traces[1].Cost)
	require.Equal(t, int64(15), traces[2].Cost)
}

func TestTraceAllRoutes_NoVehicles(t *testing.T) {
	traces, total, err := report.TraceAllRoutes(0, &fakeQuery{})
	require.NoError(t, err)
	require.Empty(t, traces)
	require.Zero(t, total)

	_, _, err = report.TraceAllRoutes(-1, &fakeQuery{})
	require.Error(t, err)
}

func TestTraceRoute_PickupBeforeDelivery(t *testing.T) {
	const pickup, delivery = 3, 5
	q := &fakeQuery{
		starts: map[int]int64{0: 10},
		ends:   map[int64]bool{11: true},
		next:   map[int64]int64{10: pickup, pickup: 7, 7: delivery, delivery: 11},
		costs:  map[arc]int64{{10, pickup}: 1, {pickup, 7}: 1, {7, delivery}: 1, {delivery, 11}: 1},
	}

	tr, err := report.TraceRoute(0, q)
	require.NoError(t, err)

	pos := map[int64]int{}
	for i, idx := range tr.Indices {
		pos[idx] = i
	}
	require.Contains(t, pos, int64(pickup))
	require.Contains(t, pos, int64(delivery))
	require.Less(t, pos[pickup], pos[delivery])
}

func TestTraceRoute_NonTerminatingSizedQuery(t *testing.T) {
	q := &sizedQuery{
		fakeQuery: &fakeQuery{
			starts: map[int]int64{0: 0},
			ends:   map[int64]bool{9: true},
			next:   map[int64]int64{0: 1, 1: 2, 2: 0},
		},
		size: 4,
	}

	_, err := report.TraceRoute(0, q)
	require.ErrorIs(t, err, report.ErrInvalidRouteQuery)

	_, _, err = report.TraceAllRoutes(1, q)
	require.ErrorIs(t, err, report.ErrInvalidRouteQuery)
}
