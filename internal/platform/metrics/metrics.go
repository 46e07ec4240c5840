package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// OperationDuration records timed operations (matrix build, cache I/O, planning) in seconds
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "operation_duration_seconds", Help: "Duration of timed operations in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"op", "outcome"},
	)
	// MatrixCacheLookups counts matrix cache lookups by backend and result (hit, miss, error)
	MatrixCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "matrix_cache_lookups_total", Help: "Matrix cache lookups by backend and result."},
		[]string{"backend", "result"},
	)
	// PlansTotal counts planning outcomes (solved, no_solution, error)
	PlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "plans_total", Help: "Planning requests by outcome."},
		[]string{"outcome"},
	)
	// RouteCost tracks the total cost of solved plans in minutes
	RouteCost = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "plan_total_cost_minutes", Help: "Total route cost of solved plans in minutes.", Buckets: []float64{30, 60, 120, 240, 480, 960, 1920, 3840}},
	)
)

// RegisterDefault registers collectors to the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(OperationDuration)
		Registry.MustRegister(MatrixCacheLookups)
		Registry.MustRegister(PlansTotal)
		Registry.MustRegister(RouteCost)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
