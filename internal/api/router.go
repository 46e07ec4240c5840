package api

import (
	"context"
	"net/http"
	"pdp-route-service/internal/api/handlers"
	"pdp-route-service/internal/platform/metrics"
	"pdp-route-service/internal/ports"
	"pdp-route-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Problems ports.ProblemRepository
	Planner  *services.Planner
	// Ping backs the health check; nil skips the store check.
	Ping func(ctx context.Context) error
	// Limiter throttles every route except /health and /metrics; nil disables it.
	Limiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Ping: d.Ping}
	problemHandler := &handlers.ProblemHandler{Repo: d.Problems}
	planHandler := &handlers.PlanHandler{Planner: d.Planner}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("/problems", rateLimitMiddleware(d.Limiter, http.HandlerFunc(problemHandler.List)))
	mux.Handle("/plans", rateLimitMiddleware(d.Limiter, http.HandlerFunc(planHandler.Plan)))
	mux.Handle("/matrices/serialize", rateLimitMiddleware(d.Limiter, http.HandlerFunc(handlers.SerializeMatrix)))

	return requestIDMiddleware(loggingMiddleware(mux))
}
