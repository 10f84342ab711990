package api

import (
	"net/http"
	"vrp-visualizer-service/internal/api/handlers"
	"vrp-visualizer-service/internal/platform/metrics"
	"vrp-visualizer-service/internal/ports"
	"vrp-visualizer-service/internal/services"

	"golang.org/x/time/rate"
)

type Options struct {
	AllowedOrigins []string

	// Solve-family requests per second across all clients. Zero disables limiting.
	RateLimit rate.Limit
	RateBurst int

	// Default page size of GET /api/runs
	RunsLimit int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	solver *services.Solver,
	catalog ports.AlgorithmCatalog,
	runs ports.RunRepository,
	subscriber handlers.RunSubscriber,
	opts Options,
) http.Handler {
	mux := http.NewServeMux()

	algoHandler := &handlers.AlgorithmHandler{Catalog: catalog}
	solveHandler := &handlers.SolveHandler{Solver: solver}
	runHandler := &handlers.RunHandler{
		Runs:         runs,
		Subscriber:   subscriber,
		DefaultLimit: opts.RunsLimit,
		CheckOrigin:  originChecker(opts.AllowedOrigins),
	}

	limit := func(h http.HandlerFunc) http.Handler { return h }
	if opts.RateLimit > 0 {
		limiter := rate.NewLimiter(opts.RateLimit, max(opts.RateBurst, 1))
		limit = func(h http.HandlerFunc) http.Handler { return rateLimitMiddleware(limiter, h) }
	}

	mux.HandleFunc("/api/health", handlers.Health)
	mux.HandleFunc("/api/algorithms", algoHandler.List)
	mux.Handle("/api/solve", limit(solveHandler.Solve))
	mux.Handle("/api/compare", limit(solveHandler.Compare))
	mux.Handle("/api/trials", limit(solveHandler.Trials))
	mux.HandleFunc("/api/runs", runHandler.List)
	mux.HandleFunc("/api/runs/stream", runHandler.Stream)
	mux.HandleFunc("/api/runs/{id}", runHandler.Get)
	mux.Handle("/metrics", metrics.Handler())

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(opts.AllowedOrigins, mux)))
}
