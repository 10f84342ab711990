package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)

	// Solves counts solve attempts by problem type and outcome (ok, invalid, error)
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_solves_total", Help: "Solve requests by VRP type and outcome."},
		[]string{"vrp_type", "outcome"},
	)
	// SolveDuration tracks generator+builder wall time in milliseconds
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "vrp_solve_duration_ms", Help: "Solve duration in ms.", Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100}},
		[]string{"vrp_type"},
	)
	// CustomersDropped counts customers no vehicle could serve
	CustomersDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_customers_dropped_total", Help: "Customers left unassigned by capacity exhaustion."},
		[]string{"vrp_type"},
	)
	// RunRecordFailures counts run-history writes that failed
	RunRecordFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "vrp_run_record_failures_total", Help: "Failed run history writes."},
	)
	// StreamDropped counts runs not delivered to a full stream subscriber
	StreamDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "vrp_stream_dropped_total", Help: "Runs dropped for slow stream subscribers."},
	)
	// RateLimited counts requests rejected by the solve limiter
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_rate_limited_total", Help: "Requests rejected with 429."},
	)
)

var regOnce sync.Once

// RegisterDefault registers collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(CustomersDropped)
		Registry.MustRegister(RunRecordFailures)
		Registry.MustRegister(StreamDropped)
		Registry.MustRegister(RateLimited)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler exposes Registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, path string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, path).Observe(dur.Seconds())
}

func ObserveSolve(vrpType string, dur time.Duration, dropped int) {
	Solves.WithLabelValues(vrpType, "ok").Inc()
	SolveDuration.WithLabelValues(vrpType).Observe(float64(dur.Microseconds()) / 1000)
	if dropped > 0 {
		CustomersDropped.WithLabelValues(vrpType).Add(float64(dropped))
	}
}

func ObserveSolveFailure(vrpType, outcome string) {
	Solves.WithLabelValues(vrpType, outcome).Inc()
}
