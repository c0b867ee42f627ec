package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the voting proxy.
var Metrics = struct {
	VotesInitiated   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	UpstreamDuration *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics() {
	Metrics.VotesInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bellak_votes_initiated_total",
			Help: "Vote initiation requests, by outcome (forwarded, rejected, upstream_error, unreachable).",
		},
		[]string{"outcome"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bellak_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint, method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.UpstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bellak_upstream_request_duration_seconds",
			Help:    "Outbound voting API request duration in seconds, by endpoint, method and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bellak_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	prometheus.MustRegister(
		Metrics.VotesInitiated,
		Metrics.RequestDuration,
		Metrics.UpstreamDuration,
		Metrics.RequestsInFlight,
	)
}

// ObserveUpstream is the upstream client's metrics hook. Status 0 marks a
// request that never produced a response.
func ObserveUpstream(method, path string, status int, duration time.Duration) {
	if Metrics.UpstreamDuration == nil {
		return
	}
	Metrics.UpstreamDuration.
		WithLabelValues(sanitizeUpstreamPath(path), method, strconv.Itoa(status)).
		Observe(duration.Seconds())
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes inbound paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	if strings.HasPrefix(path, "/api/categories/") {
		rest := path[len("/api/categories/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/categories/:id" + rest[i:]
		}
		return "/api/categories/:id"
	}
	return path
}

// sanitizeUpstreamPath collapses per-id upstream paths to one label each.
func sanitizeUpstreamPath(path string) string {
	if strings.HasPrefix(path, "/categories/") && path != "/categories/" {
		rest := strings.TrimPrefix(path, "/categories/")
		rest = strings.TrimSuffix(rest, "/")
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/categories/:id/" + rest[i+1:] + "/"
		}
		return "/categories/:id/"
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
