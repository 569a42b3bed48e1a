package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors used by the HTTP layer and the
// leaderboard pipeline.
type Metrics struct {
	RequestsTotal        *prometheus.CounterVec
	RequestDuration      *prometheus.HistogramVec
	LeaderboardTransform *prometheus.HistogramVec
	DiscordAPICalls      *prometheus.CounterVec
}

// NewMetrics registers the API collectors on the given registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "axobot_api_requests_total",
			Help: "Number of HTTP requests handled, by method, route and status code.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "axobot_api_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		LeaderboardTransform: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "axobot_api_leaderboard_transform_seconds",
			Help:    "Time spent enriching leaderboard pages, by curve family.",
			Buckets: prometheus.DefBuckets,
		}, []string{"curve"}),
		DiscordAPICalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "axobot_api_discord_calls_total",
			Help: "Calls issued to the Discord API through the bot client, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	registry.MustRegister(m.RequestsTotal, m.RequestDuration, m.LeaderboardTransform, m.DiscordAPICalls)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware records request counts and latencies, labelled by the chi
// route pattern rather than the raw path so guild IDs do not explode the
// label cardinality.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
