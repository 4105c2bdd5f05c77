package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for upboard.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	upstreamErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	pagesFetched    prometheus.Counter
	sessionsIssued  prometheus.Counter
	requestsTotal   *prometheus.CounterVec
}

// UsageSnapshot is a point-in-time view of service counters, served on the
// operational stats endpoint.
type UsageSnapshot struct {
	TotalRequests  int64   `json:"totalRequests"`
	ErrorRate      float64 `json:"errorRate"`
	CacheHitRate   float64 `json:"cacheHitRate"`
	PagesFetched   int64   `json:"upstreamPagesFetched"`
	SessionsIssued int64   `json:"sessionsIssued"`
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upboard_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upboard_upstream_errors_total",
				Help: "Total errors from the Up API by operation.",
			},
			[]string{"operation"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upboard_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upboard_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		pagesFetched: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "upboard_upstream_pages_total",
				Help: "Total transaction pages fetched from the Up API.",
			},
		),
		sessionsIssued: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "upboard_sessions_issued_total",
				Help: "Total dashboard sessions issued after token verification.",
			},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "upboard_requests_total",
				Help: "Total requests processed.",
			},
			[]string{"status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrUpstreamError increments the upstream error counter.
func (m *Metrics) IncrUpstreamError(operation string) {
	m.upstreamErrors.WithLabelValues(operation).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// AddPagesFetched records upstream transaction pages followed.
func (m *Metrics) AddPagesFetched(n int) {
	m.pagesFetched.Add(float64(n))
}

// IncrSessionIssued counts a successful token verification.
func (m *Metrics) IncrSessionIssued() {
	m.sessionsIssued.Inc()
}

// IncrRequest increments the request counter with a status label.
func (m *Metrics) IncrRequest(status string) {
	m.requestsTotal.WithLabelValues(status).Inc()
}

// GetUsageSnapshot returns current counter values for the stats endpoint.
func (m *Metrics) GetUsageSnapshot() *UsageSnapshot {
	success := getCounterValue(m.requestsTotal, "success")
	errCount := getCounterValue(m.requestsTotal, "error")
	total := success + errCount

	hits := getCounterValue(m.cacheHits, "lookups")
	misses := getCounterValue(m.cacheMisses, "lookups")

	errorRate := float64(0)
	if total > 0 {
		errorRate = errCount / total
	}
	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &UsageSnapshot{
		TotalRequests:  int64(total),
		ErrorRate:      errorRate,
		CacheHitRate:   hitRate,
		PagesFetched:   int64(readCounter(m.pagesFetched)),
		SessionsIssued: int64(readCounter(m.sessionsIssued)),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	return readCounter(cv.WithLabelValues(label))
}

func readCounter(c prometheus.Counter) float64 {
	m := &dto.Metric{}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
