package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry boundary.
type Metrics struct {
	// Snapshot fetch latency against the node (cache misses only)
	FetchLatency prometheus.Histogram

	// Snapshot cache outcomes
	CacheOutcome *prometheus.CounterVec

	// Node write outcomes by operation and result
	WriteOutcome *prometheus.CounterVec
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		FetchLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "brickgate_registry_snapshot_fetch_duration_seconds",
			Help:    "Duration of joined request+whitelist reads against the node",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CacheOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickgate_registry_snapshot_cache_total",
			Help: "Snapshot cache lookups by outcome",
		}, []string{"outcome"}), // outcome: "hit", "miss"

		WriteOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickgate_registry_writes_total",
			Help: "Registry write transactions by operation and result",
		}, []string{"operation", "result"}),
	}
}

// ObserveFetchLatency records the duration of a node snapshot fetch.
func (m *Metrics) ObserveFetchLatency(d time.Duration) {
	if m != nil {
		m.FetchLatency.Observe(d.Seconds())
	}
}

// IncrementCache records a cache lookup outcome.
func (m *Metrics) IncrementCache(outcome string) {
	if m != nil {
		m.CacheOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementWrite records a write transaction result.
func (m *Metrics) IncrementWrite(operation, result string) {
	if m != nil {
		m.WriteOutcome.WithLabelValues(operation, result).Inc()
	}
}
