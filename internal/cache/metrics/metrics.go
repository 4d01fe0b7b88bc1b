package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the resolution cache.
type Metrics struct {
	// Cache lookups by result
	Lookups *prometheus.CounterVec

	// Entries removed because their TTL lapsed
	Evictions prometheus.Counter

	// Entries removed by tier invalidation
	Invalidations prometheus.Counter

	// Time spent computing a resolution on a cache miss
	ComputeDuration prometheus.Histogram
}

// New creates a new Metrics instance with all cache metrics registered.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiscope_cache_lookups_total",
			Help: "Total cache lookups by result",
		}, []string{"result"}), // result: "hit", "miss", "expired", "error"

		Evictions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiscope_cache_evictions_total",
			Help: "Total cache entries evicted after TTL expiry",
		}),

		Invalidations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiscope_cache_invalidations_total",
			Help: "Total cache entries removed by tier invalidation",
		}),

		ComputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "civiscope_cache_compute_duration_seconds",
			Help:    "Duration of resolution computations on cache misses",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// ObserveComputeDuration records how long a cache miss took to compute.
func (m *Metrics) ObserveComputeDuration(d time.Duration) {
	if m != nil {
		m.ComputeDuration.Observe(d.Seconds())
	}
}

// IncrementLookup records a cache lookup outcome.
func (m *Metrics) IncrementLookup(result string) {
	if m != nil {
		m.Lookups.WithLabelValues(result).Inc()
	}
}

// AddEvictions records TTL evictions.
func (m *Metrics) AddEvictions(n int) {
	if m != nil {
		m.Evictions.Add(float64(n))
	}
}

// AddInvalidations records entries dropped by tier invalidation.
func (m *Metrics) AddInvalidations(n int) {
	if m != nil {
		m.Invalidations.Add(float64(n))
	}
}
