package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the aggregator module.
type Metrics struct {
	// Per-tier fetch latencies
	TierLatency *prometheus.HistogramVec

	// Per-tier fetch outcomes
	TierOutcome *prometheus.CounterVec

	// Overall aggregation latency
	AggregateLatency prometheus.Histogram

	// Aggregations that completed with at least one failed tier
	PartialResults prometheus.Counter
}

// New creates a new Metrics instance with all aggregator metrics registered.
func New() *Metrics {
	return &Metrics{
		TierLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "civiscope_aggregator_tier_duration_seconds",
			Help:    "Duration of representative fetches by tier",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"tier"}), // tier: "federal", "state", "local"

		TierOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "civiscope_aggregator_tier_outcomes_total",
			Help: "Total tier fetch outcomes by tier and status",
		}, []string{"tier", "status"}), // status: "ok", "retried", "failed"

		AggregateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "civiscope_aggregator_duration_seconds",
			Help:    "Duration of full roster aggregation across all allowed tiers",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		PartialResults: promauto.NewCounter(prometheus.CounterOpts{
			Name: "civiscope_aggregator_partial_results_total",
			Help: "Total aggregations that returned a roster with one or more failed tiers",
		}),
	}
}

// ObserveTierLatency records the duration of a single tier fetch.
func (m *Metrics) ObserveTierLatency(tier string, d time.Duration) {
	if m != nil {
		m.TierLatency.WithLabelValues(tier).Observe(d.Seconds())
	}
}

// IncrementTierOutcome records the outcome of a tier fetch.
func (m *Metrics) IncrementTierOutcome(tier, status string) {
	if m != nil {
		m.TierOutcome.WithLabelValues(tier, status).Inc()
	}
}

// ObserveAggregateLatency records the total aggregation duration.
func (m *Metrics) ObserveAggregateLatency(d time.Duration) {
	if m != nil {
		m.AggregateLatency.Observe(d.Seconds())
	}
}

// IncrementPartialResults records an aggregation that lost at least one tier.
func (m *Metrics) IncrementPartialResults() {
	if m != nil {
		m.PartialResults.Inc()
	}
}
