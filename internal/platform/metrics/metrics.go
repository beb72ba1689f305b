package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics holds the counters a check run produces. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Outcome of each probe by kind ("status", "expiry") and result ("ok", "fail", "skipped")
	CheckOutcome *prometheus.CounterVec

	// Expiry classifications by tier tag
	ExpiryTier *prometheus.CounterVec

	// Days until expiry of the last evaluation per domain
	DaysLeft *prometheus.GaugeVec

	// External lookup latency by source ("whois", "registrar")
	LookupLatency *prometheus.HistogramVec

	// Expiry checks suppressed by a fresh marker
	MarkerSkips prometheus.Counter
}

// New creates a Metrics instance registered on its own registry so that
// repeated construction in tests does not collide on the default registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		CheckOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "domainhc_check_outcomes_total",
			Help: "Probe outcomes by kind and result",
		}, []string{"kind", "result"}),

		ExpiryTier: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "domainhc_expiry_tier_total",
			Help: "Expiry classifications by tier",
		}, []string{"tier"}),

		DaysLeft: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "domainhc_expiry_days_left",
			Help: "Days until registration expiry at the last evaluation",
		}, []string{"domain"}),

		LookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "domainhc_lookup_duration_seconds",
			Help:    "Duration of expiry lookups by source",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),

		MarkerSkips: factory.NewCounter(prometheus.CounterOpts{
			Name: "domainhc_marker_skips_total",
			Help: "Expiry checks skipped because a fresh marker exists",
		}),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// IncrementOutcome records a probe outcome.
func (m *Metrics) IncrementOutcome(kind, result string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(kind, result).Inc()
	}
}

// RecordTier records an expiry classification and, when known, the days left.
func (m *Metrics) RecordTier(domain, tier string, daysLeft int, hasDays bool) {
	if m == nil {
		return
	}
	m.ExpiryTier.WithLabelValues(tier).Inc()
	if hasDays {
		m.DaysLeft.WithLabelValues(domain).Set(float64(daysLeft))
	}
}

// ObserveLookup records the duration of an expiry lookup.
func (m *Metrics) ObserveLookup(source string, d time.Duration) {
	if m != nil {
		m.LookupLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementMarkerSkip records an expiry check suppressed by the marker cache.
func (m *Metrics) IncrementMarkerSkip() {
	if m != nil {
		m.MarkerSkips.Inc()
	}
}

// Push sends the collected metrics to a Prometheus Pushgateway. No-op when url is empty.
func (m *Metrics) Push(url, job string) error {
	if m == nil || url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(m.registry).Push(); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
