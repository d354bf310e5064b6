package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes recorded per registry resource.
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
)

// Metrics holds the portal's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RemoteFetches        *prometheus.CounterVec
	RemoteFetchDuration  *prometheus.HistogramVec
	TransferSubmissions  *prometheus.CounterVec
	WizardSessionsActive prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RemoteFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_portal_remote_fetches_total",
			Help: "Registry reads by resource and outcome (success or fallback)",
		}, []string{"resource", "outcome"}),
		RemoteFetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atlas_portal_remote_fetch_duration_seconds",
			Help:    "Latency of registry reads including normalization",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		TransferSubmissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "atlas_portal_transfer_submissions_total",
			Help: "Transfer request submissions by outcome",
		}, []string{"outcome"}),
		WizardSessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "atlas_portal_wizard_sessions_active",
			Help: "Transfer wizard sessions currently held in memory",
		}),
	}
}

// ObserveFetch records one registry read.
func (m *Metrics) ObserveFetch(resource, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.RemoteFetches.WithLabelValues(resource, outcome).Inc()
	m.RemoteFetchDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// ObserveSubmission records one wizard submission attempt.
func (m *Metrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.TransferSubmissions.WithLabelValues(outcome).Inc()
}

// SetActiveSessions reports the current wizard session count.
func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.WizardSessionsActive.Set(float64(n))
}
