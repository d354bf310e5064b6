package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveFetch(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveFetch("parcels", OutcomeSuccess, 10*time.Millisecond)
	m.ObserveFetch("parcels", OutcomeFallback, 5*time.Millisecond)
	m.ObserveFetch("parcels", OutcomeFallback, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteFetches.WithLabelValues("parcels", OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RemoteFetches.WithLabelValues("parcels", OutcomeFallback)))
}

func TestObserveSubmissionAndSessions(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSubmission("failure")
	m.SetActiveSessions(4)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransferSubmissions.WithLabelValues("failure")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.WizardSessionsActive))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveFetch("parcels", OutcomeSuccess, time.Second)
	m.ObserveSubmission("success")
	m.SetActiveSessions(1)
}
