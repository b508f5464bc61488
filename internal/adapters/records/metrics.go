package records

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"librarycore/internal/core"
)

// Metrics tracks the per-path request tally reported by /health and mirrors
// it to prometheus counters served on /metrics. The tally lives for the
// process lifetime only.
type Metrics struct {
	recorder *core.RequestRecorder
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics builds a metrics set around the given recorder using a private
// prometheus registry, so handlers can be constructed repeatedly in tests.
func NewMetrics(recorder *core.RequestRecorder) *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "librarycore_requests_total",
		Help: "Routed HTTP requests by path.",
	}, []string{"path"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "librarycore_request_errors_total",
		Help: "Requests answered with a client or server error status, by path.",
	}, []string{"path"})
	registry.MustRegister(requests, failures)
	return &Metrics{recorder: recorder, registry: registry, requests: requests, failures: failures}
}

// Observe records one routed request and its response status.
func (m *Metrics) Observe(path string, status int) {
	failed := status >= http.StatusBadRequest
	m.recorder.Observe(path, failed)
	m.requests.WithLabelValues(path).Inc()
	if failed {
		m.failures.WithLabelValues(path).Inc()
	}
}

// Snapshot returns the current request tally.
func (m *Metrics) Snapshot() core.RequestSnapshot { return m.recorder.Snapshot() }

// HTTPHandler serves the prometheus exposition format for this metrics set.
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
