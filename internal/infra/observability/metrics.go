package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the client SDK.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
	transportErrors *prometheus.CounterVec
	sessionEvents   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// SDK metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "motortrust_request_duration_seconds",
				Help:    "Duration of API requests by resource.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resource"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "motortrust_requests_total",
				Help: "Total API requests by resource and outcome.",
			},
			[]string{"resource", "outcome"},
		),
		transportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "motortrust_transport_errors_total",
				Help: "Total network/transport failures by resource.",
			},
			[]string{"resource"},
		),
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "motortrust_session_events_total",
				Help: "Session lifecycle events (login, logout, cache_fallback).",
			},
			[]string{"event"},
		),
	}
}

// RecordRequest records one completed API request.
func (m *Metrics) RecordRequest(resource, outcome string, d time.Duration) {
	m.requestDuration.WithLabelValues(resource).Observe(d.Seconds())
	m.requestsTotal.WithLabelValues(resource, outcome).Inc()
}

// IncrTransportError increments the transport failure counter.
func (m *Metrics) IncrTransportError(resource string) {
	m.transportErrors.WithLabelValues(resource).Inc()
}

// IncrSessionEvent increments a session lifecycle counter.
func (m *Metrics) IncrSessionEvent(event string) {
	m.sessionEvents.WithLabelValues(event).Inc()
}

// Snapshot is a point-in-time view of request counters, used by the CLI
// to print a summary after a command.
type Snapshot struct {
	Requests        float64
	Rejected        float64
	TransportErrors float64
	CacheFallbacks  float64
}

// GetSnapshot gathers current counter values from the registry.
func (m *Metrics) GetSnapshot(resources []string) Snapshot {
	var s Snapshot
	for _, r := range resources {
		s.Requests += getCounterValue(m.requestsTotal, r, "ok") +
			getCounterValue(m.requestsTotal, r, "rejected")
		s.Rejected += getCounterValue(m.requestsTotal, r, "rejected")
		s.TransportErrors += getCounterValue(m.transportErrors, r)
	}
	s.CacheFallbacks = getCounterValue(m.sessionEvents, "cache_fallback")
	return s
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
