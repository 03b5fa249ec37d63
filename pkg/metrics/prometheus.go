package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	sessionEvents    *prometheus.CounterVec
	signalsGenerated *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	latency          *prometheus.HistogramVec
}

// New creates a recorder registered with the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder on a custom registry (tests use a
// fresh prometheus.NewRegistry()).
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		sessionEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signaldash_session_events_total",
				Help: "Session lifecycle events (login, register, logout)",
			},
			[]string{"event"},
		),
		signalsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signaldash_signals_generated_total",
				Help: "Signals produced by the generator",
			},
			[]string{"symbol", "direction"},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signaldash_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signaldash_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSessionEvent counts a session lifecycle event.
func (r *Recorder) RecordSessionEvent(event string) {
	r.sessionEvents.WithLabelValues(event).Inc()
}

// RecordSignalGenerated counts a generated signal.
func (r *Recorder) RecordSignalGenerated(symbol, direction string) {
	r.signalsGenerated.WithLabelValues(symbol, direction).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Noop discards every measurement.
type Noop struct{}

func (Noop) RecordSessionEvent(string)            {}
func (Noop) RecordSignalGenerated(string, string) {}
func (Noop) RecordError(string)                   {}
func (Noop) RecordLatency(string, float64)        {}
