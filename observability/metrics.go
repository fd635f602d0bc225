package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const namespace = "structviz"

// Outcome label values for Metrics.Operations.
const (
	OutcomeApplied = "applied"
	OutcomeIgnored = "ignored"
	OutcomeBusy    = "busy"
	OutcomeError   = "error"
)

// Metrics holds the Prometheus collectors recorded by the session layer.
// Each Metrics owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	Operations *prometheus.CounterVec
	TraceSteps *prometheus.HistogramVec
	History    *prometheus.CounterVec
	InFlight   prometheus.Gauge
	Describe   *prometheus.CounterVec
}

// NewMetrics registers the structviz collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Intents received, by structure, operation and outcome.",
		}, []string{"structure", "op", "outcome"}),
		TraceSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "trace_steps",
			Help:      "Number of steps in each produced trace.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"structure"}),
		History: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_moves_total",
			Help:      "Undo and redo requests, by structure, direction and whether they moved.",
		}, []string{"structure", "direction", "moved"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "traces_in_flight",
			Help:      "Traces currently being played.",
		}),
		Describe: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "describe_requests_total",
			Help:      "Descriptive-info requests, by whether the fallback was used.",
		}, []string{"fallback"}),
	}
	reg.MustRegister(
		m.Operations, m.TraceSteps, m.History, m.InFlight, m.Describe,
		collectors.NewGoCollector(),
	)

	return m
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the /metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Tracer returns the structviz tracer from the global provider. With no SDK
// installed this is a no-op tracer whose spans still carry context.
func Tracer() trace.Tracer { return otel.Tracer(ServiceName) }
