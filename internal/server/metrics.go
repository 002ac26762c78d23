package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the Prometheus instruments exposed on the optional
// metrics endpoint. Each Metrics owns its registry, so constructing more
// than one (tests do) never trips duplicate registration.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	calculationsTotal   *prometheus.CounterVec
	parseErrorsTotal    *prometheus.CounterVec
	evalErrorsTotal     *prometheus.CounterVec
	calculationDuration prometheus.Histogram
	requestsTotal       prometheus.Counter
	activeRequests      prometheus.Gauge
	activeSessions      prometheus.Gauge
}

// NewMetrics creates the full instrument set on a fresh registry,
// including the Go runtime collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		calculationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linecalc_calculations_total",
			Help: "Total number of successful calculations, by operator.",
		}, []string{"operator"}),
		parseErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linecalc_parse_errors_total",
			Help: "Total number of inputs rejected by the parser, by kind.",
		}, []string{"kind"}),
		evalErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "linecalc_eval_errors_total",
			Help: "Total number of evaluation failures, by kind.",
		}, []string{"kind"}),
		calculationDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "linecalc_calculation_duration_seconds",
			Help:    "Time spent evaluating one expression.",
			Buckets: prometheus.ExponentialBuckets(1e-7, 10, 8),
		}),
		requestsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "linecalc_requests_total",
			Help: "Total number of HTTP requests served.",
		}),
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "linecalc_active_requests",
			Help: "Number of HTTP requests currently in flight.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "linecalc_active_sessions",
			Help: "Number of interactive sessions currently running.",
		}),
	}

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// RecordCalculation counts one successful evaluation and observes its
// duration.
func (m *Metrics) RecordCalculation(operator string, elapsed time.Duration) {
	m.calculationsTotal.WithLabelValues(operator).Inc()
	m.calculationDuration.Observe(elapsed.Seconds())
}

// RecordParseError counts one rejected input.
func (m *Metrics) RecordParseError(kind string) {
	m.parseErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordEvalError counts one evaluation failure.
func (m *Metrics) RecordEvalError(kind string) {
	m.evalErrorsTotal.WithLabelValues(kind).Inc()
}

// IncrementActiveRequests marks an HTTP request as in flight.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks an HTTP request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// IncrementActiveSessions marks an interactive session as started.
func (m *Metrics) IncrementActiveSessions() {
	m.activeSessions.Inc()
}

// DecrementActiveSessions marks an interactive session as ended.
func (m *Metrics) DecrementActiveSessions() {
	m.activeSessions.Dec()
}

// WritePrometheus serves the registry in the Prometheus exposition
// format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
