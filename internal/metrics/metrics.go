// Package metrics holds the Prometheus collectors exposed on /metrics.
//
// Every helper is safe to call on a nil *Metrics so that packages can be
// used (and tested) without a registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "secmatrix"

type Metrics struct {
	Registry *prometheus.Registry

	// Labels: method, route, status
	HTTPRequestsTotal *prometheus.CounterVec
	// Labels: method, route
	HTTPRequestDuration *prometheus.HistogramVec

	// Labels: operation (update, add), result (success, error)
	MutationsTotal *prometheus.CounterVec
	// Updates whose numeric fields could not be parsed; the row keeps its old risk text.
	RecalculationsSkipped prometheus.Counter

	// Labels: result (success, error)
	ReportsTotal *prometheus.CounterVec
	ReportBytes  prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"method", "route"},
		),
		MutationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "magerit",
				Name:      "mutations_total",
				Help:      "MAGERIT row mutations by operation and result",
			},
			[]string{"operation", "result"},
		),
		RecalculationsSkipped: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "magerit",
				Name:      "recalculations_skipped_total",
				Help:      "Row updates where risk recalculation was skipped",
			},
		),
		ReportsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "generated_total",
				Help:      "PDF reports by result",
			},
			[]string{"result"},
		),
		ReportBytes: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "size_bytes",
				Help:      "Size of generated PDF reports",
				Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
			},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (m *Metrics) ObserveMutation(operation string, err error) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(operation, result(err)).Inc()
}

func (m *Metrics) RecalculationSkipped() {
	if m == nil {
		return
	}
	m.RecalculationsSkipped.Inc()
}

func (m *Metrics) ObserveReport(size int, err error) {
	if m == nil {
		return
	}
	m.ReportsTotal.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.ReportBytes.Observe(float64(size))
	}
}
