// Package metrics exposes Prometheus collectors for the form engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sujay090/Dynamic-form-sub001/internal/domain"
)

const namespace = "forms"

// Collector owns a private registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	recordWrites *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	requests     *prometheus.HistogramVec
}

// New registers the engine collectors plus the Go and process collectors.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		recordWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_writes_total",
			Help:      "Record submissions, updates and deletes by outcome.",
		}, []string{"form_type", "op", "outcome"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "definition_fallbacks_total",
			Help:      "Times a form fell back to its default field set after a fetch failure.",
		}, []string{"form_type"}),
		requests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// RecordWritten counts one record write.
func (c *Collector) RecordWritten(formType domain.FormType, op, outcome string) {
	c.recordWrites.WithLabelValues(formType.String(), op, outcome).Inc()
}

// DefaultsApplied counts one fallback to default fields.
func (c *Collector) DefaultsApplied(formType domain.FormType) {
	c.fallbacks.WithLabelValues(formType.String()).Inc()
}

// ObserveRequest records the latency of one HTTP request.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
