package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Metrics holds all Prometheus metrics for tenant resolution.
type Metrics struct {
	events         *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	lookupsTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// Option configures Metrics.
type Option func(*options)

type options struct {
	registry       *prometheus.Registry
	runtimeMetrics bool
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithRuntimeMetrics adds the Go runtime and process collectors.
func WithRuntimeMetrics() Option {
	return func(o *options) {
		o.runtimeMetrics = true
	}
}

// New creates a metrics instance with all tenant resolution metrics registered.
func New(opts ...Option) *Metrics {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}

	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenant_resolution_events_total",
				Help: "Total number of tenant resolution events by kind and parser",
			},
			[]string{"event", "parser"},
		),
		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tenant_directory_lookup_duration_seconds",
				Help:    "Tenant directory lookup latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend"},
		),
		lookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tenant_directory_lookups_total",
				Help: "Total number of tenant directory lookups by backend and result",
			},
			[]string{"backend", "result"},
		),
		registry: o.registry,
	}

	m.registry.MustRegister(m.events, m.lookupDuration, m.lookupsTotal)
	if o.runtimeMetrics {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// Observe implements tenant.Observer.
func (m *Metrics) Observe(_ context.Context, e tenant.Event) {
	m.events.WithLabelValues(e.Kind.String(), e.Parser).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
