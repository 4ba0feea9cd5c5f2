// Package metrics exposes Prometheus counters and histograms for the trip
// planner API. A nil *Metrics is valid and records nothing, so callers in
// tests can skip wiring it.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry and every collector the service exports.
type Metrics struct {
	namespace string
	buckets   []float64
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	catalogSearches     *prometheus.CounterVec
	catalogResults      *prometheus.HistogramVec
	dateChecks          *prometheus.CounterVec
	notifications       *prometheus.CounterVec
}

// Option configures a Metrics.
type Option func(*Metrics)

// WithNamespace sets the metric name prefix. Defaults to "tripplanner".
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets overrides the request latency buckets (seconds).
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Metrics) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry registers collectors on r instead of a fresh registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(m *Metrics) {
		if r != nil {
			m.registry = r
		}
	}
}

// New creates a Metrics with Go runtime and process collectors attached.
func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace: "tripplanner",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern.",
		Buckets:   m.buckets,
	}, []string{"method", "route"})
	m.catalogSearches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "searches_total",
		Help:      "Type-ahead searches by catalog and mode (browse or search).",
	}, []string{"catalog", "mode"})
	m.catalogResults = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "catalog",
		Name:      "results",
		Help:      "Number of options returned per type-ahead search.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	}, []string{"catalog"})
	m.dateChecks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "dates",
		Name:      "checks_total",
		Help:      "Date field validations by outcome.",
	}, []string{"outcome"})
	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notify",
		Name:      "deliveries_total",
		Help:      "Comment email delivery attempts by resulting status.",
	}, []string{"status"})
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request. route is the router pattern
// ("/trips/{id}"), never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// CatalogSearch records a type-ahead lookup against catalog.
func (m *Metrics) CatalogSearch(catalog string, query string, results int) {
	if m == nil {
		return
	}
	mode := "search"
	if query == "" {
		mode = "browse"
	}
	m.catalogSearches.WithLabelValues(catalog, mode).Inc()
	m.catalogResults.WithLabelValues(catalog).Observe(float64(results))
}

// DateCheck records the outcome of a date field validation: "ok" or the
// kind of failure ("format", "invalid", "past").
func (m *Metrics) DateCheck(outcome string) {
	if m == nil {
		return
	}
	m.dateChecks.WithLabelValues(outcome).Inc()
}

// NotificationDelivered records a delivery attempt ending in status
// ("sent", "pending" for a retryable failure, or "failed").
func (m *Metrics) NotificationDelivered(status string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(status).Inc()
}
