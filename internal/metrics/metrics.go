// Package metrics provides the Prometheus collectors exposed on /metrics.
//
// Collectors live on a private registry so several servers (tests) can
// coexist in one process.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fieldroutes_relay"

// ProviderBuckets covers fast cache hits up to the 10s client timeout.
var ProviderBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics groups the collectors used across the relay.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts inbound requests by method, route and status class.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration records inbound request duration in seconds.
	RequestDuration *prometheus.HistogramVec

	// ProviderRequestsTotal counts provider calls by operation and status.
	ProviderRequestsTotal *prometheus.CounterVec

	// ProviderLatency records provider latency in seconds.
	ProviderLatency *prometheus.HistogramVec

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Inbound HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "Inbound request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ProviderRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_requests_total",
				Help:      "Requests sent to the FieldRoutes API",
			},
			[]string{"operation", "status"},
		),
		ProviderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_latency_seconds",
				Help:      "FieldRoutes API latency",
				Buckets:   ProviderBuckets,
			},
			[]string{"operation"},
		),
		RateLimitRejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ratelimit_rejected_total",
				Help:      "Requests rejected by the rate limiter",
			},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.ProviderRequestsTotal,
		m.ProviderLatency,
		m.RateLimitRejectedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the underlying registry for tests and custom collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveProvider records one provider call. A zero status means the call
// failed before a response arrived.
func (m *Metrics) ObserveProvider(operation string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.ProviderRequestsTotal.WithLabelValues(operation, label).Inc()
	m.ProviderLatency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRequest records one inbound request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	class := strconv.Itoa(status/100) + "xx"
	m.RequestsTotal.WithLabelValues(method, route, class).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
