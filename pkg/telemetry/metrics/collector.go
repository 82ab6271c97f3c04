package metrics

import (
	"time"

	"mercator-hq/kiosk/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the Prometheus metrics for the content server. It manages a
// private registry so tests and embedders never collide with the default
// global one.
//
// Metrics:
//   - <ns>_<sub>_requests_total{method}: request counter
//   - <ns>_<sub>_requests_in_flight{method}: in-flight gauge
//   - <ns>_<sub>_request_duration_seconds{method,status}: duration histogram
//
// All recording methods are safe for concurrent use and never block or fail
// the response path; they are plain atomic updates on pre-registered series.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestsInFlight *prometheus.GaugeVec
	requestDuration  *prometheus.HistogramVec
}

// NewCollector creates a metrics collector registered against the given
// registry. If registry is nil, a fresh private registry is created.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RequestDurationBuckets) == 0 {
		cfg.RequestDurationBuckets = config.DefaultRequestDurationBuckets()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method"},
		),

		requestsInFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently in flight",
			},
			[]string{"method"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"method", "status"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestsInFlight,
		c.requestDuration,
	)

	return c
}

// RecordRequest records the start of a request: it increments the per-method
// request counter and in-flight gauge.
func (c *Collector) RecordRequest(method string) {
	if !c.config.Enabled {
		return
	}
	c.requestsTotal.WithLabelValues(method).Inc()
	c.requestsInFlight.WithLabelValues(method).Inc()
}

// RecordResponse records the completion of a request: it observes the elapsed
// time since start into the duration histogram keyed by method and status,
// and decrements the per-method in-flight gauge.
func (c *Collector) RecordResponse(method, status string, start time.Time) {
	if !c.config.Enabled {
		return
	}
	c.requestDuration.WithLabelValues(method, status).Observe(time.Since(start).Seconds())
	c.requestsInFlight.WithLabelValues(method).Dec()
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
