// Package observe provides lifecycle observers for metrics and
// tracing. Observers attach to components (and binders) at
// construction and stay out of the render path.
package observe

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/formbind"
)

// MetricsConfig configures the Prometheus observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vellum").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for connect duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the connect duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vellum",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics is a Prometheus-backed observer. It implements both
// component.Observer and formbind.Observer.
type Metrics struct {
	transitions     *prometheus.CounterVec
	renders         *prometheus.CounterVec
	setupErrors     *prometheus.CounterVec
	flushes         *prometheus.CounterVec
	connectDuration *prometheus.HistogramVec

	mu       sync.Mutex
	started map[*component.Component]time.Time
}

var (
	_ component.Observer = (*Metrics)(nil)
	_ formbind.Observer  = (*Metrics)(nil)
)

// NewMetrics creates a Prometheus observer.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "lifecycle_transitions_total",
			Help:        "Lifecycle state transitions by tag and resulting state.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tag", "state"}),
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "renders_total",
			Help:        "Render passes by tag.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tag"}),
		setupErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "setup_errors_total",
			Help:        "Components that entered the error state, by tag.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tag"}),
		flushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "change_flushes_total",
			Help:        "Settled form-change notifications by tag.",
			ConstLabels: cfg.ConstLabels,
		}, []string{"tag"}),
		connectDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "connect_duration_seconds",
			Help:        "Time from connection start to ready or error, by tag.",
			ConstLabels: cfg.ConstLabels,
			Buckets:     cfg.Buckets,
		}, []string{"tag"}),
		started: make(map[*component.Component]time.Time),
	}
}

// StateChanged implements component.Observer.
func (m *Metrics) StateChanged(c *component.Component, _, to component.State) {
	tag := c.Element().Tag()
	m.transitions.WithLabelValues(tag, to.String()).Inc()

	switch to {
	case component.StatePreRunning:
		m.mu.Lock()
		m.started[c] = time.Now()
		m.mu.Unlock()
	case component.StateReady, component.StateError:
		m.mu.Lock()
		start, ok := m.started[c]
		delete(m.started, c)
		m.mu.Unlock()
		if ok {
			m.connectDuration.WithLabelValues(tag).Observe(time.Since(start).Seconds())
		}
		if to == component.StateError {
			m.setupErrors.WithLabelValues(tag).Inc()
		}
	}
}

// Rendered implements component.Observer.
func (m *Metrics) Rendered(c *component.Component) {
	m.renders.WithLabelValues(c.Element().Tag()).Inc()
}

// Flushed implements formbind.Observer.
func (m *Metrics) Flushed(b *formbind.Binder, _ *dom.Event) {
	m.flushes.WithLabelValues(b.Component().Element().Tag()).Inc()
}
