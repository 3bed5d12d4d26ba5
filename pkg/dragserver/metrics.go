package dragserver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error types recorded by websocket_errors_total.
const (
	errorRead   = "read"
	errorWrite  = "write"
	errorFrame  = "frame"
	errorEvent  = "event"
	errorTarget = "target"
	errorPanic  = "panic"

	errorOversize = "oversize"
)

// MetricsConfig configures the server metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dragkit").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the server metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithRegisterer sets the Prometheus registry.
func WithRegisterer(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the server collectors. A nil *Metrics records nothing.
type Metrics struct {
	connections prometheus.Gauge
	errors      *prometheus.CounterVec
	events      *prometheus.CounterVec
}

// NewMetrics registers the server metrics.
//
// Metrics collected:
//   - dragkit_websocket_connections: open websocket sessions
//   - dragkit_websocket_errors_total: errors by type
//   - dragkit_websocket_events_total: dispatched client events by type
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "dragkit",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_connections",
			Help:        "Number of open websocket sessions",
			ConstLabels: config.ConstLabels,
		}),
		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_errors_total",
			Help:        "Total number of websocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "websocket_events_total",
			Help:        "Total number of client events by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

func (m *Metrics) connectionOpened() {
	if m == nil {
		return
	}
	m.connections.Inc()
}

func (m *Metrics) connectionClosed() {
	if m == nil {
		return
	}
	m.connections.Dec()
}

func (m *Metrics) error(kind string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(kind).Inc()
}

func (m *Metrics) event(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}
