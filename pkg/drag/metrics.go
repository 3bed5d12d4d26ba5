package drag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the drag metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "dragkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the drag metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegisterer sets the Prometheus registry.
func WithRegisterer(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the drag counters. A nil *Metrics records nothing.
type Metrics struct {
	sessions      *prometheus.CounterVec
	active        prometheus.Gauge
	autoscrolls   *prometheus.CounterVec
	notifications *prometheus.CounterVec
}

// NewMetrics registers the drag metrics.
//
// Metrics collected:
//   - dragkit_drag_sessions_total: drag starts by outcome (started, vetoed)
//   - dragkit_drag_active_sessions: sessions between drag start and drag end
//   - dragkit_autoscroll_actions_total: scroll actions by direction
//   - dragkit_registry_notifications_total: drop target calls by kind
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
		sessions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drag_sessions_total",
			Help:        "Total number of drag starts by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drag_active_sessions",
			Help:        "Number of drag sessions in progress",
			ConstLabels: config.ConstLabels,
		}),

		autoscrolls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "autoscroll_actions_total",
			Help:        "Total number of viewport autoscroll actions",
			ConstLabels: config.ConstLabels,
		}, []string{"direction"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registry_notifications_total",
			Help:        "Total number of drop target notifications",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),
	}
}

func (m *Metrics) sessionStarted() {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues("started").Inc()
	m.active.Inc()
}

func (m *Metrics) sessionVetoed() {
	if m == nil {
		return
	}
	m.sessions.WithLabelValues("vetoed").Inc()
}

func (m *Metrics) sessionEnded() {
	if m == nil {
		return
	}
	m.active.Dec()
}

func (m *Metrics) autoscrolled(dx float64) {
	if m == nil || dx == 0 {
		return
	}
	dir := "right"
	if dx < 0 {
		dir = "left"
	}
	m.autoscrolls.WithLabelValues(dir).Inc()
}

func (m *Metrics) notified(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.notifications.WithLabelValues(kind).Add(float64(n))
}
