package drag

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func TestMetricsRecordSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegisterer(reg), WithNamespace("test"))

	b := newBoard()
	targets := NewMapRegistry()
	targets.Add("a", &recordingTarget{})
	targets.Add("b", &recordingTarget{})
	clock := newFakeClock()
	c := b.controller(targets, WithMetrics(m), WithClock(clock.Now))
	card := b.cards[0]
	c.Attach(card, Config{ViewportID: "board"})

	gesture(card, nil)
	if got := metricGaugeValue(t, m.active); got != 1 {
		t.Errorf("active sessions during drag = %v, want 1", got)
	}
	dragTo(card, 20)
	clock.Advance(time.Second)
	dragTo(card, 990)
	dragEnd(card)

	gesture(b.inner, nil)
	dragEnd(card)

	tests := []struct {
		name string
		c    prometheus.Counter
		want float64
	}{
		{"started", m.sessions.WithLabelValues("started"), 1},
		{"vetoed", m.sessions.WithLabelValues("vetoed"), 1},
		{"register", m.notifications.WithLabelValues("register"), 2},
		{"unregister", m.notifications.WithLabelValues("unregister"), 4},
		{"left", m.autoscrolls.WithLabelValues("left"), 1},
		{"right", m.autoscrolls.WithLabelValues("right"), 1},
	}
	for _, tt := range tests {
		if got := metricCounterValue(t, tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
	if got := metricGaugeValue(t, m.active); got != 0 {
		t.Errorf("active sessions after drag = %v, want 0", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"test_drag_sessions_total",
		"test_drag_active_sessions",
		"test_autoscroll_actions_total",
		"test_registry_notifications_total",
	} {
		if !names[want] {
			t.Errorf("metric %s not registered", want)
		}
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	m.sessionStarted()
	m.sessionVetoed()
	m.sessionEnded()
	m.autoscrolled(-1)
	m.notified("register", 3)
}
