package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.PlanCreated()
	m.Vote("added")
	m.GeneratorCall("suggestions", "fixture", "ok")
	m.SessionOpened()
	m.ObserveRPC("/x", "ok", 0.1)
}

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.PlanCreated()
	m.PlanCreated()
	m.Vote("added")
	m.Vote("removed")
	m.Vote("added")
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	if got := testutil.ToFloat64(m.PlansCreated); got != 2 {
		t.Errorf("plans created = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Votes.WithLabelValues("added")); got != 2 {
		t.Errorf("added votes = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ActiveSessions); got != 1 {
		t.Errorf("active sessions = %v, want 1", got)
	}
}
