// Package metrics defines the Prometheus collectors exported by the server.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
// Tests construct planners and services without metrics that way.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "planbuddy"

// Metrics groups every collector the application records into.
type Metrics struct {
	GeneratorRequests *prometheus.CounterVec
	GeneratorFallback *prometheus.CounterVec
	PlansCreated      prometheus.Counter
	PlansFinalized    prometheus.Counter
	PlansDiscarded    prometheus.Counter
	PlanRejected      *prometheus.CounterVec
	Votes             *prometheus.CounterVec
	Rsvps             *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
	RPCDuration       *prometheus.HistogramVec
}

// New registers all collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GeneratorRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_requests_total",
			Help:      "Generator backend calls by kind, backend and outcome.",
		}, []string{"kind", "backend", "outcome"}),
		GeneratorFallback: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generator_fallback_total",
			Help:      "Responses served from fixtures after a live backend failure.",
		}, []string{"kind"}),
		PlansCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_created_total",
			Help:      "Plans that became active.",
		}),
		PlansFinalized: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_finalized_total",
			Help:      "Plans finalized into an itinerary.",
		}),
		PlansDiscarded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plans_discarded_total",
			Help:      "Active plans discarded with Start Over.",
		}),
		PlanRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_requests_rejected_total",
			Help:      "Create or finalize requests rejected while another generator call was in flight.",
		}, []string{"operation"}),
		Votes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "votes_total",
			Help:      "Vote operations by resulting action.",
		}, []string{"action"}),
		Rsvps: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rsvps_total",
			Help:      "RSVP updates by status.",
		}, []string{"status"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently open.",
		}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure and result code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure", "code"}),
	}
}

func (m *Metrics) GeneratorCall(kind, backend, outcome string) {
	if m == nil {
		return
	}
	m.GeneratorRequests.WithLabelValues(kind, backend, outcome).Inc()
}

func (m *Metrics) Fallback(kind string) {
	if m == nil {
		return
	}
	m.GeneratorFallback.WithLabelValues(kind).Inc()
}

func (m *Metrics) PlanCreated() {
	if m == nil {
		return
	}
	m.PlansCreated.Inc()
}

func (m *Metrics) PlanFinalized() {
	if m == nil {
		return
	}
	m.PlansFinalized.Inc()
}

func (m *Metrics) PlanDiscarded() {
	if m == nil {
		return
	}
	m.PlansDiscarded.Inc()
}

func (m *Metrics) Rejected(operation string) {
	if m == nil {
		return
	}
	m.PlanRejected.WithLabelValues(operation).Inc()
}

func (m *Metrics) Vote(action string) {
	if m == nil {
		return
	}
	m.Votes.WithLabelValues(action).Inc()
}

func (m *Metrics) Rsvp(status string) {
	if m == nil {
		return
	}
	m.Rsvps.WithLabelValues(status).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}

func (m *Metrics) ObserveRPC(procedure, code string, seconds float64) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(procedure, code).Observe(seconds)
}
