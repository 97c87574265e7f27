// Package metrics defines the Prometheus collectors exported by friendsplit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "friendsplit"

// Metrics groups the collectors shared by the service and web layers.
type Metrics struct {
	RPCs        *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Sessions    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and code.",
		}, []string{"procedure", "code"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "State transitions requested, by operation and outcome.",
		}, []string{"op", "outcome"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.RPCs, m.Transitions, m.Sessions)
	return m
}

// ObserveTransition counts one transition attempt.
func (m *Metrics) ObserveTransition(op string, applied bool) {
	if m == nil {
		return
	}
	outcome := "ignored"
	if applied {
		outcome = "applied"
	}
	m.Transitions.WithLabelValues(op, outcome).Inc()
}

// ObserveRPC counts one completed RPC.
func (m *Metrics) ObserveRPC(procedure, code string) {
	if m == nil {
		return
	}
	m.RPCs.WithLabelValues(procedure, code).Inc()
}

// SetSessions records the number of live sessions.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.Sessions.Set(float64(n))
}
