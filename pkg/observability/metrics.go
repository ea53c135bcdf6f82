package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/cambium/pkg/domain"
)

// Metrics exports dispatch activity as Prometheus collectors.
type Metrics struct {
	transitions *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewMetrics creates and registers the dispatch collectors.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cambium_transitions_total",
				Help: "Total number of committed transitions",
			},
			[]string{"machine", "from", "to"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cambium_transition_failures_total",
				Help: "Total number of failed transition dispatches",
			},
			[]string{"machine", "state"},
		),
	}
	if err := reg.Register(m.transitions); err != nil {
		return nil, err
	}
	if err := reg.Register(m.failures); err != nil {
		return nil, err
	}
	return m, nil
}

// Transitions returns the committed-transitions counter.
func (m *Metrics) Transitions() *prometheus.CounterVec { return m.transitions }

// Failures returns the failed-dispatches counter.
func (m *Metrics) Failures() *prometheus.CounterVec { return m.failures }

// Hooks returns lifecycle hooks feeding the collectors. Terminal moves (no
// state change) count with an empty "to" label.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(_ context.Context, ev *domain.TransitionEvent) {
			m.transitions.WithLabelValues(ev.Machine, ev.State, ev.Next).Inc()
		},
		OnFailure: func(_ context.Context, ev *domain.TransitionEvent) {
			m.failures.WithLabelValues(ev.Machine, ev.State).Inc()
		},
	}
}
