// Package metrics exposes prometheus instruments for admin actions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Actions *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Actions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickgate_admin_actions_total",
			Help: "Composite admin actions by action and outcome",
		}, []string{"action", "outcome"}),
	}
}

// IncrementAction records an admin action outcome.
func (m *Metrics) IncrementAction(action, outcome string) {
	if m != nil {
		m.Actions.WithLabelValues(action, outcome).Inc()
	}
}
