// Package metrics exposes prometheus instruments for the purchase flow.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Attempts    *prometheus.CounterVec
	BuyDuration prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		Attempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickgate_purchase_attempts_total",
			Help: "Purchase attempts by outcome (ok or the failed precondition)",
		}, []string{"outcome"}),

		BuyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "brickgate_purchase_buy_duration_seconds",
			Help:    "Duration of buy transactions against the sale contract",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementAttempt records a purchase attempt outcome.
func (m *Metrics) IncrementAttempt(outcome string) {
	if m != nil {
		m.Attempts.WithLabelValues(outcome).Inc()
	}
}

// ObserveBuyDuration records the duration of one buy transaction.
func (m *Metrics) ObserveBuyDuration(d time.Duration) {
	if m != nil {
		m.BuyDuration.Observe(d.Seconds())
	}
}
