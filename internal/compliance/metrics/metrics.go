// Package metrics exposes prometheus instruments for the compliance feature.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Submissions       *prometheus.CounterVec
	StatusChecks      prometheus.Counter
	IntegrityMismatch prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brickgate_compliance_submissions_total",
			Help: "KYC submissions by result",
		}, []string{"result"}),

		StatusChecks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brickgate_compliance_status_checks_total",
			Help: "Status lookups served",
		}),

		IntegrityMismatch: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brickgate_compliance_integrity_mismatch_total",
			Help: "Status lookups where the registry commitment did not match the recomputed local one",
		}),
	}
}

// IncrementSubmission records a submission attempt outcome.
func (m *Metrics) IncrementSubmission(result string) {
	if m != nil {
		m.Submissions.WithLabelValues(result).Inc()
	}
}

// IncrementStatusCheck records a served status lookup.
func (m *Metrics) IncrementStatusCheck() {
	if m != nil {
		m.StatusChecks.Inc()
	}
}

// IncrementIntegrityMismatch records a failed commitment comparison.
func (m *Metrics) IncrementIntegrityMismatch() {
	if m != nil {
		m.IntegrityMismatch.Inc()
	}
}
