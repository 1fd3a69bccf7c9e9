package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	FormOutcomeSaved   = "saved"
	FormOutcomeInvalid = "invalid"
	FormOutcomeFailed  = "failed"
)

// FormMetrics counts data-entry form submissions.
type FormMetrics struct {
	submissions *prometheus.CounterVec
}

func NewFormMetrics(cfg Config, registerer prometheus.Registerer) (*FormMetrics, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	submissions, err := register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "coopbilling_form_submissions_total",
		Help:        "Form submissions by form and outcome.",
		ConstLabels: constLabels(cfg),
	}, []string{"form", "outcome"}))
	if err != nil {
		return nil, err
	}
	return &FormMetrics{submissions: submissions}, nil
}

func (m *FormMetrics) RecordSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(strings.TrimSpace(form), outcome).Inc()
}
