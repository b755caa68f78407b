package validate

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Idosegev23/pptmaker-sub001/metric"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// validateMetrics holds Prometheus metrics for validation outcomes.
type validateMetrics struct {
	failures *prometheus.CounterVec // By step
}

func newValidateMetrics(registry *metric.MetricsRegistry) (*validateMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &validateMetrics{
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal",
			Subsystem: "validate",
			Name:      "failures_total",
			Help:      "Total validation runs that produced at least one field error",
		}, []string{"step"}),
	}

	if err := registry.RegisterCounterVec("validate", "failures", m.failures); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *validateMetrics) recordFailure(id step.ID) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(string(id)).Inc()
}
