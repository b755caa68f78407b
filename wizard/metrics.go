package wizard

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Idosegev23/pptmaker-sub001/metric"
)

// wizardMetrics holds Prometheus metrics for wizard session activity.
type wizardMetrics struct {
	actions        *prometheus.CounterVec // By action and status (applied/rejected)
	versionsPushed prometheus.Counter
	historyDepth   prometheus.Gauge // Total retained versions across keys
	dirtyState     prometheus.Gauge // 1 when unsaved mutations exist
	saves          prometheus.Counter
}

// newWizardMetrics creates and registers wizard metrics with the provided registry.
func newWizardMetrics(registry *metric.MetricsRegistry) (*wizardMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &wizardMetrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "proposal",
			Subsystem: "wizard",
			Name:      "actions_total",
			Help:      "Total number of dispatched wizard actions",
		}, []string{"action", "status"}), // status: applied, rejected

		versionsPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proposal",
			Subsystem: "wizard",
			Name:      "versions_pushed_total",
			Help:      "Total number of field versions pushed to history",
		}),

		historyDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "proposal",
			Subsystem: "wizard",
			Name:      "history_versions",
			Help:      "Current number of retained versions across all history keys",
		}),

		dirtyState: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "proposal",
			Subsystem: "wizard",
			Name:      "dirty",
			Help:      "Whether the session has unsaved mutations (0 or 1)",
		}),

		saves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "proposal",
			Subsystem: "wizard",
			Name:      "saves_total",
			Help:      "Total number of acknowledged saves",
		}),
	}

	if err := registry.RegisterCounterVec("wizard", "actions", m.actions); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("wizard", "versions_pushed", m.versionsPushed); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("wizard", "history_versions", m.historyDepth); err != nil {
		return nil, err
	}
	if err := registry.RegisterGauge("wizard", "dirty", m.dirtyState); err != nil {
		return nil, err
	}
	if err := registry.RegisterCounter("wizard", "saves", m.saves); err != nil {
		return nil, err
	}

	return m, nil
}

// recordAction records a dispatched action and the post-dispatch state.
func (m *wizardMetrics) recordAction(action Action, res Result, s State) {
	if m == nil {
		return
	}

	status := "applied"
	if !res.Applied {
		status = "rejected"
	}
	m.actions.WithLabelValues(action.ActionName(), status).Inc()

	if res.Applied {
		switch action.(type) {
		case PushVersion:
			m.versionsPushed.Inc()
		case MarkSaved:
			m.saves.Inc()
		}
	}

	depth := 0
	for _, stack := range s.VersionHistory {
		depth += stack.Len()
	}
	m.historyDepth.Set(float64(depth))

	if s.IsDirty {
		m.dirtyState.Set(1)
	} else {
		m.dirtyState.Set(0)
	}
}
