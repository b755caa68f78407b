package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CoreMetrics contains engine-level metrics shared across packages
type CoreMetrics struct {
	// Active editing sessions
	SessionsActive prometheus.Gauge

	// Document loads by mode: resume, extraction, fresh
	DocumentsLoaded *prometheus.CounterVec

	// Enrichment merges by status: full, partial, empty
	EnrichmentsTotal *prometheus.CounterVec
}

// newCoreMetrics creates the core engine metrics
func newCoreMetrics() *CoreMetrics {
	return &CoreMetrics{
		SessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "proposal",
				Subsystem: "engine",
				Name:      "sessions_active",
				Help:      "Number of active editing sessions",
			},
		),

		DocumentsLoaded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "proposal",
				Subsystem: "engine",
				Name:      "documents_loaded_total",
				Help:      "Total documents loaded, by detected mode",
			},
			[]string{"mode"}, // resume, extraction, fresh
		),

		EnrichmentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "proposal",
				Subsystem: "engine",
				Name:      "enrichments_total",
				Help:      "Total enrichment merges, by payload coverage",
			},
			[]string{"status"}, // full, partial, empty
		),
	}
}
