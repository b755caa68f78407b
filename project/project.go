// Package project flattens accumulated wizard step data into the proposal
// record consumed by the rendering pipeline.
//
// Projection is one-way and pure: step payload fields are copied under stable
// keys, and cross-step derived values are recomputed here rather than trusted
// from stored data, so the output stays internally consistent even when
// intermediate edits left stale cached totals behind. Absent upstream data
// yields absent keys, never fabricated defaults.
package project

import (
	"github.com/Idosegev23/pptmaker-sub001/enrich"
	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

// Proposal is the flat record handed to rendering. Keys are stable; the set
// of present keys depends on which steps hold data.
type Proposal map[string]any

// Project flattens the step-data map into one proposal record, walking steps
// in registry order so later steps win on any key collision.
func Project(reg *step.Registry, stepData map[step.ID]wizard.StepData) Proposal {
	out := make(Proposal)

	for _, id := range reg.Ordered() {
		data, ok := stepData[id]
		if !ok {
			continue
		}
		for k, v := range data {
			out[k] = v
		}
	}

	projectDeliverableTotals(out, stepData[step.StepDeliverables])
	return out
}

// projectDeliverableTotals recomputes the total deliverable count from its
// factors. Any totalQuantity stored upstream is treated as a stale cache and
// overwritten whenever the factors are available.
func projectDeliverableTotals(out Proposal, deliverables wizard.StepData) {
	if deliverables == nil {
		return
	}

	perUnit := enrich.ParseCount(deliverables["perUnit"])
	count := enrich.ParseCount(deliverables["influencerCount"])
	if perUnit == 0 || count == 0 {
		return
	}

	// Months scale the total; an unset duration means a single run.
	months := enrich.ParseCount(deliverables["months"])
	if months == 0 {
		months = 1
	}

	out["totalQuantity"] = perUnit * count * months
}
