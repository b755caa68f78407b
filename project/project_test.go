package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

func TestProjectFlattensInOrder(t *testing.T) {
	reg := step.Default()
	stepData := map[step.ID]wizard.StepData{
		step.StepBrief: {
			"brandName":  "Acme",
			"brandBrief": "We sell shoes.",
		},
		step.StepAudience: {
			"gender":   "mixed",
			"ageRange": "18-34",
		},
	}

	p := Project(reg, stepData)

	assert.Equal(t, "Acme", p["brandName"])
	assert.Equal(t, "We sell shoes.", p["brandBrief"])
	assert.Equal(t, "mixed", p["gender"])
	assert.Equal(t, "18-34", p["ageRange"])
}

func TestProjectRecomputesTotals(t *testing.T) {
	reg := step.Default()
	stepData := map[step.ID]wizard.StepData{
		step.StepDeliverables: {
			"perUnit":         float64(3),
			"influencerCount": float64(4),
			"months":          float64(2),
			"totalQuantity":   float64(999), // stale cached total
		},
	}

	p := Project(reg, stepData)
	assert.Equal(t, float64(24), p["totalQuantity"])
}

func TestProjectTotalDefaultsToSingleRun(t *testing.T) {
	reg := step.Default()
	stepData := map[step.ID]wizard.StepData{
		step.StepDeliverables: {
			"perUnit":         float64(2),
			"influencerCount": float64(5),
		},
	}

	p := Project(reg, stepData)
	assert.Equal(t, float64(10), p["totalQuantity"])
}

func TestProjectAbsentDataYieldsAbsentKeys(t *testing.T) {
	reg := step.Default()

	p := Project(reg, nil)
	require.Empty(t, p)

	p = Project(reg, map[step.ID]wizard.StepData{
		step.StepDeliverables: {"perUnit": float64(3)},
	})
	assert.NotContains(t, p, "totalQuantity", "missing factors leave the total absent")
	assert.NotContains(t, p, "brandName")
}

func TestProjectIgnoresUnknownSteps(t *testing.T) {
	reg := step.Default()
	stepData := map[step.ID]wizard.StepData{
		step.ID("mystery"): {"rogue": true},
		step.StepBrief:     {"brandName": "Acme"},
	}

	p := Project(reg, stepData)
	assert.NotContains(t, p, "rogue")
	assert.Equal(t, "Acme", p["brandName"])
}
