package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

func TestValidateBriefStep(t *testing.T) {
	e := New(step.Default())

	tests := []struct {
		name       string
		data       wizard.StepData
		wantFields []string
	}{
		{
			name:       "empty data fails both rules",
			data:       wizard.StepData{},
			wantFields: []string{"brandName", "brandBrief"},
		},
		{
			name: "empty strings fail",
			data: wizard.StepData{
				"brandName":  "",
				"brandBrief": "",
			},
			wantFields: []string{"brandName", "brandBrief"},
		},
		{
			name: "partial data fails remaining rule",
			data: wizard.StepData{
				"brandName": "Acme",
			},
			wantFields: []string{"brandBrief"},
		},
		{
			name: "complete data is valid",
			data: wizard.StepData{
				"brandName":  "Acme",
				"brandBrief": "We sell shoes.",
			},
			wantFields: nil,
		},
		{
			name: "nil value counts as missing",
			data: wizard.StepData{
				"brandName":  nil,
				"brandBrief": "We sell shoes.",
			},
			wantFields: []string{"brandName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := e.Validate(step.StepBrief, tt.data)
			if len(tt.wantFields) == 0 {
				assert.Nil(t, errs)
				return
			}
			require.NotNil(t, errs)
			assert.Len(t, errs, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, errs, f)
				assert.NotEmpty(t, errs[f])
			}
		})
	}
}

func TestValidateListRule(t *testing.T) {
	e := New(step.Default())

	errs := e.Validate(step.StepDeliverables, wizard.StepData{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "items")

	errs = e.Validate(step.StepDeliverables, wizard.StepData{"items": []any{}})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "items")

	errs = e.Validate(step.StepDeliverables, wizard.StepData{
		"items": []any{map[string]any{"type": "reel", "quantity": 2}},
	})
	assert.Nil(t, errs)
}

func TestOptionalStepsAlwaysValid(t *testing.T) {
	e := New(step.Default())

	assert.Nil(t, e.Validate(step.StepKeyInsight, wizard.StepData{}))
	assert.Nil(t, e.Validate(step.StepGenerate, nil))
}

func TestUnknownStepHasNothingToCheck(t *testing.T) {
	e := New(step.Default())
	assert.Nil(t, e.Validate(step.ID("mystery"), wizard.StepData{}))
}

func TestRulesFromYAML(t *testing.T) {
	reg := step.Default()
	data := []byte(`
validation:
  brief:
    - field: brandName
      required: true
      message: Brand name is required
  deliverables:
    - field: items
      minItems: 2
      message: Pick at least two deliverables
`)

	rules, err := RulesFromYAML(reg, data)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	e := NewWithRules(reg, rules)

	errs := e.Validate(step.StepBrief, wizard.StepData{"brandName": "Acme"})
	assert.Nil(t, errs, "custom rules replace defaults entirely")

	errs = e.Validate(step.StepDeliverables, wizard.StepData{"items": []any{"one"}})
	require.NotNil(t, errs)
	assert.Equal(t, "Pick at least two deliverables", errs["items"])
}

func TestRulesFromYAMLRejectsUnknownStep(t *testing.T) {
	_, err := RulesFromYAML(step.Default(), []byte(`
validation:
  nonexistent:
    - field: x
      required: true
      message: nope
`))
	assert.Error(t, err)
}

func TestRulesFromYAMLRejectsEmptyField(t *testing.T) {
	_, err := RulesFromYAML(step.Default(), []byte(`
validation:
  brief:
    - required: true
      message: nope
`))
	assert.Error(t, err)
}
