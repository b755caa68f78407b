// Package validate implements the per-step validation layer.
//
// Rule sets are declarative required-field checks, cheap enough to run on
// every keystroke. Validation never blocks anything itself: the engine returns
// a field-error map and the caller decides whether to gate a forward
// transition on it.
package validate

import (
	"github.com/Idosegev23/pptmaker-sub001/metric"
	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

// Rule is one declarative check against a single field of a step's data
type Rule struct {
	Field    string `json:"field" yaml:"field"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
	MinItems int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	Message  string `json:"message" yaml:"message"`
}

// RuleSet maps step ids to their rules. Steps without an entry have no checks.
type RuleSet map[step.ID][]Rule

// DefaultRules returns the rule set for the standard proposal wizard flow
func DefaultRules() RuleSet {
	return RuleSet{
		step.StepBrief: {
			{Field: "brandName", Required: true, Message: "Brand name is required"},
			{Field: "brandBrief", Required: true, Message: "Brief text is required"},
		},
		step.StepGoals: {
			{Field: "primaryGoal", Required: true, Message: "Primary goal is required"},
		},
		step.StepAudience: {
			{Field: "gender", Required: true, Message: "Audience gender is required"},
			{Field: "ageRange", Required: true, Message: "Audience age range is required"},
		},
		step.StepDeliverables: {
			{Field: "items", MinItems: 1, Message: "At least one deliverable is required"},
		},
	}
}

// Engine evaluates rule sets against step data
type Engine struct {
	reg     *step.Registry
	rules   RuleSet
	metrics *validateMetrics
}

// New creates an engine with the default rule set
func New(reg *step.Registry) *Engine {
	return NewWithRules(reg, DefaultRules())
}

// NewWithRules creates an engine with a custom rule set
func NewWithRules(reg *step.Registry, rules RuleSet) *Engine {
	if rules == nil {
		rules = RuleSet{}
	}
	return &Engine{reg: reg, rules: rules}
}

// WithMetrics enables failure counting through the shared registry. A nil
// registry leaves metrics disabled; a registration error is swallowed the same
// way since validation must keep working without observability.
func (e *Engine) WithMetrics(registry *metric.MetricsRegistry) *Engine {
	m, err := newValidateMetrics(registry)
	if err != nil {
		return e
	}
	e.metrics = m
	return e
}

// Validate checks a step's data against its rules. Returns nil when valid.
// Optional steps always validate regardless of content, and unknown steps
// have nothing to check.
func (e *Engine) Validate(id step.ID, data wizard.StepData) map[string]string {
	if !e.reg.Required(id) {
		return nil
	}

	rules, ok := e.rules[id]
	if !ok {
		return nil
	}

	var errs map[string]string
	for _, rule := range rules {
		if msg, failed := rule.check(data); failed {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs[rule.Field] = msg
		}
	}
	if len(errs) > 0 {
		e.metrics.recordFailure(id)
	}
	return errs
}

func (r Rule) check(data wizard.StepData) (string, bool) {
	val, present := data[r.Field]

	if r.MinItems > 0 {
		if !present {
			return r.Message, true
		}
		list, ok := val.([]any)
		if !ok || len(list) < r.MinItems {
			return r.Message, true
		}
		return "", false
	}

	if r.Required {
		if !present {
			return r.Message, true
		}
		switch v := val.(type) {
		case nil:
			return r.Message, true
		case string:
			if v == "" {
				return r.Message, true
			}
		}
	}

	return "", false
}
