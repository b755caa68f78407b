// Package step defines wizard step identity and the ordered step registry.
//
// A registry is an immutable lookup table: each step has a stable id, a dense
// 1-based order, and a required flag. It carries no mutable state; transition
// legality and statuses live in the wizard package.
package step

import (
	"fmt"
	"sort"

	"github.com/Idosegev23/pptmaker-sub001/errors"
)

// ID identifies a wizard step
type ID string

// Step ids for the proposal wizard's default flow
const (
	StepBrief        ID = "brief"
	StepGoals        ID = "goals"
	StepAudience     ID = "audience"
	StepDeliverables ID = "deliverables"
	StepKeyInsight   ID = "key_insight"
	StepGenerate     ID = "generate"
)

// Definition holds the immutable metadata for one step
type Definition struct {
	ID       ID     `json:"id" yaml:"id"`
	Order    int    `json:"order" yaml:"order"`
	Required bool   `json:"required" yaml:"required"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// Registry is an ordered, immutable set of step definitions
type Registry struct {
	defs    map[ID]Definition
	ordered []ID
}

// NewRegistry builds a registry from definitions, validating that ids are
// unique and orders are dense (1..N) and unique.
func NewRegistry(defs []Definition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.WrapFatal(
			fmt.Errorf("no step definitions provided"),
			"Registry", "NewRegistry", "validation")
	}

	byID := make(map[ID]Definition, len(defs))
	byOrder := make(map[int]ID, len(defs))
	for _, d := range defs {
		if d.ID == "" {
			return nil, errors.WrapFatal(
				fmt.Errorf("step with order %d has empty id", d.Order),
				"Registry", "NewRegistry", "validation")
		}
		if _, dup := byID[d.ID]; dup {
			return nil, errors.WrapFatal(
				fmt.Errorf("duplicate step id: %s", d.ID),
				"Registry", "NewRegistry", "validation")
		}
		if d.Order < 1 || d.Order > len(defs) {
			return nil, errors.WrapFatal(
				fmt.Errorf("step %s has order %d outside 1..%d", d.ID, d.Order, len(defs)),
				"Registry", "NewRegistry", "validation")
		}
		if prev, dup := byOrder[d.Order]; dup {
			return nil, errors.WrapFatal(
				fmt.Errorf("steps %s and %s share order %d", prev, d.ID, d.Order),
				"Registry", "NewRegistry", "validation")
		}
		byID[d.ID] = d
		byOrder[d.Order] = d.ID
	}

	ordered := make([]ID, 0, len(defs))
	for _, d := range defs {
		ordered = append(ordered, d.ID)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return byID[ordered[i]].Order < byID[ordered[j]].Order
	})

	return &Registry{defs: byID, ordered: ordered}, nil
}

// Default returns the registry for the standard proposal wizard flow.
func Default() *Registry {
	r, err := NewRegistry([]Definition{
		{ID: StepBrief, Order: 1, Required: true, Title: "Brief"},
		{ID: StepGoals, Order: 2, Required: true, Title: "Goals & KPIs"},
		{ID: StepAudience, Order: 3, Required: true, Title: "Target Audience"},
		{ID: StepDeliverables, Order: 4, Required: true, Title: "Deliverables"},
		{ID: StepKeyInsight, Order: 5, Required: false, Title: "Key Insight"},
		{ID: StepGenerate, Order: 6, Required: false, Title: "Generate"},
	})
	if err != nil {
		// The built-in definitions are validated by tests; a failure here is a bug.
		panic(err)
	}
	return r
}

// Get returns the definition for a step id
func (r *Registry) Get(id ID) (Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Contains reports whether the registry knows the step id
func (r *Registry) Contains(id ID) bool {
	_, ok := r.defs[id]
	return ok
}

// Required reports whether the step is required. Unknown steps are not required.
func (r *Registry) Required(id ID) bool {
	d, ok := r.defs[id]
	return ok && d.Required
}

// Ordered returns step ids in ascending order. The slice is a copy.
func (r *Registry) Ordered() []ID {
	out := make([]ID, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Len returns the number of steps
func (r *Registry) Len() int {
	return len(r.ordered)
}

// First returns the first step in order
func (r *Registry) First() ID {
	return r.ordered[0]
}

// Last returns the last step in order
func (r *Registry) Last() ID {
	return r.ordered[len(r.ordered)-1]
}

// Next returns the successor of a step. The second return is false at the
// last step or for unknown ids.
func (r *Registry) Next(id ID) (ID, bool) {
	d, ok := r.defs[id]
	if !ok || d.Order >= len(r.ordered) {
		return "", false
	}
	return r.ordered[d.Order], true
}

// Prev returns the predecessor of a step. The second return is false at the
// first step or for unknown ids.
func (r *Registry) Prev(id ID) (ID, bool) {
	d, ok := r.defs[id]
	if !ok || d.Order <= 1 {
		return "", false
	}
	return r.ordered[d.Order-2], true
}
