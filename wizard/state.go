// Package wizard implements the proposal wizard state machine.
//
// The core is a pure reducer over a WizardState aggregate: the caller
// dispatches actions; illegal transitions are silent no-ops so the reducer is
// safe to call speculatively from UI event handlers. A Session wrapper adds
// logging, metrics, and snapshot round-tripping around the pure core.
package wizard

import (
	"github.com/Idosegev23/pptmaker-sub001/history"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// StepStatus tracks a step's progress through the wizard
type StepStatus string

// Step statuses. Exactly one step holds StatusActive at any time and it is
// always the current step.
const (
	StatusPending   StepStatus = "pending"
	StatusActive    StepStatus = "active"
	StatusCompleted StepStatus = "completed"
	StatusSkipped   StepStatus = "skipped"
)

func (s StepStatus) valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// StepData is the user-editable payload for one step. Its shape is
// step-specific and opaque to the engine.
type StepData map[string]any

// State is the root aggregate for one editing session. All fields are plain
// data so the whole state round-trips through JSON losslessly.
type State struct {
	CurrentStep    step.ID                        `json:"currentStep"`
	StepStatuses   map[step.ID]StepStatus         `json:"stepStatuses"`
	StepData       map[step.ID]StepData           `json:"stepData"`
	ExtractedData  map[step.ID]StepData           `json:"extractedData,omitempty"`
	VersionHistory map[history.Key]history.Stack  `json:"versionHistory,omitempty"`
	IsDirty        bool                           `json:"isDirty"`
	LastSavedAt    int64                          `json:"lastSavedAt,omitempty"`
}

// NewState creates a fresh state for the given registry: every step pending,
// the first step active, nothing dirty.
func NewState(reg *step.Registry) State {
	statuses := make(map[step.ID]StepStatus, reg.Len())
	for _, id := range reg.Ordered() {
		statuses[id] = StatusPending
	}
	statuses[reg.First()] = StatusActive

	return State{
		CurrentStep:    reg.First(),
		StepStatuses:   statuses,
		StepData:       make(map[step.ID]StepData),
		ExtractedData:  make(map[step.ID]StepData),
		VersionHistory: make(map[history.Key]history.Stack),
	}
}

// NewStateFromExtraction creates a fresh state seeded with an upstream
// extraction baseline. Step data starts as a copy of the extraction so the
// user edits on top of it while the original stays available for diffing.
func NewStateFromExtraction(reg *step.Registry, extracted map[step.ID]StepData) State {
	s := NewState(reg)
	s.ExtractedData = cloneDataMap(extracted)
	s.StepData = cloneDataMap(extracted)
	return s
}

// Normalize repairs a state loaded from external storage so a corrupt session
// never hard-crashes the editing flow: statuses become a total map over the
// registry (extras dropped, gaps filled with pending), invalid status values
// reset, history cursors clamp to bounds, and the active marker is forced back
// onto the current step.
func Normalize(reg *step.Registry, s State) State {
	out := s.clone()

	if out.StepData == nil {
		out.StepData = make(map[step.ID]StepData)
	}
	if out.VersionHistory == nil {
		out.VersionHistory = make(map[history.Key]history.Stack)
	}

	statuses := make(map[step.ID]StepStatus, reg.Len())
	for _, id := range reg.Ordered() {
		st, ok := out.StepStatuses[id]
		if !ok || !st.valid() {
			st = StatusPending
		}
		statuses[id] = st
	}
	out.StepStatuses = statuses

	if !reg.Contains(out.CurrentStep) {
		out.CurrentStep = reg.First()
	}

	// Exactly one active step, and it is the current one.
	for id, st := range out.StepStatuses {
		if st == StatusActive && id != out.CurrentStep {
			out.StepStatuses[id] = StatusPending
		}
	}
	out.StepStatuses[out.CurrentStep] = StatusActive

	for key, stack := range out.VersionHistory {
		out.VersionHistory[key] = stack.Clamp()
	}

	return out
}

// Progress reports how many registry steps are completed or skipped, and the
// total number of steps.
func (s State) Progress(reg *step.Registry) (done, total int) {
	total = reg.Len()
	for _, id := range reg.Ordered() {
		switch s.StepStatuses[id] {
		case StatusCompleted, StatusSkipped:
			done++
		}
	}
	return done, total
}

// HasStepData reports whether a step holds any non-empty data
func (s State) HasStepData(id step.ID) bool {
	data, ok := s.StepData[id]
	if !ok {
		return false
	}
	for _, v := range data {
		if !isEmptyValue(v) {
			return true
		}
	}
	return false
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}

// clone deep-copies the state one level past the maps. Nested payload values
// are shared; the reducer only ever replaces payload maps wholesale, never
// mutates them in place, so sharing leaves callers' views intact.
func (s State) clone() State {
	out := s
	out.StepStatuses = make(map[step.ID]StepStatus, len(s.StepStatuses))
	for k, v := range s.StepStatuses {
		out.StepStatuses[k] = v
	}
	out.StepData = cloneDataMap(s.StepData)
	out.ExtractedData = cloneDataMap(s.ExtractedData)
	out.VersionHistory = make(map[history.Key]history.Stack, len(s.VersionHistory))
	for k, v := range s.VersionHistory {
		out.VersionHistory[k] = v
	}
	return out
}

func cloneDataMap(in map[step.ID]StepData) map[step.ID]StepData {
	out := make(map[step.ID]StepData, len(in))
	for id, data := range in {
		out[id] = cloneStepData(data)
	}
	return out
}

func cloneStepData(in StepData) StepData {
	out := make(StepData, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// mergeStepData shallow-merges patch into base: keys present in the patch
// overwrite, everything else is preserved. Returns a new map.
func mergeStepData(base StepData, patch map[string]any) StepData {
	out := cloneStepData(base)
	for k, v := range patch {
		out[k] = v
	}
	return out
}
