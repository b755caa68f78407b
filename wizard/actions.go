package wizard

import (
	"github.com/Idosegev23/pptmaker-sub001/history"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// Action is the closed set of mutations the reducer understands. All state
// changes go through Reduce; there is no other mutation surface.
type Action interface {
	// ActionName labels the action for logging and metrics
	ActionName() string
}

// GoToStep jumps to a step. Legal only if the target is completed or skipped,
// or is already the current step; otherwise the reducer leaves state unchanged.
type GoToStep struct {
	Step step.ID
}

// NextStep advances to the successor of the current step. No-op at the last step.
type NextStep struct{}

// PrevStep moves to the predecessor of the current step. No-op at the first step.
type PrevStep struct{}

// SkipStep marks the current step skipped and advances like NextStep.
// The engine does not reject skipping required steps; that policy belongs to
// the caller via the validation engine before dispatch.
type SkipStep struct{}

// UpdateStepData shallow-merges a partial payload into a step's data. This is
// the only mutation path for step payloads.
type UpdateStepData struct {
	Step  step.ID
	Patch map[string]any
}

// MarkStepComplete force-sets a step's status to completed regardless of data
// presence, used after an asynchronous generate succeeds.
type MarkStepComplete struct {
	Step step.ID
}

// LoadState replaces the whole state on session resume. IsDirty is forced
// false and the loaded state is normalized defensively.
type LoadState struct {
	State State
}

// MarkSaved acknowledges a caller-side save: clears the dirty flag and records
// the save timestamp. No other field changes.
type MarkSaved struct {
	Timestamp int64
}

// SetExtractedData stores the AI-extracted baseline used for diffing
type SetExtractedData struct {
	Data map[step.ID]StepData
}

// MarkDirty flags the state as having unsaved mutations
type MarkDirty struct{}

// PushVersion appends a snapshot to a field's version history, discarding any
// forward branch past the cursor first.
type PushVersion struct {
	Key    history.Key
	Data   map[string]any
	Source history.Source
}

// NavigateVersion moves a field's history cursor and folds the referenced
// version's data into the owning step's payload, exactly as if the user had
// made that edit.
type NavigateVersion struct {
	Key       history.Key
	Direction history.Direction
}

// ActionName implementations

func (GoToStep) ActionName() string         { return "go_to_step" }
func (NextStep) ActionName() string         { return "next_step" }
func (PrevStep) ActionName() string         { return "prev_step" }
func (SkipStep) ActionName() string         { return "skip_step" }
func (UpdateStepData) ActionName() string   { return "update_step_data" }
func (MarkStepComplete) ActionName() string { return "mark_step_complete" }
func (LoadState) ActionName() string        { return "load_state" }
func (MarkSaved) ActionName() string        { return "mark_saved" }
func (SetExtractedData) ActionName() string { return "set_extracted_data" }
func (MarkDirty) ActionName() string        { return "mark_dirty" }
func (PushVersion) ActionName() string      { return "push_version" }
func (NavigateVersion) ActionName() string  { return "navigate_version" }
