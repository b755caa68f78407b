package wizard

import (
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// Result reports whether an action was applied. Illegal transitions are silent
// no-ops rather than errors so the reducer is safe to call speculatively, but
// the discriminator keeps rejected attempts observable for callers and tests.
type Result struct {
	Applied bool
	Reason  string
}

func applied() Result            { return Result{Applied: true} }
func rejected(why string) Result { return Result{Applied: false, Reason: why} }

// Reduce is the pure state transition function: (state, action) -> state.
// The input state is never mutated; a rejected action returns it unchanged.
// The now argument is the Unix-millisecond timestamp recorded on version
// pushes, injected by the caller so reductions stay reproducible.
func Reduce(reg *step.Registry, s State, action Action, now int64) (State, Result) {
	switch a := action.(type) {
	case GoToStep:
		return reduceGoToStep(reg, s, a)
	case NextStep:
		return reduceNextStep(reg, s)
	case PrevStep:
		return reducePrevStep(reg, s)
	case SkipStep:
		return reduceSkipStep(reg, s)
	case UpdateStepData:
		return reduceUpdateStepData(reg, s, a)
	case MarkStepComplete:
		return reduceMarkStepComplete(reg, s, a)
	case LoadState:
		out := Normalize(reg, a.State)
		out.IsDirty = false
		return out, applied()
	case MarkSaved:
		out := s.clone()
		out.IsDirty = false
		out.LastSavedAt = a.Timestamp
		return out, applied()
	case SetExtractedData:
		out := s.clone()
		out.ExtractedData = cloneDataMap(a.Data)
		return out, applied()
	case MarkDirty:
		out := s.clone()
		out.IsDirty = true
		return out, applied()
	case PushVersion:
		return reducePushVersion(s, a, now)
	case NavigateVersion:
		return reduceNavigateVersion(reg, s, a)
	default:
		return s, rejected("unknown action")
	}
}

func reduceGoToStep(reg *step.Registry, s State, a GoToStep) (State, Result) {
	if !reg.Contains(a.Step) {
		return s, rejected("unknown step")
	}

	if a.Step == s.CurrentStep {
		out := s.clone()
		out.StepStatuses[a.Step] = StatusActive
		return out, applied()
	}

	switch s.StepStatuses[a.Step] {
	case StatusCompleted, StatusSkipped:
	default:
		return s, rejected("target step locked")
	}

	out := s.clone()
	out.StepStatuses[s.CurrentStep] = leaveStatus(s, s.CurrentStep)
	out.CurrentStep = a.Step
	out.StepStatuses[a.Step] = StatusActive
	return out, applied()
}

func reduceNextStep(reg *step.Registry, s State) (State, Result) {
	next, ok := reg.Next(s.CurrentStep)
	if !ok {
		return s, rejected("no successor")
	}

	out := s.clone()
	cur := s.CurrentStep
	// Reaching "continue" always advances the active step's conceptual
	// progress, data or not.
	if s.HasStepData(cur) || s.StepStatuses[cur] == StatusActive {
		out.StepStatuses[cur] = StatusCompleted
	}
	out.CurrentStep = next
	out.StepStatuses[next] = StatusActive
	out.IsDirty = true
	return out, applied()
}

func reducePrevStep(reg *step.Registry, s State) (State, Result) {
	prev, ok := reg.Prev(s.CurrentStep)
	if !ok {
		return s, rejected("no predecessor")
	}

	out := s.clone()
	out.StepStatuses[s.CurrentStep] = leaveStatus(s, s.CurrentStep)
	out.CurrentStep = prev
	out.StepStatuses[prev] = StatusActive
	return out, applied()
}

func reduceSkipStep(reg *step.Registry, s State) (State, Result) {
	next, ok := reg.Next(s.CurrentStep)
	if !ok {
		return s, rejected("no successor")
	}

	out := s.clone()
	out.StepStatuses[s.CurrentStep] = StatusSkipped
	out.CurrentStep = next
	out.StepStatuses[next] = StatusActive
	out.IsDirty = true
	return out, applied()
}

func reduceUpdateStepData(reg *step.Registry, s State, a UpdateStepData) (State, Result) {
	if !reg.Contains(a.Step) {
		return s, rejected("unknown step")
	}

	out := s.clone()
	out.StepData[a.Step] = mergeStepData(out.StepData[a.Step], a.Patch)
	out.IsDirty = true
	return out, applied()
}

func reduceMarkStepComplete(reg *step.Registry, s State, a MarkStepComplete) (State, Result) {
	if !reg.Contains(a.Step) {
		return s, rejected("unknown step")
	}

	out := s.clone()
	out.StepStatuses[a.Step] = StatusCompleted
	out.IsDirty = true
	return out, applied()
}

func reducePushVersion(s State, a PushVersion, now int64) (State, Result) {
	if a.Key.Step == "" || a.Key.Field == "" {
		return s, rejected("invalid history key")
	}

	out := s.clone()
	out.VersionHistory[a.Key] = out.VersionHistory[a.Key].Push(a.Data, a.Source, now)
	out.IsDirty = true
	return out, applied()
}

func reduceNavigateVersion(reg *step.Registry, s State, a NavigateVersion) (State, Result) {
	stack, ok := s.VersionHistory[a.Key]
	if !ok {
		return s, rejected("no history for key")
	}
	if !reg.Contains(a.Key.Step) {
		return s, rejected("unknown step")
	}

	moved, didMove := stack.Navigate(a.Direction)
	if !didMove {
		return s, rejected("at history boundary")
	}

	out := s.clone()
	out.VersionHistory[a.Key] = moved

	// Folding the referenced version into step data makes navigation visibly
	// equivalent to the user having made that edit; there is no preview state.
	ver, _ := moved.Current()
	out.StepData[a.Key.Step] = mergeStepData(out.StepData[a.Key.Step], ver.Data)
	out.IsDirty = true
	return out, applied()
}

// leaveStatus computes the status of a step being navigated away from by
// GoToStep or PrevStep: completed when it holds data, otherwise back to
// pending so the single-active invariant holds.
func leaveStatus(s State, id step.ID) StepStatus {
	if s.HasStepData(id) {
		return StatusCompleted
	}
	switch st := s.StepStatuses[id]; st {
	case StatusActive:
		return StatusPending
	default:
		return st
	}
}
