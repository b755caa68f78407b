package wizard

import (
	"encoding/json"
	"fmt"

	"github.com/Idosegev23/pptmaker-sub001/errors"
	"github.com/Idosegev23/pptmaker-sub001/history"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// actionEnvelope is the wire form of a dispatched action: the ActionName
// discriminator plus the union of all action fields.
type actionEnvelope struct {
	Action    string               `json:"action"`
	Step      step.ID              `json:"step,omitempty"`
	Patch     map[string]any       `json:"patch,omitempty"`
	State     *State               `json:"state,omitempty"`
	Timestamp int64                `json:"timestamp,omitempty"`
	Data      map[string]any       `json:"data,omitempty"`
	Extracted map[step.ID]StepData `json:"extracted,omitempty"`
	Key       history.Key          `json:"key,omitempty"`
	Source    history.Source       `json:"source,omitempty"`
	Direction history.Direction    `json:"direction,omitempty"`
}

// DecodeAction parses one JSON-encoded action. The "action" field carries the
// ActionName of the concrete type; remaining fields are type-specific.
func DecodeAction(raw []byte) (Action, error) {
	var env actionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, errors.WrapInvalid(err, "wizard", "DecodeAction", "decode envelope")
	}

	switch env.Action {
	case "go_to_step":
		return GoToStep{Step: env.Step}, nil
	case "next_step":
		return NextStep{}, nil
	case "prev_step":
		return PrevStep{}, nil
	case "skip_step":
		return SkipStep{}, nil
	case "update_step_data":
		return UpdateStepData{Step: env.Step, Patch: env.Patch}, nil
	case "mark_step_complete":
		return MarkStepComplete{Step: env.Step}, nil
	case "load_state":
		if env.State == nil {
			return nil, errors.WrapInvalid(errors.ErrInvalidAction,
				"wizard", "DecodeAction", "load_state requires a state payload")
		}
		return LoadState{State: *env.State}, nil
	case "mark_saved":
		return MarkSaved{Timestamp: env.Timestamp}, nil
	case "set_extracted_data":
		return SetExtractedData{Data: env.Extracted}, nil
	case "mark_dirty":
		return MarkDirty{}, nil
	case "push_version":
		return PushVersion{Key: env.Key, Data: env.Data, Source: env.Source}, nil
	case "navigate_version":
		return NavigateVersion{Key: env.Key, Direction: env.Direction}, nil
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrInvalidAction, env.Action),
			"wizard", "DecodeAction", "unknown action name")
	}
}

// DecodeActionLog parses a JSON array of actions in dispatch order
func DecodeActionLog(raw []byte) ([]Action, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.WrapInvalid(err, "wizard", "DecodeActionLog", "decode log")
	}

	actions := make([]Action, 0, len(entries))
	for i, entry := range entries {
		action, err := DecodeAction(entry)
		if err != nil {
			return nil, errors.WrapInvalid(err, "wizard", "DecodeActionLog",
				fmt.Sprintf("entry %d", i))
		}
		actions = append(actions, action)
	}
	return actions, nil
}
