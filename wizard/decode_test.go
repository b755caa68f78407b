package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idosegev23/pptmaker-sub001/history"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

func TestDecodeAction(t *testing.T) {
	action, err := DecodeAction([]byte(`{"action":"update_step_data","step":"brief","patch":{"brandName":"Acme"}}`))
	require.NoError(t, err)
	upd, ok := action.(UpdateStepData)
	require.True(t, ok)
	assert.Equal(t, step.StepBrief, upd.Step)
	assert.Equal(t, "Acme", upd.Patch["brandName"])

	action, err = DecodeAction([]byte(`{"action":"navigate_version","key":"brief.brandBrief","direction":"prev"}`))
	require.NoError(t, err)
	nav, ok := action.(NavigateVersion)
	require.True(t, ok)
	assert.Equal(t, history.NewKey(step.StepBrief, "brandBrief"), nav.Key)
	assert.Equal(t, history.DirectionPrev, nav.Direction)
}

func TestDecodeActionUnknownName(t *testing.T) {
	_, err := DecodeAction([]byte(`{"action":"teleport"}`))
	assert.Error(t, err)
}

func TestDecodeActionLogReplay(t *testing.T) {
	log := []byte(`[
		{"action":"update_step_data","step":"brief","patch":{"brandName":"Acme"}},
		{"action":"next_step"},
		{"action":"skip_step"}
	]`)

	actions, err := DecodeActionLog(log)
	require.NoError(t, err)
	require.Len(t, actions, 3)

	reg := step.Default()
	s := NewState(reg)
	for _, action := range actions {
		var res Result
		s, res = Reduce(reg, s, action, 0)
		require.True(t, res.Applied, "action %s", action.ActionName())
	}

	assert.Equal(t, step.StepAudience, s.CurrentStep)
	assert.Equal(t, StatusCompleted, s.StepStatuses[step.StepBrief])
	assert.Equal(t, StatusSkipped, s.StepStatuses[step.StepGoals])
}

func TestDecodeActionLogRejectsBadEntry(t *testing.T) {
	_, err := DecodeActionLog([]byte(`[{"action":"next_step"},{"action":""}]`))
	assert.Error(t, err)
}
