package wizard

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idosegev23/pptmaker-sub001/metric"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	reg := step.Default()
	sess, err := NewSession(reg, NewState(reg), slog.Default(), metric.NewMetricsRegistry())
	require.NoError(t, err)
	return sess
}

func TestNewSessionRequiresRegistry(t *testing.T) {
	_, err := NewSession(nil, State{}, nil, nil)
	assert.Error(t, err)
}

func TestNewSessionNormalizesInitialState(t *testing.T) {
	reg := step.Default()
	sess, err := NewSession(reg, State{CurrentStep: "payment"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, reg.First(), sess.CurrentStep())
}

func TestSessionDispatch(t *testing.T) {
	sess := newTestSession(t)

	res := sess.Dispatch(UpdateStepData{
		Step:  step.StepBrief,
		Patch: map[string]any{"brandName": "Acme"},
	})
	assert.True(t, res.Applied)
	assert.True(t, sess.IsDirty())

	res = sess.Dispatch(NextStep{})
	require.True(t, res.Applied)
	assert.Equal(t, step.StepGoals, sess.CurrentStep())

	res = sess.Dispatch(GoToStep{Step: step.StepGenerate})
	assert.False(t, res.Applied)
	assert.Equal(t, "target step locked", res.Reason)
	assert.Equal(t, step.StepGoals, sess.CurrentStep(), "rejected dispatch leaves state untouched")
}

func TestSessionStateReturnsCopy(t *testing.T) {
	sess := newTestSession(t)
	sess.Dispatch(UpdateStepData{Step: step.StepBrief, Patch: map[string]any{"brandName": "Acme"}})

	snapshot := sess.State()
	snapshot.StepData[step.StepBrief]["brandName"] = "tampered"
	snapshot.StepStatuses[step.StepBrief] = StatusSkipped

	fresh := sess.State()
	assert.Equal(t, "Acme", fresh.StepData[step.StepBrief]["brandName"])
	assert.Equal(t, StatusActive, fresh.StepStatuses[step.StepBrief])
}

func TestSessionSnapshotRestore(t *testing.T) {
	sess := newTestSession(t)
	sess.Dispatch(UpdateStepData{Step: step.StepBrief, Patch: map[string]any{"brandName": "Acme"}})
	sess.Dispatch(NextStep{})

	data, err := sess.Snapshot()
	require.NoError(t, err)

	restored := newTestSession(t)
	require.NoError(t, restored.Restore(data))

	assert.Equal(t, step.StepGoals, restored.CurrentStep())
	assert.Equal(t, "Acme", restored.State().StepData[step.StepBrief]["brandName"])
	assert.False(t, restored.IsDirty(), "restore starts clean regardless of snapshot dirtiness")
}

func TestSessionRestoreRejectsGarbage(t *testing.T) {
	sess := newTestSession(t)
	assert.Error(t, sess.Restore([]byte("not json")))
	assert.Equal(t, step.StepBrief, sess.CurrentStep())
}

func TestSessionProgress(t *testing.T) {
	sess := newTestSession(t)
	sess.Dispatch(NextStep{})
	sess.Dispatch(SkipStep{})

	done, total := sess.Progress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 6, total)
}

func TestSessionSaveCycle(t *testing.T) {
	sess := newTestSession(t)
	sess.Dispatch(UpdateStepData{Step: step.StepBrief, Patch: map[string]any{"brandName": "Acme"}})
	require.True(t, sess.IsDirty())

	res := sess.Dispatch(MarkSaved{Timestamp: 1700000000000})
	require.True(t, res.Applied)
	assert.False(t, sess.IsDirty())
	assert.Equal(t, int64(1700000000000), sess.State().LastSavedAt)
}
