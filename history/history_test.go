package history

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Idosegev23/pptmaker-sub001/step"
)

func push(s Stack, text string, src Source, now int64) Stack {
	return s.Push(map[string]any{"text": text}, src, now)
}

func TestPushAdvancesCursor(t *testing.T) {
	var s Stack

	s = push(s, "v1", SourceAI, 100)
	s = push(s, "v2", SourceResearch, 200)

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.CurrentIndex)

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "v2", cur.Data["text"])
	assert.Equal(t, SourceResearch, cur.Source)
	assert.Equal(t, int64(200), cur.Timestamp)
}

func TestPushDoesNotMutateReceiver(t *testing.T) {
	var s Stack
	s = push(s, "v1", SourceAI, 1)

	before := s
	_ = push(s, "v2", SourceManual, 2)

	assert.Equal(t, before.Len(), s.Len())
	assert.Equal(t, 0, s.CurrentIndex)
}

func TestCapDropsOldest(t *testing.T) {
	var s Stack
	for i := 0; i < MaxVersions+5; i++ {
		s = push(s, fmt.Sprintf("v%d", i), SourceManual, int64(i))
	}

	require.Equal(t, MaxVersions, s.Len())
	assert.Equal(t, MaxVersions-1, s.CurrentIndex)

	// Survivors are exactly the most recent pushes, in order.
	for i, v := range s.Versions {
		assert.Equal(t, fmt.Sprintf("v%d", i+5), v.Data["text"])
	}
}

func TestForkDiscard(t *testing.T) {
	var s Stack
	s = push(s, "A", SourceAI, 1)
	s = push(s, "B", SourceAI, 2)
	s = push(s, "C", SourceAI, 3)

	s, moved := s.Navigate(DirectionPrev)
	require.True(t, moved)
	s, moved = s.Navigate(DirectionPrev)
	require.True(t, moved)
	assert.Equal(t, 0, s.CurrentIndex)

	s = push(s, "D", SourceManual, 4)

	require.Equal(t, 2, s.Len())
	assert.Equal(t, "A", s.Versions[0].Data["text"])
	assert.Equal(t, "D", s.Versions[1].Data["text"])
	assert.Equal(t, 1, s.CurrentIndex)
}

func TestNavigateClampsAtEnds(t *testing.T) {
	var s Stack
	s = push(s, "only", SourceAI, 1)

	s2, moved := s.Navigate(DirectionPrev)
	assert.False(t, moved)
	assert.Equal(t, 0, s2.CurrentIndex)

	s2, moved = s.Navigate(DirectionNext)
	assert.False(t, moved)
	assert.Equal(t, 0, s2.CurrentIndex)

	var empty Stack
	_, moved = empty.Navigate(DirectionPrev)
	assert.False(t, moved)
}

func TestNavigateUnknownDirection(t *testing.T) {
	var s Stack
	s = push(s, "v1", SourceAI, 1)

	_, moved := s.Navigate(Direction("sideways"))
	assert.False(t, moved)
}

func TestClampRecoversCorruptCursor(t *testing.T) {
	s := Stack{
		Versions:     []Version{{Data: map[string]any{"text": "a"}, Timestamp: 1, Source: SourceAI}},
		CurrentIndex: 99,
	}
	s = s.Clamp()
	assert.Equal(t, 0, s.CurrentIndex)

	s.CurrentIndex = -3
	s = s.Clamp()
	assert.Equal(t, 0, s.CurrentIndex)

	var empty Stack
	empty.CurrentIndex = 7
	assert.Equal(t, 0, empty.Clamp().CurrentIndex)
}

func TestKeyWireFormat(t *testing.T) {
	k := NewKey(step.StepKeyInsight, "insight")
	assert.Equal(t, "key_insight.insight", k.String())

	parsed, err := ParseKey("key_insight.insight")
	require.NoError(t, err)
	assert.Equal(t, k, parsed)

	// Field names may contain dots; split is on the first dot only.
	parsed, err = ParseKey("brief.contact.email")
	require.NoError(t, err)
	assert.Equal(t, step.ID("brief"), parsed.Step)
	assert.Equal(t, "contact.email", parsed.Field)

	for _, bad := range []string{"", "nodot", ".field", "step."} {
		_, err := ParseKey(bad)
		assert.Error(t, err, "ParseKey(%q)", bad)
	}
}

func TestKeyJSONMapKey(t *testing.T) {
	m := map[Key]Stack{
		NewKey(step.StepBrief, "brandBrief"): {},
	}

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"brief.brandBrief"`)

	var back map[Key]Stack
	require.NoError(t, json.Unmarshal(data, &back))
	_, ok := back[NewKey(step.StepBrief, "brandBrief")]
	assert.True(t, ok)
}
