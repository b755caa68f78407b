package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStandardErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"unknown step is invalid", ErrUnknownStep, ErrorInvalid},
		{"corrupted snapshot is invalid", ErrSnapshotCorrupted, ErrorInvalid},
		{"invalid registry is fatal", ErrInvalidRegistry, ErrorFatal},
		{"missing config is fatal", ErrMissingConfig, ErrorFatal},
		{"research unavailable is transient", ErrResearchUnavailable, ErrorTransient},
		{"unknown error defaults to transient", errors.New("something odd"), ErrorTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestWrapPreservesChain(t *testing.T) {
	wrapped := WrapInvalid(ErrUnknownStep, "StepRegistry", "Get", "lookup")
	require.Error(t, wrapped)

	assert.True(t, errors.Is(wrapped, ErrUnknownStep))
	assert.True(t, IsInvalid(wrapped))
	assert.Contains(t, wrapped.Error(), "StepRegistry.Get: lookup failed")

	var ce *ClassifiedError
	require.True(t, errors.As(wrapped, &ce))
	assert.Equal(t, ErrorInvalid, ce.Class)
	assert.Equal(t, "StepRegistry", ce.Component)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "c", "m", "a"))
	assert.Nil(t, WrapTransient(nil, "c", "m", "a"))
	assert.Nil(t, WrapInvalid(nil, "c", "m", "a"))
	assert.Nil(t, WrapFatal(nil, "c", "m", "a"))
}

func TestClassificationSurvivesFmtWrapping(t *testing.T) {
	inner := WrapFatal(ErrInvalidRegistry, "Registry", "Load", "parse")
	outer := fmt.Errorf("session setup: %w", inner)

	assert.True(t, IsFatal(outer))
	assert.False(t, IsInvalid(outer))
}

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(42).String())
}
