// Package history implements per-field version stacks for wizard state.
//
// Each versionable field keeps one linear, capped timeline: navigating back and
// then pushing a new version discards everything forward of the cursor before
// appending. There is no redo-after-fork and no branch tree. The use case is
// comparing candidate phrasings, not document-wide undo, so one timeline per
// key bounds memory and avoids divergent-merge ambiguity.
package history

import (
	"fmt"
	"strings"

	"github.com/Idosegev23/pptmaker-sub001/errors"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// MaxVersions caps the number of versions retained per key. Pushing beyond the
// cap drops the oldest entry and re-bases the cursor.
const MaxVersions = 10

// Source labels the provenance of a pushed version. It is surfaced in UI but
// never interpreted by the engine's control flow.
type Source string

// Version provenance labels
const (
	SourceAI       Source = "ai"
	SourceResearch Source = "research"
	SourceManual   Source = "manual"
)

// Direction selects which way NavigateVersion moves the cursor
type Direction string

// Navigation directions
const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// Key addresses one versionable field within a step's data.
// It serializes as "<stepId>.<fieldName>" for JSON map keys.
type Key struct {
	Step  step.ID
	Field string
}

// NewKey builds a key from its parts
func NewKey(id step.ID, field string) Key {
	return Key{Step: id, Field: field}
}

// ParseKey parses the "<stepId>.<fieldName>" wire form. Field names may
// themselves contain dots; the split is on the first dot only.
func ParseKey(s string) (Key, error) {
	idx := strings.Index(s, ".")
	if idx <= 0 || idx == len(s)-1 {
		return Key{}, errors.WrapInvalid(
			fmt.Errorf("key %q is not <stepId>.<fieldName>", s),
			"Key", "ParseKey", "parse")
	}
	return Key{Step: step.ID(s[:idx]), Field: s[idx+1:]}, nil
}

// String returns the wire form of the key
func (k Key) String() string {
	return string(k.Step) + "." + k.Field
}

// MarshalText implements encoding.TextMarshaler so keys work as JSON map keys
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Version is one timestamped, source-tagged snapshot of a field's data.
// Data is a partial step-data patch, folded into step data on navigation.
type Version struct {
	Data      map[string]any `json:"data"`
	Timestamp int64          `json:"timestamp"`
	Source    Source         `json:"source"`
}

// Stack is the bounded, branch-truncating timeline for one key.
// Methods use value semantics: they return a new Stack and never mutate the
// receiver, so the wizard reducer stays pure.
type Stack struct {
	Versions     []Version `json:"versions"`
	CurrentIndex int       `json:"currentIndex"`
}

// Push appends a version at the cursor, discarding any forward branch first.
// The result is capped at MaxVersions (oldest dropped) and the cursor points
// at the appended version.
func (s Stack) Push(data map[string]any, source Source, now int64) Stack {
	s = s.Clamp()

	// Drop the abandoned forward branch, then append.
	keep := len(s.Versions)
	if keep > 0 {
		keep = s.CurrentIndex + 1
	}
	versions := make([]Version, keep, keep+1)
	copy(versions, s.Versions[:keep])
	versions = append(versions, Version{Data: data, Timestamp: now, Source: source})

	if len(versions) > MaxVersions {
		versions = versions[len(versions)-MaxVersions:]
	}

	return Stack{Versions: versions, CurrentIndex: len(versions) - 1}
}

// Navigate moves the cursor one step in the given direction, clamped to
// bounds. The boolean reports whether the cursor actually moved; at either
// end (or on an empty stack) the original stack is returned unchanged.
func (s Stack) Navigate(dir Direction) (Stack, bool) {
	if len(s.Versions) == 0 {
		return s, false
	}
	s = s.Clamp()

	next := s.CurrentIndex
	switch dir {
	case DirectionPrev:
		next--
	case DirectionNext:
		next++
	default:
		return s, false
	}

	if next < 0 || next >= len(s.Versions) {
		return s, false
	}
	return Stack{Versions: s.Versions, CurrentIndex: next}, true
}

// Current returns the version under the cursor
func (s Stack) Current() (Version, bool) {
	if len(s.Versions) == 0 {
		return Version{}, false
	}
	s = s.Clamp()
	return s.Versions[s.CurrentIndex], true
}

// Clamp forces the cursor into 0..len-1. Persisted state may arrive with an
// out-of-bounds cursor after external tampering; a corrupt session must never
// hard-crash the editing flow, so the cursor is silently reset to a valid bound.
func (s Stack) Clamp() Stack {
	if len(s.Versions) == 0 {
		s.CurrentIndex = 0
		return s
	}
	if s.CurrentIndex < 0 {
		s.CurrentIndex = 0
	}
	if s.CurrentIndex >= len(s.Versions) {
		s.CurrentIndex = len(s.Versions) - 1
	}
	return s
}

// Len returns the number of retained versions
func (s Stack) Len() int {
	return len(s.Versions)
}
