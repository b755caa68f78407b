// Package document decodes the opaque JSON blobs exchanged with the
// caller-owned document store.
//
// A loaded blob holds, at minimum, either a previously serialized wizard
// state (session resume) or a raw extraction payload (first load); both may
// be absent. Persistence itself stays with the caller; this package only
// detects which shape arrived and produces a normalized state from it, so a
// tampered or partial document never hard-crashes the editing flow.
package document

import (
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Idosegev23/pptmaker-sub001/errors"
	"github.com/Idosegev23/pptmaker-sub001/metric"
	"github.com/Idosegev23/pptmaker-sub001/step"
	"github.com/Idosegev23/pptmaker-sub001/wizard"
)

// Mode reports which shape was detected in a loaded document
type Mode string

// Load modes
const (
	ModeResume     Mode = "resume"
	ModeExtraction Mode = "extraction"
	ModeFresh      Mode = "fresh"
)

// snapshotSchema is the structural contract a persisted wizard state must
// meet to be trusted for resume. Field-level repair beyond this shape check
// is handled by wizard.Normalize, which clamps rather than rejects.
const snapshotSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["currentStep", "stepStatuses"],
	"properties": {
		"currentStep": {"type": "string", "minLength": 1},
		"stepStatuses": {"type": "object"},
		"stepData": {"type": "object"},
		"extractedData": {"type": "object"},
		"versionHistory": {"type": "object"},
		"isDirty": {"type": "boolean"},
		"lastSavedAt": {"type": "number"}
	}
}`

var compiledSnapshotSchema = gojsonschema.NewStringLoader(snapshotSchema)

// envelope is the wire shape of a stored document
type envelope struct {
	ID            string                      `json:"id,omitempty"`
	WizardState   json.RawMessage             `json:"wizardState,omitempty"`
	ExtractedData map[step.ID]wizard.StepData `json:"extractedData,omitempty"`
}

// LoadResult is the outcome of decoding a document blob
type LoadResult struct {
	ID    string
	Mode  Mode
	State wizard.State
}

// Load decodes a document blob into a session-ready wizard state.
// An empty blob yields a fresh state under a newly minted document id.
// A snapshot that fails the structural contract is logged and demoted to
// the extraction path rather than rejected.
func Load(
	reg *step.Registry,
	raw []byte,
	logger *slog.Logger,
	metricsRegistry *metric.MetricsRegistry,
) (LoadResult, error) {
	if logger == nil {
		logger = slog.Default()
	}

	result := LoadResult{Mode: ModeFresh}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return LoadResult{}, errors.WrapInvalid(err, "document", "Load", "decode envelope")
		}
	}

	result.ID = env.ID
	if result.ID == "" {
		result.ID = uuid.New().String()
	}

	switch {
	case len(env.WizardState) > 0 && snapshotIsWellFormed(env.WizardState, logger):
		var loaded wizard.State
		if err := json.Unmarshal(env.WizardState, &loaded); err != nil {
			return LoadResult{}, errors.WrapInvalid(err, "document", "Load", "decode wizard state")
		}
		result.State = wizard.Normalize(reg, loaded)
		result.State.IsDirty = false
		result.Mode = ModeResume

	case len(env.ExtractedData) > 0:
		result.State = wizard.NewStateFromExtraction(reg, env.ExtractedData)
		result.Mode = ModeExtraction

	default:
		result.State = wizard.NewState(reg)
		result.Mode = ModeFresh
	}

	if metricsRegistry != nil {
		metricsRegistry.Core().DocumentsLoaded.WithLabelValues(string(result.Mode)).Inc()
	}
	logger.Info("Document loaded",
		"document_id", result.ID,
		"mode", result.Mode)
	return result, nil
}

// snapshotIsWellFormed checks a persisted state against the snapshot schema
func snapshotIsWellFormed(raw json.RawMessage, logger *slog.Logger) bool {
	res, err := gojsonschema.Validate(compiledSnapshotSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		logger.Warn("Snapshot schema validation errored; treating as untrusted", "error", err)
		return false
	}
	if !res.Valid() {
		for _, desc := range res.Errors() {
			logger.Warn("Snapshot rejected by schema",
				"field", desc.Field(),
				"reason", desc.Description())
		}
		return false
	}
	return true
}

// NewSnapshot mints a document id and encodes the state under it, for
// callers persisting a session that never went through Load.
func NewSnapshot(state wizard.State) (string, []byte, error) {
	id := uuid.New().String()
	blob, err := Encode(id, state)
	if err != nil {
		return "", nil, err
	}
	return id, blob, nil
}

// Encode serializes a wizard state back into a store-ready document blob
// under the given document id.
func Encode(id string, state wizard.State) ([]byte, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, errors.Wrap(err, "document", "Encode", "marshal state")
	}

	data, err := json.Marshal(envelope{ID: id, WizardState: stateJSON})
	if err != nil {
		return nil, errors.Wrap(err, "document", "Encode", "marshal envelope")
	}
	return data, nil
}
