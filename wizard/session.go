package wizard

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Idosegev23/pptmaker-sub001/errors"
	"github.com/Idosegev23/pptmaker-sub001/metric"
	"github.com/Idosegev23/pptmaker-sub001/pkg/timestamp"
	"github.com/Idosegev23/pptmaker-sub001/step"
)

// Session wraps the pure reducer with the stateful concerns of one editing
// session: it owns the current state, stamps version pushes with wall-clock
// time, logs transitions, and records metrics. The reducer itself stays pure;
// Session is the single place side effects live.
type Session struct {
	mu      sync.Mutex
	reg     *step.Registry
	state   State
	logger  *slog.Logger
	metrics *wizardMetrics
}

// NewSession creates a session over an initial state. Logger may not be nil;
// metricsRegistry may be nil to disable metrics.
func NewSession(
	reg *step.Registry,
	initial State,
	logger *slog.Logger,
	metricsRegistry *metric.MetricsRegistry,
) (*Session, error) {
	if reg == nil {
		return nil, errors.WrapFatal(errors.ErrMissingConfig, "Session", "NewSession", "registry required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	metrics, err := newWizardMetrics(metricsRegistry)
	if err != nil {
		logger.Error("Failed to initialize wizard metrics", "error", err)
		metrics = nil // Continue without metrics
	}

	return &Session{
		reg:     reg,
		state:   Normalize(reg, initial),
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Dispatch applies an action through the reducer and returns the result.
// Rejected actions leave the state untouched and are logged at debug level;
// they are expected during speculative UI calls, not errors.
func (s *Session) Dispatch(action Action) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, res := Reduce(s.reg, s.state, action, timestamp.Now())
	if res.Applied {
		s.state = next
		s.logger.Debug("Wizard action applied",
			"action", action.ActionName(),
			"current_step", s.state.CurrentStep,
			"dirty", s.state.IsDirty)
	} else {
		s.logger.Debug("Wizard action rejected",
			"action", action.ActionName(),
			"reason", res.Reason,
			"current_step", s.state.CurrentStep)
	}

	s.metrics.recordAction(action, res, s.state)
	return res
}

// State returns a deep copy of the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Registry returns the step registry this session runs over
func (s *Session) Registry() *step.Registry {
	return s.reg
}

// CurrentStep returns the step currently holding focus
func (s *Session) CurrentStep() step.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CurrentStep
}

// IsDirty reports whether there are unsaved mutations. Callers use this flag
// to drive debounced persistence; the engine never saves on its own.
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsDirty
}

// Progress reports completed-or-skipped steps out of the registry total
func (s *Session) Progress() (done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Progress(s.reg)
}

// Snapshot serializes the current state to JSON for caller-owned persistence
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(s.state)
	if err != nil {
		return nil, errors.Wrap(err, "Session", "Snapshot", "marshal state")
	}
	return data, nil
}

// Restore replaces the session state from a JSON snapshot, normalizing
// defensively and clearing the dirty flag, exactly like a LoadState action.
func (s *Session) Restore(data []byte) error {
	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		return errors.WrapInvalid(err, "Session", "Restore", "unmarshal state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, _ := Reduce(s.reg, s.state, LoadState{State: loaded}, timestamp.Now())
	s.state = next
	s.logger.Info("Session state restored",
		"current_step", s.state.CurrentStep,
		"history_keys", len(s.state.VersionHistory))
	return nil
}
