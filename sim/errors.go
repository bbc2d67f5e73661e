package sim

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockExhausted signals that the clock's end condition already holds.
// It is an internal control signal: the engine translates it into the
// Finished state and never surfaces it to callers.
var ErrClockExhausted = errors.New("simulation clock exhausted")

// ConfigurationError reports an invalid or missing required setting.
// It is fatal and surfaced before any tick runs.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// InvalidScheduleError reports an attempt to schedule an event before the
// queue's current drain time. It is recoverable: the engine drops the
// offending event, logs it, and the run continues.
type InvalidScheduleError struct {
	Kind      string
	EventTime time.Time
	DrainTime time.Time
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("event %q scheduled at %s, before drain time %s",
		e.Kind, e.EventTime.Format(time.RFC3339), e.DrainTime.Format(time.RFC3339))
}

// AgentComputationError wraps an error returned by an agent's Step or
// HandleEvent. Under the default fail-fast policy it transitions the engine
// to Failed; under skip-and-log the agent's proposals for the tick are
// discarded and the run continues.
type AgentComputationError struct {
	AgentID string
	Phase   string // "step" or "handle_event"
	Err     error
}

func (e *AgentComputationError) Error() string {
	return fmt.Sprintf("agent %s failed during %s: %v", e.AgentID, e.Phase, e.Err)
}

func (e *AgentComputationError) Unwrap() error { return e.Err }
