package sim

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SimulationClock manages simulation time: the current instant, the step
// size, and the end condition. At least one of endTime / maxSteps must be
// set so every run terminates. Current time is monotonically non-decreasing
// and is advanced only by the Engine.
type SimulationClock struct {
	start     time.Time
	current   time.Time
	step      time.Duration
	endTime   time.Time // zero value means "no end instant"
	maxSteps  int       // 0 means "no step limit"
	stepCount int
}

// NewSimulationClock creates a clock starting at start with the given step
// size. endTime may be the zero time and maxSteps may be 0, but not both:
// an end condition is required.
func NewSimulationClock(start time.Time, step time.Duration, endTime time.Time, maxSteps int) (*SimulationClock, error) {
	if step <= 0 {
		return nil, &ConfigurationError{Field: "time_step", Reason: "step size must be positive"}
	}
	if endTime.IsZero() && maxSteps <= 0 {
		return nil, &ConfigurationError{Field: "end_condition", Reason: "either an end datetime or a max step count is required"}
	}
	if !endTime.IsZero() && !endTime.After(start) {
		return nil, &ConfigurationError{Field: "end_datetime", Reason: "end time must be after start time"}
	}
	logrus.Debugf("clock initialized: start=%s step=%s end=%s maxSteps=%d",
		start.Format(time.RFC3339), step, endTime.Format(time.RFC3339), maxSteps)
	return &SimulationClock{
		start:    start,
		current:  start,
		step:     step,
		endTime:  endTime,
		maxSteps: maxSteps,
	}, nil
}

// Now returns the current simulation time.
func (c *SimulationClock) Now() time.Time { return c.current }

// StepSize returns the duration of one simulation step.
func (c *SimulationClock) StepSize() time.Duration { return c.step }

// StepCount returns the number of completed steps (0 before the first advance).
func (c *SimulationClock) StepCount() int { return c.stepCount }

// IsFinished reports whether the end condition holds: the end instant has
// been reached or the maximum number of steps has been taken.
func (c *SimulationClock) IsFinished() bool {
	if !c.endTime.IsZero() && !c.current.Before(c.endTime) {
		return true
	}
	if c.maxSteps > 0 && c.stepCount >= c.maxSteps {
		return true
	}
	return false
}

// Advance moves the current time forward by one step and returns the new
// time. It fails with ErrClockExhausted if the end condition already holds.
func (c *SimulationClock) Advance() (time.Time, error) {
	if c.IsFinished() {
		return c.current, ErrClockExhausted
	}
	c.current = c.current.Add(c.step)
	c.stepCount++
	return c.current, nil
}
