package sim

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestClock_AdvanceUntilEndTime verifies the end-instant condition: the
// clock walks day by day and refuses to advance past the end datetime.
func TestClock_AdvanceUntilEndTime(t *testing.T) {
	// GIVEN a clock from Jan 1 to Jan 4 with 1-day steps
	clock, err := NewSimulationClock(date(2024, 1, 1), 24*time.Hour, date(2024, 1, 4), 0)
	if err != nil {
		t.Fatal(err)
	}

	// WHEN advancing three times
	var times []time.Time
	for i := 0; i < 3; i++ {
		if clock.IsFinished() {
			t.Fatalf("clock finished early at step %d", i)
		}
		now, err := clock.Advance()
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		times = append(times, now)
	}

	// THEN it lands on Jan 4, is finished, and a further advance fails
	if !times[2].Equal(date(2024, 1, 4)) {
		t.Errorf("expected Jan 4 after 3 steps, got %s", times[2])
	}
	if !clock.IsFinished() {
		t.Error("clock should be finished at the end instant")
	}
	if _, err := clock.Advance(); !errors.Is(err, ErrClockExhausted) {
		t.Errorf("expected ErrClockExhausted, got %v", err)
	}
	if clock.StepCount() != 3 {
		t.Errorf("expected 3 completed steps, got %d", clock.StepCount())
	}
}

// TestClock_MaxStepsLimit verifies the step-count end condition.
func TestClock_MaxStepsLimit(t *testing.T) {
	// GIVEN a clock with no end instant and a 2-step limit
	clock, err := NewSimulationClock(date(2024, 1, 1), 24*time.Hour, time.Time{}, 2)
	if err != nil {
		t.Fatal(err)
	}

	// WHEN advancing twice
	for i := 0; i < 2; i++ {
		if _, err := clock.Advance(); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	// THEN the clock is exhausted
	if !clock.IsFinished() {
		t.Error("clock should be finished after max steps")
	}
	if _, err := clock.Advance(); !errors.Is(err, ErrClockExhausted) {
		t.Errorf("expected ErrClockExhausted, got %v", err)
	}
}

// TestClock_ConstructionErrors verifies the configuration checks: a
// positive step size and at least one end condition are required, and the
// end instant must lie after the start.
func TestClock_ConstructionErrors(t *testing.T) {
	cases := []struct {
		name     string
		step     time.Duration
		end      time.Time
		maxSteps int
	}{
		{"zero step", 0, date(2024, 1, 2), 0},
		{"negative step", -time.Hour, date(2024, 1, 2), 0},
		{"no end condition", 24 * time.Hour, time.Time{}, 0},
		{"end before start", 24 * time.Hour, date(2023, 12, 31), 0},
		{"end equals start", 24 * time.Hour, date(2024, 1, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSimulationClock(date(2024, 1, 1), tc.step, tc.end, tc.maxSteps)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
		})
	}
}

// TestClock_BothEndConditions verifies that whichever end condition holds
// first wins when both are configured.
func TestClock_BothEndConditions(t *testing.T) {
	// GIVEN a clock ending Jan 10 but limited to 2 steps
	clock, err := NewSimulationClock(date(2024, 1, 1), 24*time.Hour, date(2024, 1, 10), 2)
	if err != nil {
		t.Fatal(err)
	}

	// WHEN advancing to the step limit
	clock.Advance()
	clock.Advance()

	// THEN the step limit ends the run well before the end instant
	if !clock.IsFinished() {
		t.Error("step limit should end the run")
	}
	if !clock.Now().Equal(date(2024, 1, 3)) {
		t.Errorf("expected Jan 3, got %s", clock.Now())
	}
}
