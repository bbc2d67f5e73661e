package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Snapshot is one per-tick record of selected world state: the tick's time,
// its 0-indexed step number, and copies of the aggregate and price tables.
type Snapshot struct {
	Time       time.Time          `json:"time"`
	Step       int                `json:"step"`
	Aggregates map[string]float64 `json:"aggregates"`
	Prices     map[string]float64 `json:"prices"`
}

// LogRecord is a structured runtime log entry emitted by the engine for
// recoverable anomalies: dropped past-time events, events addressed to
// inactive or unknown agents, skipped agents, and unappliable effects.
// Rendering is left to the output sink.
type LogRecord struct {
	Step    int       `json:"step"`
	Time    time.Time `json:"time"`
	Kind    string    `json:"kind"`
	AgentID string    `json:"agent_id,omitempty"`
	Detail  string    `json:"detail"`
}

// Log record kinds.
const (
	LogDroppedEvent    = "dropped_event"
	LogInactiveTarget  = "inactive_event_target"
	LogUnknownTarget   = "unknown_event_target"
	LogSkippedAgent    = "skipped_agent"
	LogUnappliedEffect = "unapplied_effect"
)

// Result is the append-only outcome of a run: per-tick snapshots, the
// structured runtime log, and a failure marker. On a Failed run the partial
// snapshot sequence is preserved and returned to the caller.
type Result struct {
	Scenario      string      `json:"scenario"`
	Snapshots     []Snapshot  `json:"snapshots"`
	Log           []LogRecord `json:"log"`
	Failed        bool        `json:"failed"`
	FailureReason string      `json:"failure_reason,omitempty"`
}

func newResult(scenario string) *Result {
	return &Result{
		Scenario:  scenario,
		Snapshots: make([]Snapshot, 0),
		Log:       make([]LogRecord, 0),
	}
}

func (r *Result) appendSnapshot(s Snapshot) {
	r.Snapshots = append(r.Snapshots, s)
}

func (r *Result) appendLog(rec LogRecord) {
	r.Log = append(r.Log, rec)
}

// WriteJSON encodes the result for the output sink. encoding/json sorts map
// keys, so identical runs produce byte-identical output.
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// PrintSummary displays aggregated results at the end of a run.
func (r *Result) PrintSummary(out io.Writer) {
	fmt.Fprintln(out, "=== Simulation Summary ===")
	fmt.Fprintf(out, "Scenario             : %s\n", r.Scenario)
	fmt.Fprintf(out, "Ticks completed      : %d\n", len(r.Snapshots))
	fmt.Fprintf(out, "Log records          : %d\n", len(r.Log))
	if r.Failed {
		fmt.Fprintf(out, "Status               : FAILED (%s)\n", r.FailureReason)
	} else {
		fmt.Fprintf(out, "Status               : finished\n")
	}
	if len(r.Snapshots) == 0 {
		return
	}
	last := r.Snapshots[len(r.Snapshots)-1]
	fmt.Fprintf(out, "Final simulated time : %s\n", last.Time.Format("2006-01-02"))
	for _, key := range []string{"cumulative_output", "cumulative_emissions", "total_cost"} {
		if v, ok := last.Aggregates[key]; ok {
			fmt.Fprintf(out, "%-21s: %.2f\n", key, v)
		}
	}
	if v, ok := last.Prices["steel"]; ok {
		fmt.Fprintf(out, "Final steel price    : %.2f USD/t\n", v)
	}
}
