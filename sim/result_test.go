package sim

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestResult_WriteJSON verifies the serialized shape round-trips and empty
// collections encode as arrays, not null.
func TestResult_WriteJSON(t *testing.T) {
	r := newResult("baseline")
	r.appendSnapshot(Snapshot{
		Time: date(2024, 1, 1), Step: 0,
		Aggregates: map[string]float64{"cumulative_output": 10},
		Prices:     map[string]float64{"steel": 700},
	})

	var buf bytes.Buffer
	if err := r.WriteJSON(&buf); err != nil {
		t.Fatal(err)
	}

	var decoded Result
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Scenario != "baseline" || len(decoded.Snapshots) != 1 {
		t.Errorf("round-trip mismatch: %+v", decoded)
	}
	if decoded.Snapshots[0].Aggregates["cumulative_output"] != 10 {
		t.Error("aggregate lost in serialization")
	}
	if strings.Contains(buf.String(), `"log": null`) {
		t.Error("empty log must encode as an empty array")
	}
}

// TestResult_PrintSummary spot-checks the human-readable summary for both
// outcomes.
func TestResult_PrintSummary(t *testing.T) {
	r := newResult("baseline")
	r.appendSnapshot(Snapshot{
		Time:       date(2024, 3, 1),
		Aggregates: map[string]float64{"cumulative_output": 1234.5},
		Prices:     map[string]float64{"steel": 689.9},
	})

	var out bytes.Buffer
	r.PrintSummary(&out)
	for _, want := range []string{"baseline", "finished", "1234.50", "689.90", "2024-03-01"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("summary missing %q:\n%s", want, out.String())
		}
	}

	r.Failed = true
	r.FailureReason = "agent plant-1 failed"
	out.Reset()
	r.PrintSummary(&out)
	if !strings.Contains(out.String(), "FAILED") || !strings.Contains(out.String(), "plant-1") {
		t.Errorf("failed summary missing failure marker:\n%s", out.String())
	}
}
