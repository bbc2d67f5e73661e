package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/worldgen"
)

func syntheticScenario() *sim.ScenarioConfig {
	return &sim.ScenarioConfig{
		TimeSettings: sim.TimeSettings{
			StartDatetime:      "2024-01-01",
			TimeStepDays:       1,
			MaxSimulationSteps: 30,
		},
		SimulationParameters: sim.SimulationParameters{
			SimulationName:    "synthetic-smoke",
			NumberOfPlants:    4,
			NumberOfSuppliers: 2,
			Regions:           []string{"Europe", "Asia Pacific"},
		},
		RandomSeed: 42,
	}
}

// TestExecuteScenario_SyntheticRunFinishes is the end-to-end smoke test:
// a synthetic world runs a month of daily ticks, produces steel, moves
// material, and finishes cleanly.
func TestExecuteScenario_SyntheticRunFinishes(t *testing.T) {
	cfg := syntheticScenario()
	require.NoError(t, cfg.Validate())

	result, err := executeScenario(cfg)
	require.NoError(t, err)
	require.False(t, result.Failed)
	require.Len(t, result.Snapshots, 30)

	last := result.Snapshots[len(result.Snapshots)-1]
	require.Greater(t, last.Aggregates["cumulative_output"], 0.0, "plants should produce")
	require.Greater(t, last.Aggregates["cumulative_emissions"], 0.0)
	require.Greater(t, last.Aggregates["shipments_dispatched"], 0.0, "replenishment should move material")
	require.Greater(t, last.Prices["steel"], 0.0)

	// Synthetic transport leads are hours against daily ticks; every
	// dispatched shipment must still arrive.
	for _, rec := range result.Log {
		require.NotEqual(t, sim.LogDroppedEvent, rec.Kind, "dropped: %s", rec.Detail)
	}
}

// TestExecuteScenario_Reproducible verifies the top-level determinism
// contract: same scenario, same seed, byte-identical serialized results.
func TestExecuteScenario_Reproducible(t *testing.T) {
	serialize := func() []byte {
		result, err := executeScenario(syntheticScenario())
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, result.WriteJSON(&buf))
		return buf.Bytes()
	}
	require.Equal(t, serialize(), serialize())

	// And a different seed diverges.
	cfg := syntheticScenario()
	cfg.RandomSeed = 43
	other, err := executeScenario(cfg)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, other.WriteJSON(&buf))
	require.NotEqual(t, serialize(), buf.Bytes())
}

// TestExecuteScenario_FromCSVInput verifies the CSV input path: generate
// a world, write it out, load it back through a scenario, and run.
func TestExecuteScenario_FromCSVInput(t *testing.T) {
	dir := t.TempDir()
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(7))
	plants, suppliers, markets, err := worldgen.Generate(worldgen.SyntheticParams{
		NumberOfPlants:    3,
		NumberOfSuppliers: 2,
	}, rng.ForSubsystem(sim.SubsystemWorldgen))
	require.NoError(t, err)
	require.NoError(t, writeWorldCSVs(dir, plants, suppliers, markets))

	cfg := syntheticScenario()
	cfg.DataPaths.InputDataDir = dir
	result, err := executeScenario(cfg)
	require.NoError(t, err)
	require.False(t, result.Failed)
	require.Greater(t, result.Snapshots[len(result.Snapshots)-1].Aggregates["cumulative_output"], 0.0)
}

// TestWriteResult_CreatesParentDir verifies result files land in freshly
// created output directories.
func TestWriteResult_CreatesParentDir(t *testing.T) {
	cfg := syntheticScenario()
	cfg.TimeSettings.MaxSimulationSteps = 2
	result, err := executeScenario(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "results.json")
	require.NoError(t, writeResult(result, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"snapshots"`)
}
