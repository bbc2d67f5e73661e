package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/steelpath/steelpath/sim"
	"github.com/steelpath/steelpath/sim/worldgen"
)

var (
	// CLI flags for the run command
	configPath string // Path to the scenario YAML file
	outputPath string // Results file, overrides the scenario's output dir
	logLevel   string // Log verbosity level
	seed       int64  // Master seed, overrides the scenario's random_seed
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "steelpath",
	Short: "Discrete-time simulator for steel industry economics and emissions",
}

// runCmd loads a scenario, builds the world and runs the simulation
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Infof("Starting scenario %q (seed=%d, step=%dd)",
			cfg.SimulationParameters.SimulationName, cfg.RandomSeed, cfg.TimeSettings.TimeStepDays)

		result, runErr := executeScenario(cfg)
		if result != nil {
			if path := resultsPath(cfg); path != "" {
				if err := writeResult(result, path); err != nil {
					logrus.Errorf("writing results: %v", err)
				} else {
					logrus.Infof("Results written to %s", path)
				}
			}
			result.PrintSummary(os.Stdout)
		}
		if runErr != nil {
			logrus.Fatalf("Simulation failed: %v", runErr)
		}
		logrus.Info("Simulation complete.")
	},
}

// loadScenario parses CLI flags and the scenario file into a validated
// configuration.
func loadScenario(cmd *cobra.Command) (*sim.ScenarioConfig, error) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", logLevel)
	}
	logrus.SetLevel(level)

	cfg, err := sim.LoadScenarioConfig(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Level != "" && !cmd.Flags().Changed("log") {
		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q in scenario config", cfg.Logging.Level)
		}
		logrus.SetLevel(level)
	}
	if cmd.Flags().Changed("seed") {
		cfg.RandomSeed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// executeScenario runs one scenario end to end: world population (from CSV
// input data, or synthetic when no input directory is configured), engine
// construction and the tick loop. A partial Result is returned alongside
// the error when the run fails mid-way.
func executeScenario(cfg *sim.ScenarioConfig) (*sim.Result, error) {
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.RandomSeed))

	var (
		plants    []worldgen.PlantRecord
		suppliers []worldgen.SupplierRecord
		markets   []worldgen.MarketRecord
		err       error
	)
	if dir := cfg.DataPaths.InputDataDir; dir != "" {
		plants, suppliers, markets, err = worldgen.LoadAll(dir)
	} else {
		logrus.Info("No input data directory configured, generating synthetic world")
		plants, suppliers, markets, err = worldgen.Generate(worldgen.SyntheticParams{
			NumberOfPlants:    cfg.SimulationParameters.NumberOfPlants,
			NumberOfSuppliers: cfg.SimulationParameters.NumberOfSuppliers,
			Regions:           cfg.SimulationParameters.Regions,
		}, rng.ForSubsystem(sim.SubsystemWorldgen))
	}
	if err != nil {
		return nil, err
	}
	logrus.Infof("World: %d plants, %d suppliers, %d market listings",
		len(plants), len(suppliers), len(markets))

	world, err := worldgen.BuildWorld(cfg, plants, suppliers, markets, rng)
	if err != nil {
		return nil, err
	}
	clock, err := cfg.Clock()
	if err != nil {
		return nil, err
	}
	engine := sim.NewEngine(cfg.SimulationParameters.SimulationName, clock, world, cfg.Policy())
	return engine.Run()
}

// resultsPath resolves where the results file goes: the --out flag wins,
// otherwise the scenario's output directory, otherwise nowhere.
func resultsPath(cfg *sim.ScenarioConfig) string {
	if outputPath != "" {
		return outputPath
	}
	if cfg.DataPaths.OutputDataDir != "" {
		return filepath.Join(cfg.DataPaths.OutputDataDir, "results.json")
	}
	return ""
}

func writeResult(result *sim.Result, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return result.WriteJSON(f)
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the scenario YAML file")
	runCmd.Flags().StringVar(&outputPath, "out", "", "Results file path (overrides the scenario's output_data_dir)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Master seed (overrides the scenario's random_seed)")
	_ = runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
