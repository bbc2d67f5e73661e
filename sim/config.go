package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// TimeSettings configures the simulation clock. EndDatetime and
// MaxSimulationSteps are both optional, but at least one must be set.
type TimeSettings struct {
	StartDatetime      string `yaml:"start_datetime"`       // ISO date or datetime
	EndDatetime        string `yaml:"end_datetime"`         // optional
	TimeStepDays       int    `yaml:"time_step_days"`       // duration of one step
	MaxSimulationSteps int    `yaml:"max_simulation_steps"` // optional
}

// SimulationParameters configures world population and engine policy.
type SimulationParameters struct {
	SimulationName    string   `yaml:"simulation_name"`
	NumberOfPlants    int      `yaml:"number_of_plants"`
	NumberOfSuppliers int      `yaml:"number_of_suppliers"`
	Regions           []string `yaml:"regions"`
	ErrorPolicy       string   `yaml:"error_policy"` // "fail" (default) or "skip-and-log"
	// CarbonPriceUSDPerTonne prices emissions in plant cost accounting
	// and in the build-time investment appraisal. 0 means the built-in
	// default.
	CarbonPriceUSDPerTonne float64 `yaml:"carbon_price_usd_per_tonne"`
}

// LoggingConfig configures log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DataPaths points at input data and the output directory. An empty
// InputDataDir means the world is generated synthetically.
type DataPaths struct {
	InputDataDir  string `yaml:"input_data_dir"`
	OutputDataDir string `yaml:"output_data_dir"`
}

// ScenarioConfig is the plain structured record the engine consumes from
// the configuration loader. The engine validates only its own needs (step
// size, end condition, error policy); domain content is validated by the
// data loader before it reaches the engine.
type ScenarioConfig struct {
	TimeSettings         TimeSettings         `yaml:"time_settings"`
	SimulationParameters SimulationParameters `yaml:"simulation_parameters"`
	Logging              LoggingConfig        `yaml:"logging"`
	DataPaths            DataPaths            `yaml:"data_paths"`
	RandomSeed           int64                `yaml:"random_seed"`
}

// timeLayouts accepted for start/end datetimes, tried in order.
var timeLayouts = []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

func parseInstant(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q (use YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)", s)
}

// LoadScenarioConfig reads and parses a YAML scenario file.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	cfg := &ScenarioConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config: %w", err)
	}
	return cfg, nil
}

// Validate checks the settings the engine depends on. Returns a
// *ConfigurationError describing the first violation found.
func (c *ScenarioConfig) Validate() error {
	if c.TimeSettings.StartDatetime == "" {
		return &ConfigurationError{Field: "time_settings.start_datetime", Reason: "required"}
	}
	if _, err := parseInstant(c.TimeSettings.StartDatetime); err != nil {
		return &ConfigurationError{Field: "time_settings.start_datetime", Reason: err.Error()}
	}
	if c.TimeSettings.TimeStepDays <= 0 {
		return &ConfigurationError{Field: "time_settings.time_step_days", Reason: "step size must be positive"}
	}
	if c.TimeSettings.EndDatetime == "" && c.TimeSettings.MaxSimulationSteps <= 0 {
		return &ConfigurationError{Field: "time_settings", Reason: "either end_datetime or max_simulation_steps is required"}
	}
	if c.TimeSettings.EndDatetime != "" {
		end, err := parseInstant(c.TimeSettings.EndDatetime)
		if err != nil {
			return &ConfigurationError{Field: "time_settings.end_datetime", Reason: err.Error()}
		}
		start, _ := parseInstant(c.TimeSettings.StartDatetime)
		if !end.After(start) {
			return &ConfigurationError{Field: "time_settings.end_datetime", Reason: "end time must be after start time"}
		}
	}
	switch ErrorPolicy(c.SimulationParameters.ErrorPolicy) {
	case "", ErrorPolicyFail, ErrorPolicySkip:
	default:
		return &ConfigurationError{Field: "simulation_parameters.error_policy",
			Reason: fmt.Sprintf("unknown policy %q", c.SimulationParameters.ErrorPolicy)}
	}
	return nil
}

// Clock builds the SimulationClock described by the time settings.
// Validate must have passed.
func (c *ScenarioConfig) Clock() (*SimulationClock, error) {
	start, err := parseInstant(c.TimeSettings.StartDatetime)
	if err != nil {
		return nil, &ConfigurationError{Field: "time_settings.start_datetime", Reason: err.Error()}
	}
	var end time.Time
	if c.TimeSettings.EndDatetime != "" {
		end, err = parseInstant(c.TimeSettings.EndDatetime)
		if err != nil {
			return nil, &ConfigurationError{Field: "time_settings.end_datetime", Reason: err.Error()}
		}
	}
	step := time.Duration(c.TimeSettings.TimeStepDays) * 24 * time.Hour
	return NewSimulationClock(start, step, end, c.TimeSettings.MaxSimulationSteps)
}

// Policy returns the configured error policy, defaulting to fail-fast.
func (c *ScenarioConfig) Policy() ErrorPolicy {
	if c.SimulationParameters.ErrorPolicy == "" {
		return ErrorPolicyFail
	}
	return ErrorPolicy(c.SimulationParameters.ErrorPolicy)
}
