package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario names for the closed set of ordering-policy variants.
const (
	ScenarioBaseline        = "baseline"
	ScenarioForecastSharing = "forecast-sharing"
)

// Forecast accuracy models.
const (
	AccuracyPerfect = "perfect"
	AccuracyNoise   = "noise"
)

// Demand distribution names accepted by NewDemandSampler.
const (
	DemandGaussian = "gaussian"
	DemandPoisson  = "poisson"
)

// SimulationConfig is the immutable input to a simulation run.
// Loaded from YAML via LoadConfig(path) or built directly.
type SimulationConfig struct {
	Periods int   `yaml:"periods"` // number of periods to simulate (must be > 0)
	Seed    int64 `yaml:"seed"`    // master seed for all RNG streams

	DemandDistribution string  `yaml:"demand_distribution"` // "gaussian" (default) or "poisson"
	DemandMean         float64 `yaml:"demand_mean"`         // expected customer demand per period
	DemandStd          float64 `yaml:"demand_std"`          // demand std dev (gaussian only)

	OEMLeadTime   int `yaml:"oem_lead_time"`   // Tier-1 → OEM transit, in periods (must be >= 0)
	Tier1LeadTime int `yaml:"tier1_lead_time"` // source → Tier-1 transit, in periods (must be >= 0)

	OEMInitialInventory   float64 `yaml:"oem_initial_inventory"`
	Tier1InitialInventory float64 `yaml:"tier1_initial_inventory"`
	OEMInitialBacklog     float64 `yaml:"oem_initial_backlog"`
	Tier1InitialBacklog   float64 `yaml:"tier1_initial_backlog"`

	// DemandWindow is the moving-average window each node uses to estimate
	// its local demand signal. 1 (the default) means the single most recent
	// observation.
	DemandWindow int `yaml:"demand_window"`

	// SafetyStockPeriods is extra demand coverage added to the order-up-to
	// target, expressed in periods of estimated demand.
	SafetyStockPeriods float64 `yaml:"safety_stock_periods"`

	// OTIFTargetPeriods is the lead-time threshold for counting a shipment
	// as on-time-in-full.
	OTIFTargetPeriods float64 `yaml:"otif_target_periods"`

	// ForecastSharing must be present if and only if the forecast-sharing
	// scenario runs.
	ForecastSharing *ForecastSharingConfig `yaml:"forecast_sharing,omitempty"`
}

// ForecastSharingConfig parameterizes the OEM → Tier-1 shared forecast.
type ForecastSharingConfig struct {
	Horizon         int     `yaml:"horizon"`          // periods ahead each forecast covers (must be > 0)
	UpdateFrequency int     `yaml:"update_frequency"` // periods between forecast refreshes (must be > 0)
	AccuracyModel   string  `yaml:"accuracy_model"`   // "perfect" or "noise"
	ErrorStd        float64 `yaml:"error_std"`        // forecast error std dev ("noise" only)
	Tier1Weight     float64 `yaml:"tier1_weight"`     // weight on the shared forecast, in [0, 1]
}

// Validate checks the baseline configuration surface. It is called before
// any simulation state is created; a run never starts on an invalid config.
func (c *SimulationConfig) Validate() error {
	if c.Periods <= 0 {
		return fmt.Errorf("periods must be > 0, got %d", c.Periods)
	}
	if c.OEMLeadTime < 0 {
		return fmt.Errorf("oem_lead_time must be >= 0, got %d", c.OEMLeadTime)
	}
	if c.Tier1LeadTime < 0 {
		return fmt.Errorf("tier1_lead_time must be >= 0, got %d", c.Tier1LeadTime)
	}
	if c.DemandMean < 0 {
		return fmt.Errorf("demand_mean must be >= 0, got %v", c.DemandMean)
	}
	if c.DemandStd < 0 {
		return fmt.Errorf("demand_std must be >= 0, got %v", c.DemandStd)
	}
	if c.DemandWindow < 0 {
		return fmt.Errorf("demand_window must be >= 0, got %d", c.DemandWindow)
	}
	switch c.demandDistribution() {
	case DemandGaussian, DemandPoisson:
	default:
		return fmt.Errorf("unknown demand_distribution %q; valid distributions: [%s, %s]",
			c.DemandDistribution, DemandGaussian, DemandPoisson)
	}
	return nil
}

// ValidateForecastSharing checks the additional surface required by the
// forecast-sharing scenario.
func (c *SimulationConfig) ValidateForecastSharing() error {
	if err := c.Validate(); err != nil {
		return err
	}
	fc := c.ForecastSharing
	if fc == nil {
		return fmt.Errorf("forecast_sharing config is required for the %s scenario", ScenarioForecastSharing)
	}
	if fc.Horizon <= 0 {
		return fmt.Errorf("forecast horizon must be > 0, got %d", fc.Horizon)
	}
	if fc.UpdateFrequency <= 0 {
		return fmt.Errorf("forecast update_frequency must be > 0, got %d", fc.UpdateFrequency)
	}
	if fc.Tier1Weight < 0 || fc.Tier1Weight > 1 {
		return fmt.Errorf("tier1_weight must be in [0, 1], got %v", fc.Tier1Weight)
	}
	if fc.ErrorStd < 0 {
		return fmt.Errorf("forecast error_std must be >= 0, got %v", fc.ErrorStd)
	}
	switch fc.AccuracyModel {
	case AccuracyPerfect, AccuracyNoise:
	default:
		return fmt.Errorf("unknown accuracy_model %q; valid models: [%s, %s]",
			fc.AccuracyModel, AccuracyPerfect, AccuracyNoise)
	}
	return nil
}

// demandDistribution returns the configured distribution name, defaulting
// empty to gaussian.
func (c *SimulationConfig) demandDistribution() string {
	if c.DemandDistribution == "" {
		return DemandGaussian
	}
	return c.DemandDistribution
}

// demandWindow returns the configured estimation window, defaulting 0 to 1.
func (c *SimulationConfig) demandWindow() int {
	if c.DemandWindow == 0 {
		return 1
	}
	return c.DemandWindow
}

// withoutForecastSharing returns a copy of the config with the forecast
// sub-config stripped, for the baseline leg of a comparison.
func (c *SimulationConfig) withoutForecastSharing() *SimulationConfig {
	out := *c
	out.ForecastSharing = nil
	return &out
}

// LoadConfig reads a scenario configuration from a YAML file.
func LoadConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario config: %w", err)
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario config %s: %w", path, err)
	}
	return &cfg, nil
}
