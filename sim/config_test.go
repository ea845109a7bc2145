package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForecastConfig() *SimulationConfig {
	cfg := DefaultScenario()
	return cfg
}

func TestValidate_AcceptsDefaultScenario(t *testing.T) {
	assert.NoError(t, DefaultScenario().Validate())
	assert.NoError(t, DefaultScenario().ValidateForecastSharing())
}

func TestValidate_RejectsBadBaseConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
	}{
		{"zero periods", func(c *SimulationConfig) { c.Periods = 0 }},
		{"negative periods", func(c *SimulationConfig) { c.Periods = -5 }},
		{"negative oem lead time", func(c *SimulationConfig) { c.OEMLeadTime = -1 }},
		{"negative tier1 lead time", func(c *SimulationConfig) { c.Tier1LeadTime = -2 }},
		{"negative demand mean", func(c *SimulationConfig) { c.DemandMean = -1 }},
		{"negative demand std", func(c *SimulationConfig) { c.DemandStd = -0.5 }},
		{"negative demand window", func(c *SimulationConfig) { c.DemandWindow = -3 }},
		{"unknown distribution", func(c *SimulationConfig) { c.DemandDistribution = "uniform" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultScenario()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateForecastSharing_RejectsBadForecastConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimulationConfig)
	}{
		{"missing sub-config", func(c *SimulationConfig) { c.ForecastSharing = nil }},
		{"zero horizon", func(c *SimulationConfig) { c.ForecastSharing.Horizon = 0 }},
		{"zero update frequency", func(c *SimulationConfig) { c.ForecastSharing.UpdateFrequency = 0 }},
		{"negative update frequency", func(c *SimulationConfig) { c.ForecastSharing.UpdateFrequency = -1 }},
		{"weight below range", func(c *SimulationConfig) { c.ForecastSharing.Tier1Weight = -0.1 }},
		{"weight above range", func(c *SimulationConfig) { c.ForecastSharing.Tier1Weight = 1.1 }},
		{"negative error std", func(c *SimulationConfig) { c.ForecastSharing.ErrorStd = -1 }},
		{"unknown accuracy model", func(c *SimulationConfig) { c.ForecastSharing.AccuracyModel = "oracle" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validForecastConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.ValidateForecastSharing())
		})
	}
}

func TestValidate_DefaultsDistributionAndWindow(t *testing.T) {
	cfg := DefaultScenario()
	cfg.DemandDistribution = ""
	cfg.DemandWindow = 0
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DemandGaussian, cfg.demandDistribution())
	assert.Equal(t, 1, cfg.demandWindow())
}

func TestLoadConfig_ParsesScenarioFile(t *testing.T) {
	yaml := `
periods: 60
seed: 11
demand_distribution: gaussian
demand_mean: 90
demand_std: 12
oem_lead_time: 2
tier1_lead_time: 3
oem_initial_inventory: 450
tier1_initial_inventory: 450
demand_window: 4
safety_stock_periods: 1.5
otif_target_periods: 4
forecast_sharing:
  horizon: 7
  update_frequency: 2
  accuracy_model: noise
  error_std: 8.0
  tier1_weight: 0.4
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.ValidateForecastSharing())

	assert.Equal(t, 60, cfg.Periods)
	assert.Equal(t, int64(11), cfg.Seed)
	assert.Equal(t, 90.0, cfg.DemandMean)
	assert.Equal(t, 4, cfg.DemandWindow)
	require.NotNil(t, cfg.ForecastSharing)
	assert.Equal(t, 7, cfg.ForecastSharing.Horizon)
	assert.Equal(t, AccuracyNoise, cfg.ForecastSharing.AccuracyModel)
	assert.Equal(t, 0.4, cfg.ForecastSharing.Tier1Weight)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWithoutForecastSharing_StripsSubConfigOnly(t *testing.T) {
	cfg := DefaultScenario()
	stripped := cfg.withoutForecastSharing()
	assert.Nil(t, stripped.ForecastSharing)
	assert.Equal(t, cfg.Periods, stripped.Periods)
	assert.Equal(t, cfg.Seed, stripped.Seed)
	assert.NotNil(t, cfg.ForecastSharing, "original config must be untouched")
}
