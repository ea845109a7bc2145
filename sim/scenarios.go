package sim

// Built-in scenario presets for common chain configurations.
// Each returns a valid SimulationConfig ready for the entry points.

// DefaultScenario is the reference automotive chain: 120 periods, gaussian
// demand 100±15, OEM lead time 2, Tier-1 lead time 3, with a noisy weekly
// forecast blended at weight 0.4.
func DefaultScenario() *SimulationConfig {
	return &SimulationConfig{
		Periods:               120,
		Seed:                  7,
		DemandDistribution:    DemandGaussian,
		DemandMean:            100,
		DemandStd:             15,
		OEMLeadTime:           2,
		Tier1LeadTime:         3,
		OEMInitialInventory:   500,
		Tier1InitialInventory: 500,
		DemandWindow:          1,
		SafetyStockPeriods:    1,
		OTIFTargetPeriods:     4,
		ForecastSharing: &ForecastSharingConfig{
			Horizon:         7,
			UpdateFrequency: 2,
			AccuracyModel:   AccuracyNoise,
			ErrorStd:        8.0,
			Tier1Weight:     0.4,
		},
	}
}

// HighVariabilityScenario stresses the chain with a demand std of 30% of the
// mean and a perfect shared forecast.
func HighVariabilityScenario() *SimulationConfig {
	cfg := DefaultScenario()
	cfg.DemandStd = 30
	cfg.ForecastSharing.AccuracyModel = AccuracyPerfect
	cfg.ForecastSharing.ErrorStd = 0
	return cfg
}

// PoissonDemandScenario uses integer Poisson demand, the classic count model
// for unit-sized customer orders.
func PoissonDemandScenario() *SimulationConfig {
	cfg := DefaultScenario()
	cfg.DemandDistribution = DemandPoisson
	cfg.DemandStd = 0
	return cfg
}
