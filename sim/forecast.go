package sim

import (
	"math"
	"math/rand"
)

// ForecastModule produces the demand forecast the OEM shares with Tier-1.
// A fresh forecast is generated every UpdateFrequency periods; in between,
// the most recent forecast is reused unchanged, modeling information lag.
type ForecastModule struct {
	cfg ForecastSharingConfig
	// expectation is the OEM's best estimate of customer demand. The demand
	// process is stationary, so this is the configured demand mean.
	expectation float64
	rng         *rand.Rand // forecast-error stream, isolated from demand
	current     []float64
}

// NewForecastModule creates a forecast generator for one run.
func NewForecastModule(cfg ForecastSharingConfig, demandMean float64, rng *rand.Rand) *ForecastModule {
	return &ForecastModule{cfg: cfg, expectation: demandMean, rng: rng}
}

// MaybeUpdate returns the forecast in effect at the given period, covering
// the next Horizon periods. The forecast is regenerated only when a refresh
// is due; callers between refreshes see the stale-but-valid previous one.
func (f *ForecastModule) MaybeUpdate(period int) []float64 {
	if f.current == nil || period%f.cfg.UpdateFrequency == 0 {
		f.current = f.generate()
	}
	return f.current
}

// generate produces a horizon-length forecast. Under "perfect" accuracy each
// value equals the OEM's expectation; under "noise" each value is perturbed
// by an independent draw and clipped to non-negative. An error std of zero
// under "noise" therefore produces exactly the perfect forecast.
func (f *ForecastModule) generate() []float64 {
	values := make([]float64, f.cfg.Horizon)
	for i := range values {
		v := f.expectation
		if f.cfg.AccuracyModel == AccuracyNoise {
			v += f.rng.NormFloat64() * f.cfg.ErrorStd
		}
		values[i] = math.Max(0, v)
	}
	return values
}
