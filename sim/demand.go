package sim

import (
	"fmt"
	"math"
	"math/rand"
)

// DemandSampler generates one customer demand realization per period.
type DemandSampler interface {
	// Sample returns a non-negative demand quantity.
	Sample(rng *rand.Rand) float64
}

// GaussianDemand produces normally distributed demand clipped to non-negative.
type GaussianDemand struct {
	Mean   float64
	StdDev float64
}

func (g *GaussianDemand) Sample(rng *rand.Rand) float64 {
	val := rng.NormFloat64()*g.StdDev + g.Mean
	return math.Max(0, val)
}

// PoissonDemand produces Poisson-distributed integer demand with the given
// mean, using Knuth's multiplication method.
type PoissonDemand struct {
	Mean float64
}

func (p *PoissonDemand) Sample(rng *rand.Rand) float64 {
	if p.Mean <= 0 {
		return 0
	}
	limit := math.Exp(-p.Mean)
	k := 0
	prod := 1.0
	for prod > limit {
		k++
		prod *= rng.Float64()
	}
	return float64(k - 1)
}

// NewDemandSampler creates a demand sampler by distribution name.
// Valid names: "gaussian" (the default for ""), "poisson".
// Unknown names panic; SimulationConfig.Validate rejects them first.
func NewDemandSampler(name string, mean, stdDev float64) DemandSampler {
	switch name {
	case "", DemandGaussian:
		return &GaussianDemand{Mean: mean, StdDev: stdDev}
	case DemandPoisson:
		return &PoissonDemand{Mean: mean}
	default:
		panic(fmt.Sprintf("unknown demand distribution %q; valid distributions: [%s, %s]",
			name, DemandGaussian, DemandPoisson))
	}
}
