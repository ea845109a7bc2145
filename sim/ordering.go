package sim

import (
	"fmt"
	"math"
)

// OrderingPolicy computes a node's replenishment order each period. The
// forecast argument is nil for every policy except the Tier-1 policy in the
// forecast-sharing scenario.
//
// The scenario set is closed and small; policies are selected by name through
// NewOrderingPolicy, not loaded dynamically.
type OrderingPolicy interface {
	ComputeOrder(state *EchelonState, forecast []float64) float64
	// Observe feeds the policy the local demand signal realized this period
	// (customer demand at the OEM, the OEM's order at Tier-1).
	Observe(signal float64)
}

// demandEstimator maintains a moving average of the most recent local demand
// observations. Before the first observation it falls back to the configured
// demand mean.
type demandEstimator struct {
	window   int
	fallback float64
	history  []float64
}

func newDemandEstimator(window int, fallback float64) *demandEstimator {
	return &demandEstimator{window: window, fallback: fallback}
}

func (d *demandEstimator) observe(signal float64) {
	d.history = append(d.history, signal)
	if len(d.history) > d.window {
		d.history = d.history[len(d.history)-d.window:]
	}
}

func (d *demandEstimator) estimate() float64 {
	if len(d.history) == 0 {
		return d.fallback
	}
	sum := 0.0
	for _, v := range d.history {
		sum += v
	}
	return sum / float64(len(d.history))
}

// BaseStockPolicy is the baseline reactive order-up-to policy. Each period it
// raises the inventory position to an order-up-to target covering lead time
// plus review period plus safety stock, all priced at the node's own local
// demand estimate. No visibility into other echelons exists beyond the order
// quantities that reach this node.
type BaseStockPolicy struct {
	coverage float64 // lead time + 1 review period + safety stock, in periods
	est      *demandEstimator
}

// NewBaseStockPolicy creates the baseline policy for a node.
func NewBaseStockPolicy(leadTime, window int, safetyPeriods, demandMean float64) *BaseStockPolicy {
	return &BaseStockPolicy{
		coverage: float64(leadTime+1) + safetyPeriods,
		est:      newDemandEstimator(window, demandMean),
	}
}

func (p *BaseStockPolicy) target() float64 {
	return p.est.estimate() * p.coverage
}

func (p *BaseStockPolicy) ComputeOrder(state *EchelonState, _ []float64) float64 {
	return math.Max(0, p.target()-state.InventoryPosition())
}

func (p *BaseStockPolicy) Observe(signal float64) {
	p.est.observe(signal)
}

// ForecastBlendPolicy is the Tier-1 policy under forecast sharing: the
// order-up-to target blends the locally observed order signal with the
// OEM-shared forecast using the configured weight. Weight 0 degenerates to
// the baseline policy exactly.
type ForecastBlendPolicy struct {
	local  *BaseStockPolicy
	weight float64
}

// NewForecastBlendPolicy wraps a baseline policy with forecast blending.
func NewForecastBlendPolicy(local *BaseStockPolicy, weight float64) *ForecastBlendPolicy {
	return &ForecastBlendPolicy{local: local, weight: weight}
}

func (p *ForecastBlendPolicy) ComputeOrder(state *EchelonState, forecast []float64) float64 {
	localTarget := p.local.target()
	target := localTarget
	if len(forecast) > 0 {
		forecastTarget := forecastMean(forecast, p.local.coverage) * p.local.coverage
		target = p.weight*forecastTarget + (1-p.weight)*localTarget
	}
	return math.Max(0, target-state.InventoryPosition())
}

func (p *ForecastBlendPolicy) Observe(signal float64) {
	p.local.Observe(signal)
}

// forecastMean averages the forecast over the coverage window, using however
// many periods the forecast actually provides.
func forecastMean(forecast []float64, coverage float64) float64 {
	n := int(math.Ceil(coverage))
	if n > len(forecast) {
		n = len(forecast)
	}
	sum := 0.0
	for _, v := range forecast[:n] {
		sum += v
	}
	return sum / float64(n)
}

// NewOrderingPolicy creates the Tier-1 ordering policy for a scenario.
// Valid scenarios: "baseline", "forecast-sharing".
// Unknown scenarios panic; the entry points only pass the closed set.
func NewOrderingPolicy(scenario string, leadTime, window int, safetyPeriods, demandMean, weight float64) OrderingPolicy {
	local := NewBaseStockPolicy(leadTime, window, safetyPeriods, demandMean)
	switch scenario {
	case ScenarioBaseline:
		return local
	case ScenarioForecastSharing:
		return NewForecastBlendPolicy(local, weight)
	default:
		panic(fmt.Sprintf("unknown scenario %q; valid scenarios: [%s, %s]",
			scenario, ScenarioBaseline, ScenarioForecastSharing))
	}
}
