package sim

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/supplysim/supplysim/sim/trace"
)

// LeadTimeStats summarizes realized order-to-delivery intervals, one sample
// per delivered shipment chunk. Orders never delivered by horizon end
// contribute no sample.
type LeadTimeStats struct {
	Mean   float64
	StdDev float64 // population standard deviation
	P90    float64
	P95    float64
	Max    float64
	Count  int
}

// SeriesSet holds the raw per-period time series of one echelon for trend
// inspection. Values are unsmoothed.
type SeriesSet struct {
	Demand    []float64
	Orders    []float64
	Inventory []float64
	WIP       []float64
	Backlog   []float64
}

// Results is the immutable scenario-level aggregate derived from a completed
// trace. Never mutated after construction.
type Results struct {
	Scenario string

	// FillRate is the fraction of customer demand fulfilled in the period it
	// was incurred; backlog-delayed fulfillment does not count.
	FillRate float64

	LeadTime LeadTimeStats

	// BullwhipRatio is the population std of Tier-1 order quantities divided
	// by that of OEM order quantities over the full horizon. NaN when the
	// OEM order variance is zero; use BullwhipDefined to check.
	BullwhipRatio float64

	// OTIF is the fraction of delivered shipments whose realized lead time
	// was within the configured on-time target.
	OTIF float64

	MeanWIP     float64 // mean chain-wide in-transit quantity per period
	MeanBacklog float64 // mean chain-wide backlog per period

	OEM   SeriesSet
	Tier1 SeriesSet
}

// BullwhipDefined reports whether the bullwhip ratio has a defined value.
func (r *Results) BullwhipDefined() bool {
	return !math.IsNaN(r.BullwhipRatio)
}

// ComputeResults reduces a completed trace to scenario-level aggregates.
// It is a pure function: the trace is read-only and the returned Results
// owns all of its slices.
func ComputeResults(tr *trace.Trace, scenario string, otifTarget float64) *Results {
	r := &Results{Scenario: scenario}

	totalDemand := 0.0
	totalFulfilled := 0.0
	totalWIP := 0.0
	totalBacklog := 0.0
	for _, p := range tr.Periods {
		totalDemand += p.OEM.Demand
		totalFulfilled += p.OEM.Fulfilled
		totalWIP += p.OEM.WIP + p.Tier1.WIP
		totalBacklog += p.OEM.EndingBacklog + p.Tier1.EndingBacklog

		r.OEM.Demand = append(r.OEM.Demand, p.OEM.Demand)
		r.OEM.Orders = append(r.OEM.Orders, p.OEM.OrderPlaced)
		r.OEM.Inventory = append(r.OEM.Inventory, p.OEM.EndingInventory)
		r.OEM.WIP = append(r.OEM.WIP, p.OEM.WIP)
		r.OEM.Backlog = append(r.OEM.Backlog, p.OEM.EndingBacklog)

		r.Tier1.Demand = append(r.Tier1.Demand, p.Tier1.Demand)
		r.Tier1.Orders = append(r.Tier1.Orders, p.Tier1.OrderPlaced)
		r.Tier1.Inventory = append(r.Tier1.Inventory, p.Tier1.EndingInventory)
		r.Tier1.WIP = append(r.Tier1.WIP, p.Tier1.WIP)
		r.Tier1.Backlog = append(r.Tier1.Backlog, p.Tier1.EndingBacklog)
	}

	// Zero realized demand incurs no backlog, so the service level is 1.
	r.FillRate = 1.0
	if totalDemand > 0 {
		r.FillRate = totalFulfilled / totalDemand
	}
	if n := len(tr.Periods); n > 0 {
		r.MeanWIP = totalWIP / float64(n)
		r.MeanBacklog = totalBacklog / float64(n)
	}

	r.LeadTime, r.OTIF = leadTimeStats(tr.Shipments, otifTarget)
	r.BullwhipRatio = bullwhipRatio(r.Tier1.Orders, r.OEM.Orders)

	return r
}

// leadTimeStats computes lead-time aggregates and the OTIF share over all
// delivered shipment chunks.
func leadTimeStats(shipments []trace.ShipmentRecord, otifTarget float64) (LeadTimeStats, float64) {
	if len(shipments) == 0 {
		return LeadTimeStats{}, 0
	}

	leadTimes := make([]float64, 0, len(shipments))
	onTime := 0
	for _, sh := range shipments {
		lt := float64(sh.ArrivalPeriod - sh.OrderPeriod)
		leadTimes = append(leadTimes, lt)
		if lt <= otifTarget {
			onTime++
		}
	}
	sort.Float64s(leadTimes)

	mean := stat.Mean(leadTimes, nil)
	stats := LeadTimeStats{
		Mean:   mean,
		StdDev: math.Sqrt(stat.MomentAbout(2, leadTimes, mean, nil)),
		P90:    stat.Quantile(0.90, stat.Empirical, leadTimes, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, leadTimes, nil),
		Max:    leadTimes[len(leadTimes)-1],
		Count:  len(leadTimes),
	}
	return stats, float64(onTime) / float64(len(leadTimes))
}

// bullwhipRatio is the demand-amplification measure between echelons.
// Constant OEM orders make it undefined, reported as NaN rather than a
// divide-by-zero crash.
func bullwhipRatio(tier1Orders, oemOrders []float64) float64 {
	denom := popStdDev(oemOrders)
	if denom == 0 {
		return math.NaN()
	}
	return popStdDev(tier1Orders) / denom
}

// popStdDev is the population standard deviation.
func popStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := stat.Mean(xs, nil)
	return math.Sqrt(stat.MomentAbout(2, xs, mean, nil))
}

// Print displays the scenario aggregates at the end of a run.
func (r *Results) Print() {
	fmt.Printf("=== %s scenario ===\n", r.Scenario)
	fmt.Printf("Fill rate            : %.2f%%\n", r.FillRate*100)
	fmt.Printf("Mean lead time       : %.2f periods\n", r.LeadTime.Mean)
	fmt.Printf("Lead time std        : %.2f periods\n", r.LeadTime.StdDev)
	fmt.Printf("Lead time p90        : %.2f periods\n", r.LeadTime.P90)
	fmt.Printf("Lead time p95        : %.2f periods\n", r.LeadTime.P95)
	fmt.Printf("Worst lead time      : %.2f periods\n", r.LeadTime.Max)
	fmt.Printf("OTIF                 : %.2f%%\n", r.OTIF*100)
	if r.BullwhipDefined() {
		fmt.Printf("Bullwhip ratio       : %.3f\n", r.BullwhipRatio)
	} else {
		fmt.Printf("Bullwhip ratio       : undefined (constant OEM orders)\n")
	}
	fmt.Printf("Mean WIP             : %.2f units\n", r.MeanWIP)
	fmt.Printf("Mean backlog         : %.2f units\n", r.MeanBacklog)
}
