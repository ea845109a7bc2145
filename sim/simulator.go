package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/supplysim/supplysim/sim/trace"
)

// Simulator advances the three-echelon chain one period at a time and records
// the run trace. It assumes a validated configuration; the exported entry
// points in compare.go validate before constructing one.
//
// A Simulator is single-use and owns all of its state, including its RNG
// streams, so independent runs may execute concurrently without locking.
type Simulator struct {
	cfg      *SimulationConfig
	scenario string

	rng      *ScenarioRNG
	demand   DemandSampler
	forecast *ForecastModule // nil in the baseline scenario

	oem   *EchelonState
	tier1 *EchelonState

	oemPolicy   OrderingPolicy
	tier1Policy OrderingPolicy

	// ledger holds the OEM's open orders at Tier-1 so partially served
	// orders keep their placement period.
	ledger orderLedger

	trace  *trace.Trace
	period int
}

// NewSimulator initializes a run from config: both RNG streams are seeded and
// all echelon state is built from the configured initial values.
func NewSimulator(cfg *SimulationConfig, scenario string) *Simulator {
	rng := NewScenarioRNG(cfg.Seed)

	s := &Simulator{
		cfg:      cfg,
		scenario: scenario,
		rng:      rng,
		demand:   NewDemandSampler(cfg.demandDistribution(), cfg.DemandMean, cfg.DemandStd),
		oem:      NewEchelonState(trace.EchelonOEM, cfg.OEMLeadTime, cfg.OEMInitialInventory, cfg.OEMInitialBacklog),
		tier1:    NewEchelonState(trace.EchelonTier1, cfg.Tier1LeadTime, cfg.Tier1InitialInventory, cfg.Tier1InitialBacklog),
		trace:    trace.NewTrace(cfg.Periods),
	}

	// The OEM orders identically in both scenarios; only Tier-1 changes.
	s.oemPolicy = NewBaseStockPolicy(cfg.OEMLeadTime, cfg.demandWindow(), cfg.SafetyStockPeriods, cfg.DemandMean)

	weight := 0.0
	if scenario == ScenarioForecastSharing {
		fc := cfg.ForecastSharing
		weight = fc.Tier1Weight
		s.forecast = NewForecastModule(*fc, cfg.DemandMean, rng.Stream(StreamForecast))
	}
	s.tier1Policy = NewOrderingPolicy(scenario, cfg.Tier1LeadTime, cfg.demandWindow(), cfg.SafetyStockPeriods, cfg.DemandMean, weight)

	return s
}

// Run advances the chain for exactly the configured number of periods and
// returns the completed trace. The driver never retries or skips periods;
// internal inconsistencies panic via the echelon invariant checks.
func (s *Simulator) Run() *trace.Trace {
	for s.period < s.cfg.Periods {
		s.advance()
	}
	return s.trace
}

// advance executes one period in fixed order: forecast refresh, order
// computation, pipeline arrivals, demand service downstream-to-upstream
// bookkeeping, order dispatch, policy observation, trace append.
func (s *Simulator) advance() {
	t := s.period

	// (1) Refresh the shared forecast if due.
	var forecast []float64
	if s.forecast != nil {
		forecast = s.forecast.MaybeUpdate(t)
	}

	// (2) Each echelon computes its order from period-start state.
	oemOrder := s.oemPolicy.ComputeOrder(s.oem, nil)
	tier1Order := s.tier1Policy.ComputeOrder(s.tier1, forecast)

	// (3a) Arrivals: the shipments dispatched lead-time periods ago.
	oemReceived := s.deliver(s.oem, s.oem.Inbound.Advance(), t)
	tier1Received := s.deliver(s.tier1, s.tier1.Inbound.Advance(), t)

	// (3b) The OEM's order is Tier-1's demand this period. Tier-1 ships
	// open orders oldest first; shipped chunks enter the OEM's inbound
	// pipeline carrying their original placement period.
	s.oem.PlaceOrder(oemOrder)
	s.ledger.Enqueue(t, oemOrder)
	chunks, shipped := s.ledger.Serve(s.tier1.OnHand)
	s.tier1.OnHand -= shipped

	tier1Fulfilled := 0.0
	for _, chunk := range chunks {
		if chunk.OrderPeriod == t {
			tier1Fulfilled += chunk.Quantity
		}
		oemReceived += s.deliver(s.oem, s.oem.Inbound.Push(chunk), t)
	}
	s.tier1.Backlog = s.ledger.Outstanding()

	// (3c) Customer demand is realized and served at the OEM.
	demand := s.demand.Sample(s.rng.Stream(StreamDemand))
	oemFulfilled := s.oem.ShipDemand(demand)

	// (3d) Tier-1 orders from its upstream source, which always ships the
	// full quantity after the transit lead time.
	s.tier1.PlaceOrder(tier1Order)
	if tier1Order > 0 {
		tier1Received += s.deliver(s.tier1, s.tier1.Inbound.Push(Shipment{Quantity: tier1Order, OrderPeriod: t}), t)
	}

	// Policies see only their local signal.
	s.oemPolicy.Observe(demand)
	s.tier1Policy.Observe(oemOrder)

	s.oem.checkInvariants(t)
	s.tier1.checkInvariants(t)

	logrus.Debugf("period %d [%s]: demand=%.2f oem_order=%.2f t1_order=%.2f oem_backlog=%.2f t1_backlog=%.2f",
		t, s.scenario, demand, oemOrder, tier1Order, s.oem.Backlog, s.tier1.Backlog)

	// (4) Append the period snapshot.
	s.trace.RecordPeriod(trace.PeriodRecord{
		Period: t,
		OEM: trace.EchelonRecord{
			Demand:          demand,
			Fulfilled:       oemFulfilled,
			OrderPlaced:     oemOrder,
			OrderReceived:   oemReceived,
			EndingInventory: s.oem.OnHand,
			EndingBacklog:   s.oem.Backlog,
			WIP:             s.oem.Inbound.Quantity(),
		},
		Tier1: trace.EchelonRecord{
			Demand:          oemOrder,
			Fulfilled:       tier1Fulfilled,
			OrderPlaced:     tier1Order,
			OrderReceived:   tier1Received,
			EndingInventory: s.tier1.OnHand,
			EndingBacklog:   s.tier1.Backlog,
			WIP:             s.tier1.Inbound.Quantity(),
		},
	})
	s.period++
}

// deliver receives arrived shipments into an echelon and records one
// shipment record per chunk. Returns the total quantity received.
func (s *Simulator) deliver(node *EchelonState, arrived []Shipment, period int) float64 {
	total := 0.0
	for _, sh := range arrived {
		node.Receive(sh.Quantity)
		total += sh.Quantity
		s.trace.RecordShipment(trace.ShipmentRecord{
			Echelon:       node.Name,
			OrderPeriod:   sh.OrderPeriod,
			ArrivalPeriod: period,
			Quantity:      sh.Quantity,
		})
	}
	return total
}
