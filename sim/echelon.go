package sim

import (
	"fmt"
	"math"
)

// Shipment is a quantity in transit toward an echelon, tagged with the
// placement period of the order it satisfies.
type Shipment struct {
	Quantity    float64
	OrderPeriod int
}

// Pipeline is the fixed-length inbound WIP queue of an echelon, indexed by
// remaining periods until arrival. Its length always equals the echelon's
// lead time.
type Pipeline struct {
	leadTime int
	slots    [][]Shipment
}

// NewPipeline creates an empty pipeline for the given lead time.
func NewPipeline(leadTime int) *Pipeline {
	return &Pipeline{
		leadTime: leadTime,
		slots:    make([][]Shipment, leadTime),
	}
}

// Push enqueues a shipment that arrives after the full lead time. With a
// zero lead time there is no transit at all: the shipment is returned as
// already delivered and never enters the queue.
func (p *Pipeline) Push(sh Shipment) []Shipment {
	if p.leadTime == 0 {
		return []Shipment{sh}
	}
	last := p.leadTime - 1
	p.slots[last] = append(p.slots[last], sh)
	return nil
}

// Advance moves the pipeline forward one period and returns the shipments
// that arrive now.
func (p *Pipeline) Advance() []Shipment {
	if p.leadTime == 0 {
		return nil
	}
	arrived := p.slots[0]
	copy(p.slots, p.slots[1:])
	p.slots[p.leadTime-1] = nil
	return arrived
}

// Quantity returns the total in-transit quantity.
func (p *Pipeline) Quantity() float64 {
	total := 0.0
	for _, slot := range p.slots {
		for _, sh := range slot {
			total += sh.Quantity
		}
	}
	return total
}

// Len returns the pipeline length; it must always equal the lead time.
func (p *Pipeline) Len() int {
	return len(p.slots)
}

// EchelonState is the mutable per-node state advanced by the driver once per
// period. Historical values live in the trace, never here.
type EchelonState struct {
	Name     string
	LeadTime int

	OnHand  float64 // on-hand inventory
	Backlog float64 // unmet downstream demand carried forward
	// OnOrder is quantity ordered upstream but not yet received, including
	// any portion the supplier has backlogged. Without it the order-up-to
	// policy re-orders backlogged quantity every period.
	OnOrder float64

	Inbound   *Pipeline
	LastOrder float64 // order quantity issued this period
}

// NewEchelonState initializes a node from config at period 0.
func NewEchelonState(name string, leadTime int, initialInventory, initialBacklog float64) *EchelonState {
	return &EchelonState{
		Name:     name,
		LeadTime: leadTime,
		OnHand:   initialInventory,
		Backlog:  initialBacklog,
		Inbound:  NewPipeline(leadTime),
	}
}

// PlaceOrder records an order issued upstream this period.
func (e *EchelonState) PlaceOrder(qty float64) {
	e.LastOrder = qty
	e.OnOrder += qty
}

// Receive adds an arrived quantity to on-hand inventory.
func (e *EchelonState) Receive(qty float64) {
	e.OnHand += qty
	e.OnOrder -= qty
}

// ShipDemand serves downstream demand from on-hand inventory, oldest backlog
// first, then the current period's demand. Unmet demand increments the
// backlog; backlog is never lost, only satisfied later. Returns the portion
// of this period's demand fulfilled in the same period.
func (e *EchelonState) ShipDemand(demand float64) float64 {
	owed := e.Backlog + demand
	shipped := math.Min(e.OnHand, owed)
	servedBacklog := math.Min(shipped, e.Backlog)
	fulfilledNow := shipped - servedBacklog

	e.OnHand -= shipped
	e.Backlog = owed - shipped
	return fulfilledNow
}

// InventoryPosition is on-hand plus on-order minus backlog, the quantity the
// order-up-to policy measures its target against.
func (e *EchelonState) InventoryPosition() float64 {
	return e.OnHand + e.OnOrder - e.Backlog
}

// checkInvariants panics on impossible state. Any violation indicates a
// bookkeeping defect, not a recoverable condition.
func (e *EchelonState) checkInvariants(period int) {
	if e.OnHand < 0 {
		panic(fmt.Sprintf("echelon %s: negative inventory %v at period %d", e.Name, e.OnHand, period))
	}
	if e.Backlog < 0 {
		panic(fmt.Sprintf("echelon %s: negative backlog %v at period %d", e.Name, e.Backlog, period))
	}
	if e.Inbound.Len() != e.LeadTime {
		panic(fmt.Sprintf("echelon %s: pipeline length %d does not match lead time %d at period %d",
			e.Name, e.Inbound.Len(), e.LeadTime, period))
	}
}

// openOrder is a downstream order not yet fully shipped.
type openOrder struct {
	Period    int
	Remaining float64
}

// orderLedger is the FIFO queue of open OEM orders held at Tier-1. Keeping
// order identity through partial fulfillment is what lets the trace attribute
// each delivered chunk to the period its order was placed.
type orderLedger struct {
	orders []openOrder
}

// Enqueue appends a new order. Zero-quantity orders leave no entry.
func (l *orderLedger) Enqueue(period int, qty float64) {
	if qty <= 0 {
		return
	}
	l.orders = append(l.orders, openOrder{Period: period, Remaining: qty})
}

// Serve ships open orders FIFO from the available quantity, splitting the
// oldest order when stock runs out. Returns the shipped chunks (one per
// order touched) and the total shipped.
func (l *orderLedger) Serve(available float64) ([]Shipment, float64) {
	var chunks []Shipment
	shipped := 0.0
	for len(l.orders) > 0 && available > 0 {
		head := &l.orders[0]
		qty := math.Min(head.Remaining, available)
		chunks = append(chunks, Shipment{Quantity: qty, OrderPeriod: head.Period})
		head.Remaining -= qty
		available -= qty
		shipped += qty
		if head.Remaining > 0 {
			break
		}
		l.orders = l.orders[1:]
	}
	return chunks, shipped
}

// Outstanding returns the total unshipped quantity across open orders.
func (l *orderLedger) Outstanding() float64 {
	total := 0.0
	for _, o := range l.orders {
		total += o.Remaining
	}
	return total
}
