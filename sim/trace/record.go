// Package trace provides the per-period records produced by a simulation run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Echelon names used in shipment records.
const (
	EchelonOEM   = "oem"
	EchelonTier1 = "tier1"
)

// EchelonRecord is an immutable snapshot of one echelon at the end of a period.
type EchelonRecord struct {
	Demand          float64 // demand incurred this period (customer demand for OEM, OEM order for Tier-1)
	Fulfilled       float64 // portion of this period's demand served in the same period
	OrderPlaced     float64 // replenishment order issued upstream this period
	OrderReceived   float64 // quantity that arrived from the inbound pipeline this period
	EndingInventory float64
	EndingBacklog   float64
	WIP             float64 // in-transit quantity in the inbound pipeline after this period
}

// PeriodRecord captures one simulated period across the chain.
type PeriodRecord struct {
	Period int
	OEM    EchelonRecord
	Tier1  EchelonRecord
}

// ShipmentRecord captures a delivered shipment chunk together with the
// placement period of the order it satisfied. Partially served orders produce
// one record per chunk, each at its own arrival period.
type ShipmentRecord struct {
	Echelon       string // receiving echelon
	OrderPeriod   int
	ArrivalPeriod int
	Quantity      float64
}
