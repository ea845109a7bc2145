package trace

// Trace is the append-only record of a completed simulation run. It is owned
// by the driver while the run is in progress and handed to the metrics engine
// read-only afterwards.
type Trace struct {
	Periods   []PeriodRecord
	Shipments []ShipmentRecord
}

// NewTrace creates a Trace with capacity for the given number of periods.
func NewTrace(periods int) *Trace {
	return &Trace{
		Periods:   make([]PeriodRecord, 0, periods),
		Shipments: make([]ShipmentRecord, 0),
	}
}

// RecordPeriod appends a period snapshot.
func (tr *Trace) RecordPeriod(record PeriodRecord) {
	tr.Periods = append(tr.Periods, record)
}

// RecordShipment appends a delivered shipment chunk.
func (tr *Trace) RecordShipment(record ShipmentRecord) {
	tr.Shipments = append(tr.Shipments, record)
}

// Len returns the number of recorded periods.
func (tr *Trace) Len() int {
	return len(tr.Periods)
}

// CustomerDemand returns the realized customer demand series, one value per
// period. Safe for nil traces (returns nil).
func (tr *Trace) CustomerDemand() []float64 {
	if tr == nil {
		return nil
	}
	out := make([]float64, len(tr.Periods))
	for i, p := range tr.Periods {
		out[i] = p.OEM.Demand
	}
	return out
}
