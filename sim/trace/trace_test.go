package trace

import (
	"testing"
)

func TestTrace_RecordPeriod_Appends(t *testing.T) {
	tr := NewTrace(2)

	tr.RecordPeriod(PeriodRecord{
		Period: 0,
		OEM:    EchelonRecord{Demand: 100, Fulfilled: 80, EndingBacklog: 20},
	})

	if tr.Len() != 1 {
		t.Fatalf("expected 1 period, got %d", tr.Len())
	}
	if tr.Periods[0].OEM.Demand != 100 {
		t.Errorf("expected demand 100, got %v", tr.Periods[0].OEM.Demand)
	}
}

func TestTrace_RecordShipment_Appends(t *testing.T) {
	tr := NewTrace(1)

	tr.RecordShipment(ShipmentRecord{
		Echelon:       EchelonOEM,
		OrderPeriod:   3,
		ArrivalPeriod: 6,
		Quantity:      40,
	})

	if len(tr.Shipments) != 1 {
		t.Fatalf("expected 1 shipment, got %d", len(tr.Shipments))
	}
	if got := tr.Shipments[0].ArrivalPeriod - tr.Shipments[0].OrderPeriod; got != 3 {
		t.Errorf("expected lead time 3, got %d", got)
	}
}

func TestTrace_CustomerDemand(t *testing.T) {
	tr := NewTrace(3)
	for i, d := range []float64{90, 110, 100} {
		tr.RecordPeriod(PeriodRecord{Period: i, OEM: EchelonRecord{Demand: d}})
	}

	got := tr.CustomerDemand()
	want := []float64{90, 110, 100}
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("period %d: demand %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTrace_CustomerDemand_NilSafe(t *testing.T) {
	var tr *Trace
	if tr.CustomerDemand() != nil {
		t.Error("nil trace should yield nil demand series")
	}
}
