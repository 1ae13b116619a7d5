package engine

import (
	"testing"
	"time"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

var today = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestMergeJoinsTermsAndShipments(t *testing.T) {
	stock := []domain.StockRecord{
		{EAN: "871", Title: "Mok", FreeStock: 4, SalesTotal: 12, ForecastMin4W: 10, Position: 0},
		{EAN: "872", Title: "Beker", FreeStock: 2, SalesTotal: 3, ForecastMin4W: 5, Position: 1},
	}
	terms := []domain.CommercialTerms{
		{EAN: "871", SellPrice: 10, BuyPrice: 4, ShippingCost: 1, OtherCost: 0.5, SupplierName: " Jansen BV ", MOQ: 6, LeadTimeDays: 14},
	}
	shipments := []domain.InboundShipment{
		{EAN: "871", Quantity: 3, ETA: datePtr(2026, 3, 10)},
		{EAN: " 871 ", Quantity: 2}, // unknown ETA always counts
	}

	rows := Merge(stock, terms, shipments, today)
	if len(rows) != 2 {
		t.Fatalf("Merge returned %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.IncomingQty != 5 {
		t.Fatalf("incoming = %d, want 5", first.IncomingQty)
	}
	if first.SupplierName != "Jansen BV" {
		t.Fatalf("supplier = %q, want trimmed name", first.SupplierName)
	}
	if first.MOQ != 6 || first.LeadTimeDays != 14 {
		t.Fatalf("terms not joined: %+v", first)
	}
	if first.StockValue != 40 {
		t.Fatalf("stock value = %v, want 40", first.StockValue)
	}
	if first.UnitLandedCost != 5.5 {
		t.Fatalf("unit landed cost = %v, want 5.5", first.UnitLandedCost)
	}

	second := rows[1]
	if second.SellPrice != 0 || second.SupplierName != "" {
		t.Fatalf("record without terms picked up values: %+v", second)
	}
	if second.MOQ != 1 {
		t.Fatalf("default MOQ = %d, want 1", second.MOQ)
	}
	if second.IncomingQty != 0 {
		t.Fatalf("record without shipments got incoming %d", second.IncomingQty)
	}
}

func TestMergeOrphansInvisible(t *testing.T) {
	stock := []domain.StockRecord{{EAN: "871", Title: "Mok", FreeStock: 1}}
	terms := []domain.CommercialTerms{{EAN: "999", SellPrice: 5}}
	shipments := []domain.InboundShipment{{EAN: "999", Quantity: 10}}

	rows := Merge(stock, terms, shipments, today)
	if len(rows) != 1 {
		t.Fatalf("Merge returned %d rows, want 1 (orphans must not create rows)", len(rows))
	}
	if rows[0].EAN != "871" {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}

func TestMergePreservesSnapshotOrder(t *testing.T) {
	stock := []domain.StockRecord{
		{EAN: "c", Position: 0},
		{EAN: "a", Position: 1},
		{EAN: "b", Position: 2},
	}

	rows := Merge(stock, nil, nil, today)
	want := []string{"c", "a", "b"}
	for i, ean := range want {
		if rows[i].EAN != ean {
			t.Fatalf("row %d = %q, want %q", i, rows[i].EAN, ean)
		}
	}
}

func TestPendingQuantities(t *testing.T) {
	shipments := []domain.InboundShipment{
		{EAN: "871", Quantity: 3, ETA: datePtr(2026, 3, 1)},  // yesterday: arrived
		{EAN: "871", Quantity: 4, ETA: datePtr(2026, 3, 2)},  // today still counts
		{EAN: "871", Quantity: 5, ETA: datePtr(2026, 3, 20)}, // future
		{EAN: "871", Quantity: 6},                            // unknown ETA
		{EAN: "871", Quantity: 0},                            // empty line
		{EAN: "871", Quantity: -2},
		{EAN: "", Quantity: 9},
	}

	incoming := pendingQuantities(shipments, today)
	if got := incoming["871"]; got != 15 {
		t.Fatalf("pending for 871 = %d, want 15", got)
	}
	if _, ok := incoming[""]; ok {
		t.Fatal("empty EAN grouped into pending quantities")
	}
}

func TestPendingQuantitiesComparesCalendarDates(t *testing.T) {
	// ETAs are stored as UTC midnights; the clock may run in any location.
	// A shipment due today must count as pending regardless of the offset
	// between the two.
	shipments := []domain.InboundShipment{
		{EAN: "871", Quantity: 5, ETA: datePtr(2026, 3, 2)},
	}

	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-10", -10*60*60),
		time.FixedZone("UTC+12", 12*60*60),
	}
	for _, zone := range zones {
		localToday := time.Date(2026, 3, 2, 9, 0, 0, 0, zone)
		incoming := pendingQuantities(shipments, localToday)
		if got := incoming["871"]; got != 5 {
			t.Fatalf("pending for 871 with clock in %s = %d, want 5", zone, got)
		}
	}

	// Yesterday's ETA stays excluded whatever the clock's location.
	past := []domain.InboundShipment{
		{EAN: "871", Quantity: 5, ETA: datePtr(2026, 3, 1)},
	}
	for _, zone := range zones {
		localToday := time.Date(2026, 3, 2, 9, 0, 0, 0, zone)
		if got := pendingQuantities(past, localToday)["871"]; got != 0 {
			t.Fatalf("arrived shipment counted with clock in %s: %d", zone, got)
		}
	}
}
