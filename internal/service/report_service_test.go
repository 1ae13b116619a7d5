package service

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/engine"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository/memory"
)

var fixedDay = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func testService(stock []domain.StockRecord, terms []domain.CommercialTerms, shipments []domain.InboundShipment) *ReportService {
	eng := engine.NewWithClock(engine.Config{
		Threshold:       engine.ThresholdConfig{Mode: engine.ThresholdPercent, Value: 20},
		SafetyMarginPct: 10,
	}, func() time.Time { return fixedDay })

	return NewReportService(
		memory.NewSnapshotStore(stock),
		memory.NewTermsStore(terms),
		memory.NewShipmentStore(shipments),
		eng,
		nil,
	)
}

func sampleData() ([]domain.StockRecord, []domain.CommercialTerms, []domain.InboundShipment) {
	stock := []domain.StockRecord{
		{EAN: "871", Title: "Mok", FreeStock: 2, SalesTotal: 12, ForecastMin4W: 10, Position: 0},
		{EAN: "872", Title: "Beker", FreeStock: 20, SalesTotal: 4, ForecastMin4W: 5, Position: 1},
		{EAN: "873", Title: "Bord", FreeStock: 0, SalesTotal: 1, ForecastMin4W: 2, Position: 2},
	}
	terms := []domain.CommercialTerms{
		{EAN: "871", SellPrice: 10, SupplierName: "Jansen BV", MOQ: 5},
		{EAN: "872", SellPrice: 3, SupplierName: "De Vries", MOQ: 1},
	}
	shipments := []domain.InboundShipment{
		{EAN: "873", Quantity: 0},
	}
	return stock, terms, shipments
}

func TestReportUnfiltered(t *testing.T) {
	svc := testService(sampleData())

	report, err := svc.Report(context.Background(), domain.ReportFilter{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if len(report.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(report.Rows))
	}
	if report.Rows[0].EAN != "871" || report.Rows[2].EAN != "873" {
		t.Fatalf("snapshot order not preserved: %v, %v", report.Rows[0].EAN, report.Rows[2].EAN)
	}
	if report.Rows[0].Status != domain.StatusAtRisk {
		t.Fatalf("871 status = %s, want at_risk", report.Rows[0].Status)
	}
	if report.Rows[1].Status != domain.StatusOverstock {
		t.Fatalf("872 status = %s, want overstock", report.Rows[1].Status)
	}
	if report.Rows[2].Status != domain.StatusOutOfStock {
		t.Fatalf("873 status = %s, want out_of_stock", report.Rows[2].Status)
	}
	if report.Summary.UniqueEANs != 3 {
		t.Fatalf("summary eans = %d", report.Summary.UniqueEANs)
	}
}

func TestReportFilterSupplier(t *testing.T) {
	svc := testService(sampleData())

	report, err := svc.Report(context.Background(), domain.ReportFilter{Supplier: "jansen bv"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if len(report.Rows) != 1 || report.Rows[0].EAN != "871" {
		t.Fatalf("supplier filter rows = %+v", report.Rows)
	}
	if report.Summary.UniqueEANs != 1 {
		t.Fatalf("filtered summary not recomputed: %+v", report.Summary)
	}
}

func TestReportFilterStatusByLabel(t *testing.T) {
	svc := testService(sampleData())

	report, err := svc.Report(context.Background(), domain.ReportFilter{Status: "Risico"})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if len(report.Rows) != 1 || report.Rows[0].Status != domain.StatusAtRisk {
		t.Fatalf("status filter rows = %+v", report.Rows)
	}
}

func TestReportIdempotent(t *testing.T) {
	svc := testService(sampleData())

	first, err := svc.Report(context.Background(), domain.ReportFilter{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	second, err := svc.Report(context.Background(), domain.ReportFilter{})
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("re-running the report over unchanged data changed the result")
	}
}

func TestSuppliers(t *testing.T) {
	_, terms, _ := sampleData()
	terms = append(terms,
		domain.CommercialTerms{EAN: "874", SupplierName: "Jansen BV"}, // duplicate name
		domain.CommercialTerms{EAN: "875", SupplierName: "  "},        // blank stays out
	)
	svc := testService(nil, terms, nil)

	suppliers, err := svc.Suppliers(context.Background())
	if err != nil {
		t.Fatalf("Suppliers: %v", err)
	}

	want := []string{"De Vries", "Jansen BV"}
	if !reflect.DeepEqual(suppliers, want) {
		t.Fatalf("Suppliers = %v, want %v", suppliers, want)
	}
}

func TestSubmitTermsDiffCheck(t *testing.T) {
	_, terms, _ := sampleData()
	svc := testService(nil, terms, nil)
	ctx := context.Background()

	// Submitting the exact same rows must not persist anything.
	saved, err := svc.SubmitTerms(ctx, terms)
	if err != nil {
		t.Fatalf("SubmitTerms: %v", err)
	}
	if saved {
		t.Fatal("unchanged submission reported a save")
	}

	changed := append([]domain.CommercialTerms(nil), terms...)
	changed[0].SellPrice = 11
	saved, err = svc.SubmitTerms(ctx, changed)
	if err != nil {
		t.Fatalf("SubmitTerms: %v", err)
	}
	if !saved {
		t.Fatal("changed submission did not save")
	}

	got, err := svc.Terms(ctx)
	if err != nil {
		t.Fatalf("Terms: %v", err)
	}
	for _, row := range got {
		if row.EAN == "871" && row.SellPrice != 11 {
			t.Fatalf("change not persisted: %+v", row)
		}
	}
}

func TestSubmitTermsRejectsDuplicates(t *testing.T) {
	svc := testService(nil, nil, nil)

	_, err := svc.SubmitTerms(context.Background(), []domain.CommercialTerms{
		{EAN: "871"},
		{EAN: " 871 "},
	})
	if err == nil {
		t.Fatal("duplicate EANs accepted")
	}
}

func TestSubmitTermsAppliesDefaults(t *testing.T) {
	svc := testService(nil, nil, nil)
	ctx := context.Background()

	saved, err := svc.SubmitTerms(ctx, []domain.CommercialTerms{
		{EAN: " 871 ", SellPrice: -5, MOQ: 0, LeadTimeDays: -2, SupplierName: " Jansen BV "},
	})
	if err != nil {
		t.Fatalf("SubmitTerms: %v", err)
	}
	if !saved {
		t.Fatal("first submission did not save")
	}

	got, err := svc.Terms(ctx)
	if err != nil {
		t.Fatalf("Terms: %v", err)
	}
	row := got[0]
	if row.EAN != "871" || row.SupplierName != "Jansen BV" {
		t.Fatalf("keys not trimmed: %+v", row)
	}
	if row.SellPrice != 0 || row.MOQ != 1 || row.LeadTimeDays != 0 {
		t.Fatalf("defaults not applied: %+v", row)
	}
}

func TestAddShipmentValidation(t *testing.T) {
	svc := testService(nil, nil, nil)
	ctx := context.Background()

	if err := svc.AddShipment(ctx, &domain.InboundShipment{EAN: "", Quantity: 5}); err == nil {
		t.Fatal("empty EAN accepted")
	}
	if err := svc.AddShipment(ctx, &domain.InboundShipment{EAN: "871", Quantity: 0}); err == nil {
		t.Fatal("zero quantity accepted")
	}

	shipment := &domain.InboundShipment{EAN: " 871 ", Quantity: 5}
	if err := svc.AddShipment(ctx, shipment); err != nil {
		t.Fatalf("AddShipment: %v", err)
	}
	if shipment.ID == 0 {
		t.Fatal("shipment did not receive an id")
	}
	if shipment.EAN != "871" {
		t.Fatalf("EAN not trimmed: %q", shipment.EAN)
	}

	rows, err := svc.Shipments(ctx)
	if err != nil {
		t.Fatalf("Shipments: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("shipments = %d, want 1", len(rows))
	}

	if err := svc.DeleteShipment(ctx, shipment.ID); err != nil {
		t.Fatalf("DeleteShipment: %v", err)
	}
	rows, _ = svc.Shipments(ctx)
	if len(rows) != 0 {
		t.Fatalf("shipment not deleted: %v", rows)
	}
}

func TestCommitSnapshotDiffCheck(t *testing.T) {
	stock, _, _ := sampleData()
	svc := testService(stock, nil, nil)
	ctx := context.Background()

	saved, err := svc.CommitSnapshot(ctx, stock)
	if err != nil {
		t.Fatalf("CommitSnapshot: %v", err)
	}
	if saved {
		t.Fatal("identical snapshot reported a save")
	}

	changed := append([]domain.StockRecord(nil), stock...)
	changed[0].FreeStock = 99
	saved, err = svc.CommitSnapshot(ctx, changed)
	if err != nil {
		t.Fatalf("CommitSnapshot: %v", err)
	}
	if !saved {
		t.Fatal("changed snapshot did not save")
	}
}

func TestExportCSVRoundTrip(t *testing.T) {
	svc := testService(sampleData())

	data, err := svc.ExportCSV(context.Background(), domain.ReportFilter{Supplier: "Jansen BV"})
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty export")
	}
}
