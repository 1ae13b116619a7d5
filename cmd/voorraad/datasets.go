package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/mapping"
	"github.com/nigelvd10/voorraad-analyse-app/internal/normalize"
	"github.com/nigelvd10/voorraad-analyse-app/internal/tabular"
)

const etaLayout = "2006-01-02"

// loadStock reads a stock export and normalizes it with the same column
// heuristics as an upload through the API.
func loadStock(path string) ([]domain.StockRecord, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m := mapping.MapColumns(table.Headers)
	records, err := normalize.Rows(table, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// loadTerms reads a commercial terms file. Unlike the stock export, the
// terms file uses the canonical column names directly.
func loadTerms(path string) ([]domain.CommercialTerms, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	col := func(name string) int { return table.Column(name) }
	eanCol := col("ean")
	if eanCol < 0 {
		return nil, fmt.Errorf("%s: missing ean column", path)
	}
	sellCol := col("sell_price")
	buyCol := col("buy_price")
	shipCol := col("shipping_cost")
	otherCol := col("other_cost")
	supplierCol := col("supplier_name")
	moqCol := col("moq")
	leadCol := col("lead_time_days")

	cell := func(row []string, idx int) string {
		if idx < 0 {
			return ""
		}
		return table.Cell(row, idx)
	}

	rows := make([]domain.CommercialTerms, 0, len(table.Rows))
	for _, row := range table.Rows {
		ean := strings.TrimSpace(cell(row, eanCol))
		if ean == "" {
			continue
		}

		rows = append(rows, domain.CommercialTerms{
			EAN:          ean,
			SellPrice:    normalize.NonNegative(cell(row, sellCol)),
			BuyPrice:     normalize.NonNegative(cell(row, buyCol)),
			ShippingCost: normalize.NonNegative(cell(row, shipCol)),
			OtherCost:    normalize.NonNegative(cell(row, otherCol)),
			SupplierName: strings.TrimSpace(cell(row, supplierCol)),
			MOQ:          int(normalize.NonNegative(cell(row, moqCol))),
			LeadTimeDays: int(normalize.NonNegative(cell(row, leadCol))),
		})
	}
	return rows, nil
}

// loadShipments reads an inbound shipments file with canonical column names.
// ETA accepts YYYY-MM-DD; an empty cell means the arrival date is unknown.
func loadShipments(path string) ([]domain.InboundShipment, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}

	eanCol := table.Column("ean")
	qtyCol := table.Column("quantity")
	if eanCol < 0 || qtyCol < 0 {
		return nil, fmt.Errorf("%s: missing ean or quantity column", path)
	}
	etaCol := table.Column("eta")
	supplierCol := table.Column("supplier_name")

	cell := func(row []string, idx int) string {
		if idx < 0 {
			return ""
		}
		return table.Cell(row, idx)
	}

	rows := make([]domain.InboundShipment, 0, len(table.Rows))
	for i, row := range table.Rows {
		ean := strings.TrimSpace(cell(row, eanCol))
		if ean == "" {
			continue
		}

		shipment := domain.InboundShipment{
			ID:           int64(i + 1),
			EAN:          ean,
			Quantity:     int(normalize.NonNegative(cell(row, qtyCol))),
			SupplierName: strings.TrimSpace(cell(row, supplierCol)),
		}

		if raw := strings.TrimSpace(cell(row, etaCol)); raw != "" {
			eta, err := time.Parse(etaLayout, raw)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid eta %q on row %d", path, raw, i+1)
			}
			shipment.ETA = &eta
		}

		rows = append(rows, shipment)
	}
	return rows, nil
}
