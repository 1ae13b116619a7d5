// Package export serializes reconciliation results to delimited text and
// spreadsheets, preserving the fixed column order the report consumers
// expect.
package export

import (
	"strconv"
	"strings"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// SheetName is the sheet the XLSX report is written to.
const SheetName = "Voorraad_Rapport"

var canonicalColumns = []string{
	"EAN",
	"Titel",
	"Vrije voorraad",
	"Verkopen (Totaal)",
	"Verkoopprognose min (Totaal 4w)",
}

var enrichedColumns = []string{
	"Incoming",
	"Verkoopprijs",
	"Inkoopprijs",
	"Verzendkosten",
	"Overige kosten",
	"Leverancier",
	"MOQ",
	"Levertijd (dagen)",
	"Voorraadwaarde (verkoop)",
	"Totale kostprijs per stuk",
	"Status",
	"Aanbevolen bestelaantal",
}

// HasReferences reports whether any row carries the optional secondary
// identifier, which decides whether the Referentie column is emitted.
func HasReferences(rows []domain.EnrichedRow) bool {
	for _, row := range rows {
		if strings.TrimSpace(row.Reference) != "" {
			return true
		}
	}
	return false
}

// Headers returns the full enriched header row.
func Headers(withReference bool) []string {
	headers := make([]string, 0, len(canonicalColumns)+len(enrichedColumns)+1)
	headers = append(headers, canonicalColumns[0])
	if withReference {
		headers = append(headers, "Referentie")
	}
	headers = append(headers, canonicalColumns[1:]...)
	headers = append(headers, enrichedColumns...)
	return headers
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func record(row domain.EnrichedRow, withReference bool) []string {
	rec := make([]string, 0, len(canonicalColumns)+len(enrichedColumns)+1)
	rec = append(rec, row.EAN)
	if withReference {
		rec = append(rec, row.Reference)
	}
	rec = append(rec,
		row.Title,
		formatNumber(row.FreeStock),
		formatNumber(row.SalesTotal),
		strconv.Itoa(row.ForecastMin4W),
		strconv.Itoa(row.IncomingQty),
		formatNumber(row.SellPrice),
		formatNumber(row.BuyPrice),
		formatNumber(row.ShippingCost),
		formatNumber(row.OtherCost),
		row.SupplierName,
		strconv.Itoa(row.MOQ),
		strconv.Itoa(row.LeadTimeDays),
		formatNumber(row.StockValue),
		formatNumber(row.UnitLandedCost),
		row.Status.Label(),
		strconv.Itoa(row.OrderAdvice),
	)
	return rec
}
