package engine

import (
	"strings"
	"time"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// dateOnly reduces a timestamp to its calendar day, anchored in UTC so
// values from different locations compare by date, not by instant.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// pendingQuantities sums shipment quantities per EAN, counting only lines
// whose ETA is unknown or today-or-later. EANs are trimmed before grouping.
func pendingQuantities(shipments []domain.InboundShipment, today time.Time) map[string]int {
	today = dateOnly(today)
	incoming := make(map[string]int)
	for _, s := range shipments {
		ean := strings.TrimSpace(s.EAN)
		if ean == "" || s.Quantity <= 0 {
			continue
		}
		if s.ETA != nil && dateOnly(*s.ETA).Before(today) {
			continue
		}
		incoming[ean] += s.Quantity
	}
	return incoming
}

// Merge left-joins commercial terms and pending inbound quantities onto the
// stock snapshot. Every stock record survives the join; terms or shipments
// without a matching stock record are orphans and stay invisible until a
// snapshot containing their EAN is committed. Snapshot order is preserved.
func Merge(stock []domain.StockRecord, terms []domain.CommercialTerms, shipments []domain.InboundShipment, today time.Time) []domain.EnrichedRow {
	termsByEAN := make(map[string]domain.CommercialTerms, len(terms))
	for _, t := range terms {
		ean := strings.TrimSpace(t.EAN)
		if ean == "" {
			continue
		}
		termsByEAN[ean] = t
	}

	incoming := pendingQuantities(shipments, today)

	rows := make([]domain.EnrichedRow, 0, len(stock))
	for _, rec := range stock {
		ean := strings.TrimSpace(rec.EAN)
		if ean == "" {
			continue
		}

		row := domain.EnrichedRow{
			EAN:           ean,
			Reference:     rec.Reference,
			Title:         rec.Title,
			FreeStock:     rec.FreeStock,
			SalesTotal:    rec.SalesTotal,
			ForecastMin4W: rec.ForecastMin4W,
			IncomingQty:   incoming[ean],
			MOQ:           1,
		}

		if t, ok := termsByEAN[ean]; ok {
			row.SellPrice = t.SellPrice
			row.BuyPrice = t.BuyPrice
			row.ShippingCost = t.ShippingCost
			row.OtherCost = t.OtherCost
			row.SupplierName = strings.TrimSpace(t.SupplierName)
			row.LeadTimeDays = t.LeadTimeDays
			if t.MOQ > 1 {
				row.MOQ = t.MOQ
			}
		}

		row.StockValue = row.FreeStock * row.SellPrice
		row.UnitLandedCost = row.BuyPrice + row.ShippingCost + row.OtherCost

		rows = append(rows, row)
	}

	return rows
}
