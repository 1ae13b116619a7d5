package domain

import "strings"

// StockStatus is the health classification of a single enriched row.
// Every row maps to exactly one status per reconciliation pass.
type StockStatus string

const (
	StatusOutOfStock StockStatus = "out_of_stock"
	StatusAtRisk     StockStatus = "at_risk"
	StatusHealthy    StockStatus = "healthy"
	StatusOverstock  StockStatus = "overstock"
)

var stockStatusLabels = map[StockStatus]string{
	StatusOutOfStock: "Uitverkocht",
	StatusAtRisk:     "Risico",
	StatusHealthy:    "Gezond",
	StatusOverstock:  "Overvoorraad",
}

var stockStatusCodes = map[string]StockStatus{
	"out_of_stock": StatusOutOfStock,
	"uitverkocht":  StatusOutOfStock,
	"at_risk":      StatusAtRisk,
	"risico":       StatusAtRisk,
	"healthy":      StatusHealthy,
	"gezond":       StatusHealthy,
	"overstock":    StatusOverstock,
	"overvoorraad": StatusOverstock,
}

// Label returns the Dutch display label used in exports and the dashboard.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}

	return string(s)
}

// ParseStockStatus resolves a status from either its code or its display
// label (case-insensitive).
func ParseStockStatus(v string) (StockStatus, bool) {
	status, ok := stockStatusCodes[strings.ToLower(strings.TrimSpace(v))]

	return status, ok
}
