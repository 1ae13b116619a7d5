package domain

import "time"

// StockRecord is one row of the last committed stock snapshot, normalized
// into the canonical schema. EAN is the natural key across all datasets.
type StockRecord struct {
	EAN           string  `json:"ean" db:"ean"`
	Reference     string  `json:"reference,omitempty" db:"reference"`
	Title         string  `json:"title" db:"title"`
	FreeStock     float64 `json:"free_stock" db:"free_stock"`
	SalesTotal    float64 `json:"sales_total" db:"sales_total"`
	ForecastMin4W int     `json:"forecast_min_4w" db:"forecast_min_4w"`
	Position      int     `json:"-" db:"position"`
}

// CommercialTerms holds the per-product commercial data maintained by the
// user. It persists across stock re-uploads and is keyed by EAN.
type CommercialTerms struct {
	EAN          string  `json:"ean" db:"ean"`
	SellPrice    float64 `json:"sell_price" db:"sell_price"`
	BuyPrice     float64 `json:"buy_price" db:"buy_price"`
	ShippingCost float64 `json:"shipping_cost" db:"shipping_cost"`
	OtherCost    float64 `json:"other_cost" db:"other_cost"`
	SupplierName string  `json:"supplier_name" db:"supplier_name"`
	MOQ          int     `json:"moq" db:"moq"`
	LeadTimeDays int     `json:"lead_time_days" db:"lead_time_days"`
}

// InboundShipment is a single pending delivery line. A nil ETA means the
// arrival date is unknown and the line always counts as pending.
type InboundShipment struct {
	ID           int64      `json:"id" db:"id"`
	EAN          string     `json:"ean" db:"ean"`
	Quantity     int        `json:"quantity" db:"quantity"`
	ETA          *time.Time `json:"eta,omitempty" db:"eta"`
	SupplierName string     `json:"supplier_name" db:"supplier_name"`
}

// EnrichedRow is the three-way join of a stock record with its commercial
// terms and pending inbound quantity, plus the derived valuation fields and
// the classification result. It is recomputed on every pass, never stored.
type EnrichedRow struct {
	EAN            string      `json:"ean"`
	Reference      string      `json:"reference,omitempty"`
	Title          string      `json:"title"`
	FreeStock      float64     `json:"free_stock"`
	SalesTotal     float64     `json:"sales_total"`
	ForecastMin4W  int         `json:"forecast_min_4w"`
	IncomingQty    int         `json:"incoming_qty"`
	SellPrice      float64     `json:"sell_price"`
	BuyPrice       float64     `json:"buy_price"`
	ShippingCost   float64     `json:"shipping_cost"`
	OtherCost      float64     `json:"other_cost"`
	SupplierName   string      `json:"supplier_name"`
	MOQ            int         `json:"moq"`
	LeadTimeDays   int         `json:"lead_time_days"`
	StockValue     float64     `json:"stock_value"`
	UnitLandedCost float64     `json:"unit_landed_cost"`
	Status         StockStatus `json:"status"`
	OrderAdvice    int         `json:"order_advice"`
}

// StatusCount is one slice of the per-status summary.
type StatusCount struct {
	Status StockStatus `json:"status"`
	Count  int         `json:"count"`
}

// ReportSummary aggregates the headline metrics shown above the report grid.
type ReportSummary struct {
	UniqueEANs     int           `json:"unique_eans"`
	TotalFreeStock float64       `json:"total_free_stock"`
	TotalSales     float64       `json:"total_sales"`
	TotalValue     float64       `json:"total_value"`
	StatusCounts   []StatusCount `json:"status_counts"`
}

// Report is the full reconciliation result for one pass.
type Report struct {
	Rows    []EnrichedRow `json:"rows"`
	Summary ReportSummary `json:"summary"`
}

// ReportFilter narrows the report to a supplier subset and/or a single status.
type ReportFilter struct {
	Supplier string `json:"supplier"`
	Status   string `json:"status"`
}
