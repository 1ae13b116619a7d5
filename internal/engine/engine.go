package engine

import (
	"strings"
	"time"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// Config bundles the knobs that influence a reconciliation pass.
type Config struct {
	Threshold       ThresholdConfig
	SafetyMarginPct float64
}

// Engine recomputes the full enriched view from the three source datasets.
// It owns no state of its own: running it twice over identical inputs yields
// identical output, so callers may re-trigger it freely.
type Engine struct {
	cfg Config
	now func() time.Time
}

func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

// NewWithClock fixes the evaluation day, used by the CLI and tests.
func NewWithClock(cfg Config, now func() time.Time) *Engine {
	return &Engine{cfg: cfg, now: now}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Recompute merges, classifies and recommends in one pass over in-memory
// data. Row order follows the stock snapshot.
func (e *Engine) Recompute(stock []domain.StockRecord, terms []domain.CommercialTerms, shipments []domain.InboundShipment) domain.Report {
	rows := Merge(stock, terms, shipments, e.now())

	for i := range rows {
		rows[i].Status = Classify(rows[i], e.cfg.Threshold)
		rows[i].OrderAdvice = Recommend(rows[i], e.cfg.SafetyMarginPct)
	}

	return domain.Report{
		Rows:    rows,
		Summary: Summarize(rows),
	}
}

// statusOrder fixes the summary ordering so output is stable across passes.
var statusOrder = []domain.StockStatus{
	domain.StatusOutOfStock,
	domain.StatusAtRisk,
	domain.StatusHealthy,
	domain.StatusOverstock,
}

// Summarize computes the headline metrics over a (possibly filtered) row set.
// An upload with repeated EANs yields repeated rows, so the product count is
// over distinct EANs, not rows.
func Summarize(rows []domain.EnrichedRow) domain.ReportSummary {
	var summary domain.ReportSummary

	eans := make(map[string]struct{}, len(rows))
	counts := make(map[domain.StockStatus]int, len(statusOrder))
	for _, row := range rows {
		eans[strings.TrimSpace(row.EAN)] = struct{}{}
		summary.TotalFreeStock += row.FreeStock
		summary.TotalSales += row.SalesTotal
		summary.TotalValue += row.StockValue
		counts[row.Status]++
	}
	summary.UniqueEANs = len(eans)

	summary.StatusCounts = make([]domain.StatusCount, 0, len(statusOrder))
	for _, status := range statusOrder {
		summary.StatusCounts = append(summary.StatusCounts, domain.StatusCount{
			Status: status,
			Count:  counts[status],
		})
	}

	return summary
}
