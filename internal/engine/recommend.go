package engine

import (
	"math"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// Recommend computes the order advice for one enriched row: cover the
// forecast plus a safety margin, net of stock already on hand or inbound,
// rounded up to a whole number of MOQ lots. The result is always a
// non-negative multiple of max(1, MOQ), and 0 when there is no forecast
// signal.
func Recommend(row domain.EnrichedRow, safetyMarginPct float64) int {
	if row.ForecastMin4W <= 0 {
		return 0
	}

	target := float64(row.ForecastMin4W) * (1 + math.Max(0, safetyMarginPct)/100)
	totalStock := row.FreeStock + float64(row.IncomingQty)
	need := target - totalStock
	if need <= 0 {
		return 0
	}

	moq := row.MOQ
	if moq < 1 {
		moq = 1
	}

	lots := int(math.Ceil(need / float64(moq)))
	return lots * moq
}
