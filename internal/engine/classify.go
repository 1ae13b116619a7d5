package engine

import (
	"math"
	"strings"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// ThresholdMode selects how the overstock threshold value is interpreted.
// Deployments must pick one mode explicitly; there is no implicit fallback
// between unit counts and percentages.
type ThresholdMode string

const (
	// ThresholdAbsolute treats the value as a unit count above forecast.
	ThresholdAbsolute ThresholdMode = "absolute"
	// ThresholdPercent treats the value as a percentage of the 4-week
	// minimum forecast, rounded up to whole units.
	ThresholdPercent ThresholdMode = "percent"
)

// ParseThresholdMode resolves a mode from its configuration string.
func ParseThresholdMode(v string) (ThresholdMode, bool) {
	switch ThresholdMode(strings.ToLower(strings.TrimSpace(v))) {
	case ThresholdAbsolute:
		return ThresholdAbsolute, true
	case ThresholdPercent:
		return ThresholdPercent, true
	}
	return "", false
}

// ThresholdConfig is the explicit classification configuration passed into
// every pass. It is a value object: the classifier holds no ambient state.
type ThresholdConfig struct {
	Mode  ThresholdMode `json:"mode"`
	Value float64       `json:"value"`
}

// OverstockUnits resolves the threshold to whole units for a given forecast.
func (c ThresholdConfig) OverstockUnits(forecast int) int {
	value := math.Max(0, c.Value)
	if c.Mode == ThresholdPercent {
		return int(math.Ceil(float64(forecast) * value / 100))
	}
	return int(math.Ceil(value))
}

// Classify maps an enriched row to exactly one health status. The status is
// recomputed fresh every pass from current data; nothing transitions.
//
// A row with totalStock equal to the forecast is not at risk: the strict
// comparison puts the boundary in the healthy band.
func Classify(row domain.EnrichedRow, cfg ThresholdConfig) domain.StockStatus {
	totalStock := row.FreeStock + float64(row.IncomingQty)

	switch {
	case totalStock <= 0:
		return domain.StatusOutOfStock
	case row.ForecastMin4W <= 0:
		// no demand signal, no alarm
		return domain.StatusHealthy
	case totalStock < float64(row.ForecastMin4W):
		return domain.StatusAtRisk
	case totalStock >= float64(row.ForecastMin4W+cfg.OverstockUnits(row.ForecastMin4W)):
		return domain.StatusOverstock
	default:
		return domain.StatusHealthy
	}
}
