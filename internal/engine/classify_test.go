package engine

import (
	"testing"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

func TestClassify(t *testing.T) {
	percent20 := ThresholdConfig{Mode: ThresholdPercent, Value: 20}
	absolute30 := ThresholdConfig{Mode: ThresholdAbsolute, Value: 30}

	tests := []struct {
		name     string
		free     float64
		incoming int
		forecast int
		cfg      ThresholdConfig
		want     domain.StockStatus
	}{
		{"nothing anywhere", 0, 0, 0, percent20, domain.StatusOutOfStock},
		{"out of stock despite demand", 0, 0, 10, percent20, domain.StatusOutOfStock},
		{"stock without demand signal", 5, 0, 0, percent20, domain.StatusHealthy},
		{"below forecast", 2, 0, 10, percent20, domain.StatusAtRisk},
		{"incoming lifts above risk", 2, 8, 10, percent20, domain.StatusHealthy},
		{"boundary equals forecast", 10, 0, 10, percent20, domain.StatusHealthy},
		{"just under overstock boundary", 11, 0, 10, percent20, domain.StatusHealthy},
		{"at percent overstock boundary", 12, 0, 10, percent20, domain.StatusOverstock},
		{"absolute overstock", 40, 0, 10, absolute30, domain.StatusOverstock},
		{"under absolute boundary", 39, 0, 10, absolute30, domain.StatusHealthy},
		{"incoming counts toward overstock", 10, 30, 10, absolute30, domain.StatusOverstock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := domain.EnrichedRow{
				FreeStock:     tt.free,
				IncomingQty:   tt.incoming,
				ForecastMin4W: tt.forecast,
			}
			if got := Classify(row, tt.cfg); got != tt.want {
				t.Fatalf("Classify(free=%v incoming=%d forecast=%d) = %s, want %s",
					tt.free, tt.incoming, tt.forecast, got, tt.want)
			}
		})
	}
}

func TestOverstockUnits(t *testing.T) {
	tests := []struct {
		cfg      ThresholdConfig
		forecast int
		want     int
	}{
		{ThresholdConfig{Mode: ThresholdPercent, Value: 20}, 10, 2},
		{ThresholdConfig{Mode: ThresholdPercent, Value: 20}, 7, 2}, // 1.4 rounds up
		{ThresholdConfig{Mode: ThresholdPercent, Value: 0}, 10, 0},
		{ThresholdConfig{Mode: ThresholdPercent, Value: -5}, 10, 0},
		{ThresholdConfig{Mode: ThresholdAbsolute, Value: 30}, 10, 30},
		{ThresholdConfig{Mode: ThresholdAbsolute, Value: 2.5}, 10, 3},
	}

	for _, tt := range tests {
		if got := tt.cfg.OverstockUnits(tt.forecast); got != tt.want {
			t.Errorf("OverstockUnits(%+v, %d) = %d, want %d", tt.cfg, tt.forecast, got, tt.want)
		}
	}
}

func TestParseThresholdMode(t *testing.T) {
	if mode, ok := ParseThresholdMode(" Percent "); !ok || mode != ThresholdPercent {
		t.Fatalf("ParseThresholdMode(Percent) = %q, %v", mode, ok)
	}
	if mode, ok := ParseThresholdMode("ABSOLUTE"); !ok || mode != ThresholdAbsolute {
		t.Fatalf("ParseThresholdMode(ABSOLUTE) = %q, %v", mode, ok)
	}
	if _, ok := ParseThresholdMode("relative"); ok {
		t.Fatal("ParseThresholdMode(relative) accepted an unknown mode")
	}
}
