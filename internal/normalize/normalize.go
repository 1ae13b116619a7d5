package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/mapping"
	"github.com/nigelvd10/voorraad-analyse-app/internal/tabular"
)

// ParseNumber coerces a raw cell to a number. A decimal comma is accepted by
// replacing commas with dots before parsing; blank or unparseable values
// become 0. Thousands separators are not supported: "1.234,5" turns into
// "1.234.5" and coerces to 0.
func ParseNumber(raw string) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NonNegative parses like ParseNumber and floors negatives at 0.
func NonNegative(raw string) float64 {
	return math.Max(0, ParseNumber(raw))
}

// CeilForecast coerces a forecast cell to a whole-unit demand figure. The
// value is rounded up so a fractional forecast never under-states demand;
// negatives and garbage become 0. The transform is idempotent.
func CeilForecast(raw string) int {
	return int(math.Ceil(math.Max(0, ParseNumber(raw))))
}

// Rows converts a raw table into canonical stock records using the given
// field mapping. The mapping must resolve every mandatory field to a header
// present in the table, otherwise a *mapping.FieldError is returned and
// nothing is produced. Rows whose EAN is empty after trimming are dropped.
func Rows(t *tabular.Table, m mapping.Mapping) ([]domain.StockRecord, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	cols := make(map[mapping.Field]int)
	var unresolved []mapping.Field
	for _, field := range mapping.MandatoryFields() {
		idx := t.Column(m[field])
		if idx < 0 {
			unresolved = append(unresolved, field)
			continue
		}
		cols[field] = idx
	}
	if len(unresolved) > 0 {
		return nil, &mapping.FieldError{Fields: unresolved}
	}

	refCol := -1
	if header, ok := m[mapping.FieldReference]; ok && strings.TrimSpace(header) != "" {
		refCol = t.Column(header)
	}

	records := make([]domain.StockRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		ean := strings.TrimSpace(t.Cell(row, cols[mapping.FieldEAN]))
		if ean == "" {
			continue
		}

		rec := domain.StockRecord{
			EAN:           ean,
			Title:         strings.TrimSpace(t.Cell(row, cols[mapping.FieldTitle])),
			FreeStock:     NonNegative(t.Cell(row, cols[mapping.FieldFreeStock])),
			SalesTotal:    NonNegative(t.Cell(row, cols[mapping.FieldSalesTotal])),
			ForecastMin4W: CeilForecast(t.Cell(row, cols[mapping.FieldForecastMin4W])),
			Position:      len(records),
		}
		if refCol >= 0 {
			rec.Reference = strings.TrimSpace(t.Cell(row, refCol))
		}

		records = append(records, rec)
	}

	return records, nil
}
