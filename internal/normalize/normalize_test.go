package normalize

import (
	"errors"
	"testing"

	"github.com/nigelvd10/voorraad-analyse-app/internal/mapping"
	"github.com/nigelvd10/voorraad-analyse-app/internal/tabular"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"12.5", 12.5},
		{"12,5", 12.5},
		{" 7 ", 7},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"-3", -3},
		{"1.234,5", 0}, // thousands separators are not supported
		{"NaN", 0},
		{"Inf", 0},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.raw); got != tt.want {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCeilForecast(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"12,5", 13},
		{"12.0", 12},
		{"0", 0},
		{"-3", 0},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		if got := CeilForecast(tt.raw); got != tt.want {
			t.Errorf("CeilForecast(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestCeilForecastIdempotent(t *testing.T) {
	first := CeilForecast("12,5")
	if second := CeilForecast("13"); second != first {
		t.Fatalf("re-normalizing a ceiled forecast changed it: %d -> %d", first, second)
	}
}

func testMapping() mapping.Mapping {
	return mapping.Mapping{
		mapping.FieldEAN:           "EAN",
		mapping.FieldTitle:         "Titel",
		mapping.FieldFreeStock:     "Voorraad",
		mapping.FieldSalesTotal:    "Verkopen",
		mapping.FieldForecastMin4W: "Prognose",
	}
}

func TestRows(t *testing.T) {
	table, err := tabular.New(
		[]string{"EAN", "Titel", "Voorraad", "Verkopen", "Prognose"},
		[][]string{
			{"8711234567890", "Mok blauw", "4,5", "12", "3,2"},
			{"", "geen ean", "1", "1", "1"},
			{"  8719876543210 ", "Mok rood", "-2", "onzin", "10"},
		},
	)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}

	records, err := Rows(table, testMapping())
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("Rows returned %d records, want 2 (empty EAN dropped)", len(records))
	}

	first := records[0]
	if first.EAN != "8711234567890" || first.FreeStock != 4.5 || first.ForecastMin4W != 4 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if first.Position != 0 {
		t.Fatalf("first record position = %d, want 0", first.Position)
	}

	second := records[1]
	if second.EAN != "8719876543210" {
		t.Fatalf("EAN not trimmed: %q", second.EAN)
	}
	if second.FreeStock != 0 {
		t.Fatalf("negative stock not floored: %v", second.FreeStock)
	}
	if second.SalesTotal != 0 {
		t.Fatalf("garbage sales not coerced to 0: %v", second.SalesTotal)
	}
	if second.Position != 1 {
		t.Fatalf("second record position = %d, want 1", second.Position)
	}
}

func TestRowsOptionalReference(t *testing.T) {
	table, err := tabular.New(
		[]string{"EAN", "Ref", "Titel", "Voorraad", "Verkopen", "Prognose"},
		[][]string{{"871", " A-1 ", "Mok", "1", "2", "3"}},
	)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}

	m := testMapping()
	m[mapping.FieldReference] = "Ref"

	records, err := Rows(table, m)
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if records[0].Reference != "A-1" {
		t.Fatalf("reference = %q, want %q", records[0].Reference, "A-1")
	}
}

func TestRowsIncompleteMapping(t *testing.T) {
	table, err := tabular.New(
		[]string{"EAN", "Titel"},
		[][]string{{"871", "Mok"}},
	)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}

	_, err = Rows(table, mapping.Mapping{
		mapping.FieldEAN:   "EAN",
		mapping.FieldTitle: "Titel",
	})

	var fieldErr *mapping.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Rows with incomplete mapping returned %v, want *mapping.FieldError", err)
	}
}

func TestRowsMappingToMissingHeader(t *testing.T) {
	table, err := tabular.New(
		[]string{"EAN", "Titel", "Voorraad", "Verkopen", "Prognose"},
		[][]string{{"871", "Mok", "1", "2", "3"}},
	)
	if err != nil {
		t.Fatalf("tabular.New: %v", err)
	}

	m := testMapping()
	m[mapping.FieldFreeStock] = "Bestaat Niet"

	_, err = Rows(table, m)
	var fieldErr *mapping.FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Rows with dangling mapping returned %v, want *mapping.FieldError", err)
	}
}
