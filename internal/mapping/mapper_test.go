package mapping

import (
	"errors"
	"reflect"
	"testing"
)

func TestMapColumnsDutchExport(t *testing.T) {
	headers := []string{
		"EAN",
		"Referentie",
		"Titel",
		"Vrije voorraad",
		"Verkopen (Totaal)",
		"Verkoopprognose min (Totaal 4w)",
	}

	got := MapColumns(headers)
	want := Mapping{
		FieldEAN:           "EAN",
		FieldReference:     "Referentie",
		FieldTitle:         "Titel",
		FieldFreeStock:     "Vrije voorraad",
		FieldSalesTotal:    "Verkopen (Totaal)",
		FieldForecastMin4W: "Verkoopprognose min (Totaal 4w)",
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("MapColumns() = %v, want %v", got, want)
	}
}

func TestMapColumnsSeparatorInsensitive(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		field   Field
		want    string
	}{
		{"underscores", []string{"vrije_voorraad"}, FieldFreeStock, "vrije_voorraad"},
		{"mixed case", []string{"Vrije Voorraad"}, FieldFreeStock, "Vrije Voorraad"},
		{"gtin synonym", []string{"GTIN-13"}, FieldEAN, "GTIN-13"},
		{"barcode synonym", []string{"Barcode"}, FieldEAN, "Barcode"},
		{"sku as reference", []string{"SKU"}, FieldReference, "SKU"},
		{"english forecast", []string{"Forecast 4 weeks"}, FieldForecastMin4W, "Forecast 4 weeks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapColumns(tt.headers)
			if got[tt.field] != tt.want {
				t.Fatalf("MapColumns(%v)[%s] = %q, want %q", tt.headers, tt.field, got[tt.field], tt.want)
			}
		})
	}
}

func TestMapColumnsPatternOrderWins(t *testing.T) {
	// Both headers contain "voorraad"; the exact "voorraad" pattern ranks
	// above the contains fallback, so the plain header wins even though the
	// composite one appears first.
	headers := []string{"Magazijnvoorraad", "Voorraad"}
	got := MapColumns(headers)
	if got[FieldFreeStock] != "Voorraad" {
		t.Fatalf("MapColumns(%v)[free_stock] = %q, want %q", headers, got[FieldFreeStock], "Voorraad")
	}
}

func TestMapColumnsDeterministic(t *testing.T) {
	headers := []string{"EAN", "Titel", "Voorraad", "Verkopen totaal", "Prognose 4w"}
	first := MapColumns(headers)
	for i := 0; i < 10; i++ {
		if got := MapColumns(headers); !reflect.DeepEqual(got, first) {
			t.Fatalf("MapColumns() not deterministic: run %d gave %v, first gave %v", i, got, first)
		}
	}
}

func TestValidateMissingFields(t *testing.T) {
	m := Mapping{
		FieldEAN:   "EAN",
		FieldTitle: "Titel",
	}

	err := m.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want *FieldError")
	}

	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("Validate() returned %T, want *FieldError", err)
	}

	want := []Field{FieldFreeStock, FieldSalesTotal, FieldForecastMin4W}
	if !reflect.DeepEqual(fieldErr.Fields, want) {
		t.Fatalf("FieldError.Fields = %v, want %v", fieldErr.Fields, want)
	}
}

func TestValidateReferenceOptional(t *testing.T) {
	m := Mapping{
		FieldEAN:           "EAN",
		FieldTitle:         "Titel",
		FieldFreeStock:     "Voorraad",
		FieldSalesTotal:    "Verkopen",
		FieldForecastMin4W: "Prognose",
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}
