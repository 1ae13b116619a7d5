package mapping

import (
	"fmt"
	"strings"
)

// Field identifies one canonical column of the stock schema.
type Field string

const (
	FieldEAN           Field = "ean"
	FieldReference     Field = "reference"
	FieldTitle         Field = "title"
	FieldFreeStock     Field = "free_stock"
	FieldSalesTotal    Field = "sales_total"
	FieldForecastMin4W Field = "forecast_min_4w"
)

// Mapping maps canonical fields to the raw header that supplies them.
// The mapping is partial: unresolved fields are simply absent.
type Mapping map[Field]string

type matchKind int

const (
	matchExact matchKind = iota
	matchContains
	matchAll // every term must appear as a substring
)

type pattern struct {
	kind  matchKind
	terms []string
}

func exact(term string) pattern    { return pattern{kind: matchExact, terms: []string{term}} }
func contains(term string) pattern { return pattern{kind: matchContains, terms: []string{term}} }
func all(terms ...string) pattern  { return pattern{kind: matchAll, terms: terms} }

// fieldOrder fixes the iteration order so the result is deterministic.
var fieldOrder = []Field{
	FieldEAN,
	FieldReference,
	FieldTitle,
	FieldFreeStock,
	FieldSalesTotal,
	FieldForecastMin4W,
}

// patterns holds, per canonical field, the ordered heuristics tried against
// each sanitized header. The vocabulary covers the Dutch export headers the
// tool was built for plus synonyms seen in common export tools. First
// pattern that matches any header wins; ties between headers are broken by
// pattern order, not header position.
var patterns = map[Field][]pattern{
	FieldEAN: {
		exact("ean"),
		contains("gtin"),
		contains("upc"),
		contains("barcode"),
		contains("artikelnummer"),
		contains("artikelnr"),
		all("product", "code"),
	},
	FieldReference: {
		exact("referentie"),
		exact("ref"),
		contains("referentie"),
		contains("reference"),
		contains("sku"),
	},
	FieldTitle: {
		exact("titel"),
		exact("productnaam"),
		exact("naam"),
		contains("titel"),
		contains("title"),
		contains("omschrijving"),
	},
	FieldFreeStock: {
		all("vrije", "voorraad"),
		exact("voorraad"),
		all("beschikbaar", "voorraad"),
		contains("voorraad"),
		contains("stock"),
		contains("available"),
	},
	FieldSalesTotal: {
		all("verkopen", "totaal"),
		all("sales", "total"),
		contains("verkopen"),
	},
	FieldForecastMin4W: {
		all("verkoopprognose", "4w"),
		all("prognose", "4w"),
		all("forecast", "4"),
		contains("verkoopprognose"),
		contains("prognose"),
		contains("forecast"),
	},
}

var headerSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "", "(", "", ")", "")

func sanitizeHeader(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return headerSanitizer.Replace(name)
}

func (p pattern) matches(sanitized string) bool {
	switch p.kind {
	case matchExact:
		return sanitized == p.terms[0]
	case matchContains:
		return strings.Contains(sanitized, p.terms[0])
	case matchAll:
		for _, term := range p.terms {
			if !strings.Contains(sanitized, term) {
				return false
			}
		}
		return true
	}
	return false
}

// MapColumns guesses which raw header supplies each canonical field. Headers
// are compared after trimming, lower-casing and stripping separators, so
// "Vrije Voorraad" and "vrije_voorraad" resolve identically. The result is
// deterministic for a given header list.
func MapColumns(headers []string) Mapping {
	sanitized := make([]string, len(headers))
	for i, h := range headers {
		sanitized[i] = sanitizeHeader(h)
	}

	result := make(Mapping)
	for _, field := range fieldOrder {
		for _, p := range patterns[field] {
			found := -1
			for i, s := range sanitized {
				if s == "" {
					continue
				}
				if p.matches(s) {
					found = i
					break
				}
			}
			if found >= 0 {
				result[field] = strings.TrimSpace(headers[found])
				break
			}
		}
	}

	return result
}

// MandatoryFields lists the fields a mapping must resolve before
// normalization may run. Reference is the only optional field.
func MandatoryFields() []Field {
	return []Field{FieldEAN, FieldTitle, FieldFreeStock, FieldSalesTotal, FieldForecastMin4W}
}

// FieldError reports the canonical fields that could not be resolved to a
// header. It blocks normalization; nothing is partially committed.
type FieldError struct {
	Fields []Field
}

func (e *FieldError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	return fmt.Sprintf("no column resolved for: %s", strings.Join(names, ", "))
}

// Validate checks that every mandatory field is resolved and points at a
// non-empty header.
func (m Mapping) Validate() error {
	var missing []Field
	for _, field := range MandatoryFields() {
		if strings.TrimSpace(m[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &FieldError{Fields: missing}
	}
	return nil
}
