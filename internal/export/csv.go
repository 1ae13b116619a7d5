package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// WriteCSV serializes the enriched rows as comma-delimited text. The
// Referentie column is included only when at least one row has a reference.
func WriteCSV(w io.Writer, rows []domain.EnrichedRow) error {
	withReference := HasReferences(rows)

	writer := csv.NewWriter(w)
	if err := writer.Write(Headers(withReference)); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for _, row := range rows {
		if err := writer.Write(record(row, withReference)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.EAN, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
