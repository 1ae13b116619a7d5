package tabular

import (
	"fmt"
	"strings"
)

// Table is the typed boundary between file parsing and the reconciliation
// engine: string headers, string cells, rectangular. Malformed input is
// rejected here instead of being reshaped downstream.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New validates and builds a Table. Headers are trimmed; every row must have
// exactly as many cells as there are headers.
func New(headers []string, rows [][]string) (*Table, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	trimmed := make([]string, len(headers))
	for i, h := range headers {
		trimmed[i] = strings.TrimSpace(h)
	}

	for i, row := range rows {
		if len(row) != len(trimmed) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(trimmed))
		}
	}

	return &Table{Headers: trimmed, Rows: rows}, nil
}

// Column returns the index of the given header, or -1 when absent.
// Comparison is exact after trimming, matching how headers were stored.
func (t *Table) Column(header string) int {
	target := strings.TrimSpace(header)
	for i, h := range t.Headers {
		if h == target {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), or "" when col is out of range.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Head returns up to n data rows, for upload previews.
func (t *Table) Head(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}
