package tabular

import (
	"reflect"
	"strings"
	"testing"
)

func TestReadCSVPadsShortRecords(t *testing.T) {
	input := "EAN,Titel,Voorraad\n871,Mok\n872,Beker,5\n"

	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}

	if !reflect.DeepEqual(table.Headers, []string{"EAN", "Titel", "Voorraad"}) {
		t.Fatalf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if got := table.Rows[0]; !reflect.DeepEqual(got, []string{"871", "Mok", ""}) {
		t.Fatalf("short row not padded: %v", got)
	}
}

func TestNewRejectsRaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, [][]string{{"1", "2", "3"}})
	if err == nil {
		t.Fatal("New accepted a ragged row")
	}
}

func TestNewRejectsEmptyHeaders(t *testing.T) {
	if _, err := New(nil, nil); err == nil {
		t.Fatal("New accepted a table without headers")
	}
}

func TestColumnTrimsHeader(t *testing.T) {
	table, err := New([]string{" EAN ", "Titel"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := table.Column("EAN"); got != 0 {
		t.Fatalf("Column(EAN) = %d, want 0", got)
	}
	if got := table.Column("  Titel "); got != 1 {
		t.Fatalf("Column with padded lookup = %d, want 1", got)
	}
	if got := table.Column("nope"); got != -1 {
		t.Fatalf("Column(nope) = %d, want -1", got)
	}
}

func TestHead(t *testing.T) {
	table, err := New([]string{"a"}, [][]string{{"1"}, {"2"}, {"3"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got := table.Head(2); len(got) != 2 {
		t.Fatalf("Head(2) = %d rows", len(got))
	}
	if got := table.Head(10); len(got) != 3 {
		t.Fatalf("Head(10) = %d rows, want all 3", len(got))
	}
}

func TestCellOutOfRange(t *testing.T) {
	table, err := New([]string{"a", "b"}, [][]string{{"1", "2"}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	row := table.Rows[0]
	if got := table.Cell(row, -1); got != "" {
		t.Fatalf("Cell(-1) = %q, want empty", got)
	}
	if got := table.Cell(row, 5); got != "" {
		t.Fatalf("Cell(5) = %q, want empty", got)
	}
	if got := table.Cell(row, 1); got != "2" {
		t.Fatalf("Cell(1) = %q, want 2", got)
	}
}
