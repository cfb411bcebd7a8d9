package spreadsheet

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes rows into the default sheet and returns the xlsx bytes.
func buildWorkbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatal(err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestReadTypedColumn(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"id", "content"},
		{1, "Pelayanan bagus"},
		{2, 12.5},
		{3, true},
		{4, nil},
		{5, "Kecewa!"},
	})

	table, err := Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if table.Sheet != "Sheet1" {
		t.Fatalf("unexpected sheet %q", table.Sheet)
	}

	values, err := table.Column("content")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if len(values) != 5 {
		t.Fatalf("expected 5 values, got %d: %#v", len(values), values)
	}
	if values[0] != "Pelayanan bagus" {
		t.Errorf("[0] = %#v", values[0])
	}
	if values[1] != 12.5 {
		t.Errorf("[1] = %#v, want float 12.5", values[1])
	}
	if values[2] != true {
		t.Errorf("[2] = %#v, want true", values[2])
	}
	if values[3] != nil {
		t.Errorf("[3] = %#v, want nil", values[3])
	}
	if values[4] != "Kecewa!" {
		t.Errorf("[4] = %#v", values[4])
	}
}

func TestColumnMissing(t *testing.T) {
	buf := buildWorkbook(t, [][]any{
		{"text"},
		{"halo"},
	})

	table, err := Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	_, err = table.Column("content")
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
	if !strings.Contains(err.Error(), "must contain 'content'") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestReadHeaderOnly(t *testing.T) {
	buf := buildWorkbook(t, [][]any{{" content "}})

	table, err := Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	values, err := table.Column("content")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("expected no values, got %v", values)
	}
}

func TestReadRejectsNonWorkbook(t *testing.T) {
	if _, err := Read(strings.NewReader("id,content\n1,halo\n")); err == nil {
		t.Fatal("expected error for csv input")
	}
}

func TestTypedValue(t *testing.T) {
	tests := []struct {
		typ  excelize.CellType
		raw  string
		want any
	}{
		{excelize.CellTypeSharedString, "42", "42"},
		{excelize.CellTypeInlineString, "halo", "halo"},
		{excelize.CellTypeFormula, "hasil", "hasil"},
		{excelize.CellTypeBool, "0", false},
		{excelize.CellTypeError, "#N/A", nil},
		{excelize.CellTypeUnset, "", nil},
		{excelize.CellTypeUnset, "3", 3.0},
		{excelize.CellTypeNumber, "1e3", 1000.0},
		{excelize.CellTypeUnset, "abc", "abc"},
	}

	for _, tt := range tests {
		if got := typedValue(tt.typ, tt.raw); got != tt.want {
			t.Errorf("typedValue(%v, %q) = %#v, want %#v", tt.typ, tt.raw, got, tt.want)
		}
	}
}
