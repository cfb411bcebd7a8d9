// Package spreadsheet reads uploaded .xlsx workbooks into typed cell values.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrMissingColumn = errors.New("missing required column")

// MissingColumnError reports a header that the first sheet lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("XLSX must contain '%s' columns", e.Column)
}

func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// Table is the first sheet of a workbook. The first row is the header,
// every following row is data. Cell values are string, float64, bool or nil.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]any
}

// Read parses the first sheet of an .xlsx workbook.
func Read(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := sheets[0]

	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	t := &Table{Sheet: sheet}
	if len(raw) == 0 {
		return t, nil
	}

	t.Header = make([]string, len(raw[0]))
	for i, h := range raw[0] {
		t.Header[i] = strings.TrimSpace(h)
	}

	t.Rows = make([][]any, 0, len(raw)-1)
	for i, row := range raw[1:] {
		values := make([]any, len(row))
		for col, value := range row {
			// +1 for the header, +1 because cell rows are 1-based
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to read cell %s: %w", cell, err)
			}
			values[col] = typedValue(typ, value)
		}
		t.Rows = append(t.Rows, values)
	}

	return t, nil
}

// typedValue converts a raw cell string into the value a dataframe reader
// would produce for it: text stays text, everything else is not text.
func typedValue(typ excelize.CellType, raw string) any {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return raw
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeError:
		return nil
	}

	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}

// ColumnIndex returns the position of name in the header.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, &MissingColumnError{Column: name}
}

// Column returns one value per data row for the named column. Rows that
// end before the column yield nil, so the result always has len(t.Rows).
func (t *Table) Column(name string) ([]any, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, nil
}
