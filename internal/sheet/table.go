// Package sheet loads and writes the delimited tabular files the pipeline
// works on: loose-encoding CSV exports and the Excel workbooks they came
// from. Files are small enough to hold in memory as a header plus rows.
package sheet

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Table is an in-memory tabular file: a header row and data rows. Rows may
// be ragged on read; accessors treat missing trailing cells as empty.
type Table struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the index of the named column, or -1 if absent.
// Header cells are matched after trimming surrounding whitespace.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is short.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// DropColumns removes the named columns where present and returns how many
// were actually dropped.
func (t *Table) DropColumns(names ...string) int {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		if idx := t.ColumnIndex(name); idx >= 0 {
			drop[idx] = true
		}
	}
	if len(drop) == 0 {
		return 0
	}

	t.Header = filterCells(t.Header, drop)
	for i, row := range t.Rows {
		t.Rows[i] = filterCells(row, drop)
	}
	return len(drop)
}

// Select returns a new table restricted to the named columns, in the given
// order. Missing columns are an error naming the columns actually present.
func (t *Table) Select(names ...string) (*Table, error) {
	indices := make([]int, len(names))
	var missing []string
	for i, name := range names {
		indices[i] = t.ColumnIndex(name)
		if indices[i] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("sheet: missing required columns %v (available: %v)", missing, t.Columns())
	}

	out := &Table{Header: append([]string(nil), names...)}
	for _, row := range t.Rows {
		selected := make([]string, len(indices))
		for i, idx := range indices {
			selected[i] = t.Cell(row, idx)
		}
		out.Rows = append(out.Rows, selected)
	}
	return out, nil
}

// Columns returns the trimmed header names.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.Header))
	for i, h := range t.Header {
		cols[i] = strings.TrimSpace(h)
	}
	return cols
}

func filterCells(cells []string, drop map[int]bool) []string {
	out := make([]string, 0, len(cells))
	for i, c := range cells {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}
