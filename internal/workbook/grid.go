// Package workbook gives positional, typed access to the raw cell grids of a
// bulletin workbook: resolving the sheet behind a logical name, addressing
// cells by row/column, and slicing anchor-bounded sections out of the grid.
package workbook

import (
	"strings"
)

// Grid is the raw, 0-indexed, row-major cell grid of one sheet. No header
// row is assumed reliable; rows are addressed by position only. Ragged rows
// (shorter than their neighbors) read as empty cells past their end.
type Grid struct {
	rows [][]string
}

// NewGrid wraps the given rows. The slice is retained, not copied; grids are
// transient per date/sheet.
func NewGrid(rows [][]string) Grid {
	return Grid{rows: rows}
}

// RowCount returns the number of rows in the grid.
func (g Grid) RowCount() int {
	return len(g.rows)
}

// Row returns the raw cells of one row, nil when out of range.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g.rows) {
		return nil
	}
	return g.rows[row]
}

// AsText returns the trimmed text of a cell, empty for out-of-range
// addresses.
func (g Grid) AsText(row, col int) string {
	if row < 0 || row >= len(g.rows) {
		return ""
	}
	r := g.rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// AsNumber returns the cell parsed as a number, zero for empty, NaN-like, or
// unparseable content. Thousands separators and parenthesized negatives are
// tolerated.
func (g Grid) AsNumber(row, col int) float64 {
	n, _ := ParseNumber(g.AsText(row, col))
	return n
}
