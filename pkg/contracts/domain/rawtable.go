package domain

import (
	"strings"
)

// RawTable is the two-dimensional cell grid produced by the table decoder.
// Cells are stored as trimmed strings; the empty string is the explicit
// empty-cell marker. A RawTable is never mutated after decoding.
type RawTable struct {
	Cells  [][]string `json:"cells"`
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Source string     `json:"source"` // decoder path that produced the grid, e.g. "excelize:Sheet1" or "delimited:comma"
}

// NewRawTable builds a RawTable from a cell grid, padding ragged rows so
// that every row has the same column count.
func NewRawTable(cells [][]string, source string) *RawTable {
	cols := 0
	for _, row := range cells {
		if len(row) > cols {
			cols = len(row)
		}
	}
	for i, row := range cells {
		for len(row) < cols {
			row = append(row, "")
		}
		cells[i] = row
	}
	return &RawTable{
		Cells:  cells,
		Rows:   len(cells),
		Cols:   cols,
		Source: source,
	}
}

// Cell returns the trimmed cell value at (row, col), or the empty marker
// when the coordinates fall outside the grid.
func (t *RawTable) Cell(row, col int) string {
	if t == nil || row < 0 || row >= t.Rows || col < 0 || col >= t.Cols {
		return ""
	}
	return strings.TrimSpace(t.Cells[row][col])
}

// NonEmptyCells counts cells carrying a non-empty value.
func (t *RawTable) NonEmptyCells() int {
	if t == nil {
		return 0
	}
	n := 0
	for r := 0; r < t.Rows; r++ {
		for c := 0; c < t.Cols; c++ {
			if t.Cell(r, c) != "" {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether the grid contains no usable data.
func (t *RawTable) IsEmpty() bool {
	return t.NonEmptyCells() == 0
}
