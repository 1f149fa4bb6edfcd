package types

import (
	"strconv"
	"strings"
)

// Cell is a single extracted table value. The zero value is the empty cell,
// which is distinct from any populated cell, including "0".
type Cell struct {
	String string
	Valid  bool
}

// NewCell returns a populated cell.
func NewCell(s string) Cell {
	return Cell{String: s, Valid: true}
}

// Empty reports whether the cell holds no value.
func (c Cell) Empty() bool {
	return !c.Valid
}

// Row is a fixed-arity sequence of cells, one per table column.
type Row []Cell

// RowFromStrings normalizes raw extracted values into a row. Empty strings
// and the literal "NaN" some tabular extractors emit for missing cells
// become empty cells.
func RowFromStrings(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		if v == "" || v == "NaN" {
			continue
		}
		row[i] = NewCell(v)
	}
	return row
}

// Cell returns the i'th cell, or the empty cell when the row is shorter.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r) {
		return Cell{}
	}
	return r[i]
}

// String renders the row for error messages, with "_" for empty cells.
func (r Row) String() string {
	parts := make([]string, len(r))
	for i, c := range r {
		if c.Empty() {
			parts[i] = "_"
		} else {
			parts[i] = strconv.Quote(c.String)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
