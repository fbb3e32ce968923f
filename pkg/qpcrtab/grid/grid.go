// Package grid provides the in-memory 2-D cell grid that all extractors
// operate on.
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnreadableSource indicates the input could not be parsed as
// tabular data.
var ErrUnreadableSource = errors.New("source is not readable as tabular data")

// ErrOutOfBounds indicates a cell address beyond the grid's declared
// rectangular bound.
var ErrOutOfBounds = errors.New("cell address out of bounds")

// Cell is a single grid position holding a raw value plus its
// coordinates. Coordinates are 0-based. An empty Value means an empty
// cell.
type Cell struct {
	Row   int
	Col   int
	Value string
}

// IsEmpty reports whether the cell holds no value. Cells containing
// only whitespace count as empty.
func (c Cell) IsEmpty() bool {
	return strings.TrimSpace(c.Value) == ""
}

// Grid is a read-only rectangular collection of cells for one sheet.
// Ragged input rows are padded with empty cells on construction.
type Grid struct {
	rows [][]string
	cols int
}

// New builds a grid from raw row data, padding ragged rows to the
// widest row so the grid is rectangular.
func New(rows [][]string) *Grid {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		padded[i] = make([]string, cols)
		copy(padded[i], row)
	}
	return &Grid{rows: padded, cols: cols}
}

// NumRows returns the number of rows in the grid.
func (g *Grid) NumRows() int {
	return len(g.rows)
}

// NumCols returns the number of columns in the grid.
func (g *Grid) NumCols() int {
	return g.cols
}

// Cell returns the cell at (row, col). In-bound empty addresses return
// an empty-value cell; addresses beyond the declared bound return
// ErrOutOfBounds.
func (g *Grid) Cell(row, col int) (Cell, error) {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.cols {
		return Cell{}, fmt.Errorf("%w: (%d, %d) outside %dx%d", ErrOutOfBounds, row, col, len(g.rows), g.cols)
	}
	return Cell{Row: row, Col: col, Value: g.rows[row][col]}, nil
}

// Value returns the raw value at (row, col), or the empty string for
// any out-of-bound address. Extractor scan loops use this to treat the
// grid edge like a blank separator.
func (g *Grid) Value(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.cols {
		return ""
	}
	return g.rows[row][col]
}

// Rows returns the grid as row-major cell sequences. The result is a
// fresh slice on every call so callers can iterate independently.
func (g *Grid) Rows() [][]Cell {
	out := make([][]Cell, len(g.rows))
	for r, row := range g.rows {
		cells := make([]Cell, len(row))
		for c, v := range row {
			cells[c] = Cell{Row: r, Col: c, Value: v}
		}
		out[r] = cells
	}
	return out
}

// Columns returns the grid as column-major cell sequences.
func (g *Grid) Columns() [][]Cell {
	out := make([][]Cell, g.cols)
	for c := 0; c < g.cols; c++ {
		cells := make([]Cell, len(g.rows))
		for r := range g.rows {
			cells[r] = Cell{Row: r, Col: c, Value: g.rows[r][c]}
		}
		out[c] = cells
	}
	return out
}

// Transpose returns a new grid with rows and columns swapped. Used when
// datasets are laid out side by side instead of stacked.
func (g *Grid) Transpose() *Grid {
	rows := make([][]string, g.cols)
	for c := 0; c < g.cols; c++ {
		rows[c] = make([]string, len(g.rows))
		for r := range g.rows {
			rows[c][r] = g.rows[r][c]
		}
	}
	return &Grid{rows: rows, cols: len(g.rows)}
}

// Find returns the coordinates of all cells whose trimmed value equals
// the given text, in row-major order.
func (g *Grid) Find(value string) []Cell {
	var found []Cell
	for r, row := range g.rows {
		for c, v := range row {
			if strings.TrimSpace(v) == value {
				found = append(found, Cell{Row: r, Col: c, Value: v})
			}
		}
	}
	return found
}
