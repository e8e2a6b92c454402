// Package grid implements the mutable rune-matrix that every detection and
// correction stage operates on.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"gridfix/core"
)

// Common errors.
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidGrid = errors.New("invalid grid input")
)

// Grid is a rectangular rune matrix of fixed dimensions.
//
// Every row has exactly Width runes at all times. Out-of-range reads and
// writes return ErrOutOfBounds rather than clamping. A Grid is constructed
// once from input text and mutated only through the correction applier's
// copy; detection stages treat it as read-only.
//
// Grid is not safe for concurrent writes. Concurrent calls into the
// correction engine are safe because the engine never mutates its input,
// only a private copy.
type Grid struct {
	cells  [][]rune
	width  int
	height int
}

// New creates an empty grid of the given dimensions, filled with spaces.
func New(width, height int) *Grid {
	if width < 0 || height < 0 {
		return nil
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &Grid{cells: cells, width: width, height: height}
}

// FromText parses newline-delimited text into a grid. Short rows are
// right-padded with spaces to the longest row's width. Control characters
// in the input cannot be resolved by padding and fail the parse.
func FromText(text string) (*Grid, error) {
	if text == "" {
		return New(0, 0), nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	width := 0
	for _, line := range lines {
		n := 0
		for _, r := range line {
			if r < 0x20 && r != '\t' || r == 0x7F {
				return nil, fmt.Errorf("%w: control character %q", ErrInvalidGrid, r)
			}
			n++
		}
		if n > width {
			width = n
		}
	}

	g := New(width, len(lines))
	for y, line := range lines {
		x := 0
		for _, r := range line {
			g.cells[y][x] = r
			x++
		}
	}
	return g, nil
}

// Size returns the width and height of the grid.
func (g *Grid) Size() (width, height int) {
	return g.width, g.height
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Contains reports whether the position is within grid bounds.
func (g *Grid) Contains(p core.Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// Get returns the rune at the given position.
func (g *Grid) Get(p core.Position) (rune, error) {
	if !g.Contains(p) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	return g.cells[p.Row][p.Col], nil
}

// RuneAt returns the rune at the given position, or ' ' out of bounds.
// Detection sweeps use this; mutation paths use Get/Set which reject
// out-of-range positions.
func (g *Grid) RuneAt(p core.Position) rune {
	if !g.Contains(p) {
		return ' '
	}
	return g.cells[p.Row][p.Col]
}

// CellAt returns the classified cell at the position and whether the
// position is in bounds.
func (g *Grid) CellAt(p core.Position) (Cell, bool) {
	if !g.Contains(p) {
		return Cell{}, false
	}
	return NewCell(p, g.cells[p.Row][p.Col]), true
}

// Set places a rune at the given position.
func (g *Grid) Set(p core.Position, r rune) error {
	if !g.Contains(p) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.Row, p.Col)
	}
	g.cells[p.Row][p.Col] = r
	return nil
}

// Clear resets the cell at the position to a space.
func (g *Grid) Clear(p core.Position) error {
	return g.Set(p, ' ')
}

// Row returns the classified cells of one row, left to right.
func (g *Grid) Row(row int) ([]Cell, error) {
	if row < 0 || row >= g.height {
		return nil, fmt.Errorf("%w: row %d", ErrOutOfBounds, row)
	}
	cells := make([]Cell, g.width)
	for col := 0; col < g.width; col++ {
		cells[col] = NewCell(core.Position{Row: row, Col: col}, g.cells[row][col])
	}
	return cells, nil
}

// Col returns the classified cells of one column, top to bottom.
func (g *Grid) Col(col int) ([]Cell, error) {
	if col < 0 || col >= g.width {
		return nil, fmt.Errorf("%w: col %d", ErrOutOfBounds, col)
	}
	cells := make([]Cell, g.height)
	for row := 0; row < g.height; row++ {
		cells[row] = NewCell(core.Position{Row: row, Col: col}, g.cells[row][col])
	}
	return cells, nil
}

// Copy returns a deep copy with independent backing storage.
func (g *Grid) Copy() *Grid {
	dup := New(g.width, g.height)
	for y := range g.cells {
		copy(dup.cells[y], g.cells[y])
	}
	return dup
}

// String renders the grid as newline-delimited text. Rows keep their full
// padded width so that parsing and rendering round-trip exactly.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[y][x])
		}
	}
	return sb.String()
}

// Equal reports whether two grids have identical dimensions and content.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}
