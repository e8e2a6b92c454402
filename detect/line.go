// Package detect finds the structural artifacts of a diagram: line
// segments, boxes, parallel groups, and the overall topology. All
// artifacts are recomputed per run and never outlive the result they
// were produced for.
package detect

import (
	"gridfix/core"
	"gridfix/grid"
)

// Line is an ordered run of structurally-contiguous cells sharing one
// direction. Cells are ordered by the sweep that produced them: left to
// right, top to bottom, or along the diagonal.
type Line struct {
	Cells     []grid.Cell
	Direction core.Direction
}

// Start returns the first position of the line.
func (l Line) Start() core.Position {
	return l.Cells[0].Pos
}

// End returns the last position of the line.
func (l Line) End() core.Position {
	return l.Cells[len(l.Cells)-1].Pos
}

// Length returns the number of cells in the line.
func (l Line) Length() int {
	return len(l.Cells)
}

// DominantRow returns the row a horizontal line occupies. Only meaningful
// for horizontal lines; all cells share the row.
func (l Line) DominantRow() int {
	return l.Cells[0].Pos.Row
}

// DominantCol returns the column a vertical line occupies.
func (l Line) DominantCol() int {
	return l.Cells[0].Pos.Col
}

// DominantCoord returns the line's position along the axis perpendicular
// to its direction: row for horizontal lines, column for vertical ones.
func (l Line) DominantCoord() int {
	if l.Direction == core.Horizontal {
		return l.DominantRow()
	}
	return l.DominantCol()
}

// Span returns the extent of the line along its own axis: columns for
// horizontal lines, rows for vertical ones.
func (l Line) Span() (start, end int) {
	if l.Direction == core.Horizontal {
		return l.Start().Col, l.End().Col
	}
	return l.Start().Row, l.End().Row
}

// OffsetFrom returns the signed dominant-coordinate distance from another
// parallel line. Positive means this line sits below or right of other.
func (l Line) OffsetFrom(other Line) int {
	return l.DominantCoord() - other.DominantCoord()
}

// overlapRatio returns the fraction of the shorter line's span that
// coincides with the other line's span.
func overlapRatio(a, b Line) float64 {
	aStart, aEnd := a.Span()
	bStart, bEnd := b.Span()

	overlap := core.Min(aEnd, bEnd) - core.Max(aStart, bStart) + 1
	if overlap < 0 {
		overlap = 0
	}
	shorter := core.Min(aEnd-aStart+1, bEnd-bStart+1)
	if shorter == 0 {
		return 0
	}
	return float64(overlap) / float64(shorter)
}
