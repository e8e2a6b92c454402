package detect

import (
	"gridfix/core"
	"gridfix/grid"
)

// LineDetector finds maximal runs of line characters in all four sweep
// directions. Each sweep claims a cell at most once, but a cell may be
// claimed by different sweeps (a corner belongs to both a horizontal and
// a vertical line).
type LineDetector struct {
	minLineLength int
}

// NewLineDetector creates a detector. Runs shorter than minLineLength are
// discarded.
func NewLineDetector(minLineLength int) *LineDetector {
	if minLineLength < 1 {
		minLineLength = 1
	}
	return &LineDetector{minLineLength: minLineLength}
}

// DetectLines scans rows, columns, and both diagonal directions.
// Cost is linear in cell count per sweep.
func (d *LineDetector) DetectLines(g *grid.Grid) []Line {
	width, height := g.Size()
	if width == 0 || height == 0 {
		return nil
	}

	var lines []Line
	lines = append(lines, d.sweep(g, core.Horizontal)...)
	lines = append(lines, d.sweep(g, core.Vertical)...)
	lines = append(lines, d.sweepDiagonal(g, core.DiagonalDown)...)
	lines = append(lines, d.sweepDiagonal(g, core.DiagonalUp)...)
	return lines
}

// memberClass returns the class a run of the given direction is made of.
func memberClass(dir core.Direction) core.CharClass {
	switch dir {
	case core.Horizontal:
		return core.ClassHorizontal
	case core.Vertical:
		return core.ClassVertical
	case core.DiagonalUp:
		return core.ClassDiagonalUp
	default:
		return core.ClassDiagonalDown
	}
}

// sweep accumulates maximal horizontal or vertical runs.
func (d *LineDetector) sweep(g *grid.Grid, dir core.Direction) []Line {
	width, height := g.Size()
	want := memberClass(dir)

	outer, inner := height, width
	at := func(o, i int) core.Position { return core.Position{Row: o, Col: i} }
	if dir == core.Vertical {
		outer, inner = width, height
		at = func(o, i int) core.Position { return core.Position{Row: i, Col: o} }
	}

	var lines []Line
	for o := 0; o < outer; o++ {
		var run []grid.Cell
		for i := 0; i <= inner; i++ {
			var cell grid.Cell
			ok := false
			if i < inner {
				cell, ok = g.CellAt(at(o, i))
			}
			if ok && cell.Class == want {
				run = append(run, cell)
				continue
			}
			if len(run) >= d.minLineLength {
				lines = append(lines, Line{Cells: run, Direction: dir})
			}
			run = nil
		}
	}
	return lines
}

// sweepDiagonal accumulates runs along the two diagonal directions.
// DiagonalDown runs step (+1,+1); DiagonalUp runs step (+1,-1), so an
// up-diagonal line is stored top-right to bottom-left.
func (d *LineDetector) sweepDiagonal(g *grid.Grid, dir core.Direction) []Line {
	width, height := g.Size()
	want := memberClass(dir)

	dCol := 1
	if dir == core.DiagonalUp {
		dCol = -1
	}

	var lines []Line
	trace := func(start core.Position) {
		var run []grid.Cell
		p := start
		for {
			cell, ok := g.CellAt(p)
			if ok && cell.Class == want {
				run = append(run, cell)
			} else {
				if len(run) >= d.minLineLength {
					lines = append(lines, Line{Cells: run, Direction: dir})
				}
				run = nil
			}
			if !ok {
				break
			}
			p = p.Offset(1, dCol)
		}
	}

	// Every diagonal starts on the top row or on a side column.
	for col := 0; col < width; col++ {
		trace(core.Position{Row: 0, Col: col})
	}
	if dir == core.DiagonalDown {
		for row := 1; row < height; row++ {
			trace(core.Position{Row: row, Col: 0})
		}
	} else {
		for row := 1; row < height; row++ {
			trace(core.Position{Row: row, Col: width - 1})
		}
	}
	return lines
}
