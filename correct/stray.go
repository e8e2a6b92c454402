package correct

import (
	"gridfix/core"
	"gridfix/detect"
	"gridfix/grid"
)

// StrayFinder locates structural glyphs that no detected line claimed and
// proposes snapping each onto the nearest compatible line. Strays are
// usually fragments of a line broken by misalignment: a pipe one column
// off its neighbours is too short to be detected as a line of its own.
type StrayFinder struct {
	tolerance int
}

// NewStrayFinder creates a finder with the given snapping tolerance.
func NewStrayFinder(tolerance int) *StrayFinder {
	return &StrayFinder{tolerance: tolerance}
}

// FindStrays scans the grid for vertical and horizontal glyphs outside
// every detected line and proposes single-cell corrections.
func (f *StrayFinder) FindStrays(g *grid.Grid, lines []detect.Line) []ShiftCorrection {
	covered := make(map[core.Position]bool)
	var verticals, horizontals []detect.Line
	for _, line := range lines {
		for _, cell := range line.Cells {
			covered[cell.Pos] = true
		}
		switch line.Direction {
		case core.Vertical:
			verticals = append(verticals, line)
		case core.Horizontal:
			horizontals = append(horizontals, line)
		}
	}

	var corrections []ShiftCorrection
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			pos := core.Position{Row: row, Col: col}
			if covered[pos] {
				continue
			}
			cell, _ := g.CellAt(pos)
			switch cell.Class {
			case core.ClassVertical:
				if corr, ok := f.snapVertical(g, cell, verticals); ok {
					corrections = append(corrections, corr)
				}
			case core.ClassHorizontal:
				if corr, ok := f.snapHorizontal(g, cell, horizontals); ok {
					corrections = append(corrections, corr)
				}
			}
		}
	}
	return corrections
}

// rowHasText reports whether the row contains anything besides spaces and
// vertical glyphs. Text rows keep their pipes: the prose was laid out
// against the pipe positions, and moving only the pipe breaks it.
func rowHasText(g *grid.Grid, row int) bool {
	for col := 0; col < g.Width(); col++ {
		r := g.RuneAt(core.Position{Row: row, Col: col})
		if r != ' ' && !core.IsVerticalRune(r) {
			return true
		}
	}
	return false
}

// colHasText reports whether the column contains anything besides spaces
// and horizontal glyphs.
func colHasText(g *grid.Grid, col int) bool {
	for row := 0; row < g.Height(); row++ {
		r := g.RuneAt(core.Position{Row: row, Col: col})
		if r != ' ' && !core.IsHorizontalRune(r) {
			return true
		}
	}
	return false
}

// isRightEdge reports whether nothing but spaces follows the position on
// its row. A trailing pipe at the right edge of a text line is a diagram
// border, not prose punctuation, so it stays eligible for snapping even
// on text rows.
func isRightEdge(g *grid.Grid, pos core.Position) bool {
	for col := pos.Col + 1; col < g.Width(); col++ {
		if g.RuneAt(core.Position{Row: pos.Row, Col: col}) != ' ' {
			return false
		}
	}
	return true
}

// hasAdjacentStructural reports whether a vertical or corner glyph sits
// directly above or below (row±1, col).
func hasAdjacentStructural(g *grid.Grid, row, col int) bool {
	for _, r := range []int{row - 1, row + 1} {
		glyph := g.RuneAt(core.Position{Row: r, Col: col})
		if core.IsVerticalRune(glyph) || core.IsCornerRune(glyph) {
			return true
		}
	}
	return false
}

func (f *StrayFinder) snapVertical(g *grid.Grid, stray grid.Cell, verticals []detect.Line) (ShiftCorrection, bool) {
	edge := isRightEdge(g, stray.Pos)
	if rowHasText(g, stray.Pos.Row) && !edge {
		return ShiftCorrection{}, false
	}

	var best *detect.Line
	bestDistance := 0
	for i := range verticals {
		line := verticals[i]
		distance := core.Abs(stray.Pos.Col - line.DominantCol())
		if distance == 0 || distance > f.tolerance {
			continue
		}

		start, end := line.Span()
		inRange := stray.Pos.Row >= start-f.tolerance && stray.Pos.Row <= end+f.tolerance
		if !inRange {
			// Right-edge pipes may sit outside the line's span as long
			// as they connect to structure on an adjacent row.
			if !(edge && hasAdjacentStructural(g, stray.Pos.Row, line.DominantCol())) {
				continue
			}
		}

		if best == nil || distance < bestDistance {
			best = &verticals[i]
			bestDistance = distance
		}
	}
	if best == nil {
		return ShiftCorrection{}, false
	}

	target := core.Position{Row: stray.Pos.Row, Col: best.DominantCol()}
	if g.RuneAt(target) != ' ' {
		return ShiftCorrection{}, false
	}

	return ShiftCorrection{
		Line:       detect.Line{Cells: []grid.Cell{stray}, Direction: core.Vertical},
		ColOffset:  target.Col - stray.Pos.Col,
		Confidence: strayConfidence(bestDistance),
		Source:     SourceStray,
	}, true
}

func (f *StrayFinder) snapHorizontal(g *grid.Grid, stray grid.Cell, horizontals []detect.Line) (ShiftCorrection, bool) {
	if colHasText(g, stray.Pos.Col) {
		return ShiftCorrection{}, false
	}

	var best *detect.Line
	bestDistance := 0
	for i := range horizontals {
		line := horizontals[i]
		distance := core.Abs(stray.Pos.Row - line.DominantRow())
		if distance == 0 || distance > f.tolerance {
			continue
		}

		start, end := line.Span()
		if stray.Pos.Col < start-f.tolerance || stray.Pos.Col > end+f.tolerance {
			continue
		}

		if best == nil || distance < bestDistance {
			best = &horizontals[i]
			bestDistance = distance
		}
	}
	if best == nil {
		return ShiftCorrection{}, false
	}

	target := core.Position{Row: best.DominantRow(), Col: stray.Pos.Col}
	if g.RuneAt(target) != ' ' {
		return ShiftCorrection{}, false
	}

	return ShiftCorrection{
		Line:       detect.Line{Cells: []grid.Cell{stray}, Direction: core.Horizontal},
		RowOffset:  target.Row - stray.Pos.Row,
		Confidence: strayConfidence(bestDistance),
		Source:     SourceStray,
	}, true
}

// strayConfidence is deliberately low: a single glyph is weak evidence,
// and nearer lines make slightly stronger cases.
func strayConfidence(distance int) float64 {
	return 0.4 / float64(distance)
}
