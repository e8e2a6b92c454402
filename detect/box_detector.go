package detect

import (
	"gridfix/core"
	"gridfix/grid"
)

// Box is a traced rectangle: four corner positions and the four edge
// lines connecting them. Corners may disagree by up to the detector's
// tolerance; the disagreement is what box alignment corrects.
type Box struct {
	TopLeft, TopRight       core.Position
	BottomLeft, BottomRight core.Position
	Top, Bottom             Line
	Left, Right             Line
}

// Width returns the box width measured along the top edge.
func (b Box) Width() int {
	return b.TopRight.Col - b.TopLeft.Col + 1
}

// Height returns the box height measured along the left edge.
func (b Box) Height() int {
	return b.BottomLeft.Row - b.TopLeft.Row + 1
}

// BoxDetector traces rectangles from corner characters. Because it
// follows edges instead of clustering by proximity, it closes boxes whose
// top/bottom separation exceeds the parallel-grouping tolerance.
type BoxDetector struct {
	minLineLength int
	tolerance     int
}

// NewBoxDetector creates a detector. Edges shorter than minLineLength are
// rejected; far corners may be displaced by up to tolerance cells.
func NewBoxDetector(minLineLength, tolerance int) *BoxDetector {
	if minLineLength < 2 {
		minLineLength = 2
	}
	if tolerance < 0 {
		tolerance = 0
	}
	return &BoxDetector{minLineLength: minLineLength, tolerance: tolerance}
}

// DetectBoxes attempts to trace a box from every corner glyph, treating
// it as the top-left corner. Duplicate traces of the same rectangle are
// collapsed.
func (d *BoxDetector) DetectBoxes(g *grid.Grid) []Box {
	width, height := g.Size()
	if width == 0 || height == 0 {
		return nil
	}

	type boxKey struct {
		row, col, w, h int
	}
	seen := make(map[boxKey]bool)

	var boxes []Box
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			p := core.Position{Row: row, Col: col}
			if !core.IsCornerRune(g.RuneAt(p)) {
				continue
			}
			box, ok := d.traceBox(g, p)
			if !ok {
				continue
			}
			key := boxKey{box.TopLeft.Row, box.TopLeft.Col, box.Width(), box.Height()}
			if !seen[key] {
				seen[key] = true
				boxes = append(boxes, box)
			}
		}
	}
	return boxes
}

// traceBox walks right for the top edge, down for the side edges, and
// verifies a closing bottom edge.
func (d *BoxDetector) traceBox(g *grid.Grid, topLeft core.Position) (Box, bool) {
	topRight, ok := d.traceEdge(g, topLeft, 0, 1)
	if !ok || topRight.Col-topLeft.Col+1 < d.minLineLength {
		return Box{}, false
	}

	bottomLeft, ok := d.traceEdge(g, topLeft, 1, 0)
	if !ok || bottomLeft.Row-topLeft.Row+1 < d.minLineLength {
		return Box{}, false
	}

	bottomRight, ok := d.traceEdge(g, topRight, 1, 0)
	if !ok {
		return Box{}, false
	}
	// Side edges must end on the same row within tolerance.
	if core.Abs(bottomRight.Row-bottomLeft.Row) > d.tolerance {
		return Box{}, false
	}

	top := d.edgeLine(g, topLeft, topRight, core.Horizontal)
	bottom := d.edgeLine(g, bottomLeft, bottomRight, core.Horizontal)
	left := d.edgeLine(g, topLeft, bottomLeft, core.Vertical)
	right := d.edgeLine(g, topRight, bottomRight, core.Vertical)
	if top.Length() < 2 || bottom.Length() < 2 || left.Length() < 2 || right.Length() < 2 {
		return Box{}, false
	}

	return Box{
		TopLeft: topLeft, TopRight: topRight,
		BottomLeft: bottomLeft, BottomRight: bottomRight,
		Top: top, Bottom: bottom, Left: left, Right: right,
	}, true
}

// traceEdge follows an unbroken run of edge characters from a corner and
// returns the next corner. When the run ends without a corner directly
// ahead, nearby columns or rows within tolerance are tried, which is how
// a drifted far corner is still found.
func (d *BoxDetector) traceEdge(g *grid.Grid, start core.Position, dRow, dCol int) (core.Position, bool) {
	isBody := core.IsHorizontalRune
	if dRow != 0 {
		isBody = core.IsVerticalRune
	}

	p := start.Offset(dRow, dCol)
	for g.Contains(p) {
		r := g.RuneAt(p)
		if isBody(r) {
			p = p.Offset(dRow, dCol)
			continue
		}
		if core.IsCornerRune(r) {
			return p, true
		}
		break
	}

	// Run ended on a non-corner: look sideways for a displaced corner.
	for off := 1; off <= d.tolerance; off++ {
		for _, side := range []int{-off, off} {
			q := p.Offset(dCol*side, dRow*side) // perpendicular offset
			if g.Contains(q) && core.IsCornerRune(g.RuneAt(q)) {
				return q, true
			}
		}
	}
	return core.Position{}, false
}

// edgeLine collects the edge's cells between two corners, inclusive.
// Corner and junction glyphs along the edge are included so a shifted
// edge moves together with its corners. Only direction-compatible
// glyphs count; a crossing perpendicular line is not part of the edge.
func (d *BoxDetector) edgeLine(g *grid.Grid, from, to core.Position, dir core.Direction) Line {
	compatible := func(class core.CharClass) bool {
		if class == core.ClassCorner || class == core.ClassJunction {
			return true
		}
		if dir == core.Horizontal {
			return class == core.ClassHorizontal
		}
		return class == core.ClassVertical
	}

	var cells []grid.Cell
	if dir == core.Horizontal {
		row := from.Row
		for col := core.Min(from.Col, to.Col); col <= core.Max(from.Col, to.Col); col++ {
			cell, ok := g.CellAt(core.Position{Row: row, Col: col})
			if ok && compatible(cell.Class) {
				cells = append(cells, cell)
			}
		}
	} else {
		col := from.Col
		for row := core.Min(from.Row, to.Row); row <= core.Max(from.Row, to.Row); row++ {
			cell, ok := g.CellAt(core.Position{Row: row, Col: col})
			if ok && compatible(cell.Class) {
				cells = append(cells, cell)
			}
		}
	}
	return Line{Cells: cells, Direction: dir}
}
