package correct

import (
	"gridfix/core"
	"gridfix/detect"
	"gridfix/grid"
)

// RowShiftCorrector detects whole rows that drifted horizontally, the
// typical copy-paste accident that inserts or drops a leading space.
// Per-line clustering misses these because the row's segments are each
// too short or isolated; the consensus of the surrounding rows is not.
//
// Column consensus is kept per class: alignment glyphs (bars, corners,
// junctions) vote in one histogram and horizontal bars in another, so a
// box's dashes cannot vouch for a drifted pipe and vice versa. A row is
// shifted when its own columns miss their consensus and a single
// non-zero delta within tolerance puts every voting glyph back onto a
// column with enough support.
type RowShiftCorrector struct {
	tolerance    int
	minConsensus int
}

// NewRowShiftCorrector creates a corrector. A column needs at least two
// occupants on rows other than the one under test before that row is
// pulled toward it, so two rows drifted apart never chase each other.
func NewRowShiftCorrector(tolerance int) *RowShiftCorrector {
	return &RowShiftCorrector{tolerance: tolerance, minConsensus: 2}
}

// histograms holds the per-class column counts and occupancy sets.
type histograms struct {
	alignCount map[int]int
	horizCount map[int]int
	alignAt    map[core.Position]bool
	horizAt    map[core.Position]bool
}

func buildHistograms(g *grid.Grid) histograms {
	h := histograms{
		alignCount: make(map[int]int),
		horizCount: make(map[int]int),
		alignAt:    make(map[core.Position]bool),
		horizAt:    make(map[core.Position]bool),
	}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			p := core.Position{Row: row, Col: col}
			r := g.RuneAt(p)
			switch {
			case core.IsAlignmentRune(r):
				h.alignCount[col]++
				h.alignAt[p] = true
			case core.IsHorizontalRune(r):
				h.horizCount[col]++
				h.horizAt[p] = true
			}
		}
	}
	return h
}

// FindRowShifts returns at most one correction per shifted row.
func (c *RowShiftCorrector) FindRowShifts(g *grid.Grid) []ShiftCorrection {
	width, height := g.Size()
	if width == 0 || height == 0 {
		return nil
	}

	h := buildHistograms(g)
	var corrections []ShiftCorrection
	for row := 0; row < height; row++ {
		if corr, ok := c.checkRow(g, row, h); ok {
			corrections = append(corrections, corr)
		}
	}
	return corrections
}

// voter is one glyph of a row that participates in consensus.
type voter struct {
	col   int
	align bool
}

func (c *RowShiftCorrector) checkRow(g *grid.Grid, row int, h histograms) (ShiftCorrection, bool) {
	var voters []voter
	for col := 0; col < g.Width(); col++ {
		p := core.Position{Row: row, Col: col}
		switch {
		case h.alignAt[p]:
			voters = append(voters, voter{col: col, align: true})
		case h.horizAt[p]:
			voters = append(voters, voter{col: col, align: false})
		}
	}
	if len(voters) == 0 {
		return ShiftCorrection{}, false
	}

	// A row already on consensus columns is left alone.
	if c.fits(row, voters, 0, h) {
		return ShiftCorrection{}, false
	}

	// Smallest repairing delta wins; left before right on ties.
	delta := 0
	for d := 1; d <= c.tolerance && delta == 0; d++ {
		for _, candidate := range []int{-d, d} {
			if c.fits(row, voters, candidate, h) {
				delta = candidate
				break
			}
		}
	}
	if delta == 0 {
		return ShiftCorrection{}, false
	}

	// The correction moves every non-space cell on the row together.
	// Cells the shift would push off the grid are the applier's problem:
	// it drops the correction and counts it.
	var cells []grid.Cell
	for col := 0; col < g.Width(); col++ {
		cell, _ := g.CellAt(core.Position{Row: row, Col: col})
		if cell.Rune != ' ' {
			cells = append(cells, cell)
		}
	}

	return ShiftCorrection{
		Line:       detect.Line{Cells: cells, Direction: core.Horizontal},
		ColOffset:  delta,
		Confidence: rowShiftConfidence(len(voters)),
		Source:     SourceRowShift,
	}, true
}

// fits reports whether shifting the row's voters by delta puts each on
// a column its own class endorses. A voter's own occupancy is
// discounted so a lone drifted row cannot vouch for itself. Moved
// alignment glyphs must additionally find structure on an adjacent row
// at the target column, ensuring they reconnect to something; moved
// horizontal bars are exempt because their neighbours sit beside them,
// not above.
func (c *RowShiftCorrector) fits(row int, voters []voter, delta int, h histograms) bool {
	for _, v := range voters {
		target := v.col + delta
		targetPos := core.Position{Row: row, Col: target}

		count := h.horizCount[target]
		occupied := h.horizAt[targetPos]
		if v.align {
			count = h.alignCount[target]
			occupied = h.alignAt[targetPos]
		}
		if occupied {
			count--
		}
		if count < c.minConsensus {
			return false
		}

		if delta != 0 && v.align {
			above := core.Position{Row: row - 1, Col: target}
			below := core.Position{Row: row + 1, Col: target}
			if !h.alignAt[above] && !h.alignAt[below] {
				return false
			}
		}
	}
	return true
}

// rowShiftConfidence grows with the number of agreeing glyphs: a row
// where four bars all vote the same way is near certain.
func rowShiftConfidence(agreeing int) float64 {
	return float64(agreeing) / float64(agreeing+1)
}
