package correct

import (
	"sort"

	"gridfix/core"
	"gridfix/grid"
)

// Applier writes pooled corrections onto a copy of the grid. Corrections
// are applied in descending confidence order; every applied correction
// claims the cells it wrote and the cells it vacated, and any later
// correction touching a claimed cell is dropped rather than letting two
// edits fight over the same content. The input grid is never modified.
type Applier struct {
	preserveConnections bool
}

// NewApplier creates an applier. With preserveConnections set, corner
// glyphs adjoining a moved line's endpoints travel with it so joints are
// not severed.
func NewApplier(preserveConnections bool) *Applier {
	return &Applier{preserveConnections: preserveConnections}
}

// Apply returns the corrected grid, the corrections that were actually
// applied, and counts of corrections dropped for leaving the grid or for
// colliding with an earlier correction.
func (a *Applier) Apply(g *grid.Grid, corrections []ShiftCorrection) (*grid.Grid, []ShiftCorrection, int, int) {
	out := g.Copy()
	if len(corrections) == 0 {
		return out, nil, 0, 0
	}

	ordered := make([]ShiftCorrection, len(corrections))
	copy(ordered, corrections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Confidence > ordered[j].Confidence
	})

	// touched holds every cell an applied correction wrote or vacated.
	touched := make(map[core.Position]bool)
	var applied []ShiftCorrection
	skippedBounds, skippedCollisions := 0, 0

	for _, corr := range ordered {
		cells := corr.Line.Cells
		if a.preserveConnections {
			cells = withEndpointCorners(g, cells, corr)
		}

		sources := make(map[core.Position]bool, len(cells))
		for _, cell := range cells {
			sources[cell.Pos] = true
		}

		outOfBounds, collides := false, false
		redundant := true
		for _, cell := range cells {
			target := cell.Pos.Offset(corr.RowOffset, corr.ColOffset)
			if !out.Contains(target) {
				outOfBounds = true
				break
			}
			// A cell an earlier correction already moved cannot be moved
			// again, and a cell it wrote cannot be overwritten.
			if touched[cell.Pos] || touched[target] {
				collides = true
				break
			}
			r := out.RuneAt(target)
			if !sources[target] {
				// Writing the glyph a merge produces over the identical
				// glyph is harmless; anything else destroys content.
				if r != ' ' && r != cell.Rune {
					collides = true
					break
				}
				if r != cell.Rune {
					redundant = false
				}
			} else {
				redundant = false
			}
		}
		switch {
		case outOfBounds:
			skippedBounds++
			continue
		case collides:
			skippedCollisions++
			continue
		case redundant:
			// Every target already holds the glyph being written: the
			// only net effect would be erasing the sources.
			continue
		}

		// Vacate the sources first so overlapping source/target spans
		// shift cleanly, then write the targets.
		for _, cell := range cells {
			out.Clear(cell.Pos)
			touched[cell.Pos] = true
		}
		for _, cell := range cells {
			target := cell.Pos.Offset(corr.RowOffset, corr.ColOffset)
			out.Set(target, cell.Rune)
			touched[target] = true
		}
		applied = append(applied, corr)
	}

	return out, applied, skippedBounds, skippedCollisions
}

// withEndpointCorners extends a line's cell set with corner glyphs
// sitting one step beyond each endpoint along the line's axis. Those
// corners are the line's attachments; leaving them behind while the body
// moves would cut the connection.
func withEndpointCorners(g *grid.Grid, cells []grid.Cell, corr ShiftCorrection) []grid.Cell {
	if len(cells) == 0 {
		return cells
	}

	dRow, dCol := 0, 1
	if corr.Line.Direction == core.Vertical {
		dRow, dCol = 1, 0
	}

	have := make(map[core.Position]bool, len(cells))
	for _, cell := range cells {
		have[cell.Pos] = true
	}

	extended := cells
	for _, p := range []core.Position{
		corr.Line.Start().Offset(-dRow, -dCol),
		corr.Line.End().Offset(dRow, dCol),
	} {
		if have[p] || !g.Contains(p) {
			continue
		}
		cell, ok := g.CellAt(p)
		if ok && cell.Class == core.ClassCorner {
			extended = append(extended, cell)
			have[p] = true
		}
	}
	return extended
}
