package grid

import "gridfix/core"

// Cell is an immutable snapshot of a single grid position: the glyph that
// occupies it and the glyph's structural class.
type Cell struct {
	Pos   core.Position
	Rune  rune
	Class core.CharClass
}

// NewCell builds a Cell, classifying the glyph.
func NewCell(pos core.Position, r rune) Cell {
	return Cell{Pos: pos, Rune: r, Class: core.Classify(r)}
}

// IsStructural reports whether the cell is part of diagram structure.
func (c Cell) IsStructural() bool {
	return c.Class.IsStructural()
}

// IsEmpty reports whether the cell holds whitespace.
func (c Cell) IsEmpty() bool {
	return c.Class == core.ClassWhitespace
}
