// Package validation checks that the structural glyphs of a diagram
// connect to compatible neighbours. It reports dangling connectors and
// mismatched joints, which is how a bad correction shows up: a moved
// line that no longer touches its corner produces an issue here.
package validation

import (
	"fmt"

	"gridfix/core"
	"gridfix/grid"
)

// Issue is one connectivity problem at a single cell.
type Issue struct {
	Pos     core.Position
	Rune    rune
	Message string
}

// String formats the issue with its location.
func (i Issue) String() string {
	return fmt.Sprintf("(%d,%d) %q: %s", i.Pos.Row, i.Pos.Col, i.Rune, i.Message)
}

// Validator walks every structural cell and applies per-glyph adjacency
// rules. In strict mode a connector must actually connect; by default
// only contradictions are reported, so a lone pipe in running prose
// passes but a pipe abutting a perpendicular dash does not.
type Validator struct {
	strict bool
}

// NewValidator creates a validator with lenient defaults.
func NewValidator() *Validator {
	return &Validator{}
}

// SetStrict makes unconnected connector endpoints an issue too.
func (v *Validator) SetStrict(strict bool) {
	v.strict = strict
}

// side identifies a neighbour direction.
type side int

const (
	north side = iota
	south
	east
	west
)

func (s side) String() string {
	switch s {
	case north:
		return "above"
	case south:
		return "below"
	case east:
		return "right"
	default:
		return "left"
	}
}

func (s side) offset() (int, int) {
	switch s {
	case north:
		return -1, 0
	case south:
		return 1, 0
	case east:
		return 0, 1
	default:
		return 0, -1
	}
}

// requiredSides returns the directions a glyph reaches toward. Oriented
// Unicode corners and tees have fixed arms. ASCII corners and junctions
// are ambiguous about orientation and are not checked.
func requiredSides(r rune) []side {
	switch r {
	case '┌', '╭', '┏', '╔':
		return []side{east, south}
	case '┐', '╮', '┓', '╗':
		return []side{west, south}
	case '└', '╰', '┗', '╚':
		return []side{east, north}
	case '┘', '╯', '┛', '╝':
		return []side{west, north}
	case '├', '┠', '╠':
		return []side{north, south, east}
	case '┤', '┨', '╣':
		return []side{north, south, west}
	case '┬', '┯', '╦':
		return []side{west, east, south}
	case '┴', '┷', '╩':
		return []side{west, east, north}
	case '┼', '┿', '╋', '╬':
		return []side{north, south, east, west}
	case '>', '▶':
		return []side{west}
	case '<', '◀':
		return []side{east}
	case '^', '▲':
		return []side{south}
	case 'v', 'V', '▼':
		return []side{north}
	}
	switch core.Classify(r) {
	case core.ClassHorizontal:
		return []side{west, east}
	case core.ClassVertical:
		return []side{north, south}
	}
	return nil
}

// connects reports whether a neighbouring glyph can carry a connection
// along the given axis. Corners and junctions connect on both axes.
func connects(r rune, horizontal bool) bool {
	switch core.Classify(r) {
	case core.ClassCorner, core.ClassJunction, core.ClassArrow:
		return true
	case core.ClassHorizontal:
		return horizontal
	case core.ClassVertical:
		return !horizontal
	default:
		return false
	}
}

// Validate returns every connectivity issue found in the grid.
func (v *Validator) Validate(g *grid.Grid) []Issue {
	var issues []Issue
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			pos := core.Position{Row: row, Col: col}
			r := g.RuneAt(pos)
			// Letters like v double as arrowheads; without structure
			// around them they are prose and exempt.
			if core.Classify(r) == core.ClassArrow && !hasStructuralNeighbour(g, pos) {
				continue
			}
			for _, s := range requiredSides(r) {
				dRow, dCol := s.offset()
				neighbour := g.RuneAt(pos.Offset(dRow, dCol))
				horizontal := s == east || s == west
				if connects(neighbour, horizontal) {
					continue
				}
				if neighbour == ' ' || core.Classify(neighbour) == core.ClassText {
					// Open ends into space or prose are only an issue
					// when strictness demands full connectivity.
					if v.strict {
						issues = append(issues, Issue{
							Pos:     pos,
							Rune:    r,
							Message: fmt.Sprintf("open connection %s", s),
						})
					}
					continue
				}
				issues = append(issues, Issue{
					Pos:     pos,
					Rune:    r,
					Message: fmt.Sprintf("cannot connect to %q %s", neighbour, s),
				})
			}
		}
	}
	return issues
}

func hasStructuralNeighbour(g *grid.Grid, pos core.Position) bool {
	for _, s := range []side{north, south, east, west} {
		dRow, dCol := s.offset()
		class := core.Classify(g.RuneAt(pos.Offset(dRow, dCol)))
		switch class {
		case core.ClassHorizontal, core.ClassVertical, core.ClassCorner, core.ClassJunction:
			return true
		}
	}
	return false
}

// ValidateText is the string-level convenience wrapper.
func (v *Validator) ValidateText(text string) ([]Issue, error) {
	g, err := grid.FromText(text)
	if err != nil {
		return nil, err
	}
	return v.Validate(g), nil
}
