// Package core contains the fundamental types used throughout the gridfix
// diagram corrector.
package core

import "math"

// Position is a 2D coordinate in the grid, zero-based, row-major.
type Position struct {
	Row, Col int
}

// Offset returns a new position shifted by the given deltas.
func (p Position) Offset(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// DistanceTo returns the Euclidean distance to another position.
func (p Position) DistanceTo(other Position) float64 {
	dr := float64(p.Row - other.Row)
	dc := float64(p.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// ManhattanDistanceTo returns the Manhattan distance to another position.
func (p Position) ManhattanDistanceTo(other Position) int {
	return Abs(p.Row-other.Row) + Abs(p.Col-other.Col)
}

// Direction represents the orientation of a detected line.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
	DiagonalUp
	DiagonalDown
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalUp:
		return "diagonal-up"
	case DiagonalDown:
		return "diagonal-down"
	default:
		return "unknown"
	}
}

// CharClass is the structural classification of a single glyph.
type CharClass int

const (
	ClassUnknown CharClass = iota
	ClassHorizontal
	ClassVertical
	ClassDiagonalUp
	ClassDiagonalDown
	ClassCorner
	ClassJunction
	ClassArrow
	ClassText
	ClassWhitespace
)

// String returns the string representation of a CharClass.
func (c CharClass) String() string {
	switch c {
	case ClassHorizontal:
		return "horizontal"
	case ClassVertical:
		return "vertical"
	case ClassDiagonalUp:
		return "diagonal-up"
	case ClassDiagonalDown:
		return "diagonal-down"
	case ClassCorner:
		return "corner"
	case ClassJunction:
		return "junction"
	case ClassArrow:
		return "arrow"
	case ClassText:
		return "text"
	case ClassWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// IsStructural reports whether the class is part of diagram structure
// rather than prose or padding.
func (c CharClass) IsStructural() bool {
	switch c {
	case ClassHorizontal, ClassVertical, ClassDiagonalUp, ClassDiagonalDown,
		ClassCorner, ClassJunction, ClassArrow:
		return true
	default:
		return false
	}
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
