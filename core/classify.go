package core

// Membership tables for glyph classification. ASCII characters and the
// Unicode light/heavy/double box-drawing families are classified alike,
// so mixed-style diagrams are handled uniformly.
const (
	horizontalRunes = "-=_" + "─━═"       // - = _ ─ ━ ═
	verticalRunes   = "|!" + "│┃║"        // | ! │ ┃ ║
	cornerRunes     = "+.'`" +                           // ASCII corner stand-ins
		"┌┐└┘" + // ┌ ┐ └ ┘
		"┏┓┗┛" + // ┏ ┓ ┗ ┛
		"╔╗╚╝" + // ╔ ╗ ╚ ╝
		"╭╮╯╰" // ╭ ╮ ╯ ╰
	junctionRunes = "*" +
		"├┤┬┴┼" + // ├ ┤ ┬ ┴ ┼
		"┠┨┯┷┿╋" + // ┠ ┨ ┯ ┷ ┿ ╋
		"╠╣╦╩╬" // ╠ ╣ ╦ ╩ ╬
	arrowRunes        = "<>^vV" + "▶◀▲▼" // ◀ ▶ ▲ ▼
	diagonalUpRunes   = "/" + "╱"                       // ╱
	diagonalDownRunes = "\\" + "╲"                      // ╲
)

// classTable maps every recognised structural glyph to its class.
// Built once at init; Classify is a single map lookup per cell.
var classTable = buildClassTable()

func buildClassTable() map[rune]CharClass {
	t := make(map[rune]CharClass)
	add := func(runes string, class CharClass) {
		for _, r := range runes {
			t[r] = class
		}
	}
	add(horizontalRunes, ClassHorizontal)
	add(verticalRunes, ClassVertical)
	// Junctions before corners: '+' appears in cornerRunes only.
	add(junctionRunes, ClassJunction)
	add(cornerRunes, ClassCorner)
	add(arrowRunes, ClassArrow)
	add(diagonalUpRunes, ClassDiagonalUp)
	add(diagonalDownRunes, ClassDiagonalDown)
	return t
}

// Classify maps a single glyph to its structural class. Unrecognised
// printable glyphs are text; space and tab are whitespace.
func Classify(r rune) CharClass {
	if class, ok := classTable[r]; ok {
		return class
	}
	switch r {
	case ' ', '\t':
		return ClassWhitespace
	}
	if isPrintable(r) {
		return ClassText
	}
	return ClassUnknown
}

// isPrintable reports whether the rune is a printable, non-control glyph.
func isPrintable(r rune) bool {
	return r >= 0x20 && r != 0x7F
}

// IsHorizontalRune reports whether the glyph is a pure horizontal line
// character (usable as the body of a horizontal run).
func IsHorizontalRune(r rune) bool {
	return Classify(r) == ClassHorizontal
}

// IsVerticalRune reports whether the glyph is a pure vertical line
// character (usable as the body of a vertical run).
func IsVerticalRune(r rune) bool {
	return Classify(r) == ClassVertical
}

// IsCornerRune reports whether the glyph can terminate a box edge.
func IsCornerRune(r rune) bool {
	return Classify(r) == ClassCorner
}

// IsAlignmentRune reports whether the glyph participates in column
// consensus: vertical bars, corners, and junctions all mark where a
// vertical structure is expected to sit.
func IsAlignmentRune(r rune) bool {
	switch Classify(r) {
	case ClassVertical, ClassCorner, ClassJunction:
		return true
	default:
		return false
	}
}
