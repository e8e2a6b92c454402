package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridfix/core"
	"gridfix/grid"
)

func mustGrid(t *testing.T, text string) *grid.Grid {
	t.Helper()
	g, err := grid.FromText(text)
	require.NoError(t, err)
	return g
}

func linesOf(lines []Line, dir core.Direction) []Line {
	var out []Line
	for _, l := range lines {
		if l.Direction == dir {
			out = append(out, l)
		}
	}
	return out
}

func TestDetectHorizontalRuns(t *testing.T) {
	g := mustGrid(t, "----  ==\ntext here")
	d := NewLineDetector(2)

	lines := linesOf(d.DetectLines(g), core.Horizontal)
	require.Len(t, lines, 2)

	assert.Equal(t, core.Position{Row: 0, Col: 0}, lines[0].Start())
	assert.Equal(t, core.Position{Row: 0, Col: 3}, lines[0].End())
	assert.Equal(t, 4, lines[0].Length())

	assert.Equal(t, core.Position{Row: 0, Col: 6}, lines[1].Start())
	assert.Equal(t, 2, lines[1].Length())
}

func TestDetectVerticalRuns(t *testing.T) {
	g := mustGrid(t, "| !\n| !\n|  ")
	d := NewLineDetector(2)

	lines := linesOf(d.DetectLines(g), core.Vertical)
	require.Len(t, lines, 2)

	assert.Equal(t, 3, lines[0].Length())
	assert.Equal(t, 0, lines[0].DominantCol())
	assert.Equal(t, 2, lines[1].Length())
	assert.Equal(t, 2, lines[1].DominantCol())
}

func TestMinLineLengthFiltersShortRuns(t *testing.T) {
	g := mustGrid(t, "- --- -")
	d := NewLineDetector(3)

	lines := d.DetectLines(g)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Length())
}

func TestDetectDiagonals(t *testing.T) {
	g := mustGrid(t, "\\  /\n \\/ \n /\\ \n/  \\")
	d := NewLineDetector(2)

	down := linesOf(d.DetectLines(g), core.DiagonalDown)
	up := linesOf(d.DetectLines(g), core.DiagonalUp)
	require.Len(t, down, 1)
	require.Len(t, up, 1)

	assert.Equal(t, core.Position{Row: 0, Col: 0}, down[0].Start())
	assert.Equal(t, core.Position{Row: 3, Col: 3}, down[0].End())
	assert.Equal(t, 4, down[0].Length())

	// Up-diagonals are traced from top-right to bottom-left.
	assert.Equal(t, core.Position{Row: 0, Col: 3}, up[0].Start())
	assert.Equal(t, core.Position{Row: 3, Col: 0}, up[0].End())
}

func TestCornersBreakRuns(t *testing.T) {
	// The plus is a corner, not a horizontal member, so it splits the
	// dashes into two runs.
	g := mustGrid(t, "--+--")
	d := NewLineDetector(2)

	lines := linesOf(d.DetectLines(g), core.Horizontal)
	require.Len(t, lines, 2)
}

func TestEmptyGrid(t *testing.T) {
	g := mustGrid(t, "")
	d := NewLineDetector(2)
	assert.Empty(t, d.DetectLines(g))
}

func TestOverlapRatio(t *testing.T) {
	mk := func(row, from, to int) Line {
		var cells []grid.Cell
		for c := from; c <= to; c++ {
			cells = append(cells, grid.NewCell(core.Position{Row: row, Col: c}, '-'))
		}
		return Line{Cells: cells, Direction: core.Horizontal}
	}

	tests := []struct {
		name string
		a, b Line
		want float64
	}{
		{"identical", mk(0, 0, 9), mk(1, 0, 9), 1.0},
		{"offset by one", mk(0, 0, 9), mk(1, 1, 10), 0.9},
		{"disjoint", mk(0, 0, 4), mk(1, 6, 9), 0.0},
		{"contained", mk(0, 0, 9), mk(1, 2, 4), 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, overlapRatio(tt.a, tt.b), 1e-9)
		})
	}
}
