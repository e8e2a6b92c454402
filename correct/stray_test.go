package correct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridfix/core"
	"gridfix/detect"
	"gridfix/grid"
)

func detectLines(t *testing.T, g *grid.Grid) []detect.Line {
	t.Helper()
	return detect.NewLineDetector(2).DetectLines(g)
}

func TestStraySnapsVerticalOntoNearbyLine(t *testing.T) {
	g := mustGrid(t, ""+
		"  |\n"+
		"  |\n"+
		"  |\n"+
		" |")
	f := NewStrayFinder(1)

	corrections := f.FindStrays(g, detectLines(t, g))
	require.Len(t, corrections, 1)

	corr := corrections[0]
	assert.Equal(t, SourceStray, corr.Source)
	assert.Equal(t, 1, corr.ColOffset)
	assert.Equal(t, 0, corr.RowOffset)
	assert.Equal(t, core.Position{Row: 3, Col: 1}, corr.Line.Start())
}

func TestStrayLeavesPipesOnTextRows(t *testing.T) {
	// The pipe sits inside prose; moving only the pipe would tear the
	// row apart.
	g := mustGrid(t, ""+
		"  |\n"+
		"  |\n"+
		" | some words here")
	f := NewStrayFinder(1)

	assert.Empty(t, f.FindStrays(g, detectLines(t, g)))
}

func TestStrayRightEdgePipeSnapsDespiteText(t *testing.T) {
	// A trailing pipe on a text row is a diagram border: it snaps as
	// long as it lands next to existing structure.
	g := mustGrid(t, "more text|")
	f := NewStrayFinder(1)

	// Outside the line's span and nothing adjacent to connect to: the
	// pipe stays where it is.
	corrections := f.FindStrays(g, []detect.Line{vline(10, 3, 5)})
	require.Len(t, corrections, 0)

	// With structure on an adjacent row the snap goes through.
	g2 := mustGrid(t, ""+
		"words here |\n"+
		"words here|\n"+
		"words here |")
	corrections = f.FindStrays(g2, []detect.Line{vline(11, 0, 2)})
	require.Len(t, corrections, 1)
	assert.Equal(t, 1, corrections[0].ColOffset)
	assert.Equal(t, core.Position{Row: 1, Col: 10}, corrections[0].Line.Start())
}

func TestStraySnapsHorizontalOntoNearbyLine(t *testing.T) {
	g := mustGrid(t, ""+
		"----- \n"+
		"     -")
	f := NewStrayFinder(1)

	corrections := f.FindStrays(g, detectLines(t, g))
	require.Len(t, corrections, 1)
	assert.Equal(t, -1, corrections[0].RowOffset)
	assert.Equal(t, 0, corrections[0].ColOffset)
}

func TestStrayIgnoresCoveredCells(t *testing.T) {
	// Every glyph belongs to a detected line: nothing is stray.
	g := mustGrid(t, "-----\n\n-----")
	f := NewStrayFinder(1)
	assert.Empty(t, f.FindStrays(g, detectLines(t, g)))
}

func TestStrayConfidenceIsLow(t *testing.T) {
	g := mustGrid(t, ""+
		"  |\n"+
		"  |\n"+
		"  |\n"+
		" |")
	f := NewStrayFinder(1)

	corrections := f.FindStrays(g, detectLines(t, g))
	require.Len(t, corrections, 1)
	assert.Less(t, corrections[0].Confidence, 0.5)
}
