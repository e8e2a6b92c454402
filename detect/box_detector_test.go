package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridfix/core"
)

func TestDetectSimpleBox(t *testing.T) {
	g := mustGrid(t, ""+
		"+----+\n"+
		"|    |\n"+
		"|    |\n"+
		"+----+")
	d := NewBoxDetector(2, 1)

	boxes := d.DetectBoxes(g)
	require.Len(t, boxes, 1)

	box := boxes[0]
	assert.Equal(t, core.Position{Row: 0, Col: 0}, box.TopLeft)
	assert.Equal(t, core.Position{Row: 0, Col: 5}, box.TopRight)
	assert.Equal(t, core.Position{Row: 3, Col: 0}, box.BottomLeft)
	assert.Equal(t, core.Position{Row: 3, Col: 5}, box.BottomRight)
	assert.Equal(t, 6, box.Width())
	assert.Equal(t, 4, box.Height())
}

func TestDetectBoxWithShiftedBottom(t *testing.T) {
	// Bottom edge drifted one column right; the displaced corners are
	// still found through the tolerance search.
	g := mustGrid(t, ""+
		"+--------+\n"+
		"|        |\n"+
		"|        |\n"+
		"|        |\n"+
		"|        |\n"+
		" +--------+")
	d := NewBoxDetector(2, 1)

	boxes := d.DetectBoxes(g)
	require.Len(t, boxes, 1)

	box := boxes[0]
	assert.Equal(t, core.Position{Row: 0, Col: 0}, box.TopLeft)
	assert.Equal(t, core.Position{Row: 5, Col: 1}, box.BottomLeft)
	assert.Equal(t, core.Position{Row: 5, Col: 10}, box.BottomRight)
}

func TestNoBoxWithoutClosedEdges(t *testing.T) {
	g := mustGrid(t, ""+
		"+----+\n"+
		"|     \n"+
		"|     \n"+
		"+---- ")
	d := NewBoxDetector(2, 1)
	assert.Empty(t, d.DetectBoxes(g))
}

func TestUnicodeBox(t *testing.T) {
	g := mustGrid(t, ""+
		"┌──┐\n"+
		"│  │\n"+
		"└──┘")
	d := NewBoxDetector(2, 1)

	boxes := d.DetectBoxes(g)
	require.Len(t, boxes, 1)
	assert.Equal(t, 4, boxes[0].Width())
	assert.Equal(t, 3, boxes[0].Height())
}

func TestNestedBoxes(t *testing.T) {
	g := mustGrid(t, ""+
		"+--------+\n"+
		"| +----+ |\n"+
		"| |    | |\n"+
		"| +----+ |\n"+
		"+--------+")
	d := NewBoxDetector(2, 1)

	boxes := d.DetectBoxes(g)
	require.Len(t, boxes, 2)
}

func TestEdgeCellsIncludeCorners(t *testing.T) {
	// Edge lines run corner to corner inclusive and stay on the edge
	// column.
	g := mustGrid(t, ""+
		"+--+\n"+
		"|  |\n"+
		"+--+")
	d := NewBoxDetector(2, 1)

	boxes := d.DetectBoxes(g)
	require.Len(t, boxes, 1)
	left := boxes[0].Left
	for _, cell := range left.Cells {
		assert.Equal(t, 0, cell.Pos.Col)
	}
	assert.Equal(t, 3, left.Length())
}
