package correct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gridfix/core"
	"gridfix/detect"
	"gridfix/grid"
)

func mustGrid(t *testing.T, text string) *grid.Grid {
	t.Helper()
	g, err := grid.FromText(text)
	require.NoError(t, err)
	return g
}

func hline(row, from, to int) detect.Line {
	var cells []grid.Cell
	for c := from; c <= to; c++ {
		cells = append(cells, grid.NewCell(core.Position{Row: row, Col: c}, '-'))
	}
	return detect.Line{Cells: cells, Direction: core.Horizontal}
}

func vline(col, from, to int) detect.Line {
	var cells []grid.Cell
	for r := from; r <= to; r++ {
		cells = append(cells, grid.NewCell(core.Position{Row: r, Col: col}, '|'))
	}
	return detect.Line{Cells: cells, Direction: core.Vertical}
}
