package correct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowShiftUnderscoreRow(t *testing.T) {
	// Three rows establish the columns; the fourth drifted one right.
	g := mustGrid(t, ""+
		"____\n"+
		"____\n"+
		"____\n"+
		" ____")
	c := NewRowShiftCorrector(1)

	corrections := c.FindRowShifts(g)
	require.Len(t, corrections, 1)

	corr := corrections[0]
	assert.Equal(t, SourceRowShift, corr.Source)
	assert.Equal(t, -1, corr.ColOffset)
	assert.Equal(t, 0, corr.RowOffset)
	assert.Equal(t, 3, corr.Line.Start().Row)
}

func TestRowShiftPipeRowWithText(t *testing.T) {
	// The shifted row carries prose; the whole row moves together so the
	// text keeps its place relative to the pipes.
	g := mustGrid(t, ""+
		"+------------------+\n"+
		"| one              |\n"+
		"| two              |\n"+
		" | three            |\n"+
		"| four             |\n"+
		"+------------------+")
	c := NewRowShiftCorrector(1)

	corrections := c.FindRowShifts(g)
	require.Len(t, corrections, 1)

	corr := corrections[0]
	assert.Equal(t, -1, corr.ColOffset)
	assert.Equal(t, 3, corr.Line.Start().Row)
	// Every non-space cell of the row rides along, prose included.
	assert.Greater(t, len(corr.Line.Cells), 2)
}

func TestRowShiftAlignedRowsUntouched(t *testing.T) {
	g := mustGrid(t, ""+
		"|  |\n"+
		"|  |\n"+
		"|  |")
	c := NewRowShiftCorrector(1)
	assert.Empty(t, c.FindRowShifts(g))
}

func TestRowShiftTwoRowsNeverChaseEachOther(t *testing.T) {
	// With only two rows there is no majority; neither may claim the
	// other drifted.
	g := mustGrid(t, "----------\n ----------")
	c := NewRowShiftCorrector(1)
	assert.Empty(t, c.FindRowShifts(g))
}

func TestRowShiftRequiresUniformDelta(t *testing.T) {
	// The bottom row's pipes disagree: one matches consensus, one does
	// not, so no single delta repairs the row.
	g := mustGrid(t, ""+
		"|    |\n"+
		"|    |\n"+
		"|    |\n"+
		"|   | ")
	c := NewRowShiftCorrector(1)
	assert.Empty(t, c.FindRowShifts(g))
}

func TestRowShiftProposesEvenWhenRowWouldLeaveGrid(t *testing.T) {
	// Fixing the last row would push its rightmost cell off the grid.
	// The proposal is still made; dropping and counting it is the
	// applier's job.
	g := mustGrid(t, ""+
		" |\n"+
		" |\n"+
		" |\n"+
		"|x")
	c := NewRowShiftCorrector(1)

	corrections := c.FindRowShifts(g)
	require.Len(t, corrections, 1)
	assert.Equal(t, 1, corrections[0].ColOffset)
	assert.Equal(t, 3, corrections[0].Line.Start().Row)
}

func TestRowShiftEmptyGrid(t *testing.T) {
	c := NewRowShiftCorrector(1)
	assert.Empty(t, c.FindRowShifts(mustGrid(t, "")))
	assert.Empty(t, c.FindRowShifts(mustGrid(t, "   \n   ")))
}
