// Package correct turns detected structure into shift corrections and
// applies them to a copy of the grid. Every stage proposes corrections
// into a shared pool; the applier resolves conflicts once, by confidence.
package correct

import (
	"gridfix/detect"
	"gridfix/grid"
)

// Options is the configuration bundle passed explicitly into every
// pipeline component. There is no ambient configuration state.
type Options struct {
	// Tolerance is the maximum row/column distance for two lines to be
	// candidates for the same alignment group.
	Tolerance int

	// MinLineLength is the minimum run length for a detected line.
	MinLineLength int

	// MinOverlapRatio is the fraction of the shorter line's span that
	// must coincide with another line's span for the two to group.
	MinOverlapRatio float64

	// PreserveTrees makes the engine return tree-classified diagrams
	// untouched.
	PreserveTrees bool

	// TreeBranchThreshold is the number of branch patterns at which a
	// diagram classifies as a tree.
	TreeBranchThreshold int

	// PreserveConnections nudges corner glyphs adjacent to a shifted
	// line by the same delta so joints stay connected.
	PreserveConnections bool
}

// DefaultOptions returns the defaults used by the CLI.
func DefaultOptions() Options {
	return Options{
		Tolerance:           1,
		MinLineLength:       2,
		MinOverlapRatio:     0.5,
		PreserveTrees:       true,
		TreeBranchThreshold: 2,
		PreserveConnections: true,
	}
}

// Source identifies the stage that proposed a correction.
type Source string

const (
	SourceBox      Source = "box"
	SourceParallel Source = "parallel"
	SourceStray    Source = "stray"
	SourceRowShift Source = "row-shift"
)

// ShiftCorrection moves a set of cells by a fixed delta. The cells are a
// detected line, a whole row, or a single stray glyph.
type ShiftCorrection struct {
	Line       detect.Line
	RowOffset  int
	ColOffset  int
	Confidence float64
	Source     Source
}

// IsZero reports whether the correction moves nothing.
func (c ShiftCorrection) IsZero() bool {
	return c.RowOffset == 0 && c.ColOffset == 0
}

// Result is the outcome of one Correct or Analyze call. All detection
// artifacts it carries were computed fresh for this call.
type Result struct {
	Original  *grid.Grid
	Corrected *grid.Grid

	// Corrections holds the applied corrections after Correct, or the
	// proposed corrections after Analyze.
	Corrections []ShiftCorrection

	// SkippedBounds counts corrections dropped because a target cell
	// fell outside the grid.
	SkippedBounds int

	// SkippedCollisions counts corrections dropped because a target
	// cell was claimed by a higher-confidence correction.
	SkippedCollisions int

	Structure detect.StructureType
	Lines     []detect.Line
	Groups    []detect.ParallelGroup
	Boxes     []detect.Box
}

// CorrectionCount returns the number of corrections in the result.
func (r Result) CorrectionCount() int {
	return len(r.Corrections)
}
