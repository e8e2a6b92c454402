package correct

import (
	"gridfix/core"
	"gridfix/detect"
)

// AlignmentCalculator derives shift corrections from parallel groups:
// every non-reference line is moved onto the reference's dominant
// coordinate. The perpendicular coordinate is never touched.
type AlignmentCalculator struct{}

// NewAlignmentCalculator creates a calculator.
func NewAlignmentCalculator() *AlignmentCalculator {
	return &AlignmentCalculator{}
}

// Corrections returns one correction per misaligned line in the group.
// Lines already on the reference coordinate produce nothing.
func (a *AlignmentCalculator) Corrections(group detect.ParallelGroup) []ShiftCorrection {
	expected := group.ExpectedCoord()

	var corrections []ShiftCorrection
	for _, line := range group.Lines {
		if sameLine(line, group.Reference) {
			continue
		}
		offset := expected - line.DominantCoord()
		if offset == 0 {
			continue
		}

		corr := ShiftCorrection{
			Line:       line,
			Confidence: alignmentConfidence(len(group.Lines), offset),
			Source:     SourceParallel,
		}
		if group.Direction == core.Horizontal {
			corr.RowOffset = offset
		} else {
			corr.ColOffset = offset
		}
		corrections = append(corrections, corr)
	}
	return corrections
}

// alignmentConfidence favors larger groups (more consensus) and smaller
// offsets (less drastic edits). A two-line group with offset 1 scores
// 2/3; a five-line group with the same offset scores 5/6.
func alignmentConfidence(groupSize, offset int) float64 {
	return float64(groupSize) / float64(groupSize+core.Abs(offset))
}

// sameLine reports whether two detection artifacts describe the same run.
func sameLine(a, b detect.Line) bool {
	return a.Direction == b.Direction && len(a.Cells) == len(b.Cells) &&
		a.Start() == b.Start() && a.End() == b.End()
}
