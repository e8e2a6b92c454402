package correct

import "gridfix/detect"

// BoxAlignmentCalculator squares up traced boxes. The top-left corner is
// the anchor: the bottom edge is moved under the top edge and the right
// edge is moved to the top edge's far column. Box corrections carry full
// confidence because a closed rectangle is the strongest evidence the
// detector produces.
type BoxAlignmentCalculator struct{}

// NewBoxAlignmentCalculator creates a calculator.
func NewBoxAlignmentCalculator() *BoxAlignmentCalculator {
	return &BoxAlignmentCalculator{}
}

// Corrections returns the corrections needed to square every box.
func (b *BoxAlignmentCalculator) Corrections(boxes []detect.Box) []ShiftCorrection {
	var corrections []ShiftCorrection
	for _, box := range boxes {
		corrections = append(corrections, b.squareBox(box)...)
	}
	return corrections
}

func (b *BoxAlignmentCalculator) squareBox(box detect.Box) []ShiftCorrection {
	var corrections []ShiftCorrection

	// Bottom edge under the top edge: same starting column, at the left
	// edge's far row. Both offsets ride in one correction so the edge
	// moves exactly once.
	bottom := ShiftCorrection{
		Line:       box.Bottom,
		ColOffset:  box.TopLeft.Col - box.BottomLeft.Col,
		RowOffset:  box.TopLeft.Row + box.Height() - 1 - box.Bottom.DominantRow(),
		Confidence: 1.0,
		Source:     SourceBox,
	}
	if !bottom.IsZero() {
		corrections = append(corrections, bottom)
	}

	// Right edge at the top edge's far column.
	targetRight := box.TopLeft.Col + box.Width() - 1
	if d := targetRight - box.Right.DominantCol(); d != 0 {
		corrections = append(corrections, ShiftCorrection{
			Line:       box.Right,
			ColOffset:  d,
			Confidence: 1.0,
			Source:     SourceBox,
		})
	}

	return corrections
}
