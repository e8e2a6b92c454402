package detect

import (
	"sort"

	"gridfix/core"
)

// ParallelGroup is a set of same-direction lines judged to belong to the
// same alignment family, with the line the others should match.
type ParallelGroup struct {
	Lines     []Line
	Direction core.Direction
	Reference Line
}

// ExpectedCoord returns the dominant coordinate the group's members
// should occupy: the reference line's row or column.
func (g ParallelGroup) ExpectedCoord() int {
	return g.Reference.DominantCoord()
}

// ParallelLineFinder clusters same-direction lines by dominant-coordinate
// proximity and span overlap.
type ParallelLineFinder struct {
	tolerance       int
	minOverlapRatio float64
}

// NewParallelLineFinder creates a finder with the given clustering
// tolerance and minimum overlap ratio.
func NewParallelLineFinder(tolerance int, minOverlapRatio float64) *ParallelLineFinder {
	return &ParallelLineFinder{tolerance: tolerance, minOverlapRatio: minOverlapRatio}
}

// FindGroups clusters horizontal and vertical lines separately. Diagonal
// lines are never grouped; alignment offsets are defined only along a
// single perpendicular axis.
func (f *ParallelLineFinder) FindGroups(lines []Line) []ParallelGroup {
	var horizontal, vertical []Line
	for _, l := range lines {
		switch l.Direction {
		case core.Horizontal:
			horizontal = append(horizontal, l)
		case core.Vertical:
			vertical = append(vertical, l)
		}
	}

	groups := f.cluster(horizontal, core.Horizontal)
	groups = append(groups, f.cluster(vertical, core.Vertical)...)
	return groups
}

// cluster merges lines transitively: after sorting by dominant
// coordinate, a line joins the open cluster when it is within tolerance
// of the most recently admitted member and overlaps it sufficiently.
// Three lines at coordinates 0, 1, 2 with tolerance 1 therefore form one
// group; the middle line bridges the outer pair.
func (f *ParallelLineFinder) cluster(lines []Line, dir core.Direction) []ParallelGroup {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.DominantCoord() != b.DominantCoord() {
			return a.DominantCoord() < b.DominantCoord()
		}
		aStart, _ := a.Span()
		bStart, _ := b.Span()
		return aStart < bStart
	})

	var groups []ParallelGroup
	current := []Line{sorted[0]}

	for _, line := range sorted[1:] {
		last := current[len(current)-1]
		near := core.Abs(line.DominantCoord()-last.DominantCoord()) <= f.tolerance
		if near && overlapRatio(last, line) >= f.minOverlapRatio {
			current = append(current, line)
			continue
		}
		groups = append(groups, makeGroup(current, dir))
		current = []Line{line}
	}
	groups = append(groups, makeGroup(current, dir))
	return groups
}

// makeGroup picks the reference: the longest line, ties broken by the
// earliest start (topmost, then leftmost).
func makeGroup(lines []Line, dir core.Direction) ParallelGroup {
	ref := lines[0]
	for _, l := range lines[1:] {
		if l.Length() > ref.Length() {
			ref = l
			continue
		}
		if l.Length() == ref.Length() && earlier(l.Start(), ref.Start()) {
			ref = l
		}
	}
	return ParallelGroup{Lines: lines, Direction: dir, Reference: ref}
}

// earlier reports whether a precedes b in topmost-then-leftmost order.
func earlier(a, b core.Position) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}
