package detect

import "gridfix/grid"

// LineFinder detects line segments in a grid.
type LineFinder interface {
	// DetectLines returns every maximal run meeting the detector's
	// minimum length. The grid is not modified.
	DetectLines(g *grid.Grid) []Line
}

// BoxFinder detects closed rectangles in a grid.
type BoxFinder interface {
	DetectBoxes(g *grid.Grid) []Box
}

// Grouper clusters detected lines into alignment groups.
type Grouper interface {
	FindGroups(lines []Line) []ParallelGroup
}

// TopologyClassifier labels a diagram's overall structure.
type TopologyClassifier interface {
	Classify(g *grid.Grid) StructureType
}
