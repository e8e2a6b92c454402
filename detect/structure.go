package detect

import (
	"gridfix/core"
	"gridfix/grid"
)

// StructureType labels the overall topology of a diagram.
type StructureType int

const (
	StructureUnknown StructureType = iota
	StructureBox
	StructureTree
	StructureGraph
)

// String returns the string representation of a StructureType.
func (s StructureType) String() string {
	switch s {
	case StructureBox:
		return "box"
	case StructureTree:
		return "tree"
	case StructureGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// StructureClassifier labels a diagram so the engine can skip correction
// styles that would damage it. The decisive case is tree notation: `+--`
// branch glyphs read exactly like drifted box corners to the alignment
// stages, so tree-dominant diagrams are identified before any correction
// is proposed.
type StructureClassifier struct {
	treeBranchThreshold int
}

// NewStructureClassifier creates a classifier. A diagram is tree-like
// once it shows at least treeBranchThreshold branch patterns.
func NewStructureClassifier(treeBranchThreshold int) *StructureClassifier {
	if treeBranchThreshold < 1 {
		treeBranchThreshold = 1
	}
	return &StructureClassifier{treeBranchThreshold: treeBranchThreshold}
}

// Classify inspects the grid. Tree signals win over box signals: a tree
// misread as a box gets corrupted, a box misread as a tree is merely
// left alone.
func (c *StructureClassifier) Classify(g *grid.Grid) StructureType {
	if c.countTreeBranches(g) >= c.treeBranchThreshold {
		return StructureTree
	}
	if c.countCorners(g) >= 4 {
		return StructureBox
	}
	if c.countJunctionClusters(g) >= 2 {
		return StructureGraph
	}
	return StructureUnknown
}

// IsTreeBranch reports whether the position starts a tree branch: a `+`
// followed by two or more horizontal characters, with a vertical stem
// directly above. The stem-above test is what separates a branch from a
// box corner, whose stem hangs below.
func (c *StructureClassifier) IsTreeBranch(g *grid.Grid, pos core.Position) bool {
	if g.RuneAt(pos) != '+' {
		return false
	}

	horizontal := 0
	for col := pos.Col + 1; col < core.Min(pos.Col+4, g.Width()); col++ {
		if core.IsHorizontalRune(g.RuneAt(core.Position{Row: pos.Row, Col: col})) {
			horizontal++
		} else {
			break
		}
	}
	if horizontal < 2 {
		return false
	}

	if pos.Row == 0 {
		return false
	}
	above := g.RuneAt(core.Position{Row: pos.Row - 1, Col: pos.Col})
	return core.IsVerticalRune(above) || above == '+'
}

func (c *StructureClassifier) countTreeBranches(g *grid.Grid) int {
	count := 0
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width()-2; col++ {
			if c.IsTreeBranch(g, core.Position{Row: row, Col: col}) {
				count++
			}
		}
	}
	return count
}

func (c *StructureClassifier) countCorners(g *grid.Grid) int {
	count := 0
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if core.IsCornerRune(g.RuneAt(core.Position{Row: row, Col: col})) {
				count++
			}
		}
	}
	return count
}

// countJunctionClusters counts connected components of junction glyphs,
// where two junctions connect when within Manhattan distance 2. Several
// disconnected clusters suggest a node-and-edge graph rather than nested
// boxes.
func (c *StructureClassifier) countJunctionClusters(g *grid.Grid) int {
	var junctions []core.Position
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			p := core.Position{Row: row, Col: col}
			if core.Classify(g.RuneAt(p)) == core.ClassJunction {
				junctions = append(junctions, p)
			}
		}
	}
	if len(junctions) == 0 {
		return 0
	}

	parent := make([]int, len(junctions))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	for i := range junctions {
		for j := i + 1; j < len(junctions); j++ {
			if junctions[i].ManhattanDistanceTo(junctions[j]) <= 2 {
				parent[find(i)] = find(j)
			}
		}
	}

	clusters := 0
	for i := range junctions {
		if find(i) == i {
			clusters++
		}
	}
	return clusters
}
