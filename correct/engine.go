package correct

import (
	"log/slog"

	"gridfix/detect"
	"gridfix/grid"
)

// Engine runs the full correction pipeline: classify the structure,
// detect boxes and lines, pool the corrections every stage proposes,
// and apply them in one conflict-resolving pass. Components are held as
// interfaces so tests can substitute any stage.
type Engine struct {
	topology detect.TopologyClassifier
	boxes    detect.BoxFinder
	lines    detect.LineFinder
	grouper  detect.Grouper

	boxAlign *BoxAlignmentCalculator
	align    *AlignmentCalculator
	strays   *StrayFinder
	rowShift *RowShiftCorrector

	opts Options
	log  *slog.Logger
}

// NewEngine wires the default pipeline for the given options. A nil
// logger discards all pipeline logging.
func NewEngine(opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		topology: detect.NewStructureClassifier(opts.TreeBranchThreshold),
		boxes:    detect.NewBoxDetector(opts.MinLineLength, opts.Tolerance),
		lines:    detect.NewLineDetector(opts.MinLineLength),
		grouper:  detect.NewParallelLineFinder(opts.Tolerance, opts.MinOverlapRatio),
		boxAlign: NewBoxAlignmentCalculator(),
		align:    NewAlignmentCalculator(),
		strays:   NewStrayFinder(opts.Tolerance),
		rowShift: NewRowShiftCorrector(opts.Tolerance),
		opts:     opts,
		log:      log,
	}
}

// Correct runs detection and applies the pooled corrections to a copy
// of the grid. The input grid is never modified.
func (e *Engine) Correct(g *grid.Grid) Result {
	result, pool := e.propose(g)
	if result.Corrected != nil {
		// Structure preservation already produced the output.
		return result
	}

	applier := NewApplier(e.opts.PreserveConnections)
	corrected, applied, bounds, collisions := applier.Apply(g, pool)
	result.Corrected = corrected
	result.Corrections = applied
	result.SkippedBounds = bounds
	result.SkippedCollisions = collisions

	e.log.Info("correction complete",
		"proposed", len(pool),
		"applied", len(applied),
		"skipped_bounds", bounds,
		"skipped_collisions", collisions)
	return result
}

// Analyze runs the same detection as Correct but applies nothing: the
// returned result carries an untouched copy of the grid and the full
// proposed pool.
func (e *Engine) Analyze(g *grid.Grid) Result {
	result, pool := e.propose(g)
	if result.Corrected == nil {
		result.Corrected = g.Copy()
		result.Corrections = pool
	}
	return result
}

// propose runs detection and collects the correction pool. For
// preserved tree structures the result comes back complete, with
// Corrected already set to an untouched copy.
func (e *Engine) propose(g *grid.Grid) (Result, []ShiftCorrection) {
	result := Result{Original: g}

	result.Structure = e.topology.Classify(g)
	e.log.Debug("structure classified", "type", result.Structure.String())

	if result.Structure == detect.StructureTree && e.opts.PreserveTrees {
		// Tree branches legitimately sit at staggered offsets; aligning
		// them destroys the hierarchy. Report and return unchanged.
		e.log.Info("tree structure preserved")
		result.Corrected = g.Copy()
		return result, nil
	}

	result.Boxes = e.boxes.DetectBoxes(g)
	result.Lines = e.lines.DetectLines(g)
	result.Groups = e.grouper.FindGroups(result.Lines)
	e.log.Debug("detection complete",
		"boxes", len(result.Boxes),
		"lines", len(result.Lines),
		"groups", len(result.Groups))

	var pool []ShiftCorrection
	pool = append(pool, e.boxAlign.Corrections(result.Boxes)...)
	for _, group := range result.Groups {
		pool = append(pool, e.align.Corrections(group)...)
	}
	pool = append(pool, e.strays.FindStrays(g, result.Lines)...)
	pool = append(pool, e.rowShift.FindRowShifts(g)...)

	return result, pool
}

// CorrectText is the string-level convenience wrapper: parse, correct,
// render. The error is non-nil only when the text cannot form a grid.
func (e *Engine) CorrectText(text string) (string, Result, error) {
	g, err := grid.FromText(text)
	if err != nil {
		return "", Result{}, err
	}
	result := e.Correct(g)
	return result.Corrected.String(), result, nil
}
