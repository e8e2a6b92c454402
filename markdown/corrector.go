package markdown

import (
	"fmt"
	"log/slog"

	"gridfix/correct"
)

// BlockResult reports what happened to one diagram block.
type BlockResult struct {
	Block       DiagramBlock
	Corrections int
	Changed     bool
	Err         error
}

// Corrector runs the diagram pipeline over every diagram block in a
// markdown document.
type Corrector struct {
	engine *correct.Engine
	log    *slog.Logger
}

// NewCorrector creates a corrector around an existing engine. A nil
// logger discards all logging.
func NewCorrector(engine *correct.Engine, log *slog.Logger) *Corrector {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Corrector{engine: engine, log: log}
}

// FixDocument corrects every diagram block and returns the updated
// document with per-block results. A block that fails to parse or to
// splice is reported in its result and left as it was; the rest of the
// document is still processed.
func (c *Corrector) FixDocument(content string) (string, []BlockResult) {
	scanner := NewScanner(content)
	blocks := scanner.FindBlocks()
	results := make([]BlockResult, len(blocks))

	// Bottom-up so replacements never shift the line numbers of blocks
	// still waiting.
	for i := len(blocks) - 1; i >= 0; i-- {
		block := blocks[i]
		results[i] = c.fixBlock(scanner, block)
	}
	return scanner.Content(), results
}

func (c *Corrector) fixBlock(scanner *Scanner, block DiagramBlock) BlockResult {
	result := BlockResult{Block: block}

	corrected, res, err := c.engine.CorrectText(block.Content)
	if err != nil {
		result.Err = fmt.Errorf("block at line %d: %w", block.StartLine+1, err)
		return result
	}
	// Rendering pads ragged lines with trailing spaces, so an untouched
	// block is detected by its correction count, not string equality.
	result.Corrections = res.CorrectionCount()
	if result.Corrections == 0 || corrected == block.Content {
		return result
	}

	if err := scanner.ReplaceBlock(block, corrected); err != nil {
		result.Err = err
		return result
	}
	result.Changed = true
	c.log.Info("diagram block corrected",
		"line", block.StartLine+1,
		"corrections", result.Corrections)
	return result
}
