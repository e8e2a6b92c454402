package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = "# Title\n" +
	"\n" +
	"Some prose.\n" +
	"\n" +
	"```ascii\n" +
	"+--+\n" +
	"|  |\n" +
	"+--+\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"func main() {}\n" +
	"```\n"

func TestFindBlocksByLanguage(t *testing.T) {
	blocks := NewScanner(sampleDoc).FindBlocks()
	require.Len(t, blocks, 1)

	block := blocks[0]
	assert.Equal(t, "ascii", block.Lang)
	assert.Equal(t, 4, block.StartLine)
	assert.Equal(t, 8, block.EndLine)
	assert.Equal(t, "+--+\n|  |\n+--+", block.Content)
	assert.NotEmpty(t, block.ContentHash)
}

func TestFindBlocksLooseLanguageNeedsDiagramContent(t *testing.T) {
	doc := "```text\n" +
		"just words here\n" +
		"```\n" +
		"\n" +
		"```\n" +
		"+----+\n" +
		"|    |\n" +
		"+----+\n" +
		"```\n"
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "+----+\n|    |\n+----+", blocks[0].Content)
}

func TestFindBlocksAfterCodeBlock(t *testing.T) {
	// The go block's closing fence must not open a bogus loose block
	// that swallows the diagram fence after it.
	doc := "```go\n" +
		"func main() {}\n" +
		"```\n" +
		"\n" +
		"Some prose between the blocks.\n" +
		"\n" +
		"```ascii\n" +
		"  |\n" +
		"  |\n" +
		" |\n" +
		"```\n"
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "ascii", blocks[0].Lang)
	assert.Equal(t, 6, blocks[0].StartLine)
	assert.Equal(t, "  |\n  |\n |", blocks[0].Content)
}

func TestFindBlocksTildeFences(t *testing.T) {
	doc := "~~~ascii\n" +
		"+--+\n" +
		"~~~\n"
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "+--+", blocks[0].Content)
}

func TestFindBlocksLongerFences(t *testing.T) {
	// A four-backtick fence is only closed by four or more backticks;
	// the three-backtick line inside stays content.
	doc := "````ascii\n" +
		"```\n" +
		"+--+\n" +
		"````\n"
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "```\n+--+", blocks[0].Content)
}

func TestFindBlocksBacktickInsideTildeBlock(t *testing.T) {
	doc := "~~~ascii\n" +
		"```\n" +
		"+--+\n" +
		"~~~\n"
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "```\n+--+", blocks[0].Content)
}

func TestParseFenceRejectsNonFences(t *testing.T) {
	for _, line := range []string{
		"``not enough",
		"``` spaced lang words",
		"prose with ``` inside",
		"",
	} {
		_, ok := parseFence(line)
		assert.False(t, ok, "line %q", line)
	}

	f, ok := parseFence("  ````ascii  ")
	require.True(t, ok)
	assert.Equal(t, "  ", f.indent)
	assert.Equal(t, byte('`'), f.marker)
	assert.Equal(t, 4, f.length)
	assert.Equal(t, "ascii", f.lang)
}

func TestFindBlocksIgnoresOtherLanguages(t *testing.T) {
	doc := "```python\n" +
		"x = [1, 2]\n" +
		"```\n"
	assert.Empty(t, NewScanner(doc).FindBlocks())
}

func TestFindBlocksIndentedFence(t *testing.T) {
	doc := "- item\n" +
		"  ```ascii\n" +
		"  +--+\n" +
		"  +--+\n" +
		"  ```\n"
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "  ", blocks[0].Indent)
	assert.Equal(t, "+--+\n+--+", blocks[0].Content)
}

func TestFindBlocksUnclosedFence(t *testing.T) {
	doc := "```ascii\n+--+\n"
	assert.Empty(t, NewScanner(doc).FindBlocks())
}

func TestReplaceBlock(t *testing.T) {
	s := NewScanner(sampleDoc)
	blocks := s.FindBlocks()
	require.Len(t, blocks, 1)

	require.NoError(t, s.ReplaceBlock(blocks[0], "+----+\n|    |\n+----+"))

	content := s.Content()
	assert.Contains(t, content, "```ascii\n+----+\n|    |\n+----+\n```")
	// The rest of the document is untouched.
	assert.Contains(t, content, "# Title")
	assert.Contains(t, content, "func main() {}")
}

func TestReplaceBlockReappliesIndent(t *testing.T) {
	doc := "  ```ascii\n" +
		"  +--+\n" +
		"  ```\n"
	s := NewScanner(doc)
	blocks := s.FindBlocks()
	require.Len(t, blocks, 1)

	require.NoError(t, s.ReplaceBlock(blocks[0], "+----+"))
	assert.Equal(t, "  ```ascii\n  +----+\n  ```\n", s.Content())
}

func TestReplaceBlockDetectsDrift(t *testing.T) {
	s := NewScanner(sampleDoc)
	blocks := s.FindBlocks()
	require.Len(t, blocks, 1)

	// Edit the block behind the scanner's back.
	require.NoError(t, s.ReplaceBlock(blocks[0], "edited"))
	err := s.ReplaceBlock(blocks[0], "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changed")
}

func TestReplaceBlockRejectsBadBoundaries(t *testing.T) {
	s := NewScanner(sampleDoc)
	err := s.ReplaceBlock(DiagramBlock{StartLine: 2, EndLine: 1}, "x")
	assert.Error(t, err)

	err = s.ReplaceBlock(DiagramBlock{StartLine: 0, EndLine: 999}, "x")
	assert.Error(t, err)
}

func TestLooksLikeDiagram(t *testing.T) {
	assert.True(t, looksLikeDiagram("+--+\n|  |\n+--+"))
	assert.True(t, looksLikeDiagram("boxes | and | pipes"))
	assert.False(t, looksLikeDiagram("plain sentences with no drawing at all"))
	assert.False(t, looksLikeDiagram(""))
	assert.False(t, looksLikeDiagram("   \n  "))
}

func TestMultipleBlocksInOrder(t *testing.T) {
	doc := strings.Repeat("```ascii\n+--+\n```\n\n", 3)
	blocks := NewScanner(doc).FindBlocks()
	require.Len(t, blocks, 3)
	assert.Less(t, blocks[0].StartLine, blocks[1].StartLine)
	assert.Less(t, blocks[1].StartLine, blocks[2].StartLine)
}
