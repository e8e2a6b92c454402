// Package markdown finds fenced diagram blocks in markdown documents
// and splices corrected diagrams back in without disturbing anything
// else in the file.
package markdown

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gridfix/core"
)

// DiagramBlock is one fenced code block that looks like an ASCII
// diagram. Line numbers are 0-based and address the fence lines.
type DiagramBlock struct {
	Lang      string
	Content   string
	StartLine int
	EndLine   int
	Indent    string

	// ContentHash guards against replacing a block whose content
	// changed between scanning and splicing.
	ContentHash string
}

// Scanner extracts diagram blocks from markdown content.
type Scanner struct {
	lines []string
}

// NewScanner creates a scanner over the given document.
func NewScanner(content string) *Scanner {
	return &Scanner{lines: strings.Split(content, "\n")}
}

// Content returns the document as the scanner currently holds it.
func (s *Scanner) Content() string {
	return strings.Join(s.lines, "\n")
}

// diagramLangs are fence languages treated as diagrams outright.
var diagramLangs = map[string]bool{
	"ascii":     true,
	"diagram":   true,
	"art":       true,
	"ascii-art": true,
}

// looseLangs are fence languages that hold diagrams only sometimes;
// their content must additionally look like a diagram.
var looseLangs = map[string]bool{
	"":     true,
	"text": true,
}

// diagramRatioThreshold is the minimum fraction of structural glyphs in
// a loose block's non-space content for it to count as a diagram.
const diagramRatioThreshold = 0.05

// fence is one parsed fence line: indentation, the marker character
// (backtick or tilde), its run length, and the info string.
type fence struct {
	indent string
	marker byte
	length int
	lang   string
}

// parseFence recognises a fence line: optional indentation, three or
// more backticks or tildes, and an optional language word. Anything
// else on the line disqualifies it.
func parseFence(line string) (fence, bool) {
	rest := strings.TrimLeft(line, " \t")
	if rest == "" || (rest[0] != '`' && rest[0] != '~') {
		return fence{}, false
	}
	marker := rest[0]
	length := 0
	for length < len(rest) && rest[length] == marker {
		length++
	}
	if length < 3 {
		return fence{}, false
	}

	lang := strings.TrimRight(rest[length:], " \t")
	for _, r := range lang {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '_', r == '+', r == '-':
		default:
			return fence{}, false
		}
	}
	return fence{
		indent: line[:len(line)-len(rest)],
		marker: marker,
		length: length,
		lang:   strings.ToLower(lang),
	}, true
}

// closes reports whether f terminates a block opened by open: same
// marker, at least as long, and no language word.
func (f fence) closes(open fence) bool {
	return f.marker == open.marker && f.length >= open.length && f.lang == ""
}

// FindBlocks returns every diagram block in document order. Every fence
// is paired with its close regardless of language, so a plain code
// block never swallows the diagram block after it; the language filter
// runs on the paired blocks.
func (s *Scanner) FindBlocks() []DiagramBlock {
	var blocks []DiagramBlock
	for i := 0; i < len(s.lines); {
		open, ok := parseFence(s.lines[i])
		if !ok {
			i++
			continue
		}

		end := -1
		for j := i + 1; j < len(s.lines); j++ {
			if f, ok := parseFence(s.lines[j]); ok && f.closes(open) {
				end = j
				break
			}
		}
		if end < 0 {
			// Unclosed fence.
			i++
			continue
		}

		var body []string
		for j := i + 1; j < end; j++ {
			body = append(body, strings.TrimPrefix(s.lines[j], open.indent))
		}
		content := strings.Join(body, "\n")

		if diagramLangs[open.lang] || (looseLangs[open.lang] && looksLikeDiagram(content)) {
			blocks = append(blocks, DiagramBlock{
				Lang:        open.lang,
				Content:     content,
				StartLine:   i,
				EndLine:     end,
				Indent:      open.indent,
				ContentHash: hashContent(content),
			})
		}
		i = end + 1
	}
	return blocks
}

// ReplaceBlock splices new content into a block, verifying first that
// the fences are where the scan left them and the content is untouched.
// Callers replacing several blocks should work bottom-up so earlier
// line numbers stay valid.
func (s *Scanner) ReplaceBlock(block DiagramBlock, newContent string) error {
	if block.StartLine < 0 || block.EndLine >= len(s.lines) || block.StartLine >= block.EndLine {
		return fmt.Errorf("block boundaries out of range: lines %d..%d of %d",
			block.StartLine, block.EndLine, len(s.lines))
	}
	for _, line := range []int{block.StartLine, block.EndLine} {
		if _, ok := parseFence(s.lines[line]); !ok {
			return fmt.Errorf("fence moved at line %d", line+1)
		}
	}

	var current []string
	for i := block.StartLine + 1; i < block.EndLine; i++ {
		current = append(current, strings.TrimPrefix(s.lines[i], block.Indent))
	}
	if hashContent(strings.Join(current, "\n")) != block.ContentHash {
		return fmt.Errorf("block at line %d changed since it was scanned", block.StartLine+1)
	}

	var body []string
	for _, line := range strings.Split(newContent, "\n") {
		if line == "" {
			body = append(body, "")
		} else {
			body = append(body, block.Indent+line)
		}
	}

	lines := append([]string{}, s.lines[:block.StartLine+1]...)
	lines = append(lines, body...)
	lines = append(lines, s.lines[block.EndLine:]...)
	s.lines = lines
	return nil
}

// looksLikeDiagram reports whether enough of the content's non-space
// characters are structural glyphs.
func looksLikeDiagram(content string) bool {
	structural, total := 0, 0
	for _, r := range content {
		if r == ' ' || r == '\n' || r == '\t' {
			continue
		}
		total++
		if core.Classify(r).IsStructural() {
			structural++
		}
	}
	if total == 0 {
		return false
	}
	return float64(structural)/float64(total) >= diagramRatioThreshold
}

func hashContent(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
