package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"gridfix/correct"
	"gridfix/validation"
)

// styles carries the report styling. On non-TTY output every style is
// a no-op so piped output stays plain.
type styles struct {
	heading lipgloss.Style
	good    lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles() styles {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return styles{}
	}
	return styles{
		heading: lipgloss.NewStyle().Bold(true),
		good:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		dim:     lipgloss.NewStyle().Faint(true),
	}
}

// summaryJSON is the machine-readable shape of a result.
type summaryJSON struct {
	Structure         string           `json:"structure"`
	Lines             int              `json:"lines"`
	Groups            int              `json:"groups"`
	Boxes             int              `json:"boxes"`
	Corrections       []correctionJSON `json:"corrections"`
	SkippedBounds     int              `json:"skipped_bounds"`
	SkippedCollisions int              `json:"skipped_collisions"`
}

type correctionJSON struct {
	Source     string  `json:"source"`
	RowOffset  int     `json:"row_offset"`
	ColOffset  int     `json:"col_offset"`
	Cells      int     `json:"cells"`
	Confidence float64 `json:"confidence"`
}

func toSummaryJSON(result correct.Result) summaryJSON {
	s := summaryJSON{
		Structure:         result.Structure.String(),
		Lines:             len(result.Lines),
		Groups:            len(result.Groups),
		Boxes:             len(result.Boxes),
		Corrections:       []correctionJSON{},
		SkippedBounds:     result.SkippedBounds,
		SkippedCollisions: result.SkippedCollisions,
	}
	for _, corr := range result.Corrections {
		s.Corrections = append(s.Corrections, correctionJSON{
			Source:     string(corr.Source),
			RowOffset:  corr.RowOffset,
			ColOffset:  corr.ColOffset,
			Cells:      len(corr.Line.Cells),
			Confidence: corr.Confidence,
		})
	}
	return s
}

// printSummary writes a human or JSON report of a correction result.
func (a *app) printSummary(w io.Writer, result correct.Result) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toSummaryJSON(result))
	}

	st := newStyles()
	fmt.Fprintln(w, st.heading.Render("structure:"), result.Structure)
	fmt.Fprintf(w, "%s %d lines, %d groups, %d boxes\n",
		st.heading.Render("detected:"), len(result.Lines), len(result.Groups), len(result.Boxes))

	if result.CorrectionCount() == 0 {
		fmt.Fprintln(w, st.good.Render("no corrections"))
	} else {
		fmt.Fprintln(w, st.heading.Render(fmt.Sprintf("corrections: %d", result.CorrectionCount())))
		for _, corr := range result.Corrections {
			fmt.Fprintf(w, "  %-9s %s (%d cells, confidence %.2f)\n",
				corr.Source, describeOffset(corr), len(corr.Line.Cells), corr.Confidence)
		}
	}
	if result.SkippedBounds > 0 || result.SkippedCollisions > 0 {
		fmt.Fprintln(w, st.warn.Render(fmt.Sprintf("skipped: %d out of bounds, %d collisions",
			result.SkippedBounds, result.SkippedCollisions)))
	}
	return nil
}

func describeOffset(corr correct.ShiftCorrection) string {
	switch {
	case corr.RowOffset != 0 && corr.ColOffset != 0:
		return fmt.Sprintf("shift %+d rows, %+d cols", corr.RowOffset, corr.ColOffset)
	case corr.RowOffset != 0:
		return fmt.Sprintf("shift %+d rows", corr.RowOffset)
	default:
		return fmt.Sprintf("shift %+d cols", corr.ColOffset)
	}
}

// printIssues writes a validation report.
func (a *app) printIssues(w io.Writer, issues []validation.Issue) error {
	if a.jsonOut {
		type issueJSON struct {
			Row     int    `json:"row"`
			Col     int    `json:"col"`
			Rune    string `json:"rune"`
			Message string `json:"message"`
		}
		out := []issueJSON{}
		for _, issue := range issues {
			out = append(out, issueJSON{
				Row:     issue.Pos.Row,
				Col:     issue.Pos.Col,
				Rune:    string(issue.Rune),
				Message: issue.Message,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	st := newStyles()
	if len(issues) == 0 {
		fmt.Fprintln(w, st.good.Render("no connection issues"))
		return nil
	}
	fmt.Fprintln(w, st.warn.Render(fmt.Sprintf("%d connection issues", len(issues))))
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
	return nil
}
