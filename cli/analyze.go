package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridfix/correct"
	"gridfix/grid"
	"gridfix/validation"
)

func (a *app) analyzeCmd() *cobra.Command {
	var (
		showLines  bool
		showGroups bool
		validate   bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report detected structure and proposed corrections without changing anything",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			text, err := readInput(name)
			if err != nil {
				return err
			}
			g, err := grid.FromText(text)
			if err != nil {
				return withCode(ExitParse, err)
			}

			engine := correct.NewEngine(a.cfg.Options(), a.log)
			result := engine.Analyze(g)

			out := cmd.OutOrStdout()
			if err := a.printSummary(out, result); err != nil {
				return err
			}

			if showLines && !a.jsonOut {
				for _, line := range result.Lines {
					fmt.Fprintf(out, "  line %s (%d,%d)..(%d,%d) len %d\n",
						line.Direction,
						line.Start().Row, line.Start().Col,
						line.End().Row, line.End().Col,
						line.Length())
				}
			}
			if showGroups && !a.jsonOut {
				for i, group := range result.Groups {
					fmt.Fprintf(out, "  group %d: %d %s lines at coord %d\n",
						i+1, len(group.Lines), group.Direction, group.ExpectedCoord())
				}
			}

			if validate {
				// Validate the output the correction would produce, not
				// the input: the report answers "is it safe to apply".
				applied := correct.NewEngine(a.cfg.Options(), a.log).Correct(g)
				issues := validation.NewValidator().Validate(applied.Corrected)
				if err := a.printIssues(out, issues); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showLines, "lines", false, "list every detected line")
	cmd.Flags().BoolVar(&showGroups, "groups", false, "list every alignment group")
	cmd.Flags().BoolVar(&validate, "validate", false, "validate connections of the corrected output")
	return cmd
}
