package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridfix/backup"
	"gridfix/correct"
)

func (a *app) correctCmd() *cobra.Command {
	var (
		output  string
		inPlace bool
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "correct [file]",
		Short: "Correct a diagram and print or write the result",
		Long: `Correct reads a diagram from the given file (or stdin), applies
alignment corrections, and writes the result to stdout. With -o the
result goes to a file; with --in-place the input file is rewritten
after a backup copy is taken.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if inPlace && (name == "" || name == "-") {
				return withCode(ExitFailure, fmt.Errorf("--in-place requires a file argument"))
			}
			if inPlace && output != "" {
				return withCode(ExitFailure, fmt.Errorf("--in-place and -o are mutually exclusive"))
			}

			text, err := readInput(name)
			if err != nil {
				return err
			}

			engine := correct.NewEngine(a.cfg.Options(), a.log)
			corrected, result, err := engine.CorrectText(text)
			if err != nil {
				return withCode(ExitParse, err)
			}

			if dryRun {
				return a.printSummary(cmd.OutOrStdout(), result)
			}

			switch {
			case inPlace:
				if result.CorrectionCount() == 0 {
					a.log.Info("no corrections needed", "file", name)
					return nil
				}
				if a.cfg.Backup {
					bak, err := backup.Create(name)
					if err != nil {
						return withCode(ExitInput, err)
					}
					a.log.Info("backup written", "path", bak)
				}
				if err := os.WriteFile(name, []byte(corrected+"\n"), 0o644); err != nil {
					return withCode(ExitInput, err)
				}
				a.log.Info("file corrected", "file", name, "corrections", result.CorrectionCount())
			case output != "":
				if err := os.WriteFile(output, []byte(corrected+"\n"), 0o644); err != nil {
					return withCode(ExitInput, err)
				}
			default:
				fmt.Fprintln(cmd.OutOrStdout(), corrected)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write result to file")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "rewrite the input file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report corrections without writing anything")
	return cmd
}
