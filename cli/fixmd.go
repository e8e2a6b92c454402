package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gridfix/backup"
	"gridfix/correct"
	"gridfix/markdown"
)

func (a *app) fixMDCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix-md <file>",
		Short: "Correct every ASCII diagram block inside a markdown file",
		Long: `Fix-md scans a markdown document for fenced code blocks that contain
ASCII diagrams, corrects each through the alignment pipeline, and
rewrites the file in place with a backup. Everything outside the
diagram blocks is left byte for byte as it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			data, err := os.ReadFile(name)
			if err != nil {
				return withCode(ExitInput, err)
			}

			engine := correct.NewEngine(a.cfg.Options(), a.log)
			corrector := markdown.NewCorrector(engine, a.log)
			updated, results := corrector.FixDocument(string(data))

			changed := 0
			out := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					a.log.Warn("block skipped", "error", r.Err)
					continue
				}
				if r.Changed {
					changed++
					fmt.Fprintf(out, "line %d: %d corrections\n",
						r.Block.StartLine+1, r.Corrections)
				}
			}
			if changed == 0 {
				fmt.Fprintf(out, "%s: %d diagram blocks, nothing to correct\n", name, len(results))
				return nil
			}

			if dryRun {
				fmt.Fprintf(out, "%s: %d of %d blocks would change\n", name, changed, len(results))
				return nil
			}

			if a.cfg.Backup {
				bak, err := backup.Create(name)
				if err != nil {
					return withCode(ExitInput, err)
				}
				a.log.Info("backup written", "path", bak)
			}
			if err := os.WriteFile(name, []byte(updated), 0o644); err != nil {
				return withCode(ExitInput, err)
			}
			fmt.Fprintf(out, "%s: corrected %d of %d diagram blocks\n", name, changed, len(results))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report blocks without rewriting the file")
	return cmd
}
