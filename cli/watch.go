package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"gridfix/backup"
	"gridfix/correct"
	"gridfix/markdown"
)

// debounceWindow coalesces the bursts of write events editors emit when
// saving a file.
const debounceWindow = 250 * time.Millisecond

func (a *app) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <path>...",
		Short: "Watch files or directories and re-correct diagrams on change",
		Long: `Watch monitors the given files or directories. When a .txt file
changes it is corrected in place; when a .md file changes its diagram
blocks are corrected in place. Corrections that produce no change do
not rewrite the file, so gridfix's own writes do not loop.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			for _, path := range args {
				if err := watcher.Add(path); err != nil {
					return withCode(ExitInput, fmt.Errorf("watching %s: %w", path, err))
				}
			}
			a.log.Info("watching", "paths", strings.Join(args, ", "))

			pending := make(map[string]time.Time)
			ticker := time.NewTicker(debounceWindow)
			defer ticker.Stop()

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
						continue
					}
					if watchable(event.Name) {
						pending[event.Name] = time.Now()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					a.log.Warn("watch error", "error", err)
				case now := <-ticker.C:
					for name, stamp := range pending {
						if now.Sub(stamp) < debounceWindow {
							continue
						}
						delete(pending, name)
						if err := a.processChanged(cmd, name); err != nil {
							a.log.Warn("correction failed", "file", name, "error", err)
						}
					}
				}
			}
		},
	}
	return cmd
}

func watchable(name string) bool {
	if strings.HasSuffix(name, ".bak") {
		return false
	}
	switch filepath.Ext(name) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}

// processChanged re-corrects one changed file in place.
func (a *app) processChanged(cmd *cobra.Command, name string) error {
	engine := correct.NewEngine(a.cfg.Options(), a.log)
	out := cmd.OutOrStdout()

	if filepath.Ext(name) == ".md" {
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		corrector := markdown.NewCorrector(engine, a.log)
		updated, results := corrector.FixDocument(string(data))
		changed := 0
		for _, r := range results {
			if r.Err == nil && r.Changed {
				changed++
			}
		}
		if changed == 0 {
			return nil
		}
		if a.cfg.Backup {
			if _, err := backup.Create(name); err != nil {
				return err
			}
		}
		if err := os.WriteFile(name, []byte(updated), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: corrected %d diagram blocks\n", name, changed)
		return nil
	}

	text, err := readInput(name)
	if err != nil {
		return err
	}
	corrected, result, err := engine.CorrectText(text)
	if err != nil {
		return err
	}
	if result.CorrectionCount() == 0 {
		return nil
	}
	if a.cfg.Backup {
		if _, err := backup.Create(name); err != nil {
			return err
		}
	}
	if err := os.WriteFile(name, []byte(corrected+"\n"), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %d corrections\n", name, result.CorrectionCount())
	return nil
}
