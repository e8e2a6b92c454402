// Package cli implements the gridfix command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gridfix/config"
	"gridfix/grid"
)

// Exit codes. Anything not specifically classified maps to ExitFailure.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInput   = 2
	ExitParse   = 3
	ExitConfig  = 4
)

// codedError pins an exit code to an error as it crosses command
// boundaries.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, err: err}
}

// exitCode classifies an error for the shell.
func exitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return ExitInput
	}
	if errors.Is(err, grid.ErrInvalidGrid) {
		return ExitParse
	}
	return ExitFailure
}

// app carries the state shared by all commands.
type app struct {
	cfg config.Config
	log *slog.Logger

	// flag storage
	configPath  string
	verbose     bool
	jsonOut     bool
	tolerance   int
	minLine     int
	overlap     float64
	noTrees     bool
	noConnects  bool
	stdout      io.Writer
	stderr      io.Writer
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(a.stderr, "gridfix: %v\n", err)
		return exitCode(err)
	}
	return ExitOK
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gridfix",
		Short: "Detect and repair misaligned ASCII box-and-line diagrams",
		Long: `gridfix reads ASCII diagrams, detects boxes and lines that have
drifted out of alignment, and shifts them back into place. It corrects
plain text files and fenced diagram blocks inside markdown documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default .gridfix.yml if present)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	pf.BoolVar(&a.jsonOut, "json", false, "machine-readable JSON output")
	pf.IntVar(&a.tolerance, "tolerance", -1, "alignment tolerance in cells")
	pf.IntVar(&a.minLine, "min-line-length", -1, "minimum detected line length")
	pf.Float64Var(&a.overlap, "min-overlap", -1, "minimum span overlap ratio for grouping")
	pf.BoolVar(&a.noTrees, "no-preserve-trees", false, "correct tree-like diagrams too")
	pf.BoolVar(&a.noConnects, "no-preserve-connections", false, "leave adjoining corners behind when shifting lines")

	root.AddCommand(a.correctCmd())
	root.AddCommand(a.analyzeCmd())
	root.AddCommand(a.fixMDCmd())
	root.AddCommand(a.watchCmd())
	return root
}

// setup loads configuration, layers flags over it, and builds the
// logger. Runs once before any subcommand.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		if _, err := os.Stat(".gridfix.yml"); err == nil {
			path = ".gridfix.yml"
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return withCode(ExitConfig, err)
	}

	flags := cmd.Flags()
	if flags.Changed("tolerance") {
		cfg.Tolerance = a.tolerance
	}
	if flags.Changed("min-line-length") {
		cfg.MinLineLength = a.minLine
	}
	if flags.Changed("min-overlap") {
		cfg.MinOverlapRatio = a.overlap
	}
	if a.noTrees {
		cfg.PreserveTrees = false
	}
	if a.noConnects {
		cfg.PreserveConnections = false
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return withCode(ExitConfig, err)
	}

	a.cfg = cfg
	a.log = newLogger(a.stderr, cfg.LogLevel, a.jsonOut)
	return nil
}

func newLogger(w io.Writer, level string, jsonHandler bool) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if jsonHandler {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// readInput reads the named file, or stdin when name is empty or "-".
// A single trailing newline is trimmed so it does not become an empty
// grid row; writers add it back.
func readInput(name string) (string, error) {
	var data []byte
	var err error
	if name == "" || name == "-" {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", withCode(ExitInput, fmt.Errorf("reading stdin: %w", err))
		}
	} else {
		data, err = os.ReadFile(name)
		if err != nil {
			return "", withCode(ExitInput, err)
		}
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
