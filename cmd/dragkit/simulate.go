package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dragkit/internal/config"
	"github.com/vango-dev/dragkit/internal/errors"
	"github.com/vango-dev/dragkit/internal/scenario"
)

// Error output formats for simulate.
const (
	formatPretty  = "pretty"
	formatCompact = "compact"
	formatJSON    = "json"
)

type simulateOptions struct {
	dir     string
	format  string
	quiet   bool
	verbose bool
	noColor bool
}

func simulateCmd() *cobra.Command {
	var opts simulateOptions

	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>...",
		Short: "Replay gesture scenarios",
		Long: `Replay YAML gesture scenarios against an in-memory document.

Each scenario declares a document, its drop targets and draggables, and a
list of steps (pointerdown, dragstart, drag, dragend, gesture, wait,
update, destroy) with optional expectations. Every platform effect is
printed: clone mounts and removals, drop target calls, drag images and
scroll actions.

The command fails when a scenario cannot be loaded or an expectation does
not hold.

Examples:
  dragkit simulate testdata/board.yaml
  dragkit simulate -q scenarios/*.yaml
  dragkit simulate -q --format json scenarios/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "Directory containing dragkit.json")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatPretty, "Error output: pretty, compact or json")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print the summary")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log drag core debug output")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored errors")

	return cmd
}

func runSimulate(stdout, stderr io.Writer, paths []string, opts simulateOptions) error {
	switch opts.format {
	case "", formatPretty, formatCompact, formatJSON:
	default:
		return errors.Newf(errors.CategoryCLI, "unknown error format %q", opts.format).
			WithSuggestion("Use pretty, compact or json")
	}

	if opts.noColor || !stdoutIsTerminal() {
		errors.DisableColors()
	} else {
		errors.EnableColors()
	}

	cfg, err := config.LoadOptional(opts.dir)
	if err != nil {
		errors.Fprint(stderr, err)
		return fmt.Errorf("invalid configuration in %s", opts.dir)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	trace := stdout
	if opts.quiet {
		trace = io.Discard
	}
	runner := scenario.NewRunner(trace, logger, cfg.DragOptions()...)

	failed := 0
	for _, path := range paths {
		sc, err := scenario.Load(path)
		if err != nil {
			printError(stderr, opts.format, errors.FromError(err, errors.CodeScenarioRead))
			failed++
			continue
		}

		report := runner.Run(sc)
		if report.OK() {
			fmt.Fprintf(stdout, "\033[32m✓\033[0m %s: %d steps\n", name(report, path), report.Steps)
			continue
		}
		failed++
		fmt.Fprintf(stdout, "\033[31m✗\033[0m %s: %d failures in %d steps\n", name(report, path), len(report.Failures), report.Steps)
		for _, f := range report.Failures {
			printError(stderr, opts.format, f)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(paths))
	}
	return nil
}

// printError writes err to w in the requested format. Compact and JSON
// output use one line per error.
func printError(w io.Writer, format string, err *errors.Error) {
	switch format {
	case formatCompact:
		fmt.Fprintln(w, err.FormatCompact())
	case formatJSON:
		fmt.Fprintln(w, err.FormatJSON())
	default:
		errors.Fprint(w, err)
	}
}

func name(r *scenario.Report, path string) string {
	if r.Name != "" {
		return r.Name
	}
	return path
}

// stdoutIsTerminal reports whether colors make sense on stdout.
func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
