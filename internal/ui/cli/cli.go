// Package cli wires the deadspan command tree.
package cli

import (
	"context"
	deaderrors "deadspan/internal/core/errors"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

type globalOptions struct {
	quiet   bool
	verbose bool
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	if deaderrors.IsFatal(err) {
		fmt.Fprintln(stderr, "No report was produced.")
	}
	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(stderr, "Run 'deadspan --help' for usage.")
		return ExitUsage
	}
	return ExitFatal
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var global globalOptions

	root := &cobra.Command{
		Use:   "deadspan",
		Short: "Estimate how many lines of unused exported code a project carries",
		Long: `deadspan finds exported declarations that nothing outside themselves
and outside test code refers to, and reports how many lines removing them
would save.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(stderr, global)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	root.PersistentFlags().BoolVarP(&global.quiet, "quiet", "q", false, "Suppress progress output")
	root.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newRunCmd(stdout, &global), newVersionCmd(stdout))
	return root
}

func setupLogging(w io.Writer, global globalOptions) {
	level := slog.LevelInfo
	if global.verbose {
		level = slog.LevelDebug
	} else if global.quiet {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func noArgs(_ *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usagef("unexpected arguments: %s", strings.Join(args, " "))
	}
	return nil
}
