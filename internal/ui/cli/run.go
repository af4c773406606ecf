package cli

import (
	"context"
	"deadspan/internal/core/app"
	"deadspan/internal/core/config"
	"deadspan/internal/shared/observability"
	"deadspan/internal/ui/report"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type runOptions struct {
	project     string
	ignoreCheck string
	format      string
	output      string
	workers     int
	history     bool
	metricsOut  string
}

func newRunCmd(stdout io.Writer, global *globalOptions) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run --project <config> [--ignoreCheck <rules>]",
		Short: "Analyze a project and report unused exported declarations",
		Long: `Analyze every source unit of the project and report exported declarations
without external references, largest first.

Examples:
  deadspan run --project deadspan.toml
  deadspan run --project deadspan.yaml --ignoreCheck .deadspanignore --format sarif --output out/deadspan.sarif`,
		Args: noArgs,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if strings.TrimSpace(opts.project) == "" {
				return usagef("--project is required")
			}
			if opts.format != "" && !config.IsSupportedFormat(strings.ToLower(opts.format)) {
				return usagef("unsupported --format %q (want one of %s)", opts.format, strings.Join(config.SupportedFormats, ", "))
			}
			if opts.workers < 0 {
				return usagef("--workers must be >= 0, got %d", opts.workers)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalysis(cmd.Context(), stdout, opts, *global)
		},
	}

	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "Project configuration file (TOML or YAML)")
	cmd.Flags().StringVar(&opts.ignoreCheck, "ignoreCheck", "", "Filter rule file replacing the built-in rules")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: text, tsv, json, sarif or markdown")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Units analyzed in parallel (0 uses analysis.workers)")
	cmd.Flags().BoolVar(&opts.history, "history", false, "Persist a run snapshot and log the change since the previous run")
	cmd.Flags().StringVar(&opts.metricsOut, "metrics-out", "", "Write Prometheus metrics to this file")

	return cmd
}

func runAnalysis(ctx context.Context, stdout io.Writer, opts runOptions, global globalOptions) error {
	cfg, err := config.Load(opts.project)
	if err != nil {
		return err
	}
	if opts.format != "" {
		cfg.Output.Format = strings.ToLower(opts.format)
	}
	if opts.output != "" {
		cfg.Output.Path = opts.output
	}
	if opts.metricsOut != "" {
		cfg.Observability.MetricsPath = opts.metricsOut
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Observability.EnableTracing,
		Endpoint:    cfg.Observability.OTLPEndpoint,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	appOpts := app.Options{
		RulesPath: opts.ignoreCheck,
		Workers:   opts.workers,
		History:   opts.history,
	}
	if global.quiet {
		progress := false
		appOpts.Progress = &progress
	}

	a, err := app.New(cfg, appOpts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("failed to close history store", "error", err)
		}
	}()

	res, err := a.Run(ctx)
	if err != nil {
		return err
	}

	if res.Delta != nil && res.Delta.Previous != nil {
		slog.Info("compared with previous run",
			"previous", res.Delta.Previous.ID,
			"unused", res.Delta.Unused,
			"unknown", res.Delta.Unknown,
			"lines", res.Delta.Lines,
		)
	}

	r := report.Build(res, cfg.Project.Root)
	reportOpts := report.Options{
		Format:       cfg.Output.Format,
		Root:         cfg.Project.Root,
		SnippetCache: cfg.Output.SnippetCache,
	}
	if cfg.Output.Path != "" {
		if err := report.WriteFile(cfg.Output.Path, r, reportOpts); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		slog.Info("report written", "path", cfg.Output.Path, "format", cfg.Output.Format)
	} else if err := report.Write(stdout, r, reportOpts); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.Observability.MetricsPath != "" {
		if err := observability.WriteMetrics(cfg.Observability.MetricsPath); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
