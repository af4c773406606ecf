package app

import (
	"context"
	"deadspan/internal/data/history"
	"deadspan/internal/engine/classifier"
	"deadspan/internal/engine/parser"
	"deadspan/internal/engine/savings"
	"deadspan/internal/shared/observability"
	"deadspan/internal/shared/util"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Unknown is a candidate whose reference query failed or timed out. It is
// reported separately and never counted as savings.
type Unknown struct {
	Path string
	Name string
	Kind parser.DeclKind
	Pos  parser.Position
	Err  error
}

type Result struct {
	Project    string
	StartedAt  time.Time
	Duration   time.Duration
	Units      int
	Candidates int
	Records    []savings.Record
	Files      []savings.FileTotal
	Symbols    int
	Lines      int
	Unknowns   []Unknown
	// Delta is set when history is enabled.
	Delta *history.Delta
}

type unitResult struct {
	acc        *savings.Accumulator
	candidates int
	unknowns   []Unknown
}

// Run executes one batch pass: enumerate and parse every unit, build the
// reference index, then collect and classify candidates per unit.
func (a *App) Run(ctx context.Context) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.Run", trace.WithAttributes(
		attribute.String("project", a.Config.Project.Name),
		attribute.Int("workers", a.workers),
	))
	defer span.End()

	started := time.Now()

	phase := time.Now()
	units, err := a.Frontend.EnumerateUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate units: %w", err)
	}
	observability.AnalysisDuration.WithLabelValues("enumerate").Observe(time.Since(phase).Seconds())
	for _, unit := range units {
		observability.UnitsParsedTotal.WithLabelValues(unit.Language).Inc()
	}

	phase = time.Now()
	finder := a.finder(units)
	observability.AnalysisDuration.WithLabelValues("index").Observe(time.Since(phase).Seconds())

	cls, err := classifier.New(finder, classifier.Options{
		TestPatterns: a.Config.Analysis.TestPatterns,
		QueryTimeout: a.Config.Resolver.QueryTimeout,
		Limiter:      a.limiter,
	})
	if err != nil {
		return nil, fmt.Errorf("compile test patterns: %w", err)
	}

	phase = time.Now()
	results, err := a.analyze(ctx, cls, units)
	if err != nil {
		return nil, err
	}
	observability.AnalysisDuration.WithLabelValues("classify").Observe(time.Since(phase).Seconds())

	total := savings.NewAccumulator()
	res := &Result{
		Project:   a.Config.Project.Name,
		StartedAt: started.UTC(),
		Units:     len(units),
	}
	for _, ur := range results {
		total.Merge(ur.acc)
		res.Candidates += ur.candidates
		res.Unknowns = append(res.Unknowns, ur.unknowns...)
	}
	res.Records = total.Records()
	res.Files = total.PerFile()
	res.Symbols, res.Lines = total.Totals()
	res.Duration = time.Since(started)

	observability.UnusedLines.Set(float64(res.Lines))
	span.SetAttributes(
		attribute.Int("units", res.Units),
		attribute.Int("unused", res.Symbols),
		attribute.Int("lines", res.Lines),
	)

	slog.Debug("analysis finished",
		"units", res.Units,
		"candidates", res.Candidates,
		"duration", res.Duration,
		"heap_mb", util.HeapAllocMB(),
	)
	for _, u := range res.Unknowns {
		slog.Warn("could not classify declaration", "path", u.Path, "name", u.Name, "line", u.Pos.Line, "error", u.Err)
	}

	if a.history != nil {
		delta, err := a.recordHistory(ctx, res)
		if err != nil {
			slog.Warn("failed to record run history", "error", err)
		} else {
			res.Delta = &delta
		}
	}

	return res, nil
}

// analyze processes units on a bounded pool. Results are indexed by unit so
// the merge order never depends on scheduling.
func (a *App) analyze(ctx context.Context, cls *classifier.Classifier, units []*parser.Unit) ([]unitResult, error) {
	results := make([]unitResult, len(units))

	var (
		done    atomic.Int64
		lines   atomic.Int64
		logMu   sync.Mutex
		nTotal  = len(units)
		g, gctx = errgroup.WithContext(ctx)
	)
	g.SetLimit(a.workers)

	for i, unit := range units {
		g.Go(func() error {
			ur, err := a.analyzeUnit(gctx, cls, unit)
			if err != nil {
				return err
			}
			results[i] = ur

			_, unitLines := ur.acc.Totals()
			n := done.Add(1)
			running := lines.Add(int64(unitLines))
			if a.progress {
				logMu.Lock()
				slog.Info("analyzed unit", "path", unit.Path, "index", n, "of", nTotal, "lines", unitLines, "total_lines", running)
				logMu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *App) analyzeUnit(ctx context.Context, cls *classifier.Classifier, unit *parser.Unit) (unitResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "app.analyzeUnit", trace.WithAttributes(
		attribute.String("path", unit.Path),
		attribute.String("language", unit.Language),
	))
	defer span.End()

	acc := savings.NewAccumulator()
	candidates := a.Collector.Collect(unit, a.Frontend.DeclarationsOf(unit))
	observability.CandidatesTotal.Add(float64(len(candidates)))

	ur := unitResult{acc: acc, candidates: len(candidates)}
	for _, decl := range candidates {
		start := time.Now()
		result, err := cls.Classify(ctx, decl, a.Frontend.PositionOf(decl.Node))
		if err != nil {
			return unitResult{}, err
		}
		observability.QueryDuration.Observe(time.Since(start).Seconds())
		observability.ClassificationsTotal.WithLabelValues(result.Status.String()).Inc()

		switch result.Status {
		case classifier.StatusUnused:
			acc.Add(unit, decl.Node)
		case classifier.StatusUnknown:
			ur.unknowns = append(ur.unknowns, Unknown{
				Path: unit.Path,
				Name: decl.Name(),
				Kind: decl.Kind(),
				Pos:  decl.Node.NamePos,
				Err:  result.Err,
			})
		}
	}
	return ur, nil
}

func (a *App) recordHistory(ctx context.Context, res *Result) (history.Delta, error) {
	previous, err := a.history.LatestRuns(ctx, res.Project, 1)
	if err != nil {
		return history.Delta{}, err
	}

	run := history.Run{
		Project:    res.Project,
		StartedAt:  res.StartedAt,
		Duration:   res.Duration,
		Units:      res.Units,
		Candidates: res.Candidates,
		Unused:     res.Symbols,
		Unknown:    len(res.Unknowns),
		Lines:      res.Lines,
	}
	for _, f := range res.Files {
		run.Files = append(run.Files, history.FileTotal{Path: f.Path, Symbols: f.Symbols, Lines: f.Lines})
	}
	if err := a.history.SaveRun(ctx, run); err != nil {
		return history.Delta{}, err
	}

	var prev *history.Run
	if len(previous) > 0 {
		prev = &previous[0]
	}
	return history.Compare(run, prev), nil
}
