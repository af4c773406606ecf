package app

import (
	"deadspan/internal/core/config"
	"deadspan/internal/core/errors"
	"deadspan/internal/core/ports"
	"deadspan/internal/data/history"
	"deadspan/internal/engine/collector"
	"deadspan/internal/engine/filter"
	"deadspan/internal/engine/parser"
	"deadspan/internal/engine/resolver"
	"deadspan/internal/shared/util"
	"fmt"
	"log/slog"
)

// Options are per-invocation settings that come from the command line rather
// than from the project configuration.
type Options struct {
	// RulesPath replaces the built-in filter rules with the rules in this file.
	RulesPath string
	// Workers overrides analysis.workers when positive.
	Workers int
	// Progress overrides output.progress when set.
	Progress *bool
	// History persists a run snapshot and computes the delta to the previous run.
	History bool
}

// Dependencies lets callers swap the collaborators. Nil fields get the
// tree-sitter front-end, the name-index resolver and the SQLite history store.
type Dependencies struct {
	Frontend ports.Frontend
	// Finder builds the reference finder once every unit is parsed.
	Finder  func(units []*parser.Unit) ports.ReferenceFinder
	History ports.HistoryStore
}

type App struct {
	Config    *config.Config
	Frontend  ports.Frontend
	Collector *collector.Collector
	Filter    *filter.Filter

	finder   func(units []*parser.Unit) ports.ReferenceFinder
	history  ports.HistoryStore
	limiter  *util.Limiter
	workers  int
	progress bool
}

func New(cfg *config.Config, opts Options) (*App, error) {
	return NewWithDependencies(cfg, opts, Dependencies{})
}

func NewWithDependencies(cfg *config.Config, opts Options, deps Dependencies) (*App, error) {
	if cfg == nil {
		return nil, errors.New(errors.CodeConfig, "config is required")
	}

	rules := filter.DefaultRules()
	if opts.RulesPath != "" {
		loaded, err := filter.LoadRules(opts.RulesPath)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}
	f := filter.Compile(rules)
	if f.Len() < len(rules) {
		slog.Warn("dropped invalid filter rules", "loaded", len(rules), "compiled", f.Len())
	}

	frontend := deps.Frontend
	if frontend == nil {
		fe, err := newFrontend(cfg)
		if err != nil {
			return nil, err
		}
		frontend = fe
	}

	finder := deps.Finder
	if finder == nil {
		finder = func(units []*parser.Unit) ports.ReferenceFinder {
			ix := resolver.NewIndex(units)
			slog.Debug("reference index built", "units", len(units), "names", ix.Names())
			return ix
		}
	}

	store := deps.History
	if store == nil && (opts.History || cfg.History.Enabled) {
		s, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "open history store"), errors.CtxPath, cfg.History.Path)
		}
		store = s
	}

	workers := cfg.Analysis.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers < 1 {
		workers = config.DefaultWorkers
	}
	progress := cfg.ProgressEnabled()
	if opts.Progress != nil {
		progress = *opts.Progress
	}

	return &App{
		Config:    cfg,
		Frontend:  frontend,
		Collector: collector.New(f, heuristicsFromConfig(cfg.Analysis)),
		Filter:    f,
		finder:    finder,
		history:   store,
		limiter:   util.NewLimiter(cfg.Resolver.MaxQPS, 1),
		workers:   workers,
		progress:  progress,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.history == nil {
		return nil
	}
	return a.history.Close()
}

func newFrontend(cfg *config.Config) (*parser.Frontend, error) {
	overrides := make(map[string]parser.LanguageOverride, len(cfg.Languages))
	for _, id := range util.SortedStringKeys(cfg.Languages) {
		lang := cfg.Languages[id]
		overrides[id] = parser.LanguageOverride{Enabled: lang.Enabled, Extensions: lang.Extensions}
	}
	registry, err := parser.BuildLanguageRegistry(overrides)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "invalid languages section")
	}
	loader, err := parser.NewGrammarLoader(registry)
	if err != nil {
		return nil, fmt.Errorf("load grammars: %w", err)
	}
	fe, err := parser.NewFrontend(parser.NewParser(loader), parser.FrontendOptions{
		Root:         cfg.Project.Root,
		Include:      cfg.Project.Include,
		ExcludeDirs:  cfg.Exclude.Dirs,
		ExcludeFiles: cfg.Exclude.Files,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfig, "invalid exclude section")
	}
	return fe, nil
}

func heuristicsFromConfig(a config.Analysis) collector.Heuristics {
	h := collector.DefaultHeuristics()
	if a.OverrideNames != nil {
		h.OverrideNames = a.OverrideNames
	}
	if a.BrandPrefix != nil {
		h.BrandPrefix = *a.BrandPrefix
	}
	if a.BrandSuffix != nil {
		h.BrandSuffix = *a.BrandSuffix
	}
	if a.IPC.NamePrefix != nil {
		h.IPCNamePrefix = *a.IPC.NamePrefix
	}
	if a.IPC.FilePrefixes != nil {
		h.IPCFilePrefixes = a.IPC.FilePrefixes
	}
	return h
}
