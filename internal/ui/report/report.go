// Package report selects an output format and renders an analysis result.
package report

import (
	"deadspan/internal/core/app"
	"deadspan/internal/shared/util"
	"deadspan/internal/shared/version"
	"deadspan/internal/ui/report/formats"
	"fmt"
	"io"
	"strings"
	"time"
)

type Generator interface {
	Generate(w io.Writer, r formats.Report) error
}

type Options struct {
	Format string
	// Root resolves record paths when reading snippets and building SARIF URIs.
	Root string
	// SnippetCache is the number of files kept in memory for markdown excerpts.
	SnippetCache int
}

// Build converts a pipeline result into the format-independent report model.
func Build(res *app.Result, root string) formats.Report {
	r := formats.Report{
		Project:     res.Project,
		Root:        root,
		Version:     version.Version,
		GeneratedAt: res.StartedAt,
		Units:       res.Units,
		Candidates:  res.Candidates,
		Records:     res.Records,
		Files:       res.Files,
		Symbols:     res.Symbols,
		Lines:       res.Lines,
		Delta:       res.Delta,
	}
	for _, u := range res.Unknowns {
		reason := ""
		if u.Err != nil {
			reason = u.Err.Error()
		}
		r.Unknowns = append(r.Unknowns, formats.Unknown{
			Path:   u.Path,
			Name:   u.Name,
			Kind:   u.Kind.String(),
			Line:   u.Pos.Line,
			Column: u.Pos.Column,
			Reason: reason,
		})
	}
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}
	return r
}

func NewGenerator(opts Options) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		return formats.NewTextGenerator(), nil
	case "tsv":
		return formats.NewTSVGenerator(), nil
	case "json":
		return formats.NewJSONGenerator(), nil
	case "sarif":
		return formats.NewSARIFGenerator(), nil
	case "markdown", "md":
		cache, err := formats.NewSnippetCache(opts.Root, opts.SnippetCache)
		if err != nil {
			return nil, fmt.Errorf("create snippet cache: %w", err)
		}
		return formats.NewMarkdownGenerator(cache), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// Write renders r to w.
func Write(w io.Writer, r formats.Report, opts Options) error {
	gen, err := NewGenerator(opts)
	if err != nil {
		return err
	}
	return gen.Generate(w, r)
}

// WriteFile renders r to path, creating parent directories.
func WriteFile(path string, r formats.Report, opts Options) error {
	gen, err := NewGenerator(opts)
	if err != nil {
		return err
	}
	var b strings.Builder
	if err := gen.Generate(&b, r); err != nil {
		return err
	}
	return util.WriteFileWithDirs(path, []byte(b.String()), 0o644)
}
