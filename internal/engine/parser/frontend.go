// # internal/engine/parser/frontend.go
package parser

import (
	"context"
	"deadspan/internal/shared/util"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

type FrontendOptions struct {
	Root         string
	Include      []string
	ExcludeDirs  []string
	ExcludeFiles []string
}

// Frontend enumerates and parses every supported file under the project
// roots. Unreadable or unparseable files are skipped with a warning.
type Frontend struct {
	parser       *Parser
	root         string
	include      []string
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

func NewFrontend(p *Parser, opts FrontendOptions) (*Frontend, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	f := &Frontend{parser: p, root: root, include: util.UniqueRoots(opts.Include)}
	if len(f.include) == 0 {
		f.include = []string{"."}
	}
	for _, pattern := range opts.ExcludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", pattern, err)
		}
		f.excludeDirs = append(f.excludeDirs, g)
	}
	for _, pattern := range opts.ExcludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", pattern, err)
		}
		f.excludeFiles = append(f.excludeFiles, g)
	}
	return f, nil
}

// EnumerateUnits returns the parsed units in path order.
func (f *Frontend) EnumerateUnits(ctx context.Context) ([]*Unit, error) {
	paths, err := f.scan()
	if err != nil {
		return nil, err
	}

	units := make([]*Unit, 0, len(paths))
	for _, abs := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		unit, err := f.load(abs)
		if err != nil {
			slog.Warn("failed to process file", "path", abs, "error", err)
			continue
		}
		if unit != nil {
			units = append(units, unit)
		}
	}
	return units, nil
}

func (f *Frontend) DeclarationsOf(unit *Unit) *Node {
	return unit.Root
}

func (f *Frontend) PositionOf(node *Node) Position {
	return node.NamePos
}

func (f *Frontend) scan() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, include := range f.include {
		start := include
		if !filepath.IsAbs(start) {
			start = filepath.Join(f.root, include)
		}
		err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == start {
					return err
				}
				slog.Warn("failed to read path", "path", path, "error", err)
				return nil
			}

			base := filepath.Base(path)
			if d.IsDir() {
				if path == start {
					return nil
				}
				for _, g := range f.excludeDirs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}

			if !f.parser.Supports(path) {
				return nil
			}
			for _, g := range f.excludeFiles {
				if g.Match(base) {
					return nil
				}
			}
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", start, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (f *Frontend) load(abs string) (*Unit, error) {
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	if IsGeneratedFile(content) {
		slog.Debug("skipping generated file", "path", abs)
		return nil, nil
	}
	rel, err := filepath.Rel(f.root, abs)
	if err != nil {
		rel = abs
	}
	return f.parser.ParseFile(abs, filepath.ToSlash(rel), content)
}
