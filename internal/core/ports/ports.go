package ports

import (
	"context"
	"deadspan/internal/data/history"
	"deadspan/internal/engine/parser"
	"deadspan/internal/engine/resolver"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=ports.go -destination=mocks/ports.gen.go -package=mocks

// Frontend enumerates source units and exposes their declaration trees.
// Units that cannot be read or parsed are skipped, never returned as errors.
type Frontend interface {
	EnumerateUnits(ctx context.Context) ([]*parser.Unit, error)
	DeclarationsOf(unit *parser.Unit) *parser.Node
	PositionOf(node *parser.Node) parser.Position
}

// ReferenceFinder performs whole-project symbol search. An empty result means
// no references were found.
type ReferenceFinder interface {
	FindReferences(ctx context.Context, unit *parser.Unit, pos parser.Position) ([]resolver.ReferenceGroup, error)
}

// HistoryStore persists run summaries for trend reporting.
type HistoryStore interface {
	SaveRun(ctx context.Context, run history.Run) error
	LatestRuns(ctx context.Context, project string, limit int) ([]history.Run, error)
	Close() error
}
