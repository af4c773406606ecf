// Package classifier decides whether a candidate declaration is used outside
// of itself and of test code.
package classifier

import (
	"context"
	"deadspan/internal/core/errors"
	"deadspan/internal/engine/collector"
	"deadspan/internal/engine/filter"
	"deadspan/internal/engine/parser"
	"deadspan/internal/engine/resolver"
	"deadspan/internal/shared/util"
	stderrors "errors"
	"time"
)

type Status int

const (
	StatusUsed Status = iota
	StatusUnused
	// StatusUnknown marks a candidate whose query failed or timed out.
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusUsed:
		return "used"
	case StatusUnused:
		return "unused"
	default:
		return "unknown"
	}
}

// Finder is the reference query the classifier depends on.
type Finder interface {
	FindReferences(ctx context.Context, unit *parser.Unit, pos parser.Position) ([]resolver.ReferenceGroup, error)
}

type Options struct {
	// TestPatterns are path globs whose references never count as uses.
	TestPatterns []string
	QueryTimeout time.Duration
	Limiter      *util.Limiter
}

type Result struct {
	Declaration collector.Declaration
	Status      Status
	Err         error
}

type Classifier struct {
	finder  Finder
	tests   *filter.Matcher
	timeout time.Duration
	limiter *util.Limiter
}

func New(finder Finder, opts Options) (*Classifier, error) {
	tests, err := filter.NewMatcher(opts.TestPatterns)
	if err != nil {
		return nil, err
	}
	return &Classifier{
		finder:  finder,
		tests:   tests,
		timeout: opts.QueryTimeout,
		limiter: opts.Limiter,
	}, nil
}

// Classify runs one reference query for decl. Query errors and timeouts give
// StatusUnknown; cancellation of ctx itself is returned as an error.
func (c *Classifier) Classify(ctx context.Context, decl collector.Declaration, pos parser.Position) (Result, error) {
	if err := c.limiter.Wait(ctx, 1); err != nil {
		return Result{}, err
	}

	qctx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		qctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	groups, err := c.finder.FindReferences(qctx, decl.Unit, pos)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			err = errors.AddContext(errors.Wrap(err, errors.CodeTimeout, "reference query timed out"), errors.CtxSymbol, decl.Name())
		}
		return Result{Declaration: decl, Status: StatusUnknown, Err: err}, nil
	}
	if c.used(decl, groups) {
		return Result{Declaration: decl, Status: StatusUsed}, nil
	}
	return Result{Declaration: decl, Status: StatusUnused}, nil
}

// used reports whether any reference survives the definition, test-location
// and self-reference filters.
func (c *Classifier) used(decl collector.Declaration, groups []resolver.ReferenceGroup) bool {
	member := decl.Kind().IsMember()
	span := decl.Node.Span
	for _, group := range groups {
		for _, ref := range group.References {
			if ref.IsDefinition {
				continue
			}
			if c.tests.Match(ref.Path) {
				continue
			}
			if member && ref.Path == decl.Unit.Path && span.StrictlyContains(ref.Pos) {
				continue
			}
			return true
		}
	}
	return false
}
