package classifier

import (
	"context"
	deaderrors "deadspan/internal/core/errors"
	"deadspan/internal/core/ports/mocks"
	"deadspan/internal/engine/collector"
	"deadspan/internal/engine/filter"
	"deadspan/internal/engine/parser"
	"deadspan/internal/engine/resolver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func at(line, col int) parser.Position {
	return parser.Position{Line: line, Column: col}
}

func candidate(path string, kind parser.DeclKind, name string, start, end int) collector.Declaration {
	node := &parser.Node{
		Kind:    kind,
		Name:    name,
		NamePos: at(start, 3),
		Span:    parser.Span{Start: at(start, 1), End: at(end, 2)},
	}
	return collector.Declaration{Unit: &parser.Unit{Path: path}, Node: node}
}

func group(decl collector.Declaration, refs ...resolver.Reference) []resolver.ReferenceGroup {
	all := append([]resolver.Reference{{Path: decl.Unit.Path, Pos: decl.Node.NamePos, IsDefinition: true}}, refs...)
	return []resolver.ReferenceGroup{{Definition: decl.Node, DefinitionKind: decl.Kind(), Path: decl.Unit.Path, References: all}}
}

func newClassifier(t *testing.T, finder Finder, timeout time.Duration) *Classifier {
	t.Helper()
	c, err := New(finder, Options{TestPatterns: filter.DefaultPatterns[:6], QueryTimeout: timeout})
	require.NoError(t, err)
	return c
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		decl collector.Declaration
		refs []resolver.Reference
		want Status
	}{
		{
			name: "recursive method is unused",
			decl: candidate("src/tree.ts", parser.KindMethod, "walk", 2, 6),
			refs: []resolver.Reference{{Path: "src/tree.ts", Pos: at(4, 10)}},
			want: StatusUnused,
		},
		{
			name: "method used elsewhere in its own file",
			decl: candidate("src/tree.ts", parser.KindMethod, "walk", 2, 6),
			refs: []resolver.Reference{{Path: "src/tree.ts", Pos: at(12, 5)}},
			want: StatusUsed,
		},
		{
			name: "reference on the span boundary counts",
			decl: candidate("src/tree.ts", parser.KindProperty, "size", 2, 2),
			refs: []resolver.Reference{{Path: "src/tree.ts", Pos: at(2, 2)}},
			want: StatusUsed,
		},
		{
			name: "recursive function is used",
			decl: candidate("src/math.ts", parser.KindFunction, "fib", 1, 4),
			refs: []resolver.Reference{{Path: "src/math.ts", Pos: at(3, 12)}},
			want: StatusUsed,
		},
		{
			name: "test references are ignored",
			decl: candidate("src/math.ts", parser.KindFunction, "add", 1, 3),
			refs: []resolver.Reference{
				{Path: "src/math.test.ts", Pos: at(4, 1)},
				{Path: "test/helpers.ts", Pos: at(9, 1)},
				{Path: "src/__tests__/math.ts", Pos: at(2, 1)},
			},
			want: StatusUnused,
		},
		{
			name: "other definitions are ignored",
			decl: candidate("src/math.ts", parser.KindFunction, "add", 1, 3),
			refs: []resolver.Reference{{Path: "src/other.ts", Pos: at(1, 1), IsDefinition: true}},
			want: StatusUnused,
		},
		{
			name: "one external reference suffices",
			decl: candidate("src/math.ts", parser.KindFunction, "add", 1, 3),
			refs: []resolver.Reference{
				{Path: "src/math.spec.ts", Pos: at(1, 1)},
				{Path: "src/app.ts", Pos: at(7, 3)},
			},
			want: StatusUsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			finder := mocks.NewMockReferenceFinder(ctrl)
			finder.EXPECT().
				FindReferences(gomock.Any(), tt.decl.Unit, tt.decl.Node.NamePos).
				Return(group(tt.decl, tt.refs...), nil)

			res, err := newClassifier(t, finder, time.Second).Classify(context.Background(), tt.decl, tt.decl.Node.NamePos)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.NoError(t, res.Err)
		})
	}
}

func TestClassifyEmptyResultIsUnused(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockReferenceFinder(ctrl)
	decl := candidate("src/a.ts", parser.KindClass, "Orphan", 1, 9)
	finder.EXPECT().FindReferences(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := newClassifier(t, finder, 0).Classify(context.Background(), decl, decl.Node.NamePos)
	require.NoError(t, err)
	assert.Equal(t, StatusUnused, res.Status)
}

func TestClassifyResolverErrorIsUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockReferenceFinder(ctrl)
	decl := candidate("src/a.ts", parser.KindFunction, "flaky", 1, 2)
	finder.EXPECT().FindReferences(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("index unavailable"))

	res, err := newClassifier(t, finder, time.Second).Classify(context.Background(), decl, decl.Node.NamePos)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, res.Status)
	assert.EqualError(t, res.Err, "index unavailable")
}

func TestClassifyTimeoutIsUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockReferenceFinder(ctrl)
	decl := candidate("src/a.ts", parser.KindFunction, "slow", 1, 2)
	finder.EXPECT().FindReferences(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *parser.Unit, _ parser.Position) ([]resolver.ReferenceGroup, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	res, err := newClassifier(t, finder, 20*time.Millisecond).Classify(context.Background(), decl, decl.Node.NamePos)
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, res.Status)
	assert.ErrorIs(t, res.Err, context.DeadlineExceeded)
	assert.True(t, deaderrors.IsCode(res.Err, deaderrors.CodeTimeout))
}

func TestClassifyCancelledRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	finder := mocks.NewMockReferenceFinder(ctrl)
	decl := candidate("src/a.ts", parser.KindFunction, "any", 1, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newClassifier(t, finder, time.Second).Classify(ctx, decl, decl.Node.NamePos)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRejectsBadTestPattern(t *testing.T) {
	_, err := New(nil, Options{TestPatterns: []string{"[oops"}})
	assert.Error(t, err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "used", StatusUsed.String())
	assert.Equal(t, "unused", StatusUnused.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}
