package filter

import (
	"deadspan/internal/core/errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	tests := []struct {
		line string
		want Rule
		ok   bool
	}{
		{line: "src/gen/**", want: Rule{Path: "src/gen/**"}, ok: true},
		{line: "src/**|foo:12", want: Rule{Path: "src/**", Name: "foo", Line: 12}, ok: true},
		{line: "|foo", want: Rule{Name: "foo"}, ok: true},
		{line: "|:40", want: Rule{Line: 40}, ok: true},
		{line: "a.ts|", want: Rule{Path: "a.ts"}, ok: true},
		{line: "|ns:Thing", want: Rule{Name: "ns:Thing"}, ok: true},
		{line: "", ok: false},
		{line: "   ", ok: false},
		{line: "# comment", ok: false},
		{line: "|", ok: false},
		{line: "|:0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseRule(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseRulesDropsMalformedLines(t *testing.T) {
	input := "src/a.ts\n\n|\n|bar:3\n# note\n"
	rules, err := ParseRules(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Rule{{Path: "src/a.ts"}, {Name: "bar", Line: 3}}, rules)
}

func TestLoadRulesMissingFileIsFatal(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsFatal(err))
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ignore.txt")
	require.NoError(t, os.WriteFile(path, []byte("vendor/**\n|legacy*\n"), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Len(t, rules, 2)
}

func TestExcludedIsDisjunctive(t *testing.T) {
	f := Compile([]Rule{{Path: "src/legacy/**", Name: "keepMe"}})

	assert.True(t, f.Excluded(Target{Path: "src/legacy/a.ts", Name: "other", Line: 1}), "path alone should exclude")
	assert.True(t, f.Excluded(Target{Path: "src/app/b.ts", Name: "keepMe", Line: 9}), "name alone should exclude")
	assert.False(t, f.Excluded(Target{Path: "src/app/b.ts", Name: "other", Line: 9}))
}

func TestNameOnlyRule(t *testing.T) {
	f := Compile([]Rule{{Name: "foo"}})
	assert.True(t, f.Excluded(Target{Path: "any/where.ts", Name: "foo", Line: 77}))
	assert.False(t, f.Excluded(Target{Path: "any/where.ts", Name: "foobar", Line: 77}))
}

func TestLineOnlyRule(t *testing.T) {
	f := Compile([]Rule{{Line: 5}})
	assert.True(t, f.Excluded(Target{Path: "a.ts", Name: "x", Line: 5}))
	assert.True(t, f.Excluded(Target{Path: "b/c.ts", Name: "y", Line: 5}))
	assert.False(t, f.Excluded(Target{Path: "a.ts", Name: "x", Line: 6}))
}

func TestDefaultRules(t *testing.T) {
	f := Compile(DefaultRules())
	excluded := []string{
		"test/helpers.ts",
		"src/tests/a.ts",
		"src/__tests__/a.ts",
		"src/a.test.ts",
		"a.spec.tsx",
		"pkg/server_test.go",
		"types/index.d.ts",
	}
	for _, p := range excluded {
		assert.True(t, f.Excluded(Target{Path: p, Name: "x"}), p)
	}
	kept := []string{"src/a.ts", "src/testing.ts", "pkg/server.go", "src/contest/a.ts"}
	for _, p := range kept {
		assert.False(t, f.Excluded(Target{Path: p, Name: "x"}), p)
	}
}

func TestPathlessGlobMatchesBaseName(t *testing.T) {
	f := Compile([]Rule{{Path: "*.generated.ts"}})
	assert.True(t, f.Excluded(Target{Path: "src/deep/api.generated.ts"}))
	assert.False(t, f.Excluded(Target{Path: "src/deep/api.ts"}))
}

func TestCompileDropsBadGlobs(t *testing.T) {
	f := Compile([]Rule{{Path: "src/[a"}, {Name: "ok"}})
	assert.Equal(t, 1, f.Len())
}

func TestMatcher(t *testing.T) {
	m, err := NewMatcher([]string{"**/*.spec.*", "fixtures.ts"})
	require.NoError(t, err)
	assert.True(t, m.Match("src/a.spec.ts"))
	assert.True(t, m.Match("deep/fixtures.ts"))
	assert.False(t, m.Match("src/a.ts"))

	_, err = NewMatcher([]string{"[bad"})
	assert.Error(t, err)
}
