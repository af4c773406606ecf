// Package filter compiles ignore rules into a single exclusion predicate.
//
// A rule has the form `pathGlob|namePattern:lineNumber`. Every field is
// optional but at least one must be present. A rule matches when ANY of its
// present fields matches, so `src/**|foo` excludes everything under src/ and
// everything named foo.
package filter

import (
	"bufio"
	"deadspan/internal/core/errors"
	"deadspan/internal/shared/util"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultPatterns excludes test locations and pure declaration files.
var DefaultPatterns = []string{
	"**/test/**",
	"**/tests/**",
	"**/__tests__/**",
	"**/*.test.*",
	"**/*.spec.*",
	"**/*_test.go",
	"**/*.d.ts",
}

// Rule is one parsed ignore line. Zero values mean "field absent".
type Rule struct {
	Path string
	Name string
	Line int
}

func (r Rule) empty() bool {
	return r.Path == "" && r.Name == "" && r.Line <= 0
}

// Target is what a rule is evaluated against.
type Target struct {
	Path string // slash-separated, relative to the project root
	Name string
	Line int
}

func DefaultRules() []Rule {
	rules := make([]Rule, 0, len(DefaultPatterns))
	for _, p := range DefaultPatterns {
		rules = append(rules, Rule{Path: p})
	}
	return rules
}

// ParseRule parses a single line. ok is false for blank, comment or
// malformed lines.
func ParseRule(line string) (Rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}

	pathPart, rest, hasPipe := strings.Cut(line, "|")
	if !hasPipe {
		return Rule{Path: line}, true
	}

	rule := Rule{Path: strings.TrimSpace(pathPart)}
	rest = strings.TrimSpace(rest)
	if idx := strings.LastIndex(rest, ":"); idx >= 0 && isDigits(rest[idx+1:]) {
		n, err := strconv.Atoi(rest[idx+1:])
		if err != nil || n <= 0 {
			return Rule{}, false
		}
		rule.Line = n
		rest = rest[:idx]
	}
	rule.Name = strings.TrimSpace(rest)

	if rule.empty() {
		return Rule{}, false
	}
	return rule, true
}

// ParseRules reads one rule per line, dropping lines that do not parse.
func ParseRules(r io.Reader) ([]Rule, error) {
	var rules []Rule
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if rule, ok := ParseRule(scanner.Text()); ok {
			rules = append(rules, rule)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// LoadRules reads a rule file. Any read failure is a configuration error.
func LoadRules(filePath string) ([]Rule, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeConfig, "open ignore rules"), errors.CtxPath, filePath)
	}
	defer f.Close()

	rules, err := ParseRules(f)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeConfig, "read ignore rules"), errors.CtxPath, filePath)
	}
	return rules, nil
}

type compiledRule struct {
	path     glob.Glob
	baseOnly bool
	name     glob.Glob
	line     int
}

// Filter is an immutable set of compiled rules.
type Filter struct {
	rules []compiledRule
}

// Compile builds a Filter. Rules whose globs do not compile are dropped.
func Compile(rules []Rule) *Filter {
	f := &Filter{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if r.empty() {
			continue
		}
		var c compiledRule
		if r.Path != "" {
			g, err := glob.Compile(r.Path, '/')
			if err != nil {
				continue
			}
			c.path = g
			c.baseOnly = !strings.Contains(r.Path, "/")
		}
		if r.Name != "" {
			g, err := glob.Compile(r.Name)
			if err != nil {
				continue
			}
			c.name = g
		}
		c.line = r.Line
		f.rules = append(f.rules, c)
	}
	return f
}

func (f *Filter) Len() int {
	return len(f.rules)
}

// Excluded reports whether any rule matches the target by any of its
// present fields.
func (f *Filter) Excluded(t Target) bool {
	for _, r := range f.rules {
		if r.matches(t) {
			return true
		}
	}
	return false
}

func (c compiledRule) matches(t Target) bool {
	if c.path != nil && matchPath(c.path, c.baseOnly, t.Path) {
		return true
	}
	if c.name != nil && c.name.Match(t.Name) {
		return true
	}
	return c.line > 0 && c.line == t.Line
}

// Matcher matches slash-separated paths against a set of globs, with the
// same conventions rule path globs use.
type Matcher struct {
	globs    []glob.Glob
	baseOnly []bool
}

// NewMatcher compiles patterns, failing on the first invalid one.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfig, "invalid glob "+strconv.Quote(p))
		}
		m.globs = append(m.globs, g)
		m.baseOnly = append(m.baseOnly, !strings.Contains(p, "/"))
	}
	return m, nil
}

func (m *Matcher) Match(p string) bool {
	for i, g := range m.globs {
		if matchPath(g, m.baseOnly[i], p) {
			return true
		}
	}
	return false
}

// matchPath also tries a leading slash so `**/x/**` matches a top-level x/.
func matchPath(g glob.Glob, baseOnly bool, p string) bool {
	p = util.NormalizePatternPath(p)
	if g.Match(p) || g.Match("/"+p) {
		return true
	}
	return baseOnly && g.Match(path.Base(p))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
