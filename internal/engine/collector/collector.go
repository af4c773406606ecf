// Package collector gathers the exported declarations of a unit that are
// candidates for unused-symbol analysis.
package collector

import (
	"deadspan/internal/engine/filter"
	"deadspan/internal/engine/parser"
	"path"
	"strings"
)

// Heuristics are the name-based exclusions applied after kind and visibility.
type Heuristics struct {
	// OverrideNames are member names that frameworks call implicitly.
	OverrideNames []string
	BrandPrefix   string
	BrandSuffix   string
	// IPCNamePrefix excludes names with this prefix, but only in files whose
	// base name starts with one of IPCFilePrefixes.
	IPCNamePrefix   string
	IPCFilePrefixes []string
}

func DefaultHeuristics() Heuristics {
	return Heuristics{
		OverrideNames:   []string{"toString", "dispose", "toJSON"},
		BrandPrefix:     "_",
		BrandSuffix:     "Brand",
		IPCNamePrefix:   "$",
		IPCFilePrefixes: []string{"extHost", "mainThread"},
	}
}

// Declaration is a candidate: a declaration node and the unit defining it.
type Declaration struct {
	Unit *parser.Unit
	Node *parser.Node
}

func (d Declaration) Name() string {
	return d.Node.Name
}

func (d Declaration) Kind() parser.DeclKind {
	return d.Node.Kind
}

type Collector struct {
	filter     *filter.Filter
	heuristics Heuristics
	overrides  map[string]bool
}

func New(f *filter.Filter, h Heuristics) *Collector {
	if f == nil {
		f = filter.Compile(nil)
	}
	overrides := make(map[string]bool, len(h.OverrideNames))
	for _, name := range h.OverrideNames {
		overrides[name] = true
	}
	return &Collector{filter: f, heuristics: h, overrides: overrides}
}

// Collect returns the candidates under root in pre-order. A private node is
// skipped but its children are still visited.
func (c *Collector) Collect(unit *parser.Unit, root *parser.Node) []Declaration {
	if root == nil {
		return nil
	}
	var out []Declaration
	seen := make(map[*parser.Node]bool)

	stack := []*parser.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, node.Children[i])
		}

		if seen[node] || !c.candidate(unit, node) {
			continue
		}
		seen[node] = true
		out = append(out, Declaration{Unit: unit, Node: node})
	}
	return out
}

func (c *Collector) candidate(unit *parser.Unit, node *parser.Node) bool {
	if node.Kind == parser.KindNone || node.Name == "" {
		return false
	}
	if node.Visibility == parser.VisibilityPrivate {
		return false
	}
	if c.ExcludedByName(unit.Path, node.Name) {
		return false
	}
	return !c.filter.Excluded(filter.Target{Path: unit.Path, Name: node.Name, Line: node.NamePos.Line})
}

// ExcludedByName applies the override, brand and IPC heuristics.
func (c *Collector) ExcludedByName(filePath, name string) bool {
	if c.overrides[name] {
		return true
	}
	h := c.heuristics
	if (h.BrandPrefix != "" || h.BrandSuffix != "") &&
		strings.HasPrefix(name, h.BrandPrefix) && strings.HasSuffix(name, h.BrandSuffix) {
		return true
	}
	if h.IPCNamePrefix != "" && strings.HasPrefix(name, h.IPCNamePrefix) {
		base := path.Base(filePath)
		for _, prefix := range h.IPCFilePrefixes {
			if prefix != "" && strings.HasPrefix(base, prefix) {
				return true
			}
		}
	}
	return false
}
