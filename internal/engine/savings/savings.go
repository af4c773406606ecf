// Package savings turns unused declarations into report records and keeps
// per-file and global line totals.
package savings

import (
	"deadspan/internal/engine/parser"
	"sort"
)

// Span is the number of source lines covered by the declaration's enclosing
// span, never less than one.
func Span(node *parser.Node) int {
	n := 1 + node.Span.End.Line - node.Span.Start.Line
	if n < 1 {
		return 1
	}
	return n
}

// Record is one report entry for an unused declaration.
type Record struct {
	Path  string
	Name  string
	Kind  parser.DeclKind
	Pos   parser.Position
	Start parser.Position
	End   parser.Position
	Span  int

	node *parser.Node
}

type FileTotal struct {
	Path    string
	Symbols int
	Lines   int
}

// Accumulator collects records in discovery order. It is not safe for
// concurrent use; give each worker its own and Merge them in unit order.
type Accumulator struct {
	records []Record
	files   []string
	perFile map[string]*FileTotal
	seen    map[*parser.Node]bool
	lines   int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		perFile: make(map[string]*FileTotal),
		seen:    make(map[*parser.Node]bool),
	}
}

// Add records node as unused. A node already recorded is ignored and ok is false.
func (a *Accumulator) Add(unit *parser.Unit, node *parser.Node) (Record, bool) {
	if a.seen[node] {
		return Record{}, false
	}
	a.seen[node] = true

	rec := Record{
		Path:  unit.Path,
		Name:  node.Name,
		Kind:  node.Kind,
		Pos:   node.NamePos,
		Start: node.Span.Start,
		End:   node.Span.End,
		Span:  Span(node),
		node:  node,
	}
	a.append(rec)
	return rec, true
}

func (a *Accumulator) append(rec Record) {
	a.records = append(a.records, rec)
	ft, ok := a.perFile[rec.Path]
	if !ok {
		ft = &FileTotal{Path: rec.Path}
		a.perFile[rec.Path] = ft
		a.files = append(a.files, rec.Path)
	}
	ft.Symbols++
	ft.Lines += rec.Span
	a.lines += rec.Span
}

// Merge appends other's records after a's, preserving other's discovery
// order. Declarations already recorded in a are skipped.
func (a *Accumulator) Merge(other *Accumulator) {
	if other == nil {
		return
	}
	for _, rec := range other.records {
		if a.seen[rec.node] {
			continue
		}
		a.seen[rec.node] = true
		a.append(rec)
	}
}

// Records returns the final report order: a stable ascending sort by span,
// reversed. Largest spans come first and ties appear in reverse discovery order.
func (a *Accumulator) Records() []Record {
	out := append([]Record(nil), a.records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Span < out[j].Span })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Totals returns the record count and the sum of their spans.
func (a *Accumulator) Totals() (symbols, lines int) {
	return len(a.records), a.lines
}

// PerFile returns file totals in the order files were first seen.
func (a *Accumulator) PerFile() []FileTotal {
	out := make([]FileTotal, 0, len(a.files))
	for _, path := range a.files {
		out = append(out, *a.perFile[path])
	}
	return out
}
