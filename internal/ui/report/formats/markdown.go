package formats

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

const defaultSnippetLines = 6

type MarkdownGenerator struct {
	snippets     *SnippetCache
	snippetLines int
}

// NewMarkdownGenerator returns a generator that embeds the first lines of
// each unused declaration when snippets is non-nil.
func NewMarkdownGenerator(snippets *SnippetCache) *MarkdownGenerator {
	return &MarkdownGenerator{snippets: snippets, snippetLines: defaultSnippetLines}
}

func (m *MarkdownGenerator) Generate(w io.Writer, r Report) error {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Unused Export Report\n")
	b.WriteString("project: " + nonEmpty(r.Project, "unknown") + "\n")
	b.WriteString("generated_at: " + r.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + nonEmpty(r.Version, "unknown") + "\n")
	b.WriteString("---\n\n")

	b.WriteString("# Unused Export Report\n\n")
	b.WriteString("## Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Units | %d |\n", r.Units))
	b.WriteString(fmt.Sprintf("| Candidates | %d |\n", r.Candidates))
	b.WriteString(fmt.Sprintf("| Unused Symbols | %d |\n", r.Symbols))
	b.WriteString(fmt.Sprintf("| Removable Lines | %d |\n", r.Lines))
	b.WriteString(fmt.Sprintf("| Unclassified | %d |\n", len(r.Unknowns)))
	if r.Delta != nil && r.Delta.Previous != nil {
		b.WriteString(fmt.Sprintf("| Change vs. Previous Run | %s symbols, %s lines |\n",
			signed(r.Delta.Unused), signed(r.Delta.Lines)))
	}
	b.WriteString("\n")

	if len(r.Files) > 0 {
		b.WriteString("## Files\n")
		b.WriteString("| File | Symbols | Lines |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, f := range r.Files {
			b.WriteString(fmt.Sprintf("| `%s` | %d | %d |\n", escapeMarkdownCell(f.Path), f.Symbols, f.Lines))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Unused Symbols\n")
	if len(r.Records) == 0 {
		b.WriteString("_None found._\n\n")
	}
	for _, rec := range r.Records {
		b.WriteString(fmt.Sprintf("### `%s` (%s, %d lines)\n", rec.Name, rec.Kind, rec.Span))
		b.WriteString(fmt.Sprintf("`%s:%d:%d`\n\n", rec.Path, rec.Pos.Line, rec.Pos.Column))
		if m.snippets == nil {
			continue
		}
		lines, ok := m.snippets.Lines(rec.Path, rec.Start.Line, rec.End.Line, m.snippetLines)
		if !ok || len(lines) == 0 {
			continue
		}
		b.WriteString("```" + fenceLanguage(rec.Path) + "\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
		if rec.Span > len(lines) {
			b.WriteString(fmt.Sprintf("… %d more lines\n", rec.Span-len(lines)))
		}
		b.WriteString("```\n\n")
	}

	if len(r.Unknowns) > 0 {
		b.WriteString("## Unclassified\n")
		b.WriteString("| File | Name | Kind | Line | Reason |\n")
		b.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, u := range r.Unknowns {
			b.WriteString(fmt.Sprintf("| `%s` | `%s` | %s | %d | %s |\n",
				escapeMarkdownCell(u.Path), escapeMarkdownCell(u.Name), u.Kind, u.Line, escapeMarkdownCell(u.Reason)))
		}
		b.WriteString("\n")
	}

	b.WriteString(SummaryLine(r) + "\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func fenceLanguage(file string) string {
	switch strings.ToLower(path.Ext(file)) {
	case ".ts", ".mts", ".cts":
		return "ts"
	case ".tsx":
		return "tsx"
	case ".js", ".cjs", ".mjs", ".jsx":
		return "js"
	case ".go":
		return "go"
	case ".java":
		return "java"
	case ".rs":
		return "rust"
	case ".py":
		return "python"
	default:
		return ""
	}
}
