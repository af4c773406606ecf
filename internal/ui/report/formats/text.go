package formats

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// TextGenerator writes the default stdout report: one tab-separated line per
// record and a summary line. Styling is applied only when w is a terminal.
type TextGenerator struct{}

func NewTextGenerator() *TextGenerator {
	return &TextGenerator{}
}

func (g *TextGenerator) Generate(w io.Writer, r Report) error {
	renderer := lipgloss.NewRenderer(w)
	summaryStyle := renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#F87171"))
	if r.Symbols == 0 {
		summaryStyle = renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	}

	for _, rec := range r.Records {
		if _, err := fmt.Fprintf(w, "%s:%d:%d\t%s\t%s\t%d\n",
			rec.Path, rec.Pos.Line, rec.Pos.Column, rec.Name, rec.Kind, rec.Span); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, summaryStyle.Render(SummaryLine(r)))
	return err
}
