// # internal/ui/report/formats/tsv.go
package formats

import (
	"fmt"
	"io"
	"strings"
)

type TSVGenerator struct{}

func NewTSVGenerator() *TSVGenerator {
	return &TSVGenerator{}
}

func (t *TSVGenerator) Generate(w io.Writer, r Report) error {
	var buf strings.Builder

	buf.WriteString("Status\tFile\tName\tKind\tLine\tColumn\tStartLine\tEndLine\tSpan\n")
	for _, rec := range r.Records {
		buf.WriteString(fmt.Sprintf("unused\t%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			rec.Path,
			rec.Name,
			rec.Kind,
			rec.Pos.Line,
			rec.Pos.Column,
			rec.Start.Line,
			rec.End.Line,
			rec.Span,
		))
	}
	for _, u := range r.Unknowns {
		buf.WriteString(fmt.Sprintf("unknown\t%s\t%s\t%s\t%d\t%d\t\t\t0\n",
			u.Path, u.Name, u.Kind, u.Line, u.Column))
	}

	_, err := io.WriteString(w, buf.String())
	return err
}
