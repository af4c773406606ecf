package formats

import (
	"encoding/json"
	"io"
	"time"
)

type jsonReport struct {
	Project     string        `json:"project"`
	Version     string        `json:"version"`
	GeneratedAt string        `json:"generated_at"`
	Units       int           `json:"units"`
	Candidates  int           `json:"candidates"`
	Summary     jsonSummary   `json:"summary"`
	Symbols     []jsonSymbol  `json:"symbols"`
	Files       []jsonFile    `json:"files"`
	Unknown     []jsonUnknown `json:"unknown,omitempty"`
	Delta       *jsonDelta    `json:"delta,omitempty"`
}

type jsonSummary struct {
	Symbols int `json:"symbols"`
	Lines   int `json:"lines"`
}

type jsonSymbol struct {
	File      string `json:"file"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Span      int    `json:"span"`
}

type jsonFile struct {
	File    string `json:"file"`
	Symbols int    `json:"symbols"`
	Lines   int    `json:"lines"`
}

type jsonUnknown struct {
	Path   string `json:"file"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Reason string `json:"reason,omitempty"`
}

type jsonDelta struct {
	PreviousRun string `json:"previous_run"`
	Symbols     int    `json:"symbols"`
	Unknown     int    `json:"unknown"`
	Lines       int    `json:"lines"`
}

type JSONGenerator struct{}

func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

func (g *JSONGenerator) Generate(w io.Writer, r Report) error {
	generatedAt := r.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}
	out := jsonReport{
		Project:     r.Project,
		Version:     nonEmpty(r.Version, "unknown"),
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		Units:       r.Units,
		Candidates:  r.Candidates,
		Summary:     jsonSummary{Symbols: r.Symbols, Lines: r.Lines},
		Symbols:     make([]jsonSymbol, 0, len(r.Records)),
		Files:       make([]jsonFile, 0, len(r.Files)),
	}
	for _, rec := range r.Records {
		out.Symbols = append(out.Symbols, jsonSymbol{
			File:      rec.Path,
			Name:      rec.Name,
			Kind:      rec.Kind.String(),
			Line:      rec.Pos.Line,
			Column:    rec.Pos.Column,
			StartLine: rec.Start.Line,
			EndLine:   rec.End.Line,
			Span:      rec.Span,
		})
	}
	for _, f := range r.Files {
		out.Files = append(out.Files, jsonFile{File: f.Path, Symbols: f.Symbols, Lines: f.Lines})
	}
	for _, u := range r.Unknowns {
		out.Unknown = append(out.Unknown, jsonUnknown(u))
	}
	if r.Delta != nil && r.Delta.Previous != nil {
		out.Delta = &jsonDelta{
			PreviousRun: r.Delta.Previous.ID,
			Symbols:     r.Delta.Unused,
			Unknown:     r.Delta.Unknown,
			Lines:       r.Delta.Lines,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
