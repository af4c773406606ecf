// # internal/ui/report/formats/sarif.go
package formats

import (
	"encoding/json"
	"fmt"
	"io"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"

	ruleIDUnused       = "DEAD001"
	ruleIDUnclassified = "DEAD002"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
}

type SARIFGenerator struct{}

func NewSARIFGenerator() *SARIFGenerator {
	return &SARIFGenerator{}
}

// Generate writes a SARIF v2.1.0 document. URIs are relative to the project
// root so reports are safe to share.
func (g *SARIFGenerator) Generate(w io.Writer, r Report) error {
	results := make([]sarifResult, 0, len(r.Records)+len(r.Unknowns))

	for _, rec := range r.Records {
		results = append(results, sarifResult{
			RuleID:  ruleIDUnused,
			Level:   "warning",
			Message: sarifMessage{Text: fmt.Sprintf("Exported %s %q has no external references (%d lines)", rec.Kind, rec.Name, rec.Span)},
			Locations: []sarifLocation{
				location(r.Root, rec.Path, rec.Pos.Line, rec.Pos.Column, rec.End.Line),
			},
			Properties: map[string]any{"span": rec.Span},
		})
	}
	for _, u := range r.Unknowns {
		results = append(results, sarifResult{
			RuleID:    ruleIDUnclassified,
			Level:     "note",
			Message:   sarifMessage{Text: fmt.Sprintf("Could not classify %s %q: %s", u.Kind, u.Name, nonEmpty(u.Reason, "query failed"))},
			Locations: []sarifLocation{location(r.Root, u.Path, u.Line, u.Column, 0)},
		})
	}

	doc := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "deadspan",
						Version: nonEmpty(r.Version, "dev"),
						Rules: []sarifRule{
							{
								ID:               ruleIDUnused,
								Name:             "UnusedExport",
								ShortDescription: sarifMessage{Text: "Exported declaration without external references"},
								DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
							},
							{
								ID:               ruleIDUnclassified,
								Name:             "UnclassifiedExport",
								ShortDescription: sarifMessage{Text: "Reference query failed or timed out"},
								DefaultConfig:    sarifRuleDefaultConfig{Level: "note"},
							},
						},
					},
				},
				Results: results,
			},
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func location(root, path string, line, column, endLine int) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       relativeURI(root, path),
				URIBaseID: "%SRCROOT%",
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{StartLine: line, StartColumn: column, EndLine: endLine}
	}
	return loc
}
