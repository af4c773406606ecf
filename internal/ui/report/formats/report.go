// Package formats renders an unused-symbol report in each supported output
// format.
package formats

import (
	"deadspan/internal/data/history"
	"deadspan/internal/engine/savings"
	"time"
)

// Unknown is a declaration whose classification could not be completed.
type Unknown struct {
	Path   string
	Name   string
	Kind   string
	Line   int
	Column int
	Reason string
}

// Report is everything a generator needs. Records are already in final order.
type Report struct {
	Project     string
	Root        string
	Version     string
	GeneratedAt time.Time
	Units       int
	Candidates  int
	Records     []savings.Record
	Files       []savings.FileTotal
	Symbols     int
	Lines       int
	Unknowns    []Unknown
	Delta       *history.Delta
}

// SummaryLine is the terminal line of the text and markdown reports.
func SummaryLine(r Report) string {
	return pluralSummary(r.Symbols, r.Lines)
}

func pluralSummary(symbols, lines int) string {
	sym := "symbols"
	if symbols == 1 {
		sym = "symbol"
	}
	ln := "lines"
	if lines == 1 {
		ln = "line"
	}
	return itoa(symbols) + " unused exported " + sym + ", " + itoa(lines) + " " + ln + " could be removed"
}
