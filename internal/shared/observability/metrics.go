package observability

import (
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	UnitsParsedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deadspan_units_parsed_total",
		Help: "Total number of source units parsed, by language.",
	}, []string{"language"})

	UnitsSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deadspan_units_skipped_total",
		Help: "Total number of files skipped because they could not be read or parsed.",
	})

	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deadspan_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	CandidatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deadspan_candidates_total",
		Help: "Total number of declarations collected as candidates.",
	})

	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deadspan_classifications_total",
		Help: "Total number of classified candidates, by status.",
	}, []string{"status"})

	QueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "deadspan_query_seconds",
		Help:    "Latency of one reference-resolution query.",
		Buckets: prometheus.DefBuckets,
	})

	UnusedLines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "deadspan_unused_lines",
		Help: "Lines that could be removed according to the last run.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "deadspan_analysis_seconds",
		Help:    "Time spent on high-level analysis phases.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})
)

// WriteMetrics dumps the default registry in Prometheus text format.
func WriteMetrics(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
