package observability

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetrics(t *testing.T) {
	CandidatesTotal.Add(2)
	ClassificationsTotal.WithLabelValues("unused").Inc()

	path := filepath.Join(t.TempDir(), "deadspan.prom")
	require.NoError(t, WriteMetrics(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "deadspan_candidates_total"))
	assert.True(t, strings.Contains(text, `deadspan_classifications_total{status="unused"}`))
}

func TestInitTracingDisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{Enabled: true})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))

	_, span := Tracer.Start(context.Background(), "noop")
	span.End()
}
