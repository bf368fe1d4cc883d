package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_WriteTextfile(t *testing.T) {
	m, err := NewMetrics()
	require.NoError(t, err)
	defer m.Shutdown(context.Background())

	ctx := context.Background()
	m.RecordPartner(ctx, "Real diversification")
	m.RecordPartner(ctx, "Real diversification")
	m.RecordPartner(ctx, "Transition / mixed")
	m.RecordFigure(ctx, "01_scatter_entropy_vs_hhi.png", FigureGenerated)
	m.RecordFigure(ctx, "04_timeseries_entropy.png", FigureSkipped)
	m.RecordStageDuration(ctx, "classifier", 0.25)

	path := filepath.Join(t.TempDir(), "textfile", "tradeconc.prom")
	require.NoError(t, m.WriteTextfile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "tradeconc_partners_classified_total")
	assert.Contains(t, text, `regime="Real diversification"`)
	assert.Contains(t, text, "tradeconc_figures_total")
	assert.Contains(t, text, `status="skipped"`)
	assert.Contains(t, text, "tradeconc_stage_duration_seconds")
}

func TestMetrics_NilAndEmptyPath(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordPartner(ctx, "x")
		m.RecordFigure(ctx, "x", FigureFailed)
		m.RecordStageDuration(ctx, "x", 1)
	})
	assert.NoError(t, m.WriteTextfile("/nonexistent/path"))
	assert.NoError(t, m.Shutdown(ctx))

	live, err := NewMetrics()
	require.NoError(t, err)
	assert.NoError(t, live.WriteTextfile(""))
}
