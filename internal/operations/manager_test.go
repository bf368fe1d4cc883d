package operations

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeconc/internal/config"
	apperrors "tradeconc/internal/errors"
	"tradeconc/internal/figures"
	"tradeconc/internal/infrastructure"
	"tradeconc/internal/shared/testutil"
)

func TestManager_Execute(t *testing.T) {
	var calls []string
	r := NewRegistry()
	require.NoError(t, r.Register(newFakeStep("a", nil, nil, &calls)))
	require.NoError(t, r.Register(newFakeStep("b", []string{"a"}, nil, &calls)))

	states, err := NewManager(r, infrastructure.NewLogger(&bytes.Buffer{}, "error")).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, calls)
	require.Len(t, states, 2)
	for _, s := range states {
		assert.Equal(t, StepStatusCompleted, s.GetStatus())
	}
}

func TestManager_SkipsDependentsOfFailedStep(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	r := NewRegistry()
	require.NoError(t, r.Register(newFakeStep("a", nil, boom, &calls)))
	require.NoError(t, r.Register(newFakeStep("b", []string{"a"}, nil, &calls)))
	require.NoError(t, r.Register(newFakeStep("c", []string{"b"}, nil, &calls)))
	require.NoError(t, r.Register(newFakeStep("d", nil, nil, &calls)))

	m := NewManager(r, infrastructure.NewLogger(&bytes.Buffer{}, "error"))
	_, err := m.Execute(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "d"}, calls, "independent steps still run")

	want := map[string]StepStatus{
		"a": StepStatusFailed,
		"b": StepStatusSkipped,
		"c": StepStatusSkipped,
		"d": StepStatusCompleted,
	}
	for id, status := range want {
		state, ok := m.GetStepState(id)
		require.True(t, ok, id)
		assert.Equal(t, status, state.GetStatus(), id)
	}
}

func TestManager_Cancelled(t *testing.T) {
	var calls []string
	r := NewRegistry()
	require.NoError(t, r.Register(newFakeStep("a", nil, nil, &calls)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	states, err := NewManager(r, infrastructure.NewLogger(&bytes.Buffer{}, "error")).Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
	assert.Equal(t, StepStatusSkipped, states[0].GetStatus())
}

func TestPipeline(t *testing.T) {
	cfg := testutil.DataDir(t, map[string]string{
		config.LatestYearFile: testutil.LatestYearCSV,
		config.StabilityFile:  testutil.StabilityCSV,
	})
	logger := infrastructure.NewLogger(&bytes.Buffer{}, "error")

	m, err := NewPipeline(cfg, logger, nil, nil)
	require.NoError(t, err)
	states, err := m.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, config.ClassifierStep, states[0].ID)
	assert.Equal(t, config.FiguresStep, states[1].ID)

	step, err := m.GetRegistry().Get(config.FiguresStep)
	require.NoError(t, err)
	result := step.(*FiguresStage).Result
	require.NotNil(t, result)
	assert.Len(t, result.Generated, 5)
	assert.Equal(t, []string{figures.TimeSeriesFile}, result.Skipped)
}

func TestPipeline_ClassifierFailureSkipsFigures(t *testing.T) {
	cfg := testutil.DataDir(t, nil)

	m, err := NewPipeline(cfg, infrastructure.NewLogger(&bytes.Buffer{}, "error"), nil, nil)
	require.NoError(t, err)

	_, err = m.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsMissingInput(err))

	state, ok := m.GetStepState(config.FiguresStep)
	require.True(t, ok)
	assert.Equal(t, StepStatusSkipped, state.GetStatus())
	assert.NoDirExists(t, cfg.Resolve().FiguresDir)
}
