package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Manager runs the registered steps of an operation
type Manager struct {
	registry *Registry
	logger   *slog.Logger

	mu     sync.RWMutex
	states map[string]*StepState
}

// NewManager creates a manager over registry. A nil logger uses slog.Default.
func NewManager(registry *Registry, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		registry: registry,
		logger:   logger,
		states:   make(map[string]*StepState),
	}
}

// GetRegistry returns the Step registry
func (m *Manager) GetRegistry() *Registry {
	return m.registry
}

// Execute runs every Step in dependency order. A Step whose dependencies did
// not all complete is skipped; independent steps still run. The returned
// states follow execution order and the error joins every Step failure.
func (m *Manager) Execute(ctx context.Context) ([]*StepState, error) {
	steps, err := m.registry.GetDependencyOrder()
	if err != nil {
		m.logger.ErrorContext(ctx, "invalid_step_graph", slog.String("error", err.Error()))
		return nil, err
	}

	states := make([]*StepState, len(steps))
	m.mu.Lock()
	m.states = make(map[string]*StepState, len(steps))
	for i, step := range steps {
		states[i] = NewStepState(step.ID(), step.Name())
		m.states[step.ID()] = states[i]
	}
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "sequential_execution_start", slog.Int("step_count", len(steps)))

	var failures []error
	for i, step := range steps {
		state := states[i]

		if err := ctx.Err(); err != nil {
			m.logger.WarnContext(ctx, "operation_cancelled", slog.String("step", step.ID()))
			for _, rest := range states[i:] {
				rest.Skip("operation cancelled")
			}
			failures = append(failures, NewCancellationError(step.ID(), err))
			break
		}

		if dep, ok := m.unmetDependency(step); ok {
			reason := fmt.Sprintf("Dependency %s not completed", dep)
			state.Skip(reason)
			m.logger.WarnContext(ctx, "step_skipped",
				slog.String("step", step.ID()),
				slog.String("reason", reason))
			continue
		}

		m.logger.InfoContext(ctx, "executing_step",
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		state.Start()
		if err := step.Execute(ctx); err != nil {
			state.Fail(err)
			m.logger.ErrorContext(ctx, "step_failed",
				slog.String("step", step.ID()),
				slog.String("error", err.Error()))
			failures = append(failures, NewExecutionError(step.ID(), err))
			continue
		}
		state.Complete()

		m.logger.InfoContext(ctx, "step_completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", state.Duration()))
	}

	return states, errors.Join(failures...)
}

// GetStepState returns the state of a Step from the last run
func (m *Manager) GetStepState(id string) (*StepState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[id]
	return state, ok
}

func (m *Manager) unmetDependency(step Step) (string, bool) {
	for _, dep := range step.GetDependencies() {
		state, ok := m.GetStepState(dep)
		if !ok || state.GetStatus() != StepStatusCompleted {
			return dep, true
		}
	}
	return "", false
}
