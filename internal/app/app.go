package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradeconc/internal/config"
	apperrors "tradeconc/internal/errors"
	"tradeconc/internal/infrastructure"
)

// Options are the command-line overrides shared by every command
type Options struct {
	// DataDir overrides paths.data_dir when non-empty
	DataDir string
	// Command names the binary in startup logs
	Command string
	// Out receives the user-facing summaries. Defaults to os.Stdout.
	Out io.Writer
}

// Application holds what a batch command needs for one run
type Application struct {
	Config  *config.Config
	Paths   *config.Paths
	Logger  *slog.Logger
	Metrics *infrastructure.Metrics
	Out     io.Writer
}

// NewApplication loads configuration, applies opts and initializes logging
// and metrics
func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	if opts.DataDir != "" {
		cfg.Paths.DataDir = opts.DataDir
		if err := cfg.Validate(); err != nil {
			return nil, apperrors.NewConfigError("config validation failed", err).
				WithContext("data_dir", opts.DataDir)
		}
	}

	return newApplication(cfg, opts)
}

func newApplication(cfg *config.Config, opts Options) (*Application, error) {
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	metrics, err := infrastructure.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	a := &Application{
		Config:  cfg,
		Paths:   cfg.Resolve(),
		Logger:  logger,
		Metrics: metrics,
		Out:     out,
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("command", opts.Command))
	a.Paths.LogPathResolution(logger)

	return a, nil
}

// Run executes fn under a context cancelled on SIGINT or SIGTERM, then
// flushes metrics and closes the log file. The error from fn wins over
// cleanup errors.
func (a *Application) Run(fn func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = infrastructure.EnsureTraceID(ctx)
	runErr := fn(ctx)

	if err := a.Close(); err != nil && runErr == nil {
		return err
	}
	return runErr
}

// Close writes the metrics textfile and releases resources
func (a *Application) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var firstErr error
	if err := a.Metrics.WriteTextfile(a.Config.Metrics.TextfilePath); err != nil {
		a.Logger.Error("Failed to write metrics", slog.String("error", err.Error()))
		firstErr = err
	}
	if err := a.Metrics.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
