package classifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"tradeconc/internal/concentration"
	"tradeconc/internal/config"
	"tradeconc/internal/dataset"
	apperrors "tradeconc/internal/errors"
	"tradeconc/internal/exporter"
	"tradeconc/internal/infrastructure"
)

// Upstream steps producing the classifier inputs
const (
	LatestYearProducer = "step 2 regime export"
	StabilityProducer  = "step 3 stability analysis"
)

// Result describes a completed classifier run
type Result struct {
	Summary      *concentration.SummaryTable
	Digest       []concentration.RegimeDigest
	OutputPath   string
	WorkbookPath string
	Duration     time.Duration
}

// Classifier merges the latest-year and stability tables into the combined
// summary table
type Classifier struct {
	cfg        *config.Config
	paths      *config.Paths
	thresholds concentration.Thresholds
	logger     *slog.Logger
	metrics    *infrastructure.Metrics
	out        io.Writer
}

// New creates a classifier. metrics may be nil; out receives the printed
// table and digest and may be nil to disable them.
func New(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, out io.Writer) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Classifier{
		cfg:        cfg,
		paths:      cfg.Resolve(),
		thresholds: concentration.ThresholdsFromConfig(cfg.Regime),
		logger:     infrastructure.WithComponent(logger, config.ClassifierStep),
		metrics:    metrics,
		out:        out,
	}
}

// Run executes the classifier stage
func (c *Classifier) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	c.paths.LogPathResolution(c.logger)

	latest, err := c.loadInput(ctx, c.paths.LatestYearCSV, LatestYearProducer)
	if err != nil {
		return nil, err
	}
	stability, err := c.loadInput(ctx, c.paths.StabilityCSV, StabilityProducer)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary, err := concentration.Merge(latest, stability, c.thresholds)
	if err != nil {
		return nil, fmt.Errorf("failed to merge tables: %w", err)
	}
	c.logger.InfoContext(ctx, "Merged partner tables",
		slog.Int("partners", len(summary.Rows)),
		slog.Bool("already_merged", summary.Schema.AlreadyMerged),
		slog.Any("pulled_columns", summary.Schema.Pulled))

	for _, row := range summary.Rows {
		c.metrics.RecordPartner(ctx, string(row.Regime))
	}

	writer := exporter.NewCSVWriter(c.paths, c.logger)
	if err := writer.WriteSimpleCSV(c.paths.FinalSummaryCSV, summary.Columns, summary.Records()); err != nil {
		return nil, apperrors.NewStorageError("failed to write summary table", err).
			WithContext("path", c.paths.FinalSummaryCSV)
	}

	result := &Result{
		Summary:    summary,
		Digest:     concentration.Digest(summary),
		OutputPath: c.paths.FinalSummaryCSV,
	}

	if c.cfg.Export.Workbook && c.paths.SummaryXLSX != "" {
		if err := exporter.NewWorkbookWriter(c.logger).Write(c.paths.SummaryXLSX, summary); err != nil {
			return nil, apperrors.NewStorageError("failed to write summary workbook", err).
				WithContext("path", c.paths.SummaryXLSX)
		}
		result.WorkbookPath = c.paths.SummaryXLSX
	}

	if err := c.print(result); err != nil {
		return nil, fmt.Errorf("failed to print summary: %w", err)
	}

	result.Duration = time.Since(start)
	c.metrics.RecordStageDuration(ctx, config.ClassifierStep, result.Duration.Seconds())

	c.logger.InfoContext(ctx, "Classifier completed",
		slog.String("output", result.OutputPath),
		slog.String("workbook", result.WorkbookPath),
		slog.Any("regime_counts", summary.CountByRegime()),
		slog.Duration("duration", result.Duration))

	return result, nil
}

func (c *Classifier) loadInput(ctx context.Context, path, producer string) (*dataset.Table, error) {
	if !config.FileExists(path) {
		c.logger.ErrorContext(ctx, "Required input not found",
			slog.String("path", path),
			slog.String("producer", producer))
		return nil, apperrors.NewMissingInputError(path, producer)
	}

	table, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read "+path, err)
	}
	c.logger.InfoContext(ctx, "Loaded input table",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Header)))
	return table, nil
}

func (c *Classifier) print(result *Result) error {
	if _, err := fmt.Fprintln(c.out, "Saved:", result.OutputPath); err != nil {
		return err
	}
	if result.WorkbookPath != "" {
		fmt.Fprintln(c.out, "Saved:", result.WorkbookPath)
	}
	fmt.Fprintln(c.out)
	if err := concentration.WriteTable(c.out, result.Summary); err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	return concentration.WriteDigest(c.out, result.Digest)
}
