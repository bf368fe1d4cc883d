package figures

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"tradeconc/internal/concentration"
	"tradeconc/internal/config"
	"tradeconc/internal/dataset"
	apperrors "tradeconc/internal/errors"
	"tradeconc/internal/infrastructure"
)

// Table image size in inches
const (
	tableWidth  = 11
	tableHeight = 4.8
)

// Result lists the outcome of an export run by file name
type Result struct {
	OutputDir  string
	LatestYear string
	Generated  []string
	Skipped    []string
	Failed     []string
	Duration   time.Duration
}

// Exporter renders the figure set from the combined summary table
type Exporter struct {
	cfg     *config.Config
	paths   *config.Paths
	logger  *slog.Logger
	metrics *infrastructure.Metrics
	out     io.Writer
}

// New creates a figure exporter. metrics may be nil; out receives the
// completion summary and may be nil to disable it.
func New(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.Metrics, out io.Writer) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	return &Exporter{
		cfg:     cfg,
		paths:   cfg.Resolve(),
		logger:  infrastructure.WithComponent(logger, config.FiguresStep),
		metrics: metrics,
		out:     out,
	}
}

type chart struct {
	file   string
	width  vg.Length
	height vg.Length
	build  func() (*plot.Plot, error)
}

// Export writes every chart to the figures directory. A chart that fails is
// logged and the remaining charts still run; the returned error joins all
// chart failures. The summary table is required and its absence fails the run
// before anything is written.
func (e *Exporter) Export(ctx context.Context) (*Result, error) {
	start := time.Now()
	e.paths.LogPathResolution(e.logger)

	if !config.FileExists(e.paths.FinalSummaryCSV) {
		e.logger.ErrorContext(ctx, "Summary table not found",
			slog.String("path", e.paths.FinalSummaryCSV),
			slog.String("hint", "run the classifier first"))
		return nil, apperrors.NewMissingInputError(e.paths.FinalSummaryCSV, config.ClassifierStep)
	}

	table, err := dataset.ReadCSV(e.paths.FinalSummaryCSV)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read summary table", err).
			WithContext("path", e.paths.FinalSummaryCSV)
	}
	rows := concentration.FromTable(table).Rows

	if err := e.paths.EnsureFiguresDir(); err != nil {
		return nil, apperrors.NewStorageError("failed to prepare figures directory", err)
	}

	result := &Result{
		OutputDir:  e.paths.FiguresDir,
		LatestYear: LatestYear(rows),
	}
	e.logger.InfoContext(ctx, "Loaded summary table",
		slog.Int("partners", len(rows)),
		slog.String("latest_year", result.LatestYear))

	ts := e.loadTimeSeries(ctx)

	var failures []error
	for _, c := range e.charts(rows, ts, result.LatestYear) {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		if c.build == nil {
			result.Skipped = append(result.Skipped, c.file)
			e.metrics.RecordFigure(ctx, c.file, infrastructure.FigureSkipped)
			continue
		}

		if err := e.render(c); err != nil {
			e.logger.ErrorContext(ctx, "Chart failed",
				slog.String("file", c.file),
				slog.String("error", err.Error()))
			result.Failed = append(result.Failed, c.file)
			e.metrics.RecordFigure(ctx, c.file, infrastructure.FigureFailed)
			failures = append(failures, apperrors.NewRenderError(c.file, err))
			continue
		}

		e.logger.InfoContext(ctx, "Chart saved", slog.String("file", c.file))
		result.Generated = append(result.Generated, c.file)
		e.metrics.RecordFigure(ctx, c.file, infrastructure.FigureGenerated)
	}

	result.Duration = time.Since(start)
	e.metrics.RecordStageDuration(ctx, config.FiguresStep, result.Duration.Seconds())
	e.printSummary(result)

	e.logger.InfoContext(ctx, "Figure export finished",
		slog.Int("generated", len(result.Generated)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("failed", len(result.Failed)),
		slog.Duration("duration", result.Duration))

	return result, errors.Join(failures...)
}

func (e *Exporter) charts(rows []concentration.PartnerSummary, ts *dataset.Table, year string) []chart {
	w := vg.Length(e.cfg.Figures.Width) * vg.Inch
	h := vg.Length(e.cfg.Figures.Height) * vg.Inch

	charts := []chart{
		{ScatterFile, w, h, func() (*plot.Plot, error) {
			return scatterChart(rows, e.cfg.Figures.Country, year)
		}},
		{CR10BarFile, w, h, func() (*plot.Plot, error) {
			return barChart(rows, cr10Of,
				fmt.Sprintf("Top-10 Product Concentration by Partner (CR10, %s)", year),
				"CR10 (share of top-10 HS6 products)")
		}},
		{HHIBarFile, w, h, func() (*plot.Plot, error) {
			return barChart(rows, hhiOf,
				fmt.Sprintf("Product Concentration by Partner (HHI, %s)", year),
				"HHI (HS6)")
		}},
		{TimeSeriesFile, w, h, nil},
		{MatrixFile, w, h, func() (*plot.Plot, error) {
			return matrixChart(rows)
		}},
		{TableFile, tableWidth * vg.Inch, tableHeight * vg.Inch, func() (*plot.Plot, error) {
			return tableChart(rows, year)
		}},
	}
	if ts != nil {
		charts[3].build = func() (*plot.Plot, error) { return timeSeriesChart(ts) }
	}
	return charts
}

// render builds and saves one chart. Panics inside the plotting library are
// reported as errors for that chart.
func (e *Exporter) render(c chart) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()

	p, err := c.build()
	if err != nil {
		return err
	}
	return savePNG(p, e.paths.GetFigurePath(c.file), c.width, c.height, e.cfg.Figures.DPI)
}

// loadTimeSeries returns the optional time-series table, or nil when it is
// absent or lacks entropy values
func (e *Exporter) loadTimeSeries(ctx context.Context) *dataset.Table {
	path := e.paths.TimeSeriesCSV

	var warning *apperrors.AppError
	var ts *dataset.Table
	switch {
	case !config.FileExists(path):
		warning = apperrors.NewDataQualityWarning("time-series file not found", nil)
	default:
		table, err := dataset.ReadCSV(path)
		switch {
		case err != nil:
			warning = apperrors.NewDataQualityWarning("time-series file unreadable", err)
		case !table.Has(concentration.ColEntropy):
			warning = apperrors.NewDataQualityWarning("time-series file has no entropy_norm column", nil)
		default:
			ts = table
		}
	}

	if warning != nil {
		e.logger.WarnContext(ctx, "Skipping time-series chart",
			slog.String("file", TimeSeriesFile),
			slog.String("path", path),
			slog.String("reason", warning.Error()))
	}
	return ts
}

func (e *Exporter) printSummary(result *Result) {
	fmt.Fprintln(e.out, "Saved figures to:", result.OutputDir)
	for _, file := range result.Generated {
		fmt.Fprintln(e.out, "-", file)
	}
	for _, file := range result.Skipped {
		fmt.Fprintln(e.out, "skipped:", file)
	}
	for _, file := range result.Failed {
		fmt.Fprintln(e.out, "failed:", file)
	}
}
