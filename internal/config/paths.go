package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains resolved absolute paths for every artifact both stages touch.
// This is the single source of truth for file locations.
type Paths struct {
	DataDir         string
	LatestYearCSV   string
	StabilityCSV    string
	FinalSummaryCSV string
	TimeSeriesCSV   string
	SummaryXLSX     string
	FiguresDir      string
	LogsDir         string
}

// DefaultDataDir returns ~/Downloads/italy
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, "Downloads", "italy"), nil
}

// Resolve builds absolute paths from the configuration
func (c *Config) Resolve() *Paths {
	dataDir := c.Paths.DataDir
	if abs, err := filepath.Abs(dataDir); err == nil {
		dataDir = abs
	}

	join := func(name string) string {
		if name == "" {
			return ""
		}
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(dataDir, name)
	}

	return &Paths{
		DataDir:         dataDir,
		LatestYearCSV:   join(c.Paths.LatestYear),
		StabilityCSV:    join(c.Paths.Stability),
		FinalSummaryCSV: join(c.Paths.FinalSummary),
		TimeSeriesCSV:   join(c.Paths.TimeSeries),
		SummaryXLSX:     join(c.Paths.SummaryWorkbook),
		FiguresDir:      join(c.Paths.FiguresDir),
		LogsDir:         join(c.Paths.LogsDir),
	}
}

// GetFigurePath returns the path for a chart file in the figures directory
func (p *Paths) GetFigurePath(filename string) string {
	return filepath.Join(p.FiguresDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureFiguresDir creates the figures directory if it does not exist
func (p *Paths) EnsureFiguresDir() error {
	if err := os.MkdirAll(p.FiguresDir, 0755); err != nil {
		return fmt.Errorf("failed to create figures directory %s: %w", p.FiguresDir, err)
	}
	return nil
}

// FileExists reports whether path names an existing regular file
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LogPathResolution logs all resolved paths at debug level
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Resolved paths",
		slog.String("data_dir", p.DataDir),
		slog.String("latest_year_csv", p.LatestYearCSV),
		slog.String("stability_csv", p.StabilityCSV),
		slog.String("final_summary_csv", p.FinalSummaryCSV),
		slog.String("time_series_csv", p.TimeSeriesCSV),
		slog.String("summary_xlsx", p.SummaryXLSX),
		slog.String("figures_dir", p.FiguresDir),
		slog.String("logs_dir", p.LogsDir))
}
