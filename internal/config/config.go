package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete configuration shared by both stages
type Config struct {
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Regime  RegimeConfig  `yaml:"regime" envconfig:"REGIME"`
	Figures FiguresConfig `yaml:"figures" envconfig:"FIGURES"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// PathsConfig contains file system locations. File names are resolved
// against DataDir unless they are absolute.
type PathsConfig struct {
	DataDir         string `yaml:"data_dir" envconfig:"DATA_DIR"`
	LatestYear      string `yaml:"latest_year" envconfig:"LATEST_YEAR" default:"selected10_regimes_latest_year.csv" validate:"required"`
	Stability       string `yaml:"stability" envconfig:"STABILITY" default:"selected10_regimes_stability.csv" validate:"required"`
	FinalSummary    string `yaml:"final_summary" envconfig:"FINAL_SUMMARY" default:"step23_final_summary_table.csv" validate:"required"`
	TimeSeries      string `yaml:"time_series" envconfig:"TIME_SERIES" default:"italy_selected10_product_concentration.csv"`
	SummaryWorkbook string `yaml:"summary_workbook" envconfig:"SUMMARY_WORKBOOK" default:"step23_final_summary_table.xlsx"`
	FiguresDir      string `yaml:"figures_dir" envconfig:"FIGURES_DIR" default:"figures_export" validate:"required"`
	LogsDir         string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// RegimeConfig holds the classification thresholds. The gap between the
// diversification and concentration bounds is intentional and maps to
// "Transition / mixed".
type RegimeConfig struct {
	DiversifiedMaxHHI       float64 `yaml:"diversified_max_hhi" envconfig:"DIVERSIFIED_MAX_HHI" default:"0.01" validate:"gte=0,lte=1"`
	DiversifiedMaxCR10      float64 `yaml:"diversified_max_cr10" envconfig:"DIVERSIFIED_MAX_CR10" default:"0.22" validate:"gte=0,lte=1"`
	DiversifiedMinEntropy   float64 `yaml:"diversified_min_entropy" envconfig:"DIVERSIFIED_MIN_ENTROPY" default:"0.74" validate:"gte=0,lte=1"`
	DiversifiedMinActiveHS6 float64 `yaml:"diversified_min_active_hs6" envconfig:"DIVERSIFIED_MIN_ACTIVE_HS6" default:"3500" validate:"gte=0"`
	ConcentratedMinHHI      float64 `yaml:"concentrated_min_hhi" envconfig:"CONCENTRATED_MIN_HHI" default:"0.02" validate:"gte=0,lte=1"`
	ConcentratedMinCR10     float64 `yaml:"concentrated_min_cr10" envconfig:"CONCENTRATED_MIN_CR10" default:"0.30" validate:"gte=0,lte=1"`
	ConcentratedMaxEntropy  float64 `yaml:"concentrated_max_entropy" envconfig:"CONCENTRATED_MAX_ENTROPY" default:"0.70" validate:"gte=0,lte=1"`
}

// FiguresConfig controls chart rendering
type FiguresConfig struct {
	Country string  `yaml:"country" envconfig:"COUNTRY" default:"Italy" validate:"required"`
	Width   float64 `yaml:"width" envconfig:"WIDTH" default:"8" validate:"gt=0"`
	Height  float64 `yaml:"height" envconfig:"HEIGHT" default:"5" validate:"gt=0"`
	DPI     int     `yaml:"dpi" envconfig:"DPI" default:"260" validate:"gt=0,lte=1200"`
}

// ExportConfig toggles secondary artifacts
type ExportConfig struct {
	Workbook bool `yaml:"workbook" envconfig:"WORKBOOK" default:"true"`
}

// MetricsConfig controls the Prometheus textfile output
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// Load loads configuration from environment variables and an optional YAML file.
// Values set in the environment take precedence over the file.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile := getConfigFilePath(); configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs overlays file values onto the env config wherever the
// corresponding variable was not set in the environment.
func mergeConfigs(fileConfig, envConfig Config) Config {
	fromFile := func(envKey string) bool {
		_, set := os.LookupEnv(EnvPrefix + "_" + envKey)
		return !set
	}

	// Paths
	if fromFile("PATHS_DATA_DIR") && fileConfig.Paths.DataDir != "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if fromFile("PATHS_LATEST_YEAR") && fileConfig.Paths.LatestYear != "" {
		envConfig.Paths.LatestYear = fileConfig.Paths.LatestYear
	}
	if fromFile("PATHS_STABILITY") && fileConfig.Paths.Stability != "" {
		envConfig.Paths.Stability = fileConfig.Paths.Stability
	}
	if fromFile("PATHS_FINAL_SUMMARY") && fileConfig.Paths.FinalSummary != "" {
		envConfig.Paths.FinalSummary = fileConfig.Paths.FinalSummary
	}
	if fromFile("PATHS_TIME_SERIES") && fileConfig.Paths.TimeSeries != "" {
		envConfig.Paths.TimeSeries = fileConfig.Paths.TimeSeries
	}
	if fromFile("PATHS_SUMMARY_WORKBOOK") && fileConfig.Paths.SummaryWorkbook != "" {
		envConfig.Paths.SummaryWorkbook = fileConfig.Paths.SummaryWorkbook
	}
	if fromFile("PATHS_FIGURES_DIR") && fileConfig.Paths.FiguresDir != "" {
		envConfig.Paths.FiguresDir = fileConfig.Paths.FiguresDir
	}
	if fromFile("PATHS_LOGS_DIR") && fileConfig.Paths.LogsDir != "" {
		envConfig.Paths.LogsDir = fileConfig.Paths.LogsDir
	}

	// Logging
	if fromFile("LOGGING_LEVEL") && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fromFile("LOGGING_OUTPUT") && fileConfig.Logging.Output != "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if fromFile("LOGGING_FILE_PATH") && fileConfig.Logging.FilePath != "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	// Regime thresholds. A zero in the file reads the same as an absent key,
	// so a zero threshold has to come from the environment.
	r := &envConfig.Regime
	f := fileConfig.Regime
	if fromFile("REGIME_DIVERSIFIED_MAX_HHI") && f.DiversifiedMaxHHI != 0 {
		r.DiversifiedMaxHHI = f.DiversifiedMaxHHI
	}
	if fromFile("REGIME_DIVERSIFIED_MAX_CR10") && f.DiversifiedMaxCR10 != 0 {
		r.DiversifiedMaxCR10 = f.DiversifiedMaxCR10
	}
	if fromFile("REGIME_DIVERSIFIED_MIN_ENTROPY") && f.DiversifiedMinEntropy != 0 {
		r.DiversifiedMinEntropy = f.DiversifiedMinEntropy
	}
	if fromFile("REGIME_DIVERSIFIED_MIN_ACTIVE_HS6") && f.DiversifiedMinActiveHS6 != 0 {
		r.DiversifiedMinActiveHS6 = f.DiversifiedMinActiveHS6
	}
	if fromFile("REGIME_CONCENTRATED_MIN_HHI") && f.ConcentratedMinHHI != 0 {
		r.ConcentratedMinHHI = f.ConcentratedMinHHI
	}
	if fromFile("REGIME_CONCENTRATED_MIN_CR10") && f.ConcentratedMinCR10 != 0 {
		r.ConcentratedMinCR10 = f.ConcentratedMinCR10
	}
	if fromFile("REGIME_CONCENTRATED_MAX_ENTROPY") && f.ConcentratedMaxEntropy != 0 {
		r.ConcentratedMaxEntropy = f.ConcentratedMaxEntropy
	}

	// Figures
	if fromFile("FIGURES_COUNTRY") && fileConfig.Figures.Country != "" {
		envConfig.Figures.Country = fileConfig.Figures.Country
	}
	if fromFile("FIGURES_WIDTH") && fileConfig.Figures.Width != 0 {
		envConfig.Figures.Width = fileConfig.Figures.Width
	}
	if fromFile("FIGURES_HEIGHT") && fileConfig.Figures.Height != 0 {
		envConfig.Figures.Height = fileConfig.Figures.Height
	}
	if fromFile("FIGURES_DPI") && fileConfig.Figures.DPI != 0 {
		envConfig.Figures.DPI = fileConfig.Figures.DPI
	}

	// yaml leaves a missing bool false, so the file can only switch the
	// workbook off.
	if fromFile("EXPORT_WORKBOOK") && !fileConfig.Export.Workbook {
		envConfig.Export.Workbook = false
	}

	if fromFile("METRICS_TEXTFILE_PATH") && fileConfig.Metrics.TextfilePath != "" {
		envConfig.Metrics.TextfilePath = fileConfig.Metrics.TextfilePath
	}

	return envConfig
}

// resolvePaths fills in the data directory default
func (c *Config) resolvePaths() error {
	if c.Paths.DataDir != "" {
		return nil
	}
	dir, err := DefaultDataDir()
	if err != nil {
		return err
	}
	c.Paths.DataDir = dir
	return nil
}

// Validate checks struct constraints and the ordering of the thresholds
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}

	if c.Regime.DiversifiedMaxHHI > c.Regime.ConcentratedMinHHI {
		return fmt.Errorf("diversified_max_hhi (%g) exceeds concentrated_min_hhi (%g)",
			c.Regime.DiversifiedMaxHHI, c.Regime.ConcentratedMinHHI)
	}
	if c.Regime.DiversifiedMaxCR10 > c.Regime.ConcentratedMinCR10 {
		return fmt.Errorf("diversified_max_cr10 (%g) exceeds concentrated_min_cr10 (%g)",
			c.Regime.DiversifiedMaxCR10, c.Regime.ConcentratedMinCR10)
	}
	if c.Regime.ConcentratedMaxEntropy > c.Regime.DiversifiedMinEntropy {
		return fmt.Errorf("concentrated_max_entropy (%g) exceeds diversified_min_entropy (%g)",
			c.Regime.ConcentratedMaxEntropy, c.Regime.DiversifiedMinEntropy)
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" if none exists
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG"); explicit != "" {
		return explicit
	}

	locations := []string{
		"tradeconc.yaml",
		"configs/tradeconc.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration rooted at dataDir
func Default(dataDir string) *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir:         dataDir,
			LatestYear:      LatestYearFile,
			Stability:       StabilityFile,
			FinalSummary:    FinalSummaryFile,
			TimeSeries:      TimeSeriesFile,
			SummaryWorkbook: SummaryWorkbookFile,
			FiguresDir:      DefaultFiguresDir,
			LogsDir:         DefaultLogsDir,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Output: "console",
		},
		Regime: RegimeConfig{
			DiversifiedMaxHHI:       0.01,
			DiversifiedMaxCR10:      0.22,
			DiversifiedMinEntropy:   0.74,
			DiversifiedMinActiveHS6: 3500,
			ConcentratedMinHHI:      0.02,
			ConcentratedMinCR10:     0.30,
			ConcentratedMaxEntropy:  0.70,
		},
		Figures: FiguresConfig{
			Country: DefaultCountry,
			Width:   8,
			Height:  5,
			DPI:     DefaultDPI,
		},
		Export: ExportConfig{
			Workbook: true,
		},
	}
}
