// Package config provides centralized configuration for the classifier and
// figure exporter stages.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A YAML file named by TRADECONC_CONFIG, or tradeconc.yaml / configs/tradeconc.yaml
//	3. Default values from struct tags (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TRADECONC_<SECTION>_<FIELD>:
//
//	TRADECONC_PATHS_DATA_DIR=/data/italy
//	TRADECONC_LOGGING_LEVEL=debug
//	TRADECONC_REGIME_CONCENTRATED_MIN_HHI=0.02
//	TRADECONC_FIGURES_DPI=150
//	TRADECONC_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/tradeconc.prom
//
// # Path Management
//
// File names are relative to the data directory (default ~/Downloads/italy).
// Config.Resolve turns them into absolute paths:
//
//	cfg, err := config.Load()
//	paths := cfg.Resolve()
//	summary := paths.FinalSummaryCSV
//
// # Testing
//
// Use config.Default(t.TempDir()) to get a configuration with the standard
// thresholds rooted at a temporary directory.
package config
