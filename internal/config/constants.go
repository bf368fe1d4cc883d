package config

// Application constants
const (
	AppName    = "tradeconc"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. TRADECONC_PATHS_DATA_DIR
	EnvPrefix = "TRADECONC"

	// Input and output file names (relative to the data directory)
	LatestYearFile      = "selected10_regimes_latest_year.csv"
	StabilityFile       = "selected10_regimes_stability.csv"
	FinalSummaryFile    = "step23_final_summary_table.csv"
	TimeSeriesFile      = "italy_selected10_product_concentration.csv"
	SummaryWorkbookFile = "step23_final_summary_table.xlsx"

	// Directories (relative to the data directory)
	DefaultFiguresDir = "figures_export"
	DefaultLogsDir    = "logs"

	// Producer names used in missing-input messages
	ClassifierStep = "classifier"
	FiguresStep    = "figures"

	DefaultLogLevel = "info"
	DefaultCountry  = "Italy"
	DefaultDPI      = 260
)
