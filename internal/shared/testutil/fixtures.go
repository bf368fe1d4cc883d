package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"tradeconc/internal/config"
)

// LatestYearCSV is a latest-year table with one partner per regime
const LatestYearCSV = `partner,year,regime_step2,active_hs6,hhi_hs6,cr10,entropy_norm
Y,2023,concentrated,2100,0.045,0.41,0.61
X,2023,diversified,4200,0.005,0.18,0.80
Z,2023,mixed,3900,0.015,0.25,0.72
`

// StabilityCSV matches LatestYearCSV
const StabilityCSV = `partner,stability_step3,hhi_std,cr10_cv,entropy_std
X,Stable,0.001,0.05,0.01
Y,Cyclical,0.012,0.22,0.04
Z,Moderately Cyclical,0.004,0.1,0.02
`

// TimeSeriesCSV is a per-year series for two of the partners
const TimeSeriesCSV = `partner,year,entropy_norm
X,2021,0.78
X,2022,0.79
X,2023,0.8
Y,2022,0.6
Y,2023,0.61
`

// DataDir writes files into a fresh temporary directory and returns the
// default configuration rooted there. Figures render at a low DPI.
func DataDir(t *testing.T, files map[string]string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	cfg := config.Default(dir)
	cfg.Figures.DPI = 40
	return cfg
}
