package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tradeconc/internal/concentration"
)

func sampleSummary() *concentration.SummaryTable {
	x := concentration.NewPartnerSummary("X")
	x.HHI = 0.005
	x.Regime = concentration.RegimeRealDiversification
	x.StabilityLabel, x.HasStability = "Stable", true
	x.Interpretation = concentration.InterpDiversifiedResilient

	y := concentration.NewPartnerSummary("Y")
	y.HHI = 0.045
	y.Regime = concentration.RegimeStructuralConcentration
	y.StabilityLabel, y.HasStability = "Cyclical", true
	y.Interpretation = concentration.InterpConcentratedVolatile

	w := concentration.NewPartnerSummary("W")
	w.Regime = concentration.RegimeTransition
	w.Interpretation = concentration.InterpMixed

	return &concentration.SummaryTable{
		Columns: []string{
			concentration.ColPartner,
			concentration.ColRegime,
			concentration.ColStability,
			concentration.ColInterpretation,
			concentration.ColHHI,
		},
		Rows: []concentration.PartnerSummary{x, y, w},
	}
}

func TestWorkbookWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "summary.xlsx")
	require.NoError(t, NewWorkbookWriter(nil).Write(path, sampleSummary()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, RegimesSheet}, f.GetSheetList())

	rows, err := f.GetRows(SummarySheet, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"partner", "regime_step2_abs", "stability_step3", "interpretation", "hhi_hs6"}, rows[0])
	assert.Equal(t, "X", rows[1][0])
	assert.Equal(t, "0.005", rows[1][4])
	assert.Len(t, rows[3], 4, "missing values leave trailing cells empty")

	regimes, err := f.GetRows(RegimesSheet)
	require.NoError(t, err)
	require.Len(t, regimes, 4)
	assert.Equal(t, "regime", regimes[0][0])
	assert.Equal(t, "total", regimes[0][len(regimes[0])-1])
	assert.Equal(t, string(concentration.RegimeRealDiversification), regimes[1][0])
	assert.Equal(t, "1", regimes[1][1], "one stable diversified partner")
	assert.Equal(t, "1", regimes[3][len(regimes[3])-1])
}

func TestRegimeCounts(t *testing.T) {
	counts := RegimeCounts(sampleSummary())

	assert.Equal(t, 1, counts[concentration.RegimeRealDiversification][concentration.StabilityStable])
	assert.Equal(t, 1, counts[concentration.RegimeStructuralConcentration][concentration.StabilityCyclical])
	assert.Equal(t, 1, counts[concentration.RegimeTransition][concentration.StabilityUnknown])
	assert.Equal(t, 0, counts[concentration.RegimeTransition][concentration.StabilityStable])
}
