package concentration

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeconc/internal/dataset"
	apperrors "tradeconc/internal/errors"
)

func mustRead(t *testing.T, content string) *dataset.Table {
	t.Helper()
	table, err := dataset.Read(strings.NewReader(content))
	require.NoError(t, err)
	return table
}

const latestCSV = `partner,year,regime_step2,active_hs6,hhi_hs6,cr10,entropy_norm
Y,2023,concentrated,2100,0.045,0.41,0.61
X,2023,diversified,4200,0.005,0.18,0.80
Z,2023,mixed,3900,0.015,0.25,0.72
W,2023,mixed,,n/a,0.20,0.75
`

const stabilityCSV = `partner,stability_step3,hhi_std,cr10_cv,entropy_std
X,Stable,0.001,0.05,0.01
Y,Cyclical,0.012,0.22,0.04
Z,Moderately stable,0.004,0.1,0.02
Orphan,Stable,0.1,0.1,0.1
`

func TestMerge_Scenarios(t *testing.T) {
	summary, err := Merge(mustRead(t, latestCSV), mustRead(t, stabilityCSV), DefaultThresholds())
	require.NoError(t, err)

	assert.False(t, summary.Schema.AlreadyMerged)
	assert.Equal(t, OutputColumns, summary.Columns)
	require.Len(t, summary.Rows, 4, "orphan stability rows are dropped")

	byPartner := make(map[string]PartnerSummary)
	for _, row := range summary.Rows {
		byPartner[row.Partner] = row
	}

	x := byPartner["X"]
	assert.Equal(t, RegimeRealDiversification, x.Regime)
	assert.Equal(t, InterpDiversifiedResilient, x.Interpretation)
	assert.Equal(t, 0.001, x.HHIStd)

	y := byPartner["Y"]
	assert.Equal(t, RegimeStructuralConcentration, y.Regime)
	assert.Equal(t, InterpConcentratedVolatile, y.Interpretation)

	z := byPartner["Z"]
	assert.Equal(t, RegimeTransition, z.Regime)
	assert.Equal(t, InterpMixedModeratelyStable, z.Interpretation)

	w := byPartner["W"]
	assert.Equal(t, RegimeTransition, w.Regime, "missing metrics fall through")
	assert.False(t, w.HasStability)
	assert.Equal(t, InterpMixed, w.Interpretation)
	assert.True(t, math.IsNaN(w.HHIStd))
	assert.Equal(t, "", w.Cell(ColHHI))
	assert.Equal(t, "", w.Cell(ColStability))
}

func TestMerge_SortedByRegimeThenPartner(t *testing.T) {
	summary, err := Merge(mustRead(t, latestCSV), mustRead(t, stabilityCSV), DefaultThresholds())
	require.NoError(t, err)

	var order []string
	for _, row := range summary.Rows {
		order = append(order, row.Partner)
	}
	assert.Equal(t, []string{"X", "Y", "W", "Z"}, order)
}

func TestMerge_AlreadyMerged(t *testing.T) {
	latest := mustRead(t, `partner,hhi_hs6,cr10,entropy_norm,active_hs6,stability_step3,hhi_std
X,0.005,0.18,0.80,4200,Stable,0.5
Q,0.05,0.4,0.6,100,Cyclical,0.7
`)
	stability := mustRead(t, `partner,stability_step3,hhi_std,cr10_cv,entropy_std
X,Cyclical,0.001,0.05,0.01
`)

	summary, err := Merge(latest, stability, DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, summary.Schema.AlreadyMerged)
	assert.Equal(t, []string{ColHHIStd, ColCR10CV, ColEntropyStd}, summary.Schema.Pulled)
	require.Len(t, summary.Rows, 2)

	x := summary.Rows[0]
	assert.Equal(t, "X", x.Partner)
	assert.Equal(t, "Stable", x.StabilityLabel, "existing label is kept")
	assert.Equal(t, 0.001, x.HHIStd, "matched statistics are refreshed")
	assert.Equal(t, InterpDiversifiedResilient, x.Interpretation)

	q := summary.Rows[1]
	assert.Equal(t, "Cyclical", q.StabilityLabel)
	assert.Equal(t, 0.7, q.HHIStd, "unmatched rows keep their statistics")
	assert.True(t, math.IsNaN(q.CR10CV))
}

func TestMerge_RerunIsIdentical(t *testing.T) {
	first, err := Merge(mustRead(t, latestCSV), mustRead(t, stabilityCSV), DefaultThresholds())
	require.NoError(t, err)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(first.Columns))
	require.NoError(t, w.WriteAll(first.Records()))

	second, err := Merge(mustRead(t, buf.String()), mustRead(t, stabilityCSV), DefaultThresholds())
	require.NoError(t, err)

	assert.True(t, second.Schema.AlreadyMerged)
	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Records(), second.Records())
}

func TestMerge_DuplicatePartners(t *testing.T) {
	latest := mustRead(t, "partner,hhi_hs6\nX,0.5\n,0.1\n")
	stability := mustRead(t, "partner,stability_step3\nX,Stable\nX,Cyclical\n,Stable\n")

	summary, err := Merge(latest, stability, DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, summary.Rows, 3)

	var labels []string
	for _, row := range summary.Rows {
		if row.Partner == "X" {
			labels = append(labels, row.StabilityLabel)
		}
	}
	assert.Equal(t, []string{"Stable", "Cyclical"}, labels)
	assert.Equal(t, []string{ColPartner, ColRegime, ColStability, ColInterpretation, ColHHI}, summary.Columns)
}

func TestMerge_MissingPartnerColumn(t *testing.T) {
	good := mustRead(t, "partner,hhi_hs6\nX,0.5\n")
	bad := mustRead(t, "country,hhi_hs6\nX,0.5\n")

	_, err := Merge(bad, good, DefaultThresholds())
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	_, err = Merge(good, bad, DefaultThresholds())
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestFromTable(t *testing.T) {
	table := mustRead(t, "partner,regime_step2_abs,stability_step3,hhi_hs6,extra\nX,Real diversification,Stable,0.005,1\n")
	summary := FromTable(table)

	assert.Equal(t, []string{ColPartner, ColRegime, ColStability, ColHHI}, summary.Columns)
	require.Len(t, summary.Rows, 1)
	assert.Equal(t, RegimeRealDiversification, summary.Rows[0].Regime)
	assert.Equal(t, StabilityStable, summary.Rows[0].Stability())
	assert.True(t, summary.HasColumn(ColHHI))
	assert.False(t, summary.HasColumn(ColCR10))
}

func TestDigest(t *testing.T) {
	summary := &SummaryTable{Columns: []string{ColPartner, ColRegime}}
	for _, r := range []struct {
		partner string
		regime  Regime
		hhi     float64
	}{
		{"A", RegimeTransition, 0.01},
		{"B", RegimeTransition, 0.03},
		{"C", RegimeTransition, math.NaN()},
		{"D", RegimeRealDiversification, 0.004},
	} {
		p := NewPartnerSummary(r.partner)
		p.Regime = r.regime
		p.HHI = r.hhi
		summary.Rows = append(summary.Rows, p)
	}

	digests := Digest(summary)
	require.Len(t, digests, 2, "empty regimes are omitted")

	assert.Equal(t, RegimeRealDiversification, digests[0].Regime)
	assert.Equal(t, 1, digests[0].Partners)

	transition := digests[1]
	assert.Equal(t, 3, transition.Partners)
	assert.InDelta(t, 0.02, transition.HHI.Mean, 1e-12)
	assert.InDelta(t, 0.02, transition.HHI.Median, 1e-12)
	assert.True(t, math.IsNaN(transition.CR10.Mean))

	var buf bytes.Buffer
	require.NoError(t, WriteDigest(&buf, digests))
	assert.Contains(t, buf.String(), "Transition / mixed")
	assert.Contains(t, buf.String(), "0.0200")

	buf.Reset()
	require.NoError(t, WriteTable(&buf, summary))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "partner"))
}
