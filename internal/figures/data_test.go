package figures

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradeconc/internal/concentration"
	"tradeconc/internal/dataset"
)

func partner(name string, regime concentration.Regime, stability string, hhi, cr10, entropy float64) concentration.PartnerSummary {
	p := concentration.NewPartnerSummary(name)
	p.Year = 2023
	p.Regime = regime
	p.StabilityLabel = stability
	p.HasStability = stability != ""
	p.HHI = hhi
	p.CR10 = cr10
	p.EntropyNorm = entropy
	return p
}

func TestLatestYear(t *testing.T) {
	rows := []concentration.PartnerSummary{
		partner("A", concentration.RegimeTransition, "", 0, 0, 0),
		partner("B", concentration.RegimeTransition, "", 0, 0, 0),
	}
	rows[1].Year = 2024
	assert.Equal(t, "2024", LatestYear(rows))

	rows[0].Year, rows[1].Year = math.NaN(), math.NaN()
	assert.Equal(t, NoYear, LatestYear(rows))
	assert.Equal(t, NoYear, LatestYear(nil))
}

func TestSortedBars(t *testing.T) {
	rows := []concentration.PartnerSummary{
		partner("A", concentration.RegimeTransition, "", 0.01, 0.2, 0.7),
		partner("B", concentration.RegimeTransition, "", 0.03, math.NaN(), 0.7),
		partner("C", concentration.RegimeTransition, "", 0.02, 0.4, 0.7),
		partner("D", concentration.RegimeTransition, "", 0.02, 0.1, 0.7),
	}

	hhi := sortedBars(rows, hhiOf)
	assert.Equal(t, []string{"B", "C", "D", "A"}, hhi.Labels, "ties keep table order")

	cr10 := sortedBars(rows, cr10Of)
	assert.Equal(t, []string{"C", "A", "D"}, cr10.Labels, "missing values are left out")
	assert.Equal(t, 0.4, cr10.Values[0])
}

func TestScatterPoints(t *testing.T) {
	rows := []concentration.PartnerSummary{
		partner("A", concentration.RegimeTransition, "", 0.01, 0.2, 0.7),
		partner("B", concentration.RegimeTransition, "", math.NaN(), 0.2, 0.7),
	}
	points := scatterPoints(rows, entropyOf, hhiOf)
	require.Len(t, points, 1)
	assert.Equal(t, labeledXY{Label: "A", X: 0.7, Y: 0.01}, points[0])
}

func TestEntropySeries(t *testing.T) {
	ts, err := dataset.Read(strings.NewReader(`partner,year,entropy_norm
Spain,2021,0.70
France,2022,0.81
France,2020,0.79
Spain,2020,
France,2021,0.80
,2021,0.5
Chile,2020,bad
`))
	require.NoError(t, err)

	series := entropySeries(ts)
	require.Len(t, series, 2, "partners without points are omitted")

	assert.Equal(t, "France", series[0].Partner)
	require.Len(t, series[0].Points, 3)
	assert.Equal(t, []float64{2020, 2021, 2022}, []float64{series[0].Points[0].X, series[0].Points[1].X, series[0].Points[2].X})

	assert.Equal(t, "Spain", series[1].Partner)
	assert.Len(t, series[1].Points, 1)
}

func TestMatrixOrderAndCategories(t *testing.T) {
	rows := []concentration.PartnerSummary{
		partner("Z", concentration.RegimeTransition, "Stable", 0, 0, 0),
		partner("A", concentration.RegimeTransition, "", 0, 0, 0),
		partner("M", concentration.RegimeRealDiversification, "Stable", 0, 0, 0),
		partner("B", concentration.RegimeTransition, "Cyclical", 0, 0, 0),
	}

	ordered := matrixOrder(rows)
	var names []string
	for _, row := range ordered {
		names = append(names, row.Partner)
	}
	assert.Equal(t, []string{"M", "B", "Z", "A"}, names, "missing stability sorts last")

	indices, levels := categoryIndex([]string{"Stable", "Cyclical", "Stable", ""})
	assert.Equal(t, []string{"Stable", "Cyclical"}, levels)
	assert.Equal(t, 0.0, indices[0])
	assert.Equal(t, 1.0, indices[1])
	assert.Equal(t, 0.0, indices[2])
	assert.True(t, math.IsNaN(indices[3]))
}

func TestMatrixGrid(t *testing.T) {
	g := matrixGrid{cells: [][2]float64{{0, 1}, {2, 3}, {4, 5}}}
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 3, r)
	assert.Equal(t, 4.0, g.Z(0, 0), "grid row 0 is the last partner")
	assert.Equal(t, 1.0, g.Z(1, 2), "top grid row is the first partner")
}

func TestTableCells(t *testing.T) {
	p := partner("X", concentration.RegimeRealDiversification, "Stable", 0.01234, 0.18, math.NaN())
	p.Interpretation = concentration.InterpDiversifiedResilient

	cells := tableCells([]concentration.PartnerSummary{p})
	require.Len(t, cells, 1)
	assert.Equal(t, []string{
		"X", "Real diversification", "Stable", "0.0123", "0.180", "nan",
		"Diversified & resilient export structure.",
	}, cells[0])

	starts := columnStarts(tableColumns, cells)
	require.Len(t, starts, len(tableColumns))
	assert.Equal(t, 0.0, starts[0])
	for i := 1; i < len(starts); i++ {
		assert.Greater(t, starts[i], starts[i-1])
		assert.Less(t, starts[i], 1.0)
	}
}
