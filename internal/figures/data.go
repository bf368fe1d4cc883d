package figures

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/plot/plotter"

	"tradeconc/internal/concentration"
	"tradeconc/internal/dataset"
)

// NoYear is shown in titles when no year is parseable
const NoYear = "n/a"

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// LatestYear returns the largest year in the table, or NoYear
func LatestYear(rows []concentration.PartnerSummary) string {
	var years []float64
	for _, row := range rows {
		if finite(row.Year) {
			years = append(years, row.Year)
		}
	}
	latest, err := stats.Max(years)
	if err != nil {
		return NoYear
	}
	return strconv.FormatFloat(math.Trunc(latest), 'f', 0, 64)
}

// labeledXY is a chart point with its partner label
type labeledXY struct {
	Label string
	X, Y  float64
}

// scatterPoints returns one point per partner with both values present
func scatterPoints(rows []concentration.PartnerSummary, x, y func(concentration.PartnerSummary) float64) []labeledXY {
	var points []labeledXY
	for _, row := range rows {
		px, py := x(row), y(row)
		if finite(px) && finite(py) {
			points = append(points, labeledXY{Label: row.Partner, X: px, Y: py})
		}
	}
	return points
}

// barSeries holds bar values with their category labels
type barSeries struct {
	Labels []string
	Values plotter.Values
}

// sortedBars returns partners with a value, sorted by value descending. Equal
// values keep table order.
func sortedBars(rows []concentration.PartnerSummary, value func(concentration.PartnerSummary) float64) barSeries {
	var kept []concentration.PartnerSummary
	for _, row := range rows {
		if finite(value(row)) {
			kept = append(kept, row)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return value(kept[i]) > value(kept[j])
	})

	series := barSeries{
		Labels: make([]string, len(kept)),
		Values: make(plotter.Values, len(kept)),
	}
	for i, row := range kept {
		series.Labels[i] = row.Partner
		series.Values[i] = value(row)
	}
	return series
}

// partnerSeries is one partner's entropy trajectory
type partnerSeries struct {
	Partner string
	Points  plotter.XYs
}

// entropySeries groups the time series by partner. Partners are returned in
// alphabetical order and points by year; rows missing year or entropy are
// skipped, and partners left without points are omitted.
func entropySeries(ts *dataset.Table) []partnerSeries {
	byPartner := make(map[string]plotter.XYs)
	for i := 0; i < ts.Len(); i++ {
		partner := ts.Value(i, concentration.ColPartner)
		if partner == "" {
			continue
		}
		year := ts.Float(i, concentration.ColYear)
		entropy := ts.Float(i, concentration.ColEntropy)
		if !finite(year) || !finite(entropy) {
			continue
		}
		byPartner[partner] = append(byPartner[partner], plotter.XY{X: year, Y: entropy})
	}

	partners := make([]string, 0, len(byPartner))
	for partner := range byPartner {
		partners = append(partners, partner)
	}
	sort.Strings(partners)

	series := make([]partnerSeries, 0, len(partners))
	for _, partner := range partners {
		points := byPartner[partner]
		sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
		series = append(series, partnerSeries{Partner: partner, Points: points})
	}
	return series
}

// matrixOrder sorts rows by regime, stability label and partner. Rows
// without a stability label sort after those with one.
func matrixOrder(rows []concentration.PartnerSummary) []concentration.PartnerSummary {
	ordered := make([]concentration.PartnerSummary, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Regime != b.Regime {
			return a.Regime < b.Regime
		}
		if a.HasStability != b.HasStability {
			return a.HasStability
		}
		if a.StabilityLabel != b.StabilityLabel {
			return a.StabilityLabel < b.StabilityLabel
		}
		return a.Partner < b.Partner
	})
	return ordered
}

// categoryIndex maps each value to the index of its first appearance.
// Empty values map to NaN and are not counted as a level.
func categoryIndex(values []string) ([]float64, []string) {
	seen := make(map[string]int)
	var levels []string
	indices := make([]float64, len(values))
	for i, v := range values {
		if v == "" {
			indices[i] = math.NaN()
			continue
		}
		idx, ok := seen[v]
		if !ok {
			idx = len(levels)
			seen[v] = idx
			levels = append(levels, v)
		}
		indices[i] = float64(idx)
	}
	return indices, levels
}

// Summary table image columns
var tableColumns = []string{
	concentration.ColPartner,
	concentration.ColRegime,
	concentration.ColStability,
	concentration.ColHHI,
	concentration.ColCR10,
	concentration.ColEntropy,
	concentration.ColInterpretation,
}

// tableCells formats the rows of the summary table image. Missing numbers
// render as "nan".
func tableCells(rows []concentration.PartnerSummary) [][]string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			row.Partner,
			string(row.Regime),
			row.StabilityLabel,
			fixedOrNaN(row.HHI, 4),
			fixedOrNaN(row.CR10, 3),
			fixedOrNaN(row.EntropyNorm, 3),
			row.Interpretation,
		}
	}
	return cells
}

func fixedOrNaN(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return dataset.FormatFixed(v, decimals)
}
