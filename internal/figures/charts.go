package figures

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"tradeconc/internal/concentration"
	"tradeconc/internal/dataset"
)

// Output file names, in generation order
const (
	ScatterFile    = "01_scatter_entropy_vs_hhi.png"
	CR10BarFile    = "02_bar_cr10_latest_year.png"
	HHIBarFile     = "03_bar_hhi_latest_year.png"
	TimeSeriesFile = "04_timeseries_entropy.png"
	MatrixFile     = "05_regime_matrix.png"
	TableFile      = "06_summary_table.png"
)

var errNoData = errors.New("no plottable rows")

var barColor = color.RGBA{R: 70, G: 130, B: 180, A: 255}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(12)
	return p
}

func rotateXTicks(p *plot.Plot) {
	p.X.Tick.Label.Rotation = math.Pi / 5
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
}

func hhiOf(p concentration.PartnerSummary) float64     { return p.HHI }
func cr10Of(p concentration.PartnerSummary) float64    { return p.CR10 }
func entropyOf(p concentration.PartnerSummary) float64 { return p.EntropyNorm }

// scatterChart plots entropy against HHI with one labeled point per partner
func scatterChart(rows []concentration.PartnerSummary, country, year string) (*plot.Plot, error) {
	points := scatterPoints(rows, entropyOf, hhiOf)
	if len(points) == 0 {
		return nil, errNoData
	}

	xys := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		labels[i] = pt.Label
	}

	p := newPlot(fmt.Sprintf("Diversification vs Concentration (%s exports, %s)", country, year))
	p.X.Label.Text = "Entropy (normalized), higher means more diversified"
	p.Y.Label.Text = "HHI (HS6), higher means more concentrated"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Color = barColor
	p.Add(scatter)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range names.TextStyle {
		names.TextStyle[i].Font.Size = vg.Points(9)
	}
	names.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(2)}
	p.Add(names)

	return p, nil
}

// barChart plots value per partner sorted descending
func barChart(rows []concentration.PartnerSummary, value func(concentration.PartnerSummary) float64, title, yLabel string) (*plot.Plot, error) {
	series := sortedBars(rows, value)
	if len(series.Values) == 0 {
		return nil, errNoData
	}

	p := newPlot(title)
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(series.Values, vg.Points(18))
	if err != nil {
		return nil, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(series.Labels...)
	rotateXTicks(p)
	p.Y.Min = math.Min(p.Y.Min, 0)

	return p, nil
}

// timeSeriesChart draws one entropy line per partner
func timeSeriesChart(ts *dataset.Table) (*plot.Plot, error) {
	series := entropySeries(ts)
	if len(series) == 0 {
		return nil, errNoData
	}

	p := newPlot("Diversification Over Time (Entropy)")
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Entropy (normalized)"
	p.Add(plotter.NewGrid())

	for i, s := range series {
		line, err := plotter.NewLine(s.Points)
		if err != nil {
			return nil, fmt.Errorf("line for %s: %w", s.Partner, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(s.Partner, line)
	}
	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(7)

	return p, nil
}

// matrixChart draws the regime and stability of each partner as a
// two-column colored grid
func matrixChart(rows []concentration.PartnerSummary) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, errNoData
	}

	ordered := matrixOrder(rows)
	regimes := make([]string, len(ordered))
	stabilities := make([]string, len(ordered))
	for i, row := range ordered {
		regimes[i] = string(row.Regime)
		if row.HasStability {
			stabilities[i] = row.StabilityLabel
		}
	}
	regimeIdx, regimeLevels := categoryIndex(regimes)
	stabilityIdx, stabilityLevels := categoryIndex(stabilities)

	grid := matrixGrid{cells: make([][2]float64, len(ordered))}
	for i := range ordered {
		grid.cells[i] = [2]float64{regimeIdx[i], stabilityIdx[i]}
	}

	levels := len(regimeLevels)
	if len(stabilityLevels) > levels {
		levels = len(stabilityLevels)
	}

	p := newPlot("Partner Classification Matrix (Regime + Stability)")
	heat := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	heat.Min = 0
	heat.Max = math.Max(float64(levels-1), 1)
	heat.NaN = color.Gray{Y: 0xDD}
	p.Add(heat)

	p.X.Tick.Marker = plot.ConstantTicks([]plot.Tick{
		{Value: 0, Label: "Diversification Regime"},
		{Value: 1, Label: "Stability Regime"},
	})

	ticks := make([]plot.Tick, len(ordered))
	for r := range ordered {
		ticks[r] = plot.Tick{Value: float64(r), Label: ordered[len(ordered)-1-r].Partner}
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Label.Font.Size = vg.Points(9)

	return p, nil
}

// tableChart renders the summary table as text on hidden axes
func tableChart(rows []concentration.PartnerSummary, year string) (*plot.Plot, error) {
	cells := tableCells(rows)
	starts := columnStarts(tableColumns, cells)
	n := len(cells)

	var xys plotter.XYs
	var labels []string
	for c, header := range tableColumns {
		xys = append(xys, plotter.XY{X: starts[c], Y: float64(n)})
		labels = append(labels, header)
	}
	for r, row := range cells {
		for c, cell := range row {
			xys = append(xys, plotter.XY{X: starts[c], Y: float64(n - 1 - r)})
			labels = append(labels, cell)
		}
	}

	p := newPlot(fmt.Sprintf("Partner Summary Table (Latest year = %s)", year))
	p.HideAxes()

	text, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range text.TextStyle {
		text.TextStyle[i].Font.Size = vg.Points(8)
		text.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(text)

	rule, err := plotter.NewLine(plotter.XYs{{X: 0, Y: float64(n) - 0.5}, {X: 1, Y: float64(n) - 0.5}})
	if err != nil {
		return nil, err
	}
	rule.Width = vg.Points(0.5)
	p.Add(rule)

	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = -0.5, float64(n)+0.5

	return p, nil
}
