package figures

import (
	"fmt"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// savePNG draws p onto a w x h canvas at dpi and writes it to path
func savePNG(p *plot.Plot, path string, w, h vg.Length, dpi int) error {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(file); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}

// matrixGrid is a two-column plotter.GridXYZ over the classification matrix.
// Row r of the grid is cells[len(cells)-1-r] so the first partner is drawn
// at the top.
type matrixGrid struct {
	cells [][2]float64
}

func (g matrixGrid) Dims() (c, r int) { return 2, len(g.cells) }

func (g matrixGrid) Z(c, r int) float64 { return g.cells[len(g.cells)-1-r][c] }

func (g matrixGrid) X(c int) float64 { return float64(c) }

func (g matrixGrid) Y(r int) float64 { return float64(r) }

// columnStarts places table columns left to right in [0, 1], each column
// taking a share proportional to its widest cell
func columnStarts(header []string, rows [][]string) []float64 {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	total := 0
	for _, w := range widths {
		total += w + 2
	}

	starts := make([]float64, len(header))
	offset := 0
	for i, w := range widths {
		starts[i] = float64(offset) / float64(total)
		offset += w + 2
	}
	return starts
}
