// Package render draws simulation snapshots as PNG frames: the lattice
// and per-drop topple counts as heatmaps, the running mean height as a
// line plot, and the avalanche-size histogram as a bar chart, composed
// into a single 2x2 figure. It consumes read-only snapshots and never
// feeds anything back into the simulation.
package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/sandpile-sim/sandpile-sim/sim"
)

// toppleScaleMax caps the topple-count heatmap's color scale so repeated
// topplings stay distinguishable without rescaling between frames.
const toppleScaleMax = 10

// Renderer builds one figure per snapshot. The zero value is not usable;
// construct with NewRenderer.
type Renderer struct {
	Width, Height vg.Length
}

// NewRenderer returns a Renderer producing figures at the default size.
func NewRenderer() *Renderer {
	return &Renderer{Width: 12 * vg.Inch, Height: 10 * vg.Inch}
}

// intGrid adapts a [row][col] matrix to plotter.GridXYZ for heatmaps.
// Values are clamped to cap: mid-cascade snapshots hold transient heights
// above the threshold, and the color scale saturates rather than skip
// those cells.
type intGrid struct {
	cells [][]int
	cap   float64
}

func (g intGrid) Dims() (c, r int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	return len(g.cells[0]), len(g.cells)
}

func (g intGrid) Z(c, r int) float64 { return math.Min(float64(g.cells[r][c]), g.cap) }
func (g intGrid) X(c int) float64    { return float64(c) }
func (g intGrid) Y(r int) float64    { return float64(r) }

// Render draws the four panels for one snapshot and writes the composed
// figure to w as a PNG.
func (r *Renderer) Render(s sim.Snapshot, w io.Writer) error {
	pGrid := heatmapPanel(s.Heights, sim.ToppleThreshold, sim.ToppleThreshold+1)
	pTopple := heatmapPanel(s.Toppled, toppleScaleMax, toppleScaleMax)

	pAvg, err := averagePanel(s.Averages)
	if err != nil {
		return fmt.Errorf("average panel: %w", err)
	}
	pHist, err := histogramPanel(s.BinCounts)
	if err != nil {
		return fmt.Errorf("histogram panel: %w", err)
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2, Cols: 2,
		PadX: vg.Points(8), PadY: vg.Points(8),
		PadTop: vg.Points(4), PadBottom: vg.Points(4),
		PadLeft: vg.Points(4), PadRight: vg.Points(4),
	}

	plots := [][]*plot.Plot{
		{pGrid, pTopple},
		{pAvg, pHist},
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		for j, p := range plots[i] {
			p.Draw(canvases[i][j])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	return nil
}

// heatmapPanel renders a matrix with a fixed [0, max] color scale so
// consecutive frames stay comparable.
func heatmapPanel(cells [][]int, max float64, colors int) *plot.Plot {
	p := plot.New()
	hm := plotter.NewHeatMap(intGrid{cells: cells, cap: max}, palette.Heat(colors, 255))
	hm.Min = 0
	hm.Max = max
	p.Add(hm)
	p.HideAxes()
	return p
}

func averagePanel(averages []float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Iteration Number"
	p.Y.Label.Text = "Average Grid Value"

	if len(averages) == 0 {
		// Nothing recorded yet; an empty line has no data range to
		// autoscale from, so pin the axes instead.
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
		return p, nil
	}

	pts := make(plotter.XYs, len(averages))
	ymin, ymax := averages[0], averages[0]
	for i, a := range averages {
		pts[i] = plotter.XY{X: float64(i), Y: a}
		ymin = math.Min(ymin, a)
		ymax = math.Max(ymax, a)
	}
	ln, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	ln.Color = color.RGBA{B: 255, A: 255}
	ln.Width = vg.Points(2)
	p.Add(ln)

	// Pin ranges so a short or flat series still has a drawable axis.
	p.X.Min, p.X.Max = 0, math.Max(1, float64(len(averages)-1)*1.05)
	if ymin == ymax {
		ymin, ymax = ymin-0.5, ymax+0.5
	}
	p.Y.Min, p.Y.Max = ymin, ymax
	return p, nil
}

// histogramPanel shows log-relative counts so the panel stays in [0, 1]
// however lopsided the raw counts get. The transform is display-only.
func histogramPanel(counts []int) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Cascade Magnitude"
	p.Y.Label.Text = "Number of Cascades (Log10)"
	p.Y.Min, p.Y.Max = 0, 1.05

	bars, err := plotter.NewBarChart(plotter.Values(sim.RelativeLogCounts(counts)), vg.Points(4))
	if err != nil {
		return nil, err
	}
	bars.Color = color.RGBA{B: 255, A: 255}
	bars.LineStyle.Width = 0
	p.Add(bars)
	return p, nil
}
