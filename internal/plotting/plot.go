package plotting

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cwbudde/linefit/internal/fit"
	"github.com/cwbudde/linefit/internal/sample"
)

// Line is a named parameter pair to overlay on a fit plot.
type Line struct {
	Name   string
	Params fit.Params
}

var (
	scatterColor = color.RGBA{R: 96, G: 96, B: 96, A: 255}

	lineColors = []color.RGBA{
		{R: 214, G: 69, B: 65, A: 255},  // red
		{R: 31, G: 119, B: 180, A: 255}, // blue
		{R: 44, G: 160, B: 44, A: 255},  // green
		{R: 255, G: 127, B: 14, A: 255}, // orange
	}
)

// FitPlot draws the observations as a scatter with every named line overlaid
// across the sample's x extent, then saves the plot to path. The encoder is
// selected by the path extension (see Format.Ext).
func FitPlot(s sample.Sample, lines []Line, title, path string) error {
	if s.Len() == 0 {
		return fmt.Errorf("fit plot: empty sample")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, s.Len())
	for i := range pts {
		pts[i].X = s.X[i]
		pts[i].Y = s.Y[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	scatter.GlyphStyle.Color = scatterColor
	scatter.GlyphStyle.Radius = vg.Points(2)
	p.Add(scatter)
	p.Legend.Add("observations", scatter)

	xMin := floats.Min(s.X)
	xMax := floats.Max(s.X)
	for i, ln := range lines {
		seg := plotter.XYs{
			{X: xMin, Y: ln.Params.Predict(xMin)},
			{X: xMax, Y: ln.Params.Predict(xMax)},
		}
		l, err := plotter.NewLine(seg)
		if err != nil {
			return fmt.Errorf("failed to build line %q: %w", ln.Name, err)
		}
		l.Color = lineColors[i%len(lineColors)]
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(ln.Name, l)
	}
	p.Legend.Top = true

	if err := p.Save(16*vg.Centimeter, 12*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

// ConvergencePoint is one measured grid resolution and the RSS excess of the
// grid search over the closed-form minimum at that resolution.
type ConvergencePoint struct {
	Resolution int
	RSSGap     float64
}

// ConvergencePlot draws the RSS gap against grid resolution and saves it to
// path. The encoder is selected by the path extension.
func ConvergencePlot(points []ConvergencePoint, title, path string) error {
	if len(points) == 0 {
		return fmt.Errorf("convergence plot: no points")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "grid resolution"
	p.Y.Label.Text = "RSS gap to closed form"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(points))
	for i, cp := range points {
		pts[i].X = float64(cp.Resolution)
		pts[i].Y = cp.RSSGap
	}
	line, markers, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("failed to build convergence line: %w", err)
	}
	line.Color = lineColors[1]
	markers.GlyphStyle.Color = lineColors[1]
	markers.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(line, markers)

	if err := p.Save(16*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}
