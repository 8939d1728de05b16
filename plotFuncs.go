package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"gonum.org/v1/plot"

	// Liberation fonts register automatically on import
	_ "gonum.org/v1/plot/font/liberation"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bob-anderson-ok/eclipsePLD/pld"
)

func applyPlotFonts(p *plot.Plot) {
	// Modify the font fields directly on existing styles
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)
}

type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// MakeRedChiSqPlot charts reduced chi-squared against candidate bin width in
// seconds. Widths whose fit failed are left out.
func MakeRedChiSqPlot(results []pld.SweepResult, periodDays float64, filename string) {
	p := plot.New()
	applyPlotFonts(p)

	p.Title.Text = "Reduced chi-squared vs bin width"
	p.X.Label.Text = "Bin width (seconds)"
	p.Y.Label.Text = "Reduced chi-squared"

	p.X.Tick.Marker = StepTicks{Step: 16.0, Format: "%.0f"}
	p.Add(plotter.NewGrid()) // grid + ticks

	secsPerPhase := periodDays * 86400.0

	var pts plotter.XYs
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		pts = append(pts, plotter.XY{X: r.Width * secsPerPhase, Y: r.RedChiSq})
	}

	linePoints, scatterPoints, err := plotter.NewLinePoints(pts)
	if err != nil {
		log.Fatal(err)
	}
	linePoints.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	linePoints.Width = vg.Points(1)

	scatterPoints.Shape = draw.CircleGlyph{}
	scatterPoints.Radius = vg.Points(2)
	scatterPoints.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}

	p.Add(linePoints, scatterPoints)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		log.Fatal(err)
	}
}

// MakeLightCurvePlot charts the binned, systematics-corrected photometry as
// points with the fitted eclipse curve drawn through them. A dashed line
// marks the out-of-eclipse level.
func MakeLightCurvePlot(phase, corrected, eclipseCurve []float64, title, filename string) {
	p := plot.New()
	applyPlotFonts(p)

	p.Title.Text = title
	p.X.Label.Text = "Orbital phase"
	p.Y.Label.Text = "Normalized flux"

	p.Y.Tick.Marker = StepTicks{Step: 0.001, Format: "%.3f"}
	p.Add(plotter.NewGrid()) // grid + ticks

	n := len(phase)
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = phase[i]
		pts[i].Y = corrected[i]
	}

	scatterPoints, err := plotter.NewScatter(pts)
	if err != nil {
		log.Fatal(err)
	}
	scatterPoints.Shape = draw.CircleGlyph{}
	scatterPoints.Radius = vg.Points(2)
	scatterPoints.Color = color.RGBA{R: 120, G: 120, B: 120, A: 255}

	curve := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		curve[i].X = phase[i]
		curve[i].Y = eclipseCurve[i]
	}

	line, err := plotter.NewLine(curve)
	if err != nil {
		log.Fatal(err)
	}
	line.Color = color.RGBA{R: 0, G: 0, B: 255, A: 255} // blue

	p.Add(scatterPoints, line)

	hpts := plotter.XYs{
		{X: phase[0], Y: 1.0},
		{X: phase[n-1], Y: 1.0},
	}

	hline, err := plotter.NewLine(hpts)
	if err != nil {
		log.Fatal(err)
	}

	p.Add(hline)

	hline.Dashes = []vg.Length{
		vg.Points(6), // dash length
		vg.Points(4), // gap length
	}
	hline.Color = color.RGBA{R: 0, G: 0, B: 0, A: 255} // black

	if err := p.Save(8*vg.Inch, 4*vg.Inch, filename); err != nil {
		log.Fatal(err)
	}
}
