package rlocus

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// NewLocusPlot creates a new complex plane plot of the root locus and
// returns it. Each branch is drawn as a scatter trace; the open loop
// poles (the first gain sample) are marked separately.
// It returns error if the locus is nil or empty or if a gonum plotter
// fails to be created.
func NewLocusPlot(l *Locus, title string) (*plot.Plot, error) {
	if l == nil || len(l.Roots) == 0 {
		return nil, fmt.Errorf("invalid locus data supplied")
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "real"
	p.Y.Label.Text = "imag"

	for b := 0; b < l.Branches(); b++ {
		pts := make(plotter.XYs, len(l.Roots))
		for i := range l.Roots {
			pts[i].X = real(l.Roots[i][b])
			pts[i].Y = imag(l.Roots[i][b])
		}

		branch, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create scatter: %v", err)
		}
		branch.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		branch.GlyphStyle.Radius = vg.Points(1.5)

		p.Add(branch)
	}

	// open loop poles
	start := make(plotter.XYs, l.Branches())
	for b := range start {
		start[b].X = real(l.Roots[0][b])
		start[b].Y = imag(l.Roots[0][b])
	}
	poles, err := plotter.NewScatter(start)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %v", err)
	}
	poles.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	poles.Shape = draw.CrossGlyph{}
	poles.GlyphStyle.Radius = vg.Points(4)

	p.Add(poles)
	p.Legend.Add("open loop poles", poles)
	p.Legend.Top = true

	return p, nil
}
