package sim

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// NewResponsePlot creates a new plot of the simulated response and
// returns it. It returns error if the response is nil or empty or if
// the gonum plot line fails to be created.
func NewResponsePlot(r *Response, title string) (*plot.Plot, error) {
	if r == nil || len(r.Time) == 0 {
		return nil, fmt.Errorf("invalid response data supplied")
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "time [s]"
	p.Y.Label.Text = "output"

	pts := make(plotter.XYs, len(r.Time))
	for i := range r.Time {
		pts[i].X = r.Time[i]
		pts[i].Y = r.Output[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create line: %v", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 255, B: 128, A: 255}

	p.Add(line)
	p.Legend.Add("response", line)
	p.Legend.Top = true

	return p, nil
}
