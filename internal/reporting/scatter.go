package reporting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/farnunglab/screenbench/internal/statistics"
)

// WriteCorrelationPlot renders predicted vs experimental values as a scatter
// with a least-squares trend line.
func WriteCorrelationPlot(x, y []float64, title, xLabel, yLabel, path string) error {
	if len(x) != len(y) {
		return fmt.Errorf("correlation plot: %d x values vs %d y values", len(x), len(y))
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("correlation plot: %w", err)
	}
	p.Add(scatter)

	if len(x) >= 2 {
		alpha, beta := statistics.LinearFit(x, y)
		trend := plotter.NewFunction(func(v float64) float64 { return alpha + beta*v })
		trend.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		p.Add(trend)
	}

	if err := p.Save(6*vg.Inch, 4.5*vg.Inch, path); err != nil {
		return fmt.Errorf("correlation plot %s: %w", path, err)
	}
	return nil
}
