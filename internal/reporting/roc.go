// Package reporting renders run artifacts meant for humans rather than
// downstream tooling: ROC curve and correlation plots.
package reporting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/farnunglab/screenbench/internal/enrichment"
)

// WriteROCPlot renders one target's ROC curve to an image file next to its
// other artifacts. The dashed diagonal is the random-classifier reference.
func WriteROCPlot(curve *enrichment.Curve, result *enrichment.Result, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s / %s  AUC=%.3f logAUC=%.3f",
		result.Metric, result.Target, result.AUC, result.LogAUC)
	p.X.Label.Text = "False positive rate"
	p.Y.Label.Text = "True positive rate"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(curve.FPR))
	for i := range curve.FPR {
		pts[i].X = curve.FPR[i]
		pts[i].Y = curve.TPR[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("roc plot: %w", err)
	}
	p.Add(line)

	random := plotter.NewFunction(func(x float64) float64 { return x })
	random.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
	p.Add(random)

	if err := p.Save(5*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("roc plot %s: %w", path, err)
	}
	return nil
}
