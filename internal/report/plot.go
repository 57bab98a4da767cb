// Package report renders end-of-run artifacts for a finished search.
package report

import (
	"delivery-optimizer-service/internal/services"
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveFitnessPlot writes the best and mean fitness of every generation
// to a PNG (or any format the extension of path selects).
func SaveFitnessPlot(hist services.History, path string) error {
	if len(hist.Best) == 0 {
		return errors.New("save fitness plot: empty history")
	}
	if len(hist.Best) != len(hist.Mean) {
		return fmt.Errorf("save fitness plot: history lengths differ (%d vs %d)",
			len(hist.Best), len(hist.Mean))
	}

	p := plot.New()
	p.Title.Text = "Fitness over generations"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	bestPts := make(plotter.XYs, len(hist.Best))
	meanPts := make(plotter.XYs, len(hist.Mean))
	for i := range hist.Best {
		bestPts[i].X = float64(i)
		bestPts[i].Y = hist.Best[i]
		meanPts[i].X = float64(i)
		meanPts[i].Y = hist.Mean[i]
	}

	bestLine, err := plotter.NewLine(bestPts)
	if err != nil {
		return fmt.Errorf("save fitness plot: best line: %w", err)
	}
	meanLine, err := plotter.NewLine(meanPts)
	if err != nil {
		return fmt.Errorf("save fitness plot: mean line: %w", err)
	}

	p.Add(bestLine, meanLine)
	p.Legend.Add("best", bestLine)
	p.Legend.Add("mean", meanLine)
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save fitness plot: %w", err)
	}
	return nil
}
