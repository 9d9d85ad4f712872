// Package chart renders fitness curves of a run
package chart

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/mazewalk/genetic/tracking"
)

var ErrEmptyHistory = errors.New("chart: history has no generations")

// Output size
const (
	width  = 8 * vg.Inch
	height = 4 * vg.Inch
)

type series struct {
	key    string
	label  string
	color  color.RGBA
	dashed bool
}

var lines = []series{
	{tracking.MetricBest, "best", color.RGBA{R: 220, G: 60, B: 60, A: 255}, false},
	{tracking.MetricMean, "mean", color.RGBA{R: 60, G: 110, B: 220, A: 255}, false},
	{tracking.MetricBestEver, "best ever", color.RGBA{R: 40, G: 160, B: 80, A: 255}, true},
}

// Save plots best, mean and best-ever fitness per generation
// The file extension selects the format (png, svg, pdf)
func Save(h *tracking.History, title, path string) error {
	if h == nil || h.Len() == 0 {
		return ErrEmptyHistory
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"

	gens := h.Series(tracking.MetricGeneration)
	for _, s := range lines {
		values := h.Series(s.key)
		pts := make(plotter.XYs, len(values))
		for i := range values {
			pts[i].X = gens[i]
			pts[i].Y = values[i]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("chart: %s line: %w", s.label, err)
		}
		line.Color = s.color
		if s.dashed {
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}

		p.Add(line)
		p.Legend.Add(s.label, line)
	}

	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	p.Legend.Left = true

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("chart: save %s: %w", path, err)
	}
	return nil
}
