package trend

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlot renders the samples as a time-series line chart. The output format
// is derived from the file extension (png, svg, pdf).
func SavePlot(samples []Sample, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Internal frequency"
	p.X.Label.Text = "Elapsed (s)"
	p.Y.Label.Text = "Frequency (Hz)"

	pts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, plotter.XY{X: s.Elapsed.Seconds(), Y: s.Hz})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("failed to build frequency line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", path, err)
	}
	return nil
}
