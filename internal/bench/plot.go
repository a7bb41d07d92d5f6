package bench

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteTimingPlot saves a PNG of the per-iteration timings for one
// benchmark of a run, useful for spotting warm-up effects and outliers
// that the summary stats flatten out.
func WriteTimingPlot(run *Run, benchmark, path string) error {
	result, ok := run.Results[benchmark]
	if !ok {
		return fmt.Errorf("run %s has no benchmark %q", run.Label, benchmark)
	}
	if len(result.SamplesMs) == 0 {
		return fmt.Errorf("benchmark %q has no recorded samples", benchmark)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s: %s", run.Label, benchmark)
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "ms"

	pts := make(plotter.XYs, 0, len(result.SamplesMs))
	for i, ms := range result.SamplesMs {
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: ms})
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("build timing line: %w", err)
	}
	line.Width = vg.Points(1)
	line.Color = color.RGBA{R: 31, G: 158, B: 137, A: 255}
	p.Add(line)

	mean, err := plotter.NewLine(plotter.XYs{
		{X: 1, Y: result.MeanMs},
		{X: float64(len(result.SamplesMs)), Y: result.MeanMs},
	})
	if err != nil {
		return fmt.Errorf("build mean line: %w", err)
	}
	mean.Width = vg.Points(1)
	mean.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	mean.Color = color.RGBA{R: 200, G: 80, B: 80, A: 255}
	p.Add(mean)
	p.Legend.Add("per iteration", line)
	p.Legend.Add("mean", mean)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save timing plot: %w", err)
	}
	return nil
}
