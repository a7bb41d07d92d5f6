package bench

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// benchmarkNames returns the union of benchmark names across runs in a
// stable order.
func benchmarkNames(runs ...*Run) []string {
	set := make(map[string]bool)
	for _, run := range runs {
		if run == nil {
			continue
		}
		for name := range run.Results {
			set[name] = true
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteMarkdown writes a comparison table for runs a and b. With b nil
// it degrades to a single-run summary.
func WriteMarkdown(w io.Writer, a, b *Run) error {
	fmt.Fprintf(w, "# Benchmark Comparison\n\n")
	fmt.Fprintf(w, "**Generated:** %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(w, "## System Information\n\n")
	fmt.Fprintf(w, "- **Platform:** %s\n", a.Platform)
	fmt.Fprintf(w, "- **Go Version:** %s\n", a.GoVersion)
	fmt.Fprintf(w, "- **CPU Count:** %d\n\n", a.CPUCount)

	for _, name := range benchmarkNames(a, b) {
		fmt.Fprintf(w, "## %s\n\n", name)

		ra, okA := a.Results[name]
		if b == nil {
			if !okA {
				continue
			}
			fmt.Fprintf(w, "| Metric | %s |\n|--------|------|\n", a.Label)
			fmt.Fprintf(w, "| Mean (ms) | %.3f |\n", ra.MeanMs)
			fmt.Fprintf(w, "| Std Dev (ms) | %.3f |\n", ra.StdMs)
			fmt.Fprintf(w, "| Min (ms) | %.3f |\n", ra.MinMs)
			fmt.Fprintf(w, "| Max (ms) | %.3f |\n", ra.MaxMs)
			fmt.Fprintf(w, "| Iterations | %d |\n\n", ra.Iterations)
			continue
		}

		rb, okB := b.Results[name]
		if !okA || !okB {
			fmt.Fprintf(w, "*Not present in both runs*\n\n")
			continue
		}

		diff := rb.MeanMs - ra.MeanMs
		pct := 0.0
		if ra.MeanMs > 0 {
			pct = diff / ra.MeanMs * 100
		}

		fmt.Fprintf(w, "| Metric | %s | %s | Difference |\n", a.Label, b.Label)
		fmt.Fprintf(w, "|--------|------|------|------------|\n")
		fmt.Fprintf(w, "| Mean (ms) | %.3f | %.3f | %+.3f (%+.1f%%) |\n", ra.MeanMs, rb.MeanMs, diff, pct)
		fmt.Fprintf(w, "| Std Dev (ms) | %.3f | %.3f | - |\n", ra.StdMs, rb.StdMs)
		fmt.Fprintf(w, "| Min (ms) | %.3f | %.3f | - |\n", ra.MinMs, rb.MinMs)
		fmt.Fprintf(w, "| Max (ms) | %.3f | %.3f | - |\n", ra.MaxMs, rb.MaxMs)
		fmt.Fprintf(w, "| Iterations | %d | %d | - |\n\n", ra.Iterations, rb.Iterations)

		switch {
		case pct < -5:
			fmt.Fprintf(w, "**Result:** %s is %.1f%% faster\n\n", b.Label, -pct)
		case pct > 5:
			fmt.Fprintf(w, "**Result:** %s is %.1f%% faster\n\n", a.Label, pct)
		default:
			fmt.Fprintf(w, "**Result:** similar performance (~%.1f%% difference)\n\n", pct)
		}
	}
	return nil
}

// WriteHTML renders an ECharts report to path: one bar chart of the
// mean timings per benchmark, plus per-benchmark min/max ranges. With
// b nil a single series is rendered.
func WriteHTML(path string, a, b *Run) error {
	names := benchmarkNames(a, b)

	means := charts.NewBar()
	means.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Remesh Benchmarks", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Mean call time", Subtitle: subtitle(a, b)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	means.SetXAxis(names).AddSeries(a.Label, barData(a, names, func(r Result) float64 { return r.MeanMs }))
	if b != nil {
		means.AddSeries(b.Label, barData(b, names, func(r Result) float64 { return r.MeanMs }))
	}

	spread := charts.NewBar()
	spread.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Worst case (max) call time"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "ms"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	spread.SetXAxis(names).AddSeries(a.Label, barData(a, names, func(r Result) float64 { return r.MaxMs }))
	if b != nil {
		spread.AddSeries(b.Label, barData(b, names, func(r Result) float64 { return r.MaxMs }))
	}

	page := components.NewPage()
	page.AddCharts(means, spread)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func subtitle(a, b *Run) string {
	if b == nil {
		return fmt.Sprintf("run=%s platform=%s", a.Label, a.Platform)
	}
	return fmt.Sprintf("%s vs %s on %s", a.Label, b.Label, a.Platform)
}

func barData(run *Run, names []string, metric func(Result) float64) []opts.BarData {
	data := make([]opts.BarData, 0, len(names))
	for _, name := range names {
		if r, ok := run.Results[name]; ok {
			data = append(data, opts.BarData{Value: metric(r)})
		} else {
			data = append(data, opts.BarData{Value: nil})
		}
	}
	return data
}
