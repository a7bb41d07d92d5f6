// Package main provides a benchmark harness for the remeshing bridge.
// It times the bridge against a configured Instant Meshes binary,
// stores each session in a sqlite database, and renders comparison
// reports between stored sessions.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/banshee-data/retopo/bridge"
	"github.com/banshee-data/retopo/engine"
	"github.com/banshee-data/retopo/internal/bench"
)

// Config holds configuration for a benchmark session.
type Config struct {
	Binary     string
	DBFile     string
	Label      string
	Iterations int
	Threads    int
	OutputJSON string
	ReportHTML string
	PlotDir    string
	Compare    string
	List       bool
	Verbose    bool
}

type debugLogger struct{}

func (debugLogger) Debugf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func main() {
	cfg := parseFlags()

	store, err := bench.OpenStore(cfg.DBFile)
	if err != nil {
		log.Fatalf("Failed to open run database: %v", err)
	}
	defer store.Close()

	if cfg.List {
		listRuns(store)
		return
	}

	if cfg.Compare != "" {
		compareRuns(store, cfg)
		return
	}

	runBenchmark(store, cfg)
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Binary, "engine", "", "Instant Meshes binary (default: InstantMeshes on PATH)")
	flag.StringVar(&cfg.DBFile, "db", "bench_runs.db", "Path to the run database")
	flag.StringVar(&cfg.Label, "label", "local", "Label for this run")
	flag.IntVar(&cfg.Iterations, "iterations", bench.DefaultIterations, "Iterations per benchmark")
	flag.IntVar(&cfg.Threads, "threads", 0, "Engine thread count (0: automatic)")
	flag.StringVar(&cfg.OutputJSON, "json", "", "Export run results as JSON to this path")
	flag.StringVar(&cfg.ReportHTML, "report", "", "Write an HTML report to this path")
	flag.StringVar(&cfg.PlotDir, "plots", "", "Write per-benchmark timing PNGs into this directory")
	flag.StringVar(&cfg.Compare, "compare", "", "Compare two stored runs by label: baseline,candidate")
	flag.BoolVar(&cfg.List, "list", false, "List stored runs and exit")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

func runBenchmark(store *bench.Store, cfg Config) {
	eng := engine.NewCommandEngine(cfg.Binary)
	b := bridge.New(eng)
	if cfg.Verbose {
		eng.SetLogger(debugLogger{})
		b.SetLogger(debugLogger{})
	}

	runner := bench.NewRunner(b)
	runner.Iterations = cfg.Iterations
	runner.Params.Threads = cfg.Threads
	if cfg.Verbose {
		runner.Logger = debugLogger{}
	}

	log.Printf("Running benchmark suite: label=%s iterations=%d", cfg.Label, cfg.Iterations)
	run, err := runner.Run(cfg.Label)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	if err := store.InsertRun(run); err != nil {
		log.Fatalf("Failed to store run: %v", err)
	}
	log.Printf("Stored run %s", run.RunID)

	printRun(run)

	if cfg.OutputJSON != "" {
		if err := exportJSON(run, cfg.OutputJSON); err != nil {
			log.Printf("Warning: failed to export JSON: %v", err)
		} else {
			log.Printf("Results exported to: %s", cfg.OutputJSON)
		}
	}
	if cfg.ReportHTML != "" {
		if err := bench.WriteHTML(cfg.ReportHTML, run, nil); err != nil {
			log.Printf("Warning: failed to write report: %v", err)
		} else {
			log.Printf("Report written to: %s", cfg.ReportHTML)
		}
	}
	if cfg.PlotDir != "" {
		writePlots(run, cfg.PlotDir)
	}
}

func compareRuns(store *bench.Store, cfg Config) {
	labels := strings.SplitN(cfg.Compare, ",", 2)
	if len(labels) != 2 {
		log.Fatal("-compare takes two labels: baseline,candidate")
	}

	a, err := store.FindByLabel(strings.TrimSpace(labels[0]))
	if err != nil {
		log.Fatalf("Failed to load baseline run %q: %v", labels[0], err)
	}
	b, err := store.FindByLabel(strings.TrimSpace(labels[1]))
	if err != nil {
		log.Fatalf("Failed to load candidate run %q: %v", labels[1], err)
	}

	if err := bench.WriteMarkdown(os.Stdout, a, b); err != nil {
		log.Fatalf("Failed to write comparison: %v", err)
	}
	if cfg.ReportHTML != "" {
		if err := bench.WriteHTML(cfg.ReportHTML, a, b); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Report written to: %s", cfg.ReportHTML)
	}
}

func listRuns(store *bench.Store) {
	runs, err := store.ListRuns()
	if err != nil {
		log.Fatalf("Failed to list runs: %v", err)
	}
	for _, run := range runs {
		fmt.Printf("%s  %-20s  %s  %s\n", run.RunID, run.Label, run.Platform, run.GoVersion)
	}
}

func printRun(run *bench.Run) {
	for name, result := range run.Results {
		log.Printf("%s: mean=%.3fms std=%.3fms min=%.3fms max=%.3fms n=%d (input: %d vertices, %d faces)",
			name, result.MeanMs, result.StdMs, result.MinMs, result.MaxMs,
			result.Iterations, result.InputVertices, result.InputFaces)
	}
}

func writePlots(run *bench.Run, dir string) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Warning: failed to create plot directory: %v", err)
		return
	}
	for name := range run.Results {
		path := fmt.Sprintf("%s/%s_%s.png", dir, run.Label, name)
		if err := bench.WriteTimingPlot(run, name, path); err != nil {
			log.Printf("Warning: failed to plot %s: %v", name, err)
			continue
		}
		log.Printf("Plot written to: %s", path)
	}
}

func exportJSON(run *bench.Run, path string) error {
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
