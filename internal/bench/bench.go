package bench

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/retopo/bridge"
	"github.com/banshee-data/retopo/engine"
)

// Benchmark names as stored and reported.
const (
	BenchCallOverhead = "call_overhead"
	BenchEndToEnd     = "end_to_end"
)

// Stats summarizes a set of timing samples in milliseconds.
type Stats struct {
	MeanMs     float64 `json:"mean_ms"`
	StdMs      float64 `json:"std_ms"`
	MinMs      float64 `json:"min_ms"`
	MaxMs      float64 `json:"max_ms"`
	Iterations int     `json:"iterations"`
}

// Result holds one benchmark's stats plus the raw per-iteration
// samples and the input workload size.
type Result struct {
	Stats
	SamplesMs     []float64 `json:"samples_ms,omitempty"`
	InputVertices int       `json:"input_vertices"`
	InputFaces    int       `json:"input_faces"`
}

// Run is one recorded benchmark session. If RunID is empty on insert,
// the store generates a UUID.
type Run struct {
	RunID     string            `json:"run_id"`
	Label     string            `json:"label"`
	CreatedAt int64             `json:"created_at"`
	Platform  string            `json:"platform"`
	GoVersion string            `json:"go_version"`
	CPUCount  int               `json:"cpu_count"`
	Results   map[string]Result `json:"benchmarks"`
}

// Runner drives the benchmark suite against one bridge.
type Runner struct {
	Bridge *bridge.Bridge
	// Iterations per benchmark; DefaultIterations if zero.
	Iterations int
	// Params is the base parameter set; each benchmark overrides its
	// own output target on top of it.
	Params engine.Params
	Logger engine.Logger
}

// DefaultIterations keeps a session tolerable against a real engine.
const DefaultIterations = 10

// NewRunner returns a Runner over b with default iterations and
// deterministic engine parameters, so repeated sessions are
// comparable.
func NewRunner(b *bridge.Bridge) *Runner {
	p := engine.DefaultParams()
	p.Deterministic = true
	return &Runner{Bridge: b, Iterations: DefaultIterations, Params: p, Logger: engine.NopLogger}
}

func (r *Runner) iterations() int {
	if r.Iterations > 0 {
		return r.Iterations
	}
	return DefaultIterations
}

func (r *Runner) logger() engine.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return engine.NopLogger
}

// Run executes the full suite and returns a Run labeled label.
func (r *Runner) Run(label string) (*Run, error) {
	run := &Run{
		RunID:     uuid.New().String(),
		Label:     label,
		CreatedAt: time.Now().UnixNano(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
		CPUCount:  runtime.NumCPU(),
		Results:   make(map[string]Result),
	}

	overhead, err := r.callOverhead()
	if err != nil {
		return nil, fmt.Errorf("call overhead benchmark: %w", err)
	}
	run.Results[BenchCallOverhead] = overhead

	endToEnd, err := r.endToEnd()
	if err != nil {
		return nil, fmt.Errorf("end to end benchmark: %w", err)
	}
	run.Results[BenchEndToEnd] = endToEnd

	return run, nil
}

// callOverhead times repeated calls on a minimal tetrahedron, isolating
// the bridge and engine startup cost from real remeshing work. Very
// small meshes can fail inside the engine for some parameter sets, so
// failed iterations are skipped; only a fully failed benchmark errors.
func (r *Runner) callOverhead() (Result, error) {
	vertices, faces := Tetrahedron()
	p := r.Params
	p.TargetVertexCount = 10
	p.TargetFaceCount = -1
	p.TargetEdgeLength = -1

	samples := make([]float64, 0, r.iterations())
	var lastErr error
	for i := 0; i < r.iterations(); i++ {
		start := time.Now()
		_, _, err := r.Bridge.Remesh(vertices, faces, p)
		if err != nil {
			r.logger().Debugf("bench: call overhead iteration %d failed: %v", i, err)
			lastErr = err
			continue
		}
		samples = append(samples, float64(time.Since(start))/float64(time.Millisecond))
	}
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("all iterations failed: %w", lastErr)
	}
	return newResult(samples, vertices.Rows(), faces.Rows()), nil
}

// endToEnd times the full workflow on a subdivided cube.
func (r *Runner) endToEnd() (Result, error) {
	vertices, faces := SubdividedCube(3)
	p := r.Params
	p.TargetVertexCount = 500
	p.TargetFaceCount = -1
	p.TargetEdgeLength = -1

	samples := make([]float64, 0, r.iterations())
	for i := 0; i < r.iterations(); i++ {
		start := time.Now()
		_, _, err := r.Bridge.Remesh(vertices, faces, p)
		if err != nil {
			return Result{}, fmt.Errorf("iteration %d: %w", i, err)
		}
		samples = append(samples, float64(time.Since(start))/float64(time.Millisecond))
	}
	return newResult(samples, vertices.Rows(), faces.Rows()), nil
}

func newResult(samplesMs []float64, inputVertices, inputFaces int) Result {
	return Result{
		Stats:         newStats(samplesMs),
		SamplesMs:     samplesMs,
		InputVertices: inputVertices,
		InputFaces:    inputFaces,
	}
}

func newStats(samplesMs []float64) Stats {
	s := Stats{
		MeanMs:     stat.Mean(samplesMs, nil),
		MinMs:      floats.Min(samplesMs),
		MaxMs:      floats.Max(samplesMs),
		Iterations: len(samplesMs),
	}
	if len(samplesMs) > 1 {
		s.StdMs = stat.StdDev(samplesMs, nil)
	}
	return s
}
