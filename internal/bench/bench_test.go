package bench

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/retopo/bridge"
	"github.com/banshee-data/retopo/engine"
)

// passthroughEngine copies the input file to the output path so the
// pipeline completes without a real remesher installed.
type passthroughEngine struct{}

func (passthroughEngine) Remesh(inputPath, outputPath string, p engine.Params) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())
	r := NewRunner(bridge.New(passthroughEngine{}))
	r.Iterations = 3
	return r
}

func TestRunnerRun(t *testing.T) {
	r := testRunner(t)

	run, err := r.Run("local")
	require.NoError(t, err)

	assert.NotEmpty(t, run.RunID)
	assert.Equal(t, "local", run.Label)
	assert.NotZero(t, run.CreatedAt)
	assert.NotEmpty(t, run.Platform)
	assert.NotEmpty(t, run.GoVersion)
	assert.Greater(t, run.CPUCount, 0)

	for _, name := range []string{BenchCallOverhead, BenchEndToEnd} {
		result, ok := run.Results[name]
		require.True(t, ok, "missing benchmark %s", name)
		assert.Equal(t, 3, result.Iterations)
		assert.Len(t, result.SamplesMs, 3)
		assert.GreaterOrEqual(t, result.MinMs, 0.0)
		assert.GreaterOrEqual(t, result.MaxMs, result.MinMs)
		assert.GreaterOrEqual(t, result.MeanMs, result.MinMs)
		assert.LessOrEqual(t, result.MeanMs, result.MaxMs)
		assert.Greater(t, result.InputVertices, 0)
		assert.Greater(t, result.InputFaces, 0)
	}
}

// failingEngine fails every call.
type failingEngine struct{}

func (failingEngine) Remesh(inputPath, outputPath string, p engine.Params) error {
	return &engine.Error{Binary: "fake", Output: "boom", Err: os.ErrInvalid}
}

func TestRunnerAllIterationsFailed(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	r := NewRunner(bridge.New(failingEngine{}))
	r.Iterations = 2

	_, err := r.Run("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all iterations failed")
}

func TestNewStats(t *testing.T) {
	t.Parallel()

	s := newStats([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, s.MeanMs, 1e-9)
	assert.InDelta(t, 1.0, s.MinMs, 1e-9)
	assert.InDelta(t, 4.0, s.MaxMs, 1e-9)
	// Sample standard deviation of 1..4.
	assert.InDelta(t, 1.2909944, s.StdMs, 1e-6)
	assert.Equal(t, 4, s.Iterations)

	single := newStats([]float64{5})
	assert.Zero(t, single.StdMs)
	assert.Equal(t, 5.0, single.MeanMs)
}
