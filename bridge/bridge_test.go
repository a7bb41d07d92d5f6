package bridge

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/retopo/engine"
	"github.com/banshee-data/retopo/mesh"
)

// copyEngine stands in for the external engine by copying the input
// file to the output path, so the pipeline's serialize/deserialize legs
// can be exercised as a round trip. It records the paths it was handed.
type copyEngine struct {
	mu    sync.Mutex
	calls [][2]string
	fail  error
}

func (e *copyEngine) Remesh(inputPath, outputPath string, p engine.Params) error {
	e.mu.Lock()
	e.calls = append(e.calls, [2]string{inputPath, outputPath})
	e.mu.Unlock()

	if e.fail != nil {
		return e.fail
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return &engine.Error{Binary: "copy", Err: err}
	}
	defer in.Close()
	out, err := os.Create(outputPath)
	if err != nil {
		return &engine.Error{Binary: "copy", Err: err}
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

func triangle() (mesh.VertexBuffer, mesh.FaceBuffer) {
	return mesh.NewVertexBuffer([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, 3),
		mesh.NewFaceBuffer([]int32{0, 1, 2}, 3)
}

// tempDirEntries lists what a pipeline run left behind in dir.
func tempDirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRemeshRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	vertices, faces := triangle()
	b := New(&copyEngine{})

	gotV, gotF, err := b.Remesh(vertices, faces, engine.DefaultParams())
	require.NoError(t, err)

	if diff := cmp.Diff(vertices, gotV, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("vertex mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(faces, gotF); diff != "" {
		t.Errorf("face mismatch (-want +got):\n%s", diff)
	}

	assert.Empty(t, tempDirEntries(t, tmp), "temporary files must be removed on success")
}

func TestRemeshShapeErrorBeforeAnyIO(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	eng := &copyEngine{}
	b := New(eng)

	tests := []struct {
		name     string
		vertices mesh.VertexBuffer
		faces    mesh.FaceBuffer
	}{
		{
			name:     "vertex width 4",
			vertices: mesh.NewVertexBuffer([]float32{0, 0, 0, 0}, 4),
			faces:    mesh.NewFaceBuffer([]int32{0, 1, 2}, 3),
		},
		{
			name:     "face width 5",
			vertices: mesh.NewVertexBuffer([]float32{0, 0, 0}, 3),
			faces:    mesh.NewFaceBuffer([]int32{0, 1, 2, 3, 4}, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := b.Remesh(tt.vertices, tt.faces, engine.DefaultParams())
			var shapeErr *mesh.ShapeError
			require.ErrorAs(t, err, &shapeErr)
		})
	}

	assert.Empty(t, eng.calls, "engine must not run on invalid input")
	assert.Empty(t, tempDirEntries(t, tmp), "validation failure must create zero temporary files")
}

func TestRemeshEngineFailureLeavesNoResidue(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	wantErr := &engine.Error{Binary: "InstantMeshes", Output: "bad geometry", Err: errors.New("exit status 1")}
	b := New(&copyEngine{fail: wantErr})

	vertices, faces := triangle()
	_, _, err := b.Remesh(vertices, faces, engine.DefaultParams())

	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, "bad geometry", engErr.Output)

	assert.Empty(t, tempDirEntries(t, tmp), "temporary files must be removed after engine failure")
}

func TestRemeshLoaderFailureLeavesNoResidue(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	// An engine that reports success without writing any output: the
	// deserializer's loader error is what must surface.
	b := New(engineFunc(func(inputPath, outputPath string, p engine.Params) error {
		return nil
	}))

	vertices, faces := triangle()
	_, _, err := b.Remesh(vertices, faces, engine.DefaultParams())

	var loaderErr *mesh.LoaderError
	require.ErrorAs(t, err, &loaderErr)

	assert.Empty(t, tempDirEntries(t, tmp), "temporary files must be removed after loader failure")
}

// engineFunc adapts a function to the engine.Engine interface.
type engineFunc func(inputPath, outputPath string, p engine.Params) error

func (f engineFunc) Remesh(inputPath, outputPath string, p engine.Params) error {
	return f(inputPath, outputPath, p)
}

func TestRemeshConcurrentCallsUseDistinctPaths(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	eng := &copyEngine{}
	b := New(eng)
	vertices, faces := triangle()

	const calls = 16
	var wg sync.WaitGroup
	errs := make([]error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = b.Remesh(vertices, faces, engine.DefaultParams())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "call %d", i)
	}

	seen := make(map[string]bool)
	for _, call := range eng.calls {
		for _, p := range call {
			assert.False(t, seen[p], "path %s used by two pipeline runs", p)
			seen[p] = true
		}
	}
	assert.Len(t, eng.calls, calls)

	assert.Empty(t, tempDirEntries(t, tmp), "all temporary files must be removed")
}

func TestRemeshFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inputPath := filepath.Join(dir, "in.obj")
	outputPath := filepath.Join(dir, "out.obj")

	vertices, faces := triangle()
	require.NoError(t, mesh.WriteOBJ(inputPath, vertices, faces))

	b := New(&copyEngine{})
	gotV, gotF, err := b.RemeshFile(inputPath, outputPath, engine.DefaultParams())
	require.NoError(t, err)

	if diff := cmp.Diff(vertices, gotV, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
		t.Errorf("vertex mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(faces, gotF); diff != "" {
		t.Errorf("face mismatch (-want +got):\n%s", diff)
	}

	// Caller-owned paths stay on disk.
	assert.FileExists(t, inputPath)
	assert.FileExists(t, outputPath)
}

func TestRemeshFileNonexistentInputSkipsValidation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := New(engineFunc(func(inputPath, outputPath string, p engine.Params) error {
		if _, err := os.Stat(inputPath); err != nil {
			return &engine.Error{Binary: "InstantMeshes", Output: "Unable to open file", Err: err}
		}
		return nil
	}))

	_, _, err := b.RemeshFile(filepath.Join(dir, "missing.obj"), filepath.Join(dir, "out.obj"), engine.DefaultParams())

	var shapeErr *mesh.ShapeError
	assert.False(t, errors.As(err, &shapeErr), "no buffer validation on the path pipeline")
	var engErr *engine.Error
	require.ErrorAs(t, err, &engErr)
}

func TestNewNilEngineDefaultsToCommandEngine(t *testing.T) {
	t.Parallel()

	b := New(nil)
	require.NotNil(t, b.engine)
	_, ok := b.engine.(*engine.CommandEngine)
	assert.True(t, ok)
}
