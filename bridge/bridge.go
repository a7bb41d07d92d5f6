// Package bridge composes buffer validation, mesh file serialization,
// temporary-file management and the external remeshing engine into a
// one-shot pipeline. Each invocation is strictly linear: validate,
// serialize the input mesh to a temporary file, run the engine, read
// the result back into caller-owned buffers, and remove the temporary
// files on every exit path.
package bridge

import (
	"github.com/banshee-data/retopo/engine"
	"github.com/banshee-data/retopo/internal/tmpfile"
	"github.com/banshee-data/retopo/mesh"
)

// Bridge runs remeshing pipelines against one engine. A Bridge holds
// no per-call state; concurrent calls each own their own temporary
// files, whose unique names are the only thing keeping them apart.
type Bridge struct {
	engine engine.Engine
	logger engine.Logger
}

// New returns a Bridge around e. A nil engine falls back to the
// default command-line engine on PATH.
func New(e engine.Engine) *Bridge {
	if e == nil {
		e = engine.NewCommandEngine("")
	}
	return &Bridge{engine: e, logger: engine.NopLogger}
}

// SetLogger sets the debug logger for pipeline stages.
func (b *Bridge) SetLogger(logger engine.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// Remesh retopologizes an in-memory mesh. The buffers are validated
// before any file is created; the input is then serialized to a
// uniquely named temporary OBJ file, the engine writes its result to a
// second one, and the result is read back into new buffers owned by
// the caller. Both temporary files are removed before return no matter
// which stage failed; the stage's error is what surfaces, never a
// cleanup failure.
func (b *Bridge) Remesh(vertices mesh.VertexBuffer, faces mesh.FaceBuffer, p engine.Params) (mesh.VertexBuffer, mesh.FaceBuffer, error) {
	if err := mesh.Validate(vertices, faces); err != nil {
		return mesh.VertexBuffer{}, mesh.FaceBuffer{}, err
	}

	input := tmpfile.New(tmpfile.UniquePath("retopo_input", ".obj"))
	defer input.Remove()
	output := tmpfile.New(tmpfile.UniquePath("retopo_output", ".obj"))
	defer output.Remove()

	b.logger.Debugf("bridge: input=%s output=%s vertices=%d faces=%d",
		input.Path(), output.Path(), vertices.Rows(), faces.Rows())

	if err := mesh.WriteOBJ(input.Path(), vertices, faces); err != nil {
		return mesh.VertexBuffer{}, mesh.FaceBuffer{}, err
	}
	if err := b.engine.Remesh(input.Path(), output.Path(), p); err != nil {
		return mesh.VertexBuffer{}, mesh.FaceBuffer{}, err
	}
	return mesh.ReadMesh(output.Path())
}

// RemeshFile retopologizes the mesh at inputPath into outputPath and
// returns the result as buffers. Both paths belong to the caller: no
// validation is run against them, nothing is deleted, and the output
// file stays on disk alongside the returned buffers.
func (b *Bridge) RemeshFile(inputPath, outputPath string, p engine.Params) (mesh.VertexBuffer, mesh.FaceBuffer, error) {
	b.logger.Debugf("bridge: input=%s output=%s", inputPath, outputPath)

	if err := b.engine.Remesh(inputPath, outputPath, p); err != nil {
		return mesh.VertexBuffer{}, mesh.FaceBuffer{}, err
	}
	return mesh.ReadMesh(outputPath)
}
