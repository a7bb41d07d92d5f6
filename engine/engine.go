// Package engine defines the contract to the external Instant Meshes
// remeshing engine and provides the default implementation that drives
// its command-line batch mode.
package engine

// Params is the immutable per-call configuration handed to the engine.
// Negative sentinel values mean "unset"; the engine itself is the
// authority on parameter semantics and cross-field consistency, so no
// validation happens at this layer.
type Params struct {
	// TargetVertexCount is the desired output vertex count; -1 derives
	// it from the input.
	TargetVertexCount int
	// TargetFaceCount is the desired output face count; -1 is unset.
	TargetFaceCount int
	// TargetEdgeLength is the desired world-space output edge length;
	// -1 is unset.
	TargetEdgeLength float64
	// Rosy is the orientation (rotational) symmetry order.
	Rosy int
	// Posy is the position symmetry order.
	Posy int
	// CreaseAngle is the dihedral crease threshold in degrees; -1
	// disables crease detection.
	CreaseAngle float64
	// Extrinsic selects extrinsic smoothness energy over intrinsic.
	Extrinsic bool
	// AlignToBoundaries aligns the fields to mesh boundaries.
	AlignToBoundaries bool
	// SmoothIterations is the number of smoothing and reprojection
	// steps applied to the output.
	SmoothIterations int
	// KnnPoints is the neighborhood size used in point-cloud mode.
	KnnPoints int
	// PureQuad requests a pure quad mesh instead of a quad-dominant one.
	PureQuad bool
	// Deterministic trades speed for reproducible output.
	Deterministic bool
	// Threads caps the engine's internal parallelism for this call;
	// 0 lets the engine decide. Passed per call rather than held in
	// process-wide state so concurrent calls cannot race on it.
	Threads int
}

// DefaultParams returns the engine defaults: quad-dominant output,
// 4-fold symmetries, vertex count derived from the input.
func DefaultParams() Params {
	return Params{
		TargetVertexCount: -1,
		TargetFaceCount:   -1,
		TargetEdgeLength:  -1.0,
		Rosy:              4,
		Posy:              4,
		CreaseAngle:       -1.0,
		SmoothIterations:  2,
		KnnPoints:         10,
	}
}

// Engine runs one synchronous remeshing pass: read the mesh at
// inputPath, write the retopologized result to outputPath. The call
// blocks for as long as the engine needs and exposes no cancellation;
// on failure no well-formed output file is guaranteed to exist.
type Engine interface {
	Remesh(inputPath, outputPath string, p Params) error
}

// Logger is the debug logging hook for engine implementations.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...interface{}) {}

// NopLogger discards all debug output.
var NopLogger Logger = nopLogger{}
