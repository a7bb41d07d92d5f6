package engine

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is the Instant Meshes executable looked up on PATH
// when no explicit binary is configured.
const DefaultBinary = "InstantMeshes"

// Error reports a failed engine invocation, carrying the engine's
// combined output so the caller is told why.
type Error struct {
	Binary string
	Output string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("engine: %s failed: %v", e.Binary, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// CommandEngine invokes the Instant Meshes binary in batch mode, one
// process per call. It holds no per-call state, so a single value may
// serve concurrent pipelines.
type CommandEngine struct {
	// Binary is the executable to run; DefaultBinary if empty.
	Binary string
	// Logger receives the composed command line and failure output.
	Logger Logger
}

// NewCommandEngine returns a CommandEngine for the given executable.
func NewCommandEngine(binary string) *CommandEngine {
	return &CommandEngine{Binary: binary, Logger: NopLogger}
}

// SetLogger sets the debug logger.
func (e *CommandEngine) SetLogger(logger Logger) {
	if logger != nil {
		e.Logger = logger
	}
}

func (e *CommandEngine) binary() string {
	if e.Binary != "" {
		return e.Binary
	}
	return DefaultBinary
}

func (e *CommandEngine) logger() Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return NopLogger
}

// Remesh runs one batch-mode pass over inputPath, writing the result
// to outputPath. The process's combined output is captured; a non-zero
// exit (or a failure to start at all) surfaces as *Error.
func (e *CommandEngine) Remesh(inputPath, outputPath string, p Params) error {
	args := buildArgs(inputPath, outputPath, p)
	bin := e.binary()
	e.logger().Debugf("engine: exec %s %s", bin, strings.Join(args, " "))

	cmd := exec.Command(bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		e.logger().Debugf("engine: failed: %v, output: %s", err, output)
		return &Error{Binary: bin, Output: string(output), Err: err}
	}
	return nil
}

// buildArgs maps Params onto Instant Meshes batch-mode flags. Writing
// -o puts the engine in batch mode. The engine defaults to extrinsic
// energy and quad-dominant output, so the corresponding Params map to
// -i (intrinsic) and the absence of -D (dominant) respectively.
func buildArgs(inputPath, outputPath string, p Params) []string {
	args := []string{"-o", outputPath}

	if p.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(p.Threads))
	}
	if p.Deterministic {
		args = append(args, "-d")
	}
	if p.CreaseAngle >= 0 {
		args = append(args, "-c", formatFloat(p.CreaseAngle))
	}
	if p.SmoothIterations >= 0 {
		args = append(args, "-S", strconv.Itoa(p.SmoothIterations))
	}
	if !p.PureQuad {
		args = append(args, "-D")
	}
	if !p.Extrinsic {
		args = append(args, "-i")
	}
	if p.AlignToBoundaries {
		args = append(args, "-b")
	}
	if p.Rosy > 0 {
		args = append(args, "-r", strconv.Itoa(p.Rosy))
	}
	if p.Posy > 0 {
		args = append(args, "-p", strconv.Itoa(p.Posy))
	}

	// At most one output size target reaches the engine; precedence
	// follows the order the engine itself checks them in.
	switch {
	case p.TargetEdgeLength > 0:
		args = append(args, "-s", formatFloat(p.TargetEdgeLength))
	case p.TargetFaceCount > 0:
		args = append(args, "-f", strconv.Itoa(p.TargetFaceCount))
	case p.TargetVertexCount > 0:
		args = append(args, "-v", strconv.Itoa(p.TargetVertexCount))
	}

	if p.KnnPoints > 0 {
		args = append(args, "-k", strconv.Itoa(p.KnnPoints))
	}

	return append(args, inputPath)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
