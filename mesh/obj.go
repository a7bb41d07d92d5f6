package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// IOError reports a mesh file that could not be opened or written.
type IOError struct {
	Path string
	Op   string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("mesh: failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// WriteOBJ serializes a buffer pair to path in Wavefront OBJ text form:
// one `v x y z` line per vertex followed by one `f i1 .. ik` line per
// face. Face indices are re-based from the buffer's 0-based convention
// to OBJ's 1-based convention. The file is created or truncated; a
// failure mid-write leaves a partial file behind for the caller's
// cleanup to collect.
func WriteOBJ(path string, vertices VertexBuffer, faces FaceBuffer) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Path: path, Op: "open for writing", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# retopo intermediate mesh")

	for i := 0; i < vertices.Rows(); i++ {
		fmt.Fprintf(w, "v %s %s %s\n",
			formatFloat(vertices.At(i, 0)),
			formatFloat(vertices.At(i, 1)),
			formatFloat(vertices.At(i, 2)))
	}

	for i := 0; i < faces.Rows(); i++ {
		w.WriteString("f")
		for j := 0; j < faces.Cols; j++ {
			fmt.Fprintf(w, " %d", faces.At(i, j)+1)
		}
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		return &IOError{Path: path, Op: "write", Err: err}
	}
	if err := f.Close(); err != nil {
		return &IOError{Path: path, Op: "close", Err: err}
	}
	return nil
}

// formatFloat renders a vertex component with the shortest text that
// round-trips back to the same float32.
func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
