// Package mesh provides the buffer types and mesh file I/O used by the
// remeshing bridge. Buffers are dense row-major arrays: vertices as N
// rows of three float32 components, faces as M rows of three or four
// int32 vertex indices. Indices are 0-based at the buffer boundary and
// re-based to the OBJ file convention (1-based) during serialization.
package mesh

import "fmt"

// VertexBuffer is a dense row-major buffer of vertex positions. Data
// holds Rows()*Cols values; Cols must be 3 for a valid buffer.
type VertexBuffer struct {
	Data []float32
	Cols int
}

// FaceBuffer is a dense row-major buffer of face indices. All rows
// share the same width; Cols must be 3 or 4 for a valid buffer.
type FaceBuffer struct {
	Data []int32
	Cols int
}

// NewVertexBuffer wraps data as an N×cols vertex buffer.
func NewVertexBuffer(data []float32, cols int) VertexBuffer {
	return VertexBuffer{Data: data, Cols: cols}
}

// NewFaceBuffer wraps data as an M×cols face buffer.
func NewFaceBuffer(data []int32, cols int) FaceBuffer {
	return FaceBuffer{Data: data, Cols: cols}
}

// Rows returns the number of vertex rows in the buffer.
func (b VertexBuffer) Rows() int {
	if b.Cols <= 0 {
		return 0
	}
	return len(b.Data) / b.Cols
}

// At returns component j of vertex i.
func (b VertexBuffer) At(i, j int) float32 {
	return b.Data[i*b.Cols+j]
}

// Rows returns the number of face rows in the buffer.
func (b FaceBuffer) Rows() int {
	if b.Cols <= 0 {
		return 0
	}
	return len(b.Data) / b.Cols
}

// At returns index j of face i.
func (b FaceBuffer) At(i, j int) int32 {
	return b.Data[i*b.Cols+j]
}

// ShapeError reports a buffer whose dimensions violate the bridge's
// input contract. It is always raised before any file I/O happens.
type ShapeError struct {
	Buffer string // "vertices" or "faces"
	Cols   int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("mesh: %s buffer has invalid shape: %s (got width %d)", e.Buffer, e.Reason, e.Cols)
}

// Validate checks the shape contract on an input buffer pair: vertices
// must be N×3 and faces M×3 or M×4. Index bounds are deliberately not
// checked here; malformed geometry is the engine's to reject.
func Validate(vertices VertexBuffer, faces FaceBuffer) error {
	if vertices.Cols != 3 {
		return &ShapeError{Buffer: "vertices", Cols: vertices.Cols, Reason: "must be a Nx3 array"}
	}
	if len(vertices.Data)%vertices.Cols != 0 {
		return &ShapeError{Buffer: "vertices", Cols: vertices.Cols, Reason: "data length is not a multiple of the row width"}
	}
	if faces.Cols != 3 && faces.Cols != 4 {
		return &ShapeError{Buffer: "faces", Cols: faces.Cols, Reason: "must be a Nx3 or Nx4 array"}
	}
	if len(faces.Data)%faces.Cols != 0 {
		return &ShapeError{Buffer: "faces", Cols: faces.Cols, Reason: "data length is not a multiple of the row width"}
	}
	return nil
}
