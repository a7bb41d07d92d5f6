package bench

import (
	"testing"

	"github.com/banshee-data/retopo/mesh"
)

func TestTetrahedron(t *testing.T) {
	t.Parallel()

	vertices, faces := Tetrahedron()
	if err := mesh.Validate(vertices, faces); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if got := vertices.Rows(); got != 4 {
		t.Errorf("vertices.Rows() = %d, want 4", got)
	}
	if got := faces.Rows(); got != 4 {
		t.Errorf("faces.Rows() = %d, want 4", got)
	}
}

func TestSubdividedCube(t *testing.T) {
	t.Parallel()

	for _, subdivisions := range []int{1, 2, 3} {
		vertices, faces := SubdividedCube(subdivisions)
		if err := mesh.Validate(vertices, faces); err != nil {
			t.Fatalf("Validate() error for subdivisions=%d: %v", subdivisions, err)
		}

		n := subdivisions + 1
		if got, want := vertices.Rows(), n*n*n; got != want {
			t.Errorf("subdivisions=%d: vertices.Rows() = %d, want %d", subdivisions, got, want)
		}
		// Four triangles per cell (front and back pair).
		if got, want := faces.Rows(), 4*subdivisions*subdivisions*subdivisions; got != want {
			t.Errorf("subdivisions=%d: faces.Rows() = %d, want %d", subdivisions, got, want)
		}

		// Every index must point at a real vertex.
		for i := 0; i < faces.Rows(); i++ {
			for j := 0; j < faces.Cols; j++ {
				idx := faces.At(i, j)
				if idx < 0 || int(idx) >= vertices.Rows() {
					t.Fatalf("subdivisions=%d: face %d index %d out of range", subdivisions, i, idx)
				}
			}
		}
	}
}
