// Package bench times remeshing pipelines over generated test meshes,
// persists the results, and renders comparison reports.
package bench

import "github.com/banshee-data/retopo/mesh"

// Tetrahedron returns the minimal four-face test mesh used to measure
// per-call overhead with as little engine work as possible.
func Tetrahedron() (mesh.VertexBuffer, mesh.FaceBuffer) {
	vertices := mesh.NewVertexBuffer([]float32{
		0, 0, 0,
		1, 0, 0,
		0.5, 0.866, 0,
		0.5, 0.433, 0.816,
	}, 3)
	faces := mesh.NewFaceBuffer([]int32{
		0, 1, 2,
		0, 1, 3,
		0, 2, 3,
		1, 2, 3,
	}, 3)
	return vertices, faces
}

// SubdividedCube returns a unit cube sampled on a (subdivisions+1)^3
// vertex grid with triangulated front and back faces per cell, a more
// substantial workload for end-to-end timing.
func SubdividedCube(subdivisions int) (mesh.VertexBuffer, mesh.FaceBuffer) {
	n := subdivisions + 1
	step := 1.0 / float32(subdivisions)

	vertexData := make([]float32, 0, n*n*n*3)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				vertexData = append(vertexData,
					float32(i)*step, float32(j)*step, float32(k)*step)
			}
		}
	}

	index := func(i, j, k int) int32 {
		return int32(i*n*n + j*n + k)
	}

	var faceData []int32
	for i := 0; i < subdivisions; i++ {
		for j := 0; j < subdivisions; j++ {
			for k := 0; k < subdivisions; k++ {
				v0 := index(i, j, k)
				v1 := index(i+1, j, k)
				v2 := index(i+1, j+1, k)
				v3 := index(i, j+1, k)
				faceData = append(faceData,
					v0, v1, v2,
					v0, v2, v3)

				v4 := index(i, j, k+1)
				v5 := index(i+1, j, k+1)
				v6 := index(i+1, j+1, k+1)
				v7 := index(i, j+1, k+1)
				faceData = append(faceData,
					v4, v6, v5,
					v4, v7, v6)
			}
		}
	}

	return mesh.NewVertexBuffer(vertexData, 3), mesh.NewFaceBuffer(faceData, 3)
}
