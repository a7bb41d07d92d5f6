package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Mesh is the loader's engine-style column-major representation:
// vertex positions as a 3×N matrix, face indices as a K×M matrix with
// one column per face, and optional per-vertex normals as 3×N. The
// deserializer transposes this into row-major buffers; nothing above
// the loader touches Normals.
type Mesh struct {
	V        *mat.Dense
	N        *mat.Dense
	Faces    []int32 // K×M column-major; column m holds face m
	FaceSize int
}

// FaceCount returns the number of face columns.
func (m *Mesh) FaceCount() int {
	if m.FaceSize == 0 {
		return 0
	}
	return len(m.Faces) / m.FaceSize
}

// VertexCount returns the number of vertex columns.
func (m *Mesh) VertexCount() int {
	if m.V == nil {
		return 0
	}
	_, n := m.V.Dims()
	return n
}

// LoaderError reports a mesh or point-cloud file the loader could not
// turn into a usable Mesh.
type LoaderError struct {
	Path string
	Err  error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("mesh: failed to load %s: %v", e.Path, e.Err)
}

func (e *LoaderError) Unwrap() error { return e.Err }

// Load parses an OBJ mesh or point cloud at path. A file with only
// vertex lines loads as a point cloud (zero faces); a file with no
// vertices at all is an error. Face rows may use the v, v/vt, v//vn or
// v/vt/vn index syntax; only the vertex index is kept. Negative
// indices follow the OBJ back-reference convention.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoaderError{Path: path, Err: err}
	}
	defer f.Close()

	var (
		positions []float64
		normals   []float64
		faces     []int32
		faceSize  int
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) < 2 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, &LoaderError{Path: path, Err: fmt.Errorf("line %d: vertex with %d components", lineNo, len(fields)-1)}
			}
			for _, s := range fields[1:4] {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, &LoaderError{Path: path, Err: fmt.Errorf("line %d: bad vertex component %q", lineNo, s)}
				}
				positions = append(positions, v)
			}
		case "vn":
			if len(fields) < 4 {
				continue
			}
			for _, s := range fields[1:4] {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, &LoaderError{Path: path, Err: fmt.Errorf("line %d: bad normal component %q", lineNo, s)}
				}
				normals = append(normals, v)
			}
		case "f":
			idx, err := parseFaceLine(fields[1:], len(positions)/3)
			if err != nil {
				return nil, &LoaderError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			if faceSize == 0 {
				if len(idx) != 3 && len(idx) != 4 {
					return nil, &LoaderError{Path: path, Err: fmt.Errorf("line %d: unsupported face size %d", lineNo, len(idx))}
				}
				faceSize = len(idx)
			} else if len(idx) != faceSize {
				return nil, &LoaderError{Path: path, Err: fmt.Errorf("line %d: mixed face sizes %d and %d", lineNo, faceSize, len(idx))}
			}
			faces = append(faces, idx...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoaderError{Path: path, Err: err}
	}
	if len(positions) == 0 {
		return nil, &LoaderError{Path: path, Err: fmt.Errorf("empty mesh: no vertices")}
	}

	n := len(positions) / 3
	m := &Mesh{Faces: faces, FaceSize: faceSize}

	// Column-major 3×N layout: component j of vertex i at (j, i).
	m.V = mat.NewDense(3, n, nil)
	for i := 0; i < n; i++ {
		m.V.Set(0, i, positions[i*3+0])
		m.V.Set(1, i, positions[i*3+1])
		m.V.Set(2, i, positions[i*3+2])
	}
	if len(normals) == 3*n {
		m.N = mat.NewDense(3, n, nil)
		for i := 0; i < n; i++ {
			m.N.Set(0, i, normals[i*3+0])
			m.N.Set(1, i, normals[i*3+1])
			m.N.Set(2, i, normals[i*3+2])
		}
	}
	return m, nil
}

// parseFaceLine resolves OBJ face references ("3", "3/1", "3//2",
// "3/1/2", "-1") to 0-based vertex indices. numVertices is the count
// of vertices read so far, used for negative back-references.
func parseFaceLine(refs []string, numVertices int) ([]int32, error) {
	if len(refs) < 3 {
		return nil, fmt.Errorf("face with %d indices", len(refs))
	}
	idx := make([]int32, 0, len(refs))
	for _, ref := range refs {
		head := ref
		if k := strings.IndexByte(ref, '/'); k >= 0 {
			head = ref[:k]
		}
		v, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("bad face index %q", ref)
		}
		switch {
		case v > 0:
			idx = append(idx, int32(v-1))
		case v < 0:
			idx = append(idx, int32(numVertices+v))
		default:
			return nil, fmt.Errorf("face index 0 is not valid")
		}
	}
	return idx, nil
}
