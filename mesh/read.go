package mesh

// ReadMesh loads the mesh at path and transposes the loader's
// column-major matrices into freshly allocated row-major buffers. The
// returned buffers share no storage with the loader's representation;
// the caller owns them outright. Loader failures propagate unchanged.
func ReadMesh(path string) (VertexBuffer, FaceBuffer, error) {
	m, err := Load(path)
	if err != nil {
		return VertexBuffer{}, FaceBuffer{}, err
	}

	n := m.VertexCount()
	vertices := NewVertexBuffer(make([]float32, n*3), 3)
	for i := 0; i < n; i++ {
		vertices.Data[i*3+0] = float32(m.V.At(0, i))
		vertices.Data[i*3+1] = float32(m.V.At(1, i))
		vertices.Data[i*3+2] = float32(m.V.At(2, i))
	}

	k := m.FaceSize
	count := m.FaceCount()
	faces := NewFaceBuffer(make([]int32, count*k), k)
	for i := 0; i < count; i++ {
		for j := 0; j < k; j++ {
			faces.Data[i*k+j] = m.Faces[i*k+j]
		}
	}
	return vertices, faces, nil
}
