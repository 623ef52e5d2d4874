package mesh

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithLabel sets a human readable name used in log output.
//
// Parameters:
//   - label: the mesh name
//
// Returns:
//   - MeshBuilderOption: a function that applies the label option to a mesh
func WithLabel(label string) MeshBuilderOption {
	return func(m *mesh) {
		m.label = label
	}
}

// WithVertices seeds the mesh with an initial batch of vertices. The batch goes through the same
// deduplication as AddVertices and is uploaded once, after the GPU objects are created.
//
// Parameters:
//   - vertices: the vertices to add, in submission order
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertices option to a mesh
func WithVertices(vertices ...Vertex) MeshBuilderOption {
	return func(m *mesh) {
		m.pending = append(m.pending, vertices...)
	}
}
