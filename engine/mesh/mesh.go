package mesh

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Flags is a bitfield describing the lifecycle state of a mesh.
type Flags uint8

const (
	// FlagActive is set while the mesh owns live GPU objects.
	FlagActive Flags = 1 << iota

	// FlagVisible marks the mesh as eligible for drawing.
	FlagVisible
)

// mesh is the implementation of the Mesh interface.
type mesh struct {
	backend gpu.Backend
	label   string

	vao, vbo, ebo uint32

	vertices []Vertex
	indices  []uint32
	cache    map[VertexKey]uint32
	flags    Flags

	// pending holds vertices supplied through WithVertices until the GPU objects exist.
	pending []Vertex
}

// Mesh is an indexed triangle mesh. The CPU side holds the unique vertices, one index per
// submitted vertex, and a lookup from vertex bytes to index. The GPU side is a mirror of the
// CPU buffers that is refreshed by Sync and never updated implicitly otherwise.
// Meshes only grow; there is no removal.
type Mesh interface {
	// Label returns the mesh name used in log output.
	//
	// Returns:
	//   - string: the label
	Label() string

	// AddVertex submits one vertex. If an identical vertex (byte for byte) was already added,
	// its index is reused and the vertex buffer does not grow; otherwise the vertex is appended
	// and receives the next index. Either way the index is appended to the index buffer and the
	// full buffers are re-uploaded. A deleted mesh ignores the vertex and returns 0.
	//
	// Parameters:
	//   - v: the vertex to submit
	//
	// Returns:
	//   - uint32: the index assigned to v
	AddVertex(v Vertex) uint32

	// AddVertices submits each vertex in order with the same rules as AddVertex, then
	// re-uploads the buffers exactly once.
	//
	// Parameters:
	//   - vertices: the vertices to submit
	AddVertices(vertices ...Vertex)

	// Sync uploads the full vertex buffer (dynamic hint) and the full index buffer (static hint).
	// Calling it redundantly is harmless. It does nothing once the mesh has been deleted.
	Sync()

	// Vertices returns the unique vertices in first-seen order. The slice must not be modified.
	//
	// Returns:
	//   - []Vertex: the vertex buffer
	Vertices() []Vertex

	// Indices returns one index per submitted vertex. The slice must not be modified.
	//
	// Returns:
	//   - []uint32: the index buffer
	Indices() []uint32

	// VertexCount returns the number of unique vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of submitted vertices.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexArray returns the vertex array handle; binding it binds both buffers.
	//
	// Returns:
	//   - uint32: the vertex array handle, 0 after Delete
	VertexArray() uint32

	// Flags returns the lifecycle flags.
	//
	// Returns:
	//   - Flags: the current flags
	Flags() Flags

	// Active reports whether the mesh still owns its GPU objects.
	//
	// Returns:
	//   - bool: true until Delete is called
	Active() bool

	// Visible reports whether the mesh is marked visible.
	//
	// Returns:
	//   - bool: true if FlagVisible is set
	Visible() bool

	// SetVisible sets or clears FlagVisible. It has no effect on a deleted mesh.
	//
	// Parameters:
	//   - visible: the new visibility
	SetVisible(visible bool)

	// Delete releases the GPU objects and clears every flag. The mesh must not be used afterwards;
	// repeated calls are no-ops.
	Delete()
}

var _ Mesh = &mesh{}

// NewMesh creates an empty mesh and its GPU objects: a vertex array configured with the
// VertexAttributes layout, a vertex buffer and an index buffer. The vertex array and array
// buffer are left unbound.
//
// Parameters:
//   - backend: the backend the GPU objects are created on
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the new mesh, active and visible
func NewMesh(backend gpu.Backend, options ...MeshBuilderOption) Mesh {
	if backend == nil {
		panic("mesh: NewMesh requires a non-nil backend")
	}
	m := &mesh{
		backend: backend,
		label:   "mesh",
		cache:   make(map[VertexKey]uint32),
		flags:   FlagActive | FlagVisible,
	}
	for _, opt := range options {
		opt(m)
	}

	m.vao = backend.GenVertexArray()
	m.vbo = backend.GenBuffer()
	m.ebo = backend.GenBuffer()

	backend.BindVertexArray(m.vao)
	backend.BindBuffer(gpu.TargetArrayBuffer, m.vbo)
	backend.BindBuffer(gpu.TargetElementArrayBuffer, m.ebo)
	for _, attr := range VertexAttributes {
		backend.EnableVertexAttribArray(attr.Index)
		backend.VertexAttribPointer(attr.Index, attr.Size, VertexStride, attr.Offset)
	}
	backend.BindVertexArray(0)
	backend.BindBuffer(gpu.TargetArrayBuffer, 0)

	gpu.LogErrors(backend, "mesh create")

	if len(m.pending) > 0 {
		pending := m.pending
		m.pending = nil
		m.AddVertices(pending...)
	}
	return m
}

func (m *mesh) Label() string {
	return m.label
}

func (m *mesh) AddVertex(v Vertex) uint32 {
	idx := m.add(v)
	m.Sync()
	return idx
}

func (m *mesh) AddVertices(vertices ...Vertex) {
	for _, v := range vertices {
		m.add(v)
	}
	m.Sync()
}

// add deduplicates v against the cache and appends its index, without touching the GPU.
func (m *mesh) add(v Vertex) uint32 {
	if !m.Active() {
		return 0
	}
	key := v.Key()
	if idx, ok := m.cache[key]; ok {
		m.indices = append(m.indices, idx)
		return idx
	}
	m.vertices = append(m.vertices, v)
	idx := uint32(len(m.vertices) - 1)
	m.cache[key] = idx
	m.indices = append(m.indices, idx)
	return idx
}

func (m *mesh) Sync() {
	if m.flags&FlagActive == 0 {
		return
	}
	b := m.backend
	b.BindVertexArray(m.vao)

	b.BindBuffer(gpu.TargetArrayBuffer, m.vbo)
	b.BufferData(gpu.TargetArrayBuffer, common.SliceToBytes(m.vertices), gpu.UsageDynamic)

	b.BindBuffer(gpu.TargetElementArrayBuffer, m.ebo)
	b.BufferData(gpu.TargetElementArrayBuffer, common.SliceToBytes(m.indices), gpu.UsageStatic)

	b.BindBuffer(gpu.TargetArrayBuffer, 0)
	b.BindVertexArray(0)

	common.Logger().Debug("mesh synced", "mesh", m.label, "vertices", len(m.vertices), "indices", len(m.indices))
}

func (m *mesh) Vertices() []Vertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) VertexCount() int {
	return len(m.vertices)
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) VertexArray() uint32 {
	return m.vao
}

func (m *mesh) Flags() Flags {
	return m.flags
}

func (m *mesh) Active() bool {
	return m.flags&FlagActive != 0
}

func (m *mesh) Visible() bool {
	return m.flags&FlagVisible != 0
}

func (m *mesh) SetVisible(visible bool) {
	if !m.Active() {
		return
	}
	if visible {
		m.flags |= FlagVisible
	} else {
		m.flags &^= FlagVisible
	}
}

func (m *mesh) Delete() {
	if !m.Active() {
		return
	}
	m.backend.DeleteVertexArray(m.vao)
	m.backend.DeleteBuffer(m.vbo)
	m.backend.DeleteBuffer(m.ebo)
	m.vao, m.vbo, m.ebo = 0, 0, 0
	m.vertices = nil
	m.indices = nil
	m.cache = make(map[VertexKey]uint32)
	m.flags = 0
}
