package mesh

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GLSLVertexInputSource declares the vertex attributes matching the Vertex layout.
// It is injected into vertex shaders by the `@oxy:include vertex_input` annotation.
//
//go:embed assets/vertex_input.glsl
var GLSLVertexInputSource string

// VertexStride is the size in bytes of one packed Vertex.
const VertexStride = 36

// Vertex is one corner of a triangle as it is laid out in the vertex buffer.
// Size: 36 bytes, no padding.
type Vertex struct {
	Position mgl32.Vec3     // offset  0: attribute 0, vec3
	UV       mgl32.Vec2     // offset 12: attribute 1, vec2
	Color    common.GLColor // offset 20: attribute 2, vec4
}

// Fails to compile if Vertex ever stops being exactly VertexStride bytes.
var _ [VertexStride]byte = [unsafe.Sizeof(Vertex{})]byte{}

// VertexKey is the byte image of a Vertex. Two vertices deduplicate only if their keys are equal.
type VertexKey [VertexStride]byte

// Key encodes the vertex into its little-endian byte image. Unlike ==, this distinguishes
// -0 from +0 and treats identical NaN bit patterns as equal.
//
// Returns:
//   - VertexKey: the 36-byte image of the vertex
func (v Vertex) Key() VertexKey {
	var k VertexKey
	floats := [9]float32{
		v.Position[0], v.Position[1], v.Position[2],
		v.UV[0], v.UV[1],
		v.Color.R, v.Color.G, v.Color.B, v.Color.A,
	}
	for i, f := range floats {
		binary.LittleEndian.PutUint32(k[i*4:], math.Float32bits(f))
	}
	return k
}

// VertexAttribute describes one float attribute inside a Vertex.
type VertexAttribute struct {
	Index  uint32
	Size   int32
	Offset uintptr
}

// VertexAttributes is the attribute layout every mesh's vertex array is configured with.
var VertexAttributes = []VertexAttribute{
	{Index: 0, Size: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
	{Index: 1, Size: 2, Offset: unsafe.Offsetof(Vertex{}.UV)},
	{Index: 2, Size: 4, Offset: unsafe.Offsetof(Vertex{}.Color)},
}
