package mesh

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vert(x, y, z float32) Vertex {
	return Vertex{
		Position: mgl32.Vec3{x, y, z},
		UV:       mgl32.Vec2{x, y},
		Color:    common.White.GL(),
	}
}

func TestAddVertexDuplicateReusesIndex(t *testing.T) {
	m := NewMesh(gputest.NewRecorder())
	v := vert(1, 2, 3)

	assert.Equal(t, uint32(0), m.AddVertex(v))
	assert.Equal(t, uint32(0), m.AddVertex(v))

	assert.Equal(t, 1, m.VertexCount())
	assert.Equal(t, 2, m.IndexCount())
	assert.Equal(t, []uint32{0, 0}, m.Indices())
}

func TestAddVerticesIndexOrder(t *testing.T) {
	a, b, c, d := vert(0, 0, 0), vert(1, 0, 0), vert(0, 1, 0), vert(0, 0, 1)
	m := NewMesh(gputest.NewRecorder())

	m.AddVertices(a, b, c, c, b, d)

	assert.Equal(t, []Vertex{a, b, c, d}, m.Vertices())
	assert.Equal(t, []uint32{0, 1, 2, 2, 1, 3}, m.Indices())
}

func TestAddVertexSyncsEveryCall(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec)
	rec.Reset()

	m.AddVertex(vert(0, 0, 0))
	m.AddVertex(vert(1, 0, 0))
	m.AddVertex(vert(0, 0, 0))

	assert.Equal(t, 6, rec.Count("BufferData"))
}

func TestAddVerticesSyncsOnce(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec)
	rec.Reset()

	m.AddVertices(vert(0, 0, 0), vert(1, 0, 0), vert(0, 1, 0), vert(0, 0, 0))

	assert.Equal(t, 2, rec.Count("BufferData"))
}

func TestSyncUploadsFullBuffersWithHints(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec).(*mesh)
	m.AddVertices(vert(0, 0, 0), vert(1, 0, 0), vert(0, 1, 0), vert(1, 0, 0))

	vbo := rec.Buffers[m.vbo]
	ebo := rec.Buffers[m.ebo]
	assert.Len(t, vbo, 3*VertexStride)
	assert.Equal(t, common.SliceToBytes(m.vertices), vbo)
	assert.Len(t, ebo, 4*4)
	assert.Equal(t, common.SliceToBytes(m.indices), ebo)
	assert.Equal(t, gpu.UsageDynamic, rec.Usages[m.vbo])
	assert.Equal(t, gpu.UsageStatic, rec.Usages[m.ebo])

	assert.Equal(t, uint32(0), rec.State.VertexArray)
	assert.Equal(t, uint32(0), rec.State.ArrayBuffer)
}

func TestSyncIsIdempotent(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec).(*mesh)
	m.AddVertices(vert(0, 0, 0), vert(1, 0, 0))
	before := append([]byte(nil), rec.Buffers[m.vbo]...)

	m.Sync()
	m.Sync()

	assert.Equal(t, before, rec.Buffers[m.vbo])
	assert.Equal(t, []uint32{0, 1}, m.Indices())
}

func TestNewMeshConfiguresAttributeLayout(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec)

	ptrs := rec.Find("VertexAttribPointer")
	require.Len(t, ptrs, 3)
	assert.Equal(t, []any{uint32(0), int32(3), int32(VertexStride), uintptr(0)}, ptrs[0].Args)
	assert.Equal(t, []any{uint32(1), int32(2), int32(VertexStride), uintptr(12)}, ptrs[1].Args)
	assert.Equal(t, []any{uint32(2), int32(4), int32(VertexStride), uintptr(20)}, ptrs[2].Args)

	assert.Equal(t, 3, rec.Count("EnableVertexAttribArray"))
	assert.Equal(t, uint32(0), rec.State.VertexArray)
	assert.Equal(t, uint32(0), rec.State.ArrayBuffer)
	assert.True(t, m.Active())
	assert.True(t, m.Visible())
	assert.Equal(t, 0, rec.Count("BufferData"))
}

func TestDedupIsByteExact(t *testing.T) {
	m := NewMesh(gputest.NewRecorder())
	negZero := float32(math.Copysign(0, -1))
	nan := float32(math.NaN())

	m.AddVertex(vert(0, 0, 0))
	m.AddVertex(vert(negZero, 0, 0))
	assert.Equal(t, 2, m.VertexCount(), "-0 and +0 have different bytes")

	m.AddVertex(vert(nan, 0, 0))
	m.AddVertex(vert(nan, 0, 0))
	assert.Equal(t, 3, m.VertexCount(), "identical NaN bit patterns deduplicate")

	c := vert(1, 1, 1)
	c.Color.R = math.Nextafter32(c.Color.R, 0)
	m.AddVertex(vert(1, 1, 1))
	m.AddVertex(c)
	assert.Equal(t, 5, m.VertexCount(), "no epsilon tolerance")
}

func TestWithVerticesSeedsAndSyncsOnce(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec, WithLabel("quad"), WithVertices(vert(0, 0, 0), vert(1, 0, 0), vert(0, 0, 0)))

	assert.Equal(t, "quad", m.Label())
	assert.Equal(t, []uint32{0, 1, 0}, m.Indices())
	assert.Equal(t, 2, rec.Count("BufferData"))
}

func TestDeleteReleasesAndDisables(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec)
	m.AddVertex(vert(0, 0, 0))

	m.Delete()
	assert.Equal(t, 0, rec.Live(""))
	assert.False(t, m.Active())
	assert.False(t, m.Visible())
	assert.Equal(t, uint32(0), m.VertexArray())

	rec.Reset()
	m.Delete()
	m.Sync()
	m.SetVisible(true)
	assert.Empty(t, rec.Calls)
	assert.False(t, m.Visible())
}

func TestAddAfterDeleteIsIgnored(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec)
	m.AddVertex(vert(0, 0, 0))
	m.Delete()
	rec.Reset()

	assert.Zero(t, m.AddVertex(vert(1, 0, 0)))
	m.AddVertices(vert(2, 0, 0), vert(3, 0, 0))
	assert.Zero(t, m.VertexCount())
	assert.Zero(t, m.IndexCount())
	assert.Empty(t, rec.Calls)
}

func TestSetVisible(t *testing.T) {
	m := NewMesh(gputest.NewRecorder())
	m.SetVisible(false)
	assert.Equal(t, FlagActive, m.Flags())
	m.SetVisible(true)
	assert.Equal(t, FlagActive|FlagVisible, m.Flags())
}

func TestInvariantsHoldForRandomSubmissions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	palette := make([]Vertex, 8)
	for i := range palette {
		palette[i] = vert(float32(i), float32(i%3), float32(i%2))
	}

	m := NewMesh(gputest.NewRecorder())
	distinct := map[VertexKey]bool{}
	submitted := 0
	for range 50 {
		batch := make([]Vertex, rng.IntN(5)+1)
		for i := range batch {
			batch[i] = palette[rng.IntN(len(palette))]
			distinct[batch[i].Key()] = true
		}
		submitted += len(batch)
		if rng.IntN(2) == 0 {
			m.AddVertices(batch...)
		} else {
			for _, v := range batch {
				m.AddVertex(v)
			}
		}
	}

	assert.Equal(t, submitted, m.IndexCount())
	assert.Equal(t, len(distinct), m.VertexCount())
	for _, idx := range m.Indices() {
		assert.Less(t, int(idx), m.VertexCount())
	}
}

func TestVertexKeyDistinguishesFields(t *testing.T) {
	base := vert(1, 2, 3)
	uv := base
	uv.UV[1] = 9
	col := base
	col.Color.A = 0.5

	assert.Equal(t, base.Key(), vert(1, 2, 3).Key())
	assert.NotEqual(t, base.Key(), uv.Key())
	assert.NotEqual(t, base.Key(), col.Key())
}
