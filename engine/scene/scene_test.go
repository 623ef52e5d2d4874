package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 410 core
// @oxy:include vertex_input
// @oxy:include draw_uniforms
void main() {
	gl_Position = m_projection * m_campos * m_model * vec4(a_position, 1.0);
}
`

const fragmentSource = `#version 410 core
out vec4 frag_color;
uniform sampler2D t_sampler;
void main() {
	frag_color = texture(t_sampler, vec2(0.0));
}
`

type fixture struct {
	rec   *gputest.Recorder
	sh    shader.Shader
	r     renderer.Renderer
	drawn []int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{rec: gputest.NewRecorder()}
	sh, err := shader.NewShader(f.rec, "scene", shader.WithSources(vertexSource, fragmentSource))
	require.NoError(t, err)
	f.sh = sh
	f.r = renderer.NewRenderer(f.rec, renderer.WithDrawHook(func(n int) { f.drawn = append(f.drawn, n) }))
	return f
}

// triangles returns a mesh of n distinct triangles, so it draws 3*n indices.
func (f *fixture) triangles(n int) mesh.Mesh {
	var verts []mesh.Vertex
	for i := 0; i < n; i++ {
		x := float32(i)
		verts = append(verts,
			mesh.Vertex{Position: mgl32.Vec3{x, 0, 0}, Color: common.White.GL()},
			mesh.Vertex{Position: mgl32.Vec3{x + 1, 0, 0}, Color: common.White.GL()},
			mesh.Vertex{Position: mgl32.Vec3{x, 1, 0}, Color: common.White.GL()},
		)
	}
	return mesh.NewMesh(f.rec, mesh.WithVertices(verts...))
}

func TestAddAssignsIDs(t *testing.T) {
	s := NewScene()
	a := NewGameObject()
	b := NewGameObject(WithID(10))
	c := NewGameObject()

	assert.Equal(t, uint64(1), s.Add(a))
	assert.Equal(t, uint64(10), s.Add(b))
	assert.Equal(t, uint64(11), s.Add(c), "IDs continue past hand-set ones")

	assert.Equal(t, []GameObject{a, b, c}, s.Objects())
	assert.Same(t, b, s.Object(10))
	assert.Nil(t, s.Object(2))

	assert.True(t, s.Remove(10))
	assert.False(t, s.Remove(10))
	assert.Equal(t, []GameObject{a, c}, s.Objects())
}

func TestAddNilIsIgnored(t *testing.T) {
	s := NewScene()
	assert.Zero(t, s.Add(nil))
	assert.Empty(t, s.Objects())
	assert.Equal(t, uint64(1), s.Add(NewGameObject()))
}

func TestBuilderOptions(t *testing.T) {
	arena := transform.NewArena()
	cam := camera.Default()
	obj := NewGameObject(WithEnabled(false))
	s := NewScene(WithActive(false), WithCamera(cam), WithArena(arena), WithClear(false), WithObjects(obj))

	assert.False(t, s.Active())
	assert.Same(t, arena, s.Arena())
	assert.Equal(t, cam, s.Camera())
	assert.Equal(t, uint64(1), obj.ID())
	assert.False(t, obj.Enabled())

	s.SetActive(true)
	assert.True(t, s.Active())
	assert.NotNil(t, NewScene(WithArena(nil)).Arena())
}

func TestDrawOrderAndSkipping(t *testing.T) {
	f := newFixture(t)
	s := NewScene(WithCamera(camera.Default()))
	s.Add(NewGameObject(WithMesh(f.triangles(2)), WithShader(f.sh)))
	s.Add(NewGameObject(WithMesh(f.triangles(1)), WithShader(f.sh), WithEnabled(false)))
	s.Add(NewGameObject(WithMesh(f.triangles(3)), WithShader(f.sh)))
	f.rec.Reset()

	require.NoError(t, s.Draw(f.r))

	assert.Equal(t, []int{6, 9}, f.drawn)
	assert.Equal(t, 1, f.rec.Count("Clear"))
}

func TestDrawWithoutClear(t *testing.T) {
	f := newFixture(t)
	s := NewScene(WithCamera(camera.Default()), WithClear(false))
	s.Add(NewGameObject(WithMesh(f.triangles(1)), WithShader(f.sh)))
	f.rec.Reset()

	require.NoError(t, s.Draw(f.r))
	assert.Zero(t, f.rec.Count("Clear"))
}

func TestDrawUsesArenaTransforms(t *testing.T) {
	f := newFixture(t)
	s := NewScene(WithCamera(camera.Default()))
	parent := s.Arena().Add(transform.Transform{Position: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	child := s.Arena().Add(transform.Transform{Position: mgl32.Vec3{0, 2, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	require.NoError(t, s.Arena().SetParent(child, parent))

	obj := NewGameObject(WithMesh(f.triangles(1)), WithShader(f.sh), WithTransform(child))
	s.Add(obj)
	require.NoError(t, s.Draw(f.r))

	got, ok := f.rec.UniformValue(f.sh.Program(), shader.UniformModel)
	require.True(t, ok)
	assert.Equal(t, mgl32.Translate3D(1, 2, 0), got)

	obj.ClearTransform()
	_, ok = obj.Transform()
	assert.False(t, ok)
	require.NoError(t, s.Draw(f.r))
	got, _ = f.rec.UniformValue(f.sh.Program(), shader.UniformModel)
	assert.Equal(t, mgl32.Ident4(), got)
}

func TestDrawJoinsErrors(t *testing.T) {
	f := newFixture(t)
	s := NewScene(WithCamera(camera.Default()))
	s.Add(NewGameObject(WithShader(f.sh)))
	s.Add(NewGameObject(WithMesh(f.triangles(1)), WithShader(f.sh)))
	s.Add(NewGameObject(WithMesh(f.triangles(1))))

	err := s.Draw(f.r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, renderer.ErrMeshMissing))
	assert.True(t, errors.Is(err, renderer.ErrShaderMissing))
	assert.Contains(t, err.Error(), "object 1:")
	assert.Contains(t, err.Error(), "object 3:")
	assert.Equal(t, []int{3}, f.drawn, "a failing object does not stop the others")
}

func TestDrawWithoutCamera(t *testing.T) {
	f := newFixture(t)
	s := NewScene()
	s.Add(NewGameObject(WithMesh(f.triangles(1)), WithShader(f.sh)))
	f.rec.Reset()

	err := s.Draw(f.r)
	assert.ErrorIs(t, err, renderer.ErrCameraMissing)
	assert.Zero(t, f.rec.Count("Clear"))
}

func TestGameObjectSetters(t *testing.T) {
	f := newFixture(t)
	m := f.triangles(1)
	obj := NewGameObject()
	obj.SetMesh(m)
	obj.SetShader(f.sh)
	obj.SetTexture(nil)
	obj.SetTransform(4)
	obj.SetEnabled(false)

	assert.Equal(t, m, obj.Mesh())
	assert.Equal(t, f.sh, obj.Shader())
	assert.Nil(t, obj.Texture())
	id, ok := obj.Transform()
	assert.True(t, ok)
	assert.Equal(t, transform.ID(4), id)
	assert.False(t, obj.Enabled())
}
