package renderer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 410 core
// @oxy:include vertex_input
// @oxy:include draw_uniforms
out vec2 v_uv;
void main() {
	v_uv = a_uv;
	gl_Position = m_projection * m_campos * m_model * vec4(a_position, 1.0);
}
`

const fragmentSource = `#version 410 core
in vec2 v_uv;
out vec4 frag_color;
uniform sampler2D t_sampler;
void main() {
	frag_color = texture(t_sampler, v_uv);
}
`

// noCamposVertex declares every draw uniform except m_campos.
const noCamposVertex = `#version 410 core
// @oxy:include vertex_input
uniform mat4 m_projection;
uniform mat4 m_model;
void main() {
	gl_Position = m_projection * m_model * vec4(a_position, 1.0);
}
`

type fixture struct {
	rec  *gputest.Recorder
	r    Renderer
	mesh mesh.Mesh
	sh   shader.Shader
	tex  texture.Texture
}

func triangle() []mesh.Vertex {
	return []mesh.Vertex{
		{Position: mgl32.Vec3{-1, -1, 0}, UV: mgl32.Vec2{0, 0}, Color: common.White.GL()},
		{Position: mgl32.Vec3{1, -1, 0}, UV: mgl32.Vec2{1, 0}, Color: common.White.GL()},
		{Position: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0.5, 1}, Color: common.White.GL()},
	}
}

func newFixture(t *testing.T, vert string) *fixture {
	t.Helper()
	rec := gputest.NewRecorder()
	sh, err := shader.NewShader(rec, "test", shader.WithSources(vert, fragmentSource))
	require.NoError(t, err)
	f := &fixture{
		rec:  rec,
		r:    NewRenderer(rec),
		mesh: mesh.NewMesh(rec, mesh.WithVertices(triangle()...)),
		sh:   sh,
		tex:  texture.NewTexture(rec, gpu.FormatRGBA, 4, 4),
	}
	rec.Reset()
	return f
}

// drawCalls filters out the redundant program binds and location queries the uniform setters issue.
func drawCalls(rec *gputest.Recorder) []string {
	var out []string
	for _, c := range rec.Calls {
		switch c.Name {
		case "UseProgram", "UniformLocation":
			continue
		case "UniformMatrix4f", "Uniform1i":
			out = append(out, c.Name)
		default:
			out = append(out, c.String())
		}
	}
	return out
}

func TestDrawWithoutShaderIssuesNoCalls(t *testing.T) {
	f := newFixture(t, vertexSource)

	err := f.r.Draw(f.mesh, nil, camera.Default(), transform.Identity(), f.tex)

	require.ErrorIs(t, err, ErrShaderMissing)
	var de *DrawError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, KindShaderMissing, de.Kind)
	assert.Empty(t, f.rec.Calls)
	assert.Equal(t, uint64(1), f.r.Stats().FailedDraws)
}

func TestDrawNilGuards(t *testing.T) {
	f := newFixture(t, vertexSource)

	assert.ErrorIs(t, f.r.Draw(nil, f.sh, camera.Default(), nil, nil), ErrMeshMissing)
	assert.ErrorIs(t, f.r.Draw(f.mesh, f.sh, nil, nil, nil), ErrCameraMissing)

	deleted := mesh.NewMesh(f.rec)
	deleted.Delete()
	f.rec.Reset()
	assert.ErrorIs(t, f.r.Draw(deleted, f.sh, camera.Default(), nil, nil), ErrMeshMissing)
	assert.Empty(t, f.rec.Calls)
}

func TestDrawWithDeletedShader(t *testing.T) {
	f := newFixture(t, vertexSource)
	f.sh.Delete()
	f.rec.Reset()

	err := f.r.Draw(f.mesh, f.sh, camera.Default(), nil, nil)
	require.ErrorIs(t, err, ErrShaderMissing)
	assert.NotErrorIs(t, err, ErrUnknownUniform)
	assert.Empty(t, f.rec.Calls)
	assert.Equal(t, uint64(1), f.r.Stats().FailedDraws)
}

func TestDrawFullSequence(t *testing.T) {
	f := newFixture(t, vertexSource)
	cam := camera.Default(camera.WithViewport(640, 480))

	require.NoError(t, f.r.Draw(f.mesh, f.sh, cam, transform.Identity(), f.tex))

	assert.Equal(t, "UseProgram", f.rec.Calls[0].Name, "program is bound first")
	assert.Equal(t, []string{
		"UniformMatrix4f",
		"UniformMatrix4f",
		"UniformMatrix4f",
		"Uniform1i",
		"BindFramebuffer(0)",
		"Viewport(0, 0, 640, 480)",
		"ActiveTexture(0)",
		"BindTexture(" + itoa(f.tex.Handle()) + ")",
		"BindVertexArray(" + itoa(f.mesh.VertexArray()) + ")",
		"DrawElements(3)",
		"BindVertexArray(0)",
		"BindFramebuffer(0)",
	}, drawCalls(f.rec))

	writes := f.rec.Find("UniformMatrix4f")
	names := []string{shader.UniformProjection, shader.UniformCameraPosition, shader.UniformModel}
	for i, name := range names {
		v, ok := f.rec.UniformValue(f.sh.Program(), name)
		require.True(t, ok, name)
		assert.Equal(t, writes[i].Args[1], v, "%s written in contract order", name)
	}
	v, _ := f.rec.UniformValue(f.sh.Program(), shader.UniformSampler)
	assert.Equal(t, int32(0), v)

	assert.Zero(t, f.rec.State.VertexArray)
	assert.Equal(t, gpu.DefaultFramebuffer, f.rec.State.Framebuffer)
	assert.Equal(t, Stats{DrawCalls: 1, Indices: 3}, f.r.Stats())
}

func TestDrawUniformValues(t *testing.T) {
	f := newFixture(t, vertexSource)
	cam, err := camera.NewCamera(f.rec, camera.KindPerspective, camera.WithViewport(300, 200),
		camera.WithTransform(transform.Transform{Position: mgl32.Vec3{0, 0, 5}, Scale: mgl32.Vec3{1, 1, 1}}))
	require.NoError(t, err)
	model := transform.Transform{Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.Vec3{0, 45, 0}, Scale: mgl32.Vec3{2, 2, 2}}
	f.rec.Reset()

	require.NoError(t, f.r.Draw(f.mesh, f.sh, cam, model, f.tex))

	p := f.sh.Program()
	v, _ := f.rec.UniformValue(p, shader.UniformProjection)
	assert.Equal(t, cam.ProjectionMatrix(), v)
	v, _ = f.rec.UniformValue(p, shader.UniformCameraPosition)
	assert.Equal(t, mgl32.Translate3D(0, 0, -5), v)
	v, _ = f.rec.UniformValue(p, shader.UniformModel)
	assert.Equal(t, model.ComposeModel(), v)

	bound := f.rec.Find("BindFramebuffer")
	require.Len(t, bound, 2)
	assert.Equal(t, cam.Framebuffer(), bound[0].Args[0])
	assert.Equal(t, [4]int32{0, 0, 300, 200}, f.rec.State.Viewport)
}

func TestDrawMissingCamposFailsAfterProjection(t *testing.T) {
	f := newFixture(t, noCamposVertex)

	err := f.r.Draw(f.mesh, f.sh, camera.Default(), transform.Identity(), f.tex)

	require.ErrorIs(t, err, ErrUnknownUniform)
	assert.ErrorIs(t, err, shader.ErrUnknownUniform)
	var de *DrawError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, shader.UniformCameraPosition, de.Uniform)
	assert.Equal(t, `draw: unknown uniform "m_campos"`, err.Error())

	v, ok := f.rec.UniformValue(f.sh.Program(), shader.UniformProjection)
	require.True(t, ok, "m_projection was set before the failure")
	assert.Equal(t, mgl32.Ident4(), v)
	assert.Equal(t, 1, f.rec.Count("UniformMatrix4f"))
	for _, name := range []string{"Uniform1i", "BindFramebuffer", "Viewport", "BindTexture", "BindVertexArray", "DrawElements"} {
		assert.Zero(t, f.rec.Count(name), name)
	}
	assert.Equal(t, f.sh.Program(), f.rec.State.Program, "program stays bound on early exit")
	assert.Equal(t, Stats{FailedDraws: 1}, f.r.Stats())
}

func TestDrawNamesEachMissingUniform(t *testing.T) {
	for _, missing := range shader.DrawUniforms {
		src := "#version 410 core\n"
		for _, name := range shader.DrawUniforms {
			if name != missing {
				typ := "mat4"
				if name == shader.UniformSampler {
					typ = "sampler2D"
				}
				src += "uniform " + typ + " " + name + ";\n"
			}
		}
		rec := gputest.NewRecorder()
		sh, err := shader.NewShader(rec, missing, shader.WithSources(src, "#version 410 core\n"))
		require.NoError(t, err)

		err = NewRenderer(rec).Draw(mesh.NewMesh(rec), sh, camera.Default(), nil, nil)
		var de *DrawError
		require.True(t, errors.As(err, &de), missing)
		assert.Equal(t, missing, de.Uniform)
	}
}

func TestDrawNilTextureBindsZero(t *testing.T) {
	f := newFixture(t, vertexSource)
	f.tex.Bind(0)
	f.rec.Reset()

	require.NoError(t, f.r.Draw(f.mesh, f.sh, camera.Default(), nil, nil))
	assert.Equal(t, []any{uint32(0)}, f.rec.Find("BindTexture")[0].Args)
	assert.Zero(t, f.rec.State.Textures[0])
	v, _ := f.rec.UniformValue(f.sh.Program(), shader.UniformModel)
	assert.Equal(t, mgl32.Ident4(), v)
}

func TestDrawSkipsInvisibleMesh(t *testing.T) {
	f := newFixture(t, vertexSource)
	f.mesh.SetVisible(false)

	require.NoError(t, f.r.Draw(f.mesh, f.sh, camera.Default(), nil, f.tex))
	assert.Empty(t, f.rec.Calls)
	assert.Equal(t, Stats{Skipped: 1}, f.r.Stats())
}

func TestDrawWithArenaParent(t *testing.T) {
	f := newFixture(t, vertexSource)
	arena := transform.NewArena()
	parent := arena.Add(transform.Transform{Position: mgl32.Vec3{0, 3, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	child := arena.Add(transform.Transform{Position: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	require.NoError(t, arena.SetParent(child, parent))

	require.NoError(t, f.r.Draw(f.mesh, f.sh, camera.Default(), arena.Ref(child), nil))
	v, _ := f.rec.UniformValue(f.sh.Program(), shader.UniformModel)
	want, got := mgl32.Translate3D(1, 3, 0), v.(mgl32.Mat4)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6)
	}
}

func TestClear(t *testing.T) {
	f := newFixture(t, vertexSource)
	cam := camera.Default(camera.WithViewport(10, 20), camera.WithClearColor(common.RGBA{R: 255, A: 255}))

	f.r.Clear(cam)
	f.r.Clear(nil)

	assert.Equal(t, []string{"BindFramebuffer", "Viewport", "ClearColor", "Clear", "BindFramebuffer"}, f.rec.Names())
	assert.Equal(t, common.GLColor{R: 1, A: 1}, f.rec.State.ClearColor)
}

func TestStatsAndHook(t *testing.T) {
	rec := gputest.NewRecorder()
	var hooked []int
	r := NewRenderer(rec, WithDrawHook(func(n int) { hooked = append(hooked, n) }))
	sh, err := shader.NewShader(rec, "test", shader.WithSources(vertexSource, fragmentSource))
	require.NoError(t, err)
	m := mesh.NewMesh(rec, mesh.WithVertices(triangle()...))
	m.AddVertices(triangle()...)

	require.NoError(t, r.Draw(m, sh, camera.Default(), nil, nil))
	require.NoError(t, r.Draw(m, sh, camera.Default(), nil, nil))
	require.Error(t, r.Draw(m, nil, camera.Default(), nil, nil))

	assert.Equal(t, Stats{DrawCalls: 2, Indices: 12, FailedDraws: 1}, r.Stats())
	assert.Equal(t, []int{6, 6}, hooked)
	r.ResetStats()
	assert.Equal(t, Stats{}, r.Stats())
	assert.Same(t, rec, r.Backend())
}

func TestNewRendererPanicsWithoutBackend(t *testing.T) {
	assert.Panics(t, func() { NewRenderer(nil) })
}

func itoa(v uint32) string {
	return strconv.FormatUint(uint64(v), 10)
}
