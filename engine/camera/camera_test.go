package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCamera(t *testing.T) {
	c := Default()

	assert.Equal(t, KindDefault, c.Kind())
	assert.Equal(t, mgl32.Ident4(), c.ProjectionMatrix())
	assert.Equal(t, gpu.DefaultFramebuffer, c.Framebuffer())
	assert.Equal(t, common.RGBA{R: 12, G: 12, B: 12, A: 255}, c.ClearColor())
	assert.Nil(t, c.ColorTexture())
	assert.Equal(t, transform.Identity(), c.Transform())

	c.SetFov(90)
	c.Resize(100, 50)
	assert.Equal(t, mgl32.Ident4(), c.ProjectionMatrix(), "default projection stays identity")
	w, h := c.Viewport()
	assert.Equal(t, int32(100), w)
	assert.Equal(t, int32(50), h)
	c.Delete()
}

func TestDefaultCamerasAreIndependent(t *testing.T) {
	a := Default()
	b := Default()
	a.SetClearColor(common.RGBA{R: 1})
	assert.Equal(t, DefaultClearColor, b.ClearColor())
}

func TestNewCameraKindDefault(t *testing.T) {
	rec := gputest.NewRecorder()
	c, err := NewCamera(rec, KindDefault, WithViewport(320, 240))
	require.NoError(t, err)
	assert.Equal(t, KindDefault, c.Kind())
	assert.Empty(t, rec.Calls)
}

func TestPerspectiveProjection(t *testing.T) {
	rec := gputest.NewRecorder()
	c, err := NewCamera(rec, KindPerspective, WithScreenTarget(), WithViewport(1600, 900), WithFov(45), WithNear(0.5), WithFar(50))
	require.NoError(t, err)

	want := mgl32.Perspective(mgl32.DegToRad(45), 1600.0/900.0, 0.5, 50)
	assert.Equal(t, want, c.ProjectionMatrix())
	assert.Equal(t, gpu.DefaultFramebuffer, c.Framebuffer())
	assert.Empty(t, rec.Calls, "a screen target needs no GPU objects")

	c.SetFar(100)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1600.0/900.0, 0.5, 100), c.ProjectionMatrix())
}

func TestOrthographicProjection(t *testing.T) {
	rec := gputest.NewRecorder()
	c, err := NewCamera(rec, KindOrthographic, WithScreenTarget(), WithViewport(200, 100), WithOrthoSize(5))
	require.NoError(t, err)
	assert.Equal(t, mgl32.Ortho(-10, 10, -5, 5, DefaultNear, DefaultFar), c.ProjectionMatrix())

	c.Resize(100, 100)
	assert.Equal(t, mgl32.Ortho(-5, 5, -5, 5, DefaultNear, DefaultFar), c.ProjectionMatrix())
}

func TestOffscreenTarget(t *testing.T) {
	rec := gputest.NewRecorder()
	c, err := NewCamera(rec, KindPerspective, WithViewport(256, 128))
	require.NoError(t, err)

	assert.NotEqual(t, gpu.DefaultFramebuffer, c.Framebuffer())
	require.NotNil(t, c.ColorTexture())
	assert.Equal(t, gpu.FormatRGBA, c.ColorTexture().Format())
	assert.Equal(t, 1, rec.Live("framebuffer"))
	assert.Equal(t, 2, rec.Live("texture"))
	assert.Equal(t, gpu.DefaultFramebuffer, rec.State.Framebuffer, "target is unbound after creation")

	attach := rec.Find("FramebufferTexture2D")
	require.Len(t, attach, 2)
	assert.Equal(t, []any{gpu.AttachmentColor0, c.ColorTexture().Handle()}, attach[0].Args)
	assert.Equal(t, gpu.AttachmentDepthStencil, attach[1].Args[0])

	c.Resize(512, 512)
	w, h := c.ColorTexture().Size()
	assert.Equal(t, int32(512), w)
	assert.Equal(t, int32(512), h)

	c.Delete()
	c.Delete()
	assert.Zero(t, rec.Live(""))
	assert.Equal(t, gpu.DefaultFramebuffer, c.Framebuffer())
	assert.Nil(t, c.ColorTexture())
}

func TestIncompleteFramebufferReleasesEverything(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.IncompleteFramebuffers = true

	c, err := NewCamera(rec, KindOrthographic)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrIncompleteFramebuffer)
	assert.Zero(t, rec.Live(""))
}

func TestNewCameraPanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() { _, _ = NewCamera(gputest.NewRecorder(), Kind(9)) })
	assert.Panics(t, func() { _, _ = NewCamera(nil, KindPerspective) })
}

func TestCameraFollowsController(t *testing.T) {
	ctrl := NewController(WithRadius(10))
	c := Default(WithController(ctrl))
	assert.Equal(t, ctrl.Transform(), c.Transform())

	ctrl.OrbitRight()
	assert.NotEqual(t, ctrl.Transform(), c.Transform())
	c.Update()
	assert.Equal(t, ctrl.Transform(), c.Transform())
	assert.Same(t, ctrl, c.Controller())
}
