package camera

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// Kind is the variant of a camera.
type Kind int

const (
	// KindDefault renders straight to the window with an identity projection.
	KindDefault Kind = iota

	// KindPerspective uses a perspective projection.
	KindPerspective

	// KindOrthographic uses an orthographic projection.
	KindOrthographic
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindPerspective:
		return "perspective"
	case KindOrthographic:
		return "orthographic"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Defaults applied by Default and NewCamera.
const (
	DefaultWidth     int32   = 800
	DefaultHeight    int32   = 600
	DefaultFov       float32 = 60
	DefaultNear      float32 = 0.1
	DefaultFar       float32 = 1000
	DefaultOrthoSize float32 = 10
)

// DefaultClearColor is the clear color of a camera created without WithClearColor.
var DefaultClearColor = common.RGBA{R: 12, G: 12, B: 12, A: 255}

// ErrIncompleteFramebuffer is returned by NewCamera when the driver rejects the offscreen target.
var ErrIncompleteFramebuffer = errors.New("camera: offscreen framebuffer is incomplete")

type cameraImpl struct {
	backend gpu.Backend
	kind    Kind

	transform  transform.Transform
	projection mgl32.Mat4
	width      int32
	height     int32
	clearColor common.RGBA

	fov       float32
	near      float32
	far       float32
	orthoSize float32

	screenTarget bool
	framebuffer  uint32
	color        texture.Texture
	depth        texture.Texture

	controller Controller
}

// Camera is the view a mesh is drawn through: a transform, a projection and the render target
// the draw lands in. A KindDefault camera targets the window and has an identity projection;
// the other kinds own an offscreen framebuffer unless built with WithScreenTarget.
type Camera interface {
	// Kind returns the camera variant.
	//
	// Returns:
	//   - Kind: the variant
	Kind() Kind

	// Transform returns the camera's transform.
	//
	// Returns:
	//   - transform.Transform: the transform
	Transform() transform.Transform

	// SetTransform replaces the camera's transform.
	//
	// Parameters:
	//   - t: the new transform
	SetTransform(t transform.Transform)

	// ProjectionMatrix returns the stored projection, the identity for KindDefault.
	//
	// Returns:
	//   - mgl32.Mat4: the projection
	ProjectionMatrix() mgl32.Mat4

	// Viewport returns the viewport size in pixels.
	//
	// Returns:
	//   - int32: the width
	//   - int32: the height
	Viewport() (int32, int32)

	// Framebuffer returns the render target handle, gpu.DefaultFramebuffer for the window.
	//
	// Returns:
	//   - uint32: the framebuffer handle
	Framebuffer() uint32

	// ColorTexture returns the color attachment of the offscreen target, nil when the
	// camera renders to the window.
	//
	// Returns:
	//   - texture.Texture: the color texture or nil
	ColorTexture() texture.Texture

	// ClearColor returns the color the render target is cleared to.
	//
	// Returns:
	//   - common.RGBA: the clear color
	ClearColor() common.RGBA

	// SetClearColor changes the clear color.
	//
	// Parameters:
	//   - c: the new color
	SetClearColor(c common.RGBA)

	// Resize changes the viewport, recomputes the projection and reallocates the offscreen
	// attachments.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	Resize(width, height int32)

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// SetFov sets the vertical field of view in degrees and recomputes the projection.
	SetFov(degrees float32)

	// Near returns the near plane distance.
	Near() float32

	// SetNear sets the near plane distance and recomputes the projection.
	SetNear(near float32)

	// Far returns the far plane distance.
	Far() float32

	// SetFar sets the far plane distance and recomputes the projection.
	SetFar(far float32)

	// Controller returns the attached controller, or nil.
	//
	// Returns:
	//   - Controller: the controller
	Controller() Controller

	// Update writes the attached controller's state into the camera transform.
	// It does nothing without a controller.
	Update()

	// Delete releases the offscreen target. Repeated calls are no-ops.
	Delete()
}

var _ Camera = &cameraImpl{}

func newCamera(kind Kind, options []CameraBuilderOption) *cameraImpl {
	c := &cameraImpl{
		kind:       kind,
		transform:  transform.Identity(),
		projection: mgl32.Ident4(),
		width:      DefaultWidth,
		height:     DefaultHeight,
		clearColor: DefaultClearColor,
		fov:        DefaultFov,
		near:       DefaultNear,
		far:        DefaultFar,
		orthoSize:  DefaultOrthoSize,
	}
	for _, opt := range options {
		opt(c)
	}
	c.updateProjection()
	c.Update()
	return c
}

// Default returns a new camera that draws straight to the window with an identity projection.
// No GPU objects are created.
//
// Parameters:
//   - options: functional options; WithViewport, WithTransform, WithClearColor and
//     WithController apply, projection options are ignored
//
// Returns:
//   - Camera: the camera
func Default(options ...CameraBuilderOption) Camera {
	c := newCamera(KindDefault, options)
	c.screenTarget = true
	return c
}

// NewCamera creates a perspective or orthographic camera. Unless WithScreenTarget is given the
// camera gets its own framebuffer with an RGBA color texture and a depth-stencil texture
// sized to the viewport. Passing KindDefault is the same as calling Default.
//
// Parameters:
//   - backend: the backend the offscreen target is created on
//   - kind: the camera variant
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the camera
//   - error: ErrIncompleteFramebuffer if the offscreen target cannot be used
func NewCamera(backend gpu.Backend, kind Kind, options ...CameraBuilderOption) (Camera, error) {
	if kind == KindDefault {
		return Default(options...), nil
	}
	if kind != KindPerspective && kind != KindOrthographic {
		panic(fmt.Sprintf("camera: unknown kind %d", int(kind)))
	}
	if backend == nil {
		panic("camera: NewCamera requires a non-nil backend")
	}
	c := newCamera(kind, options)
	c.backend = backend
	if c.screenTarget {
		return c, nil
	}

	c.framebuffer = backend.GenFramebuffer()
	backend.BindFramebuffer(c.framebuffer)
	c.color = texture.NewTexture(backend, gpu.FormatRGBA, c.width, c.height)
	c.depth = texture.NewTexture(backend, gpu.FormatDepthStencil, c.width, c.height)
	backend.FramebufferTexture2D(gpu.AttachmentColor0, c.color.Handle())
	backend.FramebufferTexture2D(gpu.AttachmentDepthStencil, c.depth.Handle())
	complete := backend.FramebufferComplete()
	backend.BindFramebuffer(gpu.DefaultFramebuffer)
	if !complete {
		c.Delete()
		return nil, ErrIncompleteFramebuffer
	}

	gpu.LogErrors(backend, "camera create")
	common.Logger().Info("camera created", "kind", kind, "framebuffer", c.framebuffer, "width", c.width, "height", c.height)
	return c, nil
}

func (c *cameraImpl) updateProjection() {
	switch c.kind {
	case KindPerspective:
		c.projection = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect(), c.near, c.far)
	case KindOrthographic:
		hw, hh := c.orthoSize*c.aspect(), c.orthoSize
		c.projection = mgl32.Ortho(-hw, hw, -hh, hh, c.near, c.far)
	default:
		c.projection = mgl32.Ident4()
	}
}

func (c *cameraImpl) aspect() float32 {
	if c.height <= 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

func (c *cameraImpl) Kind() Kind {
	return c.kind
}

func (c *cameraImpl) Transform() transform.Transform {
	return c.transform
}

func (c *cameraImpl) SetTransform(t transform.Transform) {
	c.transform = t
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *cameraImpl) Viewport() (int32, int32) {
	return c.width, c.height
}

func (c *cameraImpl) Framebuffer() uint32 {
	return c.framebuffer
}

func (c *cameraImpl) ColorTexture() texture.Texture {
	return c.color
}

func (c *cameraImpl) ClearColor() common.RGBA {
	return c.clearColor
}

func (c *cameraImpl) SetClearColor(col common.RGBA) {
	c.clearColor = col
}

func (c *cameraImpl) Resize(width, height int32) {
	c.width, c.height = width, height
	c.updateProjection()
	if c.color != nil {
		c.color.Resize(width, height)
	}
	if c.depth != nil {
		c.depth.Resize(width, height)
	}
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) SetFov(degrees float32) {
	c.fov = degrees
	c.updateProjection()
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
	c.updateProjection()
}

func (c *cameraImpl) Controller() Controller {
	return c.controller
}

func (c *cameraImpl) Update() {
	if c.controller == nil {
		return
	}
	c.transform = c.controller.Transform()
}

func (c *cameraImpl) Delete() {
	if c.color != nil {
		c.color.Delete()
		c.color = nil
	}
	if c.depth != nil {
		c.depth.Delete()
		c.depth = nil
	}
	if c.framebuffer != gpu.DefaultFramebuffer {
		c.backend.DeleteFramebuffer(c.framebuffer)
		c.framebuffer = gpu.DefaultFramebuffer
	}
}
