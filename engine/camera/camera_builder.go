package camera

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithFov sets the vertical field of view in degrees.
//
// Parameters:
//   - degrees: field of view
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = degrees
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithOrthoSize sets the half height of an orthographic view volume in world units.
// The half width follows from the viewport aspect ratio.
//
// Parameters:
//   - halfHeight: half the visible height
//
// Returns:
//   - CameraBuilderOption: a function that sets the orthographic size
func WithOrthoSize(halfHeight float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orthoSize = halfHeight
	}
}

// WithViewport sets the viewport size in pixels, which also sizes the offscreen target.
//
// Parameters:
//   - width, height: the size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the viewport
func WithViewport(width, height int32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.width, c.height = width, height
	}
}

// WithTransform sets the initial camera transform.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - CameraBuilderOption: a function that sets the transform
func WithTransform(t transform.Transform) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.transform = t
	}
}

// WithClearColor sets the clear color.
//
// Parameters:
//   - col: the color
//
// Returns:
//   - CameraBuilderOption: a function that sets the clear color
func WithClearColor(col common.RGBA) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.clearColor = col
	}
}

// WithScreenTarget makes a perspective or orthographic camera draw to the window instead of
// an offscreen framebuffer.
//
// Returns:
//   - CameraBuilderOption: a function that selects the window as render target
func WithScreenTarget() CameraBuilderOption {
	return func(c *cameraImpl) {
		c.screenTarget = true
	}
}

// WithController attaches a controller. The camera transform is taken from the controller on
// creation and on every Update.
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - CameraBuilderOption: a function that attaches the controller
func WithController(ctrl Controller) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
