package camera

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// Controller drives a camera around the world origin using spherical coordinates
// (radius, azimuth, elevation). Its Transform is expressed so that transform.CameraOffset of
// it equals the look-at view from Position toward the origin.
type Controller interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Transform returns the camera transform for the current orbit state: position (0, 0, radius)
	// and rotation (elevation, -azimuth, 0) in degrees.
	//
	// Returns:
	//   - transform.Transform: the camera transform
	Transform() transform.Transform

	// View returns the look-at view matrix from Position toward the origin.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	View() mgl32.Mat4

	// OrbitLeft rotates the camera left around the origin by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the origin by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Zoom adjusts the orbit radius. Positive delta moves closer.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// HandleKey applies the default key bindings: A/Left and D/Right orbit horizontally,
	// W/Up and S/Down orbit vertically, =/E and -/Q zoom.
	//
	// Parameters:
	//   - keyCode: the key code delivered by the window
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool

	// Radius returns the current orbit radius.
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	SetRadius(radius float32)

	// MinRadius returns the minimum allowed orbit radius.
	MinRadius() float32

	// MaxRadius returns the maximum allowed orbit radius.
	MaxRadius() float32

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle in radians.
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// SetElevation sets the vertical angle in radians, clamped to the elevation bounds.
	SetElevation(elevation float32)

	// MinElevation returns the minimum allowed elevation in radians.
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation in radians.
	MaxElevation() float32

	// OrbitSpeed returns the orbit step in radians.
	OrbitSpeed() float32

	// ZoomSpeed returns the zoom multiplier.
	ZoomSpeed() float32
}
