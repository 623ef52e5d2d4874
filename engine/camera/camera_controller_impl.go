package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// controllerImpl is the implementation of the Controller interface.
type controllerImpl struct {
	radius    float32
	azimuth   float32 // around +Y, 0 looks down -Z from +Z
	elevation float32 // above the XZ plane

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed float32
	zoomSpeed  float32
}

var _ Controller = &controllerImpl{}

// NewController creates an orbit controller.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the controller
func NewController(options ...ControllerOption) Controller {
	cc := &controllerImpl{
		radius:    5,
		elevation: math.Pi / 6,

		minRadius:    1,
		maxRadius:    100,
		minElevation: -(math.Pi/2 - 0.1),
		maxElevation: math.Pi/2 - 0.1,

		orbitSpeed: 0.03,
		zoomSpeed:  0.5,
	}
	for _, option := range options {
		option(cc)
	}
	cc.radius = clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	return cc
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}

func (cc *controllerImpl) Position() mgl32.Vec3 {
	sinE, cosE := math.Sincos(float64(cc.elevation))
	sinA, cosA := math.Sincos(float64(cc.azimuth))
	return mgl32.Vec3{
		cc.radius * float32(cosE*sinA),
		cc.radius * float32(sinE),
		cc.radius * float32(cosE*cosA),
	}
}

func (cc *controllerImpl) Transform() transform.Transform {
	return transform.Transform{
		Position: mgl32.Vec3{0, 0, cc.radius},
		Rotation: mgl32.Vec3{mgl32.RadToDeg(cc.elevation), -mgl32.RadToDeg(cc.azimuth), 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (cc *controllerImpl) View() mgl32.Mat4 {
	return mgl32.LookAtV(cc.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

func (cc *controllerImpl) OrbitLeft() {
	cc.azimuth -= cc.orbitSpeed
}

func (cc *controllerImpl) OrbitRight() {
	cc.azimuth += cc.orbitSpeed
}

func (cc *controllerImpl) OrbitUp() {
	cc.elevation = clamp(cc.elevation+cc.orbitSpeed, cc.minElevation, cc.maxElevation)
}

func (cc *controllerImpl) OrbitDown() {
	cc.elevation = clamp(cc.elevation-cc.orbitSpeed, cc.minElevation, cc.maxElevation)
}

func (cc *controllerImpl) Zoom(delta float32) {
	cc.radius = clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
}

func (cc *controllerImpl) HandleKey(keyCode uint32) bool {
	switch keyCode {
	case common.KeyA, common.KeyLeft:
		cc.OrbitLeft()
	case common.KeyD, common.KeyRight:
		cc.OrbitRight()
	case common.KeyW, common.KeyUp:
		cc.OrbitUp()
	case common.KeyS, common.KeyDown:
		cc.OrbitDown()
	case common.KeyEqual, common.KeyE:
		cc.Zoom(1)
	case common.KeyMinus, common.KeyQ:
		cc.Zoom(-1)
	default:
		return false
	}
	return true
}

func (cc *controllerImpl) Radius() float32 {
	return cc.radius
}

func (cc *controllerImpl) SetRadius(radius float32) {
	cc.radius = clamp(radius, cc.minRadius, cc.maxRadius)
}

func (cc *controllerImpl) MinRadius() float32 {
	return cc.minRadius
}

func (cc *controllerImpl) MaxRadius() float32 {
	return cc.maxRadius
}

func (cc *controllerImpl) Azimuth() float32 {
	return cc.azimuth
}

func (cc *controllerImpl) SetAzimuth(azimuth float32) {
	cc.azimuth = azimuth
}

func (cc *controllerImpl) Elevation() float32 {
	return cc.elevation
}

func (cc *controllerImpl) SetElevation(elevation float32) {
	cc.elevation = clamp(elevation, cc.minElevation, cc.maxElevation)
}

func (cc *controllerImpl) MinElevation() float32 {
	return cc.minElevation
}

func (cc *controllerImpl) MaxElevation() float32 {
	return cc.maxElevation
}

func (cc *controllerImpl) OrbitSpeed() float32 {
	return cc.orbitSpeed
}

func (cc *controllerImpl) ZoomSpeed() float32 {
	return cc.zoomSpeed
}
