// Package transform turns position/rotation/scale records into model and view matrices.
// Parent links live in an Arena and are validated when they are made, so a parent chain is
// always finite.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a position, an Euler rotation in degrees and a per-axis scale.
// It is plain data and owns no GPU resources.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// Composer produces a model matrix. Transform values and arena-bound Refs both implement it.
type Composer interface {
	// ComposeModel returns the local-to-world matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ComposeModel() mgl32.Mat4
}

var (
	_ Composer = Transform{}
	_ Composer = Ref{}
)

// Identity returns the transform that leaves every point where it is.
//
// Returns:
//   - Transform: zero position and rotation, unit scale
func Identity() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Local builds the transform's own matrix, ignoring any parent: scale first, then rotation about
// X, Y and Z in that order, then translation. For column vectors that is T · Rx · Ry · Rz · S.
//
// Returns:
//   - mgl32.Mat4: the local matrix
func (t Transform) Local() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation[0]))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation[1]))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation[2]))).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}

// ComposeModel returns the model matrix of a parent-free transform, which is its Local matrix.
//
// Returns:
//   - mgl32.Mat4: the model matrix
func (t Transform) ComposeModel() mgl32.Mat4 {
	return t.Local()
}

// ComposeView returns the inverse of the model matrix. Applied to a camera's transform it yields
// the matrix taking world space into that camera's space.
//
// Returns:
//   - mgl32.Mat4: the view matrix
func (t Transform) ComposeView() mgl32.Mat4 {
	return t.ComposeModel().Inv()
}

// CameraOffset is the cheap camera matrix the draw path uploads as m_campos: the camera's
// position is negated and the result composed as a model matrix. Rotation and scale are composed
// as they are, not inverted, so this is a translation offset and not a true view inverse.
// Shaders that need camera rotation get it through the projection.
//
// Parameters:
//   - camera: the camera's transform
//
// Returns:
//   - mgl32.Mat4: the offset matrix
func CameraOffset(camera Transform) mgl32.Mat4 {
	camera.Position = camera.Position.Mul(-1)
	return camera.ComposeModel()
}
