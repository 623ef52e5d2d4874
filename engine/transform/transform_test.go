package transform

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = float32(1e-5)

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], float64(tol), "element %d\nwant %v\ngot  %v", i, want, got)
	}
}

func TestIdentityComposesToIdentity(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), Identity().ComposeModel())
}

func TestLocalOrderScaleRotateTranslate(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 0, 0},
		Rotation: mgl32.Vec3{0, 0, 90},
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	// (1,0,0) -> scale 2 -> (2,0,0) -> rotate 90 about Z -> (0,2,0) -> translate -> (1,2,0)
	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, tr.Local())
	assert.InDelta(t, 1, got[0], 1e-5)
	assert.InDelta(t, 2, got[1], 1e-5)
	assert.InDelta(t, 0, got[2], 1e-5)
}

func TestLocalRotationAxisOrder(t *testing.T) {
	tr := Identity()
	tr.Rotation = mgl32.Vec3{30, 45, 60}
	want := mgl32.HomogRotate3DX(mgl32.DegToRad(30)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(45))).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(60)))
	assertMat4(t, want, tr.Local())
}

func TestViewInvertsModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	f := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }
	for range 100 {
		tr := Transform{
			Position: mgl32.Vec3{f(-50, 50), f(-50, 50), f(-50, 50)},
			Rotation: mgl32.Vec3{f(-180, 180), f(-180, 180), f(-180, 180)},
			Scale:    mgl32.Vec3{f(0.5, 3), f(0.5, 3), f(0.5, 3)},
		}
		assertMat4(t, mgl32.Ident4(), tr.ComposeView().Mul4(tr.ComposeModel()))
	}
}

func TestCameraOffsetNegatesPositionOnly(t *testing.T) {
	cam := Transform{
		Position: mgl32.Vec3{3, -4, 5},
		Rotation: mgl32.Vec3{0, 30, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
	want := Transform{
		Position: mgl32.Vec3{-3, 4, -5},
		Rotation: cam.Rotation,
		Scale:    cam.Scale,
	}.ComposeModel()
	assertMat4(t, want, CameraOffset(cam))

	plain := Identity()
	plain.Position = mgl32.Vec3{1, 2, 3}
	assertMat4(t, mgl32.Translate3D(-1, -2, -3), CameraOffset(plain))
}

func TestArenaParentChaining(t *testing.T) {
	a := NewArena()
	p := a.Add(Transform{Position: mgl32.Vec3{10, 0, 0}, Rotation: mgl32.Vec3{0, 90, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	c := a.Add(Transform{Position: mgl32.Vec3{0, 0, 1}, Rotation: mgl32.Vec3{15, 0, 0}, Scale: mgl32.Vec3{2, 1, 1}})
	require.NoError(t, a.SetParent(c, p))

	pt, _ := a.Get(p)
	ct, _ := a.Get(c)
	assertMat4(t, pt.ComposeModel().Mul4(ct.Local()), a.ComposeModel(c))
	assertMat4(t, pt.ComposeModel(), a.ComposeModel(p))

	parent, ok := a.Parent(c)
	assert.True(t, ok)
	assert.Equal(t, p, parent)
}

func TestArenaGrandparentChain(t *testing.T) {
	a := NewArena()
	g := a.Add(Transform{Position: mgl32.Vec3{0, 5, 0}, Scale: mgl32.Vec3{2, 2, 2}})
	p := a.Add(Transform{Rotation: mgl32.Vec3{0, 0, 45}, Scale: mgl32.Vec3{1, 1, 1}})
	c := a.Add(Transform{Position: mgl32.Vec3{1, 0, 0}, Scale: mgl32.Vec3{1, 1, 1}})
	require.NoError(t, a.SetParent(p, g))
	require.NoError(t, a.SetParent(c, p))

	assertMat4(t, a.ComposeModel(p).Mul4(mustGet(t, a, c).Local()), a.ComposeModel(c))
	assertMat4(t, mgl32.Ident4(), a.ComposeView(c).Mul4(a.ComposeModel(c)))
	assertMat4(t, a.ComposeModel(c), a.Ref(c).ComposeModel())
}

func TestArenaRejectsCycles(t *testing.T) {
	a := NewArena()
	x := a.Add(Identity())
	y := a.Add(Identity())
	z := a.Add(Identity())
	require.NoError(t, a.SetParent(y, x))
	require.NoError(t, a.SetParent(z, y))

	assert.ErrorIs(t, a.SetParent(x, z), ErrCycle)
	assert.ErrorIs(t, a.SetParent(x, x), ErrCycle)
	_, hasParent := a.Parent(x)
	assert.False(t, hasParent, "rejected link must leave the arena unchanged")

	a.ClearParent(z)
	assert.NoError(t, a.SetParent(x, z))
}

func TestArenaUnknownIDs(t *testing.T) {
	a := NewArena()
	x := a.Add(Identity())

	assert.ErrorIs(t, a.SetParent(x, 5), ErrUnknownTransform)
	assert.ErrorIs(t, a.SetParent(-3, x), ErrUnknownTransform)
	assert.ErrorIs(t, a.Set(9, Identity()), ErrUnknownTransform)
	_, ok := a.Get(9)
	assert.False(t, ok)
	assert.Equal(t, mgl32.Ident4(), a.ComposeModel(42))
	assert.Equal(t, 1, a.Len())
}

func TestArenaSetKeepsParent(t *testing.T) {
	a := NewArena()
	p := a.Add(Identity())
	c := a.Add(Identity())
	require.NoError(t, a.SetParent(c, p))

	moved := Identity()
	moved.Position = mgl32.Vec3{0, 1, 0}
	require.NoError(t, a.Set(p, moved))

	assertMat4(t, mgl32.Translate3D(0, 1, 0), a.ComposeModel(c))
}

func mustGet(t *testing.T, a *Arena, id ID) Transform {
	t.Helper()
	tr, ok := a.Get(id)
	require.True(t, ok)
	return tr
}
