package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

type gameObject struct {
	id           uint64
	enabled      bool
	mesh         mesh.Mesh
	shader       shader.Shader
	texture      texture.Texture
	transform    transform.ID
	hasTransform bool
}

// GameObject is one drawable entry of a Scene: a mesh drawn with a shader and an optional
// texture, placed by a transform that lives in the scene's arena.
type GameObject interface {
	// ID returns the object's identifier, 0 until the object is added to a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's identifier. Scene.Add assigns one when it is 0.
	SetID(id uint64)

	// Enabled returns whether the scene draws this object.
	Enabled() bool

	// SetEnabled sets whether the scene draws this object.
	SetEnabled(enabled bool)

	Mesh() mesh.Mesh
	SetMesh(m mesh.Mesh)

	Shader() shader.Shader
	SetShader(s shader.Shader)

	// Texture returns the sampled texture, nil to draw with texture 0 bound.
	Texture() texture.Texture
	SetTexture(t texture.Texture)

	// Transform returns the arena ID placing this object and whether one is set.
	// Objects without a transform are drawn with the identity model matrix.
	//
	// Returns:
	//   - transform.ID: the transform in the scene's arena
	//   - bool: false if the object has no transform
	Transform() (transform.ID, bool)

	// SetTransform places the object by a transform of the scene's arena.
	SetTransform(id transform.ID)

	// ClearTransform returns the object to the identity placement.
	ClearTransform()
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject with the provided options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{enabled: true}
	for _, opt := range options {
		opt(obj)
	}
	return obj
}

func (o *gameObject) ID() uint64 {
	return o.id
}

func (o *gameObject) SetID(id uint64) {
	o.id = id
}

func (o *gameObject) Enabled() bool {
	return o.enabled
}

func (o *gameObject) SetEnabled(enabled bool) {
	o.enabled = enabled
}

func (o *gameObject) Mesh() mesh.Mesh {
	return o.mesh
}

func (o *gameObject) SetMesh(m mesh.Mesh) {
	o.mesh = m
}

func (o *gameObject) Shader() shader.Shader {
	return o.shader
}

func (o *gameObject) SetShader(s shader.Shader) {
	o.shader = s
}

func (o *gameObject) Texture() texture.Texture {
	return o.texture
}

func (o *gameObject) SetTexture(t texture.Texture) {
	o.texture = t
}

func (o *gameObject) Transform() (transform.ID, bool) {
	return o.transform, o.hasTransform
}

func (o *gameObject) SetTransform(id transform.ID) {
	o.transform, o.hasTransform = id, true
}

func (o *gameObject) ClearTransform() {
	o.transform, o.hasTransform = 0, false
}
