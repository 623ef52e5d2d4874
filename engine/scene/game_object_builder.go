package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to draw the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled = enabled
	}
}

// WithMesh sets the mesh to draw.
func WithMesh(m mesh.Mesh) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mesh = m
	}
}

// WithShader sets the shader program to draw with.
func WithShader(s shader.Shader) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.shader = s
	}
}

// WithTexture sets the texture bound to the sampler unit.
func WithTexture(t texture.Texture) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.texture = t
	}
}

// WithTransform places the object by a transform of the scene's arena.
//
// Parameters:
//   - id: the transform ID returned by Arena.Add
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the transform
func WithTransform(id transform.ID) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.SetTransform(id)
	}
}
