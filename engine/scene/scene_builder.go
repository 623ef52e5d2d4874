package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithCamera sets the camera the scene is drawn through.
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = c
	}
}

// WithArena shares an existing transform arena instead of creating one.
//
// Parameters:
//   - a: the arena; nil keeps the scene's own
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithArena(a *transform.Arena) SceneBuilderOption {
	return func(s *scene) {
		if a != nil {
			s.arena = a
		}
	}
}

// WithClear sets whether Draw clears the camera's target first. Disable it for scenes
// layered over another scene drawn through the same target.
//
// Parameters:
//   - clear: false to draw over the existing contents
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClear(clear bool) SceneBuilderOption {
	return func(s *scene) {
		s.clear = clear
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.Add(obj)
		}
	}
}
