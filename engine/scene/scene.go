// Package scene groups game objects that are drawn together through one camera.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
)

// scene is the implementation of the Scene interface.
type scene struct {
	nextID   uint64
	active   bool
	clear    bool
	camera   camera.Camera
	arena    *transform.Arena
	registry map[uint64]GameObject
}

// Scene is a flat list of game objects sharing a transform arena and a camera. Objects are
// drawn in ascending ID order, which is the order they were added in unless IDs were set
// by hand.
type Scene interface {
	// Active returns whether the engine draws this scene.
	Active() bool

	// SetActive sets whether the engine draws this scene.
	SetActive(active bool)

	// Camera returns the camera the scene is drawn through.
	Camera() camera.Camera

	// SetCamera sets the camera the scene is drawn through.
	SetCamera(c camera.Camera)

	// Arena returns the transforms objects are placed by.
	Arena() *transform.Arena

	// Add registers an object, assigning the next free ID if it has none. Adding an object
	// with the ID of a registered one replaces it. A nil object is ignored.
	//
	// Parameters:
	//   - obj: the object
	//
	// Returns:
	//   - uint64: the object's ID, 0 for a nil object
	Add(obj GameObject) uint64

	// Remove unregisters the object with the given ID.
	//
	// Returns:
	//   - bool: false if no object had that ID
	Remove(id uint64) bool

	// Object returns the object with the given ID, or nil.
	Object(id uint64) GameObject

	// Objects returns the registered objects in ascending ID order.
	Objects() []GameObject

	// Draw clears the camera's target, unless disabled with WithClear(false), then draws
	// every enabled object. A failing draw does not stop the others.
	//
	// Parameters:
	//   - r: the renderer to draw with
	//
	// Returns:
	//   - error: the joined draw errors, each prefixed with the object ID
	Draw(r renderer.Renderer) error
}

var _ Scene = &scene{}

// NewScene creates an active scene with an empty arena that clears its camera before drawing.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		nextID:   1,
		active:   true,
		clear:    true,
		arena:    transform.NewArena(),
		registry: make(map[uint64]GameObject),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) SetCamera(c camera.Camera) {
	s.camera = c
}

func (s *scene) Arena() *transform.Arena {
	return s.arena
}

func (s *scene) Add(obj GameObject) uint64 {
	if obj == nil {
		return 0
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Remove(id uint64) bool {
	if _, ok := s.registry[id]; !ok {
		return false
	}
	delete(s.registry, id)
	return true
}

func (s *scene) Object(id uint64) GameObject {
	return s.registry[id]
}

func (s *scene) Objects() []GameObject {
	ids := make([]uint64, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]GameObject, len(ids))
	for i, id := range ids {
		out[i] = s.registry[id]
	}
	return out
}

func (s *scene) Draw(r renderer.Renderer) error {
	if s.clear && s.camera != nil {
		r.Clear(s.camera)
	}
	var errs []error
	for _, obj := range s.Objects() {
		if !obj.Enabled() {
			continue
		}
		var model transform.Composer
		if id, ok := obj.Transform(); ok {
			model = s.arena.Ref(id)
		}
		if err := r.Draw(obj.Mesh(), obj.Shader(), s.camera, model, obj.Texture()); err != nil {
			errs = append(errs, fmt.Errorf("object %d: %w", obj.ID(), err))
		}
	}
	return errors.Join(errs...)
}
