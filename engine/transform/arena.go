package transform

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ID addresses a transform inside an Arena.
type ID int

// NoParent is the parent of a root transform.
const NoParent ID = -1

var (
	// ErrUnknownTransform is returned for an ID the arena never issued.
	ErrUnknownTransform = errors.New("transform: unknown transform id")

	// ErrCycle is returned when a parent link would make a transform its own ancestor.
	ErrCycle = errors.New("transform: parent link would create a cycle")
)

type node struct {
	transform Transform
	parent    ID
}

// Arena stores transforms and the single-parent links between them. Links are checked when they
// are made, so every parent chain in an arena ends at a root. An Arena is not safe for concurrent use.
type Arena struct {
	nodes []node
}

// NewArena creates an empty arena.
//
// Returns:
//   - *Arena: the arena
func NewArena() *Arena {
	return &Arena{}
}

// Add stores a root transform.
//
// Parameters:
//   - t: the transform
//
// Returns:
//   - ID: the new transform's id
func (a *Arena) Add(t Transform) ID {
	a.nodes = append(a.nodes, node{transform: t, parent: NoParent})
	return ID(len(a.nodes) - 1)
}

// Len returns the number of stored transforms.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Get returns a stored transform.
//
// Parameters:
//   - id: the transform id
//
// Returns:
//   - Transform: the transform
//   - bool: false if id is unknown
func (a *Arena) Get(id ID) (Transform, bool) {
	if !a.valid(id) {
		return Transform{}, false
	}
	return a.nodes[id].transform, true
}

// Set replaces a stored transform, keeping its parent link.
//
// Parameters:
//   - id: the transform id
//   - t: the new value
//
// Returns:
//   - error: ErrUnknownTransform if id is unknown
func (a *Arena) Set(id ID, t Transform) error {
	if !a.valid(id) {
		return fmt.Errorf("set %d: %w", id, ErrUnknownTransform)
	}
	a.nodes[id].transform = t
	return nil
}

// Parent returns the parent of a transform.
//
// Parameters:
//   - id: the transform id
//
// Returns:
//   - ID: the parent id
//   - bool: false if the transform is a root or id is unknown
func (a *Arena) Parent(id ID) (ID, bool) {
	if !a.valid(id) || a.nodes[id].parent == NoParent {
		return NoParent, false
	}
	return a.nodes[id].parent, true
}

// SetParent links child under parent. The link is refused if parent is child itself or already
// has child as an ancestor; the arena is left unchanged in that case.
//
// Parameters:
//   - child: the transform being parented
//   - parent: the new parent
//
// Returns:
//   - error: ErrUnknownTransform or ErrCycle
func (a *Arena) SetParent(child, parent ID) error {
	if !a.valid(child) {
		return fmt.Errorf("set parent of %d: %w", child, ErrUnknownTransform)
	}
	if !a.valid(parent) {
		return fmt.Errorf("set parent of %d to %d: %w", child, parent, ErrUnknownTransform)
	}
	for p := parent; p != NoParent; p = a.nodes[p].parent {
		if p == child {
			return fmt.Errorf("set parent of %d to %d: %w", child, parent, ErrCycle)
		}
	}
	a.nodes[child].parent = parent
	return nil
}

// ClearParent makes a transform a root again. Unknown ids are ignored.
//
// Parameters:
//   - child: the transform id
func (a *Arena) ClearParent(child ID) {
	if a.valid(child) {
		a.nodes[child].parent = NoParent
	}
}

// ComposeModel returns ComposeModel(parent) × Local(id), walking the chain up to its root.
// An unknown id yields the identity matrix.
//
// Parameters:
//   - id: the transform id
//
// Returns:
//   - mgl32.Mat4: the model matrix
func (a *Arena) ComposeModel(id ID) mgl32.Mat4 {
	m := mgl32.Ident4()
	for cur := id; a.valid(cur); cur = a.nodes[cur].parent {
		m = a.nodes[cur].transform.Local().Mul4(m)
	}
	return m
}

// ComposeView returns the inverse of ComposeModel(id).
//
// Parameters:
//   - id: the transform id
//
// Returns:
//   - mgl32.Mat4: the view matrix
func (a *Arena) ComposeView(id ID) mgl32.Mat4 {
	return a.ComposeModel(id).Inv()
}

// Ref binds an id to this arena so it can be passed wherever a Composer is expected.
//
// Parameters:
//   - id: the transform id
//
// Returns:
//   - Ref: the bound reference
func (a *Arena) Ref(id ID) Ref {
	return Ref{arena: a, id: id}
}

func (a *Arena) valid(id ID) bool {
	return id >= 0 && int(id) < len(a.nodes)
}

// Ref is a transform id bound to its arena.
type Ref struct {
	arena *Arena
	id    ID
}

// ID returns the referenced id.
func (r Ref) ID() ID {
	return r.id
}

// ComposeModel returns the arena's model matrix for the referenced transform.
func (r Ref) ComposeModel() mgl32.Mat4 {
	return r.arena.ComposeModel(r.id)
}

// ComposeView returns the arena's view matrix for the referenced transform.
func (r Ref) ComposeView() mgl32.Mat4 {
	return r.arena.ComposeView(r.id)
}
