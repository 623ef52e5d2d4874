package renderer

import (
	"errors"
	"fmt"
)

// DrawErrorKind classifies a failed draw.
type DrawErrorKind int

const (
	// KindShaderMissing means Draw was called without a shader or with a deleted one.
	KindShaderMissing DrawErrorKind = iota

	// KindUnknownUniform means the shader lacks one of the draw uniforms.
	KindUnknownUniform

	// KindMeshMissing means Draw was called without a mesh or with a deleted one.
	KindMeshMissing

	// KindCameraMissing means Draw was called without a camera.
	KindCameraMissing
)

func (k DrawErrorKind) String() string {
	switch k {
	case KindShaderMissing:
		return "shader missing"
	case KindUnknownUniform:
		return "unknown uniform"
	case KindMeshMissing:
		return "mesh missing"
	case KindCameraMissing:
		return "camera missing"
	}
	return "unknown"
}

var (
	// ErrShaderMissing matches every *DrawError of kind KindShaderMissing.
	ErrShaderMissing = errors.New("draw: shader missing")

	// ErrUnknownUniform matches every *DrawError of kind KindUnknownUniform.
	ErrUnknownUniform = errors.New("draw: unknown uniform")

	// ErrMeshMissing matches every *DrawError of kind KindMeshMissing.
	ErrMeshMissing = errors.New("draw: mesh missing")

	// ErrCameraMissing matches every *DrawError of kind KindCameraMissing.
	ErrCameraMissing = errors.New("draw: camera missing")
)

// DrawError is returned by Draw.
type DrawError struct {
	// Kind classifies the failure.
	Kind DrawErrorKind

	// Uniform names the missing uniform for KindUnknownUniform.
	Uniform string

	// Err is the underlying shader error, if any.
	Err error
}

func (e *DrawError) Error() string {
	if e.Kind == KindUnknownUniform {
		return fmt.Sprintf("draw: unknown uniform %q", e.Uniform)
	}
	return "draw: " + e.Kind.String()
}

func (e *DrawError) Unwrap() error {
	return e.Err
}

func (e *DrawError) Is(target error) bool {
	switch target {
	case ErrShaderMissing:
		return e.Kind == KindShaderMissing
	case ErrUnknownUniform:
		return e.Kind == KindUnknownUniform
	case ErrMeshMissing:
		return e.Kind == KindMeshMissing
	case ErrCameraMissing:
		return e.Kind == KindCameraMissing
	}
	return false
}
