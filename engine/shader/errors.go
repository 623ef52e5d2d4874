package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// ErrorKind classifies a shader failure.
type ErrorKind int

const (
	// KindNotFound means a stage source file could not be read.
	KindNotFound ErrorKind = iota

	// KindCompile means a stage failed to pre-process or compile.
	KindCompile

	// KindLink means the program failed to link.
	KindLink

	// KindUnknownUniform means the program has no active uniform with the requested name.
	KindUnknownUniform
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindCompile:
		return "compile error"
	case KindLink:
		return "link error"
	case KindUnknownUniform:
		return "unknown uniform"
	}
	return "unknown"
}

var (
	// ErrNotFound matches every *Error of kind KindNotFound.
	ErrNotFound = errors.New("shader: source not found")

	// ErrCompile matches every *Error of kind KindCompile or KindLink.
	ErrCompile = errors.New("shader: compile error")

	// ErrLink matches every *Error of kind KindLink.
	ErrLink = errors.New("shader: link error")

	// ErrUnknownUniform matches every *Error of kind KindUnknownUniform.
	ErrUnknownUniform = errors.New("shader: unknown uniform")
)

// Error is returned by every failing shader operation.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path is the logical shader path (without stage extension).
	Path string

	// Stage is the stage that failed, meaningful for KindNotFound and KindCompile.
	Stage gpu.ShaderStage

	// Uniform is the uniform name, set for KindUnknownUniform.
	Uniform string

	// Message is the compiler or linker log, or a description of the failure.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnknownUniform:
		return fmt.Sprintf("shader %q: unknown uniform %q", e.Path, e.Uniform)
	case KindLink:
		return fmt.Sprintf("shader %q: link error: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("shader %q: %s stage: %s: %s", e.Path, e.Stage, e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel error for e's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrCompile:
		return e.Kind == KindCompile || e.Kind == KindLink
	case ErrLink:
		return e.Kind == KindLink
	case ErrUnknownUniform:
		return e.Kind == KindUnknownUniform
	}
	return false
}
