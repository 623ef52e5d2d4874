package texture

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a texture load failure.
type ErrorKind int

const (
	// KindNotFound means the image file does not exist.
	KindNotFound ErrorKind = iota

	// KindReadFailure means the file exists but could not be read or decoded.
	KindReadFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindReadFailure:
		return "read failure"
	}
	return "unknown"
}

var (
	// ErrNotFound matches every *Error of kind KindNotFound.
	ErrNotFound = errors.New("texture: file not found")

	// ErrReadFailure matches every *Error of kind KindReadFailure.
	ErrReadFailure = errors.New("texture: read failure")
)

// Error is returned by Load.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("texture %q: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("texture %q: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrReadFailure:
		return e.Kind == KindReadFailure
	}
	return false
}
