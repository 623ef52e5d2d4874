package loader

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader.
type LoaderBuilderOption func(*loader)

// WithFS reads documents and their external buffers from fsys instead of the OS filesystem.
//
// Parameters:
//   - fsys: the filesystem, for example an embed.FS
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithFS(fsys fs.FS) LoaderBuilderOption {
	return func(l *loader) {
		l.fsys = fsys
	}
}

// WithFlipV controls whether V texture coordinates are replaced by 1-V. Defaults to true.
//
// Parameters:
//   - flip: false keeps texture coordinates as stored
//
// Returns:
//   - LoaderBuilderOption: option function to apply
func WithFlipV(flip bool) LoaderBuilderOption {
	return func(l *loader) {
		l.flipV = flip
	}
}

// WithDefaultColor sets the vertex color of primitives without COLOR_0.
func WithDefaultColor(c common.RGBA) LoaderBuilderOption {
	return func(l *loader) {
		l.color = c
	}
}
