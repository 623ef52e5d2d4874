package texture

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// TextureBuilderOption is a functional option for configuring a Texture.
type TextureBuilderOption func(*texture)

// WithFilters overrides the sampling filters.
//
// Parameters:
//   - minFilter: the minification filter
//   - magFilter: the magnification filter
//
// Returns:
//   - TextureBuilderOption: a function that applies the filter option to a texture
func WithFilters(minFilter, magFilter gpu.Filter) TextureBuilderOption {
	return func(t *texture) {
		t.minFilter = minFilter
		t.magFilter = magFilter
	}
}

// WithFlipVertical controls whether decoded images are flipped so their first row lands at
// texture coordinate v = 0. Load and FromImage flip by default.
//
// Parameters:
//   - flip: false to upload rows in image order
//
// Returns:
//   - TextureBuilderOption: a function that applies the flip option to a texture
func WithFlipVertical(flip bool) TextureBuilderOption {
	return func(t *texture) {
		t.flip = flip
	}
}
