// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "fmt"

// RGBA is an 8-bit per channel color, the form colors are usually authored in.
type RGBA struct {
	R, G, B, A uint8
}

// GLColor is a color with float channels in the [0, 1] range, laid out the way OpenGL consumes it.
// The field order is part of the vertex memory layout and must not change.
type GLColor struct {
	R, G, B, A float32
}

var (
	// White is opaque white.
	White = RGBA{255, 255, 255, 255}

	// Black is opaque black.
	Black = RGBA{0, 0, 0, 255}
)

// GL converts an 8-bit color into its normalized float representation.
//
// Returns:
//   - GLColor: the color with each channel divided by 255
func (c RGBA) GL() GLColor {
	return GLColor{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

func (c RGBA) String() string {
	return fmt.Sprintf("{ %d, %d, %d, %d }", c.R, c.G, c.B, c.A)
}

// RGBA converts a normalized color back into 8-bit channels. Channels are truncated, not rounded,
// and values outside [0, 1] are clamped.
//
// Returns:
//   - RGBA: the 8-bit color
func (c GLColor) RGBA() RGBA {
	return RGBA{
		R: toByte(c.R),
		G: toByte(c.G),
		B: toByte(c.B),
		A: toByte(c.A),
	}
}

// Array returns the channels as a 4-element array, suitable for uniform uploads.
//
// Returns:
//   - [4]float32: r, g, b, a
func (c GLColor) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func (c GLColor) String() string {
	return fmt.Sprintf("{ %f, %f, %f, %f }", c.R, c.G, c.B, c.A)
}

func toByte(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}
