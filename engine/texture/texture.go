package texture

import (
	"errors"
	"image"
	"io/fs"
	"os"

	// Decoders for Load.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// texture is the implementation of the Texture interface.
type texture struct {
	backend   gpu.Backend
	format    gpu.TextureFormat
	handle    uint32
	width     int32
	height    int32
	minFilter gpu.Filter
	magFilter gpu.Filter
	flip      bool
}

// Texture is a 2D GPU texture with repeat wrapping.
type Texture interface {
	// Format returns the texel format.
	//
	// Returns:
	//   - gpu.TextureFormat: the format
	Format() gpu.TextureFormat

	// Handle returns the texture handle, 0 once deleted.
	//
	// Returns:
	//   - uint32: the handle
	Handle() uint32

	// Size returns the dimensions in texels.
	//
	// Returns:
	//   - int32: the width
	//   - int32: the height
	Size() (int32, int32)

	// Resize reallocates uninitialized storage of the given size. It does nothing when the
	// size is unchanged. Color formats get a fresh mipmap chain, depth-stencil does not.
	//
	// Parameters:
	//   - width, height: the new dimensions
	Resize(width, height int32)

	// Bind binds the texture to a texture unit.
	//
	// Parameters:
	//   - unit: the zero-based texture unit
	Bind(unit uint32)

	// Delete releases the texture. Repeated calls are no-ops.
	Delete()
}

var _ Texture = &texture{}

func newTexture(backend gpu.Backend, format gpu.TextureFormat, minFilter gpu.Filter, options []TextureBuilderOption) *texture {
	if backend == nil {
		panic("texture: requires a non-nil backend")
	}
	t := &texture{
		backend:   backend,
		format:    format,
		minFilter: minFilter,
		magFilter: gpu.FilterNearest,
		flip:      true,
	}
	for _, opt := range options {
		opt(t)
	}
	t.handle = backend.GenTexture()
	backend.BindTexture(t.handle)
	backend.TexParameters(t.minFilter, t.magFilter)
	return t
}

// NewTexture creates a texture with uninitialized storage, linear minification and nearest
// magnification.
//
// Parameters:
//   - backend: the backend the texture is created on
//   - format: the texel format
//   - width, height: the dimensions in texels
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture: the texture
func NewTexture(backend gpu.Backend, format gpu.TextureFormat, width, height int32, options ...TextureBuilderOption) Texture {
	t := newTexture(backend, format, gpu.FilterLinear, options)
	t.backend.BindTexture(0)
	t.Resize(width, height)
	return t
}

// Load decodes an image file and uploads it as an RGBA texture with a mipmap chain.
// PNG, JPEG, GIF, BMP, TIFF and WebP are recognised.
//
// Parameters:
//   - backend: the backend the texture is created on
//   - path: the image file path
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture: the texture
//   - error: a *Error of kind KindNotFound or KindReadFailure
func Load(backend gpu.Backend, path string, options ...TextureBuilderOption) (Texture, error) {
	return LoadFS(nil, backend, path, options...)
}

// LoadFS is Load reading from fsys. A nil fsys reads from the OS file system.
//
// Parameters:
//   - fsys: the file system, or nil
//   - backend: the backend the texture is created on
//   - path: the image file path
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture: the texture
//   - error: a *Error of kind KindNotFound or KindReadFailure
func LoadFS(fsys fs.FS, backend gpu.Backend, path string, options ...TextureBuilderOption) (Texture, error) {
	var (
		f   fs.File
		err error
	)
	if fsys != nil {
		f, err = fsys.Open(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindNotFound, Path: path, Err: err}
		}
		return nil, &Error{Kind: KindReadFailure, Path: path, Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &Error{Kind: KindReadFailure, Path: path, Err: err}
	}
	t := FromImage(backend, img, options...)
	common.Logger().Info("texture loaded", "path", path, "format", format, "handle", t.Handle())
	return t, nil
}

// FromImage uploads img as an RGBA texture with a mipmap chain, nearest-mipmap-linear
// minification and nearest magnification.
//
// Parameters:
//   - backend: the backend the texture is created on
//   - img: the source image
//   - options: functional options to configure the texture
//
// Returns:
//   - Texture: the texture
func FromImage(backend gpu.Backend, img image.Image, options ...TextureBuilderOption) Texture {
	t := newTexture(backend, gpu.FormatRGBA, gpu.FilterNearestMipmapLinear, options)
	rgba := toRGBA(img, t.flip)
	t.width, t.height = int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy())
	t.backend.TexImage2D(gpu.FormatRGBA, t.width, t.height, rgba.Pix)
	t.backend.GenerateMipmap()
	t.backend.BindTexture(0)
	return t
}

// toRGBA converts img to a tightly packed RGBA image anchored at the origin,
// optionally with its rows reversed.
func toRGBA(img image.Image, flip bool) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	if flip {
		stride := rgba.Stride
		row := make([]byte, stride)
		for top, bottom := 0, b.Dy()-1; top < bottom; top, bottom = top+1, bottom-1 {
			a := rgba.Pix[top*stride : (top+1)*stride]
			z := rgba.Pix[bottom*stride : (bottom+1)*stride]
			copy(row, a)
			copy(a, z)
			copy(z, row)
		}
	}
	return rgba
}

func (t *texture) Format() gpu.TextureFormat {
	return t.format
}

func (t *texture) Handle() uint32 {
	return t.handle
}

func (t *texture) Size() (int32, int32) {
	return t.width, t.height
}

func (t *texture) Resize(width, height int32) {
	if t.handle == 0 || (width == t.width && height == t.height) {
		return
	}
	t.backend.BindTexture(t.handle)
	t.backend.TexImage2D(t.format, width, height, nil)
	if t.format != gpu.FormatDepthStencil {
		t.backend.GenerateMipmap()
	}
	t.backend.BindTexture(0)
	t.width, t.height = width, height
}

func (t *texture) Bind(unit uint32) {
	t.backend.ActiveTexture(unit)
	t.backend.BindTexture(t.handle)
}

func (t *texture) Delete() {
	if t.handle == 0 {
		return
	}
	t.backend.DeleteTexture(t.handle)
	t.handle = 0
	t.width, t.height = 0, 0
}
