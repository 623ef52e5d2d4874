package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.RGBA{255, 0, 0, 255}
	blue = color.RGBA{0, 0, 255, 255}
)

func twoRowImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := range 2 {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, blue)
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewTextureAllocatesStorage(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := NewTexture(rec, gpu.FormatRGBA, 64, 32)

	w, h := tex.Size()
	assert.Equal(t, int32(64), w)
	assert.Equal(t, int32(32), h)
	assert.Equal(t, [2]int32{64, 32}, rec.TextureSizes[tex.Handle()])
	assert.Equal(t, []any{gpu.FilterLinear, gpu.FilterNearest}, rec.Find("TexParameters")[0].Args)
	assert.Equal(t, []any{gpu.FormatRGBA, int32(64), int32(32), 0}, rec.Find("TexImage2D")[0].Args)
	assert.Equal(t, 1, rec.Count("GenerateMipmap"))
	assert.Zero(t, rec.State.Textures[0], "texture unit 0 is left unbound")
}

func TestDepthStencilSkipsMipmaps(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := NewTexture(rec, gpu.FormatDepthStencil, 16, 16)
	tex.Resize(32, 32)

	assert.Equal(t, 2, rec.Count("TexImage2D"))
	assert.Zero(t, rec.Count("GenerateMipmap"))
}

func TestResizeIsNoOpWhenUnchanged(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := NewTexture(rec, gpu.FormatRGB, 8, 8)
	rec.Reset()

	tex.Resize(8, 8)
	assert.Empty(t, rec.Calls)

	tex.Resize(16, 4)
	assert.Equal(t, []string{"BindTexture", "TexImage2D", "GenerateMipmap", "BindTexture"}, rec.Names())
	w, h := tex.Size()
	assert.Equal(t, int32(16), w)
	assert.Equal(t, int32(4), h)
}

func TestBindSelectsUnit(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := NewTexture(rec, gpu.FormatRGBA, 1, 1)

	tex.Bind(3)
	assert.Equal(t, uint32(3), rec.State.ActiveUnit)
	assert.Equal(t, tex.Handle(), rec.State.Textures[3])
}

func TestDeleteIsIdempotent(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := NewTexture(rec, gpu.FormatRGBA, 4, 4)

	tex.Delete()
	tex.Delete()
	assert.Equal(t, 1, rec.Count("DeleteTexture"))
	assert.Zero(t, rec.Live("texture"))
	assert.Zero(t, tex.Handle())
	w, h := tex.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)

	rec.Reset()
	tex.Resize(8, 8)
	assert.Empty(t, rec.Calls)
}

func TestLoadFSDecodesAndUploads(t *testing.T) {
	rec := gputest.NewRecorder()
	fsys := fstest.MapFS{"checker.png": {Data: encodePNG(t, twoRowImage())}}

	tex, err := LoadFS(fsys, rec, "checker.png")
	require.NoError(t, err)

	assert.Equal(t, gpu.FormatRGBA, tex.Format())
	assert.Equal(t, []any{gpu.FilterNearestMipmapLinear, gpu.FilterNearest}, rec.Find("TexParameters")[0].Args)
	assert.Equal(t, []any{gpu.FormatRGBA, int32(2), int32(2), 16}, rec.Find("TexImage2D")[0].Args)
	assert.Equal(t, 1, rec.Count("GenerateMipmap"))
	assert.Zero(t, rec.State.Textures[0])
}

func TestLoadErrors(t *testing.T) {
	rec := gputest.NewRecorder()
	fsys := fstest.MapFS{"notes.txt": {Data: []byte("not an image")}}

	_, err := LoadFS(fsys, rec, "missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrReadFailure)

	_, err = LoadFS(fsys, rec, "notes.txt")
	assert.ErrorIs(t, err, ErrReadFailure)
	assert.Contains(t, err.Error(), `texture "notes.txt": read failure`)

	assert.Empty(t, rec.Calls, "failed loads never touch the GPU")
}

func TestToRGBAFlipsRows(t *testing.T) {
	flipped := toRGBA(twoRowImage(), true)
	assert.Equal(t, blue, flipped.RGBAAt(0, 0))
	assert.Equal(t, red, flipped.RGBAAt(1, 1))

	straight := toRGBA(twoRowImage(), false)
	assert.Equal(t, red, straight.RGBAAt(0, 0))
}

func TestToRGBARebasesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 8, 7))
	src.Set(5, 5, red)
	out := toRGBA(src, false)

	assert.Equal(t, image.Rect(0, 0, 3, 2), out.Rect)
	assert.Equal(t, red, out.RGBAAt(0, 0))
	assert.Len(t, out.Pix, 3*2*4)
}

func TestFromImageWithoutFlip(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := FromImage(rec, twoRowImage(), WithFlipVertical(false), WithFilters(gpu.FilterLinear, gpu.FilterLinear))

	assert.NotZero(t, tex.Handle())
	assert.Equal(t, []any{gpu.FilterLinear, gpu.FilterLinear}, rec.Find("TexParameters")[0].Args)
}
