// Package opengl implements gpu.Backend on top of OpenGL 4.1 core through go-gl.
package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// backend is the go-gl implementation of gpu.Backend. It holds no state of its own; all state
// lives in the current OpenGL context.
type backend struct{}

var _ gpu.Backend = &backend{}

// NewBackend loads the OpenGL function pointers for the context current on the calling thread
// and returns a Backend issuing commands into it. Depth testing is enabled once here.
//
// Reference: https://pkg.go.dev/github.com/go-gl/gl/v4.1-core/gl#Init
//
// Returns:
//   - gpu.Backend: the backend
//   - error: an error if the function pointers could not be loaded
func NewBackend() (gpu.Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	common.Logger().Info("opengl initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return &backend{}, nil
}

func (b *backend) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (b *backend) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (b *backend) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (b *backend) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (b *backend) DeleteBuffer(buf uint32) {
	gl.DeleteBuffers(1, &buf)
}

func (b *backend) BindBuffer(target gpu.BufferTarget, buf uint32) {
	gl.BindBuffer(bufferTarget(target), buf)
}

func (b *backend) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufferUsage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(bufferTarget(target), len(data), ptr, bufferUsage(usage))
}

func (b *backend) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (b *backend) VertexAttribPointer(index uint32, size, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, offset)
}

func (b *backend) CreateShader(stage gpu.ShaderStage) uint32 {
	if stage == gpu.StageFragment {
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	}
	return gl.CreateShader(gl.VERTEX_SHADER)
}

func (b *backend) CompileShader(shader uint32, source string) (bool, string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		return false, infoLog(logLength, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLength, nil, buf)
		})
	}
	return true, ""
}

func (b *backend) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (b *backend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (b *backend) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (b *backend) LinkProgram(program uint32) (bool, string) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		return false, infoLog(logLength, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLength, nil, buf)
		})
	}
	return true, ""
}

func (b *backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (b *backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (b *backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *backend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *backend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *backend) Uniform2f(location int32, v mgl32.Vec2) {
	gl.Uniform2f(location, v[0], v[1])
}

func (b *backend) Uniform3f(location int32, v mgl32.Vec3) {
	gl.Uniform3f(location, v[0], v[1], v[2])
}

func (b *backend) UniformMatrix4f(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *backend) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (b *backend) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (b *backend) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (b *backend) BindTexture(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (b *backend) TexParameters(minFilter, magFilter gpu.Filter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(minFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(magFilter))
}

func (b *backend) TexImage2D(format gpu.TextureFormat, width, height int32, pixels []byte) {
	internalFormat, pixelFormat, pixelType := textureFormat(format)
	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, width, height, 0, pixelFormat, pixelType, ptr)
}

func (b *backend) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (b *backend) GenFramebuffer() uint32 {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return fb
}

func (b *backend) DeleteFramebuffer(fb uint32) {
	gl.DeleteFramebuffers(1, &fb)
}

func (b *backend) BindFramebuffer(fb uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
}

func (b *backend) FramebufferTexture2D(attachment gpu.Attachment, tex uint32) {
	point := uint32(gl.COLOR_ATTACHMENT0)
	if attachment == gpu.AttachmentDepthStencil {
		point = gl.DEPTH_STENCIL_ATTACHMENT
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, point, gl.TEXTURE_2D, tex, 0)
}

func (b *backend) FramebufferComplete() bool {
	return gl.CheckFramebufferStatus(gl.FRAMEBUFFER) == gl.FRAMEBUFFER_COMPLETE
}

func (b *backend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *backend) ClearColor(c common.GLColor) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
}

func (b *backend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *backend) DrawElements(count int32) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
}

func (b *backend) Errors() []uint32 {
	var errs []uint32
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		errs = append(errs, code)
	}
	return errs
}

// infoLog allocates a buffer of logLength bytes, lets fill write the driver log into it and
// returns it as a trimmed string.
func infoLog(logLength int32, fill func(buf *uint8)) string {
	if logLength <= 0 {
		return ""
	}
	buf := make([]uint8, logLength+1)
	fill(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n ")
}

func bufferTarget(t gpu.BufferTarget) uint32 {
	if t == gpu.TargetElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u gpu.BufferUsage) uint32 {
	if u == gpu.UsageStatic {
		return gl.STATIC_DRAW
	}
	return gl.DYNAMIC_DRAW
}

func filter(f gpu.Filter) int32 {
	switch f {
	case gpu.FilterLinear:
		return gl.LINEAR
	case gpu.FilterNearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	}
	return gl.NEAREST
}

// textureFormat maps a gpu.TextureFormat to the internal format, pixel format and pixel type
// TexImage2D expects.
func textureFormat(f gpu.TextureFormat) (int32, uint32, uint32) {
	switch f {
	case gpu.FormatRGB:
		return gl.RGB, gl.RGB, gl.UNSIGNED_BYTE
	case gpu.FormatDepthStencil:
		return gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8
	}
	return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE
}
