// Package gpu defines the graphics command surface the engine issues its work through.
// Every GPU-facing package talks to a Backend instead of a driver binding directly, so the
// bind/draw/unbind protocol can be replayed and asserted without a graphics context.
package gpu

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultFramebuffer is the handle of the window's own framebuffer.
const DefaultFramebuffer uint32 = 0

// InvalidLocation is the location a driver reports for a uniform the program does not declare.
const InvalidLocation int32 = -1

// Backend is the set of OpenGL-shaped commands the engine relies on.
// Implementations are not safe for concurrent use; all calls must happen on the thread that
// owns the graphics context.
type Backend interface {
	// GenVertexArray allocates a vertex array object.
	//
	// Returns:
	//   - uint32: the new vertex array handle
	GenVertexArray() uint32

	// DeleteVertexArray releases a vertex array object.
	//
	// Parameters:
	//   - vao: the handle to release
	DeleteVertexArray(vao uint32)

	// BindVertexArray binds a vertex array object, or unbinds with 0.
	//
	// Parameters:
	//   - vao: the handle to bind
	BindVertexArray(vao uint32)

	// GenBuffer allocates a buffer object.
	//
	// Returns:
	//   - uint32: the new buffer handle
	GenBuffer() uint32

	// DeleteBuffer releases a buffer object.
	//
	// Parameters:
	//   - buf: the handle to release
	DeleteBuffer(buf uint32)

	// BindBuffer binds a buffer to the given target, or unbinds with 0.
	//
	// Parameters:
	//   - target: the binding point
	//   - buf: the handle to bind
	BindBuffer(target BufferTarget, buf uint32)

	// BufferData replaces the full contents of the buffer bound to target.
	//
	// Parameters:
	//   - target: the binding point whose buffer receives the data
	//   - data: the bytes to upload (may be empty)
	//   - usage: the driver usage hint
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	// EnableVertexAttribArray enables a vertex attribute on the bound vertex array.
	//
	// Parameters:
	//   - index: the attribute location
	EnableVertexAttribArray(index uint32)

	// VertexAttribPointer describes a float vertex attribute inside the bound array buffer.
	//
	// Parameters:
	//   - index: the attribute location
	//   - size: the number of float components
	//   - stride: the byte distance between consecutive vertices
	//   - offset: the byte offset of the attribute inside a vertex
	VertexAttribPointer(index uint32, size, stride int32, offset uintptr)

	// CreateShader allocates a shader object for one pipeline stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//
	// Returns:
	//   - uint32: the new shader handle
	CreateShader(stage ShaderStage) uint32

	// CompileShader uploads source to a shader object and compiles it.
	//
	// Parameters:
	//   - shader: the shader handle
	//   - source: the GLSL source
	//
	// Returns:
	//   - bool: true if compilation succeeded
	//   - string: the driver's info log (empty on success for most drivers)
	CompileShader(shader uint32, source string) (bool, string)

	// DeleteShader releases a shader object.
	//
	// Parameters:
	//   - shader: the handle to release
	DeleteShader(shader uint32)

	// CreateProgram allocates a program object.
	//
	// Returns:
	//   - uint32: the new program handle
	CreateProgram() uint32

	// AttachShader attaches a compiled shader to a program.
	//
	// Parameters:
	//   - program: the program handle
	//   - shader: the shader handle
	AttachShader(program, shader uint32)

	// LinkProgram links a program from its attached shaders.
	//
	// Parameters:
	//   - program: the program handle
	//
	// Returns:
	//   - bool: true if linking succeeded
	//   - string: the driver's info log
	LinkProgram(program uint32) (bool, string)

	// DeleteProgram releases a program object.
	//
	// Parameters:
	//   - program: the handle to release
	DeleteProgram(program uint32)

	// UseProgram makes a program current, or clears the current program with 0.
	//
	// Parameters:
	//   - program: the handle to bind
	UseProgram(program uint32)

	// UniformLocation asks the driver for the location of a named uniform.
	//
	// Parameters:
	//   - program: the program to query
	//   - name: the uniform name as declared in GLSL
	//
	// Returns:
	//   - int32: the location, or InvalidLocation if the program has no such active uniform
	UniformLocation(program uint32, name string) int32

	// Uniform1f writes a float uniform of the current program.
	Uniform1f(location int32, v float32)

	// Uniform1i writes an int (or sampler) uniform of the current program.
	Uniform1i(location int32, v int32)

	// Uniform2f writes a vec2 uniform of the current program.
	Uniform2f(location int32, v mgl32.Vec2)

	// Uniform3f writes a vec3 uniform of the current program.
	Uniform3f(location int32, v mgl32.Vec3)

	// UniformMatrix4f writes a column-major mat4 uniform of the current program.
	UniformMatrix4f(location int32, m mgl32.Mat4)

	// GenTexture allocates a texture object.
	//
	// Returns:
	//   - uint32: the new texture handle
	GenTexture() uint32

	// DeleteTexture releases a texture object.
	//
	// Parameters:
	//   - tex: the handle to release
	DeleteTexture(tex uint32)

	// ActiveTexture selects the texture unit subsequent BindTexture calls affect.
	//
	// Parameters:
	//   - unit: the zero-based texture unit
	ActiveTexture(unit uint32)

	// BindTexture binds a 2D texture to the active unit, or unbinds with 0.
	//
	// Parameters:
	//   - tex: the handle to bind
	BindTexture(tex uint32)

	// TexParameters sets repeat wrapping and the given filters on the bound 2D texture.
	//
	// Parameters:
	//   - minFilter: the minification filter
	//   - magFilter: the magnification filter
	TexParameters(minFilter, magFilter Filter)

	// TexImage2D (re)allocates level 0 of the bound 2D texture.
	//
	// Parameters:
	//   - format: the texel format
	//   - width, height: the dimensions in texels
	//   - pixels: the texel data, or nil to allocate uninitialized storage
	TexImage2D(format TextureFormat, width, height int32, pixels []byte)

	// GenerateMipmap builds the mipmap chain of the bound 2D texture.
	GenerateMipmap()

	// GenFramebuffer allocates a framebuffer object.
	//
	// Returns:
	//   - uint32: the new framebuffer handle
	GenFramebuffer() uint32

	// DeleteFramebuffer releases a framebuffer object.
	//
	// Parameters:
	//   - fb: the handle to release
	DeleteFramebuffer(fb uint32)

	// BindFramebuffer binds a framebuffer as the draw and read target.
	// Binding DefaultFramebuffer targets the window.
	//
	// Parameters:
	//   - fb: the handle to bind
	BindFramebuffer(fb uint32)

	// FramebufferTexture2D attaches a 2D texture to the bound framebuffer.
	//
	// Parameters:
	//   - attachment: the attachment point
	//   - tex: the texture handle
	FramebufferTexture2D(attachment Attachment, tex uint32)

	// FramebufferComplete reports whether the bound framebuffer is complete.
	//
	// Returns:
	//   - bool: true if complete
	FramebufferComplete() bool

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int32)

	// ClearColor sets the color used by Clear.
	ClearColor(c common.GLColor)

	// Clear clears the color and depth buffers of the bound framebuffer.
	Clear()

	// DrawElements issues an indexed triangle draw with uint32 indices from the bound element buffer.
	//
	// Parameters:
	//   - count: the number of indices to draw
	DrawElements(count int32)

	// Errors drains and returns every pending driver error code.
	//
	// Returns:
	//   - []uint32: the pending error codes, nil if none
	Errors() []uint32
}

// LogErrors drains the backend's pending errors and logs each one at warn level.
//
// Parameters:
//   - b: the backend to drain
//   - op: a short description of the operation that preceded the check
//
// Returns:
//   - int: the number of errors drained
func LogErrors(b Backend, op string) int {
	errs := b.Errors()
	for _, code := range errs {
		common.Logger().Warn("opengl error", "op", op, "code", code)
	}
	return len(errs)
}
