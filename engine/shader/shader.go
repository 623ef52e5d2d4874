package shader

import (
	"errors"
	"io/fs"
	"os"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Stage file extensions appended to the logical shader path.
const (
	VertexExtension   = ".vert"
	FragmentExtension = ".frag"
)

// shader is the implementation of the Shader interface.
type shader struct {
	backend  gpu.Backend
	path     string
	program  uint32
	uniforms map[string]int32

	// build inputs, only read by NewShader
	fsys    fs.FS
	sources *[2]string
	defines map[string]string
}

// Shader is a linked GPU program plus a cache of the uniform locations it has resolved.
// The cache only grows; it is dropped when the shader is deleted.
type Shader interface {
	// Path returns the logical path the shader was built from, without stage extension.
	//
	// Returns:
	//   - string: the path
	Path() string

	// Program returns the program handle, 0 once deleted.
	//
	// Returns:
	//   - uint32: the program handle
	Program() uint32

	// Bind makes the program current.
	Bind()

	// Resolve binds the program and returns the location of a uniform. Cached locations are
	// returned without a driver query. A uniform the program does not declare is an error of
	// kind KindUnknownUniform and is not cached, so every later lookup queries again.
	//
	// Parameters:
	//   - name: the uniform name as declared in GLSL
	//
	// Returns:
	//   - int32: the location, gpu.InvalidLocation on error
	//   - error: a *Error of kind KindUnknownUniform
	Resolve(name string) (int32, error)

	// CachedUniforms returns the number of cached uniform locations.
	//
	// Returns:
	//   - int: the cache size
	CachedUniforms() int

	// SetFloat binds the program, resolves name and writes v.
	// Nothing is written if the uniform cannot be resolved.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	//
	// Returns:
	//   - error: a *Error of kind KindUnknownUniform
	SetFloat(name string, v float32) error

	// SetInt binds the program, resolves name and writes v. Samplers are set with SetInt.
	// Nothing is written if the uniform cannot be resolved.
	//
	// Parameters:
	//   - name: the uniform name
	//   - v: the value
	//
	// Returns:
	//   - error: a *Error of kind KindUnknownUniform
	SetInt(name string, v int32) error

	// SetVec2 is SetFloat for a vec2 uniform.
	SetVec2(name string, v mgl32.Vec2) error

	// SetVec3 is SetFloat for a vec3 uniform.
	SetVec3(name string, v mgl32.Vec3) error

	// SetMat4 is SetFloat for a mat4 uniform.
	SetMat4(name string, m mgl32.Mat4) error

	// Delete releases the program and clears the uniform cache. Repeated calls are no-ops.
	Delete()
}

var _ Shader = &shader{}

// NewShader builds a program from `<path>.vert` and `<path>.frag`. Both sources go through the
// pre-processor, are compiled and linked. Every GPU object created before a failure is
// released before the error is returned.
//
// Parameters:
//   - backend: the backend the program is created on
//   - path: the logical shader path
//   - options: functional options to configure the shader
//
// Returns:
//   - Shader: the linked shader
//   - error: a *Error of kind KindNotFound, KindCompile or KindLink
func NewShader(backend gpu.Backend, path string, options ...ShaderBuilderOption) (Shader, error) {
	if backend == nil {
		panic("shader: NewShader requires a non-nil backend")
	}
	s := &shader{
		backend:  backend,
		path:     path,
		uniforms: make(map[string]int32),
	}
	for _, opt := range options {
		opt(s)
	}

	var sources [2]string
	if s.sources != nil {
		sources = *s.sources
	} else {
		var err error
		if sources[0], err = s.read(gpu.StageVertex); err != nil {
			return nil, err
		}
		if sources[1], err = s.read(gpu.StageFragment); err != nil {
			return nil, err
		}
	}

	pp := NewPreProcessor(s.defines)
	for i, stage := range []gpu.ShaderStage{gpu.StageVertex, gpu.StageFragment} {
		out, err := pp.Process(sources[i])
		if err != nil {
			return nil, &Error{Kind: KindCompile, Path: path, Stage: stage, Message: err.Error(), Err: err}
		}
		sources[i] = out
	}

	vs, err := s.compile(gpu.StageVertex, sources[0])
	if err != nil {
		return nil, err
	}
	frag, err := s.compile(gpu.StageFragment, sources[1])
	if err != nil {
		backend.DeleteShader(vs)
		return nil, err
	}

	program := backend.CreateProgram()
	backend.AttachShader(program, vs)
	backend.AttachShader(program, frag)
	ok, log := backend.LinkProgram(program)
	backend.DeleteShader(vs)
	backend.DeleteShader(frag)
	if !ok {
		backend.DeleteProgram(program)
		return nil, &Error{Kind: KindLink, Path: path, Message: log}
	}
	s.program = program

	gpu.LogErrors(backend, "shader build")
	common.Logger().Info("shader built", "path", path, "program", program)
	return s, nil
}

func (s *shader) read(stage gpu.ShaderStage) (string, error) {
	name := s.path + FragmentExtension
	if stage == gpu.StageVertex {
		name = s.path + VertexExtension
	}
	var (
		data []byte
		err  error
	)
	if s.fsys != nil {
		data, err = fs.ReadFile(s.fsys, name)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", &Error{Kind: KindNotFound, Path: s.path, Stage: stage, Message: name, Err: err}
	}
	return string(data), nil
}

func (s *shader) compile(stage gpu.ShaderStage, source string) (uint32, error) {
	h := s.backend.CreateShader(stage)
	if ok, log := s.backend.CompileShader(h, source); !ok {
		s.backend.DeleteShader(h)
		return 0, &Error{Kind: KindCompile, Path: s.path, Stage: stage, Message: log}
	}
	return h, nil
}

func (s *shader) Path() string {
	return s.path
}

func (s *shader) Program() uint32 {
	return s.program
}

func (s *shader) Bind() {
	s.backend.UseProgram(s.program)
}

func (s *shader) Resolve(name string) (int32, error) {
	if s.program == 0 {
		return gpu.InvalidLocation, &Error{Kind: KindUnknownUniform, Path: s.path, Uniform: name, Message: "shader deleted"}
	}
	s.Bind()
	if loc, ok := s.uniforms[name]; ok {
		return loc, nil
	}
	loc := s.backend.UniformLocation(s.program, name)
	if loc < 0 {
		return gpu.InvalidLocation, &Error{Kind: KindUnknownUniform, Path: s.path, Uniform: name}
	}
	s.uniforms[name] = loc
	return loc, nil
}

func (s *shader) CachedUniforms() int {
	return len(s.uniforms)
}

func (s *shader) SetFloat(name string, v float32) error {
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	s.backend.Uniform1f(loc, v)
	return nil
}

func (s *shader) SetInt(name string, v int32) error {
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	s.backend.Uniform1i(loc, v)
	return nil
}

func (s *shader) SetVec2(name string, v mgl32.Vec2) error {
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	s.backend.Uniform2f(loc, v)
	return nil
}

func (s *shader) SetVec3(name string, v mgl32.Vec3) error {
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	s.backend.Uniform3f(loc, v)
	return nil
}

func (s *shader) SetMat4(name string, m mgl32.Mat4) error {
	loc, err := s.Resolve(name)
	if err != nil {
		return err
	}
	s.backend.UniformMatrix4f(loc, m)
	return nil
}

func (s *shader) Delete() {
	if s.program == 0 {
		return
	}
	s.backend.DeleteProgram(s.program)
	s.program = 0
	clear(s.uniforms)
}

// IsUnknownUniform reports whether err is an unknown-uniform failure and returns its name.
//
// Parameters:
//   - err: the error to inspect
//
// Returns:
//   - string: the uniform name
//   - bool: true if err is a *Error of kind KindUnknownUniform
func IsUnknownUniform(err error) (string, bool) {
	var se *Error
	if errors.As(err, &se) && se.Kind == KindUnknownUniform {
		return se.Uniform, true
	}
	return "", false
}
