// Package gputest provides a recording gpu.Backend for tests. It keeps enough of an OpenGL
// context's state (bindings, buffer contents, program uniforms) to assert what a caller did
// without a driver.
package gputest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileErrorMarker makes CompileShader fail for any source containing it.
const CompileErrorMarker = "#error"

// LinkErrorMarker makes LinkProgram fail when any attached source contains it.
const LinkErrorMarker = "#link_error"

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

// Call is a single recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// State is the binding state of the fake context.
type State struct {
	Program       uint32
	VertexArray   uint32
	ArrayBuffer   uint32
	ElementBuffer uint32
	Framebuffer   uint32
	ActiveUnit    uint32
	Textures      map[uint32]uint32
	Viewport      [4]int32
	ClearColor    common.GLColor
}

type shaderObject struct {
	stage    gpu.ShaderStage
	source   string
	compiled bool
}

type programObject struct {
	attached []uint32
	linked   bool
	uniforms map[string]int32
}

// Recorder is a gpu.Backend that records every call and simulates binding state.
type Recorder struct {
	// Calls holds every call in issue order.
	Calls []Call

	// State is the current binding state.
	State State

	// Buffers holds the last contents uploaded to each buffer handle.
	Buffers map[uint32][]byte

	// Usages holds the last usage hint passed for each buffer handle.
	Usages map[uint32]gpu.BufferUsage

	// Uniforms holds the last value written to each location, per program.
	Uniforms map[uint32]map[int32]any

	// LocationQueries counts UniformLocation calls per uniform name.
	LocationQueries map[string]int

	// TextureSizes holds the last dimensions allocated for each texture handle.
	TextureSizes map[uint32][2]int32

	// PendingErrors is returned and cleared by the next Errors call.
	PendingErrors []uint32

	// IncompleteFramebuffers makes FramebufferComplete report false.
	IncompleteFramebuffers bool

	next     uint32
	live     map[uint32]string
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
}

var _ gpu.Backend = &Recorder{}

// NewRecorder creates an empty Recorder with default bindings.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{
		State:           State{Textures: make(map[uint32]uint32)},
		Buffers:         make(map[uint32][]byte),
		Usages:          make(map[uint32]gpu.BufferUsage),
		Uniforms:        make(map[uint32]map[int32]any),
		LocationQueries: make(map[string]int),
		TextureSizes:    make(map[uint32][2]int32),
		live:            make(map[uint32]string),
		shaders:         make(map[uint32]*shaderObject),
		programs:        make(map[uint32]*programObject),
	}
}

// Reset forgets recorded calls while keeping objects and state.
func (r *Recorder) Reset() {
	r.Calls = nil
}

// Names returns the names of the recorded calls in order.
//
// Returns:
//   - []string: the call names
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many calls with the given name were recorded.
//
// Parameters:
//   - name: the call name
//
// Returns:
//   - int: the number of matching calls
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls with the given name.
//
// Parameters:
//   - name: the call name
//
// Returns:
//   - []Call: the matching calls in order
func (r *Recorder) Find(name string) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Live returns the number of allocated, not yet deleted objects of a kind
// ("vertex_array", "buffer", "shader", "program", "texture", "framebuffer").
// An empty kind counts every live object.
//
// Parameters:
//   - kind: the object kind
//
// Returns:
//   - int: the number of live objects
func (r *Recorder) Live(kind string) int {
	n := 0
	for _, k := range r.live {
		if kind == "" || k == kind {
			n++
		}
	}
	return n
}

// UniformValue returns the last value written to a named uniform of a program.
//
// Parameters:
//   - program: the program handle
//   - name: the uniform name
//
// Returns:
//   - any: the value
//   - bool: false if the program has no such uniform or it was never written
func (r *Recorder) UniformValue(program uint32, name string) (any, bool) {
	p, ok := r.programs[program]
	if !ok {
		return nil, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return nil, false
	}
	v, ok := r.Uniforms[program][loc]
	return v, ok
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) alloc(kind string) uint32 {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) release(h uint32) {
	delete(r.live, h)
}

func (r *Recorder) GenVertexArray() uint32 {
	h := r.alloc("vertex_array")
	r.record("GenVertexArray", h)
	return h
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	r.record("DeleteVertexArray", vao)
	r.release(vao)
	if r.State.VertexArray == vao {
		r.State.VertexArray = 0
	}
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.record("BindVertexArray", vao)
	r.State.VertexArray = vao
}

func (r *Recorder) GenBuffer() uint32 {
	h := r.alloc("buffer")
	r.record("GenBuffer", h)
	return h
}

func (r *Recorder) DeleteBuffer(buf uint32) {
	r.record("DeleteBuffer", buf)
	r.release(buf)
	delete(r.Buffers, buf)
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, buf uint32) {
	r.record("BindBuffer", target, buf)
	if target == gpu.TargetElementArrayBuffer {
		r.State.ElementBuffer = buf
		return
	}
	r.State.ArrayBuffer = buf
}

func (r *Recorder) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufferUsage) {
	r.record("BufferData", target, len(data), usage)
	buf := r.State.ArrayBuffer
	if target == gpu.TargetElementArrayBuffer {
		buf = r.State.ElementBuffer
	}
	r.Buffers[buf] = slices.Clone(data)
	r.Usages[buf] = usage
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size, stride int32, offset uintptr) {
	r.record("VertexAttribPointer", index, size, stride, offset)
}

func (r *Recorder) CreateShader(stage gpu.ShaderStage) uint32 {
	h := r.alloc("shader")
	r.shaders[h] = &shaderObject{stage: stage}
	r.record("CreateShader", stage, h)
	return h
}

func (r *Recorder) CompileShader(shader uint32, source string) (bool, string) {
	r.record("CompileShader", shader)
	s, ok := r.shaders[shader]
	if !ok {
		return false, "invalid shader handle"
	}
	s.source = source
	if idx := strings.Index(source, CompileErrorMarker); idx >= 0 {
		line := strings.Count(source[:idx], "\n") + 1
		msg := strings.TrimSpace(strings.SplitN(source[idx+len(CompileErrorMarker):], "\n", 2)[0])
		return false, fmt.Sprintf("0:%d: error: %s", line, msg)
	}
	s.compiled = true
	return true, ""
}

func (r *Recorder) DeleteShader(shader uint32) {
	r.record("DeleteShader", shader)
	r.release(shader)
}

func (r *Recorder) CreateProgram() uint32 {
	h := r.alloc("program")
	r.programs[h] = &programObject{uniforms: make(map[string]int32)}
	r.record("CreateProgram", h)
	return h
}

func (r *Recorder) AttachShader(program, shader uint32) {
	r.record("AttachShader", program, shader)
	if p, ok := r.programs[program]; ok {
		p.attached = append(p.attached, shader)
	}
}

// LinkProgram links when exactly one compiled vertex and one compiled fragment stage are
// attached. Active uniforms are taken from the `uniform` declarations of the attached sources
// and numbered in sorted name order.
func (r *Recorder) LinkProgram(program uint32) (bool, string) {
	r.record("LinkProgram", program)
	p, ok := r.programs[program]
	if !ok {
		return false, "invalid program handle"
	}
	var names []string
	stages := map[gpu.ShaderStage]bool{}
	for _, h := range p.attached {
		s, ok := r.shaders[h]
		if !ok || !s.compiled {
			return false, "attached shader is not compiled"
		}
		if strings.Contains(s.source, LinkErrorMarker) {
			return false, "error: linking failed"
		}
		stages[s.stage] = true
		for _, m := range uniformDecl.FindAllStringSubmatch(s.source, -1) {
			if !slices.Contains(names, m[1]) {
				names = append(names, m[1])
			}
		}
	}
	if !stages[gpu.StageVertex] || !stages[gpu.StageFragment] {
		return false, "error: program requires a vertex and a fragment stage"
	}
	slices.Sort(names)
	for i, n := range names {
		p.uniforms[n] = int32(i)
	}
	p.linked = true
	return true, ""
}

func (r *Recorder) DeleteProgram(program uint32) {
	r.record("DeleteProgram", program)
	r.release(program)
	delete(r.Uniforms, program)
	if r.State.Program == program {
		r.State.Program = 0
	}
}

func (r *Recorder) UseProgram(program uint32) {
	r.record("UseProgram", program)
	r.State.Program = program
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.record("UniformLocation", program, name)
	r.LocationQueries[name]++
	p, ok := r.programs[program]
	if !ok || !p.linked {
		return gpu.InvalidLocation
	}
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return gpu.InvalidLocation
}

func (r *Recorder) setUniform(name string, location int32, v any) {
	r.record(name, location, v)
	if r.Uniforms[r.State.Program] == nil {
		r.Uniforms[r.State.Program] = make(map[int32]any)
	}
	r.Uniforms[r.State.Program][location] = v
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.setUniform("Uniform1f", location, v)
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.setUniform("Uniform1i", location, v)
}

func (r *Recorder) Uniform2f(location int32, v mgl32.Vec2) {
	r.setUniform("Uniform2f", location, v)
}

func (r *Recorder) Uniform3f(location int32, v mgl32.Vec3) {
	r.setUniform("Uniform3f", location, v)
}

func (r *Recorder) UniformMatrix4f(location int32, m mgl32.Mat4) {
	r.setUniform("UniformMatrix4f", location, m)
}

func (r *Recorder) GenTexture() uint32 {
	h := r.alloc("texture")
	r.record("GenTexture", h)
	return h
}

func (r *Recorder) DeleteTexture(tex uint32) {
	r.record("DeleteTexture", tex)
	r.release(tex)
	delete(r.TextureSizes, tex)
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
	r.State.ActiveUnit = unit
}

func (r *Recorder) BindTexture(tex uint32) {
	r.record("BindTexture", tex)
	r.State.Textures[r.State.ActiveUnit] = tex
}

func (r *Recorder) TexParameters(minFilter, magFilter gpu.Filter) {
	r.record("TexParameters", minFilter, magFilter)
}

func (r *Recorder) TexImage2D(format gpu.TextureFormat, width, height int32, pixels []byte) {
	r.record("TexImage2D", format, width, height, len(pixels))
	r.TextureSizes[r.State.Textures[r.State.ActiveUnit]] = [2]int32{width, height}
}

func (r *Recorder) GenerateMipmap() {
	r.record("GenerateMipmap")
}

func (r *Recorder) GenFramebuffer() uint32 {
	h := r.alloc("framebuffer")
	r.record("GenFramebuffer", h)
	return h
}

func (r *Recorder) DeleteFramebuffer(fb uint32) {
	r.record("DeleteFramebuffer", fb)
	r.release(fb)
	if r.State.Framebuffer == fb {
		r.State.Framebuffer = gpu.DefaultFramebuffer
	}
}

func (r *Recorder) BindFramebuffer(fb uint32) {
	r.record("BindFramebuffer", fb)
	r.State.Framebuffer = fb
}

func (r *Recorder) FramebufferTexture2D(attachment gpu.Attachment, tex uint32) {
	r.record("FramebufferTexture2D", attachment, tex)
}

func (r *Recorder) FramebufferComplete() bool {
	r.record("FramebufferComplete")
	return !r.IncompleteFramebuffers
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
	r.State.Viewport = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(c common.GLColor) {
	r.record("ClearColor", c)
	r.State.ClearColor = c
}

func (r *Recorder) Clear() {
	r.record("Clear")
}

func (r *Recorder) DrawElements(count int32) {
	r.record("DrawElements", count)
}

func (r *Recorder) Errors() []uint32 {
	errs := r.PendingErrors
	r.PendingErrors = nil
	return errs
}
