package renderer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
	"github.com/Carmen-Shannon/oxy-gl/engine/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// SamplerUnit is the texture unit Draw binds the texture to and writes into t_sampler.
const SamplerUnit = 0

// Stats counts draw activity since creation or the last ResetStats.
type Stats struct {
	// DrawCalls is the number of draws that reached DrawElements.
	DrawCalls uint64

	// Indices is the total number of indices submitted.
	Indices uint64

	// FailedDraws is the number of draws that returned an error.
	FailedDraws uint64

	// Skipped is the number of draws of invisible meshes.
	Skipped uint64
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backend gpu.Backend
	logger  *slog.Logger
	onDraw  func(indices int)
	stats   Stats
}

// Renderer issues draw calls with a fixed bind, set-uniforms, draw, unbind protocol.
// Every shader it draws with must declare the uniforms in shader.DrawUniforms.
type Renderer interface {
	// Draw renders one mesh through a camera:
	//
	//  1. fail with KindShaderMissing, KindMeshMissing or KindCameraMissing before any GPU call
	//  2. bind the shader program
	//  3. set m_projection (identity for a default camera)
	//  4. set m_campos to transform.CameraOffset of the camera transform
	//  5. set m_model to model.ComposeModel(), identity for a nil model
	//  6. set t_sampler to texture unit 0
	//  7. bind the camera target, set the viewport, bind tex (or 0) to unit 0, bind the mesh
	//     vertex array, draw every index, unbind the vertex array and the target
	//
	// A uniform the shader lacks stops the sequence with KindUnknownUniform naming it; the
	// program stays bound and nothing else is bound. An invisible mesh is skipped without
	// GPU calls.
	//
	// Parameters:
	//   - m: the mesh
	//   - s: the shader
	//   - cam: the camera
	//   - model: the object transform, may be nil
	//   - tex: the texture, may be nil
	//
	// Returns:
	//   - error: a *DrawError, nil on success
	Draw(m mesh.Mesh, s shader.Shader, cam camera.Camera, model transform.Composer, tex texture.Texture) error

	// Clear clears the camera's render target to its clear color and resets the depth buffer.
	//
	// Parameters:
	//   - cam: the camera whose target is cleared
	Clear(cam camera.Camera)

	// Stats returns the counters accumulated since the last ResetStats.
	//
	// Returns:
	//   - Stats: the counters
	Stats() Stats

	// ResetStats zeroes the counters.
	ResetStats()

	// Backend returns the backend draws are issued on.
	//
	// Returns:
	//   - gpu.Backend: the backend
	Backend() gpu.Backend
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer issuing its work on backend.
//
// Parameters:
//   - backend: the backend
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(backend gpu.Backend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRenderer requires a non-nil backend")
	}
	r := &renderer{
		backend: backend,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return common.Logger()
}

func (r *renderer) fail(err *DrawError) error {
	r.stats.FailedDraws++
	r.log().Debug("draw failed", "kind", err.Kind, "uniform", err.Uniform)
	return err
}

func (r *renderer) Draw(m mesh.Mesh, s shader.Shader, cam camera.Camera, model transform.Composer, tex texture.Texture) error {
	if s == nil || s.Program() == 0 {
		return r.fail(&DrawError{Kind: KindShaderMissing})
	}
	if m == nil || !m.Active() {
		return r.fail(&DrawError{Kind: KindMeshMissing})
	}
	if cam == nil {
		return r.fail(&DrawError{Kind: KindCameraMissing})
	}
	if !m.Visible() {
		r.stats.Skipped++
		return nil
	}

	s.Bind()

	projection := mgl32.Ident4()
	if cam.Kind() != camera.KindDefault {
		projection = cam.ProjectionMatrix()
	}
	if err := s.SetMat4(shader.UniformProjection, projection); err != nil {
		return r.fail(&DrawError{Kind: KindUnknownUniform, Uniform: shader.UniformProjection, Err: err})
	}
	if err := s.SetMat4(shader.UniformCameraPosition, transform.CameraOffset(cam.Transform())); err != nil {
		return r.fail(&DrawError{Kind: KindUnknownUniform, Uniform: shader.UniformCameraPosition, Err: err})
	}
	modelMatrix := mgl32.Ident4()
	if model != nil {
		modelMatrix = model.ComposeModel()
	}
	if err := s.SetMat4(shader.UniformModel, modelMatrix); err != nil {
		return r.fail(&DrawError{Kind: KindUnknownUniform, Uniform: shader.UniformModel, Err: err})
	}
	if err := s.SetInt(shader.UniformSampler, SamplerUnit); err != nil {
		return r.fail(&DrawError{Kind: KindUnknownUniform, Uniform: shader.UniformSampler, Err: err})
	}

	width, height := cam.Viewport()
	r.backend.BindFramebuffer(cam.Framebuffer())
	r.backend.Viewport(0, 0, width, height)
	r.backend.ActiveTexture(SamplerUnit)
	var handle uint32
	if tex != nil {
		handle = tex.Handle()
	}
	r.backend.BindTexture(handle)
	r.backend.BindVertexArray(m.VertexArray())
	count := m.IndexCount()
	r.backend.DrawElements(int32(count))
	r.backend.BindVertexArray(0)
	r.backend.BindFramebuffer(gpu.DefaultFramebuffer)

	r.stats.DrawCalls++
	r.stats.Indices += uint64(count)
	if r.onDraw != nil {
		r.onDraw(count)
	}
	return nil
}

func (r *renderer) Clear(cam camera.Camera) {
	if cam == nil {
		return
	}
	width, height := cam.Viewport()
	r.backend.BindFramebuffer(cam.Framebuffer())
	r.backend.Viewport(0, 0, width, height)
	r.backend.ClearColor(cam.ClearColor().GL())
	r.backend.Clear()
	r.backend.BindFramebuffer(gpu.DefaultFramebuffer)
}

func (r *renderer) Stats() Stats {
	return r.stats
}

func (r *renderer) ResetStats() {
	r.stats = Stats{}
}

func (r *renderer) Backend() gpu.Backend {
	return r.backend
}
