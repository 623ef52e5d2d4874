package shader

import _ "embed"

// Names of the uniforms every shader handed to the renderer must declare.
const (
	// UniformProjection is the mat4 projection matrix of the camera.
	UniformProjection = "m_projection"

	// UniformCameraPosition is the mat4 camera offset matrix (see transform.CameraOffset).
	UniformCameraPosition = "m_campos"

	// UniformModel is the mat4 model matrix of the drawn object.
	UniformModel = "m_model"

	// UniformSampler is the sampler bound to texture unit 0.
	UniformSampler = "t_sampler"
)

// DrawUniforms lists the contract uniforms in the order the renderer writes them.
var DrawUniforms = []string{UniformProjection, UniformCameraPosition, UniformModel, UniformSampler}

// GLSLDrawUniformsSource declares the contract uniforms. It is injected by
// `// @oxy:include draw_uniforms`.
//
//go:embed assets/draw_uniforms.glsl
var GLSLDrawUniformsSource string
