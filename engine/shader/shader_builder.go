package shader

import (
	"io/fs"
	"maps"
)

// ShaderBuilderOption is a functional option for configuring a Shader via NewShader.
type ShaderBuilderOption func(*shader)

// WithFS reads stage sources from fsys instead of the OS file system.
//
// Parameters:
//   - fsys: the file system holding `<path>.vert` and `<path>.frag`
//
// Returns:
//   - ShaderBuilderOption: a function that applies the file system option to a shader
func WithFS(fsys fs.FS) ShaderBuilderOption {
	return func(s *shader) {
		s.fsys = fsys
	}
}

// WithSources supplies both stage sources directly. No files are read; the path passed to
// NewShader is only used to label errors and log output.
//
// Parameters:
//   - vertex: the vertex stage GLSL source
//   - fragment: the fragment stage GLSL source
//
// Returns:
//   - ShaderBuilderOption: a function that applies the sources option to a shader
func WithSources(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.sources = &[2]string{vertex, fragment}
	}
}

// WithDefines sets the values substituted for `// @oxy:define NAME` annotations.
// Repeated calls merge, later values win.
//
// Parameters:
//   - defines: name to value
//
// Returns:
//   - ShaderBuilderOption: a function that applies the defines option to a shader
func WithDefines(defines map[string]string) ShaderBuilderOption {
	return func(s *shader) {
		if s.defines == nil {
			s.defines = make(map[string]string, len(defines))
		}
		maps.Copy(s.defines, defines)
	}
}
