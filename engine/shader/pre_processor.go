// pre_processor.go implements the Oxy GLSL pre-processor. It scans stage sources for
// single-line `// @oxy:` annotations and replaces them with registered GLSL blocks or
// #define directives before the source reaches the driver.
//
// Supported annotations:
//   - // @oxy:include <name>              injects a registered source block
//   - // @oxy:define <NAME> [default]     emits `#define NAME value`, the value coming from
//     WithDefines or, failing that, the annotation's default
package shader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
)

// annotationPrefix marks an Oxy annotation inside a GLSL line comment.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the action an annotation asks for.
type AnnotationType string

const (
	// AnnotationTypeInclude injects a registered source block at the annotation site.
	//
	// Syntax: // @oxy:include <name>
	AnnotationTypeInclude AnnotationType = "include"

	// AnnotationTypeDefine emits a #define directive.
	//
	// Syntax: // @oxy:define <NAME> [default]
	AnnotationTypeDefine AnnotationType = "define"
)

// Include names accepted by @oxy:include.
const (
	// IncludeVertexInput declares the three vertex attributes of mesh.Vertex.
	IncludeVertexInput = "vertex_input"

	// IncludeDrawUniforms declares the uniforms the renderer writes on every draw.
	IncludeDrawUniforms = "draw_uniforms"
)

// Annotation is a single parsed @oxy: annotation.
type Annotation struct {
	// Type is the annotation kind.
	Type AnnotationType

	// Args holds the arguments following the type.
	Args []string

	// Line is the 1-based source line of the annotation.
	Line int
}

// PreProcessor rewrites GLSL stage sources by expanding @oxy: annotations.
type PreProcessor interface {
	// Process expands every annotation in source.
	//
	// Parameters:
	//   - source: the raw GLSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of the first malformed or unknown annotation
	Process(source string) (string, error)

	// Annotations returns the annotations found by the most recent Process call, in source order.
	//
	// Returns:
	//   - []Annotation: the annotations
	Annotations() []Annotation
}

type preProcessor struct {
	includes    map[string]string
	defines     map[string]string
	annotations []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's include blocks registered.
//
// Parameters:
//   - defines: values for @oxy:define annotations, may be nil
//
// Returns:
//   - PreProcessor: the pre-processor
func NewPreProcessor(defines map[string]string) PreProcessor {
	return &preProcessor{
		includes: map[string]string{
			IncludeVertexInput:  strings.TrimRight(mesh.GLSLVertexInputSource, "\n"),
			IncludeDrawUniforms: strings.TrimRight(GLSLDrawUniformsSource, "\n"),
		},
		defines: maps.Clone(defines),
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.annotations = p.annotations[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}
		p.annotations = append(p.annotations, *a)

		switch a.Type {
		case AnnotationTypeInclude:
			block, ok := p.includes[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @oxy:include %q (known: %s)",
					a.Line, a.Args[0], strings.Join(slices.Sorted(maps.Keys(p.includes)), ", "))
			}
			out = append(out, block)
		case AnnotationTypeDefine:
			name := a.Args[0]
			value, ok := p.defines[name]
			if !ok && len(a.Args) == 2 {
				value, ok = a.Args[1], true
			}
			if !ok {
				return "", fmt.Errorf("line %d: @oxy:define %s has no value and no default", a.Line, name)
			}
			out = append(out, strings.TrimRight("#define "+name+" "+value, " "))
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Annotations() []Annotation {
	return p.annotations
}

// parseAnnotation parses one source line. Lines that are not `//` comments carrying the
// annotation prefix return nil and no error.
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	comment, ok := strings.CutPrefix(strings.TrimSpace(line), "//")
	if !ok {
		return nil, nil
	}
	after, ok := strings.CutPrefix(strings.TrimSpace(comment), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case AnnotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy:include requires exactly one argument", lineNum)
		}
	case AnnotationTypeDefine:
		if len(args) < 2 || len(args) > 3 {
			return nil, fmt.Errorf("line %d: @oxy:define requires a name and an optional default", lineNum)
		}
	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
	return &Annotation{Type: AnnotationType(args[0]), Args: args[1:], Line: lineNum}, nil
}
