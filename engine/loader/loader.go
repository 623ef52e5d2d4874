// Package loader reads triangle geometry from glTF 2.0 files (.gltf with external or embedded
// buffers, or binary .glb) into mesh vertices.
//
// Only POSITION, TEXCOORD_0 and COLOR_0 are read. Node transforms, materials, skins and
// animations are ignored; every primitive is returned in its mesh's local space.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// Primitive is one glTF primitive expanded into a triangle list: every three vertices form
// a triangle, in the order the file's indices give them.
type Primitive struct {
	Name     string
	Vertices []mesh.Vertex
}

// loader is the implementation of the Loader interface.
type loader struct {
	fsys  fs.FS
	flipV bool
	color common.RGBA
}

// Loader reads glTF geometry and builds meshes from it.
type Loader interface {
	// Read parses the file and returns every triangle primitive of every mesh, in document order.
	//
	// Parameters:
	//   - path: the .gltf or .glb file
	//
	// Returns:
	//   - []Primitive: the primitives
	//   - error: an error if the file cannot be read or uses an unsupported feature
	Read(path string) ([]Primitive, error)

	// Load reads the file and submits all of its primitives to one new mesh labelled with the
	// file name. Shared corners deduplicate through the mesh's vertex cache.
	//
	// Parameters:
	//   - backend: the GPU backend that owns the mesh
	//   - path: the .gltf or .glb file
	//
	// Returns:
	//   - mesh.Mesh: the uploaded mesh
	//   - error: an error from Read, or for a file with no triangles
	Load(backend gpu.Backend, path string) (mesh.Mesh, error)
}

var _ Loader = &loader{}

// NewLoader creates a Loader. By default it reads from the OS filesystem, flips V so glTF's
// top-left texture origin matches textures uploaded with a vertical flip, and colors
// vertices without COLOR_0 white.
//
// Parameters:
//   - options: functional options to configure the loader
//
// Returns:
//   - Loader: the loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		flipV: true,
		color: common.White,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *loader) Read(name string) ([]Primitive, error) {
	var (
		data []byte
		err  error
		dir  string
	)
	if l.fsys == nil {
		data, err = os.ReadFile(name)
		dir = filepath.Dir(name)
	} else {
		data, err = fs.ReadFile(l.fsys, name)
		dir = path.Dir(name)
	}
	if err != nil {
		return nil, fmt.Errorf("loader %q: %w", name, err)
	}

	p := newGLTFParser(l.fsys, dir)
	if err := p.parse(data); err != nil {
		return nil, fmt.Errorf("loader %q: %w", name, err)
	}

	var prims []Primitive
	for mi, m := range p.doc.Meshes {
		for pi := range m.Primitives {
			prim, err := l.extract(p, &m.Primitives[pi])
			if err != nil {
				return nil, fmt.Errorf("loader %q: mesh %d primitive %d: %w", name, mi, pi, err)
			}
			prim.Name = primitiveName(m.Name, mi, pi)
			prims = append(prims, prim)
		}
	}
	common.Logger().Info("loader: read glTF", "path", name, "generator", p.doc.Asset.Generator, "primitives", len(prims))
	return prims, nil
}

func (l *loader) Load(backend gpu.Backend, name string) (mesh.Mesh, error) {
	prims, err := l.Read(name)
	if err != nil {
		return nil, err
	}
	var verts []mesh.Vertex
	for _, p := range prims {
		verts = append(verts, p.Vertices...)
	}
	if len(verts) == 0 {
		return nil, fmt.Errorf("loader %q: no triangles", name)
	}
	return mesh.NewMesh(backend, mesh.WithLabel(path.Base(filepath.ToSlash(name))), mesh.WithVertices(verts...)), nil
}

// extract expands one primitive into a triangle list.
func (l *loader) extract(p *gltfParser, prim *gltfPrimitive) (Primitive, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return Primitive{}, fmt.Errorf("%w: primitive mode %d, only triangles", ErrUnsupported, *prim.Mode)
	}
	posIndex, ok := prim.Attributes[attrPosition]
	if !ok {
		return Primitive{}, fmt.Errorf("%w: primitive has no %s", ErrUnsupported, attrPosition)
	}
	positions, err := p.readFloats(posIndex)
	if err != nil {
		return Primitive{}, fmt.Errorf("%s: %w", attrPosition, err)
	}

	base := make([]mesh.Vertex, len(positions))
	white := l.color.GL()
	for i, pos := range positions {
		base[i] = mesh.Vertex{Position: mgl32.Vec3{pos[0], pos[1], pos[2]}, Color: white}
	}

	if idx, ok := prim.Attributes[attrTexCoord]; ok {
		uvs, err := p.readFloats(idx)
		if err != nil {
			return Primitive{}, fmt.Errorf("%s: %w", attrTexCoord, err)
		}
		for i := 0; i < len(uvs) && i < len(base); i++ {
			v := uvs[i][1]
			if l.flipV {
				v = 1 - v
			}
			base[i].UV = mgl32.Vec2{uvs[i][0], v}
		}
	}

	if idx, ok := prim.Attributes[attrColor]; ok {
		colors, err := p.readFloats(idx)
		if err != nil {
			return Primitive{}, fmt.Errorf("%s: %w", attrColor, err)
		}
		rgb := p.doc.Accessors[idx].Type == gltfAccessorTypeVec3
		for i := 0; i < len(colors) && i < len(base); i++ {
			c := colors[i]
			if rgb {
				c[3] = 1
			}
			base[i].Color = common.GLColor{R: c[0], G: c[1], B: c[2], A: c[3]}
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = p.readIndices(*prim.Indices); err != nil {
			return Primitive{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(base))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	if len(indices)%3 != 0 {
		return Primitive{}, fmt.Errorf("%d indices do not form whole triangles", len(indices))
	}

	out := make([]mesh.Vertex, len(indices))
	for i, idx := range indices {
		if int(idx) >= len(base) {
			return Primitive{}, fmt.Errorf("index %d: %w: %d vertices", idx, ErrOutOfRange, len(base))
		}
		out[i] = base[idx]
	}
	return Primitive{Vertices: out}, nil
}

func primitiveName(meshName string, meshIndex, primIndex int) string {
	if meshName == "" {
		meshName = fmt.Sprintf("mesh_%d", meshIndex)
	}
	if primIndex > 0 {
		return fmt.Sprintf("%s_prim%d", meshName, primIndex)
	}
	return meshName
}
