package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"strings"
)

var (
	// ErrInvalidVersion is returned for documents that are not glTF 2.x.
	ErrInvalidVersion = errors.New("invalid glTF version: must be 2.x")

	// ErrInvalidGLB is returned for malformed binary containers.
	ErrInvalidGLB = errors.New("invalid GLB container")

	// ErrUnsupported is returned for valid glTF features the loader does not read.
	ErrUnsupported = errors.New("unsupported glTF feature")

	// ErrOutOfRange is returned when an index or byte range points outside the document.
	ErrOutOfRange = errors.New("glTF reference out of range")
)

// gltfParser decodes one glTF or GLB document and reads typed data from its accessors.
type gltfParser struct {
	fsys    fs.FS  // nil reads buffers from the OS filesystem
	baseDir string // resolves relative buffer URIs
	doc     *gltfDocument
	bin     []byte
}

func newGLTFParser(fsys fs.FS, baseDir string) *gltfParser {
	return &gltfParser{fsys: fsys, baseDir: baseDir}
}

// parse detects GLB by its magic number and falls back to JSON glTF.
func (p *gltfParser) parse(data []byte) error {
	if len(data) >= 4 && binary.LittleEndian.Uint32(data[:4]) == gltfGLBMagic {
		return p.parseGLB(data)
	}
	return p.parseJSON(data)
}

func (p *gltfParser) parseJSON(data []byte) error {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse glTF JSON: %w", err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return fmt.Errorf("%w, got %q", ErrInvalidVersion, doc.Asset.Version)
	}
	if err := p.loadBuffers(&doc); err != nil {
		return err
	}
	p.doc = &doc
	return nil
}

func (p *gltfParser) parseGLB(data []byte) error {
	r := bytes.NewReader(data)

	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("%w: header: %v", ErrInvalidGLB, err)
	}
	if header.Magic != gltfGLBMagic {
		return fmt.Errorf("%w: bad magic %#x", ErrInvalidGLB, header.Magic)
	}
	if header.Version != gltfGLBVersion {
		return fmt.Errorf("%w: version %d", ErrInvalidGLB, header.Version)
	}

	var jsonChunk []byte
	for {
		var ch gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &ch); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%w: chunk header: %v", ErrInvalidGLB, err)
		}
		if int64(ch.ChunkLength) > int64(r.Len()) {
			return fmt.Errorf("%w: chunk of %d bytes overruns the file", ErrInvalidGLB, ch.ChunkLength)
		}
		chunk := make([]byte, ch.ChunkLength)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return fmt.Errorf("%w: chunk data: %v", ErrInvalidGLB, err)
		}
		switch ch.ChunkType {
		case gltfGLBChunkJSON:
			jsonChunk = chunk
		case gltfGLBChunkBIN:
			p.bin = chunk
		}
	}
	if jsonChunk == nil {
		return fmt.Errorf("%w: missing JSON chunk", ErrInvalidGLB)
	}
	return p.parseJSON(jsonChunk)
}

// loadBuffers resolves every buffer from the GLB binary chunk, a data URI or a file next to the document.
func (p *gltfParser) loadBuffers(doc *gltfDocument) error {
	for i := range doc.Buffers {
		buf := &doc.Buffers[i]
		var err error
		switch {
		case buf.URI == "" && i == 0 && p.bin != nil:
			buf.Data = p.bin
		case buf.URI == "":
			return fmt.Errorf("buffer %d: no uri and no GLB binary chunk", i)
		case strings.HasPrefix(buf.URI, "data:"):
			buf.Data, err = decodeDataURI(buf.URI)
		default:
			buf.Data, err = p.readFile(path.Join(p.baseDir, buf.URI))
		}
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		if len(buf.Data) < buf.ByteLength {
			return fmt.Errorf("buffer %d: %w: have %d bytes, byteLength %d", i, ErrOutOfRange, len(buf.Data), buf.ByteLength)
		}
	}
	return nil
}

func (p *gltfParser) readFile(name string) ([]byte, error) {
	if p.fsys == nil {
		return os.ReadFile(name)
	}
	return fs.ReadFile(p.fsys, name)
}

// decodeDataURI decodes data:[<mediatype>];base64,<data>.
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("malformed data uri")
	}
	if !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%w: data uri encoding %q", ErrUnsupported, header)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}

// accessorElements returns the byte slice of every element of an accessor, honouring the
// buffer view stride.
func (p *gltfParser) accessorElements(index int) (*gltfAccessor, [][]byte, error) {
	doc := p.doc
	if index < 0 || index >= len(doc.Accessors) {
		return nil, nil, fmt.Errorf("accessor %d: %w", index, ErrOutOfRange)
	}
	acc := &doc.Accessors[index]
	if acc.Sparse != nil {
		return nil, nil, fmt.Errorf("accessor %d: %w: sparse accessor", index, ErrUnsupported)
	}
	if acc.BufferView == nil {
		return nil, nil, fmt.Errorf("accessor %d: %w: no bufferView", index, ErrUnsupported)
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, nil, fmt.Errorf("accessor %d: bufferView %d: %w", index, *acc.BufferView, ErrOutOfRange)
	}
	bv := &doc.BufferViews[*acc.BufferView]
	if bv.Buffer < 0 || bv.Buffer >= len(doc.Buffers) {
		return nil, nil, fmt.Errorf("accessor %d: buffer %d: %w", index, bv.Buffer, ErrOutOfRange)
	}
	data := doc.Buffers[bv.Buffer].Data
	if acc.Count < 0 || acc.ByteOffset < 0 || bv.ByteOffset < 0 || bv.ByteLength < 0 ||
		(bv.ByteStride != nil && *bv.ByteStride < 0) {
		return nil, nil, fmt.Errorf("accessor %d: %w: negative count, offset or length", index, ErrOutOfRange)
	}
	if bv.ByteLength > len(data) || bv.ByteOffset > len(data)-bv.ByteLength {
		return nil, nil, fmt.Errorf("accessor %d: bufferView %d: %w", index, *acc.BufferView, ErrOutOfRange)
	}

	size := componentSize(acc.ComponentType) * componentCount(acc.Type)
	if size == 0 {
		return nil, nil, fmt.Errorf("accessor %d: %w: %s of component type %d", index, ErrUnsupported, acc.Type, acc.ComponentType)
	}
	stride := size
	if bv.ByteStride != nil && *bv.ByteStride > 0 {
		stride = *bv.ByteStride
	}

	// The whole accessor must fit in its view before anything is allocated.
	if acc.Count > 0 {
		if (acc.Count > 1 && stride > bv.ByteLength) || acc.Count > bv.ByteLength || acc.ByteOffset > bv.ByteLength ||
			acc.ByteOffset+(acc.Count-1)*stride+size > bv.ByteLength {
			return nil, nil, fmt.Errorf("accessor %d: %w: %d elements do not fit bufferView %d", index, ErrOutOfRange, acc.Count, *acc.BufferView)
		}
	}

	start := bv.ByteOffset + acc.ByteOffset
	elems := make([][]byte, acc.Count)
	for i := range elems {
		off := start + i*stride
		if off+size > len(data) || off+size > bv.ByteOffset+bv.ByteLength {
			return nil, nil, fmt.Errorf("accessor %d element %d: %w", index, i, ErrOutOfRange)
		}
		elems[i] = data[off : off+size]
	}
	return acc, elems, nil
}

// readFloats reads a float or normalized integer accessor as up to four floats per element.
// Missing components are left zero.
func (p *gltfParser) readFloats(index int) ([][4]float32, error) {
	acc, elems, err := p.accessorElements(index)
	if err != nil {
		return nil, err
	}
	n := componentCount(acc.Type)
	size := componentSize(acc.ComponentType)
	if acc.ComponentType != gltfComponentTypeFloat && !acc.Normalized {
		return nil, fmt.Errorf("accessor %d: %w: unnormalized component type %d", index, ErrUnsupported, acc.ComponentType)
	}

	out := make([][4]float32, len(elems))
	for i, e := range elems {
		for c := 0; c < n; c++ {
			b := e[c*size:]
			switch acc.ComponentType {
			case gltfComponentTypeFloat:
				out[i][c] = math.Float32frombits(binary.LittleEndian.Uint32(b))
			case gltfComponentTypeUnsignedByte:
				out[i][c] = float32(b[0]) / 255
			case gltfComponentTypeUnsignedShort:
				out[i][c] = float32(binary.LittleEndian.Uint16(b)) / 65535
			case gltfComponentTypeByte:
				out[i][c] = max(float32(int8(b[0]))/127, -1)
			case gltfComponentTypeShort:
				out[i][c] = max(float32(int16(binary.LittleEndian.Uint16(b)))/32767, -1)
			default:
				return nil, fmt.Errorf("accessor %d: %w: component type %d", index, ErrUnsupported, acc.ComponentType)
			}
		}
	}
	return out, nil
}

// readIndices reads a SCALAR unsigned accessor as uint32 indices.
func (p *gltfParser) readIndices(index int) ([]uint32, error) {
	acc, elems, err := p.accessorElements(index)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeScalar {
		return nil, fmt.Errorf("accessor %d: %w: index accessor of type %s", index, ErrUnsupported, acc.Type)
	}
	out := make([]uint32, len(elems))
	for i, e := range elems {
		switch acc.ComponentType {
		case gltfComponentTypeUnsignedByte:
			out[i] = uint32(e[0])
		case gltfComponentTypeUnsignedShort:
			out[i] = uint32(binary.LittleEndian.Uint16(e))
		case gltfComponentTypeUnsignedInt:
			out[i] = binary.LittleEndian.Uint32(e)
		default:
			return nil, fmt.Errorf("accessor %d: %w: index component type %d", index, ErrUnsupported, acc.ComponentType)
		}
	}
	return out, nil
}
