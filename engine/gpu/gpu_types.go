package gpu

// BufferTarget identifies a buffer binding point.
type BufferTarget int

const (
	// TargetArrayBuffer holds vertex attribute data.
	TargetArrayBuffer BufferTarget = iota

	// TargetElementArrayBuffer holds index data.
	TargetElementArrayBuffer
)

func (t BufferTarget) String() string {
	switch t {
	case TargetArrayBuffer:
		return "array"
	case TargetElementArrayBuffer:
		return "element"
	}
	return "unknown"
}

// BufferUsage is the usage hint passed with a buffer upload.
type BufferUsage int

const (
	// UsageDynamic hints that the contents are modified repeatedly.
	UsageDynamic BufferUsage = iota

	// UsageStatic hints that the contents are modified rarely.
	UsageStatic
)

func (u BufferUsage) String() string {
	switch u {
	case UsageDynamic:
		return "dynamic"
	case UsageStatic:
		return "static"
	}
	return "unknown"
}

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	// StageVertex is the vertex stage.
	StageVertex ShaderStage = iota

	// StageFragment is the fragment stage.
	StageFragment
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return "unknown"
}

// TextureFormat is the texel layout of a texture.
type TextureFormat int

const (
	// FormatRGB is 8-bit red, green and blue.
	FormatRGB TextureFormat = iota

	// FormatRGBA is 8-bit red, green, blue and alpha.
	FormatRGBA

	// FormatDepthStencil is a packed 24-bit depth and 8-bit stencil format.
	FormatDepthStencil
)

func (f TextureFormat) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	case FormatDepthStencil:
		return "depth_stencil"
	}
	return "unknown"
}

// Filter is a texture sampling filter.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
	FilterNearestMipmapLinear
)

// Attachment is a framebuffer attachment point.
type Attachment int

const (
	// AttachmentColor0 is the first color attachment.
	AttachmentColor0 Attachment = iota

	// AttachmentDepthStencil is the combined depth and stencil attachment.
	AttachmentDepthStencil
)
