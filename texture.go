package atlas

// Texture is a 2D GPU image consumed by the rendering strategies. The core
// never creates textures; they arrive from the caller (the sprite atlas
// pages) or from the Compositor (advanced-blend snapshots).
//
// Implementations are expected to be reference-counted or otherwise safe to
// share across render calls.
type Texture interface {
	// Size returns the pixel dimensions of the texture.
	Size() ISize

	// YCoordScale returns the vertical texture-coordinate scale factor.
	// Backends whose texture space runs bottom-up report -1; top-down
	// backends report 1. Vertex UVs are multiplied by this factor in the
	// vertex shader.
	YCoordScale() float64
}

// FilterMode selects the sampling filter for a texture axis.
type FilterMode uint8

const (
	// FilterModeNearest samples the nearest texel.
	FilterModeNearest FilterMode = iota
	// FilterModeLinear interpolates between adjacent texels.
	FilterModeLinear
)

// String returns the filter mode name.
func (f FilterMode) String() string {
	switch f {
	case FilterModeNearest:
		return "Nearest"
	case FilterModeLinear:
		return "Linear"
	default:
		return "Unknown"
	}
}

// AddressMode selects how texture coordinates outside [0, 1] resolve.
type AddressMode uint8

const (
	// AddressModeClampToEdge repeats the edge texel.
	AddressModeClampToEdge AddressMode = iota
	// AddressModeRepeat wraps coordinates.
	AddressModeRepeat
	// AddressModeMirror wraps coordinates with alternating reflection.
	AddressModeMirror
	// AddressModeDecal samples transparent black outside the texture.
	AddressModeDecal
)

// String returns the address mode name.
func (a AddressMode) String() string {
	switch a {
	case AddressModeClampToEdge:
		return "ClampToEdge"
	case AddressModeRepeat:
		return "Repeat"
	case AddressModeMirror:
		return "Mirror"
	case AddressModeDecal:
		return "Decal"
	default:
		return "Unknown"
	}
}

// SamplerDescriptor configures texture sampling for a render call.
type SamplerDescriptor struct {
	// Label is an optional debug name.
	Label string

	// MinFilter is the minification filter.
	MinFilter FilterMode

	// MagFilter is the magnification filter.
	MagFilter FilterMode

	// WidthAddressMode resolves out-of-range U coordinates.
	WidthAddressMode AddressMode

	// HeightAddressMode resolves out-of-range V coordinates.
	HeightAddressMode AddressMode
}

// DefaultSampler returns a linear clamp-to-edge sampler descriptor.
func DefaultSampler() SamplerDescriptor {
	return SamplerDescriptor{
		MinFilter:         FilterModeLinear,
		MagFilter:         FilterModeLinear,
		WidthAddressMode:  AddressModeClampToEdge,
		HeightAddressMode: AddressModeClampToEdge,
	}
}
