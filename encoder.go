package atlas

// Pipeline is an opaque handle to a precompiled render pipeline. The core
// never inspects it; it is selected through a PipelineProvider and handed
// back to the PassEncoder that understands it.
type Pipeline interface{}

// PipelineOptions selects a pipeline variant for the current render target.
// Pipeline selection is a pure function of the options, so providers may
// cache pipelines keyed by this value.
type PipelineOptions struct {
	// BlendMode is the attachment blend state. Only simple modes are
	// meaningful here; strategies that evaluate blending in the shader
	// request BlendSourceOver.
	BlendMode BlendMode

	// SampleCount is the MSAA sample count of the render target.
	SampleCount int
}

// DefaultPipelineOptions returns source-over, single-sample options.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{BlendMode: BlendSourceOver, SampleCount: 1}
}

// PipelineProvider returns precompiled pipelines for the three fixed
// shader programs the strategies use.
type PipelineProvider interface {
	// TexturePipeline returns the textured-quad pipeline
	// (position + UV, alpha uniform).
	TexturePipeline(opts PipelineOptions) (Pipeline, error)

	// ColorPipeline returns the solid-color quad pipeline
	// (position + per-vertex color, alpha uniform).
	ColorPipeline(opts PipelineOptions) (Pipeline, error)

	// PorterDuffPipeline returns the coefficient-driven blend pipeline
	// (position + UV + per-vertex color, coefficient uniform).
	PorterDuffPipeline(opts PipelineOptions) (Pipeline, error)
}

// Uniform binding slots used by the strategies. Backends map these to
// shader bind group entries.
const (
	// UniformFrame is the vertex-stage frame uniform (clip transform,
	// y-coord scale, alpha).
	UniformFrame uint32 = 0

	// UniformFrag is the fragment-stage uniform (alpha for the texture
	// and color pipelines, blend coefficients for the Porter-Duff
	// pipeline).
	UniformFrag uint32 = 1
)

// PassEncoder records draws into an in-progress render pass. Submission
// order is preserved across Draw calls within one pass.
//
// A PassEncoder is bound to one render target for its lifetime and is not
// safe for concurrent use.
type PassEncoder interface {
	// SetLabel attaches a debug label to the next draw.
	SetLabel(label string)

	// SetPipeline binds a pipeline for subsequent draws.
	SetPipeline(p Pipeline) error

	// SetVertexData uploads an interleaved vertex stream for the next
	// draw. The layout must match the bound pipeline.
	SetVertexData(data []byte, vertexCount uint32) error

	// BindUniform uploads uniform data to the given slot.
	BindUniform(slot uint32, data []byte) error

	// BindTexture binds a texture and sampler for the next draw.
	BindTexture(tex Texture, sampler SamplerDescriptor) error

	// SetStencilReference sets the stencil reference for subsequent draws.
	SetStencilReference(ref uint32)

	// Draw submits one draw call with the bound state.
	Draw() error
}

// Layer describes one input to snapshot compositing: a set of quads drawn
// over the snapshot canvas. A layer is either textured (Texture non-nil,
// Colors ignored) or solid-color (Texture nil, one color per quad).
type Layer struct {
	// Texture is the sampled image for textured layers, nil otherwise.
	Texture Texture

	// Regions are the texture-space rectangles, one per quad. For color
	// layers they supply only the quad geometry.
	Regions []Rect

	// Transforms place each quad on the canvas, index-aligned with
	// Regions.
	Transforms []Matrix

	// Colors are premultiplied per-quad colors for color layers.
	Colors []RGBA

	// Sampler configures texture sampling for textured layers.
	Sampler SamplerDescriptor
}

// Compositor evaluates an advanced blend mode over two layers and returns
// the result as a snapshot texture of the given size.
//
// The destination layer is composited first, then the source layer is
// blended onto it with the requested mode. A nil texture with a non-nil
// error reports allocation or encoding failure; the render call that
// requested the snapshot fails as a whole.
type Compositor interface {
	RenderSnapshot(mode BlendMode, src, dst Layer, size ISize) (Texture, error)
}

// DeviceCapabilities describes backend features the dispatcher adapts to.
type DeviceCapabilities struct {
	// SupportsDecalSamplerAddressMode reports whether AddressModeDecal
	// is available. When set, the single-pass blend strategy switches the
	// destination sampler to decal addressing so texels outside the
	// region blend as transparent black.
	SupportsDecalSamplerAddressMode bool

	// MaxTextureSize is the maximum texture dimension, 0 if unknown.
	MaxTextureSize int
}
