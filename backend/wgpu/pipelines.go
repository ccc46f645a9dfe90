package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

// shaderProgram identifies one of the fixed shader programs.
type shaderProgram uint8

const (
	programTexture shaderProgram = iota
	programColor
	programPorterDuff
	programComposite
	programCount
)

var programLabels = [programCount]string{
	"atlas_texture_fill",
	"atlas_solid_color",
	"atlas_porter_duff",
	"atlas_blend_composite",
}

var programSources = [programCount]string{
	textureFillShaderSource,
	solidColorShaderSource,
	porterDuffShaderSource,
	blendCompositeShaderSource,
}

type pipelineKey struct {
	program shaderProgram
	opts    atlas.PipelineOptions
}

// pipeline pairs a HAL render pipeline with the layout information the
// pass encoder needs to bind resources for it.
type pipeline struct {
	handle       hal.RenderPipeline
	program      shaderProgram
	vertexStride uint64
}

// Pipelines compiles and caches the render pipelines for a Context. It
// implements atlas.PipelineProvider.
//
// Shader modules, bind group layouts, and pipeline layouts are created
// once up front. Render pipelines are created lazily per (program, blend
// mode, sample count) combination because the variants actually used
// depend on the scene.
type Pipelines struct {
	ctx    *Context
	format gputypes.TextureFormat

	modules [programCount]hal.ShaderModule

	// uniformLayout is bind group 0 for the quad programs: frame uniform
	// at binding 0, fragment uniform at binding 1.
	uniformLayout hal.BindGroupLayout

	// textureLayout is bind group 1 for the textured quad programs:
	// texture at binding 0, sampler at binding 1.
	textureLayout hal.BindGroupLayout

	// compositeUniformLayout is bind group 0 for the compositing program:
	// the blend mode selector uniform.
	compositeUniformLayout hal.BindGroupLayout

	// compositeTextureLayout is bind group 1 for the compositing program:
	// source texture, destination texture, shared sampler.
	compositeTextureLayout hal.BindGroupLayout

	quadLayout      hal.PipelineLayout
	colorLayout     hal.PipelineLayout
	compositeLayout hal.PipelineLayout

	mu    sync.Mutex
	cache map[pipelineKey]*pipeline
}

// NewPipelines compiles the shader modules and layouts for the given
// render target format. The caller owns the result and must call Destroy.
func NewPipelines(ctx *Context, format gputypes.TextureFormat) (*Pipelines, error) {
	if err := ctx.alive(); err != nil {
		return nil, err
	}
	p := &Pipelines{
		ctx:    ctx,
		format: format,
		cache:  make(map[pipelineKey]*pipeline),
	}
	if err := p.createModules(); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.createLayouts(); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *Pipelines) createModules() error {
	for prog := shaderProgram(0); prog < programCount; prog++ {
		module, err := createShaderModule(p.ctx.device, programLabels[prog], programSources[prog], false)
		if err != nil {
			return err
		}
		p.modules[prog] = module
	}
	return nil
}

func (p *Pipelines) createLayouts() error {
	device := p.ctx.device

	uniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "atlas_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeUniform,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create uniform bind group layout: %w", err)
	}
	p.uniformLayout = uniformLayout

	textureLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "atlas_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create texture bind group layout: %w", err)
	}
	p.textureLayout = textureLayout

	compositeUniformLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "atlas_composite_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type: gputypes.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create composite uniform layout: %w", err)
	}
	p.compositeUniformLayout = compositeUniformLayout

	compositeTextureLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "atlas_composite_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create composite bind group layout: %w", err)
	}
	p.compositeTextureLayout = compositeTextureLayout

	quadLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "atlas_quad_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout, p.textureLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create quad pipeline layout: %w", err)
	}
	p.quadLayout = quadLayout

	colorLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "atlas_color_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create color pipeline layout: %w", err)
	}
	p.colorLayout = colorLayout

	compositeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "atlas_composite_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.compositeUniformLayout, p.compositeTextureLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create composite pipeline layout: %w", err)
	}
	p.compositeLayout = compositeLayout

	return nil
}

// TexturePipeline implements atlas.PipelineProvider.
func (p *Pipelines) TexturePipeline(opts atlas.PipelineOptions) (atlas.Pipeline, error) {
	return p.lookup(programTexture, opts)
}

// ColorPipeline implements atlas.PipelineProvider.
func (p *Pipelines) ColorPipeline(opts atlas.PipelineOptions) (atlas.Pipeline, error) {
	return p.lookup(programColor, opts)
}

// PorterDuffPipeline implements atlas.PipelineProvider.
func (p *Pipelines) PorterDuffPipeline(opts atlas.PipelineOptions) (atlas.Pipeline, error) {
	return p.lookup(programPorterDuff, opts)
}

// compositePipeline returns the fullscreen advanced-blend pipeline used by
// the Compositor. It always draws with blending disabled into a
// single-sample snapshot target.
func (p *Pipelines) compositePipeline() (*pipeline, error) {
	return p.lookup(programComposite, atlas.PipelineOptions{BlendMode: atlas.BlendSource, SampleCount: 1})
}

func (p *Pipelines) lookup(prog shaderProgram, opts atlas.PipelineOptions) (*pipeline, error) {
	if err := p.ctx.alive(); err != nil {
		return nil, err
	}
	if opts.SampleCount < 1 {
		opts.SampleCount = 1
	}
	key := pipelineKey{program: prog, opts: opts}

	p.mu.Lock()
	defer p.mu.Unlock()
	if cached, ok := p.cache[key]; ok {
		return cached, nil
	}
	built, err := p.build(prog, opts)
	if err != nil {
		return nil, err
	}
	p.cache[key] = built
	return built, nil
}

func (p *Pipelines) build(prog shaderProgram, opts atlas.PipelineOptions) (*pipeline, error) {
	var (
		layout  hal.PipelineLayout
		buffers []gputypes.VertexBufferLayout
		stride  uint64
	)
	switch prog {
	case programTexture:
		layout = p.quadLayout
		stride = 16
		buffers = []gputypes.VertexBufferLayout{{
			ArrayStride: stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
			},
		}}
	case programColor:
		layout = p.colorLayout
		stride = 24
		buffers = []gputypes.VertexBufferLayout{{
			ArrayStride: stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
			},
		}}
	case programPorterDuff:
		layout = p.quadLayout
		stride = 32
		buffers = []gputypes.VertexBufferLayout{{
			ArrayStride: stride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2},
			},
		}}
	case programComposite:
		// Fullscreen triangle generated from the vertex index.
		layout = p.compositeLayout
	}

	blend := attachmentBlendState(opts.BlendMode)
	handle, err := p.ctx.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("%s_%s_x%d", programLabels[prog], opts.BlendMode, opts.SampleCount),
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     p.modules[prog],
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     p.modules[prog],
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.format,
					Blend:     blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: uint32(opts.SampleCount),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s pipeline: %w", programLabels[prog], err)
	}
	return &pipeline{handle: handle, program: prog, vertexStride: stride}, nil
}

// attachmentBlendState maps a simple blend mode to fixed-function blend
// factors over premultiplied alpha. BlendSource returns nil since replace
// semantics need no blending.
func attachmentBlendState(mode atlas.BlendMode) *gputypes.BlendState {
	if mode == atlas.BlendSource {
		return nil
	}
	if mode == atlas.BlendSourceOver {
		premul := gputypes.BlendStatePremultiplied()
		return &premul
	}

	var color, alpha gputypes.BlendComponent
	color.Operation = gputypes.BlendOperationAdd
	alpha.Operation = gputypes.BlendOperationAdd
	switch mode {
	case atlas.BlendClear:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorZero, gputypes.BlendFactorZero
	case atlas.BlendDestination:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorZero, gputypes.BlendFactorOne
	case atlas.BlendDestinationOver:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne
	case atlas.BlendSourceIn:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero
	case atlas.BlendDestinationIn:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha
	case atlas.BlendSourceOut:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero
	case atlas.BlendDestinationOut:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha
	case atlas.BlendSourceAtop:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha
	case atlas.BlendDestinationAtop:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha
	case atlas.BlendXor:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha
	case atlas.BlendPlus:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorOne, gputypes.BlendFactorOne
	case atlas.BlendModulate:
		color.SrcFactor, color.DstFactor = gputypes.BlendFactorDst, gputypes.BlendFactorZero
		alpha.SrcFactor, alpha.DstFactor = gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero
		return &gputypes.BlendState{Color: color, Alpha: alpha}
	default:
		// Advanced modes never reach the attachment; the dispatcher
		// requests source-over for them.
		premul := gputypes.BlendStatePremultiplied()
		return &premul
	}
	alpha = color
	return &gputypes.BlendState{Color: color, Alpha: alpha}
}

// halSampler converts a sampler descriptor to its HAL form. Decal
// addressing is not expressible in a WebGPU sampler, so it degrades to
// clamp-to-edge; the blend shader handles out-of-range UVs itself.
func halSampler(desc atlas.SamplerDescriptor) *hal.SamplerDescriptor {
	return &hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: halAddressMode(desc.WidthAddressMode),
		AddressModeV: halAddressMode(desc.HeightAddressMode),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    halFilterMode(desc.MagFilter),
		MinFilter:    halFilterMode(desc.MinFilter),
		MipmapFilter: gputypes.FilterModeLinear,
	}
}

func halAddressMode(mode atlas.AddressMode) gputypes.AddressMode {
	switch mode {
	case atlas.AddressModeRepeat:
		return gputypes.AddressModeRepeat
	case atlas.AddressModeMirror:
		return gputypes.AddressModeMirrorRepeat
	case atlas.AddressModeDecal:
		atlas.Logger().Warn("decal address mode unsupported, using clamp-to-edge")
		return gputypes.AddressModeClampToEdge
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func halFilterMode(mode atlas.FilterMode) gputypes.FilterMode {
	if mode == atlas.FilterModeNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// Destroy releases all cached pipelines, layouts, and shader modules.
func (p *Pipelines) Destroy() {
	if p.ctx == nil || p.ctx.destroyed.Load() {
		return
	}
	device := p.ctx.device

	p.mu.Lock()
	for key, entry := range p.cache {
		device.DestroyRenderPipeline(entry.handle)
		delete(p.cache, key)
	}
	p.mu.Unlock()

	if p.compositeLayout != nil {
		device.DestroyPipelineLayout(p.compositeLayout)
		p.compositeLayout = nil
	}
	if p.colorLayout != nil {
		device.DestroyPipelineLayout(p.colorLayout)
		p.colorLayout = nil
	}
	if p.quadLayout != nil {
		device.DestroyPipelineLayout(p.quadLayout)
		p.quadLayout = nil
	}
	if p.compositeTextureLayout != nil {
		device.DestroyBindGroupLayout(p.compositeTextureLayout)
		p.compositeTextureLayout = nil
	}
	if p.compositeUniformLayout != nil {
		device.DestroyBindGroupLayout(p.compositeUniformLayout)
		p.compositeUniformLayout = nil
	}
	if p.textureLayout != nil {
		device.DestroyBindGroupLayout(p.textureLayout)
		p.textureLayout = nil
	}
	if p.uniformLayout != nil {
		device.DestroyBindGroupLayout(p.uniformLayout)
		p.uniformLayout = nil
	}
	for i, module := range p.modules {
		if module != nil {
			device.DestroyShaderModule(module)
			p.modules[i] = nil
		}
	}
}
