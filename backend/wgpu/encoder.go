package wgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

var (
	// ErrForeignPipeline reports a pipeline that was not created by this
	// backend's Pipelines provider.
	ErrForeignPipeline = errors.New("wgpu: pipeline not created by this backend")

	// ErrForeignTexture reports a texture that was not created by this
	// backend's Context.
	ErrForeignTexture = errors.New("wgpu: texture not created by this backend")

	// ErrPassEnded reports recording into a pass after End.
	ErrPassEnded = errors.New("wgpu: render pass already ended")
)

// submitTimeout bounds the fence wait after pass submission.
const submitTimeout = 5 * time.Second

// Pass records draws into one render pass over a single target texture.
// It implements atlas.PassEncoder. Create with Context.BeginPass, finish
// with End, which submits the recorded work and blocks until the GPU
// completes it.
//
// A Pass is not safe for concurrent use.
type Pass struct {
	ctx       *Context
	pipelines *Pipelines
	encoder   hal.CommandEncoder
	rp        hal.RenderPassEncoder
	ended     bool

	label   string
	current *pipeline

	vertexCount uint32
	uniforms    [2][]byte
	texture     *Texture
	sampler     atlas.SamplerDescriptor
	hasTexture  bool

	// Per-draw resources released after submission completes.
	buffers    []hal.Buffer
	bindGroups []hal.BindGroup
	samplers   []hal.Sampler
}

// BeginPass starts a render pass targeting the given texture. When clear
// is set the target is cleared to transparent black first, otherwise its
// previous contents load.
func (c *Context) BeginPass(pipelines *Pipelines, target *Texture, clear bool, label string) (*Pass, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpLoad
	if clear {
		loadOp = gputypes.LoadOpClear
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target.view,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
	})

	return &Pass{
		ctx:       c,
		pipelines: pipelines,
		encoder:   encoder,
		rp:        rp,
		label:     label,
	}, nil
}

// SetLabel implements atlas.PassEncoder.
func (p *Pass) SetLabel(label string) {
	p.label = label
}

// SetPipeline implements atlas.PassEncoder.
func (p *Pass) SetPipeline(pl atlas.Pipeline) error {
	if p.ended {
		return ErrPassEnded
	}
	entry, ok := pl.(*pipeline)
	if !ok || entry == nil {
		return ErrForeignPipeline
	}
	p.rp.SetPipeline(entry.handle)
	p.current = entry
	p.hasTexture = false
	return nil
}

// SetVertexData implements atlas.PassEncoder. The data is uploaded into a
// fresh buffer owned by the pass and released after End.
func (p *Pass) SetVertexData(data []byte, vertexCount uint32) error {
	if p.ended {
		return ErrPassEnded
	}
	buf, err := p.uploadBuffer(p.label+"_verts", data,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	p.rp.SetVertexBuffer(0, buf, 0)
	p.vertexCount = vertexCount
	return nil
}

// BindUniform implements atlas.PassEncoder. Data is staged and uploaded
// at Draw time so both slots land in one bind group.
func (p *Pass) BindUniform(slot uint32, data []byte) error {
	if p.ended {
		return ErrPassEnded
	}
	if int(slot) >= len(p.uniforms) {
		return fmt.Errorf("wgpu: uniform slot %d out of range", slot)
	}
	p.uniforms[slot] = data
	return nil
}

// BindTexture implements atlas.PassEncoder.
func (p *Pass) BindTexture(tex atlas.Texture, sampler atlas.SamplerDescriptor) error {
	if p.ended {
		return ErrPassEnded
	}
	own, ok := tex.(*Texture)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
	}
	p.texture = own
	p.sampler = sampler
	p.hasTexture = true
	return nil
}

// SetStencilReference implements atlas.PassEncoder.
func (p *Pass) SetStencilReference(ref uint32) {
	if p.ended {
		return
	}
	p.rp.SetStencilReference(ref)
}

// Draw implements atlas.PassEncoder. It materializes the staged uniform
// and texture bindings into bind groups and records one draw call.
func (p *Pass) Draw() error {
	if p.ended {
		return ErrPassEnded
	}
	if p.current == nil {
		return errors.New("wgpu: draw without a bound pipeline")
	}

	uniformGroup, err := p.uniformBindGroup()
	if err != nil {
		return err
	}
	p.rp.SetBindGroup(0, uniformGroup, nil)

	if p.hasTexture {
		textureGroup, err := p.textureBindGroup()
		if err != nil {
			return err
		}
		p.rp.SetBindGroup(1, textureGroup, nil)
	}

	p.rp.Draw(p.vertexCount, 1, 0, 0)
	return nil
}

func (p *Pass) uniformBindGroup() (hal.BindGroup, error) {
	entries := make([]gputypes.BindGroupEntry, 0, len(p.uniforms))
	for slot, data := range p.uniforms {
		if data == nil {
			continue
		}
		buf, err := p.uploadBuffer(fmt.Sprintf("%s_uniform%d", p.label, slot), data,
			gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: uint32(slot),
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uint64(len(data)),
			},
		})
	}

	group, err := p.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   p.label + "_uniform_bind",
		Layout:  p.pipelines.uniformLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create uniform bind group: %w", err)
	}
	p.bindGroups = append(p.bindGroups, group)
	return group, nil
}

func (p *Pass) textureBindGroup() (hal.BindGroup, error) {
	sampler, err := p.ctx.device.CreateSampler(halSampler(p.sampler))
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	p.samplers = append(p.samplers, sampler)

	group, err := p.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  p.label + "_texture_bind",
		Layout: p.pipelines.textureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: p.texture.view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.SamplerBinding{
				Sampler: sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture bind group: %w", err)
	}
	p.bindGroups = append(p.bindGroups, group)
	return group, nil
}

func (p *Pass) uploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.ctx.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create %s: %w", label, err)
	}
	p.ctx.queue.WriteBuffer(buf, 0, data)
	p.buffers = append(p.buffers, buf)
	return buf, nil
}

// End finishes the pass, submits it, and blocks until the GPU completes.
// The pass cannot record further draws afterwards.
func (p *Pass) End() error {
	if p.ended {
		return nil
	}
	p.ended = true
	defer p.release()

	p.rp.End()
	cmdBuf, err := p.encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}

	fence, err := p.ctx.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer p.ctx.device.DestroyFence(fence)
	if err := p.ctx.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit pass: %w", err)
	}
	ok, err := p.ctx.device.Wait(fence, 1, submitTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for pass: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: pass fence timed out after %v", submitTimeout)
	}
	return nil
}

// release destroys per-draw resources. Called once the submission has
// completed or failed terminally.
func (p *Pass) release() {
	device := p.ctx.device
	for _, group := range p.bindGroups {
		device.DestroyBindGroup(group)
	}
	p.bindGroups = nil
	for _, sampler := range p.samplers {
		device.DestroySampler(sampler)
	}
	p.samplers = nil
	for _, buf := range p.buffers {
		device.DestroyBuffer(buf)
	}
	p.buffers = nil
}
