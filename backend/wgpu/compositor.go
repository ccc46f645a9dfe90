package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

// Compositor evaluates advanced blend modes on the GPU. It implements
// atlas.Compositor by rendering the two layers into intermediate textures
// and combining them with a fullscreen blend pass.
//
// Snapshot textures are owned by the caller and must be destroyed once
// the frame no longer samples them.
type Compositor struct {
	ctx       *Context
	pipelines *Pipelines
}

// NewCompositor creates a compositor sharing the context's pipelines.
func NewCompositor(ctx *Context, pipelines *Pipelines) *Compositor {
	return &Compositor{ctx: ctx, pipelines: pipelines}
}

// RenderSnapshot implements atlas.Compositor.
func (c *Compositor) RenderSnapshot(mode atlas.BlendMode, src, dst atlas.Layer, size atlas.ISize) (atlas.Texture, error) {
	if err := c.ctx.alive(); err != nil {
		return nil, err
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, fmt.Errorf("wgpu: empty snapshot canvas %dx%d", size.Width, size.Height)
	}

	srcTex, err := c.renderLayer(src, size, "atlas_snapshot_src")
	if err != nil {
		return nil, err
	}
	defer srcTex.Destroy()

	dstTex, err := c.renderLayer(dst, size, "atlas_snapshot_dst")
	if err != nil {
		return nil, err
	}
	defer dstTex.Destroy()

	return c.blendLayers(mode, srcTex, dstTex, size)
}

// renderLayer rasterizes one layer into a fresh intermediate texture.
func (c *Compositor) renderLayer(layer atlas.Layer, size atlas.ISize, label string) (*Texture, error) {
	tex, err := c.ctx.CreateTexture(label, size)
	if err != nil {
		return nil, err
	}

	pass, err := c.ctx.BeginPass(c.pipelines, tex, true, label)
	if err != nil {
		tex.Destroy()
		return nil, err
	}
	if err := atlas.DrawLayer(pass, c.pipelines, layer, size); err != nil {
		pass.End()
		tex.Destroy()
		return nil, err
	}
	if err := pass.End(); err != nil {
		tex.Destroy()
		return nil, err
	}
	return tex, nil
}

// blendLayers runs the fullscreen advanced-blend pass over the two layer
// textures and returns the snapshot.
func (c *Compositor) blendLayers(mode atlas.BlendMode, srcTex, dstTex *Texture, size atlas.ISize) (*Texture, error) {
	out, err := c.ctx.CreateTexture("atlas_snapshot", size)
	if err != nil {
		return nil, err
	}

	entry, err := c.pipelines.compositePipeline()
	if err != nil {
		out.Destroy()
		return nil, err
	}

	pass, err := c.ctx.BeginPass(c.pipelines, out, true, "atlas_snapshot_blend")
	if err != nil {
		out.Destroy()
		return nil, err
	}
	if err := c.recordBlend(pass, entry, mode, srcTex, dstTex); err != nil {
		pass.End()
		out.Destroy()
		return nil, err
	}
	if err := pass.End(); err != nil {
		out.Destroy()
		return nil, err
	}
	return out, nil
}

func (c *Compositor) recordBlend(pass *Pass, entry *pipeline, mode atlas.BlendMode, srcTex, dstTex *Texture) error {
	if err := pass.SetPipeline(entry); err != nil {
		return err
	}

	params := makeBlendParams(mode)
	paramsBuf, err := pass.uploadBuffer("atlas_snapshot_blend_params", params,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	uniformGroup, err := c.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "atlas_snapshot_blend_params_bind",
		Layout: c.pipelines.compositeUniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: uint64(len(params)),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create snapshot uniform bind group: %w", err)
	}
	pass.bindGroups = append(pass.bindGroups, uniformGroup)

	sampler, err := c.ctx.device.CreateSampler(halSampler(atlas.DefaultSampler()))
	if err != nil {
		return fmt.Errorf("wgpu: create snapshot sampler: %w", err)
	}
	pass.samplers = append(pass.samplers, sampler)

	group, err := c.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "atlas_snapshot_blend_bind",
		Layout: c.pipelines.compositeTextureLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{
				TextureView: srcTex.view.NativeHandle(),
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: dstTex.view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create snapshot bind group: %w", err)
	}
	pass.bindGroups = append(pass.bindGroups, group)

	pass.rp.SetBindGroup(0, uniformGroup, nil)
	pass.rp.SetBindGroup(1, group, nil)
	pass.rp.Draw(3, 1, 0, 0)
	return nil
}

// makeBlendParams packs the blend mode selector uniform, padded to 16
// bytes per WGSL uniform layout rules.
func makeBlendParams(mode atlas.BlendMode) []byte {
	buf := make([]byte, 16)
	buf[0] = byte(mode)
	return buf
}
