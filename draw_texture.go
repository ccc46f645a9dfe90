package atlas

import "fmt"

// drawTexture runs the direct-texture strategy over the whole set: one
// quad per instance sampling the atlas texture, per-instance colors
// ignored, the set's alpha applied uniformly.
func (r *Renderer) drawTexture(set *InstanceSet, pass PassEncoder, frame Frame) error {
	return r.drawTextureQuads(pass, frame, textureDraw{
		label:      "AtlasTexture",
		texture:    set.texture,
		regions:    set.regions,
		transforms: set.transforms,
		sampler:    set.sampler,
		alpha:      set.alpha,
		blend:      attachmentBlend(set.blendMode),
	})
}

// textureDraw carries one textured-quad draw. Three callers share the
// encode path and differ only in this payload: the whole instance set,
// the packed entries of a sub-atlas, and the per-instance snapshot
// resample.
type textureDraw struct {
	label      string
	texture    Texture
	regions    []Rect
	transforms []Matrix
	sampler    SamplerDescriptor
	alpha      float64
	blend      BlendMode
}

func (r *Renderer) drawTextureQuads(pass PassEncoder, frame Frame, d textureDraw) error {
	data := buildTextureVertexData(d.regions, d.transforms, d.texture.Size())
	if data == nil {
		return nil
	}

	pipeline, err := r.pipelines.TexturePipeline(pipelineOptions(d.blend, frame))
	if err != nil {
		return fmt.Errorf("atlas: texture pipeline: %w", err)
	}

	pass.SetLabel(d.label)
	if err := pass.SetPipeline(pipeline); err != nil {
		return fmt.Errorf("atlas: bind texture pipeline: %w", err)
	}
	count := uint32(len(d.regions) * verticesPerQuad)
	if err := pass.SetVertexData(data, count); err != nil {
		return fmt.Errorf("atlas: upload texture vertices: %w", err)
	}
	frameData := makeFrameUniform(frame.Transform, frame.TargetSize,
		frame.YCoordScale, d.texture.YCoordScale(), d.alpha)
	if err := pass.BindUniform(UniformFrame, frameData); err != nil {
		return fmt.Errorf("atlas: bind frame uniform: %w", err)
	}
	if err := pass.BindUniform(UniformFrag, makeFillUniform(d.alpha)); err != nil {
		return fmt.Errorf("atlas: bind alpha uniform: %w", err)
	}
	if err := pass.BindTexture(d.texture, d.sampler); err != nil {
		return fmt.Errorf("atlas: bind atlas texture: %w", err)
	}
	if err := pass.Draw(); err != nil {
		return fmt.Errorf("atlas: draw textured quads: %w", err)
	}
	return nil
}
