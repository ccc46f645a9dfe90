package atlas

import "fmt"

// drawPorterDuff runs the single-pass blend strategy: one draw over all
// instances with the coefficient-driven shader.
//
// The shader samples the atlas texture as the blend destination and takes
// the per-vertex color as the source, so the bound coefficients are those
// of the inverted mode. Modes with no inverse fall back to BlendSource,
// which passes the sampled texel through unchanged.
func (r *Renderer) drawPorterDuff(set *InstanceSet, pass PassEncoder, frame Frame) error {
	mode := set.blendMode
	if inverted, ok := InvertPorterDuff(mode); ok {
		mode = inverted
	} else {
		mode = BlendSource
	}
	coeffs, ok := PorterDuffCoefficients(mode)
	if !ok {
		return fmt.Errorf("atlas: no blend coefficients for %s", mode)
	}

	data := buildBlendVertexData(set.regions, set.transforms, set.colors, set.texture.Size())
	if data == nil {
		return nil
	}

	pipeline, err := r.pipelines.PorterDuffPipeline(pipelineOptions(BlendSourceOver, frame))
	if err != nil {
		return fmt.Errorf("atlas: blend pipeline: %w", err)
	}

	sampler := set.sampler
	if r.caps.SupportsDecalSamplerAddressMode {
		sampler.WidthAddressMode = AddressModeDecal
		sampler.HeightAddressMode = AddressModeDecal
	}

	pass.SetLabel("AtlasBlend")
	if err := pass.SetPipeline(pipeline); err != nil {
		return fmt.Errorf("atlas: bind blend pipeline: %w", err)
	}
	count := uint32(len(set.regions) * verticesPerQuad)
	if err := pass.SetVertexData(data, count); err != nil {
		return fmt.Errorf("atlas: upload blend vertices: %w", err)
	}
	frameData := makeFrameUniform(frame.Transform, frame.TargetSize,
		frame.YCoordScale, set.texture.YCoordScale(), set.alpha)
	if err := pass.BindUniform(UniformFrame, frameData); err != nil {
		return fmt.Errorf("atlas: bind frame uniform: %w", err)
	}
	if err := pass.BindUniform(UniformFrag, makePorterDuffUniform(coeffs, set.alpha)); err != nil {
		return fmt.Errorf("atlas: bind blend uniform: %w", err)
	}
	if err := pass.BindTexture(set.texture, sampler); err != nil {
		return fmt.Errorf("atlas: bind atlas texture: %w", err)
	}
	if err := pass.Draw(); err != nil {
		return fmt.Errorf("atlas: draw blended quads: %w", err)
	}
	return nil
}
