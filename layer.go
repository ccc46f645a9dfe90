package atlas

// DrawLayer renders a compositing layer into the given pass as plain
// source-over quads at full alpha. Compositor implementations use it to
// rasterize the source and destination layers onto their intermediate
// targets before evaluating the blend itself.
//
// The pass target is assumed to be size pixels with y running top-down.
func DrawLayer(pass PassEncoder, pipelines PipelineProvider, layer Layer, size ISize) error {
	r := &Renderer{pipelines: pipelines}
	frame := NewFrame(size)

	if layer.Texture != nil {
		return r.drawTextureQuads(pass, frame, textureDraw{
			label:      "AtlasLayer",
			texture:    layer.Texture,
			regions:    layer.Regions,
			transforms: layer.Transforms,
			sampler:    layer.Sampler,
			alpha:      1,
			blend:      BlendSourceOver,
		})
	}

	// Layer colors are premultiplied; the vertex builder premultiplies
	// itself, so feed it straight-alpha values.
	colors := make([]RGBA, len(layer.Colors))
	for i := range colors {
		colors[i] = layer.Colors[i].Unpremultiply()
	}
	return r.drawColorQuads(pass, frame, colorDraw{
		label:      "AtlasLayer",
		regions:    layer.Regions,
		transforms: layer.Transforms,
		colors:     colors,
		alpha:      1,
	})
}
