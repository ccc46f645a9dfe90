package atlas

import "fmt"

// drawColor runs the direct-color strategy: one solid quad per instance,
// the atlas texture ignored entirely.
func (r *Renderer) drawColor(set *InstanceSet, pass PassEncoder, frame Frame) error {
	return r.drawColorQuads(pass, frame, colorDraw{
		label:      "AtlasColors",
		regions:    set.regions,
		transforms: set.transforms,
		colors:     set.colors,
		alpha:      set.alpha,
	})
}

// colorDraw carries one solid-quad draw, used by the direct-color
// strategy and by the destination layer of sub-atlas compositing.
type colorDraw struct {
	label      string
	regions    []Rect
	transforms []Matrix
	colors     []RGBA
	alpha      float64
}

func (r *Renderer) drawColorQuads(pass PassEncoder, frame Frame, d colorDraw) error {
	data := buildColorVertexData(d.regions, d.transforms, d.colors)
	if data == nil {
		return nil
	}

	pipeline, err := r.pipelines.ColorPipeline(pipelineOptions(BlendSourceOver, frame))
	if err != nil {
		return fmt.Errorf("atlas: color pipeline: %w", err)
	}

	pass.SetLabel(d.label)
	if err := pass.SetPipeline(pipeline); err != nil {
		return fmt.Errorf("atlas: bind color pipeline: %w", err)
	}
	count := uint32(len(d.regions) * verticesPerQuad)
	if err := pass.SetVertexData(data, count); err != nil {
		return fmt.Errorf("atlas: upload color vertices: %w", err)
	}
	frameData := makeFrameUniform(frame.Transform, frame.TargetSize,
		frame.YCoordScale, 1, d.alpha)
	if err := pass.BindUniform(UniformFrame, frameData); err != nil {
		return fmt.Errorf("atlas: bind frame uniform: %w", err)
	}
	if err := pass.BindUniform(UniformFrag, makeFillUniform(d.alpha)); err != nil {
		return fmt.Errorf("atlas: bind alpha uniform: %w", err)
	}
	if err := pass.Draw(); err != nil {
		return fmt.Errorf("atlas: draw color quads: %w", err)
	}
	return nil
}
