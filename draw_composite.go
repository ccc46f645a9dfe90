package atlas

import "fmt"

// drawComposite runs the multi-pass strategy for advanced blend modes.
//
// Instances are deduplicated and shelf-packed into an intermediate
// canvas. The compositor blends the packed texture layer (source) with
// the packed color layer (destination) offscreen and returns a snapshot.
// The snapshot is then resampled onto the target once per original
// instance, each at its original transform, with the set's alpha applied
// during the resample only so it attenuates the blended result once.
func (r *Renderer) drawComposite(set *InstanceSet, pass PassEncoder, frame Frame) error {
	sub := set.GenerateSubAtlas()
	if len(sub.PackedRegions) == 0 || sub.CanvasSize.IsEmpty() {
		return nil
	}
	if r.compositor == nil {
		return fmt.Errorf("%w: no compositor configured", ErrSnapshotFailed)
	}

	src := Layer{
		Texture:    set.texture,
		Regions:    sub.PackedRegions,
		Transforms: sub.PackedTransforms,
		Sampler:    set.sampler,
	}
	dst := Layer{
		Regions:    sub.PackedRegions,
		Transforms: sub.PackedTransforms,
		Colors:     premultiplied(sub.PackedColors),
	}

	snapshot, err := r.compositor.RenderSnapshot(set.blendMode, src, dst, sub.CanvasSize)
	if err != nil {
		return fmt.Errorf("atlas: render snapshot: %w", err)
	}
	if snapshot == nil {
		return ErrSnapshotFailed
	}

	return r.drawTextureQuads(pass, frame, textureDraw{
		label:      "AtlasBlendComposite",
		texture:    snapshot,
		regions:    sub.InstanceRegions,
		transforms: sub.InstanceTransforms,
		sampler:    set.sampler,
		alpha:      set.alpha,
		blend:      BlendSourceOver,
	})
}

func premultiplied(colors []RGBA) []RGBA {
	out := make([]RGBA, len(colors))
	for i, c := range colors {
		out[i] = c.Premultiply()
	}
	return out
}
