package atlas

import "math"

// rowWidthBudget bounds the width of the packed intermediate canvas.
// The value was chosen empirically: sample regions in one atlas draw tend
// to be close in size, so plain shelf packing with a fixed row budget is a
// good enough approximation of a general rect packer. Do not tune this
// without revisiting the packing heuristic as a whole.
const rowWidthBudget = 1000

// SubAtlasResult is the deduplicated, shelf-packed layout of a render
// call's unique (region, color) pairs, produced for advanced-blend
// compositing and discarded after the call.
//
// PackedRegions, PackedColors, and PackedTransforms hold one entry per
// unique pair: the representative region and color, and a pure translation
// placing the pair at its packed offset on the intermediate canvas.
//
// InstanceRegions and InstanceTransforms hold one entry per original
// instance: the packed canvas rectangle its group was assigned and its
// original transform, used to resample the snapshot back onto the target.
type SubAtlasResult struct {
	PackedRegions    []Rect
	PackedColors     []RGBA
	PackedTransforms []Matrix

	InstanceRegions    []Rect
	InstanceTransforms []Matrix

	// CanvasSize is the smallest whole-pixel size enclosing all packed
	// rectangles.
	CanvasSize ISize
}

// blenderKey groups instances whose texture region and overlay color are
// interchangeable for compositing. Region coordinates compare exactly;
// colors compare through their 32-bit quantization so representation noise
// in the float components cannot split a group.
type blenderKey struct {
	region   Rect
	colorKey uint32
}

// GenerateSubAtlas deduplicates the set's (region, color) pairs and shelf-
// packs one rectangle per unique pair into a bounded-width canvas.
//
// The caller guarantees colors are present and the blend mode is neither
// BlendSource nor BlendDestination; those cases never need a sub-atlas.
// Group iteration order follows map order: packing is not deterministic
// across runs, only internally consistent.
//
// Zero instances yield an empty result with a zero canvas; callers treat
// that as a degenerate no-draw.
func (s *InstanceSet) GenerateSubAtlas() *SubAtlasResult {
	type group struct {
		color      RGBA
		transforms []Matrix
	}
	groups := make(map[blenderKey]*group, len(s.regions))
	for i := range s.regions {
		key := blenderKey{region: s.regions[i], colorKey: s.colors[i].Quantize()}
		g, ok := groups[key]
		if !ok {
			g = &group{color: s.colors[i]}
			groups[key] = g
		}
		g.transforms = append(g.transforms, s.transforms[i])
	}

	result := &SubAtlasResult{
		PackedRegions:      make([]Rect, 0, len(groups)),
		PackedColors:       make([]RGBA, 0, len(groups)),
		PackedTransforms:   make([]Matrix, 0, len(groups)),
		InstanceRegions:    make([]Rect, 0, len(s.regions)),
		InstanceTransforms: make([]Matrix, 0, len(s.regions)),
	}

	var xOffset, yOffset float64
	var xExtent, yExtent float64
	for key, g := range groups {
		if xOffset >= rowWidthBudget {
			yOffset = yExtent + 1
			xOffset = 0
		}

		w := key.region.Width()
		h := key.region.Height()
		packed := RectXYWH(xOffset, yOffset, w, h)

		result.PackedRegions = append(result.PackedRegions, key.region)
		result.PackedColors = append(result.PackedColors, g.color)
		result.PackedTransforms = append(result.PackedTransforms, Translate(xOffset, yOffset))

		xOffset += math.Ceil(w) + 1
		xExtent = math.Max(xExtent, xOffset)
		yExtent = math.Max(yExtent, math.Ceil(yOffset+h))

		for _, transform := range g.transforms {
			result.InstanceRegions = append(result.InstanceRegions, packed)
			result.InstanceTransforms = append(result.InstanceTransforms, transform)
		}
	}

	result.CanvasSize = ISize{
		Width:  int(math.Ceil(xExtent)),
		Height: int(math.Ceil(yExtent)),
	}
	return result
}
