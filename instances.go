package atlas

// InstanceSet holds one render call's worth of sprite instances: parallel
// slices of transforms, texture regions, and optional overlay colors, plus
// the blend mode and alpha applied to all of them.
//
// The set is owned by the caller and may be reused and mutated between
// render calls, but never during one. Reassigning transforms or texture
// regions invalidates the memoized bounding box; color, alpha, and
// blend-mode changes do not affect geometry and leave it intact.
type InstanceSet struct {
	texture    Texture
	transforms []Matrix
	regions    []Rect
	colors     []RGBA
	alpha      float64
	blendMode  BlendMode
	sampler    SamplerDescriptor

	cullRect    Rect
	hasCullRect bool

	boundingBox Rect
	boundsValid bool
}

// NewInstanceSet creates an empty instance set with alpha 1, source-over
// blending, and a default sampler.
func NewInstanceSet() *InstanceSet {
	return &InstanceSet{
		alpha:     1,
		blendMode: BlendSourceOver,
		sampler:   DefaultSampler(),
	}
}

// SetTexture sets the atlas texture. A nil texture makes rendering a no-op.
func (s *InstanceSet) SetTexture(tex Texture) {
	s.texture = tex
}

// Texture returns the atlas texture, which may be nil.
func (s *InstanceSet) Texture() Texture {
	return s.texture
}

// SetTransforms replaces the per-instance transforms and invalidates the
// memoized bounding box.
func (s *InstanceSet) SetTransforms(transforms []Matrix) {
	s.transforms = transforms
	s.boundsValid = false
}

// Transforms returns the per-instance transforms.
func (s *InstanceSet) Transforms() []Matrix {
	return s.transforms
}

// SetTextureRegions replaces the per-instance texture regions and
// invalidates the memoized bounding box.
func (s *InstanceSet) SetTextureRegions(regions []Rect) {
	s.regions = regions
	s.boundsValid = false
}

// TextureRegions returns the per-instance texture regions.
func (s *InstanceSet) TextureRegions() []Rect {
	return s.regions
}

// SetColors replaces the per-instance overlay colors. An empty slice means
// pure texture sampling with no tint.
func (s *InstanceSet) SetColors(colors []RGBA) {
	s.colors = colors
}

// Colors returns the per-instance overlay colors.
func (s *InstanceSet) Colors() []RGBA {
	return s.colors
}

// SetAlpha sets the uniform alpha applied after blending.
func (s *InstanceSet) SetAlpha(alpha float64) {
	s.alpha = alpha
}

// Alpha returns the uniform alpha.
func (s *InstanceSet) Alpha() float64 {
	return s.alpha
}

// SetBlendMode sets the blend mode applied between each sprite's texture
// sample and its overlay color.
func (s *InstanceSet) SetBlendMode(mode BlendMode) {
	s.blendMode = mode
}

// BlendMode returns the blend mode.
func (s *InstanceSet) BlendMode() BlendMode {
	return s.blendMode
}

// SetCullRect supplies an externally computed coverage bound, skipping
// bounding-box computation entirely.
func (s *InstanceSet) SetCullRect(r Rect) {
	s.cullRect = r
	s.hasCullRect = true
}

// ClearCullRect removes the coverage override.
func (s *InstanceSet) ClearCullRect() {
	s.cullRect = Rect{}
	s.hasCullRect = false
}

// CullRect returns the coverage override and whether one is set.
func (s *InstanceSet) CullRect() (Rect, bool) {
	return s.cullRect, s.hasCullRect
}

// SetSamplerDescriptor configures texture sampling for this set.
func (s *InstanceSet) SetSamplerDescriptor(desc SamplerDescriptor) {
	s.sampler = desc
}

// SamplerDescriptor returns the sampler configuration.
func (s *InstanceSet) SamplerDescriptor() SamplerDescriptor {
	return s.sampler
}

// Len returns the instance count.
func (s *InstanceSet) Len() int {
	return len(s.transforms)
}

// valid reports whether the parallel slices satisfy the set's invariants:
// transforms and regions are index-aligned, and colors are either absent
// or index-aligned too.
func (s *InstanceSet) valid() bool {
	if len(s.transforms) != len(s.regions) {
		return false
	}
	return len(s.colors) == 0 || len(s.colors) == len(s.transforms)
}

// BoundingBox returns the union, over all instances, of the unit rectangle
// scaled to the instance's region size and mapped through its transform.
// The result is memoized; repeated calls without intervening
// SetTransforms/SetTextureRegions return the identical cached value.
func (s *InstanceSet) BoundingBox() Rect {
	if s.boundsValid {
		return s.boundingBox
	}
	var box Rect
	for i := range s.regions {
		bounds := RectFromSize(s.regions[i].Size()).TransformBounds(s.transforms[i])
		if i == 0 {
			box = bounds
		} else {
			box = box.Union(bounds)
		}
	}
	s.boundingBox = box
	s.boundsValid = true
	return box
}

// Coverage returns the axis-aligned bound of all visible output: the cull
// rect when one is set, otherwise the computed bounding box.
func (s *InstanceSet) Coverage() Rect {
	if s.hasCullRect {
		return s.cullRect
	}
	return s.BoundingBox()
}
