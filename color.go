package atlas

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1]. Components are straight
// (non-premultiplied) unless obtained from Premultiply.
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{
		R: c.R * c.A,
		G: c.G * c.A,
		B: c.B * c.A,
		A: c.A,
	}
}

// Unpremultiply returns an unpremultiplied color.
func (c RGBA) Unpremultiply() RGBA {
	if c.A == 0 {
		return RGBA{}
	}
	return RGBA{
		R: c.R / c.A,
		G: c.G / c.A,
		B: c.B / c.A,
		A: c.A,
	}
}

// Quantize packs the color into a 32-bit ARGB value with 8 bits per
// channel. Sub-atlas deduplication groups instances by this value rather
// than by exact floating-point equality, so colors that differ only by
// representation noise still collapse to one packed entry. Colors that are
// visually identical but quantize differently split into separate entries;
// that is an accepted property of the grouping key, not a defect.
func (c RGBA) Quantize() uint32 {
	return uint32(clamp255(c.A*255))<<24 |
		uint32(clamp255(c.R*255))<<16 |
		uint32(clamp255(c.G*255))<<8 |
		uint32(clamp255(c.B*255))
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(1, 1, 1)
	Transparent = RGBA{}
)
