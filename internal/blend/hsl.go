// Non-separable blend modes (Hue, Saturation, Color, Luminosity) per
// W3C Compositing and Blending Level 1, section 8. These operate on the
// whole RGB triplet through luminance and saturation adjustments rather
// than per channel.
package blend

import "math"

// lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
//
// Parameters are normalized float32 values in [0, 1].
func lum(r, g, b float32) float32 {
	return 0.30*r + 0.59*g + 0.11*b
}

// sat returns the saturation (max - min) of a color.
func sat(r, g, b float32) float32 {
	return max3(r, g, b) - min3(r, g, b)
}

// clipColor clips color components to [0, 1] while preserving luminance.
// Out-of-range components are scaled towards the luminance to bring them
// back into range while maintaining the relative relationships.
func clipColor(r, g, b float32) (float32, float32, float32) {
	l := lum(r, g, b)
	n := min3(r, g, b)
	x := max3(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// setLum sets the luminance of a color while preserving saturation and
// hue, clipping the result back into range.
func setLum(r, g, b, l float32) (float32, float32, float32) {
	d := l - lum(r, g, b)
	return clipColor(r+d, g+d, b+d)
}

// setSat sets the saturation of a color by scaling the min, mid, and max
// components to the target while preserving their ordering. A grayscale
// input stays grayscale.
func setSat(r, g, b, s float32) (float32, float32, float32) {
	minPtr, midPtr, maxPtr := sortRGB(&r, &g, &b)

	minVal := *minPtr
	midVal := *midPtr
	maxVal := *maxPtr

	if maxVal > minVal {
		*midPtr = ((midVal - minVal) * s) / (maxVal - minVal)
		*maxPtr = s
		*minPtr = 0
	}
	return r, g, b
}

// sortRGB returns pointers to r, g, b sorted by value (minPtr, midPtr, maxPtr).
func sortRGB(r, g, b *float32) (minPtr, midPtr, maxPtr *float32) {
	switch {
	case *r <= *g && *g <= *b:
		return r, g, b
	case *r <= *b && *b <= *g:
		return r, b, g
	case *b <= *r && *r <= *g:
		return b, r, g
	case *g <= *r && *r <= *b:
		return g, r, b
	case *g <= *b && *b <= *r:
		return g, b, r
	default:
		return b, g, r
	}
}

// hslBlendHue: SetLum(SetSat(Cs, Sat(Cb)), Lum(Cb)).
// Hue of the source, saturation and luminosity of the backdrop.
func hslBlendHue(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := setSat(sr, sg, sb, sat(dr, dg, db))
	return setLum(r, g, b, lum(dr, dg, db))
}

// hslBlendSaturation: SetLum(SetSat(Cb, Sat(Cs)), Lum(Cb)).
// Saturation of the source, hue and luminosity of the backdrop.
func hslBlendSaturation(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	r, g, b := setSat(dr, dg, db, sat(sr, sg, sb))
	return setLum(r, g, b, lum(dr, dg, db))
}

// hslBlendColor: SetLum(Cs, Lum(Cb)).
// Hue and saturation of the source, luminosity of the backdrop.
func hslBlendColor(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return setLum(sr, sg, sb, lum(dr, dg, db))
}

// hslBlendLuminosity: SetLum(Cb, Lum(Cs)).
// Luminosity of the source, hue and saturation of the backdrop.
func hslBlendLuminosity(sr, sg, sb, dr, dg, db float32) (float32, float32, float32) {
	return setLum(dr, dg, db, lum(sr, sg, sb))
}

// min3 returns the minimum of three float32 values.
func min3(a, b, c float32) float32 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// max3 returns the maximum of three float32 values.
func max3(a, b, c float32) float32 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

// Byte-based wrappers integrating the HSL modes with Func.

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendHue)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendSaturation)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendColor)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(sr, sg, sb, sa, dr, dg, db, da, hslBlendLuminosity)
}

// nonSeparableBlend applies a whole-triplet blend function inside the
// standard formula: Result = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb).
func nonSeparableBlend(
	sr, sg, sb, sa, dr, dg, db, da byte,
	blendFunc func(sr, sg, sb, dr, dg, db float32) (float32, float32, float32),
) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	// Unpremultiply to normalized floats before applying B.
	sur := float32(sr) / float32(sa)
	sug := float32(sg) / float32(sa)
	sub := float32(sb) / float32(sa)
	dur := float32(dr) / float32(da)
	dug := float32(dg) / float32(da)
	dub := float32(db) / float32(da)

	blendR, blendG, blendB := blendFunc(sur, sug, sub, dur, dug, dub)

	invSa := 255 - sa
	invDa := 255 - da

	// Alpha: Sa + Da * (1 - Sa)
	finalA := addDiv255(sa, mulDiv255(da, invSa))

	// Color: (1 - Sa)*D + (1 - Da)*S + Sa*Da*B
	finalR := addDiv255(mulDiv255(dr, invSa), mulDiv255(sr, invDa))
	finalG := addDiv255(mulDiv255(dg, invSa), mulDiv255(sg, invDa))
	finalB := addDiv255(mulDiv255(db, invSa), mulDiv255(sb, invDa))

	saDa := (float32(sa) / 255.0) * (float32(da) / 255.0)
	finalR = addDiv255(finalR, roundByte(blendR*saDa*255.0))
	finalG = addDiv255(finalG, roundByte(blendG*saDa*255.0))
	finalB = addDiv255(finalB, roundByte(blendB*saDa*255.0))

	return finalR, finalG, finalB, finalA
}

func roundByte(v float32) byte {
	r := math.Round(float64(v))
	if r <= 0 {
		return 0
	}
	if r >= 255 {
		return 255
	}
	return byte(r)
}
