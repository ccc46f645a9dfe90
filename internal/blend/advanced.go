// Separable advanced blend modes per W3C Compositing and Blending
// Level 1. Each mode applies a per-channel function B(Cb, Cs) inside the
// standard compositing formula; channels blend independently.
package blend

import "math"

// separableBlend applies a per-channel blend function inside the
// standard formula: Result = (1 - Sa)*D + (1 - Da)*S + Sa*Da*B(Cs, Cb)
// where B operates on unmultiplied source and destination channels.
func separableBlend(sr, sg, sb, sa, dr, dg, db, da byte, blendChan func(s, d byte) byte) (byte, byte, byte, byte) {
	// A fully transparent operand passes the other side through.
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	// Unpremultiply both operands before applying B.
	sur := byte((uint16(sr) * 255) / uint16(sa))
	sug := byte((uint16(sg) * 255) / uint16(sa))
	sub := byte((uint16(sb) * 255) / uint16(sa))
	dur := byte((uint16(dr) * 255) / uint16(da))
	dug := byte((uint16(dg) * 255) / uint16(da))
	dub := byte((uint16(db) * 255) / uint16(da))

	blendR := blendChan(sur, dur)
	blendG := blendChan(sug, dug)
	blendB := blendChan(sub, dub)

	invSa := 255 - sa
	invDa := 255 - da

	// Alpha: Sa + Da * (1 - Sa)
	finalA := addDiv255(sa, mulDiv255(da, invSa))

	// Color: (1 - Sa)*D + (1 - Da)*S + Sa*Da*B
	finalR := addDiv255(mulDiv255(dr, invSa), mulDiv255(sr, invDa))
	finalG := addDiv255(mulDiv255(dg, invSa), mulDiv255(sg, invDa))
	finalB := addDiv255(mulDiv255(db, invSa), mulDiv255(sb, invDa))

	saDa := mulDiv255(sa, da)
	finalR = addDiv255(finalR, mulDiv255(saDa, blendR))
	finalG = addDiv255(finalG, mulDiv255(saDa, blendG))
	finalB = addDiv255(finalB, mulDiv255(saDa, blendB))

	return finalR, finalG, finalB, finalA
}

// blendMultiply multiplies source and destination colors.
// Formula: B(Cb, Cs) = Cb * Cs
func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, mulDiv255)
}

// blendScreen produces a lighter result than multiply.
// Formula: B(Cb, Cs) = 1 - (1 - Cb) * (1 - Cs)
func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return 255 - mulDiv255(255-s, 255-d)
	})
}

// blendOverlay combines Multiply and Screen.
// Formula: B(Cb, Cs) = HardLight(Cs, Cb) (swapped parameters)
func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		return hardLightChan(d, s)
	})
}

// blendDarken selects the darker of source and destination.
// Formula: B(Cb, Cs) = min(Cb, Cs)
func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, minByte)
}

// blendLighten selects the lighter of source and destination.
// Formula: B(Cb, Cs) = max(Cb, Cs)
func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, maxByte)
}

// blendColorDodge brightens the destination to reflect the source.
// Formula: B(Cb, Cs) = if Cs == 1: 1, else: min(1, Cb / (1 - Cs))
func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 255 {
			return 255
		}
		result := (uint16(d) * 255) / uint16(255-s)
		if result > 255 {
			return 255
		}
		return byte(result)
	})
}

// blendColorBurn darkens the destination to reflect the source.
// Formula: B(Cb, Cs) = if Cs == 0: 0, else: 1 - min(1, (1 - Cb) / Cs)
func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s == 0 {
			return 0
		}
		result := (uint16(255-d) * 255) / uint16(s)
		if result > 255 {
			return 0
		}
		return 255 - byte(result)
	})
}

// blendHardLight combines Multiply and Screen based on source.
// Formula: B(Cb, Cs) = if Cs <= 0.5: Multiply(Cb, 2*Cs), else: Screen(Cb, 2*Cs - 1)
func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, hardLightChan)
}

// hardLightChan is the per-channel hard-light function, shared with
// overlay through parameter swapping.
func hardLightChan(s, d byte) byte {
	if s <= 128 {
		return mulDiv255(2*s, d)
	}
	return 255 - mulDiv255(2*(255-s), 255-d)
}

// blendSoftLight is a softer version of HardLight.
// Formula: B(Cb, Cs) = Cb - (1 - 2*Cs)*Cb*(1 - Cb) for Cs <= 0.5,
// otherwise Cb + (2*Cs - 1)*(D(Cb) - Cb) with the W3C piecewise D ramp.
func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		sf := float64(s) / 255.0
		df := float64(d) / 255.0

		var result float64
		if sf <= 0.5 {
			result = df - (1-2*sf)*df*(1-df)
		} else {
			var dx float64
			if df <= 0.25 {
				dx = ((16*df-12)*df + 4) * df
			} else {
				dx = math.Sqrt(df)
			}
			result = df + (2*sf-1)*(dx-df)
		}

		if result < 0 {
			return 0
		}
		if result > 1 {
			return 255
		}
		return byte(result * 255)
	})
}

// blendDifference produces the absolute difference between source and destination.
// Formula: B(Cb, Cs) = |Cb - Cs|
func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		if s > d {
			return s - d
		}
		return d - s
	})
}

// blendExclusion is similar to Difference but with lower contrast.
// Formula: B(Cb, Cs) = Cb + Cs - 2 * Cb * Cs
func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(sr, sg, sb, sa, dr, dg, db, da, func(s, d byte) byte {
		sum := uint16(s) + uint16(d)
		diff := sum - 2*uint16(mulDiv255(s, d))
		if diff > 255 {
			return 255
		}
		return byte(diff)
	})
}
