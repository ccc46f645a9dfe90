package atlas

import "fmt"

// BlendMode represents a Porter-Duff compositing operation or an advanced
// blend mode.
//
// The ordering is significant: every mode up to and including BlendModulate
// is "simple", meaning expressible as fixed per-channel blend coefficients applied
// in a single pass. Modes after BlendModulate are "advanced" and require a
// generic per-pixel compositing evaluation.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
type BlendMode uint8

const (
	// Porter-Duff modes (standard compositing operators)
	BlendClear           BlendMode = iota // Result: 0 (clear destination)
	BlendSource                           // Result: S (replace with source)
	BlendDestination                      // Result: D (keep destination)
	BlendSourceOver                       // Result: S + D*(1-Sa) [default]
	BlendDestinationOver                  // Result: S*(1-Da) + D
	BlendSourceIn                         // Result: S*Da
	BlendDestinationIn                    // Result: D*Sa
	BlendSourceOut                        // Result: S*(1-Da)
	BlendDestinationOut                   // Result: D*(1-Sa)
	BlendSourceAtop                       // Result: S*Da + D*(1-Sa)
	BlendDestinationAtop                  // Result: S*(1-Da) + D*Sa
	BlendXor                              // Result: S*(1-Da) + D*(1-Sa)
	BlendPlus                             // Result: S + D (clamped)
	BlendModulate                         // Result: S*D

	// Advanced separable blend modes
	BlendMultiply
	BlendScreen
	BlendOverlay
	BlendDarken
	BlendLighten
	BlendColorDodge
	BlendColorBurn
	BlendHardLight
	BlendSoftLight
	BlendDifference
	BlendExclusion

	// Advanced non-separable blend modes (operate in HSL space)
	BlendHue
	BlendSaturation
	BlendColor
	BlendLuminosity
)

// blendModeNames is indexed by BlendMode.
var blendModeNames = [...]string{
	"Clear", "Source", "Destination", "SourceOver", "DestinationOver",
	"SourceIn", "DestinationIn", "SourceOut", "DestinationOut",
	"SourceAtop", "DestinationAtop", "Xor", "Plus", "Modulate",
	"Multiply", "Screen", "Overlay", "Darken", "Lighten",
	"ColorDodge", "ColorBurn", "HardLight", "SoftLight",
	"Difference", "Exclusion",
	"Hue", "Saturation", "Color", "Luminosity",
}

// String returns the blend mode name.
func (m BlendMode) String() string {
	if int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(m))
}

// Simple returns true if the mode can be expressed as fixed per-channel
// blend coefficients in a single pass.
func (m BlendMode) Simple() bool {
	return m <= BlendModulate
}

// Coefficients holds the five Porter-Duff blend coefficients evaluated by
// the single-pass blend shader:
//
//	out = Src*src + Src*Da*srcDstAlpha + Dst*dst + Dst*Sa*dstSrcAlpha
//	      + Dst*Src*dstSrcColor
type Coefficients struct {
	Src         float32
	SrcDstAlpha float32
	Dst         float32
	DstSrcAlpha float32
	DstSrcColor float32
}

// porterDuffCoefficients is indexed by BlendMode and covers the simple
// subset only.
var porterDuffCoefficients = [BlendModulate + 1]Coefficients{
	BlendClear:           {0, 0, 0, 0, 0},
	BlendSource:          {1, 0, 0, 0, 0},
	BlendDestination:     {0, 0, 1, 0, 0},
	BlendSourceOver:      {1, 0, 1, -1, 0},
	BlendDestinationOver: {0, 1, 1, 0, 0},
	BlendSourceIn:        {0, 1, 0, 0, 0},
	BlendDestinationIn:   {0, 0, 0, 1, 0},
	BlendSourceOut:       {1, -1, 0, 0, 0},
	BlendDestinationOut:  {0, 0, 1, -1, 0},
	BlendSourceAtop:      {0, 1, 1, -1, 0},
	BlendDestinationAtop: {1, -1, 0, 1, 0},
	BlendXor:             {1, -1, 1, -1, 0},
	BlendPlus:            {1, 0, 1, 0, 0},
	BlendModulate:        {0, 0, 0, 0, 1},
}

// PorterDuffCoefficients returns the blend coefficients for a simple mode.
// The second return value is false for advanced modes, which have no
// coefficient form.
func PorterDuffCoefficients(m BlendMode) (Coefficients, bool) {
	if !m.Simple() {
		return Coefficients{}, false
	}
	return porterDuffCoefficients[m], true
}

// InvertPorterDuff returns the blend mode with the roles of source and
// destination swapped. The single-pass blend shader samples the atlas
// texture as its destination operand, so the dispatcher looks up
// coefficients for the inverse of the requested mode.
//
// The second return value is false when the mode has no defined inverse
// (all advanced modes); callers fall back to BlendSource.
func InvertPorterDuff(m BlendMode) (BlendMode, bool) {
	switch m {
	case BlendClear, BlendXor, BlendPlus, BlendModulate:
		return m, true
	case BlendSource:
		return BlendDestination, true
	case BlendDestination:
		return BlendSource, true
	case BlendSourceOver:
		return BlendDestinationOver, true
	case BlendDestinationOver:
		return BlendSourceOver, true
	case BlendSourceIn:
		return BlendDestinationIn, true
	case BlendDestinationIn:
		return BlendSourceIn, true
	case BlendSourceOut:
		return BlendDestinationOut, true
	case BlendDestinationOut:
		return BlendSourceOut, true
	case BlendSourceAtop:
		return BlendDestinationAtop, true
	case BlendDestinationAtop:
		return BlendSourceAtop, true
	default:
		return m, false
	}
}
