package atlas

// Strategy identifies which render path an InstanceSet resolves to.
type Strategy uint8

const (
	// StrategyNone draws nothing; the call succeeds as a no-op.
	StrategyNone Strategy = iota

	// StrategyTexture samples the atlas texture directly, ignoring
	// per-instance colors.
	StrategyTexture

	// StrategyColor draws per-instance colors directly, ignoring the
	// atlas texture.
	StrategyColor

	// StrategyPorterDuff blends texture and colors in one pass using a
	// coefficient-driven shader.
	StrategyPorterDuff

	// StrategyComposite runs the multi-pass path: deduplicate, pack,
	// composite offscreen, then resample the snapshot.
	StrategyComposite
)

var strategyNames = [...]string{
	StrategyNone:       "None",
	StrategyTexture:    "Texture",
	StrategyColor:      "Color",
	StrategyPorterDuff: "PorterDuff",
	StrategyComposite:  "Composite",
}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return "Unknown"
}

// SelectStrategy resolves the render path for a set. The checks run in
// order; earlier outcomes short-circuit later ones:
//
//  1. No texture, BlendClear, or a non-positive alpha draw nothing.
//  2. BlendSource, or a set with no colors, needs only the texture.
//  3. BlendDestination needs only the colors.
//  4. Any remaining simple mode blends in a single pass.
//  5. Advanced modes composite offscreen.
func SelectStrategy(s *InstanceSet) Strategy {
	switch {
	case s.texture == nil, s.blendMode == BlendClear, s.alpha <= 0:
		return StrategyNone
	case s.blendMode == BlendSource, len(s.colors) == 0:
		return StrategyTexture
	case s.blendMode == BlendDestination:
		return StrategyColor
	case s.blendMode.Simple():
		return StrategyPorterDuff
	default:
		return StrategyComposite
	}
}
