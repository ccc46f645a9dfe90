package atlas

import "testing"

// stubTexture is a minimal Texture for dispatch tests.
type stubTexture struct {
	size   ISize
	yScale float64
}

func (t *stubTexture) Size() ISize          { return t.size }
func (t *stubTexture) YCoordScale() float64 { return t.yScale }

func newStubTexture(w, h int) *stubTexture {
	return &stubTexture{size: ISize{Width: w, Height: h}, yScale: 1}
}

func singleInstanceSet(tex Texture) *InstanceSet {
	s := NewInstanceSet()
	s.SetTexture(tex)
	s.SetTransforms([]Matrix{Identity()})
	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 16, 16)})
	return s
}

func TestSelectStrategy(t *testing.T) {
	tex := newStubTexture(64, 64)
	colors := []RGBA{RGB(1, 0, 0)}

	tests := []struct {
		name  string
		setup func(*InstanceSet)
		want  Strategy
	}{
		{"no texture", func(s *InstanceSet) { s.SetTexture(nil) }, StrategyNone},
		{"clear mode", func(s *InstanceSet) { s.SetBlendMode(BlendClear) }, StrategyNone},
		{"zero alpha", func(s *InstanceSet) { s.SetAlpha(0) }, StrategyNone},
		{"negative alpha", func(s *InstanceSet) { s.SetAlpha(-0.5) }, StrategyNone},
		{"source mode with colors", func(s *InstanceSet) {
			s.SetColors(colors)
			s.SetBlendMode(BlendSource)
		}, StrategyTexture},
		{"no colors", func(s *InstanceSet) {}, StrategyTexture},
		{"no colors advanced mode", func(s *InstanceSet) {
			s.SetBlendMode(BlendMultiply)
		}, StrategyTexture},
		{"destination mode", func(s *InstanceSet) {
			s.SetColors(colors)
			s.SetBlendMode(BlendDestination)
		}, StrategyColor},
		{"source-over with colors", func(s *InstanceSet) {
			s.SetColors(colors)
		}, StrategyPorterDuff},
		{"modulate with colors", func(s *InstanceSet) {
			s.SetColors(colors)
			s.SetBlendMode(BlendModulate)
		}, StrategyPorterDuff},
		{"multiply with colors", func(s *InstanceSet) {
			s.SetColors(colors)
			s.SetBlendMode(BlendMultiply)
		}, StrategyComposite},
		{"luminosity with colors", func(s *InstanceSet) {
			s.SetColors(colors)
			s.SetBlendMode(BlendLuminosity)
		}, StrategyComposite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := singleInstanceSet(tex)
			tt.setup(s)
			if got := SelectStrategy(s); got != tt.want {
				t.Errorf("SelectStrategy() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStrategyPrecedence(t *testing.T) {
	// Clear wins over everything else that would otherwise draw.
	s := singleInstanceSet(newStubTexture(64, 64))
	s.SetColors([]RGBA{RGB(0, 1, 0)})
	s.SetBlendMode(BlendClear)
	if got := SelectStrategy(s); got != StrategyNone {
		t.Errorf("clear with colors: got %s, want None", got)
	}

	// Source wins over the color and blend paths.
	s.SetBlendMode(BlendSource)
	if got := SelectStrategy(s); got != StrategyTexture {
		t.Errorf("source with colors: got %s, want Texture", got)
	}
}

func TestStrategyString(t *testing.T) {
	if got := StrategyComposite.String(); got != "Composite" {
		t.Errorf("String() = %q, want Composite", got)
	}
	if got := Strategy(99).String(); got != "Unknown" {
		t.Errorf("String() = %q, want Unknown", got)
	}
}
