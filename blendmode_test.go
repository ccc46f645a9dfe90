package atlas

import "testing"

func TestBlendModeString(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want string
	}{
		{BlendClear, "Clear"},
		{BlendSourceOver, "SourceOver"},
		{BlendModulate, "Modulate"},
		{BlendMultiply, "Multiply"},
		{BlendLuminosity, "Luminosity"},
		{BlendMode(200), "Unknown(200)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("BlendMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestBlendModeSimple(t *testing.T) {
	for m := BlendClear; m <= BlendModulate; m++ {
		if !m.Simple() {
			t.Errorf("%v should be simple", m)
		}
	}
	for m := BlendMultiply; m <= BlendLuminosity; m++ {
		if m.Simple() {
			t.Errorf("%v should not be simple", m)
		}
	}
}

func TestPorterDuffCoefficients(t *testing.T) {
	tests := []struct {
		mode BlendMode
		want Coefficients
	}{
		{BlendClear, Coefficients{0, 0, 0, 0, 0}},
		{BlendSource, Coefficients{1, 0, 0, 0, 0}},
		{BlendSourceOver, Coefficients{1, 0, 1, -1, 0}},
		{BlendDestinationOver, Coefficients{0, 1, 1, 0, 0}},
		{BlendSourceIn, Coefficients{0, 1, 0, 0, 0}},
		{BlendXor, Coefficients{1, -1, 1, -1, 0}},
		{BlendPlus, Coefficients{1, 0, 1, 0, 0}},
		{BlendModulate, Coefficients{0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, ok := PorterDuffCoefficients(tt.mode)
			if !ok {
				t.Fatalf("PorterDuffCoefficients(%v) reported no coefficients", tt.mode)
			}
			if got != tt.want {
				t.Errorf("coefficients = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPorterDuffCoefficientsAdvanced(t *testing.T) {
	if _, ok := PorterDuffCoefficients(BlendMultiply); ok {
		t.Error("advanced mode should have no coefficient form")
	}
}

func TestInvertPorterDuff(t *testing.T) {
	tests := []struct {
		mode, want BlendMode
	}{
		{BlendSource, BlendDestination},
		{BlendDestination, BlendSource},
		{BlendSourceOver, BlendDestinationOver},
		{BlendDestinationOver, BlendSourceOver},
		{BlendSourceIn, BlendDestinationIn},
		{BlendDestinationIn, BlendSourceIn},
		{BlendSourceOut, BlendDestinationOut},
		{BlendDestinationOut, BlendSourceOut},
		{BlendSourceAtop, BlendDestinationAtop},
		{BlendDestinationAtop, BlendSourceAtop},
		{BlendClear, BlendClear},
		{BlendXor, BlendXor},
		{BlendPlus, BlendPlus},
		{BlendModulate, BlendModulate},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, ok := InvertPorterDuff(tt.mode)
			if !ok {
				t.Fatalf("InvertPorterDuff(%v) reported no inverse", tt.mode)
			}
			if got != tt.want {
				t.Errorf("InvertPorterDuff(%v) = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}
}

func TestInvertPorterDuffRoundTrip(t *testing.T) {
	for m := BlendClear; m <= BlendModulate; m++ {
		inv, ok := InvertPorterDuff(m)
		if !ok {
			t.Fatalf("simple mode %v has no inverse", m)
		}
		back, ok := InvertPorterDuff(inv)
		if !ok || back != m {
			t.Errorf("invert is not an involution for %v: got %v", m, back)
		}
	}
}

func TestInvertPorterDuffAdvanced(t *testing.T) {
	for m := BlendMultiply; m <= BlendLuminosity; m++ {
		if _, ok := InvertPorterDuff(m); ok {
			t.Errorf("advanced mode %v should report no inverse", m)
		}
	}
}
