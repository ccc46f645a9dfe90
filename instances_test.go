package atlas

import "testing"

func TestInstanceSetDefaults(t *testing.T) {
	s := NewInstanceSet()
	if s.Alpha() != 1 {
		t.Errorf("default alpha = %v, want 1", s.Alpha())
	}
	if s.BlendMode() != BlendSourceOver {
		t.Errorf("default blend mode = %s, want SourceOver", s.BlendMode())
	}
	if s.Len() != 0 {
		t.Errorf("default len = %d, want 0", s.Len())
	}
	if _, ok := s.CullRect(); ok {
		t.Error("new set should have no cull rect")
	}
}

func TestInstanceSetValid(t *testing.T) {
	s := NewInstanceSet()
	s.SetTransforms([]Matrix{Identity(), Identity()})
	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 8, 8), RectXYWH(8, 0, 8, 8)})
	if !s.valid() {
		t.Error("aligned slices without colors should be valid")
	}

	s.SetColors([]RGBA{RGB(1, 0, 0)})
	if s.valid() {
		t.Error("one color for two instances should be invalid")
	}

	s.SetColors([]RGBA{RGB(1, 0, 0), RGB(0, 1, 0)})
	if !s.valid() {
		t.Error("aligned colors should be valid")
	}

	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 8, 8)})
	if s.valid() {
		t.Error("mismatched regions should be invalid")
	}
}

func TestBoundingBoxUnion(t *testing.T) {
	s := NewInstanceSet()
	s.SetTransforms([]Matrix{Translate(10, 10), Translate(50, 20)})
	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 8, 8), RectXYWH(32, 0, 16, 4)})

	got := s.BoundingBox()
	want := Rect{Min: Pt(10, 10), Max: Pt(66, 24)}
	if got != want {
		t.Errorf("BoundingBox() = %+v, want %+v", got, want)
	}
}

func TestBoundingBoxMemoized(t *testing.T) {
	transforms := []Matrix{Translate(3, 4)}
	s := NewInstanceSet()
	s.SetTransforms(transforms)
	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 10, 10)})

	first := s.BoundingBox()

	// Mutating the slice contents without calling a setter does not
	// invalidate the memoized value.
	transforms[0] = Translate(100, 100)
	if got := s.BoundingBox(); got != first {
		t.Errorf("mutation without setter changed bounds: %+v", got)
	}

	// Reassigning through the setter recomputes.
	s.SetTransforms(transforms)
	recomputed := s.BoundingBox()
	if recomputed == first {
		t.Error("SetTransforms should invalidate the memoized bounds")
	}
	want := Rect{Min: Pt(100, 100), Max: Pt(110, 110)}
	if recomputed != want {
		t.Errorf("recomputed bounds = %+v, want %+v", recomputed, want)
	}
}

func TestBoundingBoxSurvivesColorChanges(t *testing.T) {
	s := NewInstanceSet()
	s.SetTransforms([]Matrix{Identity()})
	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 4, 4)})

	first := s.BoundingBox()
	s.SetColors([]RGBA{RGB(0, 0, 1)})
	s.SetAlpha(0.5)
	s.SetBlendMode(BlendMultiply)
	if got := s.BoundingBox(); got != first {
		t.Errorf("non-geometry setters changed bounds: %+v", got)
	}
}

func TestCoverageCullRectOverride(t *testing.T) {
	s := NewInstanceSet()
	s.SetTransforms([]Matrix{Identity()})
	s.SetTextureRegions([]Rect{RectXYWH(0, 0, 100, 100)})

	cull := RectXYWH(0, 0, 10, 10)
	s.SetCullRect(cull)
	if got := s.Coverage(); got != cull {
		t.Errorf("Coverage() with cull rect = %+v, want %+v", got, cull)
	}

	s.ClearCullRect()
	if got := s.Coverage(); got != s.BoundingBox() {
		t.Errorf("Coverage() after clear = %+v, want bounding box", got)
	}
}
