package atlas

import "testing"

func TestRectXYWH(t *testing.T) {
	r := RectXYWH(2, 3, 10, 20)
	if r.Min != Pt(2, 3) || r.Max != Pt(12, 23) {
		t.Errorf("RectXYWH = %+v", r)
	}
	if r.Width() != 10 || r.Height() != 20 {
		t.Errorf("Width/Height = %v/%v, want 10/20", r.Width(), r.Height())
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"positive area", RectXYWH(0, 0, 1, 1), false},
		{"zero width", RectXYWH(0, 0, 0, 1), true},
		{"zero height", RectXYWH(0, 0, 1, 0), true},
		{"inverted", Rect{Min: Pt(5, 5), Max: Pt(0, 0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestISizeIsEmpty(t *testing.T) {
	if (ISize{Width: 4, Height: 4}).IsEmpty() {
		t.Error("4x4 should not be empty")
	}
	if !(ISize{Width: 0, Height: 4}).IsEmpty() {
		t.Error("zero width should be empty")
	}
	if !(ISize{Width: 4, Height: -1}).IsEmpty() {
		t.Error("negative height should be empty")
	}
}

func TestRectUnion(t *testing.T) {
	a := RectXYWH(0, 0, 4, 4)
	b := RectXYWH(10, -2, 4, 4)
	got := a.Union(b)
	want := Rect{Min: Pt(0, -2), Max: Pt(14, 4)}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestRectIntersects(t *testing.T) {
	a := RectXYWH(0, 0, 10, 10)
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", RectXYWH(5, 5, 10, 10), true},
		{"contained", RectXYWH(2, 2, 2, 2), true},
		{"disjoint", RectXYWH(20, 20, 5, 5), false},
		{"edge touching", RectXYWH(10, 0, 5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := RectXYWH(0, 0, 10, 10)
	if !r.Contains(Pt(5, 5)) {
		t.Error("interior point should be contained")
	}
	if !r.Contains(Pt(0, 0)) || !r.Contains(Pt(10, 10)) {
		t.Error("boundary points should be contained")
	}
	if r.Contains(Pt(10.1, 5)) {
		t.Error("exterior point should not be contained")
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := RectXYWH(0, 0, 10, 10)
	if !outer.ContainsRect(RectXYWH(1, 1, 5, 5)) {
		t.Error("strictly inner rect should be contained")
	}
	if !outer.ContainsRect(outer) {
		t.Error("rect should contain itself")
	}
	if outer.ContainsRect(RectXYWH(5, 5, 10, 10)) {
		t.Error("overflowing rect should not be contained")
	}
}

func TestRectCornersOrder(t *testing.T) {
	c := RectXYWH(1, 2, 3, 4).Corners()
	want := [4]Point{{1, 2}, {4, 2}, {1, 6}, {4, 6}}
	if c != want {
		t.Errorf("Corners = %v, want %v", c, want)
	}
}

func TestTransformedCorners(t *testing.T) {
	c := RectXYWH(0, 0, 2, 2).TransformedCorners(Translate(5, 5))
	want := [4]Point{{5, 5}, {7, 5}, {5, 7}, {7, 7}}
	if c != want {
		t.Errorf("TransformedCorners = %v, want %v", c, want)
	}
}
