package atlas

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func pointNear(a, b Point) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon
}

func TestMatrixIdentity(t *testing.T) {
	m := Identity()
	if !m.IsIdentity() {
		t.Error("Identity() should report IsIdentity")
	}
	p := m.TransformPoint(Pt(3, 4))
	if !pointNear(p, Pt(3, 4)) {
		t.Errorf("identity moved point: %+v", p)
	}
}

func TestMatrixTranslate(t *testing.T) {
	m := Translate(10, -5)
	if !m.IsTranslation() {
		t.Error("Translate should report IsTranslation")
	}
	if got := m.Translation(); !pointNear(got, Pt(10, -5)) {
		t.Errorf("Translation() = %+v, want {10 -5}", got)
	}
	if got := m.TransformPoint(Pt(1, 1)); !pointNear(got, Pt(11, -4)) {
		t.Errorf("TransformPoint = %+v, want {11 -4}", got)
	}
}

func TestMatrixScale(t *testing.T) {
	m := Scale(2, 3)
	if m.IsTranslation() {
		t.Error("Scale should not report IsTranslation")
	}
	if got := m.TransformPoint(Pt(4, 5)); !pointNear(got, Pt(8, 15)) {
		t.Errorf("TransformPoint = %+v, want {8 15}", got)
	}
}

func TestMatrixRotate(t *testing.T) {
	m := Rotate(math.Pi / 2)
	got := m.TransformPoint(Pt(1, 0))
	if !pointNear(got, Pt(0, 1)) {
		t.Errorf("quarter turn of (1,0) = %+v, want {0 1}", got)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate-then-scale differs from scale-then-translate.
	ts := Scale(2, 2).Multiply(Translate(1, 0))
	if got := ts.TransformPoint(Pt(0, 0)); !pointNear(got, Pt(2, 0)) {
		t.Errorf("scale∘translate origin = %+v, want {2 0}", got)
	}
	st := Translate(1, 0).Multiply(Scale(2, 2))
	if got := st.TransformPoint(Pt(0, 0)); !pointNear(got, Pt(1, 0)) {
		t.Errorf("translate∘scale origin = %+v, want {1 0}", got)
	}
}

func TestTransformBounds(t *testing.T) {
	r := RectXYWH(0, 0, 2, 2)
	got := r.TransformBounds(Rotate(math.Pi / 4))
	halfDiag := math.Sqrt2
	if math.Abs(got.Max.X-halfDiag) > 1e-9 || math.Abs(got.Min.X+halfDiag) > 1e-9 {
		t.Errorf("rotated bounds = %+v, want x in [-√2, √2]", got)
	}
}
