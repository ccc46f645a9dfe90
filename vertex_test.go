package atlas

import (
	"encoding/binary"
	"math"
	"testing"
)

func f32At(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
}

func TestBuildTextureVertexData(t *testing.T) {
	regions := []Rect{RectXYWH(32, 16, 16, 8)}
	transforms := []Matrix{Translate(100, 50)}
	data := buildTextureVertexData(regions, transforms, ISize{Width: 64, Height: 32})

	if want := verticesPerQuad * textureVertexStride; len(data) != want {
		t.Fatalf("data length = %d, want %d", len(data), want)
	}

	// First vertex is the top-left corner: position is the transformed
	// origin, UV the region origin normalized by the texture size.
	if got := f32At(data, 0); got != 100 {
		t.Errorf("x = %v, want 100", got)
	}
	if got := f32At(data, 4); got != 50 {
		t.Errorf("y = %v, want 50", got)
	}
	if got := f32At(data, 8); got != 0.5 {
		t.Errorf("u = %v, want 0.5", got)
	}
	if got := f32At(data, 12); got != 0.5 {
		t.Errorf("v = %v, want 0.5", got)
	}

	// Vertex 1 is the top-right corner, offset by the region width.
	base := textureVertexStride
	if got := f32At(data, base); got != 116 {
		t.Errorf("top-right x = %v, want 116", got)
	}
	if got := f32At(data, base+8); got != 0.75 {
		t.Errorf("top-right u = %v, want 0.75", got)
	}
}

func TestBuildTextureVertexDataEmpty(t *testing.T) {
	if data := buildTextureVertexData(nil, nil, ISize{Width: 4, Height: 4}); data != nil {
		t.Errorf("empty input produced %d bytes", len(data))
	}
}

func TestBuildColorVertexDataPremultiplies(t *testing.T) {
	regions := []Rect{RectXYWH(0, 0, 4, 4)}
	transforms := []Matrix{Identity()}
	colors := []RGBA{{R: 1, G: 0.5, B: 0, A: 0.5}}
	data := buildColorVertexData(regions, transforms, colors)

	if want := verticesPerQuad * colorVertexStride; len(data) != want {
		t.Fatalf("data length = %d, want %d", len(data), want)
	}
	if got := f32At(data, 8); got != 0.5 {
		t.Errorf("premultiplied r = %v, want 0.5", got)
	}
	if got := f32At(data, 12); got != 0.25 {
		t.Errorf("premultiplied g = %v, want 0.25", got)
	}
	if got := f32At(data, 20); got != 0.5 {
		t.Errorf("alpha = %v, want 0.5", got)
	}
}

func TestMakeFrameUniform(t *testing.T) {
	data := makeFrameUniform(Identity(), ISize{Width: 200, Height: 100}, 1, 1, 0.75)
	if len(data) != frameUniformSize {
		t.Fatalf("length = %d, want %d", len(data), frameUniformSize)
	}

	// Row-major orthographic projection for a 200x100 target.
	if got := f32At(data, 0); got != 0.01 {
		t.Errorf("m00 = %v, want 0.01", got)
	}
	if got := f32At(data, 12); got != -1 {
		t.Errorf("m03 = %v, want -1", got)
	}
	if got := f32At(data, 20); got != -0.02 {
		t.Errorf("m11 = %v, want -0.02", got)
	}
	if got := f32At(data, 28); got != 1 {
		t.Errorf("m13 = %v, want 1", got)
	}

	// Texture y scale and alpha trail the matrix.
	if got := f32At(data, 64); got != 1 {
		t.Errorf("y_scale = %v, want 1", got)
	}
	if got := f32At(data, 68); got != 0.75 {
		t.Errorf("alpha = %v, want 0.75", got)
	}
}

func TestMakeFrameUniformTargetYFlip(t *testing.T) {
	data := makeFrameUniform(Identity(), ISize{Width: 100, Height: 100}, -1, -1, 1)

	// The projection's second row is negated for bottom-up targets.
	if got := f32At(data, 20); got != 0.02 {
		t.Errorf("flipped m11 = %v, want 0.02", got)
	}
	if got := f32At(data, 28); got != -1 {
		t.Errorf("flipped m13 = %v, want -1", got)
	}
	// The texture's own orientation travels separately.
	if got := f32At(data, 64); got != -1 {
		t.Errorf("y_scale = %v, want -1", got)
	}
}

func TestMakePorterDuffUniform(t *testing.T) {
	coeffs, ok := PorterDuffCoefficients(BlendDestinationOver)
	if !ok {
		t.Fatal("DestinationOver should have coefficients")
	}
	data := makePorterDuffUniform(coeffs, 0.5)
	if len(data) != porterDuffUniformSize {
		t.Fatalf("length = %d, want %d", len(data), porterDuffUniformSize)
	}

	want := []float32{0, 1, 1, 0, 0}
	for i, w := range want {
		if got := f32At(data, i*4); got != w {
			t.Errorf("coefficient %d = %v, want %v", i, got, w)
		}
	}
	if got := f32At(data, 20); got != 0.5 {
		t.Errorf("output alpha = %v, want 0.5", got)
	}
	if got := f32At(data, 24); got != 1 {
		t.Errorf("input alpha = %v, want 1", got)
	}
}
