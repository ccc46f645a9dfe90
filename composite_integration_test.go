package atlas_test

import (
	"image"
	"testing"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend/software"
)

// capturePass records the texture bound for the final resample draw.
type capturePass struct {
	texture     atlas.Texture
	vertexCount uint32
	draws       int
}

func (p *capturePass) SetLabel(string) {}

func (p *capturePass) SetPipeline(atlas.Pipeline) error { return nil }

func (p *capturePass) SetVertexData(data []byte, count uint32) error {
	p.vertexCount = count
	return nil
}

func (p *capturePass) BindUniform(uint32, []byte) error { return nil }

func (p *capturePass) BindTexture(tex atlas.Texture, _ atlas.SamplerDescriptor) error {
	p.texture = tex
	return nil
}

func (p *capturePass) SetStencilReference(uint32) {}

func (p *capturePass) Draw() error {
	p.draws++
	return nil
}

type nopPipelines struct{}

func (nopPipelines) TexturePipeline(atlas.PipelineOptions) (atlas.Pipeline, error) {
	return "texture", nil
}

func (nopPipelines) ColorPipeline(atlas.PipelineOptions) (atlas.Pipeline, error) {
	return "color", nil
}

func (nopPipelines) PorterDuffPipeline(atlas.PipelineOptions) (atlas.Pipeline, error) {
	return "porterduff", nil
}

// grayAtlas returns an opaque uniform gray texture.
func grayAtlas(w, h int, level uint8) *software.Texture {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = level
		img.Pix[i+1] = level
		img.Pix[i+2] = level
		img.Pix[i+3] = 255
	}
	return software.NewTextureFromImage(img)
}

func TestCompositeMultiplyThroughSoftwareCompositor(t *testing.T) {
	renderer := atlas.NewRenderer(nopPipelines{}, &software.Compositor{}, atlas.DeviceCapabilities{})
	pass := &capturePass{}

	region := atlas.RectXYWH(0, 0, 4, 4)
	set := atlas.NewInstanceSet()
	set.SetTexture(grayAtlas(4, 4, 128))
	set.SetTransforms([]atlas.Matrix{atlas.Identity(), atlas.Translate(20, 0)})
	set.SetTextureRegions([]atlas.Rect{region, region})
	set.SetColors([]atlas.RGBA{atlas.RGB(1, 1, 1), atlas.RGB(1, 1, 1)})
	set.SetBlendMode(atlas.BlendMultiply)

	frame := atlas.NewFrame(atlas.ISize{Width: 64, Height: 64})
	if err := renderer.Render(set, pass, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if pass.draws != 1 {
		t.Fatalf("draws = %d, want 1 resample draw", pass.draws)
	}
	if pass.vertexCount != 12 {
		t.Errorf("vertex count = %d, want 12 (two instances)", pass.vertexCount)
	}

	snapshot, ok := pass.texture.(*software.Texture)
	if !ok {
		t.Fatalf("resample texture is %T, want *software.Texture", pass.texture)
	}

	// Both instances share one (region, color) pair, so the snapshot
	// holds a single packed 4x4 entry plus padding.
	size := snapshot.Size()
	if size.Width != 5 || size.Height != 4 {
		t.Errorf("snapshot size = %+v, want {5 4} (one deduplicated entry)", size)
	}

	// Multiplying gray by white keeps gray.
	r, g, b, a := snapshot.Image().At(1, 1).RGBA()
	for name, c := range map[string]uint32{"r": r >> 8, "g": g >> 8, "b": b >> 8} {
		if diff := int(c) - 128; diff < -2 || diff > 2 {
			t.Errorf("snapshot %s = %d, want about 128", name, c)
		}
	}
	if a>>8 != 255 {
		t.Errorf("snapshot alpha = %d, want 255", a>>8)
	}
}

func TestCompositeNonSeparableThroughSoftwareCompositor(t *testing.T) {
	renderer := atlas.NewRenderer(nopPipelines{}, &software.Compositor{}, atlas.DeviceCapabilities{})
	pass := &capturePass{}

	set := atlas.NewInstanceSet()
	set.SetTexture(grayAtlas(4, 4, 200))
	set.SetTransforms([]atlas.Matrix{atlas.Identity()})
	set.SetTextureRegions([]atlas.Rect{atlas.RectXYWH(0, 0, 4, 4)})
	set.SetColors([]atlas.RGBA{atlas.RGB(1, 0, 0)})
	set.SetBlendMode(atlas.BlendLuminosity)

	frame := atlas.NewFrame(atlas.ISize{Width: 32, Height: 32})
	if err := renderer.Render(set, pass, frame); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if pass.draws != 1 {
		t.Fatalf("draws = %d, want 1", pass.draws)
	}
	if _, ok := pass.texture.(*software.Texture); !ok {
		t.Fatalf("resample texture is %T, want *software.Texture", pass.texture)
	}
}
