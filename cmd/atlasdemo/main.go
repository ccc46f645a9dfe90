// Command atlasdemo renders an advanced-blend sprite snapshot on the CPU.
//
// It builds a procedural sprite texture, an instance set with overlay
// colors, and runs the sub-atlas compositing path through the software
// backend, writing the packed snapshot as a PNG.
package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"math"
	"os"
	"strings"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/backend/software"
)

func main() {
	var (
		mode   = flag.String("mode", "multiply", "advanced blend mode (multiply, screen, overlay, hue, luminosity, ...)")
		size   = flag.Int("size", 64, "sprite size in pixels")
		output = flag.String("output", "snapshot.png", "output file")
	)
	flag.Parse()

	blendMode, ok := parseMode(*mode)
	if !ok {
		log.Fatalf("Unknown blend mode %q", *mode)
	}

	sprite := makeSprite(*size)
	set := atlas.NewInstanceSet()
	set.SetTexture(sprite)
	set.SetBlendMode(blendMode)

	region := atlas.RectXYWH(0, 0, float64(*size), float64(*size))
	set.SetTextureRegions([]atlas.Rect{region, region, region})
	set.SetTransforms([]atlas.Matrix{
		atlas.Identity(),
		atlas.Translate(float64(*size)+8, 0),
		atlas.Translate(0, float64(*size)+8),
	})
	set.SetColors([]atlas.RGBA{
		atlas.RGB(1, 0.3, 0.3),
		atlas.RGB(0.3, 1, 0.3),
		atlas.RGB(0.3, 0.3, 1),
	})

	sub := set.GenerateSubAtlas()
	log.Printf("Packed %d unique entries from %d instances onto a %dx%d canvas",
		len(sub.PackedRegions), set.Len(), sub.CanvasSize.Width, sub.CanvasSize.Height)

	src := atlas.Layer{
		Texture:    sprite,
		Regions:    sub.PackedRegions,
		Transforms: sub.PackedTransforms,
		Sampler:    atlas.DefaultSampler(),
	}
	dst := atlas.Layer{
		Regions:    sub.PackedRegions,
		Transforms: sub.PackedTransforms,
		Colors:     premultiplied(sub.PackedColors),
	}

	var compositor software.Compositor
	snapshot, err := compositor.RenderSnapshot(blendMode, src, dst, sub.CanvasSize)
	if err != nil {
		log.Fatalf("Compositing failed: %v", err)
	}

	if err := savePNG(*output, snapshot.(*software.Texture).Image()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Snapshot saved to %s", *output)
}

// makeSprite builds an opaque radial-gradient sprite.
func makeSprite(size int) *software.Texture {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			d := math.Sqrt(dx*dx+dy*dy) / center
			if d > 1 {
				d = 1
			}
			level := uint8(255 * (1 - d))
			i := img.PixOffset(x, y)
			img.Pix[i] = level
			img.Pix[i+1] = level
			img.Pix[i+2] = level
			img.Pix[i+3] = 255
		}
	}
	return software.NewTextureFromImage(img)
}

func parseMode(name string) (atlas.BlendMode, bool) {
	for m := atlas.BlendMultiply; m <= atlas.BlendLuminosity; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

func premultiplied(colors []atlas.RGBA) []atlas.RGBA {
	out := make([]atlas.RGBA, len(colors))
	for i, c := range colors {
		out[i] = c.Premultiply()
	}
	return out
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
