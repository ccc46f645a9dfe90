package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/atlas"
	"github.com/gogpu/atlas/internal/blend"
)

// Errors returned by the software compositor.
var (
	// ErrEmptyCanvas reports a snapshot request with a degenerate size.
	ErrEmptyCanvas = errors.New("software: snapshot canvas is empty")

	// ErrForeignTexture reports a layer texture that was not created by
	// this backend.
	ErrForeignTexture = errors.New("software: layer texture is not a software texture")
)

// Compositor evaluates advanced blend modes on the CPU. It rasterizes
// both layers onto canvas-sized images and combines them per pixel with
// the blend function for the requested mode.
//
// The zero value is ready to use.
type Compositor struct{}

// RenderSnapshot implements atlas.Compositor.
func (c *Compositor) RenderSnapshot(mode atlas.BlendMode, src, dst atlas.Layer, size atlas.ISize) (atlas.Texture, error) {
	if size.IsEmpty() {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, size.Width, size.Height)
	}

	dstImg, err := rasterizeLayer(dst, size)
	if err != nil {
		return nil, fmt.Errorf("software: rasterize destination layer: %w", err)
	}
	srcImg, err := rasterizeLayer(src, size)
	if err != nil {
		return nil, fmt.Errorf("software: rasterize source layer: %w", err)
	}

	fn := blend.ForMode(mode)
	out := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	for i := 0; i < len(out.Pix); i += 4 {
		r, g, b, a := fn(
			srcImg.Pix[i], srcImg.Pix[i+1], srcImg.Pix[i+2], srcImg.Pix[i+3],
			dstImg.Pix[i], dstImg.Pix[i+1], dstImg.Pix[i+2], dstImg.Pix[i+3])
		out.Pix[i] = r
		out.Pix[i+1] = g
		out.Pix[i+2] = b
		out.Pix[i+3] = a
	}
	return NewTextureFromImage(out), nil
}

// rasterizeLayer draws every quad of the layer onto a fresh canvas.
// Textured quads sample the layer texture's region; color quads stretch
// a solid pixel over the quad geometry. Quads accumulate source-over,
// which is only observable if they overlap.
func rasterizeLayer(layer atlas.Layer, size atlas.ISize) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))

	if layer.Texture != nil {
		tex, ok := layer.Texture.(*Texture)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrForeignTexture, layer.Texture)
		}
		for i := range layer.Regions {
			drawTexturedQuad(canvas, tex.Image(), layer.Regions[i], layer.Transforms[i])
		}
		return canvas, nil
	}

	for i := range layer.Regions {
		drawColorQuad(canvas, layer.Regions[i], layer.Transforms[i], layer.Colors[i])
	}
	return canvas, nil
}

// drawTexturedQuad maps the region's texels through the quad transform.
// The affine sends texture-space points to canvas space: the region's
// min corner lands at the transform's translation.
func drawTexturedQuad(canvas *image.RGBA, src *image.RGBA, region atlas.Rect, transform atlas.Matrix) {
	srcRect := image.Rect(
		int(region.Min.X), int(region.Min.Y),
		int(region.Max.X+0.5), int(region.Max.Y+0.5))
	srcRect = srcRect.Intersect(src.Bounds())
	if srcRect.Empty() {
		return
	}

	m := transform.Multiply(atlas.Translate(-region.Min.X, -region.Min.Y))
	xdraw.NearestNeighbor.Transform(canvas, affine(m), src, srcRect, xdraw.Over, nil)
}

// drawColorQuad stretches a single premultiplied pixel over the quad.
func drawColorQuad(canvas *image.RGBA, region atlas.Rect, transform atlas.Matrix, c atlas.RGBA) {
	w := region.Width()
	h := region.Height()
	if w <= 0 || h <= 0 {
		return
	}

	pixel := image.NewRGBA(image.Rect(0, 0, 1, 1))
	pixel.SetRGBA(0, 0, color.RGBA{
		R: channelByte(c.R),
		G: channelByte(c.G),
		B: channelByte(c.B),
		A: channelByte(c.A),
	})

	// Scale the unit pixel to the region size, then place it.
	m := transform.Multiply(atlas.Scale(w, h))
	xdraw.NearestNeighbor.Transform(canvas, affine(m), pixel, pixel.Bounds(), xdraw.Over, nil)
}

func affine(m atlas.Matrix) f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

func channelByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
