// Package software implements the atlas collaborator contracts on the
// CPU, backed by image.RGBA. It provides a complete advanced-blend
// compositing path with no GPU device, used standalone and as the
// reference implementation the GPU backend is checked against.
package software

import (
	"image"

	"github.com/gogpu/atlas"
)

// Texture is a CPU texture backed by a premultiplied image.RGBA.
// Its y axis matches image space, so YCoordScale is always 1.
type Texture struct {
	img *image.RGBA
}

// NewTexture allocates a transparent texture of the given size.
func NewTexture(size atlas.ISize) *Texture {
	return &Texture{img: image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))}
}

// NewTextureFromImage wraps an existing premultiplied image without
// copying. The caller must not mutate img while the texture is in use.
func NewTextureFromImage(img *image.RGBA) *Texture {
	return &Texture{img: img}
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() atlas.ISize {
	b := t.img.Bounds()
	return atlas.ISize{Width: b.Dx(), Height: b.Dy()}
}

// YCoordScale reports the texture's vertical orientation.
func (t *Texture) YCoordScale() float64 { return 1 }

// Image returns the backing image.
func (t *Texture) Image() *image.RGBA { return t.img }
