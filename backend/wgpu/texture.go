package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

// Texture is a GPU texture usable both as a sampling source and as a
// render target. Render targets on this backend are y-down like the
// atlas coordinate space, so YCoordScale is 1.
type Texture struct {
	ctx  *Context
	tex  hal.Texture
	view hal.TextureView
	size atlas.ISize
}

// CreateTexture allocates an RGBA8 texture that can be sampled, rendered
// to, and uploaded into.
func (c *Context) CreateTexture(label string, size atlas.ISize) (*Texture, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	if size.IsEmpty() {
		return nil, fmt.Errorf("wgpu: invalid texture size %dx%d", size.Width, size.Height)
	}

	w := uint32(size.Width)
	h := uint32(size.Height)
	tex, err := c.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}

	view, err := c.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		c.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}

	return &Texture{ctx: c, tex: tex, view: view, size: size}, nil
}

// CreateTextureFromPixels allocates a texture and uploads tightly packed
// premultiplied RGBA pixels into it.
func (c *Context) CreateTextureFromPixels(label string, size atlas.ISize, pixels []byte) (*Texture, error) {
	t, err := c.CreateTexture(label, size)
	if err != nil {
		return nil, err
	}
	if err := t.Upload(pixels); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// Upload writes tightly packed premultiplied RGBA pixels covering the
// whole texture.
func (t *Texture) Upload(pixels []byte) error {
	if err := t.ctx.alive(); err != nil {
		return err
	}
	w := uint32(t.size.Width)
	h := uint32(t.size.Height)
	if want := int(w) * int(h) * 4; len(pixels) != want {
		return fmt.Errorf("wgpu: pixel data is %d bytes, want %d", len(pixels), want)
	}

	t.ctx.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	return nil
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() atlas.ISize { return t.size }

// YCoordScale reports the texture's vertical orientation.
func (t *Texture) YCoordScale() float64 { return 1 }

// View returns the texture's sampling and attachment view.
func (t *Texture) View() hal.TextureView { return t.view }

// Destroy releases the texture. Safe to call more than once; a no-op
// after the context is destroyed since the host owns the device.
func (t *Texture) Destroy() {
	if t.ctx.destroyed.Load() {
		return
	}
	if t.view != nil {
		t.ctx.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.ctx.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}
