// Package wgpu implements the atlas collaborator contracts on the gogpu
// HAL: pipelines compiled from embedded WGSL, a render pass encoder with
// per-draw resource upload, and an offscreen compositor for advanced
// blend modes.
//
// The package does not create a GPU device. It receives one from the
// host application, which keeps textures and buffers shared with the
// rest of the host's rendering.
package wgpu

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/atlas"
)

// Errors returned by the wgpu backend.
var (
	// ErrContextDestroyed reports encoding or submission after Destroy.
	ErrContextDestroyed = errors.New("wgpu: context destroyed")

	// ErrNoHALDevice reports a device provider that does not expose HAL
	// types.
	ErrNoHALDevice = errors.New("wgpu: device provider does not expose hal.Device and hal.Queue")
)

// Context wraps a shared HAL device and queue for atlas rendering.
//
// The context does not own the device: Destroy detaches from it without
// destroying it, and every operation afterwards fails with
// ErrContextDestroyed rather than touching freed resources. This mirrors
// the weak ownership a deferred-submission collaborator must have over a
// host device that can be torn down first.
type Context struct {
	device    hal.Device
	queue     hal.Queue
	destroyed atomic.Bool
}

// NewContext creates a context over an existing HAL device and queue.
func NewContext(device hal.Device, queue hal.Queue) (*Context, error) {
	if device == nil || queue == nil {
		return nil, ErrNoHALDevice
	}
	return &Context{device: device, queue: queue}, nil
}

// NewContextFromHandle creates a context from a gpucontext device
// provider. The provider's device and queue must be backed by HAL
// implementations; hosts that front a different backend are rejected
// with ErrNoHALDevice.
func NewContextFromHandle(handle gpucontext.DeviceProvider) (*Context, error) {
	if handle == nil {
		return nil, ErrNoHALDevice
	}

	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	if hp, ok := handle.(halProvider); ok {
		device, okD := hp.HalDevice().(hal.Device)
		queue, okQ := hp.HalQueue().(hal.Queue)
		if okD && okQ && device != nil && queue != nil {
			return NewContext(device, queue)
		}
		return nil, ErrNoHALDevice
	}

	device, okD := handle.Device().(hal.Device)
	queue, okQ := handle.Queue().(hal.Queue)
	if !okD || !okQ || device == nil || queue == nil {
		return nil, fmt.Errorf("%w: %T", ErrNoHALDevice, handle)
	}
	return NewContext(device, queue)
}

// Capabilities reports the backend features the dispatcher adapts to.
// Decal addressing is not exposed: the blend shader clamps out-of-region
// samples itself, so the fixed-function sampler never needs it.
func (c *Context) Capabilities() atlas.DeviceCapabilities {
	return atlas.DeviceCapabilities{
		SupportsDecalSamplerAddressMode: false,
		MaxTextureSize:                  8192,
	}
}

// Destroy detaches the context from the shared device. Idempotent.
// Resources created through the context must be destroyed by their
// owners before the host tears the device down.
func (c *Context) Destroy() {
	c.destroyed.Store(true)
}

// alive returns an error once the context is destroyed.
func (c *Context) alive() error {
	if c.destroyed.Load() {
		return ErrContextDestroyed
	}
	return nil
}

// Device returns the underlying HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the underlying HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }
