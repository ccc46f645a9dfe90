package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader sources, compiled into the binary via go:embed.

//go:embed shaders/texture_fill.wgsl
var textureFillShaderSource string

//go:embed shaders/solid_color.wgsl
var solidColorShaderSource string

//go:embed shaders/porter_duff.wgsl
var porterDuffShaderSource string

//go:embed shaders/blend_composite.wgsl
var blendCompositeShaderSource string

// compileShaderToSPIRV compiles WGSL source to SPIR-V words for backends
// whose HAL does not accept WGSL directly.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	return spirvCode, nil
}

// createShaderModule creates a HAL shader module from WGSL source,
// translating through SPIR-V when the device requires it.
func createShaderModule(device hal.Device, label, wgslSource string, useSPIRV bool) (hal.ShaderModule, error) {
	source := hal.ShaderSource{WGSL: wgslSource}
	if useSPIRV {
		words, err := compileShaderToSPIRV(wgslSource)
		if err != nil {
			return nil, err
		}
		source = hal.ShaderSource{SPIRV: words}
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module %q: %w", label, err)
	}
	return module, nil
}
