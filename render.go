package atlas

import (
	"errors"
	"fmt"
)

// Errors returned by Renderer.Render. Collaborator failures are wrapped
// with fmt.Errorf("...: %w", err) and carry these only when the failure
// originates in the renderer itself.
var (
	// ErrMismatchedInstances reports an instance set whose parallel
	// slices disagree in length.
	ErrMismatchedInstances = errors.New("atlas: instance slices have mismatched lengths")

	// ErrSnapshotFailed reports that compositing produced no snapshot.
	ErrSnapshotFailed = errors.New("atlas: snapshot compositing failed")
)

// Frame describes the render target a pass encodes into: the base
// transform mapping instance space to target pixels, the target size in
// pixels, the target's y-coordinate scale, and its MSAA sample count.
type Frame struct {
	Transform   Matrix
	TargetSize  ISize
	YCoordScale float64
	SampleCount int
}

// NewFrame returns a frame for an upright single-sample target of the
// given size with an identity base transform.
func NewFrame(size ISize) Frame {
	return Frame{
		Transform:   Identity(),
		TargetSize:  size,
		YCoordScale: 1,
		SampleCount: 1,
	}
}

// Renderer turns instance sets into draw calls on a PassEncoder. It holds
// no per-call state and may be reused across frames; the pipeline
// provider, compositor, and capabilities are fixed at construction.
type Renderer struct {
	pipelines  PipelineProvider
	compositor Compositor
	caps       DeviceCapabilities
}

// NewRenderer creates a renderer over the given backend collaborators.
// compositor may be nil when advanced blend modes are never used; a
// render call that needs one then fails with ErrSnapshotFailed.
func NewRenderer(pipelines PipelineProvider, compositor Compositor, caps DeviceCapabilities) *Renderer {
	return &Renderer{
		pipelines:  pipelines,
		compositor: compositor,
		caps:       caps,
	}
}

// Render encodes the set into the pass using the strategy the set's state
// selects. No-op outcomes return nil without touching the pass. The pass
// is left with only complete draws: on error, no partial vertex or
// uniform state from the failing draw is observable through Draw.
func (r *Renderer) Render(set *InstanceSet, pass PassEncoder, frame Frame) error {
	if !set.valid() {
		return fmt.Errorf("%w: %d transforms, %d regions, %d colors",
			ErrMismatchedInstances, len(set.transforms), len(set.regions), len(set.colors))
	}

	switch SelectStrategy(set) {
	case StrategyNone:
		return nil
	case StrategyTexture:
		return r.drawTexture(set, pass, frame)
	case StrategyColor:
		return r.drawColor(set, pass, frame)
	case StrategyPorterDuff:
		return r.drawPorterDuff(set, pass, frame)
	default:
		return r.drawComposite(set, pass, frame)
	}
}

// attachmentBlend maps the set's blend mode to a pipeline attachment
// blend for strategies that do not evaluate blending in the shader.
// Advanced modes cannot run in fixed-function blend state; the texture
// strategy reaches here only when the set carries no colors, and then
// source-over is the closest available composite.
func attachmentBlend(mode BlendMode) BlendMode {
	if mode.Simple() {
		return mode
	}
	Logger().Warn("atlas: advanced blend mode without colors, drawing source-over",
		"mode", mode.String())
	return BlendSourceOver
}

// pipelineOptions derives pipeline options from the frame.
func pipelineOptions(mode BlendMode, frame Frame) PipelineOptions {
	samples := frame.SampleCount
	if samples < 1 {
		samples = 1
	}
	return PipelineOptions{BlendMode: mode, SampleCount: samples}
}
