// Package atlas renders batches of independently transformed, independently
// colored sprites sourced from a single texture atlas.
//
// # Overview
//
// A render call takes an InstanceSet (parallel slices of transforms,
// texture regions, and optional overlay colors, plus a blend mode) and
// issues the smallest number of GPU draws that produce correct per-pixel
// results. The dispatcher picks one of four strategies:
//
//   - texture-only: the blend mode reduces to "source", or no colors were
//     supplied; one draw sampling the atlas texture.
//   - color-only: the blend mode is "destination"; one draw emitting the
//     per-instance colors.
//   - single-pass Porter-Duff: separable modes are folded into five fixed
//     blend coefficients evaluated in the fragment shader; one draw over
//     all instances.
//   - compositing: non-separable ("advanced") modes deduplicate the
//     instance set into a shelf-packed sub-atlas, hand source and
//     destination layers to a Compositor for a snapshot render, and
//     resample the snapshot once per original instance.
//
// # Collaborators
//
// The core encodes draws through narrow interfaces (PassEncoder,
// PipelineProvider, Compositor, Texture) and carries no backend code of
// its own. backend/wgpu implements them over gogpu/wgpu's HAL;
// backend/software provides a CPU Compositor and image-backed textures for
// tests and headless use.
//
// # Concurrency
//
// A render call is synchronous and single-threaded. An InstanceSet must not
// be mutated during its own render call; distinct sets are independent.
package atlas
