package atlas

import (
	"encoding/binary"
	"math"
)

// Vertex strides in bytes. Every strategy draws non-indexed triangle
// lists, six vertices per quad.
const (
	// textureVertexStride: position (vec2<f32>) + uv (vec2<f32>).
	textureVertexStride = 16

	// colorVertexStride: position (vec2<f32>) + color (vec4<f32>).
	colorVertexStride = 24

	// blendVertexStride: position (vec2<f32>) + uv (vec2<f32>) +
	// color (vec4<f32>).
	blendVertexStride = 32

	verticesPerQuad = 6
)

// quadIndexPattern expands the four corners returned by Rect.Corners
// (top-left, top-right, bottom-left, bottom-right) into two triangles.
var quadIndexPattern = [verticesPerQuad]int{0, 1, 2, 1, 2, 3}

// Uniform buffer sizes in bytes, padded to 16-byte alignment.
const (
	// frameUniformSize: mvp (mat4x4<f32>) + y_scale (f32) + alpha (f32)
	// + padding (vec2<f32>).
	frameUniformSize = 80

	// fillUniformSize: alpha (f32) + padding (vec3<f32>).
	fillUniformSize = 16

	// porterDuffUniformSize: five blend coefficients + output_alpha +
	// input_alpha + padding, each f32.
	porterDuffUniformSize = 32
)

// buildTextureVertexData serializes one quad per instance with positions
// in target space and UVs normalized against the texture size. Corner
// positions are the instance region's size rect run through the instance
// transform on the CPU; the vertex shader only applies the frame MVP.
func buildTextureVertexData(regions []Rect, transforms []Matrix, texSize ISize) []byte {
	if len(regions) == 0 {
		return nil
	}
	data := make([]byte, len(regions)*verticesPerQuad*textureVertexStride)
	invW := 1.0 / float64(texSize.Width)
	invH := 1.0 / float64(texSize.Height)
	off := 0
	for i := range regions {
		positions := RectFromSize(regions[i].Size()).TransformedCorners(transforms[i])
		uvs := regions[i].Corners()
		for _, idx := range quadIndexPattern {
			writeTextureVertex(data[off:],
				float32(positions[idx].X), float32(positions[idx].Y),
				float32(uvs[idx].X*invW), float32(uvs[idx].Y*invH))
			off += textureVertexStride
		}
	}
	return data
}

// buildColorVertexData serializes one quad per instance carrying a
// premultiplied per-vertex color instead of UVs.
func buildColorVertexData(regions []Rect, transforms []Matrix, colors []RGBA) []byte {
	if len(regions) == 0 {
		return nil
	}
	data := make([]byte, len(regions)*verticesPerQuad*colorVertexStride)
	off := 0
	for i := range regions {
		positions := RectFromSize(regions[i].Size()).TransformedCorners(transforms[i])
		premul := colors[i].Premultiply()
		for _, idx := range quadIndexPattern {
			writeColorVertex(data[off:],
				float32(positions[idx].X), float32(positions[idx].Y), premul)
			off += colorVertexStride
		}
	}
	return data
}

// buildBlendVertexData serializes one quad per instance with both UVs and
// a premultiplied per-vertex color, for the single-pass blend shader.
func buildBlendVertexData(regions []Rect, transforms []Matrix, colors []RGBA, texSize ISize) []byte {
	if len(regions) == 0 {
		return nil
	}
	data := make([]byte, len(regions)*verticesPerQuad*blendVertexStride)
	invW := 1.0 / float64(texSize.Width)
	invH := 1.0 / float64(texSize.Height)
	off := 0
	for i := range regions {
		positions := RectFromSize(regions[i].Size()).TransformedCorners(transforms[i])
		uvs := regions[i].Corners()
		premul := colors[i].Premultiply()
		for _, idx := range quadIndexPattern {
			writeBlendVertex(data[off:],
				float32(positions[idx].X), float32(positions[idx].Y),
				float32(uvs[idx].X*invW), float32(uvs[idx].Y*invH), premul)
			off += blendVertexStride
		}
	}
	return data
}

// writeTextureVertex writes position and UV into buf.
func writeTextureVertex(buf []byte, x, y, u, v float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(u))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v))
}

// writeColorVertex writes position and premultiplied color into buf.
func writeColorVertex(buf []byte, x, y float32, c RGBA) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(float32(c.R)))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(float32(c.G)))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(float32(c.B)))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(float32(c.A)))
}

// writeBlendVertex writes position, UV, and premultiplied color into buf.
func writeBlendVertex(buf []byte, x, y, u, v float32, c RGBA) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(u))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(float32(c.R)))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(float32(c.G)))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(float32(c.B)))
	binary.LittleEndian.PutUint32(buf[28:32], math.Float32bits(float32(c.A)))
}

// makeFrameUniform creates the 80-byte per-draw frame uniform.
//
// The MVP combines a pixel-to-NDC orthographic projection for the target
// size with the caller's base transform; targetYScale flips the
// projection's second row for targets whose framebuffer y axis points up.
// textureYScale is the sampled texture's YCoordScale; the vertex shader
// multiplies it into the V coordinate so flipped textures sample upright.
//
// Input affine: a b c / d e f
// Output 4x4:   a b 0 c / d e 0 f / 0 0 1 0 / 0 0 0 1
func makeFrameUniform(transform Matrix, target ISize, targetYScale, textureYScale, alpha float64) []byte {
	ortho := Matrix{
		A: 2 / float64(target.Width), B: 0, C: -1,
		D: 0, E: -2 / float64(target.Height), F: 1,
	}
	m := ortho.Multiply(transform)

	buf := make([]byte, frameUniformSize)
	mvp := [16]float32{
		float32(m.A), float32(m.B), 0, float32(m.C),
		float32(m.D * targetYScale), float32(m.E * targetYScale), 0, float32(m.F * targetYScale),
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	off := 0
	for _, v := range mvp {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(textureYScale)))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(alpha)))
	// Padding bytes remain zero.
	return buf
}

// makeFillUniform creates the 16-byte fragment uniform shared by the
// texture and color fill shaders.
func makeFillUniform(alpha float64) []byte {
	buf := make([]byte, fillUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(alpha)))
	return buf
}

// makePorterDuffUniform creates the 32-byte fragment uniform for the
// single-pass blend shader. The sampled atlas texture acts as the blend
// destination, so callers pass coefficients for the inverted mode.
// input_alpha stays 1: instance colors arrive unattenuated and the set's
// alpha applies once, on the output.
func makePorterDuffUniform(c Coefficients, outputAlpha float64) []byte {
	buf := make([]byte, porterDuffUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(c.Src))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(c.SrcDstAlpha))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c.Dst))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(c.DstSrcAlpha))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(c.DstSrcColor))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(float32(outputAlpha)))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(float32(1.0)))
	// Padding bytes remain zero.
	return buf
}
