package shaders

import (
	"strings"
	"testing"
)

func TestSourcesEmbedded(t *testing.T) {
	sources := map[string]string{
		"wireframe.vert":       WireframeVertexShader,
		"wireframe.frag":       WireframeFragmentShader,
		"lit.vert":             LitVertexShader,
		"lit.frag":             LitFragmentShader,
		"textured.vert":        TexturedVertexShader,
		"textured.frag":        TexturedFragmentShader,
		"overlay_texture.vert": OverlayTextureVertexShader,
		"overlay_texture.frag": OverlayTextureFragmentShader,
		"overlay_uv.vert":      OverlayUVVertexShader,
		"overlay_uv.frag":      OverlayUVFragmentShader,
		"overlay_point.vert":   OverlayPointVertexShader,
		"overlay_point.frag":   OverlayPointFragmentShader,
	}
	for name, src := range sources {
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing GLSL 4.10 core version line", name)
		}
		if !strings.Contains(src, "void main()") {
			t.Errorf("%s: missing main", name)
		}
	}
}

func TestUVTransformShared(t *testing.T) {
	// The surface and the overlay must scale texture coordinates the same way.
	const expr = "((inUV - point) * scale) + point"
	for name, src := range map[string]string{
		"textured.vert":   TexturedVertexShader,
		"overlay_uv.vert": OverlayUVVertexShader,
	} {
		if !strings.Contains(src, expr) {
			t.Errorf("%s: expected %q", name, expr)
		}
	}
}
