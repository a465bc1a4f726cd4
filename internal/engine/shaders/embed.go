// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// Attribute locations shared by the surface shaders.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribTangent  = 2
	AttribUV       = 3
)

// WireframeVertexShader transforms positions for the line preset.
//
//go:embed wireframe.vert
var WireframeVertexShader string

// WireframeFragmentShader draws lines in a flat color.
//
//go:embed wireframe.frag
var WireframeFragmentShader string

// LitVertexShader passes view-space position and normal to the lit
// fragment shader.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades the surface with a single point light.
//
//go:embed lit.frag
var LitFragmentShader string

// TexturedVertexShader builds the tangent frame and scaled texture
// coordinates for the textured preset.
//
//go:embed textured.vert
var TexturedVertexShader string

// TexturedFragmentShader applies diffuse, normal and specular maps.
//
//go:embed textured.frag
var TexturedFragmentShader string

//go:embed overlay_texture.vert
var OverlayTextureVertexShader string

//go:embed overlay_texture.frag
var OverlayTextureFragmentShader string

//go:embed overlay_uv.vert
var OverlayUVVertexShader string

//go:embed overlay_uv.frag
var OverlayUVFragmentShader string

//go:embed overlay_point.vert
var OverlayPointVertexShader string

//go:embed overlay_point.frag
var OverlayPointFragmentShader string
