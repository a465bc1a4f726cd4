package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/surfacelab/internal/engine/lighting"
	"github.com/Faultbox/surfacelab/internal/engine/shader"
	"github.com/Faultbox/surfacelab/internal/engine/shaders"
	"github.com/Faultbox/surfacelab/pkg/math"
)

// Frame holds the per-frame uniforms for drawing the surface.
type Frame struct {
	Projection math.Mat4
	ModelView  math.Mat4
	Normal     math.Mat4
	Light      lighting.PointLight

	// Texture-space scaling about Point, shared with the overlay.
	Point [2]float32
	Scale [2]float32
}

// Texture units used by the textured program.
const (
	unitDiffuse = iota
	unitNormal
	unitSpecular
)

// SurfaceRenderer draws a GPUMesh with the program matching its attributes:
// textured when it has UVs and tangents, lit when it has normals, flat
// color lines otherwise.
type SurfaceRenderer struct {
	wireframe *shader.Program
	lit       *shader.Program
	textured  *shader.Program

	textures [3]uint32
}

// NewSurfaceRenderer compiles the surface programs.
func NewSurfaceRenderer() (*SurfaceRenderer, error) {
	s := &SurfaceRenderer{}
	var err error
	if s.wireframe, err = shader.New("wireframe", shaders.WireframeVertexShader, shaders.WireframeFragmentShader); err != nil {
		return nil, err
	}
	if s.lit, err = shader.New("lit", shaders.LitVertexShader, shaders.LitFragmentShader); err != nil {
		s.Close()
		return nil, err
	}
	if s.textured, err = shader.New("textured", shaders.TexturedVertexShader, shaders.TexturedFragmentShader); err != nil {
		s.Close()
		return nil, err
	}

	s.textured.Use()
	s.textured.SetInt("diffuseTexture", unitDiffuse)
	s.textured.SetInt("normalTexture", unitNormal)
	s.textured.SetInt("specularTexture", unitSpecular)
	gl.UseProgram(0)
	return s, nil
}

// SetTextures replaces the diffuse, normal and specular maps.
func (s *SurfaceRenderer) SetTextures(diffuse, normal, specular *image.RGBA) {
	for i, img := range []*image.RGBA{diffuse, normal, specular} {
		DeleteTexture(&s.textures[i])
		s.textures[i] = UploadTexture(img)
	}
}

// DiffuseTexture returns the diffuse map handle, for the overlay.
func (s *SurfaceRenderer) DiffuseTexture() uint32 {
	return s.textures[unitDiffuse]
}

// Draw renders the mesh.
func (s *SurfaceRenderer) Draw(m *GPUMesh, f Frame) {
	var p *shader.Program
	switch {
	case m.HasUVs && m.HasTangents && m.HasNormals:
		p = s.textured
	case m.HasNormals:
		p = s.lit
	default:
		p = s.wireframe
	}

	p.Use()
	p.SetMat4("projectionMatrix", f.Projection)
	p.SetMat4("modelMatrix", f.ModelView)
	p.SetVec3("color", f.Light.Color)

	if p != s.wireframe {
		p.SetMat4("normalMatrix", f.Normal)
		p.SetVec3("lightLocation", f.Light.Position)
		p.SetFloat("ambient", f.Light.Ambient)
		p.SetFloat("shininess", f.Light.Shininess)
	}
	if p == s.textured {
		p.SetVec2("point", f.Point)
		p.SetVec2("scale", f.Scale)
		for unit, tex := range s.textures {
			bindTexture(uint32(unit), tex)
		}
	}

	m.Draw()

	if p == s.textured {
		gl.ActiveTexture(gl.TEXTURE0)
	}
	gl.UseProgram(0)
}

// Close releases programs and textures.
func (s *SurfaceRenderer) Close() {
	for _, p := range []*shader.Program{s.wireframe, s.lit, s.textured} {
		if p != nil {
			p.Delete()
		}
	}
	for i := range s.textures {
		DeleteTexture(&s.textures[i])
	}
}
