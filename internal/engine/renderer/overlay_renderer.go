package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/surfacelab/internal/engine/shader"
	"github.com/Faultbox/surfacelab/internal/engine/shaders"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

// Rect is a viewport rectangle in GL pixel coordinates (origin bottom-left).
type Rect struct {
	X, Y, W, H int
}

// OverlayRenderer draws the texture-space view: the diffuse map, the mesh's
// UV layout as lines, and the scaling pivot.
type OverlayRenderer struct {
	texProg   *shader.Program
	uvProg    *shader.Program
	pointProg *shader.Program

	quadVAO, quadVBO uint32
	uvVAO, uvVBO     uint32
	uvEBO            uint32
	uvCount          int32
	pointVAO         uint32
}

// NewOverlayRenderer compiles the overlay programs and the background quad.
func NewOverlayRenderer() (*OverlayRenderer, error) {
	o := &OverlayRenderer{}
	var err error
	if o.texProg, err = shader.New("overlay texture", shaders.OverlayTextureVertexShader, shaders.OverlayTextureFragmentShader); err != nil {
		return nil, err
	}
	if o.uvProg, err = shader.New("overlay uv", shaders.OverlayUVVertexShader, shaders.OverlayUVFragmentShader); err != nil {
		o.Close()
		return nil, err
	}
	if o.pointProg, err = shader.New("overlay point", shaders.OverlayPointVertexShader, shaders.OverlayPointFragmentShader); err != nil {
		o.Close()
		return nil, err
	}

	quad := []float32{-1, -1, -1, 1, 1, 1, -1, -1, 1, 1, 1, -1}
	gl.GenVertexArrays(1, &o.quadVAO)
	gl.BindVertexArray(o.quadVAO)
	gl.GenBuffers(1, &o.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, unsafe.Pointer(&quad[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 8, 0)
	gl.EnableVertexAttribArray(0)

	// Core profile needs a bound VAO even for attribute-less draws.
	gl.GenVertexArrays(1, &o.pointVAO)
	gl.BindVertexArray(0)

	o.texProg.Use()
	o.texProg.SetInt("diffuseTexture", 0)
	gl.UseProgram(0)
	return o, nil
}

// Update uploads the UV layout of a triangle mesh. Meshes without UVs
// clear the layout.
func (o *OverlayRenderer) Update(m *surface.Mesh) {
	o.deleteLayout()
	if len(m.UVs) == 0 || m.Topology != surface.Triangles {
		return
	}

	lines := surface.TrianglesToLines(m.Indices)
	o.uvCount = int32(len(lines))

	gl.GenVertexArrays(1, &o.uvVAO)
	gl.BindVertexArray(o.uvVAO)
	o.uvVBO = uploadVec2(shaders.AttribUV, m.UVs)
	gl.GenBuffers(1, &o.uvEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, o.uvEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(lines)*4, unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

// Draw renders the overlay into rect. point and scale are in texture space.
func (o *OverlayRenderer) Draw(rect Rect, diffuse uint32, point, scale [2]float32) {
	gl.Viewport(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H))
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(int32(rect.X), int32(rect.Y), int32(rect.W), int32(rect.H))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)

	o.texProg.Use()
	bindTexture(0, diffuse)
	gl.BindVertexArray(o.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)

	if o.uvCount > 0 {
		o.uvProg.Use()
		o.uvProg.SetVec2("point", point)
		o.uvProg.SetVec2("scale", scale)
		gl.BindVertexArray(o.uvVAO)
		gl.DrawElementsWithOffset(gl.LINES, o.uvCount, gl.UNSIGNED_INT, 0)
	}

	o.pointProg.Use()
	o.pointProg.SetVec2("point", point)
	gl.BindVertexArray(o.pointVAO)
	gl.DrawArrays(gl.POINTS, 0, 1)

	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Disable(gl.SCISSOR_TEST)
	gl.Enable(gl.DEPTH_TEST)
}

func (o *OverlayRenderer) deleteLayout() {
	if o.uvVBO != 0 {
		gl.DeleteBuffers(1, &o.uvVBO)
		o.uvVBO = 0
	}
	if o.uvEBO != 0 {
		gl.DeleteBuffers(1, &o.uvEBO)
		o.uvEBO = 0
	}
	if o.uvVAO != 0 {
		gl.DeleteVertexArrays(1, &o.uvVAO)
		o.uvVAO = 0
	}
	o.uvCount = 0
}

// Close releases programs and buffers.
func (o *OverlayRenderer) Close() {
	o.deleteLayout()
	for _, p := range []*shader.Program{o.texProg, o.uvProg, o.pointProg} {
		if p != nil {
			p.Delete()
		}
	}
	if o.quadVBO != 0 {
		gl.DeleteBuffers(1, &o.quadVBO)
	}
	if o.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &o.quadVAO)
	}
	if o.pointVAO != 0 {
		gl.DeleteVertexArrays(1, &o.pointVAO)
	}
}
