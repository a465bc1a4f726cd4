package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/surfacelab/internal/engine/shaders"
	"github.com/Faultbox/surfacelab/pkg/surface"
)

// GPUMesh holds the GL buffers for one built surface mesh.
type GPUMesh struct {
	vao     uint32
	vbos    [4]uint32 // position, normal, tangent, uv
	ebo     uint32
	mode    uint32
	idxType uint32
	count   int32

	HasNormals  bool
	HasTangents bool
	HasUVs      bool
}

// UploadMesh copies a mesh into new GL buffers. Each attribute lives in its
// own buffer bound at the shared shader locations.
func UploadMesh(m *surface.Mesh) (*GPUMesh, error) {
	if len(m.Positions) == 0 || len(m.Indices) == 0 {
		return nil, fmt.Errorf("upload mesh: empty mesh")
	}

	g := &GPUMesh{
		mode:        gl.TRIANGLES,
		count:       int32(len(m.Indices)),
		HasNormals:  len(m.Normals) > 0,
		HasTangents: len(m.Tangents) > 0,
		HasUVs:      len(m.UVs) > 0,
	}
	if m.Topology == surface.Wireframe {
		g.mode = gl.LINES
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	g.vbos[0] = uploadVec3(shaders.AttribPosition, m.Positions)
	if g.HasNormals {
		g.vbos[1] = uploadVec3(shaders.AttribNormal, m.Normals)
	}
	if g.HasTangents {
		g.vbos[2] = uploadVec3(shaders.AttribTangent, m.Tangents)
	}
	if g.HasUVs {
		g.vbos[3] = uploadVec2(shaders.AttribUV, m.UVs)
	}

	var err error
	g.ebo, g.idxType, err = uploadIndices(m)
	gl.BindVertexArray(0)
	if err != nil {
		g.Delete()
		return nil, err
	}
	return g, CheckError("upload mesh")
}

func uploadVec3(loc uint32, data [][3]float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*12, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, 3, gl.FLOAT, false, 12, 0)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

func uploadVec2(loc uint32, data [][2]float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*8, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(loc, 2, gl.FLOAT, false, 8, 0)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

// uploadIndices binds a new element buffer to the current VAO, narrowing
// to 16-bit indices when the mesh was built for them.
func uploadIndices(m *surface.Mesh) (ebo, idxType uint32, err error) {
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)

	if m.IndexWidth == surface.Index16 {
		narrow, err := m.Uint16Indices()
		if err != nil {
			return ebo, 0, fmt.Errorf("upload mesh: %w", err)
		}
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(narrow)*2, unsafe.Pointer(&narrow[0]), gl.STATIC_DRAW)
		return ebo, gl.UNSIGNED_SHORT, nil
	}

	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
	return ebo, gl.UNSIGNED_INT, nil
}

// Draw issues the element draw call. The caller binds the program.
func (g *GPUMesh) Draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(g.mode, g.count, g.idxType, 0)
	gl.BindVertexArray(0)
}

// Delete releases the GL buffers.
func (g *GPUMesh) Delete() {
	for i := range g.vbos {
		if g.vbos[i] != 0 {
			gl.DeleteBuffers(1, &g.vbos[i])
			g.vbos[i] = 0
		}
	}
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
