package surface

import (
	"fmt"
	"math"
)

// Mesh is the output of a Builder. Attribute slices that were not requested are nil.
type Mesh struct {
	Params     Params
	Grid       Grid
	Topology   Topology
	IndexWidth IndexWidth
	Extent     Extent

	Positions [][3]float32
	Normals   [][3]float32
	Tangents  [][3]float32
	UVs       [][2]float32
	Indices   []uint32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// PrimitiveCount returns the number of lines or triangles.
func (m *Mesh) PrimitiveCount() int {
	return len(m.Indices) / m.Topology.IndicesPerPrimitive()
}

// Uint16Indices converts the index buffer for 16-bit upload.
func (m *Mesh) Uint16Indices() ([]uint16, error) {
	if err := CheckIndexCapacity(m.VertexCount(), Index16); err != nil {
		return nil, err
	}
	out := make([]uint16, len(m.Indices))
	for i, idx := range m.Indices {
		out[i] = uint16(idx)
	}
	return out, nil
}

// Bounds returns the bounding box of all positions.
func (m *Mesh) Bounds() Bounds {
	b := Bounds{
		Min: [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
	if len(m.Positions) == 0 {
		return Bounds{}
	}
	for _, p := range m.Positions {
		for k := 0; k < 3; k++ {
			b.Min[k] = min(b.Min[k], p[k])
			b.Max[k] = max(b.Max[k], p[k])
		}
	}
	return b
}

// String summarizes the mesh for logging.
func (m *Mesh) String() string {
	return fmt.Sprintf("%s %s: %d vertices, %d %s", m.Params, m.Topology,
		m.VertexCount(), m.PrimitiveCount(), primitiveName(m.Topology))
}

func primitiveName(t Topology) string {
	if t == Wireframe {
		return "edges"
	}
	return "triangles"
}
