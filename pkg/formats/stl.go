package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/soypat/geometry/md3"

	"github.com/Faultbox/surfacelab/pkg/surface"
)

// STL format errors.
var (
	ErrTruncatedSTLData = errors.New("truncated STL data")
	ErrNotTriangleMesh  = errors.New("STL needs a triangle mesh")
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50 // normal + 3 vertices (12 float32) + attribute count
)

// STLFacet is one triangle of a binary STL file.
type STLFacet struct {
	Normal   [3]float32
	Vertices [3][3]float32
}

// STL is a parsed binary STL file.
type STL struct {
	Header [stlHeaderSize]byte
	Facets []STLFacet
}

// WriteSTL writes the triangles of m as binary STL. Facet normals are
// taken from the winding; degenerate triangles get a zero normal.
func WriteSTL(w io.Writer, m *surface.Mesh) error {
	if m.Topology != surface.Triangles {
		return ErrNotTriangleMesh
	}

	var header [stlHeaderSize]byte
	copy(header[:], fmt.Sprintf("surfacelab %s", m.Params))

	count := len(m.Indices) / 3
	buf := bytes.NewBuffer(make([]byte, 0, stlHeaderSize+4+count*stlFacetSize))
	buf.Write(header[:])
	binary.Write(buf, binary.LittleEndian, uint32(count))

	var facet [12]float32
	for i := 0; i < count; i++ {
		a := m.Positions[m.Indices[3*i]]
		b := m.Positions[m.Indices[3*i+1]]
		c := m.Positions[m.Indices[3*i+2]]

		n := facetNormal(a, b, c)
		copy(facet[0:3], n[:])
		copy(facet[3:6], a[:])
		copy(facet[6:9], b[:])
		copy(facet[9:12], c[:])
		binary.Write(buf, binary.LittleEndian, facet)
		binary.Write(buf, binary.LittleEndian, uint16(0))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// SaveSTL writes m to a binary STL file at path.
func SaveSTL(path string, m *surface.Mesh) error {
	return saveFile(path, m, WriteSTL)
}

// ParseSTL parses a binary STL file from raw bytes.
func ParseSTL(data []byte) (*STL, error) {
	if len(data) < stlHeaderSize+4 {
		return nil, ErrTruncatedSTLData
	}

	stl := &STL{}
	copy(stl.Header[:], data[:stlHeaderSize])

	count := binary.LittleEndian.Uint32(data[stlHeaderSize:])
	body := data[stlHeaderSize+4:]
	if uint64(len(body)) < uint64(count)*stlFacetSize {
		return nil, fmt.Errorf("%w: %d facets declared, %d bytes left", ErrTruncatedSTLData, count, len(body))
	}

	stl.Facets = make([]STLFacet, count)
	for i := range stl.Facets {
		rec := body[i*stlFacetSize:]
		var vals [12]float32
		for k := range vals {
			vals[k] = math.Float32frombits(binary.LittleEndian.Uint32(rec[4*k:]))
		}
		f := &stl.Facets[i]
		copy(f.Normal[:], vals[0:3])
		for v := 0; v < 3; v++ {
			copy(f.Vertices[v][:], vals[3+3*v:6+3*v])
		}
	}
	return stl, nil
}

// Title returns the header text up to the first NUL, without padding.
func (s *STL) Title() string {
	h := s.Header[:]
	if i := bytes.IndexByte(h, 0); i >= 0 {
		h = h[:i]
	}
	return string(bytes.TrimSpace(h))
}

// Bounds returns the axis-aligned box around every facet vertex.
// An empty file yields a zero box.
func (s *STL) Bounds() (lo, hi [3]float32) {
	if len(s.Facets) == 0 {
		return lo, hi
	}
	lo = s.Facets[0].Vertices[0]
	hi = lo
	for _, f := range s.Facets {
		for _, v := range f.Vertices {
			for k := 0; k < 3; k++ {
				lo[k] = min(lo[k], v[k])
				hi[k] = max(hi[k], v[k])
			}
		}
	}
	return lo, hi
}

func facetNormal(a, b, c [3]float32) [3]float32 {
	ab := md3.Vec{X: float64(b[0] - a[0]), Y: float64(b[1] - a[1]), Z: float64(b[2] - a[2])}
	ac := md3.Vec{X: float64(c[0] - a[0]), Y: float64(c[1] - a[1]), Z: float64(c[2] - a[2])}
	n := md3.Cross(ab, ac)
	l := md3.Norm(n)
	if l == 0 {
		return [3]float32{}
	}
	n = md3.Scale(1/l, n)
	return [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
}
