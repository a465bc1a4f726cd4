package surface

import (
	"errors"
	"fmt"
	"math"
)

// ErrCheckFailed wraps every problem reported by Mesh.Check.
var ErrCheckFailed = errors.New("mesh check failed")

const (
	unitTolerance   = 1e-4
	centerTolerance = 1e-4
)

// Check verifies the structural properties every built mesh must have:
// unit-length frame vectors, vertical centering, index counts and bounds,
// consistent triangle winding and UV coverage of [0,1]². It returns nil or
// a joined error listing every violation.
func (m *Mesh) Check() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrCheckFailed, fmt.Sprintf(format, args...)))
	}

	n := m.VertexCount()
	if want := m.Grid.VertexCount(); n != want {
		fail("%d vertices, grid has %d", n, want)
	}
	if err := CheckIndexCapacity(n, m.IndexWidth); err != nil {
		errs = append(errs, err)
	}

	for name, vs := range map[string][][3]float32{"normal": m.Normals, "tangent": m.Tangents} {
		if vs == nil {
			continue
		}
		if len(vs) != n {
			fail("%d %ss for %d vertices", len(vs), name, n)
		}
		for i, v := range vs {
			if l := length32(v); !(math.Abs(l-1) <= unitTolerance) {
				fail("%s %d has length %v", name, i, l)
				break
			}
		}
	}

	if n > 0 {
		// Centering uses the analytic extent, so a grid that misses the
		// extremum may be off by the part of the extent it did not sample.
		b := m.Bounds()
		sampled := float64(b.Max[2] - b.Min[2])
		slack := math.Max(0, 2*m.Extent.HalfHeight()-sampled) + centerTolerance*math.Max(1, sampled)
		if off := float64(b.Max[2]) + float64(b.Min[2]); !(math.Abs(off) <= slack) {
			fail("not centered: max z + min z = %v", off)
		}
	}

	switch m.Topology {
	case Wireframe:
		errs = append(errs, m.checkEdges()...)
	case Triangles:
		errs = append(errs, m.checkTriangles()...)
	}

	if m.UVs != nil {
		errs = append(errs, m.checkUVs()...)
	}

	return errors.Join(errs...)
}

func (m *Mesh) checkEdges() []error {
	var errs []error
	if want := 2 * m.Grid.EdgeCount(); len(m.Indices) != want {
		errs = append(errs, fmt.Errorf("%w: %d edge indices, want %d", ErrCheckFailed, len(m.Indices), want))
	}
	seen := make(map[[2]uint32]bool, len(m.Indices)/2)
	for i := 0; i+1 < len(m.Indices); i += 2 {
		a, b := m.Indices[i], m.Indices[i+1]
		if !m.inBounds(a) || !m.inBounds(b) || a == b {
			errs = append(errs, fmt.Errorf("%w: bad edge %d-%d", ErrCheckFailed, a, b))
			break
		}
		key := [2]uint32{min(a, b), max(a, b)}
		if seen[key] {
			errs = append(errs, fmt.Errorf("%w: duplicate edge %d-%d", ErrCheckFailed, a, b))
			break
		}
		seen[key] = true
	}
	return errs
}

// checkTriangles also checks winding: two triangles sharing an edge must
// traverse it in opposite directions, so no directed edge may repeat.
func (m *Mesh) checkTriangles() []error {
	var errs []error
	if want := 3 * m.Grid.TriangleCount(); len(m.Indices) != want {
		errs = append(errs, fmt.Errorf("%w: %d triangle indices, want %d", ErrCheckFailed, len(m.Indices), want))
	}
	directed := make(map[[2]uint32]bool, len(m.Indices))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		tri := m.Indices[i : i+3]
		if !m.inBounds(tri[0]) || !m.inBounds(tri[1]) || !m.inBounds(tri[2]) ||
			tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
			errs = append(errs, fmt.Errorf("%w: bad triangle %v", ErrCheckFailed, tri))
			break
		}
		for k := 0; k < 3; k++ {
			e := [2]uint32{tri[k], tri[(k+1)%3]}
			if directed[e] {
				return append(errs, fmt.Errorf("%w: inconsistent winding at edge %d-%d", ErrCheckFailed, e[0], e[1]))
			}
			directed[e] = true
		}
	}
	return errs
}

func (m *Mesh) checkUVs() []error {
	var errs []error
	var hasMin, hasMax bool
	for i, uv := range m.UVs {
		if !(uv[0] >= 0 && uv[0] <= 1 && uv[1] >= 0 && uv[1] <= 1) {
			return append(errs, fmt.Errorf("%w: uv %d out of range: %v", ErrCheckFailed, i, uv))
		}
		hasMin = hasMin || uv == [2]float32{0, 0}
		hasMax = hasMax || uv == [2]float32{1, 1}
	}
	if !hasMin || !hasMax {
		errs = append(errs, fmt.Errorf("%w: uv corners missing (0,0)=%v (1,1)=%v", ErrCheckFailed, hasMin, hasMax))
	}
	return errs
}

func (m *Mesh) inBounds(i uint32) bool {
	return int(i) < len(m.Positions)
}

func length32(v [3]float32) float64 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])
	return math.Sqrt(x*x + y*y + z*z)
}
