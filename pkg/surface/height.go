package surface

import "math"

// criticalEpsilon guards the critical point division 2*c*cos(phi).
const criticalEpsilon = 1e-9

// Extent is the analytic z range of the generating curve over the v domain.
type Extent struct {
	Min float64
	Max float64
}

// HalfHeight returns half the vertical size of the surface.
func (e Extent) HalfHeight() float64 {
	return (e.Max - e.Min) / 2
}

// Center returns the z value that maps to the origin after centering.
func (e Extent) Center() float64 {
	return (e.Max + e.Min) / 2
}

// HeightExtent computes the z range of the surface over [vMin, vMax].
//
// Candidates are the two endpoints and, when it lies inside the range, the
// vertex of the z(v) parabola at v* = sin(phi) / (2*c*cos(phi)). The critical
// point is skipped when c or cos(phi) is close enough to zero that the
// division is meaningless; z(v) is then linear and the endpoints bound it.
func HeightExtent(vMin, vMax float64, p Params) Extent {
	lo, hi := Height(vMin, p), Height(vMax, p)
	if lo > hi {
		lo, hi = hi, lo
	}

	denom := 2 * p.C * math.Cos(p.Phi)
	if math.Abs(denom) > criticalEpsilon {
		vc := math.Sin(p.Phi) / denom
		if vc >= vMin && vc <= vMax {
			zc := Height(vc, p)
			lo = math.Min(lo, zc)
			hi = math.Max(hi, zc)
		}
	}

	return Extent{Min: lo, Max: hi}
}
