package surface

import (
	"math"

	"github.com/soypat/geometry/md3"
)

// tangentEpsilon is the length below which a tangent or normal is treated as degenerate.
const tangentEpsilon = 1e-9

// Fallback vectors substituted for degenerate directions.
var (
	FallbackTangentU = md3.Vec{X: 1, Y: 0, Z: 0}
	FallbackTangentV = md3.Vec{X: 0, Y: 0, Z: 1}
	FallbackNormal   = md3.Vec{X: 0, Y: 0, Z: 1}
)

// Radius returns the distance of the generating curve from the z axis at v.
func Radius(v float64, p Params) float64 {
	return p.A + v*math.Cos(p.Phi) + p.C*v*v*math.Sin(p.Phi)
}

// Height returns the uncentered z coordinate of the generating curve at v.
func Height(v float64, p Params) float64 {
	return -v*math.Sin(p.Phi) + p.C*v*v*math.Cos(p.Phi)
}

// Position returns the uncentered surface point at (u, v).
func Position(u, v float64, p Params) md3.Vec {
	r := Radius(v, p)
	return md3.Vec{
		X: r * math.Cos(u),
		Y: r * math.Sin(u),
		Z: Height(v, p),
	}
}

// radiusDv is d(radius)/dv.
func radiusDv(v float64, p Params) float64 {
	return math.Cos(p.Phi) + 2*p.C*v*math.Sin(p.Phi)
}

// heightDv is dz/dv.
func heightDv(v float64, p Params) float64 {
	return -math.Sin(p.Phi) + 2*p.C*v*math.Cos(p.Phi)
}

// PartialU returns ∂F/∂u at (u, v).
func PartialU(u, v float64, p Params) md3.Vec {
	r := Radius(v, p)
	return md3.Vec{
		X: -r * math.Sin(u),
		Y: r * math.Cos(u),
		Z: 0,
	}
}

// PartialV returns ∂F/∂v at (u, v).
func PartialV(u, v float64, p Params) md3.Vec {
	dr := radiusDv(v, p)
	return md3.Vec{
		X: math.Cos(u) * dr,
		Y: math.Sin(u) * dr,
		Z: heightDv(v, p),
	}
}

// Frame is the local tangent frame of the surface at one grid node.
type Frame struct {
	TangentU md3.Vec
	TangentV md3.Vec
	Normal   md3.Vec
}

// FrameAt returns the unit tangent frame at (u, v).
// Degenerate directions (e.g. ∂F/∂u where radius(v) = 0) are replaced by
// FallbackTangentU, FallbackTangentV or FallbackNormal.
func FrameAt(u, v float64, p Params) Frame {
	tu := unitOr(PartialU(u, v, p), FallbackTangentU)
	tv := unitOr(PartialV(u, v, p), FallbackTangentV)
	return Frame{
		TangentU: tu,
		TangentV: tv,
		Normal:   unitOr(md3.Cross(tu, tv), FallbackNormal),
	}
}

// unitOr normalizes v, returning fallback when v is too short or not finite.
func unitOr(v, fallback md3.Vec) md3.Vec {
	n := md3.Norm(v)
	if !(n > tangentEpsilon) || math.IsInf(n, 0) {
		return fallback
	}
	return md3.Scale(1/n, v)
}

func vec32(v md3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
