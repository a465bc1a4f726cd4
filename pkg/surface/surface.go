// Package surface tessellates the (a, c, phi) surface of revolution into GPU-ready meshes.
//
// The generating curve in the (radius, z) plane is
//
//	radius(v) = a + v*cos(phi) + c*v²*sin(phi)
//	z(v)      = -v*sin(phi) + c*v²*cos(phi)
//
// and is swept around the z axis by u. A Builder samples the surface on a fixed
// (u, v) grid and emits positions plus, on request, normals, tangents and UVs.
package surface

import (
	"errors"
	"fmt"
	"math"
)

// Surface errors.
var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidGrid      = errors.New("invalid grid")
	ErrIndexOverflow    = errors.New("resolution too high for index width")
)

// Params are the three shape parameters of the surface.
type Params struct {
	A   float64 `json:"a" yaml:"a"`
	C   float64 `json:"c" yaml:"c"`
	Phi float64 `json:"phi" yaml:"phi"` // radians
}

// Validate reports whether all parameters are finite.
func (p Params) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"a", p.A},
		{"c", p.C},
		{"phi", p.Phi},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	return nil
}

// String formats the parameters for logs and window titles.
func (p Params) String() string {
	return fmt.Sprintf("a=%.3f c=%.3f phi=%.3f", p.A, p.C, p.Phi)
}
