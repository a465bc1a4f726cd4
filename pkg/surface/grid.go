package surface

import (
	"fmt"
	"math"
	"math/bits"
)

// Domain is the rectangular parameter domain sampled by a Grid.
type Domain struct {
	UMin, UMax float64
	VMin, VMax float64
}

// DefaultDomain returns u ∈ [0, 2π], v ∈ [-π/2, π/2].
func DefaultDomain() Domain {
	return Domain{
		UMin: 0,
		UMax: 2 * math.Pi,
		VMin: -math.Pi / 2,
		VMax: math.Pi / 2,
	}
}

// Grid is the tessellation resolution over a Domain.
type Grid struct {
	USteps int
	VSteps int
	Domain Domain
}

// DefaultGrid returns the 150x150 grid used by the textured viewer.
func DefaultGrid() Grid {
	return Grid{USteps: 150, VSteps: 150, Domain: DefaultDomain()}
}

// Validate checks step counts and domain bounds.
func (g Grid) Validate() error {
	if g.USteps < 1 || g.VSteps < 1 {
		return fmt.Errorf("%w: steps must be >= 1, got %dx%d", ErrInvalidGrid, g.USteps, g.VSteps)
	}
	if hi, lo := bits.Mul64(uint64(g.USteps)+1, uint64(g.VSteps)+1); hi != 0 || lo > math.MaxInt {
		return fmt.Errorf("%w: %dx%d grid: resolution too high", ErrIndexOverflow, g.USteps, g.VSteps)
	}
	d := g.Domain
	for _, f := range []float64{d.UMin, d.UMax, d.VMin, d.VMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite domain %+v", ErrInvalidGrid, d)
		}
	}
	if !(d.UMax > d.UMin) || !(d.VMax > d.VMin) {
		return fmt.Errorf("%w: empty domain %+v", ErrInvalidGrid, d)
	}
	return nil
}

// VertexCount returns (USteps+1)*(VSteps+1). Only meaningful for a grid
// that passed Validate.
func (g Grid) VertexCount() int {
	return (g.USteps + 1) * (g.VSteps + 1)
}

// Index returns the row-major vertex index of grid node (i, j).
func (g Grid) Index(i, j int) int {
	return i*(g.VSteps+1) + j
}

// U returns the u parameter of column i.
func (g Grid) U(i int) float64 {
	return g.Domain.UMin + float64(i)*(g.Domain.UMax-g.Domain.UMin)/float64(g.USteps)
}

// V returns the v parameter of row j.
func (g Grid) V(j int) float64 {
	return g.Domain.VMin + float64(j)*(g.Domain.VMax-g.Domain.VMin)/float64(g.VSteps)
}

// UV returns the texture coordinate of node (i, j).
// Computed from the step ratio so the domain corners map to exactly 0 and 1.
func (g Grid) UV(i, j int) [2]float32 {
	return [2]float32{
		float32(float64(i) / float64(g.USteps)),
		float32(float64(j) / float64(g.VSteps)),
	}
}

// EdgeCount returns the number of wireframe edges in the grid.
func (g Grid) EdgeCount() int {
	return g.USteps*(g.VSteps+1) + g.VSteps*(g.USteps+1)
}

// TriangleCount returns the number of triangles in the triangulated grid.
func (g Grid) TriangleCount() int {
	return 2 * g.USteps * g.VSteps
}
