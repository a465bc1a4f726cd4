package surface

import (
	"math"
	"testing"
)

func TestHeightExtent(t *testing.T) {
	vMin, vMax := -math.Pi/2, math.Pi/2
	phi := 0.3
	vc := math.Sin(phi) / (2 * 0.5 * math.Cos(phi))

	tests := []struct {
		name    string
		p       Params
		wantMin float64
		wantMax float64
	}{
		{
			name:    "flat",
			p:       Params{A: 1, C: 0, Phi: 0},
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "symmetric parabola",
			p:       Params{A: 1, C: 0.5, Phi: 0},
			wantMin: 0,
			wantMax: 0.5 * vMax * vMax,
		},
		{
			name:    "critical point inside",
			p:       Params{A: 1, C: 0.5, Phi: phi},
			wantMin: Height(vc, Params{C: 0.5, Phi: phi}),
			wantMax: Height(vMin, Params{C: 0.5, Phi: phi}),
		},
		{
			name:    "critical point outside",
			p:       Params{A: 1, C: 0.01, Phi: phi},
			wantMin: Height(vMax, Params{C: 0.01, Phi: phi}),
			wantMax: Height(vMin, Params{C: 0.01, Phi: phi}),
		},
		{
			name:    "linear",
			p:       Params{A: 1, C: 0, Phi: phi},
			wantMin: -vMax * math.Sin(phi),
			wantMax: -vMin * math.Sin(phi),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := HeightExtent(vMin, vMax, tt.p)
			if math.Abs(e.Min-tt.wantMin) > 1e-12 {
				t.Errorf("Min = %v, want %v", e.Min, tt.wantMin)
			}
			if math.Abs(e.Max-tt.wantMax) > 1e-12 {
				t.Errorf("Max = %v, want %v", e.Max, tt.wantMax)
			}
		})
	}
}

func TestHeightExtentGuardsDivision(t *testing.T) {
	tests := []Params{
		{A: 1, C: 0, Phi: 0.3},
		{A: 1, C: 1e-12, Phi: 0.3},
		{A: 1, C: 0.5, Phi: math.Pi / 2},
		{A: 1, C: 0, Phi: math.Pi / 2},
	}

	for _, p := range tests {
		e := HeightExtent(-math.Pi/2, math.Pi/2, p)
		for _, f := range []float64{e.Min, e.Max, e.HalfHeight(), e.Center()} {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Fatalf("HeightExtent(%v) = %+v, want finite", p, e)
			}
		}
		if e.Min > e.Max {
			t.Errorf("HeightExtent(%v): Min %v > Max %v", p, e.Min, e.Max)
		}
	}
}

func TestExtentHalfHeight(t *testing.T) {
	e := Extent{Min: -0.5, Max: 1.5}
	if e.HalfHeight() != 1 {
		t.Errorf("HalfHeight() = %v, want 1", e.HalfHeight())
	}
	if e.Center() != 0.5 {
		t.Errorf("Center() = %v, want 0.5", e.Center())
	}
}
