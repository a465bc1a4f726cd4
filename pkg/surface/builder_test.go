package surface

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
)

func testConfig(uSteps, vSteps int, topology Topology, attrs Attributes) Config {
	return Config{
		Grid:       Grid{USteps: uSteps, VSteps: vSteps, Domain: DefaultDomain()},
		Topology:   topology,
		Attributes: attrs,
		IndexWidth: Index16,
	}
}

func mustBuild(t *testing.T, cfg Config, p Params) *Mesh {
	t.Helper()
	b, err := NewBuilder(cfg)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	m, err := b.Build(p)
	if err != nil {
		t.Fatalf("Build(%v) failed: %v", p, err)
	}
	return m
}

var sampleParams = []Params{
	{A: 1, C: 0.5, Phi: 0.3},
	{A: 2, C: 0.5, Phi: 0.3},
	{A: 0, C: 1, Phi: 1.2},
	{A: 1, C: 0, Phi: 0.3},
	{A: 1, C: 0.5, Phi: math.Pi / 2},
	{A: -1, C: -2, Phi: -0.7},
	{A: 0.5, C: 3, Phi: 2.5},
}

func TestBuildScenario(t *testing.T) {
	p := Params{A: 1, C: 0.5, Phi: 0.3}

	tri := mustBuild(t, testConfig(4, 4, Triangles, AttrAll), p)
	if tri.VertexCount() != 25 {
		t.Errorf("expected 25 vertices, got %d", tri.VertexCount())
	}
	if tri.PrimitiveCount() != 32 {
		t.Errorf("expected 32 triangles, got %d", tri.PrimitiveCount())
	}
	if len(tri.Indices) != 96 {
		t.Errorf("expected 96 indices, got %d", len(tri.Indices))
	}
	if len(tri.Normals) != 25 || len(tri.Tangents) != 25 || len(tri.UVs) != 25 {
		t.Errorf("attribute lengths: normals %d, tangents %d, uvs %d",
			len(tri.Normals), len(tri.Tangents), len(tri.UVs))
	}

	wire := mustBuild(t, testConfig(4, 4, Wireframe, AttrNone), p)
	if wire.VertexCount() != 25 {
		t.Errorf("expected 25 vertices, got %d", wire.VertexCount())
	}
	if wire.PrimitiveCount() != 40 {
		t.Errorf("expected 40 edges, got %d", wire.PrimitiveCount())
	}
	if wire.Normals != nil || wire.Tangents != nil || wire.UVs != nil {
		t.Error("wireframe mesh should carry positions only")
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := testConfig(4, 4, Triangles, AttrAll)
	p := Params{A: 1, C: 0.5, Phi: 0.3}

	first := mustBuild(t, cfg, p)
	second := mustBuild(t, cfg, p)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different meshes")
	}
}

func TestBuildConcurrent(t *testing.T) {
	b, err := NewBuilder(testConfig(32, 32, Triangles, AttrAll))
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	p := Params{A: 1, C: 0.5, Phi: 0.3}
	want, err := b.Build(p)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*Mesh, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = b.Build(p)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("goroutine %d produced a different mesh", i)
		}
	}
}

func TestBuildUnitNormalsAndTangents(t *testing.T) {
	for _, p := range sampleParams {
		t.Run(p.String(), func(t *testing.T) {
			m := mustBuild(t, testConfig(40, 40, Triangles, AttrAll), p)
			for i := range m.Normals {
				if l := length32(m.Normals[i]); math.Abs(l-1) > 1e-5 {
					t.Fatalf("normal %d = %v has length %v", i, m.Normals[i], l)
				}
				if l := length32(m.Tangents[i]); math.Abs(l-1) > 1e-5 {
					t.Fatalf("tangent %d = %v has length %v", i, m.Tangents[i], l)
				}
			}
		})
	}
}

func TestBuildCentered(t *testing.T) {
	t.Run("extremum on grid", func(t *testing.T) {
		// phi = 0 puts the parabola vertex at v = 0, which is a grid row for even VSteps.
		m := mustBuild(t, testConfig(8, 8, Triangles, AttrNone), Params{A: 1, C: 0.5, Phi: 0})
		lo, hi := zRange(m)
		if math.Abs(lo+hi) > 1e-6 {
			t.Errorf("min z %v + max z %v = %v, want 0", lo, hi, lo+hi)
		}
		if math.Abs(hi-m.Extent.HalfHeight()) > 1e-6 {
			t.Errorf("max z %v, want half height %v", hi, m.Extent.HalfHeight())
		}
	})

	for _, p := range sampleParams {
		t.Run(p.String(), func(t *testing.T) {
			m := mustBuild(t, testConfig(150, 150, Triangles, AttrNone), p)
			lo, hi := zRange(m)
			if math.Abs(lo+hi) > 1e-3 {
				t.Errorf("min z %v + max z %v = %v, want ~0", lo, hi, lo+hi)
			}
		})
	}
}

func TestBuildDegenerateCriticalPoint(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"c zero", Params{A: 1, C: 0, Phi: 0.3}},
		{"cos phi zero", Params{A: 1, C: 0.5, Phi: math.Pi / 2}},
		{"both zero", Params{A: 1, C: 0, Phi: math.Pi / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustBuild(t, testConfig(4, 4, Triangles, AttrAll), tt.p)
			if m.VertexCount() != 25 || len(m.Normals) != 25 {
				t.Fatalf("mesh not fully populated: %d vertices, %d normals", m.VertexCount(), len(m.Normals))
			}
			for i, pos := range m.Positions {
				for _, f := range pos {
					if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
						t.Fatalf("position %d is not finite: %v", i, pos)
					}
				}
			}
			// z is linear in v here, so the endpoint rows hold both extremes.
			lo, hi := zRange(m)
			if math.Abs(lo+hi) > 1e-5 {
				t.Errorf("min z %v + max z %v = %v, want 0", lo, hi, lo+hi)
			}
		})
	}
}

func TestBuildInvalidParams(t *testing.T) {
	b, err := NewBuilder(testConfig(4, 4, Triangles, AttrAll))
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	tests := []Params{
		{A: math.NaN(), C: 0.5, Phi: 0.3},
		{A: 1, C: math.Inf(1), Phi: 0.3},
		{A: 1, C: 0.5, Phi: math.Inf(-1)},
	}
	for _, p := range tests {
		m, err := b.Build(p)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("Build(%v): expected ErrInvalidParameter, got %v", p, err)
		}
		if m != nil {
			t.Errorf("Build(%v): expected nil mesh on error", p)
		}
	}
}

func TestNewBuilderInvalidGrid(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero u steps", testConfig(0, 4, Triangles, AttrNone)},
		{"negative v steps", testConfig(4, -1, Triangles, AttrNone)},
		{"empty domain", Config{
			Grid:       Grid{USteps: 4, VSteps: 4, Domain: Domain{UMin: 1, UMax: 1, VMin: 0, VMax: 1}},
			IndexWidth: Index16,
		}},
		{"nan domain", Config{
			Grid:       Grid{USteps: 4, VSteps: 4, Domain: Domain{UMin: 0, UMax: math.NaN(), VMin: 0, VMax: 1}},
			IndexWidth: Index16,
		}},
		{"bad index width", Config{Grid: Grid{USteps: 4, VSteps: 4, Domain: DefaultDomain()}, IndexWidth: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewBuilder(tt.cfg); !errors.Is(err, ErrInvalidGrid) {
				t.Errorf("expected ErrInvalidGrid, got %v", err)
			}
		})
	}
}

func TestIndexOverflow(t *testing.T) {
	p := Params{A: 1, C: 0.5, Phi: 0.3}

	// 256 * 256 = 65536 vertices, the 16-bit ceiling.
	m := mustBuild(t, testConfig(255, 255, Triangles, AttrNone), p)
	if m.VertexCount() != 65536 {
		t.Fatalf("expected 65536 vertices, got %d", m.VertexCount())
	}
	idx16, err := m.Uint16Indices()
	if err != nil {
		t.Fatalf("Uint16Indices failed: %v", err)
	}
	var maxIdx uint16
	for _, i := range idx16 {
		maxIdx = max(maxIdx, i)
	}
	if maxIdx != 65535 {
		t.Errorf("expected max index 65535, got %d", maxIdx)
	}

	if _, err := NewBuilder(testConfig(256, 255, Triangles, AttrNone)); !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("257x256 grid with 16-bit indices: expected ErrIndexOverflow, got %v", err)
	}

	if err := CheckIndexCapacity(65536, Index16); err != nil {
		t.Errorf("65536 vertices should fit 16-bit indices: %v", err)
	}
	if err := CheckIndexCapacity(65537, Index16); !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("65537 vertices: expected ErrIndexOverflow, got %v", err)
	}

	huge := []struct {
		name  string
		u, v  int
		width IndexWidth
	}{
		{"wraps to zero", 1<<32 - 1, 1<<32 - 1, Index16},
		{"wraps to zero wide", 1<<32 - 1, 1<<32 - 1, Index32},
		{"max int steps", math.MaxInt, 1, Index32},
		{"past int range", 1 << 40, 1 << 40, Index32},
	}
	for _, tt := range huge {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.u, tt.v, Triangles, AttrNone)
			cfg.IndexWidth = tt.width
			if _, err := NewBuilder(cfg); !errors.Is(err, ErrIndexOverflow) {
				t.Errorf("%dx%d grid: expected ErrIndexOverflow, got %v", tt.u, tt.v, err)
			}
		})
	}

	cfg := testConfig(256, 255, Triangles, AttrNone)
	cfg.IndexWidth = Index32
	wide := mustBuild(t, cfg, p)
	if _, err := wide.Uint16Indices(); !errors.Is(err, ErrIndexOverflow) {
		t.Errorf("Uint16Indices on 65792 vertices: expected ErrIndexOverflow, got %v", err)
	}
}

func TestBuildUVs(t *testing.T) {
	m := mustBuild(t, testConfig(7, 5, Triangles, AttrUVs), Params{A: 1, C: 0.5, Phi: 0.3})
	if m.Normals != nil || m.Tangents != nil {
		t.Error("only UVs were requested")
	}

	var sawOrigin, sawCorner bool
	for i, uv := range m.UVs {
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Fatalf("uv %d = %v outside [0,1]", i, uv)
		}
		if uv == [2]float32{0, 0} {
			sawOrigin = true
		}
		if uv == [2]float32{1, 1} {
			sawCorner = true
		}
	}
	if !sawOrigin || !sawCorner {
		t.Errorf("corners attained: (0,0)=%v (1,1)=%v", sawOrigin, sawCorner)
	}
	if m.UVs[0] != [2]float32{0, 0} {
		t.Errorf("first vertex uv = %v, want (0,0)", m.UVs[0])
	}
	if m.UVs[len(m.UVs)-1] != [2]float32{1, 1} {
		t.Errorf("last vertex uv = %v, want (1,1)", m.UVs[len(m.UVs)-1])
	}
}

func TestBuildPositions(t *testing.T) {
	p := Params{A: 1, C: 0.5, Phi: 0.3}
	m := mustBuild(t, testConfig(4, 4, Triangles, AttrNone), p)
	center := m.Extent.Center()

	for i := 0; i <= 4; i++ {
		for j := 0; j <= 4; j++ {
			want := Position(m.Grid.U(i), m.Grid.V(j), p)
			got := m.Positions[m.Grid.Index(i, j)]
			if math.Abs(float64(got[0])-want.X) > 1e-6 ||
				math.Abs(float64(got[1])-want.Y) > 1e-6 ||
				math.Abs(float64(got[2])-(want.Z-center)) > 1e-6 {
				t.Errorf("node (%d,%d): got %v, want (%v, %v, %v)", i, j, got, want.X, want.Y, want.Z-center)
			}
		}
	}
}

func TestMeshBounds(t *testing.T) {
	m := mustBuild(t, testConfig(16, 16, Triangles, AttrNone), Params{A: 2, C: 0, Phi: 0})
	b := m.Bounds()

	// c = 0, phi = 0 is a flat annulus with radius 2+v.
	outer := float32(2 + math.Pi/2)
	if math.Abs(float64(b.Max[0]-outer)) > 1e-5 || math.Abs(float64(b.Min[0]+outer)) > 1e-5 {
		t.Errorf("x bounds = [%v, %v], want ±%v", b.Min[0], b.Max[0], outer)
	}
	if b.Min[2] != 0 || b.Max[2] != 0 {
		t.Errorf("z bounds = [%v, %v], want flat", b.Min[2], b.Max[2])
	}

	if got := (&Mesh{}).Bounds(); got != (Bounds{}) {
		t.Errorf("empty mesh bounds = %v, want zero", got)
	}
}

func zRange(m *Mesh) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range m.Positions {
		lo = math.Min(lo, float64(p[2]))
		hi = math.Max(hi, float64(p[2]))
	}
	return lo, hi
}
