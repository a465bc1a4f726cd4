package surface

// Builder tessellates surfaces with a fixed configuration.
// A Builder is immutable and safe for concurrent use.
type Builder struct {
	cfg Config
}

// NewBuilder validates cfg and returns a Builder for it.
func NewBuilder(cfg Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Builder{cfg: cfg}, nil
}

// Config returns the builder configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build samples the surface for p and returns a freshly allocated mesh.
// The result depends only on p and the builder configuration.
func (b *Builder) Build(p Params) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := b.cfg.Grid
	attrs := b.cfg.Attributes
	n := g.VertexCount()

	extent := HeightExtent(g.Domain.VMin, g.Domain.VMax, p)
	// Center on the extent midpoint, not HalfHeight: the range only starts
	// at zero when min(z) = 0, and max(z)+min(z) must come out as 0.
	zShift := extent.Center()

	m := &Mesh{
		Params:     p,
		Grid:       g,
		Topology:   b.cfg.Topology,
		IndexWidth: b.cfg.IndexWidth,
		Extent:     extent,
		Positions:  make([][3]float32, 0, n),
	}
	needFrame := attrs.Has(AttrNormals) || attrs.Has(AttrTangents)
	if attrs.Has(AttrNormals) {
		m.Normals = make([][3]float32, 0, n)
	}
	if attrs.Has(AttrTangents) {
		m.Tangents = make([][3]float32, 0, n)
	}
	if attrs.Has(AttrUVs) {
		m.UVs = make([][2]float32, 0, n)
	}

	for i := 0; i <= g.USteps; i++ {
		u := g.U(i)
		for j := 0; j <= g.VSteps; j++ {
			v := g.V(j)

			pos := Position(u, v, p)
			pos.Z -= zShift
			m.Positions = append(m.Positions, vec32(pos))

			if needFrame {
				f := FrameAt(u, v, p)
				if m.Normals != nil {
					m.Normals = append(m.Normals, vec32(f.Normal))
				}
				if m.Tangents != nil {
					m.Tangents = append(m.Tangents, vec32(f.TangentU))
				}
			}
			if m.UVs != nil {
				m.UVs = append(m.UVs, g.UV(i, j))
			}
		}
	}

	switch b.cfg.Topology {
	case Wireframe:
		m.Indices = GridEdges(g)
	default:
		m.Indices = GridTriangles(g)
	}

	return m, nil
}
