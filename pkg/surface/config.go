package surface

import (
	"fmt"
	"strings"
)

// Topology selects how grid nodes are connected.
type Topology int

const (
	// Triangles emits two triangles per grid cell.
	Triangles Topology = iota
	// Wireframe emits one index pair per grid edge.
	Wireframe
)

// String returns the topology name.
func (t Topology) String() string {
	switch t {
	case Triangles:
		return "triangles"
	case Wireframe:
		return "wireframe"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// IndicesPerPrimitive returns 3 for triangles and 2 for lines.
func (t Topology) IndicesPerPrimitive() int {
	if t == Wireframe {
		return 2
	}
	return 3
}

// Attributes is a set of optional per-vertex attributes.
type Attributes uint8

const (
	AttrNormals Attributes = 1 << iota
	AttrTangents
	AttrUVs

	AttrNone Attributes = 0
	AttrAll             = AttrNormals | AttrTangents | AttrUVs
)

// Has reports whether all attributes in other are set.
func (a Attributes) Has(other Attributes) bool {
	return a&other == other
}

// IndexWidth is the bit width of the index buffer element type.
type IndexWidth int

const (
	Index16 IndexWidth = 16
	Index32 IndexWidth = 32
)

// MaxVertices returns the number of distinct vertices addressable by the width.
func (w IndexWidth) MaxVertices() uint64 {
	return uint64(1) << uint(w)
}

// CheckIndexCapacity fails with ErrIndexOverflow when vertexCount vertices
// cannot be addressed with indices of width w.
func CheckIndexCapacity(vertexCount int, w IndexWidth) error {
	if w != Index16 && w != Index32 {
		return fmt.Errorf("%w: unsupported index width %d", ErrInvalidGrid, int(w))
	}
	if vertexCount < 0 || uint64(vertexCount) > w.MaxVertices() {
		return fmt.Errorf("%w: %d vertices, %d-bit indices address at most %d",
			ErrIndexOverflow, vertexCount, int(w), w.MaxVertices())
	}
	return nil
}

// Variant names one of the three viewer presets.
type Variant int

const (
	// VariantWireframe is positions plus grid edges.
	VariantWireframe Variant = iota
	// VariantLit is positions and normals on a triangle mesh.
	VariantLit
	// VariantTextured adds tangents and UVs for normal mapping.
	VariantTextured
)

var variantNames = [...]string{"wireframe", "lit", "textured"}

// String returns the preset name.
func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// Next cycles to the following preset.
func (v Variant) Next() Variant {
	return (v + 1) % Variant(len(variantNames))
}

// ParseVariant parses a preset name.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if strings.EqualFold(s, name) {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variant %q (want wireframe, lit or textured)", s)
}

// Config configures a Builder.
type Config struct {
	Grid       Grid
	Topology   Topology
	Attributes Attributes
	IndexWidth IndexWidth
}

// DefaultConfig returns the textured preset.
func DefaultConfig() Config {
	return VariantConfig(VariantTextured)
}

// VariantConfig returns the builder configuration for a preset.
func VariantConfig(v Variant) Config {
	switch v {
	case VariantWireframe:
		return Config{
			Grid:       Grid{USteps: 100, VSteps: 100, Domain: DefaultDomain()},
			Topology:   Wireframe,
			Attributes: AttrNone,
			IndexWidth: Index16,
		}
	case VariantLit:
		return Config{
			Grid:       Grid{USteps: 100, VSteps: 100, Domain: DefaultDomain()},
			Topology:   Triangles,
			Attributes: AttrNormals,
			IndexWidth: Index16,
		}
	default:
		return Config{
			Grid:       DefaultGrid(),
			Topology:   Triangles,
			Attributes: AttrAll,
			IndexWidth: Index16,
		}
	}
}

// Validate checks the grid, topology and index capacity.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if c.Topology != Triangles && c.Topology != Wireframe {
		return fmt.Errorf("%w: unknown topology %d", ErrInvalidGrid, int(c.Topology))
	}
	return CheckIndexCapacity(c.Grid.VertexCount(), c.IndexWidth)
}
