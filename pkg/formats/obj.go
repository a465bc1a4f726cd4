package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/surfacelab/pkg/surface"
)

// WriteOBJ writes m as a Wavefront OBJ. Triangle meshes become faces
// referencing whichever of vt/vn the mesh carries; wireframes become
// line elements. Indices in the file are 1-based.
func WriteOBJ(w io.Writer, m *surface.Mesh) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# surface %s\n", m.Params)
	fmt.Fprintf(bw, "# %d vertices, %d %s\n", m.VertexCount(), m.PrimitiveCount(), m.Topology)
	fmt.Fprintln(bw, "o surface")

	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, uv := range m.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
	}

	hasUV := len(m.UVs) > 0
	hasNormal := len(m.Normals) > 0

	if m.Topology == surface.Wireframe {
		for i := 0; i+1 < len(m.Indices); i += 2 {
			fmt.Fprintf(bw, "l %d %d\n", m.Indices[i]+1, m.Indices[i+1]+1)
		}
		return bw.Flush()
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		bw.WriteString("f")
		for _, idx := range m.Indices[i : i+3] {
			n := idx + 1
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", n, n, n)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", n, n)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", n, n)
			default:
				fmt.Fprintf(bw, " %d", n)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// SaveOBJ writes m to an OBJ file at path.
func SaveOBJ(path string, m *surface.Mesh) error {
	return saveFile(path, m, WriteOBJ)
}

func saveFile(path string, m *surface.Mesh, write func(io.Writer, *surface.Mesh) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
