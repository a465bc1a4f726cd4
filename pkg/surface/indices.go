package surface

// GridEdges returns index pairs for every edge of the grid.
// Each node links back to its (i-1, j) and (i, j-1) neighbours, so every
// undirected edge appears exactly once.
func GridEdges(g Grid) []uint32 {
	indices := make([]uint32, 0, 2*g.EdgeCount())
	for i := 0; i <= g.USteps; i++ {
		for j := 0; j <= g.VSteps; j++ {
			current := uint32(g.Index(i, j))
			if i > 0 {
				indices = append(indices, current, uint32(g.Index(i-1, j)))
			}
			if j > 0 {
				indices = append(indices, current, uint32(g.Index(i, j-1)))
			}
		}
	}
	return indices
}

// GridTriangles returns two triangles per grid cell.
// Winding follows ∂F/∂u × ∂F/∂v so front faces agree with the emitted normals.
func GridTriangles(g Grid) []uint32 {
	indices := make([]uint32, 0, 3*g.TriangleCount())
	for i := 0; i < g.USteps; i++ {
		for j := 0; j < g.VSteps; j++ {
			topLeft := uint32(g.Index(i, j))
			topRight := uint32(g.Index(i, j+1))
			bottomLeft := uint32(g.Index(i+1, j))
			bottomRight := uint32(g.Index(i+1, j+1))

			indices = append(indices,
				topLeft, bottomLeft, bottomRight,
				topLeft, bottomRight, topRight,
			)
		}
	}
	return indices
}

// TrianglesToLines converts a triangle list into a line list with the three
// edges of every triangle. Shared edges are emitted once per triangle.
func TrianglesToLines(indices []uint32) []uint32 {
	lines := make([]uint32, 0, len(indices)/3*6)
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		lines = append(lines,
			i0, i1,
			i1, i2,
			i2, i0,
		)
	}
	return lines
}
