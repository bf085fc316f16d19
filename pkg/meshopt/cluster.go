package meshopt

import (
	"github.com/chazu/cadcore/pkg/vecmath"
)

// clusterPadding is added to each axis of the AABB before computing cell
// size, so a vertex exactly on the max face lands in cell grid-1 rather
// than an out-of-range cell grid (§4.F).
const clusterPadding = 0.001

// cellAccumulator sums contributing vertex positions (in input order, so
// float summation is not reassociated — §4.F determinism) and counts them
// to produce a centroid.
type cellAccumulator struct {
	sum   vecmath.Vector3
	count int
	index int // output vertex index, assigned on first use
}

// ClusterStats reports how many triangles a clustering pass kept and
// dropped, for the preprocessor's logging.
type ClusterStats struct {
	RetainedTriangles int
	RemovedTriangles  int
}

// Cluster decimates mesh using uniform grid vertex clustering (§4.F). grid
// is clamped to [32, 1024] by the caller (PreprocessorOptions owns that
// contract); Cluster itself trusts its input. Every cell's contributing
// vertices collapse to their arithmetic centroid; any triangle whose three
// remapped indices are not pairwise distinct is dropped as degenerate.
func Cluster(mesh *Mesh, grid int) (*Mesh, ClusterStats) {
	if mesh.IsEmpty() || len(mesh.Vertices) == 0 {
		return &Mesh{Layer: mesh.Layer}, ClusterStats{}
	}

	min, max, _ := AABB(mesh.Vertices)
	extent := max.Sub(min).Add(vecmath.New(clusterPadding, clusterPadding, clusterPadding))
	// Padding is added to the extent (not shifted into min) so the cell
	// grid still starts exactly at min — only the max face backs off.
	cellSize := vecmath.New(
		safeDiv(extent.X, grid),
		safeDiv(extent.Y, grid),
		safeDiv(extent.Z, grid),
	)

	cellOf := func(v vecmath.Vector3) (int, int, int) {
		cx := clampCell(int((v.X-min.X)/cellSize.X), grid)
		cy := clampCell(int((v.Y-min.Y)/cellSize.Y), grid)
		cz := clampCell(int((v.Z-min.Z)/cellSize.Z), grid)
		return cx, cy, cz
	}

	cellID := func(cx, cy, cz int) int64 {
		return int64(cx) + int64(cy)*int64(grid) + int64(cz)*int64(grid)*int64(grid)
	}

	cells := make(map[int64]*cellAccumulator)
	// vertexCell maps each input vertex index to the cell id it fell
	// into, avoiding a second cell computation during triangle remap.
	vertexCell := make([]int64, len(mesh.Vertices))
	for i, vtx := range mesh.Vertices {
		cx, cy, cz := cellOf(vtx)
		id := cellID(cx, cy, cz)
		vertexCell[i] = id
		acc, ok := cells[id]
		if !ok {
			acc = &cellAccumulator{index: -1}
			cells[id] = acc
		}
		acc.sum = acc.sum.Add(vtx)
		acc.count++
	}

	outVertices := make([]vecmath.Vector3, 0, len(cells))
	// Assign output indices in input-vertex-order of first occurrence so
	// the result is deterministic for a fixed input order, not dependent
	// on Go's map iteration order.
	for i := range mesh.Vertices {
		id := vertexCell[i]
		acc := cells[id]
		if acc.index == -1 {
			acc.index = len(outVertices)
			outVertices = append(outVertices, acc.sum.Scale(1/float64(acc.count)))
		}
	}

	outIndices := make([]uint32, 0, len(mesh.TriangleIndices))
	retained, removed := 0, 0
	triCount := len(mesh.TriangleIndices) / 3
	for t := 0; t < triCount; t++ {
		i0 := mesh.TriangleIndices[t*3]
		i1 := mesh.TriangleIndices[t*3+1]
		i2 := mesh.TriangleIndices[t*3+2]
		a := uint32(cells[vertexCell[i0]].index)
		b := uint32(cells[vertexCell[i1]].index)
		c := uint32(cells[vertexCell[i2]].index)
		if a == b || b == c || a == c {
			removed++
			continue
		}
		outIndices = append(outIndices, a, b, c)
		retained++
	}

	return &Mesh{Layer: mesh.Layer, Vertices: outVertices, TriangleIndices: outIndices},
		ClusterStats{RetainedTriangles: retained, RemovedTriangles: removed}
}

func safeDiv(extent float64, grid int) float64 {
	if extent <= 0 {
		return 1
	}
	return extent / float64(grid)
}

func clampCell(c, grid int) int {
	if c < 0 {
		return 0
	}
	if c > grid-1 {
		return grid - 1
	}
	return c
}

// occupiedCellCount is a small helper used by tests to confirm the §8
// invariant |vertices| <= occupied cells.
func occupiedCellCount(mesh *Mesh, grid int) int {
	min, max, ok := AABB(mesh.Vertices)
	if !ok {
		return 0
	}
	extent := max.Sub(min).Add(vecmath.New(clusterPadding, clusterPadding, clusterPadding))
	cellSize := vecmath.New(safeDiv(extent.X, grid), safeDiv(extent.Y, grid), safeDiv(extent.Z, grid))
	seen := make(map[int64]struct{})
	for _, vtx := range mesh.Vertices {
		cx := clampCell(int((vtx.X-min.X)/cellSize.X), grid)
		cy := clampCell(int((vtx.Y-min.Y)/cellSize.Y), grid)
		cz := clampCell(int((vtx.Z-min.Z)/cellSize.Z), grid)
		seen[int64(cx)+int64(cy)*int64(grid)+int64(cz)*int64(grid)*int64(grid)] = struct{}{}
	}
	return len(seen)
}
