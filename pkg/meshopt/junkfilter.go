package meshopt

import (
	"sort"

	"github.com/chazu/cadcore/pkg/vecmath"
	"github.com/samber/lo"
)

// JunkFilterOptions configures the two §4.G passes. Both default to
// enabled with the documented defaults; a caller wanting only one pass
// sets the other pass's flag (BoundingBoxCull or IslandRemoval) to false.
type JunkFilterOptions struct {
	BoundingBoxCull    bool
	Percentile         float64 // default 0.95
	Padding            float64 // default 0.10 (10% of extent)
	IslandRemoval      bool
	MinComponentSize   int // default 100
}

// DefaultJunkFilterOptions returns §4.G's documented defaults with both
// passes enabled.
func DefaultJunkFilterOptions() JunkFilterOptions {
	return JunkFilterOptions{
		BoundingBoxCull:  true,
		Percentile:       0.95,
		Padding:          0.10,
		IslandRemoval:    true,
		MinComponentSize: 100,
	}
}

// Filter runs the enabled passes in the §4.G-mandated order: bounding-box
// cull first, then island removal on its output.
func Filter(mesh *Mesh, opts JunkFilterOptions) *Mesh {
	out := mesh
	if opts.BoundingBoxCull {
		out = boundingBoxCull(out, opts.Percentile, opts.Padding)
	}
	if opts.IslandRemoval {
		out = removeSmallIslands(out, opts.MinComponentSize)
	}
	return out
}

// percentileBox computes the expanded percentile bounding box of §4.G: for
// each axis, sort coordinates and take the (1-p)/2 and (1+p)/2 percentile
// indices, then expand by +/- padding*extent.
func percentileBox(vertices []vecmath.Vector3, p, padding float64) (min, max vecmath.Vector3) {
	xs := lo.Map(vertices, func(v vecmath.Vector3, _ int) float64 { return v.X })
	ys := lo.Map(vertices, func(v vecmath.Vector3, _ int) float64 { return v.Y })
	zs := lo.Map(vertices, func(v vecmath.Vector3, _ int) float64 { return v.Z })
	sort.Float64s(xs)
	sort.Float64s(ys)
	sort.Float64s(zs)

	pctl := func(sorted []float64, frac float64) float64 {
		idx := int(frac * float64(len(sorted)-1))
		if idx < 0 {
			idx = 0
		}
		if idx > len(sorted)-1 {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}

	lowFrac := (1 - p) / 2
	highFrac := (1 + p) / 2

	minX, maxX := pctl(xs, lowFrac), pctl(xs, highFrac)
	minY, maxY := pctl(ys, lowFrac), pctl(ys, highFrac)
	minZ, maxZ := pctl(zs, lowFrac), pctl(zs, highFrac)
	if maxX <= minX {
		maxX = xs[len(xs)-1]
	}
	if maxY <= minY {
		maxY = ys[len(ys)-1]
	}
	if maxZ <= minZ {
		maxZ = zs[len(zs)-1]
	}

	extentX, extentY, extentZ := maxX-minX, maxY-minY, maxZ-minZ
	min = vecmath.New(minX-padding*extentX, minY-padding*extentY, minZ-padding*extentZ)
	max = vecmath.New(maxX+padding*extentX, maxY+padding*extentY, maxZ+padding*extentZ)
	return min, max
}

func insideBox(p, min, max vecmath.Vector3) bool {
	return p.X >= min.X && p.X <= max.X &&
		p.Y >= min.Y && p.Y <= max.Y &&
		p.Z >= min.Z && p.Z <= max.Z
}

// boundingBoxCull keeps a triangle if any of its three vertices lies
// inside the expanded percentile box, then remaps vertices so the output
// has no unreferenced entries.
func boundingBoxCull(mesh *Mesh, percentile, padding float64) *Mesh {
	if len(mesh.Vertices) == 0 {
		return &Mesh{Layer: mesh.Layer}
	}
	min, max := percentileBox(mesh.Vertices, percentile, padding)

	triCount := mesh.TriangleCount()
	keptTriangles := make([][3]uint32, 0, triCount)
	for t := 0; t < triCount; t++ {
		i0 := mesh.TriangleIndices[t*3]
		i1 := mesh.TriangleIndices[t*3+1]
		i2 := mesh.TriangleIndices[t*3+2]
		if insideBox(mesh.Vertices[i0], min, max) ||
			insideBox(mesh.Vertices[i1], min, max) ||
			insideBox(mesh.Vertices[i2], min, max) {
			keptTriangles = append(keptTriangles, [3]uint32{i0, i1, i2})
		}
	}
	return remapMesh(mesh.Layer, mesh.Vertices, keptTriangles)
}

// removeSmallIslands builds a union-find over triangles, joining any two
// triangles that share an undirected edge, then keeps only triangles whose
// component has at least minTriangles members.
func removeSmallIslands(mesh *Mesh, minTriangles int) *Mesh {
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		return &Mesh{Layer: mesh.Layer}
	}

	edgeOwner := make(map[[2]uint32]int)
	uf := newUnionFind(triCount)

	edgeKey := func(a, b uint32) [2]uint32 {
		if a > b {
			a, b = b, a
		}
		return [2]uint32{a, b}
	}

	for t := 0; t < triCount; t++ {
		i0 := mesh.TriangleIndices[t*3]
		i1 := mesh.TriangleIndices[t*3+1]
		i2 := mesh.TriangleIndices[t*3+2]
		for _, e := range [][2]uint32{edgeKey(i0, i1), edgeKey(i1, i2), edgeKey(i2, i0)} {
			if owner, ok := edgeOwner[e]; ok {
				uf.union(owner, t)
			} else {
				edgeOwner[e] = t
			}
		}
	}

	componentSize := make(map[int]int)
	for t := 0; t < triCount; t++ {
		componentSize[uf.find(t)]++
	}

	keptTriangles := make([][3]uint32, 0, triCount)
	for t := 0; t < triCount; t++ {
		if componentSize[uf.find(t)] >= minTriangles {
			keptTriangles = append(keptTriangles, [3]uint32{
				mesh.TriangleIndices[t*3], mesh.TriangleIndices[t*3+1], mesh.TriangleIndices[t*3+2],
			})
		}
	}
	return remapMesh(mesh.Layer, mesh.Vertices, keptTriangles)
}

// remapMesh rebuilds a vertex array containing only vertices referenced by
// keptTriangles, in first-reference order, and rewrites triangle indices
// to match.
func remapMesh(layer string, vertices []vecmath.Vector3, keptTriangles [][3]uint32) *Mesh {
	remap := make(map[uint32]uint32)
	outVertices := make([]vecmath.Vector3, 0, len(vertices))
	outIndices := make([]uint32, 0, len(keptTriangles)*3)

	remapOne := func(idx uint32) uint32 {
		if newIdx, ok := remap[idx]; ok {
			return newIdx
		}
		newIdx := uint32(len(outVertices))
		outVertices = append(outVertices, vertices[idx])
		remap[idx] = newIdx
		return newIdx
	}

	for _, tri := range keptTriangles {
		outIndices = append(outIndices, remapOne(tri[0]), remapOne(tri[1]), remapOne(tri[2]))
	}
	return &Mesh{Layer: layer, Vertices: outVertices, TriangleIndices: outIndices}
}
