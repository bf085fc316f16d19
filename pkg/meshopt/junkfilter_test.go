package meshopt

import (
	"testing"

	"github.com/chazu/cadcore/pkg/vecmath"
)

func TestBoundingBoxCullKeepsDenseCluster(t *testing.T) {
	// A dense cluster of triangles near the origin, plus one outlier
	// triangle far away that the percentile box should exclude.
	var vertices []vecmath.Vector3
	var indices []uint32
	for i := 0; i < 100; i++ {
		x := float64(i%10) * 0.1
		y := float64(i/10) * 0.1
		base := uint32(len(vertices))
		vertices = append(vertices,
			vecmath.New(x, y, 0),
			vecmath.New(x+0.05, y, 0),
			vecmath.New(x, y+0.05, 0),
		)
		indices = append(indices, base, base+1, base+2)
	}
	// Outlier far from the cluster.
	base := uint32(len(vertices))
	vertices = append(vertices, vecmath.New(1000, 1000, 1000), vecmath.New(1001, 1000, 1000), vecmath.New(1000, 1001, 1000))
	indices = append(indices, base, base+1, base+2)

	mesh := &Mesh{Layer: "cull", Vertices: vertices, TriangleIndices: indices}
	out := boundingBoxCull(mesh, 0.95, 0.10)

	if out.TriangleCount() >= mesh.TriangleCount() {
		t.Fatalf("expected the outlier triangle to be culled, got %d (from %d)", out.TriangleCount(), mesh.TriangleCount())
	}
	for _, v := range out.Vertices {
		if v.X > 500 {
			t.Fatalf("outlier vertex %v survived the cull", v)
		}
	}
}

func TestRemoveSmallIslandsKeepsLargeComponent(t *testing.T) {
	mesh := buildGrid() // one large connected component, 162 triangles
	// A disconnected 2-triangle island far away.
	base := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices,
		vecmath.New(100, 100, 0), vecmath.New(101, 100, 0), vecmath.New(100, 101, 0), vecmath.New(101, 101, 0))
	mesh.TriangleIndices = append(mesh.TriangleIndices, base, base+1, base+2, base, base+2, base+3)

	out := removeSmallIslands(mesh, 100)
	if out.TriangleCount() != 162 {
		t.Fatalf("triangle count = %d, want 162 (island dropped, main mesh kept)", out.TriangleCount())
	}
}

func TestRemoveSmallIslandsDropsEverythingBelowThreshold(t *testing.T) {
	mesh := buildGrid()
	out := removeSmallIslands(mesh, 1000) // above the fixture's 162 triangles
	if !out.IsEmpty() {
		t.Fatalf("expected everything dropped, got %d triangles", out.TriangleCount())
	}
}

func TestFilterDefaultOptionsKeepsMainComponent(t *testing.T) {
	mesh := buildGrid()
	out := Filter(mesh, DefaultJunkFilterOptions())
	if out.TriangleCount() == 0 {
		t.Fatalf("expected the main grid component to survive both passes")
	}
	for i := 0; i < out.TriangleCount(); i++ {
		a, b, c := out.TriangleIndices[i*3], out.TriangleIndices[i*3+1], out.TriangleIndices[i*3+2]
		if int(a) >= len(out.Vertices) || int(b) >= len(out.Vertices) || int(c) >= len(out.Vertices) {
			t.Fatalf("triangle %d references out-of-range vertex", i)
		}
	}
}

func TestRemapMeshDropsUnreferencedVertices(t *testing.T) {
	vertices := []vecmath.Vector3{vecmath.New(0, 0, 0), vecmath.New(1, 0, 0), vecmath.New(0, 1, 0), vecmath.New(9, 9, 9)}
	kept := [][3]uint32{{0, 1, 2}}
	out := remapMesh("l", vertices, kept)
	if len(out.Vertices) != 3 {
		t.Fatalf("len(Vertices) = %d, want 3 (unreferenced vertex 3 dropped)", len(out.Vertices))
	}
}
