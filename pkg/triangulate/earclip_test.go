package triangulate

import (
	"testing"

	"github.com/chazu/cadcore/pkg/vecmath"
)

func triArea(a, b, c vecmath.Vector3) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Length()
}

func TestTriangulateTooFewPoints(t *testing.T) {
	if got := Triangulate(nil); got != nil {
		t.Fatalf("Triangulate(nil) = %v, want nil", got)
	}
	two := []vecmath.Vector3{vecmath.New(0, 0, 0), vecmath.New(1, 0, 0)}
	if got := Triangulate(two); got != nil {
		t.Fatalf("Triangulate(2 points) = %v, want nil", got)
	}
}

func TestTriangulateTriangleIsIdentity(t *testing.T) {
	pts := []vecmath.Vector3{vecmath.New(0, 0, 0), vecmath.New(1, 0, 0), vecmath.New(0, 1, 0)}
	got := Triangulate(pts)
	want := []uint32{0, 1, 2}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("Triangulate(triangle) = %v, want %v", got, want)
	}
}

func TestTriangulateSquare(t *testing.T) {
	pts := []vecmath.Vector3{
		vecmath.New(0, 0, 0), vecmath.New(1, 0, 0), vecmath.New(1, 1, 0), vecmath.New(0, 1, 0),
	}
	indices := Triangulate(pts)
	if len(indices) != 6 {
		t.Fatalf("len(indices) = %d, want 6 (2 triangles)", len(indices))
	}

	var totalArea float64
	seen := map[uint32]bool{}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := pts[indices[i]], pts[indices[i+1]], pts[indices[i+2]]
		totalArea += triArea(a, b, c)
		seen[indices[i]] = true
		seen[indices[i+1]] = true
		seen[indices[i+2]] = true
	}
	if len(seen) != 4 {
		t.Fatalf("triangles reference %d distinct vertices, want 4", len(seen))
	}
	if diff := totalArea - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("total triangle area = %v, want 1.0", totalArea)
	}
}

func TestTriangulateConvexPolygonTriangleCount(t *testing.T) {
	// A regular hexagon: n-2 = 4 triangles expected.
	pts := []vecmath.Vector3{
		vecmath.New(1, 0, 0), vecmath.New(0.5, 0.866, 0), vecmath.New(-0.5, 0.866, 0),
		vecmath.New(-1, 0, 0), vecmath.New(-0.5, -0.866, 0), vecmath.New(0.5, -0.866, 0),
	}
	indices := Triangulate(pts)
	triCount := len(indices) / 3
	if triCount != len(pts)-2 {
		t.Fatalf("triangle count = %d, want %d", triCount, len(pts)-2)
	}
	vertexSet := map[uint32]bool{}
	for _, idx := range indices {
		vertexSet[idx] = true
	}
	if len(vertexSet) != len(pts) {
		t.Fatalf("triangulation references %d distinct vertices, want %d", len(vertexSet), len(pts))
	}
}

func TestTriangulateNonPlanarProjectsConsistently(t *testing.T) {
	// A square tilted out of the XY plane; should still triangulate into
	// 2 non-degenerate triangles.
	pts := []vecmath.Vector3{
		vecmath.New(0, 0, 0), vecmath.New(1, 0, 0.2), vecmath.New(1, 1, 0.4), vecmath.New(0, 1, 0.2),
	}
	indices := Triangulate(pts)
	if len(indices) != 6 {
		t.Fatalf("len(indices) = %d, want 6", len(indices))
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if a == b || b == c || a == c {
			t.Fatalf("degenerate triangle at offset %d: (%d,%d,%d)", i, a, b, c)
		}
	}
}
