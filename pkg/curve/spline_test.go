package curve

import (
	"testing"

	"github.com/chazu/cadcore/pkg/vecmath"
)

func TestCubicBezierStraightLineIsFlat(t *testing.T) {
	p0 := vecmath.New(0, 0, 0)
	p1 := vecmath.New(1, 0, 0)
	p2 := vecmath.New(2, 0, 0)
	p3 := vecmath.New(3, 0, 0)
	pts := CubicBezier(p0, p1, p2, p3, 0.01)
	if len(pts) != 2 {
		t.Fatalf("len(pts) = %d, want 2 for a perfectly straight cubic", len(pts))
	}
	if pts[0] != p0 || pts[1] != p3 {
		t.Fatalf("endpoints not preserved: %v", pts)
	}
}

func TestCubicBezierSubdividesCurve(t *testing.T) {
	p0 := vecmath.New(0, 0, 0)
	p1 := vecmath.New(0, 10, 0)
	p2 := vecmath.New(10, 10, 0)
	p3 := vecmath.New(10, 0, 0)
	pts := CubicBezier(p0, p1, p2, p3, 0.05)
	if len(pts) < 3 {
		t.Fatalf("expected subdivision for a sharp curve, got %d points", len(pts))
	}
	if pts[0] != p0 {
		t.Fatalf("first point = %v, want %v", pts[0], p0)
	}
	if pts[len(pts)-1] != p3 {
		t.Fatalf("last point = %v, want %v", pts[len(pts)-1], p3)
	}
	// Every interior sample must be within tol of the chord between its
	// immediate neighbors in the final polyline (a coarse flatness check).
	for i := 1; i < len(pts)-1; i++ {
		d := perpendicularDistance(pts[i], pts[i-1], pts[i+1])
		if d > 5 {
			t.Fatalf("point %d strays too far from its local chord: %v", i, d)
		}
	}
}

func TestQuadraticBezierPromotion(t *testing.T) {
	p0 := vecmath.New(0, 0, 0)
	p1 := vecmath.New(5, 10, 0)
	p2 := vecmath.New(10, 0, 0)
	pts := QuadraticBezier(p0, p1, p2, 0.05)
	if pts[0] != p0 || pts[len(pts)-1] != p2 {
		t.Fatalf("endpoints not preserved: %v", pts)
	}
}

func TestBSplineTooFewControls(t *testing.T) {
	controls := []vecmath.Vector3{vecmath.New(0, 0, 0), vecmath.New(1, 1, 0)}
	out := BSpline(controls, 3, 50)
	if len(out) != len(controls) {
		t.Fatalf("len(out) = %d, want %d (unchanged)", len(out), len(controls))
	}
}

func TestBSplineSamplesWithinHull(t *testing.T) {
	controls := []vecmath.Vector3{
		vecmath.New(0, 0, 0),
		vecmath.New(1, 2, 0),
		vecmath.New(3, 2, 0),
		vecmath.New(4, 0, 0),
		vecmath.New(5, -2, 0),
	}
	k := BSplineSampleCount(len(controls), 0)
	pts := BSpline(controls, 3, k)
	if len(pts) != k {
		t.Fatalf("len(pts) = %d, want %d", len(pts), k)
	}
	for _, p := range pts {
		if p.X < -1 || p.X > 6 {
			t.Fatalf("sample %v strays outside the convex hull's x-range", p)
		}
	}
}

func TestBSplineSampleCountClamp(t *testing.T) {
	if got := BSplineSampleCount(3, 5); got != 20 {
		t.Fatalf("BSplineSampleCount(3, 5) = %d, want 20", got)
	}
	if got := BSplineSampleCount(10, 5); got != 50 {
		t.Fatalf("BSplineSampleCount(10, 5) = %d, want 50", got)
	}
	if got := BSplineSampleCount(3, 100); got != 100 {
		t.Fatalf("BSplineSampleCount(3, 100) = %d, want 100 (request above floor)", got)
	}
}
