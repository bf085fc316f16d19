// Package triangulate implements ear-clipping triangulation of simple
// planar polygons expressed as 3D points (§4.E), including robust
// 3D-to-2D projection via Newell's method for plane-normal estimation.
package triangulate

import "github.com/chazu/cadcore/pkg/vecmath"

// point2 is a polygon vertex projected into its estimated plane.
type point2 struct {
	x, y float64
}

// planeNormal estimates the polygon's plane normal with Newell's method:
// summing, componentwise, the cross product of consecutive (current, next)
// vertex pairs. Falls back to +Z when the polygon is degenerate (the
// accumulated normal has zero length).
func planeNormal(points []vecmath.Vector3) vecmath.Vector3 {
	n := len(points)
	var sum vecmath.Vector3
	for i := 0; i < n; i++ {
		cur := points[i]
		next := points[(i+1)%n]
		sum.X += (cur.Y - next.Y) * (cur.Z + next.Z)
		sum.Y += (cur.Z - next.Z) * (cur.X + next.X)
		sum.Z += (cur.X - next.X) * (cur.Y + next.Y)
	}
	normal := sum.Normalized()
	if normal == vecmath.Zero {
		return vecmath.New(0, 0, 1)
	}
	return normal
}

// project2D flattens 3D polygon points onto the 2D basis of their
// estimated plane, using the same (u, v) frame convention as the arc
// tessellator (§4.B, §4.E).
func project2D(points []vecmath.Vector3) []point2 {
	normal := planeNormal(points)
	u, v := vecmath.Basis(normal)
	out := make([]point2, len(points))
	for i, p := range points {
		out[i] = point2{x: u.Dot(p), y: v.Dot(p)}
	}
	return out
}

// signedArea2 returns twice the signed area of the 2D polygon; positive
// for counter-clockwise winding.
func signedArea2(pts []point2) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		sum += a.x*b.y - b.x*a.y
	}
	return sum
}

func cross2(o, a, b point2) float64 {
	return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
}

// pointInTriangle is the same-sign-on-three-edge-functions test of §4.E.
func pointInTriangle(p, a, b, c point2) bool {
	d1 := cross2(a, b, p)
	d2 := cross2(b, c, p)
	d3 := cross2(c, a, p)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// Triangulate ear-clips a simple, closed polygon (given without an
// explicit closing vertex) and returns a flat list of triangle indices
// into the input slice. Fewer than 3 points yields an empty result; 3
// points yields exactly [0,1,2].
func Triangulate(points []vecmath.Vector3) []uint32 {
	n := len(points)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return []uint32{0, 1, 2}
	}

	pts2 := project2D(points)

	// working holds the original indices still in the polygon, reordered
	// to counter-clockwise winding so the convexity test's sign
	// convention is consistent.
	working := make([]int, n)
	for i := range working {
		working[i] = i
	}
	if signedArea2(pts2) < 0 {
		for i, j := 0, len(working)-1; i < j; i, j = i+1, j-1 {
			working[i], working[j] = working[j], working[i]
		}
	}

	var indices []uint32
	maxIterations := n * n
	iterations := 0
	for len(working) > 3 && iterations < maxIterations {
		iterations++
		earFound := false
		m := len(working)
		for i := 0; i < m; i++ {
			ai := working[(i-1+m)%m]
			bi := working[i]
			ci := working[(i+1)%m]
			a, b, c := pts2[ai], pts2[bi], pts2[ci]

			if cross2(a, b, c) <= 0 {
				continue // not convex
			}

			containsOther := false
			for j := 0; j < m; j++ {
				vj := working[j]
				if vj == ai || vj == bi || vj == ci {
					continue
				}
				if pointInTriangle(pts2[vj], a, b, c) {
					containsOther = true
					break
				}
			}
			if containsOther {
				continue
			}

			indices = append(indices, uint32(ai), uint32(bi), uint32(ci))
			working = append(working[:i], working[i+1:]...)
			earFound = true
			break
		}
		if !earFound {
			break
		}
	}

	// Emit the final triangle. When ear-clipping stopped early (no ear found
	// or the iteration cap reached), more than three vertices remain; only
	// the first three of them are emitted, as one best-effort triangle (§9
	// open question), and the rest of the polygon is left uncovered.
	if len(working) >= 3 {
		indices = append(indices, uint32(working[0]), uint32(working[1]), uint32(working[2]))
	}
	return indices
}
