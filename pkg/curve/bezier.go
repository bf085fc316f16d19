package curve

import "github.com/chazu/cadcore/pkg/vecmath"

// maxBezierDepth bounds the de Casteljau recursion so a pathological
// (self-overlapping, near-zero-length) curve cannot recurse unboundedly.
const maxBezierDepth = 24

// perpendicularDistance is the segment-clamped point-to-segment distance
// shared with the RDP simplifier (§4.D): project p-a onto b-a, clamp the
// parameter to [0,1], return the distance from p to that clamped point.
func perpendicularDistance(p, a, b vecmath.Vector3) float64 {
	ab := b.Sub(a)
	lenSq := ab.LengthSquared()
	if lenSq < 1e-12 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return p.Distance(closest)
}

// CubicBezier adaptively samples a cubic Bezier curve (p0, p1, p2, p3) so
// that every sampled segment stays within tol of the true curve, per the
// flatness predicate of §4.C: both control points must project within tol
// of the chord p0-p3, or the curve is subdivided via de Casteljau.
func CubicBezier(p0, p1, p2, p3 vecmath.Vector3, tol float64) []vecmath.Vector3 {
	var out []vecmath.Vector3
	out = append(out, p0)
	sampleCubic(p0, p1, p2, p3, tol, maxBezierDepth, &out)
	out = append(out, p3)
	return out
}

// QuadraticBezier promotes a quadratic Bezier (p0, p1, p2) to the
// equivalent cubic via the standard degree-raising formula and samples it.
func QuadraticBezier(p0, p1, p2 vecmath.Vector3, tol float64) []vecmath.Vector3 {
	cp1 := p0.Add(p1.Sub(p0).Scale(2.0 / 3.0))
	cp2 := p2.Add(p1.Sub(p2).Scale(2.0 / 3.0))
	return CubicBezier(p0, cp1, cp2, p2, tol)
}

// sampleCubic recurses per §4.C: p0, recurse(left), midpoint, recurse(right),
// p3 — but p0 and p3 are appended by the caller, so this only emits the
// midpoint and the recursive interior points.
func sampleCubic(p0, p1, p2, p3 vecmath.Vector3, tol float64, depth int, out *[]vecmath.Vector3) {
	flat := depth <= 0 ||
		(perpendicularDistance(p1, p0, p3) <= tol && perpendicularDistance(p2, p0, p3) <= tol)
	if flat {
		return
	}

	// de Casteljau subdivision at t=0.5.
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)

	sampleCubic(p0, p01, p012, mid, tol, depth-1, out)
	*out = append(*out, mid)
	sampleCubic(mid, p123, p23, p3, tol, depth-1, out)
}
