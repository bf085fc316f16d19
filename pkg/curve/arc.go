// Package curve turns parametric CAD primitives — arcs, circles, ellipses,
// cubic Bezier and uniform B-spline curves — into polylines under a
// chord-error (or flatness) contract. Every function here is pure: given
// the same inputs it returns the same points, with no shared state between
// calls.
package curve

import (
	"math"

	"github.com/chazu/cadcore/pkg/vecmath"
)

// ArcParams describes a circular or elliptical arc to tessellate.
type ArcParams struct {
	Center       vecmath.Vector3
	Radius       float64 // arc or circle radius (ellipses use EllipseParams)
	StartAngle   float64 // radians
	EndAngle     float64 // radians
	Normal       vecmath.Vector3
	ChordError   float64
	MinSegments  int
	MaxSegments  int
}

// clampInt clamps n into [lo, hi]. When hi < lo, values below lo return lo
// and all others return hi; ValidateOptions rejects MaxArcSegments below
// MinArcSegments.
func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// normalizeSweep computes end-start, adding a full turn when negative so
// the arc always sweeps in the increasing-angle direction.
func normalizeSweep(start, end float64) float64 {
	sweep := end - start
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	return sweep
}

// segmentCount implements §4.B's segment-count formula with its degenerate
// fallbacks: radius<=0 or chordError<=0 collapses to minSegments; a
// non-positive max-angle-per-segment (which can only arise from a
// degenerate radius/chordError pairing) collapses to maxSegments.
func segmentCount(sweep, radius, chordError float64, minSegments, maxSegments int) int {
	if radius <= 0 || chordError <= 0 {
		return minSegments
	}
	cos := clampFloat(1-chordError/radius, -1, 1)
	maxAnglePerSegment := 2 * math.Acos(cos)
	if maxAnglePerSegment <= 0 {
		return maxSegments
	}
	n := int(math.Ceil(sweep / maxAnglePerSegment))
	return clampInt(n, minSegments, maxSegments)
}

// Arc tessellates a circular arc (or a full circle, when StartAngle=0 and
// EndAngle=2*Pi) into a polyline of n+1 points, n the clamped segment
// count. The basis used to place points in the arc's plane follows
// vecmath.Basis applied to Normal (caller is not required to normalize it).
func Arc(p ArcParams) []vecmath.Vector3 {
	sweep := normalizeSweep(p.StartAngle, p.EndAngle)
	n := segmentCount(sweep, p.Radius, p.ChordError, p.MinSegments, p.MaxSegments)

	normal := p.Normal.Normalized()
	if normal == vecmath.Zero {
		normal = vecmath.New(0, 0, 1)
	}
	u, v := vecmath.Basis(normal)

	points := make([]vecmath.Vector3, n+1)
	for i := 0; i <= n; i++ {
		theta := p.StartAngle + float64(i)*(sweep/float64(n))
		offset := u.Scale(p.Radius * math.Cos(theta)).Add(v.Scale(p.Radius * math.Sin(theta)))
		points[i] = p.Center.Add(offset)
	}
	return points
}

// EllipseParams describes a full ellipse to tessellate.
type EllipseParams struct {
	Center      vecmath.Vector3
	MajorRadius float64
	MinorRadius float64
	Rotation    float64 // in-plane rotation of the major axis, radians
	Normal      vecmath.Vector3
	ChordError  float64
	MinSegments int
	MaxSegments int
}

// Ellipse tessellates a full-turn ellipse. Segment count is estimated from
// max(major, minor) using Arc's formula, then the min/max clamps are
// doubled per §4.B before re-clamping, reflecting that an ellipse needs
// more samples than a circle of the same characteristic radius to hold
// the same chord error near its major axis.
func Ellipse(p EllipseParams) []vecmath.Vector3 {
	r := math.Max(p.MajorRadius, p.MinorRadius)
	sweep := 2 * math.Pi
	minSeg := p.MinSegments * 2
	maxSeg := p.MaxSegments * 2
	n := segmentCount(sweep, r, p.ChordError, minSeg, maxSeg)

	normal := p.Normal.Normalized()
	if normal == vecmath.Zero {
		normal = vecmath.New(0, 0, 1)
	}
	u, v := vecmath.Basis(normal)

	cosR := math.Cos(p.Rotation)
	sinR := math.Sin(p.Rotation)
	ur := u.Scale(cosR).Sub(v.Scale(sinR))
	vr := u.Scale(sinR).Add(v.Scale(cosR))

	points := make([]vecmath.Vector3, n+1)
	for i := 0; i <= n; i++ {
		theta := float64(i) * (sweep / float64(n))
		offset := ur.Scale(p.MajorRadius * math.Cos(theta)).Add(vr.Scale(p.MinorRadius * math.Sin(theta)))
		points[i] = p.Center.Add(offset)
	}
	return points
}
