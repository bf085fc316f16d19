package curve

import "github.com/chazu/cadcore/pkg/vecmath"

// minBSplineSamples is the floor on sample count regardless of caller
// request, per §4.C ("implementer clamps k >= max(20, 5*|control|)").
const minBSplineSamples = 20

// zeroGuard is the minimum denominator magnitude the de Boor-Cox basis
// recursion will divide by before falling back to the skip-term policy
// (§9 open question: division by zero at repeated interior knots).
const zeroGuard = 1e-12

// BSplineSampleCount returns the clamped sample count §4.C mandates for a
// uniform B-spline with the given control-point count.
func BSplineSampleCount(controlCount, requested int) int {
	floor := minBSplineSamples
	if 5*controlCount > floor {
		floor = 5 * controlCount
	}
	if requested > floor {
		return requested
	}
	return floor
}

// uniformKnotVector builds the n+d+2 entry knot vector of §4.C: d+1 leading
// zeros, interior knots (i-d)/(n-d+1) for d < i <= n, and trailing entries
// set to 1.
func uniformKnotVector(n, d int) []float64 {
	knots := make([]float64, n+d+2)
	for i := 0; i <= d; i++ {
		knots[i] = 0
	}
	denom := float64(n - d + 1)
	for i := d + 1; i <= n; i++ {
		knots[i] = float64(i-d) / denom
	}
	for i := n + 1; i < len(knots); i++ {
		knots[i] = 1
	}
	return knots
}

// findKnotSpan finds the smallest i >= d with u < knots[i+1], falling back
// to n when no such span exists (u at or past the curve's end).
func findKnotSpan(u float64, knots []float64, d, n int) int {
	for i := d; i <= n; i++ {
		if u < knots[i+1] {
			return i
		}
	}
	return n
}

// basisFunctions computes the d+1 non-zero de Boor-Cox basis function
// values at knot span `span`, following the skip-term policy for the §9
// open question: a zero (or near-zero) denominator contributes 0 rather
// than an epsilon-stabilized fraction.
func basisFunctions(span int, u float64, knots []float64, d int) []float64 {
	left := make([]float64, d+1)
	right := make([]float64, d+1)
	n := make([]float64, d+1)
	n[0] = 1

	for j := 1; j <= d; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			denom := right[r+1] + left[j-r]
			var term float64
			if denom > zeroGuard || denom < -zeroGuard {
				term = n[r] / denom
			}
			n[r] = saved + right[r+1]*term
			saved = left[j-r] * term
		}
		n[j] = saved
	}
	return n
}

// BSpline samples a uniform B-spline of degree d through the given control
// points at k uniform parameter steps, per §4.C. If there are fewer
// control points than d+1, the controls are returned unchanged (the curve
// is under-determined).
func BSpline(controls []vecmath.Vector3, degree, sampleCount int) []vecmath.Vector3 {
	if len(controls) < degree+1 {
		out := make([]vecmath.Vector3, len(controls))
		copy(out, controls)
		return out
	}

	n := len(controls) - 1
	d := degree
	knots := uniformKnotVector(n, d)

	k := sampleCount
	if k < 2 {
		k = 2
	}

	uStart := knots[d]
	uEnd := knots[n+1]

	out := make([]vecmath.Vector3, k)
	for s := 0; s < k; s++ {
		t := float64(s) / float64(k-1)
		u := uStart + t*(uEnd-uStart)
		span := findKnotSpan(u, knots, d, n)
		basis := basisFunctions(span, u, knots, d)

		var pt vecmath.Vector3
		for j := 0; j <= d; j++ {
			pt = pt.Add(controls[span-d+j].Scale(basis[j]))
		}
		out[s] = pt
	}
	return out
}
