// Package simplify implements Ramer-Douglas-Peucker polyline simplification
// (§4.D): an iterative, stack-safe variant for ordinary inputs and a
// chunked variant with progress reporting for multi-million-vertex inputs.
package simplify

import "github.com/chazu/cadcore/pkg/vecmath"

// DefaultChunkSize is the window size SimplifyChunked uses when given a
// chunkSize <= 0; inputs of at most twice the chunk size are simplified in
// a single pass. Simplify itself always runs a single pass.
const DefaultChunkSize = 100000

// rdpRange is a (start, end) index pair pending evaluation on the
// iterative work stack.
type rdpRange struct {
	start, end int
}

// perpendicularDistance is the segment-clamped point-to-segment distance of
// §4.D: project p-a onto b-a, clamp t to [0,1], return the distance from p
// to that clamped point. When b-a is near-zero length, fall back to the
// distance to a.
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
	return p.Distance(a.Add(ab.Scale(t)))
}

// Simplify reduces a polyline to a subsequence that always keeps the first
// and last points and guarantees every removed point lies within
// perpendicular distance epsilon of the kept polyline. The implementation
// is iterative (an explicit stack, no recursion) so it is safe on inputs
// with millions of points (§4.D: "recursion must not be used").
func Simplify(points []vecmath.Vector3, epsilon float64) []vecmath.Vector3 {
	n := len(points)
	if n <= 2 {
		out := make([]vecmath.Vector3, n)
		copy(out, points)
		return out
	}

	keep := make([]bool, n)
	keep[0] = true
	keep[n-1] = true

	stack := []rdpRange{{0, n - 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if r.end <= r.start+1 {
			continue
		}

		maxDist := -1.0
		maxIdx := -1
		a, b := points[r.start], points[r.end]
		for i := r.start + 1; i < r.end; i++ {
			d := perpendicularDistance(points[i], a, b)
			if d > maxDist {
				maxDist = d
				maxIdx = i
			}
		}

		if maxDist > epsilon {
			keep[maxIdx] = true
			stack = append(stack, rdpRange{r.start, maxIdx}, rdpRange{maxIdx, r.end})
		}
	}

	out := make([]vecmath.Vector3, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

// ProgressFunc is invoked after each chunk of the chunked variant with the
// number of points processed so far and the total point count. It is
// called synchronously on the processing path and must return quickly
// (§5: the only operation in this pipeline allowed to "block").
type ProgressFunc func(processed, total int)

// SimplifyChunked simplifies very large polylines (§4.D, §7 OversizedInput)
// by splitting the input into overlapping windows of chunkSize+overlap
// points, simplifying each window independently, and stitching the results
// together — dropping the duplicate seam point of every chunk after the
// first. The overlap (min(1000, chunkSize/10)) gives Simplify enough
// context on either side of a seam to avoid visible kinks at chunk
// boundaries. progress, if non-nil, is called once per chunk.
func SimplifyChunked(points []vecmath.Vector3, epsilon float64, chunkSize int, progress ProgressFunc) []vecmath.Vector3 {
	n := len(points)
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if n <= chunkSize*2 {
		out := Simplify(points, epsilon)
		if progress != nil {
			progress(n, n)
		}
		return out
	}

	overlap := chunkSize / 10
	if overlap > 1000 {
		overlap = 1000
	}

	var out []vecmath.Vector3
	processed := 0
	start := 0
	for start < n {
		end := start + chunkSize + overlap
		if end > n {
			end = n
		}
		chunk := points[start:end]
		simplified := Simplify(chunk, epsilon)

		if start == 0 {
			out = append(out, simplified...)
		} else {
			// Drop the duplicate seam point: simplified[0] is the same
			// source point as the last point already appended.
			out = append(out, simplified[1:]...)
		}

		processed = end
		if progress != nil {
			progress(processed, n)
		}

		if end >= n {
			break
		}
		start += chunkSize
	}

	if len(out) == 0 || out[len(out)-1] != points[n-1] {
		out = append(out, points[n-1])
	}
	return out
}
