// Package meshopt implements the two mesh-reduction passes that run after
// curve tessellation: vertex-clustering decimation on a uniform 3D grid
// (§4.F) and percentile-based outlier culling plus connected-component
// island pruning (§4.G). Both operate on the shared geom.Mesh value type.
package meshopt

import (
	"github.com/chazu/cadcore/pkg/geom"
	"github.com/chazu/cadcore/pkg/vecmath"
)

// Mesh is an alias for geom.Mesh: this package reduces the same mesh DTO
// that the DXF-derived entities produce and the writers consume, rather
// than maintaining a parallel render-side type (§4.F, §4.G feed directly
// into §6's OptimizedGeometry.Meshes).
type Mesh = geom.Mesh

// AABB computes the axis-aligned bounding box of vertices. The zero value
// (ok=false) is returned for an empty vertex set.
func AABB(vertices []vecmath.Vector3) (min, max vecmath.Vector3, ok bool) {
	if len(vertices) == 0 {
		return vecmath.Zero, vecmath.Zero, false
	}
	min, max = vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		if v.X < min.X {
			min.X = v.X
		}
		if v.Y < min.Y {
			min.Y = v.Y
		}
		if v.Z < min.Z {
			min.Z = v.Z
		}
		if v.X > max.X {
			max.X = v.X
		}
		if v.Y > max.Y {
			max.Y = v.Y
		}
		if v.Z > max.Z {
			max.Z = v.Z
		}
	}
	return min, max, true
}
