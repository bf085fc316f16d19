// Package geom defines the stable data shapes exchanged between the
// geometry-preprocessing core and its external collaborators: the CAD
// parser that feeds it (§6 EntitySource) and the writer that consumes its
// output (§6 Output DTO / stable JSON encoding). Every type here is a
// plain value; ownership through the pipeline is linear (§3).
package geom

import "github.com/chazu/cadcore/pkg/vecmath"

// Polyline is an ordered sequence of points on a named layer. IsClosed
// means the polygon is logically closed — the implicit closing edge from
// the last point back to the first is never duplicated in Points.
type Polyline struct {
	Layer    string
	Points   []vecmath.Vector3
	IsClosed bool
}

// Mesh is a triangle mesh: a flat vertex array and a 3-wide flat index
// array. Grounded on the teacher's kernel.Mesh (VertexCount/TriangleCount/
// IsEmpty accessor pattern), generalized to hold geometric Vector3
// vertices (rather than a render-only float32 buffer) plus a layer label.
type Mesh struct {
	Layer           string
	Vertices        []vecmath.Vector3
	TriangleIndices []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.TriangleIndices) / 3
}

// IsEmpty returns true if the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.TriangleIndices) == 0
}

// GeometryStats carries the counters described in §3: vertex counts
// before/after optimization, entity/polyline/mesh/triangle counts, and a
// per-entity-kind histogram.
type GeometryStats struct {
	OriginalVertices    int
	OptimizedVertices   int
	OriginalEntities    int
	OptimizedPolylines  int
	MeshCount           int
	TriangleCount       int
	EntityCounts        map[string]int
}

// ReductionPercent computes (1 - optimized/original) * 100, or 0 when
// OriginalVertices is 0.
func (s GeometryStats) ReductionPercent() float64 {
	if s.OriginalVertices <= 0 {
		return 0
	}
	return (1 - float64(s.OptimizedVertices)/float64(s.OriginalVertices)) * 100
}

// OptimizedGeometry is the complete output of the preprocessing pipeline
// (§3, §6): the optimized polylines and meshes plus the stats that
// describe how much they were reduced.
type OptimizedGeometry struct {
	Polylines []Polyline
	Meshes    []Mesh
	Stats     GeometryStats
}
