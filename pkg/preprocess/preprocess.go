// Package preprocess orchestrates the curve, simplify, triangulate, and
// meshopt packages over a parsed entity set (§4.H): it is the only package
// that knows the full dispatch table from CAD entity kind to geometry
// transform, and the only place original-vs-optimized vertex statistics are
// accumulated.
package preprocess

import (
	"math"

	"github.com/chazu/cadcore/pkg/curve"
	"github.com/chazu/cadcore/pkg/geom"
	"github.com/chazu/cadcore/pkg/meshopt"
	"github.com/chazu/cadcore/pkg/simplify"
	"github.com/chazu/cadcore/pkg/vecmath"
)

// degreesPerOriginalSegment matches §4.H's arc vertex estimate of one
// original vertex per pi/18 radians (10 degrees) of sweep.
const degreesPerOriginalSegment = math.Pi / 18

// clusterTriangleThreshold is §4.H's fixed gate: vertex clustering only
// runs on a layer whose merged mesh exceeds this many triangles.
const clusterTriangleThreshold = 1000

// ProgressFunc is invoked from the chunked RDP path when a large polyline
// (§4.H "large-polyline path") is being simplified.
type ProgressFunc func(layer string, processed, total int)

// Run consumes source to exhaustion and returns the optimized geometry
// bundle (§3, §6). A non-nil error is returned only when the source itself
// reports a fatal parse failure (§7 "the core never raises on data it can
// interpret"); everything else is absorbed into the output.
func Run(source geom.EntitySource, opts geom.PreprocessorOptions, progress ProgressFunc) (geom.OptimizedGeometry, error) {
	stats := geom.GeometryStats{EntityCounts: map[string]int{}}

	var polylines []geom.Polyline
	var meshes []*geom.Mesh
	var faceCorners []vecmath.Vector3

	for {
		entity, ok, err := source.Next()
		if err != nil {
			return geom.OptimizedGeometry{}, err
		}
		if !ok {
			break
		}
		if !opts.LayerIncluded(entity.Layer) {
			continue
		}
		if err := geom.ValidateEntity(entity); err != nil {
			// A malformed individual entity is absorbed, not fatal (§7).
			continue
		}

		stats.OriginalEntities++
		stats.EntityCounts[entity.Kind.String()]++

		switch entity.Kind {
		case geom.EntityLine:
			d := entity.Data.(geom.LineData)
			stats.OriginalVertices += 2
			polylines = append(polylines, geom.Polyline{
				Layer:    entity.Layer,
				Points:   []vecmath.Vector3{d.Start, d.End},
				IsClosed: false,
			})

		case geom.EntityLwPolyline:
			d := entity.Data.(geom.LwPolylineData)
			stats.OriginalVertices += len(d.Points)
			lifted := make([]vecmath.Vector3, len(d.Points))
			for i, p := range d.Points {
				lifted[i] = vecmath.New(p.X, p.Y, d.Elevation)
			}
			simplified := simplifyPolyline(entity.Layer, lifted, opts, progress)
			polylines = append(polylines, geom.Polyline{Layer: entity.Layer, Points: simplified, IsClosed: d.IsClosed})

		case geom.EntityPolyline3D:
			d := entity.Data.(geom.Polyline3DData)
			stats.OriginalVertices += len(d.Points)
			simplified := simplifyPolyline(entity.Layer, d.Points, opts, progress)
			polylines = append(polylines, geom.Polyline{Layer: entity.Layer, Points: simplified, IsClosed: d.IsClosed})

		case geom.EntityArc:
			d := entity.Data.(geom.ArcData)
			sweep := normalizeSweepEstimate(d.StartAngle, d.EndAngle)
			stats.OriginalVertices += int(math.Ceil(sweep / degreesPerOriginalSegment))
			pts := curve.Arc(curve.ArcParams{
				Center:      d.Center,
				Radius:      d.Radius,
				StartAngle:  d.StartAngle,
				EndAngle:    d.EndAngle,
				Normal:      d.Normal,
				ChordError:  opts.ArcChordError,
				MinSegments: opts.MinArcSegments,
				MaxSegments: opts.MaxArcSegments,
			})
			polylines = append(polylines, geom.Polyline{Layer: entity.Layer, Points: pts, IsClosed: false})

		case geom.EntityCircle:
			d := entity.Data.(geom.CircleData)
			stats.OriginalVertices += 36
			pts := curve.Arc(curve.ArcParams{
				Center:      d.Center,
				Radius:      d.Radius,
				StartAngle:  0,
				EndAngle:    2 * math.Pi,
				Normal:      d.Normal,
				ChordError:  opts.ArcChordError,
				MinSegments: opts.MinArcSegments,
				MaxSegments: opts.MaxArcSegments,
			})
			polylines = append(polylines, geom.Polyline{Layer: entity.Layer, Points: dropClosingDuplicate(pts), IsClosed: true})

		case geom.EntityEllipse:
			d := entity.Data.(geom.EllipseData)
			stats.OriginalVertices += 72
			pts := curve.Ellipse(curve.EllipseParams{
				Center:      d.Center,
				MajorRadius: d.MajorRadius,
				MinorRadius: d.MinorRadius,
				Rotation:    d.Rotation,
				Normal:      d.Normal,
				ChordError:  opts.ArcChordError,
				MinSegments: opts.MinArcSegments,
				MaxSegments: opts.MaxArcSegments,
			})
			polylines = append(polylines, geom.Polyline{Layer: entity.Layer, Points: dropClosingDuplicate(pts), IsClosed: true})

		case geom.EntitySpline:
			d := entity.Data.(geom.SplineData)
			stats.OriginalVertices += 10 * len(d.Controls)
			var sampled []vecmath.Vector3
			if d.Degree == 3 && len(d.Controls) == 4 {
				sampled = curve.CubicBezier(d.Controls[0], d.Controls[1], d.Controls[2], d.Controls[3], opts.SplineTolerance)
			} else {
				k := curve.BSplineSampleCount(len(d.Controls), 0)
				sampled = curve.BSpline(d.Controls, d.Degree, k)
			}
			simplified := simplifyPolyline(entity.Layer, sampled, opts, progress)
			polylines = append(polylines, geom.Polyline{Layer: entity.Layer, Points: simplified, IsClosed: false})

		case geom.EntityFace3D:
			d := entity.Data.(geom.Face3DData)
			corners := d.Corners
			if len(corners) == 4 && corners[3] == corners[2] {
				corners = corners[:3]
			}
			stats.OriginalVertices += len(corners)
			faceCorners = append(faceCorners, corners...)

		case geom.EntityMesh:
			d := entity.Data.(geom.MeshData)
			stats.OriginalVertices += len(d.Vertices)
			meshes = append(meshes, &geom.Mesh{Layer: entity.Layer, Vertices: d.Vertices, TriangleIndices: d.TriangleIndices})
		}
	}

	if len(faceCorners) > 0 {
		deduped := dedupeConsecutive(faceCorners)
		simplified := simplifyPolyline("3DFace", deduped, opts, progress)
		polylines = append(polylines, geom.Polyline{Layer: "3DFace", Points: simplified, IsClosed: false})
	}

	if opts.MergeDistance > 0 {
		for i := range polylines {
			polylines[i].Points = mergeNearPoints(polylines[i].Points, opts.MergeDistance)
		}
	}

	outputMeshes := optimizeMeshes(meshes, opts)

	stats.OptimizedPolylines = len(polylines)
	stats.MeshCount = len(outputMeshes)
	for _, p := range polylines {
		stats.OptimizedVertices += len(p.Points)
	}
	for _, m := range outputMeshes {
		stats.OptimizedVertices += len(m.Vertices)
		stats.TriangleCount += m.TriangleCount()
	}

	return geom.OptimizedGeometry{Polylines: polylines, Meshes: dereferenceMeshes(outputMeshes), Stats: stats}, nil
}

// simplifyPolyline runs RDP, taking the chunked/progress-reporting path for
// inputs above opts.LargePolylineThreshold (§4.H "large-polyline path").
func simplifyPolyline(layer string, points []vecmath.Vector3, opts geom.PreprocessorOptions, progress ProgressFunc) []vecmath.Vector3 {
	if len(points) <= opts.LargePolylineThreshold {
		return simplify.Simplify(points, opts.PolylineEpsilon)
	}
	var cb simplify.ProgressFunc
	if progress != nil {
		cb = func(processed, total int) { progress(layer, processed, total) }
	}
	return simplify.SimplifyChunked(points, opts.PolylineEpsilon, simplify.DefaultChunkSize, cb)
}

// mergeNearPoints implements §4.H's near-point merge pass: keep the first
// point, append subsequent points only when squared distance to the last
// kept point exceeds mergeDistance^2, and never collapse a >=2-point input
// below 2 output points.
func mergeNearPoints(points []vecmath.Vector3, mergeDistance float64) []vecmath.Vector3 {
	if len(points) < 2 {
		return points
	}
	threshold := mergeDistance * mergeDistance
	kept := []vecmath.Vector3{points[0]}
	for _, p := range points[1:] {
		if p.DistanceSquared(kept[len(kept)-1]) > threshold {
			kept = append(kept, p)
		}
	}
	if len(kept) < 2 {
		return []vecmath.Vector3{points[0], points[len(points)-1]}
	}
	return kept
}

// dropClosingDuplicate removes a trailing point coincident with the first,
// matching Polyline's invariant that a closed polygon's implicit closing
// edge is never duplicated in Points (§3). Arc's full-turn output includes
// that duplicate so the tessellator itself stays agnostic to closedness.
// The end point is computed from cos/sin of a full turn and can differ from
// the start in the last bits, so points within 1e-6 count as coincident.
func dropClosingDuplicate(points []vecmath.Vector3) []vecmath.Vector3 {
	if len(points) < 2 {
		return points
	}
	if points[0].DistanceSquared(points[len(points)-1]) < 1e-12 {
		return points[:len(points)-1]
	}
	return points
}

// dedupeConsecutive removes a point equal to its immediate predecessor,
// used for the 3DFace accumulation pass (§4.H).
func dedupeConsecutive(points []vecmath.Vector3) []vecmath.Vector3 {
	if len(points) == 0 {
		return points
	}
	out := []vecmath.Vector3{points[0]}
	for _, p := range points[1:] {
		if p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

// optimizeMeshes implements §4.H's post-mesh optimization: merge by layer,
// then per layer run the junk filter when JunkFilterEnabled is set, and
// vertex clustering when ClusterGrid > 0 and the layer still has more than
// clusterTriangleThreshold triangles.
func optimizeMeshes(meshes []*geom.Mesh, opts geom.PreprocessorOptions) []*geom.Mesh {
	if len(meshes) == 0 {
		return nil
	}
	merged := meshopt.MergeByLayer(meshes)

	out := make([]*geom.Mesh, 0, len(merged))
	for _, m := range merged {
		current := m
		if opts.JunkFilterEnabled {
			current = meshopt.Filter(current, meshopt.JunkFilterOptions{
				BoundingBoxCull:  true,
				Percentile:       opts.JunkFilterPercentile,
				Padding:          opts.JunkFilterPadding,
				IslandRemoval:    true,
				MinComponentSize: opts.JunkFilterMinComponentSize,
			})
		}
		if opts.ClusterGrid > 0 && current.TriangleCount() > clusterTriangleThreshold {
			current, _ = meshopt.Cluster(current, opts.ClusterGrid)
		}
		out = append(out, current)
	}
	return out
}

func dereferenceMeshes(meshes []*geom.Mesh) []geom.Mesh {
	out := make([]geom.Mesh, len(meshes))
	for i, m := range meshes {
		out[i] = *m
	}
	return out
}

// normalizeSweepEstimate returns the positive angular sweep in radians,
// handling the wrap-around case where end <= start.
func normalizeSweepEstimate(start, end float64) float64 {
	sweep := end - start
	for sweep <= 0 {
		sweep += 2 * math.Pi
	}
	return sweep
}

