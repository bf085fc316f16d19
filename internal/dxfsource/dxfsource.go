// Package dxfsource adapts github.com/yofu/dxf's drawing model to
// geom.EntitySource (§6): it is the only package in this module that
// imports the dxf parser, so every quirk of its entity representation is
// isolated here rather than leaking into the preprocessing core.
package dxfsource

import (
	"math"

	"github.com/pkg/errors"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/chazu/cadcore/pkg/geom"
	"github.com/chazu/cadcore/pkg/vecmath"
)

// Source reads entities out of a parsed *dxf.Drawing lazily: Open parses
// the whole file up front (the library's own contract), but Next still
// walks the drawing's entity list one at a time so callers can apply
// layer filtering and cancellation between entities (§5).
type Source struct {
	entities []entity.Entity
	pos      int
}

// Open parses path with yofu/dxf and returns a Source over every entity in
// its model space. A parse failure is fatal and wrapped with the file path
// for context, per the boundary-wrapping convention.
func Open(path string) (*Source, error) {
	d, err := dxf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dxf file %q", path)
	}
	return &Source{entities: d.Entities()}, nil
}

// Next implements geom.EntitySource. Entity kinds this adapter does not
// recognize are skipped rather than surfaced as errors — an unsupported
// primitive in one drawing should never abort the whole run (§7).
func (s *Source) Next() (geom.Entity, bool, error) {
	for s.pos < len(s.entities) {
		e := s.entities[s.pos]
		s.pos++
		converted, ok := convert(e)
		if ok {
			return converted, true, nil
		}
	}
	return geom.Entity{}, false, nil
}

func convert(e entity.Entity) (geom.Entity, bool) {
	layer := layerName(e)

	switch v := e.(type) {
	case *entity.Line:
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityLine,
			Data: geom.LineData{
				Start: point3(v.Start),
				End:   point3(v.End),
			},
		}, true

	case *entity.Lwpolyline:
		pts := make([]vecmath.Vector3, len(v.Vertices))
		for i, vert := range v.Vertices {
			pts[i] = vecmath.New(vert[0], vert[1], 0)
		}
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityLwPolyline,
			Data: geom.LwPolylineData{
				Points:    pts,
				Elevation: v.Elevation,
				IsClosed:  v.Closed(),
			},
		}, true

	case *entity.Polyline:
		pts := make([]vecmath.Vector3, len(v.Vertices))
		for i, vert := range v.Vertices {
			pts[i] = point3(vert.Coord)
		}
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityPolyline3D,
			Data: geom.Polyline3DData{
				Points:   pts,
				IsClosed: v.Closed(),
			},
		}, true

	case *entity.Circle:
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityCircle,
			Data: geom.CircleData{
				Center: point3(v.Center),
				Radius: v.Radius,
				Normal: extrusionNormal(v.Extrusion),
			},
		}, true

	case *entity.Arc:
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityArc,
			Data: geom.ArcData{
				Center:     point3(v.Center),
				Radius:     v.Radius,
				StartAngle: v.Angle1 * math.Pi / 180,
				EndAngle:   v.Angle2 * math.Pi / 180,
				Normal:     extrusionNormal(v.Extrusion),
			},
		}, true

	case *entity.Ellipse:
		major := point3(v.MajorAxis).Length()
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityEllipse,
			Data: geom.EllipseData{
				Center:      point3(v.Center),
				MajorRadius: major,
				MinorRadius: major * v.AxisRatio,
				Rotation:    math.Atan2(v.MajorAxis[1], v.MajorAxis[0]),
				Normal:      extrusionNormal(v.Extrusion),
			},
		}, true

	case *entity.Spline:
		controls := make([]vecmath.Vector3, len(v.ControlPoints))
		for i, c := range v.ControlPoints {
			controls[i] = point3(c)
		}
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntitySpline,
			Data: geom.SplineData{
				Controls: controls,
				Degree:   v.Degree,
			},
		}, true

	case *entity.Face3d:
		corners := []vecmath.Vector3{point3(v.Point1), point3(v.Point2), point3(v.Point3), point3(v.Point4)}
		return geom.Entity{
			Layer: layer,
			Kind:  geom.EntityFace3D,
			Data:  geom.Face3DData{Corners: corners},
		}, true

	default:
		return geom.Entity{}, false
	}
}

func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil {
		return l.Name
	}
	return ""
}

func point3(p [3]float64) vecmath.Vector3 {
	return vecmath.New(p[0], p[1], p[2])
}

// extrusionNormal falls back to the canonical +Z axis when the DXF
// extrusion direction is the zero vector, matching the arc tessellator's
// own near-zero-normal fallback (§7 NumericalEdge).
func extrusionNormal(p [3]float64) vecmath.Vector3 {
	n := point3(p)
	if n.LengthSquared() < 1e-18 {
		return vecmath.New(0, 0, 1)
	}
	return n
}
