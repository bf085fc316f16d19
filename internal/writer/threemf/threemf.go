// Package threemf translates geom.OptimizedGeometry into a .3mf package
// using github.com/hpinc/go3mf, the bonus binary-asset writer alongside
// the glTF/GLB path described in §6 (the core spec treats the writer as an
// external collaborator; this is one concrete implementation of it).
package threemf

import (
	"io"

	"github.com/hpinc/go3mf"
	"github.com/pkg/errors"

	"github.com/chazu/cadcore/pkg/geom"
	"github.com/chazu/cadcore/pkg/triangulate"
	"github.com/chazu/cadcore/pkg/vecmath"
)

// Write builds one go3mf object and build item per closed polyline and per
// non-empty mesh, and encodes the resulting package to w. Closed polylines
// are ear-clipped into triangles (§4.E). Objects are not grouped by layer,
// and open polylines (and closed ones with fewer than 3 points) are left
// out of the package.
func Write(w io.Writer, geometry geom.OptimizedGeometry) error {
	model := &go3mf.Model{}
	model.Units = go3mf.UnitMillimeter

	var nextID uint32 = 1

	for _, p := range geometry.Polylines {
		if !p.IsClosed || len(p.Points) < 3 {
			continue
		}
		indices := triangulate.Triangulate(p.Points)
		if len(indices) == 0 {
			continue
		}
		obj := meshObject(nextID, p.Points, indices)
		nextID++
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}

	for _, m := range geometry.Meshes {
		if m.IsEmpty() {
			continue
		}
		obj := meshObject(nextID, m.Vertices, m.TriangleIndices)
		nextID++
		model.Resources.Objects = append(model.Resources.Objects, obj)
		model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: obj.ID})
	}

	enc := go3mf.NewEncoder(w)
	if err := enc.Encode(model); err != nil {
		return errors.Wrap(err, "encode 3mf package")
	}
	return nil
}

func meshObject(id uint32, vertices []vecmath.Vector3, indices []uint32) *go3mf.Object {
	mesh := &go3mf.Mesh{}
	mesh.Vertices.Vertex = make([]go3mf.Point3D, len(vertices))
	for i, v := range vertices {
		mesh.Vertices.Vertex[i] = go3mf.Point3D{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	mesh.Triangles.Triangle = make([]go3mf.Triangle, len(indices)/3)
	for t := range mesh.Triangles.Triangle {
		mesh.Triangles.Triangle[t] = go3mf.Triangle{
			V1: indices[t*3], V2: indices[t*3+1], V3: indices[t*3+2],
		}
	}
	return &go3mf.Object{ID: id, Mesh: mesh}
}
