// Package svgpreview renders an OptimizedGeometry as a flat top-down SVG
// debug preview using github.com/ajstarks/svgo — a quick visual sanity
// check of a run's output that doesn't require a 3D viewer.
package svgpreview

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/cadcore/pkg/geom"
)

// Options configures the preview canvas.
type Options struct {
	Width, Height int     // pixels, default 800x800
	Margin        float64 // fraction of the canvas reserved as border, default 0.05
}

// DefaultOptions returns an 800x800 canvas with a 5% margin.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 800, Margin: 0.05}
}

// Write projects every polyline onto the XY plane and draws it: closed
// polylines as filled polygons, open polylines as polylines. Mesh layers
// are rendered as their wireframe edges.
func Write(w io.Writer, geometry geom.OptimizedGeometry, opts Options) {
	if opts.Width == 0 {
		opts = DefaultOptions()
	}
	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	defer canvas.End()

	minX, minY, maxX, maxY := bounds(geometry)
	project := projector(minX, minY, maxX, maxY, opts)

	canvas.Rect(0, 0, opts.Width, opts.Height, "fill:white")

	for _, p := range geometry.Polylines {
		if len(p.Points) == 0 {
			continue
		}
		xs := make([]int, len(p.Points))
		ys := make([]int, len(p.Points))
		for i, pt := range p.Points {
			xs[i], ys[i] = project(pt.X, pt.Y)
		}
		style := "fill:none;stroke:black;stroke-width:1"
		if p.IsClosed && len(xs) >= 3 {
			canvas.Polygon(xs, ys, "fill:lightgray;stroke:black;stroke-width:1")
		} else {
			canvas.Polyline(xs, ys, style)
		}
	}

	for _, m := range geometry.Meshes {
		triCount := m.TriangleCount()
		for t := 0; t < triCount; t++ {
			a := m.Vertices[m.TriangleIndices[t*3]]
			b := m.Vertices[m.TriangleIndices[t*3+1]]
			c := m.Vertices[m.TriangleIndices[t*3+2]]
			ax, ay := project(a.X, a.Y)
			bx, by := project(b.X, b.Y)
			cx, cy := project(c.X, c.Y)
			canvas.Polygon([]int{ax, bx, cx}, []int{ay, by, cy}, "fill:none;stroke:steelblue;stroke-width:1")
		}
	}
}

func bounds(geometry geom.OptimizedGeometry) (minX, minY, maxX, maxY float64) {
	first := true
	consider := func(x, y float64) {
		if first {
			minX, maxX, minY, maxY = x, x, y, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, p := range geometry.Polylines {
		for _, v := range p.Points {
			consider(v.X, v.Y)
		}
	}
	for _, m := range geometry.Meshes {
		for _, v := range m.Vertices {
			consider(v.X, v.Y)
		}
	}
	if first {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX, maxY
}

func projector(minX, minY, maxX, maxY float64, opts Options) func(x, y float64) (int, int) {
	width, height := maxX-minX, maxY-minY
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	margin := opts.Margin
	usableW := float64(opts.Width) * (1 - 2*margin)
	usableH := float64(opts.Height) * (1 - 2*margin)
	scale := usableW / width
	if alt := usableH / height; alt < scale {
		scale = alt
	}
	offsetX := float64(opts.Width)*margin - minX*scale
	offsetY := float64(opts.Height) * (1 - margin)

	return func(x, y float64) (int, int) {
		return int(x*scale + offsetX), int(offsetY - (y-minY)*scale)
	}
}
