// Package jsonwriter encodes geom.OptimizedGeometry into the stable
// file-based handoff format of §6: snake_case fields, omitted nulls,
// pretty-printed, with reduction_percent rounded to 2 decimals.
package jsonwriter

import (
	"encoding/json"
	"io"
	"math"

	"github.com/chazu/cadcore/pkg/geom"
)

type polylineDTO struct {
	Layer  string      `json:"layer"`
	Points [][3]float64 `json:"points"`
	Closed bool        `json:"closed"`
}

type statsDTO struct {
	OriginalVertices   int            `json:"original_vertices"`
	OptimizedVertices  int            `json:"optimized_vertices"`
	ReductionPercent   float64        `json:"reduction_percent"`
	OriginalEntities   int            `json:"original_entities"`
	OptimizedPolylines int            `json:"optimized_polylines"`
	EntityCounts       map[string]int `json:"entity_counts,omitempty"`
}

type documentDTO struct {
	Polylines []polylineDTO `json:"polylines"`
	Stats     statsDTO      `json:"stats"`
}

// Write encodes geometry to w as pretty-printed JSON matching §6's schema.
func Write(w io.Writer, geometry geom.OptimizedGeometry) error {
	doc := documentDTO{
		Polylines: make([]polylineDTO, len(geometry.Polylines)),
		Stats: statsDTO{
			OriginalVertices:   geometry.Stats.OriginalVertices,
			OptimizedVertices:  geometry.Stats.OptimizedVertices,
			ReductionPercent:   roundTo2(geometry.Stats.ReductionPercent()),
			OriginalEntities:   geometry.Stats.OriginalEntities,
			OptimizedPolylines: geometry.Stats.OptimizedPolylines,
			EntityCounts:       geometry.Stats.EntityCounts,
		},
	}
	for i, p := range geometry.Polylines {
		pts := make([][3]float64, len(p.Points))
		for j, v := range p.Points {
			pts[j] = [3]float64{v.X, v.Y, v.Z}
		}
		doc.Polylines[i] = polylineDTO{Layer: p.Layer, Points: pts, Closed: p.IsClosed}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func roundTo2(f float64) float64 {
	return math.Round(f*100) / 100
}
