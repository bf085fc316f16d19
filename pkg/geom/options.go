package geom

import "strings"

// PreprocessorOptions configures every tunable named in §4: curve/polyline
// tolerances, the near-point merge pass, layer filtering, and the two
// mesh-optimization passes' grid resolution and island threshold. Zero
// value is never valid input on its own — callers start from
// DefaultPreprocessorOptions and override individual fields.
type PreprocessorOptions struct {
	// PolylineEpsilon is the RDP simplification tolerance (§4.D). Default 0.1.
	PolylineEpsilon float64

	// ArcChordError bounds arc/circle/ellipse tessellation (§4.B). Default 0.01.
	ArcChordError float64

	// SplineTolerance bounds adaptive Bezier flatness (§4.C). Default 0.05.
	SplineTolerance float64

	// MergeDistance is the near-point merge radius run after simplification
	// (§4.H). Default 0.001.
	MergeDistance float64

	// IncludeLayers restricts preprocessing to a set of layer names. A nil
	// map means no filtering — every layer passes.
	IncludeLayers map[string]struct{}

	// MinArcSegments and MaxArcSegments clamp §4.B's segment-count formula.
	// Defaults 8 and 128.
	MinArcSegments int
	MaxArcSegments int

	// ClusterGrid is the uniform-grid resolution passed to vertex
	// clustering (§4.F), clamped to [32, 1024]. Zero disables clustering.
	ClusterGrid int

	// JunkFilterEnabled toggles the §4.G bounding-box-cull + island-removal
	// pass, run unconditionally on every merged-by-layer mesh when enabled.
	JunkFilterEnabled          bool
	JunkFilterPercentile       float64
	JunkFilterPadding          float64
	JunkFilterMinComponentSize int

	// LargePolylineThreshold is the point count above which a polyline
	// takes the chunked simplification path (§4.D, §9). Default 500000.
	LargePolylineThreshold int
}

// DefaultPreprocessorOptions returns §4's documented defaults.
func DefaultPreprocessorOptions() PreprocessorOptions {
	return PreprocessorOptions{
		PolylineEpsilon:             0.1,
		ArcChordError:               0.01,
		SplineTolerance:             0.05,
		MergeDistance:               0.001,
		IncludeLayers:               nil,
		MinArcSegments:              8,
		MaxArcSegments:              128,
		ClusterGrid:                 0,
		JunkFilterEnabled:          false,
		JunkFilterPercentile:       0.95,
		JunkFilterPadding:          0.10,
		JunkFilterMinComponentSize: 100,
		LargePolylineThreshold:      500000,
	}
}

// LayerIncluded reports whether layer should be processed under opts. A
// nil or empty IncludeLayers means every layer is included; matching is
// case-insensitive (§4.H).
func (o PreprocessorOptions) LayerIncluded(layer string) bool {
	if len(o.IncludeLayers) == 0 {
		return true
	}
	_, ok := o.IncludeLayers[strings.ToLower(layer)]
	return ok
}

// NewIncludeLayers builds the case-folded set LayerIncluded expects from a
// list of caller-supplied layer names (e.g. the CLI's -l/--layers flag).
func NewIncludeLayers(layers []string) map[string]struct{} {
	if len(layers) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(layers))
	for _, l := range layers {
		set[strings.ToLower(l)] = struct{}{}
	}
	return set
}
