package geom

import (
	"testing"

	"github.com/chazu/cadcore/pkg/vecmath"
)

func TestValidateOptionsDefaultsAreValid(t *testing.T) {
	if err := ValidateOptions(DefaultPreprocessorOptions()); err != nil {
		t.Fatalf("default options should validate, got: %v", err)
	}
}

func TestValidateOptionsCollectsMultipleViolations(t *testing.T) {
	o := DefaultPreprocessorOptions()
	o.ArcChordError = 0
	o.MaxArcSegments = 1
	o.MinArcSegments = 8
	err := ValidateOptions(o)
	if err == nil {
		t.Fatal("expected validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Violations) < 2 {
		t.Fatalf("expected at least 2 violations, got %d: %v", len(ve.Violations), ve.Violations)
	}
}

func TestValidateOptionsClusterGridRange(t *testing.T) {
	o := DefaultPreprocessorOptions()
	o.ClusterGrid = 10
	if err := ValidateOptions(o); err == nil {
		t.Fatal("expected error for ClusterGrid below 32")
	}
	o.ClusterGrid = 0
	if err := ValidateOptions(o); err != nil {
		t.Fatalf("ClusterGrid=0 (disabled) should validate, got: %v", err)
	}
}

func TestValidateEntityArcRejectsNonPositiveRadius(t *testing.T) {
	e := Entity{Layer: "l", Kind: EntityArc, Data: ArcData{Radius: 0}}
	if err := ValidateEntity(e); err == nil {
		t.Fatal("expected error for zero-radius arc")
	}
}

func TestValidateEntityPolylineRequiresTwoPoints(t *testing.T) {
	e := Entity{Layer: "l", Kind: EntityPolyline3D, Data: Polyline3DData{Points: []vecmath.Vector3{vecmath.New(0, 0, 0)}}}
	if err := ValidateEntity(e); err == nil {
		t.Fatal("expected error for single-point polyline")
	}
}

func TestValidateEntityMeshRejectsNonTripleIndices(t *testing.T) {
	e := Entity{Layer: "l", Kind: EntityMesh, Data: MeshData{TriangleIndices: []uint32{0, 1}}}
	if err := ValidateEntity(e); err == nil {
		t.Fatal("expected error for non-multiple-of-3 index count")
	}
}

func TestValidateEntityRejectsMismatchedData(t *testing.T) {
	e := Entity{Layer: "l", Kind: EntityArc, Data: LineData{}}
	if err := ValidateEntity(e); err == nil {
		t.Fatal("expected error for mismatched data type")
	}
}

func TestLayerIncludedNilMeansEverything(t *testing.T) {
	o := DefaultPreprocessorOptions()
	if !o.LayerIncluded("anything") {
		t.Fatal("nil IncludeLayers should include every layer")
	}
	o.IncludeLayers = map[string]struct{}{"walls": {}}
	if !o.LayerIncluded("walls") || o.LayerIncluded("roof") {
		t.Fatal("IncludeLayers should restrict to the named set")
	}
}
