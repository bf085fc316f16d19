package geom

import "github.com/chazu/cadcore/pkg/vecmath"

// EntityKind enumerates the CAD primitive kinds the preprocessor dispatches
// on (§4.H). Grounded on the teacher's graph.NodeKind: a closed enum with a
// String method, dispatched via exhaustive switch rather than run-time type
// queries (§9: "expose a closed sum type ... dispatch via exhaustive case
// analysis").
type EntityKind int

const (
	EntityLine EntityKind = iota
	EntityLwPolyline
	EntityPolyline3D
	EntityArc
	EntityCircle
	EntityEllipse
	EntitySpline
	EntityFace3D
	EntityMesh
)

func (k EntityKind) String() string {
	switch k {
	case EntityLine:
		return "Line"
	case EntityLwPolyline:
		return "LwPolyline"
	case EntityPolyline3D:
		return "Polyline"
	case EntityArc:
		return "Arc"
	case EntityCircle:
		return "Circle"
	case EntityEllipse:
		return "Ellipse"
	case EntitySpline:
		return "Spline"
	case EntityFace3D:
		return "3DFace"
	case EntityMesh:
		return "PolyfaceMesh"
	default:
		return "Unknown"
	}
}

// EntityData is the marker interface restricting EntityKind-specific
// payloads to this package, matching the teacher's graph.NodeData pattern.
type EntityData interface {
	entityData()
}

// Entity is one parsed CAD primitive: a layer label plus kind-specific
// data. The EntitySource iterator (§6) yields these; the preprocessor
// dispatches on Kind via exhaustive switch (§4.H).
type Entity struct {
	Layer string
	Kind  EntityKind
	Data  EntityData
}

// LineData is a straight 2-point segment.
type LineData struct {
	Start, End vecmath.Vector3
}

func (LineData) entityData() {}

// LwPolylineData is a lightweight 2D polyline with a constant elevation,
// lifted to 3D per §4.H.
type LwPolylineData struct {
	Points    []vecmath.Vector3 // Z ignored; Elevation supplies the lift
	Elevation float64
	IsClosed  bool
}

func (LwPolylineData) entityData() {}

// Polyline3DData is a full 3D polyline.
type Polyline3DData struct {
	Points   []vecmath.Vector3
	IsClosed bool
}

func (Polyline3DData) entityData() {}

// ArcData is a circular arc, tessellated by pkg/curve.Arc.
type ArcData struct {
	Center                vecmath.Vector3
	Radius                float64
	StartAngle, EndAngle  float64 // radians
	Normal                vecmath.Vector3
}

func (ArcData) entityData() {}

// CircleData is a full-turn arc.
type CircleData struct {
	Center vecmath.Vector3
	Radius float64
	Normal vecmath.Vector3
}

func (CircleData) entityData() {}

// EllipseData is a full-turn ellipse, tessellated by pkg/curve.Ellipse.
type EllipseData struct {
	Center                   vecmath.Vector3
	MajorRadius, MinorRadius float64
	Rotation                 float64
	Normal                   vecmath.Vector3
}

func (EllipseData) entityData() {}

// SplineKind distinguishes the two sampling paths of §4.H.
type SplineKind int

const (
	SplineCubicBezier SplineKind = iota
	SplineUniformBSpline
)

// SplineData is a parametric curve. Degree==3 with exactly 4 control
// points routes to the cubic-Bezier sampler; anything else routes to the
// uniform B-spline sampler (§4.H).
type SplineData struct {
	Controls []vecmath.Vector3
	Degree   int
}

func (SplineData) entityData() {}

// Face3DData is a 3DFace's (up to 4) corners; a degenerate fourth corner
// equal to the third is deduplicated by the preprocessor (§4.H).
type Face3DData struct {
	Corners []vecmath.Vector3
}

func (Face3DData) entityData() {}

// MeshData carries a parser-triangulated mesh straight through to the
// mesh-optimization pipeline (§4.F, §4.G); quads are already split into
// two triangles with winding preserved by the parser (§6).
type MeshData struct {
	Vertices        []vecmath.Vector3
	TriangleIndices []uint32
}

func (MeshData) entityData() {}
