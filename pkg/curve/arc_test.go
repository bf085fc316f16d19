package curve

import (
	"math"
	"testing"

	"github.com/chazu/cadcore/pkg/vecmath"
)

func TestArcQuarterCircle(t *testing.T) {
	pts := Arc(ArcParams{
		Center:      vecmath.Zero,
		Radius:      1,
		StartAngle:  0,
		EndAngle:    math.Pi / 2,
		Normal:      vecmath.New(0, 0, 1),
		ChordError:  0.01,
		MinSegments: 8,
		MaxSegments: 128,
	})
	if len(pts) < 9 || len(pts) > 17 {
		t.Fatalf("len(pts) = %d, want between 9 and 17", len(pts))
	}
	first := pts[0]
	last := pts[len(pts)-1]
	if d := first.Distance(vecmath.New(1, 0, 0)); d > 1e-9 {
		t.Fatalf("first point %v too far from (1,0,0): %v", first, d)
	}
	if d := last.Distance(vecmath.New(0, 1, 0)); d > 1e-9 {
		t.Fatalf("last point %v too far from (0,1,0): %v", last, d)
	}
}

func TestArcFullCircleMinClamp(t *testing.T) {
	pts := Arc(ArcParams{
		Center:      vecmath.Zero,
		Radius:      1,
		StartAngle:  0,
		EndAngle:    2 * math.Pi,
		Normal:      vecmath.New(0, 0, 1),
		ChordError:  10,
		MinSegments: 8,
		MaxSegments: 128,
	})
	if len(pts) != 9 {
		t.Fatalf("len(pts) = %d, want 9 (8 segments, min clamp)", len(pts))
	}
	if d := pts[0].Distance(pts[len(pts)-1]); d > 1e-9 {
		t.Fatalf("first/last not coincident: distance %v", d)
	}
}

func TestArcMaxChordError(t *testing.T) {
	const radius = 5.0
	const chordErr = 0.05
	pts := Arc(ArcParams{
		Center:      vecmath.Zero,
		Radius:      radius,
		StartAngle:  0,
		EndAngle:    2 * math.Pi,
		Normal:      vecmath.New(0, 0, 1),
		ChordError:  chordErr,
		MinSegments: 8,
		MaxSegments: 512,
	})
	n := len(pts) - 1
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[i+1]
		mid := a.Lerp(b, 0.5)
		// analytic arc point: the chord midpoint pulled back toward the
		// center onto the circle of `radius`.
		dir := mid.Sub(vecmath.Zero)
		onArc := dir.Normalized().Scale(radius)
		if err := mid.Distance(onArc); err > chordErr+1e-9 {
			t.Fatalf("segment %d chord error %v exceeds %v", i, err, chordErr)
		}
	}
}

func TestArcDegenerateRadius(t *testing.T) {
	pts := Arc(ArcParams{
		Center:      vecmath.Zero,
		Radius:      0,
		StartAngle:  0,
		EndAngle:    math.Pi,
		Normal:      vecmath.New(0, 0, 1),
		ChordError:  0.01,
		MinSegments: 8,
		MaxSegments: 128,
	})
	if len(pts) != 9 {
		t.Fatalf("len(pts) = %d, want 9 (min_segments+1) for degenerate radius", len(pts))
	}
}

func TestEllipseFullTurn(t *testing.T) {
	pts := Ellipse(EllipseParams{
		Center:      vecmath.Zero,
		MajorRadius: 4,
		MinorRadius: 2,
		Normal:      vecmath.New(0, 0, 1),
		ChordError:  0.01,
		MinSegments: 8,
		MaxSegments: 128,
	})
	if len(pts) < 17 {
		t.Fatalf("len(pts) = %d, want at least min_segments*2+1=17", len(pts))
	}
	if d := pts[0].Distance(pts[len(pts)-1]); d > 1e-9 {
		t.Fatalf("first/last not coincident: distance %v", d)
	}
}
