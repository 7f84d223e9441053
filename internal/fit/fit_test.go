package fit

import (
	"math"
	"testing"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
)

func TestDouglasPeuckerKeepsEndpoints(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0.01}, {X: 2, Y: -0.01}, {X: 10, Y: 0}}
	out := DouglasPeucker(pts, 1.0)
	if out[0] != pts[0] || out[len(out)-1] != pts[len(pts)-1] {
		t.Fatalf("endpoints must always be kept")
	}
	if len(out) != 2 {
		t.Fatalf("expected near-collinear points collapsed to 2, got %d: %v", len(out), out)
	}
}

func TestDouglasPeuckerKeepsSignificantVertex(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 10}, {X: 10, Y: 0}}
	out := DouglasPeucker(pts, 0.5)
	if len(out) != 3 {
		t.Fatalf("expected the spike vertex kept, got %d points", len(out))
	}
}

func TestCornerIndicesDetectsRightAngle(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}
	corners := CornerIndices(pts, false, 60)
	if len(corners) != 1 || corners[0] != 1 {
		t.Fatalf("expected a corner at index 1, got %v", corners)
	}
}

func TestCornerIndicesNoCornerOnStraightLine(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	corners := CornerIndices(pts, false, 60)
	if len(corners) != 0 {
		t.Fatalf("expected no corners on a straight line, got %v", corners)
	}
}

func TestFitBezierStraightLineIsLowError(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 20; i++ {
		pts = append(pts, geom.Point{X: float64(i), Y: 0})
	}
	path := FitBezier(pts, false, nil, 1.5)
	if len(path.Segments) < 2 {
		t.Fatalf("expected at least a MoveTo + curve, got %d segments", len(path.Segments))
	}
	last := path.Segments[len(path.Segments)-1]
	if math.Abs(last.To.X-20) > 1e-6 || math.Abs(last.To.Y) > 1e-6 {
		t.Fatalf("expected curve to end at last point, got %+v", last.To)
	}
}

func TestFitBezierRespectsCornerLock(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 10; i++ {
		pts = append(pts, geom.Point{X: float64(i), Y: 0})
	}
	for i := 1; i <= 10; i++ {
		pts = append(pts, geom.Point{X: 10, Y: float64(i)})
	}
	corners := CornerIndices(pts, false, 60)
	if len(corners) == 0 {
		t.Fatalf("expected the right-angle bend to be detected as a corner")
	}
	path := FitBezier(pts, false, corners, 1.5)

	cornerPt := pts[corners[0]]
	found := false
	for _, s := range path.Segments {
		if s.To == cornerPt {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the corner-locked vertex to be a segment endpoint in the fitted path")
	}
}

func TestFitBezierHighErrorSplits(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 40; i++ {
		x := float64(i)
		y := 20 * math.Sin(x/4)
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	path := FitBezier(pts, false, nil, 0.5)
	count := 0
	for _, s := range path.Segments {
		if s.Kind == polypath.CubicBezierTo {
			count++
		}
	}
	if count < 2 {
		t.Fatalf("expected a wiggly curve with tight tolerance to split into multiple Béziers, got %d", count)
	}
}
