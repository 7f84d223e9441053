package handdrawn

import (
	"testing"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
)

func straightLine(n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Point{X: float64(i) * 5, Y: 0}
	}
	return pts
}

func TestTremorZeroStrengthIsIdentity(t *testing.T) {
	pts := straightLine(10)
	out := Tremor(pts, 2.0, 0, 42)
	for i := range pts {
		if out[i] != pts[i] {
			t.Fatalf("expected identity at zero strength, vertex %d: %v != %v", i, out[i], pts[i])
		}
	}
}

func TestTremorDeterministic(t *testing.T) {
	pts := straightLine(20)
	a := Tremor(pts, 2.0, 0.3, 7)
	b := Tremor(pts, 2.0, 0.3, 7)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected identical output for identical seed, vertex %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestTremorDiffersAcrossSeeds(t *testing.T) {
	pts := straightLine(20)
	a := Tremor(pts, 2.0, 0.3, 1)
	b := Tremor(pts, 2.0, 0.3, 2)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("expected different seeds to produce different tremor")
	}
}

func TestWidthProfileTapersEndpoints(t *testing.T) {
	pts := straightLine(100)
	widths := WidthProfile(pts, 4.0, 0, 1.0, 1)
	if widths[0] >= widths[len(widths)/2] {
		t.Fatalf("expected tapered start width to be less than mid width: start=%v mid=%v", widths[0], widths[len(widths)/2])
	}
	if widths[len(widths)-1] >= widths[len(widths)/2] {
		t.Fatalf("expected tapered end width to be less than mid width")
	}
}

func TestWidthProfileNoTaperNoVariationIsConstant(t *testing.T) {
	pts := straightLine(20)
	widths := WidthProfile(pts, 4.0, 0, 0, 1)
	for _, w := range widths {
		if w != 4.0 {
			t.Fatalf("expected constant width 4.0 with no modulation, got %v", w)
		}
	}
}

func TestSegmentPathsByWidthGroupsConstantWidth(t *testing.T) {
	pts := straightLine(10)
	widths := make([]float64, 10)
	for i := range widths {
		widths[i] = 3.0
	}
	paths := SegmentPathsByWidth(pts, widths, polypath.Style{StrokeColor: "#000"}, 0.25)
	if len(paths) != 1 {
		t.Fatalf("expected a single segment for constant width, got %d", len(paths))
	}
	if paths[0].Style.StrokeWidth != 3.0 {
		t.Fatalf("expected stroke width 3.0, got %v", paths[0].Style.StrokeWidth)
	}
}
