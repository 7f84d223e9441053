package polypath

import (
	"testing"

	"github.com/lindqvist/vectorize/internal/geom"
)

func TestPolylineLength(t *testing.T) {
	p := Polyline{Points: []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}}
	if got := p.Length(); got != 7 {
		t.Fatalf("expected length 7, got %v", got)
	}
}

func TestPolylineLengthClosedIncludesClosingSegment(t *testing.T) {
	p := Polyline{
		Points: []geom.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}},
		Closed: true,
	}
	got := p.Length()
	want := 4.0 + 3.0 + 5.0
	if got != want {
		t.Fatalf("expected closed length %v, got %v", want, got)
	}
}

func TestDedupRemovesCoincidentPoints(t *testing.T) {
	p := Polyline{Points: []geom.Point{
		{X: 0, Y: 0}, {X: 0.001, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 0},
	}}
	out := p.Dedup(0.01)
	if len(out.Points) != 2 {
		t.Fatalf("expected 2 points after dedup, got %d", len(out.Points))
	}
}

func TestDedupTrimsClosingDuplicate(t *testing.T) {
	p := Polyline{
		Points: []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 5}, {X: 0.0001, Y: 0}},
		Closed: true,
	}
	out := p.Dedup(0.01)
	if len(out.Points) != 3 {
		t.Fatalf("expected closing duplicate trimmed, got %d points", len(out.Points))
	}
}

func TestFromPolylineOpenProducesLineTos(t *testing.T) {
	p := Polyline{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}}
	path := FromPolyline(p, Style{StrokeColor: "#000000"})
	if len(path.Segments) != 3 {
		t.Fatalf("expected 3 segments (move + 2 lines), got %d", len(path.Segments))
	}
	if path.Segments[0].Kind != MoveTo {
		t.Fatalf("expected first segment to be MoveTo")
	}
	for _, s := range path.Segments[1:] {
		if s.Kind != LineTo {
			t.Fatalf("expected remaining segments to be LineTo")
		}
	}
}

func TestFromPolylineClosedAddsClosingLineTo(t *testing.T) {
	p := Polyline{Points: []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}, Closed: true}
	path := FromPolyline(p, Style{})
	last := path.Segments[len(path.Segments)-1]
	if last.Kind != LineTo || last.To != p.Points[0] {
		t.Fatalf("expected closing LineTo back to start, got %+v", last)
	}
}

func TestPathBBoxIncludesControlPoints(t *testing.T) {
	path := Path{Segments: []Segment{
		{Kind: MoveTo, To: geom.Point{X: 0, Y: 0}},
		{Kind: CubicBezierTo, To: geom.Point{X: 10, Y: 0}, C1: geom.Point{X: 2, Y: -5}, C2: geom.Point{X: 8, Y: 5}},
	}}
	b := path.BBox()
	if b.MinY != -5 || b.MaxY != 5 || b.MinX != 0 || b.MaxX != 10 {
		t.Fatalf("unexpected bbox: %+v", b)
	}
}
