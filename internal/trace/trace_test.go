package trace

import (
	"testing"

	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

func rectMask(w, h, x0, y0, x1, y1 int) *rasterimg.Mask {
	m := rasterimg.NewMask(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Set(x, y, true)
		}
	}
	return m
}

func TestTraceContoursRectangleProducesClosedLoop(t *testing.T) {
	m := rectMask(20, 20, 5, 5, 15, 15)
	contours := TraceContours(m)
	if len(contours) != 1 {
		t.Fatalf("expected exactly 1 outer contour, got %d", len(contours))
	}
	c := contours[0]
	if c.IsHole {
		t.Fatalf("expected an outer boundary, got a hole")
	}
	if len(c.Points) < 4 {
		t.Fatalf("expected at least 4 boundary points for a 10x10 square, got %d", len(c.Points))
	}
}

func TestTraceContoursFindsHole(t *testing.T) {
	m := rectMask(30, 30, 5, 5, 25, 25)
	for y := 12; y < 18; y++ {
		for x := 12; x < 18; x++ {
			m.Set(x, y, false)
		}
	}
	contours := TraceContours(m)
	var holes, outers int
	for _, c := range contours {
		if c.IsHole {
			holes++
		} else {
			outers++
		}
	}
	if outers != 1 || holes != 1 {
		t.Fatalf("expected 1 outer + 1 hole, got outers=%d holes=%d", outers, holes)
	}
}

func TestTraceContoursSinglePixel(t *testing.T) {
	m := rasterimg.NewMask(10, 10)
	m.Set(5, 5, true)
	contours := TraceContours(m)
	if len(contours) != 1 {
		t.Fatalf("expected 1 contour for isolated pixel, got %d", len(contours))
	}
	if len(contours[0].Points) != 1 {
		t.Fatalf("expected degenerate single-point contour, got %d points", len(contours[0].Points))
	}
}

func TestLinkEdgesDiscardsShortChains(t *testing.T) {
	m := rasterimg.NewMask(20, 20)
	// A long horizontal edge.
	for x := 0; x < 15; x++ {
		m.Set(x, 5, true)
	}
	// A short 2-pixel edge elsewhere.
	m.Set(0, 18, true)
	m.Set(1, 18, true)

	chains := LinkEdges(20, 20, func(x, y int) bool { return m.At(x, y) }, 10)
	if len(chains) != 1 {
		t.Fatalf("expected only the long chain to survive min_len filter, got %d", len(chains))
	}
	if chains[0].Length() < 10 {
		t.Fatalf("surviving chain should meet min length, got %v", chains[0].Length())
	}
}

func TestLinkEdgesSplitsAtJunction(t *testing.T) {
	m := rasterimg.NewMask(20, 20)
	// A 'T' shape: horizontal bar plus a vertical stem meeting at a junction.
	for x := 2; x < 14; x++ {
		m.Set(x, 5, true)
	}
	for y := 5; y < 14; y++ {
		m.Set(7, y, true)
	}
	chains := LinkEdges(20, 20, func(x, y int) bool { return m.At(x, y) }, 1)
	if len(chains) < 3 {
		t.Fatalf("expected the junction to split the T into at least 3 chains, got %d", len(chains))
	}
}

func TestTraceSkeletonPrunesShortBranches(t *testing.T) {
	skel := rasterimg.NewMask(20, 20)
	for x := 2; x < 16; x++ {
		skel.Set(x, 10, true)
	}
	dt := &rasterimg.Gray{Width: 20, Height: 20, Pix: make([]float64, 20*20)}
	for i := range dt.Pix {
		dt.Pix[i] = 2.0
	}
	branches := TraceSkeleton(skel, dt, 5)
	if len(branches) != 1 {
		t.Fatalf("expected 1 surviving branch, got %d", len(branches))
	}
	if branches[0].AvgHalfWidth != 2.0 {
		t.Fatalf("expected avg half width 2.0, got %v", branches[0].AvgHalfWidth)
	}
}

func TestTraceSkeletonClosedLoop(t *testing.T) {
	skel := rasterimg.NewMask(20, 20)
	// Trace a simple ring of skeleton pixels (approximate circle) with no
	// junctions or endpoints.
	pts := [][2]int{
		{10, 5}, {11, 5}, {12, 6}, {13, 7}, {13, 8}, {13, 9}, {12, 10}, {11, 11},
		{10, 11}, {9, 11}, {8, 10}, {7, 9}, {7, 8}, {7, 7}, {8, 6}, {9, 5},
	}
	for _, p := range pts {
		skel.Set(p[0], p[1], true)
	}
	dt := &rasterimg.Gray{Width: 20, Height: 20, Pix: make([]float64, 20*20)}
	branches := TraceSkeleton(skel, dt, 1)
	if len(branches) != 1 {
		t.Fatalf("expected 1 closed loop branch, got %d", len(branches))
	}
	if !branches[0].Line.Closed {
		t.Fatalf("expected the ring to be traced as closed")
	}
}

func TestCannyEdgesFeedIntoLinkEdges(t *testing.T) {
	// sanity: detect.CannyEdges output (a Mask) is a valid input shape for LinkEdges.
	var _ func(*rasterimg.Mask) = func(m *rasterimg.Mask) {
		_ = LinkEdges(m.Width, m.Height, func(x, y int) bool { return m.At(x, y) }, 5)
	}
	_ = detect.CannyEdges
}
