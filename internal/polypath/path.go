package polypath

import "github.com/lindqvist/vectorize/internal/geom"

// SegmentKind enumerates the segment types a Path may contain.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	CubicBezierTo
)

// Segment is one drawing instruction. For CubicBezierTo, C1 and C2 are
// the two control points and To is the curve's endpoint; for MoveTo and
// LineTo only To is meaningful.
type Segment struct {
	Kind   SegmentKind
	To     geom.Point
	C1, C2 geom.Point
}

// LineCap mirrors the SVG stroke-linecap values this pipeline emits.
type LineCap string

const (
	CapButt   LineCap = "butt"
	CapRound  LineCap = "round"
	CapSquare LineCap = "square"
)

// LineJoin mirrors the SVG stroke-linejoin values this pipeline emits.
type LineJoin string

const (
	JoinMiter LineJoin = "miter"
	JoinRound LineJoin = "round"
	JoinBevel LineJoin = "bevel"
)

// Style carries every per-path SVG presentation attribute.
type Style struct {
	StrokeColor string // "" means no stroke
	StrokeWidth float64
	FillColor   string // "none" means unfilled
	Opacity     float64
	Cap         LineCap
	Join        LineJoin
	FillRule    string // "", "evenodd", or "nonzero"
}

// Path is a sequence of segments plus style. By invariant it begins with
// a MoveTo; cubic control points and endpoints are in image coordinates.
type Path struct {
	Segments []Segment
	Style    Style
}

// FromPolyline builds a Path of straight LineTo segments from a polyline,
// used as the pre-fit representation and as the fallback when Bézier
// fitting is disabled.
func FromPolyline(p Polyline, style Style) Path {
	if len(p.Points) == 0 {
		return Path{Style: style}
	}
	segs := make([]Segment, 0, len(p.Points)+1)
	segs = append(segs, Segment{Kind: MoveTo, To: p.Points[0]})
	for _, pt := range p.Points[1:] {
		segs = append(segs, Segment{Kind: LineTo, To: pt})
	}
	if p.Closed {
		segs = append(segs, Segment{Kind: LineTo, To: p.Points[0]})
	}
	return Path{Segments: segs, Style: style}
}

// BBox returns the bounding box of every point referenced by the path
// (endpoints and control points).
func (p Path) BBox() geom.BBox {
	b := geom.EmptyBBox()
	for _, s := range p.Segments {
		b = b.Extend(s.To)
		if s.Kind == CubicBezierTo {
			b = b.Extend(s.C1)
			b = b.Extend(s.C2)
		}
	}
	return b
}
