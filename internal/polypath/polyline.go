// Package polypath holds the Polyline and Path data-model types shared by
// the tracing, fitting, hand-drawn stylization, and SVG synthesis stages.
package polypath

import "github.com/lindqvist/vectorize/internal/geom"

// Polyline is an ordered sequence of points plus a closed flag. After
// simplification, no two consecutive points are coincident; if Closed,
// the first and last vertices are logically identical but stored once.
type Polyline struct {
	Points []geom.Point
	Closed bool
}

// Length returns the total arc length of the polyline, including the
// closing segment when Closed.
func (p Polyline) Length() float64 {
	if len(p.Points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i-1].Dist(p.Points[i])
	}
	if p.Closed {
		total += p.Points[len(p.Points)-1].Dist(p.Points[0])
	}
	return total
}

// Dedup removes consecutive coincident points (within eps), preserving
// the invariant that no two consecutive vertices coincide.
func (p Polyline) Dedup(eps float64) Polyline {
	if len(p.Points) == 0 {
		return p
	}
	out := make([]geom.Point, 0, len(p.Points))
	out = append(out, p.Points[0])
	for _, pt := range p.Points[1:] {
		if pt.Dist(out[len(out)-1]) > eps {
			out = append(out, pt)
		}
	}
	if p.Closed && len(out) > 1 && out[0].Dist(out[len(out)-1]) <= eps {
		out = out[:len(out)-1]
	}
	return Polyline{Points: out, Closed: p.Closed}
}
