package fit

import (
	"math"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
)

// DefaultBezierTolerance is the default maximum perpendicular fit error,
// in pixels, before a curve segment is split and refit.
const DefaultBezierTolerance = 1.5

func sub(a, b geom.Point) geom.Point  { return geom.Point{X: a.X - b.X, Y: a.Y - b.Y} }
func add(a, b geom.Point) geom.Point  { return geom.Point{X: a.X + b.X, Y: a.Y + b.Y} }
func scale(a geom.Point, s float64) geom.Point { return geom.Point{X: a.X * s, Y: a.Y * s} }
func dot(a, b geom.Point) float64     { return a.X*b.X + a.Y*b.Y }

func normalize(a geom.Point) geom.Point {
	n := math.Hypot(a.X, a.Y)
	if n == 0 {
		return geom.Point{}
	}
	return geom.Point{X: a.X / n, Y: a.Y / n}
}

func chordLengthParams(pts []geom.Point) []float64 {
	n := len(pts)
	u := make([]float64, n)
	total := 0.0
	for i := 1; i < n; i++ {
		total += pts[i-1].Dist(pts[i])
		u[i] = total
	}
	if total == 0 {
		return u
	}
	for i := range u {
		u[i] /= total
	}
	return u
}

func bezierPoint(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return geom.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// maxFitError samples the fitted curve densely and returns the largest
// distance from any source point to its nearest sampled curve point,
// along with the index of the offending source point.
func maxFitError(pts []geom.Point, p0, p1, p2, p3 geom.Point) (float64, int) {
	const samples = 100
	curve := make([]geom.Point, samples+1)
	for i := 0; i <= samples; i++ {
		curve[i] = bezierPoint(p0, p1, p2, p3, float64(i)/float64(samples))
	}
	maxErr := 0.0
	maxIdx := 0
	for i, p := range pts {
		best := math.Inf(1)
		for _, c := range curve {
			if d := p.Dist(c); d < best {
				best = d
			}
		}
		if best > maxErr {
			maxErr = best
			maxIdx = i
		}
	}
	return maxErr, maxIdx
}

// fitOneCubic computes the least-squares cubic Bézier control points for
// pts given fixed endpoint tangent directions (Graphics-Gems-style single
// curve fit: https://en.wikipedia.org/wiki/Composite_B%C3%A9zier_curve
// parametrized by chord length with endpoint tangents held fixed).
func fitOneCubic(pts []geom.Point, tHat1, tHat2 geom.Point) (p1, p2 geom.Point) {
	p0, p3 := pts[0], pts[len(pts)-1]
	u := chordLengthParams(pts)

	var c00, c01, c11, x0, x1 float64
	for i, pt := range pts {
		t := u[i]
		mt := 1 - t
		b1 := 3 * mt * mt * t
		b2 := 3 * mt * t * t
		a1 := scale(tHat1, b1)
		a2 := scale(tHat2, b2)

		c00 += dot(a1, a1)
		c01 += dot(a1, a2)
		c11 += dot(a2, a2)

		chord := bezierPoint(p0, p0, p3, p3, t)
		rhs := sub(pt, chord)
		x0 += dot(a1, rhs)
		x1 += dot(a2, rhs)
	}

	segLen := p0.Dist(p3)
	fallback := func() (geom.Point, geom.Point) {
		alpha := segLen / 3
		return add(p0, scale(tHat1, alpha)), add(p3, scale(tHat2, alpha))
	}
	if segLen == 0 {
		return fallback()
	}

	det := c00*c11 - c01*c01
	if math.Abs(det) < 1e-10 {
		return fallback()
	}
	alphaL := (x0*c11 - x1*c01) / det
	alphaR := (c00*x1 - c01*x0) / det

	minAlpha := segLen * 1e-4
	if alphaL < minAlpha || alphaR < minAlpha {
		return fallback()
	}
	return add(p0, scale(tHat1, alphaL)), add(p3, scale(tHat2, alphaR))
}

// fitCubicRecursive fits pts with a single cubic, splitting at the point
// of maximum error and recursing when that error exceeds tolerance.
func fitCubicRecursive(pts []geom.Point, tHat1, tHat2 geom.Point, tolerance float64, depth int) []polypath.Segment {
	if len(pts) < 2 {
		return nil
	}
	if len(pts) == 2 {
		p0, p3 := pts[0], pts[1]
		third := p0.Dist(p3) / 3
		return []polypath.Segment{{
			Kind: polypath.CubicBezierTo,
			To:   p3,
			C1:   add(p0, scale(tHat1, third)),
			C2:   add(p3, scale(tHat2, third)),
		}}
	}

	p1, p2 := fitOneCubic(pts, tHat1, tHat2)
	p0, p3 := pts[0], pts[len(pts)-1]
	errVal, splitIdx := maxFitError(pts, p0, p1, p2, p3)

	if errVal <= tolerance || depth > 24 || splitIdx <= 0 || splitIdx >= len(pts)-1 {
		return []polypath.Segment{{Kind: polypath.CubicBezierTo, To: p3, C1: p1, C2: p2}}
	}

	centerTangent := normalize(sub(pts[splitIdx+1], pts[splitIdx-1]))
	left := fitCubicRecursive(pts[:splitIdx+1], tHat1, scale(centerTangent, -1), tolerance, depth+1)
	right := fitCubicRecursive(pts[splitIdx:], centerTangent, tHat2, tolerance, depth+1)
	return append(left, right...)
}

// FitBezier fits a cubic-Bézier path to a (typically already
// Douglas-Peucker-simplified) polyline. Corner-locked vertices (from
// CornerIndices) split the curve into independently-fit spans so the
// fitter never smooths across a sharp turn.
func FitBezier(points []geom.Point, closed bool, corners []int, tolerance float64) polypath.Path {
	if tolerance <= 0 {
		tolerance = DefaultBezierTolerance
	}
	n := len(points)
	if n == 0 {
		return polypath.Path{}
	}
	if n < 3 {
		return polypath.FromPolyline(polypath.Polyline{Points: points, Closed: closed}, polypath.Style{})
	}

	breaks := map[int]bool{0: true, n - 1: true}
	for _, c := range corners {
		breaks[c] = true
	}
	if closed {
		breaks[n-1] = false // avoid double MoveTo-adjacent break for a closed loop
	}

	var idxs []int
	for i := 0; i <= n-1; i++ {
		if breaks[i] {
			idxs = append(idxs, i)
		}
	}
	if closed {
		idxs = append(idxs, n) // wraps to index 0
	}

	segs := []polypath.Segment{{Kind: polypath.MoveTo, To: points[0]}}
	for i := 0; i < len(idxs)-1; i++ {
		lo, hi := idxs[i], idxs[i+1]
		var span []geom.Point
		if hi == n {
			span = append(append([]geom.Point{}, points[lo:]...), points[0])
		} else {
			span = points[lo : hi+1]
		}
		if len(span) < 2 {
			continue
		}
		t1 := normalize(sub(span[1], span[0]))
		t2 := normalize(sub(span[len(span)-2], span[len(span)-1]))
		segs = append(segs, fitCubicRecursive(span, t1, t2, tolerance, 0)...)
	}

	return polypath.Path{Segments: segs}
}
