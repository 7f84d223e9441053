// Package geom holds the pure, stateless color and geometry primitives
// shared by every stage of the vectorize pipeline: sRGB<->LAB conversion,
// CIE76 ΔE*ab distance, 2D points/vectors, and bounding boxes.
package geom

import "math"

// Point is a 2D point in image pixel coordinates.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistSq returns the squared Euclidean distance between p and q, avoiding
// the sqrt when only comparisons are needed.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Lerp linearly interpolates between p and q at parameter t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point) Norm() float64 { return math.Sqrt(p.X*p.X + p.Y*p.Y) }

// BBox is an axis-aligned bounding box in pixel coordinates.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyBBox returns a bounding box primed so the first Extend call sets it.
func EmptyBBox() BBox {
	return BBox{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Extend grows the box to include p.
func (b BBox) Extend(p Point) BBox {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// Width returns the box width.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the box height.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Diagonal returns the diagonal length, used throughout the fitting stage
// to convert the unitless `detail` slider into pixel epsilons.
func Diagonal(w, h int) float64 {
	return math.Hypot(float64(w), float64(h))
}

// ClampInt clamps v to [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampF clamps v to [lo,hi].
func ClampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 { return ClampF(v, 0, 1) }
