package fit

import (
	"math"

	"github.com/lindqvist/vectorize/internal/geom"
)

const defaultCornerThresholdDegrees = 60.0

// turnAngleDegrees returns the unsigned angle, in degrees, between the
// incoming edge (prev->cur) and the outgoing edge (cur->next).
func turnAngleDegrees(prev, cur, next geom.Point) float64 {
	v1 := geom.Point{X: cur.X - prev.X, Y: cur.Y - prev.Y}
	v2 := geom.Point{X: next.X - cur.X, Y: next.Y - cur.Y}
	n1 := math.Hypot(v1.X, v1.Y)
	n2 := math.Hypot(v2.X, v2.Y)
	if n1 == 0 || n2 == 0 {
		return 0
	}
	cosTheta := geom.ClampF((v1.X*v2.X+v1.Y*v2.Y)/(n1*n2), -1, 1)
	return math.Acos(cosTheta) * 180 / math.Pi
}

// CornerIndices returns, in ascending order, the indices of every vertex
// whose turn angle meets or exceeds thresholdDegrees. For a closed
// polyline the wraparound vertex pair is also examined; for an open one
// only interior vertices (not the two endpoints) are candidates.
func CornerIndices(points []geom.Point, closed bool, thresholdDegrees float64) []int {
	n := len(points)
	if n < 3 {
		return nil
	}
	var corners []int
	lo, hi := 1, n-2
	if closed {
		lo, hi = 0, n-1
	}
	for i := lo; i <= hi; i++ {
		prev := points[(i-1+n)%n]
		cur := points[i]
		next := points[(i+1)%n]
		if turnAngleDegrees(prev, cur, next) >= thresholdDegrees {
			corners = append(corners, i)
		}
	}
	return corners
}
