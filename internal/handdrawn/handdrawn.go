// Package handdrawn applies an optional, seeded post-fitting stylization
// pass: vertex tremor, variable stroke width, and endpoint tapering.
package handdrawn

import (
	"math"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
	"github.com/lindqvist/vectorize/internal/rng"
)

// Tremor perturbs each vertex by a zero-mean Gaussian scaled by
// strength*strokeWidth, then low-pass filters the raw perturbations
// along the path (a 3-tap moving average, two passes) so neighboring
// vertices stay correlated instead of jittering independently.
func Tremor(points []geom.Point, strokeWidth, strength float64, seed uint64) []geom.Point {
	n := len(points)
	if n == 0 || strength <= 0 {
		return append([]geom.Point(nil), points...)
	}
	sigma := strength * strokeWidth
	dx := make([]float64, n)
	dy := make([]float64, n)
	for i := range points {
		r := rng.New(seed, i)
		dx[i] = gaussian(r.Float64(), r.Float64()) * sigma
		dy[i] = gaussian(r.Float64(), r.Float64()) * sigma
	}
	dx = smooth(dx)
	dx = smooth(dx)
	dy = smooth(dy)
	dy = smooth(dy)

	out := make([]geom.Point, n)
	for i, p := range points {
		out[i] = geom.Point{X: p.X + dx[i], Y: p.Y + dy[i]}
	}
	return out
}

// gaussian draws one standard-normal sample from two uniform(0,1) draws
// via the Box-Muller transform.
func gaussian(u1, u2 float64) float64 {
	if u1 <= 0 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func smooth(v []float64) []float64 {
	n := len(v)
	out := make([]float64, n)
	for i := range v {
		lo, hi := i-1, i+1
		sum, count := v[i], 1.0
		if lo >= 0 {
			sum += v[lo]
			count++
		}
		if hi < n {
			sum += v[hi]
			count++
		}
		out[i] = sum / count
	}
	return out
}

// latticeNoise1D returns a smooth pseudo-random value-noise sample at
// position t (in [0, +inf)), interpolated between integer lattice points
// deterministically seeded from seed.
func latticeNoise1D(t float64, seed uint64) float64 {
	i0 := int(math.Floor(t))
	frac := t - float64(i0)
	v0 := latticeValue(i0, seed)
	v1 := latticeValue(i0+1, seed)
	// smootherstep for a continuously-differentiable blend.
	f := frac * frac * frac * (frac*(frac*6-15) + 10)
	return v0 + (v1-v0)*f
}

func latticeValue(i int, seed uint64) float64 {
	return rng.New(seed, i).Float64()*2 - 1
}

// WidthProfile computes a per-vertex stroke width combining smooth 1D
// noise modulation (variableWeight) and linear endpoint tapering
// (tapering, over the first/last 10% of arc length).
func WidthProfile(points []geom.Point, baseWidth, variableWeight, tapering float64, seed uint64) []float64 {
	n := len(points)
	widths := make([]float64, n)
	if n == 0 {
		return widths
	}

	cum := make([]float64, n)
	for i := 1; i < n; i++ {
		cum[i] = cum[i-1] + points[i-1].Dist(points[i])
	}
	total := cum[n-1]

	const latticeSpacing = 20.0
	for i := range points {
		w := baseWidth
		if variableWeight > 0 {
			noise := latticeNoise1D(cum[i]/latticeSpacing, seed)
			w *= 1 + variableWeight*noise*0.5
		}
		if tapering > 0 && total > 0 {
			edge := total * 0.1
			factor := 1.0
			if cum[i] < edge {
				factor = cum[i] / edge
			} else if total-cum[i] < edge {
				factor = (total - cum[i]) / edge
			}
			minFactor := 1 - tapering
			w *= minFactor + (1-minFactor)*factor
		}
		if w < 0 {
			w = 0
		}
		widths[i] = w
	}
	return widths
}

// SegmentPathsByWidth groups consecutive vertices sharing (approximately)
// the same width into independent stroked paths, each carrying its own
// stroke-width, so the SVG emits per-segment width variation without
// relying on a gradient-like stroke-width interpolation SVG lacks.
func SegmentPathsByWidth(points []geom.Point, widths []float64, base polypath.Style, bucketSize float64) []polypath.Path {
	n := len(points)
	if n < 2 {
		return nil
	}
	if bucketSize <= 0 {
		bucketSize = 0.25
	}
	bucketOf := func(w float64) int { return int(math.Round(w / bucketSize)) }

	var out []polypath.Path
	segStart := 0
	curBucket := bucketOf(widths[0])
	flush := func(end int) {
		if end <= segStart {
			return
		}
		seg := points[segStart : end+1]
		style := base
		style.StrokeWidth = avgWidth(widths[segStart : end+1])
		out = append(out, polypath.FromPolyline(polypath.Polyline{Points: seg}, style))
	}
	for i := 1; i < n; i++ {
		b := bucketOf(widths[i])
		if b != curBucket {
			flush(i)
			segStart = i
			curBucket = b
		}
	}
	flush(n - 1)
	return out
}

func avgWidth(ws []float64) float64 {
	sum := 0.0
	for _, w := range ws {
		sum += w
	}
	return sum / float64(len(ws))
}
