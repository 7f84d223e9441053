package preprocess

import (
	"math"

	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// SauvolaThreshold computes T(x,y) = mean * (1 + k*(stddev/R - 1)) over an
// odd `window` and returns a boolean mask (true = foreground, i.e. value
// below threshold: ink on a lighter background). R is the dynamic range
// of an 8-bit standard deviation, fixed at 128 per the spec.
//
// When useOptimized is true, means and variances are computed from an
// integral image in O(1) per pixel after O(w*h) setup; the naive path
// recomputes the window directly, which is useful as a cross-check in
// tests and for tiny images where setup cost dominates.
func SauvolaThreshold(gray *rasterimg.Gray, window int, k float64, useOptimized bool) *rasterimg.Mask {
	if window%2 == 0 {
		window++
	}
	half := window / 2
	const R = 128.0

	gb := fromGray(gray)
	mask := rasterimg.NewMask(gray.Width, gray.Height)

	if useOptimized {
		ii := newIntegralImage(gb)
		for y := 0; y < gray.Height; y++ {
			for x := 0; x < gray.Width; x++ {
				mean, stddev := ii.windowStats(x-half, y-half, x+half, y+half)
				t := mean * (1 + k*(stddev/R-1))
				mask.Set(x, y, gray.At(x, y) < t)
			}
		}
		return mask
	}

	for y := 0; y < gray.Height; y++ {
		for x := 0; x < gray.Width; x++ {
			mean, stddev := naiveWindowStats(gb, x-half, y-half, x+half, y+half)
			t := mean * (1 + k*(stddev/R-1))
			mask.Set(x, y, gray.At(x, y) < t)
		}
	}
	return mask
}

func naiveWindowStats(gb *grayBuf, x0, y0, x1, y1 int) (mean, stddev float64) {
	x0 = clampInt(x0, 0, gb.w-1)
	x1 = clampInt(x1, 0, gb.w-1)
	y0 = clampInt(y0, 0, gb.h-1)
	y1 = clampInt(y1, 0, gb.h-1)
	n := 0
	sum, sumSq := 0.0, 0.0
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v := gb.at(x, y)
			sum += v
			sumSq += v * v
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	stddev = math.Sqrt(variance)
	return
}
