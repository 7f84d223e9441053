package preprocess

import "math"

// integralImage builds summed-area tables for gray and gray^2, each sized
// (w+1)x(h+1) with a zero border, giving O(1) windowed mean/variance
// queries after O(w*h) setup — the optimization the spec calls out for
// Sauvola thresholding.
type integralImage struct {
	w, h   int
	sum    []float64
	sumSq  []float64
}

func newIntegralImage(gray *grayBuf) *integralImage {
	w, h := gray.w, gray.h
	ii := &integralImage{w: w, h: h, sum: make([]float64, (w+1)*(h+1)), sumSq: make([]float64, (w+1)*(h+1))}
	for y := 1; y <= h; y++ {
		rowSum, rowSumSq := 0.0, 0.0
		for x := 1; x <= w; x++ {
			v := gray.at(x-1, y-1)
			rowSum += v
			rowSumSq += v * v
			ii.sum[y*(w+1)+x] = ii.sum[(y-1)*(w+1)+x] + rowSum
			ii.sumSq[y*(w+1)+x] = ii.sumSq[(y-1)*(w+1)+x] + rowSumSq
		}
	}
	return ii
}

// windowStats returns the mean and standard deviation of gray values in
// the inclusive window [x0,x1] x [y0,y1].
func (ii *integralImage) windowStats(x0, y0, x1, y1 int) (mean, stddev float64) {
	x0 = clampInt(x0, 0, ii.w-1)
	x1 = clampInt(x1, 0, ii.w-1)
	y0 = clampInt(y0, 0, ii.h-1)
	y1 = clampInt(y1, 0, ii.h-1)
	sx, ex := x0+1, x1+1
	sy, ey := y0+1, y1+1
	area := float64((x1 - x0 + 1) * (y1 - y0 + 1))

	s := ii.sum[ey*(ii.w+1)+ex] - ii.sum[(sy-1)*(ii.w+1)+ex] - ii.sum[ey*(ii.w+1)+(sx-1)] + ii.sum[(sy-1)*(ii.w+1)+(sx-1)]
	sq := ii.sumSq[ey*(ii.w+1)+ex] - ii.sumSq[(sy-1)*(ii.w+1)+ex] - ii.sumSq[ey*(ii.w+1)+(sx-1)] + ii.sumSq[(sy-1)*(ii.w+1)+(sx-1)]

	mean = s / area
	variance := sq/area - mean*mean
	if variance < 0 {
		variance = 0
	}
	stddev = math.Sqrt(variance)
	return
}
