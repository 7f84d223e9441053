package detect

import (
	"math"

	"github.com/lindqvist/vectorize/internal/rasterimg"
)

const infDist = 1e20

// dt1D computes the exact 1D squared-distance transform of f using the
// Felzenszwalt-Huttenlocher lower-envelope-of-parabolas algorithm: O(n)
// per row/column, exact (not an approximation), which is what makes the
// two-pass 2D version below exact as well.
func dt1D(f []float64) []float64 {
	n := len(f)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)
	k := 0
	v[0] = 0
	z[0] = -infDist
	z[1] = infDist
	for q := 1; q < n; q++ {
		s := ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		for s <= z[k] {
			k--
			s = ((f[q] + float64(q*q)) - (f[v[k]] + float64(v[k]*v[k]))) / float64(2*q-2*v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = infDist
	}
	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dx := float64(q - v[k])
		d[q] = dx*dx + f[v[k]]
	}
	return d
}

// DistanceTransform computes the exact squared (then square-rooted)
// Euclidean distance from every pixel to the nearest pixel where mask is
// false, via the standard two-pass (columns then rows) reduction to the
// 1D case.
func DistanceTransform(mask *rasterimg.Mask) *rasterimg.Gray {
	w, h := mask.Width, mask.Height
	f := make([]float64, w*h)
	for i, set := range mask.Bits {
		if set {
			f[i] = infDist
		} else {
			f[i] = 0
		}
	}

	// Column pass.
	col := make([]float64, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = f[y*w+x]
		}
		dCol := dt1D(col)
		for y := 0; y < h; y++ {
			f[y*w+x] = dCol[y]
		}
	}
	// Row pass.
	row := make([]float64, w)
	for y := 0; y < h; y++ {
		copy(row, f[y*w:(y+1)*w])
		dRow := dt1D(row)
		copy(f[y*w:(y+1)*w], dRow)
	}

	out := make([]float64, w*h)
	for i, v := range f {
		out[i] = math.Sqrt(v)
	}
	return &rasterimg.Gray{Width: w, Height: h, Pix: out}
}
