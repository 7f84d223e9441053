package preprocess

import (
	"math"

	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

var sobelGx = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
var sobelGy = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}

// SobelGradient computes the 3x3 Sobel gradient magnitude and orientation
// of a grayscale image, border pixels sampled with edge clamping.
func SobelGradient(pool *execctx.Pool, gray *rasterimg.Gray) *rasterimg.GradientField {
	w, h := gray.Width, gray.Height
	mag := make([]float64, w*h)
	orient := make([]float64, w*h)

	pool.ForEach(h, func(y int) {
		for x := 0; x < w; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := gray.At(x+kx, y+ky)
					gx += v * sobelGx[ky+1][kx+1]
					gy += v * sobelGy[ky+1][kx+1]
				}
			}
			i := y*w + x
			mag[i] = math.Sqrt(gx*gx + gy*gy)
			orient[i] = math.Atan2(gy, gx)
		}
	})

	return &rasterimg.GradientField{Width: w, Height: h, Magnitude: mag, Orientation: orient}
}

// MaxMagnitude returns the largest magnitude value in the field, used to
// normalize before thresholding.
func MaxMagnitude(g *rasterimg.GradientField) float64 {
	max := 0.0
	for _, v := range g.Magnitude {
		if v > max {
			max = v
		}
	}
	return max
}
