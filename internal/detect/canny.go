// Package detect implements the pipeline's detection stage: the Canny
// edge map, SLIC superpixel clustering, Euclidean distance transform,
// Zhang-Suen skeletonization, and dot-placement sampling.
package detect

import (
	"math"

	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/preprocess"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// quantizeDirection buckets a gradient orientation (radians) into one of
// the four directions Canny's non-maximum suppression compares against:
// 0, 45, 90, 135 degrees.
func quantizeDirection(theta float64) int {
	deg := theta * 180 / math.Pi
	if deg < 0 {
		deg += 180
	}
	switch {
	case deg < 22.5 || deg >= 157.5:
		return 0
	case deg < 67.5:
		return 45
	case deg < 112.5:
		return 90
	default:
		return 135
	}
}

// nonMaxSuppress zeroes out gradient magnitudes that are not local maxima
// along the quantized gradient direction. A pixel must strictly exceed its
// forward neighbor, so a two-pixel plateau keeps only one pixel and the
// resulting edges stay one pixel thick.
func nonMaxSuppress(grad *rasterimg.GradientField) []float64 {
	w, h := grad.Width, grad.Height
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m, theta := grad.At(x, y)
			if m == 0 {
				continue
			}
			var dx1, dy1, dx2, dy2 int
			switch quantizeDirection(theta) {
			case 0:
				dx1, dy1, dx2, dy2 = 1, 0, -1, 0
			case 45:
				dx1, dy1, dx2, dy2 = 1, -1, -1, 1
			case 90:
				dx1, dy1, dx2, dy2 = 0, 1, 0, -1
			default:
				dx1, dy1, dx2, dy2 = 1, 1, -1, -1
			}
			m1, _ := grad.At(x+dx1, y+dy1)
			m2, _ := grad.At(x+dx2, y+dy2)
			if m > m1 && m >= m2 {
				out[y*w+x] = m
			}
		}
	}
	return out
}

// CannyEdges produces a boolean edge mask following the Canny pipeline:
// Gaussian blur, Sobel gradients, non-maximum suppression, and hysteresis
// thresholding at (low, high), both normalized magnitudes in [0,1].
func CannyEdges(pool *execctx.Pool, gray *rasterimg.Gray, sigma, low, high float64) *rasterimg.Mask {
	// Reuse the Gray->Image round trip so the shared blur code can run
	// on a single-channel buffer by replicating it across RGB.
	img := grayToImage(gray)
	blurred := preprocess.GaussianBlur(pool, img, sigma)
	blurredGray := blurred.ToGray()

	grad := preprocess.SobelGradient(pool, blurredGray)
	suppressed := nonMaxSuppress(grad)

	maxMag := 0.0
	for _, v := range suppressed {
		if v > maxMag {
			maxMag = v
		}
	}
	w, h := grad.Width, grad.Height
	mask := rasterimg.NewMask(w, h)
	if maxMag == 0 {
		return mask
	}
	highAbs := high * maxMag
	lowAbs := low * maxMag

	strong := make([]bool, w*h)
	weak := make([]bool, w*h)
	for i, v := range suppressed {
		if v >= highAbs {
			strong[i] = true
		} else if v >= lowAbs {
			weak[i] = true
		}
	}

	// Hysteresis: flood from strong edges through connected weak edges.
	visited := make([]bool, w*h)
	var stack []int
	for i, v := range strong {
		if v {
			stack = append(stack, i)
			visited[i] = true
		}
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		mask.Bits[idx] = true
		x, y := idx%w, idx/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if visited[ni] {
					continue
				}
				if strong[ni] || weak[ni] {
					visited[ni] = true
					stack = append(stack, ni)
				}
			}
		}
	}
	return mask
}

func grayToImage(gray *rasterimg.Gray) *rasterimg.Image {
	pix := make([]uint8, gray.Width*gray.Height*4)
	for i, v := range gray.Pix {
		u := clampU8Local(v)
		pix[i*4+0] = u
		pix[i*4+1] = u
		pix[i*4+2] = u
		pix[i*4+3] = 255
	}
	return &rasterimg.Image{Width: gray.Width, Height: gray.Height, Pix: pix}
}

func clampU8Local(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
