package preprocess

import (
	"math"

	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// BilateralFilter applies one pass of edge-preserving denoise: each output
// pixel is a weighted average of its neighborhood, where the weight
// combines a spatial Gaussian (sigmaSpatial) and a range Gaussian over
// color difference (sigmaRange), so strong edges are preserved while flat
// regions get smoothed. This generalizes the variance-driven per-pixel
// blur approach (blend strength keyed to local contrast) into a proper
// bilateral kernel.
func BilateralFilter(pool *execctx.Pool, src *rasterimg.Image, sigmaSpatial, sigmaRange float64) *rasterimg.Image {
	if src == nil {
		return nil
	}
	if sigmaSpatial < 1.5 {
		sigmaSpatial = 1.5
	}
	if sigmaSpatial > 4 {
		sigmaSpatial = 4
	}
	if sigmaRange < 4 {
		sigmaRange = 4
	}
	if sigmaRange > 20 {
		sigmaRange = 20
	}

	w, h := src.Width, src.Height
	radius := int(math.Ceil(2 * sigmaSpatial))
	spatialDenom := 2 * sigmaSpatial * sigmaSpatial
	rangeDenom := 2 * sigmaRange * sigmaRange

	out := make([]uint8, len(src.Pix))
	pool.ForEach(h, func(y int) {
		for x := 0; x < w; x++ {
			ci := (y*w + x) * 4
			cr := float64(src.Pix[ci+0])
			cg := float64(src.Pix[ci+1])
			cb := float64(src.Pix[ci+2])

			var sr, sg, sb, wsum float64
			for dy := -radius; dy <= radius; dy++ {
				iy := clampInt(y+dy, 0, h-1)
				for dx := -radius; dx <= radius; dx++ {
					ix := clampInt(x+dx, 0, w-1)
					ni := (iy*w + ix) * 4
					nr := float64(src.Pix[ni+0])
					ng := float64(src.Pix[ni+1])
					nb := float64(src.Pix[ni+2])

					spatialSq := float64(dx*dx + dy*dy)
					colorDistSq := (nr-cr)*(nr-cr) + (ng-cg)*(ng-cg) + (nb-cb)*(nb-cb)
					weight := math.Exp(-spatialSq/spatialDenom) * math.Exp(-colorDistSq/rangeDenom)

					sr += nr * weight
					sg += ng * weight
					sb += nb * weight
					wsum += weight
				}
			}
			o := (y*w + x) * 4
			if wsum > 0 {
				out[o+0] = clampU8(sr / wsum)
				out[o+1] = clampU8(sg / wsum)
				out[o+2] = clampU8(sb / wsum)
			} else {
				out[o+0] = src.Pix[ci+0]
				out[o+1] = src.Pix[ci+1]
				out[o+2] = src.Pix[ci+2]
			}
			out[o+3] = src.Pix[ci+3]
		}
	})

	return &rasterimg.Image{Width: w, Height: h, Pix: out}
}
