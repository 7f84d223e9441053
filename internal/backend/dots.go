package backend

import (
	"math"

	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/deadline"
	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/preprocess"
	"github.com/lindqvist/vectorize/internal/rasterimg"
	"github.com/lindqvist/vectorize/internal/svgdoc"
)

// RunDots implements the Dots backend: optional background mask,
// gradient magnitude field, dot placement, per-dot radius/color
// resolution, emitted as <circle> elements.
func RunDots(img *rasterimg.Image, cfg config.Config, dl deadline.Checker) (*svgdoc.Document, error) {
	pool := newPool(cfg)
	doc := svgdoc.New(img.Width, img.Height, int(cfg.SvgPrecision))

	gray := img.ToGray()
	grad := preprocess.SobelGradient(pool, gray)
	if err := dl.Check("dots:gradient"); err != nil {
		return nil, err
	}

	var bg *rasterimg.Mask
	if cfg.EnableBackgroundRemoval {
		useAdaptive := cfg.BackgroundRemovalAlgorithm == config.BackgroundAdaptive
		bg = preprocess.RemoveBackground(gray, useAdaptive, cfg.AdaptiveThresholdWindowSize, float64(cfg.AdaptiveThresholdK), float64(cfg.BackgroundRemovalStrength))
		if err := dl.Check("dots:background"); err != nil {
			return nil, err
		}
	}

	minDistance := float64(cfg.DotMinRadius) * 2 * float64(cfg.DotMinDistanceFactor)
	if minDistance <= 0 {
		minDistance = 2
	}
	points := detect.PlaceDots(img.Width, img.Height, grad, cfg.DotInitPattern, float64(cfg.DotGridResolution), minDistance, float64(cfg.DotDensityThreshold), cfg.Seed)
	if err := dl.Check("dots:place"); err != nil {
		return nil, err
	}

	maxMag := preprocess.MaxMagnitude(grad)
	if maxMag == 0 {
		maxMag = 1
	}

	lab := img.ToLab()
	for _, p := range points {
		x, y := int(p.X), int(p.Y)
		if bg != nil && !bg.At(x, y) {
			continue
		}

		radius := float64(cfg.DotMinRadius)
		if cfg.AdaptiveSizing {
			variance := localVariance(gray, x, y, 2)
			norm := geom01(variance, 400)
			radius = float64(cfg.DotMinRadius) + norm*(float64(cfg.DotMaxRadius)-float64(cfg.DotMinRadius))
		}
		if cfg.DotLocalVarianceScaling {
			mag, _ := grad.At(x, y)
			radius *= 0.6 + 0.4*(mag/maxMag)
		}
		radius = clamp(radius, float64(cfg.DotMinRadius), float64(cfg.DotMaxRadius))

		var fill string
		if cfg.PreserveColors {
			fill = labHex(lab.At(x, y))
		} else {
			fill = "#000000"
		}

		doc.AddDot(p.X, p.Y, radius, fill)
	}

	return doc, nil
}

func localVariance(gray *rasterimg.Gray, cx, cy, radius int) float64 {
	var sum, sumSq, n float64
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || y < 0 || x >= gray.Width || y >= gray.Height {
				continue
			}
			v := gray.At(x, y)
			sum += v
			sumSq += v * v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / n
	return sumSq/n - mean*mean
}

func geom01(v, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	r := v / scale
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}
