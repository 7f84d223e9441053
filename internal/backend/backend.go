// Package backend implements the four top-level vectorization
// orchestrators (Edge, Centerline, Superpixel, Dots), each composing the
// shared preprocess/detect/trace/fit/handdrawn/svgdoc stages into one
// SVG document.
package backend

import (
	"fmt"
	"math"

	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/fit"
	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/handdrawn"
	"github.com/lindqvist/vectorize/internal/polypath"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func labHex(c geom.Lab) string {
	r, g, b := geom.LabToRGB(c)
	return hexColor(r, g, b)
}

func imageDiagonal(width, height int) float64 {
	return geom.Diagonal(width, height)
}

// simplifyAndFit runs DP simplification and (optionally) Bézier fitting
// on a single polyline, producing a Path styled with style.
func simplifyAndFit(pl polypath.Polyline, epsilon float64, fitCurves bool, tolerance float64, style polypath.Style) polypath.Path {
	simplified := fit.SimplifyPolyline(pl, epsilon)
	if !fitCurves {
		return polypath.FromPolyline(simplified, style)
	}
	corners := fit.CornerIndices(simplified.Points, simplified.Closed, 60)
	path := fit.FitBezier(simplified.Points, simplified.Closed, corners, tolerance)
	path.Style = style
	return path
}

// styleForStroke builds the common stroked, unfilled presentation style.
func styleForStroke(color string, width float64) polypath.Style {
	return polypath.Style{
		StrokeColor: color,
		StrokeWidth: width,
		FillColor:   "none",
		Cap:         polypath.CapRound,
		Join:        polypath.JoinRound,
	}
}

// clusterMask rasterizes one SLIC/RAG cluster's member pixels into a
// standalone Mask suitable for Moore-neighbor contour tracing.
func clusterMask(width, height int, labels []int, clusterIdx int) *rasterimg.Mask {
	m := rasterimg.NewMask(width, height)
	for i, l := range labels {
		if l == clusterIdx {
			m.Set(i%width, i/width, true)
		}
	}
	return m
}

// pcaAxis1D returns the first principal component direction (unit vector)
// of a pixel set's (x,y) coordinates, via the 2x2 covariance matrix's
// dominant eigenvector.
func pcaAxis1D(members []int, width int) geom.Point {
	n := float64(len(members))
	if n == 0 {
		return geom.Point{X: 1, Y: 0}
	}
	var mx, my float64
	for _, idx := range members {
		mx += float64(idx % width)
		my += float64(idx / width)
	}
	mx /= n
	my /= n

	var cxx, cxy, cyy float64
	for _, idx := range members {
		dx := float64(idx%width) - mx
		dy := float64(idx/width) - my
		cxx += dx * dx
		cxy += dx * dy
		cyy += dy * dy
	}
	cxx /= n
	cxy /= n
	cyy /= n

	// Dominant eigenvector of a symmetric 2x2 matrix via the closed form.
	trace := cxx + cyy
	det := cxx*cyy - cxy*cxy
	disc := math.Sqrt(math.Max(trace*trace/4-det, 0))
	lambda := trace/2 + disc
	if cxy == 0 {
		if cxx >= cyy {
			return geom.Point{X: 1, Y: 0}
		}
		return geom.Point{X: 0, Y: 1}
	}
	v := geom.Point{X: lambda - cyy, Y: cxy}
	n2 := math.Hypot(v.X, v.Y)
	if n2 == 0 {
		return geom.Point{X: 1, Y: 0}
	}
	return geom.Point{X: v.X / n2, Y: v.Y / n2}
}

func newPool(cfg config.Config) *execctx.Pool {
	return execctx.New(cfg.ThreadCount)
}

func applyHandDrawn(pts []geom.Point, strokeWidth float64, cfg config.Config, seedOffset int) []geom.Point {
	tremor, _, _ := cfg.HandDrawnParams()
	if tremor <= 0 {
		return pts
	}
	return handdrawn.Tremor(pts, strokeWidth, float64(tremor), cfg.Seed+uint64(seedOffset))
}

func maybeWidthStylePaths(pts []geom.Point, strokeWidth float64, cfg config.Config, style polypath.Style, seedOffset int) []polypath.Path {
	_, variableWidth, taper := cfg.HandDrawnParams()
	if variableWidth <= 0 && taper <= 0 {
		return []polypath.Path{polypath.FromPolyline(polypath.Polyline{Points: pts}, style)}
	}
	widths := handdrawn.WidthProfile(pts, strokeWidth, float64(variableWidth), float64(taper), cfg.Seed+uint64(seedOffset))
	return handdrawn.SegmentPathsByWidth(pts, widths, style, math.Max(strokeWidth*0.1, 0.05))
}

// smoothWidths blends a per-vertex width array with its 3-tap moving
// average by smoothing in [0,1], so centerline width_smoothing can damp
// abrupt distance-transform width changes between neighboring vertices.
func smoothWidths(widths []float64, smoothing float64) []float64 {
	if smoothing <= 0 || len(widths) < 3 {
		return widths
	}
	if smoothing > 1 {
		smoothing = 1
	}
	avg := make([]float64, len(widths))
	for i := range widths {
		lo, hi := i-1, i+1
		sum, count := widths[i], 1.0
		if lo >= 0 {
			sum += widths[lo]
			count++
		}
		if hi < len(widths) {
			sum += widths[hi]
			count++
		}
		avg[i] = sum / count
	}
	out := make([]float64, len(widths))
	for i := range widths {
		out[i] = widths[i]*(1-smoothing) + avg[i]*smoothing
	}
	return out
}

// handdrawnSegmentsWithSmoothing splits a polyline into per-segment
// stroked paths honoring a supplied per-vertex width array (e.g. derived
// from the distance transform), after applying width_smoothing.
func handdrawnSegmentsWithSmoothing(pts []geom.Point, widths []float64, style polypath.Style, smoothing float64) []polypath.Path {
	widths = smoothWidths(widths, smoothing)
	return handdrawn.SegmentPathsByWidth(pts, widths, style, math.Max(style.StrokeWidth*0.1, 0.05))
}
