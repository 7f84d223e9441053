package backend

import (
	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/deadline"
	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/fit"
	"github.com/lindqvist/vectorize/internal/polypath"
	"github.com/lindqvist/vectorize/internal/preprocess"
	"github.com/lindqvist/vectorize/internal/rasterimg"
	"github.com/lindqvist/vectorize/internal/svgdoc"
	"github.com/lindqvist/vectorize/internal/trace"
)

// RunCenterline implements the Centerline backend: adaptive threshold,
// morphological cleanup, distance transform, Zhang-Suen skeletonization,
// branch tracing/pruning, simplify/fit, optional width modulation from
// the distance transform.
func RunCenterline(img *rasterimg.Image, cfg config.Config, dl deadline.Checker) (*svgdoc.Document, error) {
	doc := svgdoc.New(img.Width, img.Height, int(cfg.SvgPrecision))

	gray := img.ToGray()
	if err := dl.Check("centerline:grayscale"); err != nil {
		return nil, err
	}

	window := cfg.AdaptiveThresholdWindowSize
	if window < 3 {
		window = 31
	}
	mask := preprocess.SauvolaThreshold(gray, window, float64(cfg.AdaptiveThresholdK), cfg.AdaptiveThresholdUseOptimized)
	mask = preprocess.Open(mask, 1)
	mask = preprocess.Close(mask, 1)
	if err := dl.Check("centerline:threshold"); err != nil {
		return nil, err
	}

	dt := detect.DistanceTransform(mask)
	skeleton := detect.ZhangSuenSkeleton(mask)
	if err := dl.Check("centerline:skeletonize"); err != nil {
		return nil, err
	}

	branches := trace.TraceSkeleton(skeleton, dt, float64(cfg.MinBranchLength))
	if err := dl.Check("centerline:branch_trace"); err != nil {
		return nil, err
	}

	diag := imageDiagonal(img.Width, img.Height)
	epsilon := cfg.DouglasPeuckerEpsilonFor(diag)
	baseStrokeWidth := cfg.ResolvedStrokeWidth(img.Width, img.Height)
	_, variableWidth, taper := cfg.HandDrawnParams()

	for i, branch := range branches {
		style := styleForStroke("#000000", baseStrokeWidth)
		pts := applyHandDrawn(branch.Line.Points, baseStrokeWidth, cfg, i)

		if cfg.EnableWidthModulation {
			simplified := fit.DouglasPeucker(pts, epsilon)
			widths := make([]float64, len(simplified))
			for j := range simplified {
				widths[j] = branch.AvgHalfWidth * 2 * float64(cfg.WidthMultiplier)
				if widths[j] <= 0 {
					widths[j] = baseStrokeWidth
				}
			}
			for _, p := range handdrawnSegmentsWithSmoothing(simplified, widths, style, float64(cfg.WidthSmoothing)) {
				doc.AddStroke(p)
			}
			continue
		}

		if variableWidth > 0 || taper > 0 {
			simplified := fit.DouglasPeucker(pts, epsilon)
			for _, p := range maybeWidthStylePaths(simplified, baseStrokeWidth, cfg, style, i) {
				doc.AddStroke(p)
			}
			continue
		}

		pl := polypath.Polyline{Points: pts, Closed: branch.Line.Closed}
		doc.AddStroke(simplifyAndFit(pl, epsilon, true, fit.DefaultBezierTolerance, style))
	}

	return doc, nil
}
