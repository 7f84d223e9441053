package backend

import (
	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/deadline"
	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/fit"
	"github.com/lindqvist/vectorize/internal/polypath"
	"github.com/lindqvist/vectorize/internal/rasterimg"
	"github.com/lindqvist/vectorize/internal/svgdoc"
	"github.com/lindqvist/vectorize/internal/trace"
)

// RunEdge implements the Edge backend: grayscale, Gaussian blur, Canny,
// edge linking, simplify/fit, optional hand-drawn stylization, emitted
// as stroked unfilled paths.
func RunEdge(img *rasterimg.Image, cfg config.Config, dl deadline.Checker) (*svgdoc.Document, error) {
	pool := newPool(cfg)
	doc := svgdoc.New(img.Width, img.Height, int(cfg.SvgPrecision))

	gray := img.ToGray()
	if err := dl.Check("edge:grayscale"); err != nil {
		return nil, err
	}

	// CannyEdges already blurs internally (sigma 1.4) before taking
	// gradients, so grayscale is handed to it directly rather than
	// pre-blurring here and double-softening the image.
	low, high := cfg.CannyThresholds()
	edgeMask := detect.CannyEdges(pool, gray, 1.4, low, high)
	if err := dl.Check("edge:canny"); err != nil {
		return nil, err
	}

	minLen := cfg.MinPolylineLength()
	chains := trace.LinkEdges(img.Width, img.Height, func(x, y int) bool { return edgeMask.At(x, y) }, minLen)
	if err := dl.Check("edge:link"); err != nil {
		return nil, err
	}

	diag := imageDiagonal(img.Width, img.Height)
	epsilon := cfg.DouglasPeuckerEpsilonFor(diag)
	strokeWidth := cfg.ResolvedStrokeWidth(img.Width, img.Height)
	style := styleForStroke("#000000", strokeWidth)

	_, variableWidth, taper := cfg.HandDrawnParams()
	for i, chain := range chains {
		pts := applyHandDrawn(chain.Points, strokeWidth, cfg, i)
		if variableWidth > 0 || taper > 0 {
			simplified := fit.DouglasPeucker(pts, epsilon)
			for _, p := range maybeWidthStylePaths(simplified, strokeWidth, cfg, style, i) {
				doc.AddStroke(p)
			}
			continue
		}
		pl := polypath.Polyline{Points: pts, Closed: chain.Closed}
		doc.AddStroke(simplifyAndFit(pl, epsilon, true, fit.DefaultBezierTolerance, style))
	}

	return doc, nil
}
