package backend

import (
	"math"
	"sort"

	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/deadline"
	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/fit"
	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
	"github.com/lindqvist/vectorize/internal/preprocess"
	"github.com/lindqvist/vectorize/internal/rag"
	"github.com/lindqvist/vectorize/internal/rasterimg"
	"github.com/lindqvist/vectorize/internal/svgdoc"
	"github.com/lindqvist/vectorize/internal/trace"
)

const (
	gradientFillTryThreshold    = 5.0
	gradientFillAcceptThreshold = 3.5
)

// RunSuperpixel implements the Superpixel backend: bilateral denoise,
// LAB SLIC, RAG merge to a single target region count (gated by
// merge_delta_e), per-region boundary tracing with holes, and a
// flat/gradient fill-selection pass.
func RunSuperpixel(img *rasterimg.Image, cfg config.Config, dl deadline.Checker) (*svgdoc.Document, error) {
	pool := newPool(cfg)
	doc := svgdoc.New(img.Width, img.Height, int(cfg.SvgPrecision))

	denoised := preprocess.BilateralFilter(pool, img, 2.0, 12.0)
	lab := denoised.ToLab()
	if err := dl.Check("superpixel:denoise"); err != nil {
		return nil, err
	}

	grad := preprocess.SobelGradient(pool, denoised.ToGray())
	if err := dl.Check("superpixel:gradient"); err != nil {
		return nil, err
	}

	cellPx := cfg.SuperpixelCellSize
	if cfg.NumSuperpixels > 0 {
		cellPx = (img.Width * img.Height) / cfg.NumSuperpixels
	}
	if cellPx <= 0 {
		cellPx = 1200
	}
	slic := detect.RunSLIC(pool, denoised, lab, grad, cellPx, float64(cfg.Compactness), cfg.SlicIterations, cfg.SuperpixelInitPattern, cfg.Seed)
	if err := dl.Check("superpixel:slic"); err != nil {
		return nil, err
	}

	g := rag.Build(slic, grad)
	g.MergeToTarget(cfg.ResolvedMergeDeltaE(), 1)
	if err := dl.Check("superpixel:merge"); err != nil {
		return nil, err
	}
	g.ForceSplitOversaturated(lab, cfg.ResolvedSplitDeltaE())
	labels, clusters := g.Compact()
	if err := dl.Check("superpixel:split"); err != nil {
		return nil, err
	}

	diag := imageDiagonal(img.Width, img.Height)
	epsilon := cfg.BoundaryEpsilonFor(diag)
	strokeWidth := cfg.ResolvedStrokeWidth(img.Width, img.Height)

	for idx, c := range clusters {
		mask := clusterMask(img.Width, img.Height, labels, idx)
		contours := trace.TraceContours(mask)
		if len(contours) == 0 {
			continue
		}

		var fillRule string
		hasHole := false
		for _, ct := range contours {
			if ct.IsHole {
				hasHole = true
			}
		}
		if hasHole {
			fillRule = "evenodd"
		}

		fill := selectFill(lab, c, img.Width)
		var segs []polypath.Segment
		for _, ct := range contours {
			pts := ct.Points
			if cfg.SimplifyBoundaries {
				pts = fit.DouglasPeucker(pts, epsilon)
			}
			var sub polypath.Path
			if len(pts) >= 3 {
				corners := fit.CornerIndices(pts, true, 60)
				sub = fit.FitBezier(pts, true, corners, fit.DefaultBezierTolerance)
			} else {
				sub = polypath.FromPolyline(polypath.Polyline{Points: pts, Closed: true}, polypath.Style{})
			}
			segs = append(segs, sub.Segments...)
		}
		style := polypath.Style{FillRule: fillRule}
		if cfg.StrokeRegions {
			style.StrokeColor = "#000000"
			style.StrokeWidth = strokeWidth
		}
		path := polypath.Path{Segments: segs, Style: style}
		switch fill.kind {
		case fillLinear:
			doc.AddGradientFill(path, fill.x1, fill.y1, fill.x2, fill.y2, fill.colorA, fill.colorB)
		case fillRadial:
			doc.AddRadialGradientFill(path, fill.cx, fill.cy, fill.r, fill.colorA, fill.colorB)
		default:
			path.Style.FillColor = fill.flat
			doc.AddFill(path)
		}
	}

	return doc, nil
}

// fillKind distinguishes the three fills selectFill can return.
type fillKind int

const (
	fillFlat fillKind = iota
	fillLinear
	fillRadial
)

// fillDecision is the outcome of selectFill: a flat color, a linear
// gradient spanning the region's dominant axis, or a radial gradient
// from centroid to the 90th-percentile-distance member pixel.
type fillDecision struct {
	kind           fillKind
	flat           string
	x1, y1, x2, y2 float64 // linear gradient endpoints
	cx, cy, r      float64 // radial gradient center/radius
	colorA, colorB string
}

func lerpLab(a, b geom.Lab, frac float64) geom.Lab {
	return geom.Lab{
		L: a.L + (b.L-a.L)*frac,
		A: a.A + (b.A-a.A)*frac,
		B: a.B + (b.B-a.B)*frac,
	}
}

// selectFill resolves a region's fill per the spec's fallback chain: a
// flat mean-LAB color, unless the region's internal ΔE is high enough to
// try a linear gradient along its first principal axis (10th to 90th
// percentile projection, accepted if residual ΔE drops below the accept
// threshold); if that is rejected, try a radial gradient from the
// centroid to the 90th-percentile-distance member (accepted under the
// same threshold);
// otherwise keep the flat mean color.
func selectFill(lab *rasterimg.LabField, c detect.Cluster, width int) fillDecision {
	meanLab := geom.Lab{L: c.L, A: c.A, B: c.B}
	maxDelta := rag.MaxInternalDeltaE(lab, c)
	if maxDelta <= gradientFillTryThreshold {
		return fillDecision{kind: fillFlat, flat: labHex(meanLab)}
	}

	axis := pcaAxis1D(c.Members, width)
	type member struct {
		t, dist float64
		x, y    float64
		c       geom.Lab
	}
	members := make([]member, 0, len(c.Members))
	for _, idx := range c.Members {
		x, y := float64(idx%width), float64(idx/width)
		t := (x-c.CX)*axis.X + (y-c.CY)*axis.Y
		members = append(members, member{
			t: t, dist: math.Hypot(x-c.CX, y-c.CY),
			x: x, y: y, c: lab.At(idx%width, idx/width),
		})
	}

	byAxis := append([]member(nil), members...)
	sort.Slice(byAxis, func(i, j int) bool { return byAxis[i].t < byAxis[j].t })
	p10 := byAxis[int(float64(len(byAxis)-1)*0.1)]
	p90 := byAxis[int(float64(len(byAxis)-1)*0.9)]

	linearResidual := 0.0
	for _, m := range byAxis {
		frac := 0.5
		if p90.t != p10.t {
			frac = geom.Clamp01((m.t - p10.t) / (p90.t - p10.t))
		}
		if d := geom.DeltaE76(m.c, lerpLab(p10.c, p90.c, frac)); d > linearResidual {
			linearResidual = d
		}
	}
	if linearResidual < gradientFillAcceptThreshold {
		return fillDecision{
			kind: fillLinear,
			x1:   p10.x, y1: p10.y, x2: p90.x, y2: p90.y,
			colorA: labHex(p10.c), colorB: labHex(p90.c),
		}
	}

	byDist := append([]member(nil), members...)
	sort.Slice(byDist, func(i, j int) bool { return byDist[i].dist < byDist[j].dist })
	edge := byDist[int(float64(len(byDist)-1)*0.9)]
	if edge.dist > 0 {
		radialResidual := 0.0
		for _, m := range byDist {
			frac := geom.Clamp01(m.dist / edge.dist)
			if d := geom.DeltaE76(m.c, lerpLab(meanLab, edge.c, frac)); d > radialResidual {
				radialResidual = d
			}
		}
		if radialResidual < gradientFillAcceptThreshold {
			return fillDecision{
				kind: fillRadial,
				cx:   c.CX, cy: c.CY, r: edge.dist,
				colorA: labHex(meanLab), colorB: labHex(edge.c),
			}
		}
	}

	return fillDecision{kind: fillFlat, flat: labHex(meanLab)}
}
