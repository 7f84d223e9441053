package trace

import (
	"github.com/lindqvist/vectorize/internal/polypath"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// SkeletonBranch is one traced branch of a thinned skeleton, with the
// average stroke half-width (from the distance transform) it should be
// rendered at.
type SkeletonBranch struct {
	Line        polypath.Polyline
	AvgHalfWidth float64
}

// TraceSkeleton walks a Zhang-Suen-thinned skeleton mask into branches
// between endpoints and junctions (or closed loops for a ring skeleton),
// prunes branches under minBranchLength, and attaches each branch's
// average centerline half-width sampled from dt (the original
// foreground mask's distance transform).
func TraceSkeleton(skeleton *rasterimg.Mask, dt *rasterimg.Gray, minBranchLength float64) []SkeletonBranch {
	w, h := skeleton.Width, skeleton.Height
	chains := walkChains(w, h, func(x, y int) bool { return skeleton.At(x, y) })

	out := make([]SkeletonBranch, 0, len(chains))
	for _, c := range chains {
		if c.Length() < minBranchLength {
			continue
		}
		c = c.Dedup(1e-6)
		var sum float64
		for _, p := range c.Points {
			sum += dt.At(int(p.X), int(p.Y))
		}
		avg := 0.0
		if len(c.Points) > 0 {
			avg = sum / float64(len(c.Points))
		}
		out = append(out, SkeletonBranch{Line: c, AvgHalfWidth: avg})
	}
	return out
}
