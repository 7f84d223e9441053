package trace

import "github.com/lindqvist/vectorize/internal/polypath"

// LinkEdges walks a (already hysteresis-thresholded) Canny edge mask into
// polylines, splitting at junction pixels so no chain passes through a
// branch point, and discards any chain shorter than minLen pixels.
func LinkEdges(width, height int, isEdge func(x, y int) bool, minLen float64) []polypath.Polyline {
	chains := walkChains(width, height, isEdge)
	out := make([]polypath.Polyline, 0, len(chains))
	for _, c := range chains {
		if c.Length() < minLen {
			continue
		}
		out = append(out, c.Dedup(1e-6))
	}
	return out
}
