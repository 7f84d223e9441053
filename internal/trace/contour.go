// Package trace implements the pipeline's tracing stage: Moore-neighbor
// contour following (with hole detection), skeleton branch extraction,
// and Canny edge linking with hysteresis.
package trace

import (
	"log/slog"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// clockwise 8-neighbor offsets starting at North, matching the rotation
// order the Moore-neighbor walker scans in.
var mooreDirs = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

func dirIndex(from, to [2]int) int {
	dx, dy := to[0]-from[0], to[1]-from[1]
	for i, d := range mooreDirs {
		if d[0] == dx && d[1] == dy {
			return i
		}
	}
	return -1
}

// Contour is one traced boundary: an outer boundary or a hole, in pixel
// coordinates, always closed.
type Contour struct {
	Points []geom.Point
	IsHole bool
}

// mooreTrace walks the boundary of the connected region defined by
// isForeground starting at start, whose west neighbor is background
// (so backtrack=West is a valid starting condition). It returns the
// traced boundary pixel centers in walk order. maxVertices is a safety
// cap; if exceeded the contour is abandoned and (nil, false) is returned
// after logging.
func mooreTrace(isForeground func(x, y int) bool, start [2]int, maxVertices int) ([][2]int, bool) {
	cur := start
	backtrack := [2]int{start[0] - 1, start[1]}
	startCur, startBack := cur, backtrack

	points := [][2]int{cur}

	// Degenerate case: an isolated single pixel with no foreground
	// neighbors at all.
	hasNeighbor := false
	for _, d := range mooreDirs {
		if isForeground(cur[0]+d[0], cur[1]+d[1]) {
			hasNeighbor = true
			break
		}
	}
	if !hasNeighbor {
		return points, true
	}

	for {
		bdir := dirIndex(cur, backtrack)
		if bdir < 0 {
			bdir = 6 // West, defensive fallback
		}
		startIdx := (bdir - 1 + 8) % 8

		foundIdx := -1
		var next [2]int
		for step := 0; step < 8; step++ {
			idx := (startIdx + step) % 8
			cand := [2]int{cur[0] + mooreDirs[idx][0], cur[1] + mooreDirs[idx][1]}
			if isForeground(cand[0], cand[1]) {
				foundIdx = idx
				next = cand
				break
			}
		}
		if foundIdx < 0 {
			// Fully isolated after all (shouldn't happen given hasNeighbor
			// check, but guards against inconsistent masks).
			break
		}
		newBacktrackIdx := (foundIdx - 1 + 8) % 8
		newBacktrack := [2]int{cur[0] + mooreDirs[newBacktrackIdx][0], cur[1] + mooreDirs[newBacktrackIdx][1]}

		cur = next
		backtrack = newBacktrack

		if cur == startCur && backtrack == startBack {
			break
		}
		points = append(points, cur)
		if len(points) > maxVertices {
			slog.Warn("contour exceeded safety cap, abandoning", "start", start, "cap", maxVertices)
			return nil, false
		}
	}
	return points, true
}

// findComponents groups 4-connected foreground pixels of mask into
// components, returning each component's member pixel set; callers pick
// the Moore-neighbor start point with leftmostTopmost.
func findComponents(mask *rasterimg.Mask, foreground bool) [][][2]int {
	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	var components [][][2]int

	get := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.At(x, y) == foreground
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || !get(x, y) {
				continue
			}
			var members [][2]int
			queue := [][2]int{{x, y}}
			visited[idx] = true
			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				members = append(members, p)
				for _, d := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					nx, ny := p[0]+d[0], p[1]+d[1]
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					ni := ny*w + nx
					if visited[ni] || !get(nx, ny) {
						continue
					}
					visited[ni] = true
					queue = append(queue, [2]int{nx, ny})
				}
			}
			components = append(components, members)
		}
	}
	return components
}

func leftmostTopmost(members [][2]int) [2]int {
	best := members[0]
	for _, p := range members[1:] {
		if p[1] < best[1] || (p[1] == best[1] && p[0] < best[0]) {
			best = p
		}
	}
	return best
}

// touchesBorder reports whether any member pixel lies on the image edge.
func touchesBorder(members [][2]int, w, h int) bool {
	for _, p := range members {
		if p[0] == 0 || p[1] == 0 || p[0] == w-1 || p[1] == h-1 {
			return true
		}
	}
	return false
}

// TraceContours finds every foreground connected component's outer
// boundary and every fully-enclosed background hole within it, via
// Moore-neighbor boundary walking. Hole winding is reversed relative to
// outer boundaries so even-odd fill rules render correctly.
func TraceContours(mask *rasterimg.Mask) []Contour {
	w, h := mask.Width, mask.Height
	isFg := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return mask.At(x, y)
	}
	isBg := func(x, y int) bool { return !isFg(x, y) }

	var contours []Contour

	perimeterCapFor := func(members [][2]int) int {
		return len(members)*4 + 16
	}

	fgComponents := findComponents(mask, true)
	for _, members := range fgComponents {
		start := leftmostTopmost(members)
		cap := perimeterCapFor(members)
		pts, ok := mooreTrace(isFg, start, cap)
		if !ok {
			continue
		}
		contours = append(contours, Contour{Points: toPoints(pts), IsHole: false})
	}

	bgComponents := findComponents(mask, false)
	for _, members := range bgComponents {
		if touchesBorder(members, w, h) {
			continue // not enclosed: this is the outer background, not a hole
		}
		start := leftmostTopmost(members)
		cap := perimeterCapFor(members)
		pts, ok := mooreTrace(isBg, start, cap)
		if !ok {
			continue
		}
		pts = reverse2D(pts)
		contours = append(contours, Contour{Points: toPoints(pts), IsHole: true})
	}

	return contours
}

func toPoints(pts [][2]int) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Point{X: float64(p[0]), Y: float64(p[1])}
	}
	return out
}

func reverse2D(pts [][2]int) [][2]int {
	out := make([][2]int, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
