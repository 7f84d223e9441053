package trace

import (
	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/polypath"
)

var eightNeighbors = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

type pixelSet struct {
	w, h int
	on   []bool
}

func newPixelSet(w, h int, isOn func(x, y int) bool) *pixelSet {
	ps := &pixelSet{w: w, h: h, on: make([]bool, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if isOn(x, y) {
				ps.on[y*w+x] = true
			}
		}
	}
	return ps
}

func (p *pixelSet) get(x, y int) bool {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return false
	}
	return p.on[y*p.w+x]
}

func (p *pixelSet) degree(x, y int) int {
	d := 0
	for _, n := range eightNeighbors {
		if p.get(x+n[0], y+n[1]) {
			d++
		}
	}
	return d
}

type edgeKeyPix [2][2]int

func chainEdgeKey(a, b [2]int) edgeKeyPix {
	if a[0] > b[0] || (a[0] == b[0] && a[1] > b[1]) {
		a, b = b, a
	}
	return edgeKeyPix{a, b}
}

// walkChains extracts maximal simple paths through a thin (skeleton-like
// or Canny-edge-like) binary mask: paths run between endpoints (degree 1)
// and junctions (degree >= 3), splitting at every junction, plus any
// pixel-disjoint closed loops with no junctions or endpoints at all.
func walkChains(w, h int, isOn func(x, y int) bool) []polypath.Polyline {
	ps := newPixelSet(w, h, isOn)
	visitedTransition := map[edgeKeyPix]bool{}
	visitedLoop := make([]bool, w*h)

	isNode := func(x, y int) bool {
		d := ps.degree(x, y)
		return d == 1 || d >= 3
	}

	var chains []polypath.Polyline

	walkFrom := func(start [2]int, first [2]int) []geom.Point {
		pts := []geom.Point{{X: float64(start[0]), Y: float64(start[1])}}
		prev := start
		cur := first
		for {
			visitedTransition[chainEdgeKey(prev, cur)] = true
			pts = append(pts, geom.Point{X: float64(cur[0]), Y: float64(cur[1])})
			if isNode(cur[0], cur[1]) {
				break
			}
			// cur has degree 2 (or 0/1 dead end); find the unvisited neighbor to continue.
			nextFound := false
			var next [2]int
			for _, n := range eightNeighbors {
				cand := [2]int{cur[0] + n[0], cur[1] + n[1]}
				if !ps.get(cand[0], cand[1]) || cand == prev {
					continue
				}
				if visitedTransition[chainEdgeKey(cur, cand)] {
					continue
				}
				next = cand
				nextFound = true
				break
			}
			if !nextFound {
				break
			}
			prev, cur = cur, next
		}
		return pts
	}

	// Pass 1: walk every branch starting from a node pixel.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !ps.get(x, y) || !isNode(x, y) {
				continue
			}
			start := [2]int{x, y}
			for _, n := range eightNeighbors {
				next := [2]int{x + n[0], y + n[1]}
				if !ps.get(next[0], next[1]) {
					continue
				}
				key := chainEdgeKey(start, next)
				if visitedTransition[key] {
					continue
				}
				pts := walkFrom(start, next)
				if len(pts) >= 2 {
					chains = append(chains, polypath.Polyline{Points: pts})
				}
			}
		}
	}

	// Pass 2: any remaining pixels form closed loops of degree-2 pixels
	// with no junction or endpoint (e.g. a traced circle's skeleton).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !ps.get(x, y) || visitedLoop[y*w+x] {
				continue
			}
			already := false
			for _, n := range eightNeighbors {
				cand := [2]int{x + n[0], y + n[1]}
				if ps.get(cand[0], cand[1]) && visitedTransition[chainEdgeKey([2]int{x, y}, cand)] {
					already = true
				}
			}
			if already {
				visitedLoop[y*w+x] = true
				continue
			}
			var first [2]int
			found := false
			for _, n := range eightNeighbors {
				cand := [2]int{x + n[0], y + n[1]}
				if ps.get(cand[0], cand[1]) {
					first = cand
					found = true
					break
				}
			}
			if !found {
				visitedLoop[y*w+x] = true
				continue // isolated pixel, not a meaningful chain
			}
			start := [2]int{x, y}
			pts := []geom.Point{{X: float64(x), Y: float64(y)}}
			prev, cur := start, first
			for {
				visitedTransition[chainEdgeKey(prev, cur)] = true
				visitedLoop[cur[1]*w+cur[0]] = true
				if cur == start {
					break
				}
				pts = append(pts, geom.Point{X: float64(cur[0]), Y: float64(cur[1])})
				var next [2]int
				nextFound := false
				for _, n := range eightNeighbors {
					cand := [2]int{cur[0] + n[0], cur[1] + n[1]}
					if !ps.get(cand[0], cand[1]) || cand == prev {
						continue
					}
					if visitedTransition[chainEdgeKey(cur, cand)] {
						continue
					}
					next = cand
					nextFound = true
					break
				}
				if !nextFound {
					break
				}
				prev, cur = cur, next
			}
			visitedLoop[y*w+x] = true
			if len(pts) >= 3 {
				chains = append(chains, polypath.Polyline{Points: pts, Closed: true})
			}
		}
	}

	return chains
}
