package detect

import (
	"math"

	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/rng"
)

// PoissonDiskSample generates points within [0,width) x [0,height) with
// minimum pairwise distance r, using Bridson's algorithm with k candidate
// attempts per active point. Deterministic for a given seed: every RNG
// draw derives its sub-seed from (seed, draw index) via internal/rng, so
// results are identical between parallel and sequential builds.
func PoissonDiskSample(width, height int, r float64, k int, seed uint64) []geom.Point {
	if r <= 0 {
		r = 1
	}
	if k <= 0 {
		k = 30
	}
	cellSize := r / math.Sqrt2
	gridW := int(math.Ceil(float64(width)/cellSize)) + 1
	gridH := int(math.Ceil(float64(height)/cellSize)) + 1
	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}

	var points []geom.Point
	var active []int
	drawIdx := 0

	randF := func() float64 {
		rr := rng.New(seed, drawIdx)
		drawIdx++
		return rr.Float64()
	}

	gridCoord := func(p geom.Point) (int, int) {
		return int(p.X / cellSize), int(p.Y / cellSize)
	}

	fits := func(p geom.Point) bool {
		if p.X < 0 || p.Y < 0 || p.X >= float64(width) || p.Y >= float64(height) {
			return false
		}
		gx, gy := gridCoord(p)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := gx+dx, gy+dy
				if nx < 0 || ny < 0 || nx >= gridW || ny >= gridH {
					continue
				}
				idx := grid[ny*gridW+nx]
				if idx < 0 {
					continue
				}
				if p.DistSq(points[idx]) < r*r {
					return false
				}
			}
		}
		return true
	}

	addPoint := func(p geom.Point) int {
		idx := len(points)
		points = append(points, p)
		gx, gy := gridCoord(p)
		grid[gy*gridW+gx] = idx
		active = append(active, idx)
		return idx
	}

	first := geom.Point{X: randF() * float64(width), Y: randF() * float64(height)}
	addPoint(first)

	for len(active) > 0 {
		ai := int(randF() * float64(len(active)))
		if ai >= len(active) {
			ai = len(active) - 1
		}
		origin := points[active[ai]]
		found := false
		for i := 0; i < k; i++ {
			angle := randF() * 2 * math.Pi
			dist := r * (1 + randF())
			cand := geom.Point{X: origin.X + dist*math.Cos(angle), Y: origin.Y + dist*math.Sin(angle)}
			if fits(cand) {
				addPoint(cand)
				found = true
				break
			}
		}
		if !found {
			active = append(active[:ai], active[ai+1:]...)
		}
	}
	return points
}
