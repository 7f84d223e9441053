package detect

import (
	"math"

	"github.com/lindqvist/vectorize/internal/audit"
	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// Cluster is a SLIC superpixel center plus its accumulated state.
// Neighbor sets live in the RegionAdjacencyGraph, never here, keeping
// cluster indices (not pointers) as the only cross-reference.
type Cluster struct {
	CX, CY   float64
	L, A, B  float64
	Members  []int // flat pixel indices y*w+x
}

// SLICResult is the output of the clustering stage: a per-pixel label
// buffer and the cluster array it indexes into.
type SLICResult struct {
	Width, Height int
	Labels        []int
	Clusters      []Cluster
}

// slicCellSize clamps cell_px (interpreted as a target area in pixels) to
// [600,3000] and returns the nominal superpixel diameter s = sqrt(cell_px).
func slicCellSize(cellPx int) float64 {
	if cellPx < 600 {
		cellPx = 600
	}
	if cellPx > 3000 {
		cellPx = 3000
	}
	return math.Sqrt(float64(cellPx))
}

func initCentersSquare(w, h int, s float64) []geom.Point {
	var pts []geom.Point
	for y := s / 2; y < float64(h); y += s {
		for x := s / 2; x < float64(w); x += s {
			pts = append(pts, geom.Point{X: x, Y: y})
		}
	}
	return pts
}

func initCentersHex(w, h int, s float64) []geom.Point {
	var pts []geom.Point
	rowHeight := s * math.Sqrt(3) / 2
	row := 0
	for y := s / 2; y < float64(h); y += rowHeight {
		xOffset := 0.0
		if row%2 == 1 {
			xOffset = s / 2
		}
		for x := s/2 + xOffset; x < float64(w); x += s {
			pts = append(pts, geom.Point{X: x, Y: y})
		}
		row++
	}
	return pts
}

// InitCenters places initial SLIC cluster centers per the configured grid
// pattern. For Poisson, s (diameter) is used as the minimum distance.
func InitCenters(w, h int, s float64, pattern config.SuperpixelInitPattern, seed uint64) []geom.Point {
	switch pattern {
	case config.InitSquare:
		return initCentersSquare(w, h, s)
	case config.InitPoissonDisk:
		return PoissonDiskSample(w, h, s, 30, seed)
	default:
		return initCentersHex(w, h, s)
	}
}

// refineToGradientMinimum perturbs each center to the lowest-gradient
// pixel in its 3x3 neighborhood. Per the spec's fixed bug class, this must
// run ONLY for the square init pattern; hex and Poisson initializations
// skip refinement entirely to preserve their pattern characteristics, and
// that skip is recorded in the audit log so the override is visible to a
// debug build.
func refineToGradientMinimum(centers []geom.Point, grad *rasterimg.GradientField, pattern config.SuperpixelInitPattern) []geom.Point {
	if pattern != config.InitSquare {
		audit.Record("slic.refine", "center_refinement", "skipped for non-square init pattern "+string(pattern))
		return centers
	}
	out := make([]geom.Point, len(centers))
	for i, c := range centers {
		bestX, bestY := int(c.X), int(c.Y)
		bestMag, _ := grad.At(bestX, bestY)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				mag, _ := grad.At(int(c.X)+dx, int(c.Y)+dy)
				if mag < bestMag {
					bestMag = mag
					bestX, bestY = int(c.X)+dx, int(c.Y)+dy
				}
			}
		}
		out[i] = geom.Point{X: float64(bestX), Y: float64(bestY)}
	}
	return out
}

// slicDistance computes D = sqrt(ΔE_lab^2 + (m/s)^2 * d_xy^2).
func slicDistance(lab geom.Lab, cx, cy float64, px, py float64, clLab geom.Lab, m, s float64) float64 {
	deltaE := geom.DeltaE76(lab, clLab)
	dx := px - cx
	dy := py - cy
	dxy := math.Sqrt(dx*dx + dy*dy)
	ratio := m / s
	return math.Sqrt(deltaE*deltaE + ratio*ratio*dxy*dxy)
}

// RunSLIC performs the full clustering loop: assignment/update for iters
// rounds, followed by connectivity enforcement. pool is used to
// parallelize the per-pixel label assignment across image rows.
func RunSLIC(pool *execctx.Pool, img *rasterimg.Image, lab *rasterimg.LabField, grad *rasterimg.GradientField, cellPx int, compactness float64, iters int, pattern config.SuperpixelInitPattern, seed uint64) *SLICResult {
	w, h := img.Width, img.Height
	s := slicCellSize(cellPx)

	centers := InitCenters(w, h, s, pattern, seed)
	centers = refineToGradientMinimum(centers, grad, pattern)

	labels := make([]int, w*h)
	distances := make([]float64, w*h)
	for i := range labels {
		labels[i] = -1
	}

	clusterLab := make([]geom.Lab, len(centers))
	clusterPos := make([]geom.Point, len(centers))
	for i, c := range centers {
		clusterPos[i] = c
		clusterLab[i] = lab.At(int(c.X), int(c.Y))
	}

	window := int(2 * s)
	cellSize := s
	if cellSize < 1 {
		cellSize = 1
	}

	for iter := 0; iter < iters; iter++ {
		// Bucket centers into a uniform grid (cell width s) so each pixel's
		// row-worker can enumerate only the handful of centers close enough
		// to matter, without ever touching another row's output.
		buckets := make(map[[2]int][]int, len(centers))
		for ci := range centers {
			gx := int(math.Floor(clusterPos[ci].X / cellSize))
			gy := int(math.Floor(clusterPos[ci].Y / cellSize))
			key := [2]int{gx, gy}
			buckets[key] = append(buckets[key], ci)
		}

		// Parallelize over rows, not centers: row y only ever writes
		// labels[y*w:(y+1)*w] and distances[y*w:(y+1)*w], so two workers
		// never touch the same slot and the result does not depend on
		// goroutine scheduling order.
		pool.ForEach(h, func(y int) {
			gy := int(math.Floor(float64(y) / cellSize))
			for x := 0; x < w; x++ {
				gx := int(math.Floor(float64(x) / cellSize))
				bestDist := math.Inf(1)
				bestLabel := -1
				for dgy := -3; dgy <= 3; dgy++ {
					for dgx := -3; dgx <= 3; dgx++ {
						for _, ci := range buckets[[2]int{gx + dgx, gy + dgy}] {
							cx, cy := clusterPos[ci].X, clusterPos[ci].Y
							if math.Abs(float64(x)-cx) > float64(window) || math.Abs(float64(y)-cy) > float64(window) {
								continue
							}
							d := slicDistance(lab.At(x, y), cx, cy, float64(x), float64(y), clusterLab[ci], compactness, s)
							if d < bestDist {
								bestDist = d
								bestLabel = ci
							}
						}
					}
				}
				idx := y*w + x
				if bestLabel >= 0 {
					distances[idx] = bestDist
					labels[idx] = bestLabel
				}
			}
		})

		sums := make([]struct {
			sx, sy, sl, sa, sb float64
			n                  int
		}, len(centers))
		for idx, cl := range labels {
			if cl < 0 {
				continue
			}
			x := idx % w
			y := idx / w
			px := lab.At(x, y)
			sums[cl].sx += float64(x)
			sums[cl].sy += float64(y)
			sums[cl].sl += px.L
			sums[cl].sa += px.A
			sums[cl].sb += px.B
			sums[cl].n++
		}
		for ci := range centers {
			if sums[ci].n == 0 {
				continue
			}
			n := float64(sums[ci].n)
			clusterPos[ci] = geom.Point{X: sums[ci].sx / n, Y: sums[ci].sy / n}
			clusterLab[ci] = geom.Lab{L: sums[ci].sl / n, A: sums[ci].sa / n, B: sums[ci].sb / n}
		}
	}

	labels = enforceConnectivity(labels, w, h, len(centers))

	clusters := buildClusters(labels, w, h, lab, len(centers))
	return &SLICResult{Width: w, Height: h, Labels: labels, Clusters: clusters}
}

// enforceConnectivity keeps the largest 4-connected component of each
// label and relabels every other component to the label of the adjacent
// kept component it shares the most boundary with, so each surviving
// cluster's member set is 4-connected.
func enforceConnectivity(labels []int, w, h, numClusters int) []int {
	visited := make([]bool, w*h)
	out := make([]int, w*h)
	copy(out, labels)

	type component struct {
		label int
		cells []int
	}
	var components []component
	compOf := make([]int, w*h)

	for start := 0; start < w*h; start++ {
		if visited[start] {
			continue
		}
		label := labels[start]
		var cells []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			cells = append(cells, idx)
			compOf[idx] = len(components)
			x, y := idx%w, idx/w
			neighbors := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
			for _, n := range neighbors {
				nx, ny := x+n[0], y+n[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if visited[ni] || labels[ni] != label {
					continue
				}
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
		components = append(components, component{label: label, cells: cells})
	}

	// Keep the largest component of each label; relabel every other
	// component to the label of the kept neighbor component it shares the
	// most 4-connected boundary with.
	largest := map[int]int{}
	for i, comp := range components {
		if j, ok := largest[comp.label]; !ok || len(comp.cells) > len(components[j].cells) {
			largest[comp.label] = i
		}
	}
	for i, comp := range components {
		if largest[comp.label] == i {
			continue
		}
		neighborCounts := map[int]int{}
		for _, idx := range comp.cells {
			x, y := idx%w, idx/w
			for _, n := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				nx, ny := x+n[0], y+n[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				ni := ny*w + nx
				if nl := labels[ni]; nl != comp.label && largest[nl] == compOf[ni] {
					neighborCounts[nl]++
				}
			}
		}
		bestLabel, bestCount := comp.label, -1
		for l, c := range neighborCounts {
			if c > bestCount {
				bestLabel, bestCount = l, c
			}
		}
		if bestCount >= 0 {
			for _, idx := range comp.cells {
				out[idx] = bestLabel
			}
		}
	}
	return out
}

func buildClusters(labels []int, w, h int, lab *rasterimg.LabField, numClusters int) []Cluster {
	clusters := make([]Cluster, numClusters)
	for idx, l := range labels {
		if l < 0 || l >= numClusters {
			continue
		}
		clusters[l].Members = append(clusters[l].Members, idx)
	}
	for ci := range clusters {
		members := clusters[ci].Members
		if len(members) == 0 {
			continue
		}
		var sx, sy, sl, sa, sb float64
		for _, idx := range members {
			x, y := idx%w, idx/w
			px := lab.At(x, y)
			sx += float64(x)
			sy += float64(y)
			sl += px.L
			sa += px.A
			sb += px.B
		}
		n := float64(len(members))
		clusters[ci].CX = sx / n
		clusters[ci].CY = sy / n
		clusters[ci].L = sl / n
		clusters[ci].A = sa / n
		clusters[ci].B = sb / n
	}
	return clusters
}
