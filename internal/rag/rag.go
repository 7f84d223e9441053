// Package rag implements the Region Adjacency Graph: neighbor discovery
// between SLIC clusters, gradient-weighted edge costs, ascending-cost
// merging toward a target region count, and force-splitting of clusters
// whose internal color variance is too high. Clusters are stored in a
// flat indexed array; neighbor sets hold indices, never pointers, so the
// graph has no cyclic references to manage.
package rag

import (
	"sort"

	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// Graph owns the cluster array plus the edge set. Clusters are tombstoned
// (Alive=false) on merge rather than removed mid-pass, so indices stay
// stable until a final Compact call renumbers survivors.
type Graph struct {
	Width, Height int
	Labels        []int
	Clusters      []detect.Cluster
	Alive         []bool
	neighbors     []map[int]bool
	edgeCost      map[[2]int]float64
}

// Build constructs the adjacency graph from a SLIC result and its
// gradient field: an edge connects two clusters whose member pixels touch
// 4-connectedly, and its cost is the maximum gradient magnitude sampled
// across the shared boundary.
func Build(result *detect.SLICResult, grad *rasterimg.GradientField) *Graph {
	w, h := result.Width, result.Height
	n := len(result.Clusters)
	g := &Graph{
		Width: w, Height: h,
		Labels:    append([]int(nil), result.Labels...),
		Clusters:  append([]detect.Cluster(nil), result.Clusters...),
		Alive:     make([]bool, n),
		neighbors: make([]map[int]bool, n),
		edgeCost:  map[[2]int]float64{},
	}
	for i := range g.Alive {
		g.Alive[i] = len(g.Clusters[i].Members) > 0
		g.neighbors[i] = map[int]bool{}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			l1 := g.Labels[y*w+x]
			if x+1 < w {
				l2 := g.Labels[y*w+x+1]
				if l1 != l2 {
					g.addEdge(l1, l2, grad, x, y)
				}
			}
			if y+1 < h {
				l2 := g.Labels[(y+1)*w+x]
				if l1 != l2 {
					g.addEdge(l1, l2, grad, x, y)
				}
			}
		}
	}
	return g
}

func edgeKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func (g *Graph) addEdge(a, b int, grad *rasterimg.GradientField, x, y int) {
	if a < 0 || b < 0 || a == b {
		return
	}
	g.neighbors[a][b] = true
	g.neighbors[b][a] = true
	mag, _ := grad.At(x, y)
	key := edgeKey(a, b)
	if mag > g.edgeCost[key] {
		g.edgeCost[key] = mag
	}
}

// RegionCount returns the number of surviving (non-tombstoned) clusters.
func (g *Graph) RegionCount() int {
	n := 0
	for _, alive := range g.Alive {
		if alive {
			n++
		}
	}
	return n
}

// MergeToTarget merges neighbor pairs in ascending edge cost while both
// regions' mean ΔE is below mergeDeltaE, stopping once target region
// count is reached.
func (g *Graph) MergeToTarget(mergeDeltaE float64, target int) {
	type edge struct {
		a, b int
		cost float64
	}
	var edges []edge
	for k, cost := range g.edgeCost {
		edges = append(edges, edge{a: k[0], b: k[1], cost: cost})
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].cost < edges[j].cost })

	parent := make([]int, len(g.Clusters))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	for _, e := range edges {
		if g.RegionCount() <= target {
			break
		}
		ra, rb := find(e.a), find(e.b)
		if ra == rb {
			continue
		}
		if !g.Alive[ra] || !g.Alive[rb] {
			continue
		}
		ca, cb := g.Clusters[ra], g.Clusters[rb]
		deltaE := geom.DeltaE76(geom.Lab{L: ca.L, A: ca.A, B: ca.B}, geom.Lab{L: cb.L, A: cb.A, B: cb.B})
		if deltaE >= mergeDeltaE {
			continue
		}
		g.mergeInto(ra, rb)
		if g.Alive[ra] {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}
}

// mergeInto folds the smaller cluster rb's members and neighbor edges
// into ra, then tombstones rb.
func (g *Graph) mergeInto(ra, rb int) {
	if len(g.Clusters[rb].Members) > len(g.Clusters[ra].Members) {
		ra, rb = rb, ra
	}
	na := float64(len(g.Clusters[ra].Members))
	nb := float64(len(g.Clusters[rb].Members))
	total := na + nb
	if total > 0 {
		g.Clusters[ra].L = (g.Clusters[ra].L*na + g.Clusters[rb].L*nb) / total
		g.Clusters[ra].A = (g.Clusters[ra].A*na + g.Clusters[rb].A*nb) / total
		g.Clusters[ra].B = (g.Clusters[ra].B*na + g.Clusters[rb].B*nb) / total
		g.Clusters[ra].CX = (g.Clusters[ra].CX*na + g.Clusters[rb].CX*nb) / total
		g.Clusters[ra].CY = (g.Clusters[ra].CY*na + g.Clusters[rb].CY*nb) / total
	}
	g.Clusters[ra].Members = append(g.Clusters[ra].Members, g.Clusters[rb].Members...)
	for _, idx := range g.Clusters[rb].Members {
		g.Labels[idx] = ra
	}
	for nb2 := range g.neighbors[rb] {
		if nb2 == ra {
			continue
		}
		g.neighbors[ra][nb2] = true
		g.neighbors[nb2][ra] = true
		delete(g.neighbors[nb2], rb)
		key := edgeKey(rb, nb2)
		if cost, ok := g.edgeCost[key]; ok {
			newKey := edgeKey(ra, nb2)
			if cost > g.edgeCost[newKey] {
				g.edgeCost[newKey] = cost
			}
			delete(g.edgeCost, key)
		}
	}
	delete(g.neighbors[ra], rb)
	g.neighbors[rb] = map[int]bool{}
	g.Clusters[rb].Members = nil
	g.Alive[rb] = false
}

// MaxInternalDeltaE returns the largest ΔE between any member pixel's
// color and the cluster mean, used to decide whether to force-split.
func MaxInternalDeltaE(lab *rasterimg.LabField, c detect.Cluster) float64 {
	mean := geom.Lab{L: c.L, A: c.A, B: c.B}
	maxDE := 0.0
	w := lab.Width
	for _, idx := range c.Members {
		x, y := idx%w, idx/w
		de := geom.DeltaE76(lab.At(x, y), mean)
		if de > maxDE {
			maxDE = de
		}
	}
	return maxDE
}

// Compact renumbers surviving clusters into a dense [0,n) index space and
// returns the new SLICResult-shaped label/cluster pair.
func (g *Graph) Compact() (labels []int, clusters []detect.Cluster) {
	remap := make(map[int]int)
	for i, alive := range g.Alive {
		if alive {
			remap[i] = len(clusters)
			clusters = append(clusters, g.Clusters[i])
		}
	}
	labels = make([]int, len(g.Labels))
	for i, l := range g.Labels {
		labels[i] = remap[l]
	}
	return labels, clusters
}
