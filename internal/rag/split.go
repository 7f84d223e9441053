package rag

import (
	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/geom"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// kMeans2Lab splits a cluster's member pixels into two groups by k=2
// k-means in LAB space, seeded from the two members farthest apart in
// LAB (a cheap, deterministic seeding that avoids needing an RNG here).
func kMeans2Lab(lab *rasterimg.LabField, members []int) (groupA, groupB []int) {
	w := lab.Width
	if len(members) < 2 {
		return members, nil
	}

	colorOf := func(idx int) geom.Lab { return lab.At(idx%w, idx/w) }

	// Seed centers from the two farthest-apart members (bounded scan for
	// determinism and to avoid O(n^2) on huge clusters).
	seedA, seedB := members[0], members[1]
	bestDist := -1.0
	limit := len(members)
	if limit > 200 {
		limit = 200
	}
	for i := 0; i < limit; i++ {
		for j := i + 1; j < limit; j++ {
			d := geom.DeltaE76(colorOf(members[i]), colorOf(members[j]))
			if d > bestDist {
				bestDist = d
				seedA, seedB = members[i], members[j]
			}
		}
	}
	centerA := colorOf(seedA)
	centerB := colorOf(seedB)

	var assign []bool // true => group B
	for iter := 0; iter < 10; iter++ {
		assign = make([]bool, len(members))
		var sa, sb geom.Lab
		var na, nb int
		for i, idx := range members {
			c := colorOf(idx)
			if geom.DeltaE76(c, centerA) <= geom.DeltaE76(c, centerB) {
				sa.L += c.L
				sa.A += c.A
				sa.B += c.B
				na++
			} else {
				assign[i] = true
				sb.L += c.L
				sb.A += c.A
				sb.B += c.B
				nb++
			}
		}
		if na > 0 {
			centerA = geom.Lab{L: sa.L / float64(na), A: sa.A / float64(na), B: sa.B / float64(na)}
		}
		if nb > 0 {
			centerB = geom.Lab{L: sb.L / float64(nb), A: sb.A / float64(nb), B: sb.B / float64(nb)}
		}
	}

	for i, idx := range members {
		if assign[i] {
			groupB = append(groupB, idx)
		} else {
			groupA = append(groupA, idx)
		}
	}
	return groupA, groupB
}

// ForceSplitOversaturated finds every surviving cluster whose internal
// max ΔE exceeds splitDeltaE and replaces it with two new clusters from a
// k=2 LAB k-means split, as the design calls for to correct RAG merges
// that produced overly heterogeneous regions.
func (g *Graph) ForceSplitOversaturated(lab *rasterimg.LabField, splitDeltaE float64) {
	for idx := 0; idx < len(g.Clusters); idx++ {
		if !g.Alive[idx] {
			continue
		}
		c := g.Clusters[idx]
		if len(c.Members) < 4 {
			continue
		}
		if MaxInternalDeltaE(lab, c) <= splitDeltaE {
			continue
		}
		groupA, groupB := kMeans2Lab(lab, c.Members)
		if len(groupA) == 0 || len(groupB) == 0 {
			continue
		}
		g.Clusters[idx] = rebuildCluster(lab, groupA)
		for _, m := range groupA {
			g.Labels[m] = idx
		}
		newIdx := len(g.Clusters)
		newCluster := rebuildCluster(lab, groupB)
		g.Clusters = append(g.Clusters, newCluster)
		g.Alive = append(g.Alive, true)
		g.neighbors = append(g.neighbors, map[int]bool{})
		for _, m := range groupB {
			g.Labels[m] = newIdx
		}
		g.rebuildNeighborsFor(idx)
		g.rebuildNeighborsFor(newIdx)
	}
}

func rebuildCluster(lab *rasterimg.LabField, members []int) detect.Cluster {
	w := lab.Width
	var sx, sy, sl, sa, sb float64
	for _, idx := range members {
		x, y := idx%w, idx/w
		c := lab.At(x, y)
		sx += float64(x)
		sy += float64(y)
		sl += c.L
		sa += c.A
		sb += c.B
	}
	n := float64(len(members))
	return detect.Cluster{
		CX: sx / n, CY: sy / n,
		L: sl / n, A: sa / n, B: sb / n,
		Members: members,
	}
}

// rebuildNeighborsFor recomputes cluster idx's adjacency set by scanning
// its own member pixels' 4-neighborhoods, since a split invalidates the
// incremental neighbor bookkeeping used by ordinary merges.
func (g *Graph) rebuildNeighborsFor(idx int) {
	w, h := g.Width, g.Height
	g.neighbors[idx] = map[int]bool{}
	for _, m := range g.Clusters[idx].Members {
		x, y := m%w, m/w
		for _, n := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+n[0], y+n[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			nl := g.Labels[ny*w+nx]
			if nl != idx {
				g.neighbors[idx][nl] = true
				g.neighbors[nl][idx] = true
			}
		}
	}
}
