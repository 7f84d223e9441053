package detect

import (
	"testing"

	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/preprocess"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

func checkerboard(w, h, cell int) *rasterimg.Image {
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			black := ((x/cell)+(y/cell))%2 == 0
			var v uint8 = 255
			if black {
				v = 0
			}
			pix[i+0], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 255
		}
	}
	return &rasterimg.Image{Width: w, Height: h, Pix: pix}
}

func TestCannyEdgesOnBlankImageIsEmpty(t *testing.T) {
	pool := execctx.New(1)
	pix := make([]uint8, 64*64*4)
	for i := range pix {
		pix[i] = 255
	}
	img := &rasterimg.Image{Width: 64, Height: 64, Pix: pix}
	mask := CannyEdges(pool, img.ToGray(), 1.4, 0.4*0.23, 0.23)
	for _, b := range mask.Bits {
		if b {
			t.Fatal("expected no edges on a blank white image")
		}
	}
}

func TestCannyEdgesOnCheckerboardFindsSomething(t *testing.T) {
	pool := execctx.New(1)
	img := checkerboard(32, 32, 8)
	mask := CannyEdges(pool, img.ToGray(), 1.0, 0.1, 0.3)
	count := 0
	for _, b := range mask.Bits {
		if b {
			count++
		}
	}
	if count == 0 {
		t.Fatal("expected to detect edges on a checkerboard")
	}
}

func TestDistanceTransformZeroOnBackground(t *testing.T) {
	mask := rasterimg.NewMask(10, 10)
	dt := DistanceTransform(mask)
	for _, v := range dt.Pix {
		if v != 0 {
			t.Fatalf("expected all-zero distance transform on an empty mask, got %v", v)
		}
	}
}

func TestDistanceTransformDiskCenterIsFarthest(t *testing.T) {
	mask := rasterimg.NewMask(20, 20)
	cx, cy, radius := 10, 10, 8
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				mask.Set(x, y, true)
			}
		}
	}
	dt := DistanceTransform(mask)
	centerDist := dt.At(cx, cy)
	edgeDist := dt.At(cx+radius-1, cy)
	if centerDist <= edgeDist {
		t.Fatalf("expected the disk center to be farther from the boundary than a near-edge pixel, got center=%v edge=%v", centerDist, edgeDist)
	}
}

func TestZhangSuenSkeletonOfDiskIsThin(t *testing.T) {
	mask := rasterimg.NewMask(41, 41)
	cx, cy, radius := 20, 20, 15
	for y := 0; y < 41; y++ {
		for x := 0; x < 41; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				mask.Set(x, y, true)
			}
		}
	}
	skel := ZhangSuenSkeleton(mask)
	count := 0
	for _, b := range skel.Bits {
		if b {
			count++
		}
	}
	if count == 0 {
		t.Fatal("expected a nonempty skeleton")
	}
	if count > 10 {
		t.Fatalf("expected the skeleton of a disk to collapse near its centroid, got %d pixels", count)
	}
}

func TestHexInitNotRefined(t *testing.T) {
	pool := execctx.New(1)
	img := checkerboard(64, 64, 8)
	grad := preprocess.SobelGradient(pool, img.ToGray())
	centers := InitCenters(64, 64, 10, config.InitHexagonal, 0)
	refined := refineToGradientMinimum(centers, grad, config.InitHexagonal)
	for i := range centers {
		if refined[i] != centers[i] {
			t.Fatalf("expected hex-init centers to be left untouched by refinement, center %d moved from %v to %v", i, centers[i], refined[i])
		}
	}
}

func TestSquareInitIsRefined(t *testing.T) {
	pool := execctx.New(1)
	img := checkerboard(64, 64, 8)
	grad := preprocess.SobelGradient(pool, img.ToGray())
	centers := InitCenters(64, 64, 10, config.InitSquare, 0)
	refined := refineToGradientMinimum(centers, grad, config.InitSquare)
	if len(refined) != len(centers) {
		t.Fatal("refinement changed the number of centers")
	}
}

func TestPoissonDiskSampleRespectsMinDistance(t *testing.T) {
	pts := PoissonDiskSample(100, 100, 8, 30, 42)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if pts[i].Dist(pts[j]) < 8-1e-6 {
				t.Fatalf("points %d and %d violate minimum distance: %v", i, j, pts[i].Dist(pts[j]))
			}
		}
	}
	if len(pts) == 0 {
		t.Fatal("expected at least one sampled point")
	}
}

func TestPoissonDiskSampleDeterministic(t *testing.T) {
	a := PoissonDiskSample(50, 50, 6, 30, 7)
	b := PoissonDiskSample(50, 50, 6, 30, 7)
	if len(a) != len(b) {
		t.Fatalf("expected deterministic point count, got %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("expected deterministic point %d, got %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRunSLICConnectivity(t *testing.T) {
	pool := execctx.New(1)
	img := checkerboard(64, 64, 16)
	lab := img.ToLab()
	grad := preprocess.SobelGradient(pool, img.ToGray())
	result := RunSLIC(pool, img, lab, grad, 600, 10, 4, config.InitHexagonal, 1)
	if len(result.Clusters) == 0 {
		t.Fatal("expected at least one cluster")
	}
	for ci, c := range result.Clusters {
		if len(c.Members) == 0 {
			continue
		}
		if !is4Connected(c.Members, 64) {
			t.Fatalf("cluster %d is not 4-connected", ci)
		}
	}
}

func is4Connected(members []int, w int) bool {
	set := make(map[int]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	visited := make(map[int]bool, len(members))
	queue := []int{members[0]}
	visited[members[0]] = true
	for len(queue) > 0 {
		idx := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		x, y := idx%w, idx/w
		for _, n := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			ni := (y+n[1])*w + (x + n[0])
			if set[ni] && !visited[ni] {
				visited[ni] = true
				queue = append(queue, ni)
			}
		}
	}
	return len(visited) == len(members)
}
