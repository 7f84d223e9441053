package rag

import (
	"testing"

	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/detect"
	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/preprocess"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

func twoColorImage(w, h int) *rasterimg.Image {
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			if x < w/2 {
				pix[i+0], pix[i+1], pix[i+2], pix[i+3] = 255, 0, 0, 255
			} else {
				pix[i+0], pix[i+1], pix[i+2], pix[i+3] = 0, 0, 255, 255
			}
		}
	}
	return &rasterimg.Image{Width: w, Height: h, Pix: pix}
}

func TestMergeToTargetMergesByColor(t *testing.T) {
	pool := execctx.New(1)
	img := twoColorImage(128, 128)
	lab := img.ToLab()
	grad := preprocess.SobelGradient(pool, img.ToGray())
	slicResult := detect.RunSLIC(pool, img, lab, grad, 600, 10, 4, config.InitHexagonal, 1)

	g := Build(slicResult, grad)
	initialCount := g.RegionCount()
	if initialCount < 2 {
		t.Fatalf("expected multiple superpixels before merging, got %d", initialCount)
	}

	g.MergeToTarget(2.0, 2)
	if g.RegionCount() != 2 {
		t.Fatalf("expected exactly 2 surviving regions after merge-to-target, got %d", g.RegionCount())
	}

	_, clusters := g.Compact()
	if len(clusters) != 2 {
		t.Fatalf("expected 2 compacted clusters, got %d", len(clusters))
	}
}

func TestForceSplitOversaturated(t *testing.T) {
	pool := execctx.New(1)
	img := twoColorImage(64, 64)
	lab := img.ToLab()
	grad := preprocess.SobelGradient(pool, img.ToGray())
	// Force a single cluster over the whole image by requesting a huge cell size.
	slicResult := detect.RunSLIC(pool, img, lab, grad, 3000, 30, 1, config.InitSquare, 1)

	g := Build(slicResult, grad)
	before := g.RegionCount()
	g.ForceSplitOversaturated(lab, 3.0)
	after := g.RegionCount()
	if after <= before {
		t.Fatalf("expected force-split to increase region count from a high-ΔE cluster, before=%d after=%d", before, after)
	}
}
