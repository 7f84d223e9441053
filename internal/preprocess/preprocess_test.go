package preprocess

import (
	"testing"

	"github.com/lindqvist/vectorize/internal/execctx"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

func solidImage(w, h int, r, g, b, a uint8) *rasterimg.Image {
	pix := make([]uint8, w*h*4)
	for i := 0; i < w*h; i++ {
		pix[i*4+0] = r
		pix[i*4+1] = g
		pix[i*4+2] = b
		pix[i*4+3] = a
	}
	return &rasterimg.Image{Width: w, Height: h, Pix: pix}
}

func TestGaussianBlurPreservesSolidColor(t *testing.T) {
	pool := execctx.New(1)
	img := solidImage(16, 16, 100, 150, 200, 255)
	out := GaussianBlur(pool, img, 2.0)
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 100 || out.Pix[i+1] != 150 || out.Pix[i+2] != 200 {
			t.Fatalf("blurring a solid color image should not change it, got %v at %d", out.Pix[i:i+4], i)
		}
	}
}

func TestBilateralFilterPreservesSolidColor(t *testing.T) {
	pool := execctx.New(1)
	img := solidImage(16, 16, 10, 20, 30, 255)
	out := BilateralFilter(pool, img, 2.0, 10.0)
	if out.Pix[0] != 10 || out.Pix[1] != 20 || out.Pix[2] != 30 {
		t.Fatalf("bilateral filter changed a solid color image: %v", out.Pix[:4])
	}
}

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

func TestOtsuThresholdSeparatesCheckerboard(t *testing.T) {
	img := checkerboard(16, 16, 8)
	gray := img.ToGray()
	mask, thresh := OtsuThreshold(gray, false)
	if thresh >= 255 {
		t.Fatalf("expected a threshold separating 0 from 255, got %d", thresh)
	}
	fgCount := 0
	for _, b := range mask.Bits {
		if b {
			fgCount++
		}
	}
	if fgCount == 0 || fgCount == len(mask.Bits) {
		t.Fatalf("expected a mixed foreground/background split, got %d/%d foreground", fgCount, len(mask.Bits))
	}
}

func TestSauvolaThresholdOptimizedMatchesNaive(t *testing.T) {
	img := checkerboard(32, 32, 6)
	gray := img.ToGray()
	optimized := SauvolaThreshold(gray, 15, 0.4, true)
	naive := SauvolaThreshold(gray, 15, 0.4, false)
	mismatches := 0
	for i := range optimized.Bits {
		if optimized.Bits[i] != naive.Bits[i] {
			mismatches++
		}
	}
	if mismatches > 0 {
		t.Fatalf("optimized and naive Sauvola thresholds disagree on %d/%d pixels", mismatches, len(optimized.Bits))
	}
}

func TestDilateGrowsForeground(t *testing.T) {
	mask := rasterimg.NewMask(5, 5)
	mask.Set(2, 2, true)
	out := Dilate(mask, 1)
	count := 0
	for _, b := range out.Bits {
		if b {
			count++
		}
	}
	if count != 9 {
		t.Fatalf("expected 3x3=9 pixels set after one dilation of a single point, got %d", count)
	}
}

func TestOpenRemovesSpeckle(t *testing.T) {
	mask := rasterimg.NewMask(9, 9)
	mask.Set(4, 4, true)
	out := Open(mask, 1)
	for _, b := range out.Bits {
		if b {
			t.Fatal("expected a lone speckle to be removed by opening")
		}
	}
}

func TestSobelGradientZeroOnFlatImage(t *testing.T) {
	pool := execctx.New(1)
	img := solidImage(8, 8, 50, 50, 50, 255)
	grad := SobelGradient(pool, img.ToGray())
	for _, m := range grad.Magnitude {
		if m != 0 {
			t.Fatalf("expected zero gradient on a flat image, got %v", m)
		}
	}
}

func TestSobelGradientDetectsEdge(t *testing.T) {
	pool := execctx.New(1)
	img := checkerboard(16, 16, 8)
	grad := SobelGradient(pool, img.ToGray())
	if MaxMagnitude(grad) == 0 {
		t.Fatal("expected nonzero gradient across a checkerboard edge")
	}
}
