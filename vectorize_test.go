package vectorize

import (
	"errors"
	"strings"
	"testing"

	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/errs"
)

func solidImage(w, h int, r, g, b, a uint8) ImageView {
	pix := make([]uint8, 4*w*h)
	for i := 0; i < w*h; i++ {
		pix[4*i+0] = r
		pix[4*i+1] = g
		pix[4*i+2] = b
		pix[4*i+3] = a
	}
	return ImageView{Width: w, Height: h, Pix: pix}
}

func checkerboard(w, h int) ImageView {
	pix := make([]uint8, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			v := uint8(0)
			if (x/8+y/8)%2 == 0 {
				v = 255
			}
			pix[4*i+0] = v
			pix[4*i+1] = v
			pix[4*i+2] = v
			pix[4*i+3] = 255
		}
	}
	return ImageView{Width: w, Height: h, Pix: pix}
}

func twoColorHalves(w, h int) ImageView {
	pix := make([]uint8, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x < w/2 {
				pix[4*i+0], pix[4*i+1], pix[4*i+2] = 220, 30, 30
			} else {
				pix[4*i+0], pix[4*i+1], pix[4*i+2] = 30, 30, 220
			}
			pix[4*i+3] = 255
		}
	}
	return ImageView{Width: w, Height: h, Pix: pix}
}

func diskImage(w, h int) ImageView {
	pix := make([]uint8, 4*w*h)
	cx, cy, r := w/2, h/2, w/3
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			dx, dy := x-cx, y-cy
			v := uint8(255)
			if dx*dx+dy*dy < r*r {
				v = 0
			}
			pix[4*i+0] = v
			pix[4*i+1] = v
			pix[4*i+2] = v
			pix[4*i+3] = 255
		}
	}
	return ImageView{Width: w, Height: h, Pix: pix}
}

func TestVectorizeBlankWhiteImageProducesEmptySVG(t *testing.T) {
	view := solidImage(64, 64, 255, 255, 255, 255)
	cfg := DefaultConfig()
	cfg.Backend = config.BackendEdge

	out, err := Vectorize(view, cfg)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !strings.Contains(out, "<svg") {
		t.Fatalf("expected an svg envelope, got %q", out)
	}
	if strings.Contains(out, "<path") {
		t.Errorf("expected no paths on a blank image, got %q", out)
	}
}

func TestVectorizeCheckerboardEdgeBackend(t *testing.T) {
	view := checkerboard(64, 64)
	cfg := DefaultConfig()
	cfg.Backend = config.BackendEdge

	out, err := Vectorize(view, cfg)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !strings.Contains(out, "<path") {
		t.Errorf("expected edge paths on a checkerboard, got none")
	}
}

func TestVectorizeDiskCenterlineBackend(t *testing.T) {
	view := diskImage(96, 96)
	cfg := DefaultConfig()
	cfg.Backend = config.BackendCenterline

	out, err := Vectorize(view, cfg)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !strings.Contains(out, "<svg") {
		t.Errorf("expected an svg envelope")
	}
}

func TestVectorizeTwoRegionSuperpixelMerge(t *testing.T) {
	view := twoColorHalves(80, 80)
	cfg := DefaultConfig()
	cfg.Backend = config.BackendSuperpixel
	cfg.SuperpixelCellSize = 600
	cfg.NumSuperpixels = 0

	out, err := Vectorize(view, cfg)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !strings.Contains(out, "<path") {
		t.Errorf("expected at least one filled region, got none")
	}
}

func TestVectorizeGradientDotsBackend(t *testing.T) {
	view := checkerboard(80, 80)
	cfg := DefaultConfig()
	cfg.Backend = config.BackendDots

	out, err := Vectorize(view, cfg)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !strings.Contains(out, "<circle") {
		t.Errorf("expected dot circles, got none")
	}
}

func TestVectorizeTimeoutReturnsTimeoutError(t *testing.T) {
	view := checkerboard(256, 256)
	cfg := DefaultConfig()
	cfg.Backend = config.BackendSuperpixel
	cfg.MaxProcessingTimeMs = 1

	_, err := Vectorize(view, cfg)
	if err == nil {
		t.Skip("pipeline completed before the 1ms deadline elapsed; timing-dependent")
	}
	var te *errs.TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected a *errs.TimeoutError, got %T: %v", err, err)
	}
}

func TestVectorizeRejectsInvalidConfig(t *testing.T) {
	view := solidImage(16, 16, 0, 0, 0, 255)
	cfg := DefaultConfig()
	cfg.Detail = 2.0

	if _, err := Vectorize(view, cfg); err == nil {
		t.Error("expected an error for out-of-range detail")
	}
}

func TestVectorizeRejectsMismatchedPixelBuffer(t *testing.T) {
	cfg := DefaultConfig()
	view := ImageView{Width: 10, Height: 10, Pix: make([]uint8, 4)}

	if _, err := Vectorize(view, cfg); err == nil {
		t.Error("expected an error for a mismatched pixel buffer length")
	}
}

func TestVectorizeRejectsOversizedImage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxImageSize = 32
	view := solidImage(64, 64, 0, 0, 0, 255)

	if _, err := Vectorize(view, cfg); err == nil {
		t.Error("expected an error for an image exceeding max_image_size")
	}
}

func TestVectorizeIncludesMetadataComment(t *testing.T) {
	view := solidImage(16, 16, 10, 20, 30, 255)
	cfg := DefaultConfig()
	cfg.IncludeMetadata = true

	out, err := Vectorize(view, cfg)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if !strings.Contains(out, "config-hash:") {
		t.Errorf("expected a config-hash comment, got %q", out)
	}
}
