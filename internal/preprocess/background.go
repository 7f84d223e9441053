package preprocess

import (
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// OtsuThreshold computes the global bimodal threshold (0..255) that
// maximizes between-class variance over the grayscale histogram, and
// returns a foreground mask (true = foreground). Background is assumed to
// be the majority class unless invertMajority is set, letting callers
// override which side is "background" when the image is mostly subject.
func OtsuThreshold(gray *rasterimg.Gray, invertMajority bool) (*rasterimg.Mask, uint8) {
	hist := make([]int, 256)
	total := gray.Width * gray.Height
	for _, v := range gray.Pix {
		b := int(v)
		if b < 0 {
			b = 0
		}
		if b > 255 {
			b = 255
		}
		hist[b]++
	}

	var sumAll float64
	for i, c := range hist {
		sumAll += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVar float64
	threshold := 0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sumAll - sumB) / wF
		betweenVar := wB * wF * (mB - mF) * (mB - mF)
		if betweenVar > maxVar {
			maxVar = betweenVar
			threshold = t
		}
	}

	// Determine which side of the threshold is the majority (background).
	below, above := 0, 0
	for i := 0; i <= threshold; i++ {
		below += hist[i]
	}
	above = total - below
	backgroundIsBelow := below >= above
	if invertMajority {
		backgroundIsBelow = !backgroundIsBelow
	}

	mask := rasterimg.NewMask(gray.Width, gray.Height)
	for y := 0; y < gray.Height; y++ {
		for x := 0; x < gray.Width; x++ {
			isBelow := gray.At(x, y) <= float64(threshold)
			isForeground := isBelow != backgroundIsBelow
			mask.Set(x, y, isForeground)
		}
	}
	return mask, uint8(threshold)
}

// RemoveBackground produces a foreground mask using either Otsu's global
// threshold or Sauvola's local adaptive threshold, then dilates or erodes
// it according to strength in [0,1]: 0 preserves the raw mask boundary,
// 1 aggressively grows the foreground region to trade preservation for
// aggressiveness in dropping background.
func RemoveBackground(gray *rasterimg.Gray, useAdaptive bool, windowSize int, k float64, strength float64) *rasterimg.Mask {
	var mask *rasterimg.Mask
	if useAdaptive {
		mask = SauvolaThreshold(gray, windowSize, k, true)
	} else {
		mask, _ = OtsuThreshold(gray, false)
	}

	iterations := int(strength * 4)
	if iterations <= 0 {
		return mask
	}
	return Dilate(mask, iterations)
}
