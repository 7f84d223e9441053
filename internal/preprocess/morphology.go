package preprocess

import "github.com/lindqvist/vectorize/internal/rasterimg"

// Dilate grows the foreground region by iterations passes of a 3x3
// structuring element (a pixel becomes foreground if any of its 8
// neighbors, or itself, is foreground).
func Dilate(mask *rasterimg.Mask, iterations int) *rasterimg.Mask {
	cur := mask
	for it := 0; it < iterations; it++ {
		next := rasterimg.NewMask(cur.Width, cur.Height)
		for y := 0; y < cur.Height; y++ {
			for x := 0; x < cur.Width; x++ {
				set := cur.At(x, y)
				if !set {
					for dy := -1; dy <= 1 && !set; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if cur.At(x+dx, y+dy) {
								set = true
								break
							}
						}
					}
				}
				next.Set(x, y, set)
			}
		}
		cur = next
	}
	return cur
}

// Erode shrinks the foreground region by iterations passes of a 3x3
// structuring element (a pixel stays foreground only if all 8 neighbors,
// and itself, are foreground).
func Erode(mask *rasterimg.Mask, iterations int) *rasterimg.Mask {
	cur := mask
	for it := 0; it < iterations; it++ {
		next := rasterimg.NewMask(cur.Width, cur.Height)
		for y := 0; y < cur.Height; y++ {
			for x := 0; x < cur.Width; x++ {
				set := cur.At(x, y)
				if set {
					for dy := -1; dy <= 1 && set; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if !cur.At(x+dx, y+dy) {
								set = false
								break
							}
						}
					}
				}
				next.Set(x, y, set)
			}
		}
		cur = next
	}
	return cur
}

// Open performs erosion followed by dilation, removing small foreground
// speckles without changing the overall shape of larger regions.
func Open(mask *rasterimg.Mask, iterations int) *rasterimg.Mask {
	return Dilate(Erode(mask, iterations), iterations)
}

// Close performs dilation followed by erosion, filling small background
// holes without changing the overall shape of larger regions.
func Close(mask *rasterimg.Mask, iterations int) *rasterimg.Mask {
	return Erode(Dilate(mask, iterations), iterations)
}
