package detect

import "github.com/lindqvist/vectorize/internal/rasterimg"

// zsNeighbors returns the 8 neighbors of (x,y) in clockwise order starting
// at north (P2..P9 in the classical Zhang-Suen numbering), as 0/1 ints.
func zsNeighbors(mask *rasterimg.Mask, x, y int) [8]int {
	coords := [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
	var n [8]int
	for i, c := range coords {
		if mask.At(x+c[0], y+c[1]) {
			n[i] = 1
		}
	}
	return n
}

// transitions counts 0->1 transitions in the circular sequence P2..P9,P2.
func transitions(n [8]int) int {
	count := 0
	for i := 0; i < 8; i++ {
		if n[i] == 0 && n[(i+1)%8] == 1 {
			count++
		}
	}
	return count
}

func sumN(n [8]int) int {
	s := 0
	for _, v := range n {
		s += v
	}
	return s
}

// ZhangSuenSkeleton thins a binary foreground mask to a 1-pixel-wide
// skeleton, iterating the classical two-subpass algorithm until a full
// pass removes no pixels.
func ZhangSuenSkeleton(mask *rasterimg.Mask) *rasterimg.Mask {
	w, h := mask.Width, mask.Height
	cur := rasterimg.NewMask(w, h)
	copy(cur.Bits, mask.Bits)

	for {
		removedAny := false

		removedAny = zsSubPass(cur, w, h, 0) || removedAny
		removedAny = zsSubPass(cur, w, h, 1) || removedAny

		if !removedAny {
			break
		}
	}
	return cur
}

func zsSubPass(cur *rasterimg.Mask, w, h, step int) bool {
	var toRemove []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !cur.At(x, y) {
				continue
			}
			n := zsNeighbors(cur, x, y)
			b := sumN(n)
			if b < 2 || b > 6 {
				continue
			}
			if transitions(n) != 1 {
				continue
			}
			p2, p4, p6, p8 := n[0], n[2], n[4], n[6]
			if step == 0 {
				if p2*p4*p6 != 0 {
					continue
				}
				if p4*p6*p8 != 0 {
					continue
				}
			} else {
				if p2*p4*p8 != 0 {
					continue
				}
				if p2*p6*p8 != 0 {
					continue
				}
			}
			toRemove = append(toRemove, y*w+x)
		}
	}
	for _, idx := range toRemove {
		cur.Bits[idx] = false
	}
	return len(toRemove) > 0
}
