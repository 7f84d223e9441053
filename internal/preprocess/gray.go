package preprocess

import "github.com/lindqvist/vectorize/internal/rasterimg"

// grayBuf is a thin local view over rasterimg.Gray, named shorter for the
// integral-image and threshold math in this package.
type grayBuf struct {
	w, h int
	pix  []float64
}

func fromGray(g *rasterimg.Gray) *grayBuf {
	return &grayBuf{w: g.Width, h: g.Height, pix: g.Pix}
}

func (g *grayBuf) at(x, y int) float64 {
	return g.pix[y*g.w+x]
}
