// Package rasterimg holds the core's own RGBA8 image type and the
// read-only conversions every stage needs (grayscale, LAB, tiling). It
// intentionally has no decode/encode capability: file I/O belongs to the
// CLI/WASM collaborators, per the core's scope.
package rasterimg

import (
	"image"

	"github.com/lindqvist/vectorize/internal/geom"
)

// Image is the opaque owner of a decoded RGBA8 pixel buffer. It is
// read-only after construction.
type Image struct {
	Width, Height int
	Pix           []uint8 // len == 4*Width*Height, row-major, non-premultiplied
}

// New constructs an Image, copying pix so the caller's buffer can be
// reused or discarded freely afterward.
func New(width, height int, pix []uint8) *Image {
	cp := make([]uint8, len(pix))
	copy(cp, pix)
	return &Image{Width: width, Height: height, Pix: cp}
}

// FromNRGBA adapts a decoded stdlib image into the core's Image type, the
// seam collaborators (CLI, tests) cross to hand pixels to Vectorize.
func FromNRGBA(src *image.NRGBA) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, 4*w*h)
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], src.Pix[srcOff:srcOff+w*4])
	}
	return &Image{Width: w, Height: h, Pix: pix}
}

// ToNRGBA converts back to a stdlib image, used by tests that want to
// exercise stdlib-based assertions (e.g. png encoding in example code).
func (im *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width, im.Height))
	copy(out.Pix, im.Pix)
	return out
}

// At returns the RGBA channels at (x,y), clamping out-of-range coordinates
// to the image border the way every sampling stage expects.
func (im *Image) At(x, y int) (r, g, b, a uint8) {
	x = geom.ClampInt(x, 0, im.Width-1)
	y = geom.ClampInt(y, 0, im.Height-1)
	i := (y*im.Width + x) * 4
	return im.Pix[i], im.Pix[i+1], im.Pix[i+2], im.Pix[i+3]
}

// Gray is a single-channel float64 buffer of image dimensions.
type Gray struct {
	Width, Height int
	Pix           []float64
}

func (g *Gray) At(x, y int) float64 {
	x = geom.ClampInt(x, 0, g.Width-1)
	y = geom.ClampInt(y, 0, g.Height-1)
	return g.Pix[y*g.Width+x]
}

// ToGray converts to Y' luma under BT.601 weights, per the data model's
// grayscale conversion rule.
func (im *Image) ToGray() *Gray {
	out := &Gray{Width: im.Width, Height: im.Height, Pix: make([]float64, im.Width*im.Height)}
	for i := 0; i < im.Width*im.Height; i++ {
		r := im.Pix[i*4+0]
		g := im.Pix[i*4+1]
		b := im.Pix[i*4+2]
		out.Pix[i] = geom.Luma601(r, g, b)
	}
	return out
}

// LabField is a per-pixel LAB buffer of image dimensions.
type LabField struct {
	Width, Height int
	Pix           []geom.Lab
}

func (l *LabField) At(x, y int) geom.Lab {
	x = geom.ClampInt(x, 0, l.Width-1)
	y = geom.ClampInt(y, 0, l.Height-1)
	return l.Pix[y*l.Width+x]
}

// ToLab converts every pixel to CIE L*a*b*, used by SLIC and region-fill
// color estimation.
func (im *Image) ToLab() *LabField {
	out := &LabField{Width: im.Width, Height: im.Height, Pix: make([]geom.Lab, im.Width*im.Height)}
	for i := 0; i < im.Width*im.Height; i++ {
		r := im.Pix[i*4+0]
		g := im.Pix[i*4+1]
		b := im.Pix[i*4+2]
		out.Pix[i] = geom.RGBToLab(r, g, b)
	}
	return out
}

// Tile describes a non-overlapping rectangular region of an Image.
type Tile struct {
	X0, Y0, X1, Y1 int // half-open [X0,X1) x [Y0,Y1)
}

// Tiles slices the image into a grid of non-overlapping tiles of at most
// tileSize pixels per side. The last row/column of tiles may be smaller.
func (im *Image) Tiles(tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = im.Width
		if im.Height > tileSize {
			tileSize = im.Height
		}
	}
	var tiles []Tile
	for y0 := 0; y0 < im.Height; y0 += tileSize {
		y1 := y0 + tileSize
		if y1 > im.Height {
			y1 = im.Height
		}
		for x0 := 0; x0 < im.Width; x0 += tileSize {
			x1 := x0 + tileSize
			if x1 > im.Width {
				x1 = im.Width
			}
			tiles = append(tiles, Tile{X0: x0, Y0: y0, X1: x1, Y1: y1})
		}
	}
	return tiles
}

// Mask is a width x height buffer of boolean labels (foreground/
// background, edge/non-edge, visited/unvisited).
type Mask struct {
	Width, Height int
	Bits          []bool
}

// NewMask allocates a cleared mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Bits: make([]bool, width*height)}
}

func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Bits[y*m.Width+x] = v
}

// CountNeighbors8 returns how many of the 8-neighbors of (x,y) are set.
func (m *Mask) CountNeighbors8(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if m.At(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// GradientField carries magnitude and orientation buffers produced by the
// Sobel/derivative-of-Gaussian preprocessing stages.
type GradientField struct {
	Width, Height int
	Magnitude     []float64
	Orientation   []float64 // radians
}

func (g *GradientField) At(x, y int) (mag, orient float64) {
	x = geom.ClampInt(x, 0, g.Width-1)
	y = geom.ClampInt(y, 0, g.Height-1)
	i := y*g.Width + x
	return g.Magnitude[i], g.Orientation[i]
}
