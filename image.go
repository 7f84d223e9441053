package vectorize

// ImageView borrows a decoded RGBA8 image: width, height, and a pixel
// slice of length 4*Width*Height in row-major R,G,B,A order. The core
// never retains a reference to Pix past the Vectorize call that accepts
// it.
type ImageView struct {
	Width, Height int
	Pix           []uint8
}
