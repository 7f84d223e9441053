package geom

import "math"

// Lab is a CIE L*a*b* color value under the D65 reference white, the
// perceptual color space every detection and merging stage in this package
// operates in.
type Lab struct {
	L, A, B float64
}

// srgbToLinear un-gammas a single 8-bit channel, grounded on the same
// piecewise curve used for flood-fill color distance in the teacher repo's
// imaging package.
func srgbToLinear(c uint8) float64 {
	v := float64(c) / 255.0
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToXyz(r, g, b float64) (x, y, z float64) {
	x = 0.4124564*r + 0.3575761*g + 0.1804375*b
	y = 0.2126729*r + 0.7151522*g + 0.0721750*b
	z = 0.0193339*r + 0.1191920*g + 0.9503041*b
	return
}

// D65 reference white.
const (
	xr = 0.95047
	yr = 1.00000
	zr = 1.08883
)

func labF(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta*delta*delta {
		return math.Cbrt(t)
	}
	return t/(3*delta*delta) + 4.0/29.0
}

func xyzToLab(x, y, z float64) Lab {
	fx := labF(x / xr)
	fy := labF(y / yr)
	fz := labF(z / zr)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// RGBToLab converts an 8-bit sRGB triple to CIE L*a*b*.
func RGBToLab(r, g, b uint8) Lab {
	lr := srgbToLinear(r)
	lg := srgbToLinear(g)
	lb := srgbToLinear(b)
	x, y, z := linearToXyz(lr, lg, lb)
	return xyzToLab(x, y, z)
}

func labFInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func linearToSrgb(v float64) uint8 {
	v = Clamp01(v)
	var s float64
	if v <= 0.0031308 {
		s = v * 12.92
	} else {
		s = 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	return uint8(math.Round(Clamp01(s) * 255.0))
}

// LabToRGB converts a CIE L*a*b* value back to 8-bit sRGB, used when a
// fitted superpixel fill color must be written into the SVG document.
func LabToRGB(c Lab) (uint8, uint8, uint8) {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200

	x := xr * labFInv(fx)
	y := yr * labFInv(fy)
	z := zr * labFInv(fz)

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	b := 0.0556434*x - 0.2040259*y + 1.0572252*z

	return linearToSrgb(r), linearToSrgb(g), linearToSrgb(b)
}

// DeltaE76 returns the CIE76 ΔE*ab perceptual distance between two LAB
// colors: the straight Euclidean distance in LAB space.
func DeltaE76(a, b Lab) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dl*dl + da*da + db*db)
}

// Luma601 is the BT.601 luma used for grayscale conversion, matching the
// weighting used throughout the ancestor image-processing package.
func Luma601(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
