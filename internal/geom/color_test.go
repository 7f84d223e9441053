package geom

import "testing"

func TestRGBToLabRoundTrip(t *testing.T) {
	cases := [][3]uint8{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
		{128, 64, 200},
	}
	for _, c := range cases {
		lab := RGBToLab(c[0], c[1], c[2])
		r, g, b := LabToRGB(lab)
		if absDiff(int(r), int(c[0])) > 2 || absDiff(int(g), int(c[1])) > 2 || absDiff(int(b), int(c[2])) > 2 {
			t.Fatalf("round trip mismatch for %v: got (%d,%d,%d), lab=%v", c, r, g, b, lab)
		}
	}
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

func TestDeltaE76Zero(t *testing.T) {
	lab := RGBToLab(100, 150, 200)
	if d := DeltaE76(lab, lab); d != 0 {
		t.Fatalf("expected zero self-distance, got %v", d)
	}
}

func TestDeltaE76RedVsBlue(t *testing.T) {
	red := RGBToLab(255, 0, 0)
	blue := RGBToLab(0, 0, 255)
	d := DeltaE76(red, blue)
	if d < 50 {
		t.Fatalf("expected large ΔE between red and blue, got %v", d)
	}
}
