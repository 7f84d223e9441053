package config

import "testing"

func TestDefaultValidates(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateRejectsEvenWindow(t *testing.T) {
	cfg := Default()
	cfg.EnableAdaptiveThreshold = true
	cfg.AdaptiveThresholdWindowSize = 30
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for even window size")
	}
}

func TestValidateRejectsNonePresetWithNonzeroTremor(t *testing.T) {
	cfg := Default()
	cfg.HandDrawnPreset = PresetNone
	cfg.TremorStrength = 0.2
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for preset=none with nonzero tremor")
	}
}

func TestValidateRejectsMinGreaterThanMaxRadius(t *testing.T) {
	cfg := Default()
	cfg.Backend = BackendDots
	cfg.DotMinRadius = 5
	cfg.DotMaxRadius = 2
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for min_radius > max_radius")
	}
}

func TestCannyThresholds(t *testing.T) {
	cfg := Default()
	cfg.Detail = 0
	low, high := cfg.CannyThresholds()
	if high != 0.15 {
		t.Fatalf("expected high=0.15 at detail=0, got %v", high)
	}
	if low != 0.4*0.15 {
		t.Fatalf("expected low=0.4*high, got %v", low)
	}
}

func TestHandDrawnParamsNoneIsZero(t *testing.T) {
	cfg := Default()
	cfg.HandDrawnPreset = PresetNone
	tremor, vw, taper := cfg.HandDrawnParams()
	if tremor != 0 || vw != 0 || taper != 0 {
		t.Fatalf("expected all-zero params for preset none, got (%v,%v,%v)", tremor, vw, taper)
	}
}
