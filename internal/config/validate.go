package config

import (
	"fmt"

	"github.com/lindqvist/vectorize/internal/errs"
)

// Validate checks every mutually-exclusive or out-of-range rule called
// out in the configuration surface and returns a single
// InvalidConfigurationError describing the first violation found, or nil
// if cfg is well-formed. Configuration errors are returned before any
// pipeline work begins.
func Validate(cfg Config) error {
	switch cfg.Backend {
	case BackendEdge, BackendCenterline, BackendSuperpixel, BackendDots:
	default:
		return errs.NewInvalidConfiguration("backend", fmt.Sprintf("unknown backend %q", cfg.Backend))
	}

	if cfg.Detail < 0 || cfg.Detail > 1 {
		return errs.NewInvalidConfiguration("detail", "must be in [0,1]")
	}

	if cfg.StrokeWidth <= 0 {
		return errs.NewInvalidConfiguration("stroke_width", "must be > 0")
	}

	if cfg.EnableBackgroundRemoval {
		switch cfg.BackgroundRemovalAlgorithm {
		case BackgroundOtsu, BackgroundAdaptive:
		default:
			return errs.NewInvalidConfiguration("background_removal_algorithm", fmt.Sprintf("unknown algorithm %q", cfg.BackgroundRemovalAlgorithm))
		}
		if cfg.BackgroundRemovalStrength < 0 || cfg.BackgroundRemovalStrength > 1 {
			return errs.NewInvalidConfiguration("background_removal_strength", "must be in [0,1]")
		}
	}

	if cfg.EnableAdaptiveThreshold || cfg.Backend == BackendCenterline {
		if cfg.AdaptiveThresholdWindowSize%2 == 0 {
			return errs.NewInvalidConfiguration("adaptive_threshold_window_size", "must be odd")
		}
		if cfg.AdaptiveThresholdWindowSize < 15 || cfg.AdaptiveThresholdWindowSize > 45 {
			return errs.NewInvalidConfiguration("adaptive_threshold_window_size", "must be in [15,45]")
		}
		if cfg.AdaptiveThresholdK < 0.1 || cfg.AdaptiveThresholdK > 0.9 {
			return errs.NewInvalidConfiguration("adaptive_threshold_k", "must be in [0.1,0.9]")
		}
	}

	if cfg.Backend == BackendSuperpixel {
		switch cfg.SuperpixelInitPattern {
		case InitSquare, InitHexagonal, InitPoissonDisk:
		default:
			return errs.NewInvalidConfiguration("superpixel_initialization_pattern", fmt.Sprintf("unknown pattern %q", cfg.SuperpixelInitPattern))
		}
		if cfg.Compactness < 5 || cfg.Compactness > 30 {
			return errs.NewInvalidConfiguration("compactness", "must be in [5,30]")
		}
		if cfg.SlicIterations < 1 {
			return errs.NewInvalidConfiguration("slic_iterations", "must be >= 1")
		}
		if cfg.NumSuperpixels < 0 {
			return errs.NewInvalidConfiguration("num_superpixels", "must be >= 0")
		}
		if cfg.SuperpixelCellSize != 0 && (cfg.SuperpixelCellSize < 600 || cfg.SuperpixelCellSize > 3000) {
			return errs.NewInvalidConfiguration("superpixel_cell_size", "must be in [600,3000]")
		}
	}

	if cfg.Backend == BackendDots {
		switch cfg.DotInitPattern {
		case DotGrid, DotPoisson, DotGradientWeighted:
		default:
			return errs.NewInvalidConfiguration("dot_initialization_pattern", fmt.Sprintf("unknown pattern %q", cfg.DotInitPattern))
		}
		if cfg.DotMinRadius <= 0 {
			return errs.NewInvalidConfiguration("dot_min_radius", "must be > 0")
		}
		if cfg.DotMaxRadius < cfg.DotMinRadius {
			return errs.NewInvalidConfiguration("dot_max_radius", "must be >= dot_min_radius")
		}
	}

	switch cfg.HandDrawnPreset {
	case PresetNone, PresetSubtle, PresetMedium, PresetStrong, PresetSketchy:
	default:
		return errs.NewInvalidConfiguration("hand_drawn_preset", fmt.Sprintf("unknown preset %q", cfg.HandDrawnPreset))
	}
	if cfg.HandDrawnPreset == PresetNone {
		if cfg.TremorStrength != 0 || cfg.VariableWeights != 0 || cfg.Tapering != 0 {
			return errs.NewInvalidConfiguration("hand_drawn_preset", "preset \"none\" requires tremor_strength, variable_weights, and tapering to all be zero")
		}
	} else {
		if cfg.TremorStrength < 0 || cfg.TremorStrength > 0.5 {
			return errs.NewInvalidConfiguration("tremor_strength", "must be in [0,0.5]")
		}
		if cfg.VariableWeights < 0 || cfg.VariableWeights > 1 {
			return errs.NewInvalidConfiguration("variable_weights", "must be in [0,1]")
		}
		if cfg.Tapering < 0 || cfg.Tapering > 1 {
			return errs.NewInvalidConfiguration("tapering", "must be in [0,1]")
		}
	}

	if cfg.SvgPrecision > 6 {
		return errs.NewInvalidConfiguration("svg_precision", "must be in [0,6]")
	}

	if cfg.MaxImageSize == 0 {
		return errs.NewInvalidConfiguration("max_image_size", "must be > 0")
	}

	return nil
}
