// Package config holds the single typed Config struct that carries every
// knob accepted by the vectorize core, plus its declarative knob registry
// (for validation and CLI help text) and defaults.
package config

// Backend selects one of the four top-level vectorization algorithms.
type Backend string

const (
	BackendEdge       Backend = "edge"
	BackendCenterline Backend = "centerline"
	BackendSuperpixel Backend = "superpixel"
	BackendDots       Backend = "dots"
)

// BackgroundRemovalAlgorithm selects the global or local thresholding
// method used to separate foreground from background.
type BackgroundRemovalAlgorithm string

const (
	BackgroundOtsu     BackgroundRemovalAlgorithm = "otsu"
	BackgroundAdaptive BackgroundRemovalAlgorithm = "adaptive"
)

// SuperpixelInitPattern selects the SLIC cluster-center grid shape.
type SuperpixelInitPattern string

const (
	InitSquare      SuperpixelInitPattern = "square"
	InitHexagonal   SuperpixelInitPattern = "hexagonal"
	InitPoissonDisk SuperpixelInitPattern = "poisson"
)

// DotInitPattern selects the stipple placement strategy.
type DotInitPattern string

const (
	DotGrid             DotInitPattern = "grid"
	DotPoisson          DotInitPattern = "poisson"
	DotGradientWeighted DotInitPattern = "gradient_weighted"
)

// HandDrawnPreset names a bundle of tremor/variable-width/taper settings.
type HandDrawnPreset string

const (
	PresetNone    HandDrawnPreset = "none"
	PresetSubtle  HandDrawnPreset = "subtle"
	PresetMedium  HandDrawnPreset = "medium"
	PresetStrong  HandDrawnPreset = "strong"
	PresetSketchy HandDrawnPreset = "sketchy"
)

// Config is the single struct carrying every pipeline knob. It is cheap
// to copy and immutable for the duration of one Vectorize call.
type Config struct {
	Backend Backend
	Detail  float32

	StrokeWidth float32

	EnableBackgroundRemoval     bool
	BackgroundRemovalAlgorithm  BackgroundRemovalAlgorithm
	BackgroundRemovalStrength   float32

	EnableAdaptiveThreshold       bool
	AdaptiveThresholdWindowSize   int
	AdaptiveThresholdK            float32
	AdaptiveThresholdUseOptimized bool

	// Centerline backend.
	MinBranchLength       float32
	EnableWidthModulation bool
	WidthMultiplier       float32
	WidthSmoothing        float32

	// Shared fitting knobs.
	DouglasPeuckerEpsilon float32

	// Superpixel backend.
	NumSuperpixels         int
	SuperpixelCellSize     int
	Compactness            float32
	SlicIterations         int
	SuperpixelInitPattern  SuperpixelInitPattern
	MergeDeltaE            float32
	SplitDeltaE            float32
	FillRegions            bool
	StrokeRegions          bool
	SimplifyBoundaries     bool
	BoundaryEpsilon        float32

	// Dots backend.
	DotDensityThreshold     float32
	DotMinRadius            float32
	DotMaxRadius            float32
	DotInitPattern          DotInitPattern
	DotMinDistanceFactor    float32
	DotGridResolution       float32
	AdaptiveSizing          bool
	DotLocalVarianceScaling bool
	DotColorClustering      bool
	DotOpacityVariation     float32
	PreserveColors          bool
	BackgroundTolerance     float32

	// Hand-drawn stylization.
	HandDrawnPreset HandDrawnPreset
	TremorStrength  float32
	VariableWeights float32
	Tapering        float32

	// SVG synthesis.
	SvgPrecision    uint8
	OptimizeSvg     bool
	IncludeMetadata bool

	// Execution / resource limits.
	MaxProcessingTimeMs uint32
	ThreadCount         uint16
	MaxImageSize        uint32
	Seed                uint64
}

// Default returns the Config populated with every spec-mandated default.
func Default() Config {
	return Config{
		Backend: BackendEdge,
		Detail:  0.4,

		StrokeWidth: 1.2,

		EnableBackgroundRemoval:    false,
		BackgroundRemovalAlgorithm: BackgroundOtsu,
		BackgroundRemovalStrength:  0.5,

		EnableAdaptiveThreshold:       false,
		AdaptiveThresholdWindowSize:   31,
		AdaptiveThresholdK:            0.4,
		AdaptiveThresholdUseOptimized: true,

		MinBranchLength:       8.0,
		EnableWidthModulation: false,
		WidthMultiplier:       1.0,
		WidthSmoothing:        0.5,

		DouglasPeuckerEpsilon: 0,

		NumSuperpixels:        0,
		SuperpixelCellSize:    1200,
		Compactness:           10,
		SlicIterations:        10,
		SuperpixelInitPattern: InitHexagonal,
		MergeDeltaE:           0,
		SplitDeltaE:           0,
		FillRegions:           true,
		StrokeRegions:         false,
		SimplifyBoundaries:    true,
		BoundaryEpsilon:       0,

		DotDensityThreshold:     0.5,
		DotMinRadius:            1.0,
		DotMaxRadius:            4.0,
		DotInitPattern:          DotPoisson,
		DotMinDistanceFactor:    1.0,
		DotGridResolution:       8.0,
		AdaptiveSizing:          true,
		DotLocalVarianceScaling: false,
		DotColorClustering:      false,
		DotOpacityVariation:     0,
		PreserveColors:          true,
		BackgroundTolerance:     8.0,

		HandDrawnPreset: PresetNone,
		TremorStrength:  0,
		VariableWeights: 0,
		Tapering:        0,

		SvgPrecision:    2,
		OptimizeSvg:     false,
		IncludeMetadata: false,

		MaxProcessingTimeMs: 0,
		ThreadCount:         0,
		MaxImageSize:        4096,
		Seed:                0,
	}
}

// HandDrawnParams resolves the preset (applying its named defaults) and
// any explicit per-axis overrides into concrete tremor/width/taper values.
func (c Config) HandDrawnParams() (tremor, variableWidth, taper float32) {
	switch c.HandDrawnPreset {
	case PresetNone:
		return 0, 0, 0
	case PresetSubtle:
		tremor, variableWidth, taper = 0.05, 0.1, 0.1
	case PresetMedium:
		tremor, variableWidth, taper = 0.15, 0.3, 0.3
	case PresetStrong:
		tremor, variableWidth, taper = 0.3, 0.5, 0.5
	case PresetSketchy:
		tremor, variableWidth, taper = 0.45, 0.7, 0.6
	default:
		tremor, variableWidth, taper = 0, 0, 0
	}
	if c.TremorStrength != 0 {
		tremor = c.TremorStrength
	}
	if c.VariableWeights != 0 {
		variableWidth = c.VariableWeights
	}
	if c.Tapering != 0 {
		taper = c.Tapering
	}
	return
}

// CannyThresholds derives the Canny hysteresis thresholds from detail, per
// the master-slider mapping in the detection stage.
func (c Config) CannyThresholds() (low, high float64) {
	high = 0.15 + 0.20*float64(c.Detail)
	low = 0.4 * high
	return
}

// MinPolylineLength derives the edge-linking minimum accepted length.
func (c Config) MinPolylineLength() float64 {
	return 10 + 40*float64(c.Detail)
}

// ResolvedMergeDeltaE returns the configured ΔE_merge, or the
// detail-derived default when unset.
func (c Config) ResolvedMergeDeltaE() float64 {
	if c.MergeDeltaE > 0 {
		return float64(c.MergeDeltaE)
	}
	v := 2.0 - 0.8*float64(c.Detail)
	if v < 1.0 {
		v = 1.0
	}
	return v
}

// ResolvedSplitDeltaE returns the configured ΔE_split, or the
// detail-derived default when unset.
func (c Config) ResolvedSplitDeltaE() float64 {
	if c.SplitDeltaE > 0 {
		return float64(c.SplitDeltaE)
	}
	return 3.0 + 1.0*float64(c.Detail)
}

// ResolvedStrokeWidth scales StrokeWidth (specified at 1080p) to the
// actual image dimensions.
func (c Config) ResolvedStrokeWidth(width, height int) float64 {
	shortEdge := width
	if height < shortEdge {
		shortEdge = height
	}
	scale := float64(shortEdge) / 1080.0
	if scale <= 0 {
		scale = 1
	}
	return float64(c.StrokeWidth) * scale
}

// BoundaryEpsilonFor derives the Superpixel boundary-simplification ε in
// pixels, honoring BoundaryEpsilon when set and otherwise falling back to
// the same detail-derived formula as DouglasPeuckerEpsilonFor.
func (c Config) BoundaryEpsilonFor(diag float64) float64 {
	if c.BoundaryEpsilon > 0 {
		return float64(c.BoundaryEpsilon)
	}
	return c.DouglasPeuckerEpsilonFor(diag)
}

// DouglasPeuckerEpsilonFor derives ε in pixels from detail and image
// diagonal, honoring an explicit override when set.
func (c Config) DouglasPeuckerEpsilonFor(diag float64) float64 {
	if c.DouglasPeuckerEpsilon > 0 {
		return float64(c.DouglasPeuckerEpsilon)
	}
	eps := (0.003 + 0.012*float64(c.Detail)) * diag
	lo := 0.003 * diag
	hi := 0.015 * diag
	if eps < lo {
		eps = lo
	}
	if eps > hi {
		eps = hi
	}
	return eps
}
