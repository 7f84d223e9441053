package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/joho/godotenv"
	"github.com/lindqvist/vectorize"
	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// repeatedFlag collects every occurrence of a repeatable -set key=value
// flag, the escape hatch that reaches every knob in config.Knobs without
// main.go needing a named flag per field.
type repeatedFlag []string

func (r *repeatedFlag) String() string { return strings.Join(*r, ",") }
func (r *repeatedFlag) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func runVectorize(args []string) error {
	fs := flag.NewFlagSet("vectorize", flag.ContinueOnError)
	backend := fs.String("backend", "edge", "edge|centerline|superpixel|dots")
	detail := fs.Float64("detail", 0.4, "master detail slider in [0,1]")
	strokeWidth := fs.Float64("stroke-width", 1.2, "stroke width in px at 1080p")
	handDrawn := fs.String("hand-drawn", "none", "none|subtle|medium|strong|sketchy")
	seed := fs.Uint64("seed", 0, "deterministic RNG seed")
	maxImageSize := fs.Uint64("max-image-size", 4096, "longest edge in px; larger inputs are downsampled")
	maxTimeMs := fs.Uint64("max-time-ms", 0, "processing deadline in milliseconds (0 = unlimited)")
	threads := fs.Uint64("threads", 0, "worker count (0 = auto)")
	svgPrecision := fs.Uint64("svg-precision", 2, "coordinate decimal precision")
	includeMeta := fs.Bool("include-metadata", false, "emit a config-hash XML comment in the SVG")
	envFile := fs.String("env", "", "path to a .env file overlaying configuration")
	var sets repeatedFlag
	fs.Var(&sets, "set", "override any knob as key=value (repeatable); see config.Knobs")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("missing <input> <output>\nUsage: vectorize <input> <output> [options]")
	}
	inputPath, outputPath := fs.Arg(0), fs.Arg(1)

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	}

	cfg := vectorize.DefaultConfig()
	cfg.Backend = config.Backend(*backend)
	cfg.Detail = float32(*detail)
	cfg.StrokeWidth = float32(*strokeWidth)
	cfg.HandDrawnPreset = config.HandDrawnPreset(*handDrawn)
	cfg.Seed = *seed
	cfg.MaxImageSize = uint32(*maxImageSize)
	cfg.MaxProcessingTimeMs = uint32(*maxTimeMs)
	cfg.ThreadCount = uint16(*threads)
	cfg.SvgPrecision = uint8(*svgPrecision)
	cfg.IncludeMetadata = *includeMeta

	if err := applyEnvOverrides(&cfg); err != nil {
		return fmt.Errorf("applying env overrides: %w", err)
	}
	if err := applySetFlags(&cfg, sets); err != nil {
		return err
	}

	img, err := decodeImage(inputPath)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}
	img = downsampleToLimit(img, int(cfg.MaxImageSize))

	view := vectorize.ImageView{
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Pix:    rasterimg.FromNRGBA(toNRGBA(img)).Pix,
	}

	svg, err := vectorize.Vectorize(view, cfg)
	if err != nil {
		return fmt.Errorf("vectorizing: %w", err)
	}

	if err := os.WriteFile(outputPath, []byte(svg), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	fmt.Fprintf(os.Stderr, "Vectorized %s -> %s (%d bytes)\n", inputPath, outputPath, len(svg))
	return nil
}

// applyEnvOverrides maps environment variables onto Config fields,
// following the teacher's env-overlay-stays-at-the-edge convention
// (pkg/cli/dotenv.go loads the file; this function decides what the
// resulting environment means for a typed Config).
func applyEnvOverrides(cfg *vectorize.Config) error {
	if v := os.Getenv("VECTORIZE_BACKEND"); v != "" {
		cfg.Backend = config.Backend(v)
	}
	if v := os.Getenv("VECTORIZE_DETAIL"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("VECTORIZE_DETAIL: %w", err)
		}
		cfg.Detail = float32(f)
	}
	if v := os.Getenv("VECTORIZE_SEED"); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("VECTORIZE_SEED: %w", err)
		}
		cfg.Seed = s
	}
	return nil
}

// applySetFlags applies repeatable -set key=value overrides, validating
// each key against the authoritative config.Knobs registry so a typo
// fails fast instead of being silently ignored.
func applySetFlags(cfg *vectorize.Config, sets []string) error {
	for _, kv := range sets {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("-set %q: expected key=value", kv)
		}
		key, val := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		spec := config.Lookup(key)
		if spec == nil {
			return fmt.Errorf("-set %q: unknown knob %q", kv, key)
		}
		if err := setKnob(cfg, key, val); err != nil {
			return fmt.Errorf("-set %q: %w", kv, err)
		}
	}
	return nil
}

func setKnob(cfg *vectorize.Config, key, val string) error {
	switch key {
	case "backend":
		cfg.Backend = config.Backend(val)
	case "detail":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.Detail = float32(f)
	case "stroke_width":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.StrokeWidth = float32(f)
	case "min_branch_length":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.MinBranchLength = float32(f)
	case "douglas_peucker_epsilon":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.DouglasPeuckerEpsilon = float32(f)
	case "compactness":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.Compactness = float32(f)
	case "slic_iterations":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		cfg.SlicIterations = n
	case "superpixel_initialization_pattern":
		cfg.SuperpixelInitPattern = config.SuperpixelInitPattern(val)
	case "dot_min_radius":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.DotMinRadius = float32(f)
	case "dot_max_radius":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.DotMaxRadius = float32(f)
	case "hand_drawn_preset":
		cfg.HandDrawnPreset = config.HandDrawnPreset(val)
	case "tremor_strength":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.TremorStrength = float32(f)
	case "variable_weights":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.VariableWeights = float32(f)
	case "tapering":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.Tapering = float32(f)
	case "svg_precision":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		cfg.SvgPrecision = uint8(n)
	case "max_processing_time_ms":
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return err
		}
		cfg.MaxProcessingTimeMs = uint32(n)
	case "thread_count":
		n, err := strconv.ParseUint(val, 10, 16)
		if err != nil {
			return err
		}
		cfg.ThreadCount = uint16(n)
	case "max_image_size":
		n, err := strconv.ParseUint(val, 10, 32)
		if err != nil {
			return err
		}
		cfg.MaxImageSize = uint32(n)
	case "seed":
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return err
		}
		cfg.Seed = n
	case "background_removal_strength":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.BackgroundRemovalStrength = float32(f)
	case "adaptive_threshold_window_size":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		cfg.AdaptiveThresholdWindowSize = n
	case "adaptive_threshold_k":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.AdaptiveThresholdK = float32(f)
	case "background_tolerance":
		f, err := strconv.ParseFloat(val, 32)
		if err != nil {
			return err
		}
		cfg.BackgroundTolerance = float32(f)
	default:
		return fmt.Errorf("knob %q is not yet settable via -set", key)
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// downsampleToLimit shrinks img (preserving aspect ratio) so its longest
// edge does not exceed limit, using a high-quality CatmullRom scaler; a
// limit of 0 or an image already within bounds is returned unchanged.
func downsampleToLimit(img image.Image, limit int) image.Image {
	if limit <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := w
	if h > longest {
		longest = h
	}
	if longest <= limit {
		return img
	}
	scale := float64(limit) / float64(longest)
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
