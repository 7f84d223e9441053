// Package vectorize converts a decoded raster image into an SVG 1.1
// document using one of four backends: Edge, Centerline, Superpixel, or
// Dots. It is a pure function of (image, config): no state is retained
// across calls.
package vectorize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/lindqvist/vectorize/internal/backend"
	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/deadline"
	"github.com/lindqvist/vectorize/internal/errs"
	"github.com/lindqvist/vectorize/internal/rasterimg"
	"github.com/lindqvist/vectorize/internal/svgdoc"
)

// Config re-exports the pipeline's configuration type so callers only
// need to import this one package for the common case.
type Config = config.Config

// DefaultConfig returns a Config populated with every documented default.
func DefaultConfig() Config { return config.Default() }

// Vectorize runs the full pipeline: validates cfg and view, dispatches
// to the configured backend, and renders the resulting document to a
// UTF-8 SVG 1.1 string.
func Vectorize(view ImageView, cfg Config) (string, error) {
	if err := config.Validate(cfg); err != nil {
		return "", err
	}
	if err := validateImage(view, cfg); err != nil {
		return "", err
	}

	dl := deadline.New(cfg.MaxProcessingTimeMs)
	if err := dl.Check("start"); err != nil {
		return "", err
	}

	img := rasterimg.New(view.Width, view.Height, view.Pix)

	var (
		doc *svgdoc.Document
		err error
	)
	switch cfg.Backend {
	case config.BackendEdge:
		doc, err = backend.RunEdge(img, cfg, dl)
	case config.BackendCenterline:
		doc, err = backend.RunCenterline(img, cfg, dl)
	case config.BackendSuperpixel:
		doc, err = backend.RunSuperpixel(img, cfg, dl)
	case config.BackendDots:
		doc, err = backend.RunDots(img, cfg, dl)
	default:
		return "", errs.NewInvalidConfiguration("backend", fmt.Sprintf("unknown backend %q", cfg.Backend))
	}
	if err != nil {
		return "", err
	}

	if cfg.IncludeMetadata {
		hash := configHash(cfg)
		doc.MetaComment = "config-hash:" + hash
		doc.AddMetaLabel(fmt.Sprintf("vectorize backend=%s hash=%s", cfg.Backend, hash))
	}
	return doc.Render(), nil
}

func validateImage(view ImageView, cfg Config) error {
	if view.Width <= 0 || view.Height <= 0 {
		return errs.NewInvalidImage("width and height must be positive")
	}
	if len(view.Pix) != view.Width*view.Height*4 {
		return errs.NewInvalidImage(fmt.Sprintf("pixel buffer length %d does not match %dx%d RGBA8", len(view.Pix), view.Width, view.Height))
	}
	longest := view.Width
	if view.Height > longest {
		longest = view.Height
	}
	if cfg.MaxImageSize > 0 && uint32(longest) > cfg.MaxImageSize {
		return errs.NewInvalidImage(fmt.Sprintf("longest edge %d exceeds max_image_size %d", longest, cfg.MaxImageSize))
	}
	return nil
}

func configHash(cfg Config) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%+v", cfg)))
	return hex.EncodeToString(sum[:])[:16]
}
