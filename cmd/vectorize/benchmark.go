package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/lindqvist/vectorize"
	"github.com/lindqvist/vectorize/internal/config"
	"github.com/lindqvist/vectorize/internal/rasterimg"
)

// benchmarkRow is one example image's timing result, shaped like the
// teacher's metadata-table rows (pkg/cli/meta.go): a flat, JSON- and
// CSV-serializable record rather than a nested structure.
type benchmarkRow struct {
	File        string  `json:"file"`
	Backend     string  `json:"backend"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	MeanMs      float64 `json:"mean_ms"`
	MinMs       float64 `json:"min_ms"`
	MaxMs       float64 `json:"max_ms"`
	OutputBytes int     `json:"output_bytes"`
	Error       string  `json:"error,omitempty"`
}

func runBenchmark(args []string) error {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	examplesDir := fs.String("examples-dir", "", "directory of PNG/JPEG/WebP images to benchmark (required)")
	output := fs.String("output", "", "output path; format inferred from extension (.json or .csv), default stdout JSON")
	iterations := fs.Int("iterations", 3, "timed Vectorize calls per image")
	backend := fs.String("backend", "edge", "edge|centerline|superpixel|dots")
	baseline := fs.String("baseline", "", "prior benchmark JSON file; mean_ms regressions beyond 20% are reported")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *examplesDir == "" {
		return fmt.Errorf("missing -examples-dir\nUsage: vectorize benchmark -examples-dir <dir> [options]")
	}
	if *iterations < 1 {
		return fmt.Errorf("-iterations must be >= 1")
	}

	files, err := listImages(*examplesDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PNG/JPEG/WebP files found under %s", *examplesDir)
	}

	cfg := vectorize.DefaultConfig()
	cfg.Backend = config.Backend(*backend)

	rows := make([]benchmarkRow, 0, len(files))
	for _, path := range files {
		rows = append(rows, benchmarkOne(path, cfg, *iterations))
	}

	if *baseline != "" {
		if err := reportRegressions(rows, *baseline); err != nil {
			fmt.Fprintf(os.Stderr, "warning: comparing against baseline: %v\n", err)
		}
	}

	return writeRows(rows, *output)
}

func benchmarkOne(path string, cfg vectorize.Config, iterations int) benchmarkRow {
	row := benchmarkRow{File: path, Backend: string(cfg.Backend)}

	f, err := os.Open(path)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		row.Error = err.Error()
		return row
	}
	nrgba := toNRGBA(img)
	row.Width, row.Height = nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	view := vectorize.ImageView{Width: row.Width, Height: row.Height, Pix: rasterimg.FromNRGBA(nrgba).Pix}

	var total, min, max float64
	var lastSVG string
	for i := 0; i < iterations; i++ {
		start := time.Now()
		svg, err := vectorize.Vectorize(view, cfg)
		elapsed := time.Since(start).Seconds() * 1000
		if err != nil {
			row.Error = err.Error()
			return row
		}
		lastSVG = svg
		total += elapsed
		if i == 0 || elapsed < min {
			min = elapsed
		}
		if i == 0 || elapsed > max {
			max = elapsed
		}
	}
	row.MeanMs = total / float64(iterations)
	row.MinMs = min
	row.MaxMs = max
	row.OutputBytes = len(lastSVG)
	return row
}

func listImages(dir string) ([]string, error) {
	var out []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png", ".jpg", ".jpeg", ".webp":
			out = append(out, path)
		}
		return nil
	})
	return out, err
}

func writeRows(rows []benchmarkRow, outputPath string) error {
	ext := strings.ToLower(filepath.Ext(outputPath))
	if ext == ".csv" {
		return writeCSV(rows, outputPath)
	}
	return writeJSON(rows, outputPath)
}

func writeJSON(rows []benchmarkRow, outputPath string) error {
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if outputPath == "" {
		_, err := os.Stdout.Write(append(b, '\n'))
		return err
	}
	return os.WriteFile(outputPath, b, 0o644)
}

func writeCSV(rows []benchmarkRow, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()
	header := []string{"file", "backend", "width", "height", "mean_ms", "min_ms", "max_ms", "output_bytes", "error"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.File, r.Backend,
			strconv.Itoa(r.Width), strconv.Itoa(r.Height),
			strconv.FormatFloat(r.MeanMs, 'f', 3, 64),
			strconv.FormatFloat(r.MinMs, 'f', 3, 64),
			strconv.FormatFloat(r.MaxMs, 'f', 3, 64),
			strconv.Itoa(r.OutputBytes),
			r.Error,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// reportRegressions compares rows against a prior JSON benchmark output,
// printing a warning for any file whose mean_ms grew by more than 20%.
func reportRegressions(rows []benchmarkRow, baselinePath string) error {
	b, err := os.ReadFile(baselinePath)
	if err != nil {
		return err
	}
	var prior []benchmarkRow
	if err := json.Unmarshal(b, &prior); err != nil {
		return err
	}
	priorByFile := make(map[string]benchmarkRow, len(prior))
	for _, r := range prior {
		priorByFile[r.File] = r
	}
	for _, r := range rows {
		old, ok := priorByFile[r.File]
		if !ok || old.MeanMs <= 0 || r.Error != "" {
			continue
		}
		growth := (r.MeanMs - old.MeanMs) / old.MeanMs
		if growth > 0.20 {
			fmt.Fprintf(os.Stderr, "regression: %s mean_ms %.2f -> %.2f (+%.0f%%)\n", r.File, old.MeanMs, r.MeanMs, growth*100)
		}
	}
	return nil
}
