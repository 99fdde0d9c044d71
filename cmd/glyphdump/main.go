// Glyph dump tool - writes the text sampling bitmap as WebP and the
// generated particles as CSV for offline inspection.
//
// Usage: go run ./cmd/glyphdump -out dump
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"

	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/particles"
	"github.com/pthm-cable/glint/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outDir := flag.String("out", "glyphdump", "Output directory")
	text := flag.String("text", "", "Override text.content")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(*configPath, *outDir, *text, *seed); err != nil {
		slog.Error("glyphdump failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outDir, text string, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if text != "" {
		cfg.Text.Content = text
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	raster, err := particles.LoadGlyphRasterizer(cfg.Text.FontPath, cfg.Text.FontSize)
	if err != nil {
		return err
	}
	defer raster.Close()

	gen := particles.NewGenerator(cfg.GeneratorConfig(), raster, rand.New(rand.NewSource(seed)))
	bitmap, err := gen.Bitmap()
	if err != nil {
		return fmt.Errorf("rasterizing %q: %w", cfg.Text.Content, err)
	}
	if err := writeWebP(filepath.Join(outDir, "glyph.webp"), bitmap); err != nil {
		return err
	}

	ps := gen.Generate()
	f, err := os.Create(filepath.Join(outDir, "particles.csv"))
	if err != nil {
		return fmt.Errorf("creating particles.csv: %w", err)
	}
	defer f.Close()
	if err := telemetry.WriteParticles(f, ps); err != nil {
		return err
	}

	counts := telemetry.ColorCounts(ps)
	slog.Info("glyph dumped",
		"text", cfg.Text.Content,
		"out", outDir,
		"samples", particles.SampleCount(bitmap, cfg.Text.Stride, uint8(cfg.Text.Threshold)),
		"particles", len(ps),
		"gold", counts[particles.Gold],
		"white_gold", counts[particles.WhiteGold],
		"emerald", counts[particles.Emerald],
	)
	return nil
}

// writeWebP encodes img losslessly.
func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fmt.Errorf("WebP encode: %w", err)
	}
	return nil
}
