package particles

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
)

// blockRaster draws a white rectangle instead of text so counts are easy to predict.
func blockRaster(rect image.Rectangle) Rasterizer {
	return RasterizerFunc(func(_ string, w, h int) (*image.Gray, error) {
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := rect.Min.Y; y < rect.Max.Y; y++ {
			for x := rect.Min.X; x < rect.Max.X; x++ {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
		return img, nil
	})
}

func smallConfig() GeneratorConfig {
	cfg := DefaultGeneratorConfig()
	cfg.CanvasWidth = 100
	cfg.CanvasHeight = 40
	return cfg
}

func TestGenerateCountFromBitmap(t *testing.T) {
	cfg := smallConfig()
	// 20x8 block at stride 4 covers 5x2 samples
	gen := NewGenerator(cfg, blockRaster(image.Rect(40, 16, 60, 24)), rand.New(rand.NewSource(1)))

	ps := gen.Generate()
	want := 5 * 2 * cfg.DepthLayers
	if len(ps) != want {
		t.Errorf("expected %d particles, got %d", want, len(ps))
	}
}

func TestGenerateCountStableAcrossSeeds(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	raster, err := NewGlyphRasterizer(nil, 180)
	if err != nil {
		t.Fatalf("creating rasterizer: %v", err)
	}
	defer raster.Close()

	a := NewGenerator(cfg, raster, rand.New(rand.NewSource(1))).Generate()
	b := NewGenerator(cfg, raster, rand.New(rand.NewSource(99))).Generate()

	if len(a) == 0 {
		t.Fatal("expected glyph sampling to produce particles")
	}
	if len(a) != len(b) {
		t.Errorf("particle count changed with seed: %d vs %d", len(a), len(b))
	}
	if len(a)%cfg.DepthLayers != 0 {
		t.Errorf("count %d is not a multiple of %d layers", len(a), cfg.DepthLayers)
	}

	img, err := raster.Rasterize(cfg.Text, cfg.CanvasWidth, cfg.CanvasHeight)
	if err != nil {
		t.Fatalf("rasterizing: %v", err)
	}
	if want := SampleCount(img, cfg.Stride, cfg.Threshold) * cfg.DepthLayers; len(a) != want {
		t.Errorf("expected %d particles from bitmap, got %d", want, len(a))
	}
}

func TestDepthOffsetsSymmetric(t *testing.T) {
	const spacing = 0.15
	want := []float64{-2, -1, 0, 1, 2}
	for layer, w := range want {
		got := DepthOffset(layer, 5, spacing)
		if math.Abs(got-w*spacing) > 1e-12 {
			t.Errorf("layer %d: expected %f, got %f", layer, w*spacing, got)
		}
	}
}

func TestGeneratedDepthHasNoJitter(t *testing.T) {
	cfg := smallConfig()
	gen := NewGenerator(cfg, blockRaster(image.Rect(48, 20, 49, 21)), rand.New(rand.NewSource(3)))

	ps := gen.Generate()
	if len(ps) != cfg.DepthLayers {
		t.Fatalf("expected one column of %d particles, got %d", cfg.DepthLayers, len(ps))
	}
	for i, p := range ps {
		if p.Layer != i {
			t.Errorf("particle %d: expected layer %d, got %d", i, i, p.Layer)
		}
		if want := DepthOffset(i, cfg.DepthLayers, cfg.DepthSpacing); p.TextPosition.Z != want {
			t.Errorf("particle %d: expected z %f, got %f", i, want, p.TextPosition.Z)
		}
	}
}

func TestTextPositionMapping(t *testing.T) {
	cfg := smallConfig()
	// Single bright sample at pixel (48, 12): above center, left of center
	gen := NewGenerator(cfg, blockRaster(image.Rect(48, 12, 49, 13)), rand.New(rand.NewSource(5)))

	wantX := (48.0 - 50.0) * cfg.PixelScale
	wantY := -(12.0 - 20.0) * cfg.PixelScale
	half := cfg.Jitter / 2

	for _, p := range gen.Generate() {
		if math.Abs(p.TextPosition.X-wantX) > half {
			t.Errorf("x %f outside jitter window around %f", p.TextPosition.X, wantX)
		}
		if math.Abs(p.TextPosition.Y-wantY) > half {
			t.Errorf("y %f outside jitter window around %f", p.TextPosition.Y, wantY)
		}
		if p.TextPosition.Y <= 0 {
			t.Errorf("expected upper bitmap rows to map to positive y, got %f", p.TextPosition.Y)
		}
	}
}

func TestScatterBounds(t *testing.T) {
	cfg := smallConfig()
	gen := NewGenerator(cfg, blockRaster(image.Rect(0, 0, 100, 40)), rand.New(rand.NewSource(7)))

	half := cfg.ScatterRadius / 2
	for _, p := range gen.Generate() {
		for _, v := range []float64{p.ScatterPosition.X, p.ScatterPosition.Y, p.ScatterPosition.Z} {
			if v < -half || v > half {
				t.Fatalf("scatter coordinate %f outside [%f, %f]", v, -half, half)
			}
		}
	}
}

func TestScaleRange(t *testing.T) {
	gen := NewGenerator(smallConfig(), blockRaster(image.Rect(0, 0, 100, 40)), rand.New(rand.NewSource(11)))

	for _, p := range gen.Generate() {
		if p.Scale < 0.5 || p.Scale >= 1.0 {
			t.Fatalf("scale %f outside [0.5, 1.0)", p.Scale)
		}
	}
}

func TestColorBias(t *testing.T) {
	const trials = 10000
	const tolerance = 0.02
	rng := rand.New(rand.NewSource(42))

	tests := []struct {
		name     string
		layer    int
		wantGold float64
		other    PaletteColor
	}{
		{"front", 0, 0.7, WhiteGold},
		{"back", 4, 0.7, WhiteGold},
		{"interior", 2, 0.6, Emerald},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gold := 0
			for i := 0; i < trials; i++ {
				switch c := PickColor(tt.layer, 5, 0.7, 0.6, rng.Float64()); c {
				case Gold:
					gold++
				case tt.other:
				default:
					t.Fatalf("unexpected color %s on layer %d", c, tt.layer)
				}
			}
			frac := float64(gold) / trials
			if math.Abs(frac-tt.wantGold) > tolerance {
				t.Errorf("gold fraction %f, expected %f ± %f", frac, tt.wantGold, tolerance)
			}
		})
	}
}

func TestGenerateSurfaceFailure(t *testing.T) {
	failing := RasterizerFunc(func(string, int, int) (*image.Gray, error) {
		return nil, errors.New("no surface")
	})
	ps := NewGenerator(smallConfig(), failing, nil).Generate()
	if ps == nil {
		t.Error("expected empty non-nil slice")
	}
	if len(ps) != 0 {
		t.Errorf("expected no particles, got %d", len(ps))
	}

	anim := NewAnimator(ps, DefaultAnimatorConfig())
	if out := anim.Update(1.0/60, 0, TextShape); len(out) != 0 {
		t.Errorf("expected no transforms, got %d", len(out))
	}
}

func TestGlyphRasterizerZeroCanvas(t *testing.T) {
	raster, err := NewGlyphRasterizer(nil, 48)
	if err != nil {
		t.Fatalf("creating rasterizer: %v", err)
	}
	defer raster.Close()

	if _, err := raster.Rasterize("A", 0, 10); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("expected ErrEmptyCanvas, got %v", err)
	}
	ps := NewGenerator(GeneratorConfig{Text: "A", CanvasWidth: 0, CanvasHeight: 10}, raster, nil).Generate()
	if len(ps) != 0 {
		t.Errorf("expected no particles, got %d", len(ps))
	}
}

func TestGlyphRasterizerCentersText(t *testing.T) {
	raster, err := NewGlyphRasterizer(nil, 180)
	if err != nil {
		t.Fatalf("creating rasterizer: %v", err)
	}
	defer raster.Close()

	img, err := raster.Rasterize("H", 1000, 300)
	if err != nil {
		t.Fatalf("rasterizing: %v", err)
	}

	var sumX, sumY, n float64
	for y := 0; y < 300; y++ {
		for x := 0; x < 1000; x++ {
			if img.GrayAt(x, y).Y > 128 {
				sumX += float64(x)
				sumY += float64(y)
				n++
			}
		}
	}
	if n == 0 {
		t.Fatal("expected bright pixels")
	}
	cx, cy := sumX/n, sumY/n
	if math.Abs(cx-500) > 50 || math.Abs(cy-150) > 80 {
		t.Errorf("expected glyph mass near (500, 150), got (%f, %f)", cx, cy)
	}
}

func TestInvalidFontData(t *testing.T) {
	if _, err := NewGlyphRasterizer([]byte("not a font"), 12); err == nil {
		t.Error("expected parse error")
	}
}
