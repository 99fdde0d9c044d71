package particles

import (
	"image"
	"log/slog"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// GeneratorConfig controls text sampling and particle placement.
type GeneratorConfig struct {
	Text         string
	CanvasWidth  int
	CanvasHeight int
	Stride       int     // sample every Stride-th pixel on both axes
	Threshold    uint8   // luminance strictly above this counts as glyph
	PixelScale   float64 // scene units per pixel
	Jitter       float64 // full width of the x/y jitter window
	DepthLayers  int
	DepthSpacing float64

	ScatterRadius float64 // scatter cube edge length; coordinates lie in ±ScatterRadius/2

	EdgeGoldBias float64 // P(gold) on the front and back layers, else white gold
	CoreGoldBias float64 // P(gold) on interior layers, else emerald
}

// DefaultGeneratorConfig matches the stock scene framing.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Text:          "ARIX",
		CanvasWidth:   1000,
		CanvasHeight:  300,
		Stride:        4,
		Threshold:     128,
		PixelScale:    0.04,
		Jitter:        0.05,
		DepthLayers:   5,
		DepthSpacing:  0.15,
		ScatterRadius: 25,
		EdgeGoldBias:  0.7,
		CoreGoldBias:  0.6,
	}
}

// Generator turns a rasterized string into particles. Generate is meant to run
// once before animation starts.
type Generator struct {
	cfg    GeneratorConfig
	raster Rasterizer
	rng    *rand.Rand
}

// NewGenerator creates a generator. A nil rng falls back to a fixed seed.
func NewGenerator(cfg GeneratorConfig, raster Rasterizer, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if cfg.Stride < 1 {
		cfg.Stride = 1
	}
	if cfg.DepthLayers < 1 {
		cfg.DepthLayers = 1
	}
	return &Generator{cfg: cfg, raster: raster, rng: rng}
}

// Config returns the generator's effective configuration.
func (g *Generator) Config() GeneratorConfig {
	return g.cfg
}

// Bitmap renders the sampling surface without emitting particles.
func (g *Generator) Bitmap() (*image.Gray, error) {
	if g.raster == nil {
		return nil, ErrEmptyCanvas
	}
	return g.raster.Rasterize(g.cfg.Text, g.cfg.CanvasWidth, g.cfg.CanvasHeight)
}

// Generate samples the text and returns the particle list. When the sampling
// surface cannot be created it logs and returns an empty, non-nil slice.
func (g *Generator) Generate() []Particle {
	img, err := g.Bitmap()
	if err != nil {
		slog.Warn("sampling surface unavailable, continuing without particles",
			"text", g.cfg.Text,
			"width", g.cfg.CanvasWidth,
			"height", g.cfg.CanvasHeight,
			"error", err,
		)
		return []Particle{}
	}

	cfg := g.cfg
	particles := make([]Particle, 0, SampleCount(img, cfg.Stride, cfg.Threshold)*cfg.DepthLayers)
	halfW := float64(cfg.CanvasWidth) / 2
	halfH := float64(cfg.CanvasHeight) / 2
	b := img.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y += cfg.Stride {
		for x := b.Min.X; x < b.Max.X; x += cfg.Stride {
			if img.Pix[img.PixOffset(x, y)] <= cfg.Threshold {
				continue
			}
			// Bitmap Y grows downward, scene Y grows upward
			posX := (float64(x) - halfW) * cfg.PixelScale
			posY := -(float64(y) - halfH) * cfg.PixelScale

			for layer := 0; layer < cfg.DepthLayers; layer++ {
				particles = append(particles, g.emit(posX, posY, layer))
			}
		}
	}

	slog.Debug("particles generated",
		"text", cfg.Text,
		"count", len(particles),
		"layers", cfg.DepthLayers,
	)
	return particles
}

// emit creates one particle for a glyph sample on the given layer.
func (g *Generator) emit(posX, posY float64, layer int) Particle {
	cfg := &g.cfg
	rng := g.rng

	text := r3.Vec{
		X: posX + (rng.Float64()-0.5)*cfg.Jitter,
		Y: posY + (rng.Float64()-0.5)*cfg.Jitter,
		Z: DepthOffset(layer, cfg.DepthLayers, cfg.DepthSpacing),
	}
	scatter := r3.Vec{
		X: (rng.Float64() - 0.5) * cfg.ScatterRadius,
		Y: (rng.Float64() - 0.5) * cfg.ScatterRadius,
		Z: (rng.Float64() - 0.5) * cfg.ScatterRadius,
	}

	return Particle{
		TextPosition:    text,
		ScatterPosition: scatter,
		Color:           PickColor(layer, cfg.DepthLayers, cfg.EdgeGoldBias, cfg.CoreGoldBias, rng.Float64()),
		Scale:           0.5 + rng.Float64()*0.5,
		Layer:           layer,
	}
}

// DepthOffset returns the z offset of a layer, centered on zero.
func DepthOffset(layer, layers int, spacing float64) float64 {
	return (float64(layer) - float64(layers-1)/2) * spacing
}

// IsEdgeLayer reports whether layer is the front or back layer.
func IsEdgeLayer(layer, layers int) bool {
	return layer == 0 || layer == layers-1
}

// PickColor assigns a palette color from a uniform sample r in [0, 1).
// Edge layers split gold/white gold, interior layers split gold/emerald.
func PickColor(layer, layers int, edgeGold, coreGold, r float64) PaletteColor {
	if IsEdgeLayer(layer, layers) {
		if r < edgeGold {
			return Gold
		}
		return WhiteGold
	}
	if r < coreGold {
		return Gold
	}
	return Emerald
}

// SampleCount returns how many strided pixels of img exceed threshold.
// It depends only on the bitmap, never on the random source.
func SampleCount(img *image.Gray, stride int, threshold uint8) int {
	if img == nil {
		return 0
	}
	if stride < 1 {
		stride = 1
	}
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			if img.Pix[img.PixOffset(x, y)] > threshold {
				n++
			}
		}
	}
	return n
}
