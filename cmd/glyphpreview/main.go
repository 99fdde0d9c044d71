// Glyph sampling preview tool - interactive view of the text bitmap and the
// pixels the generator samples, with sliders for the sampling parameters.
//
// Usage: go run ./cmd/glyphpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/particles"
)

const (
	windowWidth  = 1000
	windowHeight = 640
	previewX     = 50
	previewY     = 10
	previewW     = 900
	sliderWidth  = 400
)

// SamplingParams holds the tunable sampling parameters.
type SamplingParams struct {
	FontSize    float32
	Stride      int
	Threshold   int
	DepthLayers int
}

func paramsFromConfig(cfg *config.Config) SamplingParams {
	return SamplingParams{
		FontSize:    float32(cfg.Text.FontSize),
		Stride:      cfg.Text.Stride,
		Threshold:   cfg.Text.Threshold,
		DepthLayers: cfg.Particles.DepthLayers,
	}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "Glyph Sampling Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := paramsFromConfig(cfg)
	canvasW, canvasH := cfg.Text.CanvasWidth, cfg.Text.CanvasHeight
	scale := float32(previewW) / float32(canvasW)
	previewH := float32(canvasH) * scale

	var bitmap *image.Gray
	var texture rl.Texture2D
	var rasterErr error
	needsRaster := true

	defer func() {
		if texture.ID != 0 {
			rl.UnloadTexture(texture)
		}
	}()

	for !rl.WindowShouldClose() {
		if needsRaster {
			bitmap, rasterErr = rasterize(cfg, params.FontSize)
			if texture.ID != 0 {
				rl.UnloadTexture(texture)
				texture = rl.Texture2D{}
			}
			if rasterErr == nil {
				img := rl.NewImageFromImage(bitmap)
				texture = rl.LoadTextureFromImage(img)
				rl.UnloadImage(img)
			}
			needsRaster = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 0, G: 15, B: 8, A: 255})

		// Bitmap preview with sampled pixels on top
		if rasterErr == nil {
			rl.DrawTexturePro(
				texture,
				rl.Rectangle{X: 0, Y: 0, Width: float32(canvasW), Height: float32(canvasH)},
				rl.Rectangle{X: previewX, Y: previewY, Width: previewW, Height: previewH},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.Color{R: 255, G: 255, B: 255, A: 80},
			)
			drawSamples(bitmap, params, scale)
		} else {
			rl.DrawText(rasterErr.Error(), previewX, previewY, 16, rl.Red)
		}
		rl.DrawRectangleLines(previewX, previewY, previewW, int32(previewH), rl.DarkGray)

		samples := particles.SampleCount(bitmap, params.Stride, uint8(params.Threshold))
		statsY := int32(previewY + previewH + 10)
		rl.DrawText(
			fmt.Sprintf("Text: %q  Samples: %d  Particles: %d", cfg.Text.Content, samples, samples*params.DepthLayers),
			previewX, statsY, 16, rl.LightGray,
		)

		// Control panel
		panelX := float32(previewX)
		panelY := float32(statsY + 35)

		rl.DrawText("Font size (px)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSize := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"60", "300",
			params.FontSize, 60, 300,
		)
		rl.DrawText(fmt.Sprintf("%.0f", params.FontSize), int32(panelX+sliderWidth+40), int32(panelY+2), 16, rl.LightGray)
		if int(newSize) != int(params.FontSize) {
			params.FontSize = float32(int(newSize))
			needsRaster = true
		}
		panelY += 35

		rl.DrawText("Stride (pixels between samples)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newStride := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"1", "16",
			float32(params.Stride), 1, 16,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Stride), int32(panelX+sliderWidth+40), int32(panelY+2), 16, rl.LightGray)
		params.Stride = int(newStride)
		panelY += 35

		rl.DrawText("Threshold (brightness cutoff)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newThreshold := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"0", "254",
			float32(params.Threshold), 0, 254,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Threshold), int32(panelX+sliderWidth+40), int32(panelY+2), 16, rl.LightGray)
		params.Threshold = int(newThreshold)
		panelY += 35

		rl.DrawText("Depth layers", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newLayers := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: sliderWidth, Height: 20},
			"1", "9",
			float32(params.DepthLayers), 1, 9,
		)
		rl.DrawText(fmt.Sprintf("%d", params.DepthLayers), int32(panelX+sliderWidth+40), int32(panelY+2), 16, rl.LightGray)
		params.DepthLayers = int(newLayers)
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = paramsFromConfig(cfg)
			needsRaster = true
		}

		// YAML output on the right
		yamlX := int32(panelX + sliderWidth + 120)
		yamlY := statsY + 35
		rl.DrawText("YAML Config:", yamlX, yamlY, 16, rl.LightGray)
		yamlY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, yamlX, yamlY, 14, rl.Gray)
			yamlY += 16
		}
		rl.DrawText("Press C to copy YAML to clipboard", yamlX, int32(windowHeight-30), 12, rl.DarkGray)

		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// rasterize renders the configured text at the given size.
func rasterize(cfg *config.Config, size float32) (*image.Gray, error) {
	raster, err := particles.LoadGlyphRasterizer(cfg.Text.FontPath, float64(size))
	if err != nil {
		return nil, err
	}
	defer raster.Close()
	return raster.Rasterize(cfg.Text.Content, cfg.Text.CanvasWidth, cfg.Text.CanvasHeight)
}

// drawSamples marks every sampled pixel above threshold.
func drawSamples(bitmap *image.Gray, params SamplingParams, scale float32) {
	if params.Stride < 1 {
		params.Stride = 1
	}
	threshold := uint8(params.Threshold)
	dot := rl.Color{R: 0xD4, G: 0xAF, B: 0x37, A: 255}
	b := bitmap.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += params.Stride {
		for x := b.Min.X; x < b.Max.X; x += params.Stride {
			if bitmap.Pix[bitmap.PixOffset(x, y)] <= threshold {
				continue
			}
			sx := int32(previewX + float32(x)*scale)
			sy := int32(previewY + float32(y)*scale)
			rl.DrawRectangle(sx, sy, 2, 2, dot)
		}
	}
}

func yamlLines(p SamplingParams) []string {
	return []string{
		"text:",
		fmt.Sprintf("  font_size: %.0f", p.FontSize),
		fmt.Sprintf("  stride: %d", p.Stride),
		fmt.Sprintf("  threshold: %d", p.Threshold),
		"particles:",
		fmt.Sprintf("  depth_layers: %d", p.DepthLayers),
	}
}
