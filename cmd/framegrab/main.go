// Frame grab tool - renders the particle field offscreen at a chosen moment
// and writes it as WebP.
//
// Usage: go run ./cmd/framegrab -state text -seconds 3 -out frame.webp
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/HugoSmits86/nativewebp"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/game"
	"github.com/pthm-cable/glint/particles"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.webp", "Output WebP path")
	state := flag.String("state", "text", "Target state: text or scattered")
	seconds := flag.Float64("seconds", 3, "Simulated seconds before the grab")
	seed := flag.Int64("seed", 1, "RNG seed")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	target := particles.TextShape
	switch *state {
	case "text":
	case "scattered":
		target = particles.Scattered
	default:
		fmt.Fprintf(os.Stderr, "Unknown state %q (want text or scattered)\n", *state)
		os.Exit(2)
	}

	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(w, h, "Frame Grab")
	defer rl.CloseWindow()

	g := game.NewGameWithOptions(game.Options{Seed: *seed, ToggleEvery: -1})
	defer g.Unload()

	g.SetState(target)
	dt := cfg.Derived.FrameDT
	for t := 0.0; t < *seconds; t += dt {
		g.Advance(dt)
	}

	target3D := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target3D)

	rl.BeginTextureMode(target3D)
	g.DrawScene()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target3D.Texture)
	rl.ImageFlipVertical(img)
	goImg := img.ToImage()
	rl.UnloadImage(img)

	f, err := os.Create(*outPath)
	if err != nil {
		slog.Error("failed to create output", "path", *outPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, goImg, nil); err != nil {
		slog.Error("WebP encode failed", "error", err)
		os.Exit(1)
	}

	slog.Info("frame written",
		"path", *outPath,
		"state", target.String(),
		"seconds", *seconds,
		"frames", g.Frame(),
		"width", w,
		"height", h,
	)
}
