package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/camera"
	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/particles"
	"github.com/pthm-cable/glint/renderer"
	"github.com/pthm-cable/glint/scene"
	"github.com/pthm-cable/glint/telemetry"
	"github.com/pthm-cable/glint/ui"
)

// maxFrameDT caps the step after a window stall. The animator's lerp
// overshoots once BaseSpeed*dt*mult exceeds 2.
const maxFrameDT = 0.1

// Options configures a game instance.
type Options struct {
	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	ToggleEvery    float64 // Headless auto-toggle period in seconds; 0 = use config, <0 = never
	OutputDir      string
	WatchConfig    string // Config file to hot-reload in windowed mode ("" = off)
}

// Game holds the particle field, its animation state and the presentation layers.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	particles []particles.Particle
	anim      *particles.Animator
	state     particles.AppState

	rig *scene.Rig
	cam *camera.Camera

	// Rendering (nil in headless mode)
	background *renderer.BackgroundRenderer
	gems       *renderer.GemRenderer
	overlay    *ui.Overlay
	hud        *ui.HUD

	// Telemetry
	perfCollector    *telemetry.PerfCollector
	statsCollector   *telemetry.StatsCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	lastStats        telemetry.FrameStats
	colorCounts      [particles.NumPaletteColors]int
	logStats         bool
	statsWindowSec   float64
	nextFlush        float64

	// Clock
	frame       int
	elapsed     float64
	headless    bool
	toggleEvery float64
	nextToggle  float64

	watcher *config.Watcher

	// Mouse orbit
	dragging  bool
	lastMouse rl.Vector2

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game and generates the particle field once.
// In windowed mode the raylib window must already be open.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		cfg:            cfg,
		rng:            rand.New(rand.NewSource(opts.Seed)),
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		statsWindowSec: cfg.Telemetry.StatsWindow,
		toggleEvery:    cfg.Headless.ToggleEvery,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}
	if opts.StatsWindowSec > 0 {
		g.statsWindowSec = opts.StatsWindowSec
	}
	if opts.ToggleEvery != 0 {
		g.toggleEvery = opts.ToggleEvery
	}
	g.nextFlush = g.statsWindowSec
	g.nextToggle = g.toggleEvery

	g.particles = generateParticles(cfg, g.rng)
	g.anim = particles.NewAnimator(g.particles, cfg.AnimatorConfig())
	g.colorCounts = telemetry.ColorCounts(g.particles)

	slog.Info("particle field generated",
		"text", cfg.Text.Content,
		"particles", len(g.particles),
		"gold", g.colorCounts[particles.Gold],
		"white_gold", g.colorCounts[particles.WhiteGold],
		"emerald", g.colorCounts[particles.Emerald],
		"seed", opts.Seed,
	)

	g.rig = scene.NewRigFromConfig(cfg)
	g.cam = newCamera(cfg)

	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.statsCollector, g.bookmarkDetector = newConvergenceTelemetry(cfg)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}
	if err := g.outputManager.WriteParticles(g.particles); err != nil {
		slog.Error("failed to write particles", "error", err)
	}

	if !opts.Headless {
		g.initRendering()
		if opts.WatchConfig != "" {
			w, err := config.Watch(opts.WatchConfig, config.DefaultReloadDebounce)
			if err != nil {
				slog.Warn("config hot reload disabled", "error", err)
			} else {
				g.watcher = w
			}
		}
	}
	return g
}

// initRendering creates the GPU-side renderers and the overlay.
func (g *Game) initRendering() {
	cfg := g.cfg
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	g.background = renderer.NewBackgroundRenderer(w, h, cfg.Derived.Background, cfg.Derived.Glow)
	g.background.Init()

	g.gems = renderer.NewGemRenderer(g.particles, cfg.ParticlePalette(), renderer.Fog{
		Color: cfg.Derived.Background,
		Near:  float32(cfg.Fog.Near),
		Far:   float32(cfg.Fog.Far),
	})
	g.gems.Init()

	theme := ui.ThemeFromConfig(cfg)
	g.overlay = ui.NewOverlay(theme, ui.DefaultOverlayText())
	g.hud = ui.NewHUD(theme)
}

// Update advances one rendered frame using the window's frame time.
func (g *Game) Update() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.pollConfig()
	g.handleInput()

	g.step(clampFrameDT(float64(rl.GetFrameTime())))
}

// clampFrameDT limits a measured frame delta to maxFrameDT.
func clampFrameDT(dt float64) float64 {
	if dt > maxFrameDT {
		return maxFrameDT
	}
	return dt
}

// UpdateHeadless advances one frame at the configured fixed rate without
// touching raylib. The state toggles on its own every toggleEvery seconds.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()

	dt := g.cfg.Derived.FrameDT
	if g.toggleEvery > 0 && g.elapsed+dt >= g.nextToggle {
		g.Toggle()
		g.nextToggle += g.toggleEvery
	}

	g.step(dt)
	g.perfCollector.RecordPresent()
}

// Advance steps one frame of dt seconds without input or auto-toggle.
// Offline tools use it to drive a windowed game to a chosen moment.
func (g *Game) Advance(dt float64) {
	g.perfCollector.StartFrame()
	g.step(dt)
	g.perfCollector.EndFrame()
}

// step runs the simulation part of a frame: camera, lights, particles, telemetry.
func (g *Game) step(dt float64) {
	g.elapsed += dt

	g.perfCollector.StartPhase(telemetry.PhaseCamera)
	g.cam.Update(dt, g.state)

	g.perfCollector.StartPhase(telemetry.PhaseLights)
	g.rig.Update(g.elapsed)

	g.perfCollector.StartPhase(telemetry.PhaseAnimate)
	g.anim.Update(dt, g.elapsed, g.state)

	if g.headless {
		g.perfCollector.EndFrame()
	}

	g.frame++
	g.flushTelemetry()
}

// SetState sets the animation target directly.
func (g *Game) SetState(state particles.AppState) {
	if state != g.state {
		g.Toggle()
	}
}

// Toggle switches between the scattered cloud and the assembled text.
func (g *Game) Toggle() {
	g.state = g.state.Toggle()
	slog.Info("state changed", "state", g.state.String(), "frame", g.frame, "time", g.elapsed)
}

// State returns the current animation target.
func (g *Game) State() particles.AppState {
	return g.state
}

// Frame returns the number of frames stepped so far.
func (g *Game) Frame() int {
	return g.frame
}

// Elapsed returns the simulated time in seconds.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Particles returns the generated particle list.
func (g *Game) Particles() []particles.Particle {
	return g.particles
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.gems != nil {
		g.gems.Unload()
	}
	if g.background != nil {
		g.background.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
