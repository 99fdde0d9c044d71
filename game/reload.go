package game

import (
	"log/slog"

	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/renderer"
	"github.com/pthm-cable/glint/scene"
	"github.com/pthm-cable/glint/ui"
)

// pollConfig applies a pending hot-reloaded config, if any.
func (g *Game) pollConfig() {
	if g.watcher == nil {
		return
	}
	select {
	case cfg := <-g.watcher.Updates():
		g.applyConfig(cfg)
	default:
	}
}

// applyConfig swaps in everything that can change while running: animation
// tuning, telemetry thresholds, colors, lights, fog and camera limits. The
// particle layout is fixed once generated, so text and sampling changes wait
// for a restart.
func (g *Game) applyConfig(cfg *config.Config) {
	old := g.cfg
	if cfg.GeneratorConfig() != old.GeneratorConfig() ||
		cfg.Text.FontPath != old.Text.FontPath ||
		cfg.Text.FontSize != old.Text.FontSize {
		slog.Warn("text and sampling changes take effect on restart")
	}

	g.cfg = cfg
	g.anim.SetConfig(cfg.AnimatorConfig())
	g.rig = scene.NewRigFromConfig(cfg)
	if cfg.Animation.SettleDistance != old.Animation.SettleDistance || cfg.Telemetry != old.Telemetry {
		g.statsCollector, g.bookmarkDetector = newConvergenceTelemetry(cfg)
	}
	if cfg.Telemetry.StatsWindow != old.Telemetry.StatsWindow {
		g.statsWindowSec = cfg.Telemetry.StatsWindow
		g.nextFlush = g.elapsed + g.statsWindowSec
	}
	if cfg.Telemetry.PerfWindow != old.Telemetry.PerfWindow {
		slog.Warn("telemetry.perf_window takes effect on restart")
	}

	c := cfg.Camera
	g.cam.FOV = c.FOV
	g.cam.AutoRotateSpeed = c.AutoRotateSpeed
	g.cam.Damping = c.Damping
	g.cam.MinDistance = c.MinDistance
	g.cam.MaxDistance = c.MaxDistance
	g.cam.SetDistance(g.cam.Distance)

	if g.gems != nil {
		g.gems.SetPalette(cfg.ParticlePalette())
		g.gems.SetFog(renderer.Fog{
			Color: cfg.Derived.Background,
			Near:  float32(cfg.Fog.Near),
			Far:   float32(cfg.Fog.Far),
		})
	}
	if g.background != nil {
		g.background.SetColors(cfg.Derived.Background, cfg.Derived.Glow)
	}
	if g.overlay != nil {
		theme := ui.ThemeFromConfig(cfg)
		g.overlay.SetTheme(theme)
		g.hud.SetTheme(theme)
	}

	slog.Info("config applied", "state", g.state.String(), "frame", g.frame)
}
