package game

import (
	"image"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/glint/camera"
	"github.com/pthm-cable/glint/config"
	"github.com/pthm-cable/glint/particles"
	"github.com/pthm-cable/glint/telemetry"
)

// newRasterizer loads the configured font. A font that cannot be loaded
// yields a rasterizer that always fails, so generation degrades to an
// empty field instead of aborting startup.
func newRasterizer(cfg *config.Config) particles.Rasterizer {
	gr, err := particles.LoadGlyphRasterizer(cfg.Text.FontPath, cfg.Text.FontSize)
	if err != nil {
		slog.Warn("font unavailable", "path", cfg.Text.FontPath, "error", err)
		return particles.RasterizerFunc(func(string, int, int) (*image.Gray, error) {
			return nil, err
		})
	}
	return gr
}

// generateParticles runs the generator once.
func generateParticles(cfg *config.Config, rng *rand.Rand) []particles.Particle {
	raster := newRasterizer(cfg)
	if gr, ok := raster.(*particles.GlyphRasterizer); ok {
		defer gr.Close()
	}
	return particles.NewGenerator(cfg.GeneratorConfig(), raster, rng).Generate()
}

// newConvergenceTelemetry creates the settle stats collector and the
// bookmark detector from the animation and telemetry sections.
func newConvergenceTelemetry(cfg *config.Config) (*telemetry.StatsCollector, *telemetry.BookmarkDetector) {
	stats := telemetry.NewStatsCollector(cfg.Animation.SettleDistance)
	bookmarks := telemetry.NewBookmarkDetector(
		cfg.Telemetry.SettleThreshold,
		cfg.Telemetry.SpikeFactor,
		cfg.Telemetry.SpikeHistory,
	)
	return stats, bookmarks
}

// newCamera creates the orbit camera from the camera section.
func newCamera(cfg *config.Config) *camera.Camera {
	c := cfg.Camera
	cam := camera.New(c.Distance, c.FOV, c.MinDistance, c.MaxDistance)
	cam.AutoRotateSpeed = c.AutoRotateSpeed
	cam.Damping = c.Damping
	return cam
}
