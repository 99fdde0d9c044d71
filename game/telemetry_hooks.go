package game

import "log/slog"

// flushTelemetry samples convergence stats once per stats window, logging
// them, checking for bookmarks and writing CSV rows when enabled.
func (g *Game) flushTelemetry() {
	if g.statsWindowSec <= 0 || g.elapsed < g.nextFlush {
		return
	}
	g.nextFlush += g.statsWindowSec

	stats := g.statsCollector.Compute(g.anim, g.state, g.frame, g.elapsed)
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.logStats {
		slog.Info("frame", "stats", stats)
		slog.Info("perf", "stats", perfStats)
	}

	if err := g.outputManager.WriteFrame(stats); err != nil {
		slog.Error("failed to write frame stats", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	bookmarks := g.bookmarkDetector.Check(stats, perfStats)
	for _, b := range bookmarks {
		b.LogBookmark()
	}
	if err := g.outputManager.WriteBookmarks(bookmarks); err != nil {
		slog.Error("failed to write bookmarks", "error", err)
	}
}
