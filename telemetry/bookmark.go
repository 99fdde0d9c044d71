package telemetry

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkTransitionStarted BookmarkType = "transition_started"
	BookmarkTransitionSettled BookmarkType = "transition_settled"
	BookmarkFrameSpike        BookmarkType = "frame_spike"
)

// Bookmark marks a notable moment in a run.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Frame       int          `csv:"frame"`
	TimeSec     float64      `csv:"time"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"time", b.TimeSec,
		"description", b.Description,
	)
}

// BookmarkDetector watches windowed stats for state changes, completed
// transitions and frame time spikes.
type BookmarkDetector struct {
	settleThreshold float64
	spikeFactor     float64

	state        string
	stateSince   float64
	settled      bool
	seen         bool
	frameHistory []float64
	historyIdx   int
	historyFull  bool
}

// NewBookmarkDetector creates a detector. A transition counts as settled once
// SettledFraction reaches settleThreshold; a window whose max frame time
// exceeds spikeFactor times the rolling average frame time is a spike.
func NewBookmarkDetector(settleThreshold, spikeFactor float64, historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		settleThreshold: settleThreshold,
		spikeFactor:     spikeFactor,
		frameHistory:    make([]float64, historySize),
	}
}

// Check analyzes the latest window and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats FrameStats, perf PerfStats) []Bookmark {
	var bookmarks []Bookmark

	if !bd.seen || stats.State != bd.state {
		if bd.seen {
			bookmarks = append(bookmarks, Bookmark{
				Type:        BookmarkTransitionStarted,
				Frame:       stats.Frame,
				TimeSec:     stats.TimeSec,
				Description: fmt.Sprintf("%s -> %s", bd.state, stats.State),
			})
		}
		bd.state = stats.State
		bd.stateSince = stats.TimeSec
		bd.settled = false
		bd.seen = true
	}

	if !bd.settled && stats.Particles > 0 && stats.SettledFraction >= bd.settleThreshold {
		bd.settled = true
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkTransitionSettled,
			Frame:       stats.Frame,
			TimeSec:     stats.TimeSec,
			Description: fmt.Sprintf("%s settled after %.2fs", stats.State, stats.TimeSec-bd.stateSince),
		})
	}

	maxMs := float64(perf.MaxFrame.Microseconds()) / 1000
	if avg, ok := bd.averageFrameMs(); ok && avg > 0 && maxMs > bd.spikeFactor*avg {
		bookmarks = append(bookmarks, Bookmark{
			Type:        BookmarkFrameSpike,
			Frame:       stats.Frame,
			TimeSec:     stats.TimeSec,
			Description: fmt.Sprintf("max frame %.2fms vs %.2fms average", maxMs, avg),
		})
	}
	if perf.AvgFrame > 0 {
		bd.addFrameTime(float64(perf.AvgFrame.Microseconds()) / 1000)
	}

	return bookmarks
}

func (bd *BookmarkDetector) addFrameTime(ms float64) {
	bd.frameHistory[bd.historyIdx] = ms
	bd.historyIdx = (bd.historyIdx + 1) % len(bd.frameHistory)
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

// averageFrameMs is only reported once the history has filled.
func (bd *BookmarkDetector) averageFrameMs() (float64, bool) {
	if !bd.historyFull {
		return 0, false
	}
	return stat.Mean(bd.frameHistory, nil), true
}
