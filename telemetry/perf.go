package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one rendered frame.
const (
	PhaseInput   = "input"
	PhaseCamera  = "camera"
	PhaseLights  = "lights"
	PhaseAnimate = "animate"
	PhaseRender  = "render"
	PhaseUI      = "ui"
)

// Phases lists every phase in pipeline order.
var Phases = []string{PhaseInput, PhaseCamera, PhaseLights, PhaseAnimate, PhaseRender, PhaseUI}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	FrameDuration time.Duration
	Phases        map[string]time.Duration
}

// PerfCollector tracks per-phase frame timing over a rolling window.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	frameStart    time.Time
	phaseStart    time.Time
	lastPhase     string

	// Wall-clock spacing between frames (vsync included)
	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and begins timing the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the running phase and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		FrameDuration: now.Sub(p.frameStart),
		Phases:        p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordPresent marks a presented frame for FPS measurement.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64
	FPS      float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.presentGap > 0 {
		stats.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.FrameDuration
		if i == 0 || s.FrameDuration < stats.MinFrame {
			stats.MinFrame = s.FrameDuration
		}
		if s.FrameDuration > stats.MaxFrame {
			stats.MaxFrame = s.FrameDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	n := time.Duration(p.sampleCount)
	stats.AvgFrame = total / n
	for phase, sum := range phaseSum {
		avg := sum / n
		stats.PhaseAvg[phase] = avg
		if stats.AvgFrame > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgFrame) * 100
		}
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("min_frame_us", s.MinFrame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat row for perf.csv.
type PerfStatsCSV struct {
	Frame      int     `csv:"frame"`
	AvgFrameUS int64   `csv:"avg_frame_us"`
	MaxFrameUS int64   `csv:"max_frame_us"`
	FPS        float64 `csv:"fps"`
	InputPct   float64 `csv:"input_pct"`
	CameraPct  float64 `csv:"camera_pct"`
	LightsPct  float64 `csv:"lights_pct"`
	AnimatePct float64 `csv:"animate_pct"`
	RenderPct  float64 `csv:"render_pct"`
	UIPct      float64 `csv:"ui_pct"`
}

// ToCSV flattens the stats for export.
func (s PerfStats) ToCSV(frame int) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:      frame,
		AvgFrameUS: s.AvgFrame.Microseconds(),
		MaxFrameUS: s.MaxFrame.Microseconds(),
		FPS:        s.FPS,
		InputPct:   s.PhasePct[PhaseInput],
		CameraPct:  s.PhasePct[PhaseCamera],
		LightsPct:  s.PhasePct[PhaseLights],
		AnimatePct: s.PhasePct[PhaseAnimate],
		RenderPct:  s.PhasePct[PhaseRender],
		UIPct:      s.PhasePct[PhaseUI],
	}
}
