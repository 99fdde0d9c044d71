package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAnimate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[PhaseAnimate]; !ok {
		t.Error("expected animate phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseRender]; !ok {
		t.Error("expected render phase to be tracked")
	}
	if stats.MinFrame > stats.MaxFrame {
		t.Errorf("min %v exceeds max %v", stats.MinFrame, stats.MaxFrame)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(100 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("expected slow phase (%v%%) > fast phase (%v%%)", stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 12; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAnimate)
		pc.EndFrame()
	}

	if pc.sampleCount != 5 {
		t.Errorf("expected window capped at 5 samples, got %d", pc.sampleCount)
	}
	if pc.writeIndex != 12%5 {
		t.Errorf("expected write index %d, got %d", 12%5, pc.writeIndex)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgFrame != 0 {
		t.Error("expected zero avg frame duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_PresentTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordPresent()
	time.Sleep(16 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	// Sleep overshoots, so only bound from above
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frames, got %v", stats.FPS)
	}
}

func TestPerfStatsToCSVCoversEveryPhase(t *testing.T) {
	stats := PerfStats{PhasePct: map[string]float64{
		PhaseInput:   5,
		PhaseCamera:  10,
		PhaseLights:  15,
		PhaseAnimate: 20,
		PhaseRender:  30,
		PhaseUI:      20,
	}}
	row := stats.ToCSV(7)

	sum := row.InputPct + row.CameraPct + row.LightsPct + row.AnimatePct + row.RenderPct + row.UIPct
	if sum != 100 {
		t.Errorf("expected phase columns to sum to 100, got %v", sum)
	}
	if row.InputPct != 5 {
		t.Errorf("expected input_pct 5, got %v", row.InputPct)
	}
	if row.Frame != 7 {
		t.Errorf("expected frame 7, got %d", row.Frame)
	}
}
