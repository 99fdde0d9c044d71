package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/telemetry"
)

// HUDData holds everything the debug HUD shows.
type HUDData struct {
	Frame  telemetry.FrameStats
	Perf   telemetry.PerfStats
	Colors [3]int // Gold, white gold, emerald counts
}

// HUD renders the debug panel in the top right corner.
type HUD struct {
	renderer *Renderer
	width    int32
	visible  bool
}

// NewHUD creates a hidden HUD.
func NewHUD(theme Theme) *HUD {
	return &HUD{renderer: NewRenderer(theme), width: 230}
}

// SetTheme replaces the theme.
func (h *HUD) SetTheme(theme Theme) {
	h.renderer.Theme = theme
}

// Toggle switches HUD visibility.
func (h *HUD) Toggle() bool {
	h.visible = !h.visible
	return h.visible
}

// IsVisible returns whether the HUD is shown.
func (h *HUD) IsVisible() bool {
	return h.visible
}

// Draw renders the HUD if visible.
func (h *HUD) Draw(data HUDData, screenW int32) {
	if !h.visible {
		return
	}
	r := h.renderer
	t := r.Theme
	x := screenW - h.width - t.Padding
	y := t.Padding
	height := t.LineHeight*10 + t.Padding*2
	r.DrawPanel(x, y, h.width, height)

	cx := x + t.Padding
	cy := y + t.Padding
	inner := h.width - t.Padding*2

	cy = r.DrawLabelValue(cx, cy, "State", data.Frame.State)
	cy = r.DrawLabelValue(cx, cy, "Particles", fmt.Sprintf("%d", data.Frame.Particles))
	cy = r.DrawLabelValue(cx, cy, "Colors", fmt.Sprintf("%d / %d / %d", data.Colors[0], data.Colors[1], data.Colors[2]))
	cy = r.DrawLabelValue(cx, cy, "Mean dist", fmt.Sprintf("%.3f", data.Frame.MeanDistance))
	cy = r.DrawLabelValue(cx, cy, "Max dist", fmt.Sprintf("%.3f", data.Frame.MaxDistance))
	cy = r.DrawBar(cx, cy, "Settled", float32(data.Frame.SettledFraction), inner, t.Emerald)
	cy = r.DrawLabelValue(cx, cy, "FPS", fmt.Sprintf("%.0f", data.Perf.FPS))
	cy = r.DrawLabelValue(cx, cy, "Frame", fmt.Sprintf("%v", data.Perf.AvgFrame))
	r.DrawLabelValue(cx, cy, "Render", fmt.Sprintf("%.0f%%", data.Perf.PhasePct[telemetry.PhaseRender]))
}

// DrawControls renders the control legend at the bottom left of the screen.
func (h *HUD) DrawControls(screenH int32, controls string) {
	rl.DrawText(controls, h.renderer.Theme.Padding, screenH-20, h.renderer.Theme.FontSize, h.renderer.Theme.Dim)
}
