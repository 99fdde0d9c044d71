package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/particles"
)

// OverlayText holds the overlay's copy.
type OverlayText struct {
	Title    string
	Subtitle string
	Tagline  string
}

// DefaultOverlayText returns the stock copy.
func DefaultOverlayText() OverlayText {
	return OverlayText{
		Title:    "ARIX SIGNATURE",
		Subtitle: "Gilded Particle Field",
		Tagline:  "Where Creation Begins",
	}
}

// Overlay draws the title block, the toggle button, two status dots and the
// tagline.
type Overlay struct {
	theme Theme
	text  OverlayText

	taglineAlpha float32
	styled       bool
}

// NewOverlay creates an overlay.
func NewOverlay(theme Theme, text OverlayText) *Overlay {
	return &Overlay{theme: theme, text: text}
}

// SetTheme replaces the theme; raygui style is reapplied on the next Draw.
func (o *Overlay) SetTheme(theme Theme) {
	o.theme = theme
	o.styled = false
}

// applyStyle pushes the theme into raygui's button style once a window exists.
func (o *Overlay) applyStyle() {
	if o.styled {
		return
	}
	t := o.theme
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
	gui.SetStyle(gui.BUTTON, gui.BASE_COLOR_NORMAL, gui.PropertyValue(packColor(t.ButtonBg)))
	gui.SetStyle(gui.BUTTON, gui.BORDER_COLOR_NORMAL, gui.PropertyValue(packColor(t.Gold)))
	gui.SetStyle(gui.BUTTON, gui.TEXT_COLOR_NORMAL, gui.PropertyValue(packColor(t.Gold)))
	gui.SetStyle(gui.BUTTON, gui.BASE_COLOR_FOCUSED, gui.PropertyValue(packColor(t.Emerald)))
	gui.SetStyle(gui.BUTTON, gui.BORDER_COLOR_FOCUSED, gui.PropertyValue(packColor(t.Glow)))
	gui.SetStyle(gui.BUTTON, gui.TEXT_COLOR_FOCUSED, gui.PropertyValue(packColor(t.WhiteGold)))
	gui.SetStyle(gui.BUTTON, gui.BASE_COLOR_PRESSED, gui.PropertyValue(packColor(t.Gold)))
	gui.SetStyle(gui.BUTTON, gui.BORDER_COLOR_PRESSED, gui.PropertyValue(packColor(t.WhiteGold)))
	gui.SetStyle(gui.BUTTON, gui.TEXT_COLOR_PRESSED, gui.PropertyValue(packColor(t.ButtonBg)))
	o.styled = true
}

// Update advances the tagline fade. It fades in over TaglineFadeIn seconds
// while the text is assembled and out at the same rate otherwise.
func (o *Overlay) Update(dt float32, state particles.AppState) {
	rate := dt / o.theme.TaglineFadeIn
	if state == particles.TextShape {
		o.taglineAlpha += rate
	} else {
		o.taglineAlpha -= rate
	}
	if o.taglineAlpha < 0 {
		o.taglineAlpha = 0
	}
	if o.taglineAlpha > 1 {
		o.taglineAlpha = 1
	}
}

// Draw renders the overlay and reports whether the toggle was clicked.
func (o *Overlay) Draw(state particles.AppState, screenW, screenH int32) bool {
	o.applyStyle()
	t := o.theme

	// Title block, top left
	rl.DrawText(o.text.Title, t.Margin, t.Margin, t.TitleFontSize, t.Gold)
	rl.DrawText(o.text.Subtitle, t.Margin, t.Margin+t.TitleFontSize+4, t.FontSize+2, t.LabelColor)

	// Toggle button, bottom center
	btn := rl.Rectangle{
		X:      float32(screenW)/2 - t.ButtonWidth/2,
		Y:      float32(screenH) - float32(t.Margin) - t.ButtonHeight,
		Width:  t.ButtonWidth,
		Height: t.ButtonHeight,
	}
	toggled := gui.Button(btn, state.ActionLabel())

	// Status dots under the title: first lit while scattered, second while assembled
	dotY := float32(t.Margin + t.TitleFontSize + t.FontSize + 20)
	dotX := float32(t.Margin) + t.DotRadius
	first, second := t.Dim, t.Dim
	if state == particles.Scattered {
		first = t.Gold
	} else {
		second = t.Emerald
	}
	rl.DrawCircleV(rl.Vector2{X: dotX, Y: dotY}, t.DotRadius, first)
	rl.DrawCircleV(rl.Vector2{X: dotX + t.DotRadius*4, Y: dotY}, t.DotRadius, second)
	if state == particles.TextShape {
		rl.DrawCircleLines(int32(dotX+t.DotRadius*4), int32(dotY), t.DotRadius+3, withAlpha(t.Glow, 0.6))
	}

	// Tagline above the button
	if o.taglineAlpha > 0 {
		w := rl.MeasureText(o.text.Tagline, t.TaglineSize)
		y := int32(btn.Y) - t.TaglineSize - 16
		rl.DrawText(o.text.Tagline, screenW/2-w/2, y, t.TaglineSize, withAlpha(t.WhiteGold, o.taglineAlpha))
	}

	return toggled
}
