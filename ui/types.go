// Package ui draws the screen-space overlay on top of the particle field:
// the title block, the state toggle, the status dots and the tagline.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/glint/config"
)

// Theme holds UI styling constants.
type Theme struct {
	Gold        rl.Color
	WhiteGold   rl.Color
	Emerald     rl.Color
	Glow        rl.Color
	Dim         rl.Color
	ButtonBg    rl.Color
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	BarBg       rl.Color

	Margin        int32
	Padding       int32
	LineHeight    int32
	LabelWidth    int32
	BarHeight     int32
	FontSize      int32
	TitleFontSize int32
	TaglineSize   int32
	DotRadius     float32
	ButtonWidth   float32
	ButtonHeight  float32
	TaglineFadeIn float32 // Seconds for the tagline to reach full opacity
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Gold:        rl.Color{R: 0xD4, G: 0xAF, B: 0x37, A: 255},
		WhiteGold:   rl.Color{R: 0xFF, G: 0xF8, B: 0xE7, A: 255},
		Emerald:     rl.Color{R: 0x04, G: 0x63, B: 0x07, A: 255},
		Glow:        rl.Color{R: 0x4F, G: 0xFF, B: 0xB0, A: 255},
		Dim:         rl.Color{R: 60, G: 70, B: 65, A: 255},
		ButtonBg:    rl.Color{R: 0, G: 15, B: 8, A: 200},
		PanelBg:     rl.Color{R: 0, G: 20, B: 12, A: 220},
		PanelBorder: rl.Color{R: 0x04, G: 0x63, B: 0x07, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.Color{R: 0xFF, G: 0xF8, B: 0xE7, A: 255},
		BarBg:       rl.Color{R: 30, G: 40, B: 35, A: 255},

		Margin:        40,
		Padding:       10,
		LineHeight:    16,
		LabelWidth:    90,
		BarHeight:     10,
		FontSize:      12,
		TitleFontSize: 28,
		TaglineSize:   18,
		DotRadius:     5,
		ButtonWidth:   160,
		ButtonHeight:  40,
		TaglineFadeIn: 1.5,
	}
}

// ThemeFromConfig returns the default theme with palette colors taken from cfg.
func ThemeFromConfig(cfg *config.Config) Theme {
	t := DefaultTheme()
	t.Gold = cfg.Derived.Gold
	t.WhiteGold = cfg.Derived.WhiteGold
	t.Emerald = cfg.Derived.Emerald
	t.Glow = cfg.Derived.Glow
	t.PanelBorder = cfg.Derived.Emerald
	t.ValueColor = cfg.Derived.WhiteGold
	return t
}

// withAlpha returns c with its alpha scaled by a in [0, 1].
func withAlpha(c rl.Color, a float32) rl.Color {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	c.A = uint8(float32(c.A) * a)
	return c
}

// packColor packs a color as 0xRRGGBBAA for raygui style properties.
func packColor(c rl.Color) int64 {
	return int64(uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A))
}
