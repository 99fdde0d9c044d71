// Package particles generates glyph-shaped particle fields and animates them
// between a scattered cloud and the assembled text. It has no rendering
// dependency: callers feed Transforms into whatever draws the instances.
package particles

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// AppState selects which target every particle animates toward.
type AppState uint8

const (
	Scattered AppState = iota // Particles drift toward their scatter positions
	TextShape                 // Particles assemble into the glyph
)

// String returns the canonical upper-case name of the state.
func (s AppState) String() string {
	switch s {
	case Scattered:
		return "SCATTERED"
	case TextShape:
		return "TEXT_SHAPE"
	default:
		return "UNKNOWN"
	}
}

// Toggle returns the opposite state.
func (s AppState) Toggle() AppState {
	if s == TextShape {
		return Scattered
	}
	return TextShape
}

// ActionLabel is the label of the control that leaves this state.
func (s AppState) ActionLabel() string {
	if s == TextShape {
		return "Disperse"
	}
	return "Materialize"
}

// PaletteColor indexes the fixed three-color gem palette.
type PaletteColor uint8

const (
	Gold PaletteColor = iota
	WhiteGold
	Emerald

	NumPaletteColors = 3
)

// String returns the color name.
func (c PaletteColor) String() string {
	switch c {
	case Gold:
		return "gold"
	case WhiteGold:
		return "white_gold"
	case Emerald:
		return "emerald"
	default:
		return "unknown"
	}
}

// Palette maps each PaletteColor to a display color.
type Palette [NumPaletteColors]color.RGBA

// DefaultPalette returns metallic gold, white gold and deep emerald.
func DefaultPalette() Palette {
	return Palette{
		Gold:      {R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF},
		WhiteGold: {R: 0xFF, G: 0xF8, B: 0xE7, A: 0xFF},
		Emerald:   {R: 0x04, G: 0x63, B: 0x07, A: 0xFF},
	}
}

// Particle is one gem instance. It is never modified after generation.
type Particle struct {
	TextPosition    r3.Vec
	ScatterPosition r3.Vec
	Color           PaletteColor
	Scale           float64 // [0.5, 1.0)
	Layer           int     // depth layer the particle was emitted on
}

// Target returns the position the particle animates toward in the given state.
func (p *Particle) Target(state AppState) r3.Vec {
	if state == TextShape {
		return p.TextPosition
	}
	return p.ScatterPosition
}

// Transform is the per-instance draw state written every frame.
type Transform struct {
	Position r3.Vec
	Rotation r3.Vec // Euler angles in radians (X, Y, Z)
	Scale    float64
}

// GroupByColor returns the particle indices for each palette color, in
// ascending order. Renderers draw one instanced batch per group.
func GroupByColor(ps []Particle) [NumPaletteColors][]int {
	var groups [NumPaletteColors][]int
	for i := range ps {
		c := ps[i].Color
		if int(c) >= NumPaletteColors {
			continue
		}
		groups[c] = append(groups[c], i)
	}
	return groups
}
