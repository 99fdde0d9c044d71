// Package scene holds the decorative light rig as an ECS world. Lights never
// interact with particle logic; they only feed the renderer's shader uniforms.
package scene

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LightKind identifies how a light contributes to shading.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightPoint
	LightSpot
)

// Light is a light source component.
type Light struct {
	Kind      LightKind
	Color     color.RGBA
	Intensity float32
	Position  r3.Vec
	Distance  float32 // Falloff range for point lights (0 = infinite)
}

// Orbit moves a light along independent sinusoids:
// x = Base.X + sin(t*FreqX)*AmpX, y = Base.Y + cos(t*FreqY)*AmpY, z = Base.Z.
type Orbit struct {
	Base        r3.Vec
	AmpX, FreqX float64
	AmpY, FreqY float64
}

// At returns the orbit position at elapsed time t.
func (o *Orbit) At(t float64) r3.Vec {
	return r3.Vec{
		X: o.Base.X + math.Sin(t*o.FreqX)*o.AmpX,
		Y: o.Base.Y + math.Cos(t*o.FreqY)*o.AmpY,
		Z: o.Base.Z,
	}
}
