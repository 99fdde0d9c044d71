package renderer

import (
	"embed"
	"image/color"
)

//go:embed shaders/*.vs shaders/*.fs
var shaderFS embed.FS

// shaderSource returns an embedded shader file, or "" for an empty name
// so raylib falls back to its default stage.
func shaderSource(name string) string {
	if name == "" {
		return ""
	}
	data, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		panic("renderer: missing embedded shader " + name)
	}
	return string(data)
}

// rgb converts a color to normalized float components.
func rgb(c color.RGBA) [3]float32 {
	return [3]float32{
		float32(c.R) / 255.0,
		float32(c.G) / 255.0,
		float32(c.B) / 255.0,
	}
}
