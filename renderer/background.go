package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BackgroundRenderer fills the screen with the base color and a soft
// radial glow behind the text.
type BackgroundRenderer struct {
	shader        rl.Shader
	resolutionLoc int32
	baseColorLoc  int32
	glowColorLoc  int32
	glowLoc       int32

	screenW, screenH float32
	baseColor        [3]float32
	glowColor        [3]float32
	initialized      bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, base, glow color.RGBA) *BackgroundRenderer {
	return &BackgroundRenderer{
		screenW:   float32(screenW),
		screenH:   float32(screenH),
		baseColor: rgb(base),
		glowColor: rgb(glow),
	}
}

// Init initializes the renderer (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.shader = rl.LoadShaderFromMemory("", shaderSource("background.fs"))
	b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
	b.baseColorLoc = rl.GetShaderLocation(b.shader, "baseColor")
	b.glowColorLoc = rl.GetShaderLocation(b.shader, "glowColor")
	b.glowLoc = rl.GetShaderLocation(b.shader, "glowStrength")

	rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{b.screenW, b.screenH}, rl.ShaderUniformVec2)
	rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(b.shader, b.glowColorLoc, b.glowColor[:], rl.ShaderUniformVec3)

	b.initialized = true
}

// SetColors replaces the base and glow colors.
func (b *BackgroundRenderer) SetColors(base, glow color.RGBA) {
	b.baseColor = rgb(base)
	b.glowColor = rgb(glow)
	if b.initialized {
		rl.SetShaderValue(b.shader, b.baseColorLoc, b.baseColor[:], rl.ShaderUniformVec3)
		rl.SetShaderValue(b.shader, b.glowColorLoc, b.glowColor[:], rl.ShaderUniformVec3)
	}
}

// Resize updates the screen dimensions after a window resize or fullscreen toggle.
func (b *BackgroundRenderer) Resize(w, h float32) {
	if w == b.screenW && h == b.screenH {
		return
	}
	b.screenW = w
	b.screenH = h
	if b.initialized {
		rl.SetShaderValue(b.shader, b.resolutionLoc, []float32{w, h}, rl.ShaderUniformVec2)
	}
}

// Draw renders the background. strength scales the glow; it rises as the
// text assembles.
func (b *BackgroundRenderer) Draw(strength float32) {
	if !b.initialized {
		b.Init()
	}

	rl.SetShaderValue(b.shader, b.glowLoc, []float32{strength}, rl.ShaderUniformFloat)

	rl.BeginShaderMode(b.shader)
	rl.DrawRectangle(0, 0, int32(b.screenW), int32(b.screenH), rl.White)
	rl.EndShaderMode()
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadShader(b.shader)
		b.initialized = false
	}
}
