package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.cam.Reset()
	}
	if rl.IsKeyPressed(rl.KeyF3) {
		g.hud.Toggle()
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() && !rl.IsWindowFullscreen() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.background != nil {
		g.background.Resize(w, h)
	}
}

// handleCameraInput orbits on left-drag and zooms on the mouse wheel.
func (g *Game) handleCameraInput() {
	c := g.cfg.Camera
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !g.overButton(mouse) {
		g.dragging = true
		g.lastMouse = mouse
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		g.dragging = false
	}
	if g.dragging {
		dx := float64(mouse.X - g.lastMouse.X)
		dy := float64(mouse.Y - g.lastMouse.Y)
		// Dragging right swings the camera left around the target
		g.cam.Rotate(-dx*c.RotateSensitivity, dy*c.RotateSensitivity)
		g.lastMouse = mouse
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 - float64(wheel)*c.ZoomStep)
	}
}

// overButton reports whether p lies on the toggle button's strip at the
// bottom of the screen, so clicks there do not start an orbit drag.
func (g *Game) overButton(p rl.Vector2) bool {
	return p.Y > g.screenHeight-100
}
