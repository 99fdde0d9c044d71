package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/glint/particles"
	"github.com/pthm-cable/glint/telemetry"
	"github.com/pthm-cable/glint/ui"
)

// controlsLegend is shown at the bottom left of the window.
const controlsLegend = "[Space] toggle  [Drag] orbit  [Wheel] zoom  [R] reset view  [F3] stats  [F11] fullscreen"

// Draw renders the frame: background, gems in 3D, then the overlay.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	g.DrawScene()

	g.perfCollector.StartPhase(telemetry.PhaseUI)
	g.overlay.Update(float32(rl.GetFrameTime()), g.state)
	w, h := int32(g.screenWidth), int32(g.screenHeight)
	if g.overlay.Draw(g.state, w, h) {
		g.Toggle()
	}
	g.hud.Draw(ui.HUDData{
		Frame:  g.lastStats,
		Perf:   g.perfCollector.Stats(),
		Colors: g.colorCounts,
	}, w)
	g.hud.DrawControls(h, controlsLegend)

	rl.EndDrawing()

	g.perfCollector.EndFrame()
	g.perfCollector.RecordPresent()
}

// DrawScene draws the background and the gems into the current render
// target. It does not begin or end drawing.
func (g *Game) DrawScene() {
	rl.ClearBackground(g.cfg.Derived.Background)

	g.background.Draw(g.glowStrength())

	cam := g.rlCamera()
	rl.BeginMode3D(cam)
	g.gems.SetLights(g.rig.Lights())
	g.gems.Draw(cam.Position, g.anim.Transforms())
	rl.EndMode3D()
}

// rlCamera converts the orbit camera into a raylib perspective camera.
func (g *Game) rlCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(g.cam.Position()),
		Target:     vec3(g.cam.Target),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       float32(g.cam.FOV),
		Projection: rl.CameraPerspective,
	}
}

// glowStrength brightens the background glow as the text assembles.
func (g *Game) glowStrength() float32 {
	base := 0.15
	if g.state == particles.TextShape && g.lastStats.Particles > 0 {
		base += 0.35 * g.lastStats.SettledFraction
	}
	return float32(math.Min(base, 0.5))
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}
