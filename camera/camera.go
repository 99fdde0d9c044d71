// Package camera provides an orbit camera around the particle field.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/glint/particles"
)

// maxPitch keeps the camera off the poles so the up vector stays valid.
const maxPitch = math.Pi/2 - 0.05

// Camera orbits a target point on a sphere of variable radius.
// Auto-rotation only runs while the field is scattered.
type Camera struct {
	// Target is the orbit center
	Target r3.Vec

	// Spherical coordinates around Target (radians, scene units)
	Yaw, Pitch float64
	Distance   float64

	// FOV is the vertical field of view in degrees
	FOV float64

	// Zoom constraints
	MinDistance, MaxDistance float64

	// AutoRotateSpeed of 1.0 completes one orbit per minute
	AutoRotateSpeed float64

	// Damping is the fraction of user rotation velocity consumed per frame at 60fps
	Damping float64

	// Pending user rotation velocity (radians per frame at 60fps)
	velYaw, velPitch float64

	initialDistance float64
}

// New creates a camera looking at the origin from +Z.
func New(distance, fov, minDistance, maxDistance float64) *Camera {
	c := &Camera{
		FOV:             fov,
		MinDistance:     minDistance,
		MaxDistance:     maxDistance,
		AutoRotateSpeed: 0.5,
		Damping:         0.05,
		initialDistance: distance,
	}
	c.Reset()
	return c
}

// Update advances damping and auto-rotation by dt seconds.
func (c *Camera) Update(dt float64, state particles.AppState) {
	if state == particles.Scattered && c.AutoRotateSpeed != 0 {
		c.Yaw += 2 * math.Pi / 60 * c.AutoRotateSpeed * dt
	}

	// Damped user rotation, framerate independent relative to 60fps
	frames := dt * 60
	c.Yaw += c.velYaw * c.Damping * frames
	c.setPitch(c.Pitch + c.velPitch*c.Damping*frames)
	decay := math.Pow(1-c.Damping, frames)
	c.velYaw *= decay
	c.velPitch *= decay

	c.Yaw = mod(c.Yaw, 2*math.Pi)
}

// Rotate queues a user rotation. The camera eases into it over following updates.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.velYaw += dYaw
	c.velPitch += dPitch
}

// SetDistance sets the orbit radius, clamped to min/max.
func (c *Camera) SetDistance(d float64) {
	c.Distance = clamp(d, c.MinDistance, c.MaxDistance)
}

// ZoomBy multiplies the orbit radius by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetDistance(c.Distance * factor)
}

// Position returns the camera eye position.
func (c *Camera) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	offset := r3.Vec{
		X: c.Distance * cp * math.Sin(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Cos(c.Yaw),
	}
	return r3.Add(c.Target, offset)
}

// Reset returns the camera to its initial framing.
func (c *Camera) Reset() {
	c.Target = r3.Vec{}
	c.Yaw = 0
	c.Pitch = 0
	c.velYaw = 0
	c.velPitch = 0
	c.SetDistance(c.initialDistance)
}

func (c *Camera) setPitch(p float64) {
	c.Pitch = clamp(p, -maxPitch, maxPitch)
}

// mod computes the positive modulo (math.Mod can return negative).
func mod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
