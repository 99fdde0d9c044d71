package particles

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AnimatorConfig controls per-frame interpolation and tumbling.
type AnimatorConfig struct {
	BaseSpeed      float64 // interpolation rate per second
	SpeedVariance  float64 // amplitude of the per-index speed wobble
	SpeedFrequency float64 // index frequency of the wobble
	RotationRateX  float64 // radians per second
	RotationRateY  float64
	ParticleSize   float64 // multiplies every particle's Scale
}

// DefaultAnimatorConfig returns the stock animation tuning.
func DefaultAnimatorConfig() AnimatorConfig {
	return AnimatorConfig{
		BaseSpeed:      2.5,
		SpeedVariance:  0.2,
		SpeedFrequency: 132.1,
		RotationRateX:  0.2,
		RotationRateY:  0.3,
		ParticleSize:   0.12,
	}
}

// Animator owns the live position of every particle and the instance
// transform buffer. Both are sized once from the particle list.
type Animator struct {
	cfg        AnimatorConfig
	particles  []Particle
	live       []r3.Vec
	speed      []float64
	transforms []Transform
}

// NewAnimator creates an animator with every particle at its scatter position.
// The particle slice is read but never written.
func NewAnimator(particles []Particle, cfg AnimatorConfig) *Animator {
	a := &Animator{
		cfg:        cfg,
		particles:  particles,
		live:       make([]r3.Vec, len(particles)),
		speed:      make([]float64, len(particles)),
		transforms: make([]Transform, len(particles)),
	}
	for i := range particles {
		a.speed[i] = a.SpeedMultiplier(i)
	}
	a.Reset()
	return a
}

// Reset moves every live position back to its scatter position and rebuilds
// the transforms at elapsed time zero.
func (a *Animator) Reset() {
	for i := range a.particles {
		a.live[i] = a.particles[i].ScatterPosition
		a.writeTransform(i, 0)
	}
}

// Config returns the animation tuning in use.
func (a *Animator) Config() AnimatorConfig {
	return a.cfg
}

// SetConfig swaps the animation tuning without moving any particle. Speed
// multipliers are recomputed; the next Update applies the new rates.
func (a *Animator) SetConfig(cfg AnimatorConfig) {
	a.cfg = cfg
	for i := range a.particles {
		a.speed[i] = a.SpeedMultiplier(i)
	}
}

// SpeedMultiplier returns the deterministic speed factor for particle index i.
func (a *Animator) SpeedMultiplier(i int) float64 {
	return 1 + a.cfg.SpeedVariance*math.Sin(a.cfg.SpeedFrequency*float64(i))
}

// Update advances every live position one step toward its target for state and
// writes the transforms. dt is the frame delta and elapsed the total run time,
// both in seconds. The returned slice is reused across calls.
func (a *Animator) Update(dt, elapsed float64, state AppState) []Transform {
	rate := a.cfg.BaseSpeed * dt
	for i := range a.particles {
		target := a.particles[i].Target(state)
		a.live[i] = lerp(a.live[i], target, rate*a.speed[i])
		a.writeTransform(i, elapsed)
	}
	return a.transforms
}

func (a *Animator) writeTransform(i int, elapsed float64) {
	fi := float64(i)
	a.transforms[i] = Transform{
		Position: a.live[i],
		Rotation: r3.Vec{
			X: elapsed*a.cfg.RotationRateX + fi,
			Y: elapsed*a.cfg.RotationRateY + fi,
		},
		Scale: a.particles[i].Scale * a.cfg.ParticleSize,
	}
}

// lerp moves from toward to by fraction t on each axis.
// t == 1 lands exactly on to.
func lerp(from, to r3.Vec, t float64) r3.Vec {
	return r3.Vec{
		X: lerp1(from.X, to.X, t),
		Y: lerp1(from.Y, to.Y, t),
		Z: lerp1(from.Z, to.Z, t),
	}
}

func lerp1(a, b, t float64) float64 {
	if t == 1 {
		return b
	}
	return a + (b-a)*t
}

// Len returns the particle count.
func (a *Animator) Len() int {
	return len(a.particles)
}

// Particles returns the immutable particle list.
func (a *Animator) Particles() []Particle {
	return a.particles
}

// Live returns the current position of particle i.
func (a *Animator) Live(i int) r3.Vec {
	return a.live[i]
}

// Transforms returns the instance buffer as of the last update.
func (a *Animator) Transforms() []Transform {
	return a.transforms
}

// DistanceToTarget returns how far particle i is from its target for state.
func (a *Animator) DistanceToTarget(i int, state AppState) float64 {
	return r3.Norm(r3.Sub(a.particles[i].Target(state), a.live[i]))
}
