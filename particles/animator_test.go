package particles

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func testParticles() []Particle {
	return []Particle{
		{TextPosition: r3.Vec{X: 1, Y: 2, Z: 0.3}, ScatterPosition: r3.Vec{X: -5, Y: -6, Z: -7}, Scale: 0.5},
		{TextPosition: r3.Vec{X: -1, Y: -2, Z: -0.3}, ScatterPosition: r3.Vec{X: 5, Y: 6, Z: 7}, Scale: 0.75},
		{TextPosition: r3.Vec{X: 3, Y: -4, Z: 0}, ScatterPosition: r3.Vec{X: -8, Y: 9, Z: -1}, Scale: 0.99},
	}
}

func TestAnimatorStartsScattered(t *testing.T) {
	ps := testParticles()
	anim := NewAnimator(ps, DefaultAnimatorConfig())

	for i := range ps {
		if anim.Live(i) != ps[i].ScatterPosition {
			t.Errorf("particle %d: expected live %v, got %v", i, ps[i].ScatterPosition, anim.Live(i))
		}
	}
	if len(anim.Transforms()) != len(ps) {
		t.Errorf("expected %d transforms, got %d", len(ps), len(anim.Transforms()))
	}
}

func TestInterpolationConverges(t *testing.T) {
	ps := testParticles()
	anim := NewAnimator(ps, DefaultAnimatorConfig())
	const dt = 1.0 / 60

	prev := make([]float64, len(ps))
	for i := range ps {
		prev[i] = anim.DistanceToTarget(i, TextShape)
	}

	for step := 0; step < 600; step++ {
		anim.Update(dt, float64(step)*dt, TextShape)
		for i := range ps {
			d := anim.DistanceToTarget(i, TextShape)
			if d >= prev[i] && prev[i] > 0 {
				t.Fatalf("step %d particle %d: distance did not decrease (%g -> %g)", step, i, prev[i], d)
			}
			prev[i] = d
		}
	}

	for i, d := range prev {
		if d > 1e-6 {
			t.Errorf("particle %d: expected near-zero distance after 600 steps, got %g", i, d)
		}
	}
}

func TestInterpolationLandsExactlyAtUnitStep(t *testing.T) {
	ps := testParticles()[:1]
	cfg := DefaultAnimatorConfig()
	cfg.BaseSpeed = 4
	anim := NewAnimator(ps, cfg)

	// Index 0 has multiplier exactly 1, so speed*dt == 1
	if m := anim.SpeedMultiplier(0); m != 1 {
		t.Fatalf("expected multiplier 1 at index 0, got %f", m)
	}
	out := anim.Update(0.25, 0, TextShape)

	if out[0].Position != ps[0].TextPosition {
		t.Errorf("expected exact landing on %v, got %v", ps[0].TextPosition, out[0].Position)
	}
}

func TestStateSwitchFlipsDirection(t *testing.T) {
	ps := testParticles()
	anim := NewAnimator(ps, DefaultAnimatorConfig())
	const dt = 1.0 / 60

	// Settle onto the text shape first
	for step := 0; step < 600; step++ {
		anim.Update(dt, 0, TextShape)
	}

	before := make([]r3.Vec, len(ps))
	for i := range ps {
		before[i] = anim.Live(i)
	}
	anim.Update(dt, 0, Scattered)

	for i, p := range ps {
		delta := r3.Sub(anim.Live(i), before[i])
		want := r3.Sub(p.ScatterPosition, p.TextPosition)
		for axis, pair := range [][2]float64{{delta.X, want.X}, {delta.Y, want.Y}, {delta.Z, want.Z}} {
			if math.Signbit(pair[0]) != math.Signbit(pair[1]) {
				t.Errorf("particle %d axis %d: moved %f, expected direction of %f", i, axis, pair[0], pair[1])
			}
		}
	}
}

func TestSpeedMultiplierDeterministic(t *testing.T) {
	a := NewAnimator(testParticles(), DefaultAnimatorConfig())
	b := NewAnimator(testParticles(), DefaultAnimatorConfig())

	for i := 0; i < 3; i++ {
		ma, mb := a.SpeedMultiplier(i), b.SpeedMultiplier(i)
		if ma != mb {
			t.Errorf("index %d: multipliers differ (%f vs %f)", i, ma, mb)
		}
		if ma < 0.8 || ma > 1.2 {
			t.Errorf("index %d: multiplier %f outside [0.8, 1.2]", i, ma)
		}
	}
	if a.SpeedMultiplier(1) == a.SpeedMultiplier(2) {
		t.Error("expected neighbouring particles to move at different speeds")
	}
}

func TestTransformRotationAndScale(t *testing.T) {
	ps := testParticles()
	cfg := DefaultAnimatorConfig()
	anim := NewAnimator(ps, cfg)

	const elapsed = 10.0
	out := anim.Update(1.0/60, elapsed, Scattered)

	for i, tr := range out {
		wantX := elapsed*cfg.RotationRateX + float64(i)
		wantY := elapsed*cfg.RotationRateY + float64(i)
		if math.Abs(tr.Rotation.X-wantX) > 1e-12 || math.Abs(tr.Rotation.Y-wantY) > 1e-12 {
			t.Errorf("particle %d: expected rotation (%f, %f), got (%f, %f)", i, wantX, wantY, tr.Rotation.X, tr.Rotation.Y)
		}
		if want := ps[i].Scale * cfg.ParticleSize; tr.Scale != want {
			t.Errorf("particle %d: expected scale %f, got %f", i, want, tr.Scale)
		}
	}
}

func TestUpdateReusesBuffer(t *testing.T) {
	anim := NewAnimator(testParticles(), DefaultAnimatorConfig())

	first := anim.Update(1.0/60, 0, TextShape)
	second := anim.Update(1.0/60, 1.0/60, TextShape)
	if &first[0] != &second[0] {
		t.Error("expected transform buffer to be reused between frames")
	}
}

func TestUpdateLeavesParticlesUntouched(t *testing.T) {
	ps := testParticles()
	orig := make([]Particle, len(ps))
	copy(orig, ps)

	anim := NewAnimator(ps, DefaultAnimatorConfig())
	for step := 0; step < 10; step++ {
		anim.Update(0.1, float64(step), TextShape)
	}
	for i := range ps {
		if ps[i] != orig[i] {
			t.Errorf("particle %d was modified", i)
		}
	}
}

func TestReset(t *testing.T) {
	ps := testParticles()
	anim := NewAnimator(ps, DefaultAnimatorConfig())
	anim.Update(0.1, 0, TextShape)
	anim.Reset()

	for i := range ps {
		if anim.Live(i) != ps[i].ScatterPosition {
			t.Errorf("particle %d: expected reset to scatter position", i)
		}
	}
}

func TestAppState(t *testing.T) {
	tests := []struct {
		state  AppState
		name   string
		label  string
		toggle AppState
	}{
		{Scattered, "SCATTERED", "Materialize", TextShape},
		{TextShape, "TEXT_SHAPE", "Disperse", Scattered},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.name {
			t.Errorf("expected name %s, got %s", tt.name, got)
		}
		if got := tt.state.ActionLabel(); got != tt.label {
			t.Errorf("%s: expected label %s, got %s", tt.name, tt.label, got)
		}
		if got := tt.state.Toggle(); got != tt.toggle {
			t.Errorf("%s: expected toggle to %s, got %s", tt.name, tt.toggle, got)
		}
	}
	var zero AppState
	if zero != Scattered {
		t.Error("expected zero state to be SCATTERED")
	}
}

func TestSetConfigKeepsPositions(t *testing.T) {
	ps := testParticles()
	anim := NewAnimator(ps, DefaultAnimatorConfig())
	anim.Update(1.0/60, 0, TextShape)
	before := anim.Live(1)

	cfg := DefaultAnimatorConfig()
	cfg.SpeedVariance = 0
	cfg.ParticleSize = 1
	anim.SetConfig(cfg)

	if anim.Live(1) != before {
		t.Errorf("expected live position unchanged, got %v want %v", anim.Live(1), before)
	}
	if got := anim.SpeedMultiplier(7); got != 1 {
		t.Errorf("expected multiplier 1 with zero variance, got %f", got)
	}

	transforms := anim.Update(1.0/60, 1, TextShape)
	if transforms[0].Scale != ps[0].Scale {
		t.Errorf("expected scale %f with unit particle size, got %f", ps[0].Scale, transforms[0].Scale)
	}
	if anim.Config() != cfg {
		t.Errorf("expected Config to return the new tuning")
	}
}
