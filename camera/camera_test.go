package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/glint/particles"
)

func TestNew(t *testing.T) {
	cam := New(20, 35, 5, 40)

	pos := cam.Position()
	if math.Abs(pos.X) > 1e-9 || math.Abs(pos.Y) > 1e-9 || math.Abs(pos.Z-20) > 1e-9 {
		t.Errorf("expected camera at (0, 0, 20), got (%f, %f, %f)", pos.X, pos.Y, pos.Z)
	}
}

func TestAutoRotateOnlyWhileScattered(t *testing.T) {
	cam := New(20, 35, 5, 40)

	cam.Update(1, particles.TextShape)
	if cam.Yaw != 0 {
		t.Errorf("expected no rotation in text shape, got yaw %f", cam.Yaw)
	}

	cam.Update(1, particles.Scattered)
	// 0.5 orbits per minute = pi/60 rad/s
	want := math.Pi / 60
	if math.Abs(cam.Yaw-want) > 1e-9 {
		t.Errorf("expected yaw %f after 1s scattered, got %f", want, cam.Yaw)
	}
}

func TestDistanceIsPreservedByOrbit(t *testing.T) {
	cam := New(20, 35, 5, 40)
	cam.Rotate(0.7, 0.3)

	for i := 0; i < 120; i++ {
		cam.Update(1.0/60, particles.Scattered)
	}

	pos := cam.Position()
	d := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z)
	if math.Abs(d-20) > 1e-9 {
		t.Errorf("expected orbit radius 20, got %f", d)
	}
}

func TestRotateIsDamped(t *testing.T) {
	cam := New(20, 35, 5, 40)
	cam.Rotate(1, 0)

	cam.Update(1.0/60, particles.TextShape)
	first := cam.Yaw
	if first <= 0 || first >= 1 {
		t.Fatalf("expected partial first step, got yaw %f", first)
	}

	cam.Update(1.0/60, particles.TextShape)
	second := cam.Yaw - first
	if second <= 0 || second >= first {
		t.Errorf("expected decaying steps, got %f then %f", first, second)
	}
}

func TestPitchClamp(t *testing.T) {
	cam := New(20, 35, 5, 40)
	cam.Rotate(0, 1000)

	for i := 0; i < 60; i++ {
		cam.Update(1.0/60, particles.TextShape)
	}
	if cam.Pitch > maxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", maxPitch, cam.Pitch)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(20, 35, 5, 40)

	cam.SetDistance(1)
	if cam.Distance != 5 {
		t.Errorf("expected distance clamped to 5, got %f", cam.Distance)
	}

	cam.SetDistance(100)
	if cam.Distance != 40 {
		t.Errorf("expected distance clamped to 40, got %f", cam.Distance)
	}

	cam.SetDistance(20)
	cam.ZoomBy(0.5)
	if cam.Distance != 10 {
		t.Errorf("expected distance 10, got %f", cam.Distance)
	}
}

func TestReset(t *testing.T) {
	cam := New(20, 35, 5, 40)
	cam.Yaw = 2
	cam.Pitch = 0.5
	cam.Distance = 30
	cam.Rotate(1, 1)

	cam.Reset()

	if cam.Yaw != 0 || cam.Pitch != 0 {
		t.Errorf("expected zero angles, got (%f, %f)", cam.Yaw, cam.Pitch)
	}
	if cam.Distance != 20 {
		t.Errorf("expected distance 20, got %f", cam.Distance)
	}
	cam.Update(1.0/60, particles.TextShape)
	if cam.Yaw != 0 {
		t.Errorf("expected pending rotation cleared, got yaw %f", cam.Yaw)
	}
}

func TestYawWraps(t *testing.T) {
	cam := New(20, 35, 5, 40)
	cam.Yaw = 2*math.Pi - 0.01
	cam.Update(1, particles.Scattered)

	if cam.Yaw < 0 || cam.Yaw >= 2*math.Pi {
		t.Errorf("expected yaw wrapped into [0, 2pi), got %f", cam.Yaw)
	}
}
