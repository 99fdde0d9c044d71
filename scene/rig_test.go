package scene

import (
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/glint/config"
)

func TestOrbitAt(t *testing.T) {
	o := Orbit{Base: r3.Vec{Z: 5}, AmpX: 10, FreqX: 1, AmpY: 5, FreqY: 0.5}

	tests := []struct {
		t    float64
		want r3.Vec
	}{
		{0, r3.Vec{X: 0, Y: 5, Z: 5}},
		{math.Pi / 2, r3.Vec{X: 10, Y: 5 * math.Cos(math.Pi/4), Z: 5}},
		{math.Pi, r3.Vec{X: 0, Y: 0, Z: 5}},
	}
	for _, tt := range tests {
		got := o.At(tt.t)
		if r3.Norm(r3.Sub(got, tt.want)) > 1e-9 {
			t.Errorf("t=%f: expected %v, got %v", tt.t, tt.want, got)
		}
	}
}

func TestRigUpdateMovesOnlyOrbitingLights(t *testing.T) {
	r := NewRig()
	static := r3.Vec{X: 10, Y: 10, Z: 10}
	r.AddLight(Light{Kind: LightSpot, Position: static})
	r.AddOrbitingLight(Light{Kind: LightPoint}, Orbit{Base: r3.Vec{Z: 5}, AmpX: 10, FreqX: 1, AmpY: 5, FreqY: 0.5})

	r.Update(math.Pi / 2)

	point, ok := r.PointLight()
	if !ok {
		t.Fatal("expected a point light")
	}
	if math.Abs(point.Position.X-10) > 1e-9 {
		t.Errorf("expected point light x 10, got %f", point.Position.X)
	}

	spots := r.ByKind(LightSpot)
	if len(spots) != 1 {
		t.Fatalf("expected 1 spot, got %d", len(spots))
	}
	if spots[0].Position != static {
		t.Errorf("expected static spot at %v, got %v", static, spots[0].Position)
	}
}

func TestRigFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	r := NewRigFromConfig(cfg)

	if n := len(r.Lights()); n != 4 {
		t.Errorf("expected 4 lights, got %d", n)
	}
	if n := len(r.ByKind(LightAmbient)); n != 1 {
		t.Errorf("expected 1 ambient light, got %d", n)
	}

	point, ok := r.PointLight()
	if !ok {
		t.Fatal("expected a point light")
	}
	want := color.RGBA{R: 0xff, G: 0xaa, B: 0x00, A: 0xff}
	if point.Color != want {
		t.Errorf("expected point color %v, got %v", want, point.Color)
	}
	// At t=0 the light sits at (0, 5, 5)
	if r3.Norm(r3.Sub(point.Position, r3.Vec{Y: 5, Z: 5})) > 1e-9 {
		t.Errorf("expected initial point position (0, 5, 5), got %v", point.Position)
	}
}

func TestEmptyRig(t *testing.T) {
	r := NewRig()
	r.Update(1)
	if _, ok := r.PointLight(); ok {
		t.Error("expected no point light")
	}
	if n := len(r.Lights()); n != 0 {
		t.Errorf("expected no lights, got %d", n)
	}
}
