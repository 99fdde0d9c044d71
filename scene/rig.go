package scene

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/glint/config"
)

// Rig owns the light entities and animates the orbiting ones.
type Rig struct {
	world *ecs.World

	lightMap    *ecs.Map[Light]
	orbitMapper *ecs.Map2[Light, Orbit]

	lightFilter *ecs.Filter1[Light]
	orbitFilter *ecs.Filter2[Light, Orbit]

	point    ecs.Entity
	hasPoint bool

	snapshot []Light
}

// NewRig creates an empty light rig.
func NewRig() *Rig {
	world := ecs.NewWorld()
	return &Rig{
		world:       world,
		lightMap:    ecs.NewMap[Light](world),
		orbitMapper: ecs.NewMap2[Light, Orbit](world),
		lightFilter: ecs.NewFilter1[Light](world),
		orbitFilter: ecs.NewFilter2[Light, Orbit](world),
	}
}

// NewRigFromConfig builds the stock rig: ambient fill, one orbiting point
// light and the configured static spots.
func NewRigFromConfig(cfg *config.Config) *Rig {
	r := NewRig()
	l := cfg.Lights

	r.AddLight(Light{
		Kind:      LightAmbient,
		Color:     cfg.Derived.Ambient,
		Intensity: float32(l.Ambient.Intensity),
	})

	orbit := Orbit{
		Base:  vec(l.Point.Base),
		AmpX:  l.Point.AmpX,
		FreqX: l.Point.FreqX,
		AmpY:  l.Point.AmpY,
		FreqY: l.Point.FreqY,
	}
	r.AddOrbitingLight(Light{
		Kind:      LightPoint,
		Color:     cfg.Derived.Point,
		Intensity: float32(l.Point.Intensity),
		Distance:  float32(l.Point.Distance),
	}, orbit)

	for i, spot := range l.Spots {
		r.AddLight(Light{
			Kind:      LightSpot,
			Color:     cfg.Derived.Spots[i],
			Intensity: float32(spot.Intensity),
			Position:  vec(spot.Position),
		})
	}
	return r
}

// AddLight adds a static light.
func (r *Rig) AddLight(l Light) ecs.Entity {
	return r.lightMap.NewEntity(&l)
}

// AddOrbitingLight adds a light that follows orbit. The first point light
// added becomes the rig's primary point light.
func (r *Rig) AddOrbitingLight(l Light, orbit Orbit) ecs.Entity {
	l.Position = orbit.At(0)
	e := r.orbitMapper.NewEntity(&l, &orbit)
	if l.Kind == LightPoint && !r.hasPoint {
		r.point = e
		r.hasPoint = true
	}
	return e
}

// Update moves every orbiting light to its position at elapsed seconds.
func (r *Rig) Update(elapsed float64) {
	query := r.orbitFilter.Query()
	for query.Next() {
		light, orbit := query.Get()
		light.Position = orbit.At(elapsed)
	}
}

// PointLight returns the primary point light, if any.
func (r *Rig) PointLight() (Light, bool) {
	if !r.hasPoint {
		return Light{}, false
	}
	return *r.lightMap.Get(r.point), true
}

// Lights returns a snapshot of all lights. The slice is reused across calls.
func (r *Rig) Lights() []Light {
	r.snapshot = r.snapshot[:0]
	query := r.lightFilter.Query()
	for query.Next() {
		r.snapshot = append(r.snapshot, *query.Get())
	}
	return r.snapshot
}

// ByKind returns the lights of one kind, in no particular order.
func (r *Rig) ByKind(kind LightKind) []Light {
	var out []Light
	for _, l := range r.Lights() {
		if l.Kind == kind {
			out = append(out, l)
		}
	}
	return out
}

func vec(v [3]float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
