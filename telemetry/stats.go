package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/glint/particles"
)

// FrameStats summarizes how far the field is from its current target.
type FrameStats struct {
	Frame           int     `csv:"frame"`
	TimeSec         float64 `csv:"time"`
	State           string  `csv:"state"`
	Particles       int     `csv:"particles"`
	MeanDistance    float64 `csv:"mean_distance"`
	StdDistance     float64 `csv:"std_distance"`
	MaxDistance     float64 `csv:"max_distance"`
	SettledFraction float64 `csv:"settled_fraction"`
}

// StatsCollector computes FrameStats while reusing its distance buffer.
type StatsCollector struct {
	settle    float64
	distances []float64
}

// NewStatsCollector creates a collector that counts particles within settle
// units of their target as settled.
func NewStatsCollector(settle float64) *StatsCollector {
	return &StatsCollector{settle: settle}
}

// Compute measures the animator against the target selected by state.
func (c *StatsCollector) Compute(anim *particles.Animator, state particles.AppState, frame int, t float64) FrameStats {
	s := FrameStats{
		Frame:     frame,
		TimeSec:   t,
		State:     state.String(),
		Particles: anim.Len(),
	}
	if anim.Len() == 0 {
		return s
	}

	if cap(c.distances) < anim.Len() {
		c.distances = make([]float64, anim.Len())
	}
	c.distances = c.distances[:anim.Len()]

	settled := 0
	for i := range c.distances {
		d := anim.DistanceToTarget(i, state)
		c.distances[i] = d
		if d <= c.settle {
			settled++
		}
	}

	s.MeanDistance, s.StdDistance = stat.MeanStdDev(c.distances, nil)
	s.MaxDistance = floats.Max(c.distances)
	s.SettledFraction = float64(settled) / float64(len(c.distances))
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frame", s.Frame),
		slog.Float64("time", s.TimeSec),
		slog.String("state", s.State),
		slog.Int("particles", s.Particles),
		slog.Float64("mean_distance", s.MeanDistance),
		slog.Float64("max_distance", s.MaxDistance),
		slog.Float64("settled", s.SettledFraction),
	)
}

// ColorCounts tallies particles per palette color.
func ColorCounts(ps []particles.Particle) [particles.NumPaletteColors]int {
	var counts [particles.NumPaletteColors]int
	for i := range ps {
		counts[ps[i].Color]++
	}
	return counts
}
