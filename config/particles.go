package config

import "github.com/pthm-cable/glint/particles"

// GeneratorConfig maps the text and particles sections onto the generator.
func (c *Config) GeneratorConfig() particles.GeneratorConfig {
	return particles.GeneratorConfig{
		Text:          c.Text.Content,
		CanvasWidth:   c.Text.CanvasWidth,
		CanvasHeight:  c.Text.CanvasHeight,
		Stride:        c.Text.Stride,
		Threshold:     uint8(c.Text.Threshold),
		PixelScale:    c.Text.PixelScale,
		Jitter:        c.Text.Jitter,
		DepthLayers:   c.Particles.DepthLayers,
		DepthSpacing:  c.Particles.DepthSpacing,
		ScatterRadius: c.Particles.ScatterRadius,
		EdgeGoldBias:  c.Particles.EdgeGoldBias,
		CoreGoldBias:  c.Particles.CoreGoldBias,
	}
}

// AnimatorConfig maps the animation section onto the animator.
func (c *Config) AnimatorConfig() particles.AnimatorConfig {
	return particles.AnimatorConfig{
		BaseSpeed:      c.Animation.TransitionSpeed,
		SpeedVariance:  c.Animation.SpeedVariance,
		SpeedFrequency: c.Animation.SpeedFrequency,
		RotationRateX:  c.Animation.RotationRateX,
		RotationRateY:  c.Animation.RotationRateY,
		ParticleSize:   c.Particles.Size,
	}
}

// Palette returns the particle palette from the configured colors.
func (c *Config) ParticlePalette() particles.Palette {
	return particles.Palette{
		particles.Gold:      c.Derived.Gold,
		particles.WhiteGold: c.Derived.WhiteGold,
		particles.Emerald:   c.Derived.Emerald,
	}
}
