package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/glint/particles"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Text.CanvasWidth != 1000 || cfg.Text.CanvasHeight != 300 {
		t.Errorf("expected 1000x300 canvas, got %dx%d", cfg.Text.CanvasWidth, cfg.Text.CanvasHeight)
	}
	if cfg.Particles.DepthLayers != 5 {
		t.Errorf("expected 5 depth layers, got %d", cfg.Particles.DepthLayers)
	}
	if cfg.Animation.TransitionSpeed != 2.5 {
		t.Errorf("expected transition speed 2.5, got %f", cfg.Animation.TransitionSpeed)
	}
	if len(cfg.Lights.Spots) != 2 {
		t.Errorf("expected 2 spot lights, got %d", len(cfg.Lights.Spots))
	}
	if cfg.Lights.Point.Base != [3]float64{0, 0, 5} {
		t.Errorf("expected point light base (0,0,5), got %v", cfg.Lights.Point.Base)
	}

	want := color.RGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF}
	if cfg.Derived.Gold != want {
		t.Errorf("expected gold %v, got %v", want, cfg.Derived.Gold)
	}
	if len(cfg.Derived.Spots) != 2 {
		t.Errorf("expected 2 derived spot colors, got %d", len(cfg.Derived.Spots))
	}
	if cfg.Derived.FrameDT != 1.0/60 {
		t.Errorf("expected frame dt 1/60, got %f", cfg.Derived.FrameDT)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("text:\n  content: \"GO\"\nparticles:\n  depth_layers: 3\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}
	if cfg.Text.Content != "GO" {
		t.Errorf("expected text GO, got %q", cfg.Text.Content)
	}
	if cfg.Particles.DepthLayers != 3 {
		t.Errorf("expected 3 layers, got %d", cfg.Particles.DepthLayers)
	}
	// Untouched fields keep defaults
	if cfg.Text.Stride != 4 {
		t.Errorf("expected default stride 4, got %d", cfg.Text.Stride)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero stride", "text:\n  stride: 0\n"},
		{"threshold range", "text:\n  threshold: 300\n"},
		{"no layers", "particles:\n  depth_layers: 0\n"},
		{"bad color", "palette:\n  gold: \"#zzz\"\n"},
		{"camera range", "camera:\n  min_distance: 50\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#000f08", color.RGBA{R: 0x00, G: 0x0f, B: 0x08, A: 0xFF}, true},
		{"FFF8E7", color.RGBA{R: 0xFF, G: 0xF8, B: 0xE7, A: 0xFF}, true},
		{"#fa0", color.RGBA{R: 0xFF, G: 0xAA, B: 0x00, A: 0xFF}, true},
		{"#12345", color.RGBA{}, false},
		{"#gg0000", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: unexpected error state %v", tt.in, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Text.Content = "ROUND"

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if back.Text.Content != "ROUND" {
		t.Errorf("expected ROUND, got %q", back.Text.Content)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}

func TestParticleConfigMapping(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	gen := cfg.GeneratorConfig()
	def := particles.DefaultGeneratorConfig()
	if gen != def {
		t.Errorf("expected defaults.yaml to match DefaultGeneratorConfig:\n got  %+v\n want %+v", gen, def)
	}

	anim := cfg.AnimatorConfig()
	if anim != particles.DefaultAnimatorConfig() {
		t.Errorf("expected defaults.yaml to match DefaultAnimatorConfig, got %+v", anim)
	}

	if cfg.ParticlePalette() != particles.DefaultPalette() {
		t.Errorf("expected configured palette to match DefaultPalette, got %v", cfg.ParticlePalette())
	}
}
