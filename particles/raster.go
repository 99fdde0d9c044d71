package particles

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/go-fonts/latin-modern/lmroman10bold"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyCanvas is returned when a rasterizer is asked for a zero-area surface.
var ErrEmptyCanvas = errors.New("particles: canvas has zero area")

// Rasterizer draws text onto a fresh grayscale surface: white glyphs on black,
// centered both ways. The surface belongs to the caller.
type Rasterizer interface {
	Rasterize(text string, width, height int) (*image.Gray, error)
}

// RasterizerFunc adapts a plain function to Rasterizer.
type RasterizerFunc func(text string, width, height int) (*image.Gray, error)

// Rasterize calls f.
func (f RasterizerFunc) Rasterize(text string, width, height int) (*image.Gray, error) {
	return f(text, width, height)
}

// GlyphRasterizer renders text with an OpenType face.
type GlyphRasterizer struct {
	face font.Face
}

// NewGlyphRasterizer parses fontData (TTF or OTF) at the given point size.
// Nil fontData selects the embedded Latin Modern Roman bold face.
func NewGlyphRasterizer(fontData []byte, size float64) (*GlyphRasterizer, error) {
	if fontData == nil {
		fontData = lmroman10bold.TTF
	}
	f, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("creating face: %w", err)
	}
	return &GlyphRasterizer{face: face}, nil
}

// LoadGlyphRasterizer reads a font file from disk. An empty path uses the embedded face.
func LoadGlyphRasterizer(path string, size float64) (*GlyphRasterizer, error) {
	if path == "" {
		return NewGlyphRasterizer(nil, size)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	return NewGlyphRasterizer(data, size)
}

// Rasterize draws text centered on a black width x height canvas.
// The vertical anchor is the middle of the em box, like a canvas "middle" baseline.
func (g *GlyphRasterizer) Rasterize(text string, width, height int) (*image.Gray, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyCanvas
	}
	img := image.NewGray(image.Rect(0, 0, width, height))

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: g.face,
	}
	advance := d.MeasureString(text)
	m := g.face.Metrics()
	d.Dot = fixed.Point26_6{
		X: fixed.I(width/2) - advance/2,
		Y: fixed.I(height/2) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
	return img, nil
}

// Close releases the underlying face.
func (g *GlyphRasterizer) Close() error {
	return g.face.Close()
}
