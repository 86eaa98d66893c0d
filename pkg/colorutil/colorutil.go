// Package colorutil provides shared color utilities for the sketchpad
// application.
package colorutil

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Common drawing colors offered in the toolbar palette.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	Green  = color.RGBA{R: 64, G: 160, B: 43, A: 255}
	Blue   = color.RGBA{R: 38, G: 110, B: 210, A: 255}
	Yellow = color.RGBA{R: 240, G: 200, B: 20, A: 255}
)

// Palette returns n visually distinct, fully saturated drawing colors by
// walking the hue circle in HSV space.
func Palette(n int) []color.RGBA {
	out := make([]color.RGBA, 0, n)
	for i := 0; i < n; i++ {
		h := float64(i) * 360.0 / float64(n)
		c := colorful.Hsv(h, 0.85, 0.85)
		r, g, b := c.Clamped().RGB255()
		out = append(out, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return out
}

// Hex formats a color as "#rrggbb" for storage in preferences.
func Hex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// FromHex parses a "#rrggbb" string, falling back to black on malformed
// input so a corrupt preference can never break startup.
func FromHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
