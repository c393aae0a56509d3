// Package colorutil provides shared color utilities for the schematic
// editor.
package colorutil

import "image/color"

// Common drawing colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray    = color.RGBA{R: 190, G: 190, B: 190, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 120, G: 200, B: 120, A: 255}
	Indigo  = color.RGBA{R: 60, G: 60, B: 200, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// WithAlpha returns the color with its alpha channel replaced. The RGB
// channels are kept as-is, so callers work in straight (non-premultiplied)
// terms.
func WithAlpha(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha
	return c
}

// Lighten blends the color toward white by t in [0,1].
func Lighten(c color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	blend := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*t)
	}
	return color.RGBA{R: blend(c.R), G: blend(c.G), B: blend(c.B), A: c.A}
}
