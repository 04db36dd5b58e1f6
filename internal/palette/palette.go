// Package palette provides the small colour helpers used by the hero
// particle effect: hex decoding, RGB interpolation and the 16-step
// quantization that keeps gradient sprites cacheable.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// QuantizeStep is the channel step used by Quantize.
const QuantizeStep = 16

// RGB is an opaque 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// White is the fallback for undecodable colours.
var White = RGB{R: 255, G: 255, B: 255}

// String renders the colour in CSS rgb() notation.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// RGBA converts the colour to a non-premultiplied color.NRGBA with the given alpha.
func (c RGB) RGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}

// Opaque returns the colour as a fully opaque color.RGBA.
func (c RGB) Opaque() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// HexToRGB decodes "#rrggbb" or "rrggbb" (any case).
//
// Anything else, including the 3-digit short form, decodes to White.
// The function never fails: colour options come from configuration and a
// bad value must not stop the effect.
func HexToRGB(hex string) RGB {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 || !isHexDigits(s[1:]) {
		return White
	}

	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return White
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}

func isHexDigits(s string) bool {
	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'f':
		case ch >= 'A' && ch <= 'F':
		default:
			return false
		}
	}
	return true
}

// Lerp interpolates each channel linearly from a (t=0) to b (t=1).
// The result is unquantized, in the 0..255 range.
func Lerp(a, b RGB, t float64) (r, g, bl float64) {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	m := ca.BlendRgb(cb, t)
	return m.R * 255, m.G * 255, m.B * 255
}

// Quantize snaps a channel value to the nearest multiple of QuantizeStep.
// Values that would round past 255 clamp to 255.
func Quantize(v float64) uint8 {
	q := math.Round(v/QuantizeStep) * QuantizeStep
	if q <= 0 {
		return 0
	}
	if q >= 255 {
		return 255
	}
	return uint8(q)
}

// Blend interpolates a towards b by t and quantizes the result.
func Blend(a, b RGB, t float64) RGB {
	r, g, bl := Lerp(a, b, t)
	return RGB{R: Quantize(r), G: Quantize(g), B: Quantize(bl)}
}
