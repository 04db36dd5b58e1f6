// Package gradient renders radial gradient sprites for the galaxy glow and
// flash effects and keeps them in a bounded per-effect cache.
//
// Sprites are rasterized on the CPU into *image.RGBA and handed to a
// surface.SpriteFactory, so the same cache works for every surface backend.
package gradient

import (
	"image"
	"math"

	"github.com/decker502/hero/internal/palette"
)

// Kind selects the gradient shape.
type Kind int

const (
	// Glow fades from the particle colour at the centre to transparent.
	Glow Kind = iota
	// Flash starts at the flash colour, passes through the particle colour
	// at 30% of the radius and fades to transparent.
	Flash
)

func (k Kind) String() string {
	switch k {
	case Glow:
		return "glow"
	case Flash:
		return "flash"
	}
	return "unknown"
}

// flashMidStop is where the flash gradient reaches the particle colour.
const flashMidStop = 0.3

type stop struct {
	at         float64
	r, g, b, a float64 // premultiplied, 0..1
}

func opaqueStop(at float64, c palette.RGB) stop {
	return stop{at: at, r: float64(c.R) / 255, g: float64(c.G) / 255, b: float64(c.B) / 255, a: 1}
}

func stopsFor(kind Kind, c, flash palette.RGB) []stop {
	transparent := stop{at: 1}
	if kind == Flash {
		return []stop{opaqueStop(0, flash), opaqueStop(flashMidStop, c), transparent}
	}
	return []stop{opaqueStop(0, c), transparent}
}

// Render rasterizes a 2r×2r radial gradient centred in the image.
// Interpolation happens on premultiplied values, so fading to transparent
// never darkens the colour. Returns nil when radius is not positive.
func Render(kind Kind, c, flash palette.RGB, radius int) *image.RGBA {
	if radius <= 0 {
		return nil
	}
	side := radius * 2
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	stops := stopsFor(kind, c, flash)
	centre := float64(radius)

	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			dx := float64(x) + 0.5 - centre
			dy := float64(y) + 0.5 - centre
			t := math.Sqrt(dx*dx+dy*dy) / float64(radius)
			s := sample(stops, t)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = to8(s.r)
			img.Pix[i+1] = to8(s.g)
			img.Pix[i+2] = to8(s.b)
			img.Pix[i+3] = to8(s.a)
		}
	}
	return img
}

func sample(stops []stop, t float64) stop {
	if t <= stops[0].at {
		return stops[0]
	}
	for i := 1; i < len(stops); i++ {
		hi := stops[i]
		if t > hi.at {
			continue
		}
		lo := stops[i-1]
		f := (t - lo.at) / (hi.at - lo.at)
		return stop{
			at: t,
			r:  lo.r + (hi.r-lo.r)*f,
			g:  lo.g + (hi.g-lo.g)*f,
			b:  lo.b + (hi.b-lo.b)*f,
			a:  lo.a + (hi.a-lo.a)*f,
		}
	}
	return stops[len(stops)-1]
}

func to8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
