// Package surface defines the drawable 2D target the hero effect renders
// into, and provides three backends for it:
//
//   - Ebiten:   a window or offscreen *ebiten.Image (GPU)
//   - Raster:   a CPU *image.RGBA, used by headless tools and tests
//   - Terminal: a tcell screen, one character cell per canvas block
//
// All coordinates are in canvas units. A backend decides how canvas units
// map onto its pixels or cells.
package surface

import (
	"image"
	"image/color"
)

// Blend selects how a sprite is composited onto the surface.
type Blend int

const (
	// SourceOver is normal alpha compositing.
	SourceOver Blend = iota
	// Lighter adds source colour to the destination (canvas "lighter").
	Lighter
)

// Sprite is a square pre-rendered image owned by a surface backend.
type Sprite interface {
	// Side returns the edge length of the sprite in its own pixels.
	Side() int
}

// Surface is the set of drawing operations the particle effect needs.
type Surface interface {
	// Size returns the canvas size in canvas units.
	Size() (width, height int)

	// Clear resets the whole surface to its background.
	Clear()

	// FillCircle draws a filled circle centred on (x, y).
	FillCircle(x, y, radius float64, c color.Color)

	// FillText draws s with its baseline starting at (x, y), using a
	// monospaced face of the given pixel size.
	FillText(s string, x, y, size float64, c color.Color)

	// DrawSprite draws sp stretched to a size×size square whose top-left
	// corner is (x, y), with its alpha multiplied by alpha.
	DrawSprite(sp Sprite, x, y, size, alpha float64, blend Blend)

	// NewSprite converts a CPU image into a sprite for this backend.
	NewSprite(img *image.RGBA) Sprite
}

// SpriteFactory builds backend sprites from CPU images.
type SpriteFactory func(img *image.RGBA) Sprite
