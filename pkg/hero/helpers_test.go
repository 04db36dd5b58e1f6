package hero

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/decker502/hero/pkg/config"
	"github.com/decker502/hero/pkg/gradient"
	"github.com/decker502/hero/pkg/surface"
)

type fakeSprite struct{ side int }

func (s *fakeSprite) Side() int { return s.side }

func fakeFactory(img *image.RGBA) surface.Sprite {
	return &fakeSprite{side: img.Bounds().Dx()}
}

type circleCall struct {
	x, y, r float64
	c       color.Color
}

type textCall struct {
	s          string
	x, y, size float64
}

type spriteCall struct {
	sprite            surface.Sprite
	x, y, size, alpha float64
	blend             surface.Blend
}

// recorder is a surface that records every call in order.
type recorder struct {
	w, h    int
	clears  int
	ops     []string
	circles []circleCall
	texts   []textCall
	sprites []spriteCall
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (int, int) { return r.w, r.h }

func (r *recorder) Clear() {
	r.clears++
	r.ops = append(r.ops, "clear")
}

func (r *recorder) FillCircle(x, y, radius float64, c color.Color) {
	r.circles = append(r.circles, circleCall{x, y, radius, c})
	r.ops = append(r.ops, "circle")
}

func (r *recorder) FillText(s string, x, y, size float64, c color.Color) {
	r.texts = append(r.texts, textCall{s, x, y, size})
	r.ops = append(r.ops, "text")
}

func (r *recorder) DrawSprite(sp surface.Sprite, x, y, size, alpha float64, blend surface.Blend) {
	r.sprites = append(r.sprites, spriteCall{sp, x, y, size, alpha, blend})
	r.ops = append(r.ops, "sprite")
}

func (r *recorder) NewSprite(img *image.RGBA) surface.Sprite { return fakeFactory(img) }

func defaultSettings() config.HeroSettings {
	return config.Resolve(config.HeroOverrides{})
}

func galaxySettings() config.HeroSettings {
	s := defaultSettings()
	s.Type = config.TypeGalaxy
	return s
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// newGalaxy creates an active galaxy particle resting at (x, y).
func newGalaxy(x, y, size float64) *GalaxyParticle {
	return &GalaxyParticle{
		body: Body{
			X: x, Y: y,
			Size:     size,
			Ease:     galaxyEase,
			Friction: galaxyFriction,
			originX:  x,
			originY:  y,
		},
		active:   true,
		baseSize: size,
	}
}

// galaxyEffect installs ps as a ready 600x400 galaxy population.
func galaxyEffect(t *testing.T, s config.HeroSettings, ps ...*GalaxyParticle) *Effect {
	t.Helper()
	e := NewEffect(SideCreative, s, NewPointer(), WithRand(seededRand()), WithSpriteFactory(fakeFactory))
	e.width, e.height = 600, 400
	for i, p := range ps {
		p.index = i
		e.particles = append(e.particles, p)
	}
	e.grid = NewGrid(e.width, e.height, e.settings.CellSize)
	e.gradients = gradient.NewCache(e.settings.GradientCacheSize, e.factory)
	e.ready = true
	return e
}

// halfDark returns a w×h opaque image whose left half is black and right half white.
func halfDark(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if x < w/2 {
				c = color.NRGBA{A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
