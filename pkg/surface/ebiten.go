package surface

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"
)

// Ebiten draws onto an *ebiten.Image. The target is usually the screen
// passed to Game.Draw and is replaced every frame with SetTarget.
type Ebiten struct {
	dst        *ebiten.Image
	background color.Color

	fontSource *text.GoTextFaceSource
	faces      map[int]*text.GoTextFace
}

type ebitenSprite struct {
	img  *ebiten.Image
	side int
}

func (s *ebitenSprite) Side() int { return s.side }

// NewEbiten creates an Ebitengine surface that clears to background.
//
// Returns an error if the embedded Go Mono font cannot be parsed.
func NewEbiten(background color.Color) (*Ebiten, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load Go Mono font: %w", err)
	}
	if background == nil {
		background = color.Transparent
	}
	return &Ebiten{
		background: background,
		fontSource: source,
		faces:      make(map[int]*text.GoTextFace),
	}, nil
}

// SetTarget selects the image subsequent calls draw onto.
func (e *Ebiten) SetTarget(dst *ebiten.Image) {
	e.dst = dst
}

func (e *Ebiten) Size() (int, int) {
	if e.dst == nil {
		return 0, 0
	}
	b := e.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (e *Ebiten) Clear() {
	if e.dst == nil {
		return
	}
	e.dst.Fill(e.background)
}

func (e *Ebiten) FillCircle(x, y, radius float64, c color.Color) {
	if e.dst == nil || radius <= 0 {
		return
	}
	vector.DrawFilledCircle(e.dst, float32(x), float32(y), float32(radius), c, true)
}

func (e *Ebiten) FillText(s string, x, y, size float64, c color.Color) {
	if e.dst == nil {
		return
	}
	face := e.face(size)
	if face == nil {
		return
	}
	// text/v2 positions the top of the line box; shift up so y is the baseline.
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(e.dst, s, face, op)
}

func (e *Ebiten) face(size float64) *text.GoTextFace {
	px := int(math.Round(size))
	if px <= 0 {
		return nil
	}
	if f, ok := e.faces[px]; ok {
		return f
	}
	f := &text.GoTextFace{Source: e.fontSource, Size: float64(px)}
	e.faces[px] = f
	return f
}

func (e *Ebiten) DrawSprite(sp Sprite, x, y, size, alpha float64, blend Blend) {
	es, ok := sp.(*ebitenSprite)
	if !ok || es == nil || e.dst == nil || es.side == 0 {
		return
	}

	op := &ebiten.DrawImageOptions{}
	scale := size / float64(es.side)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(math.Min(alpha, 1)))
	op.Filter = ebiten.FilterLinear
	if blend == Lighter {
		op.Blend = ebiten.BlendLighter
	}
	e.dst.DrawImage(es.img, op)
}

func (e *Ebiten) NewSprite(img *image.RGBA) Sprite {
	return &ebitenSprite{img: ebiten.NewImageFromImage(img), side: img.Bounds().Dx()}
}
