package hero

import "github.com/decker502/hero/pkg/surface"

// BrushParticle is a filled dot with a random brush size fixed at creation.
type BrushParticle struct {
	body Body
}

func (b *BrushParticle) Body() *Body  { return &b.body }
func (b *BrushParticle) Active() bool { return true }

func (b *BrushParticle) Update(e *Effect) {
	px, py := e.pointer.Position()
	stepBase(&b.body, px, py, e.settings.MouseForce)
}

func (b *BrushParticle) Draw(dst surface.Surface, e *Effect) {
	dst.FillCircle(b.body.X, b.body.Y, b.body.Size, b.body.Color.Opaque())
}
