package hero

import (
	"math"

	"github.com/decker502/hero/internal/palette"
	"github.com/decker502/hero/pkg/surface"
)

// ForceRadiusSq is the squared pointer distance below which the base
// particle is pushed away.
const ForceRadiusSq = 8000.0

// Body is the physics state every particle variant shares.
type Body struct {
	X, Y   float64
	VX, VY float64

	Color palette.RGB
	Size  float64

	Ease     float64
	Friction float64

	// resting target sampled from the image; never changes after creation
	originX, originY float64
}

// Origin returns the resting position the particle springs back to.
func (b *Body) Origin() (x, y float64) {
	return b.originX, b.originY
}

// Particle is the update/draw contract of every variant.
//
// Particles live in one arena owned by an Effect; they receive the Effect
// on every call instead of holding a back-reference to it.
type Particle interface {
	// Body exposes the shared physics state.
	Body() *Body
	// Active reports whether the particle takes part in physics and drawing.
	Active() bool
	// Update advances the particle by one frame.
	Update(e *Effect)
	// Draw renders the particle at its current position.
	Draw(dst surface.Surface, e *Effect)
}

// stepBase applies pointer repulsion, damping and the spring back to origin.
//
// Damping happens before the origin pull is added, so the pull is never
// damped in the step it is applied.
func stepBase(b *Body, px, py, mouseForce float64) {
	dx := px - b.X
	dy := py - b.Y
	distance := dx*dx + dy*dy

	// 排斥力 (repulsion); a pointer exactly on the particle has no direction
	if distance < ForceRadiusSq && distance > 0 {
		force := -mouseForce / distance
		angle := math.Atan2(dy, dx)
		b.VX += force * math.Cos(angle)
		b.VY += force * math.Sin(angle)
	}

	b.VX *= b.Friction
	b.VY *= b.Friction
	b.X += b.VX + (b.originX-b.X)*b.Ease
	b.Y += b.VY + (b.originY-b.Y)*b.Ease
}
