package hero

import (
	"math"

	"github.com/decker502/hero/internal/palette"
	"github.com/decker502/hero/pkg/gradient"
	"github.com/decker502/hero/pkg/surface"
)

// Galaxy motion constants.
const (
	galaxyFriction = 0.95
	galaxyEase     = 0.1

	flashDecay = 0.03
	maxFlash   = 2.0

	releaseSpeedMin  = 5.0
	releaseSpeedSpan = 5.0
)

// GalaxyParticle orbits the pointer, fuses with neighbours and carries the
// particles it absorbed until the pointer moves away.
//
// A dormant particle (absorbed by another one) neither moves nor draws.
// Its payload is always empty; only active particles carry payloads.
type GalaxyParticle struct {
	body  Body
	index int // own slot in the effect arena

	active  bool
	payload []int

	flash    float64
	baseSize float64

	// Drift (轨道抖动)
	driftAngle  float64
	driftSpeed  float64
	driftRadius float64

	baseRGB   palette.RGB
	hotRGB    palette.RGB
	rgbCached bool

	proximity float64
}

func (g *GalaxyParticle) Body() *Body  { return &g.body }
func (g *GalaxyParticle) Active() bool { return g.active }

// Index returns the particle's slot in the effect arena.
func (g *GalaxyParticle) Index() int { return g.index }

// Payload returns the arena indices of the particles currently absorbed.
func (g *GalaxyParticle) Payload() []int { return g.payload }

// Flash returns the current flare intensity in [0, 2].
func (g *GalaxyParticle) Flash() float64 { return g.flash }

// BaseSize returns the size the particle had at creation.
func (g *GalaxyParticle) BaseSize() float64 { return g.baseSize }

// Proximity returns how close the pointer was in the last update, in [0, 1].
func (g *GalaxyParticle) Proximity() float64 { return g.proximity }

func (g *GalaxyParticle) cacheRGB(hot palette.RGB) {
	if g.rgbCached {
		return
	}
	g.baseRGB = g.body.Color
	g.hotRGB = hot
	g.rgbCached = true
}

func (g *GalaxyParticle) Update(e *Effect) {
	if !g.active {
		return
	}
	s := e.settings
	b := &g.body
	g.cacheRGB(s.HotColor)

	g.driftAngle += g.driftSpeed
	wobbleX := math.Cos(g.driftAngle) * g.driftRadius
	wobbleY := math.Sin(g.driftAngle) * g.driftRadius

	px, py := e.pointer.Position()
	dx := b.X - px
	dy := b.Y - py
	distSq := dx*dx + dy*dy
	radius := s.InteractionRadius

	if distSq < radius*radius {
		// 吸入 (suction): spiral towards the pointer
		ratio := 1 - math.Sqrt(distSq)/radius
		g.proximity = ratio
		b.Color = palette.Blend(g.baseRGB, g.hotRGB, ratio)

		spin := s.SpiralSpeed * 0.1 * (1 + 4*ratio)
		cos, sin := math.Cos(spin), math.Sin(spin)
		gravity := s.SuctionEase - s.SuctionGradient*ratio
		rx := (dx*cos - dy*sin) * gravity
		ry := (dx*sin + dy*cos) * gravity

		track := s.BaseTrackStrength + ratio*s.PullGradient
		b.VX += (px + rx - b.X) * track
		b.VY += (py + ry - b.Y) * track
	} else {
		b.Color = g.baseRGB
		g.proximity = 0

		if len(g.payload) > 0 {
			g.release(e)
		} else if b.Size > g.baseSize {
			b.Size = g.baseSize
		}

		ease := s.ReturnEase
		if ease == 0 {
			ease = b.Ease
		}
		b.VX += (b.originX + wobbleX - b.X) * ease
		b.VY += (b.originY + wobbleY - b.Y) * ease
	}

	g.flash = math.Max(0, g.flash-flashDecay)

	b.VX *= b.Friction
	b.VY *= b.Friction
	b.X += b.VX
	b.Y += b.VY
}

// release scatters every absorbed particle from the current position.
func (g *GalaxyParticle) release(e *Effect) {
	for _, idx := range g.payload {
		child := e.galaxy(idx)
		if child == nil {
			continue
		}
		child.active = true
		child.body.X = g.body.X
		child.body.Y = g.body.Y

		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.rng.Float64()*releaseSpeedSpan + releaseSpeedMin
		child.body.VX = math.Cos(angle) * speed
		child.body.VY = math.Sin(angle) * speed
	}
	g.payload = g.payload[:0]
	g.body.Size = g.baseSize
}

// absorb fuses victim into g. Masses are taken before either size changes.
func (g *GalaxyParticle) absorb(victim *GalaxyParticle, maxSize, flashIntensity float64) {
	m1 := g.body.Size * g.body.Size
	m2 := victim.body.Size * victim.body.Size
	if total := m1 + m2; total > 0 {
		g.body.VX = (g.body.VX*m1 + victim.body.VX*m2) / total
		g.body.VY = (g.body.VY*m1 + victim.body.VY*m2) / total
	}

	if g.body.Size < maxSize {
		g.body.Size = math.Min(math.Sqrt(m1+m2), maxSize)
	}
	g.flash = math.Min(g.flash+flashIntensity*(m2/10), maxFlash)

	// payload stacking: whatever the victim carried moves along with it
	if len(victim.payload) > 0 {
		g.payload = append(g.payload, victim.payload...)
		victim.payload = victim.payload[:0]
		victim.body.Size = victim.baseSize
	}
	victim.active = false
	g.payload = append(g.payload, victim.index)
}

func (g *GalaxyParticle) Draw(dst surface.Surface, e *Effect) {
	if !g.active {
		return
	}
	s := e.settings
	b := &g.body

	dst.FillCircle(b.X, b.Y, b.Size, b.Color.Opaque())

	if g.proximity > 0 {
		r := b.Size * s.GlowScale
		if sp := e.gradients.Get(gradient.Glow, b.Color, r, s.FlashColor); sp != nil {
			drawCentred(dst, sp, b.X, b.Y, r, g.proximity*s.GlowOpacity)
		}
	}

	if g.flash > 0 {
		r := b.Size * (1 + g.flash*s.FlashSizeMultiplier)
		if sp := e.gradients.Get(gradient.Flash, b.Color, r, s.FlashColor); sp != nil {
			drawCentred(dst, sp, b.X, b.Y, r, math.Min(g.flash, 1))
		}
	}
}

// drawCentred draws sp additively as a 2r×2r square centred on (x, y).
func drawCentred(dst surface.Surface, sp surface.Sprite, x, y, r, alpha float64) {
	dst.DrawSprite(sp, x-r, y-r, r*2, alpha, surface.Lighter)
}
