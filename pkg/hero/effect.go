package hero

import (
	"context"
	"errors"
	"image"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/decker502/hero/internal/palette"
	"github.com/decker502/hero/pkg/config"
	"github.com/decker502/hero/pkg/gradient"
	"github.com/decker502/hero/pkg/surface"
)

// Side selects which half of the hero an effect renders.
type Side string

const (
	SideDeveloper Side = "developer"
	SideCreative  Side = "creative"
)

// ErrNotReady is returned by Run before a population has been built.
var ErrNotReady = errors.New("hero: effect not ready")

// Option configures an Effect.
type Option func(*Effect)

// WithRand sets the random source used for placement and particle traits.
func WithRand(r *rand.Rand) Option {
	return func(e *Effect) { e.rng = r }
}

// WithSpriteFactory fixes the sprite factory used by the gradient cache.
// Without it, sprites are created by the surface passed to Draw.
func WithSpriteFactory(f surface.SpriteFactory) Option {
	return func(e *Effect) { e.factory = f }
}

// WithOnReady registers a callback invoked after every population build.
func WithOnReady(fn func()) Option {
	return func(e *Effect) { e.onReady = fn }
}

// Effect owns one particle population rendered from a silhouette image.
//
// All methods must be called from the frame goroutine. The particle arena
// is replaced wholesale on Build and Resize; indices from a previous
// population are meaningless afterwards.
type Effect struct {
	side     Side
	settings *config.HeroSettings
	pointer  *Pointer
	rng      *rand.Rand

	width, height int
	source        image.Image

	particles []Particle
	grid      *Grid
	gradients *gradient.Cache
	fusions   []Fusion

	factory surface.SpriteFactory
	target  surface.Surface
	onReady func()

	ready   bool
	stopped bool
}

// NewEffect creates an un-built effect for side. The settings are copied.
// A nil pointer gets a private Pointer at the origin.
func NewEffect(side Side, settings config.HeroSettings, pointer *Pointer, opts ...Option) *Effect {
	if pointer == nil {
		pointer = NewPointer()
	}
	s := settings
	e := &Effect{
		side:     side,
		settings: &s,
		pointer:  pointer,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Side returns the hero half this effect renders.
func (e *Effect) Side() Side { return e.side }

// Settings returns the resolved settings in use.
func (e *Effect) Settings() config.HeroSettings { return *e.settings }

// Pointer returns the shared pointer cell.
func (e *Effect) Pointer() *Pointer { return e.pointer }

// Size returns the canvas size the population was built for.
func (e *Effect) Size() (int, int) { return e.width, e.height }

// Ready reports whether a population has been built.
func (e *Effect) Ready() bool { return e.ready }

// Stopped reports whether Stop has been called.
func (e *Effect) Stopped() bool { return e.stopped }

// Particles returns the particle arena. Callers must not modify it.
func (e *Effect) Particles() []Particle { return e.particles }

// Fusions returns the fusion events of the last Step.
func (e *Effect) Fusions() []Fusion { return e.fusions }

// Gradients returns the gradient sprite cache of the current population.
func (e *Effect) Gradients() *gradient.Cache { return e.gradients }

// ActiveCount returns the number of particles currently taking part in
// physics and drawing.
func (e *Effect) ActiveCount() int {
	n := 0
	for _, p := range e.particles {
		if p.Active() {
			n++
		}
	}
	return n
}

// Load obtains the silhouette through src and builds the population.
// On failure the effect is left as it was and the error wraps ErrImageLoad.
func (e *Effect) Load(ctx context.Context, src ImageSource) error {
	img, err := LoadImage(ctx, src, e.settings.LoadTimeout)
	if err != nil {
		log.Printf("[Effect] %s: %v", e.side, err)
		return err
	}
	e.Build(img)
	return nil
}

// Build replaces the population with one sampled from img at the current
// size. The grid and the gradient cache are recreated.
func (e *Effect) Build(img image.Image) {
	e.source = img

	seeds := SampleSilhouette(img, e.width, e.height, e.settings.Gap)
	e.particles = make([]Particle, 0, len(seeds))
	for _, s := range seeds {
		e.particles = append(e.particles, e.newParticle(float64(s.X), float64(s.Y), len(e.particles)))
	}

	e.grid = NewGrid(e.width, e.height, e.settings.CellSize)
	e.gradients = gradient.NewCache(e.settings.GradientCacheSize, e.spriteFactory())
	e.fusions = nil
	e.ready = true

	log.Printf("[Effect] %s: built %d particles (%dx%d, gap %d)", e.side, len(e.particles), e.width, e.height, e.settings.Gap)
	if e.onReady != nil {
		e.onReady()
	}
}

// Resize adopts a canvas size and rebuilds from the retained image, even
// when the size is unchanged. Before the first build only the size is
// recorded.
func (e *Effect) Resize(width, height int) {
	e.width, e.height = width, height
	if e.source != nil {
		e.Build(e.source)
	}
}

// Step advances the simulation by one frame: fusions first (galaxy only),
// then every particle update.
func (e *Effect) Step() {
	if !e.ready || e.stopped {
		return
	}
	e.fusions = e.fusions[:0]
	if e.settings.IsGalaxy() {
		e.grid.Rebuild(e.particles)
		px, py := e.pointer.Position()
		e.fusions = resolveFusions(e.grid, e.particles, px, py, e.settings, e.fusions)
	}
	for _, p := range e.particles {
		p.Update(e)
	}
}

// Draw clears dst and renders every particle.
func (e *Effect) Draw(dst surface.Surface) {
	if !e.ready || e.stopped {
		return
	}
	e.target = dst
	dst.Clear()
	for _, p := range e.particles {
		p.Draw(dst, e)
	}
}

// Frame runs one Step followed by one Draw.
func (e *Effect) Frame(dst surface.Surface) {
	e.Step()
	e.Draw(dst)
}

// FrameFunc is called after every frame Run renders. Returning false ends
// the loop.
type FrameFunc func(frame int) bool

// Run renders one frame per tick until ctx is cancelled, ticks is closed,
// Stop is called or after returns false. Cancellation returns ctx.Err();
// the other exits return nil.
func (e *Effect) Run(ctx context.Context, dst surface.Surface, ticks <-chan time.Time, after FrameFunc) error {
	if !e.ready {
		return ErrNotReady
	}
	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok || e.stopped {
				return nil
			}
			e.Frame(dst)
			if after != nil && !after(frame) {
				return nil
			}
			if e.stopped {
				return nil
			}
		}
	}
}

// Stop halts the effect; Step and Draw become no-ops.
func (e *Effect) Stop() {
	if !e.stopped {
		log.Printf("[Effect] %s: stopped", e.side)
	}
	e.stopped = true
}

func (e *Effect) spriteFactory() surface.SpriteFactory {
	if e.factory != nil {
		return e.factory
	}
	return func(img *image.RGBA) surface.Sprite {
		if e.target == nil {
			return nil
		}
		return e.target.NewSprite(img)
	}
}

// galaxy returns the galaxy particle at idx, or nil.
func (e *Effect) galaxy(idx int) *GalaxyParticle {
	return galaxyAt(e.particles, idx)
}

func (e *Effect) randomChar() rune {
	cs := e.settings.CharSet
	if len(cs) == 0 {
		return '0'
	}
	return cs[e.rng.Intn(len(cs))]
}

func (e *Effect) randomColor() palette.RGB {
	cs := e.settings.Colors
	if len(cs) == 0 {
		return palette.White
	}
	return cs[e.rng.Intn(len(cs))]
}

// newParticle creates the variant for this side at origin (x, y).
func (e *Effect) newParticle(x, y float64, index int) Particle {
	s := e.settings
	gap := float64(s.Gap)
	body := Body{
		X:        e.rng.Float64() * float64(e.width),
		Y:        e.rng.Float64() * float64(e.height),
		Size:     gap,
		Ease:     s.Ease,
		Friction: s.Friction,
		originX:  x,
		originY:  y,
	}

	if e.side == SideDeveloper {
		body.Color = s.Color
		return &MatrixParticle{
			body:     body,
			char:     e.randomChar(),
			fontSize: gap * matrixFontScale,
			interval: int(math.Floor(e.rng.Float64()*matrixIntervalSpan + matrixIntervalMin)),
		}
	}

	body.Color = e.randomColor()
	if !s.IsGalaxy() {
		body.Size = (e.rng.Float64()*5 + 2) * (gap / 2)
		return &BrushParticle{body: body}
	}

	body.Size = e.rng.Float64()*2 + 1
	body.Ease = galaxyEase
	body.Friction = galaxyFriction
	return &GalaxyParticle{
		body:        body,
		index:       index,
		active:      true,
		baseSize:    body.Size,
		driftAngle:  e.rng.Float64() * 2 * math.Pi,
		driftSpeed:  e.rng.Float64() * 0.02,
		driftRadius: e.rng.Float64() * 5,
	}
}
