package hero

import (
	"github.com/decker502/hero/pkg/surface"
)

// Glyph switch interval bounds in frames: [min, min+span).
const (
	matrixIntervalMin  = 10
	matrixIntervalSpan = 20
	matrixFontScale    = 1.5
)

// MatrixParticle is a glyph that cycles through the configured character set.
type MatrixParticle struct {
	body     Body
	char     rune
	fontSize float64
	timer    int
	interval int
}

func (m *MatrixParticle) Body() *Body  { return &m.body }
func (m *MatrixParticle) Active() bool { return true }

// Char returns the glyph currently displayed.
func (m *MatrixParticle) Char() rune { return m.char }

// Interval returns the number of frames between glyph switches.
func (m *MatrixParticle) Interval() int { return m.interval }

func (m *MatrixParticle) Update(e *Effect) {
	px, py := e.pointer.Position()
	stepBase(&m.body, px, py, e.settings.MouseForce)

	t := m.timer
	m.timer++
	if t > m.interval {
		m.timer = 0
		m.char = e.randomChar()
	}
}

func (m *MatrixParticle) Draw(dst surface.Surface, e *Effect) {
	dst.FillText(string(m.char), m.body.X, m.body.Y, m.fontSize, m.body.Color.Opaque())
}
