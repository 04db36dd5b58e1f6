package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Terminal cell geometry in canvas units. A terminal cell is roughly twice
// as tall as it is wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

type termCell struct {
	ch     rune
	fg     [3]float64
	bg     [3]float64
	filled bool
}

// Terminal renders onto a tcell screen. Drawing goes into an off-screen
// cell buffer; Present pushes the buffer to the terminal.
type Terminal struct {
	screen     tcell.Screen
	cellW      int
	cellH      int
	cols, rows int
	cells      []termCell
}

type termSprite struct {
	img *image.RGBA
}

func (s *termSprite) Side() int { return s.img.Bounds().Dx() }

// NewTerminal wraps an initialised tcell screen. Cell dimensions of zero
// select the defaults.
func NewTerminal(screen tcell.Screen, cellW, cellH int) *Terminal {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	t := &Terminal{screen: screen, cellW: cellW, cellH: cellH}
	cols, rows := screen.Size()
	t.Resize(cols, rows)
	return t
}

// Resize adopts a new terminal size in cells.
func (t *Terminal) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	t.cols, t.rows = cols, rows
	t.cells = make([]termCell, cols*rows)
}

// CellToCanvas converts a cell coordinate into the canvas point at the cell centre.
func (t *Terminal) CellToCanvas(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * float64(t.cellW), (float64(row) + 0.5) * float64(t.cellH)
}

func (t *Terminal) Size() (int, int) {
	return t.cols * t.cellW, t.rows * t.cellH
}

func (t *Terminal) Clear() {
	for i := range t.cells {
		t.cells[i] = termCell{}
	}
}

func (t *Terminal) cell(col, row int) *termCell {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return nil
	}
	return &t.cells[row*t.cols+col]
}

func (t *Terminal) FillCircle(x, y, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	rgb := toFloatRGB(c)

	minCol := int(math.Floor((x - radius) / float64(t.cellW)))
	maxCol := int(math.Floor((x + radius) / float64(t.cellW)))
	minRow := int(math.Floor((y - radius) / float64(t.cellH)))
	maxRow := int(math.Floor((y + radius) / float64(t.cellH)))

	glyph := '█'
	if radius*2 < float64(t.cellW) {
		glyph = '•'
	}

	hit := false
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cx, cy := t.CellToCanvas(col, row)
			if (cx-x)*(cx-x)+(cy-y)*(cy-y) > radius*radius {
				continue
			}
			if cl := t.cell(col, row); cl != nil {
				cl.ch, cl.fg, cl.filled = glyph, rgb, true
				hit = true
			}
		}
	}

	// Circles smaller than a cell still mark the cell they sit in.
	if !hit {
		if cl := t.cell(int(math.Floor(x/float64(t.cellW))), int(math.Floor(y/float64(t.cellH)))); cl != nil {
			cl.ch, cl.fg, cl.filled = glyph, rgb, true
		}
	}
}

func (t *Terminal) FillText(s string, x, y, size float64, c color.Color) {
	rgb := toFloatRGB(c)
	col := int(math.Floor(x / float64(t.cellW)))
	row := int(math.Floor((y - 1) / float64(t.cellH)))
	for _, r := range s {
		if cl := t.cell(col, row); cl != nil {
			cl.ch, cl.fg, cl.filled = r, rgb, true
		}
		col++
	}
}

func (t *Terminal) DrawSprite(sp Sprite, x, y, size, alpha float64, blend Blend) {
	ts, ok := sp.(*termSprite)
	if !ok || ts == nil || size <= 0 || alpha <= 0 {
		return
	}
	side := ts.img.Bounds().Dx()
	if side == 0 {
		return
	}

	minCol := int(math.Floor(x / float64(t.cellW)))
	maxCol := int(math.Floor((x + size) / float64(t.cellW)))
	minRow := int(math.Floor(y / float64(t.cellH)))
	maxRow := int(math.Floor((y + size) / float64(t.cellH)))

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			cl := t.cell(col, row)
			if cl == nil {
				continue
			}
			cx, cy := t.CellToCanvas(col, row)
			sx := int((cx - x) / size * float64(side))
			sy := int((cy - y) / size * float64(side))
			if sx < 0 || sy < 0 || sx >= side || sy >= side {
				continue
			}
			p := ts.img.RGBAAt(sx, sy)
			a := float64(p.A) / 255 * alpha
			src := [3]float64{float64(p.R) * alpha, float64(p.G) * alpha, float64(p.B) * alpha}
			for ch := 0; ch < 3; ch++ {
				if blend == Lighter {
					cl.bg[ch] = math.Min(255, cl.bg[ch]+src[ch])
				} else {
					cl.bg[ch] = src[ch] + cl.bg[ch]*(1-a)
				}
			}
		}
	}
}

func (t *Terminal) NewSprite(img *image.RGBA) Sprite {
	return &termSprite{img: img}
}

// Present copies the cell buffer to the screen and shows it.
func (t *Terminal) Present() {
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			cl := t.cells[row*t.cols+col]
			ch := ' '
			if cl.filled {
				ch = cl.ch
			}
			style := tcell.StyleDefault.
				Foreground(tcellColor(cl.fg)).
				Background(tcellColor(cl.bg))
			t.screen.SetContent(col, row, ch, nil, style)
		}
	}
	t.screen.Show()
}

func toFloatRGB(c color.Color) [3]float64 {
	r, g, b, _ := c.RGBA()
	return [3]float64{float64(r >> 8), float64(g >> 8), float64(b >> 8)}
}

func tcellColor(c [3]float64) tcell.Color {
	return tcell.NewRGBColor(int32(c[0]), int32(c[1]), int32(c[2]))
}
