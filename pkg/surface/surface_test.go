package surface

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

var (
	_ Surface = (*Raster)(nil)
	_ Surface = (*Ebiten)(nil)
	_ Surface = (*Terminal)(nil)
)

func solidSprite(side int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestRaster_ClearAndSize(t *testing.T) {
	r := NewRaster(40, 30, color.RGBA{A: 255})
	if w, h := r.Size(); w != 40 || h != 30 {
		t.Fatalf("Size() = (%d,%d), want (40,30)", w, h)
	}
	if got := r.Image().RGBAAt(10, 10); got != (color.RGBA{A: 255}) {
		t.Errorf("cleared pixel = %v, want opaque black", got)
	}

	r.Resize(20, 10)
	if w, h := r.Size(); w != 20 || h != 10 {
		t.Errorf("Size() after Resize = (%d,%d)", w, h)
	}
}

func TestRaster_FillCircle(t *testing.T) {
	r := NewRaster(50, 50, nil)
	red := color.RGBA{R: 255, A: 255}
	r.FillCircle(25, 25, 10, red)

	if got := r.Image().RGBAAt(25, 25); got != red {
		t.Errorf("centre pixel = %v, want %v", got, red)
	}
	if got := r.Image().RGBAAt(2, 2); got.A != 0 {
		t.Errorf("far pixel = %v, want transparent", got)
	}

	// Partially off-canvas circles must not panic and still paint the visible part.
	r.FillCircle(0, 0, 5, red)
	if got := r.Image().RGBAAt(1, 1); got.R == 0 {
		t.Errorf("corner pixel = %v, want painted", got)
	}
	r.FillCircle(-100, -100, 5, red)
	r.FillCircle(10, 10, 0, red)
}

func TestRaster_DrawSpriteLighter(t *testing.T) {
	r := NewRaster(20, 20, color.RGBA{R: 100, A: 255})
	sp := r.NewSprite(solidSprite(4, color.RGBA{R: 100, G: 50, A: 255}))
	if sp.Side() != 4 {
		t.Fatalf("Side() = %d, want 4", sp.Side())
	}

	r.DrawSprite(sp, 5, 5, 8, 1, Lighter)
	got := r.Image().RGBAAt(8, 8)
	if got.R < 198 || got.R > 200 || got.G < 48 || got.G > 50 {
		t.Errorf("additive pixel = %v, want R~200 G~50", got)
	}

	// Saturation
	r.DrawSprite(sp, 5, 5, 8, 1, Lighter)
	r.DrawSprite(sp, 5, 5, 8, 1, Lighter)
	if got := r.Image().RGBAAt(8, 8); got.R != 255 {
		t.Errorf("saturated R = %d, want 255", got.R)
	}

	// untouched outside the sprite
	if got := r.Image().RGBAAt(1, 1); got.R != 100 || got.G != 0 {
		t.Errorf("outside pixel = %v", got)
	}
}

func TestRaster_DrawSpriteSourceOverHalfAlpha(t *testing.T) {
	r := NewRaster(10, 10, color.RGBA{A: 255})
	sp := r.NewSprite(solidSprite(2, color.RGBA{G: 200, A: 255}))
	r.DrawSprite(sp, 0, 0, 10, 0.5, SourceOver)
	got := r.Image().RGBAAt(5, 5)
	if got.G < 95 || got.G > 105 {
		t.Errorf("half-alpha G = %d, want ~100", got.G)
	}
}

func TestRaster_FillText(t *testing.T) {
	r := NewRaster(60, 40, color.RGBA{A: 255})
	r.FillText("01", 5, 30, 20, color.RGBA{G: 255, A: 255})

	painted := 0
	img := r.Image()
	for y := 0; y < 40; y++ {
		for x := 0; x < 60; x++ {
			if img.RGBAAt(x, y).G > 0 {
				painted++
			}
		}
	}
	if painted == 0 {
		t.Error("FillText painted no pixels")
	}
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init: %v", err)
	}
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func TestTerminal_DrawAndPresent(t *testing.T) {
	screen := newSimScreen(t, 10, 5)
	term := NewTerminal(screen, 8, 16)

	if w, h := term.Size(); w != 80 || h != 80 {
		t.Fatalf("Size() = (%d,%d), want (80,80)", w, h)
	}

	// small circle in cell (2,1)
	term.FillCircle(20, 24, 2, color.RGBA{R: 255, A: 255})
	term.FillText("A", 40, 40, 12, color.White)
	term.Present()

	if ch, _, _, _ := screen.GetContent(2, 1); ch != '•' {
		t.Errorf("cell (2,1) = %q, want dot", ch)
	}
	if ch, _, _, _ := screen.GetContent(5, 2); ch != 'A' {
		t.Errorf("cell (5,2) = %q, want 'A'", ch)
	}
	if ch, _, _, _ := screen.GetContent(0, 0); ch != ' ' {
		t.Errorf("cell (0,0) = %q, want blank", ch)
	}

	term.Clear()
	term.Present()
	if ch, _, _, _ := screen.GetContent(2, 1); ch != ' ' {
		t.Errorf("cell (2,1) after Clear = %q, want blank", ch)
	}
}

func TestTerminal_CellToCanvas(t *testing.T) {
	term := NewTerminal(newSimScreen(t, 4, 4), 0, 0)
	x, y := term.CellToCanvas(1, 2)
	if x != 12 || y != 40 {
		t.Errorf("CellToCanvas(1,2) = (%v,%v), want (12,40)", x, y)
	}
}
