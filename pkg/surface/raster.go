package surface

import (
	"image"
	"image/color"
	"log"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleKappa is the cubic Bézier control distance for a quarter circle.
const circleKappa = 0.5522847498

// Raster is a CPU Surface backed by an *image.RGBA. One canvas unit is one pixel.
type Raster struct {
	img        *image.RGBA
	background color.Color

	z        *vector.Rasterizer
	monoFont *opentype.Font
	faces    map[int]font.Face
}

type rasterSprite struct {
	img *image.RGBA
}

func (s *rasterSprite) Side() int { return s.img.Bounds().Dx() }

// NewRaster creates a width×height raster surface cleared to background.
// A nil background means fully transparent.
func NewRaster(width, height int, background color.Color) *Raster {
	if background == nil {
		background = color.Transparent
	}
	r := &Raster{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
		z:          vector.NewRasterizer(1, 1),
		faces:      make(map[int]font.Face),
	}
	r.Clear()
	return r
}

// Image returns the backing image. It stays valid until the next Resize.
func (r *Raster) Image() *image.RGBA {
	return r.img
}

// Resize replaces the backing image with a new cleared one.
func (r *Raster) Resize(width, height int) {
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.Clear()
}

func (r *Raster) Size() (int, int) {
	b := r.img.Bounds()
	return b.Dx(), b.Dy()
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.background), image.Point{}, draw.Src)
}

func (r *Raster) FillCircle(x, y, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}

	box := image.Rect(
		int(math.Floor(x-radius)), int(math.Floor(y-radius)),
		int(math.Ceil(x+radius))+1, int(math.Ceil(y+radius))+1,
	)
	if box.Intersect(r.img.Bounds()).Empty() {
		return
	}

	// Rasterize into a local mask that fully contains the path, then let
	// DrawMask handle clipping against the canvas.
	w, h := box.Dx(), box.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.z.Reset(w, h)
	cx := float32(x - float64(box.Min.X))
	cy := float32(y - float64(box.Min.Y))
	addCircle(r.z, cx, cy, float32(radius))
	r.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(r.img, box, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

func addCircle(z *vector.Rasterizer, cx, cy, rad float32) {
	k := rad * circleKappa
	z.MoveTo(cx+rad, cy)
	z.CubeTo(cx+rad, cy+k, cx+k, cy+rad, cx, cy+rad)
	z.CubeTo(cx-k, cy+rad, cx-rad, cy+k, cx-rad, cy)
	z.CubeTo(cx-rad, cy-k, cx-k, cy-rad, cx, cy-rad)
	z.CubeTo(cx+k, cy-rad, cx+rad, cy-k, cx+rad, cy)
	z.ClosePath()
}

func (r *Raster) FillText(s string, x, y, size float64, c color.Color) {
	face := r.face(size)
	if face == nil {
		return
	}
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	d.DrawString(s)
}

// face returns a cached Go Mono face for the rounded pixel size.
func (r *Raster) face(size float64) font.Face {
	px := int(math.Round(size))
	if px <= 0 {
		return nil
	}
	if f, ok := r.faces[px]; ok {
		return f
	}

	if r.monoFont == nil {
		f, err := opentype.Parse(gomono.TTF)
		if err != nil {
			log.Printf("[Raster] Failed to parse Go Mono font: %v", err)
			return nil
		}
		r.monoFont = f
	}

	face, err := opentype.NewFace(r.monoFont, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		log.Printf("[Raster] Failed to create %dpx face: %v", px, err)
		return nil
	}
	r.faces[px] = face
	return face
}

func (r *Raster) DrawSprite(sp Sprite, x, y, size, alpha float64, blend Blend) {
	rs, ok := sp.(*rasterSprite)
	if !ok || rs == nil {
		return
	}
	n := int(math.Round(size))
	if n <= 0 || alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	dst := image.Rect(0, 0, n, n).Add(image.Pt(int(math.Round(x)), int(math.Round(y))))
	clip := dst.Intersect(r.img.Bounds())
	if clip.Empty() {
		return
	}

	scaled := image.NewRGBA(image.Rect(0, 0, n, n))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), rs.img, rs.img.Bounds(), draw.Src, nil)

	switch blend {
	case Lighter:
		addPixels(r.img, clip, scaled, clip.Min.Sub(dst.Min), alpha)
	default:
		a := uint8(math.Round(alpha * 255))
		draw.DrawMask(r.img, dst, scaled, image.Point{}, image.NewUniform(color.Alpha{A: a}), image.Point{}, draw.Over)
	}
}

// addPixels adds alpha-scaled premultiplied src pixels into dst over rect,
// saturating at 255. sp is the src point matching rect.Min.
func addPixels(dst *image.RGBA, rect image.Rectangle, src *image.RGBA, sp image.Point, alpha float64) {
	for y := 0; y < rect.Dy(); y++ {
		di := dst.PixOffset(rect.Min.X, rect.Min.Y+y)
		si := src.PixOffset(sp.X, sp.Y+y)
		for x := 0; x < rect.Dx(); x++ {
			for ch := 0; ch < 4; ch++ {
				v := float64(dst.Pix[di+ch]) + float64(src.Pix[si+ch])*alpha
				if v > 255 {
					v = 255
				}
				dst.Pix[di+ch] = uint8(v)
			}
			di += 4
			si += 4
		}
	}
}

func (r *Raster) NewSprite(img *image.RGBA) Sprite {
	return &rasterSprite{img: img}
}
