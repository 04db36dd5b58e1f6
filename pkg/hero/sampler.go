package hero

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// darkThreshold is the red channel value below which a pixel seeds a particle.
const darkThreshold = 100

// Seed is a sampled particle origin in canvas coordinates.
type Seed struct {
	X, Y int
}

// CoverRect returns where an imgW×imgH image lands on a width×height
// canvas when scaled to cover it: the image keeps its aspect ratio, fills
// the canvas completely and is centred, overflowing on one axis.
func CoverRect(imgW, imgH, width, height int) image.Rectangle {
	if imgW <= 0 || imgH <= 0 || width <= 0 || height <= 0 {
		return image.Rectangle{}
	}
	imgRatio := float64(imgW) / float64(imgH)
	canvasRatio := float64(width) / float64(height)

	var dw, dh, ox, oy float64
	if canvasRatio > imgRatio {
		dw = float64(width)
		dh = float64(width) / imgRatio
		oy = (float64(height) - dh) / 2
	} else {
		dh = float64(height)
		dw = float64(height) * imgRatio
		ox = (float64(width) - dw) / 2
	}
	return image.Rect(
		int(math.Round(ox)), int(math.Round(oy)),
		int(math.Round(ox+dw)), int(math.Round(oy+dh)),
	)
}

// RenderCover draws img onto a fresh width×height canvas in cover mode.
func RenderCover(img image.Image, width, height int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	b := img.Bounds()
	dr := CoverRect(b.Dx(), b.Dy(), width, height)
	if dr.Empty() {
		return canvas
	}
	draw.BiLinear.Scale(canvas, dr, img, b, draw.Src, nil)
	return canvas
}

// SampleSilhouette returns a seed for every gap-th pixel of the covered
// canvas that is visible (alpha > 0) and dark (red < 100).
func SampleSilhouette(img image.Image, width, height, gap int) []Seed {
	if img == nil || width <= 0 || height <= 0 || gap <= 0 {
		return nil
	}
	canvas := RenderCover(img, width, height)

	var seeds []Seed
	for y := 0; y < height; y += gap {
		for x := 0; x < width; x += gap {
			p := canvas.NRGBAAt(x, y)
			if p.A > 0 && p.R < darkThreshold {
				seeds = append(seeds, Seed{X: x, Y: y})
			}
		}
	}
	return seeds
}
