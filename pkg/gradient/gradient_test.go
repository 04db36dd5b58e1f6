package gradient

import (
	"image"
	"testing"

	"github.com/decker502/hero/internal/palette"
	"github.com/decker502/hero/pkg/surface"
)

type fakeSprite struct {
	side int
	id   int
}

func (s *fakeSprite) Side() int { return s.side }

func countingFactory(n *int) surface.SpriteFactory {
	return func(img *image.RGBA) surface.Sprite {
		*n++
		return &fakeSprite{side: img.Bounds().Dx(), id: *n}
	}
}

func TestRender_Glow(t *testing.T) {
	c := palette.RGB{R: 200, G: 100, B: 0}
	img := Render(Glow, c, palette.White, 10)
	if img == nil {
		t.Fatal("Render returned nil")
	}
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 20 {
		t.Fatalf("bounds = %v, want 20x20", img.Bounds())
	}

	centre := img.RGBAAt(10, 10)
	if centre.A < 230 || centre.R < 180 {
		t.Errorf("centre = %v, want near-opaque colour", centre)
	}
	corner := img.RGBAAt(0, 0)
	if corner.A != 0 {
		t.Errorf("corner = %v, want transparent beyond radius", corner)
	}

	// alpha never increases outwards along a row
	prev := 256
	for x := 10; x < 20; x++ {
		a := int(img.RGBAAt(x, 10).A)
		if a > prev {
			t.Fatalf("alpha rises at x=%d: %d > %d", x, a, prev)
		}
		prev = a
	}
}

func TestRender_FlashStartsWithFlashColour(t *testing.T) {
	flash := palette.RGB{R: 255, G: 255, B: 255}
	c := palette.RGB{R: 0, G: 0, B: 255}
	img := Render(Flash, c, flash, 20)

	centre := img.RGBAAt(20, 20)
	if centre.R < 200 || centre.G < 200 {
		t.Errorf("flash centre = %v, want near flash colour", centre)
	}
	// around 30% of the radius the particle colour dominates
	mid := img.RGBAAt(20+6, 20)
	if mid.B < mid.R {
		t.Errorf("flash mid stop = %v, want blue dominant", mid)
	}
}

func TestRender_NonPositiveRadius(t *testing.T) {
	if Render(Glow, palette.White, palette.White, 0) != nil {
		t.Error("Render(radius=0) should be nil")
	}
}

func TestQuantizeRadius(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0.5, 10},
		{10, 10},
		{10.01, 20},
		{37, 40},
		{0, 0},
	}
	for _, tt := range tests {
		if got := QuantizeRadius(tt.in); got != tt.want {
			t.Errorf("QuantizeRadius(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCache_SameKeyReturnsSameSprite(t *testing.T) {
	renders := 0
	cache := NewCache(10, countingFactory(&renders))
	c := palette.RGB{R: 16, G: 32, B: 48}

	a := cache.Get(Glow, c, 12, palette.White)
	b := cache.Get(Glow, c, 18, palette.White) // same 20px bucket
	if a == nil || a != b {
		t.Fatalf("expected identical cached sprite, got %v and %v", a, b)
	}
	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
	if a.Side() != 40 {
		t.Errorf("sprite side = %d, want 40 (2 × quantized radius)", a.Side())
	}

	if st := cache.Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Errorf("stats = %+v, want 1 hit 1 miss", st)
	}
}

func TestCache_KeyIncludesKindAndFlash(t *testing.T) {
	renders := 0
	cache := NewCache(10, countingFactory(&renders))
	c := palette.RGB{R: 16}

	glow := cache.Get(Glow, c, 10, palette.White)
	glowOtherFlash := cache.Get(Glow, c, 10, palette.RGB{R: 1})
	if glow != glowOtherFlash {
		t.Error("flash colour must not split glow entries")
	}

	f1 := cache.Get(Flash, c, 10, palette.White)
	f2 := cache.Get(Flash, c, 10, palette.RGB{R: 1})
	if f1 == glow || f1 == f2 {
		t.Error("flash sprites must be keyed by kind and flash colour")
	}
	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}
}

func TestCache_BoundedWithFIFOEviction(t *testing.T) {
	renders := 0
	cache := NewCache(3, countingFactory(&renders))

	colours := []palette.RGB{{R: 1}, {R: 2}, {R: 3}, {R: 4}, {R: 5}}
	for _, c := range colours {
		cache.Get(Glow, c, 10, palette.White)
		if cache.Len() > cache.Capacity() {
			t.Fatalf("Len() = %d exceeds capacity %d", cache.Len(), cache.Capacity())
		}
	}
	if cache.Len() != 3 {
		t.Errorf("Len() = %d, want 3", cache.Len())
	}
	if st := cache.Stats(); st.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", st.Evictions)
	}

	// oldest (R=1) was evicted, newest (R=5) is still cached
	before := renders
	cache.Get(Glow, colours[4], 10, palette.White)
	if renders != before {
		t.Error("newest entry should still be cached")
	}
	cache.Get(Glow, colours[0], 10, palette.White)
	if renders != before+1 {
		t.Error("oldest entry should have been evicted")
	}
}

func TestCache_DefaultsAndNil(t *testing.T) {
	cache := NewCache(0, nil)
	if cache.Capacity() != DefaultCapacity {
		t.Errorf("Capacity() = %d, want %d", cache.Capacity(), DefaultCapacity)
	}
	if cache.Get(Glow, palette.White, 5, palette.White) != nil {
		t.Error("nil factory should yield nil sprite")
	}

	renders := 0
	cache = NewCache(5, countingFactory(&renders))
	if cache.Get(Glow, palette.White, 0, palette.White) != nil {
		t.Error("zero radius should yield nil sprite")
	}
}

func TestCache_NilSpriteNotCached(t *testing.T) {
	ready := false
	renders := 0
	inner := countingFactory(&renders)
	cache := NewCache(5, func(img *image.RGBA) surface.Sprite {
		if !ready {
			return nil
		}
		return inner(img)
	})

	if cache.Get(Glow, palette.White, 10, palette.White) != nil {
		t.Fatal("factory returned nil, Get should too")
	}
	if cache.Len() != 0 {
		t.Fatalf("Len() = %d after a nil sprite, want 0", cache.Len())
	}

	ready = true
	sp := cache.Get(Glow, palette.White, 10, palette.White)
	if sp == nil {
		t.Fatal("Get should render once the factory yields sprites")
	}
	if renders != 1 || cache.Len() != 1 {
		t.Errorf("renders = %d, Len() = %d, want 1 and 1", renders, cache.Len())
	}
}
