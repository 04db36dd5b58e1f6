// Package main renders the hero effect headlessly into PNG frames.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--side <name>     developer or creative (default creative)
//	--type <name>     force the creative variant: galaxy or brush
//	--config <path>   hero YAML file (default data/hero.yaml)
//	--root <dir>      directory image paths are resolved against (default .)
//	--frames <n>      number of frames to simulate (default 240)
//	--every <n>       write every n-th frame (default 30)
//	--out <dir>       output directory (default frames)
//	--width, --height canvas size (default 480x270)
//	--verbose         enable verbose logging
//
// The pointer follows a circle around the canvas centre so that the
// repulsion and, for galaxy, fusion paths are exercised.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/decker502/hero/pkg/app"
	"github.com/decker502/hero/pkg/hero"
	"github.com/decker502/hero/pkg/surface"
)

var (
	sideFlag    = flag.String("side", "creative", "Effect side: developer or creative")
	typeFlag    = flag.String("type", "", "Force the creative variant: galaxy or brush")
	configFlag  = flag.String("config", app.HeroConfigPath, "Hero YAML configuration")
	rootFlag    = flag.String("root", ".", "Directory image paths are resolved against")
	framesFlag  = flag.Int("frames", 240, "Number of frames to simulate")
	everyFlag   = flag.Int("every", 30, "Write every n-th frame")
	outFlag     = flag.String("out", "frames", "Output directory")
	widthFlag   = flag.Int("width", 480, "Canvas width")
	heightFlag  = flag.Int("height", 270, "Canvas height")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	base, err := os.ReadFile(*configFlag)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dev, creative, err := app.LoadSettings(base, "", *typeFlag)
	if err != nil {
		return err
	}

	side := hero.SideCreative
	settings := creative
	background := color.Color(color.RGBA{R: 11, G: 13, B: 23, A: 255})
	switch *sideFlag {
	case "creative":
	case "developer":
		side, settings, background = hero.SideDeveloper, dev, color.Black
	default:
		return fmt.Errorf("unknown side %q", *sideFlag)
	}

	pointer := hero.NewPointer()
	effect := hero.NewEffect(side, settings, pointer)
	effect.Resize(*widthFlag, *heightFlag)

	ctx := context.Background()
	if err := effect.Load(ctx, hero.FSImage(os.DirFS(*rootFlag), settings.Image)); err != nil {
		return err
	}
	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		return err
	}

	raster := surface.NewRaster(*widthFlag, *heightFlag, background)
	ticks := scriptedTicks(*framesFlag)
	every := max(*everyFlag, 1)

	cx, cy := float64(*widthFlag)/2, float64(*heightFlag)/2
	radius := math.Min(cx, cy) * 0.6
	written := 0

	err = effect.Run(ctx, raster, ticks, func(frame int) bool {
		// 下一帧的指针位置
		angle := float64(frame+1) * 2 * math.Pi / 120
		pointer.Set(cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))

		if frame%every != 0 {
			return true
		}
		name := filepath.Join(*outFlag, fmt.Sprintf("%s_%04d.png", side, frame))
		if err := writePNG(name, raster); err != nil {
			log.Printf("[Particles] %v", err)
			return false
		}
		written++
		return true
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d particles, %d frames written to %s\n", side, len(effect.Particles()), written, *outFlag)
	return nil
}

// scriptedTicks yields n ticks and then closes.
func scriptedTicks(n int) <-chan time.Time {
	ch := make(chan time.Time, n)
	start := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		ch <- start.Add(time.Duration(i) * time.Second / 60)
	}
	close(ch)
	return ch
}

func writePNG(name string, r *surface.Raster) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := png.Encode(f, r.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return f.Close()
}
