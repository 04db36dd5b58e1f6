// Package main runs the hero effect inside a terminal.
//
// Usage:
//
//	go run ./cmd/termhero [--side creative] [--type galaxy] [--config data/hero.yaml]
//
// Move the mouse over the terminal to push the particles. Escape, q or
// Ctrl+C quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/hero/pkg/app"
	"github.com/decker502/hero/pkg/hero"
	"github.com/decker502/hero/pkg/surface"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

var (
	sideFlag   = flag.String("side", "creative", "Effect side: developer or creative")
	typeFlag   = flag.String("type", "", "Force the creative variant: galaxy or brush")
	configFlag = flag.String("config", app.HeroConfigPath, "Hero YAML configuration")
	rootFlag   = flag.String("root", ".", "Directory image paths are resolved against")
	logFlag    = flag.String("log", "", "Write logs to this file (default: discard)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 终端被 tcell 占用，日志只能写文件
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	base, err := os.ReadFile(*configFlag)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dev, creative, err := app.LoadSettings(base, "", *typeFlag)
	if err != nil {
		return err
	}
	side, settings := hero.SideCreative, creative
	switch *sideFlag {
	case "creative":
	case "developer":
		side, settings = hero.SideDeveloper, dev
	default:
		return fmt.Errorf("unknown side %q", *sideFlag)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	term := surface.NewTerminal(screen, 0, 0)
	pointer := hero.NewPointer()
	effect := hero.NewEffect(side, settings, pointer)
	effect.Resize(term.Size())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := effect.Load(ctx, hero.FSImage(os.DirFS(*rootFlag), settings.Image)); err != nil {
		return err
	}

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	return effect.Run(ctx, term, ticker.C, func(int) bool {
		term.Present()
		for {
			select {
			case ev := <-events:
				if !handleEvent(ev, term, effect) {
					return false
				}
			default:
				return true
			}
		}
	})
}

// handleEvent applies one terminal event. It returns false when the user quits.
func handleEvent(ev tcell.Event, term *surface.Terminal, effect *hero.Effect) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
	case *tcell.EventMouse:
		col, row := ev.Position()
		effect.Pointer().Set(term.CellToCanvas(col, row))
	case *tcell.EventResize:
		cols, rows := ev.Size()
		term.Resize(cols, rows)
		effect.Resize(term.Size())
	}
	return true
}
