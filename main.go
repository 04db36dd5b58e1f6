package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/hero/pkg/app"
	"github.com/decker502/hero/pkg/embedded"
	"github.com/decker502/hero/pkg/settings"
	"github.com/decker502/hero/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML file layered over the embedded hero configuration")
	heroType := flag.String("type", "", "Force the creative variant: galaxy or brush")
	split := flag.Float64("split", -1, "Initial split position in [0,1] (default: last used)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	flag.Parse()

	embedded.Init(assetsFS, dataFS)

	base, err := embedded.ReadFile(app.HeroConfigPath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", app.HeroConfigPath, err)
	}
	dev, creative, err := app.LoadSettings(base, *configPath, *heroType)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Main] Warning: %v", err)
	}
	if p := utils.GetStoragePath(); p != "" {
		log.Printf("[Main] Storage path: %s", p)
	}
	prefs := settings.Open("hero")
	if *split >= 0 {
		prefs.SetSplit(*split)
	}

	viewer, err := app.NewApp(app.Config{
		Verbose:   *verbose,
		Developer: dev,
		Creative:  creative,
		Assets:    embedded.FS(),
		Prefs:     prefs,
	})
	if err != nil {
		log.Fatalf("Viewer initialisation failed: %v", err)
	}

	s := prefs.Settings()
	if viewer.IsVerbose() {
		log.Printf("[Main] Window %dx%d, split %.2f, fullscreen %v", s.WindowWidth, s.WindowHeight, s.Split, s.Fullscreen)
	}
	ebiten.SetWindowSize(s.WindowWidth, s.WindowHeight)
	ebiten.SetWindowTitle("Hero")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(s.Fullscreen)

	runErr := ebiten.RunGame(viewer)
	if err := viewer.Close(); err != nil {
		log.Printf("[Main] Failed to save settings: %v", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
