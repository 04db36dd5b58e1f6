package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/decker502/hero/pkg/config"
	"github.com/decker502/hero/pkg/settings"
)

func TestDebouncer(t *testing.T) {
	start := time.Unix(1000, 0)
	d := NewDebouncer(ResizeDelay)

	if _, _, ok := d.Poll(start); ok {
		t.Fatal("Poll() on an idle debouncer should not fire")
	}

	d.Trigger(start, 800, 600)
	d.Trigger(start.Add(150*time.Millisecond), 1024, 768) // restarts the delay
	if _, _, ok := d.Poll(start.Add(300 * time.Millisecond)); ok {
		t.Fatal("Poll() fired before the restarted delay elapsed")
	}
	if !d.Pending() {
		t.Fatal("Pending() = false while waiting")
	}

	w, h, ok := d.Poll(start.Add(350 * time.Millisecond))
	if !ok || w != 1024 || h != 768 {
		t.Fatalf("Poll() = %d, %d, %v; want 1024, 768, true", w, h, ok)
	}
	if _, _, ok := d.Poll(start.Add(time.Second)); ok {
		t.Error("a settled size must fire only once")
	}
}

func TestSplitX(t *testing.T) {
	tests := []struct {
		width int
		split float64
		want  int
	}{
		{1000, 0.5, 500},
		{1000, 0, 0},
		{1000, 1, 1000},
		{1000, 1.2, 1000},
		{1000, -0.1, 0},
		{333, 0.5, 167},
	}
	for _, tt := range tests {
		if got := SplitX(tt.width, tt.split); got != tt.want {
			t.Errorf("SplitX(%d, %v) = %d, want %d", tt.width, tt.split, got, tt.want)
		}
	}
}

func TestNextPreset(t *testing.T) {
	if got := NextPreset(0.5); got != 1 {
		t.Errorf("NextPreset(0.5) = %v, want 1", got)
	}
	if got := NextPreset(1); got != 0 {
		t.Errorf("NextPreset(1) = %v, want 0", got)
	}
	if got := NextPreset(0); got != 0.5 {
		t.Errorf("NextPreset(0) = %v, want 0.5", got)
	}
	if got := NextPreset(0.3); got != 0.5 {
		t.Errorf("NextPreset(0.3) = %v, want 0.5", got)
	}
}

func TestVisibleHalves(t *testing.T) {
	if d, c := visibleHalves(100, 0.5); !d || !c {
		t.Error("both halves should be visible at 0.5")
	}
	if d, c := visibleHalves(100, 0); d || !c {
		t.Error("only the creative half should be visible at 0")
	}
	if d, c := visibleHalves(100, 1); !d || c {
		t.Error("only the developer half should be visible at 1")
	}
}

const baseYAML = `developer:
  gap: 4
  image: assets/images/developer.png
creative:
  type: galaxy
  image: assets/images/creative.png
  colors: ["#ff0080"]
`

func TestLoadSettings(t *testing.T) {
	dev, cre, err := LoadSettings([]byte(baseYAML), "", "")
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if dev.Image != "assets/images/developer.png" || !cre.IsGalaxy() {
		t.Errorf("dev image %q, creative type %q", dev.Image, cre.Type)
	}

	_, cre, err = LoadSettings([]byte(baseYAML), "", config.TypeBrush)
	if err != nil || cre.Type != config.TypeBrush {
		t.Errorf("type override: type=%q err=%v", cre.Type, err)
	}

	if _, _, err := LoadSettings([]byte(baseYAML), "", "swirl"); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("unknown type: got %v, want ErrInvalidConfig", err)
	}
}

func TestLoadSettingsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hero.yaml")
	if err := os.WriteFile(path, []byte("developer:\n  gap: 9\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	dev, cre, err := LoadSettings([]byte(baseYAML), path, "")
	if err != nil {
		t.Fatalf("LoadSettings() error: %v", err)
	}
	if dev.Gap != 9 {
		t.Errorf("Gap = %d, want override 9", dev.Gap)
	}
	if dev.Image != "assets/images/developer.png" || !cre.IsGalaxy() {
		t.Error("embedded values must survive the override")
	}

	if _, _, err := LoadSettings([]byte(baseYAML), filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Error("missing override file should fail")
	}
}

func TestToggleFullscreenRecordsPreference(t *testing.T) {
	prefs := settings.NewManager(nil)
	full := false
	current := func() bool { return full }
	set := func(on bool) { full = on }

	toggleFullscreen(prefs, current, set)
	if !full || !prefs.Settings().Fullscreen {
		t.Fatalf("after first toggle: window=%v pref=%v, want both true", full, prefs.Settings().Fullscreen)
	}
	toggleFullscreen(prefs, current, set)
	if full || prefs.Settings().Fullscreen {
		t.Errorf("after second toggle: window=%v pref=%v, want both false", full, prefs.Settings().Fullscreen)
	}
}
