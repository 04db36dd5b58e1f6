package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStore points gdata at a temporary home directory.
func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	gm, err := gdata.Open(gdata.Config{AppName: "hero_settings_test"})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}
	return gm
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Split != 0.5 {
		t.Errorf("Split: got %v, want 0.5", s.Split)
	}
	if s.WindowWidth != 960 || s.WindowHeight != 540 {
		t.Errorf("Window: got %dx%d, want 960x540", s.WindowWidth, s.WindowHeight)
	}
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
}

func TestManagerNilGdata(t *testing.T) {
	m := NewManager(nil)
	if m.Persistent() {
		t.Error("nil backend must not be persistent")
	}
	m.SetSplit(0.2)
	if err := m.Save(); err != nil {
		t.Errorf("Save() without backend: %v", err)
	}
	if err := m.Load(); err != nil {
		t.Errorf("Load() without backend: %v", err)
	}
	if m.Settings().Split != 0.5 {
		t.Errorf("Load() without backend should reset to defaults, got %v", m.Settings().Split)
	}
}

func TestManagerSaveAndLoad(t *testing.T) {
	gm := openTestStore(t)

	m := NewManager(gm)
	if m.Settings().Split != 0.5 {
		t.Fatalf("initial Split: got %v", m.Settings().Split)
	}
	m.SetSplit(0.25)
	m.SetWindowSize(1280, 720)
	m.SetFullscreen(true)
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewManager(gm)
	s := reloaded.Settings()
	if s.Split != 0.25 || s.WindowWidth != 1280 || s.WindowHeight != 720 || !s.Fullscreen {
		t.Errorf("reloaded settings = %+v", s)
	}
}

func TestManagerCorruptData(t *testing.T) {
	gm := openTestStore(t)
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("side: [unclosed")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	m := NewManager(gm)
	if m.Settings().Split != 0.5 {
		t.Errorf("corrupt data should fall back to defaults, got %+v", m.Settings())
	}
}

func TestClampSplit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.4, 0.4},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := ClampSplit(tt.in); got != tt.want {
			t.Errorf("ClampSplit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetWindowSizeClamps(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"in range", 800, 600, 800, 600},
		{"too small", 10, 10, MinWindowWidth, MinWindowHeight},
		{"too large", 100000, 100000, MaxWindowWidth, MaxWindowHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(nil)
			m.SetWindowSize(tt.w, tt.h)
			s := m.Settings()
			if s.WindowWidth != tt.wantW || s.WindowHeight != tt.wantH {
				t.Errorf("got %dx%d, want %dx%d", s.WindowWidth, s.WindowHeight, tt.wantW, tt.wantH)
			}
		})
	}
}
