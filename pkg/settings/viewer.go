// Package settings persists viewer preferences between runs.
//
// Preferences are stored as YAML through gdata, which picks the platform's
// per-user data directory. A nil gdata manager degrades to in-memory
// preferences.
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Window size bounds (窗口尺寸限制)
const (
	MinWindowWidth  = 320
	MinWindowHeight = 240
	MaxWindowWidth  = 7680
	MaxWindowHeight = 4320
)

// ViewerSettings holds the viewer preferences.
type ViewerSettings struct {
	// Split is where the creative half begins, as a fraction of the window
	// width: 0 shows only the creative side, 1 only the developer side.
	Split float64 `yaml:"split"`

	// 窗口设置
	WindowWidth  int  `yaml:"windowWidth"`
	WindowHeight int  `yaml:"windowHeight"`
	Fullscreen   bool `yaml:"fullscreen"`
}

// DefaultSettings returns the preferences used on first start.
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Split:        0.5,
		WindowWidth:  960,
		WindowHeight: 540,
		Fullscreen:   false,
	}
}

// Manager loads and saves viewer preferences.
type Manager struct {
	gdataManager *gdata.Manager // nil: in-memory only
	settings     *ViewerSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewManager creates a manager and loads any saved preferences.
//
// Parameters:
//   - gdataManager: storage backend, may be nil (preferences are not persisted)
//
// A failed load is logged and replaced by the defaults.
func NewManager(gdataManager *gdata.Manager) *Manager {
	m := &Manager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Open opens the gdata store for appName and wraps it in a Manager.
// When the store cannot be opened the manager runs without persistence.
func Open(appName string) *Manager {
	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewManager(nil)
	}
	return NewManager(gm)
}

// Load reads saved preferences. Missing data keeps the defaults.
func (m *Manager) Load() error {
	if m.gdataManager == nil {
		m.settings = DefaultSettings()
		return nil
	}
	if !m.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = DefaultSettings()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.WindowWidth, loaded.WindowHeight = clampWindow(loaded.WindowWidth, loaded.WindowHeight)
	loaded.Split = ClampSplit(loaded.Split)

	m.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save writes the preferences. Without a backend it does nothing.
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Persistent reports whether preferences survive a restart.
func (m *Manager) Persistent() bool {
	return m.gdataManager != nil
}

// Settings returns the current preferences.
func (m *Manager) Settings() *ViewerSettings {
	return m.settings
}

// SetSplit records the split position, clamped to [0, 1]. Only the
// in-memory value changes; call Save to persist it.
func (m *Manager) SetSplit(split float64) {
	m.settings.Split = ClampSplit(split)
}

// SetWindowSize records the window size, clamped to the supported range.
func (m *Manager) SetWindowSize(width, height int) {
	m.settings.WindowWidth, m.settings.WindowHeight = clampWindow(width, height)
}

// SetFullscreen records the fullscreen preference.
func (m *Manager) SetFullscreen(enabled bool) {
	m.settings.Fullscreen = enabled
}

// ClampSplit limits a split fraction to [0, 1].
func ClampSplit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampWindow(w, h int) (int, int) {
	return clampInt(w, MinWindowWidth, MaxWindowWidth), clampInt(h, MinWindowHeight, MaxWindowHeight)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
