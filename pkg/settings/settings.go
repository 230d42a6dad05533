// Package settings persists the small amount of per-user state that
// survives between runs: the zoom level and the last used player name.
package settings

import (
	"fmt"
	"sync"

	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "settings"
	settingsProperty = "user"
)

type Settings struct {
	Zoom       float64 `yaml:"zoom"`
	PlayerName string  `yaml:"player_name"`
}

func Default() Settings {
	return Settings{
		Zoom:       1,
		PlayerName: "survivor",
	}
}

// Manager loads and saves Settings through gdata.
// A Manager with a nil gdata manager keeps settings in memory only.
type Manager struct {
	mu       sync.Mutex
	data     *gdata.Manager
	settings Settings
}

// NewManager creates a settings manager and loads any saved settings.
// A failed load is logged and falls back to the defaults.
func NewManager(data *gdata.Manager) *Manager {
	m := &Manager{
		data:     data,
		settings: Default(),
	}
	if err := m.Load(); err != nil {
		log.Warn("Failed to load settings, using defaults: %v", err)
	}
	return m
}

func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = Default()
	if m.data == nil || !m.data.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	b, err := m.data.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %v", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %v", err)
	}
	m.settings = loaded
	return nil
}

func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil
	}

	b, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}
	if err := m.data.SaveObjectProp(settingsObject, settingsProperty, b); err != nil {
		return fmt.Errorf("failed to save settings: %v", err)
	}
	log.Debug("Saved settings")
	return nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// SetZoom stores the zoom level in memory; call Save to persist it.
func (m *Manager) SetZoom(zoom float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.Zoom = zoom
}

// SetPlayerName stores the player name in memory; call Save to persist it.
func (m *Manager) SetPlayerName(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.PlayerName = name
}
