package app

import (
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"meteorfall/internal/impact"
)

// Preferences are the user inputs restored on the next start. They are not a
// record of simulation runs.
type Preferences struct {
	Params    impact.Parameters `yaml:"params"`
	TargetLat float64           `yaml:"targetLat"`
	TargetLon float64           `yaml:"targetLon"`
}

// DefaultPreferences mirrors the simulation defaults.
func DefaultPreferences() Preferences {
	cfg := impact.DefaultConfig()
	return Preferences{
		Params:    cfg.Defaults,
		TargetLat: cfg.Target.Lat,
		TargetLon: cfg.Target.Lon,
	}
}

const (
	prefsObject   = "preferences"
	prefsProperty = "last"
)

// PreferencesManager loads and saves Preferences through gdata. A nil gdata
// manager keeps preferences in memory only.
type PreferencesManager struct {
	store  *gdata.Manager
	prefs  Preferences
	logger *slog.Logger
}

// OpenPreferences opens the gdata store for appName. An empty appName or an
// unavailable store yields an in-memory manager.
func OpenPreferences(appName string, logger *slog.Logger) *PreferencesManager {
	if logger == nil {
		logger = slog.Default()
	}
	var store *gdata.Manager
	if appName != "" {
		m, err := gdata.Open(gdata.Config{AppName: appName})
		if err != nil {
			logger.Warn("preferences unavailable", "err", err)
		} else {
			store = m
		}
	}
	pm := NewPreferencesManager(store, logger)
	if err := pm.Load(); err != nil {
		logger.Warn("preferences reset to defaults", "err", err)
	}
	return pm
}

// NewPreferencesManager wraps an opened store without loading it.
func NewPreferencesManager(store *gdata.Manager, logger *slog.Logger) *PreferencesManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferencesManager{store: store, prefs: DefaultPreferences(), logger: logger}
}

// Load reads saved preferences. Missing data keeps the defaults.
func (pm *PreferencesManager) Load() error {
	pm.prefs = DefaultPreferences()
	if pm.store == nil || !pm.store.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := pm.store.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	loaded := DefaultPreferences()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}
	loaded.Params = loaded.Params.Clamped()
	pm.prefs = loaded
	pm.logger.Debug("preferences loaded", "mass", loaded.Params.Mass, "velocity", loaded.Params.Velocity)
	return nil
}

// Save writes the current preferences.
func (pm *PreferencesManager) Save() error {
	if pm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(pm.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := pm.store.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// Get returns the current preferences.
func (pm *PreferencesManager) Get() Preferences { return pm.prefs }

// Set replaces the current preferences in memory; call Save to persist.
func (pm *PreferencesManager) Set(p Preferences) {
	p.Params = p.Params.Clamped()
	pm.prefs = p
}

// Capture records the pending inputs and target of sim.
func (pm *PreferencesManager) Capture(sim *impact.Simulation) {
	lat, lon := sim.TargetLatLon()
	pm.Set(Preferences{Params: sim.Pending(), TargetLat: lat, TargetLon: lon})
}

// Apply restores the preferences into sim.
func (pm *PreferencesManager) Apply(sim *impact.Simulation) {
	sim.SetPending(pm.prefs.Params)
	sim.SetTargetLatLon(pm.prefs.TargetLat, pm.prefs.TargetLon)
}
