// Package ux remembers where the user left the browser so the next session
// resumes on the same pattern and language.
package ux

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"patternflow/internal/catalog"
)

// PreferencesVersion is the current schema version for preferences.json.
const PreferencesVersion = "1"

// Preferences is the persisted per-user state.
type Preferences struct {
	Version      string `json:"version"`
	LastPattern  string `json:"last_pattern,omitempty"`
	LastLanguage string `json:"last_language,omitempty"`
	Sessions     int    `json:"sessions"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// PreferencesManager handles loading/saving preferences.
type PreferencesManager struct {
	mu          sync.RWMutex
	path        string
	preferences *Preferences
}

// NewPreferencesManager creates a manager storing preferences.json in dir.
func NewPreferencesManager(dir string) *PreferencesManager {
	return &PreferencesManager{
		path: filepath.Join(dir, "preferences.json"),
	}
}

// Path is the preferences file location.
func (pm *PreferencesManager) Path() string {
	return pm.path
}

// Load reads preferences from disk, using defaults if the file does not exist.
func (pm *PreferencesManager) Load() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	data, err := os.ReadFile(pm.path)
	if err != nil {
		if os.IsNotExist(err) {
			pm.preferences = DefaultPreferences()
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return fmt.Errorf("failed to parse preferences: %w", err)
	}
	if prefs.Version == "" {
		prefs.Version = PreferencesVersion
	}
	pm.preferences = &prefs
	return nil
}

// Save writes preferences to disk.
func (pm *PreferencesManager) Save() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultPreferences()
	}
	if err := os.MkdirAll(filepath.Dir(pm.path), 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(pm.preferences, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}
	if err := os.WriteFile(pm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}

// Get returns a copy of the current preferences.
func (pm *PreferencesManager) Get() Preferences {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if pm.preferences == nil {
		return *DefaultPreferences()
	}
	return *pm.preferences
}

// RecordSession stores the selection a session ended on.
func (pm *PreferencesManager) RecordSession(id string, lang catalog.Language) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.preferences == nil {
		pm.preferences = DefaultPreferences()
	}
	pm.preferences.LastPattern = id
	pm.preferences.LastLanguage = string(lang)
	pm.preferences.Sessions++
	pm.preferences.UpdatedAt = time.Now().Format(time.RFC3339)
}

// Resume returns the remembered selection, dropping anything the catalog
// no longer has.
func (pm *PreferencesManager) Resume(cat *catalog.Catalog) (string, catalog.Language) {
	prefs := pm.Get()

	id := prefs.LastPattern
	if !cat.Has(id) {
		id = ""
	}
	var lang catalog.Language
	if l, err := catalog.ParseLanguage(prefs.LastLanguage); err == nil {
		for _, supported := range cat.Languages() {
			if supported == l {
				lang = l
			}
		}
	}
	return id, lang
}

// DefaultPreferences returns the state of a first run.
func DefaultPreferences() *Preferences {
	return &Preferences{Version: PreferencesVersion}
}
