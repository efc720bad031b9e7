// Package state persists user preferences between runs.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const prefsFileName = "preferences.json"

// DarkModeKey is the persisted dark-mode flag, "0" or "1".
const DarkModeKey = "ext_dark_mode"

// Prefs is a string key-value preference store backed by a JSON file under
// the user state directory. Read and write failures are swallowed: the
// in-memory state wins and the UI never surfaces a storage error.
type Prefs struct {
	path string
	data map[string]string
	mu   sync.RWMutex
}

// NewPrefs creates or loads the preference store from XDG_STATE_HOME/lectern.
func NewPrefs() *Prefs {
	dir := stateDir()
	os.MkdirAll(dir, 0755)

	p := &Prefs{
		path: filepath.Join(dir, prefsFileName),
		data: make(map[string]string),
	}
	p.load()
	return p
}

// NewPrefsAt creates or loads the store at an explicit path.
func NewPrefsAt(path string) *Prefs {
	p := &Prefs{path: path, data: make(map[string]string)}
	p.load()
	return p
}

// stateDir returns XDG_STATE_HOME/lectern or ~/.local/state/lectern
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lectern")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lectern")
}

// Get returns the stored value for key, or fallback.
func (p *Prefs) Get(key, fallback string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.data[key]; ok {
		return v
	}
	return fallback
}

// Set stores a value and writes the file. Write errors are ignored.
func (p *Prefs) Set(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = value
	p.save()
}

// DarkMode reads the persisted dark-mode flag.
func (p *Prefs) DarkMode() bool {
	return p.Get(DarkModeKey, "0") == "1"
}

// SetDarkMode persists the dark-mode flag.
func (p *Prefs) SetDarkMode(on bool) {
	v := "0"
	if on {
		v = "1"
	}
	p.Set(DarkModeKey, v)
}

func (p *Prefs) load() {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return
	}
	json.Unmarshal(data, &p.data)
	if p.data == nil {
		p.data = make(map[string]string)
	}
}

func (p *Prefs) save() {
	data, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(p.path, data, 0644)
}
