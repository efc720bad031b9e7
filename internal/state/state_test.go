package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPrefsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	p := NewPrefsAt(path)
	if p.DarkMode() {
		t.Error("dark mode should default to off")
	}

	p.SetDarkMode(true)

	// A fresh store reads the persisted value back.
	q := NewPrefsAt(path)
	if !q.DarkMode() {
		t.Error("dark mode flag did not persist")
	}
	if v := q.Get(DarkModeKey, ""); v != "1" {
		t.Errorf("stored value = %q, want \"1\"", v)
	}
}

func TestPrefsDoubleToggleRestores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	p := NewPrefsAt(path)

	p.SetDarkMode(true)
	p.SetDarkMode(false)

	q := NewPrefsAt(path)
	if q.DarkMode() {
		t.Error("two toggles should restore the original flag")
	}
}

func TestPrefsGetFallback(t *testing.T) {
	p := NewPrefsAt(filepath.Join(t.TempDir(), "preferences.json"))
	if v := p.Get("missing", "fallback"); v != "fallback" {
		t.Errorf("Get(missing) = %q, want fallback", v)
	}
}

func TestPrefsCorruptFileIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	// A broken file is silently ignored; defaults apply and writes work.
	p := NewPrefsAt(path)
	if p.DarkMode() {
		t.Error("corrupt store should fall back to defaults")
	}
	p.SetDarkMode(true)
	if !NewPrefsAt(path).DarkMode() {
		t.Error("store should recover after a write")
	}
}

func TestPrefsUnwritablePathIgnored(t *testing.T) {
	p := NewPrefsAt(filepath.Join(t.TempDir(), "no", "such", "dir", "prefs.json"))
	p.SetDarkMode(true) // write fails silently
	if !p.DarkMode() {
		t.Error("in-memory state should win when the write fails")
	}
}
