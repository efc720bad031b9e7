package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine != "local" {
		t.Errorf("Engine = %q, want local", cfg.Engine)
	}
	if cfg.DelaySeconds != 3 {
		t.Errorf("DelaySeconds = %d, want 3", cfg.DelaySeconds)
	}
	if !cfg.Continuous {
		t.Error("Continuous should default to on")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `rate: 240
delay_seconds: 5
random: true
panel_width: 40
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rate != 240 || cfg.DelaySeconds != 5 || !cfg.Random || cfg.PanelWidth != 40 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Engine != "local" {
		t.Errorf("unset fields should keep defaults, Engine = %q", cfg.Engine)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("rate: 240\n"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	t.Setenv("LECTERN_RATE", "300")
	t.Setenv("LECTERN_VOICE", "daniel")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Rate != 300 {
		t.Errorf("Rate = %d, want env override 300", cfg.Rate)
	}
	if cfg.Voice != "daniel" {
		t.Errorf("Voice = %q, want daniel", cfg.Voice)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad engine", func(c *Config) { c.Engine = "cloud" }, false},
		{"remote without url", func(c *Config) { c.Engine = "remote" }, false},
		{"remote with url", func(c *Config) { c.Engine = "remote"; c.RemoteURL = "http://localhost:9090/speak" }, true},
		{"zero rate", func(c *Config) { c.Rate = 0 }, false},
		{"pitch too high", func(c *Config) { c.Pitch = 120 }, false},
		{"zero delay", func(c *Config) { c.DelaySeconds = 0 }, false},
		{"negative headings", func(c *Config) { c.MaxHeadings = -1 }, false},
		{"narrow panel", func(c *Config) { c.PanelWidth = 4 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want ok", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := DefaultConfig()
	cfg.Rate = 210
	cfg.Voice = "serena"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Rate != 210 || got.Voice != "serena" {
		t.Errorf("round trip lost values: %+v", got)
	}
}
