// Package config loads reader configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds every tunable of the reader.
type Config struct {
	// Speech
	Engine       string `koanf:"engine" yaml:"engine"` // local, remote, off
	RemoteURL    string `koanf:"remote_url" yaml:"remote_url"`
	Language     string `koanf:"language" yaml:"language"`
	Voice        string `koanf:"voice" yaml:"voice"`
	Rate         int    `koanf:"rate" yaml:"rate"`   // words per minute
	Pitch        int    `koanf:"pitch" yaml:"pitch"` // 0-99
	DelaySeconds int    `koanf:"delay_seconds" yaml:"delay_seconds"`
	Continuous   bool   `koanf:"continuous" yaml:"continuous"`
	Random       bool   `koanf:"random" yaml:"random"`

	// Table of contents
	MaxHeadings int `koanf:"max_headings" yaml:"max_headings"`
	PanelWidth  int `koanf:"panel_width" yaml:"panel_width"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Engine:       "local",
		Language:     "en",
		Rate:         180,
		Pitch:        50,
		DelaySeconds: 3,
		Continuous:   true,
		MaxHeadings:  200,
		PanelWidth:   32,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LECTERN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// LECTERN_DELAY_SECONDS -> delay_seconds, etc.
	if err := k.Load(env.Provider("LECTERN_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LECTERN_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validEngines = map[string]bool{
	"local":  true,
	"remote": true,
	"off":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if !validEngines[c.Engine] {
		return fmt.Errorf("invalid engine %q: must be one of local, remote, off", c.Engine)
	}
	if c.Engine == "remote" && c.RemoteURL == "" {
		return fmt.Errorf("remote_url is required when engine is remote")
	}
	if c.Rate <= 0 {
		return fmt.Errorf("rate must be positive")
	}
	if c.Pitch < 0 || c.Pitch > 99 {
		return fmt.Errorf("pitch must be in 0-99")
	}
	if c.DelaySeconds <= 0 {
		return fmt.Errorf("delay_seconds must be positive")
	}
	if c.MaxHeadings < 0 {
		return fmt.Errorf("max_headings must be non-negative")
	}
	if c.PanelWidth < 10 {
		return fmt.Errorf("panel_width must be at least 10")
	}
	return nil
}
