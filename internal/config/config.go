package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agamurian/fiander/internal/logger"
)

// Config holds all user-editable settings.
type Config struct {
	Editor         string `json:"editor"`           // overrides $EDITOR when set
	Theme          string `json:"theme"`            // chroma style for preview highlighting
	ShowHidden     bool   `json:"show_hidden"`      // list dotfiles in the browser pane
	MaxLineResults int    `json:"max_line_results"` // cap for content search hits
}

func defaultConfig() *Config {
	return &Config{
		Editor:         "",
		Theme:          "gruvbox",
		ShowHidden:     true,
		MaxLineResults: 2000,
	}
}

// Load reads config from ~/.config/fiander/config.json, creating it
// with defaults on first run. A broken or unreadable file degrades to
// defaults rather than failing startup.
func Load() *Config {
	path, err := Path()
	if err != nil {
		logger.Error("Failed to resolve config path: %v", err)
		return defaultConfig()
	}
	return loadFrom(path)
}

func loadFrom(path string) *Config {
	def := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if err := saveTo(path, def); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return def
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		return def
	}

	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if cfg.MaxLineResults <= 0 {
		cfg.MaxLineResults = def.MaxLineResults
	} else if cfg.MaxLineResults > 50000 {
		logger.Warn("max_line_results too high (%d), using maximum of 50000", cfg.MaxLineResults)
		cfg.MaxLineResults = 50000
	}

	return cfg
}

// Save writes cfg to ~/.config/fiander/config.json.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("cannot resolve config path: %w", err)
	}
	return saveTo(path, cfg)
}

func saveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Path returns the config file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "fiander", "config.json"), nil
}
