// Package config handles loading and saving user settings for trilingua.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the name of the settings file inside the config dir.
const SettingsFile = "settings.yaml"

// HistoryFile is the name of the history database inside the config dir.
const HistoryFile = "history.db"

// Settings holds user-tunable backend settings. The API credential is
// deliberately not part of this file; it comes from the environment only.
type Settings struct {
	TextModel      string            `yaml:"text_model,omitempty"`
	ImageModel     string            `yaml:"image_model,omitempty"`
	SpeechModel    string            `yaml:"speech_model,omitempty"`
	TimeoutSeconds int               `yaml:"timeout_seconds,omitempty"`
	Voices         map[string]string `yaml:"voices,omitempty"` // jp/en/zh → voice name
	FontPath       string            `yaml:"font_path,omitempty"`
}

// Timeout returns the per-call backend timeout.
func (s *Settings) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads settings from a YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return &s, nil
}

// LoadDir loads settings.yaml from a config directory, falling back to
// defaults when the file does not exist.
func LoadDir(dir string) (*Settings, error) {
	s, err := Load(filepath.Join(dir, SettingsFile))
	if errors.Is(err, os.ErrNotExist) {
		return &Settings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes settings to a YAML file.
func Save(path string, s *Settings) error {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "trilingua"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// HistoryPath returns the history database path inside a config dir.
func HistoryPath(dir string) string {
	return filepath.Join(dir, HistoryFile)
}
