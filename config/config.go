// Package config manages the editor settings: grid and snapping behavior,
// undo depth and the recent file list, persisted as a YAML file with
// optional hot reloading.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds the user-adjustable editor configuration.
type Settings struct {
	GridSize    float64  `yaml:"grid_size"`
	SnapToGrid  bool     `yaml:"snap_to_grid"`
	UndoLimit   int      `yaml:"undo_limit"`
	RecentFiles []string `yaml:"recent_files,omitempty"`
}

// maxRecentFiles bounds the recent file list.
const maxRecentFiles = 10

// Default returns the settings used when no config file exists.
func Default() Settings {
	return Settings{
		GridSize:   20,
		SnapToGrid: false,
		UndoLimit:  50,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "graphol.yaml"
	}
	return filepath.Join(dir, "graphol", "config.yaml")
}

// Load reads settings from the given path, filling unset fields with
// defaults. A missing file yields the defaults without error.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if s.GridSize <= 0 {
		s.GridSize = Default().GridSize
	}
	if s.UndoLimit <= 0 {
		s.UndoLimit = Default().UndoLimit
	}
	return s, nil
}

// Save writes the settings to the given path, creating parent directories
// as needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Touch moves a file to the front of the recent list, dropping duplicates
// and trimming the list to its bound.
func (s *Settings) Touch(path string) {
	recent := []string{path}
	for _, f := range s.RecentFiles {
		if f != path {
			recent = append(recent, f)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	s.RecentFiles = recent
}
