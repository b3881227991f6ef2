package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sakiengine/saki/internal/defs"
)

// Loader reads configuration from saki.yaml and the workspace .env file.
// It is thread-safe via sync.RWMutex.
type Loader struct {
	mu             sync.RWMutex
	loadedSections map[string]bool
	unknown        []string
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads root/.env into the process environment without overriding
// variables that are already set, then reads path over compiled defaults.
// A missing saki.yaml yields the defaults. Sections absent from the file keep
// their defaults field by field.
func (l *Loader) Load(root, path string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.loadedSections = make(map[string]bool)
	l.unknown = nil
	cfg := NewDefaultConfig()

	if err := loadDotEnv(filepath.Join(filepath.Clean(root), defs.DotEnv)); err != nil {
		return nil, err
	}

	var raw map[string]yaml.Node
	loaded, err := loadYAMLFile(path, &raw)
	if err != nil {
		return nil, err
	}
	if !loaded {
		slog.Debug("config file not found, using defaults", "path", path)
		return cfg, nil
	}

	targets := map[string]any{
		"paths":     &cfg.Paths,
		"fonts":     &cfg.Fonts,
		"manifest":  &cfg.Manifest,
		"toolchain": &cfg.Toolchain,
		"log":       &cfg.Log,
	}
	for name, node := range raw {
		target, ok := targets[name]
		if !ok {
			l.unknown = append(l.unknown, name)
			continue
		}
		if err := node.Decode(target); err != nil {
			return nil, fmt.Errorf("parse %s section %q: %w: %v", filepath.Base(path), name, ErrInvalidYAML, err)
		}
		l.loadedSections[name] = true
	}
	slices.Sort(l.unknown)
	return cfg, nil
}

// LoadedSections returns a copy of the map indicating which sections
// were present in the configuration file.
func (l *Loader) LoadedSections() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]bool, len(l.loadedSections))
	maps.Copy(result, l.loadedSections)
	return result
}

// UnknownSections returns the top-level keys that are not sections.
func (l *Loader) UnknownSections() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.unknown...)
}

// loadDotEnv loads a .env file if present. Existing environment variables win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	slog.Debug("environment file loaded", "path", path)
	return nil
}

// loadYAMLFile reads a YAML file and unmarshals it into target. Returns
// (true, nil) if the file was found and parsed, (false, nil) if the file does
// not exist, or (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w: %v", filepath.Base(path), ErrInvalidYAML, err)
	}

	return true, nil
}
