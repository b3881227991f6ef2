package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/sakiengine/saki/internal/defs"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// Manager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type Manager struct {
	mu             sync.RWMutex
	config         *Config
	root           string
	path           string
	state          managerState
	loader         *Loader
	loadedSections map[string]bool
}

// NewManager creates a new Manager instance in uninitialized state.
func NewManager() *Manager {
	return &Manager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// ConfigPath returns the configuration file for a workspace root. SAKI_CONFIG
// overrides the default root/saki.yaml.
func ConfigPath(root string) string {
	if p := os.Getenv("SAKI_CONFIG"); p != "" {
		return filepath.Clean(p)
	}
	return filepath.Join(filepath.Clean(root), defs.ConfigYAML)
}

// Load reads configuration for the workspace at root. File values are
// merged over compiled defaults, then SAKI_* environment variables (after
// .env loading) override them. The result is validated before being stored.
func (m *Manager) Load(root string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := ConfigPath(root)
	cfg, err := m.loader.Load(root, path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	m.loadedSections = m.loader.LoadedSections()

	applyEnvOverrides(cfg)

	if err := Validate(cfg, m.loader.UnknownSections()); err != nil {
		var ve *ValidationErrors
		if errors.As(err, &ve) && (len(m.loadedSections) > 0 || len(m.loader.UnknownSections()) > 0) {
			ve.Source = filepath.Base(path)
		}
		return nil, err
	}

	m.config = cfg
	m.root = root
	m.path = path
	m.state = stateInitialized
	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Path returns the configuration file the manager reads and writes.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// IsLoadedFromFile reports whether the named section came from the file.
func (m *Manager) IsLoadedFromFile(section string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadedSections[section]
}

// FromFile reports whether any section came from a configuration file.
func (m *Manager) FromFile() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.loadedSections) > 0
}

// Marshal encodes cfg as saki.yaml content.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Save persists the current configuration to disk atomically.
// Returns ErrNotInitialized if Load() has not been called.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}
	data, err := Marshal(m.config)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(m.path), err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicWrite(m.path, data)
}

// WriteDefaults writes the compiled defaults to the configuration file of
// root. It refuses to overwrite an existing file unless force is set.
func WriteDefaults(root string, force bool) (string, error) {
	path := ConfigPath(root)
	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	m := &Manager{config: NewDefaultConfig(), root: root, path: path, state: stateInitialized}
	if err := m.Save(); err != nil {
		return path, err
	}
	return path, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than file-based values.
func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Paths.EngineDir, "SAKI_ENGINE_DIR")
	overrideString(&cfg.Paths.GameDir, "SAKI_GAME_DIR")
	overrideString(&cfg.Paths.AssetDir, "SAKI_ASSET_DIR")
	overrideString(&cfg.Paths.Manifest, "SAKI_MANIFEST")
	overrideString(&cfg.Toolchain.Flutter, "SAKI_FLUTTER")
	overrideString(&cfg.Toolchain.Dart, "SAKI_DART")
	overrideString(&cfg.Log.Level, "SAKI_LOG_LEVEL")
	overrideString(&cfg.Log.Format, "SAKI_LOG_FORMAT")
	overrideBool(&cfg.Manifest.Backup, "SAKI_MANIFEST_BACKUP")
	overrideBool(&cfg.Toolchain.LauncherIcons, "SAKI_LAUNCHER_ICONS")
	overrideInt(&cfg.Toolchain.PubGetRetries, "SAKI_PUB_GET_RETRIES")
	if exts := os.Getenv("SAKI_FONT_EXTENSIONS"); exts != "" {
		var list []string
		for ext := range strings.SplitSeq(exts, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				list = append(list, ext)
			}
		}
		cfg.Fonts.Extensions = list
	}
}

func overrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func overrideString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// overrideBool ignores values strconv.ParseBool rejects.
func overrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".saki-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
