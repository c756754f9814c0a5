package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/pipeworks/game/catalog"
	"github.com/wricardo/mcp-training/pipeworks/game/engine"
)

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// DefaultName is the config preferred as default
const DefaultName = "classic"

// extensions are tried in this order when resolving a config name
var extensions = []string{".json", ".yaml", ".yml"}

// ConfigInfo describes an available map configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Manager handles map configuration loading and caching
type Manager struct {
	configDir     string
	defaultConfig *engine.MapConfig
	defaultID     string
	configs       map[string]*engine.MapConfig
	catalogs      map[string]*catalog.Catalog
	mu            sync.RWMutex
}

// NewManager creates a new configuration manager
func NewManager(configDir string) (*Manager, error) {
	// Ensure config directory exists
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("config directory does not exist: %s", configDir)
	}

	m := &Manager{
		configDir: configDir,
		configs:   make(map[string]*engine.MapConfig),
		catalogs:  make(map[string]*catalog.Catalog),
	}

	if err := m.loadDefaultConfig(); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	return m, nil
}

// Dir returns the config directory
func (m *Manager) Dir() string {
	return m.configDir
}

// LoadConfig loads a configuration by name. The name may carry a .json,
// .yaml or .yml extension; without one each is tried in that order.
func (m *Manager) LoadConfig(name string) (*engine.MapConfig, error) {
	id := configID(name)

	m.mu.RLock()
	// Check cache first
	if config, exists := m.configs[id]; exists {
		m.mu.RUnlock()
		return config, nil
	}
	m.mu.RUnlock()

	// Load from file
	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if config, exists := m.configs[id]; exists {
		return config, nil
	}

	path, err := m.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	m.configs[id] = config
	return config, nil
}

// Parse decodes and validates a map config. ext selects the format.
func Parse(data []byte, ext string) (*engine.MapConfig, error) {
	var config engine.MapConfig
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&config); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if err := engine.ValidateMapConfig(&config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	engine.ApplyDefaults(&config)
	return &config, nil
}

// resolve finds the file behind a config name
func (m *Manager) resolve(name string) (string, error) {
	if hasConfigExt(name) {
		path := filepath.Join(m.configDir, name)
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", ErrConfigNotFound
			}
			return "", err
		}
		return path, nil
	}
	for _, ext := range extensions {
		path := filepath.Join(m.configDir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", ErrConfigNotFound
}

// ListConfigs returns information about all valid configurations, sorted by
// config id. Invalid files are skipped.
func (m *Manager) ListConfigs() ([]*ConfigInfo, error) {
	entries, err := os.ReadDir(m.configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read config directory: %w", err)
	}

	var configs []*ConfigInfo
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() || !hasConfigExt(entry.Name()) {
			continue
		}
		id := configID(entry.Name())
		if seen[id] {
			continue
		}

		// Try to load the config to get details
		config, err := m.LoadConfig(entry.Name())
		if err != nil {
			// Skip invalid configs and non-map files such as catalogs
			continue
		}
		seen[id] = true

		configs = append(configs, &ConfigInfo{
			Filename:    entry.Name(),
			ConfigID:    id,
			Name:        config.Name,
			Description: config.Description,
			Width:       config.Width,
			Height:      config.Height,
		})
	}

	sort.Slice(configs, func(i, j int) bool { return configs[i].ConfigID < configs[j].ConfigID })
	return configs, nil
}

// GetDefault returns the default configuration
func (m *Manager) GetDefault() *engine.MapConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultConfig
}

// DefaultID returns the config id of the default, empty for the built-in one
func (m *Manager) DefaultID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultID
}

// SetDefault sets the default configuration by name
func (m *Manager) SetDefault(name string) error {
	config, err := m.LoadConfig(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	m.defaultID = configID(name)
	return nil
}

// RefreshCache drops every cached config and catalog and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.configs = make(map[string]*engine.MapConfig)
	m.catalogs = make(map[string]*catalog.Catalog)
	m.mu.Unlock()

	return m.loadDefaultConfig()
}

// Count returns the number of cached configs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}

// LoadCatalog returns the tile catalog a config names, relative to the config
// directory. An empty catalog field selects the built-in tileset.
func (m *Manager) LoadCatalog(config *engine.MapConfig) (*catalog.Catalog, error) {
	if config.Catalog == "" {
		return catalog.Default(), nil
	}

	path := config.Catalog
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.configDir, path)
	}

	m.mu.RLock()
	if c, ok := m.catalogs[path]; ok {
		m.mu.RUnlock()
		return c, nil
	}
	m.mu.RUnlock()

	c, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.catalogs[path] = c
	m.mu.Unlock()
	return c, nil
}

// loadDefaultConfig loads the default configuration
func (m *Manager) loadDefaultConfig() error {
	// Try to load classic as default
	id := DefaultName
	config, err := m.LoadConfig(id)
	if err != nil {
		// Try to load the first available config
		configs, listErr := m.ListConfigs()
		if listErr != nil || len(configs) == 0 {
			m.setDefault(engine.DefaultMapConfig(), "")
			return nil
		}

		id = configs[0].ConfigID
		config, err = m.LoadConfig(configs[0].Filename)
		if err != nil {
			m.setDefault(engine.DefaultMapConfig(), "")
			return nil
		}
	}

	m.setDefault(config, id)
	return nil
}

func (m *Manager) setDefault(config *engine.MapConfig, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultConfig = config
	m.defaultID = id
}

// SaveConfig writes a configuration to disk as JSON, or YAML when name ends
// in .yaml or .yml
func (m *Manager) SaveConfig(name string, config *engine.MapConfig) error {
	// Validate config before saving
	if err := engine.ValidateMapConfig(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	filename := name
	if !hasConfigExt(filename) {
		filename = name + ".json"
	}

	var data []byte
	var err error
	switch filepath.Ext(filename) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.configDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	m.mu.Lock()
	m.configs[configID(filename)] = config
	m.mu.Unlock()

	return nil
}

func hasConfigExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ID returns the config id a name refers to: the name without a known
// extension
func ID(name string) string {
	return configID(name)
}

// configID strips a known extension, so "classic" and "classic.json" share a
// cache entry
func configID(name string) string {
	if hasConfigExt(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
