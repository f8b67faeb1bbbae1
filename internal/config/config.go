package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/flickpad/internal/config/loader"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "FLICKPAD_"

// Config provides unified access to the flickpad configuration.
type Config struct {
	mu sync.RWMutex

	// merged is defaults < file < environment < Set overrides
	merged    map[string]any
	overrides map[string]any

	// Configuration sources
	configFile string
	fileLoaded bool
	env        loader.Loader

	// configErrors stores errors encountered during configuration access.
	configErrors map[string]error
}

// Option configures a Config instance.
type Option func(*Config)

// WithConfigFile sets the settings file. Defaults to
// $XDG_CONFIG_HOME/flickpad/config.toml.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithEnvLoader replaces the environment loader.
func WithEnvLoader(l loader.Loader) Option {
	return func(c *Config) {
		c.env = l
	}
}

// New creates a new Config holding only the built-in defaults.
func New(opts ...Option) *Config {
	c := &Config{
		merged:    defaultConfig(),
		overrides: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.configFile == "" {
		c.configFile = filepath.Join(DefaultConfigDir(), "config.toml")
	}
	if c.env == nil {
		c.env = loader.NewEnvLoader(EnvPrefix)
	}

	return c
}

// Load reads the settings file and the environment. A missing settings
// file is not an error.
func (c *Config) Load(_ context.Context) error {
	fileData, err := loader.NewTOMLLoader(c.configFile).Load()
	if err != nil {
		return err
	}

	envData, err := c.env.Load()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := defaultConfig()
	merged = loader.DeepMerge(merged, fileData)
	merged = loader.DeepMerge(merged, envData)
	merged = loader.DeepMerge(merged, c.overrides)
	c.merged = merged
	c.fileLoaded = fileData != nil
	c.configErrors = nil

	return nil
}

// ConfigFile returns the settings file path.
func (c *Config) ConfigFile() string {
	return c.configFile
}

// FileLoaded returns true if the settings file existed at the last Load.
func (c *Config) FileLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fileLoaded
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float64 value at the given path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// Set overrides the value at path. Overrides survive a later Load and
// take precedence over every other source; the command line uses them.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// merged holds every section, so it rejects paths through a leaf first
	if err := setPath(c.merged, path, value); err != nil {
		return err
	}
	return setPath(c.overrides, path, value)
}

// Merged returns a copy of the fully merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// DefaultConfigDir returns the user configuration directory.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "flickpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "flickpad")
}

// DefaultStateDir returns the directory for logs.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "flickpad")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "flickpad")
}

// defaultConfig returns the default configuration values.
func defaultConfig() map[string]any {
	return map[string]any{
		"gesture": map[string]any{
			"threshold":           30.0,
			"doubleTapWindowMs":   300,
			"singleTapDelayMs":    320,
			"doubleTapSuppressMs": 50,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  filepath.Join(DefaultStateDir(), "flickpad.log"),
		},
		"content": map[string]any{
			"path":  "",
			"watch": true,
		},
		"onboarding": map[string]any{
			"enabled": true,
		},
		"theme": map[string]any{
			"highlight": "#3b82f6",
			"accent":    "#f59e0b",
			"text":      "#e5e7eb",
		},
		"pointer": map[string]any{
			"unitsPerColumn": 8.0,
			"unitsPerRow":    16.0,
		},
	}
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return ErrInvalidPath
		}
		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// splitPath splits a dot-separated path into parts, dropping empty ones.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return "unknown"
	}
}
