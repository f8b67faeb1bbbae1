package config

import (
	"errors"
	"time"
)

// Section accessor methods return snapshot structs. Mutating the returned
// struct does not modify the underlying configuration. Use Config.Set()
// to update configuration values.

// GestureConfig provides type-safe access to gesture timing settings.
type GestureConfig struct {
	// Threshold is the per-axis displacement below which a gesture is a tap.
	Threshold float64

	// DoubleTapWindow is the maximum gap between the taps of a double tap.
	DoubleTapWindow time.Duration

	// SingleTapDelay is how long a tap waits before acting as a single tap.
	SingleTapDelay time.Duration

	// DoubleTapSuppress blocks a single tap racing a double tap.
	DoubleTapSuppress time.Duration
}

// LoggingConfig provides type-safe access to logging settings.
type LoggingConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string

	// File is the log file path. Empty disables logging.
	File string
}

// ContentConfig provides type-safe access to content table settings.
type ContentConfig struct {
	// Path is the YAML content file. Empty uses the built-in tables.
	Path string

	// Watch reloads the file when it changes.
	Watch bool
}

// OnboardingConfig provides type-safe access to onboarding settings.
type OnboardingConfig struct {
	// Enabled shows the demonstration overlay at startup.
	Enabled bool
}

// ThemeConfig provides the hex colors used by the renderer.
type ThemeConfig struct {
	// Highlight colors the cell under the pointer.
	Highlight string

	// Accent colors special cells (back, delete, mode switches).
	Accent string

	// Text colors cell and input text.
	Text string
}

// PointerConfig scales terminal cells into gesture units so the tap
// threshold means the same distance horizontally and vertically.
type PointerConfig struct {
	UnitsPerColumn float64
	UnitsPerRow    float64
}

// Gesture returns the gesture settings.
func (c *Config) Gesture() GestureConfig {
	return GestureConfig{
		Threshold:         c.getPositiveFloatOr("gesture.threshold", 30),
		DoubleTapWindow:   c.getMillisOr("gesture.doubleTapWindowMs", 300),
		SingleTapDelay:    c.getMillisOr("gesture.singleTapDelayMs", 320),
		DoubleTapSuppress: c.getMillisOr("gesture.doubleTapSuppressMs", 50),
	}
}

// Logging returns the logging settings.
func (c *Config) Logging() LoggingConfig {
	return LoggingConfig{
		Level: c.getStringOr("logging.level", "info"),
		File:  c.getStringOr("logging.file", ""),
	}
}

// Content returns the content table settings.
func (c *Config) Content() ContentConfig {
	return ContentConfig{
		Path:  c.getStringOr("content.path", ""),
		Watch: c.getBoolOr("content.watch", true),
	}
}

// Onboarding returns the onboarding settings.
func (c *Config) Onboarding() OnboardingConfig {
	return OnboardingConfig{
		Enabled: c.getBoolOr("onboarding.enabled", true),
	}
}

// Theme returns the color settings.
func (c *Config) Theme() ThemeConfig {
	return ThemeConfig{
		Highlight: c.getStringOr("theme.highlight", "#3b82f6"),
		Accent:    c.getStringOr("theme.accent", "#f59e0b"),
		Text:      c.getStringOr("theme.text", "#e5e7eb"),
	}
}

// Pointer returns the pointer scaling settings.
func (c *Config) Pointer() PointerConfig {
	return PointerConfig{
		UnitsPerColumn: c.getPositiveFloatOr("pointer.unitsPerColumn", 8),
		UnitsPerRow:    c.getPositiveFloatOr("pointer.unitsPerRow", 16),
	}
}

// Helper methods for getting values with defaults.
// These methods only return the default for ErrSettingNotFound.
// Type and range errors return the default too, but are recorded since
// they indicate a configuration problem that should be fixed.

func (c *Config) getStringOr(path string, defaultValue string) string {
	v, err := c.GetString(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getIntOr(path string, defaultValue int) int {
	v, err := c.GetInt(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getBoolOr(path string, defaultValue bool) bool {
	v, err := c.GetBool(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getFloatOr(path string, defaultValue float64) float64 {
	v, err := c.GetFloat(path)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			c.recordConfigError(path, err)
		}
		return defaultValue
	}
	return v
}

func (c *Config) getPositiveFloatOr(path string, defaultValue float64) float64 {
	v := c.getFloatOr(path, defaultValue)
	if v <= 0 {
		c.recordConfigError(path, &RangeError{Path: path, Value: v, Message: "must be positive"})
		return defaultValue
	}
	return v
}

func (c *Config) getMillisOr(path string, defaultMillis int) time.Duration {
	v := c.getIntOr(path, defaultMillis)
	if v <= 0 {
		c.recordConfigError(path, &RangeError{Path: path, Value: v, Message: "must be a positive number of milliseconds"})
		v = defaultMillis
	}
	return time.Duration(v) * time.Millisecond
}

// recordConfigError stores configuration errors for later retrieval.
// Only the first error for each path is recorded to preserve the original cause.
func (c *Config) recordConfigError(path string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.configErrors == nil {
		c.configErrors = make(map[string]error)
	}
	if _, exists := c.configErrors[path]; !exists {
		c.configErrors[path] = err
	}
}

// ConfigErrors returns any configuration errors encountered during access.
func (c *Config) ConfigErrors() map[string]error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.configErrors == nil {
		return nil
	}
	result := make(map[string]error, len(c.configErrors))
	for k, v := range c.configErrors {
		result[k] = v
	}
	return result
}
