// Package config provides the configuration system for flickpad.
//
// Settings are layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← FLICKPAD_*, highest priority
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/flickpad/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// Command line flags are applied by the caller through Set after Load.
//
// # Basic Usage
//
//	cfg := config.New(config.WithConfigFile(path))
//	if err := cfg.Load(ctx); err != nil {
//	    return err
//	}
//	g := cfg.Gesture()
//
// Section accessors never fail: a missing setting yields its default, and
// a setting of the wrong type yields the default and is recorded in
// ConfigErrors.
//
// # Settings
//
//	gesture.threshold            float  per-axis tap threshold (30)
//	gesture.doubleTapWindowMs    int    double tap window (300)
//	gesture.singleTapDelayMs     int    single tap delay (320)
//	gesture.doubleTapSuppressMs  int    double tap suppression (50)
//	logging.level                string debug, info, warn, error (info)
//	logging.file                 string log file path
//	content.path                 string content tables YAML file
//	content.watch                bool   reload content on change (true)
//	onboarding.enabled           bool   show the onboarding overlay (true)
//	theme.highlight              string hex color of the live cell
//	theme.accent                 string hex color of special cells
//	theme.text                   string hex color of cell text
//	pointer.unitsPerColumn       float  pointer units per terminal column (8)
//	pointer.unitsPerRow          float  pointer units per terminal row (16)
package config
