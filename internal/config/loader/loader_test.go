package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func getByPath(data map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var current any = data
	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[gesture]
threshold = 24.5
doubleTapWindowMs = 250

[theme]
highlight = "#4a90d9"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "gesture.threshold"); !ok || val != 24.5 {
		t.Errorf("gesture.threshold = %v (%T), want 24.5", val, val)
	}
	if val, ok := getByPath(config, "gesture.doubleTapWindowMs"); !ok || val != int64(250) {
		t.Errorf("gesture.doubleTapWindowMs = %v (%T), want 250", val, val)
	}
	if val, ok := getByPath(config, "theme.highlight"); !ok || val != "#4a90d9" {
		t.Errorf("theme.highlight = %v", val)
	}
}

func TestTOMLLoader_LoadMissing(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml")
	config, err := loader.Load()
	if err != nil {
		t.Errorf("Load error = %v, want nil", err)
	}
	if config != nil {
		t.Errorf("config = %v, want nil", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[gesture\nthreshold = 1\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q", perr.Path)
	}
	if perr.Line == 0 {
		t.Error("Line not reported")
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[content]\nwatch = false\n"))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if val, _ := getByPath(config, "content.watch"); val != false {
		t.Errorf("content.watch = %v", val)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"gesture": map[string]any{"threshold": 30.0, "doubleTapWindowMs": int64(300)},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"gesture": map[string]any{"threshold": 20.0},
		"theme":   map[string]any{"text": "#ffffff"},
	}

	merged := DeepMerge(dst, src)

	if v, _ := getByPath(merged, "gesture.threshold"); v != 20.0 {
		t.Errorf("threshold = %v, want 20", v)
	}
	if v, _ := getByPath(merged, "gesture.doubleTapWindowMs"); v != int64(300) {
		t.Errorf("doubleTapWindowMs = %v, want 300", v)
	}
	if v, _ := getByPath(merged, "theme.text"); v != "#ffffff" {
		t.Errorf("theme.text = %v", v)
	}

	// src must not be aliased into dst
	merged["theme"].(map[string]any)["text"] = "#000000"
	if src["theme"].(map[string]any)["text"] != "#ffffff" {
		t.Error("DeepMerge aliased a src map")
	}
}

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoaderWithEnviron("FLICKPAD_", []string{
		"FLICKPAD_LOG_LEVEL=debug",
		"FLICKPAD_CONTENT=/tmp/content.yaml",
		"FLICKPAD_GESTURE_THRESHOLD=1",
		"FLICKPAD_GESTURE_DOUBLE_TAP_WINDOW_MS=250",
		"FLICKPAD_ONBOARDING_ENABLED=false",
		"HOME=/root",
	})
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"content.path", "/tmp/content.yaml"},
		{"gesture.threshold", int64(1)},
		{"gesture.doubleTapWindowMs", int64(250)},
		{"onboarding.enabled", false},
	}
	for _, tt := range tests {
		if val, ok := getByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, val, val, tt.want)
		}
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variable was loaded")
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("FLICKPAD_")

	tests := []struct {
		env      string
		expected string
	}{
		{"FLICKPAD_THEME_HIGHLIGHT", "theme.highlight"},
		{"FLICKPAD_GESTURE_SINGLE_TAP_DELAY_MS", "gesture.singleTapDelayMs"},
		{"FLICKPAD_SIMPLE", "simple"},
	}

	for _, tt := range tests {
		got := loader.envToPath(tt.env)
		if got != tt.expected {
			t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.expected)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"true", true},
		{"YES", true},
		{"off", false},
		{"0", int64(0)},
		{"42", int64(42)},
		{"-10", int64(-10)},
		{"3.14", 3.14},
		{"#ff0000", "#ff0000"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v", tt.input, got, got, tt.expected)
		}
	}
}
