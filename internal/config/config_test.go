package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gridsnake/internal/core"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	if got, expected := Default(), DefaultConfig(); got != expected {
		t.Errorf("Default() = %+v, expected %+v", got, expected)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("Validate(Default()) failed: %v", err)
	}
}

func TestRuntimeMatchesCoreDefaults(t *testing.T) {
	rc, err := Default().Runtime(7)
	if err != nil {
		t.Fatalf("Runtime() failed: %v", err)
	}

	expected := core.DefaultConfig()
	expected.Seed = 7
	if rc != expected {
		t.Errorf("Runtime() = %+v, expected %+v", rc, expected)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		key    string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window.width"},
		{"width too large", func(c *Config) { c.Window.Width = 70000 }, "window.width"},
		{"zero cell", func(c *Config) { c.Grid.CellSize = 0 }, "grid.cell_size"},
		{"width off grid", func(c *Config) { c.Window.Width = 820 }, "window.width"},
		{"height off grid", func(c *Config) { c.Window.Height = 610 }, "window.height"},
		{"start off grid", func(c *Config) { c.Start.X = 25 }, "start.x"},
		{"start outside", func(c *Config) { c.Start.Y = 600 }, "start.y"},
		{"negative start", func(c *Config) { c.Start.X = -50 }, "start.x"},
		{"zero tick", func(c *Config) { c.Loop.TickInterval = 0 }, "loop.tick_interval"},
		{"tick too long", func(c *Config) { c.Loop.TickInterval = time.Minute }, "loop.tick_interval"},
		{"bad color", func(c *Config) { c.Palette.Head = "teal" }, "palette.head"},
		{"short color", func(c *Config) { c.Palette.Apple = "#EEE" }, "palette.apple"},
		{"unknown boundary", func(c *Config) { c.Rules.Boundary = "bounce" }, "rules.boundary"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := Validate(cfg)
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() error = %v, expected ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tc.key) {
				t.Errorf("Validate() error = %q, expected it to name %s", err, tc.key)
			}
		})
	}
}

func TestValidateAcceptsVariants(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window = WindowConfig{Width: 400, Height: 300}
	cfg.Grid.CellSize = 25
	cfg.Start = StartConfig{X: 375, Y: 275}
	cfg.Rules.Boundary = "wrap"

	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}

	cfg.Rules.Boundary = ""
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() with empty boundary failed: %v", err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("loop:\n  tick_interval: 120ms\nrules:\n  boundary: clamp\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Loop.TickInterval != 120*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 120ms", cfg.Loop.TickInterval)
	}
	if cfg.Rules.Boundary != "clamp" {
		t.Errorf("Boundary = %q, expected clamp", cfg.Rules.Boundary)
	}
	if cfg.Window != DefaultConfig().Window {
		t.Errorf("Window = %+v, expected defaults", cfg.Window)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("window: [")); err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("Parse(garbage) error = %v, expected a parse error", err)
	}
	if _, err := Parse([]byte("grid:\n  cell_size: 30\n")); !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse(misaligned) error = %v, expected ErrInvalid", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rules.AppleAvoidsSnake = true
	cfg.Loop.TickInterval = 150 * time.Millisecond

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if !strings.Contains(string(data), "tick_interval: 150ms") {
		t.Errorf("Marshal() = %s, expected a readable duration", data)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, expected %+v", back, cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != EmbeddedSource || cfg != DefaultConfig() {
		t.Errorf("Load() = %+v from %q, expected embedded defaults", cfg, src)
	}

	userDir := filepath.Join(home, ".gridsnake")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	userPath := filepath.Join(userDir, "config.yaml")
	if err := os.WriteFile(userPath, []byte("rules:\n  boundary: wrap\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != userPath || cfg.Rules.Boundary != "wrap" {
		t.Errorf("Load() boundary %q from %q, expected wrap from %s", cfg.Rules.Boundary, src, userPath)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("grid:\n  cell_size: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, src, err = Load(custom)
	if err != nil {
		t.Fatalf("Load(custom) failed: %v", err)
	}
	if src != custom || cfg.Grid.CellSize != 25 || cfg.Rules.Boundary != "open" {
		t.Errorf("Load(custom) = %+v from %q", cfg, src)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}
