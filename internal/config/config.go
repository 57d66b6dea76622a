// Package config provides YAML-based session configuration loading and
// validation for the snake game.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// Config contains all session parameters that can be set from a file.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Grid    GridConfig    `yaml:"grid"`
	Loop    LoopConfig    `yaml:"loop"`
	Palette PaletteConfig `yaml:"palette"`
	Rules   RulesConfig   `yaml:"rules"`
	Start   StartConfig   `yaml:"start"`
}

// WindowConfig defines the play area in pixels.
type WindowConfig struct {
	Width  int `yaml:"width" validate:"required,min=1,max=65535"`
	Height int `yaml:"height" validate:"required,min=1,max=65535"`
}

// GridConfig defines the cell size in pixels.
type GridConfig struct {
	CellSize int `yaml:"cell_size" validate:"required,min=1,max=65535"`
}

// LoopConfig defines the fixed cadence of the simulation.
type LoopConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" validate:"required,min=1ms,max=10s"`
}

// PaletteConfig holds the four frame colors as "#RRGGBB".
type PaletteConfig struct {
	Background string `yaml:"background" validate:"required,hexcolor,len=7"`
	Body       string `yaml:"body" validate:"required,hexcolor,len=7"`
	Head       string `yaml:"head" validate:"required,hexcolor,len=7"`
	Apple      string `yaml:"apple" validate:"required,hexcolor,len=7"`
}

// RulesConfig toggles optional game rules.
type RulesConfig struct {
	Boundary         string `yaml:"boundary" validate:"omitempty,oneof=open wrap clamp"`
	AppleAvoidsSnake bool   `yaml:"apple_avoids_snake"`
}

// StartConfig is the initial snake position in pixels.
type StartConfig struct {
	X int `yaml:"x" validate:"min=0"`
	Y int `yaml:"y" validate:"min=0"`
}

// Runtime converts the file representation into the parameters the game
// consumes. The config should be validated first.
func (c Config) Runtime(seed int64) (core.RuntimeConfig, error) {
	rc := core.RuntimeConfig{
		Borders:          core.Borders{W: uint16(c.Window.Width), H: uint16(c.Window.Height)},
		CellSize:         uint16(c.Grid.CellSize),
		TickInterval:     c.Loop.TickInterval,
		Seed:             seed,
		Start:            core.Position{X: uint16(c.Start.X), Y: uint16(c.Start.Y)},
		AppleAvoidsSnake: c.Rules.AppleAvoidsSnake,
	}

	mode, err := core.ParseBoundaryMode(c.Rules.Boundary)
	if err != nil {
		return rc, fmt.Errorf("config: %w", err)
	}
	rc.Boundary = mode

	colors := []struct {
		name string
		hex  string
		dst  *core.Color
	}{
		{"background", c.Palette.Background, &rc.Palette.Background},
		{"body", c.Palette.Body, &rc.Palette.Body},
		{"head", c.Palette.Head, &rc.Palette.Head},
		{"apple", c.Palette.Apple, &rc.Palette.Apple},
	}
	for _, col := range colors {
		v, err := core.ParseHex(col.hex)
		if err != nil {
			return rc, fmt.Errorf("config: palette.%s: %w", col.name, err)
		}
		*col.dst = v
	}

	return rc, nil
}

// Marshal returns the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Keys missing from data keep their default values.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
