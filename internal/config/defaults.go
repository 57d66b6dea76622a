package config

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the hardcoded session parameters.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Grid: GridConfig{
			CellSize: 50,
		},
		Loop: LoopConfig{
			TickInterval: 200 * time.Millisecond,
		},
		Palette: PaletteConfig{
			Background: "#222831",
			Body:       "#393E46",
			Head:       "#00ADB5",
			Apple:      "#EEEEEE",
		},
		Rules: RulesConfig{
			Boundary:         "open",
			AppleAvoidsSnake: false,
		},
	}
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
