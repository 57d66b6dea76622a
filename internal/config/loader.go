package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmbeddedSource is reported by Load when no config file was found.
const EmbeddedSource = "embedded"

// Load loads the session configuration and returns it with the path it
// came from.
// Search order: customPath -> ~/.gridsnake/config.yaml -> ./configs/snake.yaml -> embedded default
func Load(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, customPath, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, customPath, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("config.yaml"), filepath.Join("configs", "snake.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, path, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, path, nil
	}

	// Use embedded default YAML
	cfg := Default()
	if err := Validate(cfg); err != nil {
		return DefaultConfig(), EmbeddedSource, nil
	}
	return cfg, EmbeddedSource, nil
}

// UserDir returns ~/.gridsnake, or "" if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridsnake")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
