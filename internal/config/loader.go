package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source names where a configuration was loaded from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, Source, error) {
	return loadSnake(customPath, userConfigPath("snake.yaml"), filepath.Join("configs", "snake.yaml"))
}

func loadSnake(customPath, userPath, localPath string) (SnakeConfig, Source, error) {
	// A custom path is explicit, so every failure is reported.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SnakeConfig{}, SourceCustom, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseSnake(data)
		if err != nil {
			return SnakeConfig{}, SourceCustom, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	// Optional locations are skipped when missing or broken.
	if userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := parseSnake(data); err == nil {
				return cfg, SourceUser, nil
			}
		}
	}

	if localPath != "" {
		if data, err := os.ReadFile(localPath); err == nil {
			if cfg, err := parseSnake(data); err == nil {
				return cfg, SourceLocal, nil
			}
		}
	}

	if cfg, err := parseSnake(defaultSnakeYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultSnakeConfig(), SourceBuiltin, nil
}

// parseSnake overlays YAML on the defaults so partial files stay valid.
func parseSnake(data []byte) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SnakeConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SnakeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}
