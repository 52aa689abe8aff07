package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Count: 20,
		},
		Speed: SnakeSpeed{
			InitialMs: 150,
			StepMs:    5,
			MinMs:     50,
		},
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
		},
	}
}
