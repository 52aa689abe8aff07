// Package config provides YAML-based configuration loading and difficulty
// presets for the snake engine.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// MinGridCount is the smallest playable board side.
const MinGridCount = 5

// SnakeConfig contains all configuration for the snake engine.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Speed      SnakeSpeed       `yaml:"speed"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeGrid defines the board dimensions.
type SnakeGrid struct {
	Count int `yaml:"count"` // Cells per side
}

// SnakeSpeed defines the tick interval progression in milliseconds.
type SnakeSpeed struct {
	InitialMs int `yaml:"initial_ms"`
	StepMs    int `yaml:"step_ms"`
	MinMs     int `yaml:"min_ms"`
}

// DifficultyConfig selects a preset.
type DifficultyConfig struct {
	Preset DifficultyPreset `yaml:"preset"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset accepts a preset name in any case. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// Validate rejects configurations the engine cannot run.
func (c SnakeConfig) Validate() error {
	if c.Grid.Count < MinGridCount {
		return fmt.Errorf("config: grid.count %d is below %d", c.Grid.Count, MinGridCount)
	}
	if c.Speed.InitialMs <= 0 || c.Speed.MinMs <= 0 {
		return fmt.Errorf("config: speed intervals must be positive (initial %d, min %d)", c.Speed.InitialMs, c.Speed.MinMs)
	}
	if c.Speed.StepMs < 0 {
		return fmt.Errorf("config: speed.step_ms %d is negative", c.Speed.StepMs)
	}
	if c.Speed.MinMs > c.Speed.InitialMs {
		return fmt.Errorf("config: speed.min_ms %d exceeds initial_ms %d", c.Speed.MinMs, c.Speed.InitialMs)
	}
	if _, err := ParsePreset(string(c.Difficulty.Preset)); err != nil {
		return err
	}
	return nil
}

// Settings converts the configuration into engine settings.
func (c SnakeConfig) Settings() snake.Settings {
	s := snake.DefaultSettings()
	s.Grid.Count = c.Grid.Count
	s.InitialInterval = time.Duration(c.Speed.InitialMs) * time.Millisecond
	s.SpeedStep = time.Duration(c.Speed.StepMs) * time.Millisecond
	s.MinInterval = time.Duration(c.Speed.MinMs) * time.Millisecond
	return s
}
