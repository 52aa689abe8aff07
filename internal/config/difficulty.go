package config

import "math"

// presetFactor scales the initial tick interval. Larger is slower.
func presetFactor(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 4.0 / 3.0
	case DifficultyHard:
		return 2.0 / 3.0
	default:
		return 1.0
	}
}

// ApplySnakePreset rescales the starting speed for a difficulty preset.
// The interval is scaled from the configured value and never drops below the
// minimum interval. Normal leaves the configuration untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if preset == DifficultyNormal || preset == "" {
		return
	}
	scaled := int(math.Round(float64(cfg.Speed.InitialMs) * presetFactor(preset)))
	cfg.Speed.InitialMs = max(scaled, cfg.Speed.MinMs)
}

// SpeedLevel maps an interval onto [0, 1]: 0 at the initial interval, 1 at the
// floor. Used for the speed gauge.
func SpeedLevel(cfg SnakeConfig, intervalMs int) float64 {
	span := float64(cfg.Speed.InitialMs - cfg.Speed.MinMs)
	if span <= 0 {
		return 1
	}
	return clampF(float64(cfg.Speed.InitialMs-intervalMs)/span, 0, 1)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
