package config

import (
	_ "embed"
)

//go:embed defaults/balls.yaml
var defaultBallsYAML []byte

// DefaultBallsConfig returns the built-in configuration.
func DefaultBallsConfig() BallsConfig {
	return BallsConfig{
		Gameplay: GameplayConfig{
			Difficulty:  DifficultyNormal,
			TickRate:    100,
			StartPaused: true,
		},
		Aim: AimConfig{
			Step:     40,
			FineStep: 8,
		},
		Display: DisplayConfig{
			ShowPreview: true,
		},
		Saves: SavesConfig{
			AppName:        "tui_balls",
			QuickSlot:      "quicksave",
			AutosaveOnQuit: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBallsYAML
}
