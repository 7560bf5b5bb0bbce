// Package config provides YAML-based configuration loading for the balls
// game: gameplay defaults, aiming, display and save-slot settings.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-balls/internal/engine"
)

// BallsConfig contains all configuration for the game.
type BallsConfig struct {
	Gameplay GameplayConfig `yaml:"gameplay"`
	Aim      AimConfig      `yaml:"aim"`
	Display  DisplayConfig  `yaml:"display"`
	Saves    SavesConfig    `yaml:"saves"`
}

// GameplayConfig defines how a round starts and runs.
type GameplayConfig struct {
	Difficulty  DifficultyPreset `yaml:"difficulty"`
	TickRate    int              `yaml:"tick_rate"` // Ticks per second
	StartPaused bool             `yaml:"start_paused"` // Mid-shot records resume paused
}

// AimConfig defines aim cursor movement in world units.
type AimConfig struct {
	Step     float64 `yaml:"step"`
	FineStep float64 `yaml:"fine_step"`
}

// DisplayConfig defines how the board is drawn in the terminal.
type DisplayConfig struct {
	ShowPreview bool `yaml:"show_preview"`
	CellWidth   int  `yaml:"cell_width"`  // Terminal columns per board cell, 0 = fit
	CellHeight  int  `yaml:"cell_height"` // Terminal rows per board cell, 0 = fit
}

// SavesConfig defines where and when records are written.
type SavesConfig struct {
	AppName        string `yaml:"app_name"`
	QuickSlot      string `yaml:"quick_slot"`
	AutosaveOnQuit bool   `yaml:"autosave_on_quit"`
}

// DifficultyPreset is a difficulty name as written in YAML and on the
// command line.
type DifficultyPreset string

const (
	DifficultySimple  DifficultyPreset = "simple"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyCompete DifficultyPreset = "compete"
)

// ParseDifficulty converts a preset name to the engine difficulty.
func ParseDifficulty(s string) (engine.Difficulty, error) {
	d, err := engine.ParseDifficulty(s)
	if err != nil {
		return d, fmt.Errorf("config: %w", err)
	}
	return d, nil
}

// PresetFor returns the preset name of an engine difficulty.
func PresetFor(d engine.Difficulty) DifficultyPreset {
	return DifficultyPreset(d.String())
}

// Difficulty returns the parsed gameplay difficulty.
func (c BallsConfig) Difficulty() (engine.Difficulty, error) {
	return ParseDifficulty(string(c.Gameplay.Difficulty))
}

// Validate checks that every field holds a usable value.
func (c BallsConfig) Validate() error {
	if _, err := c.Difficulty(); err != nil {
		return err
	}
	if c.Gameplay.TickRate <= 0 || c.Gameplay.TickRate > 1000 {
		return fmt.Errorf("config: tick_rate must be in 1..1000, got %d", c.Gameplay.TickRate)
	}
	if c.Aim.Step <= 0 || c.Aim.FineStep <= 0 {
		return fmt.Errorf("config: aim steps must be positive, got %v/%v", c.Aim.Step, c.Aim.FineStep)
	}
	if c.Display.CellWidth < 0 || c.Display.CellHeight < 0 {
		return fmt.Errorf("config: cell size must not be negative, got %dx%d", c.Display.CellWidth, c.Display.CellHeight)
	}
	if c.Saves.AppName == "" {
		return fmt.Errorf("config: saves.app_name must not be empty")
	}
	if c.Saves.QuickSlot == "" {
		return fmt.Errorf("config: saves.quick_slot must not be empty")
	}
	return nil
}
