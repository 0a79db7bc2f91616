// Package config provides YAML-based duel configuration loading, difficulty
// presets and validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/snake-rival/internal/policy"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// DuelConfig contains all configuration for a duel against the rival snake.
type DuelConfig struct {
	Grid     GridConfig     `yaml:"grid"`
	Snake    SnakeConfig    `yaml:"snake"`
	Opponent OpponentConfig `yaml:"opponent"`
}

// GridConfig defines the playing field size in cells.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SnakeConfig defines movement speed in cells per tick.
type SnakeConfig struct {
	InitialSpeed   float64 `yaml:"initial_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// OpponentConfig defines when the rival enters the game and how it plays.
type OpponentConfig struct {
	// ActivationScore is the player score at which the rival first spawns.
	ActivationScore int `yaml:"activation_score"`
	// UpgradeScore is the player score at which UpgradePolicy replaces
	// InitialPolicy. Zero disables the upgrade.
	UpgradeScore  int    `yaml:"upgrade_score"`
	InitialPolicy string `yaml:"initial_policy"`
	UpgradePolicy string `yaml:"upgrade_policy"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists every difficulty preset.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DifficultyNormal, nil
	}
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// InitialKind returns the parsed initial opponent policy.
func (c DuelConfig) InitialKind() (policy.Kind, error) {
	return policy.ParseKind(c.Opponent.InitialPolicy)
}

// UpgradeKind returns the parsed upgrade opponent policy.
func (c DuelConfig) UpgradeKind() (policy.Kind, error) {
	return policy.ParseKind(c.Opponent.UpgradePolicy)
}

// Validate reports the first inconsistent setting, wrapping ErrInvalidConfig.
func (c DuelConfig) Validate() error {
	switch {
	case c.Grid.Width < 4 || c.Grid.Height < 4:
		return fmt.Errorf("%w: grid must be at least 4x4, got %dx%d", ErrInvalidConfig, c.Grid.Width, c.Grid.Height)
	case c.Snake.InitialSpeed <= 0:
		return fmt.Errorf("%w: snake.initial_speed must be positive", ErrInvalidConfig)
	case c.Snake.SpeedIncrement < 0:
		return fmt.Errorf("%w: snake.speed_increment must not be negative", ErrInvalidConfig)
	case c.Snake.MaxSpeed < c.Snake.InitialSpeed:
		return fmt.Errorf("%w: snake.max_speed %.2f is below initial_speed %.2f", ErrInvalidConfig, c.Snake.MaxSpeed, c.Snake.InitialSpeed)
	case c.Snake.MaxSpeed > 1:
		// Faster heads would skip cells and tunnel through bodies.
		return fmt.Errorf("%w: snake.max_speed must not exceed 1 cell per tick", ErrInvalidConfig)
	case c.Opponent.ActivationScore < 0 || c.Opponent.UpgradeScore < 0:
		return fmt.Errorf("%w: opponent scores must not be negative", ErrInvalidConfig)
	}

	if _, err := c.InitialKind(); err != nil {
		return fmt.Errorf("%w: opponent.initial_policy: %w", ErrInvalidConfig, err)
	}
	if _, err := c.UpgradeKind(); err != nil {
		return fmt.Errorf("%w: opponent.upgrade_policy: %w", ErrInvalidConfig, err)
	}
	return nil
}
