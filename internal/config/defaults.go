package config

import (
	_ "embed"
)

//go:embed defaults/duel.yaml
var defaultDuelYAML []byte

// DefaultDuelConfig returns the default duel configuration.
func DefaultDuelConfig() DuelConfig {
	return DuelConfig{
		Grid: GridConfig{
			Width:  32,
			Height: 20,
		},
		Snake: SnakeConfig{
			InitialSpeed:   0.1,
			SpeedIncrement: 0.01,
			MaxSpeed:       0.5,
		},
		Opponent: OpponentConfig{
			ActivationScore: 4,
			UpgradeScore:    8,
			InitialPolicy:   "greedy",
			UpgradePolicy:   "minimax",
		},
	}
}
