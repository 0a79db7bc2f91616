package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDuel loads the duel configuration.
// Search order: customPath -> ~/.rival/configs/duel.yaml -> ./configs/duel.yaml -> embedded default
func LoadDuel(customPath string) (DuelConfig, error) {
	// Start from the defaults so partial files only override what they set.
	cfg := DefaultDuelConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("duel.yaml"); userCfgPath != "" {
		if c, ok := tryLoad(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryLoad(filepath.Join("configs", "duel.yaml")); ok {
		return c, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDuelYAML, &cfg); err != nil {
		return DefaultDuelConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file. Unreadable, malformed or invalid
// files are skipped.
func tryLoad(path string) (DuelConfig, bool) {
	cfg := DefaultDuelConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rival", "configs", filename)
}

// ApplyDuelPreset modifies the config based on a difficulty preset.
func ApplyDuelPreset(cfg *DuelConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Opponent.ActivationScore = 6
		cfg.Opponent.UpgradeScore = 14
		cfg.Snake.SpeedIncrement = 0.005
	case DifficultyHard:
		cfg.Opponent.ActivationScore = 2
		cfg.Opponent.UpgradeScore = 4
		cfg.Snake.SpeedIncrement = 0.02
	case DifficultyFixed:
		// No progression: constant speed and the rival never changes policy.
		cfg.Snake.SpeedIncrement = 0
		cfg.Opponent.UpgradeScore = 0
	}
}
