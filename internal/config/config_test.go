package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-rival/internal/policy"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg DuelConfig
	if err := yaml.Unmarshal(defaultDuelYAML, &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultDuelConfig() {
		t.Errorf("embedded default %+v differs from DefaultDuelConfig %+v", cfg, DefaultDuelConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("embedded default is invalid: %v", err)
	}
}

func TestLoadDuelCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duel.yaml")
	data := []byte("grid:\n  width: 16\n  height: 12\nopponent:\n  initial_policy: minimax\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDuel(path)
	if err != nil {
		t.Fatalf("LoadDuel: %v", err)
	}
	if cfg.Grid.Width != 16 || cfg.Grid.Height != 12 {
		t.Errorf("grid = %+v, want 16x12", cfg.Grid)
	}
	if cfg.Snake.InitialSpeed != 0.1 {
		t.Errorf("unset keys should keep defaults, initial_speed = %v", cfg.Snake.InitialSpeed)
	}
	kind, err := cfg.InitialKind()
	if err != nil || kind != policy.KindMinimax {
		t.Errorf("InitialKind() = %v, %v; want minimax", kind, err)
	}
}

func TestLoadDuelErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadDuel(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("grid: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDuel(broken); err == nil {
		t.Error("malformed config should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("opponent:\n  upgrade_policy: random\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadDuel(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("invalid config error = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DuelConfig)
		ok     bool
	}{
		{"defaults", func(*DuelConfig) {}, true},
		{"tiny grid", func(c *DuelConfig) { c.Grid.Width = 2 }, false},
		{"zero speed", func(c *DuelConfig) { c.Snake.InitialSpeed = 0 }, false},
		{"negative increment", func(c *DuelConfig) { c.Snake.SpeedIncrement = -0.1 }, false},
		{"max below initial", func(c *DuelConfig) { c.Snake.MaxSpeed = 0.05 }, false},
		{"max above one cell", func(c *DuelConfig) { c.Snake.MaxSpeed = 1.5 }, false},
		{"negative activation", func(c *DuelConfig) { c.Opponent.ActivationScore = -1 }, false},
		{"unknown policy", func(c *DuelConfig) { c.Opponent.InitialPolicy = "astar" }, false},
		{"null policy", func(c *DuelConfig) { c.Opponent.InitialPolicy = "null" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultDuelConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestApplyDuelPreset(t *testing.T) {
	normal := DefaultDuelConfig()
	ApplyDuelPreset(&normal, DifficultyNormal)
	if normal != DefaultDuelConfig() {
		t.Errorf("normal preset should keep defaults, got %+v", normal)
	}

	easy := DefaultDuelConfig()
	ApplyDuelPreset(&easy, DifficultyEasy)
	hard := DefaultDuelConfig()
	ApplyDuelPreset(&hard, DifficultyHard)
	if easy.Opponent.ActivationScore <= hard.Opponent.ActivationScore {
		t.Errorf("easy activation %d should be later than hard %d",
			easy.Opponent.ActivationScore, hard.Opponent.ActivationScore)
	}

	fixed := DefaultDuelConfig()
	ApplyDuelPreset(&fixed, DifficultyFixed)
	if fixed.Snake.SpeedIncrement != 0 || fixed.Opponent.UpgradeScore != 0 {
		t.Errorf("fixed preset should disable progression, got %+v", fixed)
	}

	for _, p := range Presets {
		cfg := DefaultDuelConfig()
		ApplyDuelPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced invalid config: %v", p, err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if p, err := ParsePreset("HARD"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(HARD) = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
}
