package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rival/internal/games/duel"
	"github.com/vovakirdan/snake-rival/internal/platform/tui"
	"github.com/vovakirdan/snake-rival/internal/policy"
	"github.com/vovakirdan/snake-rival/internal/registry"
)

var flagAutopilot string

var playCmd = &cobra.Command{
	Use:   "play [duel]",
	Short: "Play a duel",
	Long: `Start playing the specified duel (default: duel).

Controls:
  Arrows/WASD/HJKL - Steer
  P/Space          - Pause
  R                - Restart (after game over)
  B/Esc            - Leave (when paused or over)
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Rival appears late and upgrades late
  normal - Values from the config file
  hard   - Rival appears early, upgrades early, snakes speed up faster
  fixed  - Constant speed, rival searches from its first move

Autopilot:
  --autopilot greedy|minimax lets a policy steer your snake so you can
  watch two AIs duel.

Examples:
  rival play
  rival play duel_minimax
  rival play --difficulty hard
  rival play --autopilot greedy
  rival play --config ./my-duel.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagAutopilot, "autopilot", "", "Let a policy steer your snake: greedy, minimax, null")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "duel"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown duel %q (run 'rival list' to see available duels)", gameID)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create duel: %w", err)
	}

	if flagAutopilot != "" {
		d, ok := game.(*duel.Game)
		if !ok {
			return fmt.Errorf("%s does not support --autopilot", gameID)
		}
		kind, err := policy.ParseKind(flagAutopilot)
		if err != nil {
			return err
		}
		d.SetAutopilotKind(kind)
	}

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	logger.Info("duel started", "game", gameID, "autopilot", flagAutopilot)
	if _, err := tui.Run(game, store, logger, terminalConfig()); err != nil {
		return fmt.Errorf("cannot run duel: %w", err)
	}
	return nil
}
