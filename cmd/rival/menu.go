package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rival/internal/platform/tui"
	"github.com/vovakirdan/snake-rival/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a duel picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a duel.
After leaving a duel (B/Esc when paused or over) you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Select duel
  Tab          - Duel history
  Q            - Quit

Examples:
  rival menu
  rival menu --fps 30
  rival menu --db ./duels.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := terminalConfig()

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsHistory {
			goBack, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return nil
		}

		if result.GameID == "" {
			return nil
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating duel: %v\n", err)
			continue
		}

		// Fresh seed per duel unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		logger.Info("duel started", "game", result.GameID)
		back, err := tui.Run(game, store, logger, cfg)
		if err != nil {
			return fmt.Errorf("cannot run duel: %w", err)
		}
		if !back {
			return nil
		}
	}
}
