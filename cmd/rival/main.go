// rival is a terminal snake duel against an AI opponent.
//
// Usage:
//
//	rival list              - List available duels
//	rival play [duel]       - Play a duel (default: duel)
//	rival menu              - Start menu to pick duels interactively
//	rival history [duel]    - Show recorded duels
//	rival scores <duel>     - Show high scores for a duel
//	rival bench             - Run headless duels and time the rival's search
//	rival serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible duels
//	--db <path>           - Set database path (default: ~/.rival/scores.db)
//	--config <path>       - Custom duel config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-rival/internal/core"
	"github.com/vovakirdan/snake-rival/internal/games/duel"
	"github.com/vovakirdan/snake-rival/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rival",
	Short: "Snake Rival - duel an AI snake in your terminal",
	Long: `Snake Rival is a terminal snake game with a computer-controlled rival.
Once you have eaten enough, a rival snake appears and races you for the food.
It starts greedy and switches to a parallel minimax search as you keep scoring.

Available commands:
  list     - Show all available duels
  play     - Play a duel directly
  menu     - Interactive duel picker menu
  history  - Show recorded duels
  scores   - View high scores
  bench    - Run headless duels and time the rival
  serve    - Start SSH server for remote play

Examples:
  rival play
  rival play duel_minimax --difficulty hard
  rival menu
  rival bench --duels 20 --probes 200
  rival serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		duel.SetConfigPath(flagConfig)
		duel.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rival/scores.db", "Path to duel database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom duel config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Interactive commands own the terminal,
// so without --log-file they log nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	var (
		out     io.Writer = os.Stderr
		closeFn           = func() {}
	)

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "rival",
		Level:           level,
	})
	duel.SetLogger(logger)
	return logger, closeFn, nil
}

// openStore opens the duel database. Interactive play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open duel database: %v\n", err)
		logger.Warn("could not open duel database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
