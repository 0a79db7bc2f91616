package main

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-rival/internal/platform/tui"
	"github.com/vovakirdan/snake-rival/internal/registry"
	"github.com/vovakirdan/snake-rival/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [duel]",
	Short: "Show recorded duels",
	Long: `List the most recent duels with the rival policy that finished them,
how often the rival respawned and how many of its decisions failed.
Without an argument every duel mode is shown.

Examples:
  rival history
  rival history duel_minimax --limit 50
  rival history --tui
  rival history duel --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of duels to show")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history in an interactive table")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete recorded scores and duels for the given duel")
}

func runHistory(_ *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown duel %q (run 'rival list' to see available duels)", gameID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagHistoryClear {
		if gameID == "" {
			return fmt.Errorf("--clear needs a duel id")
		}
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared history for %s.\n", gameID)
		return nil
	}

	if flagHistoryTUI {
		cfg := terminalConfig()
		_, err := tui.RunHistory(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	duels, err := store.RecentDuels(gameID, flagHistoryLimit)
	if err != nil {
		return err
	}

	if len(duels) == 0 {
		fmt.Println("No duels recorded yet.")
		return nil
	}

	fmt.Printf("  %-5s  %-13s  %-5s  %-8s  %-6s  %-5s  %-7s  %s\n",
		"#", "Duel", "Score", "Rival", "Spawns", "Fails", "Ticks", "Date")
	for _, d := range duels {
		fmt.Printf("  %-5d  %-13s  %-5d  %-8s  %-6d  %-5d  %-7d  %s\n",
			d.ID, d.GameID, d.Score, d.Policy, d.Respawns, d.Failures, d.Ticks,
			d.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetPolicyStats()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Across %d duels:\n", lo.SumBy(stats, func(s storage.PolicyStats) int { return s.Duels }))
	for _, s := range stats {
		fmt.Printf("  %-8s  %4d duels  avg score %5.1f  failures %d\n", s.Policy, s.Duels, s.AvgScore, s.Failures)
	}
	return nil
}
