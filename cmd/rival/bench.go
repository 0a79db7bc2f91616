package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snake-rival/internal/agent"
	"github.com/vovakirdan/snake-rival/internal/config"
	"github.com/vovakirdan/snake-rival/internal/core"
	"github.com/vovakirdan/snake-rival/internal/games/duel"
	"github.com/vovakirdan/snake-rival/internal/policy"
	"github.com/vovakirdan/snake-rival/internal/registry"
)

var (
	flagBenchGame   string
	flagBenchDuels  int
	flagBenchTicks  int
	flagBenchPilot  string
	flagBenchProbes int
	flagBenchSave   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run headless duels and time the rival",
	Long: `Play duels without a terminal, with a policy steering your snake, and
report how each duel ended and how long a simulation step took.

With --probes, the minimax rival is also timed on random positions and the
number of searched positions is reported.

Examples:
  rival bench
  rival bench --game duel_minimax --duels 50 --pilot minimax
  rival bench --duels 0 --probes 500
  rival bench --save`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&flagBenchGame, "game", "duel", "Duel to run")
	benchCmd.Flags().IntVar(&flagBenchDuels, "duels", 10, "Number of headless duels")
	benchCmd.Flags().IntVar(&flagBenchTicks, "ticks", 20000, "Tick limit per duel")
	benchCmd.Flags().StringVar(&flagBenchPilot, "pilot", "greedy", "Policy steering your snake: greedy, minimax, null")
	benchCmd.Flags().IntVar(&flagBenchProbes, "probes", 0, "Random positions to time the minimax rival on")
	benchCmd.Flags().BoolVar(&flagBenchSave, "save", false, "Record finished duels in the database")
}

// duelResult is the outcome of one headless duel.
type duelResult struct {
	report  core.DuelReport
	over    bool
	digest  uint64
	avgStep time.Duration
	maxStep time.Duration
}

func runBench(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	if !registry.Exists(flagBenchGame) {
		return fmt.Errorf("unknown duel %q (run 'rival list' to see available duels)", flagBenchGame)
	}
	pilot, err := policy.ParseKind(flagBenchPilot)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if flagBenchDuels > 0 {
		results, err := benchDuels(cmd.Context(), flagBenchGame, pilot, flagBenchDuels, flagBenchTicks, seed)
		if err != nil {
			return err
		}
		printDuelResults(results)
		if flagBenchSave {
			saveDuelResults(logger, flagBenchGame, results)
		}
	}

	if flagBenchProbes > 0 {
		cfg, err := config.LoadDuel(flagConfig)
		if err != nil {
			return err
		}
		if p, err := config.ParsePreset(flagDifficulty); err == nil {
			config.ApplyDuelPreset(&cfg, p)
		}
		probeMinimax(cfg, flagBenchProbes, seed, logger)
	}
	return nil
}

// benchDuels runs n duels concurrently, one seed per duel.
func benchDuels(ctx context.Context, gameID string, pilot policy.Kind, n, maxTicks int, seed int64) ([]duelResult, error) {
	results := make([]duelResult, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := range n {
		g.Go(func() error {
			game, err := registry.Create(gameID)
			if err != nil {
				return err
			}
			d, ok := game.(*duel.Game)
			if !ok {
				return fmt.Errorf("%s cannot run headless", gameID)
			}
			d.SetAutopilotKind(pilot)
			d.Reset(core.RuntimeConfig{ScreenW: 1000, ScreenH: 1000, TickRate: 60, Seed: seed + int64(i)})

			var total, slowest time.Duration
			in := core.NewInputFrame()
			for range maxTicks {
				if err := ctx.Err(); err != nil {
					return err
				}
				start := time.Now()
				res := d.Step(in)
				elapsed := time.Since(start)
				total += elapsed
				slowest = max(slowest, elapsed)
				if res.State.GameOver {
					break
				}
			}

			report := d.Report()
			results[i] = duelResult{
				report:  report,
				over:    d.State().GameOver,
				digest:  d.Snapshot().Digest(),
				avgStep: total / time.Duration(max(report.Ticks, 1)),
				maxStep: slowest,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printDuelResults(results []duelResult) {
	fmt.Printf("  %-3s  %-5s  %-8s  %-6s  %-5s  %-5s  %-7s  %-10s  %-10s  %s\n",
		"#", "Score", "Rival", "Spawns", "Fails", "Meals", "Ticks", "Avg step", "Max step", "Digest")
	for i, r := range results {
		end := ""
		if !r.over {
			end = " (tick limit)"
		}
		fmt.Printf("  %-3d  %-5d  %-8s  %-6d  %-5d  %-5d  %-7d  %-10s  %-10s  %016x%s\n",
			i+1, r.report.Score, r.report.Policy, r.report.Respawns, r.report.Failures,
			r.report.RivalMeals, r.report.Ticks, r.avgStep, r.maxStep, r.digest, end)
	}

	scores := lo.Map(results, func(r duelResult, _ int) int { return r.report.Score })
	fmt.Println()
	fmt.Printf("Duels: %d  Best: %d  Average: %.1f  Failures: %d\n",
		len(results), lo.Max(scores), float64(lo.Sum(scores))/float64(max(len(scores), 1)),
		lo.SumBy(results, func(r duelResult) int { return r.report.Failures }))
}

func saveDuelResults(logger *log.Logger, gameID string, results []duelResult) {
	store := openStore(logger)
	if store == nil {
		return
	}
	defer store.Close()

	for _, r := range lo.Filter(results, func(r duelResult, _ int) bool { return r.over }) {
		if _, err := store.SaveDuel(gameID, r.report); err != nil {
			logger.Warn("could not save duel", "err", err)
			return
		}
	}
}

// probeMinimax times minimax decisions on random positions of the configured grid.
func probeMinimax(cfg config.DuelConfig, n int, seed int64, logger *log.Logger) {
	grid := policy.Grid{Width: cfg.Grid.Width, Height: cfg.Grid.Height}
	p, err := policy.New(policy.KindMinimax, grid, policy.WithLogger(logger))
	if err != nil {
		logger.Error("cannot build minimax", "err", err)
		return
	}
	mm := p.(*policy.Minimax)

	rng := rand.New(rand.NewSource(seed))
	durations := make([]time.Duration, 0, n)
	nodes := make([]int64, 0, n)
	failed := 0

	for range n {
		ego := randomSnake(rng, cfg, 1+rng.Intn(6))
		rival := randomSnake(rng, cfg, 1+rng.Intn(6))
		food := core.Point{X: rng.Intn(grid.Width), Y: rng.Intn(grid.Height)}

		start := time.Now()
		if _, err := mm.Decide(ego, rival, food); err != nil {
			failed++
			logger.Warn("probe failed", "err", err)
			continue
		}
		durations = append(durations, time.Since(start))
		nodes = append(nodes, mm.LastNodes())
	}

	if len(durations) == 0 {
		fmt.Println("No successful probes.")
		return
	}

	fmt.Println()
	fmt.Printf("Minimax probes on %dx%d: %d ok, %d failed\n", grid.Width, grid.Height, len(durations), failed)
	fmt.Printf("  decision: avg %s  max %s\n", lo.Sum(durations)/time.Duration(len(durations)), lo.Max(durations))
	fmt.Printf("  nodes:    avg %d  max %d\n", lo.Mean(nodes), lo.Max(nodes))

	fmt.Println()
	fmt.Println("Decision latency (ms):")
	ms := lo.Map(durations, func(d time.Duration, _ int) float64 {
		return float64(d) / float64(time.Millisecond)
	})
	if err := histogram.Fprint(os.Stdout, histogram.Hist(10, ms), histogram.Linear(40)); err != nil {
		logger.Warn("cannot print histogram", "err", err)
	}
}

// randomSnake places a snake of the given size in a straight line ending at a
// random cell, heading along that line.
func randomSnake(rng *rand.Rand, cfg config.DuelConfig, size int) agent.Snake {
	w, h := cfg.Grid.Width, cfg.Grid.Height
	s := agent.New(w, h)
	s.Direction = agent.Directions[rng.Intn(len(agent.Directions))]
	s.Place(rng.Intn(w), rng.Intn(h), 1)
	for range size - 1 {
		s.Grow()
		s.Advance()
	}
	s.Speed = cfg.Snake.InitialSpeed
	return s
}
