// Package duel implements the snake duel: the player steers a snake around a
// wrapping field while a policy-driven rival competes for the same food.
package duel

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/vovakirdan/snake-rival/internal/agent"
	"github.com/vovakirdan/snake-rival/internal/config"
	"github.com/vovakirdan/snake-rival/internal/core"
	"github.com/vovakirdan/snake-rival/internal/opponent"
	"github.com/vovakirdan/snake-rival/internal/policy"
	"github.com/vovakirdan/snake-rival/internal/registry"
)

// Mode selects how the rival starts out.
type Mode string

const (
	// ModeClassic starts the rival on the configured initial policy and
	// upgrades it once the player scores enough.
	ModeClassic Mode = "classic"
	// ModeMinimax runs the rival on minimax from its first spawn.
	ModeMinimax Mode = "minimax"
)

// Package-level settings applied on every Reset (like the CLI flags).
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger sets the logger handed to the rival and its policies.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements the duel.
type Game struct {
	mode Mode
	cfg  config.DuelConfig
	rng  *rand.Rand
	tick uint64

	score int
	ego   agent.Snake
	rival *opponent.Opponent
	food  core.Point
	cells []core.Point // every grid cell, row-major

	// autopilot steers ego instead of player input when set.
	autopilot     policy.Policy
	autopilotKind policy.Kind // rebuilt for the grid on every reset

	upgraded   bool
	respawns   int
	rivalMeals int

	// Screen layout
	screenW    int
	screenH    int
	hudHeight  int
	mapOffsetX int
	mapOffsetY int

	gameOver bool
	paused   bool
	tooSmall bool
}

// New creates a classic duel.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewMinimax creates a duel whose rival searches from the start.
func NewMinimax() *Game {
	return &Game{mode: ModeMinimax}
}

func init() {
	registry.Register("duel", func() registry.Game {
		return New()
	})
	registry.Register("duel_minimax", func() registry.Game {
		return NewMinimax()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeMinimax {
		return "duel_minimax"
	}
	return "duel"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeMinimax {
		return "Snake Duel (Minimax)"
	}
	return "Snake Duel"
}

// SetAutopilot lets p steer the player's snake. Pass nil to hand control back
// to input. It survives Reset unless SetAutopilotKind is in use.
func (g *Game) SetAutopilot(p policy.Policy) {
	g.autopilot = p
}

// SetAutopilotKind makes a fresh policy of kind steer ego after every reset,
// sized to whatever grid the duel is configured with.
func (g *Game) SetAutopilotKind(kind policy.Kind) {
	g.autopilotKind = kind
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadDuel(configPath)
	if err != nil {
		logger.Warn("falling back to default duel config", "err", err)
		cfg = config.DefaultDuelConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDuelPreset(&cfg, difficultyPreset)
	}
	g.ResetWith(rc, cfg)
}

// ResetWith restarts the game with an explicit configuration.
func (g *Game) ResetWith(rc core.RuntimeConfig, cfg config.DuelConfig) {
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.score = 0
	g.upgraded = false
	g.respawns = 0
	g.rivalMeals = 0
	g.gameOver = false
	g.paused = false
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.hudHeight = 2

	w, h := cfg.Grid.Width, cfg.Grid.Height
	g.cells = make([]core.Point, 0, w*h)
	for y := range h {
		for x := range w {
			g.cells = append(g.cells, core.Point{X: x, Y: y})
		}
	}

	// The field sits inside a one-cell border below the HUD.
	requiredW := w + 2
	requiredH := h + g.hudHeight + 2
	g.tooSmall = g.screenW < requiredW || g.screenH < requiredH
	g.mapOffsetX = max(0, (g.screenW-w)/2)
	g.mapOffsetY = g.hudHeight + 1

	g.ego = agent.New(w, h)
	g.ego.Speed = cfg.Snake.InitialSpeed
	if g.autopilotKind != "" {
		g.autopilot = g.buildPolicy(g.autopilotKind)
	}

	g.rival = opponent.New(w, h,
		opponent.WithPolicy(g.buildPolicy(g.initialKind())),
		opponent.WithLogger(logger.With("snake", "rival")),
	)

	g.placeFood()
}

func (g *Game) initialKind() policy.Kind {
	if g.mode == ModeMinimax {
		return policy.KindMinimax
	}
	kind, err := g.cfg.InitialKind()
	if err != nil {
		return policy.KindGreedy
	}
	return kind
}

// buildPolicy creates a rival policy for the current grid. Unknown kinds
// cannot reach here after config validation; Greedy covers them anyway.
func (g *Game) buildPolicy(kind policy.Kind) policy.Policy {
	grid := policy.Grid{Width: g.cfg.Grid.Width, Height: g.cfg.Grid.Height}
	p, err := policy.New(kind, grid, policy.WithLogger(logger))
	if err != nil {
		logger.Error("cannot build rival policy", "kind", kind, "err", err)
		return policy.Greedy{Grid: grid}
	}
	return p
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if input.Has(core.ActionRestart) && g.gameOver {
		g.ResetWith(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		}, g.cfg)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.steer(input)
	g.updateEgo()
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if !g.rival.Alive() && g.score >= g.cfg.Opponent.ActivationScore {
		g.respawnRival()
	}
	g.maybeUpgrade()
	g.updateRival()

	return core.StepResult{State: g.State()}
}

// steer applies player input or the autopilot. A snake longer than its head
// cannot turn back onto itself.
func (g *Game) steer(input core.InputFrame) {
	want := g.ego.Direction

	if g.autopilot != nil {
		d, err := g.autopilot.Decide(g.ego.Clone(), g.rival.Snake(), g.food)
		if err != nil {
			logger.Warn("autopilot decision failed", "err", err)
			return
		}
		want = d
	} else {
		switch {
		case input.Has(core.ActionUp):
			want = agent.Up
		case input.Has(core.ActionDown):
			want = agent.Down
		case input.Has(core.ActionLeft):
			want = agent.Left
		case input.Has(core.ActionRight):
			want = agent.Right
		}
	}

	if g.ego.Size > 1 && want == g.ego.Direction.Opposite() {
		return
	}
	g.ego.Direction = want
}

func (g *Game) updateEgo() {
	g.ego.Advance()

	if g.ego.HeadAt(g.food.X, g.food.Y) {
		g.score++
		g.ego.Grow()
		g.ego.Accelerate(g.cfg.Snake.SpeedIncrement, g.cfg.Snake.MaxSpeed)
		g.placeFood()
	}

	g.ego.ResolveCollision(g.rival.Snake())
	if !g.ego.Alive {
		g.gameOver = true
		logger.Debug("duel over", "score", g.score, "ticks", g.tick, "rival", g.rival.PolicyName())
	}
}

func (g *Game) updateRival() {
	if !g.rival.Alive() {
		return
	}

	g.rival.Update(g.ego, g.food)

	rs := g.rival.Snake()
	if rs.HeadAt(g.food.X, g.food.Y) {
		g.rivalMeals++
		g.rival.Grow()
		g.rival.Accelerate(g.cfg.Snake.SpeedIncrement, g.cfg.Snake.MaxSpeed)
		g.placeFood()
	}

	if !g.rival.Alive() {
		g.respawnRival()
	}
}

// maybeUpgrade swaps in the upgrade policy once the player reaches the
// upgrade score. It happens at most once per duel.
func (g *Game) maybeUpgrade() {
	if g.upgraded || g.mode == ModeMinimax || g.cfg.Opponent.UpgradeScore <= 0 {
		return
	}
	if g.score < g.cfg.Opponent.UpgradeScore {
		return
	}
	kind, err := g.cfg.UpgradeKind()
	if err != nil {
		kind = policy.KindMinimax
	}
	g.rival.SetPolicy(g.buildPolicy(kind))
	g.upgraded = true
	logger.Info("rival upgraded", "policy", kind, "score", g.score)
}

func (g *Game) respawnRival() {
	p, ok := g.randomFreeCell(true)
	if !ok {
		return
	}
	g.rival.Respawn(p.X, p.Y)
	g.respawns++
	logger.Debug("rival spawned", "x", p.X, "y", p.Y, "respawns", g.respawns)
}

// placeFood moves the food to a random cell not covered by either snake.
func (g *Game) placeFood() {
	p, ok := g.randomFreeCell(false)
	if !ok {
		// Field is full; leave the food where it is.
		return
	}
	g.food = p
}

func (g *Game) randomFreeCell(avoidFood bool) (core.Point, bool) {
	rs := g.rival.Snake()
	free := lo.Filter(g.cells, func(p core.Point, _ int) bool {
		if avoidFood && p == g.food {
			return false
		}
		return !g.ego.Covers(p.X, p.Y) && !(rs.Alive && rs.Covers(p.X, p.Y))
	})
	if len(free) == 0 {
		return core.Point{}, false
	}
	return free[g.rng.Intn(len(free))], true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
		Ticks:    g.tick,
	}
}

// Report summarises the duel so far.
func (g *Game) Report() core.DuelReport {
	return core.DuelReport{
		Score:      g.score,
		Policy:     g.rival.PolicyName(),
		Respawns:   g.respawns,
		Failures:   g.rival.Failures(),
		RivalMeals: g.rivalMeals,
		Ticks:      g.tick,
	}
}

// Config returns the configuration the current duel runs with.
func (g *Game) Config() config.DuelConfig {
	return g.cfg
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", g.cfg.Grid.Width+2, g.cfg.Grid.Height+g.hudHeight+2))
		return
	}

	dst.DrawBox(g.mapOffsetX-1, g.mapOffsetY-1, g.cfg.Grid.Width+2, g.cfg.Grid.Height+2)

	g.setCell(dst, g.food, '*', core.ColorYellow)
	if rs := g.rival.Snake(); rs.Alive {
		g.renderSnake(dst, rs, core.ColorRed, core.ColorBrightRed)
	}
	g.renderSnake(dst, g.ego, core.ColorGreen, core.ColorBrightGreen)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score %d  -  R to restart", g.score))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	rival := "waiting"
	if g.rival.Alive() {
		rival = g.rival.PolicyName()
	}
	hud := fmt.Sprintf(" %s  Score: %d  Size: %d  Speed: %.2f  Rival: %s",
		g.Title(), g.score, g.ego.Size, g.ego.Speed, rival)
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

func (g *Game) renderSnake(dst *core.Screen, s agent.Snake, body, head core.Color) {
	for _, c := range s.Body {
		g.setCell(dst, c, 'o', body)
	}
	g.setCell(dst, s.HeadCell(), '@', head)
}

func (g *Game) setCell(dst *core.Screen, p core.Point, r rune, c core.Color) {
	dst.SetColored(g.mapOffsetX+p.X, g.mapOffsetY+p.Y, r, c)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	for y := boxY + 1; y < boxY+boxH-1; y++ {
		for x := boxX + 1; x < boxX+boxW-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(boxX, boxY, boxW, boxH)
	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
