package duel

import (
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/vovakirdan/snake-rival/internal/agent"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Mode        string
	Score       int
	EgoX        float64
	EgoY        float64
	EgoSize     int
	EgoDir      agent.Direction
	EgoSpeed    float64
	RivalAlive  bool
	RivalX      float64
	RivalY      float64
	RivalSize   int
	RivalDir    agent.Direction
	RivalPolicy string
	FoodX       int
	FoodY       int
	Respawns    int
	RivalMeals  int
	State       GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	rs := g.rival.Snake()
	return Snapshot{
		Tick:        g.tick,
		Mode:        string(g.mode),
		Score:       g.score,
		EgoX:        g.ego.HeadX,
		EgoY:        g.ego.HeadY,
		EgoSize:     g.ego.Size,
		EgoDir:      g.ego.Direction,
		EgoSpeed:    g.ego.Speed,
		RivalAlive:  rs.Alive,
		RivalX:      rs.HeadX,
		RivalY:      rs.HeadY,
		RivalSize:   rs.Size,
		RivalDir:    rs.Direction,
		RivalPolicy: g.rival.PolicyName(),
		FoodX:       g.food.X,
		FoodY:       g.food.Y,
		Respawns:    g.respawns,
		RivalMeals:  g.rivalMeals,
		State:       state,
	}
}

// Digest fingerprints the snapshot, so two runs can be compared by one value.
func (s Snapshot) Digest() uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%+v", s))
}
