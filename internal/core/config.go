package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
	Ticks    uint64
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// DuelReport summarises a finished duel for persistence.
type DuelReport struct {
	Score      int
	Policy     string // rival policy in charge when the duel ended
	Respawns   int
	Failures   int // rival decisions that failed and kept the old heading
	RivalMeals int
	Ticks      uint64
}
