// Package opponent owns the computer-controlled rival snake: its body, the
// policy steering it and the dormant/active lifecycle the game drives.
package opponent

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-rival/internal/agent"
	"github.com/vovakirdan/snake-rival/internal/core"
	"github.com/vovakirdan/snake-rival/internal/policy"
)

// SpawnSpeed is the speed every respawn resets to.
const SpawnSpeed = 0.1

// Lifecycle is the opponent's coarse state.
type Lifecycle int

const (
	// Dormant opponents are not on the board and ignore updates.
	Dormant Lifecycle = iota
	Active
)

func (l Lifecycle) String() string {
	if l == Active {
		return "active"
	}
	return "dormant"
}

// Opponent is a snake steered by a policy.
type Opponent struct {
	snake    agent.Snake
	policy   policy.Policy
	logger   *log.Logger
	failures int
}

// Option configures an Opponent built by New.
type Option func(*Opponent)

// WithPolicy replaces the default Greedy policy. A nil policy makes the
// opponent head down every tick.
func WithPolicy(p policy.Policy) Option {
	return func(o *Opponent) { o.policy = p }
}

// WithLogger sets the logger used to report decision failures.
func WithLogger(l *log.Logger) Option {
	return func(o *Opponent) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns a dormant opponent on a width x height grid with a Greedy policy.
func New(width, height int, opts ...Option) *Opponent {
	s := agent.New(width, height)
	s.Alive = false
	s.Direction = agent.Down

	o := &Opponent{
		snake:  s,
		policy: policy.Greedy{Grid: policy.Grid{Width: width, Height: height}},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Respawn revives the opponent at (x, y) with a fresh size 1 body and SpawnSpeed.
// The heading is kept.
func (o *Opponent) Respawn(x, y int) {
	o.snake.Place(x, y, SpawnSpeed)
}

// SetPolicy swaps the steering policy. Call it between ticks.
func (o *Opponent) SetPolicy(p policy.Policy) {
	o.policy = p
}

// Policy returns the installed policy, possibly nil.
func (o *Opponent) Policy() policy.Policy {
	return o.policy
}

// PolicyName returns the installed policy's name, or "null" when none is set.
func (o *Opponent) PolicyName() string {
	if o.policy == nil {
		return string(policy.KindNull)
	}
	return o.policy.Name()
}

// Update picks a heading for this tick and moves. rival is the player's snake.
// A policy error leaves the previous heading in place.
func (o *Opponent) Update(rival agent.Snake, food core.Point) {
	if !o.snake.Alive {
		return
	}

	if o.policy == nil {
		o.snake.Direction = policy.NullDirection
	} else {
		dir, err := o.policy.Decide(o.snake.Clone(), rival, food)
		if err != nil {
			o.failures++
			o.logger.Error("opponent decision failed, keeping heading",
				"policy", o.policy.Name(),
				"heading", o.snake.Direction,
				"failures", o.failures,
				"err", err,
			)
		} else {
			o.snake.Direction = dir
		}
	}

	o.snake.Advance()
	o.snake.ResolveCollision(rival)
}

// Grow schedules one cell of growth.
func (o *Opponent) Grow() {
	o.snake.Grow()
}

// Accelerate raises the opponent's speed by delta, capped at max.
func (o *Opponent) Accelerate(delta, max float64) {
	o.snake.Accelerate(delta, max)
}

// Snake returns a detached snapshot of the opponent's snake.
func (o *Opponent) Snake() agent.Snake {
	return o.snake.Clone()
}

// Alive reports whether the opponent is on the board.
func (o *Opponent) Alive() bool {
	return o.snake.Alive
}

// Lifecycle reports Active while the opponent is alive.
func (o *Opponent) Lifecycle() Lifecycle {
	if o.snake.Alive {
		return Active
	}
	return Dormant
}

// Failures returns how many decisions have failed since New.
func (o *Opponent) Failures() int {
	return o.failures
}
