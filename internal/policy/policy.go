// Package policy implements the decision strategies that steer the rival snake.
//
// A Policy sees value snapshots of both snakes and the food cell and answers
// with a heading. It never touches the game's own snakes: every hypothetical
// move is simulated on a copy.
package policy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"github.com/vovakirdan/snake-rival/internal/agent"
	"github.com/vovakirdan/snake-rival/internal/core"
)

// Policy chooses the next heading for ego given the rival and the food.
type Policy interface {
	Name() string
	Decide(ego, rival agent.Snake, food core.Point) (agent.Direction, error)
}

// Kind names one of the available policies.
type Kind string

const (
	KindNull    Kind = "null"
	KindGreedy  Kind = "greedy"
	KindMinimax Kind = "minimax"
)

// Kinds lists every policy kind in display order.
var Kinds = []Kind{KindNull, KindGreedy, KindMinimax}

// ErrUnknownKind is returned when a policy name cannot be resolved.
var ErrUnknownKind = errors.New("policy: unknown kind")

// ParseKind resolves a case-insensitive policy name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if lo.Contains(Kinds, k) {
		return k, nil
	}
	return "", fmt.Errorf("%w %q (expected one of %s)", ErrUnknownKind, s, strings.Join(lo.Map(Kinds, func(k Kind, _ int) string {
		return string(k)
	}), ", "))
}

type options struct {
	logger  *log.Logger
	observe func(Ply)
}

// Option customises a policy built by New.
type Option func(*options)

// WithLogger attaches a logger; only Minimax uses it, for per-decision debug lines.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithObserver installs a Minimax ply observer.
func WithObserver(fn func(Ply)) Option {
	return func(o *options) { o.observe = fn }
}

// New builds the policy of the given kind for a grid.
func New(kind Kind, grid Grid, opts ...Option) (Policy, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case KindNull:
		return Null{}, nil
	case KindGreedy:
		return Greedy{Grid: grid}, nil
	case KindMinimax:
		return &Minimax{Grid: grid, Logger: o.logger, Observe: o.observe}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
}

// NullDirection is what a snake without a real strategy steers towards.
const NullDirection = agent.Down

// Null always answers NullDirection. It is the behaviour of an opponent that
// has no policy installed.
type Null struct{}

// Name returns the policy name.
func (Null) Name() string { return string(KindNull) }

// Decide returns NullDirection.
func (Null) Decide(_, _ agent.Snake, _ core.Point) (agent.Direction, error) {
	return NullDirection, nil
}

// LegalMoves returns the headings s may take next, in agent.Directions order.
// Reversing onto the neck is excluded once the snake is longer than its head.
func LegalMoves(s agent.Snake) []agent.Direction {
	return lo.Filter(agent.Directions[:], func(d agent.Direction, _ int) bool {
		return s.Size <= 1 || d != s.Direction.Opposite()
	})
}
