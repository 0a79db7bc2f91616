package policy

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/snake-rival/internal/agent"
	"github.com/vovakirdan/snake-rival/internal/core"
)

// MaxSearchDepth is the number of plies below the current position the search
// looks at. A ply is a single move by one snake.
const MaxSearchDepth = 8

// ErrSearchFailed wraps any failure raised while simulating a branch.
var ErrSearchFailed = errors.New("policy: search failed")

// Role tells which snake moves in a ply.
type Role int

const (
	RoleEgo Role = iota
	RoleRival
)

func (r Role) String() string {
	if r == RoleRival {
		return "rival"
	}
	return "ego"
}

// Ply describes one move explored by the search.
type Ply struct {
	Mover   Role
	Heading agent.Direction // mover's heading entering the ply
	Move    agent.Direction
	Size    int
	Depth   int
}

// Minimax searches MaxSearchDepth plies of alternating ego and rival moves,
// assuming the rival always answers with the move that is worst for ego.
// Root moves are searched concurrently; everything below a root move runs on
// that move's goroutine.
type Minimax struct {
	Grid Grid

	// Observe, when set, is called for every explored ply. It is called from
	// several goroutines at once.
	Observe func(Ply)

	Logger *log.Logger

	lastNodes atomic.Int64
}

// candidate is one root move waiting for its subtree's reward.
type candidate struct {
	dir    agent.Direction
	reward chan float64
}

// Name returns the policy name.
func (m *Minimax) Name() string { return string(KindMinimax) }

// LastNodes returns how many positions the most recent Decide visited.
func (m *Minimax) LastNodes() int64 {
	return m.lastNodes.Load()
}

// Decide returns the root move with the best worst-case reward for ego. Ties
// keep the move that comes first in agent.Directions order. If ego has no
// legal move it keeps its current heading.
func (m *Minimax) Decide(ego, rival agent.Snake, food core.Point) (agent.Direction, error) {
	moves := LegalMoves(ego)
	if len(moves) == 0 {
		return ego.Direction, nil
	}

	var nodes atomic.Int64
	candidates := make([]candidate, len(moves))

	var g errgroup.Group
	for i, d := range moves {
		next := ego.Clone()
		next.Direction = d
		next.Advance()
		next.ResolveCollision(rival)

		c := candidate{dir: d, reward: make(chan float64, 1)}
		candidates[i] = c

		root := Ply{Mover: RoleEgo, Heading: ego.Direction, Move: d, Size: ego.Size, Depth: 0}
		rivalCopy := rival.Clone()

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: root move %s: %v", ErrSearchFailed, d, r)
				}
			}()

			s := searcher{grid: m.Grid, observe: m.Observe, nodes: &nodes}
			s.visit(root)
			c.reward <- s.expand(next, rivalCopy, food, 1, false)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ego.Direction, err
	}

	// Channels are read in enumeration order so ties resolve the same way
	// whatever order the goroutines finished in.
	best := candidates[0].dir
	bestReward := <-candidates[0].reward
	for _, c := range candidates[1:] {
		if r := <-c.reward; r > bestReward {
			best, bestReward = c.dir, r
		}
	}

	m.lastNodes.Store(nodes.Load())
	if m.Logger != nil {
		m.Logger.Debug("minimax decision",
			"move", best,
			"reward", bestReward,
			"roots", len(candidates),
			"nodes", nodes.Load(),
		)
	}
	return best, nil
}

// searcher carries the per-decision search context into the recursion.
type searcher struct {
	grid    Grid
	observe func(Ply)
	nodes   *atomic.Int64
}

func (s searcher) visit(p Ply) {
	if s.observe != nil {
		s.observe(p)
	}
}

// expand returns the minimax value of the position for ego. Each child is
// simulated on its own copy of the moving snake.
func (s searcher) expand(ego, rival agent.Snake, food core.Point, depth int, maximizing bool) float64 {
	s.nodes.Add(1)

	foodTaken := ego.HeadAt(food.X, food.Y) || rival.HeadAt(food.X, food.Y)
	if depth >= MaxSearchDepth || !ego.Alive || !rival.Alive || foodTaken {
		return s.grid.evaluate(ego, rival, food, depth)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, d := range LegalMoves(ego) {
			s.visit(Ply{Mover: RoleEgo, Heading: ego.Direction, Move: d, Size: ego.Size, Depth: depth})
			next := ego.Clone()
			next.Direction = d
			next.Advance()
			next.ResolveCollision(rival)
			best = math.Max(best, s.expand(next, rival, food, depth+1, false))
		}
		return best
	}

	worst := math.Inf(1)
	for _, d := range LegalMoves(rival) {
		s.visit(Ply{Mover: RoleRival, Heading: rival.Direction, Move: d, Size: rival.Size, Depth: depth})
		next := rival.Clone()
		next.Direction = d
		next.Advance()
		next.ResolveCollision(ego)
		worst = math.Min(worst, s.expand(ego, next, food, depth+1, true))
	}
	return worst
}

// evaluate scores a position for ego only. Dying costs more the later it
// happens; eating pays more the sooner it happens. The rival's own fate does
// not enter the score.
func (g Grid) evaluate(ego, _ agent.Snake, food core.Point, depth int) float64 {
	reward := 0.0
	if !ego.Alive {
		reward -= 100 + float64(depth)
	}
	reward -= g.WrappedDistance(ego.HeadX, ego.HeadY, food)
	if ego.HeadAt(food.X, food.Y) {
		reward += 100 - float64(depth)
	}
	return reward
}
