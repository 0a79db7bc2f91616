package policy

import (
	"math"

	"github.com/vovakirdan/snake-rival/internal/agent"
	"github.com/vovakirdan/snake-rival/internal/core"
)

// tieEpsilon is the distance within which two candidate moves count as equal.
const tieEpsilon = 0.001

// Greedy looks one step ahead and heads for the move that lands closest to the
// food. Ties go to the current heading.
type Greedy struct {
	Grid Grid
}

// Name returns the policy name.
func (Greedy) Name() string { return string(KindGreedy) }

// Decide picks the legal move minimising the wrapped distance to food.
func (g Greedy) Decide(ego, _ agent.Snake, food core.Point) (agent.Direction, error) {
	best := ego.Direction
	bestDist := math.Inf(1)

	for _, d := range LegalMoves(ego) {
		dx, dy := d.Delta()
		x, y := g.Grid.step(ego.HeadX, ego.HeadY, dx, dy, ego.Speed)
		dist := g.Grid.WrappedDistance(x, y, food)

		closer := dist < bestDist-tieEpsilon
		straightTie := math.Abs(dist-bestDist) < tieEpsilon && d == ego.Direction
		if math.IsInf(bestDist, 1) || closer || straightTie {
			best, bestDist = d, dist
		}
	}
	return best, nil
}
