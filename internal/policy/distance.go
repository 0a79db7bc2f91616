package policy

import (
	"math"

	"github.com/vovakirdan/snake-rival/internal/core"
)

// Grid holds the dimensions of the toroidal board a policy plans on.
type Grid struct {
	Width  int
	Height int
}

// WrappedDistance is the Manhattan distance from a real-valued head position to
// the food cell, taking the shorter way around each axis. It is zero when the
// head's cell is the food cell.
func (g Grid) WrappedDistance(headX, headY float64, food core.Point) float64 {
	if core.CellOf(headX, headY) == food {
		return 0
	}

	dx := math.Abs(headX - float64(food.X))
	dy := math.Abs(headY - float64(food.Y))

	if dx > float64(g.Width/2) {
		dx = float64(g.Width) - dx
	}
	if dy > float64(g.Height/2) {
		dy = float64(g.Height) - dy
	}
	return dx + dy
}

// step returns where a head at (x, y) ends up after moving speed cells along
// (dx, dy), wrapped onto the grid.
func (g Grid) step(x, y, dx, dy, speed float64) (float64, float64) {
	return core.WrapF(x+dx*speed, float64(g.Width)), core.WrapF(y+dy*speed, float64(g.Height))
}
