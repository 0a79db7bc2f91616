// Package agent simulates a single snake on a toroidal grid: heading, sub-cell
// head motion, body growth, wrap-around and occupancy queries.
//
// A Snake is a plain value. Advance never writes through the backing array of
// Body, so copies made by assignment can be advanced independently; Clone is
// still provided for callers that want a fully detached body slice.
package agent

import (
	"math"

	"github.com/vovakirdan/snake-rival/internal/core"
)

// Direction is one of the four cardinal headings.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions is the fixed enumeration order every decision strategy iterates in.
var Directions = [4]Direction{Down, Left, Right, Up}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Opposite returns the reverse of d.
func Opposite(d Direction) Direction {
	return d.Opposite()
}

// Delta returns the unit step of the heading; y grows downwards.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// DefaultSpeed is the head speed, in cells per tick, of a freshly spawned snake.
const DefaultSpeed = 0.1

// Snake is the state shared by the player snake and the opponent.
type Snake struct {
	HeadX     float64
	HeadY     float64
	Direction Direction
	Speed     float64
	Alive     bool
	Size      int
	// Body holds the occupied cells behind the head, tail first.
	Body []core.Point

	growing bool
	width   int
	height  int
}

// New creates a live snake of size 1 at the centre of a width x height grid, heading up.
func New(width, height int) Snake {
	return Snake{
		HeadX:     float64(width / 2),
		HeadY:     float64(height / 2),
		Direction: Up,
		Speed:     DefaultSpeed,
		Alive:     true,
		Size:      1,
		width:     width,
		height:    height,
	}
}

// GridWidth returns the width of the grid the snake lives on.
func (s Snake) GridWidth() int {
	return s.width
}

// GridHeight returns the height of the grid the snake lives on.
func (s Snake) GridHeight() int {
	return s.height
}

// HeadCell returns the grid cell containing the head.
func (s Snake) HeadCell() core.Point {
	return core.CellOf(s.HeadX, s.HeadY)
}

// HeadAt reports whether the head's cell is (x, y).
func (s Snake) HeadAt(x, y int) bool {
	return s.HeadCell() == core.Point{X: x, Y: y}
}

// Occupies reports whether (x, y) is one of the body cells.
func (s Snake) Occupies(x, y int) bool {
	p := core.Point{X: x, Y: y}
	for _, c := range s.Body {
		if c == p {
			return true
		}
	}
	return false
}

// Covers reports whether (x, y) is the head cell or a body cell.
func (s Snake) Covers(x, y int) bool {
	return s.HeadAt(x, y) || s.Occupies(x, y)
}

// Grow makes the body one cell longer the next time the head enters a new cell.
func (s *Snake) Grow() {
	s.growing = true
}

// Growing reports whether a growth is pending.
func (s Snake) Growing() bool {
	return s.growing
}

// Accelerate raises the speed by delta, capped at max.
func (s *Snake) Accelerate(delta, max float64) {
	s.Speed = math.Min(s.Speed+delta, max)
}

// Clone returns a copy whose body slice shares nothing with s.
func (s Snake) Clone() Snake {
	c := s
	if s.Body != nil {
		c.Body = make([]core.Point, len(s.Body))
		copy(c.Body, s.Body)
	}
	return c
}

// Advance moves the head one step along the current heading, wrapping around the
// grid. When the head crosses into a new cell the body follows and the snake dies
// if it runs into itself.
func (s *Snake) Advance() {
	prev := s.HeadCell()

	dx, dy := s.Direction.Delta()
	s.HeadX = core.WrapF(s.HeadX+dx*s.Speed, float64(s.width))
	s.HeadY = core.WrapF(s.HeadY+dy*s.Speed, float64(s.height))

	cur := s.HeadCell()
	if cur != prev {
		s.follow(cur, prev)
	}
}

func (s *Snake) follow(cur, prev core.Point) {
	body := make([]core.Point, 0, len(s.Body)+1)
	body = append(body, s.Body...)
	body = append(body, prev)
	if s.growing {
		s.growing = false
		s.Size++
	} else {
		body = body[1:]
	}
	s.Body = body

	for _, c := range s.Body {
		if c == cur {
			s.Alive = false
			return
		}
	}
}

// ResolveCollision kills the snake if its head now sits on any cell covered by a
// live other snake.
func (s *Snake) ResolveCollision(other Snake) {
	if !other.Alive {
		return
	}
	head := s.HeadCell()
	if other.Covers(head.X, head.Y) {
		s.Alive = false
	}
}

// Place puts a revived snake of size 1 at (x, y) with the given speed.
func (s *Snake) Place(x, y int, speed float64) {
	s.HeadX = float64(x)
	s.HeadY = float64(y)
	s.Speed = speed
	s.Alive = true
	s.Size = 1
	s.Body = nil
	s.growing = false
}
