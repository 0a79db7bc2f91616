package agent

import (
	"math"
	"testing"

	"github.com/vovakirdan/snake-rival/internal/core"
)

func TestOppositeIsInvolutiveAndFixpointFree(t *testing.T) {
	for _, d := range Directions {
		if Opposite(Opposite(d)) != d {
			t.Errorf("Opposite(Opposite(%v)) = %v", d, Opposite(Opposite(d)))
		}
		if Opposite(d) == d {
			t.Errorf("Opposite(%v) is a fixpoint", d)
		}
	}

	pairs := map[Direction]Direction{Up: Down, Down: Up, Left: Right, Right: Left}
	for d, want := range pairs {
		if got := d.Opposite(); got != want {
			t.Errorf("%v.Opposite() = %v, expected %v", d, got, want)
		}
	}
}

func TestDirectionsOrder(t *testing.T) {
	want := [4]Direction{Down, Left, Right, Up}
	if Directions != want {
		t.Errorf("Directions = %v, expected %v", Directions, want)
	}
}

func TestNewSnake(t *testing.T) {
	s := New(10, 8)

	if !s.Alive || s.Size != 1 || len(s.Body) != 0 {
		t.Errorf("New snake should be alive, size 1 and bodiless: %+v", s)
	}
	if s.HeadCell() != (core.Point{X: 5, Y: 4}) {
		t.Errorf("HeadCell() = %v, expected grid centre", s.HeadCell())
	}
	if s.GridWidth() != 10 || s.GridHeight() != 8 {
		t.Errorf("grid = %dx%d, expected 10x8", s.GridWidth(), s.GridHeight())
	}
}

func TestAdvanceWrapsAroundGrid(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		x, y  float64
		wantX float64
		wantY float64
		speed float64
	}{
		{"left edge", Left, 0.2, 3, 9.7, 3, 0.5},
		{"right edge", Right, 9.8, 3, 0.3, 3, 0.5},
		{"top edge", Up, 3, 0.1, 3, 9.6, 0.5},
		{"bottom edge", Down, 3, 9.9, 3, 0.4, 0.5},
		{"no wrap", Down, 3, 3, 3, 3.5, 0.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(10, 10)
			s.HeadX, s.HeadY = tc.x, tc.y
			s.Direction = tc.dir
			s.Speed = tc.speed

			s.Advance()

			if math.Abs(s.HeadX-tc.wantX) > 1e-9 || math.Abs(s.HeadY-tc.wantY) > 1e-9 {
				t.Errorf("head = (%v, %v), expected (%v, %v)", s.HeadX, s.HeadY, tc.wantX, tc.wantY)
			}
		})
	}
}

func TestAdvanceGrowsOnlyWhenPending(t *testing.T) {
	s := New(10, 10)
	s.Direction = Right
	s.Speed = 1

	s.Advance()
	if len(s.Body) != 0 || s.Size != 1 {
		t.Fatalf("size-1 snake should stay bodiless, got size %d body %v", s.Size, s.Body)
	}

	s.Grow()
	if !s.Growing() {
		t.Fatal("Grow should mark a pending growth")
	}
	s.Advance()
	if s.Size != 2 || len(s.Body) != 1 {
		t.Fatalf("after growth: size %d body %v, expected size 2 with one body cell", s.Size, s.Body)
	}
	if s.Body[0] != (core.Point{X: 6, Y: 5}) {
		t.Errorf("body cell = %v, expected previous head cell {6 5}", s.Body[0])
	}

	s.Advance()
	if s.Size != 2 || len(s.Body) != 1 || s.Body[0] != (core.Point{X: 7, Y: 5}) {
		t.Errorf("body should follow the head: size %d body %v", s.Size, s.Body)
	}
}

func TestSubCellMotionKeepsBody(t *testing.T) {
	s := New(10, 10)
	s.Body = []core.Point{{X: 5, Y: 6}}
	s.Size = 2
	s.Direction = Up
	s.HeadY = 5.5
	s.Speed = 0.1

	s.Advance()
	if len(s.Body) != 1 || s.Body[0] != (core.Point{X: 5, Y: 6}) {
		t.Errorf("body moved without the head changing cell: %v", s.Body)
	}
}

func TestSelfCollision(t *testing.T) {
	s := New(10, 10)
	s.HeadX, s.HeadY = 5, 5
	s.Speed = 1
	s.Size = 5
	s.Direction = Down
	// Coiled body, neck on the right, so moving down lands on an occupied cell.
	s.Body = []core.Point{{X: 4, Y: 6}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}

	s.Advance()
	if s.Alive {
		t.Error("snake should die when its head enters its own body")
	}
}

func TestResolveCollision(t *testing.T) {
	other := New(10, 10)
	other.HeadX, other.HeadY = 2, 2
	other.Body = []core.Point{{X: 3, Y: 2}}
	other.Size = 2

	tests := []struct {
		name      string
		x, y      float64
		otherDead bool
		alive     bool
	}{
		{"hits body", 3.4, 2.7, false, false},
		{"hits head", 2.1, 2.9, false, false},
		{"clear", 7, 7, false, true},
		{"dead other is ignored", 3, 2, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(10, 10)
			s.HeadX, s.HeadY = tc.x, tc.y
			o := other.Clone()
			o.Alive = !tc.otherDead

			s.ResolveCollision(o)
			if s.Alive != tc.alive {
				t.Errorf("Alive = %v, expected %v", s.Alive, tc.alive)
			}
		})
	}
}

func TestOccupancyQueries(t *testing.T) {
	s := New(10, 10)
	s.HeadX, s.HeadY = 4.6, 4.2
	s.Body = []core.Point{{X: 4, Y: 5}, {X: 4, Y: 6}}

	if !s.HeadAt(4, 4) {
		t.Error("HeadAt should use the truncated head cell")
	}
	if s.Occupies(4, 4) {
		t.Error("Occupies should not include the head")
	}
	if !s.Occupies(4, 6) || !s.Covers(4, 6) || !s.Covers(4, 4) {
		t.Error("Covers should include head and body")
	}
}

func TestCopiesAdvanceIndependently(t *testing.T) {
	base := New(10, 10)
	base.Body = make([]core.Point, 2, 8) // spare capacity on purpose
	base.Body[0] = core.Point{X: 5, Y: 7}
	base.Body[1] = core.Point{X: 5, Y: 6}
	base.Size = 3
	base.Speed = 1

	a := base
	b := base
	a.Direction = Left
	b.Direction = Right
	a.Advance()
	b.Advance()

	if a.Body[len(a.Body)-1] != (core.Point{X: 5, Y: 5}) || b.Body[len(b.Body)-1] != (core.Point{X: 5, Y: 5}) {
		t.Fatalf("unexpected bodies a=%v b=%v", a.Body, b.Body)
	}
	if base.Body[0] != (core.Point{X: 5, Y: 7}) || base.Body[1] != (core.Point{X: 5, Y: 6}) {
		t.Errorf("advancing copies mutated the original body: %v", base.Body)
	}

	c := base.Clone()
	c.Body[0] = core.Point{X: 0, Y: 0}
	if base.Body[0] == c.Body[0] {
		t.Error("Clone should detach the body slice")
	}
}

func TestPlace(t *testing.T) {
	s := New(10, 10)
	s.Alive = false
	s.Body = []core.Point{{X: 1, Y: 1}}
	s.Size = 4
	s.Grow()

	s.Place(3, 4, 0.1)
	if !s.Alive || s.Size != 1 || len(s.Body) != 0 || s.Growing() {
		t.Errorf("Place should revive a bodiless size-1 snake: %+v", s)
	}
	if !s.HeadAt(3, 4) || s.Speed != 0.1 {
		t.Errorf("Place put head at %v speed %v", s.HeadCell(), s.Speed)
	}
}

func TestAccelerateCaps(t *testing.T) {
	s := New(10, 10)
	for i := 0; i < 100; i++ {
		s.Accelerate(0.01, 0.5)
	}
	if s.Speed != 0.5 {
		t.Errorf("speed = %v, want cap 0.5", s.Speed)
	}
}
