// Package core provides fundamental types and utilities for the rival snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Point is an integer cell on the playing grid.
type Point struct {
	X, Y int
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Wrap maps an integer coordinate onto [0, extent) of a toroidal axis.
func Wrap(v, extent int) int {
	if extent <= 0 {
		return 0
	}
	return ((v % extent) + extent) % extent
}

// WrapF maps a real coordinate onto [0, extent) of a toroidal axis.
func WrapF(v, extent float64) float64 {
	if extent <= 0 {
		return 0
	}
	w := math.Mod(math.Mod(v, extent)+extent, extent)
	// math.Mod of a tiny negative value plus extent can round up to extent itself.
	if w >= extent {
		w = 0
	}
	return w
}

// CellOf truncates a real position to the grid cell that contains it.
func CellOf(x, y float64) Point {
	return Point{X: int(x), Y: int(y)}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
