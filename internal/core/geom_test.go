package core

import (
	"math"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name           string
		v, extent, out int
	}{
		{"inside", 3, 10, 3},
		{"zero", 0, 10, 0},
		{"at extent", 10, 10, 0},
		{"past extent", 13, 10, 3},
		{"negative", -1, 10, 9},
		{"far negative", -21, 10, 9},
		{"degenerate extent", 5, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Wrap(tc.v, tc.extent); got != tc.out {
				t.Errorf("Wrap(%d, %d) = %d, expected %d", tc.v, tc.extent, got, tc.out)
			}
		})
	}
}

func TestWrapF(t *testing.T) {
	tests := []struct {
		name           string
		v, extent, out float64
	}{
		{"inside", 3.5, 10, 3.5},
		{"past extent", 10.25, 10, 0.25},
		{"negative", -0.5, 10, 9.5},
		{"exact extent", 10, 10, 0},
		{"tiny negative never reaches extent", -1e-18, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := WrapF(tc.v, tc.extent)
			if math.Abs(got-tc.out) > 1e-9 {
				t.Errorf("WrapF(%v, %v) = %v, expected %v", tc.v, tc.extent, got, tc.out)
			}
			if got < 0 || got >= tc.extent {
				t.Errorf("WrapF(%v, %v) = %v is outside [0, %v)", tc.v, tc.extent, got, tc.extent)
			}
		})
	}
}

func TestCellOf(t *testing.T) {
	if got := CellOf(3.99, 4.01); got != (Point{X: 3, Y: 4}) {
		t.Errorf("CellOf(3.99, 4.01) = %v, expected {3 4}", got)
	}
	if got := (Point{X: 1, Y: 1}).Add(-1, 2); got != (Point{X: 0, Y: 3}) {
		t.Errorf("Add = %v, expected {0 3}", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
