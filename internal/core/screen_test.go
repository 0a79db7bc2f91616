package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.SetColored(2, 1, '@', ColorRed)

	cell := s.GetCell(2, 1)
	if cell.Rune != '@' || cell.Color != ColorRed {
		t.Errorf("GetCell(2, 1) = %+v, expected red '@'", cell)
	}

	s.DrawTextColored(0, 0, "ab", ColorGreen)
	if s.GetCell(1, 0).Color != ColorGreen {
		t.Error("DrawTextColored should color every rune")
	}

	s.Clear()
	if s.GetCell(2, 1) != blankCell {
		t.Error("Clear should reset color as well as rune")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Set(4, 4, 'Y')

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("Resize: got %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != 'X' {
		t.Error("Resize should keep content inside the new bounds")
	}

	s.Resize(6, 6)
	if s.Get(1, 1) != 'X' || s.Get(5, 5) != ' ' {
		t.Error("Growing should keep content and blank the new area")
	}
}

func TestScreenDrawBoxAndString(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(0, 0, 4, 3)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 3 {
		t.Fatalf("String() produced %d lines, expected 3", len(lines))
	}
	if lines[0] != "┌──┐" || lines[1] != "│  │" || lines[2] != "└──┘" {
		t.Errorf("unexpected box:\n%s", s.String())
	}
	if s.Row(1) != "│  │" {
		t.Errorf("Row(1) = %q", s.Row(1))
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "hi")
	if s.Row(0) != "    hi    " {
		t.Errorf("Row(0) = %q, expected centered text", s.Row(0))
	}
}
