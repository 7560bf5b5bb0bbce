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
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'O', ColorRed, ColorPanel)
	if got := s.GetCell(5, 5); got != (Cell{Rune: 'O', FG: ColorRed, BG: ColorPanel}) {
		t.Errorf("GetCell(5, 5) = %+v", got)
	}

	// Set keeps colors.
	s.Set(5, 5, 'X')
	if got := s.GetCell(5, 5); got.Rune != 'X' || got.FG != ColorRed || got.BG != ColorPanel {
		t.Errorf("Set should keep colors, got %+v", got)
	}

	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.SetColored(0, -1, 'A', ColorRed, ColorRed)
	s.SetColored(0, 100, 'A', ColorRed, ColorRed)

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 3)
	s.FillRect(s.Bounds(), '#', ColorGreen, ColorBlue)
	s.Clear()

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if s.GetCell(x, y) != blank {
				t.Fatalf("cell (%d, %d) not cleared", x, y)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawTextColored(2, 0, "héllo", ColorYellow, ColorDefault)

	if got := s.Row(0); got != "  héllo   " {
		t.Errorf("Row(0) = %q", got)
	}
	if s.GetCell(3, 0).FG != ColorYellow {
		t.Error("text should carry its color")
	}

	// Clipped at the right edge.
	s.DrawText(8, 1, "abc")
	if got := s.Row(1); got != "        ab" {
		t.Errorf("Row(1) = %q", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(s.Bounds(), 0, "abc", ColorDefault, ColorDefault)
	if got := s.Row(0); got != "    abc    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(s.Bounds(), ColorGreen)

	want := []string{
		"┌───┐",
		"│   │",
		"│   │",
		"└───┘",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("DrawBox:\n%s", got)
	}
	if s.GetCell(0, 0).FG != ColorGreen {
		t.Error("box should use the border color")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'Z', ColorCyan, ColorDefault)

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	if got := s.GetCell(1, 1); got.Rune != 'Z' || got.FG != ColorCyan {
		t.Errorf("content lost on grow: %+v", got)
	}

	s.Resize(1, 1)
	if got := s.String(); got != " " {
		t.Errorf("String() after shrink = %q", got)
	}

	s.Resize(-3, 2)
	if s.Width() != 0 {
		t.Errorf("negative width should clamp to 0, got %d", s.Width())
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q", got)
	}
}
