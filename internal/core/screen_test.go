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

	// Check that it's initialized with uncolored spaces
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blank {
				t.Fatalf("New screen should be blank, got %+v at (%d, %d)", c, x, y)
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

	s.SetColored(1, 1, '@', ColorBrightYellow)
	if c := s.GetCell(1, 1); c.Rune != '@' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(1, 1) = %+v, expected '@' bright yellow", c)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.GetCell(100, 0) != blank {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(10, 4)
	b := s.Bounds()
	if b.W != 10 || b.H != 4 || b.X != 0 || b.Y != 0 {
		t.Errorf("Bounds() = %+v, expected 10x4 at origin", b)
	}

	// The last column and row are writable, one past them is not
	s.Set(9, 3, 'Z')
	s.Set(10, 3, 'Z')
	if s.Get(9, 3) != 'Z' {
		t.Errorf("Get(9, 3) = %q, expected 'Z'", s.Get(9, 3))
	}
	if !b.Contains(9, 3) || b.Contains(10, 3) {
		t.Error("Bounds() must contain the last cell and nothing past it")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColored(2, 2, 'X', ColorRed)
	s.Clear()
	if c := s.GetCell(2, 2); c != blank {
		t.Errorf("after Clear() cell = %+v, expected blank", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorCyan)

	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("Row(1)[2:7] = %q, expected %q", got, "Hello")
	}
	if s.GetCell(4, 1).Color != ColorCyan {
		t.Error("DrawTextColored() did not color the text")
	}

	// Multi-byte runes take one cell each
	s.DrawText(0, 2, "♣♣")
	if s.Get(1, 2) != '♣' || s.Get(2, 2) != ' ' {
		t.Errorf("Row(2) = %q, expected two clubs", s.Row(2))
	}

	// Clipping
	s.DrawText(17, 3, "Hello")
	if got := s.Row(3)[17:]; got != "Hel" {
		t.Errorf("clipped text = %q, expected %q", got, "Hel")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawTextCentered(1, "GAME")
	if got := s.Row(1)[8:12]; got != "GAME" {
		t.Errorf("centered text = %q, expected %q", got, "GAME")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorYellow)

	corners := []struct {
		x, y int
		r    rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.r {
			t.Errorf("corner at (%d, %d) = %q, expected %q", c.x, c.y, got, c.r)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
	if s.GetCell(3, 4).Color != ColorYellow {
		t.Error("box not colored")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 2), '#')
	count := strings.Count(s.String(), "#")
	if count != 6 {
		t.Errorf("DrawRect() filled %d cells, expected 6", count)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.Set(0, 0, 'A')
	s.Set(2, 1, 'B')

	expected := "A  \n  B"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Resize(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Errorf("after Resize() size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize() should clear content")
	}
	s.Set(7, 2, 'Y')
	if s.Get(7, 2) != 'Y' {
		t.Error("resized screen not writable at new bounds")
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	if s.Row(0) != "abcd" {
		t.Errorf("Row(0) = %q, expected %q", s.Row(0), "abcd")
	}
	if s.Row(5) != "    " {
		t.Errorf("Row(5) = %q, expected blanks", s.Row(5))
	}
}
