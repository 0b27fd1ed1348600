package selection

import "testing"

var lines = []string{
	"one", "two", "three", "four", "five",
	"six", "seven", "eight", "nine", "ten",
}

func TestZeroValueInactive(t *testing.T) {
	var s Selection
	if s.Mode() != ModeInactive {
		t.Error("zero value should be Inactive")
	}
	if _, _, ok := s.Bounds(); ok {
		t.Error("Inactive selection should have no bounds")
	}
	if _, ok := s.Commit(lines); ok {
		t.Error("committing an Inactive selection should fail")
	}
}

func TestRangeExtension(t *testing.T) {
	var s Selection
	s.Start(5, len(lines))
	s.Move(1, len(lines))
	s.Move(1, len(lines))

	lo, hi, ok := s.Bounds()
	if !ok || lo != 5 || hi != 7 {
		t.Fatalf("Bounds() = (%d, %d, %v), want (5, 7, true)", lo, hi, ok)
	}

	text, ok := s.Commit(lines)
	if !ok || text != "five\nsix\nseven" {
		t.Errorf("Commit() = %q, want lines five..seven", text)
	}
	if s.Mode() != ModeInactive {
		t.Error("Commit should reset to Inactive")
	}
}

func TestRangeDirectionCommutes(t *testing.T) {
	var down, up Selection

	down.Start(5, len(lines))
	for i := 0; i < 5; i++ {
		down.Move(1, len(lines))
	}
	downText, _ := down.Commit(lines)

	up.Start(10, len(lines))
	for i := 0; i < 5; i++ {
		up.Move(-1, len(lines))
	}
	upText, _ := up.Commit(lines)

	if downText != upText {
		t.Errorf("selecting 5→10 (%q) and 10→5 (%q) should extract identical text", downText, upText)
	}
}

func TestSingleLineCommit(t *testing.T) {
	var s Selection
	s.Start(3, len(lines))
	text, ok := s.Commit(lines)
	if !ok || text != "three" {
		t.Errorf("single-line commit = %q, want %q", text, "three")
	}
}

func TestMoveClampsToBounds(t *testing.T) {
	var s Selection
	s.Start(1, len(lines))
	s.Move(-1, len(lines))
	if s.MovingLine() != 1 {
		t.Errorf("moving above line 1 should clamp, got %d", s.MovingLine())
	}

	s.Click(99, len(lines))
	if s.MovingLine() != len(lines) {
		t.Errorf("click past the end should clamp to %d, got %d", len(lines), s.MovingLine())
	}
}

func TestCursorMode(t *testing.T) {
	var s Selection
	s.SetCursor(4, len(lines))
	if s.Mode() != ModeCursor || s.CursorLine() != 4 {
		t.Fatalf("SetCursor should enter cursor mode at line 4, got mode=%v line=%d", s.Mode(), s.CursorLine())
	}

	// A click while visual mode is active extends the range instead of
	// moving the single cursor.
	s.Start(4, len(lines))
	s.SetCursor(8, len(lines))
	lo, hi, ok := s.Bounds()
	if !ok || lo != 4 || hi != 8 {
		t.Errorf("Bounds() = (%d, %d, %v), want (4, 8, true)", lo, hi, ok)
	}
	if s.CursorLine() != 0 {
		t.Error("CursorLine should be 0 while a range is active")
	}
}

func TestResetOnEscape(t *testing.T) {
	var s Selection
	s.Start(2, len(lines))
	s.Reset()
	if s.Mode() != ModeInactive {
		t.Error("Reset should return to Inactive")
	}
}
