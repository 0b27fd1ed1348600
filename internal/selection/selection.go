// Package selection tracks in-preview text selection over the logical
// line space of one file. Lines are 1-based. The state machine is
// Inactive -> Cursor (a single highlighted line) or Inactive -> Range
// (visual mode with a fixed anchor and a moving end); it is reset whenever
// the previewed file changes or the directory reloads.
package selection

import "strings"

// Mode enumerates the selection states.
type Mode int

const (
	ModeInactive Mode = iota
	ModeCursor
	ModeRange
)

// Selection is the per-file selection state. The zero value is Inactive.
type Selection struct {
	mode   Mode
	anchor int // fixed at activation (ModeRange)
	moving int // updated by movement/clicks (ModeRange), the line in ModeCursor
}

// Mode returns the current state.
func (s *Selection) Mode() Mode {
	return s.mode
}

// Active reports whether a visual range is being extended.
func (s *Selection) Active() bool {
	return s.mode == ModeRange
}

// SetCursor places the single-line preview cursor, leaving range mode
// untouched if it is active.
func (s *Selection) SetCursor(line, total int) {
	if s.mode == ModeRange {
		s.moving = clampLine(line, total)
		return
	}
	s.mode = ModeCursor
	s.moving = clampLine(line, total)
}

// CursorLine returns the single highlighted line, or 0 when none is set.
func (s *Selection) CursorLine() int {
	if s.mode != ModeCursor {
		return 0
	}
	return s.moving
}

// Start activates visual mode anchored at line.
func (s *Selection) Start(line, total int) {
	line = clampLine(line, total)
	s.mode = ModeRange
	s.anchor = line
	s.moving = line
}

// Move steps the moving end by delta lines, clamped to [1, total].
// In cursor mode it steps the single line instead. Inactive is a no-op.
func (s *Selection) Move(delta, total int) {
	if s.mode == ModeInactive {
		return
	}
	s.moving = clampLine(s.moving+delta, total)
}

// Click jumps the moving end (or the cursor line) straight to line.
func (s *Selection) Click(line, total int) {
	if s.mode == ModeInactive {
		return
	}
	s.moving = clampLine(line, total)
}

// MovingLine returns the line the next auto-scroll must keep visible.
func (s *Selection) MovingLine() int {
	return s.moving
}

// Bounds returns the inclusive selected range in ascending order.
// ok is false unless visual mode is active.
func (s *Selection) Bounds() (lo, hi int, ok bool) {
	if s.mode != ModeRange {
		return 0, 0, false
	}
	lo, hi = s.anchor, s.moving
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo, hi, true
}

// Commit extracts the selected lines joined with single newlines and
// resets to Inactive. The extraction is direction-agnostic: anchors above
// or below the moving end yield the same text.
func (s *Selection) Commit(lines []string) (string, bool) {
	lo, hi, ok := s.Bounds()
	s.Reset()
	if !ok {
		return "", false
	}
	if lo < 1 {
		lo = 1
	}
	if hi > len(lines) {
		hi = len(lines)
	}
	if lo > len(lines) {
		return "", false
	}
	return strings.Join(lines[lo-1:hi], "\n"), true
}

// Reset returns to Inactive.
func (s *Selection) Reset() {
	*s = Selection{}
}

func clampLine(line, total int) int {
	if line < 1 {
		return 1
	}
	if total > 0 && line > total {
		return total
	}
	return line
}
