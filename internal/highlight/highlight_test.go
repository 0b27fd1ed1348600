package highlight

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestLinesPreservesContent(t *testing.T) {
	src := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}"

	lines := Lines("main.go", src, DefaultStyle)

	plain := strings.Split(src, "\n")
	if len(lines) != len(plain) {
		t.Fatalf("got %d lines, want %d", len(lines), len(plain))
	}
	for i, line := range lines {
		if ansi.Strip(line) != plain[i] {
			t.Errorf("line %d: stripped %q, want %q", i, ansi.Strip(line), plain[i])
		}
	}
}

func TestLinesUnknownExtensionFallsBack(t *testing.T) {
	src := "just some text\nsecond line"
	lines := Lines("notes.xyzzy", src, DefaultStyle)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if ansi.Strip(line) != strings.Split(src, "\n")[i] {
			t.Errorf("line %d content changed: %q", i, line)
		}
	}
}

func TestLinesUnknownStyle(t *testing.T) {
	lines := Lines("main.go", "package main", "no-such-style")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if ansi.Strip(lines[0]) != "package main" {
		t.Errorf("content changed under unknown style: %q", lines[0])
	}
}

func TestLinesEmptyContent(t *testing.T) {
	lines := Lines("main.go", "", DefaultStyle)
	if len(lines) != 1 || ansi.Strip(lines[0]) != "" {
		t.Errorf("empty content should yield one empty line, got %#v", lines)
	}
}
