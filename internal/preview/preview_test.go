package preview

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/agamurian/fiander/internal/selection"
)

func TestMain(m *testing.M) {
	// Styling assertions need a real color profile; under go test stdout
	// is not a TTY and lipgloss would degrade to no-op styles.
	lipgloss.SetColorProfile(termenv.ANSI256)
	os.Exit(m.Run())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadLinesBounded(t *testing.T) {
	dir := t.TempDir()

	var b strings.Builder
	for i := 0; i < MaxLines+50; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	path := writeFile(t, dir, "big.txt", b.String())

	lines, truncated, err := ReadLines(path)
	if err != nil {
		t.Fatalf("ReadLines failed: %v", err)
	}
	if len(lines) != MaxLines {
		t.Errorf("got %d lines, want cap of %d", len(lines), MaxLines)
	}
	if !truncated {
		t.Error("oversized file should report truncated")
	}
}

func TestReadLinesLongLine(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wide.txt", strings.Repeat("x", MaxLineColumns+100))

	lines, truncated, _ := ReadLines(path)
	if len([]rune(lines[0])) != MaxLineColumns {
		t.Errorf("line length = %d, want %d", len([]rune(lines[0])), MaxLineColumns)
	}
	if !truncated {
		t.Error("overwide line should report truncated")
	}
}

func TestReadLinesMissing(t *testing.T) {
	if _, _, err := ReadLines(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderFileWindowAndGutter(t *testing.T) {
	lines := make([]string, 120)
	for i := range lines {
		lines[i] = fmt.Sprintf("content %d", i+1)
	}

	r := Renderer{Style: "gruvbox"}
	rows := r.RenderFile("notes.txt", lines, 50, 10, 80, nil, false)

	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	first := ansi.Strip(rows[0])
	if !strings.HasPrefix(first, " 51 │ ") {
		t.Errorf("first row should start with right-aligned gutter ' 51 │ ', got %q", first)
	}
	if !strings.Contains(first, "content 51") {
		t.Errorf("first row should show line 51, got %q", first)
	}
}

func TestRenderFileSelectionOverridesCursor(t *testing.T) {
	lines := []string{"alpha", "beta", "gamma", "delta"}
	var sel selection.Selection
	sel.Start(2, len(lines))
	sel.Move(1, len(lines))

	r := Renderer{}
	rows := r.RenderFile("x.txt", lines, 0, 4, 40, &sel, false)
	if len(rows) != 4 {
		t.Fatalf("got %d rows", len(rows))
	}

	// Selected rows still carry their text after styling
	for i, want := range []string{"alpha", "beta", "gamma", "delta"} {
		if got := ansi.Strip(rows[i]); !strings.Contains(got, want) {
			t.Errorf("row %d = %q, want to contain %q", i, got, want)
		}
	}
	// Selected rows are styled differently from the same render without a
	// selection
	bare := r.RenderFile("x.txt", lines, 0, 4, 40, nil, false)
	if rows[1] == bare[1] || rows[2] == bare[2] {
		t.Error("rows inside the selected range should carry the selection style")
	}
	if rows[0] != bare[0] {
		t.Error("rows outside the selected range should render unchanged")
	}
}

func TestRenderFileTruncatesColumns(t *testing.T) {
	lines := []string{strings.Repeat("abcdefghij", 20)}
	r := Renderer{}
	rows := r.RenderFile("x.txt", lines, 0, 1, 30, nil, false)
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if w := ansi.StringWidth(rows[0]); w > 30 {
		t.Errorf("row width %d exceeds 30 columns", w)
	}
}

func TestRenderDir(t *testing.T) {
	dir := t.TempDir()
	os.Mkdir(filepath.Join(dir, "sub"), 0755)
	writeFile(t, dir, "a.txt", "hello")

	r := Renderer{}
	rows := r.RenderDir(dir, 10, 40)

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 entries", len(rows))
	}
	if ansi.Strip(rows[0]) != "<directory>" {
		t.Errorf("header = %q", ansi.Strip(rows[0]))
	}
	if ansi.Strip(rows[1]) != "sub/" {
		t.Errorf("directories come first with a slash, got %q", ansi.Strip(rows[1]))
	}
	if ansi.Strip(rows[2]) != "a.txt" {
		t.Errorf("row 2 = %q", ansi.Strip(rows[2]))
	}
}

func TestRenderDirError(t *testing.T) {
	r := Renderer{}
	rows := r.RenderDir(filepath.Join(t.TempDir(), "gone"), 5, 60)
	if len(rows) != 1 || !strings.Contains(ansi.Strip(rows[0]), "cannot list") {
		t.Errorf("listing error should render one inline error row, got %#v", rows)
	}
}

func TestRenderBinary(t *testing.T) {
	r := Renderer{}
	rows := r.RenderBinary()
	if len(rows) != 1 || ansi.Strip(rows[0]) != BinaryPlaceholder {
		t.Errorf("binary placeholder row = %#v", rows)
	}
}
