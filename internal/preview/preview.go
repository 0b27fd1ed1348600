// Package preview renders the right-hand pane: a bounded window of styled
// rows for a file or directory. It is a stateless service; the browser
// passes the scroll offset and selection state on every frame.
package preview

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/agamurian/fiander/internal/highlight"
	"github.com/agamurian/fiander/internal/listing"
	"github.com/agamurian/fiander/internal/selection"
)

// Hard caps on how much of a file the preview will ever hold. Files
// beyond these are visually truncated, not loaded.
const (
	MaxLines       = 400
	MaxLineColumns = 300
)

// BinaryPlaceholder is the single row shown for non-text files.
const BinaryPlaceholder = "[binary/non-text]"

var (
	gutterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("80")).Bold(true)
	dirStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	symlinkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	binaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	truncStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Renderer renders preview rows. Style names a chroma style.
type Renderer struct {
	Style string
}

// ReadLines reads up to MaxLines logical lines of path, each capped at
// MaxLineColumns runes. truncated reports whether anything was cut off.
func ReadLines(path string) (lines []string, truncated bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(lines) >= MaxLines {
			truncated = true
			break
		}
		line := scanner.Text()
		if runes := []rune(line); len(runes) > MaxLineColumns {
			line = string(runes[:MaxLineColumns])
			truncated = true
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		if len(lines) == 0 {
			return nil, false, err
		}
		// A long unsplittable line past the cap; show what we have
		truncated = true
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines, truncated, nil
}

// RenderFile renders the window [scrollTop, scrollTop+rows) of lines with
// a right-aligned line-number gutter. Per-row styling priority: selected
// range, then the single preview cursor line, then syntax highlighting.
// Rows are hard-truncated at cols; there is no wrapping.
func (r Renderer) RenderFile(fileName string, lines []string, scrollTop, rows, cols int, sel *selection.Selection, truncated bool) []string {
	if rows <= 0 || cols <= 0 || len(lines) == 0 {
		return nil
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if scrollTop >= len(lines) {
		scrollTop = len(lines) - 1
	}

	gutterWidth := len(fmt.Sprintf("%d", len(lines)))
	contentCols := cols - gutterWidth - 3 // "NN │ "
	if contentCols < 1 {
		contentCols = 1
	}

	lo, hi, hasRange := 0, 0, false
	cursorLine := 0
	if sel != nil {
		lo, hi, hasRange = sel.Bounds()
		cursorLine = sel.CursorLine()
	}

	styled := highlight.Lines(fileName, strings.Join(lines, "\n"), r.Style)

	end := scrollTop + rows
	if end > len(lines) {
		end = len(lines)
	}

	out := make([]string, 0, rows)
	for i := scrollTop; i < end; i++ {
		lineNum := i + 1
		gutter := gutterStyle.Render(fmt.Sprintf("%*d │ ", gutterWidth, lineNum))

		var body string
		switch {
		case hasRange && lineNum >= lo && lineNum <= hi:
			body = selectedStyle.Render(clipPlain(lines[i], contentCols))
		case cursorLine == lineNum:
			body = cursorStyle.Render(clipPlain(lines[i], contentCols))
		default:
			body = truncate.String(styled[i], uint(contentCols))
		}
		out = append(out, gutter+body)
	}

	if truncated && end == len(lines) && len(out) < rows {
		out = append(out, truncStyle.Render("… preview truncated"))
	}
	return out
}

// RenderDir renders up to rows immediate children of path, styled by
// kind. Listing errors become a single inline error row rather than a
// failed frame.
func (r Renderer) RenderDir(path string, rows, cols int) []string {
	if rows <= 0 || cols <= 0 {
		return nil
	}

	entries, err := listing.List(path)
	if err != nil {
		return []string{errorStyle.Render(clipPlain(fmt.Sprintf("[cannot list: %v]", err), cols))}
	}

	out := make([]string, 0, rows)
	out = append(out, gutterStyle.Render("<directory>"))
	for _, e := range entries {
		if len(out) >= rows {
			break
		}
		name := e.Name
		style := lipgloss.NewStyle()
		switch e.Kind {
		case listing.KindDir:
			name += "/"
			style = dirStyle
		case listing.KindSymlinkDir:
			name += "/"
			style = symlinkStyle
		case listing.KindBinary, listing.KindMissing:
			style = binaryStyle
		}
		out = append(out, style.Render(clipPlain(name, cols)))
	}
	return out
}

// RenderBinary renders the fixed placeholder row.
func (r Renderer) RenderBinary() []string {
	return []string{binaryStyle.Render(BinaryPlaceholder)}
}

// clipPlain truncates a plain (unstyled) string to a display width.
func clipPlain(s string, cols int) string {
	if cols <= 0 {
		return ""
	}
	return ansi.Truncate(s, cols, "")
}
