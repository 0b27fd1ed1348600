package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/agamurian/fiander/internal/listing"
	"github.com/agamurian/fiander/internal/viewport"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Background(lipgloss.Color("235"))
	cursorRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("80")).Bold(true)
	dirRowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	symlinkRow     = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	binaryRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	resultCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("114")).Bold(true)
)

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Resize terminal min %dx%d", minWidth, minHeight)
	}

	header := m.renderHeader()

	var main string
	switch m.mode {
	case modeFileSearch, modeLineSearch:
		main = m.renderSearchView()
	case modeHelp:
		main = m.renderHelpView()
	default:
		left := m.renderListPane()
		right := m.renderRightPane()
		main = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		main,
		m.renderStatusLine(),
		m.renderPromptLine(),
	)
}

func (m model) renderHeader() string {
	title := "fiander - " + m.cwd
	if m.showOutput {
		title += "  [output]"
	}
	return headerStyle.Width(m.width).Padding(0, 1).Render(runewidth.Truncate(title, m.width-2, "…"))
}

// renderListPane draws the directory listing with the browser cursor.
func (m model) renderListPane() string {
	width := m.listWidth()
	height := m.listHeight()

	rows := make([]string, 0, height)
	end := m.top + height
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.top; i < end; i++ {
		e := m.entries[i]
		name := e.Name
		style := lipgloss.NewStyle()
		switch e.Kind {
		case listing.KindDir:
			name += "/"
			style = dirRowStyle
		case listing.KindSymlinkDir:
			name += "/"
			style = symlinkRow
		case listing.KindBinary, listing.KindMissing:
			style = binaryRowStyle
		}
		name = runewidth.Truncate(name, width-2, "…")
		if i == m.cursor {
			rows = append(rows, cursorRowStyle.Width(width).Render(" "+name))
		} else {
			rows = append(rows, style.Render(" "+name))
		}
	}
	if len(m.entries) == 0 {
		rows = append(rows, dimStyle.Render(" <empty>"))
	}

	return pane(rows, width, height)
}

// renderRightPane draws the preview, or the output pane when toggled on.
func (m model) renderRightPane() string {
	width := m.previewWidth()
	height := m.paneHeight()

	if m.showOutput {
		return pane(m.outputWindow(height, width), width, height)
	}

	var rows []string
	e := m.currentEntry()
	switch {
	case e == nil:
	case e.IsDir():
		rows = m.renderer.RenderDir(e.Path, height, width)
	case e.IsTextFile():
		sel := m.sel
		rows = m.renderer.RenderFile(e.Name, m.previewLines, m.previewScroll, height, width, &sel, m.previewTruncated)
	default:
		rows = m.renderer.RenderBinary()
	}

	return pane(rows, width, height)
}

func (m model) outputWindow(height, width int) []string {
	rows := make([]string, 0, height)
	end := m.outputScroll + height
	if end > len(m.lastOutput) {
		end = len(m.lastOutput)
	}
	for _, line := range m.lastOutput[m.outputScroll:end] {
		rows = append(rows, runewidth.Truncate(line, width, "…"))
	}
	return rows
}

// renderSearchView replaces both panes with the query line and the
// ranked results.
func (m model) renderSearchView() string {
	width := m.width
	height := m.paneHeight()

	label := "Fuzzy files"
	if m.search.kind == searchLines {
		label = "Grep lines"
	}

	rows := []string{label + ": " + m.search.input.View()}
	listHeight := height - 1

	n := m.search.resultCount()
	top := viewport.EnsureVisible(m.search.cursor, 0, listHeight, viewport.DefaultScrolloff, n)
	end := top + listHeight
	if end > n {
		end = n
	}

	for i := top; i < end; i++ {
		var text string
		if m.search.kind == searchFiles {
			r := m.search.fileResults[i]
			text = fmt.Sprintf("%5.2f  %s", r.Score, r.Candidate)
		} else {
			r := m.search.lineResults[i]
			text = fmt.Sprintf("%s:%d: %s", r.Path, r.Line, r.Text)
		}
		text = runewidth.Truncate(text, width-2, "…")
		if i == m.search.cursor && m.search.committed {
			rows = append(rows, resultCursor.Width(width).Render(" "+text))
		} else {
			rows = append(rows, " "+text)
		}
	}
	if m.search.committed && n == 0 {
		rows = append(rows, dimStyle.Render(" no matches"))
	}

	return pane(rows, width, height)
}

func (m model) renderHelpView() string {
	lines := []string{
		"",
		"  j/k, arrows   move    h/l enter/leave directory",
		"  v/V           start / commit text selection (copy)",
		"  Esc           cancel selection or pending key",
		"  /             fuzzy file search    ?  grep lines",
		"  dd            delete (confirm)     yy yank   mm mark move",
		"  P             paste yanked/marked entry",
		"  R rename   N new file   M new dir   .  toggle hidden",
		"  o             toggle output pane   Ctrl-D/U scroll preview",
		"  : or p        command mode (cd, ls, catlsr, rm, mv, cp, ...)",
		"  r refresh   ~ home   H this help   q quit",
		"",
	}
	return pane(lines, m.width, m.paneHeight())
}

func (m model) renderStatusLine() string {
	status := m.statusMsg
	if status == "" {
		status = "Ready"
	}
	if lo, hi, ok := m.sel.Bounds(); ok {
		status += fmt.Sprintf(" [VISUAL: lines %d-%d]", lo, hi)
	}
	text := fmt.Sprintf("%s  -  %s", shortName(m.cwd), status)
	return statusStyle.Width(m.width).Render(runewidth.Truncate(text, m.width, "…"))
}

func (m model) renderPromptLine() string {
	switch m.mode {
	case modeCommand, modeRename, modeCreateFile, modeCreateDir:
		return promptStyle.Width(m.width).Render("> " + m.textInput.View())
	default:
		return promptStyle.Width(m.width).Render("> (':' for prompt, q quit, o toggles, v/V select, H help)")
	}
}

// pane pads rows to an exact width x height block so horizontal joins
// stay rectangular.
func pane(rows []string, width, height int) string {
	line := lipgloss.NewStyle().Width(width).MaxWidth(width)
	out := make([]string, height)
	for i := 0; i < height; i++ {
		if i < len(rows) {
			out[i] = line.Render(rows[i])
		} else {
			out[i] = line.Render("")
		}
	}
	return strings.Join(out, "\n")
}

func shortName(path string) string {
	if base := strings.TrimSuffix(path, "/"); base != "" {
		if idx := strings.LastIndex(base, "/"); idx >= 0 {
			return base[idx+1:]
		}
	}
	return path
}
