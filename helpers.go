package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/skratchdot/open-golang/open"

	"github.com/agamurian/fiander/internal/listing"
)

// Helper functions

// openEntry opens a file under the cursor: text files block the UI in
// the configured editor, anything else goes to the system opener.
func (m model) openEntry(e listing.Entry) (tea.Model, tea.Cmd) {
	if e.IsTextFile() {
		return m.openInEditor(e.Path, 0)
	}

	if err := open.Run(e.Path); err != nil {
		m.setStatus("No opener for %s: %v", e.Name, err)
	} else {
		m.setStatus("Opened %s", e.Name)
	}
	return m, nil
}

// openInEditor suspends the TUI and blocks until the editor exits. A
// positive line lands the editor on that line where the editor supports
// it.
func (m model) openInEditor(path string, line int) (tea.Model, tea.Cmd) {
	editor := m.findEditor()
	if editor == "" {
		m.setStatus("No editor found (set $EDITOR or config)")
		return m, nil
	}

	var c *exec.Cmd
	switch {
	case line > 0 && isLineAddressable(editor):
		c = exec.Command(editor, fmt.Sprintf("+%d", line), path)
	case line > 0 && filepath.Base(editor) == "code":
		c = exec.Command(editor, "-g", fmt.Sprintf("%s:%d", path, line), "--wait")
	default:
		c = exec.Command(editor, path)
	}

	return m, tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m model) findEditor() string {
	candidates := []string{}
	if m.cfg.Editor != "" {
		candidates = append(candidates, m.cfg.Editor)
	}
	if env := os.Getenv("EDITOR"); env != "" {
		candidates = append(candidates, env)
	}
	candidates = append(candidates, "nvim", "vim", "nano", "vi")

	for _, c := range candidates {
		if _, err := exec.LookPath(c); err == nil {
			return c
		}
	}
	return ""
}

func isLineAddressable(editor string) bool {
	switch filepath.Base(editor) {
	case "nvim", "vim", "vi", "nano":
		return true
	}
	return false
}
