package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agamurian/fiander/internal/bundle"
	"github.com/agamurian/fiander/internal/clipboard"
	"github.com/agamurian/fiander/internal/config"
	"github.com/agamurian/fiander/internal/fileops"
	"github.com/agamurian/fiander/internal/fuzzy"
	"github.com/agamurian/fiander/internal/listing"
	"github.com/agamurian/fiander/internal/selection"
)

type pollMsg time.Time

type editorFinishedMsg struct{ err error }

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("fiander"), pollTick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.statusMsg != "" && time.Now().After(m.statusExpiry) {
		m.statusMsg = ""
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case pollMsg:
		// Inline reconciliation; never runs while a dialog or search
		// could be invalidated under the user's feet.
		if m.mode == modeBrowser {
			m.reconcile()
		}
		return m, pollTick()

	case editorFinishedMsg:
		if msg.err != nil {
			m.setStatus("Editor error: %v", msg.err)
		}
		m.loadEntries()
		return m, nil

	case tea.MouseMsg:
		if m.mode == modeBrowser {
			return m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeBrowser:
			return m.handleBrowserKey(msg)
		case modeConfirmDelete:
			return m.handleConfirmDeleteKey(msg)
		case modeRename, modeCreateFile, modeCreateDir:
			return m.handleTextEntryKey(msg)
		case modeCommand:
			return m.handleCommandKey(msg)
		case modeFileSearch, modeLineSearch:
			return m.handleSearchKey(msg)
		case modeHelp:
			switch msg.String() {
			case "esc", "q", "H":
				m.mode = modeBrowser
			}
			return m, nil
		}
	}

	return m, nil
}

func (m model) handleBrowserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Two-key chords: the second keypress either completes the chord or
	// cancels it.
	if m.pendingKey != "" {
		pk := m.pendingKey
		m.pendingKey = ""
		e := m.currentEntry()
		switch {
		case pk == "d" && key == "d":
			if e == nil {
				m.setStatus("nothing selected")
				return m, nil
			}
			m.deleteTarget = *e
			m.mode = modeConfirmDelete
			m.setStatus("Confirm delete %s? (y/n)", e.Name)
		case pk == "y" && key == "y":
			if e == nil {
				m.setStatus("nothing selected")
				return m, nil
			}
			m.pastePath = e.Path
			m.pasteOp = opCopy
			m.setStatus("yanked %s", e.Name)
		case pk == "m" && key == "m":
			if e == nil {
				m.setStatus("nothing selected")
				return m, nil
			}
			m.pastePath = e.Path
			m.pasteOp = opMove
			m.setStatus("marked %s for move", e.Name)
		default:
			m.setStatus("cancelled")
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.sel.Mode() != selection.ModeInactive {
			m.sel.Reset()
			m.setStatus("Selection cancelled")
		} else if m.showOutput {
			m.showOutput = false
		}

	case "j", "down":
		if m.sel.Active() {
			m.sel.Move(1, len(m.previewLines))
			m.ensureLineVisible(m.sel.MovingLine())
		} else {
			m.moveCursor(1)
		}

	case "k", "up":
		if m.sel.Active() {
			m.sel.Move(-1, len(m.previewLines))
			m.ensureLineVisible(m.sel.MovingLine())
		} else {
			m.moveCursor(-1)
		}

	case "g":
		m.moveCursor(-len(m.entries))

	case "G":
		m.moveCursor(len(m.entries))

	case "pgdown":
		m.moveCursor(m.listHeight() / 2)

	case "pgup":
		m.moveCursor(-m.listHeight() / 2)

	case "h", "left":
		m.goParent()

	case "l", "right", "enter":
		e := m.currentEntry()
		if e == nil {
			return m, nil
		}
		if e.IsDir() {
			m.enterSelected()
			return m, nil
		}
		return m.openEntry(*e)

	case "v", "V":
		return m.toggleSelection()

	case "ctrl+d":
		m.scrollHalfPage(1)

	case "ctrl+u":
		m.scrollHalfPage(-1)

	case "d", "y", "m":
		m.pendingKey = key

	case "P":
		m.performPaste()

	case "o":
		if len(m.lastOutput) == 0 {
			m.setStatus("no output to show")
		} else {
			m.showOutput = !m.showOutput
		}

	case "r":
		m.loadEntries()
		m.setStatus("Refreshed")

	case "~":
		if home, err := os.UserHomeDir(); err == nil {
			m.setCwd(home)
		}

	case ".":
		m.cfg.ShowHidden = !m.cfg.ShowHidden
		config.Save(m.cfg)
		m.loadEntries()
		if m.cfg.ShowHidden {
			m.setStatus("Showing hidden files")
		} else {
			m.setStatus("Hiding hidden files")
		}

	case "R":
		if e := m.currentEntry(); e != nil {
			m.mode = modeRename
			m.textInput.SetValue(e.Name)
			m.textInput.Placeholder = ""
			m.textInput.Focus()
			return m, textinput.Blink
		}

	case "N":
		m.mode = modeCreateFile
		m.textInput.SetValue("")
		m.textInput.Placeholder = "Enter filename..."
		m.textInput.Focus()
		return m, textinput.Blink

	case "M":
		m.mode = modeCreateDir
		m.textInput.SetValue("")
		m.textInput.Placeholder = "Enter directory name..."
		m.textInput.Focus()
		return m, textinput.Blink

	case ":", "p":
		m.mode = modeCommand
		m.textInput.SetValue("")
		m.textInput.Placeholder = "cd <path> | ls | catlsr | rm/mv/cp/mkdir/touch/chmod | quit"
		m.textInput.Focus()
		return m, textinput.Blink

	case "/":
		m.startSearch(searchFiles, "Fuzzy file search...")
		return m, textinput.Blink

	case "?":
		m.startSearch(searchLines, "Search file contents...")
		return m, textinput.Blink

	case "H":
		m.mode = modeHelp
	}

	return m, nil
}

// toggleSelection implements the v/V visual flow: first press anchors a
// range, second press commits it to the clipboard.
func (m model) toggleSelection() (tea.Model, tea.Cmd) {
	e := m.currentEntry()
	if e == nil || !e.IsTextFile() || len(m.previewLines) == 0 {
		m.setStatus("Visual mode only for text files")
		return m, nil
	}

	if !m.sel.Active() {
		line := m.sel.CursorLine()
		if line == 0 {
			line = m.previewScroll + 1
		}
		m.sel.Start(line, len(m.previewLines))
		m.setStatus("VISUAL MODE - move cursor, press v/V again or Esc when done")
		return m, nil
	}

	text, ok := m.sel.Commit(m.previewLines)
	if !ok {
		return m, nil
	}
	if err := clipboard.Write(text); err != nil {
		m.setStatus("Copy failed: %v", err)
	} else {
		m.setStatus("Copied to clipboard")
	}
	return m, nil
}

func (m *model) scrollHalfPage(dir int) {
	step := m.paneHeight() / 2
	if step < 1 {
		step = 1
	}
	if m.showOutput {
		m.scrollOutput(dir * step)
	} else {
		m.scrollPreview(dir * step)
	}
}

func (m *model) scrollOutput(delta int) {
	m.outputScroll += delta
	max := len(m.lastOutput) - m.paneHeight()
	if max < 0 {
		max = 0
	}
	if m.outputScroll > max {
		m.outputScroll = max
	}
	if m.outputScroll < 0 {
		m.outputScroll = 0
	}
}

func (m *model) performPaste() {
	if m.pastePath == "" || m.pasteOp == opNone {
		m.setStatus("nothing to paste")
		return
	}
	if _, err := os.Lstat(m.pastePath); err != nil {
		m.setStatus("paste failed: source missing")
		return
	}

	var dest string
	var err error
	switch m.pasteOp {
	case opCopy:
		dest, err = fileops.Paste(m.pastePath, m.cwd)
	case opMove:
		dest, err = fileops.Move(m.pastePath, m.cwd)
		if err == nil {
			m.pastePath = ""
			m.pasteOp = opNone
		}
	}
	if err != nil {
		m.setStatus("paste failed: %v", err)
	} else {
		m.setStatus("pasted as %s", filepath.Base(dest))
	}
	m.loadEntries()
}

func (m model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := fileops.Delete(m.deleteTarget.Path); err != nil {
			m.setStatus("delete failed: %v", err)
		} else {
			m.setStatus("deleted %s", m.deleteTarget.Name)
		}
		m.mode = modeBrowser
		m.loadEntries()
	default:
		m.mode = modeBrowser
		m.setStatus("cancelled")
	}
	return m, nil
}

func (m model) handleTextEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowser
		m.textInput.SetValue("")
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.textInput.Value())
		if name != "" {
			var err error
			switch m.mode {
			case modeRename:
				if e := m.currentEntry(); e != nil {
					err = fileops.Rename(e.Path, name)
				}
			case modeCreateFile:
				err = fileops.CreateFile(m.cwd, name)
			case modeCreateDir:
				err = fileops.CreateDir(m.cwd, name)
			}
			if err != nil {
				m.setStatus("Error: %v", err)
			} else {
				m.setStatus("OK: %s", name)
			}
			m.loadEntries()
		}
		m.mode = modeBrowser
		m.textInput.SetValue("")
		return m, nil
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
}

func (m model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowser
		m.textInput.SetValue("")
		return m, nil
	case "enter":
		line := strings.TrimSpace(m.textInput.Value())
		m.mode = modeBrowser
		m.textInput.SetValue("")
		return m.executeCommand(line)
	default:
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
}

func (m model) executeCommand(line string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return m, tea.Quit

	case "ls":
		m.loadEntries()
		m.setStatus("ls")

	case "cd":
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		m.commandCd(target)

	case "catlsr":
		txt := bundle.Generate(m.cwd, m.rules)
		m.lastOutput = strings.Split(txt, "\n")
		m.outputScroll = 0
		m.showOutput = true
		if err := clipboard.Write(txt); err != nil {
			m.setStatus("[warning] clipboard failed: %v", err)
		} else {
			m.setStatus("[copied to clipboard]")
		}

	case "help":
		m.setStatus("Commands: cd <path>, ls, catlsr, rm, mv, cp, rename, mkdir, touch, chmod, quit")

	case "mkdir":
		m.runFileVerb(args, 1, func(a []string) error { return fileops.CreateDir(m.cwd, a[0]) })

	case "touch":
		m.runFileVerb(args, 1, func(a []string) error { return fileops.CreateFile(m.cwd, a[0]) })

	case "rm":
		// Destructive, so it arms the same confirmation as dd.
		if len(args) < 1 {
			m.setStatus("missing argument")
			return m, nil
		}
		path := m.resolve(args[0])
		if _, err := os.Lstat(path); err != nil {
			m.setStatus("Error: %v", err)
			return m, nil
		}
		m.deleteTarget = listing.Entry{Path: path, Name: filepath.Base(path)}
		m.mode = modeConfirmDelete
		m.setStatus("Confirm delete %s? (y/n)", m.deleteTarget.Name)

	case "rename":
		m.runFileVerb(args, 2, func(a []string) error { return fileops.Rename(m.resolve(a[0]), a[1]) })

	case "mv":
		m.runFileVerb(args, 2, func(a []string) error {
			_, err := fileops.Move(m.resolve(a[0]), m.resolve(a[1]))
			return err
		})

	case "cp":
		m.runFileVerb(args, 2, func(a []string) error {
			_, err := fileops.Paste(m.resolve(a[0]), m.resolve(a[1]))
			return err
		})

	case "chmod":
		m.runFileVerb(args, 2, func(a []string) error { return fileops.Chmod(m.resolve(a[1]), a[0]) })

	default:
		m.setStatus("Unknown: %s", cmd)
	}
	return m, nil
}

func (m *model) commandCd(target string) {
	if target == "" || target == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.setStatus("cd failed: %v", err)
			return
		}
		target = home
	}
	dir := m.resolve(target)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		m.setStatus("Not a dir: %s", dir)
		return
	}
	m.setCwd(dir)
	m.setStatus("cd -> %s", m.cwd)
}

// runFileVerb runs a filesystem command with an arity check, surfaces
// the result as status text, and always reloads the listing.
func (m *model) runFileVerb(args []string, want int, fn func([]string) error) {
	if len(args) < want {
		m.setStatus("missing argument")
		return
	}
	if err := fn(args); err != nil {
		m.setStatus("Error: %v", err)
	} else {
		m.setStatus("OK")
	}
	m.loadEntries()
}

func (m *model) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.cwd, path)
}

func (m *model) startSearch(kind searchKind, placeholder string) {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	ti.Placeholder = placeholder
	ti.Focus()

	m.search = searchSession{kind: kind, input: ti}
	if kind == searchFiles {
		m.mode = modeFileSearch
	} else {
		m.mode = modeLineSearch
	}
}

func (m model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.committed {
		switch msg.String() {
		case "esc", "q":
			m.mode = modeBrowser
			m.search = searchSession{}
		case "j", "down":
			if m.search.cursor < m.search.resultCount()-1 {
				m.search.cursor++
			}
		case "k", "up":
			if m.search.cursor > 0 {
				m.search.cursor--
			}
		case "enter", "o":
			return m.commitSearchResult()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.mode = modeBrowser
		m.search = searchSession{}
		return m, nil
	case "enter":
		m.runSearch()
		return m, nil
	default:
		var cmd tea.Cmd
		m.search.input, cmd = m.search.input.Update(msg)
		return m, cmd
	}
}

// runSearch ranks the whole tree against the committed query. Results
// are frozen; the cursor then navigates them.
func (m *model) runSearch() {
	query := strings.TrimSpace(m.search.input.Value())
	if query == "" {
		return
	}
	if m.search.kind == searchFiles {
		m.search.fileResults = fuzzy.SearchFiles(m.cwd, query, m.rules, m.cfg.MaxLineResults)
	} else {
		m.search.lineResults = fuzzy.SearchLines(m.cwd, query, m.rules, m.cfg.MaxLineResults)
	}
	m.search.committed = true
	m.search.cursor = 0
	m.setStatus("Found %d results", m.search.resultCount())
}

// commitSearchResult jumps to the chosen result. File results open in
// the editor; line results land the preview on the matched line.
func (m model) commitSearchResult() (tea.Model, tea.Cmd) {
	if m.search.resultCount() == 0 {
		return m, nil
	}

	var rel string
	var line int
	if m.search.kind == searchFiles {
		rel = m.search.fileResults[m.search.cursor].Candidate
	} else {
		r := m.search.lineResults[m.search.cursor]
		rel = r.Path
		line = r.Line
	}

	full := filepath.Join(m.cwd, rel)
	kind := m.search.kind
	m.mode = modeBrowser
	m.search = searchSession{}

	m.jumpTo(full, line)
	if kind == searchFiles {
		if e := m.currentEntry(); e != nil && !e.IsDir() {
			return m.openEntry(*e)
		}
	}
	return m, nil
}

// jumpTo selects path in its containing directory, matching by resolved
// identity rather than name so symlinked paths still land. line > 0
// additionally seeds the preview cursor and scroll.
func (m *model) jumpTo(path string, line int) {
	dir := filepath.Dir(path)
	if dir != m.cwd {
		m.setCwd(dir)
	}
	if idx := listing.IndexOfPath(m.entries, path); idx >= 0 {
		m.cursor = idx
		m.ensureCursorVisible()
		m.refreshPreview()
	}
	if line > 0 && len(m.previewLines) > 0 {
		m.sel.SetCursor(line, len(m.previewLines))
		m.ensureLineVisible(line)
	}
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.X < m.listWidth() {
			m.moveCursor(-1)
		} else {
			m.scrollPreview(-3)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if msg.X < m.listWidth() {
			m.moveCursor(1)
		} else {
			m.scrollPreview(3)
		}
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	row := msg.Y - 1 // header row
	if row < 0 || row >= m.paneHeight() {
		return m, nil
	}

	if msg.X < m.listWidth() {
		idx := m.top + row
		if idx < len(m.entries) {
			m.cursor = idx
			m.refreshPreview()
		}
		return m, nil
	}

	// Preview click: place the cursor line, or drag the moving end when a
	// range is active.
	e := m.currentEntry()
	if e == nil || !e.IsTextFile() || len(m.previewLines) == 0 {
		return m, nil
	}
	line := m.previewScroll + row + 1
	if line > len(m.previewLines) {
		line = len(m.previewLines)
	}
	if m.sel.Active() {
		m.sel.Click(line, len(m.previewLines))
	} else {
		m.sel.SetCursor(line, len(m.previewLines))
	}
	return m, nil
}
