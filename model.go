package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/agamurian/fiander/internal/config"
	"github.com/agamurian/fiander/internal/fuzzy"
	"github.com/agamurian/fiander/internal/ignore"
	"github.com/agamurian/fiander/internal/listing"
	"github.com/agamurian/fiander/internal/logger"
	"github.com/agamurian/fiander/internal/preview"
	"github.com/agamurian/fiander/internal/selection"
	"github.com/agamurian/fiander/internal/viewport"
)

type mode int

const (
	modeBrowser mode = iota
	modeConfirmDelete
	modeRename
	modeCreateFile
	modeCreateDir
	modeCommand
	modeFileSearch
	modeLineSearch
	modeHelp
)

type pasteOp int

const (
	opNone pasteOp = iota
	opCopy
	opMove
)

const (
	pollInterval = 800 * time.Millisecond
	minWidth     = 60
	minHeight    = 8
	statusTTL    = 3 * time.Second
)

// position is the remembered (cursor, top) pair for one directory.
type position struct {
	cursor int
	top    int
}

type searchKind int

const (
	searchFiles searchKind = iota
	searchLines
)

// searchSession holds one in-flight search. It is rebuilt from scratch
// every time search mode is entered and torn down on commit or cancel.
type searchSession struct {
	kind        searchKind
	input       textinput.Model
	fileResults []fuzzy.Match
	lineResults []fuzzy.LineResult
	cursor      int
	committed   bool // results are frozen, cursor navigates them
}

func (s *searchSession) resultCount() int {
	if s.kind == searchFiles {
		return len(s.fileResults)
	}
	return len(s.lineResults)
}

type model struct {
	cfg   *config.Config
	rules *ignore.Rules

	mode mode
	cwd  string

	entries []listing.Entry
	cursor  int
	top     int

	posMemory map[string]position

	width  int
	height int

	statusMsg    string
	statusExpiry time.Time

	// Two-key chords (dd, yy, mm). Holds the first key until the second
	// arrives or anything else cancels it.
	pendingKey string

	// Armed destructive op awaiting y/n.
	deleteTarget listing.Entry

	// File clipboard for yy/mm + P.
	pastePath string
	pasteOp   pasteOp

	// Preview state for the entry under the cursor.
	previewPath      string
	previewLines     []string
	previewTruncated bool
	previewScroll    int
	sel              selection.Selection

	renderer preview.Renderer

	textInput textinput.Model // rename / create / command prompt
	search    searchSession

	// Output pane (command + bundle output), toggled over the preview.
	lastOutput   []string
	showOutput   bool
	outputScroll int

	lastPoll time.Time
}

func initialModel(cfg *config.Config) model {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "/"
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := model{
		cfg:       cfg,
		mode:      modeBrowser,
		cwd:       cwd,
		posMemory: make(map[string]position),
		renderer:  preview.Renderer{Style: cfg.Theme},
		textInput: ti,
		lastPoll:  time.Now(),
	}
	m.rules = ignore.Load(cwd)
	m.loadEntries()
	return m
}

// loadEntries re-lists cwd, clamps the cursor and refreshes the preview.
func (m *model) loadEntries() {
	entries, err := listing.List(m.cwd)
	if err != nil {
		m.setStatus("Error reading directory: %v", err)
		m.entries = nil
		m.cursor = 0
		m.top = 0
		return
	}

	m.entries = m.filterHidden(entries)
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.top = viewport.ClampTop(m.top, m.listHeight(), len(m.entries))
	m.previewPath = "" // a reload always re-reads the preview target
	m.refreshPreview()
}

func (m *model) filterHidden(entries []listing.Entry) []listing.Entry {
	if m.cfg.ShowHidden {
		return entries
	}
	kept := entries[:0]
	for _, e := range entries {
		if !strings.HasPrefix(e.Name, ".") {
			kept = append(kept, e)
		}
	}
	return kept
}

// setCwd switches the browser to dir, remembering the position of the
// directory being left and restoring any remembered position for dir.
func (m *model) setCwd(dir string) {
	m.posMemory[m.cwd] = position{cursor: m.cursor, top: m.top}

	m.cwd = dir
	m.rules = ignore.Load(dir)
	m.showOutput = false

	if pos, ok := m.posMemory[dir]; ok {
		m.cursor = pos.cursor
		m.top = pos.top
	} else {
		m.cursor = 0
		m.top = 0
	}
	m.loadEntries()
}

// enterSelected descends into the directory under the cursor.
func (m *model) enterSelected() {
	e := m.currentEntry()
	if e == nil || !e.IsDir() {
		return
	}
	m.setCwd(e.Path)
	m.setStatus("cd -> %s", m.cwd)
}

// goParent ascends one level and re-selects the child just exited,
// overriding any remembered position. The parent of the filesystem root
// is a no-op.
func (m *model) goParent() {
	parent := filepath.Dir(m.cwd)
	if parent == m.cwd {
		return
	}
	child := m.cwd
	m.setCwd(parent)

	if idx := listing.IndexOfPath(m.entries, child); idx >= 0 {
		m.cursor = idx
		m.ensureCursorVisible()
		m.refreshPreview()
	}
	m.setStatus("cd -> %s", m.cwd)
}

// reconcile re-lists cwd when the on-disk name sequence has drifted from
// the in-memory one, restoring the cursor by name where possible.
func (m *model) reconcile() {
	fresh, err := listing.List(m.cwd)
	if err != nil {
		// The directory itself vanished; climb until one exists.
		logger.Warn("reconcile %s: %v", m.cwd, err)
		for m.cwd != "/" {
			m.cwd = filepath.Dir(m.cwd)
			if _, err := os.Stat(m.cwd); err == nil {
				break
			}
		}
		m.cursor = 0
		m.top = 0
		m.loadEntries()
		return
	}

	fresh = m.filterHidden(fresh)
	if listing.SameNames(listing.Names(m.entries), listing.Names(fresh)) {
		return
	}

	var selectedName string
	if e := m.currentEntry(); e != nil {
		selectedName = e.Name
	}

	m.entries = fresh
	if idx := listing.IndexOfName(m.entries, selectedName); idx >= 0 {
		m.cursor = idx
	} else if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
	m.previewPath = ""
	m.refreshPreview()
}

func (m *model) currentEntry() *listing.Entry {
	if len(m.entries) == 0 || m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return &m.entries[m.cursor]
}

// moveCursor steps the browser cursor by delta, dropping any per-file
// preview state from the previous entry.
func (m *model) moveCursor(delta int) {
	if len(m.entries) == 0 {
		return
	}
	next := m.cursor + delta
	if next < 0 {
		next = 0
	}
	if next > len(m.entries)-1 {
		next = len(m.entries) - 1
	}
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.ensureCursorVisible()
	m.refreshPreview()
}

func (m *model) ensureCursorVisible() {
	m.top = viewport.EnsureVisible(m.cursor, m.top, m.listHeight(), viewport.DefaultScrolloff, len(m.entries))
}

// refreshPreview reloads the preview buffer for the entry under the
// cursor. Selection and scroll are per-file and do not survive a target
// change.
func (m *model) refreshPreview() {
	e := m.currentEntry()
	if e == nil {
		m.previewPath = ""
		m.previewLines = nil
		m.previewScroll = 0
		m.sel.Reset()
		return
	}
	if e.Path == m.previewPath {
		return
	}

	m.previewPath = e.Path
	m.previewScroll = 0
	m.sel.Reset()
	m.previewLines = nil
	m.previewTruncated = false

	if e.IsTextFile() {
		lines, truncated, err := preview.ReadLines(e.Path)
		if err != nil {
			logger.Warn("preview %s: %v", e.Path, err)
			return
		}
		m.previewLines = lines
		m.previewTruncated = truncated
	}
}

// scrollPreview moves the preview window by delta rows, clamped to the
// loaded line range.
func (m *model) scrollPreview(delta int) {
	if len(m.previewLines) == 0 {
		return
	}
	m.previewScroll += delta
	max := len(m.previewLines) - m.paneHeight()
	if max < 0 {
		max = 0
	}
	if m.previewScroll > max {
		m.previewScroll = max
	}
	if m.previewScroll < 0 {
		m.previewScroll = 0
	}
}

// ensureLineVisible auto-scrolls the preview so the selection's moving
// line stays inside the visible band.
func (m *model) ensureLineVisible(line int) {
	m.previewScroll = viewport.EnsureVisible(line-1, m.previewScroll, m.paneHeight(), viewport.DefaultScrolloff, len(m.previewLines))
}

func (m *model) setStatus(format string, args ...interface{}) {
	m.statusMsg = fmt.Sprintf(format, args...)
	m.statusExpiry = time.Now().Add(statusTTL)
}

// Layout: header + two panes + status + prompt.
func (m *model) paneHeight() int {
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m *model) listHeight() int {
	return m.paneHeight()
}

func (m *model) listWidth() int {
	w := m.width / 3
	if w < 20 {
		w = 20
	}
	return w
}

func (m *model) previewWidth() int {
	w := m.width - m.listWidth()
	if w < 1 {
		w = 1
	}
	return w
}
