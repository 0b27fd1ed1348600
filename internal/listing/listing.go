// Package listing produces ordered directory snapshots for the browser
// pane. A snapshot is immutable once taken; callers replace the whole
// slice on reload rather than patching entries.
package listing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agamurian/fiander/internal/filetype"
)

// Kind tags what an Entry points at.
type Kind int

const (
	KindDir Kind = iota
	KindSymlinkDir
	KindText
	KindBinary
	KindMissing
)

// Entry is one filesystem node in a directory snapshot.
type Entry struct {
	Path string // absolute
	Name string
	Kind Kind
}

// IsDir reports whether the entry can be entered.
func (e Entry) IsDir() bool {
	return e.Kind == KindDir || e.Kind == KindSymlinkDir
}

// IsTextFile reports whether the entry can be previewed and selected.
func (e Entry) IsTextFile() bool {
	return e.Kind == KindText
}

// List returns the snapshot of dir: directories before files, each group
// in case-insensitive name order.
func List(dir string) ([]Entry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		path := filepath.Join(dir, d.Name())
		entries = append(entries, Entry{
			Path: path,
			Name: d.Name(),
			Kind: classify(path, d),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

func classify(path string, d os.DirEntry) Kind {
	if d.Type()&os.ModeSymlink != 0 {
		// Follow the link to see what it points at
		info, err := os.Stat(path)
		if err != nil {
			return KindMissing
		}
		if info.IsDir() {
			return KindSymlinkDir
		}
	} else if d.IsDir() {
		return KindDir
	}

	if filetype.IsText(path) {
		return KindText
	}
	return KindBinary
}

// Names returns the ordered name sequence of a snapshot. Two snapshots of
// the same directory are considered unchanged when their name sequences
// are equal; the poll-driven reconciliation compares these.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// SameNames reports whether two ordered name sequences are identical.
func SameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// IndexOfName returns the position of name in entries, or -1.
func IndexOfName(entries []Entry, name string) int {
	for i, e := range entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// IndexOfPath returns the position of the entry whose resolved absolute
// path equals path, or -1. Identity comparison survives symlink
// differences between how a path was found and how it is listed.
func IndexOfPath(entries []Entry, path string) int {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = path
	}
	for i, e := range entries {
		candidate, err := filepath.EvalSymlinks(e.Path)
		if err != nil {
			candidate = e.Path
		}
		if candidate == resolved {
			return i
		}
	}
	return -1
}
