// Package ignore decides which paths are excluded from listings, searches
// and project bundling. Rules combine a fixed built-in deny-list with the
// gitignore patterns of the root being walked; a leading "!" re-includes.
package ignore

import (
	"os"
	"path/filepath"
	"strings"
)

// Built-in deny lists, matched against the base name of a path.
var (
	ignoreDirs = map[string]bool{
		"__pycache__": true, "node_modules": true, ".git": true, ".hg": true,
		".svn": true, ".venv": true, "venv": true, "env": true, ".idea": true,
		".vscode": true, ".pytest_cache": true, "dist": true, "build": true,
		"target": true, "vendor": true,
	}

	ignorePatterns = []string{
		"*.pyc", "*.pyo", "*.pyd", "*.so", "*.dll", "*.exe", "*.class",
		"*.jar", "*.lock", "*.log", "*.db", "*.sqlite", "*.bak", "*.tmp",
		"*.DS_Store",
	}

	ignoreNames = map[string]bool{
		"Thumbs.db": true,
	}
)

// Rules holds the ignore decisions for one root directory.
type Rules struct {
	gitignore []string
}

// Load builds the rules for root, reading its .gitignore when present.
// A missing or unreadable .gitignore simply yields the built-in rules.
func Load(root string) *Rules {
	r := &Rules{}

	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return r
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		r.gitignore = append(r.gitignore, line)
	}
	return r
}

// Match reports whether the entry named name (a path base) should be
// skipped. isDir selects the directory deny-list. Gitignore patterns are
// checked in file order with the last matching pattern deciding, so a
// negation ("!pattern") re-includes a name an earlier pattern excluded.
func (r *Rules) Match(name string, isDir bool) bool {
	if isDir && ignoreDirs[name] {
		return true
	}
	if ignoreNames[name] {
		return true
	}
	for _, pat := range ignorePatterns {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	skip := false
	for _, pat := range r.gitignore {
		neg := strings.HasPrefix(pat, "!")
		pattern := strings.TrimPrefix(pat, "!")
		pattern = strings.TrimSuffix(pattern, "/")
		if ok, _ := filepath.Match(pattern, name); ok {
			skip = !neg
		}
	}
	return skip
}
