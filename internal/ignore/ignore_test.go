package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMatchBuiltins(t *testing.T) {
	r := Load(t.TempDir())

	tests := []struct {
		name  string
		isDir bool
		want  bool
	}{
		{"node_modules", true, true},
		{"node_modules", false, false}, // dir deny-list only applies to dirs
		{"__pycache__", true, true},
		{"main.pyc", false, true},
		{"app.log", false, true},
		{"Thumbs.db", false, true},
		{"main.go", false, false},
		{"src", true, false},
	}

	for _, tt := range tests {
		if got := r.Match(tt.name, tt.isDir); got != tt.want {
			t.Errorf("Match(%q, isDir=%v) = %v, want %v", tt.name, tt.isDir, got, tt.want)
		}
	}
}

func TestMatchGitignore(t *testing.T) {
	dir := t.TempDir()
	gitignore := "# build artifacts\n*.out\nsecret.txt\n!keep.out\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0644); err != nil {
		t.Fatal(err)
	}

	r := Load(dir)

	if !r.Match("a.out", false) {
		t.Error("*.out should be ignored via .gitignore")
	}
	if !r.Match("secret.txt", false) {
		t.Error("secret.txt should be ignored via .gitignore")
	}
	if r.Match("keep.out", false) {
		t.Error("!keep.out negation should re-include keep.out")
	}
	if r.Match("notes.txt", false) {
		t.Error("notes.txt should not be ignored")
	}
}

func TestMatchGitignoreLastMatchWins(t *testing.T) {
	dir := t.TempDir()
	// A later *.out overrides the earlier negation.
	gitignore := "!keep.out\n*.out\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0644); err != nil {
		t.Fatal(err)
	}

	r := Load(dir)

	if !r.Match("keep.out", false) {
		t.Error("later *.out should override the earlier !keep.out")
	}
	if !r.Match("a.out", false) {
		t.Error("a.out should be ignored")
	}
}

func TestLoadMissingGitignore(t *testing.T) {
	r := Load(filepath.Join(t.TempDir(), "nonexistent"))
	if r.Match("main.go", false) {
		t.Error("missing .gitignore should fall back to builtin rules only")
	}
}
