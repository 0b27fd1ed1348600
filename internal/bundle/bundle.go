// Package bundle builds the catlsr export: every non-ignored text file
// under a directory concatenated into one framed document, ready to be
// pasted into an LLM prompt, with an optional preprompt.txt appended.
package bundle

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agamurian/fiander/internal/filetype"
	"github.com/agamurian/fiander/internal/ignore"
	"github.com/agamurian/fiander/internal/logger"
)

// Splitter frames each file section.
var Splitter = strings.Repeat("-", 69)

// DefaultPreprompt is used when the root has no preprompt.txt.
const DefaultPreprompt = "please analyze this project, add tell how to possibly extend it\n"

// Generate concatenates every non-ignored text file under root into a
// single framed document. Each file is preceded by a splitter frame
// holding its root-relative path; the preprompt goes last in a frame of
// its own. SVG files are skipped even when they read as text.
func Generate(root string, rules *ignore.Rules) string {
	var b strings.Builder
	any := false

	for _, rel := range collectTextFiles(root, rules) {
		any = true
		b.WriteString(Splitter + "\n" + rel + "\n" + Splitter + "\n")
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			logger.Warn("bundle read %s: %v", rel, err)
		} else {
			b.Write(data)
		}
		b.WriteString("\n")
	}
	if !any {
		b.WriteString("[no files found (or all ignored)]\n")
	}

	b.WriteString(Splitter + "\npreprompt.txt (special frame)\n" + Splitter + "\n")
	b.WriteString(readPreprompt(root) + "\n")
	return b.String()
}

func collectTextFiles(root string, rules *ignore.Rules) []string {
	var paths []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		if rules.Match(d.Name(), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".svg") {
			return nil
		}
		if !filetype.IsText(path) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	return paths
}

func readPreprompt(root string) string {
	data, err := os.ReadFile(filepath.Join(root, "preprompt.txt"))
	if err != nil {
		return DefaultPreprompt
	}
	txt := string(data)
	if !strings.HasSuffix(txt, "\n") {
		txt += "\n"
	}
	return txt
}
