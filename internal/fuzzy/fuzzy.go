// Package fuzzy scores and ranks candidates for the two search modes:
// subsequence-scored file-name search and substring line-content search.
// Both are pure functions over a snapshot of the tree; no state survives
// a query.
package fuzzy

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agamurian/fiander/internal/filetype"
	"github.com/agamurian/fiander/internal/ignore"
	"github.com/agamurian/fiander/internal/logger"
)

// MaxLineResults bounds content search on large trees.
const MaxLineResults = 2000

// Match is one ranked file-name candidate.
type Match struct {
	Candidate string
	Score     float64
}

// LineResult is one content-search hit.
type LineResult struct {
	Path string // relative to the search root
	Line int    // 1-based
	Text string // matched line, whitespace-trimmed
}

// Score rates how well query matches candidate as a case-insensitive
// subsequence. The result is len(query)/span where span covers the first
// through last matched character, so tighter matches score higher; 0
// means query is not a subsequence of candidate at all. Empty queries
// match nothing.
func Score(candidate, query string) float64 {
	if query == "" {
		return 0
	}

	c := []rune(strings.ToLower(candidate))
	q := []rune(strings.ToLower(query))

	first, last := -1, -1
	qi := 0
	for ci := 0; ci < len(c) && qi < len(q); ci++ {
		if c[ci] != q[qi] {
			continue
		}
		if qi == 0 {
			first = ci
		}
		last = ci
		qi++
	}
	if qi < len(q) {
		return 0
	}

	span := last - first + 1
	return float64(len(q)) / float64(span)
}

// Rank orders candidates by descending Score, dropping non-matches and
// breaking ties by lexical candidate order. A limit <= 0 means no limit.
func Rank(candidates []string, query string, limit int) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, cand := range candidates {
		if s := Score(cand, query); s > 0 {
			matches = append(matches, Match{Candidate: cand, Score: s})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Candidate < matches[j].Candidate
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// SearchFiles ranks every non-ignored file path under root against
// query. Directories are traversed but are not candidates themselves;
// candidates are root-relative paths.
func SearchFiles(root, query string, rules *ignore.Rules, limit int) []Match {
	return Rank(collectFiles(root, rules), query, limit)
}

func collectFiles(root string, rules *ignore.Rules) []string {
	var paths []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("search walk: %v", err)
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
		if !d.IsDir() {
			paths = append(paths, rel)
		}
		return nil
	})
	return paths
}

// SearchLines returns every line of every non-ignored text file under
// root that contains query, case-insensitively. Results are capped at
// limit (MaxLineResults when limit <= 0) to bound latency on large
// trees.
func SearchLines(root, query string, rules *ignore.Rules, limit int) []LineResult {
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = MaxLineResults
	}

	needle := strings.ToLower(query)
	var results []LineResult

	for _, rel := range collectFiles(root, rules) {
		if len(results) >= limit {
			break
		}
		full := filepath.Join(root, rel)
		if !filetype.IsText(full) {
			continue
		}
		results = append(results, grepFile(full, rel, needle, limit-len(results))...)
	}
	return results
}

func grepFile(path, rel, needle string, remaining int) []LineResult {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("content search: %v", err)
		return nil
	}
	defer f.Close()

	var hits []LineResult
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if len(hits) >= remaining {
			break
		}
		line := scanner.Text()
		if strings.Contains(strings.ToLower(line), needle) {
			hits = append(hits, LineResult{
				Path: rel,
				Line: lineNum,
				Text: strings.TrimSpace(line),
			})
		}
	}
	return hits
}
