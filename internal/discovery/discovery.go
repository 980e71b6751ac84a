// Package discovery finds documents by expanding the file patterns from
// config.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jeduden/readscore/internal/lint"
)

// Options controls how file discovery behaves.
type Options struct {
	// Patterns is the list of doublestar patterns to match files against,
	// relative to BaseDir. An empty or nil list means no files are
	// discovered.
	Patterns []string

	// BaseDir is the directory to walk from. Defaults to "." if empty.
	BaseDir string

	// Exclude prunes matching directories and skips matching files.
	Exclude lint.GlobSet

	// UseGitignore enables filtering by .gitignore rules.
	UseGitignore bool
}

// Discover walks BaseDir and returns files matching any of the configured
// patterns. Results are deduplicated and sorted. The .git directory is
// never entered.
func Discover(opts Options) ([]string, error) {
	if len(opts.Patterns) == 0 {
		return nil, nil
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}

	validPatterns := validatePatterns(opts.Patterns)
	if len(validPatterns) == 0 {
		return nil, nil
	}

	w := &walker{
		base:     baseDir,
		patterns: validPatterns,
		exclude:  opts.Exclude,
		seen:     make(map[string]bool),
	}
	if opts.UseGitignore {
		w.ignore = lint.LoadGitignore(baseDir)
	}

	if err := filepath.WalkDir(baseDir, w.visit); err != nil {
		return nil, err
	}

	sort.Strings(w.result)
	return w.result, nil
}

// validatePatterns returns patterns that are syntactically valid.
func validatePatterns(patterns []string) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

type walker struct {
	base     string
	patterns []string
	exclude  lint.GlobSet
	ignore   *lint.Gitignore
	seen     map[string]bool
	result   []string
}

func (w *walker) visit(path string, d fs.DirEntry, walkErr error) error {
	if walkErr != nil {
		return walkErr
	}

	rel, err := filepath.Rel(w.base, path)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if d.IsDir() {
		if d.Name() == ".git" || w.exclude.MatchWalked(w.base, path, true) || w.ignore.Ignored(path, true) {
			return filepath.SkipDir
		}
		w.ignore.Enter(path)
		return nil
	}

	if w.exclude.MatchWalked(w.base, path, false) || w.ignore.Ignored(path, false) {
		return nil
	}
	if w.matchesAny(rel) {
		w.addFile(path)
	}
	return nil
}

func (w *walker) matchesAny(rel string) bool {
	for _, p := range w.patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *walker) addFile(path string) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if !w.seen[absPath] {
		w.seen[absPath] = true
		w.result = append(w.result, path)
	}
}
