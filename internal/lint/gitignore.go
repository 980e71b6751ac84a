package lint

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Gitignore matches paths against .gitignore files. Rules are kept in
// load order, parents before children, and the last matching rule wins.
// A Gitignore is not safe for concurrent use.
type Gitignore struct {
	rules  []ignoreRule
	loaded map[string]bool
}

type ignoreRule struct {
	// base is the absolute directory holding the .gitignore.
	base    string
	pattern string
	negate  bool
	dirOnly bool
	// anchored patterns match the path relative to base; the others match
	// a single name at any depth.
	anchored bool
}

// LoadGitignore returns the rules that apply inside dir: the .gitignore
// files of dir and of its parents up to the repository root.
func LoadGitignore(dir string) *Gitignore {
	g := &Gitignore{loaded: make(map[string]bool)}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return g
	}

	chain := []string{abs}
	for d := abs; !isRepoRoot(d); {
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		chain = append(chain, parent)
		d = parent
	}
	for i := len(chain) - 1; i >= 0; i-- {
		g.Enter(chain[i])
	}
	return g
}

func isRepoRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Enter loads the .gitignore of dir, once. Walkers call it for every
// directory they descend into.
func (g *Gitignore) Enter(dir string) {
	if g == nil {
		return
	}
	abs, err := filepath.Abs(dir)
	if err != nil || g.loaded[abs] {
		return
	}
	g.loaded[abs] = true
	data, err := os.ReadFile(filepath.Join(abs, ".gitignore"))
	if err != nil {
		return
	}
	g.rules = append(g.rules, parseGitignore(abs, data)...)
}

func parseGitignore(base string, data []byte) []ignoreRule {
	var rules []ignoreRule
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := ignoreRule{base: base}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			r.anchored = true
			line = line[1:]
		} else {
			r.anchored = strings.Contains(line, "/")
		}
		if line == "" || !doublestar.ValidatePattern(line) {
			continue
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// Ignored reports whether path, or a directory above it, is ignored.
func (g *Gitignore) Ignored(path string, isDir bool) bool {
	if g == nil || len(g.rules) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	ignored := false
	for _, r := range g.rules {
		if r.matches(abs, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r ignoreRule) matches(abs string, isDir bool) bool {
	rel, err := filepath.Rel(r.base, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := 1; i <= len(parts); i++ {
		dir := i < len(parts) || isDir
		if r.dirOnly && !dir {
			continue
		}
		if r.matchParts(parts[:i]) {
			return true
		}
	}
	return false
}

func (r ignoreRule) matchParts(parts []string) bool {
	target := parts[len(parts)-1]
	if r.anchored {
		target = strings.Join(parts, "/")
	}
	ok, err := doublestar.Match(r.pattern, target)
	return err == nil && ok
}
