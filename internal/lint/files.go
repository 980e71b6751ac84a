package lint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// extensions lists the file types picked up when walking directories or
// expanding globs.
var extensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".html":     true,
	".htm":      true,
}

// IsDocument reports whether path has one of the analyzable extensions.
func IsDocument(path string) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// ResolveOpts controls how file resolution behaves.
type ResolveOpts struct {
	// Exclude is a list of gobwas/glob patterns. Matching files are
	// dropped and matching directories are not descended into.
	// Explicitly named files are never excluded.
	Exclude []string

	// UseGitignore drops walked and globbed paths that .gitignore files
	// ignore. Explicitly named files are kept.
	UseGitignore bool
}

// ResolveFiles takes positional arguments and returns deduplicated, sorted
// document paths. It supports individual files, directories (recursive)
// and doublestar glob patterns such as "docs/**/*.md". Returns an error
// for nonexistent paths that are not glob patterns.
func ResolveFiles(args []string) ([]string, error) {
	return ResolveFilesWithOpts(args, ResolveOpts{})
}

// ResolveFilesWithOpts is like ResolveFiles but applies opts.
func ResolveFilesWithOpts(args []string, opts ResolveOpts) ([]string, error) {
	exclude, err := CompileGlobs(opts.Exclude)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		exclude:   exclude,
		gitignore: opts.UseGitignore,
		seen:      make(map[string]bool),
	}
	for _, arg := range args {
		if err := r.resolveArg(arg); err != nil {
			return nil, err
		}
	}

	sort.Strings(r.result)
	return r.result, nil
}

type resolver struct {
	exclude   GlobSet
	gitignore bool
	seen      map[string]bool
	result    []string
}

func (r *resolver) addFile(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if !r.seen[abs] {
		r.seen[abs] = true
		r.result = append(r.result, path)
	}
}

// resolveArg resolves a single argument (glob, directory or file).
func (r *resolver) resolveArg(arg string) error {
	if hasGlobChars(arg) {
		return r.resolveGlob(arg)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return fmt.Errorf("cannot access %q: %w", arg, err)
	}
	if info.IsDir() {
		return r.walkDir(arg)
	}
	r.addFile(arg)
	return nil
}

// resolveGlob expands a doublestar pattern and adds matching documents.
// Matched directories are walked.
func (r *resolver) resolveGlob(pattern string) error {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	for _, m := range matches {
		if r.exclude.Match(m) {
			continue
		}
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if r.gitignore && LoadGitignore(filepath.Dir(m)).Ignored(m, info.IsDir()) {
			continue
		}
		if info.IsDir() {
			if err := r.walkDir(m); err != nil {
				return err
			}
		} else if IsDocument(m) {
			r.addFile(m)
		}
	}
	return nil
}

// walkDir recursively adds every document below dir. The .git directory
// is never entered.
func (r *resolver) walkDir(dir string) error {
	var ignore *Gitignore
	if r.gitignore {
		ignore = LoadGitignore(dir)
	}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if d.IsDir() && d.Name() == ".git" {
			return filepath.SkipDir
		}
		if r.exclude.MatchWalked(dir, path, d.IsDir()) || ignore.Ignored(path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			ignore.Enter(path)
			return nil
		}
		if IsDocument(path) {
			r.addFile(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory %q: %w", dir, err)
	}
	return nil
}

func hasGlobChars(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// GlobSet is a compiled list of gobwas/glob patterns.
type GlobSet []glob.Glob

// CompileGlobs compiles patterns with '/' as the separator.
func CompileGlobs(patterns []string) (GlobSet, error) {
	set := make(GlobSet, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		set = append(set, g)
	}
	return set, nil
}

// Match reports whether path, its cleaned form or its base name matches
// any pattern in the set.
func (s GlobSet) Match(path string) bool {
	if len(s) == 0 {
		return false
	}
	return s.matchAny(
		filepath.ToSlash(path),
		filepath.ToSlash(filepath.Clean(path)),
		filepath.Base(path),
	)
}

// MatchWalked is Match that also tries path relative to the walk root,
// and with a trailing slash for directories so that "vendor/**" prunes
// "vendor".
func (s GlobSet) MatchWalked(root, path string, isDir bool) bool {
	if s.Match(path) {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if isDir {
		return s.matchAny(rel, rel+"/")
	}
	return s.matchAny(rel)
}

func (s GlobSet) matchAny(candidates ...string) bool {
	for _, g := range s {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}
