package lint

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestResolveFiles_SingleFile(t *testing.T) {
	dir := t.TempDir()
	mdFile := filepath.Join(dir, "test.md")
	if err := os.WriteFile(mdFile, []byte("# Hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ResolveFiles([]string{mdFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0] != mdFile {
		t.Errorf("expected %q, got %q", mdFile, files[0])
	}
}

func TestResolveFiles_NonDocumentFile(t *testing.T) {
	dir := t.TempDir()
	goFile := filepath.Join(dir, "main.go")
	if err := os.WriteFile(goFile, []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Other files are still returned when given explicitly as args.
	files, err := ResolveFiles([]string{goFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
}

func TestResolveFiles_Directory(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "sub")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Create markdown files at various levels.
	for _, name := range []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.markdown"),
		filepath.Join(dir, "c.txt"),
		filepath.Join(dir, "e.go"), // should be excluded
		filepath.Join(subDir, "d.md"),
	} {
		if err := os.WriteFile(name, []byte("# Test"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ResolveFiles([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should find a.md, b.markdown, c.txt, sub/d.md (not e.go).
	if len(files) != 4 {
		t.Fatalf("expected 4 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Ext(f) == ".go" {
			t.Errorf("unexpected non-document file: %s", f)
		}
	}
}

func TestResolveFiles_GlobPattern(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.md", "b.md", "c.txt", "d.go"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# Test"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	pattern := filepath.Join(dir, "*.md")
	files, err := ResolveFiles([]string{pattern})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
}

func TestResolveFiles_NonexistentPath(t *testing.T) {
	_, err := ResolveFiles([]string{"/nonexistent/path/file.md"})
	if err == nil {
		t.Fatal("expected error for nonexistent path")
	}
}

func TestResolveFiles_EmptyArgs(t *testing.T) {
	files, err := ResolveFiles([]string{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected 0 files, got %d", len(files))
	}
}

func TestResolveFiles_NilArgs(t *testing.T) {
	files, err := ResolveFiles(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected 0 files, got %d", len(files))
	}
}

func TestResolveFiles_Deduplicated(t *testing.T) {
	dir := t.TempDir()
	mdFile := filepath.Join(dir, "test.md")
	if err := os.WriteFile(mdFile, []byte("# Hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Pass the same file twice.
	files, err := ResolveFiles([]string{mdFile, mdFile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file (deduplicated), got %d", len(files))
	}
}

func TestResolveFiles_Sorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"z.md", "a.md", "m.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("# Test"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ResolveFiles([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("expected sorted files, got %v", files)
	}
}

func TestResolveFiles_MarkdownExtension(t *testing.T) {
	dir := t.TempDir()
	mdFile := filepath.Join(dir, "doc.markdown")
	if err := os.WriteFile(mdFile, []byte("# Hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ResolveFiles([]string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if filepath.Ext(files[0]) != ".markdown" {
		t.Errorf("expected .markdown extension, got %s", filepath.Ext(files[0]))
	}
}

func TestResolveFiles_GlobMatchingDirectory(t *testing.T) {
	dir := t.TempDir()
	subDir := filepath.Join(dir, "docs")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(subDir, "guide.md"), []byte("# Guide"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Glob that matches a directory should recurse into it.
	pattern := filepath.Join(dir, "doc*")
	files, err := ResolveFiles([]string{pattern})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d: %v", len(files), files)
	}
}

func TestResolveFiles_DoublestarPattern(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"docs/intro.md",
		"docs/guide/setup.md",
		"docs/guide/deep/notes.html",
		"docs/guide/deep/data.json",
		"README.md",
	} {
		writeFile(t, filepath.Join(dir, name), "Text.")
	}

	files, err := ResolveFiles([]string{filepath.Join(dir, "docs", "**", "*.{md,html}")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(files), files)
	}
	for _, f := range files {
		if filepath.Base(f) == "README.md" {
			t.Errorf("pattern should not match %s", f)
		}
	}
}

func TestResolveFilesWithOpts_ExcludeDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.md"), "Text.")
	writeFile(t, filepath.Join(dir, "vendor", "lib", "skip.md"), "Text.")

	files, err := ResolveFilesWithOpts([]string{dir}, ResolveOpts{Exclude: []string{"vendor/**"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.md" {
		t.Errorf("got %v, want only keep.md", files)
	}
}

func TestResolveFilesWithOpts_ExcludeBaseName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "Text.")
	writeFile(t, filepath.Join(dir, "CHANGELOG.md"), "Text.")

	files, err := ResolveFilesWithOpts([]string{filepath.Join(dir, "*.md")}, ResolveOpts{Exclude: []string{"CHANGELOG*"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "a.md" {
		t.Errorf("got %v, want only a.md", files)
	}
}

func TestResolveFilesWithOpts_ExplicitFileNotExcluded(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "CHANGELOG.md")
	writeFile(t, path, "Text.")

	files, err := ResolveFilesWithOpts([]string{path}, ResolveOpts{Exclude: []string{"CHANGELOG*"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("got %v, want the explicit file", files)
	}
}

func TestResolveFilesWithOpts_InvalidExclude(t *testing.T) {
	_, err := ResolveFilesWithOpts(nil, ResolveOpts{Exclude: []string{"[unclosed"}})
	if err == nil {
		t.Fatal("expected error for invalid exclude pattern")
	}
}

func TestGlobSet_Match(t *testing.T) {
	set, err := CompileGlobs([]string{"drafts/**", "*.tmp.md"})
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]bool{
		"drafts/a.md":         true,
		"drafts/x/y/b.md":     true,
		"./drafts/a.md":       true,
		"docs/scratch.tmp.md": true,
		"docs/final.md":       false,
	}
	for path, want := range tests {
		if got := set.Match(path); got != want {
			t.Errorf("Match(%q) = %v, want %v", path, got, want)
		}
	}
	if (GlobSet)(nil).Match("anything") {
		t.Error("empty set should match nothing")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
