package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jeduden/readscore/internal/config"
	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/log"
	"github.com/jeduden/readscore/internal/rule"
)

// mockRule is a test rule that always reports a diagnostic on line 1.
type mockRule struct {
	id   string
	name string
}

func (r *mockRule) ID() string   { return r.id }
func (r *mockRule) Name() string { return r.name }
func (r *mockRule) Check(f *lint.File) []lint.Diagnostic {
	return []lint.Diagnostic{
		{
			File:     f.Path,
			Line:     1,
			Column:   1,
			RuleID:   r.id,
			RuleName: r.name,
			Severity: lint.Warning,
			Message:  "mock violation",
		},
	}
}

// countingRule counts Check calls and reports nothing.
type countingRule struct {
	calls atomic.Int32
}

func (r *countingRule) ID() string   { return "RDS998" }
func (r *countingRule) Name() string { return "counting" }
func (r *countingRule) Check(_ *lint.File) []lint.Diagnostic {
	r.calls.Add(1)
	return nil
}

// thresholdRule is a configurable test rule.
type thresholdRule struct {
	Max int
}

func (r *thresholdRule) ID() string                           { return "RDS997" }
func (r *thresholdRule) Name() string                         { return "threshold" }
func (r *thresholdRule) Check(_ *lint.File) []lint.Diagnostic { return nil }
func (r *thresholdRule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		if k != "max" {
			return rule.UnknownSetting(r.Name(), k)
		}
		n, err := rule.Int(r.Name(), k, v)
		if err != nil {
			return err
		}
		r.Max = n
	}
	return nil
}
func (r *thresholdRule) DefaultSettings() map[string]any { return map[string]any{"max": 10} }

func writeFiles(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	var paths []string
	for _, name := range names {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("# Hello\n\nSome text.\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestRunner_MockRuleReportsDiagnostics(t *testing.T) {
	paths := writeFiles(t, t.TempDir(), "test.md")

	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{"mock-rule": {Enabled: true}}},
		Rules:  []rule.Rule{&mockRule{id: "RDS999", name: "mock-rule"}},
	}

	result := runner.Run(context.Background(), paths)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Files != 1 {
		t.Errorf("got %d files, want 1", result.Files)
	}
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(result.Diagnostics))
	}
	if d := result.Diagnostics[0]; d.RuleID != "RDS999" || d.Message != "mock violation" {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestRunner_DisabledRuleSkipped(t *testing.T) {
	paths := writeFiles(t, t.TempDir(), "test.md")
	counting := &countingRule{}

	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{"counting": {Enabled: false}}},
		Rules:  []rule.Rule{counting, &mockRule{id: "RDS999", name: "unconfigured"}},
	}

	result := runner.Run(context.Background(), paths)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(result.Diagnostics))
	}
	if n := counting.calls.Load(); n != 0 {
		t.Errorf("disabled rule ran %d times", n)
	}
}

func TestRunner_ParallelFilesSorted(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "e.md", "b.md", "d.md", "a.md", "c.md", "f.txt")
	counting := &countingRule{}

	runner := &Runner{
		Config: &config.Config{
			Concurrency: 3,
			Rules: map[string]config.RuleCfg{
				"mock-rule": {Enabled: true},
				"counting":  {Enabled: true},
			},
		},
		Rules: []rule.Rule{&mockRule{id: "RDS999", name: "mock-rule"}, counting},
	}

	result := runner.Run(context.Background(), paths)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Diagnostics) != 6 {
		t.Fatalf("expected 6 diagnostics, got %d", len(result.Diagnostics))
	}
	for i := 1; i < len(result.Diagnostics); i++ {
		if result.Diagnostics[i-1].File > result.Diagnostics[i].File {
			t.Errorf("diagnostics not sorted: %s before %s",
				result.Diagnostics[i-1].File, result.Diagnostics[i].File)
		}
	}
	if n := counting.calls.Load(); n != 6 {
		t.Errorf("counting rule ran %d times, want 6", n)
	}
}

func TestRunner_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "keep.md", "CHANGELOG.md")
	var buf bytes.Buffer

	runner := &Runner{
		Config: &config.Config{
			Exclude: []string{"CHANGELOG.md"},
			Rules:   map[string]config.RuleCfg{"mock-rule": {Enabled: true}},
		},
		Rules:  []rule.Rule{&mockRule{id: "RDS999", name: "mock-rule"}},
		Logger: &log.Logger{Enabled: true, W: &buf},
	}

	result := runner.Run(context.Background(), paths)
	if len(result.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(result.Diagnostics))
	}
	if filepath.Base(result.Diagnostics[0].File) != "keep.md" {
		t.Errorf("unexpected file %s", result.Diagnostics[0].File)
	}
	if !strings.Contains(buf.String(), "excluded ") {
		t.Errorf("expected exclusion to be logged, got %q", buf.String())
	}
}

func TestRunner_ReadErrorCollected(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "ok.md")
	paths = append(paths, filepath.Join(dir, "missing.md"))

	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{"mock-rule": {Enabled: true}}},
		Rules:  []rule.Rule{&mockRule{id: "RDS999", name: "mock-rule"}},
	}

	result := runner.Run(context.Background(), paths)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Error(), "missing.md") {
		t.Errorf("error should name the file: %v", result.Errors[0])
	}
	if len(result.Diagnostics) != 1 {
		t.Errorf("expected the readable file to still be checked, got %d diagnostics", len(result.Diagnostics))
	}
}

func TestRunner_SettingsErrorStopsRun(t *testing.T) {
	paths := writeFiles(t, t.TempDir(), "a.md")
	counting := &countingRule{}

	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{
			"threshold": {Enabled: true, Settings: map[string]any{"max": "lots"}},
			"counting":  {Enabled: true},
		}},
		Rules: []rule.Rule{&thresholdRule{Max: 10}, counting},
	}

	result := runner.Run(context.Background(), paths)
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if !strings.Contains(result.Errors[0].Error(), "threshold: max must be an integer") {
		t.Errorf("unexpected error %v", result.Errors[0])
	}
	if counting.calls.Load() != 0 {
		t.Error("no file should be checked after a settings error")
	}
}

func TestRunner_CancelledContext(t *testing.T) {
	paths := writeFiles(t, t.TempDir(), "a.md", "b.md")
	counting := &countingRule{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{"counting": {Enabled: true}}},
		Rules:  []rule.Rule{counting},
	}

	result := runner.Run(ctx, paths)
	if len(result.Errors) == 0 {
		t.Fatal("expected a cancellation error")
	}
	if counting.calls.Load() != 0 {
		t.Errorf("rule ran %d times after cancellation", counting.calls.Load())
	}
	if result.Files != 0 {
		t.Errorf("got %d files, want 0", result.Files)
	}
}

func TestRunner_RunSource(t *testing.T) {
	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{"mock-rule": {Enabled: true}}},
		Rules:  []rule.Rule{&mockRule{id: "RDS999", name: "mock-rule"}},
	}

	result := runner.RunSource("<stdin>", []byte("Some text.\n"))
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Files != 1 || len(result.Diagnostics) != 1 {
		t.Fatalf("got %d files and %d diagnostics, want 1 and 1", result.Files, len(result.Diagnostics))
	}
	if got := result.Diagnostics[0].File; got != "<stdin>" {
		t.Errorf("got file %q, want <stdin>", got)
	}
}

func TestRunner_RunSourceSettingsError(t *testing.T) {
	runner := &Runner{
		Config: &config.Config{Rules: map[string]config.RuleCfg{
			"threshold": {Enabled: true, Settings: map[string]any{"max": "lots"}},
		}},
		Rules: []rule.Rule{&thresholdRule{}},
	}

	result := runner.RunSource("<stdin>", []byte("Some text.\n"))
	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if result.Files != 0 {
		t.Errorf("got %d files, want 0", result.Files)
	}
}

func TestLoadFile_HTML(t *testing.T) {
	src := []byte("<html><body><nav>Home</nav><h1>Title</h1><p>First para.</p><p>Second para.</p></body></html>")
	f, err := LoadFile("page.html", src)
	if err != nil {
		t.Fatal(err)
	}
	want := "Title\n\nFirst para.\n\nSecond para."
	if got := string(f.Source); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConcurrency(t *testing.T) {
	if got := Concurrency(&config.Config{Concurrency: 7}); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
	if got := Concurrency(&config.Config{}); got < 1 {
		t.Errorf("got %d, want GOMAXPROCS", got)
	}
	if got := Concurrency(nil); got < 1 {
		t.Errorf("got %d, want GOMAXPROCS", got)
	}
}
