package documentreadingease

import (
	"strings"
	"testing"

	"github.com/jeduden/readscore/internal/lint"
)

const academic = "The implementation of concurrent distributed systems " +
	"requires sophisticated understanding of fundamental " +
	"computational paradigms and synchronization mechanisms " +
	"that must guarantee linearizability across heterogeneous " +
	"processing environments and architectural configurations."

func check(t *testing.T, r *Rule, src string) []lint.Diagnostic {
	t.Helper()
	f, err := lint.NewFile("doc.md", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return r.Check(f)
}

func TestCheck_HardDocument(t *testing.T) {
	src := "# Architecture\n\n" + academic + "\n\n" + academic + "\n"
	diags := check(t, &Rule{MinEase: 30, MinWords: 20}, src)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	d := diags[0]
	if d.RuleID != "RDS003" || d.Line != 1 {
		t.Errorf("got %s at line %d, want RDS003 at line 1", d.RuleID, d.Line)
	}
	if !strings.Contains(d.Message, "< 30.0, very confusing)") {
		t.Errorf("unexpected message %q", d.Message)
	}
}

func TestCheck_EasyDocument(t *testing.T) {
	src := strings.Repeat("The cat sat on the mat. ", 10) + "\n"
	if diags := check(t, &Rule{MinEase: 30, MinWords: 20}, src); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheck_ShortDocumentSkipped(t *testing.T) {
	if diags := check(t, &Rule{MinEase: 30, MinWords: 100}, academic+"\n"); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics, got %d", len(diags))
	}
}

func TestCheck_EmptyDocument(t *testing.T) {
	if diags := check(t, &Rule{MinEase: 100, MinWords: 0}, "```\ncode only\n```\n"); len(diags) != 0 {
		t.Fatalf("expected 0 diagnostics for a document without prose, got %d", len(diags))
	}
}

func TestCheck_LineAfterFrontMatter(t *testing.T) {
	src := "---\ntitle: x\n---\n" + academic + "\n"
	diags := check(t, &Rule{MinEase: 30, MinWords: 1}, src)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(diags))
	}
	if diags[0].Line != 4 {
		t.Errorf("expected line 4, got %d", diags[0].Line)
	}
}

func TestApplySettings(t *testing.T) {
	r := &Rule{}
	if err := r.ApplySettings(map[string]any{"min-ease": 50, "min-words": 10}); err != nil {
		t.Fatal(err)
	}
	if r.MinEase != 50 || r.MinWords != 10 {
		t.Errorf("got %+v", r)
	}

	for _, bad := range []map[string]any{
		{"min-ease": 120},
		{"min-ease": "easy"},
		{"min-words": 1.5},
		{"max-ease": 10},
	} {
		if err := r.ApplySettings(bad); err == nil {
			t.Errorf("expected error for %v", bad)
		}
	}
}

func TestDefaultSettings(t *testing.T) {
	ds := (&Rule{}).DefaultSettings()
	if ds["min-ease"] != 30.0 || ds["min-words"] != 100 {
		t.Errorf("got %v", ds)
	}
}
