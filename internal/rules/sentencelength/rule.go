// Package sentencelength flags sentences with too many words.
package sentencelength

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/rule"
	"github.com/jeduden/readscore/internal/segment"
	"github.com/yuin/goldmark/ast"
)

const (
	defaultMaxWords = 35
	excerptRunes    = 40
)

func init() {
	rule.Register(&Rule{MaxWords: defaultMaxWords})
}

// Rule reports every sentence whose word count exceeds MaxWords.
type Rule struct {
	MaxWords int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RDS002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "sentence-length" }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
		default:
			return ast.WalkContinue, nil
		}

		line := f.LineOfNode(n)
		if line == 0 {
			line = 1
		}
		text := mdtext.ExtractPlainText(n, f.Source)
		for _, s := range segment.Segment(text) {
			words := mdtext.CountWords(s.Text)
			if words <= r.MaxWords {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     line,
				Column:   1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message: fmt.Sprintf("sentence too long (%d > %d words): %q",
					words, r.MaxWords, excerpt(s.Text)),
			})
		}
		return ast.WalkSkipChildren, nil
	})

	return diags
}

// excerpt shortens a sentence for display.
func excerpt(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= excerptRunes {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:excerptRunes])) + "…"
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max-words":
			n, err := rule.Int(r.Name(), k, v)
			if err != nil {
				return err
			}
			if n < 1 {
				return fmt.Errorf("sentence-length: max-words must be at least 1, got %d", n)
			}
			r.MaxWords = n
		default:
			return rule.UnknownSetting(r.Name(), k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{"max-words": defaultMaxWords}
}

var _ rule.Configurable = (*Rule)(nil)
