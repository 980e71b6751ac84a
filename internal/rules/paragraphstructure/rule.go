// Package paragraphstructure flags paragraphs with too many sentences.
package paragraphstructure

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/rule"
)

const defaultMaxSentences = 6

func init() {
	rule.Register(&Rule{MaxSentences: defaultMaxSentences})
}

// Rule checks that paragraphs do not hold too many sentences.
type Rule struct {
	MaxSentences int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RDS004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "paragraph-structure" }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		para, ok := n.(*ast.Paragraph)
		if !ok || isTable(para, f) {
			return ast.WalkContinue, nil
		}

		text := mdtext.ExtractPlainText(para, f.Source)
		if count := mdtext.CountSentences(text); count > r.MaxSentences {
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     paragraphLine(para, f),
				Column:   1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message: fmt.Sprintf(
					"paragraph has too many sentences (%d > %d)",
					count, r.MaxSentences,
				),
			})
		}
		return ast.WalkSkipChildren, nil
	})

	return diags
}

func paragraphLine(para *ast.Paragraph, f *lint.File) int {
	if line := f.LineOfNode(para); line > 0 {
		return line
	}
	return 1
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max-sentences":
			n, err := rule.Int(r.Name(), k, v)
			if err != nil {
				return err
			}
			if n < 1 {
				return fmt.Errorf("%s: max-sentences must be at least 1, got %d", r.Name(), n)
			}
			r.MaxSentences = n
		default:
			return rule.UnknownSetting(r.Name(), k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max-sentences": defaultMaxSentences,
	}
}

// isTable returns true if the paragraph's first line starts with a pipe,
// indicating it is a markdown table (goldmark without the table extension
// parses tables as paragraphs).
func isTable(para *ast.Paragraph, f *lint.File) bool {
	lines := para.Lines()
	if lines.Len() == 0 {
		return false
	}
	seg := lines.At(0)
	return bytes.HasPrefix(bytes.TrimSpace(f.Source[seg.Start:seg.Stop]), []byte("|"))
}

var _ rule.Configurable = (*Rule)(nil)
