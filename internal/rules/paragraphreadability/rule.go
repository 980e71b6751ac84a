package paragraphreadability

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/rule"
	"github.com/yuin/goldmark/ast"
)

const (
	defaultMaxGrade = 12.0
	defaultMinWords = 20
	defaultFormula  = "flesch-kincaid"
)

func init() {
	rule.Register(&Rule{
		MaxGrade: defaultMaxGrade,
		MinWords: defaultMinWords,
		Formula:  defaultFormula,
		Grade:    FleschKincaid,
	})
}

// Rule checks that paragraph readability grade does not exceed a
// configured maximum. Uses the Flesch-Kincaid grade level by default.
type Rule struct {
	MaxGrade float64
	MinWords int
	Formula  string
	Grade    GradeFunc
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RDS001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "paragraph-readability" }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	var diags []lint.Diagnostic
	grade := r.Grade
	if grade == nil {
		grade = FleschKincaid
	}
	formula := r.Formula
	if formula == "" {
		formula = defaultFormula
	}

	_ = ast.Walk(f.AST, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		para, ok := n.(*ast.Paragraph)
		if !ok || isTable(para, f) {
			return ast.WalkContinue, nil
		}

		text := mdtext.ExtractPlainText(para, f.Source)
		if mdtext.CountWords(text) < r.MinWords {
			return ast.WalkContinue, nil
		}

		score := grade(text)
		if score > r.MaxGrade {
			line := f.LineOfNode(para)
			if line == 0 {
				line = 1
			}
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     line,
				Column:   1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message: fmt.Sprintf(
					"paragraph readability grade too high (%s %.1f > %.1f)",
					formula, math.Round(score*10)/10, r.MaxGrade,
				),
			})
		}
		return ast.WalkContinue, nil
	})

	return diags
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "max-grade":
			n, err := rule.Float(r.Name(), k, v)
			if err != nil {
				return err
			}
			if n < 0 {
				return fmt.Errorf("paragraph-readability: max-grade must not be negative, got %v", n)
			}
			r.MaxGrade = n
		case "min-words":
			n, err := rule.Int(r.Name(), k, v)
			if err != nil {
				return err
			}
			r.MinWords = n
		case "formula":
			s, err := rule.String(r.Name(), k, v)
			if err != nil {
				return err
			}
			fn, err := lookupFormula(s)
			if err != nil {
				return err
			}
			r.Formula = s
			r.Grade = fn
		default:
			return rule.UnknownSetting(r.Name(), k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"max-grade": defaultMaxGrade,
		"min-words": defaultMinWords,
		"formula":   defaultFormula,
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
