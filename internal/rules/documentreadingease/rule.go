// Package documentreadingease checks the Flesch reading ease of a whole
// document.
package documentreadingease

import (
	"fmt"
	"math"

	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/readability"
	"github.com/jeduden/readscore/internal/rule"
)

const (
	defaultMinEase  = 30.0
	defaultMinWords = 100
)

var calc = readability.New(mdtext.Tokenizer{})

func init() {
	rule.Register(&Rule{MinEase: defaultMinEase, MinWords: defaultMinWords})
}

// Rule reports documents whose reading ease falls below MinEase. Documents
// with fewer than MinWords words are skipped.
type Rule struct {
	MinEase  float64
	MinWords int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "RDS003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "document-reading-ease" }

// Check implements rule.Rule.
func (r *Rule) Check(f *lint.File) []lint.Diagnostic {
	m := calc.Analyze(mdtext.ExtractProse(f.AST, f.Source))
	if m.IsEmpty() || m.WordCount < r.MinWords || m.ReadingEase >= r.MinEase {
		return nil
	}
	return []lint.Diagnostic{{
		File:     f.Path,
		Line:     1 + f.LineOffset,
		Column:   1,
		RuleID:   r.ID(),
		RuleName: r.Name(),
		Severity: lint.Warning,
		Message: fmt.Sprintf("document reading ease too low (%.1f < %.1f, %s)",
			math.Round(m.ReadingEase*10)/10, r.MinEase, m.EaseInterpretation()),
	}}
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "min-ease":
			n, err := rule.Float(r.Name(), k, v)
			if err != nil {
				return err
			}
			if n < 0 || n > 100 {
				return fmt.Errorf("document-reading-ease: min-ease must be between 0 and 100, got %v", n)
			}
			r.MinEase = n
		case "min-words":
			n, err := rule.Int(r.Name(), k, v)
			if err != nil {
				return err
			}
			r.MinWords = n
		default:
			return rule.UnknownSetting(r.Name(), k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"min-ease":  defaultMinEase,
		"min-words": defaultMinWords,
	}
}

var _ rule.Configurable = (*Rule)(nil)
