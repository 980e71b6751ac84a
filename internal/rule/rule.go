package rule

import "github.com/jeduden/readscore/internal/lint"

// Rule is a single readability check over a parsed document.
type Rule interface {
	ID() string
	Name() string
	Check(f *lint.File) []lint.Diagnostic
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}
