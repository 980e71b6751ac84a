package paragraphreadability

import (
	"fmt"
	"sort"

	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/readability"
)

// GradeFunc computes a readability grade level from plain text.
// Higher values mean harder to read.
type GradeFunc func(text string) float64

var calc = readability.New(mdtext.Tokenizer{})

// FleschKincaid returns the Flesch-Kincaid grade level of text.
func FleschKincaid(text string) float64 {
	return calc.Analyze(text).GradeLevel
}

// GunningFog returns the Gunning fog index of text.
func GunningFog(text string) float64 {
	return calc.Analyze(text).FogIndex
}

// Formulas maps the formula setting to its grade function.
var Formulas = map[string]GradeFunc{
	"flesch-kincaid": FleschKincaid,
	"gunning-fog":    GunningFog,
}

// formulaNames returns the accepted formula settings, sorted.
func formulaNames() []string {
	names := make([]string, 0, len(Formulas))
	for name := range Formulas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupFormula(name string) (GradeFunc, error) {
	fn, ok := Formulas[name]
	if !ok {
		return nil, fmt.Errorf("paragraph-readability: unknown formula %q (want one of %v)", name, formulaNames())
	}
	return fn, nil
}
