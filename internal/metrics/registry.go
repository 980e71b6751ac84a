package metrics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeduden/readscore/internal/readability"
)

var registry = []Definition{
	count("MET001", "words", "Word count of the document prose.", true,
		func(m readability.Metrics) int { return m.WordCount }),
	count("MET002", "sentences", "Sentence count after abbreviation-aware segmentation.", true,
		func(m readability.Metrics) int { return m.SentenceCount }),
	count("MET003", "syllables", "Total syllables over all words.", false,
		func(m readability.Metrics) int { return m.SyllableCount }),
	count("MET004", "complex-words", "Words of three or more syllables, not counting inflections.", false,
		func(m readability.Metrics) int { return m.ComplexWordCount }),
	score("MET005", "grade-level", "Flesch-Kincaid grade level (higher is harder).", OrderDesc,
		func(m readability.Metrics) float64 { return m.GradeLevel }),
	score("MET006", "reading-ease", "Flesch reading ease, 0-100 (lower is harder).", OrderAsc,
		func(m readability.Metrics) float64 { return m.ReadingEase }),
	score("MET007", "fog-index", "Gunning fog index (higher is harder).", OrderDesc,
		func(m readability.Metrics) float64 { return m.FogIndex }),
	score("MET008", "avg-sentence-length", "Average words per sentence.", OrderDesc,
		func(m readability.Metrics) float64 { return m.AvgWordsPerSentence() }),
}

// count defines an integer metric read from the document analysis.
func count(id, name, desc string, def bool, get func(readability.Metrics) int) Definition {
	return Definition{
		ID:           id,
		Name:         name,
		Description:  desc,
		Scope:        ScopeFile,
		Kind:         KindInteger,
		Precision:    0,
		Default:      def,
		DefaultOrder: OrderDesc,
		Compute: func(doc *Document) (Value, error) {
			m, err := doc.Analysis()
			if err != nil {
				return UnavailableValue(), err
			}
			return AvailableValue(float64(get(m))), nil
		},
	}
}

// score defines a one-decimal score. Documents without prose have no
// score.
func score(id, name, desc string, order Order, get func(readability.Metrics) float64) Definition {
	return Definition{
		ID:           id,
		Name:         name,
		Description:  desc,
		Scope:        ScopeFile,
		Kind:         KindFloat,
		Precision:    1,
		Default:      true,
		DefaultOrder: order,
		Compute: func(doc *Document) (Value, error) {
			m, err := doc.Analysis()
			if err != nil {
				return UnavailableValue(), err
			}
			if m.IsEmpty() {
				return UnavailableValue(), nil
			}
			return AvailableValue(get(m)), nil
		},
	}
}

// All returns all metrics sorted by ID.
func All() []Definition {
	defs := append([]Definition(nil), registry...)
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})
	return defs
}

// ForScope returns all metrics for a scope, sorted by ID.
func ForScope(scope Scope) []Definition {
	all := All()
	defs := make([]Definition, 0, len(all))
	for _, def := range all {
		if def.Scope == scope {
			defs = append(defs, def)
		}
	}
	return defs
}

// Defaults returns default-selected metrics for a scope.
func Defaults(scope Scope) []Definition {
	defs := ForScope(scope)
	out := make([]Definition, 0, len(defs))
	for _, def := range defs {
		if def.Default {
			out = append(out, def)
		}
	}
	return out
}

// Lookup searches by metric ID (case-insensitive) or by name.
func Lookup(query string) (Definition, bool) {
	for _, def := range All() {
		if matches(def, query) {
			return def, true
		}
	}
	return Definition{}, false
}

// LookupScope searches by metric ID (case-insensitive) or name within scope.
func LookupScope(scope Scope, query string) (Definition, bool) {
	for _, def := range ForScope(scope) {
		if matches(def, query) {
			return def, true
		}
	}
	return Definition{}, false
}

// Resolve resolves user-selected metric names/IDs for a scope.
// Empty names returns default metrics.
func Resolve(scope Scope, names []string) ([]Definition, error) {
	if len(names) == 0 {
		return Defaults(scope), nil
	}

	seen := make(map[string]struct{}, len(names))
	defs := make([]Definition, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}

		def, ok := LookupScope(scope, name)
		if !ok {
			return nil, unknownMetricErr(scope, name)
		}

		if _, exists := seen[def.ID]; exists {
			continue
		}
		seen[def.ID] = struct{}{}
		defs = append(defs, def)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no metrics selected")
	}
	return defs, nil
}

// SplitList parses comma-separated metric names.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matches(def Definition, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	return strings.EqualFold(def.ID, q) || def.Name == strings.ToLower(q)
}

func unknownMetricErr(scope Scope, name string) error {
	return fmt.Errorf(
		"unknown metric %q (available: %s)",
		name,
		strings.Join(availableNames(scope), ", "),
	)
}

func availableNames(scope Scope) []string {
	defs := ForScope(scope)
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	sort.Strings(names)
	return names
}
