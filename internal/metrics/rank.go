package metrics

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/readability"
)

// Row holds computed metric values for a single file.
type Row struct {
	Path    string
	Metrics map[string]Value
}

// Options tunes Collect.
type Options struct {
	// Concurrency bounds the number of files read and analyzed at once.
	// Zero or less means GOMAXPROCS.
	Concurrency int
	// Calculator is shared by all documents. Nil uses the default
	// tokenizer.
	Calculator *readability.Calculator
}

// Collect computes all selected metrics for each file path. Files are
// processed in parallel; rows keep the order of paths. The first read or
// compute error cancels the remaining work.
func Collect(ctx context.Context, paths []string, defs []Definition, opts Options) ([]Row, error) {
	calc := opts.Calculator
	if calc == nil {
		calc = readability.New(mdtext.Tokenizer{})
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	rows := make([]Row, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row, err := collectFile(gctx, path, defs, calc)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func collectFile(ctx context.Context, path string, defs []Definition, calc *readability.Calculator) (Row, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return Row{}, fmt.Errorf("reading %q: %w", path, err)
	}

	doc := NewDocument(path, source, calc)
	if _, err := doc.AnalysisContext(ctx); err != nil {
		return Row{}, fmt.Errorf("analyzing %q: %w", path, err)
	}
	values := make(map[string]Value, len(defs))
	for _, def := range defs {
		v, err := def.Compute(doc)
		if err != nil {
			return Row{}, fmt.Errorf("computing %q for %q: %w", def.Name, path, err)
		}
		values[def.Name] = v
	}
	return Row{Path: path, Metrics: values}, nil
}

// SortRows sorts rows deterministically by a metric and path tiebreaker.
func SortRows(rows []Row, by Definition, order Order) {
	sort.Slice(rows, func(i, j int) bool {
		a := rows[i].Metrics[by.Name]
		b := rows[j].Metrics[by.Name]

		// Available values sort before unavailable values.
		if a.Available != b.Available {
			return a.Available
		}

		if a.Available && b.Available {
			diff := a.Number - b.Number
			if math.Abs(diff) > 1e-9 {
				if order == OrderAsc {
					return diff < 0
				}
				return diff > 0
			}
		}

		// Stable deterministic tie-break.
		return rows[i].Path < rows[j].Path
	})
}

// LimitRows returns at most top rows (if top > 0).
func LimitRows(rows []Row, top int) []Row {
	if top <= 0 || top >= len(rows) {
		return rows
	}
	return rows[:top]
}

// FormatValue renders a metric value for text output.
func FormatValue(def Definition, value Value) string {
	v := JSONValue(def, value)
	if v == nil {
		return "-"
	}

	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return fmt.Sprintf("%.*f", def.Precision, n)
	default:
		return "-"
	}
}

// JSONValue converts a metric value into a JSON-safe scalar.
// Unavailable values return nil.
func JSONValue(def Definition, value Value) any {
	if !value.Available {
		return nil
	}

	switch def.Kind {
	case KindInteger:
		return int64(math.Round(value.Number))
	case KindFloat:
		if def.Precision < 0 {
			return value.Number
		}
		scale := math.Pow10(def.Precision)
		return math.Round(value.Number*scale) / scale
	default:
		return value.Number
	}
}
