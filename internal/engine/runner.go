package engine

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jeduden/readscore/internal/config"
	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/log"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/rule"
)

// Runner drives the check pipeline: for each file it reads the content,
// builds a File (parsing the AST once), runs the enabled rules, and
// collects diagnostics. Files are checked in parallel, bounded by
// Config.Concurrency.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule
	Logger *log.Logger
}

// Result holds the output of a check run.
type Result struct {
	Files       int
	Diagnostics []lint.Diagnostic
	Errors      []error
}

type fileResult struct {
	done  bool
	diags []lint.Diagnostic
	err   error
}

// Run checks the files at the given paths and returns a Result containing
// all diagnostics (sorted by file, line, column) and any errors
// encountered. A cancelled ctx stops scheduling new files.
func (r *Runner) Run(ctx context.Context, paths []string) *Result {
	res := &Result{}

	rules, errs := EnabledRules(r.Rules, r.Config.Rules)
	if len(errs) > 0 {
		res.Errors = errs
		return res
	}
	exclude, err := lint.CompileGlobs(r.Config.Exclude)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}

	var todo []string
	for _, p := range paths {
		if exclude.Match(p) {
			r.Logger.Printf("excluded %s", p)
			continue
		}
		todo = append(todo, p)
	}

	results := make([]fileResult, len(todo))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(Concurrency(r.Config))
	for i, path := range todo {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			diags, err := r.checkFile(path, rules)
			results[i] = fileResult{done: true, diags: diags, err: err}
			r.Logger.Printf("checked %s: %d findings in %s", path, len(diags), time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res.Errors = append(res.Errors, err)
	}

	for _, fr := range results {
		if !fr.done {
			continue
		}
		if fr.err != nil {
			res.Errors = append(res.Errors, fr.err)
			continue
		}
		res.Files++
		res.Diagnostics = append(res.Diagnostics, fr.diags...)
	}
	lint.SortDiagnostics(res.Diagnostics)
	return res
}

// RunSource checks source as if it were read from a file named name. It
// is used for standard input.
func (r *Runner) RunSource(name string, source []byte) *Result {
	res := &Result{}
	rules, errs := EnabledRules(r.Rules, r.Config.Rules)
	if len(errs) > 0 {
		res.Errors = errs
		return res
	}
	f, err := LoadFile(name, source)
	if err != nil {
		res.Errors = append(res.Errors, err)
		return res
	}
	res.Files = 1
	res.Diagnostics = CheckRules(f, rules)
	lint.SortDiagnostics(res.Diagnostics)
	return res
}

func (r *Runner) checkFile(path string, rules []rule.Rule) ([]lint.Diagnostic, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	f, err := LoadFile(path, source)
	if err != nil {
		return nil, err
	}
	return CheckRules(f, rules), nil
}

// LoadFile builds a lint.File for path. Markdown and plain text are parsed
// directly. HTML is reduced to its prose blocks first, one paragraph each,
// so line numbers refer to those blocks rather than the HTML source.
func LoadFile(path string, source []byte) (*lint.File, error) {
	if lint.FormatOf(path) == lint.HTML {
		blocks, err := mdtext.HTMLBlocks(bytes.NewReader(source))
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		source = []byte(strings.Join(blocks, "\n\n"))
	}
	f, err := lint.NewFile(path, source)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return f, nil
}

// Concurrency returns the number of files to process in parallel.
func Concurrency(cfg *config.Config) int {
	if cfg != nil && cfg.Concurrency > 0 {
		return cfg.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}
