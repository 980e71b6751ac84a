package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/jeduden/readscore/internal/engine"
	"github.com/jeduden/readscore/internal/lint"
	vlog "github.com/jeduden/readscore/internal/log"
	"github.com/jeduden/readscore/internal/mdtext"
	"github.com/jeduden/readscore/internal/metrics"
	"github.com/jeduden/readscore/internal/output"
	"github.com/jeduden/readscore/internal/readability"
)

// stdinPath names standard input in reports.
const stdinPath = "-"

// runAnalyze implements the "analyze" subcommand: print readability
// metrics for each input.
func (a *app) runAnalyze(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		common      commonFlags
		sentences   bool
		stdinFormat string
	)
	common.register(fs)
	fs.BoolVarP(&sentences, "sentences", "s", false, "List the detected sentences")
	fs.StringVar(&stdinFormat, "stdin-format", "text", "Format of stdin: text, markdown, html")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: readscore analyze [flags] [files...]\n\n"+
			"Report word, sentence and syllable counts with Flesch-Kincaid grade,\n"+
			"Flesch reading ease and Gunning fog scores.\n\n"+
			"Files can be paths, directories (walked recursively), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped, otherwise analyzes\n"+
			"the files patterns of the config.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	format, ok := parseStdinFormat(stdinFormat)
	if !ok {
		a.errorf("unknown stdin format %q (supported: text, markdown, html)", stdinFormat)
		return 2
	}

	cfg, cfgPath, err := loadConfig(common.configPath)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	logger := common.logger(a.stderr)
	if cfgPath != "" {
		logger.Printf("config: %s", cfgPath)
	}
	calc := newCalculator(logger)

	var reports []output.Report
	if fs.NArg() == 0 && a.stdinPiped() {
		report, err := a.analyzeStdin(ctx, calc, format, sentences)
		if err != nil {
			a.errorf("%v", err)
			return 2
		}
		reports = []output.Report{report}
	} else {
		files, err := resolveFiles(cfg, fs.Args(), !common.noGitignore)
		if err != nil {
			a.errorf("%v", err)
			return 2
		}
		if len(files) == 0 {
			fs.Usage()
			return 2
		}
		reports, err = analyzeFiles(ctx, files, calc, engine.Concurrency(cfg), sentences, logger)
		if err != nil {
			a.errorf("%v", err)
			return 2
		}
	}

	if common.quiet {
		return 0
	}
	if err := output.WriteReports(a.stdout, common.format, reports); err != nil {
		a.errorf("%v", err)
		return 2
	}
	return 0
}

func parseStdinFormat(raw string) (lint.Format, bool) {
	switch raw {
	case "text", "txt":
		return lint.Plain, true
	case "markdown", "md":
		return lint.Markdown, true
	case "html":
		return lint.HTML, true
	}
	return "", false
}

// newCalculator returns a calculator that logs every analysis.
func newCalculator(logger *vlog.Logger) *readability.Calculator {
	return readability.New(mdtext.Tokenizer{},
		readability.WithObserver(func(ev readability.Completion) {
			logger.Printf("analysis %s: %d words, %d sentences in %s",
				ev.ID, ev.Metrics.WordCount, ev.Metrics.SentenceCount, ev.Duration)
		}),
	)
}

func (a *app) analyzeStdin(
	ctx context.Context,
	calc *readability.Calculator,
	format lint.Format,
	sentences bool,
) (output.Report, error) {
	source, err := io.ReadAll(a.stdin)
	if err != nil {
		return output.Report{}, fmt.Errorf("reading stdin: %w", err)
	}
	doc := metrics.NewDocument(stdinPath, source, calc)
	doc.Format = format
	return buildReport(ctx, doc, sentences)
}

// analyzeFiles analyzes files in parallel. Reports keep the order of
// files; the first error cancels the remaining work.
func analyzeFiles(
	ctx context.Context,
	files []string,
	calc *readability.Calculator,
	concurrency int,
	sentences bool,
	logger *vlog.Logger,
) ([]output.Report, error) {
	reports := make([]output.Report, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %q: %w", path, err)
			}
			report, err := buildReport(gctx, metrics.NewDocument(path, source, calc), sentences)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			logger.Printf("analyzed %s: %d words in %s", path, report.Metrics.WordCount, time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func buildReport(ctx context.Context, doc *metrics.Document, sentences bool) (output.Report, error) {
	m, err := doc.AnalysisContext(ctx)
	if err != nil {
		return output.Report{}, err
	}
	report := output.Report{Path: doc.Path, Metrics: m}
	if sentences {
		report.Sentences, err = doc.Sentences()
		if err != nil {
			return output.Report{}, err
		}
	}
	return report, nil
}
