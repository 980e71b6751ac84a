package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	metricspkg "github.com/jeduden/readscore/internal/metrics"
	"github.com/jeduden/readscore/internal/output"
)

const metricsUsageText = `Usage: readscore metrics <command> [flags] [files...]

Commands:
  list     List available metrics from the shared registry
  rank     Rank files by selected metrics
`

func (a *app) runMetrics(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, metricsUsageText)
		return 0
	}

	switch args[0] {
	case "list":
		return a.runMetricsList(args[1:])
	case "rank":
		return a.runMetricsRank(ctx, args[1:])
	default:
		a.errorf("metrics: unknown command %q", args[0])
		return 2
	}
}

func (a *app) runMetricsList(args []string) int {
	fs := flag.NewFlagSet("metrics list", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		scopeRaw string
		format   string
	)

	fs.StringVar(&scopeRaw, "scope", "file", "Metric scope: file")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json")
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: readscore metrics list [flags]\n\n"+
			"List available metrics in the shared registry.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		a.errorf("metrics list takes no file arguments")
		return 2
	}

	scope, err := metricspkg.ParseScope(scopeRaw)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	if err := output.WriteMetricsList(a.stdout, format, metricspkg.ForScope(scope)); err != nil {
		a.errorf("%v", err)
		return 2
	}
	return 0
}

type metricsRankOptions struct {
	configPath  string
	metricsRaw  string
	byRaw       string
	orderRaw    string
	top         int
	format      string
	verbose     bool
	noGitignore bool
}

func (a *app) runMetricsRank(ctx context.Context, args []string) int {
	opts, fileArgs, err := a.parseMetricsRankOptions(args)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			a.errorf("%v", err)
		}
		return 2
	}
	return a.executeMetricsRank(ctx, opts, fileArgs)
}

func (a *app) parseMetricsRankOptions(args []string) (metricsRankOptions, []string, error) {
	fs := flag.NewFlagSet("metrics rank", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var opts metricsRankOptions

	fs.StringVarP(&opts.configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&opts.metricsRaw, "metrics", "", "Comma-separated metrics (defaults to registry defaults)")
	fs.StringVar(&opts.byRaw, "by", "", "Metric to sort by")
	fs.StringVar(&opts.orderRaw, "order", "", "Sort order: asc or desc (defaults by metric)")
	fs.IntVar(&opts.top, "top", 0, "Limit results to top N files (0 = all)")
	fs.StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "Show config and timings on stderr")
	fs.BoolVar(&opts.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: readscore metrics rank [flags] [files...]\n\n"+
			"Compute selected metrics and rank documents.\n"+
			"With no file arguments, uses the config's files patterns, or the\n"+
			"current directory when none are set.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return metricsRankOptions{}, nil, err
	}
	if opts.top < 0 {
		return metricsRankOptions{}, nil, fmt.Errorf("--top must be >= 0")
	}
	return opts, fs.Args(), nil
}

func (a *app) executeMetricsRank(ctx context.Context, opts metricsRankOptions, fileArgs []string) int {
	defs, byDef, order, err := resolveRankSelection(opts)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}

	cfg, cfgPath, err := loadConfig(opts.configPath)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	common := commonFlags{verbose: opts.verbose}
	logger := common.logger(a.stderr)
	if cfgPath != "" {
		logger.Printf("config: %s", cfgPath)
	}

	if len(fileArgs) == 0 && len(cfg.Files) == 0 {
		fileArgs = []string{"."}
	}
	files, err := resolveFiles(cfg, fileArgs, !opts.noGitignore)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}

	rows, err := metricspkg.Collect(ctx, files, defs, metricspkg.Options{
		Concurrency: cfg.Concurrency,
		Calculator:  newCalculator(logger),
	})
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	metricspkg.SortRows(rows, byDef, order)
	rows = metricspkg.LimitRows(rows, opts.top)

	if err := output.WriteRank(a.stdout, opts.format, rows, defs); err != nil {
		a.errorf("%v", err)
		return 2
	}
	return 0
}

func resolveRankSelection(
	opts metricsRankOptions,
) ([]metricspkg.Definition, metricspkg.Definition, metricspkg.Order, error) {
	scope := metricspkg.ScopeFile
	selectedNames := metricspkg.SplitList(opts.metricsRaw)
	defs, err := metricspkg.Resolve(scope, selectedNames)
	if err != nil {
		return nil, metricspkg.Definition{}, "", err
	}

	var byDef metricspkg.Definition
	if strings.TrimSpace(opts.byRaw) == "" {
		byDef = defs[0]
	} else {
		byDefs, err := metricspkg.Resolve(scope, []string{opts.byRaw})
		if err != nil {
			return nil, metricspkg.Definition{}, "", err
		}
		byDef = byDefs[0]
	}

	// Ensure the sort metric is always computed.
	if !containsMetric(defs, byDef.ID) {
		if len(selectedNames) > 0 {
			return nil, metricspkg.Definition{}, "", fmt.Errorf(
				"--by metric %q must be included in --metrics",
				byDef.Name,
			)
		}
		defs = append(defs, byDef)
	}

	order, err := metricspkg.ParseOrder(opts.orderRaw, byDef.DefaultOrder)
	if err != nil {
		return nil, metricspkg.Definition{}, "", err
	}
	return defs, byDef, order, nil
}

func containsMetric(defs []metricspkg.Definition, id string) bool {
	for _, def := range defs {
		if def.ID == id {
			return true
		}
	}
	return false
}
