package main

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/readscore/internal/engine"
	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/output"
	"github.com/jeduden/readscore/internal/rule"
)

// runCheck implements the "check" subcommand: run the enabled rules.
func (a *app) runCheck(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		common  commonFlags
		noColor bool
	)
	common.register(fs)
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")

	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: readscore check [flags] [files...]\n\n"+
			"Check documents against the enabled readability rules.\n\n"+
			"Files can be paths, directories (walked recursively), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped, otherwise checks\n"+
			"the files patterns of the config.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	formatter, err := output.NewFormatter(common.format, !noColor)
	if err != nil {
		a.errorf("%v", err)
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

	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
		Logger: logger,
	}

	var result *engine.Result
	if fs.NArg() == 0 && a.stdinPiped() {
		source, err := io.ReadAll(a.stdin)
		if err != nil {
			a.errorf("reading stdin: %v", err)
			return 2
		}
		result = runner.RunSource("<stdin>", source)
	} else {
		files, err := resolveFiles(cfg, fs.Args(), !common.noGitignore)
		if err != nil {
			a.errorf("%v", err)
			return 2
		}
		if len(files) == 0 {
			return 0
		}
		result = runner.Run(ctx, files)
	}
	a.printErrors(result.Errors)

	if len(result.Errors) > 0 && len(result.Diagnostics) == 0 {
		return 2
	}
	if !common.quiet && len(result.Diagnostics) > 0 {
		if code := a.formatDiagnostics(formatter, result.Diagnostics); code != 0 {
			return code
		}
	}
	logger.Printf("checked %d files, %d issues found", result.Files, len(result.Diagnostics))

	if len(result.Diagnostics) > 0 {
		return 1
	}
	return 0
}

// formatDiagnostics writes diagnostics to stderr. Returns a non-zero exit
// code on write error, or 0 on success.
func (a *app) formatDiagnostics(formatter output.Formatter, diags []lint.Diagnostic) int {
	if err := formatter.Format(a.stderr, diags); err != nil {
		a.errorf("error writing output: %v", err)
		return 2
	}
	return 0
}
