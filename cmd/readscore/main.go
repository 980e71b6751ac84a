package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/readscore/internal/config"
	"github.com/jeduden/readscore/internal/discovery"
	"github.com/jeduden/readscore/internal/lint"
	vlog "github.com/jeduden/readscore/internal/log"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/readscore/internal/rules/documentreadingease"
	_ "github.com/jeduden/readscore/internal/rules/paragraphreadability"
	_ "github.com/jeduden/readscore/internal/rules/paragraphstructure"
	_ "github.com/jeduden/readscore/internal/rules/sentencelength"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

const usageText = `Usage: readscore <command> [flags] [files...]

Commands:
  analyze   Report readability metrics for text, Markdown or HTML
  check     Check documents against readability rules
  metrics   List metrics or rank files by them
  help      Show help for rules and metrics
  init      Generate a default .readscore.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'readscore <command> --help' for more information on a command.
`

// app carries the streams of one invocation.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) errorf(format string, args ...any) {
	fmt.Fprintf(a.stderr, "readscore: "+format+"\n", args...)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return 0
	}

	switch args[0] {
	case "--help", "-h":
		fmt.Fprint(stderr, usageText)
		return 0
	case "analyze":
		return a.runAnalyze(ctx, args[1:])
	case "check":
		return a.runCheck(ctx, args[1:])
	case "metrics":
		return a.runMetrics(ctx, args[1:])
	case "help":
		return a.runHelp(args[1:])
	case "init":
		return a.runInit(args[1:])
	case "version":
		a.printVersion()
		return 0
	default:
		fmt.Fprintf(stderr, "readscore: unknown command %q\n\n%s", args[0], usageText)
		return 2
	}
}

func (a *app) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(a.stdout, "readscore %s\n", version)
}

// commonFlags are shared by the commands that read documents.
type commonFlags struct {
	configPath  string
	format      string
	quiet       bool
	verbose     bool
	noGitignore bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&c.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&c.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVarP(&c.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "Show config, files and timings on stderr")
	fs.BoolVar(&c.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
}

// logger returns the verbose logger. --quiet suppresses verbose.
func (c *commonFlags) logger(w io.Writer) *vlog.Logger {
	return &vlog.Logger{Enabled: c.verbose && !c.quiet, W: w}
}

// runInit implements the "init" subcommand: generate .readscore.yml.
func (a *app) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: readscore init\n\n"+
			"Generate a default %s config file in the current directory.\n", config.FileName)
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		a.errorf("init takes no arguments")
		return 2
	}

	if _, err := os.Stat(config.FileName); err == nil {
		a.errorf("%s already exists", config.FileName)
		return 2
	}

	data, err := config.Marshal(config.Defaults())
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	if err := os.WriteFile(config.FileName, data, 0o644); err != nil {
		a.errorf("writing %s: %v", config.FileName, err)
		return 2
	}

	a.errorf("created %s", config.FileName)
	return 0
}

// stdinPiped reports whether input should be read from stdin. A terminal
// is not input; any other reader is.
func (a *app) stdinPiped() bool {
	if a.stdin == nil {
		return false
	}
	f, ok := a.stdin.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// printErrors writes runtime errors to stderr.
func (a *app) printErrors(errs []error) {
	for _, e := range errs {
		a.errorf("%v", e)
	}
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory. It returns the
// merged config, the path that was loaded (empty if defaults only), and
// any error.
func loadConfig(configPath string) (*config.Config, string, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, "", err
		}
		return config.Merge(defaults, loaded), configPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), "", nil
	}
	discovered, err := config.Discover(cwd)
	if err != nil || discovered == "" {
		return config.Merge(defaults, nil), "", nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, "", err
	}
	return config.Merge(defaults, loaded), discovered, nil
}

// resolveFiles expands file arguments: paths, directories (walked for
// documents) and glob patterns. Without arguments the config's files
// patterns are discovered from the current directory.
func resolveFiles(cfg *config.Config, args []string, useGitignore bool) ([]string, error) {
	if len(args) > 0 {
		return lint.ResolveFilesWithOpts(args, lint.ResolveOpts{
			Exclude:      cfg.Exclude,
			UseGitignore: useGitignore,
		})
	}
	exclude, err := lint.CompileGlobs(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	return discovery.Discover(discovery.Options{
		Patterns:     cfg.Files,
		Exclude:      exclude,
		UseGitignore: useGitignore,
	})
}
