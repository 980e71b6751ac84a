package main

import (
	"fmt"

	readscore "github.com/jeduden/readscore"
	metricspkg "github.com/jeduden/readscore/internal/metrics"
)

const helpUsageText = `Usage: readscore help <topic>

Topics:
  rule [id|name]     Show rule documentation
  metrics [id|name]  Show metrics
`

// runHelp implements the "help" subcommand.
func (a *app) runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "rule":
		if len(args) == 1 {
			return a.listAllRules()
		}
		return a.showRule(args[1])
	case "metrics":
		if len(args) == 1 {
			return a.listAllMetrics()
		}
		return a.showMetric(args[1])
	default:
		a.errorf("help: unknown topic %q", args[0])
		return 2
	}
}

func (a *app) listAllRules() int {
	rules, err := readscore.ListRules()
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	for _, r := range rules {
		fmt.Fprintf(a.stdout, "%-6s %-22s %s\n", r.ID, r.Name, r.Description)
	}
	return 0
}

func (a *app) showRule(query string) int {
	content, err := readscore.LookupRule(query)
	if err != nil {
		a.errorf("%v", err)
		return 2
	}
	fmt.Fprint(a.stdout, content)
	return 0
}

func (a *app) listAllMetrics() int {
	for _, def := range metricspkg.All() {
		fmt.Fprintf(a.stdout, "%-6s %-20s %s\n", def.ID, def.Name, def.Description)
	}
	return 0
}

func (a *app) showMetric(query string) int {
	def, ok := metricspkg.Lookup(query)
	if !ok {
		a.errorf("unknown metric %q", query)
		return 2
	}
	fmt.Fprintf(a.stdout, "%s %s\n\n%s\n\nScope: %s\nDefault order: %s\n",
		def.ID, def.Name, def.Description, def.Scope, def.DefaultOrder)
	return 0
}
