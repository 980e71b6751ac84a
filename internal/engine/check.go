package engine

import (
	"fmt"
	"sort"

	"github.com/jeduden/readscore/internal/config"
	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/rule"
)

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// EnabledRules returns the rules enabled in cfg with their settings
// applied, ordered by rule ID. Rules missing from cfg are skipped. All
// settings errors are returned together.
func EnabledRules(rules []rule.Rule, cfg map[string]config.RuleCfg) ([]rule.Rule, []error) {
	var out []rule.Rule
	var errs []error
	for _, rl := range rules {
		rc, ok := cfg[rl.Name()]
		if !ok || !rc.Enabled {
			continue
		}
		configured, err := ConfigureRule(rl, rc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, configured)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, errs
}

// CheckRules runs rules against f and returns their diagnostics.
func CheckRules(f *lint.File, rules []rule.Rule) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, rl := range rules {
		diags = append(diags, rl.Check(f)...)
	}
	return diags
}
