// Package readscore exposes the embedded rule documentation.
package readscore

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jeduden/readscore/internal/lint"
)

//go:embed rules/RDS*/README.md
var rulesFS embed.FS

// RuleInfo holds metadata extracted from a rule README's front matter.
type RuleInfo struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Content     string `yaml:"-"`
}

// ListRules returns all embedded rules sorted by ID.
func ListRules() ([]RuleInfo, error) {
	return listRulesFromFS(rulesFS)
}

// LookupRule finds a rule by ID (e.g. "RDS001") or name (e.g.
// "sentence-length") and returns its full README content.
func LookupRule(query string) (string, error) {
	return lookupRuleFromFS(rulesFS, query)
}

func listRulesFromFS(fsys fs.FS) ([]RuleInfo, error) {
	paths, err := fs.Glob(fsys, "rules/*/README.md")
	if err != nil {
		return nil, fmt.Errorf("reading rules directory: %w", err)
	}

	var rules []RuleInfo
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			continue
		}
		info, err := parseFrontMatter(data)
		if err != nil {
			continue
		}
		info.Content = string(data)
		rules = append(rules, info)
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules, nil
}

func lookupRuleFromFS(fsys fs.FS, query string) (string, error) {
	rules, err := listRulesFromFS(fsys)
	if err != nil {
		return "", err
	}

	q := strings.ToUpper(query)
	for _, r := range rules {
		if strings.ToUpper(r.ID) == q || r.Name == query {
			return r.Content, nil
		}
	}
	return "", fmt.Errorf("unknown rule %q", query)
}

// parseFrontMatter decodes id, name and description from the YAML front
// matter of a README.
func parseFrontMatter(content []byte) (RuleInfo, error) {
	prefix, _ := lint.StripFrontMatter(content)
	if prefix == nil {
		return RuleInfo{}, fmt.Errorf("missing front matter")
	}
	body := bytes.TrimPrefix(prefix, []byte("---"))
	body = bytes.TrimSuffix(bytes.TrimRight(body, "\r\n"), []byte("---"))

	var info RuleInfo
	if err := yaml.Unmarshal(body, &info); err != nil {
		return RuleInfo{}, fmt.Errorf("parsing front matter: %w", err)
	}
	if info.ID == "" {
		return RuleInfo{}, fmt.Errorf("front matter missing id")
	}
	return info, nil
}
