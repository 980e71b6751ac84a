package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/frontmatter"

	"github.com/jeduden/readscore/internal/lint"
	"github.com/jeduden/readscore/internal/rule"

	_ "github.com/jeduden/readscore/internal/rules/documentreadingease"
	_ "github.com/jeduden/readscore/internal/rules/paragraphreadability"
	_ "github.com/jeduden/readscore/internal/rules/paragraphstructure"
	_ "github.com/jeduden/readscore/internal/rules/sentencelength"
)

var ruleIDPattern = regexp.MustCompile(`^(RDS\d+)-`)

// expectedDiag is one diagnostic listed in a bad.md front matter. Message
// is matched as a prefix so that computed scores need not be spelled out.
type expectedDiag struct {
	Line    int    `yaml:"line"`
	Column  int    `yaml:"column"`
	Message string `yaml:"message"`
}

type fixtureFrontMatter struct {
	Settings    map[string]any `yaml:"settings"`
	Diagnostics []expectedDiag `yaml:"diagnostics"`
}

// parseFixtureFrontMatter extracts YAML front matter from markdown using
// goldmark-frontmatter, then strips it from the raw bytes so lint.NewFile
// receives plain markdown content. Returns settings, diagnostics, and content.
func parseFixtureFrontMatter(
	t *testing.T, data []byte,
) (map[string]any, []expectedDiag, []byte) {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(&frontmatter.Extender{}))
	ctx := parser.NewContext()
	md.Parser().Parse(text.NewReader(data), parser.WithContext(ctx))

	d := frontmatter.Get(ctx)
	if d == nil {
		return nil, nil, data
	}

	var fm fixtureFrontMatter
	if err := d.Decode(&fm); err != nil {
		t.Fatalf("decoding front matter: %v", err)
	}

	const delim = "---\n"
	rest := data[len(delim):]
	idx := bytes.Index(rest, []byte(delim))
	content := rest[idx+len(delim):]

	return fm.Settings, fm.Diagnostics, content
}

// applySettingsToRule applies fixture settings to a registered rule and
// restores its defaults when the test ends.
func applySettingsToRule(
	t *testing.T, r rule.Rule, settings map[string]any,
) {
	t.Helper()
	if len(settings) == 0 {
		return
	}

	cr, ok := r.(rule.Configurable)
	if !ok {
		t.Fatalf(
			"fixture specifies settings but rule %s does not implement Configurable",
			r.ID(),
		)
	}

	defaults := cr.DefaultSettings()
	t.Cleanup(func() {
		_ = cr.ApplySettings(defaults)
	})

	if err := cr.ApplySettings(settings); err != nil {
		t.Fatalf("applying settings: %v", err)
	}
}

func TestRuleFixtures(t *testing.T) {
	dirs := discoverFixtureDirs(t)

	for _, dir := range dirs {
		base := filepath.Base(dir)
		m := ruleIDPattern.FindStringSubmatch(base)
		if m == nil {
			t.Errorf("cannot extract rule ID from directory: %s", base)
			continue
		}
		ruleID := m[1]

		t.Run(ruleID, func(t *testing.T) {
			r := rule.ByID(ruleID)
			if r == nil {
				t.Fatalf("rule %s not found in registry", ruleID)
			}
			if want := strings.TrimPrefix(base, ruleID+"-"); r.Name() != want {
				t.Errorf("directory names rule %q, registry has %q", want, r.Name())
			}

			t.Run("good", func(t *testing.T) {
				runGoodFile(t, dir)
			})
			t.Run("bad", func(t *testing.T) {
				runBadFile(t, dir, r, ruleID)
			})
		})
	}
}

// runGoodFile checks that good.md passes every registered rule at its
// default settings.
func runGoodFile(t *testing.T, dir string) {
	t.Helper()
	src := readFixture(t, filepath.Join(dir, "good.md"))
	f, err := lint.NewFile("good.md", src)
	if err != nil {
		t.Fatalf("parsing good.md: %v", err)
	}
	diags := checkAllRules(f)
	reportUnexpectedDiags(t, "good.md", diags)
}

// runBadFile checks bad.md against the diagnostics listed in its front
// matter, after applying the listed settings.
func runBadFile(
	t *testing.T, dir string, r rule.Rule, ruleID string,
) {
	t.Helper()
	raw := readFixture(t, filepath.Join(dir, "bad.md"))
	settings, expected, src := parseFixtureFrontMatter(t, raw)
	applySettingsToRule(t, r, settings)

	f, err := lint.NewFile("bad.md", src)
	if err != nil {
		t.Fatalf("parsing bad.md: %v", err)
	}
	diags := filterByRule(r.Check(f), ruleID)
	assertExpectedDiags(t, expected, diags, "bad.md")
}

// --- shared helpers ---

func discoverFixtureDirs(t *testing.T) []string {
	t.Helper()
	dirs, err := filepath.Glob("../../rules/RDS*-*")
	if err != nil {
		t.Fatal(err)
	}
	if len(dirs) == 0 {
		t.Fatal("no rule fixture directories found")
	}
	return dirs
}

func reportUnexpectedDiags(
	t *testing.T, filename string, diags []lint.Diagnostic,
) {
	t.Helper()
	if len(diags) != 0 {
		t.Errorf(
			"%s: expected 0 diagnostics from all rules, got %d",
			filename, len(diags),
		)
		for _, d := range diags {
			t.Logf(
				"  %s line %d col %d: %s",
				d.RuleID, d.Line, d.Column, d.Message,
			)
		}
	}
}

func assertExpectedDiags(
	t *testing.T,
	expected []expectedDiag,
	diags []lint.Diagnostic,
	filename string,
) {
	t.Helper()
	if len(expected) == 0 {
		if len(diags) == 0 {
			t.Errorf(
				"%s: expected at least 1 diagnostic, got 0",
				filename,
			)
		}
		return
	}
	if len(diags) != len(expected) {
		t.Errorf(
			"%s: expected %d diagnostics, got %d",
			filename, len(expected), len(diags),
		)
		for _, d := range diags {
			t.Logf(
				"  actual: line %d col %d: %s",
				d.Line, d.Column, d.Message,
			)
		}
	}
	for i, exp := range expected {
		if i >= len(diags) {
			t.Errorf(
				"missing diagnostic %d: line %d col %d: %s",
				i, exp.Line, exp.Column, exp.Message,
			)
			continue
		}
		d := diags[i]
		if d.Line != exp.Line || d.Column != exp.Column || !strings.HasPrefix(d.Message, exp.Message) {
			t.Errorf(
				"diagnostic %d:\n  want: line %d col %d: %s\n  got:  line %d col %d: %s",
				i, exp.Line, exp.Column, exp.Message,
				d.Line, d.Column, d.Message,
			)
		}
	}
}

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

func checkAllRules(f *lint.File) []lint.Diagnostic {
	var all []lint.Diagnostic
	for _, r := range rule.All() {
		all = append(all, r.Check(f)...)
	}
	return all
}

func filterByRule(
	diags []lint.Diagnostic, ruleID string,
) []lint.Diagnostic {
	var filtered []lint.Diagnostic
	for _, d := range diags {
		if d.RuleID == ruleID {
			filtered = append(filtered, d)
		}
	}
	return filtered
}
