package output

import (
	"fmt"
	"io"

	"github.com/jeduden/readscore/internal/lint"
)

const (
	cyan   = "\033[36m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

// TextFormatter outputs diagnostics in human-readable text format.
// When Color is true, the file location is printed in cyan and the rule ID in yellow.
type TextFormatter struct {
	Color bool
}

// Format writes each diagnostic as a single line in the pattern:
// file:line:col rule message
func (f *TextFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	for _, d := range diagnostics {
		loc := fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
		id := d.RuleID
		if f.Color {
			loc = cyan + loc + reset
			id = yellow + id + reset
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", loc, id, d.Message); err != nil {
			return err
		}
	}
	return nil
}
