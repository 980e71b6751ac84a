package output

import (
	"fmt"
	"io"

	"github.com/jeduden/readscore/internal/lint"
)

// Formatter defines the interface for outputting diagnostics.
type Formatter interface {
	Format(w io.Writer, diagnostics []lint.Diagnostic) error
}

// Formats lists the accepted --format values.
const Formats = "text, json"

// NewFormatter returns the diagnostic formatter for format.
func NewFormatter(format string, color bool) (Formatter, error) {
	switch format {
	case "text":
		return &TextFormatter{Color: color}, nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, unknownFormat(format)
}

func unknownFormat(format string) error {
	return fmt.Errorf("unknown format %q (supported: %s)", format, Formats)
}
