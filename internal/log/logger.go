package log

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes verbose progress lines when Enabled is true. Output goes
// to W (typically stderr), one line per call, with Prefix prepended.
// A Logger is safe for use by concurrent file workers.
type Logger struct {
	Enabled bool
	W       io.Writer
	Prefix  string

	mu sync.Mutex
}

// Printf writes a formatted line to W. It is a no-op when the logger is
// nil or disabled.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled || l.W == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.W, "%s%s\n", l.Prefix, msg)
}
